// This file is part of gel - https://github.com/hpoggie/gel
//
// Copyright 2026 The gel Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gelenv_test

import (
	"testing"

	"github.com/hpoggie/gel/gelenv"
	"github.com/hpoggie/gel/value"
)

func TestDefineAndLookup(t *testing.T) {
	env := gelenv.New()
	env.Define("x", value.Int(1))
	v, ok := env.Lookup("x")
	if !ok || v != value.Int(1) {
		t.Fatalf("Lookup(x) = %v, %v, want 1, true", v, ok)
	}
}

func TestLookupMissingFails(t *testing.T) {
	env := gelenv.New()
	if _, ok := env.Lookup("nope"); ok {
		t.Fatal("expected Lookup to fail for an undefined symbol")
	}
}

func TestChildShadowsParent(t *testing.T) {
	parent := gelenv.New()
	parent.Define("x", value.Int(1))
	child := parent.Child()
	child.Define("x", value.Int(2))

	v, ok := child.Lookup("x")
	if !ok || v != value.Int(2) {
		t.Fatalf("child Lookup(x) = %v, %v, want 2, true", v, ok)
	}
	pv, ok := parent.Lookup("x")
	if !ok || pv != value.Int(1) {
		t.Fatalf("parent Lookup(x) = %v, %v, want 1, true (shadowing must not mutate parent)", pv, ok)
	}
}

func TestChildInheritsParentBindings(t *testing.T) {
	parent := gelenv.New()
	parent.Define("y", value.Int(7))
	child := parent.Child()
	v, ok := child.Lookup("y")
	if !ok || v != value.Int(7) {
		t.Fatalf("child Lookup(y) = %v, %v, want 7, true", v, ok)
	}
}

func TestAssignWritesInDefiningFrame(t *testing.T) {
	parent := gelenv.New()
	parent.Define("x", value.Int(1))
	child := parent.Child().(*gelenv.Environment)

	if err := child.Assign("x", value.Int(99)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	// x is defined in parent's frame; assigning through child must be
	// visible from parent too, since every closure sharing the frame sees
	// the same binding.
	v, _ := parent.Lookup("x")
	if v != value.Int(99) {
		t.Errorf("parent.Lookup(x) = %v, want 99", v)
	}
}

func TestAssignUndefinedSymbolErrors(t *testing.T) {
	env := gelenv.New()
	if err := env.Assign("nope", value.Int(1)); err == nil {
		t.Fatal("expected error assigning to an undefined symbol")
	}
}

func TestDefineGlobalWritesOutermostFrame(t *testing.T) {
	outer := gelenv.New()
	inner := outer.Child().(*gelenv.Environment)
	inner.DefineGlobal("g", value.Int(5))

	if v, ok := outer.Lookup("g"); !ok || v != value.Int(5) {
		t.Fatalf("outer.Lookup(g) = %v, %v, want 5, true", v, ok)
	}
}

func TestOutermost(t *testing.T) {
	outer := gelenv.New()
	mid := outer.Child().(*gelenv.Environment)
	inner := mid.Child().(*gelenv.Environment)
	if inner.Outermost() != outer {
		t.Fatal("Outermost() did not return the repl frame")
	}
}
