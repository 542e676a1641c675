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

package builtin_test

import (
	"bytes"
	"testing"

	"github.com/hpoggie/gel/value"
)

// These tests exercise whole-language behavior through a fully-populated
// environment: recursion through a global binding, definition shadowing,
// quasiquote feeding eval, and the list/arithmetic laws that the smaller
// per-builtin tests above only touch piecewise.

func TestGlobalRecursionFibonacci(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! 'rec (fn (n) (if (< n 2) n (+ (rec (- n 1)) (rec (- n 2))))))`)
	got := evalString(t, env, `(rec 10)`)
	if got != value.Int(55) {
		t.Errorf("(rec 10) = %v, want 55", got)
	}
}

func TestRedefinitionShadowsEarlierDefinition(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	got := evalString(t, env, `((fn () (-def-internal! 'x 1) (-def-internal! 'x 2) x))`)
	if got != value.Int(2) {
		t.Errorf("got %v, want 2", got)
	}
}

func TestEvalOfQuasiquotedForm(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	got := evalString(t, env, "(eval `(+ 1 ,(+ 2 3)))")
	if got != value.Int(6) {
		t.Errorf("got %v, want 6", got)
	}
}

func TestReversedTwiceIsStructurallyEqualButDistinct(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! 'l (list 1 2 3))`)
	evalString(t, env, `(-def-internal! 'l2 (reversed (reversed l)))`)
	if got := evalString(t, env, `(= l l2)`); got != value.True {
		t.Errorf("(= l l2) = %v, want true", got)
	}
	l := evalString(t, env, "l")
	l2 := evalString(t, env, "l2")
	if l == l2 {
		t.Error("reversed twice returned the same cons chain, want a fresh copy")
	}
}

func TestConcatDoublesLength(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	got := evalString(t, env, `(len (concat (list 1 2 3) (list 1 2 3)))`)
	if got != value.Int(6) {
		t.Errorf("got %v, want 6", got)
	}
}

func TestDivModIdentity(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	for _, pair := range [][2]int64{{7, 2}, {-7, 2}, {7, -2}, {0, 5}, {100, 9}} {
		a, b := value.Int(pair[0]), value.Int(pair[1])
		evalString(t, env, `(-def-internal! 'a `+a.Repr()+`)`)
		evalString(t, env, `(-def-internal! 'b `+b.Repr()+`)`)
		got := evalString(t, env, `(+ (* (// a b) b) (% a b))`)
		if got != a {
			t.Errorf("a=%d b=%d: got %v, want %v", pair[0], pair[1], got, a)
		}
	}
}

func TestReadStringReprRoundTrip(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	for _, src := range []string{
		`42`, `-7`, `"a \"quoted\" string"`, `(1 2 (3 4) nil true false)`, `sym-bol?`,
	} {
		env.Define("src", value.String(src))
		evalString(t, env, `(-def-internal! 'v (read-string src))`)
		if got := evalString(t, env, `(= v (read-string (repr v)))`); got != value.True {
			t.Errorf("%s did not round-trip through repr", src)
		}
	}
}

func TestTailReturnsTheActualLastCons(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! 'xs (list 1 2 3))`)
	evalString(t, env, `(rplacd! (tail xs) (list 4))`)
	got := evalString(t, env, "xs")
	if got.Repr() != "(1 2 3 4)" {
		t.Errorf("got %s, want (1 2 3 4)", got.Repr())
	}
}
