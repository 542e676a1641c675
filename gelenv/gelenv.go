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

// Package gelenv implements gel's lexical environment: a non-empty ordered
// chain of frames, each a map from symbol to value.
package gelenv

import (
	"github.com/pkg/errors"

	"github.com/hpoggie/gel/value"
)

// Environment is one frame in the chain, linked to its parent (the next
// frame out). The outermost frame (parent == nil) is the "repl" frame that
// define_global writes into.
type Environment struct {
	vars   map[value.Symbol]value.Value
	parent *Environment
}

// New creates a fresh single-frame environment with no parent -- this is
// the outermost ("repl") frame created at boot.
func New() *Environment {
	return &Environment{vars: make(map[value.Symbol]value.Value)}
}

// Child returns a new Environment with an additional innermost frame,
// implementing value.Env's extend operation.
func (e *Environment) Child() value.Env {
	return &Environment{vars: make(map[value.Symbol]value.Value), parent: e}
}

// Lookup returns the value from the innermost frame that contains sym,
// searching outward.
func (e *Environment) Lookup(sym value.Symbol) (value.Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[sym]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds sym in this Environment's own frame (the frame extend/Child
// created, or the outermost frame if this *is* the outermost one).
func (e *Environment) Define(sym value.Symbol, v value.Value) {
	e.vars[sym] = v
}

// DefineGlobal writes into the outermost ("repl") frame.
func (e *Environment) DefineGlobal(sym value.Symbol, v value.Value) {
	f := e
	for f.parent != nil {
		f = f.parent
	}
	f.vars[sym] = v
}

// Assign locates the innermost frame containing sym and writes there; it is
// an error if no frame contains it.
func (e *Environment) Assign(sym value.Symbol, v value.Value) error {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[sym]; ok {
			f.vars[sym] = v
			return nil
		}
	}
	return errors.Errorf("cannot set undefined symbol: %s", sym)
}

// Outermost returns the outermost ("repl") frame of the chain e belongs to.
func (e *Environment) Outermost() *Environment {
	f := e
	for f.parent != nil {
		f = f.parent
	}
	return f
}
