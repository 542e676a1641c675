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

package eval

import "github.com/hpoggie/gel/value"

// quasiquoteExpand implements quasiquote expansion as a pure syntactic
// rewrite: it does not itself recurse into nested elements beyond one
// level. Each element of a list becomes a literal `(quasiquote elt)`
// subform in the rewritten code, so that recursive expansion happens
// naturally when that code is evaluated and the `quasiquote` special form
// runs again on elt, which keeps the expander itself small.
func quasiquoteExpand(x value.Value) value.Value {
	cons, ok := x.(*value.Cons)
	if !ok {
		return value.NewList(value.Symbol("quote"), x)
	}
	if sym, ok := cons.Car.(value.Symbol); ok && sym == "unquote" {
		if rest, ok := cons.Cdr.(*value.Cons); ok {
			return rest.Car
		}
		return value.Nil
	}
	return quasiquoteFold(x)
}

// quasiquoteFold folds a list's spine from right to left: each element
// elt contributes `(cons (quasiquote elt) res)` to the accumulator, unless
// elt is `(splice-unquote e)`, which contributes `(concat e res)` instead.
// An improper or empty tail becomes `(quote tail)`, the fold's base case.
func quasiquoteFold(x value.Value) value.Value {
	cons, ok := x.(*value.Cons)
	if !ok {
		return value.NewList(value.Symbol("quote"), x)
	}
	rest := quasiquoteFold(cons.Cdr)
	elt := cons.Car
	if eltCons, ok := elt.(*value.Cons); ok {
		if sym, ok := eltCons.Car.(value.Symbol); ok && sym == "splice-unquote" {
			if r, ok := eltCons.Cdr.(*value.Cons); ok {
				return value.NewList(value.Symbol("concat"), r.Car, rest)
			}
		}
	}
	return value.NewList(value.Symbol("cons"), value.NewList(value.Symbol("quasiquote"), elt), rest)
}
