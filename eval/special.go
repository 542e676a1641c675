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

import (
	"github.com/hpoggie/gel/gelerr"
	"github.com/hpoggie/gel/value"
)

// evalSpecialForm recognizes sym as one of the special forms (including the
// short-circuit `and`/`or`, the `let` sugar and the `break` debugger hook).
// handled is false when sym names
// no special form, telling the caller to fall through to ordinary function
// application. When handled is true and cont is true, *form/*env have been
// rewritten for the trampoline to continue in tail position; when cont is
// false, (result, err) is the form's final value.
func (ev *Evaluator) evalSpecialForm(sym value.Symbol, cons *value.Cons, form *value.Value, env *value.Env) (result value.Value, err error, handled bool, cont bool) {
	args, properList := value.Slice(cons.Cdr)

	switch sym {
	case "quote":
		if !properList || len(args) != 1 {
			return nil, ev.evalErrorf("quote: expected exactly 1 argument"), true, false
		}
		return args[0], nil, true, false

	case "quasiquote":
		if !properList || len(args) != 1 {
			return nil, ev.evalErrorf("quasiquote: expected exactly 1 argument"), true, false
		}
		*form = quasiquoteExpand(args[0])
		return nil, nil, true, true

	case "if":
		if !properList || len(args) != 3 {
			return nil, ev.evalErrorf("if: expected exactly 3 arguments"), true, false
		}
		cond, cerr := ev.Eval(args[0], *env)
		if cerr != nil {
			return nil, cerr, true, false
		}
		if value.IsTruthy(cond) {
			*form = args[1]
		} else {
			*form = args[2]
		}
		return nil, nil, true, true

	case "fn":
		if !properList {
			return nil, ev.evalErrorf("fn: malformed argument list"), true, false
		}
		fn, ferr := ev.makeFn(args, *env, "")
		if ferr != nil {
			return nil, ferr, true, false
		}
		return fn, nil, true, false

	case "set":
		if !properList || len(args) != 2 {
			return nil, ev.evalErrorf("set: expected exactly 2 arguments"), true, false
		}
		target, ok := args[0].(value.Symbol)
		if !ok {
			return nil, ev.evalErrorf("set: first argument must be a symbol, got %s", args[0].Repr()), true, false
		}
		val, verr := ev.Eval(args[1], *env)
		if verr != nil {
			return nil, verr, true, false
		}
		if aerr := (*env).Assign(target, val); aerr != nil {
			return nil, ev.raise(gelerr.EvalError, aerr), true, false
		}
		return val, nil, true, false

	case "try":
		if !properList || len(args) != 3 {
			return nil, ev.evalErrorf("try: expected exactly 3 arguments"), true, false
		}
		errSym, ok := args[1].(value.Symbol)
		if !ok {
			return nil, ev.evalErrorf("try: second argument must be a symbol, got %s", args[1].Repr()), true, false
		}
		res, terr := ev.Eval(args[0], *env)
		if terr == nil {
			return res, nil, true, false
		}
		gerr, ok := gelerr.As(terr)
		if !ok {
			return nil, terr, true, false
		}
		child := (*env).Child()
		child.Define(errSym, gerr.Payload)
		*env = child
		*form = args[2]
		return nil, nil, true, true

	case "macroexpand":
		if !properList || len(args) != 1 {
			return nil, ev.evalErrorf("macroexpand: expected exactly 1 argument"), true, false
		}
		expanded, merr := ev.macroExpand(args[0], *env)
		return expanded, merr, true, false

	case "apply":
		if !properList || len(args) != 2 {
			return nil, ev.evalErrorf("apply: expected exactly 2 arguments"), true, false
		}
		fVal, ferr := ev.Eval(args[0], *env)
		if ferr != nil {
			return nil, ferr, true, false
		}
		argsListVal, aerr := ev.Eval(args[1], *env)
		if aerr != nil {
			return nil, aerr, true, false
		}
		argsSlice, ok := value.Slice(argsListVal)
		if !ok {
			return nil, ev.evalErrorf("apply: second argument must be a proper list, got %s", argsListVal.Repr()), true, false
		}
		res, cerr, done := ev.tailCall(fVal, argsSlice, form, env)
		if done {
			return res, cerr, true, false
		}
		return nil, nil, true, true

	case "and":
		if !properList {
			return nil, ev.evalErrorf("and: malformed argument list"), true, false
		}
		if len(args) == 0 {
			return value.True, nil, true, false
		}
		for i := 0; i < len(args)-1; i++ {
			v, verr := ev.Eval(args[i], *env)
			if verr != nil {
				return nil, verr, true, false
			}
			if !value.IsTruthy(v) {
				return v, nil, true, false
			}
		}
		*form = args[len(args)-1]
		return nil, nil, true, true

	case "or":
		if !properList {
			return nil, ev.evalErrorf("or: malformed argument list"), true, false
		}
		if len(args) == 0 {
			return value.Nil, nil, true, false
		}
		for i := 0; i < len(args)-1; i++ {
			v, verr := ev.Eval(args[i], *env)
			if verr != nil {
				return nil, verr, true, false
			}
			if value.IsTruthy(v) {
				return v, nil, true, false
			}
		}
		*form = args[len(args)-1]
		return nil, nil, true, true

	case "let":
		if !properList || len(args) < 1 {
			return nil, ev.evalErrorf("let: expected a binding list and a body"), true, false
		}
		bindings, ok := value.Slice(args[0])
		if !ok {
			return nil, ev.evalErrorf("let: binding list must be a proper list"), true, false
		}
		params := make([]value.Value, 0, len(bindings))
		inits := make([]value.Value, 0, len(bindings))
		for _, bnd := range bindings {
			pair, ok := value.Slice(bnd)
			if !ok || len(pair) != 2 {
				return nil, ev.evalErrorf("let: each binding must be (symbol expr), got %s", bnd.Repr()), true, false
			}
			params = append(params, pair[0])
			inits = append(inits, pair[1])
		}
		fnForm := value.NewList(append([]value.Value{value.Symbol("fn"), value.NewList(params...)}, args[1:]...)...)
		*form = value.NewList(append([]value.Value{fnForm}, inits...)...)
		return nil, nil, true, true

	case "break":
		ev.SetDebug(true)
		return value.Nil, nil, true, false

	default:
		return nil, nil, false, false
	}
}
