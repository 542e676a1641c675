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

// Package eval implements gel's trampoline evaluator: special forms, macro
// expansion, tail-call-optimized function application and the quasiquote
// expansion algorithm.
//
// The trampoline is the single Eval method below: rather than recursing on
// Go's call stack for every gel call, a tail position rewrites the loop's
// local (form, env) pair and continues, much as the bytecode VM rewrites
// (pc, block) instead of recursing into a nested Run call. Only genuinely
// non-tail sub-evaluations (an `if`'s condition, a function's arguments, a
// `try` body) make a nested call to Eval, which is also where the
// call-stack trace used by unhandled-error reporting and the debugger
// grows.
package eval

import (
	"github.com/pkg/errors"

	"github.com/hpoggie/gel/gelerr"
	"github.com/hpoggie/gel/value"
)

// Breaker is the interactive debugger hook: when an Evaluator's debug
// flag is set, it is consulted once per trampoline iteration, before the
// current form is inspected. Returning a non-nil error aborts evaluation
// (surfacing through Eval as that error); the hook is free to block on
// stdin, print env/form, or clear the debug flag itself to resume freely.
type Breaker func(ev *Evaluator, form value.Value, env value.Env) error

// Evaluator is gel's single evaluator instance. It is not safe for
// concurrent use (gel has no concurrency model), but nothing about
// it depends on being a singleton -- a program may construct several,
// each with its own call-stack and debug state.
type Evaluator struct {
	stack   []value.Frame
	debug   bool
	Breaker Breaker
}

// New creates an Evaluator with an empty call stack and debugging off.
func New() *Evaluator {
	return &Evaluator{}
}

// SetDebug turns the per-iteration debugger hook on or off. The `break`
// special form calls this with true from inside running gel code; cmd/gel
// may also call it directly before the first Eval.
func (ev *Evaluator) SetDebug(on bool) { ev.debug = on }

// Debug reports whether the debugger hook is currently engaged.
func (ev *Evaluator) Debug() bool { return ev.debug }

// Stack returns a snapshot of the call stack, innermost frame first,
// implementing value.Context for built-ins like `eval` and `mapcar` that
// need to raise errors with an accurate trace.
func (ev *Evaluator) Stack() []value.Frame {
	out := make([]value.Frame, len(ev.stack))
	for i, f := range ev.stack {
		out[len(ev.stack)-1-i] = f
	}
	return out
}

func (ev *Evaluator) pushFrame(form value.Value) {
	ev.stack = append(ev.stack, value.Frame{Name: frameName(form), Form: form})
}

func (ev *Evaluator) popFrame() {
	ev.stack = ev.stack[:len(ev.stack)-1]
}

func (ev *Evaluator) updateFrame(form value.Value) {
	if len(ev.stack) == 0 {
		return
	}
	ev.stack[len(ev.stack)-1] = value.Frame{Name: frameName(form), Form: form}
}

func frameName(form value.Value) string {
	if cons, ok := form.(*value.Cons); ok {
		if sym, ok := cons.Car.(value.Symbol); ok {
			return string(sym)
		}
	}
	return ""
}

// evalErrorf raises an eval_error carrying the current call-stack snapshot.
func (ev *Evaluator) evalErrorf(format string, args ...interface{}) error {
	return gelerr.Errorf(gelerr.EvalError, ev.Stack(), format, args...)
}

// raise wraps a plain Go error (from gelenv.Assign, value arithmetic, etc.)
// into a *gelerr.Error of the given kind, unless it already is one.
func (ev *Evaluator) raise(kind gelerr.Kind, err error) error {
	if gerr, ok := gelerr.As(err); ok {
		return gerr
	}
	return gelerr.Wrap(kind, err, ev.Stack())
}

// Eval evaluates form in env: a symbol looks itself
// up; a cons is macro-expanded, then matched against the special forms or
// applied as a function call; anything else (Nil, Int, String, Bool,
// functions, bytecode, continuations, maps) evaluates to itself.
func (ev *Evaluator) Eval(form value.Value, env value.Env) (value.Value, error) {
	ev.pushFrame(form)
	defer ev.popFrame()

	for {
		ev.updateFrame(form)

		if ev.debug && ev.Breaker != nil {
			if err := ev.Breaker(ev, form, env); err != nil {
				return nil, err
			}
		}

		switch f := form.(type) {
		case value.Symbol:
			v, ok := env.Lookup(f)
			if !ok {
				return nil, ev.evalErrorf("undefined symbol: %s", f)
			}
			return v, nil

		case *value.Cons:
			expanded, err := ev.macroExpand(f, env)
			if err != nil {
				return nil, err
			}
			cons, isCons := expanded.(*value.Cons)
			if !isCons {
				form = expanded
				continue
			}

			if sym, ok := cons.Car.(value.Symbol); ok {
				result, serr, handled, cont := ev.evalSpecialForm(sym, cons, &form, &env)
				if handled {
					if cont {
						continue
					}
					return result, serr
				}
			}

			fnVal, err := ev.Eval(cons.Car, env)
			if err != nil {
				return nil, err
			}
			argVals, err := ev.evalArgs(cons.Cdr, env)
			if err != nil {
				return nil, err
			}
			res, cerr, done := ev.tailCall(fnVal, argVals, &form, &env)
			if done {
				return res, cerr
			}
			continue

		default:
			return form, nil
		}
	}
}

// evalArgs evaluates a proper list's elements strictly left to right, the
// argument-evaluation order for ordinary function calls.
func (ev *Evaluator) evalArgs(list value.Value, env value.Env) ([]value.Value, error) {
	var out []value.Value
	cur := list
	for cur != value.Nil {
		cons, ok := cur.(*value.Cons)
		if !ok {
			return nil, ev.evalErrorf("improper argument list: %s", list.Repr())
		}
		v, err := ev.Eval(cons.Car, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		cur = cons.Cdr
	}
	return out, nil
}

// tailCall applies fn to args. For a BuiltinFn it calls through and returns
// the result directly (done=true): built-ins are never tail
// optimized. For a UserFn it binds parameters, evaluates every body form
// but the last for effect, and rewrites *form/*env to the last body form so
// the trampoline continues in tail position (done=false).
func (ev *Evaluator) tailCall(fn value.Value, args []value.Value, form *value.Value, env *value.Env) (value.Value, error, bool) {
	switch callee := fn.(type) {
	case *value.BuiltinFn:
		res, err := callee.Call(args, ev)
		if err != nil {
			return nil, ev.raise(gelerr.LispError, err), true
		}
		return res, nil, true

	case *value.UserFn:
		newEnv, err := ev.bindParams(callee, args)
		if err != nil {
			return nil, err, true
		}
		if len(callee.Body) == 0 {
			return value.Nil, nil, true
		}
		for _, b := range callee.Body[:len(callee.Body)-1] {
			if _, err := ev.Eval(b, newEnv); err != nil {
				return nil, err, true
			}
		}
		*form = callee.Body[len(callee.Body)-1]
		*env = newEnv
		return nil, nil, false

	default:
		return nil, ev.evalErrorf("attempt to call non-function: %s", fn.Repr()), true
	}
}

// Apply calls fn on an already-evaluated argument list without tail
// optimization, implementing value.Context for `eval`/`mapcar`-style
// built-ins that must reenter evaluation from Go code rather than from the
// trampoline itself.
func (ev *Evaluator) Apply(fn value.Value, args []value.Value) (value.Value, error) {
	switch callee := fn.(type) {
	case *value.BuiltinFn:
		res, err := callee.Call(args, ev)
		if err != nil {
			return nil, ev.raise(gelerr.LispError, err)
		}
		return res, nil
	case *value.UserFn:
		newEnv, err := ev.bindParams(callee, args)
		if err != nil {
			return nil, err
		}
		var result value.Value = value.Nil
		for _, b := range callee.Body {
			v, err := ev.Eval(b, newEnv)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	default:
		return nil, ev.evalErrorf("attempt to call non-function: %s", fn.Repr())
	}
}

func (ev *Evaluator) bindParams(fn *value.UserFn, args []value.Value) (value.Env, error) {
	min := len(fn.Params)
	if fn.HasRest {
		if len(args) < min {
			return nil, ev.evalErrorf("%s: expected at least %d arguments, got %d", fnDisplayName(fn), min, len(args))
		}
	} else if len(args) != min {
		return nil, ev.evalErrorf("%s: expected %d arguments, got %d", fnDisplayName(fn), min, len(args))
	}

	child := fn.Env.Child()
	for i, p := range fn.Params {
		child.Define(p, args[i])
	}
	if fn.HasRest {
		child.Define(fn.RestParam, value.NewList(args[min:]...))
	}
	return child, nil
}

func fnDisplayName(fn *value.UserFn) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "#<fn>"
}

// parseParams parses a `fn` parameter list: a proper list of symbols,
// optionally ending in the two-element tail `&rest name`.
func parseParams(paramsForm value.Value) (params []value.Symbol, hasRest bool, restParam value.Symbol, err error) {
	items, ok := value.Slice(paramsForm)
	if !ok {
		return nil, false, "", errors.Errorf("fn: parameter list must be a proper list: %s", paramsForm.Repr())
	}
	for i := 0; i < len(items); i++ {
		sym, ok := items[i].(value.Symbol)
		if !ok {
			return nil, false, "", errors.Errorf("fn: parameter %d is not a symbol: %s", i, items[i].Repr())
		}
		if sym == "&rest" {
			if i != len(items)-2 {
				return nil, false, "", errors.New("fn: &rest must be followed by exactly one parameter name")
			}
			rest, ok := items[i+1].(value.Symbol)
			if !ok {
				return nil, false, "", errors.Errorf("fn: &rest parameter is not a symbol: %s", items[i+1].Repr())
			}
			return params, true, rest, nil
		}
		params = append(params, sym)
	}
	return params, false, "", nil
}

func (ev *Evaluator) makeFn(args []value.Value, env value.Env, name string) (*value.UserFn, error) {
	if len(args) < 1 {
		return nil, ev.evalErrorf("fn: missing parameter list")
	}
	params, hasRest, restParam, err := parseParams(args[0])
	if err != nil {
		return nil, ev.raise(gelerr.EvalError, err)
	}
	return &value.UserFn{
		Name:      name,
		Params:    params,
		HasRest:   hasRest,
		RestParam: restParam,
		Body:      args[1:],
		Env:       env,
	}, nil
}
