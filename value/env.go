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

package value

// Env is the minimal surface gelenv.Environment exposes to values (mainly to
// UserFn, which captures one at creation, and to BuiltinFn, which may need
// one via Context). Kept as an interface here -- rather than value
// depending on gelenv directly -- to avoid an import cycle, since gelenv
// itself stores and returns Values.
type Env interface {
	// Lookup returns the value bound to sym in the innermost frame that
	// defines it, or ok=false if no frame does.
	Lookup(sym Symbol) (v Value, ok bool)
	// Define binds sym to v in this Env's own (innermost) frame.
	Define(sym Symbol, v Value)
	// Assign locates the innermost frame that already defines sym and
	// rewrites its binding there, or returns an error if none does.
	Assign(sym Symbol, v Value) error
	// Child returns a new Env with one additional innermost frame.
	Child() Env
}

// Frame records one non-tail application on the evaluator's call stack, used
// both for the unhandled-error trace and the interactive debugger.
type Frame struct {
	Name string
	Form Value
}

// Context is what the evaluator hands to a contextual ("second-order")
// built-in such as `eval` or `mapcar`, so that it can evaluate forms and
// apply callees without the builtin package needing to import eval; cmd/gel
// is what wires the evaluator and the built-in table together.
type Context interface {
	// Eval evaluates form in env, including macro expansion and TCO.
	Eval(form Value, env Env) (Value, error)
	// Apply calls fn (a BuiltinFn or UserFn) on the given already-evaluated
	// argument list, inheriting the caller's call-stack context.
	Apply(fn Value, args []Value) (Value, error)
	// Stack returns a snapshot of the current call stack, innermost first.
	Stack() []Frame
}
