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

// BuiltinFn is an opaque callable built into the language at boot, modeled
// as a sum of a plain variant (arglist only) and a contextual variant
// (arglist plus a Context giving it access to eval/apply/the call stack) --
// exactly one of fn/ctxFn is set.
type BuiltinFn struct {
	Name  string
	Macro bool

	fn    func(args []Value) (Value, error)
	ctxFn func(args []Value, ctx Context) (Value, error)
}

func (*BuiltinFn) Kind() Kind     { return KindBuiltinFn }
func (b *BuiltinFn) Repr() string { return "#<builtin:" + b.Name + ">" }

// NewBuiltin wraps a plain (non-contextual) built-in function.
func NewBuiltin(name string, fn func(args []Value) (Value, error)) *BuiltinFn {
	return &BuiltinFn{Name: name, fn: fn}
}

// NewContextualBuiltin wraps a built-in that needs the evaluator's Context,
// such as `eval` or `mapcar`.
func NewContextualBuiltin(name string, fn func(args []Value, ctx Context) (Value, error)) *BuiltinFn {
	return &BuiltinFn{Name: name, ctxFn: fn}
}

// Call invokes the built-in with the given already-evaluated argument list.
// ctx is required when the built-in is contextual; it may be nil otherwise.
func (b *BuiltinFn) Call(args []Value, ctx Context) (Value, error) {
	if b.ctxFn != nil {
		return b.ctxFn(args, ctx)
	}
	return b.fn(args)
}

// IsContextual reports whether this built-in needs a Context to run.
func (b *BuiltinFn) IsContextual() bool { return b.ctxFn != nil }

// UserFn is a function or macro defined in gel source: `(fn params body...)`.
// Params is a proper list of parameter symbols; if HasRest is set, the
// final "&rest sym" tail binds the remaining arguments as a list.
type UserFn struct {
	Name      string
	Params    []Symbol
	HasRest   bool
	RestParam Symbol
	Body      []Value
	Env       Env
	Macro     bool // monotonic: once set by -make-macro!, stays set
}

func (*UserFn) Kind() Kind { return KindUserFn }

func (f *UserFn) Repr() string {
	if f.Name != "" {
		return "#<fn:" + f.Name + ">"
	}
	return "#<fn>"
}

// Arity returns the minimum argument count and whether more are accepted via
// &rest.
func (f *UserFn) Arity() (min int, variadic bool) {
	return len(f.Params), f.HasRest
}
