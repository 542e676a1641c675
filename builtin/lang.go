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

package builtin

import (
	"github.com/pkg/errors"

	"github.com/hpoggie/gel/gelenv"
	"github.com/hpoggie/gel/gelerr"
	"github.com/hpoggie/gel/value"
)

var gensymCounter int

func installLang(
	def func(string, func([]value.Value) (value.Value, error)),
	defCtx func(string, func([]value.Value, value.Context) (value.Value, error)),
	globalEnv *gelenv.Environment,
) {
	def("-def-internal!", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("-def-internal!: expected exactly 2 arguments")
		}
		sym, ok := args[0].(value.Symbol)
		if !ok {
			return nil, errors.Errorf("-def-internal!: expected a symbol, got %s", args[0].Repr())
		}
		globalEnv.DefineGlobal(sym, args[1])
		return args[1], nil
	})

	def("-make-macro!", func(args []value.Value) (value.Value, error) {
		switch f := args[0].(type) {
		case *value.UserFn:
			f.Macro = true
			return f, nil
		case *value.BuiltinFn:
			f.Macro = true
			return f, nil
		default:
			return nil, errors.Errorf("-make-macro!: expected a function, got %s", args[0].Repr())
		}
	})

	def("gensym", func(args []value.Value) (value.Value, error) {
		gensymCounter++
		return value.Symbol("gensym-" + value.Int(gensymCounter).Repr()), nil
	})

	defCtx("eval", func(args []value.Value, ctx value.Context) (value.Value, error) {
		if len(args) != 1 {
			return nil, errors.New("eval: expected exactly 1 argument")
		}
		return ctx.Eval(args[0], globalEnv)
	})

	defCtx("mapcar", func(args []value.Value, ctx value.Context) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("mapcar: expected exactly 2 arguments")
		}
		items, ok := value.Slice(args[1])
		if !ok {
			return nil, errors.Errorf("mapcar: expected a proper list, got %s", args[1].Repr())
		}
		out := make([]value.Value, len(items))
		for i, it := range items {
			v, err := ctx.Apply(args[0], []value.Value{it})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.NewList(out...), nil
	})

	defCtx("throw", func(args []value.Value, ctx value.Context) (value.Value, error) {
		if len(args) != 1 {
			return nil, errors.New("throw: expected exactly 1 argument")
		}
		return nil, gelerr.New(gelerr.LispError, args[0], ctx.Stack())
	})

	defCtx("assert", func(args []value.Value, ctx value.Context) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("assert: expected exactly 2 arguments")
		}
		if value.IsTruthy(args[0]) {
			return args[0], nil
		}
		msg := args[1]
		if msg == value.Nil {
			msg = value.String("assertion failed")
		}
		return nil, gelerr.New(gelerr.LispError, msg, ctx.Stack())
	})
}
