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
	"github.com/hpoggie/gel/value"
)

func installReflect(def func(string, func([]value.Value) (value.Value, error)), globalEnv *gelenv.Environment) {
	def("type", func(args []value.Value) (value.Value, error) {
		return value.Symbol(args[0].Kind().String()), nil
	})

	def("hash", func(args []value.Value) (value.Value, error) {
		return value.Int(value.Hash(args[0])), nil
	})

	def("is-builtin?", func(args []value.Value) (value.Value, error) {
		if _, ok := args[0].(*value.BuiltinFn); ok {
			return value.True, nil
		}
		return value.False, nil
	})

	def("defined?", func(args []value.Value) (value.Value, error) {
		sym, ok := args[0].(value.Symbol)
		if !ok {
			return nil, errors.Errorf("defined?: expected a symbol, got %s", args[0].Repr())
		}
		if _, ok := globalEnv.Lookup(sym); ok {
			return value.True, nil
		}
		return value.False, nil
	})

	def("env-get", func(args []value.Value) (value.Value, error) {
		sym, ok := args[0].(value.Symbol)
		if !ok {
			return nil, errors.Errorf("env-get: expected a symbol, got %s", args[0].Repr())
		}
		v, ok := globalEnv.Lookup(sym)
		if !ok {
			return nil, errors.Errorf("env-get: undefined symbol: %s", sym)
		}
		return v, nil
	})

	def("get-function-name", func(args []value.Value) (value.Value, error) {
		switch f := args[0].(type) {
		case *value.UserFn:
			if f.Name == "" {
				return value.Nil, nil
			}
			return value.String(f.Name), nil
		case *value.BuiltinFn:
			return value.String(f.Name), nil
		default:
			return nil, errors.Errorf("get-function-name: expected a function, got %s", args[0].Repr())
		}
	})

	def("set-function-name!", func(args []value.Value) (value.Value, error) {
		f, ok := args[0].(*value.UserFn)
		if !ok {
			return nil, errors.Errorf("set-function-name!: expected a user-defined function, got %s", args[0].Repr())
		}
		name, ok := args[1].(value.String)
		if !ok {
			return nil, errors.Errorf("set-function-name!: expected a string, got %s", args[1].Repr())
		}
		f.Name = string(name)
		return f, nil
	})
}
