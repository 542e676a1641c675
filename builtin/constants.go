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
	"math/rand"

	"github.com/pkg/errors"

	"github.com/hpoggie/gel/gelenv"
	"github.com/hpoggie/gel/value"
)

func installConstants(def func(string, func([]value.Value) (value.Value, error)), globalEnv *gelenv.Environment) {
	globalEnv.DefineGlobal("INT_MAX", value.MaxInt)
	globalEnv.DefineGlobal("INT_MIN", value.MinInt)

	def("rand", func(args []value.Value) (value.Value, error) {
		switch len(args) {
		case 0:
			return value.Int(rand.Int63()), nil
		case 1:
			n, ok := args[0].(value.Int)
			if !ok {
				return nil, errors.Errorf("rand: expected an int, got %s", args[0].Repr())
			}
			if n <= 0 {
				return nil, errors.Errorf("rand: upper bound must be positive, got %d", n)
			}
			return value.Int(rand.Int63n(int64(n))), nil
		default:
			return nil, errors.New("rand: expected 0 or 1 arguments")
		}
	})
}
