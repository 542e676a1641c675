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

	"github.com/hpoggie/gel/value"
)

func asInt(v value.Value, who string) (value.Int, error) {
	n, ok := v.(value.Int)
	if !ok {
		return 0, errors.Errorf("%s: expected an int, got %s", who, v.Repr())
	}
	return n, nil
}

func installNumeric(def func(string, func([]value.Value) (value.Value, error))) {
	def("+", func(args []value.Value) (value.Value, error) {
		sum := value.Int(0)
		for _, a := range args {
			n, err := asInt(a, "+")
			if err != nil {
				return nil, err
			}
			sum, err = value.AddInt(sum, n)
			if err != nil {
				return nil, err
			}
		}
		return sum, nil
	})

	def("-", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, errors.New("-: expected at least 1 argument")
		}
		first, err := asInt(args[0], "-")
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			return value.SubInt(0, first)
		}
		acc := first
		for _, a := range args[1:] {
			n, err := asInt(a, "-")
			if err != nil {
				return nil, err
			}
			acc, err = value.SubInt(acc, n)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	def("*", func(args []value.Value) (value.Value, error) {
		prod := value.Int(1)
		for _, a := range args {
			n, err := asInt(a, "*")
			if err != nil {
				return nil, err
			}
			prod, err = value.MulInt(prod, n)
			if err != nil {
				return nil, err
			}
		}
		return prod, nil
	})

	def("//", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("//: expected exactly 2 arguments")
		}
		a, err := asInt(args[0], "//")
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1], "//")
		if err != nil {
			return nil, err
		}
		q, _, err := value.DivModInt(a, b)
		return q, err
	})

	def("%", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("%: expected exactly 2 arguments")
		}
		a, err := asInt(args[0], "%")
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1], "%")
		if err != nil {
			return nil, err
		}
		_, m, err := value.DivModInt(a, b)
		return m, err
	})

	def("=", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return nil, errors.New("=: expected at least 2 arguments")
		}
		for i := 1; i < len(args); i++ {
			if !value.Equals(args[i-1], args[i]) {
				return value.False, nil
			}
		}
		return value.True, nil
	})

	def("<", func(args []value.Value) (value.Value, error) {
		return intChain(args, "<", func(a, b value.Int) bool { return a < b })
	})

	def(">", func(args []value.Value) (value.Value, error) {
		return intChain(args, ">", func(a, b value.Int) bool { return a > b })
	})
}

func intChain(args []value.Value, who string, ok func(a, b value.Int) bool) (value.Value, error) {
	if len(args) < 2 {
		return nil, errors.Errorf("%s: expected at least 2 arguments", who)
	}
	prev, err := asInt(args[0], who)
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		n, err := asInt(a, who)
		if err != nil {
			return nil, err
		}
		if !ok(prev, n) {
			return value.False, nil
		}
		prev = n
	}
	return value.True, nil
}
