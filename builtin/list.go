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

func asCons(v value.Value, who string) (*value.Cons, error) {
	c, ok := v.(*value.Cons)
	if !ok {
		return nil, errors.Errorf("%s: expected a cons, got %s", who, v.Repr())
	}
	return c, nil
}

func installList(def func(string, func([]value.Value) (value.Value, error))) {
	def("cons", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("cons: expected exactly 2 arguments")
		}
		return &value.Cons{Car: args[0], Cdr: args[1]}, nil
	})

	def("car", func(args []value.Value) (value.Value, error) {
		c, err := asCons(args[0], "car")
		if err != nil {
			return nil, err
		}
		return c.Car, nil
	})

	def("cdr", func(args []value.Value) (value.Value, error) {
		c, err := asCons(args[0], "cdr")
		if err != nil {
			return nil, err
		}
		return c.Cdr, nil
	})

	def("cadr", func(args []value.Value) (value.Value, error) {
		c, err := asCons(args[0], "cadr")
		if err != nil {
			return nil, err
		}
		c2, err := asCons(c.Cdr, "cadr")
		if err != nil {
			return nil, err
		}
		return c2.Car, nil
	})

	def("cddr", func(args []value.Value) (value.Value, error) {
		c, err := asCons(args[0], "cddr")
		if err != nil {
			return nil, err
		}
		c2, err := asCons(c.Cdr, "cddr")
		if err != nil {
			return nil, err
		}
		return c2.Cdr, nil
	})

	def("list", func(args []value.Value) (value.Value, error) {
		return value.NewList(args...), nil
	})

	def("len", func(args []value.Value) (value.Value, error) {
		items, ok := value.Slice(args[0])
		if !ok {
			return nil, errors.Errorf("len: expected a proper list, got %s", args[0].Repr())
		}
		return value.Int(len(items)), nil
	})

	def("last", func(args []value.Value) (value.Value, error) {
		items, ok := value.Slice(args[0])
		if !ok || len(items) == 0 {
			return nil, errors.Errorf("last: expected a non-empty proper list, got %s", args[0].Repr())
		}
		return items[len(items)-1], nil
	})

	// tail returns the final cons of the chain itself, not a copy, so that
	// (rplacd! (tail xs) ys) splices in place.
	def("tail", func(args []value.Value) (value.Value, error) {
		c, err := asCons(args[0], "tail")
		if err != nil {
			return nil, err
		}
		for {
			next, ok := c.Cdr.(*value.Cons)
			if !ok {
				return c, nil
			}
			c = next
		}
	})

	def("copy-list", func(args []value.Value) (value.Value, error) {
		items, ok := value.Slice(args[0])
		if !ok {
			return nil, errors.Errorf("copy-list: expected a proper list, got %s", args[0].Repr())
		}
		return value.NewList(items...), nil
	})

	def("reversed", func(args []value.Value) (value.Value, error) {
		items, ok := value.Slice(args[0])
		if !ok {
			return nil, errors.Errorf("reversed: expected a proper list, got %s", args[0].Repr())
		}
		out := make([]value.Value, len(items))
		for i, v := range items {
			out[len(items)-1-i] = v
		}
		return value.NewList(out...), nil
	})

	def("concat", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("concat: expected exactly 2 arguments")
		}
		a, ok := value.Slice(args[0])
		if !ok {
			return nil, errors.Errorf("concat: first argument is not a proper list: %s", args[0].Repr())
		}
		out := append(append([]value.Value{}, a...), valuesOf(args[1])...)
		return value.NewList(out...), nil
	})

	def("rplaca!", func(args []value.Value) (value.Value, error) {
		c, err := asCons(args[0], "rplaca!")
		if err != nil {
			return nil, err
		}
		c.Car = args[1]
		return c, nil
	})

	def("rplacd!", func(args []value.Value) (value.Value, error) {
		c, err := asCons(args[0], "rplacd!")
		if err != nil {
			return nil, err
		}
		c.Cdr = args[1]
		return c, nil
	})

	def("cons?", func(args []value.Value) (value.Value, error) {
		if _, ok := args[0].(*value.Cons); ok {
			return value.True, nil
		}
		return value.False, nil
	})

	def("empty?", func(args []value.Value) (value.Value, error) {
		if args[0] == value.Nil {
			return value.True, nil
		}
		return value.False, nil
	})
}

// valuesOf returns v's elements if v is a proper list, or []Value{v}
// otherwise. concat copies both of its arguments into a fresh proper list,
// so a second argument that is not a proper list becomes the result's last
// element rather than its tail: (concat (list 1) 2) is (1 2).
func valuesOf(v value.Value) []value.Value {
	if v == value.Nil {
		return nil
	}
	if items, ok := value.Slice(v); ok {
		return items
	}
	return []value.Value{v}
}
