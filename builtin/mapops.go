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

func installMap(def func(string, func([]value.Value) (value.Value, error))) {
	def("make-map", func(args []value.Value) (value.Value, error) {
		if len(args)%2 != 0 {
			return nil, errors.New("make-map: expected an even number of arguments")
		}
		m := value.NewMap()
		for i := 0; i < len(args); i += 2 {
			m.Set(args[i], args[i+1])
		}
		return m, nil
	})

	def("map-get", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("map-get: expected exactly 2 arguments")
		}
		m, ok := args[0].(*value.Map)
		if !ok {
			return nil, errors.Errorf("map-get: expected a map, got %s", args[0].Repr())
		}
		v, ok := m.Get(args[1])
		if !ok {
			return nil, errors.Errorf("map-get: key not found: %s", args[1].Repr())
		}
		return v, nil
	})

	def("map-set", func(args []value.Value) (value.Value, error) {
		if len(args) != 3 {
			return nil, errors.New("map-set: expected exactly 3 arguments")
		}
		m, ok := args[0].(*value.Map)
		if !ok {
			return nil, errors.Errorf("map-set: expected a map, got %s", args[0].Repr())
		}
		m.Set(args[1], args[2])
		return m, nil
	})
}
