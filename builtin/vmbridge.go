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

	"github.com/hpoggie/gel/asm"
	"github.com/hpoggie/gel/value"
	"github.com/hpoggie/gel/vm"
)

func installVM(
	def func(string, func([]value.Value) (value.Value, error)),
	defCtx func(string, func([]value.Value, value.Context) (value.Value, error)),
) {
	def("assemble", func(args []value.Value) (value.Value, error) {
		return asm.Assemble(args[0])
	})

	def("disassemble", func(args []value.Value) (value.Value, error) {
		b, ok := args[0].(*value.Bytecode)
		if !ok {
			return nil, notBytecode(args[0])
		}
		return value.String(asm.Disassemble(b)), nil
	})

	defCtx("run-bytecode", func(args []value.Value, ctx value.Context) (value.Value, error) {
		b, ok := args[0].(*value.Bytecode)
		if !ok {
			return nil, notBytecode(args[0])
		}
		return vm.Run(b, vm.WithContext(ctx))
	})
}

func notBytecode(v value.Value) error {
	return errors.Errorf("expected a bytecode object, got %s", v.Repr())
}
