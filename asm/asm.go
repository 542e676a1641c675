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

// Package asm implements gel's `assemble` built-in: it turns a gel list of
// `(OPCODE)` / `(OPCODE OPERAND)` forms into a value.Bytecode.
//
// assemble takes an already-read, already-evaluated list value rather than
// raw assembly text, so there is no tokenizer and no label resolution --
// operands are just ordinary values (an Int for jump addresses, a
// *value.BuiltinFn for CALL_BUILTIN, a *value.Bytecode for CALL).
package asm

import (
	"github.com/pkg/errors"

	"github.com/hpoggie/gel/value"
)

// Assemble compiles a gel list of instruction forms into a Bytecode object.
// Each element of list must itself be a proper list: (OPCODE) for a
// zero-operand instruction (CONS, RET, POP) or (OPCODE OPERAND) for the
// rest. OPCODE is a Symbol naming one of the VM's opcodes.
func Assemble(list value.Value) (*value.Bytecode, error) {
	forms, ok := value.Slice(list)
	if !ok {
		return nil, errors.Errorf("assemble: argument is not a proper list: %s", list.Repr())
	}
	code := make([]value.Instruction, 0, len(forms))
	for n, form := range forms {
		ins, err := assembleOne(form)
		if err != nil {
			return nil, errors.Wrapf(err, "assemble: instruction %d", n)
		}
		code = append(code, ins)
	}
	return &value.Bytecode{Code: code}, nil
}

func assembleOne(form value.Value) (value.Instruction, error) {
	items, ok := value.Slice(form)
	if !ok || len(items) == 0 {
		return value.Instruction{}, errors.Errorf("not a valid instruction form: %s", form.Repr())
	}
	sym, ok := items[0].(value.Symbol)
	if !ok {
		return value.Instruction{}, errors.Errorf("opcode is not a symbol: %s", items[0].Repr())
	}
	op, ok := value.OpcodeByName(string(sym))
	if !ok {
		return value.Instruction{}, errors.Errorf("unknown opcode: %s", sym)
	}
	switch {
	case op.TakesOperand() && len(items) != 2:
		return value.Instruction{}, errors.Errorf("%s requires exactly one operand", sym)
	case !op.TakesOperand() && len(items) != 1:
		return value.Instruction{}, errors.Errorf("%s takes no operand", sym)
	}
	operand := value.Value(value.Nil)
	if op.TakesOperand() {
		operand = items[1]
	}
	return value.Instruction{Op: op, Operand: operand}, nil
}

// Disassemble renders b's instructions one per line as "OPCODE operand"
// (operand omitted for opcodes that don't take one). Exposed to gel as the
// `disassemble` built-in.
func Disassemble(b *value.Bytecode) string {
	var out []byte
	for n, ins := range b.Code {
		out = append(out, ins.Op.String()...)
		if ins.Op.TakesOperand() {
			out = append(out, ' ')
			out = append(out, ins.Operand.Repr()...)
		}
		if n != len(b.Code)-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}
