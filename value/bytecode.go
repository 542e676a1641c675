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

// Opcode is the tag of one VM instruction. The VM executes against a single
// operand stack plus a current (block, pc) pair.
type Opcode int

const (
	OpPush Opcode = iota
	OpCons
	OpCallBuiltin
	OpCall
	OpRet
	OpPop
	OpJif
	OpJmp
)

var opcodeNames = [...]string{
	OpPush:        "PUSH",
	OpCons:        "CONS",
	OpCallBuiltin: "CALL_BUILTIN",
	OpCall:        "CALL",
	OpRet:         "RET",
	OpPop:         "POP",
	OpJif:         "JIF",
	OpJmp:         "JMP",
}

func (o Opcode) String() string {
	if int(o) < 0 || int(o) >= len(opcodeNames) {
		return "???"
	}
	return opcodeNames[o]
}

// OpcodeByName looks an opcode up by its assembly mnemonic, for `assemble`.
func OpcodeByName(name string) (Opcode, bool) {
	for i, n := range opcodeNames {
		if n == name {
			return Opcode(i), true
		}
	}
	return 0, false
}

// takesOperand reports whether an instruction of this opcode carries an
// operand cell (PUSH v, CALL_BUILTIN f, CALL b, JIF addr, JMP addr do;
// CONS, RET, POP do not).
func (o Opcode) takesOperand() bool {
	switch o {
	case OpCons, OpRet, OpPop:
		return false
	default:
		return true
	}
}

// TakesOperand exposes takesOperand to other packages (asm).
func (o Opcode) TakesOperand() bool { return o.takesOperand() }

// Instruction is one opcode plus its (possibly Nil) operand.
type Instruction struct {
	Op      Opcode
	Operand Value
}

// Bytecode is an ordered, immutable-after-construction sequence of
// instructions, produced by `assemble` and consumed by `run-bytecode`.
type Bytecode struct {
	Code []Instruction
}

func (*Bytecode) Kind() Kind   { return KindBytecode }
func (*Bytecode) Repr() string { return "#<bytecode>" }

// Continuation captures a bytecode block and a program counter within it, so
// that CALL/RET can implement function call/return without a native Go call
// stack.
type Continuation struct {
	Block *Bytecode
	PC    int
}

func (*Continuation) Kind() Kind   { return KindContinuation }
func (*Continuation) Repr() string { return "#<continuation>" }
