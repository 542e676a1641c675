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

package vm_test

import (
	"testing"

	"github.com/hpoggie/gel/value"
	"github.com/hpoggie/gel/vm"
)

func block(ins ...value.Instruction) *value.Bytecode {
	return &value.Bytecode{Code: ins}
}

func ins(op value.Opcode, operand value.Value) value.Instruction {
	if operand == nil {
		operand = value.Nil
	}
	return value.Instruction{Op: op, Operand: operand}
}

func TestConsPopOrder(t *testing.T) {
	// (PUSH 1) (PUSH 2) (CONS) -> (2 . 1): CONS pops car from TOS first.
	b := block(
		ins(value.OpPush, value.Int(1)),
		ins(value.OpPush, value.Int(2)),
		ins(value.OpCons, nil),
	)
	got, err := vm.Run(b)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := &value.Cons{Car: value.Int(2), Cdr: value.Int(1)}
	if got.Repr() != want.Repr() {
		t.Errorf("got %s, want %s", got.Repr(), want.Repr())
	}
}

func TestPopDrops(t *testing.T) {
	b := block(
		ins(value.OpPush, value.Int(1)),
		ins(value.OpPush, value.Int(2)),
		ins(value.OpPop, nil),
	)
	got, err := vm.Run(b)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != value.Int(1) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestJmpSkipsForward(t *testing.T) {
	b := block(
		ins(value.OpJmp, value.Int(2)),
		ins(value.OpPush, value.Int(99)), // skipped
		ins(value.OpPush, value.Int(1)),
	)
	got, err := vm.Run(b)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != value.Int(1) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestJifFallsThroughOnFalse(t *testing.T) {
	b := block(
		ins(value.OpPush, value.False),
		ins(value.OpJif, value.Int(4)),
		ins(value.OpPush, value.Int(1)),
		ins(value.OpJmp, value.Int(6)),
		ins(value.OpPush, value.Int(2)), // target of JIF, skipped here
		ins(value.OpPop, nil),           // skipped too: JMP 6 ends the block
	)
	got, err := vm.Run(b)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != value.Int(1) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestCallReturn(t *testing.T) {
	// RET pops the Continuation that CALL pushed, so the callee must leave it
	// on top of the stack.
	callee := block(
		ins(value.OpPush, value.Int(42)),
		ins(value.OpPop, nil),
		ins(value.OpRet, nil),
	)
	caller := block(
		ins(value.OpCall, callee),
		ins(value.OpPush, value.Int(1)),
	)
	got, err := vm.Run(caller)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Control resumed in the caller past the CALL, and the Continuation is
	// gone, so the caller's own PUSH is the only value left.
	if got != value.Int(1) {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestCallBuiltin(t *testing.T) {
	double := value.NewBuiltin("double", func(args []value.Value) (value.Value, error) {
		return args[0].(value.Int) * 2, nil
	})
	b := block(
		ins(value.OpPush, value.Nil),
		ins(value.OpPush, value.Int(21)),
		ins(value.OpCons, nil), // car 21 from top of stack: (21 . nil) == (21)
		ins(value.OpCallBuiltin, double),
	)
	got, err := vm.Run(b)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != value.Int(42) {
		t.Errorf("got %v, want 42", got)
	}
}

func TestStackOverflow(t *testing.T) {
	ops := make([]value.Instruction, 0, 10)
	for i := 0; i < 10; i++ {
		ops = append(ops, ins(value.OpPush, value.Int(i)))
	}
	b := block(ops...)
	_, err := vm.Run(b, vm.WithMaxStack(5))
	if err == nil {
		t.Fatal("expected stack overflow error")
	}
}
