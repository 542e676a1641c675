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

// Package vm implements gel's bytecode virtual machine: a small stack
// machine with an opcode set sufficient to implement function call/return
// via explicit continuations, reachable from gel source via `assemble` and
// `run-bytecode`.
//
// The VM operates on a single operand stack of boxed value.Value; CALL/RET
// share that one stack with ordinary operands, pushing and popping explicit
// Continuation values rather than keeping a separate return stack.
package vm

import (
	"github.com/pkg/errors"

	"github.com/hpoggie/gel/value"
)

// MaxStack is the compile-time fixed maximum operand stack depth.
const MaxStack = 1024

// Option configures an Instance at construction time.
type Option func(*Instance)

// WithContext supplies the evaluator Context that CALL_BUILTIN hands to
// contextual built-ins (e.g. a builtin that itself wants to `eval`).
func WithContext(ctx value.Context) Option {
	return func(i *Instance) { i.ctx = ctx }
}

// WithMaxStack overrides the default stack depth limit.
func WithMaxStack(n int) Option {
	return func(i *Instance) { i.maxStack = n }
}

// Instance is one run of the VM over a bytecode block.
type Instance struct {
	stack    []value.Value
	block    *value.Bytecode
	pc       int
	ctx      value.Context
	maxStack int
}

// New creates an Instance ready to run block.
func New(block *value.Bytecode, opts ...Option) *Instance {
	i := &Instance{block: block, maxStack: MaxStack}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Instance) push(v value.Value) error {
	if len(i.stack) >= i.maxStack {
		return errors.Errorf("bytecode stack overflow (max %d)", i.maxStack)
	}
	i.stack = append(i.stack, v)
	return nil
}

func (i *Instance) pop() (value.Value, error) {
	if len(i.stack) == 0 {
		return nil, errors.New("bytecode stack underflow")
	}
	v := i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]
	return v, nil
}

// Run executes the VM from the start of its current block until control
// falls off the end of whichever block is current (a callee block that ends
// without RET ends the whole run, pending Continuation or not), and returns the value at the bottom of the operand stack (value.Nil if the
// stack is empty), per run-bytecode's documented contract.
func (i *Instance) Run() (value.Value, error) {
	for i.pc < len(i.block.Code) {
		ins := i.block.Code[i.pc]
		if err := i.step(ins); err != nil {
			return nil, err
		}
	}
	if len(i.stack) == 0 {
		return value.Nil, nil
	}
	return i.stack[0], nil
}

func (i *Instance) step(ins value.Instruction) error {
	switch ins.Op {
	case value.OpPush:
		if err := i.push(ins.Operand); err != nil {
			return err
		}
		i.pc++
	case value.OpCons:
		car, err := i.pop()
		if err != nil {
			return err
		}
		cdr, err := i.pop()
		if err != nil {
			return err
		}
		if err := i.push(&value.Cons{Car: car, Cdr: cdr}); err != nil {
			return err
		}
		i.pc++
	case value.OpCallBuiltin:
		fn, ok := ins.Operand.(*value.BuiltinFn)
		if !ok {
			return errors.Errorf("CALL_BUILTIN operand is not a builtin: %v", ins.Operand)
		}
		argList, err := i.pop()
		if err != nil {
			return err
		}
		args, ok := value.Slice(argList)
		if !ok {
			return errors.Errorf("CALL_BUILTIN argument is not a proper list: %s", argList.Repr())
		}
		result, err := fn.Call(args, i.ctx)
		if err != nil {
			return err
		}
		if err := i.push(result); err != nil {
			return err
		}
		i.pc++
	case value.OpCall:
		block, ok := ins.Operand.(*value.Bytecode)
		if !ok {
			return errors.Errorf("CALL operand is not bytecode: %v", ins.Operand)
		}
		if err := i.push(&value.Continuation{Block: i.block, PC: i.pc}); err != nil {
			return err
		}
		i.block, i.pc = block, 0
	case value.OpRet:
		top, err := i.pop()
		if err != nil {
			return err
		}
		cont, ok := top.(*value.Continuation)
		if !ok {
			return errors.Errorf("RET expects a continuation on top of stack, got %v", top)
		}
		i.block, i.pc = cont.Block, cont.PC+1
	case value.OpPop:
		if _, err := i.pop(); err != nil {
			return err
		}
		i.pc++
	case value.OpJif:
		cond, err := i.pop()
		if err != nil {
			return err
		}
		addr, ok := ins.Operand.(value.Int)
		if !ok {
			return errors.Errorf("JIF operand is not an integer address: %v", ins.Operand)
		}
		if value.IsTruthy(cond) {
			i.pc = int(addr)
		} else {
			i.pc++
		}
	case value.OpJmp:
		addr, ok := ins.Operand.(value.Int)
		if !ok {
			return errors.Errorf("JMP operand is not an integer address: %v", ins.Operand)
		}
		i.pc = int(addr)
	default:
		return errors.Errorf("unknown opcode %v", ins.Op)
	}
	return nil
}

// Run is a convenience wrapper equivalent to New(block, opts...).Run(),
// matching the language-level `run-bytecode` built-in's one-shot contract.
func Run(block *value.Bytecode, opts ...Option) (value.Value, error) {
	return New(block, opts...).Run()
}
