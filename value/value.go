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

// Package value implements gel's closed family of runtime values: nil,
// booleans, integers, symbols, strings, cons cells, maps, functions,
// compiled bytecode and VM continuations.
//
// All values are referred to by a shared handle (a Go interface value, ptr
// for mutable/large variants, plain value for small immutable ones). Cons
// cells and maps are mutable in place; every other variant is immutable
// after construction.
package value

import (
	"hash/fnv"
	"math"

	"github.com/pkg/errors"
)

// Kind tags a Value's variant. Most dispatch uses Go type assertions
// directly; Kind exists mainly so built-ins like `type` can report a
// variant name without a long type switch of their own.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindSymbol
	KindString
	KindCons
	KindMap
	KindBuiltinFn
	KindUserFn
	KindBytecode
	KindContinuation
)

var kindNames = [...]string{
	KindNil:          "nil",
	KindBool:         "bool",
	KindInt:          "int",
	KindSymbol:       "symbol",
	KindString:       "string",
	KindCons:         "cons",
	KindMap:          "map",
	KindBuiltinFn:    "builtin",
	KindUserFn:       "fn",
	KindBytecode:     "bytecode",
	KindContinuation: "continuation",
}

func (k Kind) String() string { return kindNames[k] }

// Value is the handle shared by every holder of a gel value.
type Value interface {
	Kind() Kind
	// Repr renders the value the way the reader would need to re-parse it
	// (quoting strings, printing dotted tails for improper lists). Map keys
	// are hashed and compared by Repr, per the data model's invariant.
	Repr() string
}

// Nil is the singleton empty-list/null value. Equality with Nil is always
// pointer-equal because there is exactly one nilValue in the process.
type nilValue struct{}

func (nilValue) Kind() Kind   { return KindNil }
func (nilValue) Repr() string { return "nil" }

// Nil is the process-wide Nil singleton.
var Nil Value = nilValue{}

// Bool wraps a boolean. True and False below are the conventional
// singletons; nothing stops a caller from constructing another Bool(x), but
// equals() compares by payload so that is harmless.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) Repr() string {
	if b {
		return "true"
	}
	return "false"
}

// True and False are the two canonical boolean singletons.
var (
	True  Value = Bool(true)
	False Value = Bool(false)
)

// IsTruthy implements the "false branch fires exactly when Nil or False"
// rule used throughout the evaluator: every other value, including 0 and
// the empty string, is truthy.
func IsTruthy(v Value) bool {
	if v == Nil || v == False {
		return false
	}
	return true
}

// Int is a signed, fixed-width, overflow-checked integer.
type Int int64

func (Int) Kind() Kind     { return KindInt }
func (i Int) Repr() string { return intRepr(int64(i)) }

// MaxInt and MinInt are the bounds checked arithmetic and the reader must
// respect (the INT_MAX/INT_MIN globals read these).
const (
	MaxInt Int = math.MaxInt64
	MinInt Int = math.MinInt64
)

// AddInt, SubInt, MulInt and DivModInt perform checked arithmetic, returning
// an error (to be wrapped into a lisp_error by the caller) on overflow,
// underflow or division by zero.
func AddInt(a, b Int) (Int, error) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, errors.Errorf("integer overflow: %d + %d", a, b)
	}
	return r, nil
}

func SubInt(a, b Int) (Int, error) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, errors.Errorf("integer overflow: %d - %d", a, b)
	}
	return r, nil
}

func MulInt(a, b Int) (Int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a == MinInt && b == -1 || b == MinInt && a == -1 {
		return 0, errors.Errorf("integer overflow: %d * %d", a, b)
	}
	r := a * b
	if r/b != a {
		return 0, errors.Errorf("integer overflow: %d * %d", a, b)
	}
	return r, nil
}

func DivModInt(a, b Int) (q, m Int, err error) {
	if b == 0 {
		return 0, 0, errors.New("division by zero")
	}
	if a == MinInt && b == -1 {
		return 0, 0, errors.Errorf("integer overflow: %d // %d", a, b)
	}
	return a / b, a % b, nil
}

// Symbol is an interned printable name. Symbols have no documented equality
// relation of their own: they are used as map keys via their Repr, like
// everything else.
type Symbol string

func (Symbol) Kind() Kind     { return KindSymbol }
func (s Symbol) Repr() string { return string(s) }

// String is a byte sequence compared and hashed by value.
type String string

func (String) Kind() Kind { return KindString }

// Repr quotes s and escapes each `"` as `\"`; backslashes are written as-is.
// A string in which a quote follows an odd run of backslashes, or which ends
// in one, therefore does not re-read to the same value.
func (s String) Repr() string {
	return `"` + escapeString(string(s)) + `"`
}

func escapeString(s string) string {
	out := make([]byte, 0, len(s)+2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			out = append(out, '\\', '"')
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// Cons is a mutable pair. A proper list is Nil or a Cons whose Cdr is a
// proper list; rplaca!/rplacd! may introduce cycles or improper tails.
type Cons struct {
	Car Value
	Cdr Value
}

func (*Cons) Kind() Kind { return KindCons }

// Repr recurses through the list/tree, printing a dotted tail for improper
// lists. It does not detect cycles: a cyclic list built with rplacd! will
// make Repr loop forever.
func (c *Cons) Repr() string {
	var b []byte
	b = append(b, '(')
	b = appendConsRepr(b, c)
	b = append(b, ')')
	return string(b)
}

func appendConsRepr(b []byte, c *Cons) []byte {
	b = append(b, c.Car.Repr()...)
	switch cdr := c.Cdr.(type) {
	case nilValue:
		return b
	case *Cons:
		b = append(b, ' ')
		return appendConsRepr(b, cdr)
	default:
		b = append(b, " . "...)
		b = append(b, cdr.Repr()...)
		return b
	}
}

// NewList builds a proper list from the given values, last one first.
func NewList(vs ...Value) Value {
	var out Value = Nil
	for i := len(vs) - 1; i >= 0; i-- {
		out = &Cons{Car: vs[i], Cdr: out}
	}
	return out
}

// Slice collects a proper list into a Go slice. ok is false if v is not a
// proper list.
func Slice(v Value) (out []Value, ok bool) {
	for {
		switch t := v.(type) {
		case nilValue:
			return out, true
		case *Cons:
			out = append(out, t.Car)
			v = t.Cdr
		default:
			return out, false
		}
	}
}

// Map is an identity-compared mutable mapping keyed by Repr text.
type Map struct {
	entries map[string]mapEntry
	order   []string // insertion order, for deterministic repr
}

type mapEntry struct {
	key Value
	val Value
}

func NewMap() *Map {
	return &Map{entries: make(map[string]mapEntry)}
}

func (*Map) Kind() Kind { return KindMap }

func (m *Map) Repr() string {
	b := []byte("(make-map")
	for _, k := range m.order {
		e := m.entries[k]
		b = append(b, ' ')
		b = append(b, e.key.Repr()...)
		b = append(b, ' ')
		b = append(b, e.val.Repr()...)
	}
	b = append(b, ')')
	return string(b)
}

// Get looks a key up by its Repr text.
func (m *Map) Get(key Value) (Value, bool) {
	e, ok := m.entries[key.Repr()]
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Set stores key/val, keyed by key's Repr text.
func (m *Map) Set(key, val Value) {
	k := key.Repr()
	if _, exists := m.entries[k]; !exists {
		m.order = append(m.order, k)
	}
	m.entries[k] = mapEntry{key: key, val: val}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.order) }

// Equals compares ints, strings and conses structurally and everything else
// by identity: functions, maps and bytecode are equal only to themselves.
func Equals(a, b Value) bool {
	if a == b {
		return true
	}
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Cons:
		bv, ok := b.(*Cons)
		if !ok {
			return false
		}
		return Equals(av.Car, bv.Car) && Equals(av.Cdr, bv.Cdr)
	default:
		return false
	}
}

// Hash hashes a value by its textual Repr, per the data model's map-key
// invariant: symbols, strings and integers that print the same must hash
// the same.
func Hash(v Value) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(v.Repr()))
	return h.Sum64()
}

func intRepr(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	var buf [24]byte
	i := len(buf)
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
