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

// Package gelerr implements gel's single raise channel: reader errors,
// evaluation errors and built-in ("lisp") errors are distinguished only for
// diagnostics -- `try` catches all three alike.
package gelerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hpoggie/gel/value"
)

// Kind names which of the three raise kinds produced an Error.
type Kind int

const (
	ReaderError Kind = iota
	EvalError
	LispError
)

func (k Kind) String() string {
	switch k {
	case ReaderError:
		return "reader_error"
	case EvalError:
		return "eval_error"
	case LispError:
		return "lisp_error"
	default:
		return "error"
	}
}

// Error is the single concrete raised-error type. It carries a payload
// value (what `try` binds its handler variable to) and a snapshot of the
// call stack at the point of the raise, plus a wrapped Go error (so
// fmt.Sprintf("%+v", err) gives a stack trace in -debug mode via
// github.com/pkg/errors).
type Error struct {
	Kind    Kind
	Payload value.Value
	Stack   []value.Frame
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Payload.Repr())
}

// Cause implements github.com/pkg/errors's Causer, so errors.Cause(err) and
// the %+v stack-trace formatting work on wrapped gel errors.
func (e *Error) Cause() error { return e.cause }

// Format implements fmt.Formatter so that "%+v" also prints the gel call
// stack below the Go stack trace of the wrapped cause.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s: %s", e.Kind, e.Payload.Repr())
			if e.cause != nil {
				fmt.Fprintf(s, "\n%+v", e.cause)
			}
			fmt.Fprint(s, "\n"+e.StackTrace())
			return
		}
		fmt.Fprint(s, e.Error())
	default:
		fmt.Fprint(s, e.Error())
	}
}

// StackTrace renders the captured gel call stack, innermost frame first, in
// the format the top-level REPL prints after "Unhandled error: <repr>".
func (e *Error) StackTrace() string {
	if len(e.Stack) == 0 {
		return "  (no call stack)"
	}
	var b strings.Builder
	for _, f := range e.Stack {
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		fmt.Fprintf(&b, "  at %s: %s\n", name, f.Form.Repr())
	}
	return strings.TrimRight(b.String(), "\n")
}

// New creates a new Error of the given kind with the given payload and call
// stack snapshot.
func New(kind Kind, payload value.Value, stack []value.Frame) *Error {
	return &Error{Kind: kind, Payload: payload, Stack: stack}
}

// Wrap creates a new Error whose payload is a value.String built from
// cause's message, preserving cause as the wrapped stack-traced error.
func Wrap(kind Kind, cause error, stack []value.Frame) *Error {
	return &Error{Kind: kind, Payload: value.String(cause.Error()), Stack: stack, cause: errors.WithStack(cause)}
}

// Wrapf is Wrap with a formatted message prefix, mirroring
// github.com/pkg/errors.Wrapf's signature.
func Wrapf(kind Kind, cause error, stack []value.Frame, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Kind:    kind,
		Payload: value.String(msg + ": " + cause.Error()),
		Stack:   stack,
		cause:   errors.Wrapf(cause, format, args...),
	}
}

// Errorf creates a new Error of the given kind whose payload is the
// formatted message as a value.String, with no wrapped cause.
func Errorf(kind Kind, stack []value.Frame, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Payload: value.String(fmt.Sprintf(format, args...)), Stack: stack}
}

// As reports whether err is (or wraps) a *Error, mirroring errors.As.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
