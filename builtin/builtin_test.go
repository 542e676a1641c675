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

package builtin_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hpoggie/gel/builtin"
	"github.com/hpoggie/gel/eval"
	"github.com/hpoggie/gel/gelenv"
	"github.com/hpoggie/gel/reader"
	"github.com/hpoggie/gel/value"
)

func newEnv(stdout *bytes.Buffer, stdin string) *gelenv.Environment {
	env := gelenv.New()
	builtin.Install(env, builtin.Options{Stdout: stdout, Stdin: strings.NewReader(stdin)})
	return env
}

func evalString(t *testing.T, env *gelenv.Environment, src string) value.Value {
	t.Helper()
	form, err := reader.ReadOne(src)
	if err != nil {
		t.Fatalf("ReadOne(%q): %v", src, err)
	}
	v, err := eval.New().Eval(form, env)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v
}

func evalErr(t *testing.T, env *gelenv.Environment, src string) error {
	t.Helper()
	form, err := reader.ReadOne(src)
	if err != nil {
		t.Fatalf("ReadOne(%q): %v", src, err)
	}
	_, err = eval.New().Eval(form, env)
	return err
}

func TestNumericAndComparison(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	cases := []struct {
		src  string
		want value.Value
	}{
		{"(+ 1 2 3)", value.Int(6)},
		{"(- 10 3 2)", value.Int(5)},
		{"(- 5)", value.Int(-5)},
		{"(* 2 3 4)", value.Int(24)},
		{"(// 7 2)", value.Int(3)},
		{"(% 7 2)", value.Int(1)},
		{"(< 1 2 3)", value.True},
		{"(< 1 3 2)", value.False},
		{"(> 3 2 1)", value.True},
		{"(= 1 1 1)", value.True},
		{"(= 1 2)", value.False},
	}
	for _, c := range cases {
		if got := evalString(t, env, c.src); got != c.want {
			t.Errorf("%s = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestIntegerOverflowRaises(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	if err := evalErr(t, env, "(+ INT_MAX 1)"); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestDivisionByZeroRaises(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	if err := evalErr(t, env, "(// 1 0)"); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestListOperations(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	cases := []struct {
		src  string
		want string
	}{
		{"(cons 1 2)", "(1 . 2)"},
		{"(car (cons 1 2))", "1"},
		{"(cdr (cons 1 2))", "2"},
		{"(cadr (list 1 2 3))", "2"},
		{"(cddr (list 1 2 3))", "(3)"},
		{"(last (list 1 2 3))", "3"},
		{"(tail (list 1 2 3))", "(3)"},
		{"(reversed (list 1 2 3))", "(3 2 1)"},
		{"(concat (list 1 2) (list 3 4))", "(1 2 3 4)"},
		{"(len (list 1 2 3))", "3"},
		{"(cons? (cons 1 2))", "true"},
		{"(cons? 1)", "false"},
		{"(empty? nil)", "true"},
		{"(empty? (list 1))", "false"},
	}
	for _, c := range cases {
		if got := evalString(t, env, c.src); got.Repr() != c.want {
			t.Errorf("%s = %s, want %s", c.src, got.Repr(), c.want)
		}
	}
}

func TestRplacaRplacdMutateInPlace(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, "(-def-internal! (quote pair) (cons 1 2))")
	evalString(t, env, "(rplaca! pair 9)")
	got := evalString(t, env, "pair")
	if got.Repr() != "(9 . 2)" {
		t.Errorf("got %s, want (9 . 2)", got.Repr())
	}
	evalString(t, env, "(rplacd! pair 8)")
	got = evalString(t, env, "pair")
	if got.Repr() != "(9 . 8)" {
		t.Errorf("got %s, want (9 . 8)", got.Repr())
	}
}

func TestMapOperations(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! (quote m) (make-map "a" 1 "b" 2))`)
	if got := evalString(t, env, `(map-get m "a")`); got != value.Int(1) {
		t.Errorf("map-get a = %v, want 1", got)
	}
	if err := evalErr(t, env, `(map-get m "missing")`); err == nil {
		t.Fatal("expected map-get on a missing key to raise")
	}
	evalString(t, env, `(map-set m "c" 3)`)
	if got := evalString(t, env, `(map-get m "c")`); got != value.Int(3) {
		t.Errorf("map-get c = %v, want 3", got)
	}
}

func TestStringBuiltins(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	if got := evalString(t, env, `(strcat "foo" "bar")`); got.Repr() != `"foobar"` {
		t.Errorf("strcat = %s", got.Repr())
	}
	if got := evalString(t, env, `(str= "a" "a")`); got != value.True {
		t.Errorf("str= = %v, want true", got)
	}
	if got := evalString(t, env, `(repr "a")`); got.Repr() != `"\"a\""` {
		t.Errorf("repr = %s", got.Repr())
	}
	if got := evalString(t, env, `(str 42)`); got.Repr() != `"42"` {
		t.Errorf("str = %s", got.Repr())
	}
}

func TestPrnWritesToStdoutWithNewline(t *testing.T) {
	var buf bytes.Buffer
	env := newEnv(&buf, "")
	evalString(t, env, `(prn "hi" 1)`)
	if buf.String() != "hi 1\n" {
		t.Errorf("stdout = %q, want %q", buf.String(), "hi 1\n")
	}
}

func TestPutWritesWithoutNewline(t *testing.T) {
	var buf bytes.Buffer
	env := newEnv(&buf, "")
	evalString(t, env, `(put "hi")`)
	if buf.String() != "hi" {
		t.Errorf("stdout = %q, want %q", buf.String(), "hi")
	}
}

func TestInputReadsOneLine(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "line one\nline two\n")
	if got := evalString(t, env, `(input)`); got.Repr() != `"line one"` {
		t.Errorf("input = %s", got.Repr())
	}
	if got := evalString(t, env, `(input)`); got.Repr() != `"line two"` {
		t.Errorf("input = %s", got.Repr())
	}
}

func TestReadStringParsesOneForm(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	got := evalString(t, env, `(read-string "(1 2 3)")`)
	if got.Repr() != "(1 2 3)" {
		t.Errorf("got %s, want (1 2 3)", got.Repr())
	}
}

func TestReflectionBuiltins(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	if got := evalString(t, env, `(type 1)`); got.Repr() != "int" {
		t.Errorf("type = %s", got.Repr())
	}
	if got := evalString(t, env, `(is-builtin? car)`); got != value.True {
		t.Errorf("is-builtin? = %v, want true", got)
	}
	if got := evalString(t, env, `(defined? (quote car))`); got != value.True {
		t.Errorf("defined? car = %v, want true", got)
	}
	if got := evalString(t, env, `(defined? (quote nonexistent))`); got != value.False {
		t.Errorf("defined? nonexistent = %v, want false", got)
	}
	evalString(t, env, `(-def-internal! (quote f) (fn (x) x))`)
	evalString(t, env, `(set-function-name! f "named")`)
	if got := evalString(t, env, `(get-function-name f)`); got.Repr() != `"named"` {
		t.Errorf("get-function-name = %s", got.Repr())
	}
}

func TestDefInternalDefinesGlobally(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! (quote answer) 42)`)
	if got := evalString(t, env, `answer`); got != value.Int(42) {
		t.Errorf("answer = %v, want 42", got)
	}
}

func TestEvalBuiltinReentersEvaluator(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	got := evalString(t, env, `(eval (read-string "(+ 1 2)"))`)
	if got != value.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestMapcarPreservesCallOrder(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! (quote log) nil)`)
	evalString(t, env, `(-def-internal! (quote record) (fn (x) (set log (concat log (list x))) x))`)
	evalString(t, env, `(mapcar record (list 1 2 3))`)
	got := evalString(t, env, "log")
	if got.Repr() != "(1 2 3)" {
		t.Errorf("call order = %s, want (1 2 3)", got.Repr())
	}
}

func TestThrowAndTryRoundTrip(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	got := evalString(t, env, `(try (throw "oops") e e)`)
	if got.Repr() != `"oops"` {
		t.Errorf("got %s, want \"oops\"", got.Repr())
	}
}

func TestAssertRaisesOnFalse(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	if err := evalErr(t, env, `(assert false "nope")`); err == nil {
		t.Fatal("expected assert to raise")
	}
	got := evalString(t, env, `(assert true "nope")`)
	if got != value.True {
		t.Errorf("got %v, want true", got)
	}
}

func TestGensymProducesDistinctSymbols(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	a := evalString(t, env, `(gensym)`)
	b := evalString(t, env, `(gensym)`)
	if a.Repr() == b.Repr() {
		t.Errorf("gensym produced the same symbol twice: %s", a.Repr())
	}
}

func TestAssembleRunBytecodeDisassemble(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! (quote b) (assemble (list (list (quote PUSH) 1) (list (quote PUSH) 2) (list (quote CONS)))))`)
	got := evalString(t, env, `(run-bytecode b)`)
	if got.Repr() != "(2 . 1)" {
		t.Errorf("run-bytecode = %s, want (2 . 1)", got.Repr())
	}
	dis := evalString(t, env, `(disassemble b)`)
	want := "PUSH 1\nPUSH 2\nCONS"
	if string(dis.(value.String)) != want {
		t.Errorf("disassemble = %q, want %q", dis, want)
	}
}

func TestMakeMacroMarksMacroFlag(t *testing.T) {
	env := newEnv(&bytes.Buffer{}, "")
	evalString(t, env, `(-def-internal! (quote m) nil)`)
	evalString(t, env, `(set m (-make-macro! (fn (x) (quasiquote (quote (unquote x))))))`)
	got := evalString(t, env, `(m (+ 1 2))`)
	if got.Repr() != "(+ 1 2)" {
		t.Errorf("got %s, want (+ 1 2)", got.Repr())
	}
}
