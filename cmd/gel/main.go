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

// Command gel is the read-eval-print entry point for the language: it wires
// a fresh environment, runs the three startup forms that bootstrap
// `progn`/`load-file` and load boot.gel, then either evaluates a single -e
// expression or drops into an interactive loop.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/hpoggie/gel/builtin"
	"github.com/hpoggie/gel/eval"
	"github.com/hpoggie/gel/gelenv"
	"github.com/hpoggie/gel/gelerr"
	"github.com/hpoggie/gel/reader"
	"github.com/hpoggie/gel/value"
)

var (
	bootPath  string
	evalExpr  string
	colorMode string
	debug     bool
)

func init() {
	flag.StringVar(&bootPath, "boot", "boot.gel", "bootstrap file `path` to load at startup")
	flag.StringVar(&evalExpr, "e", "", "evaluate `expr` and exit instead of entering the REPL")
	flag.StringVar(&colorMode, "color", "auto", "colorize output: auto, always, or never")
	flag.BoolVar(&debug, "debug", false, "print the Go stack trace wrapped inside an unhandled error")
}

func setColorMode() {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		// color's own isatty check, left as the package default.
	default:
		fmt.Fprintf(os.Stderr, "gel: -color must be auto, always, or never, got %q\n", colorMode)
		os.Exit(2)
	}
}

// startupForms are the three forms program startup must evaluate in order;
// their text is part of the interface contract with boot.gel.
func startupForms() []string {
	return []string{
		`(-def-internal! 'progn (fn (&rest forms) (if (empty? forms) nil (last forms))))`,
		`(-def-internal! 'load-file (fn (path) (eval (read-string "(progn \n" (slurp path) "\nnil)"))))`,
		fmt.Sprintf(`(load-file %s)`, value.String(bootPath).Repr()),
	}
}

func runStartup(ev *eval.Evaluator, env value.Env) error {
	for _, src := range startupForms() {
		form, err := reader.ReadOne(src)
		if err != nil {
			return gelerr.Wrap(gelerr.ReaderError, err, nil)
		}
		if _, err := ev.Eval(form, env); err != nil {
			return err
		}
	}
	return nil
}

// breakpoint is the default `(break)` debugger hook: it prints the
// form about to run and blocks for one line of input, treating "c" as
// "disengage the hook and run to completion" and anything else as "single
// step to the next form".
func breakpoint(ev *eval.Evaluator, form value.Value, env value.Env) error {
	fmt.Fprintf(os.Stderr, "break> %s\n", form.Repr())
	line, err := readLine(os.Stdin)
	if err != nil && err != io.EOF {
		return err
	}
	if strings.TrimSpace(line) == "c" {
		ev.SetDebug(false)
	}
	return nil
}

func readLine(r io.Reader) (string, error) {
	var b []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return string(b), nil
			}
			b = append(b, buf[0])
		}
		if err != nil {
			return string(b), err
		}
	}
}

// newEvaluator wires the two-frame startup environment: the outermost
// frame holds the built-in table, and a fresh empty frame above it is the
// environment the startup forms, -e and the REPL evaluate in. Definitions
// made with -def-internal! still land in the outermost frame.
func newEvaluator() (*eval.Evaluator, value.Env) {
	builtins := gelenv.New()
	builtin.Install(builtins, builtin.Options{Stdout: os.Stdout, Stdin: os.Stdin})
	env := builtins.Child()
	ev := eval.New()
	ev.Breaker = breakpoint
	return ev, env
}

// printUnhandled renders an uncaught error: the payload repr, then the gel
// call-stack trace, with -debug additionally appending the wrapped Go stack
// trace via "%+v".
func printUnhandled(err error) {
	banner := color.New(color.FgRed, color.Bold)
	gerr, ok := gelerr.As(err)
	if !ok {
		banner.Fprintf(os.Stderr, "Unhandled error: %v\n", err)
		return
	}
	banner.Fprintf(os.Stderr, "Unhandled error: %s\n", gerr.Payload.Repr())
	fmt.Fprintln(os.Stderr, gerr.StackTrace())
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
}

func atExit(err error) {
	if err == nil {
		return
	}
	printUnhandled(err)
	os.Exit(1)
}

func runExprAndExit(ev *eval.Evaluator, env value.Env) {
	form, err := reader.ReadOne(evalExpr)
	if err != nil {
		atExit(gelerr.Wrap(gelerr.ReaderError, err, nil))
	}
	v, err := ev.Eval(form, env)
	if err != nil {
		atExit(err)
	}
	fmt.Println(v.Repr())
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gel_history")
}

// runREPL implements the top-level read-eval-print loop: each line of input
// is read as one form and evaluated; end of input prints "bye" and exits
// zero. Unhandled errors print and the loop continues, since only the
// startup forms and -e are fatal.
func runREPL(ev *eval.Evaluator, env value.Env) {
	prompt := "gel> "
	if !color.NoColor {
		prompt = color.New(color.FgCyan).Sprint("gel> ")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFilePath(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gel: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			fmt.Println("bye")
			return
		}
		if err != nil {
			atExit(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		form, rerr := reader.ReadOne(line)
		if rerr != nil {
			printUnhandled(gelerr.Wrap(gelerr.ReaderError, rerr, nil))
			continue
		}
		v, eerr := ev.Eval(form, env)
		if eerr != nil {
			printUnhandled(eerr)
			continue
		}
		fmt.Println(v.Repr())
	}
}

func main() {
	flag.Parse()
	setColorMode()

	ev, env := newEvaluator()
	if err := runStartup(ev, env); err != nil {
		atExit(err)
	}

	if evalExpr != "" {
		runExprAndExit(ev, env)
		return
	}
	runREPL(ev, env)
}
