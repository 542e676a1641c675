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

// Package builtin implements gel's built-in function library: the fixed set
// of BuiltinFn values every fresh environment is populated with before
// boot.gel runs. Built-ins are grouped by concern across this package's
// files (numeric.go, list.go, mapops.go, stringio.go, reflect.go, lang.go,
// constants.go, vmbridge.go); Install wires all of them into one
// environment.
package builtin

import (
	"io"

	"github.com/hpoggie/gel/gelenv"
	"github.com/hpoggie/gel/value"
)

// Options configures the I/O streams `prn`/`put`/`input` use.
type Options struct {
	Stdout io.Writer
	Stdin  io.Reader
}

// Install populates env (which must be, or chain up to, the outermost
// "repl" frame -- see gelenv.Environment.Outermost) with every built-in the
// language exposes at boot.
func Install(env *gelenv.Environment, opts Options) {
	global := env.Outermost()

	def := func(name string, fn func(args []value.Value) (value.Value, error)) {
		global.Define(value.Symbol(name), value.NewBuiltin(name, fn))
	}
	defCtx := func(name string, fn func(args []value.Value, ctx value.Context) (value.Value, error)) {
		global.Define(value.Symbol(name), value.NewContextualBuiltin(name, fn))
	}

	installNumeric(def)
	installList(def)
	installMap(def)
	installStringIO(def, opts.Stdout, opts.Stdin)
	installReflect(def, global)
	installLang(def, defCtx, global)
	installConstants(def, global)
	installVM(def, defCtx)
}
