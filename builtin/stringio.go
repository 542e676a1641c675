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
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/hpoggie/gel/internal/ngi"
	"github.com/hpoggie/gel/reader"
	"github.com/hpoggie/gel/value"
)

// str renders v the way `prn`/`put` display it: strings print their raw
// contents unquoted, everything else prints the same as repr.
func str(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return string(s)
	}
	return v.Repr()
}

func installStringIO(def func(string, func([]value.Value) (value.Value, error)), stdout io.Writer, stdin io.Reader) {
	in := bufio.NewReader(stdin)

	def("repr", func(args []value.Value) (value.Value, error) {
		return value.String(args[0].Repr()), nil
	})

	def("str", func(args []value.Value) (value.Value, error) {
		return value.String(str(args[0])), nil
	})

	def("strcat", func(args []value.Value) (value.Value, error) {
		var b []byte
		for _, a := range args {
			s, ok := a.(value.String)
			if !ok {
				return nil, errors.Errorf("strcat: expected a string, got %s", a.Repr())
			}
			b = append(b, s...)
		}
		return value.String(b), nil
	})

	def("str=", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("str=: expected exactly 2 arguments")
		}
		a, ok := args[0].(value.String)
		if !ok {
			return nil, errors.Errorf("str=: expected a string, got %s", args[0].Repr())
		}
		b, ok := args[1].(value.String)
		if !ok {
			return nil, errors.Errorf("str=: expected a string, got %s", args[1].Repr())
		}
		if a == b {
			return value.True, nil
		}
		return value.False, nil
	})

	def("prn", func(args []value.Value) (value.Value, error) {
		w := &ngi.ErrWriter{W: stdout}
		for i, a := range args {
			if i > 0 {
				w.WriteString(" ")
			}
			w.WriteString(str(a))
		}
		w.WriteString("\n")
		return value.Nil, w.Err
	})

	def("put", func(args []value.Value) (value.Value, error) {
		w := &ngi.ErrWriter{W: stdout}
		for i, a := range args {
			if i > 0 {
				w.WriteString(" ")
			}
			w.WriteString(str(a))
		}
		return value.Nil, w.Err
	})

	def("slurp", func(args []value.Value) (value.Value, error) {
		path, ok := args[0].(value.String)
		if !ok {
			return nil, errors.Errorf("slurp: expected a string path, got %s", args[0].Repr())
		}
		f, err := os.Open(string(path))
		if err != nil {
			return nil, errors.Wrap(err, "slurp")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(err, "slurp")
		}
		return value.String(data), nil
	})

	def("read-string", func(args []value.Value) (value.Value, error) {
		var b []byte
		for _, a := range args {
			s, ok := a.(value.String)
			if !ok {
				return nil, errors.Errorf("read-string: expected a string, got %s", a.Repr())
			}
			b = append(b, s...)
		}
		v, err := reader.ReadOne(string(b))
		if err != nil {
			return nil, err
		}
		return v, nil
	})

	def("input", func(args []value.Value) (value.Value, error) {
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "input")
		}
		if err == io.EOF && line == "" {
			return value.Nil, nil
		}
		line = trimTrailingNewline(line)
		return value.String(line), nil
	})
}

func trimTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '\r' {
		s = s[:len(s)-1]
	}
	return s
}
