// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

// Package ngi holds small internal I/O helpers used by builtin.
package ngi

import "io"

// ErrWriter wraps an io.Writer and remembers the first write error instead
// of requiring every caller to check it. `prn`/`put` write several pieces
// (one per argument, then a newline) per call; checking err once at the end
// of the call is simpler than after every WriteString.
type ErrWriter struct {
	W   io.Writer
	Err error
}

// WriteString writes s if no previous error has been recorded.
func (w *ErrWriter) WriteString(s string) {
	if w.Err != nil {
		return
	}
	_, w.Err = io.WriteString(w.W, s)
}
