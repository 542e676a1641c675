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

// Package reader turns gel source text into value trees: a hand-rolled
// tokenizer plus a recursive-descent form parser with reader macros for
// quote, quasiquote, unquote, splice-unquote and map literals. Symbols may
// contain `?!-/*%<>=` and alphanumerics; one next() call produces one
// delimited token.
package reader

import (
	"strconv"
	"strings"

	"github.com/hpoggie/gel/gelerr"
	"github.com/hpoggie/gel/value"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokQuote
	tokQuasiquote
	tokUnquote
	tokSpliceUnquote
	tokString
	tokAtom // symbol, number, nil/true/false -- disambiguated by the parser
)

type token struct {
	kind tokenKind
	text string // raw text for tokAtom/tokString (already unescaped for tokString)
}

// Reader reads successive forms from a source string.
type Reader struct {
	src string
	pos int
}

// New creates a Reader over src.
func New(src string) *Reader {
	return &Reader{src: src}
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '{', '}', '\'', '`', ',', '"', ';':
		return true
	}
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// skipSpaceAndComments advances past whitespace and ;-line-comments.
func (r *Reader) skipSpaceAndComments() {
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if isSpace(c) || c == '\n' {
			r.pos++
			continue
		}
		if c == ';' {
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
			continue
		}
		break
	}
}

func (r *Reader) peekByte() (byte, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	return r.src[r.pos], true
}

// next scans and returns the next token, or tokEOF at end of input.
func (r *Reader) next() (token, error) {
	r.skipSpaceAndComments()
	if r.pos >= len(r.src) {
		return token{kind: tokEOF}, nil
	}
	c := r.src[r.pos]
	switch c {
	case '(':
		r.pos++
		return token{kind: tokLParen}, nil
	case ')':
		r.pos++
		return token{kind: tokRParen}, nil
	case '{':
		r.pos++
		return token{kind: tokLBrace}, nil
	case '}':
		r.pos++
		return token{kind: tokRBrace}, nil
	case '\'':
		r.pos++
		return token{kind: tokQuote}, nil
	case '`':
		r.pos++
		return token{kind: tokQuasiquote}, nil
	case ',':
		r.pos++
		if p, ok := r.peekByte(); ok && p == '@' {
			r.pos++
			return token{kind: tokSpliceUnquote}, nil
		}
		return token{kind: tokUnquote}, nil
	case '"':
		return r.nextString()
	}
	start := r.pos
	for r.pos < len(r.src) && !isDelimiter(r.src[r.pos]) {
		r.pos++
	}
	return token{kind: tokAtom, text: r.src[start:r.pos]}, nil
}

// nextString scans a double-quoted string literal. The terminating quote is
// optional *at tokenize time*: an unterminated string is only an error when
// the reader tries to use it as a form.
func (r *Reader) nextString() (token, error) {
	start := r.pos
	r.pos++ // opening quote
	var b strings.Builder
	terminated := false
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if c == '\\' && r.pos+1 < len(r.src) {
			b.WriteByte(c)
			b.WriteByte(r.src[r.pos+1])
			r.pos += 2
			continue
		}
		if c == '"' {
			r.pos++
			terminated = true
			break
		}
		b.WriteByte(c)
		r.pos++
	}
	if !terminated {
		return token{kind: tokString, text: b.String()}, &gelerr.Error{
			Kind:    gelerr.ReaderError,
			Payload: value.String("unterminated string literal: " + r.src[start:r.pos]),
		}
	}
	return token{kind: tokString, text: unescapeString(b.String())}, nil
}

// unescapeString implements the deliberately minimal escape rule: only \"
// unescapes to ", every other backslash sequence passes through literally.
func unescapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func readerError(format string, args ...interface{}) error {
	return gelerr.Errorf(gelerr.ReaderError, nil, format, args...)
}

// Read parses and returns exactly one form from the reader, advancing past
// it. ok is false (with a nil error) if the input held no more forms (only
// whitespace/comments remained).
func (r *Reader) Read() (v value.Value, ok bool, err error) {
	tok, err := r.next()
	if err != nil {
		return nil, false, err
	}
	if tok.kind == tokEOF {
		return nil, false, nil
	}
	v, err = r.parseForm(tok)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// ReadOne performs a single top-level read: exactly one form, then either
// end of input or only trailing whitespace/comments -- anything more is a
// reader error. `read-string` and the REPL both go through here; callers
// that want successive forms use a Reader and call Read repeatedly.
func ReadOne(src string) (value.Value, error) {
	r := New(src)
	v, ok, err := r.Read()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, readerError("no form to read")
	}
	r.skipSpaceAndComments()
	if r.pos != len(r.src) {
		return nil, readerError("extra input after form")
	}
	return v, nil
}

func (r *Reader) parseForm(tok token) (value.Value, error) {
	switch tok.kind {
	case tokLParen:
		return r.parseList()
	case tokRParen:
		return nil, readerError("unexpected )")
	case tokLBrace:
		return r.parseMap()
	case tokRBrace:
		return nil, readerError("unexpected }")
	case tokQuote:
		return r.parseWrapped("quote")
	case tokQuasiquote:
		return r.parseWrapped("quasiquote")
	case tokUnquote:
		return r.parseWrapped("unquote")
	case tokSpliceUnquote:
		return r.parseWrapped("splice-unquote")
	case tokString:
		return value.String(tok.text), nil
	case tokAtom:
		return parseAtom(tok.text)
	default:
		return nil, readerError("unexpected end of input")
	}
}

func (r *Reader) parseWrapped(head string) (value.Value, error) {
	tok, err := r.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokEOF {
		return nil, readerError("expected form after %s", head)
	}
	inner, err := r.parseForm(tok)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.Symbol(head), inner), nil
}

func (r *Reader) parseList() (value.Value, error) {
	var items []value.Value
	for {
		tok, err := r.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			return nil, readerError("unexpected end of input in list")
		}
		if tok.kind == tokRParen {
			return value.NewList(items...), nil
		}
		form, err := r.parseForm(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, form)
	}
}

func (r *Reader) parseMap() (value.Value, error) {
	var items []value.Value
	for {
		tok, err := r.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			return nil, readerError("unexpected end of input in map literal")
		}
		if tok.kind == tokRBrace {
			return value.NewList(append([]value.Value{value.Symbol("make-map")}, items...)...), nil
		}
		form, err := r.parseForm(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, form)
	}
}

// parseAtom classifies a bare token as nil/true/false, an integer, or a
// symbol.
func parseAtom(s string) (value.Value, error) {
	switch s {
	case "nil":
		return value.Nil, nil
	case "true":
		return value.True, nil
	case "false":
		return value.False, nil
	}
	if looksLikeInt(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, readerError("invalid integer literal %q: %v", s, err)
		}
		return value.Int(n), nil
	}
	return value.Symbol(s), nil
}

// looksLikeInt matches -?[0-9]+ without relying on locale-dependent stdlib
// number parsing for the *shape* check. ParseInt above still does the
// actual arithmetic, with explicit base 10 and bit size 64 so its overflow
// behavior is well defined.
func looksLikeInt(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
