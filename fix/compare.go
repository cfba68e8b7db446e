// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package fix

import (
	"bytes"
	"go/scanner"
	"go/token"
	"slices"
	"strings"
)

// Mode selects how refactoring output is compared with the expectation.
type Mode uint8

const (
	// TextMatch compares source text, ignoring trailing whitespace and line ending style.
	TextMatch Mode = iota
	// ASTMatch compares token streams, ignoring comments, layout and optional trailing separators.
	ASTMatch
)

func (m Mode) String() string {
	if m == ASTMatch {
		return "ASTMatch"
	}

	return "TextMatch"
}

// Equal reports whether want and got are equal under mode.
// It returns an error when a source does not scan in [ASTMatch] mode.
func Equal(mode Mode, want, got []byte) (bool, error) {
	if mode != ASTMatch {
		return normalizeText(want) == normalizeText(got), nil
	}

	w, err := significantTokens(want)
	if err != nil {
		return false, err
	}

	g, err := significantTokens(got)
	if err != nil {
		return false, err
	}

	return slices.Equal(w, g), nil
}

func normalizeText(src []byte) string {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	lines := strings.Split(string(src), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

type lexeme struct {
	tok token.Token
	lit string
}

// significantTokens scans src, dropping comments, the literal of automatic
// semicolons, and separators that only precede a closing bracket.
func significantTokens(src []byte) ([]lexeme, error) {
	fset := token.NewFileSet()
	handle := fset.AddFile("", -1, len(src))

	var (
		s    scanner.Scanner
		errs scanner.ErrorList
	)

	s.Init(handle, src, errs.Add, 0)

	var result []lexeme

	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		switch tok {
		case token.SEMICOLON:
			lit = ""

		case token.RPAREN, token.RBRACE, token.RBRACK:
			for n := len(result); n > 0 && (result[n-1].tok == token.COMMA || result[n-1].tok == token.SEMICOLON); n-- {
				result = result[:n-1]
			}
		}

		result = append(result, lexeme{tok: tok, lit: lit})
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	for n := len(result); n > 0 && result[n-1].tok == token.SEMICOLON; n-- {
		result = result[:n-1]
	}

	return result, nil
}
