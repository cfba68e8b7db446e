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

package bugpatterns

import (
	"go/constant"
	"go/token"
	"strconv"
	"strings"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/tree"
)

// formatFuncs maps printf-like functions to the index of their format parameter.
var formatFuncs = map[string]map[string]int{
	"fmt": {"Printf": 0, "Sprintf": 0, "Errorf": 0, "Fprintf": 1, "Appendf": 1},
	"log": {"Printf": 0, "Fatalf": 0, "Panicf": 0},
}

// FormatStringArgs flags printf-like calls where the number of arguments does
// not match the verbs of a constant format string.
//
// Surplus arguments are kept by extending the format with %v verbs.
func FormatStringArgs() bugcheck.Checker {
	return bugcheck.New(bugcheck.Descriptor{
		Name:     "FormatStringArgs",
		Summary:  "Format string verbs do not match the arguments",
		Severity: bugcheck.Warning,
		Kinds:    []tree.Kind{tree.KindCallExpr},
		Tags:     []string{"Correctness"},
		URL:      docURL + "FormatStringArgs",
	}, matchFormatStringArgs)
}

func matchFormatStringArgs(n tree.Node, s *bugcheck.State) (bugcheck.Finding, bool) {
	call, ok := n.Call()
	if !ok || call.Ellipsis.IsValid() {
		return bugcheck.Finding{}, false
	}

	fn, ok := n.Callee()
	if !ok || fn.Pkg() == nil {
		return bugcheck.Finding{}, false
	}

	idx, ok := formatFuncs[fn.Pkg().Path()][fn.Name()]
	if !ok {
		return bugcheck.Finding{}, false
	}

	args := n.Arguments()
	if idx >= len(args) {
		return bugcheck.Finding{}, false
	}

	format := args[idx]

	val, ok := format.Constant()
	if !ok || val.Kind() != constant.String {
		return bugcheck.Finding{}, false
	}

	verbs, ok := countVerbs(constant.StringVal(val))
	if !ok {
		return bugcheck.Finding{}, false
	}

	given := len(args) - idx - 1

	switch {
	case given > verbs:
		f := s.Finding(n).WithMessage("%s.%s call has %d arguments but the format string has %s",
			fn.Pkg().Name(), fn.Name(), given, plural(verbs, "verb"))

		lit, ok := format.Lit()
		if !ok || lit.Kind != token.STRING {
			return f, true
		}

		extra := strings.TrimSuffix(strings.Repeat("%v, ", given-verbs), ", ")
		b := s.NewFix("add verbs for surplus arguments").ReplaceRange(lit.End()-1, lit.End()-1, " ("+extra+")")

		return f.WithFix(b), true

	case given < verbs:
		return s.Finding(n).WithMessage("%s.%s format string has %s but the call has %d arguments",
			fn.Pkg().Name(), fn.Name(), plural(verbs, "verb"), given), true

	default:
		return bugcheck.Finding{}, false
	}
}

// countVerbs counts the arguments a format string consumes. ok is false for
// explicit argument indexes, which are not supported.
func countVerbs(format string) (n int, ok bool) {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}

		i++
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}

		i, n = skipNumber(format, i, n)

		if i < len(format) && format[i] == '.' {
			i, n = skipNumber(format, i+1, n)
		}

		switch {
		case i >= len(format):
			return n, true

		case format[i] == '[':
			return 0, false

		case format[i] == '%':

		default:
			n++
		}
	}

	return n, true
}

// skipNumber skips a width or precision, where '*' consumes an argument.
func skipNumber(format string, i, n int) (int, int) {
	if i < len(format) && format[i] == '*' {
		return i + 1, n + 1
	}

	for i < len(format) && '0' <= format[i] && format[i] <= '9' {
		i++
	}

	return i, n
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}

	return strconv.Itoa(n) + " " + word + "s"
}
