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

package checktest

import (
	"fmt"
	"strings"
	"testing"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/load"
	"fillmore-labs.com/patternguard/internal/report"
	"fillmore-labs.com/patternguard/tree"
)

const (
	markerContains = "// BUG: Diagnostic contains:"
	markerMatches  = "// BUG: Diagnostic matches:"
)

// CompilationHelper checks the diagnostics of checkers on annotated sources.
type CompilationHelper struct {
	tb       testing.TB
	checkers []bugcheck.Checker
	args     []string
	sources  sources
	messages map[string]func(string) bool
	none     bool
	done     bool
}

// NewCompilationHelper creates a helper running checkers, which are enabled regardless of their defaults.
func NewCompilationHelper(tb testing.TB, checkers ...bugcheck.Checker) *CompilationHelper {
	tb.Helper()

	return &CompilationHelper{tb: tb, checkers: checkers, messages: make(map[string]func(string) bool)}
}

// AddSourceLines adds a file with the given lines.
func (h *CompilationHelper) AddSourceLines(name string, lines ...string) *CompilationHelper {
	h.sources.addLines(name, lines)

	return h
}

// AddSourceFile adds a file from disk, usually below testdata.
func (h *CompilationHelper) AddSourceFile(path string) *CompilationHelper {
	h.tb.Helper()
	h.sources.addFile(h.tb, path)

	return h
}

// SetArgs passes -Xep flags to the run.
func (h *CompilationHelper) SetArgs(args ...string) *CompilationHelper {
	h.args = append(h.args, args...)

	return h
}

// ExpectMessage registers a predicate for "// BUG: Diagnostic matches: key" markers.
// A key that no marker uses fails the test.
func (h *CompilationHelper) ExpectMessage(key string, pred func(message string) bool) *CompilationHelper {
	h.messages[key] = pred

	return h
}

// ExpectNoDiagnostics requires a run without any diagnostic, markers are ignored.
func (h *CompilationHelper) ExpectNoDiagnostics() *CompilationHelper {
	h.none = true

	return h
}

// DoTest compiles the sources, runs the checkers and verifies the markers. Call it once.
func (h *CompilationHelper) DoTest() {
	h.tb.Helper()

	if h.done {
		h.tb.Errorf("DoTest should only be called once")

		return
	}

	h.done = true

	if len(h.sources.files) == 0 {
		h.tb.Errorf("No source files to compile")

		return
	}

	ds, ok := h.diagnostics()
	if !ok {
		return
	}

	if h.none {
		if len(ds) > 0 {
			h.tb.Errorf("Expected no diagnostics produced, but found %d:\n%s", len(ds), describe(ds))
		}

		return
	}

	used := make(map[string]bool)
	for _, f := range h.sources.files {
		h.verify(f, ds, used)
	}

	for key := range h.messages {
		if !used[key] {
			h.tb.Errorf("Unused message key %q", key)
		}
	}
}

func (h *CompilationHelper) diagnostics() ([]report.Diagnostic, bool) {
	h.tb.Helper()

	pkg, err := load.Source(packagePath, h.sources.files...)
	if err != nil {
		h.tb.Errorf("Test program failed to compile: %v", err)

		return nil, false
	}

	eng, _, err := newEngine(h.checkers, h.args)
	if err != nil {
		h.tb.Errorf("Invalid configuration: %v", err)

		return nil, false
	}

	res, err := eng.Run(testContext(h.tb), [][]*tree.Unit{pkg.Units})
	if err != nil {
		h.tb.Errorf("Run failed: %v", err)

		return nil, false
	}

	internalErrors(h.tb, res.Internal)

	return report.FromFindings(res.Findings, nil), true
}

// expectation is a marker targeting one line.
type expectation struct {
	marker int
	line   int
	preds  []predicate
}

type predicate struct {
	desc  string
	match func(string) bool
}

func (h *CompilationHelper) verify(f load.File, ds []report.Diagnostic, used map[string]bool) {
	h.tb.Helper()

	expectations, ok := h.expectations(f, used)
	if !ok {
		return
	}

	targets := make(map[int]bool, len(expectations))

	for _, e := range expectations {
		targets[e.line] = true

		for _, p := range e.preds {
			if !anyOnLine(ds, f.Name, e.line, p.match) {
				h.tb.Errorf("%s:%d: Did not see a diagnostic matching %s. All diagnostics:\n%s", f.Name, e.line, p.desc, describe(ds))
			}
		}

		if len(h.checkers) != 1 {
			continue
		}

		if tag := "[" + h.checkers[0].Descriptor().Name + "]"; !anyOnLine(ds, f.Name, e.line, contains(tag)) {
			h.tb.Errorf("%s:%d: Did not see a diagnostic containing %s. All diagnostics:\n%s", f.Name, e.line, tag, describe(ds))
		}
	}

	for _, d := range ds {
		if d.File == f.Name && !targets[d.Line] {
			h.tb.Errorf("Saw unexpected diagnostic %s", d)
		}
	}
}

// expectations parses the markers of a file.
func (h *CompilationHelper) expectations(f load.File, used map[string]bool) ([]expectation, bool) {
	h.tb.Helper()

	lines := strings.Split(string(f.Src), "\n")

	var result []expectation

	for i := 0; i < len(lines); i++ {
		text := lines[i]

		var (
			marker string
			lookup bool
		)

		switch {
		case strings.Contains(text, markerContains):
			marker = markerContains

		case strings.Contains(text, markerMatches):
			marker, lookup = markerMatches, true

		default:
			continue
		}

		e := expectation{marker: i + 1}
		patterns := []string{strings.TrimSpace(text[strings.Index(text, marker)+len(marker):])}

		for i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "//") {
			i++
			patterns = append(patterns, strings.TrimSpace(strings.TrimSpace(lines[i])[2:]))
		}

		e.line = i + 2

		for _, p := range patterns {
			if !lookup {
				e.preds = append(e.preds, predicate{desc: fmt.Sprintf("%q", p), match: contains(p)})

				continue
			}

			pred, ok := h.messages[p]
			if !ok {
				h.tb.Errorf("%s:%d: No expected message with key %q", f.Name, e.marker, p)

				return nil, false
			}

			used[p] = true
			e.preds = append(e.preds, predicate{desc: "key " + p, match: pred})
		}

		result = append(result, e)
	}

	return result, true
}

func contains(substr string) func(string) bool {
	return func(message string) bool { return strings.Contains(message, substr) }
}

func anyOnLine(ds []report.Diagnostic, file string, line int, match func(string) bool) bool {
	for _, d := range ds {
		if d.File == file && d.Line == line && match(report.Message(d.Checker, d.Message)) {
			return true
		}
	}

	return false
}

func describe(ds []report.Diagnostic) string {
	var b strings.Builder
	for _, d := range ds {
		fmt.Fprintf(&b, "  %s\n", d)
	}

	return b.String()
}
