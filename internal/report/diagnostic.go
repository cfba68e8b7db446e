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

package report

import (
	"go/token"
	"strings"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/fix"
)

// Diagnostic is the rendered, position-resolved form of a finding.
type Diagnostic struct {
	Checker   string             `json:"checker"             msgpack:"c"  yaml:"checker"`
	Severity  bugcheck.Severity  `json:"severity"            msgpack:"s"  yaml:"severity"`
	File      string             `json:"file"                msgpack:"f"  yaml:"file"`
	Line      int                `json:"line"                msgpack:"l"  yaml:"line"`
	Column    int                `json:"column"              msgpack:"co" yaml:"column"`
	EndLine   int                `json:"end_line,omitempty"   msgpack:"el" yaml:"end_line,omitempty"`
	EndColumn int                `json:"end_column,omitempty" msgpack:"ec" yaml:"end_column,omitempty"`
	Message   string             `json:"message"             msgpack:"m"  yaml:"message"`
	URL       string             `json:"url,omitempty"       msgpack:"u"  yaml:"url,omitempty"`
	Fixes     []fix.SuggestedFix `json:"fixes,omitempty"     msgpack:"x"  yaml:"fixes,omitempty"`
	Related   []Location         `json:"related,omitempty"   msgpack:"r"  yaml:"related,omitempty"`
}

// Location is a secondary position of a diagnostic.
type Location struct {
	File    string `json:"file"    msgpack:"f" yaml:"file"`
	Line    int    `json:"line"    msgpack:"l" yaml:"line"`
	Column  int    `json:"column"  msgpack:"c" yaml:"column"`
	Message string `json:"message" msgpack:"m" yaml:"message"`
}

// URLs resolves documentation links by checker name.
type URLs func(checker string) string

// FromFindings resolves the positions of findings.
func FromFindings(findings []bugcheck.Finding, urls URLs) []Diagnostic {
	ds := make([]Diagnostic, 0, len(findings))

	for _, f := range findings {
		ds = append(ds, FromFinding(f, urls))
	}

	return ds
}

// FromFinding resolves the position of a single finding.
func FromFinding(f bugcheck.Finding, urls URLs) Diagnostic {
	var start, end token.Position
	if f.Unit != nil {
		start, end = f.Unit.Position(f.Pos), f.Unit.Position(f.End)
	}

	d := Diagnostic{
		Checker:   f.Checker,
		Severity:  f.Severity,
		File:      start.Filename,
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.Line,
		EndColumn: end.Column,
		Message:   f.Message,
		Fixes:     f.Fixes,
	}

	if urls != nil {
		d.URL = urls(f.Checker)
	}

	for _, r := range f.Related {
		// Related locations may lie in other files of the run.
		var p token.Position
		if f.Unit != nil {
			p = f.Unit.FileSet().PositionFor(r.Pos, false)
		}

		d.Related = append(d.Related, Location{File: p.Filename, Line: p.Line, Column: p.Column, Message: r.Message})
	}

	return d
}

// Message returns the checker-qualified message "[<checker>] <message>".
func Message(checker, message string) string {
	return "[" + checker + "] " + message
}

// String renders the diagnostic as "<file>:<line>:<col>: [<checker>] <message>".
func (d Diagnostic) String() string {
	return token.Position{Filename: d.File, Line: d.Line, Column: d.Column}.String() + ": " + Message(d.Checker, d.Message)
}

// Contains reports whether the diagnostic message contains substr.
// Expectations deliberately match substrings, so message wording can evolve.
func (d Diagnostic) Contains(substr string) bool {
	return strings.Contains(d.Message, substr)
}

// Contains reports whether any diagnostic on line of file contains substr.
func Contains(ds []Diagnostic, file string, line int, substr string) bool {
	for _, d := range ds {
		if d.File == file && d.Line == line && d.Contains(substr) {
			return true
		}
	}

	return false
}
