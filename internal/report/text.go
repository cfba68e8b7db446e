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
	"fmt"
	"go/token"
	"io"

	"github.com/fatih/color"

	"fillmore-labs.com/patternguard/bugcheck"
)

var (
	errorColor      = color.New(color.FgRed, color.Bold)
	warningColor    = color.New(color.FgYellow, color.Bold)
	suggestionColor = color.New(color.FgCyan)
	locationColor   = color.New(color.Bold)
)

// textReporter colors output when enabled and [color.NoColor] is not set.
type textReporter struct{ color bool }

func (r textReporter) Report(w io.Writer, ds []Diagnostic) error {
	var errors, warnings int

	for _, d := range ds {
		switch d.Severity {
		case bugcheck.Error:
			errors++

		case bugcheck.Warning:
			warnings++
		}

		if _, err := fmt.Fprintln(w, r.line(d)); err != nil {
			return err
		}
	}

	if len(ds) == 0 {
		return nil
	}

	_, err := fmt.Fprintf(w, "%d %s, %d %s\n", errors, plural(errors, "error"), warnings, plural(warnings, "warning"))

	return err
}

func (r textReporter) line(d Diagnostic) string {
	if !r.color {
		return d.String()
	}

	c := suggestionColor

	switch d.Severity {
	case bugcheck.Error:
		c = errorColor

	case bugcheck.Warning:
		c = warningColor
	}

	loc := token.Position{Filename: d.File, Line: d.Line, Column: d.Column}.String()

	return locationColor.Sprint(loc) + ": " + c.Sprint("["+d.Checker+"]") + " " + d.Message
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
