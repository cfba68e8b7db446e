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
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Resolve returns the edits of f with its import changes expressed as
// line-level edits against src. The result is sorted and validated.
func (f SuggestedFix) Resolve(src []byte) ([]Edit, error) {
	edits := append([]Edit(nil), f.Edits...)

	if len(f.ImportsToAdd) > 0 || len(f.ImportsToRemove) > 0 {
		merged, err := MergeImports(src, f.ImportsToAdd, f.ImportsToRemove)
		if err != nil {
			return nil, err
		}

		edits = append(edits, LineEdits(src, merged)...)
	}

	sortEdits(edits)

	if err := checkEdits(edits); err != nil {
		return nil, err
	}

	return edits, nil
}

// LineEdits computes whole-line edits transforming a into b.
func LineEdits(a, b []byte) []Edit {
	al, bl := splitLines(string(a)), splitLines(string(b))

	offsets := make([]int, len(al)+1)
	for i, l := range al {
		offsets[i+1] = offsets[i] + len(l)
	}

	var edits []Edit

	for _, op := range difflib.NewMatcher(al, bl).GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}

		edits = append(edits, Edit{
			Start:   offsets[op.I1],
			End:     offsets[op.I2],
			NewText: strings.Join(bl[op.J1:op.J2], ""),
		})
	}

	return edits
}

// splitLines splits s after each newline, keeping an unterminated last line.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if n := len(lines); lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return lines
}
