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

// Package fix builds and applies suggested fixes.
//
// A [SuggestedFix] is a pure text transformation: a set of non-overlapping
// byte-offset edits plus import additions and removals. Fixes are built by
// checkers at match time with a [Builder] and applied to source text with
// [Apply], never touching the syntax tree.
package fix

import (
	"cmp"
	"slices"
	"strconv"
)

// Edit replaces the source bytes in [Start, End) with NewText.
// Start == End denotes an insertion.
type Edit struct {
	Start   int    `json:"start"          msgpack:"s"  yaml:"start"`
	End     int    `json:"end"            msgpack:"e"  yaml:"end"`
	NewText string `json:"text,omitempty" msgpack:"t"  yaml:"text,omitempty"`
}

// Insertion reports whether the edit inserts text without removing any.
func (e Edit) Insertion() bool { return e.Start == e.End }

// overlaps reports whether two edits touch the same source bytes.
//
// Edits are half-open intervals. Two insertions never overlap. An insertion
// overlaps a replacement if it lies strictly inside or at the start of it.
func (e Edit) overlaps(o Edit) bool {
	switch {
	case e.Insertion() && o.Insertion():
		return false

	case e.Insertion():
		return o.Start <= e.Start && e.Start < o.End

	case o.Insertion():
		return e.Start <= o.Start && o.Start < e.End

	default:
		return e.Start < o.End && o.Start < e.End
	}
}

// Import is an import declaration, with an optional local name.
type Import struct {
	Name string `json:"name,omitempty" msgpack:"n" yaml:"name,omitempty"`
	Path string `json:"path"           msgpack:"p" yaml:"path"`
}

// String renders the import spec as written in source.
func (i Import) String() string {
	if i.Name == "" {
		return strconv.Quote(i.Path)
	}

	return i.Name + " " + strconv.Quote(i.Path)
}

// SuggestedFix is one alternative remediation for a finding.
type SuggestedFix struct {
	// Description is a short, human-readable summary of the fix.
	Description string `json:"description,omitempty" msgpack:"d" yaml:"description,omitempty"`

	// Edits are sorted by start offset and do not overlap.
	Edits []Edit `json:"edits,omitempty" msgpack:"ed" yaml:"edits,omitempty"`

	// ImportsToAdd are merged into the import block.
	ImportsToAdd []Import `json:"add_imports,omitempty" msgpack:"ai" yaml:"add_imports,omitempty"`

	// ImportsToRemove are import paths to delete from the import block.
	ImportsToRemove []string `json:"remove_imports,omitempty" msgpack:"ri" yaml:"remove_imports,omitempty"`
}

// IsEmpty reports whether the fix changes nothing.
func (f SuggestedFix) IsEmpty() bool {
	return len(f.Edits) == 0 && len(f.ImportsToAdd) == 0 && len(f.ImportsToRemove) == 0
}

// Validate checks that the edits of f are well-formed and do not overlap.
func (f SuggestedFix) Validate() error {
	edits := slices.Clone(f.Edits)
	sortEdits(edits)

	return checkEdits(edits)
}

// sortEdits sorts edits by start offset, then by end offset.
// Insertions at the same offset keep their relative order.
func sortEdits(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})
}

// checkEdits validates sorted edits.
func checkEdits(edits []Edit) error {
	for i, e := range edits {
		if e.Start < 0 || e.End < e.Start {
			return &InvalidEditError{Edit: e}
		}

		if i > 0 && edits[i-1].overlaps(e) {
			return &OverlappingEditsError{First: edits[i-1], Second: e}
		}
	}

	return nil
}
