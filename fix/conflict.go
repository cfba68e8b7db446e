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
	"fmt"
	"slices"
)

// SkipReason explains why [ApplyAll] did not apply a fix.
type SkipReason uint8

const (
	// SkipInvalid marks a fix with malformed or overlapping edits.
	SkipInvalid SkipReason = iota + 1
	// SkipConflict marks a fix whose edits overlap an already accepted fix.
	SkipConflict
	// SkipImportConflict marks a fix that adds an import another accepted fix removes, or vice versa.
	SkipImportConflict
	// SkipEmpty marks a fix without changes.
	SkipEmpty
)

func (r SkipReason) String() string {
	switch r {
	case SkipInvalid:
		return "invalid edits"
	case SkipConflict:
		return "conflicts with previously applied edits"
	case SkipImportConflict:
		return "conflicting import changes"
	case SkipEmpty:
		return "fix has no edits"
	default:
		return fmt.Sprintf("SkipReason(%d)", uint8(r))
	}
}

// Skipped records a fix not applied by [ApplyAll].
type Skipped struct {
	Index  int // index into the fixes passed to ApplyAll
	Reason SkipReason
}

// Outcome is the result of [ApplyAll].
type Outcome struct {
	Source  []byte
	Applied []int // indices of applied fixes, in application order
	Skipped []Skipped
}

// ApplyAll applies fixes from possibly different checkers to src.
//
// Fixes are considered in the given order, which callers keep deterministic
// (by finding position, then checker registration order). A fix is applied
// as a whole when none of its edits overlaps an edit of a previously
// accepted fix, otherwise it is skipped and reported in the outcome.
// Import additions of all accepted fixes are merged once.
func ApplyAll(src []byte, fixes []SuggestedFix) (Outcome, error) {
	var (
		outcome  Outcome
		accepted SuggestedFix
	)

	for i, f := range fixes {
		if f.IsEmpty() {
			outcome.Skipped = append(outcome.Skipped, Skipped{Index: i, Reason: SkipEmpty})

			continue
		}

		if err := f.Validate(); err != nil || outOfRange(f, len(src)) {
			outcome.Skipped = append(outcome.Skipped, Skipped{Index: i, Reason: SkipInvalid})

			continue
		}

		if conflictsWithExisting(accepted.Edits, f.Edits) {
			outcome.Skipped = append(outcome.Skipped, Skipped{Index: i, Reason: SkipConflict})

			continue
		}

		if importsConflict(accepted, f) {
			outcome.Skipped = append(outcome.Skipped, Skipped{Index: i, Reason: SkipImportConflict})

			continue
		}

		accepted.Edits = append(accepted.Edits, f.Edits...)
		accepted.ImportsToAdd = append(accepted.ImportsToAdd, f.ImportsToAdd...)
		accepted.ImportsToRemove = append(accepted.ImportsToRemove, f.ImportsToRemove...)
		outcome.Applied = append(outcome.Applied, i)
	}

	out, err := Apply(src, accepted)
	if err != nil {
		return Outcome{}, err
	}

	outcome.Source = out

	return outcome, nil
}

func outOfRange(f SuggestedFix, size int) bool {
	return slices.ContainsFunc(f.Edits, func(e Edit) bool { return e.End > size })
}

func conflictsWithExisting(existing, edits []Edit) bool {
	for _, e := range edits {
		if slices.ContainsFunc(existing, e.overlaps) {
			return true
		}
	}

	return false
}

func importsConflict(a, b SuggestedFix) bool {
	for _, imp := range b.ImportsToAdd {
		if slices.Contains(a.ImportsToRemove, imp.Path) {
			return true
		}
	}

	for _, imp := range a.ImportsToAdd {
		if slices.Contains(b.ImportsToRemove, imp.Path) {
			return true
		}
	}

	return false
}
