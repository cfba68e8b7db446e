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
	"errors"
	"fmt"
	"go/token"
	"slices"

	"golang.org/x/tools/go/analysis"
)

// Builder accumulates the edits of one [SuggestedFix].
//
// Builder methods record the first error, which is returned by [Builder.Build].
// Overlapping edits are detected at build time.
type Builder struct {
	handle      *token.File
	src         []byte
	description string
	edits       []Edit
	imports     []Import
	removals    []string
	err         error
}

// NewBuilder creates a [Builder] for edits in the file described by handle.
// src is optional and only required for edits that copy source text, like [Builder.Swap].
func NewBuilder(handle *token.File, src []byte) *Builder {
	return &Builder{handle: handle, src: src}
}

// Describe sets the short description of the fix.
func (b *Builder) Describe(description string) *Builder {
	b.description = description

	return b
}

// Replace replaces the source text of r.
func (b *Builder) Replace(r analysis.Range, text string) *Builder {
	return b.ReplaceRange(r.Pos(), r.End(), text)
}

// ReplaceRange replaces the source text in [pos, end).
func (b *Builder) ReplaceRange(pos, end token.Pos, text string) *Builder {
	start, stop, ok := b.offsets(pos, end)
	if !ok {
		return b
	}

	b.edits = append(b.edits, Edit{Start: start, End: stop, NewText: text})

	return b
}

// Prefix inserts text before r.
func (b *Builder) Prefix(r analysis.Range, text string) *Builder {
	return b.ReplaceRange(r.Pos(), r.Pos(), text)
}

// Postfix inserts text after r.
func (b *Builder) Postfix(r analysis.Range, text string) *Builder {
	return b.ReplaceRange(r.End(), r.End(), text)
}

// Delete removes the source text of r.
func (b *Builder) Delete(r analysis.Range) *Builder {
	return b.ReplaceRange(r.Pos(), r.End(), "")
}

// Swap exchanges the source text of r1 and r2.
func (b *Builder) Swap(r1, r2 analysis.Range) *Builder {
	s1, e1, ok1 := b.offsets(r1.Pos(), r1.End())
	s2, e2, ok2 := b.offsets(r2.Pos(), r2.End())

	if !ok1 || !ok2 {
		return b
	}

	if b.src == nil || e1 > len(b.src) || e2 > len(b.src) {
		b.fail(errors.New("swap requires source text"))

		return b
	}

	t1, t2 := string(b.src[s1:e1]), string(b.src[s2:e2])
	b.edits = append(b.edits, Edit{Start: s1, End: e1, NewText: t2}, Edit{Start: s2, End: e2, NewText: t1})

	return b
}

// AddImport requests the import of path.
func (b *Builder) AddImport(path string) *Builder {
	return b.AddNamedImport("", path)
}

// AddNamedImport requests the import of path under a local name.
func (b *Builder) AddNamedImport(name, path string) *Builder {
	imp := Import{Name: name, Path: path}
	if !slices.Contains(b.imports, imp) {
		b.imports = append(b.imports, imp)
	}

	return b
}

// RemoveImport requests the removal of the import of path.
// Imports are never removed unless requested.
func (b *Builder) RemoveImport(path string) *Builder {
	if !slices.Contains(b.removals, path) {
		b.removals = append(b.removals, path)
	}

	return b
}

// Merge adds all edits and import changes of another fix.
func (b *Builder) Merge(other SuggestedFix) *Builder {
	b.edits = append(b.edits, other.Edits...)
	for _, imp := range other.ImportsToAdd {
		b.AddNamedImport(imp.Name, imp.Path)
	}

	for _, path := range other.ImportsToRemove {
		b.RemoveImport(path)
	}

	return b
}

// IsEmpty reports whether no edits or import changes have been recorded.
func (b *Builder) IsEmpty() bool {
	return len(b.edits) == 0 && len(b.imports) == 0 && len(b.removals) == 0
}

// Build returns the [SuggestedFix].
// It fails with an *[OverlappingEditsError] when edits overlap.
func (b *Builder) Build() (SuggestedFix, error) {
	if b.err != nil {
		return SuggestedFix{}, b.err
	}

	edits := slices.Clone(b.edits)
	sortEdits(edits)

	if err := checkEdits(edits); err != nil {
		return SuggestedFix{}, err
	}

	for _, imp := range b.imports {
		if slices.Contains(b.removals, imp.Path) {
			return SuggestedFix{}, fmt.Errorf("%w: %q", ErrImportConflict, imp.Path)
		}
	}

	return SuggestedFix{
		Description:     b.description,
		Edits:           edits,
		ImportsToAdd:    slices.Clone(b.imports),
		ImportsToRemove: slices.Clone(b.removals),
	}, nil
}

func (b *Builder) offsets(pos, end token.Pos) (start, stop int, ok bool) {
	if b.err != nil {
		return 0, 0, false
	}

	base := b.handle.Base()
	if !pos.IsValid() || int(pos) < base || end < pos || int(end) > base+b.handle.Size() {
		b.fail(fmt.Errorf("%w: [%d,%d) in %s", ErrOutsideFile, pos, end, b.handle.Name()))

		return 0, 0, false
	}

	return int(pos) - base, int(end) - base, true
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
