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

package tree

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"
)

// ErrNoFileInfo is returned when a file is not registered in the [token.FileSet].
var ErrNoFileInfo = errors.New("file has no position information")

// Unit is one compilation unit: a parsed and type-checked source file.
//
// A Unit is immutable once built. The engine only reads from it,
// fixes are computed as separate text edits.
type Unit struct {
	fset *token.FileSet
	file *ast.File
	pkg  *types.Package
	info *types.Info
	src  []byte

	handle    *token.File
	root      inspector.Cursor
	generated bool
}

// NewUnit creates a [Unit] for a single file, building a private [inspector.Inspector].
func NewUnit(fset *token.FileSet, file *ast.File, pkg *types.Package, info *types.Info, src []byte) (*Unit, error) {
	if file == nil {
		return nil, fmt.Errorf("tree: nil file: %w", ErrNoFileInfo)
	}

	in := inspector.New([]*ast.File{file})
	for c := range in.Root().Children() {
		return UnitAt(fset, c, pkg, info, src)
	}

	return nil, fmt.Errorf("tree: file %s not found in inspector: %w", file.Name.Name, ErrNoFileInfo)
}

// UnitAt creates a [Unit] from an [inspector.Cursor] positioned at an *[ast.File].
// This allows sharing one inspector over all files of a package.
func UnitAt(fset *token.FileSet, c inspector.Cursor, pkg *types.Package, info *types.Info, src []byte) (*Unit, error) {
	file, ok := c.Node().(*ast.File)
	if !ok {
		return nil, fmt.Errorf("tree: cursor at %T, expected *ast.File", c.Node())
	}

	handle := fset.File(file.FileStart)
	if handle == nil {
		return nil, fmt.Errorf("tree: file %s: %w", file.Name.Name, ErrNoFileInfo)
	}

	if info == nil {
		info = &types.Info{}
	}

	return &Unit{
		fset:      fset,
		file:      file,
		pkg:       pkg,
		info:      info,
		src:       src,
		handle:    handle,
		root:      c,
		generated: ast.IsGenerated(file),
	}, nil
}

// Root returns the [Node] of the *[ast.File].
func (u *Unit) Root() Node { return Node{c: u.root, u: u} }

// FileSet returns the [token.FileSet] of the unit.
func (u *Unit) FileSet() *token.FileSet { return u.fset }

// File returns the syntax tree of the unit.
func (u *Unit) File() *ast.File { return u.file }

// Package returns the type-checked package, which may be nil for erroneous input.
func (u *Unit) Package() *types.Package { return u.pkg }

// Info returns the type information of the package. It is never nil, but may be incomplete.
func (u *Unit) Info() *types.Info { return u.info }

// Source returns the source text of the unit. It may be nil when the host did not provide it.
func (u *Unit) Source() []byte { return u.src }

// TokenFile returns the position information of the unit.
func (u *Unit) TokenFile() *token.File { return u.handle }

// Filename returns the file name as recorded in the [token.FileSet].
func (u *Unit) Filename() string { return u.handle.Name() }

// Generated reports whether the file carries a "Code generated ... DO NOT EDIT." comment.
func (u *Unit) Generated() bool { return u.generated }

// Position returns the line and column information for pos.
func (u *Unit) Position(pos token.Pos) token.Position {
	return u.handle.PositionFor(pos, false)
}

// Contains reports whether the range [pos, end) lies within this unit.
func (u *Unit) Contains(pos, end token.Pos) bool {
	base := token.Pos(u.handle.Base())

	return pos.IsValid() && base <= pos && pos <= end && end <= base+token.Pos(u.handle.Size())
}

// Text returns the source text in [pos, end), or the empty string if unavailable.
func (u *Unit) Text(pos, end token.Pos) string {
	if u.src == nil || !u.Contains(pos, end) {
		return ""
	}

	start, stop := u.handle.Offset(pos), u.handle.Offset(end)
	if stop > len(u.src) {
		return ""
	}

	return string(u.src[start:stop])
}

// NodeOf returns the [Node] for n, which must be part of this unit.
func (u *Unit) NodeOf(n ast.Node) (Node, bool) {
	c, ok := u.root.FindNode(n)
	if !ok {
		return Node{}, false
	}

	return Node{c: c, u: u}, true
}

// NodeAt returns the innermost [Node] enclosing the range [pos, end).
func (u *Unit) NodeAt(pos, end token.Pos) (Node, bool) {
	if !u.Contains(pos, end) {
		return Node{}, false
	}

	c, ok := u.root.FindByPos(pos, end)
	if !ok {
		return Node{}, false
	}

	return Node{c: c, u: u}, true
}
