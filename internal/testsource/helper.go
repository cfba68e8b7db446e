// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package testsource provides utilities for parsing and type-checking Go source code in tests.
//
// It handles the boilerplate of parsing and type-checking Go source fragments
// and wraps the result into a [tree.Unit].
package testsource

import (
	"bytes"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"fillmore-labs.com/patternguard/tree"
)

const (
	testpkg  = "test"
	filename = "test.go"
)

// Parse parses a Go source code fragment into an AST.
// The provided source `src` is automatically wrapped in a function body `func _() { ... }`
// within a package `test`, with the given imports. This allows testing statement-level
// code fragments without manually constructing the surrounding package and function scaffolding.
//
// Returns the source text and the parsed file.
func Parse(tb testing.TB, src string, imports ...string) (*token.FileSet, *ast.File, []byte) {
	tb.Helper()

	return ParseFile(tb, wrapSource(src, imports))
}

// ParseFile parses a complete Go source file.
func ParseFile(tb testing.TB, src []byte) (*token.FileSet, *ast.File, []byte) {
	tb.Helper()

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return fset, f, src
}

// Check performs type checking on the provided AST file.
// It creates and returns a fully type-checked *types.Package and *types.Info.
func Check(tb testing.TB, fset *token.FileSet, f *ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := NewInfo()

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if err != nil {
		tb.Fatalf("failed to type Check source: %v", err)
	}

	return pkg, info
}

// NewInfo returns a [types.Info] with all maps the engine consults.
func NewInfo() *types.Info {
	return &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
}

// Unit parses and type-checks a statement fragment (see [Parse]) into a [tree.Unit].
func Unit(tb testing.TB, src string, imports ...string) *tree.Unit {
	tb.Helper()

	return FileUnit(tb, wrapSource(src, imports))
}

// FileUnit parses and type-checks a complete Go source file into a [tree.Unit].
func FileUnit(tb testing.TB, src []byte) *tree.Unit {
	tb.Helper()

	fset, f, src := ParseFile(tb, src)
	pkg, info := Check(tb, fset, f)

	u, err := tree.NewUnit(fset, f, pkg, info, src)
	if err != nil {
		tb.Fatalf("Can't create unit: %v", err)
	}

	return u
}

// First returns the first node of the given kind in the unit.
func First(tb testing.TB, u *tree.Unit, kind tree.Kind) tree.Node {
	tb.Helper()

	for n := range u.Root().Preorder(kind) {
		return n
	}

	tb.Fatalf("No %s found", kind)

	return tree.Node{}
}

func wrapSource(src string, imports []string) []byte {
	var srcFile bytes.Buffer

	srcFile.WriteString("package " + testpkg + "\n\n") // ignore error

	for _, imp := range imports {
		srcFile.WriteString("import \"" + imp + "\"\n") // ignore error
	}

	srcFile.WriteString("\nfunc _() {\n") // ignore error
	srcFile.WriteString(src)              // ignore error
	srcFile.WriteString("\n}\n")          // ignore error

	return srcFile.Bytes()
}
