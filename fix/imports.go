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
	"cmp"
	"go/ast"
	"go/parser"
	"go/token"
	"slices"
	"strconv"
	"strings"
)

// MergeImports adds and removes imports in the Go source src.
//
// When the resulting import set differs from the existing one, the region
// from the first to the last import declaration is replaced by a single
// declaration in canonical order: standard library imports first, then all
// others, each group sorted by path. Line comments of kept imports survive.
// Imports are only removed when listed in remove.
func MergeImports(src []byte, add []Import, remove []string) ([]byte, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "", src, parser.ImportsOnly|parser.ParseComments)
	if err != nil {
		return nil, err
	}

	handle := fset.File(f.Pos())

	existing := make([]Import, 0, len(f.Imports))
	comments := make(map[Import]string)

	for _, spec := range f.Imports {
		imp, err := importOf(spec)
		if err != nil {
			return nil, err
		}

		existing = append(existing, imp)

		if spec.Comment != nil {
			comments[imp] = commentText(spec.Comment)
		}
	}

	result, changed := mergeImportSet(existing, add, remove)
	if !changed {
		return src, nil
	}

	var start, end int

	if len(f.Decls) == 0 {
		start = handle.Offset(f.Name.End())
		end = start

		var b strings.Builder
		b.WriteString("\n\n")
		writeImportDecl(&b, result, comments)

		return replaceRange(src, start, end, b.String()), nil
	}

	start = handle.Offset(f.Decls[0].Pos())
	end = handle.Offset(f.Decls[len(f.Decls)-1].End())

	if len(result) == 0 {
		for end < len(src) && (src[end] == '\n' || src[end] == '\r') {
			end++
		}

		return replaceRange(src, start, end, ""), nil
	}

	var b strings.Builder
	writeImportDecl(&b, result, comments)

	return replaceRange(src, start, end, b.String()), nil
}

func importOf(spec *ast.ImportSpec) (Import, error) {
	path, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		return Import{}, err
	}

	imp := Import{Path: path}
	if spec.Name != nil {
		imp.Name = spec.Name.Name
	}

	return imp, nil
}

func commentText(g *ast.CommentGroup) string {
	texts := make([]string, 0, len(g.List))
	for _, c := range g.List {
		texts = append(texts, c.Text)
	}

	return strings.Join(texts, " ")
}

// mergeImportSet returns existing minus remove plus add, and whether that differs from existing.
func mergeImportSet(existing, add []Import, remove []string) ([]Import, bool) {
	result := make([]Import, 0, len(existing)+len(add))
	changed := false

	for _, imp := range existing {
		if slices.Contains(remove, imp.Path) {
			changed = true

			continue
		}

		result = append(result, imp)
	}

	// Blank and dot imports never provide the package name, so an unnamed
	// import is only present when imported without a name.
	for _, imp := range add {
		if slices.ContainsFunc(result, func(e Import) bool {
			return e.Path == imp.Path && e.Name == imp.Name
		}) {
			continue
		}

		result = append(result, imp)
		changed = true
	}

	return result, changed
}

// Standard reports whether path names a standard library package.
// Standard library import paths have no dot in their first element.
func Standard(path string) bool {
	first, _, _ := strings.Cut(path, "/")

	return !strings.Contains(first, ".")
}

// SortImports sorts imports in canonical order.
func SortImports(imports []Import) {
	slices.SortStableFunc(imports, func(a, b Import) int {
		sa, sb := Standard(a.Path), Standard(b.Path)
		switch {
		case sa && !sb:
			return -1
		case !sa && sb:
			return 1
		}

		return cmp.Or(strings.Compare(a.Path, b.Path), strings.Compare(a.Name, b.Name))
	})
}

func writeImportDecl(b *strings.Builder, imports []Import, comments map[Import]string) {
	imports = slices.Clone(imports)
	SortImports(imports)

	writeSpec := func(imp Import) {
		b.WriteString(imp.String())

		if c, ok := comments[imp]; ok {
			b.WriteString(" ")
			b.WriteString(c)
		}
	}

	if len(imports) == 1 {
		b.WriteString("import ")
		writeSpec(imports[0])

		return
	}

	b.WriteString("import (\n")

	for i, imp := range imports {
		if i > 0 && Standard(imports[i-1].Path) != Standard(imp.Path) {
			b.WriteString("\n")
		}

		b.WriteString("\t")
		writeSpec(imp)
		b.WriteString("\n")
	}

	b.WriteString(")")
}

func replaceRange(src []byte, start, end int, text string) []byte {
	out := make([]byte, 0, len(src)-(end-start)+len(text))
	out = append(out, src[:start]...)
	out = append(out, text...)
	out = append(out, src[end:]...)

	return out
}
