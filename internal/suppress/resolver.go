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

// Package suppress decides whether findings are silenced by //nolint: directives or by generated-code settings.
package suppress

import (
	"go/ast"
	"go/token"
	"slices"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/tree"
)

// Resolver answers suppression queries for one compilation unit.
//
// A finding is suppressed when a directive naming its checker is attached
// to the flagged node or one of its enclosing declarations or statements:
// the doc comment of a file, declaration, spec or field, or a trailing
// comment on the first line of a statement. Suppression is monotonic; an
// inner scope can not re-enable a checker.
type Resolver struct {
	unit      *tree.Unit
	generated bool
	cache     map[ast.Node][]Directive
}

// New creates a [Resolver]. When disableWarningsInGenerated is set, all
// findings below error severity in generated files are suppressed.
func New(u *tree.Unit, disableWarningsInGenerated bool) *Resolver {
	return &Resolver{
		unit:      u,
		generated: disableWarningsInGenerated && u.Generated(),
		cache:     make(map[ast.Node][]Directive),
	}
}

// Suppressed reports whether a finding of checker d with severity sev at n is suppressed.
func (r *Resolver) Suppressed(d bugcheck.Descriptor, sev bugcheck.Severity, n tree.Node) bool {
	if !d.Suppressible() {
		return false
	}

	if r.generated && sev < bugcheck.Error {
		return true
	}

	names := d.Names()

	if r.covers(n, names) {
		return true
	}

	for a := range n.Ancestors() {
		if r.covers(a, names) {
			return true
		}
	}

	return false
}

// SuppressedRange is like [Resolver.Suppressed] for the innermost node enclosing [pos, end).
func (r *Resolver) SuppressedRange(d bugcheck.Descriptor, sev bugcheck.Severity, pos, end token.Pos) bool {
	n, ok := r.unit.NodeAt(pos, end)
	if !ok {
		n = r.unit.Root()
	}

	return r.Suppressed(d, sev, n)
}

func (r *Resolver) covers(n tree.Node, names []string) bool {
	return slices.ContainsFunc(r.directives(n), func(d Directive) bool { return d.Covers(names) })
}

func (r *Resolver) directives(n tree.Node) []Directive {
	node := n.AST()
	if node == nil {
		return nil
	}

	if ds, ok := r.cache[node]; ok {
		return ds
	}

	var ds []Directive

	switch x := node.(type) {
	case *ast.File:
		ds = groupDirectives(x.Doc)

	case *ast.FuncDecl:
		ds = groupDirectives(x.Doc)

	case *ast.GenDecl:
		ds = groupDirectives(x.Doc)

	case *ast.TypeSpec:
		ds = append(groupDirectives(x.Doc), groupDirectives(x.Comment)...)

	case *ast.ValueSpec:
		ds = append(groupDirectives(x.Doc), groupDirectives(x.Comment)...)

	case *ast.Field:
		ds = append(groupDirectives(x.Doc), groupDirectives(x.Comment)...)

	case *ast.ImportSpec:
		ds = append(groupDirectives(x.Doc), groupDirectives(x.Comment)...)

	case ast.Stmt:
		if _, ok := x.(*ast.BlockStmt); !ok {
			ds = r.lineDirectives(x.Pos())
		}
	}

	r.cache[node] = ds

	return ds
}

// lineDirectives finds directives in the comments after pos on the same line.
func (r *Resolver) lineDirectives(pos token.Pos) []Directive {
	comments := r.unit.File().Comments

	i, _ := slices.BinarySearchFunc(comments, pos,
		func(c *ast.CommentGroup, p token.Pos) int { return int(c.Pos() - p) })

	handle := r.unit.TokenFile()
	line := handle.Line(pos)

	var ds []Directive

	for _, g := range comments[i:] {
		if handle.Line(g.Pos()) != line {
			break
		}

		for _, c := range g.List {
			if handle.Line(c.Pos()) != line {
				break
			}

			if d, ok := ParseDirective(c); ok {
				ds = append(ds, d)
			}
		}
	}

	return ds
}
