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
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"iter"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

// Node is a read-only view of a syntax tree node together with its compilation unit.
//
// The zero Node is invalid; all queries on it return zero values.
type Node struct {
	c inspector.Cursor
	u *Unit
}

// Valid reports whether n refers to a syntax tree node.
func (n Node) Valid() bool { return n.u != nil && n.c.Node() != nil }

// AST returns the underlying [ast.Node], or nil.
func (n Node) AST() ast.Node {
	if n.u == nil {
		return nil
	}

	return n.c.Node()
}

// Cursor returns the [inspector.Cursor] of n.
func (n Node) Cursor() inspector.Cursor { return n.c }

// Unit returns the compilation unit n belongs to.
func (n Node) Unit() *Unit { return n.u }

// Kind returns the [Kind] of n.
func (n Node) Kind() Kind { return KindOf(n.AST()) }

// Pos implements [analysis.Range].
func (n Node) Pos() token.Pos {
	if a := n.AST(); a != nil {
		return a.Pos()
	}

	return token.NoPos
}

// End implements [analysis.Range].
func (n Node) End() token.Pos {
	if a := n.AST(); a != nil {
		return a.End()
	}

	return token.NoPos
}

// Position returns the start position of n.
func (n Node) Position() token.Position {
	if !n.Valid() {
		return token.Position{}
	}

	return n.u.Position(n.Pos())
}

// Text returns the source text of n.
func (n Node) Text() string {
	if !n.Valid() {
		return ""
	}

	return n.u.Text(n.Pos(), n.End())
}

// Parent returns the parent node. The *[ast.File] has no parent.
func (n Node) Parent() (Node, bool) {
	if !n.Valid() {
		return Node{}, false
	}

	if _, ok := n.c.Node().(*ast.File); ok {
		return Node{}, false
	}

	p := n.c.Parent()
	if p.Node() == nil {
		return Node{}, false
	}

	return Node{c: p, u: n.u}, true
}

// Edge returns the relation of n to its parent.
func (n Node) Edge() (edge.Kind, int) {
	if _, ok := n.Parent(); !ok {
		return edge.Invalid, -1
	}

	return n.c.ParentEdge()
}

// Children yields the direct children of n in source order.
func (n Node) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if !n.Valid() {
			return
		}

		for c := range n.c.Children() {
			if !yield(Node{c: c, u: n.u}) {
				return
			}
		}
	}
}

// Ancestors yields the parent of n, its parent and so on, up to the *[ast.File].
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for p, ok := n.Parent(); ok; p, ok = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// Enclosing returns the closest ancestor of one of the given kinds.
func (n Node) Enclosing(kinds ...Kind) (Node, bool) {
	for p := range n.Ancestors() {
		k := p.Kind()
		for _, want := range kinds {
			if k == want {
				return p, true
			}
		}
	}

	return Node{}, false
}

// Preorder yields n and its descendants of the given kinds in depth-first pre-order.
// Without kinds all descendants are visited.
func (n Node) Preorder(kinds ...Kind) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if !n.Valid() {
			return
		}

		types, ok := Prototypes(kinds...)
		if !ok {
			types = nil
		}

		for c := range n.c.Preorder(types...) {
			if !yield(Node{c: c, u: n.u}) {
				return
			}
		}
	}
}

// Type returns the type of an expression node.
// ok is false for non-expressions and for unresolvable (invalid) types.
func (n Node) Type() (t types.Type, ok bool) {
	if !n.Valid() {
		return nil, false
	}

	switch a := n.c.Node().(type) {
	case *ast.Ident:
		if obj := n.u.info.ObjectOf(a); obj != nil {
			t = obj.Type()
		} else {
			t = n.u.info.TypeOf(a)
		}

	case ast.Expr:
		t = n.u.info.TypeOf(a)

	case *ast.ValueSpec:
		if len(a.Names) > 0 {
			if obj := n.u.info.ObjectOf(a.Names[0]); obj != nil {
				t = obj.Type()
			}
		}

	case *ast.Field:
		t = n.u.info.TypeOf(a.Type)
	}

	if !ValidType(t) {
		return nil, false
	}

	return t, true
}

// Symbol resolves the named entity referenced or declared by n.
//
// It supports identifiers, selector expressions, calls (the callee),
// function declarations and type specifications.
// ok is false when the symbol is unresolvable, which happens on erroneous trees.
func (n Node) Symbol() (obj types.Object, ok bool) {
	if !n.Valid() {
		return nil, false
	}

	info := n.u.info

	switch a := n.c.Node().(type) {
	case *ast.Ident:
		obj = info.ObjectOf(a)

	case *ast.SelectorExpr:
		obj = info.ObjectOf(a.Sel)

	case *ast.CallExpr:
		obj = typeutil.Callee(info, a)

	case *ast.FuncDecl:
		obj = info.ObjectOf(a.Name)

	case *ast.TypeSpec:
		obj = info.ObjectOf(a.Name)
	}

	if obj == nil || !ValidType(obj.Type()) {
		return nil, false
	}

	return obj, true
}

// Constant returns the constant value of an expression, if it is a constant.
func (n Node) Constant() (constant.Value, bool) {
	e, ok := n.AST().(ast.Expr)
	if !ok {
		return nil, false
	}

	tv, ok := n.u.info.Types[e]
	if !ok || tv.Value == nil || tv.Value.Kind() == constant.Unknown {
		return nil, false
	}

	return tv.Value, true
}

// Find returns the [Node] for a descendant sub of n.
func (n Node) Find(sub ast.Node) (Node, bool) {
	if !n.Valid() || sub == nil {
		return Node{}, false
	}

	c, ok := n.c.FindNode(sub)
	if !ok {
		return Node{}, false
	}

	return Node{c: c, u: n.u}, true
}

// ValidType reports whether t is a resolved type.
func ValidType(t types.Type) bool {
	if t == nil {
		return false
	}

	b, ok := t.(*types.Basic)

	return !ok || b.Kind() != types.Invalid
}
