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
	"go/types"

	"golang.org/x/tools/go/ast/edge"
)

// As returns the underlying [ast.Node] of n as T.
//
//	if call, ok := tree.As[*ast.CallExpr](n); ok { ... }
func As[T ast.Node](n Node) (T, bool) {
	t, ok := n.AST().(T)

	return t, ok
}

// Child returns the child of n on the given edge. idx selects an element of
// list-valued edges and is ignored otherwise.
func (n Node) Child(k edge.Kind, idx int) (Node, bool) {
	for c := range n.Children() {
		ck, ci := c.c.ParentEdge()
		if ck == k && (ci < 0 || ci == idx) {
			return c, true
		}
	}

	return Node{}, false
}

// Call returns n as a call expression.
func (n Node) Call() (*ast.CallExpr, bool) { return As[*ast.CallExpr](n) }

// Ident returns n as an identifier.
func (n Node) Ident() (*ast.Ident, bool) { return As[*ast.Ident](n) }

// Assign returns n as an assignment statement.
func (n Node) Assign() (*ast.AssignStmt, bool) { return As[*ast.AssignStmt](n) }

// Lit returns n as a basic literal.
func (n Node) Lit() (*ast.BasicLit, bool) { return As[*ast.BasicLit](n) }

// Selector returns n as a selector expression.
func (n Node) Selector() (*ast.SelectorExpr, bool) { return As[*ast.SelectorExpr](n) }

// Binary returns n as a binary expression.
func (n Node) Binary() (*ast.BinaryExpr, bool) { return As[*ast.BinaryExpr](n) }

// Callee returns the function or method called by a call expression node.
// Conversions and calls of function values have no callee.
func (n Node) Callee() (*types.Func, bool) {
	obj, ok := n.Symbol()
	if !ok || n.Kind() != KindCallExpr {
		return nil, false
	}

	fn, ok := obj.(*types.Func)

	return fn, ok
}

// Arguments returns the argument nodes of a call expression.
func (n Node) Arguments() []Node {
	call, ok := As[*ast.CallExpr](n)
	if !ok {
		return nil
	}

	args := make([]Node, 0, len(call.Args))
	for _, arg := range call.Args {
		if a, ok := n.Find(arg); ok {
			args = append(args, a)
		}
	}

	return args
}

// Conversion reports whether n is a type conversion T(x) and returns the target type.
func (n Node) Conversion() (types.Type, bool) {
	call, ok := As[*ast.CallExpr](n)
	if !ok || len(call.Args) != 1 {
		return nil, false
	}

	tv, ok := n.u.info.Types[call.Fun]
	if !ok || !tv.IsType() || !ValidType(tv.Type) {
		return nil, false
	}

	return tv.Type, true
}
