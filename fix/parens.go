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
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/edge"

	"fillmore-labs.com/patternguard/tree"
)

// Parenthesize returns text wrapped in parentheses when replacing the
// expression n with an expression of the given operator precedence would
// bind differently in the context of n. Use [token.UnaryPrec] or higher for
// operands that never need parentheses.
func Parenthesize(n tree.Node, text string, prec int) string {
	if needsParens(n, prec) {
		return "(" + text + ")"
	}

	return text
}

func needsParens(n tree.Node, prec int) bool {
	p, ok := n.Parent()
	if !ok {
		return false
	}

	switch parent := p.AST().(type) {
	case *ast.BinaryExpr:
		if parent.Op.Precedence() > prec {
			return true
		}
		// left-associative operators
		k, _ := n.Edge()

		return k == edge.BinaryExpr_Y && parent.Op.Precedence() == prec

	case *ast.UnaryExpr, *ast.StarExpr:
		return prec < token.UnaryPrec

	case *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr, *ast.SliceExpr, *ast.TypeAssertExpr:
		k, _ := n.Edge()

		return prec < token.UnaryPrec && (k == edge.SelectorExpr_X || k == edge.IndexExpr_X ||
			k == edge.IndexListExpr_X || k == edge.SliceExpr_X || k == edge.TypeAssertExpr_X)

	case *ast.CallExpr:
		k, _ := n.Edge()

		return prec < token.UnaryPrec && k == edge.CallExpr_Fun

	default:
		return false
	}
}

// CompositeLitNeedsParens reports whether the expression n contains a
// composite literal that is not delimited by brackets within n. Such an
// expression needs parentheses when moved into the header of an if, for or
// switch statement.
func CompositeLitNeedsParens(n tree.Node) bool {
	if n.Kind() == tree.KindCompositeLit {
		return true
	}

	root := n.Cursor().Index()

compLits:
	for c := range n.Preorder(tree.KindCompositeLit) {
		for p := c; p.Cursor().Index() != root; {
			switch k, _ := p.Edge(); k {
			case edge.ParenExpr_X,
				edge.BlockStmt_List, edge.CallExpr_Args, edge.IndexExpr_Index,
				edge.SliceExpr_Low, edge.SliceExpr_High, edge.SliceExpr_Max,
				edge.CompositeLit_Elts, edge.KeyValueExpr_Value:
				continue compLits
			}

			var ok bool
			if p, ok = p.Parent(); !ok {
				break
			}
		}

		return true
	}

	return false
}
