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

package bugpatterns

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ast/edge"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/fix"
	"fillmore-labs.com/patternguard/tree"
)

// SelfAssignment flags assignments of a variable to itself.
//
// The fix removes the self-assigned pairs, or the whole statement when
// nothing else remains.
func SelfAssignment() bugcheck.Checker {
	return bugcheck.New(bugcheck.Descriptor{
		Name:     "SelfAssignment",
		AltNames: []string{"selfassign"},
		Summary:  "Variable is assigned to itself",
		Severity: bugcheck.Error,
		Kinds:    []tree.Kind{tree.KindAssignStmt},
		Tags:     []string{"Correctness"},
		URL:      docURL + "SelfAssignment",
	}, matchSelfAssignment)
}

func matchSelfAssignment(n tree.Node, s *bugcheck.State) (bugcheck.Finding, bool) {
	assign, ok := n.Assign()
	if !ok || assign.Tok != token.ASSIGN || len(assign.Lhs) != len(assign.Rhs) {
		return bugcheck.Finding{}, false
	}

	info := n.Unit().Info()

	var self, lhs, rhs []string

	for i, l := range assign.Lhs {
		if sameVariable(info, l, assign.Rhs[i]) {
			self = append(self, types.ExprString(l))

			continue
		}

		lhs = append(lhs, n.Unit().Text(l.Pos(), l.End()))
		rhs = append(rhs, n.Unit().Text(assign.Rhs[i].Pos(), assign.Rhs[i].End()))
	}

	if len(self) == 0 {
		return bugcheck.Finding{}, false
	}

	f := s.Finding(n)
	if len(self) == 1 {
		f = f.WithMessage("%s is assigned to itself", self[0])
	} else {
		f = f.WithMessage("%s are assigned to themselves", strings.Join(self, ", "))
	}

	if len(lhs) > 0 {
		b := s.NewFix("remove self-assignment").Replace(n, strings.Join(lhs, ", ")+" = "+strings.Join(rhs, ", "))

		return f.WithFix(b), true
	}

	if !inStatementList(n) {
		return f, true
	}

	return f.WithFix(deleteStatement(s, n, "remove self-assignment")), true
}

// sameVariable reports whether l and r denote the same variable without side effects.
func sameVariable(info *types.Info, l, r ast.Expr) bool {
	l, r = ast.Unparen(l), ast.Unparen(r)

	switch l := l.(type) {
	case *ast.Ident:
		r, ok := r.(*ast.Ident)
		if !ok || l.Name == "_" || l.Name != r.Name {
			return false
		}

		obj := info.ObjectOf(l)

		_, isVar := obj.(*types.Var)

		return isVar && obj == info.ObjectOf(r)

	case *ast.SelectorExpr:
		r, ok := r.(*ast.SelectorExpr)
		if !ok || l.Sel.Name != r.Sel.Name {
			return false
		}

		sel := info.Selections[l]
		if sel == nil || sel.Kind() != types.FieldVal || sel.Obj() != info.ObjectOf(r.Sel) {
			return false
		}

		return sameVariable(info, l.X, r.X)

	default:
		return false
	}
}

// inStatementList reports whether n can be deleted without breaking the syntax.
func inStatementList(n tree.Node) bool {
	switch k, _ := n.Edge(); k {
	case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body:
		return true

	default:
		return false
	}
}

// deleteStatement removes n, including its line when nothing else is on it.
func deleteStatement(s *bugcheck.State, n tree.Node, description string) *fix.Builder {
	b := s.NewFixIn(n, description)

	u := n.Unit()
	tf, src := u.TokenFile(), u.Source()

	pos, end := n.Pos(), n.End()
	startLine, endLine := tf.Line(pos), tf.Line(end)

	lineStart := tf.LineStart(startLine)
	if strings.TrimSpace(string(src[tf.Offset(lineStart):tf.Offset(pos)])) != "" {
		return b.ReplaceRange(pos, end, "")
	}

	next := token.Pos(tf.Base() + tf.Size())
	if endLine < tf.LineCount() {
		next = tf.LineStart(endLine + 1)
	}

	if strings.TrimSpace(string(src[tf.Offset(end):tf.Offset(next)])) != "" {
		return b.ReplaceRange(pos, end, "")
	}

	return b.ReplaceRange(lineStart, next, "")
}
