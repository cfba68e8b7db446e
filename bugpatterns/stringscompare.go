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
	"go/constant"
	"go/token"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/ast/edge"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/fix"
	"fillmore-labs.com/patternguard/match"
	"fillmore-labs.com/patternguard/tree"
)

var compareCall = match.AllOf(match.StaticCall("strings", "Compare"), match.ArgumentCount(2))

// StringsCompare flags comparisons of the result of strings.Compare with zero,
// which read better as direct string comparisons.
func StringsCompare() bugcheck.Checker {
	return bugcheck.New(bugcheck.Descriptor{
		Name:     "StringsCompare",
		Summary:  "Compare strings with comparison operators",
		Severity: bugcheck.Suggestion,
		Kinds:    []tree.Kind{tree.KindBinaryExpr},
		Tags:     []string{"Simplification"},
		URL:      docURL + "StringsCompare",
	}, func(n tree.Node, s *bugcheck.State) (bugcheck.Finding, bool) {
		call, op, swapped, ok := compareWithZero(n, s)
		if !ok {
			return bugcheck.Finding{}, false
		}

		args := call.Arguments()

		a, b := args[0].Text(), args[1].Text()
		if swapped {
			a, b = b, a
		}

		text := a + " " + op.String() + " " + b
		f := s.Finding(n).WithMessage("use %s instead of strings.Compare", text)

		fb := s.NewFix("compare directly").Replace(n, fix.Parenthesize(n, text, op.Precedence()))
		if onlyComparisons(n.Unit(), s) {
			fb.RemoveImport("strings")
		}

		return f.WithFix(fb), true
	})
}

// compareWithZero matches strings.Compare(a, b) OP 0 and 0 OP strings.Compare(a, b).
func compareWithZero(n tree.Node, s *bugcheck.State) (call tree.Node, op token.Token, swapped, ok bool) {
	bin, ok := n.Binary()
	if !ok {
		return tree.Node{}, token.ILLEGAL, false, false
	}

	switch bin.Op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
	default:
		return tree.Node{}, token.ILLEGAL, false, false
	}

	x, okX := n.Child(edge.BinaryExpr_X, -1)
	y, okY := n.Child(edge.BinaryExpr_Y, -1)

	switch {
	case !okX || !okY:
		return tree.Node{}, token.ILLEGAL, false, false

	case compareCall.Matches(x, s) && isZero(y):
		return x, bin.Op, false, true

	case isZero(x) && compareCall.Matches(y, s):
		return y, bin.Op, true, true

	default:
		return tree.Node{}, token.ILLEGAL, false, false
	}
}

func isZero(n tree.Node) bool {
	v, ok := n.Constant()

	return ok && v.Kind() == constant.Int && constant.Sign(v) == 0
}

// onlyComparisons reports whether every use of package strings in u is a
// strings.Compare call matched by this checker, so the import becomes unused.
func onlyComparisons(u *tree.Unit, s *bugcheck.State) bool {
	for _, spec := range u.File().Imports {
		if path, _ := strconv.Unquote(spec.Path.Value); path == "strings" && spec.Name != nil &&
			(spec.Name.Name == "." || spec.Name.Name == "_") {
			return false
		}
	}

	for sel := range u.Root().Preorder(tree.KindSelectorExpr) {
		x, _ := sel.AST().(*ast.SelectorExpr)

		id, ok := x.X.(*ast.Ident)
		if !ok {
			continue
		}

		pn, ok := u.Info().Uses[id].(*types.PkgName)
		if !ok || pn.Imported().Path() != "strings" {
			continue
		}

		if k, _ := sel.Edge(); k != edge.CallExpr_Fun {
			return false
		}

		call, _ := sel.Parent()

		bin, ok := call.Parent()
		if !ok {
			return false
		}

		if c, _, _, ok := compareWithZero(bin, s); !ok || c.Cursor() != call.Cursor() {
			return false
		}
	}

	return true
}
