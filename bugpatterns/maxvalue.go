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

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/match"
	"fillmore-labs.com/patternguard/tree"
)

type intRange struct {
	bits   uint
	signed bool
	name   string
}

var intRanges = map[types.BasicKind]intRange{
	types.Int8:   {8, true, "Int8"},
	types.Int16:  {16, true, "Int16"},
	types.Int32:  {32, true, "Int32"},
	types.Int64:  {64, true, "Int64"},
	types.Uint8:  {8, false, "Uint8"},
	types.Uint16: {16, false, "Uint16"},
	types.Uint32: {32, false, "Uint32"},
	types.Uint64: {64, false, "Uint64"},
}

// extreme returns the name of the math constant equal to v, if any.
func (r intRange) extreme(v constant.Value) (string, bool) {
	one := constant.MakeInt64(1)

	var maxValue, minValue constant.Value
	if r.signed {
		maxValue = constant.BinaryOp(constant.Shift(one, token.SHL, r.bits-1), token.SUB, one)
		minValue = constant.UnaryOp(token.SUB, constant.Shift(one, token.SHL, r.bits-1), 0)
	} else {
		maxValue = constant.BinaryOp(constant.Shift(one, token.SHL, r.bits), token.SUB, one)
	}

	switch {
	case constant.Compare(v, token.EQL, maxValue):
		return "Max" + r.name, true

	case minValue != nil && constant.Compare(v, token.EQL, minValue):
		return "Min" + r.name, true

	default:
		return "", false
	}
}

// MaxValueLiteral flags integer literals converted to a sized integer type
// that spell out the extreme value of that type, like uint16(65535).
//
// The fix uses the corresponding constant of package math.
func MaxValueLiteral() bugcheck.Checker {
	conversion := match.AllOf(match.IsConversion(), match.Argument(0, isIntLiteral))

	return bugcheck.New(bugcheck.Descriptor{
		Name:     "MaxValueLiteral",
		Summary:  "Prefer the math constant for extreme integer values",
		Severity: bugcheck.Suggestion,
		Kinds:    []tree.Kind{tree.KindCallExpr},
		Tags:     []string{"Readability"},
		URL:      docURL + "MaxValueLiteral",
	}, func(n tree.Node, s *bugcheck.State) (bugcheck.Finding, bool) {
		if !conversion.Matches(n, s) {
			return bugcheck.Finding{}, false
		}

		t, _ := n.Conversion()

		b, ok := t.(*types.Basic)
		if !ok {
			return bugcheck.Finding{}, false
		}

		r, ok := intRanges[b.Kind()]
		if !ok {
			return bugcheck.Finding{}, false
		}

		arg := n.Arguments()[0]

		v, ok := arg.Constant()
		if !ok {
			return bugcheck.Finding{}, false
		}

		name, ok := r.extreme(v)
		if !ok {
			return bugcheck.Finding{}, false
		}

		u := n.Unit()
		if pkg := u.Package(); pkg != nil && pkg.Path() == "math" {
			return bugcheck.Finding{}, false
		}

		f := s.Finding(arg).WithMessage("%s is math.%s", arg.Text(), name)

		local, imported, ok := mathName(u, arg.Pos())
		if !ok {
			return f, true
		}

		fb := s.NewFix("use math."+name).Replace(arg, local+"."+name)
		if !imported {
			fb.AddImport("math")
		}

		return f.WithFix(fb), true
	})
}

// isIntLiteral matches integer literals, optionally negated.
func isIntLiteral(n tree.Node, _ *bugcheck.State) bool {
	e, ok := n.AST().(ast.Expr)
	if !ok {
		return false
	}

	if u, ok := ast.Unparen(e).(*ast.UnaryExpr); ok && (u.Op == token.SUB || u.Op == token.ADD) {
		e = u.X
	}

	lit, ok := ast.Unparen(e).(*ast.BasicLit)

	return ok && lit.Kind == token.INT
}

// mathName returns how package math is referred to at pos. ok is false when
// the name is taken by something else.
func mathName(u *tree.Unit, pos token.Pos) (local string, imported, ok bool) {
	for _, spec := range u.File().Imports {
		if path, err := strconv.Unquote(spec.Path.Value); err != nil || path != "math" {
			continue
		}

		switch {
		case spec.Name == nil:
			local = "math"

		case spec.Name.Name == "_" || spec.Name.Name == ".":
			continue

		default:
			local = spec.Name.Name
		}

		return local, true, !shadowed(u, local, pos)
	}

	return "math", false, !shadowed(u, "math", pos)
}

// shadowed reports whether name at pos refers to something other than an imported package.
func shadowed(u *tree.Unit, name string, pos token.Pos) bool {
	pkg := u.Package()
	if pkg == nil {
		return true
	}

	scope := pkg.Scope().Innermost(pos)
	if scope == nil {
		return true
	}

	_, obj := scope.LookupParent(name, pos)
	if obj == nil {
		return false
	}

	pn, ok := obj.(*types.PkgName)

	return !ok || pn.Imported().Path() != "math"
}
