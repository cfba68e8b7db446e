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

package tree_test

import (
	"go/ast"
	"go/types"
	"strings"
	"testing"

	"fillmore-labs.com/patternguard/internal/testsource"
	. "fillmore-labs.com/patternguard/tree"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node ast.Node
		want Kind
	}{
		{"call", &ast.CallExpr{}, KindCallExpr},
		{"index", &ast.IndexExpr{}, KindIndexExpr},
		{"index list", &ast.IndexListExpr{}, KindIndexExpr},
		{"assign", &ast.AssignStmt{}, KindAssignStmt},
		{"array type", &ast.ArrayType{}, KindOther},
		{"nil", nil, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := KindOf(tt.node); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if got, want := KindCallExpr.String(), "CallExpr"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got, want := Kind(200).String(), "Kind(200)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestKindRange(t *testing.T) {
	t.Parallel()

	var kinds []Kind
	for k := range NumKinds {
		kinds = append(kinds, k)
	}

	if len(kinds) != int(NumKinds) || kinds[0] != KindOther {
		t.Fatalf("Got kinds %v", kinds)
	}

	for _, k := range kinds {
		if s := k.String(); strings.HasPrefix(s, "Kind(") {
			t.Errorf("Kind %d has no name: %s", k, s)
		}
	}
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	u := testsource.Unit(t, `s := fmt.Sprint(1, 2); _ = s`, "fmt")

	call := testsource.First(t, u, KindCallExpr)

	parent, ok := call.Parent()
	if !ok || parent.Kind() != KindAssignStmt {
		t.Fatalf("Parent() = %s, %t, want AssignStmt", parent.Kind(), ok)
	}

	if got := len(call.Arguments()); got != 2 {
		t.Errorf("Arguments() = %d, want 2", got)
	}

	fn, ok := call.Callee()
	if !ok || fn.FullName() != "fmt.Sprint" {
		t.Errorf("Callee() = %v, %t, want fmt.Sprint", fn, ok)
	}

	decl, ok := call.Enclosing(KindFuncDecl)
	if !ok {
		t.Fatal("Enclosing FuncDecl not found")
	}

	if _, ok := decl.Enclosing(KindFuncDecl); ok {
		t.Error("FuncDecl should not enclose itself")
	}

	if got, want := call.Text(), "fmt.Sprint(1, 2)"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	if _, ok := u.Root().Parent(); ok {
		t.Error("File should have no parent")
	}
}

func TestTypeAndSymbol(t *testing.T) {
	t.Parallel()

	u := testsource.Unit(t, `var x []int; _ = len(x)`)

	var ident Node

	for n := range u.Root().Preorder(KindIdent) {
		if id, _ := As[*ast.Ident](n); id.Name == "x" {
			ident = n
		}
	}

	typ, ok := ident.Type()
	if !ok {
		t.Fatal("Type() unresolved")
	}

	if got, want := typ.String(), "[]int"; got != want {
		t.Errorf("Type() = %s, want %s", got, want)
	}

	obj, ok := ident.Symbol()
	if _, isVar := obj.(*types.Var); !ok || !isVar {
		t.Errorf("Symbol() = %v, want variable", obj)
	}
}

func TestUnresolvable(t *testing.T) {
	t.Parallel()

	fset, f, src := testsource.Parse(t, `_ = undefined.Call()`)

	// Type checking fails, the info is partial
	info := testsource.NewInfo()
	conf := types.Config{Error: func(error) {}}
	pkg, _ := conf.Check("test", fset, []*ast.File{f}, info)

	u, err := NewUnit(fset, f, pkg, info, src)
	if err != nil {
		t.Fatal(err)
	}

	call := testsource.First(t, u, KindCallExpr)

	if _, ok := call.Symbol(); ok {
		t.Error("Expected unresolvable symbol")
	}

	if _, ok := call.Type(); ok {
		t.Error("Expected unresolvable type")
	}

	var zero Node
	if _, ok := zero.Type(); ok || zero.Valid() || zero.Kind() != KindOther {
		t.Error("Zero node should be invalid")
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	u := testsource.Unit(t, `_ = 1`)

	root := u.Root()
	if !u.Contains(root.Pos(), root.End()) {
		t.Error("Unit should contain its root")
	}

	if u.Contains(root.End(), root.Pos()) {
		t.Error("Inverted range should not be contained")
	}

	if n, ok := u.NodeAt(root.Pos(), root.End()); !ok || n.Kind() != KindFile {
		t.Errorf("NodeAt() = %s, %t, want File", n.Kind(), ok)
	}
}
