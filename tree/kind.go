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

import "go/ast"

// Kind classifies a syntax tree node.
//
// The engine dispatches on Kind instead of on the dynamic type of [ast.Node],
// so checkers declare the kinds they are interested in up front.
type Kind uint8

//go:generate go tool stringer -type Kind -trimprefix Kind
const (
	KindOther Kind = iota
	KindFile
	KindFuncDecl
	KindGenDecl
	KindImportSpec
	KindTypeSpec
	KindValueSpec
	KindField
	KindBlockStmt
	KindAssignStmt
	KindDeclStmt
	KindExprStmt
	KindIncDecStmt
	KindReturnStmt
	KindIfStmt
	KindForStmt
	KindRangeStmt
	KindSwitchStmt
	KindTypeSwitchStmt
	KindSelectStmt
	KindCaseClause
	KindCommClause
	KindDeferStmt
	KindGoStmt
	KindSendStmt
	KindBranchStmt
	KindLabeledStmt
	KindIdent
	KindBasicLit
	KindCompositeLit
	KindFuncLit
	KindCallExpr
	KindSelectorExpr
	KindIndexExpr
	KindSliceExpr
	KindStarExpr
	KindUnaryExpr
	KindBinaryExpr
	KindKeyValueExpr
	KindParenExpr
	KindTypeAssertExpr

	numKinds = iota
)

// NumKinds is the number of distinct [Kind] values, suitable for sizing dispatch tables.
const NumKinds Kind = numKinds

// KindOf returns the [Kind] of an [ast.Node]. Nodes without a dedicated kind map to [KindOther].
func KindOf(n ast.Node) Kind {
	switch n.(type) {
	case *ast.File:
		return KindFile
	case *ast.FuncDecl:
		return KindFuncDecl
	case *ast.GenDecl:
		return KindGenDecl
	case *ast.ImportSpec:
		return KindImportSpec
	case *ast.TypeSpec:
		return KindTypeSpec
	case *ast.ValueSpec:
		return KindValueSpec
	case *ast.Field:
		return KindField
	case *ast.BlockStmt:
		return KindBlockStmt
	case *ast.AssignStmt:
		return KindAssignStmt
	case *ast.DeclStmt:
		return KindDeclStmt
	case *ast.ExprStmt:
		return KindExprStmt
	case *ast.IncDecStmt:
		return KindIncDecStmt
	case *ast.ReturnStmt:
		return KindReturnStmt
	case *ast.IfStmt:
		return KindIfStmt
	case *ast.ForStmt:
		return KindForStmt
	case *ast.RangeStmt:
		return KindRangeStmt
	case *ast.SwitchStmt:
		return KindSwitchStmt
	case *ast.TypeSwitchStmt:
		return KindTypeSwitchStmt
	case *ast.SelectStmt:
		return KindSelectStmt
	case *ast.CaseClause:
		return KindCaseClause
	case *ast.CommClause:
		return KindCommClause
	case *ast.DeferStmt:
		return KindDeferStmt
	case *ast.GoStmt:
		return KindGoStmt
	case *ast.SendStmt:
		return KindSendStmt
	case *ast.BranchStmt:
		return KindBranchStmt
	case *ast.LabeledStmt:
		return KindLabeledStmt
	case *ast.Ident:
		return KindIdent
	case *ast.BasicLit:
		return KindBasicLit
	case *ast.CompositeLit:
		return KindCompositeLit
	case *ast.FuncLit:
		return KindFuncLit
	case *ast.CallExpr:
		return KindCallExpr
	case *ast.SelectorExpr:
		return KindSelectorExpr
	case *ast.IndexExpr, *ast.IndexListExpr:
		return KindIndexExpr
	case *ast.SliceExpr:
		return KindSliceExpr
	case *ast.StarExpr:
		return KindStarExpr
	case *ast.UnaryExpr:
		return KindUnaryExpr
	case *ast.BinaryExpr:
		return KindBinaryExpr
	case *ast.KeyValueExpr:
		return KindKeyValueExpr
	case *ast.ParenExpr:
		return KindParenExpr
	case *ast.TypeAssertExpr:
		return KindTypeAssertExpr
	default:
		return KindOther
	}
}

// Prototypes returns the [ast.Node] type prototypes for the given kinds,
// suitable as a type filter for [inspector.Cursor.Inspect].
//
// ok is false when a kind has no prototype ([KindOther]), in which case
// the caller has to visit all nodes.
func Prototypes(kinds ...Kind) (types []ast.Node, ok bool) {
	types = make([]ast.Node, 0, len(kinds))
	for _, k := range kinds {
		switch k {
		case KindOther:
			return nil, false

		case KindIndexExpr:
			types = append(types, (*ast.IndexExpr)(nil), (*ast.IndexListExpr)(nil))

		default:
			types = append(types, prototypes[k])
		}
	}

	return types, true
}

var prototypes = [NumKinds]ast.Node{
	KindFile:           (*ast.File)(nil),
	KindFuncDecl:       (*ast.FuncDecl)(nil),
	KindGenDecl:        (*ast.GenDecl)(nil),
	KindImportSpec:     (*ast.ImportSpec)(nil),
	KindTypeSpec:       (*ast.TypeSpec)(nil),
	KindValueSpec:      (*ast.ValueSpec)(nil),
	KindField:          (*ast.Field)(nil),
	KindBlockStmt:      (*ast.BlockStmt)(nil),
	KindAssignStmt:     (*ast.AssignStmt)(nil),
	KindDeclStmt:       (*ast.DeclStmt)(nil),
	KindExprStmt:       (*ast.ExprStmt)(nil),
	KindIncDecStmt:     (*ast.IncDecStmt)(nil),
	KindReturnStmt:     (*ast.ReturnStmt)(nil),
	KindIfStmt:         (*ast.IfStmt)(nil),
	KindForStmt:        (*ast.ForStmt)(nil),
	KindRangeStmt:      (*ast.RangeStmt)(nil),
	KindSwitchStmt:     (*ast.SwitchStmt)(nil),
	KindTypeSwitchStmt: (*ast.TypeSwitchStmt)(nil),
	KindSelectStmt:     (*ast.SelectStmt)(nil),
	KindCaseClause:     (*ast.CaseClause)(nil),
	KindCommClause:     (*ast.CommClause)(nil),
	KindDeferStmt:      (*ast.DeferStmt)(nil),
	KindGoStmt:         (*ast.GoStmt)(nil),
	KindSendStmt:       (*ast.SendStmt)(nil),
	KindBranchStmt:     (*ast.BranchStmt)(nil),
	KindLabeledStmt:    (*ast.LabeledStmt)(nil),
	KindIdent:          (*ast.Ident)(nil),
	KindBasicLit:       (*ast.BasicLit)(nil),
	KindCompositeLit:   (*ast.CompositeLit)(nil),
	KindFuncLit:        (*ast.FuncLit)(nil),
	KindCallExpr:       (*ast.CallExpr)(nil),
	KindSelectorExpr:   (*ast.SelectorExpr)(nil),
	KindSliceExpr:      (*ast.SliceExpr)(nil),
	KindStarExpr:       (*ast.StarExpr)(nil),
	KindUnaryExpr:      (*ast.UnaryExpr)(nil),
	KindBinaryExpr:     (*ast.BinaryExpr)(nil),
	KindKeyValueExpr:   (*ast.KeyValueExpr)(nil),
	KindParenExpr:      (*ast.ParenExpr)(nil),
	KindTypeAssertExpr: (*ast.TypeAssertExpr)(nil),
}

// Declaration reports whether nodes of this kind can carry a doc comment.
func (k Kind) Declaration() bool {
	switch k {
	case KindFile, KindFuncDecl, KindGenDecl, KindTypeSpec, KindValueSpec, KindImportSpec, KindField:
		return true
	default:
		return false
	}
}

// Statement reports whether nodes of this kind are statements.
func (k Kind) Statement() bool {
	return k >= KindBlockStmt && k <= KindLabeledStmt
}
