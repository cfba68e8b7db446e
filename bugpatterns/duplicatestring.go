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
	"cmp"
	"go/ast"
	"go/constant"
	"go/token"
	"maps"
	"slices"

	"golang.org/x/tools/go/ast/edge"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/tree"
)

const defaultMinDuplicates = 3

// DuplicateStringLiteral flags string literals repeated across the analyzed
// packages, reported once all units have been visited.
//
// Option min sets the number of occurrences reported, default 3:
//
//	-XepOpt:DuplicateStringLiteral:min=5
func DuplicateStringLiteral() bugcheck.Checker { return duplicateStringLiteral{} }

type duplicateStringLiteral struct{}

func (duplicateStringLiteral) Descriptor() bugcheck.Descriptor {
	return bugcheck.Descriptor{
		Name:              "DuplicateStringLiteral",
		Summary:           "String literal is repeated, consider a constant",
		Severity:          bugcheck.Suggestion,
		Kinds:             []tree.Kind{tree.KindBasicLit},
		Tags:              []string{"Style"},
		URL:               docURL + "DuplicateStringLiteral",
		DisabledByDefault: true,
	}
}

func (duplicateStringLiteral) Match(n tree.Node, s *bugcheck.State) (bugcheck.Finding, bool) {
	lit, ok := n.Lit()
	if !ok || lit.Kind != token.STRING || excludedLiteral(n) {
		return bugcheck.Finding{}, false
	}

	v, ok := n.Constant()
	if !ok || constant.StringVal(v) == "" {
		return bugcheck.Finding{}, false
	}

	if s.Suppressed(n) {
		return bugcheck.Finding{}, false
	}

	bugcheck.Collect(s, n)

	return bugcheck.Finding{}, false
}

// excludedLiteral skips imports, struct tags and constant declarations.
func excludedLiteral(n tree.Node) bool {
	switch k, _ := n.Edge(); k {
	case edge.ImportSpec_Path, edge.Field_Tag:
		return true
	}

	if spec, ok := n.Enclosing(tree.KindValueSpec); ok {
		if decl, ok := spec.Parent(); ok {
			if gen, ok := decl.AST().(*ast.GenDecl); ok && gen.Tok == token.CONST {
				return true
			}
		}
	}

	return false
}

func (duplicateStringLiteral) Finish(s *bugcheck.State) []bugcheck.Finding {
	minimum := max(s.IntOption("min", defaultMinDuplicates), 2)

	groups := make(map[string][]tree.Node)
	for _, n := range bugcheck.Collected[tree.Node](s) {
		v, _ := n.Constant()
		value := constant.StringVal(v)
		groups[value] = append(groups[value], n)
	}

	var findings []bugcheck.Finding

	for _, value := range slices.Sorted(maps.Keys(groups)) {
		nodes := groups[value]
		if len(nodes) < minimum {
			continue
		}

		slices.SortFunc(nodes, func(a, b tree.Node) int {
			pa, pb := a.Position(), b.Position()

			return cmp.Or(cmp.Compare(pa.Filename, pb.Filename), cmp.Compare(pa.Offset, pb.Offset))
		})

		f := s.Finding(nodes[0]).WithMessage("string literal %s appears %d times, consider a constant", nodes[0].Text(), len(nodes))
		for _, other := range nodes[1:] {
			f = f.WithRelated(other, "repeated here")
		}

		findings = append(findings, f)
	}

	return findings
}
