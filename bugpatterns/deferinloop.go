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
	"golang.org/x/tools/go/ast/edge"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/tree"
)

// DeferInLoop flags defer statements in loop bodies. Deferred calls run when
// the function returns, not at the end of the iteration.
func DeferInLoop() bugcheck.Checker {
	return bugcheck.New(bugcheck.Descriptor{
		Name:     "DeferInLoop",
		Summary:  "Deferred call runs at function exit, not at the end of the loop iteration",
		Severity: bugcheck.Warning,
		Kinds:    []tree.Kind{tree.KindDeferStmt},
		Tags:     []string{"Performance"},
		URL:      docURL + "DeferInLoop",
	}, func(n tree.Node, s *bugcheck.State) (bugcheck.Finding, bool) {
		loop, ok := enclosingLoop(n)
		if !ok {
			return bugcheck.Finding{}, false
		}

		return s.Finding(n).WithRelated(loop, "enclosing loop"), true
	})
}

// enclosingLoop finds the loop whose body contains n within the same function.
func enclosingLoop(n tree.Node) (tree.Node, bool) {
	for child := n; ; {
		p, ok := child.Parent()
		if !ok {
			return tree.Node{}, false
		}

		switch p.Kind() {
		case tree.KindFuncLit, tree.KindFuncDecl:
			return tree.Node{}, false

		case tree.KindForStmt, tree.KindRangeStmt:
			if k, _ := child.Edge(); k == edge.ForStmt_Body || k == edge.RangeStmt_Body {
				return p, true
			}
		}

		child = p
	}
}
