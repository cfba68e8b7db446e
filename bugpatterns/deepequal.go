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
	"go/types"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/match"
	"fillmore-labs.com/patternguard/tree"
)

// DeepEqualIncompatibleType flags reflect.DeepEqual on values of different
// concrete types, which is always false.
func DeepEqualIncompatibleType() bugcheck.Checker {
	call := match.AllOf(match.StaticCall("reflect", "DeepEqual"), match.ArgumentCount(2))

	return bugcheck.New(bugcheck.Descriptor{
		Name:     "DeepEqualIncompatibleType",
		Summary:  "reflect.DeepEqual on type-incompatible values is always false",
		Severity: bugcheck.Error,
		Kinds:    []tree.Kind{tree.KindCallExpr},
		Tags:     []string{"Correctness"},
		URL:      docURL + "DeepEqualIncompatibleType",
	}, func(n tree.Node, s *bugcheck.State) (bugcheck.Finding, bool) {
		if !call.Matches(n, s) {
			return bugcheck.Finding{}, false
		}

		args := n.Arguments()

		x, ok := concrete(args[0])
		if !ok {
			return bugcheck.Finding{}, false
		}

		y, ok := concrete(args[1])
		if !ok || types.Identical(x, y) {
			return bugcheck.Finding{}, false
		}

		return s.Finding(n).WithMessage("reflect.DeepEqual compares type-incompatible values of %s and %s, which is always false",
			types.TypeString(x, qualifier(s)), types.TypeString(y, qualifier(s))), true
	})
}

// concrete returns the dynamic type an argument has when boxed in an interface.
func concrete(n tree.Node) (types.Type, bool) {
	t, ok := n.Type()
	if !ok || types.IsInterface(t) {
		return nil, false
	}

	if b, ok := t.(*types.Basic); ok && b.Info()&types.IsUntyped != 0 {
		if b.Kind() == types.UntypedNil {
			return nil, false
		}

		t = types.Default(t)
	}

	return t, true
}

func qualifier(s *bugcheck.State) types.Qualifier {
	if u := s.Unit(); u != nil {
		return types.RelativeTo(u.Package())
	}

	return nil
}
