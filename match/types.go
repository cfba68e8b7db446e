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

package match

import (
	"go/types"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/tree"
)

// TypeIs matches expressions whose resolved type satisfies pred.
func TypeIs(pred func(types.Type) bool) Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		t, ok := n.Type()

		return ok && pred(t)
	}
}

// IsSameType matches expressions whose type is identical to t.
func IsSameType(t types.Type) Matcher {
	if !tree.ValidType(t) {
		return func(tree.Node, *bugcheck.State) bool { return false }
	}

	return TypeIs(func(u types.Type) bool { return types.Identical(t, u) })
}

// TypeString matches expressions whose type prints as name, with packages qualified by path.
func TypeString(name string) Matcher {
	return TypeIs(func(t types.Type) bool { return types.TypeString(t, nil) == name })
}

// Named matches expressions of the named type pkgPath.name or a pointer to it.
func Named(pkgPath, name string) Matcher {
	return TypeIs(func(t types.Type) bool {
		if p, ok := t.(*types.Pointer); ok {
			t = p.Elem()
		}

		named, ok := types.Unalias(t).(*types.Named)
		if !ok {
			return false
		}

		obj := named.Obj()

		return obj.Name() == name && obj.Pkg() != nil && obj.Pkg().Path() == pkgPath
	})
}

// IsConstant matches expressions with a constant value.
func IsConstant() Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		_, ok := n.Constant()

		return ok
	}
}
