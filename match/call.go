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

// StaticCall matches calls of the package-level function pkgPath.name.
func StaticCall(pkgPath, name string) Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		fn, ok := n.Callee()
		if !ok || fn.Name() != name || fn.Pkg() == nil || fn.Pkg().Path() != pkgPath {
			return false
		}

		sig, ok := fn.Type().(*types.Signature)

		return ok && sig.Recv() == nil
	}
}

// MethodHasName matches calls of a function or method with the given name.
func MethodHasName(name string) Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		fn, ok := n.Callee()

		return ok && fn.Name() == name
	}
}

// InstanceMethod matches calls of method name on receivers of the named type pkgPath.typ.
func InstanceMethod(pkgPath, typ, name string) Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		fn, ok := n.Callee()
		if !ok || fn.Name() != name {
			return false
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Recv() == nil {
			return false
		}

		t := sig.Recv().Type()
		if p, ok := t.(*types.Pointer); ok {
			t = p.Elem()
		}

		named, ok := types.Unalias(t).(*types.Named)
		if !ok {
			return false
		}

		obj := named.Obj()

		return obj.Name() == typ && obj.Pkg() != nil && obj.Pkg().Path() == pkgPath
	}
}

// ArgumentCount matches calls with exactly count arguments.
func ArgumentCount(count int) Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		call, ok := n.Call()

		return ok && len(call.Args) == count
	}
}

// Argument matches calls whose argument at index matches m.
func Argument(index int, m Matcher) Matcher {
	return func(n tree.Node, s *bugcheck.State) bool {
		args := n.Arguments()

		return 0 <= index && index < len(args) && m.Matches(args[index], s)
	}
}

// IsConversion matches type conversions T(x).
func IsConversion() Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		_, ok := n.Conversion()

		return ok
	}
}
