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

// Package match provides composable predicates over syntax tree nodes.
//
// Matchers are total: invalid nodes, unresolvable symbols and invalid types
// never match. They have no side effects and can be shared between checkers.
package match

import (
	"slices"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/tree"
)

// Matcher is a predicate over a node.
type Matcher func(n tree.Node, s *bugcheck.State) bool

// Matches applies m, treating a nil matcher and an invalid node as no match.
func (m Matcher) Matches(n tree.Node, s *bugcheck.State) bool {
	return m != nil && n.Valid() && m(n, s)
}

// AllOf matches when every matcher matches.
func AllOf(ms ...Matcher) Matcher {
	return func(n tree.Node, s *bugcheck.State) bool {
		for _, m := range ms {
			if !m.Matches(n, s) {
				return false
			}
		}

		return n.Valid()
	}
}

// AnyOf matches when at least one matcher matches.
func AnyOf(ms ...Matcher) Matcher {
	return func(n tree.Node, s *bugcheck.State) bool {
		return slices.ContainsFunc(ms, func(m Matcher) bool { return m.Matches(n, s) })
	}
}

// Not inverts m for valid nodes.
func Not(m Matcher) Matcher {
	return func(n tree.Node, s *bugcheck.State) bool {
		return n.Valid() && !m.Matches(n, s)
	}
}

// KindIs matches nodes of one of the given kinds.
func KindIs(kinds ...tree.Kind) Matcher {
	return func(n tree.Node, _ *bugcheck.State) bool {
		return n.Valid() && slices.Contains(kinds, n.Kind())
	}
}

// Parent matches when the parent node matches m.
func Parent(m Matcher) Matcher {
	return func(n tree.Node, s *bugcheck.State) bool {
		p, ok := n.Parent()

		return ok && m.Matches(p, s)
	}
}

// Enclosing matches when any ancestor matches m.
func Enclosing(m Matcher) Matcher {
	return func(n tree.Node, s *bugcheck.State) bool {
		for a := range n.Ancestors() {
			if m.Matches(a, s) {
				return true
			}
		}

		return false
	}
}
