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

package bugcheck

import "fillmore-labs.com/patternguard/tree"

// Checker is a bug pattern.
type Checker interface {
	// Descriptor returns the checker metadata. It must return the same value on every call.
	Descriptor() Descriptor

	// Match examines a node of one of the declared kinds and returns a finding if the pattern matches.
	Match(n tree.Node, s *State) (Finding, bool)
}

// Finisher is implemented by checkers that report at the end of a run.
//
// Finish is called once per run, after all units have been visited, with a
// [State] that has no unit.
type Finisher interface {
	Finish(s *State) []Finding
}

// MatchFunc is the signature of [Checker.Match].
type MatchFunc func(n tree.Node, s *State) (Finding, bool)

// New returns a [Checker] for a descriptor and a match function.
func New(d Descriptor, match MatchFunc) Checker {
	return funcChecker{d: d, match: match}
}

type funcChecker struct {
	d     Descriptor
	match MatchFunc
}

func (c funcChecker) Descriptor() Descriptor { return c.d }

func (c funcChecker) Match(n tree.Node, s *State) (Finding, bool) { return c.match(n, s) }
