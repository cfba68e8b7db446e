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

import (
	"go/token"
	"strconv"
	"strings"

	"fillmore-labs.com/patternguard/fix"
	"fillmore-labs.com/patternguard/tree"
)

// State is the per-checker context of a match or finish call.
type State struct {
	unit     *tree.Unit
	desc     Descriptor
	severity Severity
	options  map[string]string
	run      *Run

	suppressed func(n tree.Node) bool
}

// NewState creates the context for one checker. unit is nil for [Finisher.Finish] calls.
func NewState(unit *tree.Unit, desc Descriptor, severity Severity, options map[string]string, run *Run) *State {
	return &State{unit: unit, desc: desc, severity: severity, options: options, run: run}
}

// WithSuppression installs the predicate behind [State.Suppressed].
func (s *State) WithSuppression(suppressed func(n tree.Node) bool) *State {
	s.suppressed = suppressed

	return s
}

// Suppressed reports whether a finding of the running checker at n would be
// suppressed. Checkers accumulating occurrences use it to skip silenced ones.
func (s *State) Suppressed(n tree.Node) bool {
	return s.suppressed != nil && s.suppressed(n)
}

// Unit returns the compilation unit being visited.
func (s *State) Unit() *tree.Unit { return s.unit }

// Descriptor returns the descriptor of the running checker.
func (s *State) Descriptor() Descriptor { return s.desc }

// Severity returns the effective severity of the running checker.
func (s *State) Severity() Severity { return s.severity }

// Run returns the run-scoped state.
func (s *State) Run() *Run { return s.run }

// Option returns a checker option set with -XepOpt:Name:key=value.
func (s *State) Option(key string) (string, bool) {
	v, ok := s.options[key]

	return v, ok
}

// IntOption returns an integer option, or def when unset or malformed.
func (s *State) IntOption(key string, def int) int {
	v, ok := s.options[key]
	if !ok {
		return def
	}

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}

	return i
}

// BoolOption returns a boolean option, or def when unset or malformed. A key without value is true.
func (s *State) BoolOption(key string, def bool) bool {
	v, ok := s.options[key]
	if !ok {
		return def
	}

	if v == "" {
		return true
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}

// Finding starts a finding covering n, with the checker's summary as message.
func (s *State) Finding(n tree.Node) Finding {
	f := s.FindingRange(n.Pos(), n.End())
	f.Unit = n.Unit()

	return f
}

// FindingRange starts a finding covering [pos, end) in the current unit.
func (s *State) FindingRange(pos, end token.Pos) Finding {
	return Finding{
		Checker:  s.desc.Name,
		Severity: s.severity,
		Message:  s.desc.Summary,
		Pos:      pos,
		End:      end,
		Unit:     s.unit,
	}
}

// NewFix starts a fix in the current unit.
func (s *State) NewFix(description string) *fix.Builder {
	return fix.NewBuilder(s.unit.TokenFile(), s.unit.Source()).Describe(description)
}

// NewFixIn starts a fix in the unit of n. Used by [Finisher] implementations.
func (s *State) NewFixIn(n tree.Node, description string) *fix.Builder {
	u := n.Unit()

	return fix.NewBuilder(u.TokenFile(), u.Source()).Describe(description)
}
