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

package registry

import (
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/config"
	"fillmore-labs.com/patternguard/internal/flags"
	"fillmore-labs.com/patternguard/tree"
)

// Enabled is a checker selected for a run.
type Enabled struct {
	Checker    bugcheck.Checker
	Descriptor bugcheck.Descriptor
	Severity   bugcheck.Severity
	Options    map[string]string

	// Order is the registration index, used as tie breaker when sorting findings.
	Order int
}

// Selection is the immutable, filtered view of a [Registry] used by the engine.
type Selection struct {
	enabled []Enabled
	byKind  [tree.NumKinds][]int
	byName  map[string]int
}

// OverrideError reports a per-checker override that is not allowed.
type OverrideError struct {
	Checker string
	Reason  string
}

func (e *OverrideError) Error() string {
	return e.Checker + " " + e.Reason
}

// Select applies global switches and per-checker overrides to the
// registry defaults and returns the enabled checkers.
//
// Global switches are applied first: all disabled checkers as warnings, then
// errors as warnings, then disable all. Per-checker overrides follow in name
// order.
func (r *Registry) Select(o flags.Options) (*Selection, error) {
	n := len(r.descs)
	severities := make([]bugcheck.Severity, n)
	disabled := make([]bool, n)

	for i, d := range r.descs {
		severities[i] = d.Severity
		disabled[i] = !d.EnabledByDefault()
	}

	if o.Switches.Enabled(config.AllDisabledChecksAsWarnings) {
		for i := range disabled {
			if disabled[i] {
				severities[i], disabled[i] = bugcheck.Warning, false
			}
		}
	}

	if o.Switches.Enabled(config.AllErrorsAsWarnings) {
		for i, d := range r.descs {
			if d.Severity == bugcheck.Error && d.Disableable() {
				severities[i] = bugcheck.Warning
			}
		}
	}

	if o.Switches.Enabled(config.DisableAllChecks) {
		for i, d := range r.descs {
			if d.Disableable() {
				disabled[i] = true
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(o.Overrides)) {
		i, ok := r.byName[name]
		if !ok {
			if o.Switches.Enabled(config.IgnoreUnknownCheckNames) {
				continue
			}

			return nil, r.unknown(name)
		}

		d := r.descs[i]

		switch o.Overrides[name] {
		case flags.Off:
			if !d.Disableable() {
				return nil, &OverrideError{Checker: d.Name, Reason: "may not be disabled"}
			}

			disabled[i] = true

		case flags.Default:
			severities[i], disabled[i] = d.Severity, false

		case flags.Warn:
			if d.EnabledByDefault() && !d.Disableable() && d.Severity == bugcheck.Error {
				return nil, &OverrideError{Checker: d.Name, Reason: "is not disableable and may not be demoted to a warning"}
			}

			severities[i], disabled[i] = bugcheck.Warning, false

		case flags.Error:
			severities[i], disabled[i] = bugcheck.Error, false
		}
	}

	options, err := r.checkOptions(o)
	if err != nil {
		return nil, err
	}

	s := &Selection{byName: make(map[string]int)}

	for i, d := range r.descs {
		if disabled[i] {
			continue
		}

		idx := len(s.enabled)
		s.enabled = append(s.enabled, Enabled{
			Checker:    r.checkers[i],
			Descriptor: d,
			Severity:   severities[i],
			Options:    options[i],
			Order:      i,
		})

		for _, name := range d.Names() {
			s.byName[name] = idx
		}

		for _, k := range uniqueKinds(d.Kinds) {
			s.byKind[k] = append(s.byKind[k], idx)
		}
	}

	return s, nil
}

// checkOptions resolves -XepOpt names, canonical or alternate, to registration indices.
func (r *Registry) checkOptions(o flags.Options) (map[int]map[string]string, error) {
	options := make(map[int]map[string]string)

	for _, name := range slices.Sorted(maps.Keys(o.CheckOptions)) {
		i, ok := r.byName[name]
		if !ok {
			if o.Switches.Enabled(config.IgnoreUnknownCheckNames) {
				continue
			}

			return nil, r.unknown(name)
		}

		if options[i] == nil {
			options[i] = make(map[string]string)
		}

		maps.Copy(options[i], o.CheckOptions[name])
	}

	return options, nil
}

// Enabled returns the enabled checkers in registration order.
func (s *Selection) Enabled() []Enabled { return s.enabled }

// Len returns the number of enabled checkers.
func (s *Selection) Len() int { return len(s.enabled) }

// Dispatch returns the indices into [Selection.Enabled] of checkers interested in kind.
func (s *Selection) Dispatch(kind tree.Kind) []int {
	if kind >= tree.NumKinds {
		return nil
	}

	return s.byKind[kind]
}

// Kinds returns the union of node kinds of all enabled checkers.
func (s *Selection) Kinds() []tree.Kind {
	var kinds []tree.Kind

	for k := range tree.NumKinds {
		if len(s.byKind[k]) > 0 {
			kinds = append(kinds, k)
		}
	}

	return kinds
}

// Lookup finds an enabled checker by canonical or alternate name.
func (s *Selection) Lookup(name string) (Enabled, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Enabled{}, false
	}

	return s.enabled[i], true
}

func (s *Selection) String() string {
	return fmt.Sprintf("%d checkers enabled", len(s.enabled))
}
