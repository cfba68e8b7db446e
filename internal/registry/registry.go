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

// Package registry holds the catalog of checkers and computes the enabled selection for a run.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/tree"
)

// ErrDuplicateName is returned when two checkers share a canonical or alternate name.
var ErrDuplicateName = errors.New("duplicate checker name")

// Registry is an immutable catalog of checkers.
type Registry struct {
	checkers []bugcheck.Checker
	descs    []bugcheck.Descriptor
	byName   map[string]int
	byKind   [tree.NumKinds][]int
}

// New registers checkers in order. Registration order is the dispatch order.
func New(checkers ...bugcheck.Checker) (*Registry, error) {
	r := &Registry{
		checkers: slices.Clone(checkers),
		descs:    make([]bugcheck.Descriptor, 0, len(checkers)),
		byName:   make(map[string]int),
	}

	for i, c := range checkers {
		d := c.Descriptor()
		if err := d.Validate(); err != nil {
			return nil, err
		}

		for _, name := range d.Names() {
			if j, ok := r.byName[name]; ok {
				return nil, fmt.Errorf("%w %q: %s and %s", ErrDuplicateName, name, r.descs[j].Name, d.Name)
			}

			r.byName[name] = i
		}

		for _, k := range uniqueKinds(d.Kinds) {
			r.byKind[k] = append(r.byKind[k], i)
		}

		r.descs = append(r.descs, d)
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(checkers ...bugcheck.Checker) *Registry {
	r, err := New(checkers...)
	if err != nil {
		panic(err)
	}

	return r
}

func uniqueKinds(kinds []tree.Kind) []tree.Kind {
	u := make([]tree.Kind, 0, len(kinds))
	for _, k := range kinds {
		if k < tree.NumKinds && !slices.Contains(u, k) {
			u = append(u, k)
		}
	}

	return u
}

// Len returns the number of registered checkers.
func (r *Registry) Len() int { return len(r.checkers) }

// Checkers returns all registered checkers in registration order.
func (r *Registry) Checkers() []bugcheck.Checker { return slices.Clone(r.checkers) }

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []bugcheck.Descriptor { return slices.Clone(r.descs) }

// Lookup returns the checkers registered for kind, in registration order.
func (r *Registry) Lookup(kind tree.Kind) []bugcheck.Checker {
	if kind >= tree.NumKinds {
		return nil
	}

	cs := make([]bugcheck.Checker, 0, len(r.byKind[kind]))
	for _, i := range r.byKind[kind] {
		cs = append(cs, r.checkers[i])
	}

	return cs
}

// ByName finds a checker by canonical or alternate name.
func (r *Registry) ByName(name string) (bugcheck.Checker, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}

	return r.checkers[i], true
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.byName))
	for _, d := range r.descs {
		names = append(names, d.Names()...)
	}

	return names
}
