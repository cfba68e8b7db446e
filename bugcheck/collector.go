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
	"fmt"
	"slices"
	"sync"
)

// Collector is an append-only, concurrency-safe list.
type Collector[T any] struct {
	mu    sync.Mutex
	items []T
}

// Add appends values.
func (c *Collector[T]) Add(v ...T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, v...)
}

// Len returns the number of collected values.
func (c *Collector[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Items returns a copy of the collected values.
func (c *Collector[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items)
}

// Run holds state scoped to one engine run, shared by all units.
// It replaces process-global state in checkers.
type Run struct {
	mu         sync.Mutex
	collectors map[string]any
}

// NewRun creates empty run-scoped state.
func NewRun() *Run {
	return &Run{collectors: make(map[string]any)}
}

// Collect appends v to the run-scoped collector of the running checker.
func Collect[T any](s *State, v T) {
	collector[T](s.run, s.desc.Name).Add(v)
}

// Collected returns the values collected by the running checker in this run.
func Collected[T any](s *State) []T {
	return collector[T](s.run, s.desc.Name).Items()
}

func collector[T any](r *Run, name string) *Collector[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.collectors[name]; ok {
		typed, ok := c.(*Collector[T])
		if !ok {
			panic(fmt.Sprintf("collector %s: have %T, want %T", name, c, typed))
		}

		return typed
	}

	c := &Collector[T]{}
	r.collectors[name] = c

	return c
}
