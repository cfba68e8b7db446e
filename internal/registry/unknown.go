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
	"strconv"

	"github.com/sahilm/fuzzy"
)

// UnknownCheckError is returned for flags naming an unregistered checker.
type UnknownCheckError struct {
	Name string

	// Suggestion is the closest registered name, if any.
	Suggestion string
}

func (e *UnknownCheckError) Error() string {
	msg := strconv.Quote(e.Name) + " is not a valid checker name"
	if e.Suggestion != "" {
		msg += ", did you mean " + strconv.Quote(e.Suggestion) + "?"
	}

	return msg
}

func (r *Registry) unknown(name string) *UnknownCheckError {
	return &UnknownCheckError{Name: name, Suggestion: suggest(name, r.names())}
}

// suggest returns the best fuzzy match of name among names, in either direction.
func suggest(name string, names []string) string {
	var (
		best  string
		score int
		found bool
	)

	consider := func(candidate string, s int) {
		if !found || s > score {
			best, score, found = candidate, s, true
		}
	}

	for _, m := range fuzzy.Find(name, names) {
		consider(m.Str, m.Score)
	}

	for _, candidate := range names {
		for _, m := range fuzzy.Find(candidate, []string{name}) {
			consider(candidate, m.Score)
		}
	}

	return best
}
