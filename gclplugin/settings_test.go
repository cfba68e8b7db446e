// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package gclplugin_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"fillmore-labs.com/patternguard/analyzer"
	. "fillmore-labs.com/patternguard/gclplugin"
)

const allSettings = `{
	"checks": ["DuplicateStringLiteral:WARN", "DeferInLoop:OFF"],
	"options": ["DuplicateStringLiteral:min=4"],
	"generated": false
}`

func TestSettings(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
		want     int
		args     []string
	}{
		{"all", allSettings, 2, []string{
			"-Xep:DuplicateStringLiteral:WARN",
			"-Xep:DeferInLoop:OFF",
			"-XepOpt:DuplicateStringLiteral:min=4",
		}},
		{"none", `{}`, 0, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dec := json.NewDecoder(strings.NewReader(tc.settings))
			dec.DisallowUnknownFields()

			var s Settings
			if err := dec.Decode(&s); err != nil {
				t.Fatalf("Can't decode settings: %v", err)
			}

			if err := s.Validate(); err != nil {
				t.Fatalf("Invalid settings: %v", err)
			}

			if got := s.Options(); len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), analyzer.Options(got).LogValue(), tc.want)
			}

			if got := s.Args(); !slices.Equal(got, tc.args) {
				t.Errorf("Got args %q, want %q", got, tc.args)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	p, err := New(map[string]any{"checks": []any{"SelfAssignment:WARN"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	analyzers, err := p.BuildAnalyzers()
	if err != nil {
		t.Fatalf("BuildAnalyzers failed: %v", err)
	}

	if len(analyzers) != 1 || analyzers[0].Name != "patternguard" {
		t.Errorf("Unexpected analyzers %v", analyzers)
	}
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()

	if _, err := New(map[string]any{"checks": []any{"SelfAssignment:LOUD"}}); err == nil {
		t.Error("Expected an error for an invalid severity")
	}
}

func TestSettingsCheckOptions(t *testing.T) {
	t.Parallel()

	var s Settings
	if err := json.Unmarshal([]byte(allSettings), &s); err != nil {
		t.Fatalf("Can't decode settings: %v", err)
	}

	if want := []string{"DuplicateStringLiteral:min=4"}; !slices.Equal(s.CheckOptions, want) {
		t.Errorf("Got check options %q, want %q", s.CheckOptions, want)
	}

	if s.Generated == nil || *s.Generated {
		t.Errorf("Got generated %v, want false", s.Generated)
	}
}
