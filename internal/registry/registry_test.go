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

package registry_test

import (
	"errors"
	"testing"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/flags"
	. "fillmore-labs.com/patternguard/internal/registry"
	"fillmore-labs.com/patternguard/tree"
)

func checker(d bugcheck.Descriptor) bugcheck.Checker {
	if d.Severity == 0 {
		d.Severity = bugcheck.Error
	}

	if len(d.Kinds) == 0 {
		d.Kinds = []tree.Kind{tree.KindCallExpr}
	}

	return bugcheck.New(d, func(tree.Node, *bugcheck.State) (bugcheck.Finding, bool) { return bugcheck.Finding{}, false })
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	r, err := New(
		checker(bugcheck.Descriptor{Name: "Alpha", AltNames: []string{"alpha-legacy"}}),
		checker(bugcheck.Descriptor{Name: "Beta", Severity: bugcheck.Warning, Kinds: []tree.Kind{tree.KindIdent, tree.KindCallExpr}}),
		checker(bugcheck.Descriptor{Name: "Gamma", DisabledByDefault: true}),
		checker(bugcheck.Descriptor{Name: "Delta", Mandatory: true}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	if r.Len() != 4 {
		t.Errorf("Got %d checkers, want 4", r.Len())
	}

	calls := r.Lookup(tree.KindCallExpr)
	if len(calls) != 4 || calls[1].Descriptor().Name != "Beta" {
		t.Errorf("Unexpected dispatch list %v", calls)
	}

	if got := r.Lookup(tree.KindIdent); len(got) != 1 {
		t.Errorf("Got %d ident checkers, want 1", len(got))
	}

	if c, ok := r.ByName("alpha-legacy"); !ok || c.Descriptor().Name != "Alpha" {
		t.Error("Alternate name lookup failed")
	}
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	if _, err := New(checker(bugcheck.Descriptor{Name: "A"}), checker(bugcheck.Descriptor{Name: "B", AltNames: []string{"A"}})); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Got %v, want ErrDuplicateName", err)
	}

	noKinds := bugcheck.New(bugcheck.Descriptor{Name: "A", Severity: bugcheck.Error}, nil)
	if _, err := New(noKinds); !errors.Is(err, bugcheck.ErrNoKinds) {
		t.Errorf("Got %v, want ErrNoKinds", err)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	type want map[string]bugcheck.Severity

	tests := []struct {
		name string
		args []string
		want want
	}{
		{"Defaults", nil, want{"Alpha": bugcheck.Error, "Beta": bugcheck.Warning, "Delta": bugcheck.Error}},
		{"Off", []string{"-Xep:Alpha:OFF"}, want{"Beta": bugcheck.Warning, "Delta": bugcheck.Error}},
		{"AltName", []string{"-Xep:alpha-legacy:WARN"}, want{"Alpha": bugcheck.Warning, "Beta": bugcheck.Warning, "Delta": bugcheck.Error}},
		{"EnableDisabled", []string{"-Xep:Gamma"}, want{"Alpha": bugcheck.Error, "Beta": bugcheck.Warning, "Gamma": bugcheck.Error, "Delta": bugcheck.Error}},
		{"AllDisabledAsWarnings", []string{"-XepAllDisabledChecksAsWarnings"}, want{"Alpha": bugcheck.Error, "Beta": bugcheck.Warning, "Gamma": bugcheck.Warning, "Delta": bugcheck.Error}},
		{"ErrorsAsWarnings", []string{"-XepAllErrorsAsWarnings"}, want{"Alpha": bugcheck.Warning, "Beta": bugcheck.Warning, "Delta": bugcheck.Error}},
		{"DisableAll", []string{"-XepDisableAllChecks"}, want{"Delta": bugcheck.Error}},
		{"DisableAllThenEnable", []string{"-XepDisableAllChecks", "-Xep:Beta:ERROR"}, want{"Beta": bugcheck.Error, "Delta": bugcheck.Error}},
		{"Promote", []string{"-Xep:Beta:ERROR"}, want{"Alpha": bugcheck.Error, "Beta": bugcheck.Error, "Delta": bugcheck.Error}},
		{"IgnoreUnknown", []string{"-XepIgnoreUnknownCheckNames", "-Xep:Nope:OFF"}, want{"Alpha": bugcheck.Error, "Beta": bugcheck.Warning, "Delta": bugcheck.Error}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, _, err := flags.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			s, err := r.Select(o)
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}

			got := make(want)
			for _, e := range s.Enabled() {
				got[e.Descriptor.Name] = e.Severity
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Got %v, want %v", got, tt.want)
			}

			for name, sev := range tt.want {
				if got[name] != sev {
					t.Errorf("Got %s = %v, want %v", name, got[name], sev)
				}
			}
		})
	}
}

func TestSelectErrors(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	var oe *OverrideError

	for _, args := range [][]string{{"-Xep:Delta:OFF"}, {"-Xep:Delta:WARN"}} {
		o, _, _ := flags.Parse(args)
		if _, err := r.Select(o); !errors.As(err, &oe) {
			t.Errorf("Got %v for %v, want *OverrideError", err, args)
		}
	}

	o, _, _ := flags.Parse([]string{"-Xep:Alhpa:OFF"})

	_, err := r.Select(o)

	var ue *UnknownCheckError
	if !errors.As(err, &ue) {
		t.Fatalf("Got %v, want *UnknownCheckError", err)
	}

	if ue.Name != "Alhpa" {
		t.Errorf("Got name %q", ue.Name)
	}

	o, _, _ = flags.Parse([]string{"-Xep:Betaa"})
	if _, err := r.Select(o); !errors.As(err, &ue) || ue.Suggestion != "Beta" {
		t.Errorf("Got %v, want suggestion Beta", err)
	}
}

func TestSelectionDispatch(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	o, _, _ := flags.Parse([]string{"-Xep:Alpha:OFF", "-XepOpt:alpha-legacy:x=1", "-XepOpt:Beta:min=2"})

	s, err := r.Select(o)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	idx := s.Dispatch(tree.KindCallExpr)
	if len(idx) != 2 || s.Enabled()[idx[0]].Descriptor.Name != "Beta" || s.Enabled()[idx[1]].Descriptor.Name != "Delta" {
		t.Errorf("Unexpected dispatch %v", idx)
	}

	if kinds := s.Kinds(); len(kinds) != 2 {
		t.Errorf("Got kinds %v", kinds)
	}

	if e, ok := s.Lookup("Beta"); !ok || e.Options["min"] != "2" || e.Order != 1 {
		t.Errorf("Unexpected enabled checker %+v", e)
	}

	if _, ok := s.Lookup("Alpha"); ok {
		t.Error("Disabled checker found")
	}
}
