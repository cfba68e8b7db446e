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

package flags_test

import (
	"errors"
	"slices"
	"testing"

	"fillmore-labs.com/patternguard/internal/config"
	. "fillmore-labs.com/patternguard/internal/flags"
)

func TestParse(t *testing.T) {
	t.Parallel()

	o, rest, err := Parse([]string{
		"-Xep:SelfAssignment:OFF",
		"./...",
		"-Xep:DeferInLoop",
		"-Xep:FormatStringArgs:warn",
		"-XepOpt:DuplicateStringLiteral:min=5",
		"-XepOpt:DuplicateStringLiteral:strict",
		"-XepAllErrorsAsWarnings",
		"-XepDisableWarningsInGeneratedCode",
		"-XepPatchLocation:IN_PLACE",
		"-XepPatchChecks:SelfAssignment,MaxValueLiteral",
		"-Xep:SelfAssignment:ERROR",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !slices.Equal(rest, []string{"./..."}) {
		t.Errorf("Got remaining %v", rest)
	}

	wantOverrides := map[string]Setting{"SelfAssignment": Error, "DeferInLoop": Default, "FormatStringArgs": Warn}
	for name, want := range wantOverrides {
		if got, ok := o.Overrides[name]; !ok || got != want {
			t.Errorf("Got %s = %v, want %v", name, got, want)
		}
	}

	if got := o.CheckOptions["DuplicateStringLiteral"]; got["min"] != "5" || got["strict"] != "true" {
		t.Errorf("Got options %v", got)
	}

	for _, sw := range []config.Switch{config.AllErrorsAsWarnings, config.DisableWarningsInGeneratedCode, config.PatchInPlace} {
		if !o.Switches.Enabled(sw) {
			t.Errorf("Switch %d not enabled", sw)
		}
	}

	if o.Switches.Enabled(config.DisableAllChecks) {
		t.Error("Unexpected DisableAllChecks")
	}

	if !o.Patches("MaxValueLiteral") || o.Patches("DeferInLoop") {
		t.Error("Unexpected patch selection")
	}
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{
		"-Xep:",
		"-Xep:Foo:LOUD",
		"-XepOpt:novalue",
		"-XepOpt::key=v",
		"-XepPatchLocation:/tmp",
		"-XepUnknown",
		"-XepFoo:bar",
	} {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse([]string{arg})

			var ie *InvalidFlagError
			if !errors.As(err, &ie) {
				t.Fatalf("Got %v, want *InvalidFlagError", err)
			}

			if ie.Flag != arg {
				t.Errorf("Got flag %q, want %q", ie.Flag, arg)
			}
		})
	}
}

func TestShorthand(t *testing.T) {
	t.Parallel()

	var o Options
	if err := o.Set("SelfAssignment:OFF"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := o.Set("XepIgnoreUnknownCheckNames"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if o.Overrides["SelfAssignment"] != Off || !o.Switches.Enabled(config.IgnoreUnknownCheckNames) {
		t.Errorf("Unexpected options %s", o.String())
	}
}

func TestArgsRoundTrip(t *testing.T) {
	t.Parallel()

	in := []string{
		"-XepAllDisabledChecksAsWarnings",
		"-XepIgnoreUnknownCheckNames",
		"-Xep:A:OFF",
		"-Xep:B:WARN",
		"-XepOpt:A:k=v",
	}

	o, _, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := o.Args(); !slices.Equal(got, in) {
		t.Errorf("Got %v, want %v", got, in)
	}
}
