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

package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/patternguard/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefault(t *testing.T) {
	t.Parallel()

	f, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "text", f.Format)
	assert.Equal(t, DefaultMaxPasses, f.MaxPasses)
	assert.Empty(t, f.Used)
	assert.Equal(t, []string{"-XepDisableWarningsInGeneratedCode"}, f.Args())
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".patternguard.yaml", `checks:
  - SelfAssignment:OFF
  - DeferInLoop:ERROR
options:
  - DuplicateStringLiteral:min=3
format: sarif
jobs: 4
generated: true
`)

	f, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "sarif", f.Format)
	assert.Equal(t, 4, f.Jobs)
	assert.True(t, f.Generated)
	assert.Equal(t, filepath.Join(dir, ".patternguard.yaml"), f.Used)
	assert.Equal(t, []string{
		"-Xep:SelfAssignment:OFF",
		"-Xep:DeferInLoop:ERROR",
		"-XepOpt:DuplicateStringLiteral:min=3",
	}, f.Args())
}

func TestLoadExplicitTOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "lint.toml", `checks = ["StringsCompare:WARN"]
max-passes = 3
`)

	f, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"StringsCompare:WARN"}, f.Checks)
	assert.Equal(t, 3, f.MaxPasses)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing explicit file", filepath.Join(dir, "missing.yaml")},
		{"negative jobs", writeFile(t, dir, "jobs.yaml", "jobs: -1\n")},
		{"zero passes", writeFile(t, dir, "passes.yaml", "max-passes: 0\n")},
		{"malformed", writeFile(t, dir, "bad.yaml", "checks: [\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(tt.path, "")
			assert.Error(t, err)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PATTERNGUARD_FORMAT", "json")
	t.Setenv("PATTERNGUARD_MAX_PASSES", "2")

	f, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "json", f.Format)
	assert.Equal(t, 2, f.MaxPasses)
}

func TestBitMask(t *testing.T) {
	t.Parallel()

	b := NewBitMask(AllErrorsAsWarnings, PatchInPlace)

	assert.True(t, b.Enabled(AllErrorsAsWarnings))
	assert.True(t, b.Enabled(PatchInPlace))
	assert.False(t, b.Enabled(DisableAllChecks))

	b.Set(PatchInPlace, false)
	b.Set(DisableAllChecks, true)

	assert.False(t, b.Enabled(PatchInPlace))
	assert.True(t, b.Enabled(DisableAllChecks))
}

func TestBitMaskUnion(t *testing.T) {
	t.Parallel()

	a := NewBitMask(IgnoreUnknownCheckNames, PatchInPlace)
	b := NewBitMask(DisableWarningsInGeneratedCode)

	u := a.Union(b.Mask(DisableWarningsInGeneratedCode | DisableAllChecks))

	assert.Equal(t, []Switch{IgnoreUnknownCheckNames, DisableWarningsInGeneratedCode, PatchInPlace}, slices.Collect(u.All()))
	assert.True(t, a.Mask(DisableAllChecks).Empty())
	assert.False(t, u.Empty())
}

func TestSwitchString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DisableWarningsInGeneratedCode", DisableWarningsInGeneratedCode.String())
	assert.Equal(t, "Switch(3)", (IgnoreUnknownCheckNames | AllErrorsAsWarnings).String())
}
