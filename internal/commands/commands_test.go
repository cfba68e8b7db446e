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

package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/patternguard/internal/commands"
	"fillmore-labs.com/patternguard/internal/report"
)

const (
	goMod = "module example.com/m\n\ngo 1.24\n"

	selfAssign = `package m

func f(a int) int {
	a = a
	return a
}
`
)

// testModule creates a module with a single self-assignment.
func testModule(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte(selfAssign), 0o644))

	return dir
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = Execute(t.Context(), args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, out, _ := run(t, "check", "-C", dir, "--no-cache")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "a.go:4:2: [SelfAssignment] a is assigned to itself")
	assert.Contains(t, out, "1 error, 0 warnings")
}

func TestCheckJSON(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, out, _ := run(t, "check", "-C", dir, "--no-cache", "--format", "json", "./...")
	require.Equal(t, 1, code)

	var ds []report.Diagnostic
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	require.Len(t, ds, 1)

	assert.Equal(t, "SelfAssignment", ds[0].Checker)
	assert.Equal(t, "a.go", ds[0].File)
	assert.Equal(t, 4, ds[0].Line)
	assert.NotEmpty(t, ds[0].Fixes)
}

func TestCheckSARIF(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, out, _ := run(t, "check", "-C", dir, "--no-cache", "--format", "sarif")
	require.Equal(t, 1, code)

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &log))

	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	require.Len(t, log.Runs[0].Results, 1)
	assert.Equal(t, "SelfAssignment", log.Runs[0].Results[0].RuleID)
}

func TestCheckDisabled(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, out, _ := run(t, "check", "-C", dir, "--no-cache", "--xep", "-Xep:SelfAssignment:OFF")

	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestCheckConfigFile(t *testing.T) {
	t.Parallel()

	dir := testModule(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".patternguard.yaml"),
		[]byte("checks:\n  - SelfAssignment:WARN\n"), 0o644))

	code, out, _ := run(t, "check", "-C", dir, "--no-cache")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "0 errors, 1 warning")
}

func TestCheckCache(t *testing.T) {
	t.Parallel()

	dir := testModule(t)
	cacheDir := t.TempDir()

	code1, out1, _ := run(t, "check", "-C", dir, "--cache-dir", cacheDir)
	code2, out2, errOut2 := run(t, "check", "-C", dir, "--cache-dir", cacheDir, "--log-level", "debug")

	assert.Equal(t, 1, code1)
	assert.Equal(t, code1, code2)
	assert.Equal(t, out1, out2)
	assert.Contains(t, errOut2, "Cache hit")

	code, out, _ := run(t, "cache", "dir", "--cache-dir", cacheDir)
	require.Equal(t, 0, code)
	assert.Equal(t, cacheDir+"\n", out)

	code, _, _ = run(t, "cache", "clean", "--cache-dir", cacheDir)
	require.Equal(t, 0, code)

	_, _, errOut3 := run(t, "check", "-C", dir, "--cache-dir", cacheDir, "--log-level", "debug")
	assert.NotContains(t, errOut3, "Cache hit")
}

func TestCheckInvalidFlag(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, _, errOut := run(t, "check", "-C", dir, "--no-cache", "--xep", "-Xep:SelfAssignment:LOUD")

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "severity must be one of")
}

func TestCheckUnknownChecker(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, _, errOut := run(t, "check", "-C", dir, "--no-cache", "--xep", "-Xep:SelfAssign")

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `"SelfAssign" is not a valid checker name, did you mean`)
}

func TestFixDiff(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, out, errOut := run(t, "fix", "-C", dir, "--no-cache")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "--- a.go")
	assert.Contains(t, out, "-\ta = a\n")
	assert.Contains(t, errOut, "1 file changed, 0 findings remaining")

	src, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, selfAssign, string(src))
}

func TestFixInPlace(t *testing.T) {
	t.Parallel()

	dir := testModule(t)

	code, out, _ := run(t, "fix", "-C", dir, "--in-place")

	assert.Equal(t, 0, code)
	assert.Empty(t, out)

	src, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package m\n\nfunc f(a int) int {\n\treturn a\n}\n", string(src))

	code, _, _ = run(t, "check", "-C", dir, "--no-cache")
	assert.Equal(t, 0, code)
}

func TestCheckers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	code, out, _ := run(t, "checkers", "-C", dir, "--xep", "-Xep:DuplicateStringLiteral:WARN")
	require.Equal(t, 0, code)

	for _, name := range []string{"SelfAssignment (selfassign)", "DeepEqualIncompatibleType", "DuplicateStringLiteral"} {
		assert.Contains(t, out, name)
	}

	code, out, _ = run(t, "checkers", "-C", dir, "--format", "json", "--xep", "-Xep:DuplicateStringLiteral:WARN")
	require.Equal(t, 0, code)

	var infos []struct {
		Name     string `json:"name"`
		Severity string `json:"severity"`
		Enabled  bool   `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))

	found := false

	for _, info := range infos {
		if info.Name == "DuplicateStringLiteral" {
			found = true

			assert.True(t, info.Enabled)
			assert.Equal(t, "warning", info.Severity)
		}
	}

	assert.True(t, found, "DuplicateStringLiteral not listed")
}
