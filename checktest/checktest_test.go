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

package checktest_test

import (
	"fmt"
	"strings"
	"testing"

	"fillmore-labs.com/patternguard/bugpatterns"
	. "fillmore-labs.com/patternguard/checktest"
	"fillmore-labs.com/patternguard/fix"
)

// recorder captures failures instead of failing the enclosing test.
type recorder struct {
	testing.TB
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) expect(t *testing.T, substrs ...string) {
	t.Helper()

	if len(substrs) == 0 {
		if len(r.errors) > 0 {
			t.Errorf("Expected no failures, got:\n%s", strings.Join(r.errors, "\n"))
		}

		return
	}

	all := strings.Join(r.errors, "\n")
	for _, s := range substrs {
		if !strings.Contains(all, s) {
			t.Errorf("Expected a failure containing %q, got:\n%s", s, all)
		}
	}
}

var selfAssign = []string{
	"package test",
	"",
	"func f(a int) int {",
	"	a = a",
	"	return a",
	"}",
}

func TestCompilationHelper(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(h *CompilationHelper) *CompilationHelper
		want  []string
	}{
		{
			name: "match",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go",
					"package test",
					"",
					"func f(a int) int {",
					"	// BUG: Diagnostic contains: assigned",
					"	// to itself",
					"	a = a",
					"	return a",
					"}",
				)
			},
		},
		{
			name: "missing",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go",
					"package test",
					"",
					"func f(a int) int {",
					"	// BUG: Diagnostic contains: assigned",
					"	return a",
					"}",
				)
			},
			want: []string{`a.go:5: Did not see a diagnostic matching "assigned"`},
		},
		{
			name: "unexpected",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go", selfAssign...)
			},
			want: []string{"Saw unexpected diagnostic a.go:4:2: [SelfAssignment] a is assigned to itself"},
		},
		{
			name: "wrong message",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go",
					"package test",
					"",
					"func f(a int) int {",
					"	// BUG: Diagnostic contains: never",
					"	a = a",
					"	return a",
					"}",
				)
			},
			want: []string{`Did not see a diagnostic matching "never"`},
		},
		{
			name: "unused key",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go", "package test").
					ExpectMessage("K", func(string) bool { return true })
			},
			want: []string{`Unused message key "K"`},
		},
		{
			name: "unknown key",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go",
					"package test",
					"",
					"// BUG: Diagnostic matches: K",
					"var v int",
				)
			},
			want: []string{`No expected message with key "K"`},
		},
		{
			name: "no diagnostics",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go", selfAssign...).ExpectNoDiagnostics()
			},
			want: []string{"Expected no diagnostics produced, but found 1"},
		},
		{
			name: "no sources",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h
			},
			want: []string{"No source files to compile"},
		},
		{
			name: "compile error",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go", "package test", "", "var v int = \"x\"")
			},
			want: []string{"Test program failed to compile"},
		},
		{
			name: "invalid args",
			setup: func(h *CompilationHelper) *CompilationHelper {
				return h.AddSourceLines("a.go", "package test").SetArgs("-Xep:NoSuchCheck")
			},
			want: []string{"Invalid configuration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &recorder{TB: t}
			tt.setup(NewCompilationHelper(r, bugpatterns.SelfAssignment())).DoTest()
			r.expect(t, tt.want...)
		})
	}
}

func TestCompilationHelperOnce(t *testing.T) {
	t.Parallel()

	r := &recorder{TB: t}
	h := NewCompilationHelper(r, bugpatterns.SelfAssignment()).AddSourceLines("a.go", "package test")
	h.DoTest()
	h.DoTest()
	r.expect(t, "DoTest should only be called once")
}

func TestRefactoringHelper(t *testing.T) {
	t.Parallel()

	t.Run("match", func(t *testing.T) {
		t.Parallel()

		r := &recorder{TB: t}
		NewRefactoringHelper(r, bugpatterns.SelfAssignment()).
			AddInputLines("a.go", selfAssign...).
			AddOutputLines(
				"package test",
				"",
				"func f(a int) int {",
				"	return a",
				"}",
			).
			DoTest(fix.TextMatch)
		r.expect(t)
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()

		r := &recorder{TB: t}
		NewRefactoringHelper(r, bugpatterns.SelfAssignment()).
			AddInputLines("a.go", selfAssign...).
			ExpectUnchanged().
			DoTest(fix.TextMatch)
		r.expect(t, "Output of a.go differs (textmatch)", "-\ta = a")
	})

	t.Run("ast", func(t *testing.T) {
		t.Parallel()

		r := &recorder{TB: t}
		NewRefactoringHelper(r, bugpatterns.SelfAssignment()).
			AddInputLines("a.go", selfAssign...).
			AddOutputLines(
				"package test",
				"func f(a int) int { return a }",
			).
			DoTest(fix.ASTMatch)
		r.expect(t)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		r := &recorder{TB: t}
		NewRefactoringHelper(r, bugpatterns.SelfAssignment()).
			SetArgs("-Xep:SelfAssignment:OFF").
			AddInputLines("a.go", selfAssign...).
			ExpectUnchanged().
			DoTest(fix.TextMatch)
		r.expect(t)
	})
}
