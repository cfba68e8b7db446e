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

package bugpatterns_test

import (
	"testing"

	. "fillmore-labs.com/patternguard/bugpatterns"
	"fillmore-labs.com/patternguard/checktest"
	"fillmore-labs.com/patternguard/fix"
	"fillmore-labs.com/patternguard/internal/registry"
)

func TestAll(t *testing.T) {
	t.Parallel()

	reg, err := registry.New(All()...)
	if err != nil {
		t.Fatalf("Can't register built-in checkers: %v", err)
	}

	if got, want := reg.Len(), 7; got != want {
		t.Errorf("Got %d checkers, expected %d", got, want)
	}

	for _, d := range reg.Descriptors() {
		if d.Summary == "" || d.URL == "" {
			t.Errorf("Checker %s lacks documentation", d.Name)
		}
	}
}

func TestDeepEqualIncompatibleType(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, DeepEqualIncompatibleType()).
		AddSourceLines("a.go",
			"package test",
			"",
			`import "reflect"`,
			"",
			"func f(o []int, b []string, c []int, i any) {",
			"	// BUG: Diagnostic contains: type-incompatible",
			"	_ = reflect.DeepEqual(o, b)",
			"	_ = reflect.DeepEqual(o, c)",
			"	_ = reflect.DeepEqual(o, i)",
			"	_ = reflect.DeepEqual(o, nil)",
			"	// BUG: Diagnostic contains: int and string",
			`	_ = reflect.DeepEqual(1, "a")`,
			"}",
		).
		DoTest()
}

func TestDeepEqualNoDiagnostics(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, DeepEqualIncompatibleType()).
		AddSourceLines("a.go",
			"package test",
			"",
			`import "reflect"`,
			"",
			"type S []int",
			"",
			"func f(a, b S) bool { return reflect.DeepEqual(a, b) }",
		).
		ExpectNoDiagnostics().
		DoTest()
}

func TestSelfAssignment(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, SelfAssignment()).
		AddSourceLines("a.go",
			"package test",
			"",
			"type T struct{ x, y int }",
			"",
			"func f(a, b, c int, t *T, u *T) {",
			"	// BUG: Diagnostic contains: a is assigned to itself",
			"	a = a",
			"	// BUG: Diagnostic contains: t.x is assigned to itself",
			"	t.x = t.x",
			"	// BUG: Diagnostic contains: a, b are assigned to themselves",
			"	a, b, c = a, b, 1",
			"	a, b = b, a",
			"	t.x = t.y",
			"	t.x = u.x",
			"	a = a //nolint:SelfAssignment",
			"	a = a //nolint:selfassign",
			"	_, _, _ = a, b, c",
			"}",
		).
		DoTest()
}

func TestSelfAssignmentRefactoring(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoringHelper(t, SelfAssignment()).
		AddInputLines("a.go",
			"package test",
			"",
			"func f(a, b, c int) (int, int) {",
			"	a = a",
			"	a, b = a, c",
			"	return a, b",
			"}",
		).
		AddOutputLines(
			"package test",
			"",
			"func f(a, b, c int) (int, int) {",
			"	b = c",
			"	return a, b",
			"}",
		).
		DoTest(fix.TextMatch)
}

func TestFormatStringArgs(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, FormatStringArgs()).
		AddSourceLines("a.go",
			"package test",
			"",
			`import "fmt"`,
			"",
			"func f() {",
			"	// BUG: Diagnostic contains: 2 arguments but the format string has 1 verb",
			`	_ = fmt.Sprintf("%s", 1, 1)`,
			"	// BUG: Diagnostic contains: 2 verbs but the call has 1 arguments",
			`	_ = fmt.Sprintf("%s %d", 1)`,
			`	_ = fmt.Sprintf("%d%%", 1)`,
			`	_ = fmt.Sprintf("%*d", 3, 1)`,
			`	_ = fmt.Sprintf("%6.2f", 1.0)`,
			`	_ = fmt.Sprintf("%[1]s %[1]s", 1)`,
			`	_ = fmt.Errorf("%w", fmt.Errorf("x"))`,
			"}",
		).
		DoTest()
}

func TestFormatStringArgsRefactoring(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoringHelper(t, FormatStringArgs()).
		AddInputLines("a.go",
			"package test",
			"",
			`import "fmt"`,
			"",
			"func f() string {",
			`	return fmt.Sprintf("%s", 1, 1)`,
			"}",
		).
		AddOutputLines(
			"package test",
			"",
			`import "fmt"`,
			"",
			"func f() string {",
			`	return fmt.Sprintf("%s (%v)", 1, 1)`,
			"}",
		).
		DoTest(fix.TextMatch)
}

func TestMaxValueLiteral(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, MaxValueLiteral()).
		AddSourceLines("a.go",
			"package test",
			"",
			"const c = 65535",
			"",
			"func f(v int) {",
			"	// BUG: Diagnostic contains: 65535 is math.MaxUint16",
			"	_ = uint16(65535)",
			"	// BUG: Diagnostic contains: math.MinInt8",
			"	_ = int8(-128)",
			"	// BUG: Diagnostic contains: math.MaxUint64",
			"	_ = uint64(0xFFFFFFFFFFFFFFFF)",
			"	_ = uint16(65534)",
			"	_ = uint16(c)",
			"	_ = int(9223372036854775807)",
			"	_ = uint8(v)",
			"}",
		).
		DoTest()
}

func TestMaxValueLiteralRefactoring(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoringHelper(t, MaxValueLiteral()).
		AddInputLines("a.go",
			"package test",
			"",
			"func f() uint16 {",
			"	x := uint16(65535)",
			"	return x",
			"}",
		).
		AddOutputLines(
			"package test",
			"",
			`import "math"`,
			"",
			"func f() uint16 {",
			"	x := uint16(math.MaxUint16)",
			"	return x",
			"}",
		).
		AddInputLines("b.go",
			"package test",
			"",
			`import m "math"`,
			"",
			"var y = int32(-2147483648) + int32(m.MaxInt8)",
		).
		AddOutputLines(
			"package test",
			"",
			`import m "math"`,
			"",
			"var y = int32(m.MinInt32) + int32(m.MaxInt8)",
		).
		DoTest(fix.TextMatch)
}

func TestMaxValueLiteralBlankImport(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoringHelper(t, MaxValueLiteral()).
		AddInputLines("a.go",
			"package test",
			"",
			`import _ "math"`,
			"",
			"var x = uint16(65535)",
		).
		AddOutputLines(
			"package test",
			"",
			"import (",
			`	"math"`,
			`	_ "math"`,
			")",
			"",
			"var x = uint16(math.MaxUint16)",
		).
		DoTest(fix.TextMatch)
}

func TestMaxValueLiteralShadowed(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoringHelper(t, MaxValueLiteral()).
		AddInputLines("a.go",
			"package test",
			"",
			"func f(math int) uint8 {",
			"	_ = math",
			"	return uint8(255)",
			"}",
		).
		ExpectUnchanged().
		DoTest(fix.TextMatch)
}

func TestStringsCompare(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, StringsCompare()).
		AddSourceLines("a.go",
			"package test",
			"",
			`import "strings"`,
			"",
			"func f(a, b string) {",
			"	// BUG: Diagnostic contains: use a == b instead",
			"	_ = strings.Compare(a, b) == 0",
			"	// BUG: Diagnostic contains: use b < a instead",
			"	_ = 0 < strings.Compare(a, b)",
			"	_ = strings.Compare(a, b) == 1",
			"	_ = strings.Compare(a, b)",
			"}",
		).
		DoTest()
}

func TestStringsCompareRefactoring(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoringHelper(t, StringsCompare()).
		AddInputLines("a.go",
			"package test",
			"",
			`import "strings"`,
			"",
			"func f(a, b string) bool {",
			"	return strings.Compare(a, b) == 0 || 0 > strings.Compare(a, b)",
			"}",
		).
		AddOutputLines(
			"package test",
			"",
			"func f(a, b string) bool {",
			"	return a == b || b > a",
			"}",
		).
		AddInputLines("b.go",
			"package test",
			"",
			`import "strings"`,
			"",
			"func g(a, b string) bool {",
			"	return strings.Compare(a, b) != 0 && strings.HasPrefix(a, b)",
			"}",
		).
		AddOutputLines(
			"package test",
			"",
			`import "strings"`,
			"",
			"func g(a, b string) bool {",
			"	return a != b && strings.HasPrefix(a, b)",
			"}",
		).
		DoTest(fix.ASTMatch)
}

func TestDeferInLoop(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, DeferInLoop()).
		AddSourceLines("a.go",
			"package test",
			"",
			`import "os"`,
			"",
			"func f(names []string) {",
			"	for _, name := range names {",
			"		fd, err := os.Open(name)",
			"		if err != nil {",
			"			continue",
			"		}",
			"		// BUG: Diagnostic contains: function exit",
			"		defer fd.Close()",
			"	}",
			"	for i := 0; i < 3; i++ {",
			"		func() {",
			"			defer println(i)",
			"		}()",
			"	}",
			`	defer println("done")`,
			"}",
		).
		DoTest()
}

func TestDuplicateStringLiteral(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, DuplicateStringLiteral()).
		AddSourceLines("a.go",
			"package test",
			"",
			`const c = "dup"`,
			"",
			"func f() []string {",
			"	// BUG: Diagnostic contains: appears 3 times",
			`	a := "dup"`,
			`	b := "dup"`,
			`	return []string{a, b, "dup", "x", "x", c}`,
			"}",
		).
		DoTest()
}

func TestDuplicateStringLiteralSuppressed(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, DuplicateStringLiteral()).
		AddSourceLines("a.go",
			"package test",
			"",
			"func f() []string {",
			`	a := "dup"`,
			`	b := "dup" //nolint:DuplicateStringLiteral`,
			`	return []string{a, b, "dup"}`,
			"}",
			"",
			"func g() []string {",
			`	// BUG: Diagnostic contains: string literal "more" appears 3 times`,
			`	a := "more"`,
			`	b := "more" //nolint:DuplicateStringLiteral`,
			`	return []string{a, b, "more", "more"}`,
			"}",
		).
		DoTest()
}

func TestDuplicateStringLiteralOption(t *testing.T) {
	t.Parallel()

	checktest.NewCompilationHelper(t, DuplicateStringLiteral()).
		SetArgs("-XepOpt:DuplicateStringLiteral:min=2").
		AddSourceLines("a.go",
			"package test",
			"",
			"func f() []string {",
			"	// BUG: Diagnostic matches: X",
			`	return []string{"x", "x"}`,
			"}",
		).
		AddSourceLines("b.go",
			"package test",
			"",
			"// BUG: Diagnostic contains: appears 2 times",
			`var y = "y"`,
			"",
			`var z = "y"`,
		).
		ExpectMessage("X", func(msg string) bool {
			return msg == `[DuplicateStringLiteral] string literal "x" appears 2 times, consider a constant`
		}).
		DoTest()
}
