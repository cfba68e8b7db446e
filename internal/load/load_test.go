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

package load_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "fillmore-labs.com/patternguard/internal/load"
)

func module(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	files["go.mod"] = "module example.com/m\n\ngo 1.22\n"
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestPackages(t *testing.T) {
	t.Parallel()

	dir := module(t, map[string]string{
		"a.go":      "package m\n\nfunc A() int { return 1 }\n",
		"b.go":      "package m\n\nfunc B() int { return A() }\n",
		"m_test.go": "package m\n\nimport \"testing\"\n\nfunc TestA(t *testing.T) { _ = A() }\n",
	})

	pkgs, err := Config{Dir: dir, Tests: true}.Packages(t.Context(), "./...")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(pkgs) != 1 {
		t.Fatalf("Got %d packages, expected the test variant only", len(pkgs))
	}

	p := pkgs[0]
	if p.Path != "example.com/m" || len(p.Units) != 3 {
		t.Errorf("Got package %s with %d units", p.Path, len(p.Units))
	}

	for _, u := range p.Units {
		if len(u.Source()) == 0 || u.Package() != p.Types {
			t.Errorf("Unit %s not wired to package", u.Filename())
		}
	}
}

func TestPackagesError(t *testing.T) {
	t.Parallel()

	dir := module(t, map[string]string{
		"a.go": "package m\n\nfunc A() int { return \"\" }\n",
	})

	_, err := Config{Dir: dir}.Packages(t.Context(), "./...")
	if !errors.Is(err, ErrPackage) {
		t.Errorf("Got error %v, expected %v", err, ErrPackage)
	}
}

func TestRecheck(t *testing.T) {
	t.Parallel()

	dir := module(t, map[string]string{
		"a.go": "package m\n\nimport \"strings\"\n\nvar S = strings.ToUpper(\"a\")\n",
	})

	pkgs, err := Config{Dir: dir}.Packages(t.Context(), ".")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := pkgs[0]
	name := p.Units[0].Filename()

	changed := []byte("package m\n\nimport (\n\t\"math\"\n\t\"strings\"\n)\n\nvar S = strings.ToUpper(\"a\")\n\nconst M = math.MaxUint16\n")

	q, err := p.Recheck(map[string][]byte{name: changed})
	if err != nil {
		t.Fatalf("Recheck failed: %v", err)
	}

	if obj := q.Types.Scope().Lookup("M"); obj == nil {
		t.Error("Expected constant M in rechecked package")
	}

	if got := string(q.Units[0].Source()); got != string(changed) {
		t.Errorf("Got source %q", got)
	}

	if p.Fingerprint("") == q.Fingerprint("") {
		t.Error("Expected fingerprint to change with the source")
	}

	if p.Fingerprint("a") == p.Fingerprint("b") {
		t.Error("Expected fingerprint to change with the key")
	}

	if _, err := p.Recheck(map[string][]byte{name: []byte("package m\n\nvar X int = \"\"\n")}); err == nil {
		t.Error("Expected type error")
	}

	if _, err := p.Recheck(map[string][]byte{"other.go": nil}); err == nil {
		t.Error("Expected error for foreign file")
	}
}

func TestSource(t *testing.T) {
	t.Parallel()

	p, err := Source("example.com/s",
		File{Name: "a.go", Src: []byte("package s\n\nimport \"fmt\"\n\nvar A = fmt.Sprint(B)\n")},
		File{Name: "b.go", Src: []byte("package s\n\nconst B = 1\n")},
	)
	if err != nil {
		t.Fatalf("Source failed: %v", err)
	}

	if len(p.Units) != 2 || p.Units[1].Filename() != "b.go" {
		t.Fatalf("Got %d units", len(p.Units))
	}

	if _, err := Source("example.com/s", File{Name: "a.go", Src: []byte("package s\n\nfunc {\n")}); err == nil {
		t.Error("Expected syntax error")
	}
}
