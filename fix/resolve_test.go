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

package fix_test

import (
	"testing"

	. "fillmore-labs.com/patternguard/fix"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	const (
		prefix = "package p\n\nimport (\n\t\"os\"\n\t\"strings\"\n)\n\nvar x = "
		rest   = "\nvar y = os.Args\n"
	)

	src := []byte(prefix + "uint16(65535)" + rest)
	start := len(prefix + "uint16(")

	tests := []struct {
		name string
		fix  SuggestedFix
		want string
	}{
		{
			name: "edits only",
			fix:  SuggestedFix{Edits: []Edit{{Start: start, End: start + 5, NewText: "1"}}},
			want: prefix + "uint16(1)" + rest,
		},
		{
			name: "add and remove",
			fix: SuggestedFix{
				Edits:           []Edit{{Start: start, End: start + 5, NewText: "math.MaxUint16"}},
				ImportsToAdd:    []Import{{Path: "math"}},
				ImportsToRemove: []string{"strings"},
			},
			want: "package p\n\nimport (\n\t\"math\"\n\t\"os\"\n)\n\nvar x = uint16(math.MaxUint16)" + rest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			edits, err := tt.fix.Resolve(src)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			direct, err := Apply(src, tt.fix)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			resolved, err := Apply(src, SuggestedFix{Edits: edits})
			if err != nil {
				t.Fatalf("Apply of resolved edits failed: %v", err)
			}

			if got := string(resolved); got != string(direct) {
				t.Errorf("Resolved edits give %q, direct application %q", got, direct)
			}

			if got := string(resolved); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineEdits(t *testing.T) {
	t.Parallel()

	a := []byte("a\nb\nc")
	b := []byte("a\nx\ny\nc")

	edits := LineEdits(a, b)
	if len(edits) != 1 {
		t.Fatalf("Got %d edits, want 1: %v", len(edits), edits)
	}

	if got, want := edits[0], (Edit{Start: 2, End: 4, NewText: "x\ny\n"}); got != want {
		t.Errorf("Got %+v, want %+v", got, want)
	}

	if edits := LineEdits(a, a); len(edits) != 0 {
		t.Errorf("Got %d edits for identical input, want none", len(edits))
	}
}
