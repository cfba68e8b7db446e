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

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		want, got string
		text, ast bool
	}{
		{"Identical", "x := 1\n", "x := 1\n", true, true},
		{"TrailingSpace", "x := 1  \r\n", "x := 1\n", true, true},
		{"Layout", "f(a, b)", "f(a,\n\tb,\n)", false, true},
		{"Comments", "x := 1 // one", "x := 1", false, true},
		{"Block", "func() { return }", "func() {\n\treturn\n}", false, true},
		{"Different", "x := 1", "x := 2", false, false},
		{"Operator", "a == b", "a != b", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, _ := Equal(TextMatch, []byte(tt.want), []byte(tt.got)); got != tt.text {
				t.Errorf("Got TextMatch = %v, want %v", got, tt.text)
			}

			got, err := Equal(ASTMatch, []byte(tt.want), []byte(tt.got))
			if err != nil {
				t.Fatalf("ASTMatch failed: %v", err)
			}

			if got != tt.ast {
				t.Errorf("Got ASTMatch = %v, want %v", got, tt.ast)
			}
		})
	}
}

func TestEqualScanError(t *testing.T) {
	t.Parallel()

	if _, err := Equal(ASTMatch, []byte("x := \"unterminated"), []byte("x")); err == nil {
		t.Error("Expected scan error")
	}
}
