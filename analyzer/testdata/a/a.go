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

package a

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

func selfAssign(a, b, c int) (int, int) {
	a = a       // want "a is assigned to itself"
	a, b = a, c // want "a is assigned to itself"
	b = b       //nolint:SelfAssignment

	return a, b
}

func deepEqual(x []int, y []string, z []int) bool {
	return reflect.DeepEqual(x, y) || reflect.DeepEqual(x, z) // want "type-incompatible values of \\[\\]int and \\[\\]string"
}

func format(name string) string {
	return fmt.Sprintf("%s", name, 42) // want "2 arguments but the format string has 1 verb"
}

func maxValue() uint16 {
	return uint16(65535) // want "65535 is math.MaxUint16"
}

func compare(a, b string) bool {
	return strings.Compare(a, b) == 0 || strings.HasPrefix(a, b) // want "use a == b instead of strings.Compare"
}

func closeAll(names []string) {
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			continue
		}
		defer f.Close() // want "Deferred call runs at function exit"
	}
}
