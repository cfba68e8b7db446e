// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

// Package analyzer runs patternguard checkers as a static analysis pass.
//
// # Overview
//
// Every finding of an enabled checker becomes an [analysis.Diagnostic] with
// the checker name as category. The preferred suggested fix of a finding is
// attached, including its import changes.
//
// # Example
//
// Before:
//
//	func handle(names []string) {
//	    for _, name := range names {
//	        f, _ := os.Open(name)
//	        defer f.Close() // DeferInLoop
//	    }
//	    x := uint16(65535) // MaxValueLiteral
//	}
//
// After applying the suggested fixes:
//
//	x := uint16(math.MaxUint16)
//
// # Configuration
//
// Checkers are selected with the -xep flag, which takes the same arguments
// as the command line tool and may be repeated:
//
//	-xep=-Xep:DeferInLoop:ERROR -xep=-XepDisableAllChecks
//
// Warnings in generated files are reported only with -generated.
package analyzer
