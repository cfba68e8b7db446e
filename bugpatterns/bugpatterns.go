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

// Package bugpatterns contains the built-in checkers.
package bugpatterns

import "fillmore-labs.com/patternguard/bugcheck"

const docURL = "https://pkg.go.dev/fillmore-labs.com/patternguard/bugpatterns#"

// All returns the built-in checkers in registration order.
func All() []bugcheck.Checker {
	return []bugcheck.Checker{
		DeepEqualIncompatibleType(),
		SelfAssignment(),
		FormatStringArgs(),
		MaxValueLiteral(),
		StringsCompare(),
		DeferInLoop(),
		DuplicateStringLiteral(),
	}
}
