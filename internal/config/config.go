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

package config

import "strconv"

// Switch represents global behavior switches of a run.
type Switch uint16

const (
	// IgnoreUnknownCheckNames tolerates flags naming unregistered checkers.
	IgnoreUnknownCheckNames Switch = 1 << iota

	// AllErrorsAsWarnings demotes all disableable errors to warnings.
	AllErrorsAsWarnings

	// AllDisabledChecksAsWarnings enables all checkers that are disabled by default, as warnings.
	AllDisabledChecksAsWarnings

	// DisableAllChecks disables all disableable checkers before per-checker overrides.
	DisableAllChecks

	// DisableWarningsInGeneratedCode suppresses warnings and suggestions in generated files.
	DisableWarningsInGeneratedCode

	// PatchInPlace requests fixes to be written back to the source files.
	PatchInPlace
)

var switchNames = [...]string{
	"IgnoreUnknownCheckNames",
	"AllErrorsAsWarnings",
	"AllDisabledChecksAsWarnings",
	"DisableAllChecks",
	"DisableWarningsInGeneratedCode",
	"PatchInPlace",
}

func (s Switch) String() string {
	for i, name := range switchNames {
		if s == 1<<i {
			return name
		}
	}

	return "Switch(" + strconv.FormatUint(uint64(s), 10) + ")"
}
