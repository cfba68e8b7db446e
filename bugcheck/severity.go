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

package bugcheck

import (
	"fmt"
	"strings"
)

// Severity is the severity of a finding.
type Severity uint8

const (
	// Suggestion marks a finding as a suggestion.
	Suggestion Severity = iota + 1

	// Warning marks a finding as a warning.
	Warning

	// Error marks a finding as an error.
	Error
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool { return Suggestion <= s && s <= Error }

func (s Severity) String() string {
	switch s {
	case Suggestion:
		return "suggestion"

	case Warning:
		return "warning"

	case Error:
		return "error"

	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown severity %d", s)
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "suggestion", "note", "info":
		*s = Suggestion

	case "warning", "warn":
		*s = Warning

	case "error":
		*s = Error

	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}

	return nil
}
