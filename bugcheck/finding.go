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
	"go/token"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/patternguard/fix"
	"fillmore-labs.com/patternguard/tree"
)

// Finding is a single match of a checker.
type Finding struct {
	Checker  string
	Severity Severity
	Message  string
	Pos, End token.Pos
	Unit     *tree.Unit

	// Fixes are alternative remediations, the first one is preferred.
	Fixes   []fix.SuggestedFix
	Related []Related

	err error
}

// Related is a secondary location of a finding.
type Related struct {
	Pos, End token.Pos
	Message  string
}

// WithMessage replaces the default message.
func (f Finding) WithMessage(format string, args ...any) Finding {
	f.Message = fmt.Sprintf(format, args...)

	return f
}

// WithFix builds the fix and appends it to the alternatives.
// A build error is kept and surfaces as an internal error of the checker.
func (f Finding) WithFix(b *fix.Builder) Finding {
	if f.err != nil {
		return f
	}

	sf, err := b.Build()
	if err != nil {
		f.err = fmt.Errorf("building fix: %w", err)

		return f
	}

	f.Fixes = append(f.Fixes, sf)

	return f
}

// WithRelated adds a secondary location.
func (f Finding) WithRelated(r analysis.Range, message string) Finding {
	f.Related = append(f.Related, Related{Pos: r.Pos(), End: r.End(), Message: message})

	return f
}

// Err returns the error recorded while building fixes.
func (f Finding) Err() error { return f.err }

// Position returns the resolved start position of the finding.
func (f Finding) Position() token.Position {
	if f.Unit == nil {
		return token.Position{}
	}

	return f.Unit.Position(f.Pos)
}
