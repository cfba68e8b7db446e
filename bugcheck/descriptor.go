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
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/patternguard/tree"
)

var (
	// ErrNoName is returned for a descriptor without a name.
	ErrNoName = errors.New("checker has no name")

	// ErrNoKinds is returned for a descriptor without node kinds.
	ErrNoKinds = errors.New("checker declares no node kinds")

	// ErrInvalidSeverity is returned for a descriptor with an unknown default severity.
	ErrInvalidSeverity = errors.New("invalid default severity")
)

// Descriptor is the identity and metadata of a checker.
//
// The zero values of the boolean fields describe a checker that is enabled
// by default, can be disabled and can be suppressed.
type Descriptor struct {
	// Name is the canonical name, used in reports, flags and suppressions.
	Name string

	// AltNames are additional names honored by flags and suppressions.
	AltNames []string

	// Summary is the default finding message.
	Summary string

	// Severity is the default severity.
	Severity Severity

	// Kinds are the node kinds the checker is dispatched for.
	Kinds []tree.Kind

	// Tags classify the checker, e.g. "Style" or "Performance".
	Tags []string

	// URL links to documentation.
	URL string

	// Unsuppressible checkers ignore suppression directives.
	Unsuppressible bool

	// Mandatory checkers can not be disabled.
	Mandatory bool

	// DisabledByDefault checkers only run when enabled explicitly.
	DisabledByDefault bool
}

// Names returns the canonical name followed by the alternate names.
func (d Descriptor) Names() []string {
	return append([]string{d.Name}, d.AltNames...)
}

// HasName reports whether name is the canonical or an alternate name.
func (d Descriptor) HasName(name string) bool {
	return d.Name == name || slices.Contains(d.AltNames, name)
}

// Suppressible reports whether suppression directives apply.
func (d Descriptor) Suppressible() bool { return !d.Unsuppressible }

// Disableable reports whether the checker can be turned off.
func (d Descriptor) Disableable() bool { return !d.Mandatory }

// EnabledByDefault reports whether the checker runs without being enabled explicitly.
func (d Descriptor) EnabledByDefault() bool { return !d.DisabledByDefault }

// Validate checks the descriptor for registration.
func (d Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return ErrNoName

	case len(d.Kinds) == 0:
		return fmt.Errorf("%s: %w", d.Name, ErrNoKinds)

	case !d.Severity.Valid():
		return fmt.Errorf("%s: %w %s", d.Name, ErrInvalidSeverity, d.Severity)
	}

	return nil
}
