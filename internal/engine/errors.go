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

package engine

import (
	"errors"
	"fmt"
	"go/token"
)

var (
	// ErrCheckerPanic marks an [InternalError] caused by a panicking checker.
	ErrCheckerPanic = errors.New("checker panicked")

	// ErrFindingOutOfRange marks an [InternalError] for a finding outside of its unit.
	ErrFindingOutOfRange = errors.New("finding outside of compilation unit")

	// ErrScannerUsed is returned when a [Scanner] is started twice.
	ErrScannerUsed = errors.New("scanner already used")
)

// InternalError is a failure of a single checker. It never aborts the run.
type InternalError struct {
	Checker  string
	Pos, End token.Pos
	Position token.Position

	// Value is the recovered panic value, Stack the goroutine stack at recovery.
	Value any
	Stack []byte

	// Err is the underlying error, nil for panics.
	Err error
}

func (e *InternalError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: checker %s panicked: %v", e.Position, e.Checker, e.Value)
	}

	return fmt.Sprintf("%s: checker %s: %v", e.Position, e.Checker, e.Err)
}

func (e *InternalError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}

	return ErrCheckerPanic
}
