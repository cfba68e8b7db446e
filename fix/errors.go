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

package fix

import (
	"errors"
	"fmt"
)

// OverlappingEditsError is returned when two edits of the same fix overlap.
// This is a programming error in the checker that built the fix.
type OverlappingEditsError struct {
	First, Second Edit
}

func (e *OverlappingEditsError) Error() string {
	return fmt.Sprintf("overlapping edits [%d,%d) and [%d,%d)", e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// InvalidEditError is returned for edits with a negative or inverted range,
// or a range outside the source text.
type InvalidEditError struct {
	Edit Edit
}

func (e *InvalidEditError) Error() string {
	return fmt.Sprintf("invalid edit range [%d,%d)", e.Edit.Start, e.Edit.End)
}

// ErrOutsideFile is returned when a builder is given a position outside its file.
var ErrOutsideFile = errors.New("position outside of file")

// ErrImportConflict is returned when a fix both adds and removes the same import.
var ErrImportConflict = errors.New("import both added and removed")
