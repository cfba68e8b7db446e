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
	"bytes"
	"fmt"
	"slices"
)

// Apply returns src with all edits and import changes of f applied.
//
// Edits are spliced in a single pass over src; src is not modified. Import
// changes are merged after the edits, see [MergeImports].
func Apply(src []byte, f SuggestedFix) ([]byte, error) {
	edits := slices.Clone(f.Edits)
	sortEdits(edits)

	if err := checkEdits(edits); err != nil {
		return nil, err
	}

	if n := len(edits); n > 0 && edits[n-1].End > len(src) {
		return nil, &InvalidEditError{Edit: edits[n-1]}
	}

	out := splice(src, edits)

	if len(f.ImportsToAdd) == 0 && len(f.ImportsToRemove) == 0 {
		return out, nil
	}

	merged, err := MergeImports(out, f.ImportsToAdd, f.ImportsToRemove)
	if err != nil {
		return nil, fmt.Errorf("merging imports: %w", err)
	}

	return merged, nil
}

// splice applies sorted, non-overlapping edits.
func splice(src []byte, edits []Edit) []byte {
	size := len(src)
	for _, e := range edits {
		size += len(e.NewText) - (e.End - e.Start)
	}

	var buf bytes.Buffer
	buf.Grow(size)

	last := 0
	for _, e := range edits {
		buf.Write(src[last:e.Start])
		buf.WriteString(e.NewText)
		last = e.End
	}

	buf.Write(src[last:])

	return buf.Bytes()
}
