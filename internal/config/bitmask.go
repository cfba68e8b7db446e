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

package config

import "iter"

// BitMask holds a set of single-bit flags, such as the run [Switch] values.
type BitMask[T ~uint8 | ~uint16 | ~uint32 | ~uint64] struct {
	value T
}

// NewBitMask returns a [BitMask] with the given flags set.
func NewBitMask[T ~uint8 | ~uint16 | ~uint32 | ~uint64](flags ...T) BitMask[T] {
	var b BitMask[T]
	for _, flag := range flags {
		b.value |= flag
	}

	return b
}

// Set enables or disables flag.
func (b *BitMask[T]) Set(flag T, value bool) {
	if value {
		b.Enable(flag)
	} else {
		b.Disable(flag)
	}
}

// Enable sets flag.
func (b *BitMask[T]) Enable(flag T) {
	b.value |= flag
}

// Disable clears flag.
func (b *BitMask[T]) Disable(flag T) {
	b.value &^= flag
}

// Enabled reports whether any bit of flag is set.
func (b BitMask[T]) Enabled(flag T) bool {
	return b.value&flag != 0
}

// Union returns the flags set in either b or o.
func (b BitMask[T]) Union(o BitMask[T]) BitMask[T] {
	return BitMask[T]{value: b.value | o.value}
}

// Mask returns only the flags of b that are also in mask.
func (b BitMask[T]) Mask(mask T) BitMask[T] {
	return BitMask[T]{value: b.value & mask}
}

// Empty reports whether no flag is set.
func (b BitMask[T]) Empty() bool {
	return b.value == 0
}

// All yields the set flags, lowest bit first.
func (b BitMask[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := b.value; v != 0; v &= v - 1 {
			if !yield(v & -v) {
				return
			}
		}
	}
}
