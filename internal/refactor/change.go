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

package refactor

import (
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// Change is the cumulative modification of one file.
type Change struct {
	Filename string
	Before   []byte
	After    []byte
}

// Diff renders the change as a unified diff.
func (c Change) Diff() (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(c.Before)),
		B:        difflib.SplitLines(string(c.After)),
		FromFile: c.Filename,
		ToFile:   c.Filename,
		Context:  3,
	})
}

// Write replaces the file content, keeping its permissions.
func (c Change) Write() error {
	info, err := os.Stat(c.Filename)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(c.Filename), ".patternguard-*")
	if err != nil {
		return err
	}

	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.Write(c.After); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Chmod(info.Mode().Perm()); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), c.Filename)
}
