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

// Package checktest runs checkers over annotated Go sources in tests.
//
// [CompilationHelper] verifies diagnostics against marker comments:
//
//	// BUG: Diagnostic contains: assigned to itself
//	a = a
//
// A marker applies to the first following line that is not a comment.
// Additional expected substrings may follow on comment lines directly below
// the marker. Diagnostics on lines without a marker fail the test.
//
// [RefactoringHelper] applies the preferred fixes until no further fix
// applies and compares the result with the expected output.
package checktest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/engine"
	"fillmore-labs.com/patternguard/internal/flags"
	"fillmore-labs.com/patternguard/internal/load"
	"fillmore-labs.com/patternguard/internal/registry"
)

const packagePath = "example.com/test"

// sources holds the files of one test package.
type sources struct {
	files []load.File
}

func (s *sources) addLines(name string, lines []string) {
	s.files = append(s.files, load.File{Name: name, Src: []byte(strings.Join(lines, "\n") + "\n")})
}

func (s *sources) addFile(tb testing.TB, path string) bool {
	tb.Helper()

	src, err := os.ReadFile(path)
	if err != nil {
		tb.Errorf("Can't read source file: %v", err)

		return false
	}

	s.files = append(s.files, load.File{Name: filepath.Base(path), Src: src})

	return true
}

// newEngine registers checkers and enables them, then applies args.
func newEngine(checkers []bugcheck.Checker, args []string) (*engine.Engine, flags.Options, error) {
	reg, err := registry.New(checkers...)
	if err != nil {
		return nil, flags.Options{}, err
	}

	all := make([]string, 0, len(checkers)+len(args))
	for _, c := range checkers {
		all = append(all, "-Xep:"+c.Descriptor().Name)
	}

	all = append(all, args...)

	opts, rest, err := flags.Parse(all)
	if err != nil {
		return nil, flags.Options{}, err
	}

	if len(rest) > 0 {
		return nil, flags.Options{}, fmt.Errorf("unknown arguments %q", rest)
	}

	sel, err := reg.Select(opts)
	if err != nil {
		return nil, flags.Options{}, err
	}

	return engine.New(sel, engine.WithSwitches(opts.Switches)), opts, nil
}

// internalErrors fails the test for every checker crash.
func internalErrors(tb testing.TB, errs []*engine.InternalError) {
	tb.Helper()

	for _, e := range errs {
		tb.Errorf("Internal error: %v", e)
	}
}

func testContext(tb testing.TB) context.Context {
	if t, ok := tb.(interface{ Context() context.Context }); ok {
		return t.Context()
	}

	return context.Background()
}
