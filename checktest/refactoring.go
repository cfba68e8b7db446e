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

package checktest

import (
	"errors"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/fix"
	"fillmore-labs.com/patternguard/internal/load"
	"fillmore-labs.com/patternguard/internal/refactor"
)

// RefactoringHelper checks the fixes of checkers.
type RefactoringHelper struct {
	tb        testing.TB
	checkers  []bugcheck.Checker
	args      []string
	inputs    sources
	outputs   sources
	maxPasses int
	done      bool
}

// NewRefactoringHelper creates a helper applying the fixes of checkers.
func NewRefactoringHelper(tb testing.TB, checkers ...bugcheck.Checker) *RefactoringHelper {
	tb.Helper()

	return &RefactoringHelper{tb: tb, checkers: checkers}
}

// ExpectOutput completes an input file with its expected output.
type ExpectOutput struct {
	h    *RefactoringHelper
	name string
}

// AddInputLines adds an input file.
func (h *RefactoringHelper) AddInputLines(name string, lines ...string) ExpectOutput {
	h.inputs.addLines(name, lines)

	return ExpectOutput{h: h, name: name}
}

// AddInput adds an input file from disk.
func (h *RefactoringHelper) AddInput(path string) ExpectOutput {
	h.tb.Helper()

	if !h.inputs.addFile(h.tb, path) {
		return ExpectOutput{h: h}
	}

	return ExpectOutput{h: h, name: h.inputs.files[len(h.inputs.files)-1].Name}
}

// AddOutputLines sets the expected content of the input file.
func (e ExpectOutput) AddOutputLines(lines ...string) *RefactoringHelper {
	e.h.outputs.addLines(e.name, lines)

	return e.h
}

// AddOutput sets the expected content of the input file from disk.
func (e ExpectOutput) AddOutput(path string) *RefactoringHelper {
	e.h.tb.Helper()

	if e.h.outputs.addFile(e.h.tb, path) {
		e.h.outputs.files[len(e.h.outputs.files)-1].Name = e.name
	}

	return e.h
}

// ExpectUnchanged expects the input to stay as is.
func (e ExpectOutput) ExpectUnchanged() *RefactoringHelper {
	for _, f := range e.h.inputs.files {
		if f.Name == e.name {
			e.h.outputs.files = append(e.h.outputs.files, f)
		}
	}

	return e.h
}

// SetArgs passes -Xep flags to the run.
func (h *RefactoringHelper) SetArgs(args ...string) *RefactoringHelper {
	h.args = append(h.args, args...)

	return h
}

// SetMaxPasses limits the rounds of fix application.
func (h *RefactoringHelper) SetMaxPasses(n int) *RefactoringHelper {
	h.maxPasses = n

	return h
}

// DoTest applies the fixes and compares each file with its expected output under mode.
// Fixed source that no longer compiles fails the test.
func (h *RefactoringHelper) DoTest(mode fix.Mode) {
	h.tb.Helper()

	if h.done {
		h.tb.Errorf("DoTest should only be called once")

		return
	}

	h.done = true

	if len(h.inputs.files) == 0 {
		h.tb.Errorf("No input files")

		return
	}

	pkg, err := load.Source(packagePath, h.inputs.files...)
	if err != nil {
		h.tb.Errorf("Input failed to compile: %v", err)

		return
	}

	eng, opts, err := newEngine(h.checkers, h.args)
	if err != nil {
		h.tb.Errorf("Invalid configuration: %v", err)

		return
	}

	d := refactor.New(eng,
		refactor.WithStrict(true),
		refactor.WithMaxPasses(h.maxPasses),
		refactor.WithFilter(opts.Patches),
	)

	res, err := d.Fix(testContext(h.tb), pkg)
	internalErrors(h.tb, res.Internal)

	if err != nil {
		if errors.Is(err, refactor.ErrReparse) {
			h.tb.Errorf("Fixed source failed to compile: %v", err)
		} else {
			h.tb.Errorf("Refactoring failed: %v", err)
		}

		return
	}

	got := res.Package.Sources()

	for _, want := range h.outputs.files {
		h.compare(mode, want, got[want.Name])
	}
}

func (h *RefactoringHelper) compare(mode fix.Mode, want load.File, got []byte) {
	h.tb.Helper()

	if got == nil {
		h.tb.Errorf("No output for %s", want.Name)

		return
	}

	equal, err := fix.Equal(mode, want.Src, got)
	if err != nil {
		h.tb.Errorf("Can't compare %s: %v", want.Name, err)

		return
	}

	if equal {
		return
	}

	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want.Src)),
		B:        difflib.SplitLines(string(got)),
		FromFile: "want/" + want.Name,
		ToFile:   "got/" + want.Name,
		Context:  3,
	})

	h.tb.Errorf("Output of %s differs (%s):\n%s", want.Name, strings.ToLower(mode.String()), diff)
}
