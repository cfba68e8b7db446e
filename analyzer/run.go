// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/report"
	"fillmore-labs.com/patternguard/tree"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// run executes the patternguard engine over the files of the pass.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("%s: %s %w", name, inspect.Analyzer.Name, ErrResultMissing)
	}

	eng, err := r.setup()
	if err != nil {
		return nil, err
	}

	ctx, task := trace.NewTask(context.Background(), "PatternGuard")
	defer task.End()

	units, err := passUnits(p, in)
	if err != nil {
		return nil, err
	}

	res, err := eng.Run(ctx, [][]*tree.Unit{units})
	if err != nil {
		return nil, err
	}

	sel := eng.Selection()

	for _, f := range res.Findings {
		var url string
		if e, ok := sel.Lookup(f.Checker); ok {
			url = e.Descriptor.URL
		}

		d, err := diagnostic(f, url)
		if err != nil {
			internalError(p, f.Checker, f.Pos, f.End, err)

			continue
		}

		p.Report(d)
	}

	for _, e := range res.Internal {
		internalError(p, e.Checker, e.Pos, e.End, e)
	}

	return nil, nil
}

// passUnits wraps the files of the pass.
func passUnits(p *analysis.Pass, in *inspector.Inspector) ([]*tree.Unit, error) {
	read := p.ReadFile
	if read == nil {
		read = os.ReadFile
	}

	units := make([]*tree.Unit, 0, len(p.Files))

	for c := range in.Root().Children() {
		file, ok := c.Node().(*ast.File)
		if !ok {
			continue
		}

		src, err := read(p.Fset.File(file.FileStart).Name())
		if err != nil {
			return nil, err
		}

		u, err := tree.UnitAt(p.Fset, c, p.Pkg, p.TypesInfo, src)
		if err != nil {
			return nil, err
		}

		units = append(units, u)
	}

	return units, nil
}

// diagnostic converts a finding, keeping only its preferred fix.
func diagnostic(f bugcheck.Finding, url string) (analysis.Diagnostic, error) {
	d := analysis.Diagnostic{
		Pos:      f.Pos,
		End:      f.End,
		Category: f.Checker,
		Message:  report.Message(f.Checker, f.Message),
		URL:      url,
	}

	for _, r := range f.Related {
		d.Related = append(d.Related, analysis.RelatedInformation{Pos: r.Pos, End: r.End, Message: r.Message})
	}

	if len(f.Fixes) == 0 || f.Unit == nil {
		return d, nil
	}

	sf := f.Fixes[0]

	edits, err := sf.Resolve(f.Unit.Source())
	if err != nil {
		return d, err
	}

	handle := f.Unit.TokenFile()
	textEdits := make([]analysis.TextEdit, 0, len(edits))

	for _, e := range edits {
		if e.End > handle.Size() {
			return d, fmt.Errorf("edit %d-%d beyond end of file %s", e.Start, e.End, handle.Name())
		}

		textEdits = append(textEdits, analysis.TextEdit{
			Pos:     handle.Pos(e.Start),
			End:     handle.Pos(e.End),
			NewText: []byte(e.NewText),
		})
	}

	d.SuggestedFixes = []analysis.SuggestedFix{{Message: sf.Description, TextEdits: textEdits}}

	return d, nil
}

// internalError reports a checker failure as a diagnostic.
func internalError(p *analysis.Pass, checker string, pos, end token.Pos, err error) {
	msg := []byte("Internal Error: ")
	msg = fmt.Appendf(msg, "%s: %v", checker, err)

	p.Report(analysis.Diagnostic{Pos: pos, End: end, Category: checker, Message: string(msg)})
}
