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

// Package refactor applies suggested fixes until the code reaches a fixed point.
package refactor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/fix"
	"fillmore-labs.com/patternguard/internal/engine"
	"fillmore-labs.com/patternguard/internal/load"
	"fillmore-labs.com/patternguard/tree"
)

var (
	// ErrReparse is returned when fixed source fails to parse or type-check.
	ErrReparse = errors.New("fixed source does not compile")

	// ErrNoConvergence is returned when fixes still apply after the maximum number of passes.
	ErrNoConvergence = errors.New("fixes did not converge")
)

// Driver runs analysis and fix application rounds over packages.
type Driver struct {
	engine    *engine.Engine
	logger    *slog.Logger
	filter    func(checker string) bool
	maxPasses int
	strict    bool
}

// New creates a [Driver] fixing the findings of e.
func New(e *engine.Engine, opts ...Option) *Driver {
	d := &Driver{engine: e, logger: slog.Default(), maxPasses: DefaultMaxPasses}
	Options(opts).apply(d)

	return d
}

// Result is the outcome of fixing one package.
type Result struct {
	// Package is the package after the last successful pass.
	Package *load.Package

	// Changes are the modified files, sorted by file name.
	Changes []Change

	// Passes counts the rounds that changed the source.
	Passes int

	// Remaining are the findings of the final analysis.
	Remaining []bugcheck.Finding

	// Internal are checker failures of all passes.
	Internal []*engine.InternalError

	// Skipped counts fixes not applied because they conflicted or were invalid.
	Skipped int
}

// Fix analyzes pkg and applies the preferred fix of every finding, repeating
// until no fix applies. Each pass re-parses and re-type-checks the changed package.
func (d *Driver) Fix(ctx context.Context, pkg *load.Package) (Result, error) {
	ctx, task := trace.NewTask(ctx, "Refactor")
	defer task.End()

	original := pkg.Sources()
	res := Result{Package: pkg}

	for pass := 1; ; pass++ {
		analysis, err := d.engine.Run(ctx, [][]*tree.Unit{pkg.Units})
		if err != nil {
			return res, err
		}

		res.Remaining = analysis.Findings
		res.Internal = append(res.Internal, analysis.Internal...)

		cands := d.candidates(analysis.Findings)

		changed, skipped, err := d.apply(ctx, pkg, cands)
		if err != nil {
			return res, err
		}

		res.Skipped += skipped

		if len(changed) == 0 {
			break
		}

		if pass > d.maxPasses {
			res.Changes = changes(original, res.Package)

			return res, fmt.Errorf("%w after %d passes", ErrNoConvergence, d.maxPasses)
		}

		next, err := d.recheck(ctx, pkg, changed)
		if err != nil {
			if d.strict {
				res.Changes = changes(original, res.Package)

				return res, err
			}

			d.logger.LogAttrs(ctx, slog.LevelWarn, "Isolating invalid fixes",
				slog.String("package", pkg.Path), slog.Int("pass", pass), slog.Any("error", err))

			var dropped int

			next, dropped, err = d.isolate(ctx, pkg, cands)
			if err != nil {
				return res, err
			}

			res.Skipped += dropped

			if next == nil {
				break
			}
		}

		pkg = next
		res.Package = next
		res.Passes = pass
	}

	res.Changes = changes(original, res.Package)

	return res, nil
}

// candidate is the preferred fix of one finding.
type candidate struct {
	unit    *tree.Unit
	checker string
	fix     fix.SuggestedFix
}

// candidates returns the preferred fixes of findings that pass the filter, in finding order.
func (d *Driver) candidates(findings []bugcheck.Finding) []candidate {
	var cands []candidate

	for _, f := range findings {
		if len(f.Fixes) == 0 || f.Unit == nil || (d.filter != nil && !d.filter(f.Checker)) {
			continue
		}

		cands = append(cands, candidate{unit: f.Unit, checker: f.Checker, fix: f.Fixes[0]})
	}

	return cands
}

// apply computes the new source of every file with applicable fixes.
func (d *Driver) apply(ctx context.Context, pkg *load.Package, cands []candidate) (map[string][]byte, int, error) {
	defer trace.StartRegion(ctx, "apply").End()

	byFile := make(map[*tree.Unit][]fix.SuggestedFix)
	for _, c := range cands {
		byFile[c.unit] = append(byFile[c.unit], c.fix)
	}

	changed := make(map[string][]byte)
	skipped := 0

	for _, u := range pkg.Units {
		fixes, ok := byFile[u]
		if !ok {
			continue
		}

		outcome, err := fix.ApplyAll(u.Source(), fixes)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", u.Filename(), err)
		}

		for _, s := range outcome.Skipped {
			d.logger.LogAttrs(ctx, slog.LevelDebug, "Skipped fix",
				slog.String("file", u.Filename()), slog.Int("index", s.Index), slog.String("reason", s.Reason.String()))
		}

		skipped += len(outcome.Skipped)

		if len(outcome.Applied) > 0 && string(outcome.Source) != string(u.Source()) {
			changed[u.Filename()] = outcome.Source
		}
	}

	return changed, skipped, nil
}

// isolate adds the candidates one at a time, keeping each one that leaves
// the package compilable. It returns the rechecked package, or nil when no
// candidate survives, and the number of dropped candidates.
func (d *Driver) isolate(ctx context.Context, pkg *load.Package, cands []candidate) (*load.Package, int, error) {
	defer trace.StartRegion(ctx, "isolate").End()

	var (
		accepted []candidate
		next     *load.Package
		dropped  int
	)

	for _, c := range cands {
		trial := append(slices.Clip(accepted), c)

		changed, _, err := d.apply(ctx, pkg, trial)
		if err != nil {
			return nil, 0, err
		}

		if len(changed) == 0 {
			continue
		}

		p, err := d.recheck(ctx, pkg, changed)
		if err != nil {
			d.logger.LogAttrs(ctx, slog.LevelWarn, "Dropping fix",
				slog.String("file", c.unit.Filename()), slog.String("checker", c.checker),
				slog.String("fix", c.fix.Description), slog.Any("error", err))

			dropped++

			continue
		}

		accepted, next = trial, p
	}

	return next, dropped, nil
}

func (d *Driver) recheck(ctx context.Context, pkg *load.Package, changed map[string][]byte) (*load.Package, error) {
	defer trace.StartRegion(ctx, "recheck").End()

	next, err := pkg.Recheck(changed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReparse, err)
	}

	return next, nil
}

func changes(original map[string][]byte, pkg *load.Package) []Change {
	current := pkg.Sources()

	var result []Change

	for _, name := range slices.Sorted(maps.Keys(current)) {
		before, after := original[name], current[name]
		if string(before) == string(after) {
			continue
		}

		result = append(result, Change{Filename: name, Before: before, After: after})
	}

	return result
}
