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

// Package engine walks compilation units once and dispatches nodes to the enabled checkers.
package engine

import (
	"cmp"
	"context"
	"go/token"
	"log/slog"
	"runtime/debug"
	"runtime/trace"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/config"
	"fillmore-labs.com/patternguard/internal/registry"
	"fillmore-labs.com/patternguard/internal/suppress"
	"fillmore-labs.com/patternguard/tree"
)

// Engine runs a checker selection over compilation units.
type Engine struct {
	sel      *registry.Selection
	logger   *slog.Logger
	switches config.BitMask[config.Switch]
	jobs     int
}

// New creates an [Engine] for the enabled checkers of sel.
func New(sel *registry.Selection, opts ...Option) *Engine {
	e := &Engine{sel: sel, logger: slog.Default()}
	Options(opts).apply(e)

	return e
}

// Selection returns the enabled checkers.
func (e *Engine) Selection() *registry.Selection { return e.sel }

// Result holds the outcome of scanning one or more units.
type Result struct {
	// Findings are the unsuppressed findings, sorted by position and checker registration order.
	Findings []bugcheck.Finding

	// Internal are checker failures, in the order they occurred.
	Internal []*InternalError

	// Suppressed counts findings silenced by suppression.
	Suppressed int
}

func (r *Result) merge(o Result) {
	r.Findings = append(r.Findings, o.Findings...)
	r.Internal = append(r.Internal, o.Internal...)
	r.Suppressed += o.Suppressed
}

// Run is one analysis run, holding run-scoped checker state.
type Run struct {
	engine *Engine
	state  *bugcheck.Run

	mu        sync.Mutex
	resolvers map[*tree.Unit]*suppress.Resolver
}

// NewRun starts a run.
func (e *Engine) NewRun() *Run {
	return &Run{engine: e, state: bugcheck.NewRun(), resolvers: make(map[*tree.Unit]*suppress.Resolver)}
}

// Scanner returns a fresh [Scanner] for u.
func (r *Run) Scanner(u *tree.Unit) *Scanner {
	return &Scanner{run: r, unit: u, resolver: r.resolver(u)}
}

// Scan visits a single unit.
func (r *Run) Scan(ctx context.Context, u *tree.Unit) (Result, error) {
	return r.Scanner(u).Scan(ctx)
}

func (r *Run) resolver(u *tree.Unit) *suppress.Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.resolvers[u]; ok {
		return res
	}

	res := suppress.New(u, r.engine.switches.Enabled(config.DisableWarningsInGeneratedCode))
	r.resolvers[u] = res

	return res
}

// suppression reports whether a finding of e at n would be suppressed.
func (r *Run) suppression(e registry.Enabled) func(tree.Node) bool {
	return func(n tree.Node) bool {
		u := n.Unit()

		return u != nil && r.resolver(u).Suppressed(e.Descriptor, e.Severity, n)
	}
}

// Finish calls all enabled [bugcheck.Finisher] checkers. Call it once, after all units have been scanned.
func (r *Run) Finish(ctx context.Context) Result {
	defer trace.StartRegion(ctx, "Finish").End()

	var res Result

	for _, e := range r.engine.sel.Enabled() {
		fin, ok := e.Checker.(bugcheck.Finisher)
		if !ok {
			continue
		}

		s := bugcheck.NewState(nil, e.Descriptor, e.Severity, e.Options, r.state).WithSuppression(r.suppression(e))

		findings, ierr := r.finish(fin, e, s)
		if ierr != nil {
			res.Internal = append(res.Internal, ierr)

			continue
		}

		for _, f := range findings {
			if f.Unit == nil || !f.Unit.Contains(f.Pos, f.End) {
				res.Internal = append(res.Internal, r.engine.internal(e, f.Unit, f.Pos, f.End, ErrFindingOutOfRange))

				continue
			}

			f = r.engine.complete(e, f, &res)

			if r.resolver(f.Unit).SuppressedRange(e.Descriptor, f.Severity, f.Pos, f.End) {
				res.Suppressed++

				continue
			}

			res.Findings = append(res.Findings, f)
		}
	}

	r.engine.sort(res.Findings)

	return res
}

func (r *Run) finish(fin bugcheck.Finisher, e registry.Enabled, s *bugcheck.State) (findings []bugcheck.Finding, ierr *InternalError) {
	defer func() {
		if v := recover(); v != nil {
			ierr = &InternalError{Checker: e.Descriptor.Name, Value: v, Stack: debug.Stack()}
			r.engine.logger.Error("Checker panicked during finish", slog.String("checker", e.Descriptor.Name), slog.Any("panic", v))
		}
	}()

	return fin.Finish(s), nil
}

// Run scans packages, each a list of units. Packages are scanned in parallel,
// the units of one package sequentially. Finisher checkers are flushed at the
// end. The result is independent of scheduling.
func (e *Engine) Run(ctx context.Context, pkgs [][]*tree.Unit) (Result, error) {
	ctx, task := trace.NewTask(ctx, "PatternGuard")
	defer task.End()

	run := e.NewRun()
	results := make([]Result, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	if e.jobs > 0 {
		g.SetLimit(e.jobs)
	}

	for i, units := range pkgs {
		g.Go(func() error {
			for _, u := range units {
				res, err := run.Scan(gctx, u)
				if err != nil {
					return err
				}

				results[i].merge(res)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, res := range results {
		total.merge(res)
	}

	total.merge(run.Finish(ctx))
	e.sort(total.Findings)

	return total, nil
}

// complete fills in defaults the checker left out and strips fixes that failed to build.
func (e *Engine) complete(en registry.Enabled, f bugcheck.Finding, res *Result) bugcheck.Finding {
	f.Checker = en.Descriptor.Name
	if !f.Severity.Valid() {
		f.Severity = en.Severity
	}

	if f.Message == "" {
		f.Message = en.Descriptor.Summary
	}

	if err := f.Err(); err != nil {
		res.Internal = append(res.Internal, e.internal(en, f.Unit, f.Pos, f.End, err))
		f.Fixes = nil
	}

	return f
}

func (e *Engine) internal(en registry.Enabled, u *tree.Unit, pos, end token.Pos, err error) *InternalError {
	ierr := &InternalError{Checker: en.Descriptor.Name, Pos: pos, End: end, Err: err}
	if u != nil {
		ierr.Position = u.Position(pos)
	}

	e.logger.Warn("Checker error", slog.String("checker", ierr.Checker), slog.String("pos", ierr.Position.String()), slog.Any("error", err))

	return ierr
}

func (e *Engine) sort(findings []bugcheck.Finding) {
	order := func(name string) int {
		if en, ok := e.sel.Lookup(name); ok {
			return en.Order
		}

		return -1
	}

	slices.SortStableFunc(findings, func(a, b bugcheck.Finding) int {
		pa, pb := a.Position(), b.Position()

		return cmp.Or(
			cmp.Compare(pa.Filename, pb.Filename),
			cmp.Compare(pa.Offset, pb.Offset),
			cmp.Compare(a.End, b.End),
			cmp.Compare(order(a.Checker), order(b.Checker)),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
