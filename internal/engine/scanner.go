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
	"context"
	"log/slog"
	"runtime/debug"
	"runtime/trace"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/registry"
	"fillmore-labs.com/patternguard/internal/suppress"
	"fillmore-labs.com/patternguard/tree"
)

type scanState uint8

const (
	notStarted scanState = iota
	visiting
	completed
)

// Scanner visits one compilation unit. It can be used only once.
type Scanner struct {
	run      *Run
	unit     *tree.Unit
	resolver *suppress.Resolver
	states   []*bugcheck.State
	state    scanState
}

// Scan performs a single pre-order traversal of the unit, calling every
// checker interested in a node's kind, in registration order. A panicking
// checker is recorded as an [InternalError] and the traversal continues.
//
// Cancellation is checked between top-level declarations.
func (s *Scanner) Scan(ctx context.Context) (Result, error) {
	if s.state != notStarted {
		return Result{}, ErrScannerUsed
	}

	s.state = visiting
	defer func() { s.state = completed }()

	defer trace.StartRegion(ctx, "Scan").End()

	sel := s.run.engine.sel
	s.states = make([]*bugcheck.State, sel.Len())

	var res Result

	if sel.Len() == 0 {
		return res, nil
	}

	root := s.unit.Root()
	kinds := sel.Kinds()

	s.visit(root, &res)

	for decl := range root.Children() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		for n := range decl.Preorder(kinds...) {
			s.visit(n, &res)
		}
	}

	s.run.engine.sort(res.Findings)

	return res, nil
}

func (s *Scanner) visit(n tree.Node, res *Result) {
	enabled := s.run.engine.sel.Enabled()

	for _, idx := range s.run.engine.sel.Dispatch(n.Kind()) {
		e := enabled[idx]

		f, ok, ierr := s.match(e, s.stateFor(idx, e), n)
		if ierr != nil {
			res.Internal = append(res.Internal, ierr)

			continue
		}

		if !ok {
			continue
		}

		s.report(e, n, f, res)
	}
}

func (s *Scanner) stateFor(idx int, e registry.Enabled) *bugcheck.State {
	if st := s.states[idx]; st != nil {
		return st
	}

	st := bugcheck.NewState(s.unit, e.Descriptor, e.Severity, e.Options, s.run.state).WithSuppression(s.run.suppression(e))
	s.states[idx] = st

	return st
}

func (s *Scanner) match(e registry.Enabled, st *bugcheck.State, n tree.Node) (f bugcheck.Finding, ok bool, ierr *InternalError) {
	defer func() {
		if v := recover(); v != nil {
			ierr = &InternalError{
				Checker:  e.Descriptor.Name,
				Pos:      n.Pos(),
				End:      n.End(),
				Position: n.Position(),
				Value:    v,
				Stack:    debug.Stack(),
			}
			s.run.engine.logger.Error("Checker panicked",
				slog.String("checker", e.Descriptor.Name),
				slog.String("pos", ierr.Position.String()),
				slog.Any("panic", v))
		}
	}()

	f, ok = e.Checker.Match(n, st)

	return f, ok, nil
}

func (s *Scanner) report(e registry.Enabled, n tree.Node, f bugcheck.Finding, res *Result) {
	if f.Unit == nil {
		f.Unit = s.unit
	}

	if f.Pos == 0 && f.End == 0 {
		f.Pos, f.End = n.Pos(), n.End()
	}

	if f.Unit != s.unit || !s.unit.Contains(f.Pos, f.End) {
		res.Internal = append(res.Internal, s.run.engine.internal(e, s.unit, n.Pos(), n.End(), ErrFindingOutOfRange))

		return
	}

	f = s.run.engine.complete(e, f, res)

	if s.resolver.Suppressed(e.Descriptor, f.Severity, n) {
		res.Suppressed++

		return
	}

	res.Findings = append(res.Findings, f)
}
