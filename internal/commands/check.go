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

package commands

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/cache"
	"fillmore-labs.com/patternguard/internal/load"
	"fillmore-labs.com/patternguard/internal/report"
	"fillmore-labs.com/patternguard/tree"
)

func newCheckCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Report bug patterns in packages",
		Long: `Check analyzes the packages matching the patterns, ./... by default, and
reports all findings. The exit code is 1 when a finding has error severity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runCheck(cmd, args)
		},
	}
}

func (g *globals) runCheck(cmd *cobra.Command, patterns []string) error {
	ctx := cmd.Context()

	e, err := g.setup(cmd)
	if err != nil {
		return err
	}

	pkgs, err := e.load(ctx, g.tests, patterns)
	if err != nil {
		return err
	}

	ds, err := e.diagnostics(ctx, g.openCache(e), pkgs)
	if err != nil {
		return err
	}

	for i := range ds {
		ds[i].File = e.relative(ds[i].File)
		for j := range ds[i].Related {
			ds[i].Related[j].File = e.relative(ds[i].Related[j].File)
		}
	}

	rep, err := report.New(e.format, e.tool(), e.format == report.Text && !color.NoColor)
	if err != nil {
		return err
	}

	if err := rep.Report(cmd.OutOrStdout(), ds); err != nil {
		return err
	}

	if slices.ContainsFunc(ds, func(d report.Diagnostic) bool { return d.Severity == bugcheck.Error }) {
		return ErrFindings
	}

	return nil
}

// diagnostics returns the cached diagnostics of unchanged packages and analyzes the rest.
func (e *env) diagnostics(ctx context.Context, c *cache.Cache, pkgs []*load.Package) ([]report.Diagnostic, error) {
	key := e.cacheKey()

	var (
		ds     []report.Diagnostic
		misses []*load.Package
		prints []string
	)

	for _, pkg := range pkgs {
		if c == nil {
			misses = append(misses, pkg)

			continue
		}

		fp := pkg.Fingerprint(key)

		cached, ok, err := c.Get(fp)
		if err != nil {
			e.logger.Warn("Ignoring cache entry", slog.String("package", pkg.Path), slog.Any("error", err))
		}

		if ok {
			e.logger.Debug("Cache hit", slog.String("package", pkg.Path))
			ds = append(ds, cached...)

			continue
		}

		misses = append(misses, pkg)
		prints = append(prints, fp)
	}

	if len(misses) > 0 {
		fresh, err := e.analyze(ctx, misses)
		if err != nil {
			return nil, err
		}

		for i, pkgDiagnostics := range fresh {
			ds = append(ds, pkgDiagnostics...)

			if c == nil {
				continue
			}

			if err := c.Put(prints[i], pkgDiagnostics); err != nil {
				e.logger.Warn("Can't write cache entry", slog.String("package", misses[i].Path), slog.Any("error", err))
			}
		}
	}

	slices.SortStableFunc(ds, func(a, b report.Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Checker, b.Checker),
		)
	})

	return ds, nil
}

// analyze runs the engine over pkgs and groups the diagnostics by package.
func (e *env) analyze(ctx context.Context, pkgs []*load.Package) ([][]report.Diagnostic, error) {
	units := make([][]*tree.Unit, len(pkgs))
	owner := make(map[*tree.Unit]int)

	for i, pkg := range pkgs {
		units[i] = pkg.Units
		for _, u := range pkg.Units {
			owner[u] = i
		}
	}

	res, err := e.engine().Run(ctx, units)
	if err != nil {
		return nil, err
	}

	for _, ie := range res.Internal {
		e.logger.Error("Internal error", slog.String("checker", ie.Checker), slog.Any("error", ie))
	}

	result := make([][]report.Diagnostic, len(pkgs))

	for _, f := range res.Findings {
		i, ok := owner[f.Unit]
		if !ok {
			continue
		}

		result[i] = append(result[i], report.FromFinding(f, e.url))
	}

	e.logger.Debug("Analyzed packages",
		slog.Int("packages", len(pkgs)), slog.Int("findings", len(res.Findings)), slog.Int("suppressed", res.Suppressed))

	return result, nil
}
