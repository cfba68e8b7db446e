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
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/patternguard/internal/config"
	"fillmore-labs.com/patternguard/internal/refactor"
)

type fixFlags struct {
	inPlace   bool
	diff      bool
	maxPasses int
}

func newFixCmd(g *globals) *cobra.Command {
	var f fixFlags

	cmd := &cobra.Command{
		Use:   "fix [packages]",
		Short: "Apply suggested fixes",
		Long: `Fix applies the preferred fix of every finding and repeats the analysis
until no fix applies. Without --in-place the changes are printed as a unified diff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runFix(cmd, f, args)
		},
	}

	cmd.Flags().BoolVarP(&f.inPlace, "in-place", "w", false, "write the fixed files")
	cmd.Flags().BoolVarP(&f.diff, "diff", "d", false, "print a diff of the changes, also with --in-place")
	cmd.Flags().IntVar(&f.maxPasses, "max-passes", config.DefaultMaxPasses, "maximum rounds of fix application")

	return cmd
}

func (g *globals) runFix(cmd *cobra.Command, f fixFlags, patterns []string) error {
	ctx := cmd.Context()

	e, err := g.setup(cmd)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("max-passes") {
		f.maxPasses = e.file.MaxPasses
	}

	if e.opts.Switches.Enabled(config.PatchInPlace) {
		f.inPlace = true
	}

	pkgs, err := e.load(ctx, g.tests, patterns)
	if err != nil {
		return err
	}

	d := refactor.New(e.engine(),
		refactor.WithMaxPasses(f.maxPasses),
		refactor.WithLogger(e.logger),
		refactor.WithFilter(e.opts.Patches),
	)

	results := make([]refactor.Result, len(pkgs))

	eg, ectx := errgroup.WithContext(ctx)
	if e.jobs > 0 {
		eg.SetLimit(e.jobs)
	}

	for i, pkg := range pkgs {
		eg.Go(func() error {
			res, err := d.Fix(ectx, pkg)
			if err != nil {
				return fmt.Errorf("%s: %w", pkg.Path, err)
			}

			results[i] = res

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	changes, remaining, skipped := e.collect(results)

	out := cmd.OutOrStdout()

	for _, c := range changes {
		if f.diff || !f.inPlace {
			shown := c
			shown.Filename = e.relative(c.Filename)

			diff, err := shown.Diff()
			if err != nil {
				return err
			}

			if _, err := fmt.Fprint(out, diff); err != nil {
				return err
			}
		}

		if f.inPlace {
			if err := c.Write(); err != nil {
				return fmt.Errorf("can't write %s: %w", c.Filename, err)
			}
		}
	}

	e.logger.Info("Fixes applied",
		slog.Int("files", len(changes)), slog.Int("remaining", remaining), slog.Int("skipped", skipped))

	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "%d %s changed, %d %s remaining\n",
		len(changes), plural(len(changes), "file"), remaining, plural(remaining, "finding"))

	return err
}

// collect merges the results of all packages. A file fixed in more than one
// package variant keeps the first change.
func (e *env) collect(results []refactor.Result) (changes []refactor.Change, remaining, skipped int) {
	seen := make(map[string]bool)

	for _, res := range results {
		remaining += len(res.Remaining)
		skipped += res.Skipped

		for _, ie := range res.Internal {
			e.logger.Error("Internal error", slog.String("checker", ie.Checker), slog.Any("error", ie))
		}

		for _, c := range res.Changes {
			if seen[c.Filename] {
				e.logger.Warn("File changed in several packages", slog.String("file", c.Filename))

				continue
			}

			seen[c.Filename] = true
			changes = append(changes, c)
		}
	}

	return changes, remaining, skipped
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
