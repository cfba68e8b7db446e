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
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/bugpatterns"
	"fillmore-labs.com/patternguard/internal/cache"
	"fillmore-labs.com/patternguard/internal/config"
	"fillmore-labs.com/patternguard/internal/engine"
	"fillmore-labs.com/patternguard/internal/flags"
	"fillmore-labs.com/patternguard/internal/load"
	"fillmore-labs.com/patternguard/internal/registry"
	"fillmore-labs.com/patternguard/internal/report"
)

// env is the configuration of one command invocation.
type env struct {
	logger *slog.Logger
	file   *config.File
	opts   flags.Options
	reg    *registry.Registry
	sel    *registry.Selection
	format report.Format
	jobs   int
	dir    string
}

// setup merges the configuration file with the command line.
// Command line flags are applied after the file settings.
func (g *globals) setup(cmd *cobra.Command) (*env, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return nil, err
	}

	file, err := config.Load(g.config, dir)
	if err != nil {
		return nil, err
	}

	opts, rest, err := flags.Parse(append(file.Args(), g.xep...))
	if err != nil {
		return nil, err
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("unknown checker flags %q", rest)
	}

	reg, err := registry.New(bugpatterns.All()...)
	if err != nil {
		return nil, err
	}

	sel, err := reg.Select(opts)
	if err != nil {
		return nil, err
	}

	e := &env{logger: logger, file: file, opts: opts, reg: reg, sel: sel, format: g.format, jobs: g.jobs, dir: dir}

	if !cmd.Flags().Changed("format") {
		if err := e.format.UnmarshalText([]byte(file.Format)); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	if !cmd.Flags().Changed("jobs") {
		e.jobs = file.Jobs
	}

	logger.Debug("Configuration loaded",
		slog.String("file", file.Used), slog.Any("flags", opts), slog.Int("checkers", sel.Len()))

	return e, nil
}

func (e *env) engine() *engine.Engine {
	return engine.New(e.sel,
		engine.WithJobs(e.jobs),
		engine.WithLogger(e.logger),
		engine.WithSwitches(e.opts.Switches),
	)
}

func (e *env) load(ctx context.Context, tests bool, patterns []string) ([]*load.Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	return load.Config{Dir: e.dir, Tests: tests}.Packages(ctx, patterns...)
}

// url resolves the documentation link of a checker.
func (e *env) url(checker string) string {
	if d, ok := e.reg.ByName(checker); ok {
		return d.Descriptor().URL
	}

	return ""
}

// tool describes patternguard and its checkers for SARIF output.
func (e *env) tool() report.Tool {
	descs := e.reg.Descriptors()
	rules := make([]report.Rule, 0, len(descs))

	for _, d := range descs {
		rules = append(rules, report.Rule{
			Name:     d.Name,
			Summary:  d.Summary,
			Severity: d.Severity.String(),
			URL:      d.URL,
			Tags:     d.Tags,
		})
	}

	return report.Tool{Name: appName, Version: version(), URI: "https://pkg.go.dev/fillmore-labs.com/patternguard", Rules: rules}
}

// runScoped reports whether an enabled checker accumulates findings over the whole run.
func (e *env) runScoped() bool {
	return slices.ContainsFunc(e.sel.Enabled(), func(en registry.Enabled) bool {
		_, ok := en.Checker.(bugcheck.Finisher)

		return ok
	})
}

// cacheKey identifies the checker configuration.
func (e *env) cacheKey() string {
	return version() + "\x00" + strings.Join(e.opts.Args(), " ")
}

// openCache returns nil when caching is disabled. A cache that can't be opened is skipped.
func (g *globals) openCache(e *env) *cache.Cache {
	if g.noCache {
		return nil
	}

	if e.runScoped() {
		e.logger.Debug("Cache disabled for run-scoped checkers")

		return nil
	}

	c, err := g.cache()
	if err != nil {
		e.logger.Warn("Cache unavailable", slog.Any("error", err))

		return nil
	}

	return c
}

func (g *globals) cache() (*cache.Cache, error) {
	dir := g.cacheDir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir(appName); err != nil {
			return nil, err
		}
	}

	return cache.Open(dir)
}

// relative shortens a path below the working directory.
func (e *env) relative(name string) string {
	if rel, err := filepath.Rel(e.dir, name); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}

	return name
}
