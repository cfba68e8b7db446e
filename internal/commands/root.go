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

// Package commands implements the patternguard command line interface.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"

	"fillmore-labs.com/patternguard/internal/report"
)

// ErrFindings is returned when a check reports findings of error severity.
var ErrFindings = errors.New("errors found")

const appName = "patternguard"

// globals are the persistent flags shared by all commands.
type globals struct {
	xep      []string
	format   report.Format
	jobs     int
	config   string
	cacheDir string
	noCache  bool
	logLevel string
	dir      string
	tests    bool
}

// NewRootCmd creates the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Find and fix common bug patterns in Go code",
		Long: `patternguard checks Go packages for common bug patterns and applies
suggested fixes. Checkers are configured with -Xep style flags, either on the
command line with --xep or in a .patternguard.yaml configuration file.`,
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringArrayVar(&g.xep, "xep", nil, "checker flag like -Xep:<Name>[:OFF|WARN|ERROR] or -XepOpt:<Name>:<key>=<value>, may be repeated")
	pf.Var(&g.format, "format", "output format (text|json|yaml|sarif)")
	pf.IntVarP(&g.jobs, "jobs", "j", 0, "number of packages analyzed in parallel, 0 for no limit")
	pf.StringVar(&g.config, "config", "", "configuration file (default .patternguard.{yaml,toml,json} in the working directory)")
	pf.StringVar(&g.cacheDir, "cache-dir", "", "directory of the findings cache")
	pf.BoolVar(&g.noCache, "no-cache", false, "do not read or write the findings cache")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	pf.StringVarP(&g.dir, "dir", "C", "", "run as if started in `directory`")
	pf.BoolVar(&g.tests, "tests", true, "include test files")

	root.AddCommand(
		newCheckCmd(g),
		newFixCmd(g),
		newCheckersCmd(g),
		newCacheCmd(g),
	)

	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	switch {
	case err == nil:
		return 0

	case errors.Is(err, ErrFindings):
		return 1

	default:
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", appName, err)

		return 2
	}
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}
