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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/report"
)

// checkerInfo is the listed form of a registered checker.
type checkerInfo struct {
	Name     string            `json:"name"               yaml:"name"`
	AltNames []string          `json:"alt_names,omitempty" yaml:"alt_names,omitempty"`
	Severity bugcheck.Severity `json:"severity"           yaml:"severity"`
	Enabled  bool              `json:"enabled"            yaml:"enabled"`
	Summary  string            `json:"summary"            yaml:"summary"`
	Tags     []string          `json:"tags,omitempty"     yaml:"tags,omitempty"`
	URL      string            `json:"url,omitempty"      yaml:"url,omitempty"`
}

func newCheckersCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "checkers",
		Short: "List the registered checkers",
		Long:  "Checkers lists all registered checkers with their effective severity under the current configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}

			return e.listCheckers(cmd.OutOrStdout())
		},
	}
}

func (e *env) listCheckers(w io.Writer) error {
	descs := e.reg.Descriptors()
	infos := make([]checkerInfo, 0, len(descs))

	for _, d := range descs {
		info := checkerInfo{
			Name:     d.Name,
			AltNames: d.AltNames,
			Severity: d.Severity,
			Summary:  d.Summary,
			Tags:     d.Tags,
			URL:      d.URL,
		}

		if en, ok := e.sel.Lookup(d.Name); ok {
			info.Enabled, info.Severity = true, en.Severity
		}

		infos = append(infos, info)
	}

	switch e.format {
	case report.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(infos)

	case report.YAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(infos)

	case report.Text:
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "NAME\tSEVERITY\tENABLED\tSUMMARY")

		for _, info := range infos {
			name := info.Name
			if len(info.AltNames) > 0 {
				name += " (" + strings.Join(info.AltNames, ", ") + ")"
			}

			_, _ = fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", name, info.Severity, info.Enabled, info.Summary)
		}

		return tw.Flush()

	default:
		return fmt.Errorf("format %s is not supported for checker lists", e.format)
	}
}
