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

package gclplugin

import (
	"fillmore-labs.com/patternguard/analyzer"
	"fillmore-labs.com/patternguard/internal/flags"
)

// Settings are the plugin settings of the golangci-lint configuration.
type Settings struct {
	// Checks are checker overrides in the form Name[:OFF|WARN|ERROR|DEFAULT].
	Checks []string `json:"checks,omitzero"`
	// CheckOptions are checker options in the form Name:key=value.
	CheckOptions []string `json:"options,omitzero"`
	// Generated reports warnings in generated files. golangci-lint excludes generated files itself.
	Generated *bool `json:"generated,omitzero"`
}

// Args returns the settings as -Xep flags.
func (s Settings) Args() []string {
	args := make([]string, 0, len(s.Checks)+len(s.CheckOptions))

	for _, c := range s.Checks {
		args = append(args, "-Xep:"+c)
	}

	for _, o := range s.CheckOptions {
		args = append(args, "-XepOpt:"+o)
	}

	return args
}

// Validate checks the syntax of checks and options.
func (s Settings) Validate() error {
	_, _, err := flags.Parse(s.Args())

	return err
}

// Options converts the settings to analyzer options.
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	if args := s.Args(); len(args) > 0 {
		opts = append(opts, analyzer.WithFlags(args...))
	}

	opts = appendOption(opts, s.Generated, analyzer.WithGenerated)

	return opts
}

func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
