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
	"log/slog"

	"fillmore-labs.com/patternguard/internal/config"
)

// Option configures an [Engine].
type Option interface {
	apply(e *Engine)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

func (o Options) apply(e *Engine) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(e)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	as := make([]slog.Attr, 0, len(o))
	for _, opt := range o {
		if opt != nil {
			as = append(as, opt.LogAttr())
		}
	}

	return slog.Attr{Key: "engine", Value: slog.GroupValue(as...)}
}

// WithLogger sets the logger for internal errors.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(e *Engine) {
	if o.logger != nil {
		e.logger = o.logger
	}
}

func (o loggerOption) LogAttr() slog.Attr { return slog.Bool("logger", o.logger != nil) }

// WithJobs limits the number of packages scanned in parallel. Values below one mean unlimited.
func WithJobs(jobs int) Option { return jobsOption{jobs: jobs} }

type jobsOption struct{ jobs int }

func (o jobsOption) apply(e *Engine) { e.jobs = o.jobs }

func (o jobsOption) LogAttr() slog.Attr { return slog.Int("jobs", o.jobs) }

// WithSwitches sets the global behavior switches.
func WithSwitches(switches config.BitMask[config.Switch]) Option {
	return switchesOption{switches: switches}
}

type switchesOption struct{ switches config.BitMask[config.Switch] }

func (o switchesOption) apply(e *Engine) { e.switches = o.switches }

func (o switchesOption) LogAttr() slog.Attr {
	var names []string
	for sw := range o.switches.All() {
		names = append(names, sw.String())
	}

	return slog.Any("switches", names)
}
