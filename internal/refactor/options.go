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

package refactor

import "log/slog"

// DefaultMaxPasses bounds the rounds of a [Driver].
const DefaultMaxPasses = 10

// Option configures a [Driver].
type Option interface {
	apply(d *Driver)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

func (o Options) apply(d *Driver) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(d)
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

	return slog.Attr{Key: "refactor", Value: slog.GroupValue(as...)}
}

// WithMaxPasses limits the number of fix rounds.
func WithMaxPasses(n int) Option { return maxPassesOption{n: n} }

type maxPassesOption struct{ n int }

func (o maxPassesOption) apply(d *Driver) {
	if o.n > 0 {
		d.maxPasses = o.n
	}
}

func (o maxPassesOption) LogAttr() slog.Attr { return slog.Int("max-passes", o.n) }

// WithLogger sets the logger for dropped and skipped fixes.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(d *Driver) {
	if o.logger != nil {
		d.logger = o.logger
	}
}

func (o loggerOption) LogAttr() slog.Attr { return slog.Bool("logger", o.logger != nil) }

// WithFilter restricts fixing to checkers accepted by filter.
func WithFilter(filter func(checker string) bool) Option { return filterOption{filter: filter} }

type filterOption struct{ filter func(string) bool }

func (o filterOption) apply(d *Driver) { d.filter = o.filter }

func (o filterOption) LogAttr() slog.Attr { return slog.Bool("filter", o.filter != nil) }

// WithStrict makes a fix that breaks compilation an error instead of a warning.
func WithStrict(strict bool) Option { return strictOption{strict: strict} }

type strictOption struct{ strict bool }

func (o strictOption) apply(d *Driver) { d.strict = o.strict }

func (o strictOption) LogAttr() slog.Attr { return slog.Bool("strict", o.strict) }
