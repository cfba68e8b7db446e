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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/internal/config"
)

// Option configures specific behavior of a [New] patternguard analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithChecks is an [Option] replacing the built-in checkers.
func WithChecks(checkers ...bugcheck.Checker) Option { return checksOption{checkers: checkers} }

type checksOption struct{ checkers []bugcheck.Checker }

func (o checksOption) apply(r *runOptions) {
	r.checkers = o.checkers
}

func (o checksOption) LogAttr() slog.Attr {
	names := make([]string, 0, len(o.checkers))
	for _, c := range o.checkers {
		names = append(names, c.Descriptor().Name)
	}

	return slog.Any("checks", names)
}

// WithFlags is an [Option] adding -Xep flags. Flags given on the command line are applied afterwards.
func WithFlags(args ...string) Option { return flagsOption{args: args} }

type flagsOption struct{ args []string }

func (o flagsOption) apply(r *runOptions) {
	r.args = append(r.args, o.args...)
}

func (o flagsOption) LogAttr() slog.Attr {
	return slog.Any("flags", o.args)
}

// WithGenerated is an [Option] to configure warnings in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *runOptions) {
	r.switches.Set(config.DisableWarningsInGeneratedCode, !o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithLogger is an [Option] to set the logger of the engine.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *runOptions) {
	if o.logger != nil {
		r.logger = o.logger
	}
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
