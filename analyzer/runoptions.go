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
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"fillmore-labs.com/patternguard/bugcheck"
	"fillmore-labs.com/patternguard/bugpatterns"
	"fillmore-labs.com/patternguard/internal/config"
	"fillmore-labs.com/patternguard/internal/engine"
	"fillmore-labs.com/patternguard/internal/flags"
	"fillmore-labs.com/patternguard/internal/registry"
)

// runOptions represent configuration runOptions for the patternguard analyzer.
type runOptions struct {
	// checkers are the registered checkers.
	checkers []bugcheck.Checker

	// args are -Xep flags, applied in order when the analyzer first runs.
	args []string

	// switches holds the generated code setting, combined with the -Xep switches.
	switches config.BitMask[config.Switch]

	logger *slog.Logger

	once   sync.Once
	engine *engine.Engine
	err    error
}

// makeRunOptions returns a [runOptions] struct with overriding [Options] applied.
func makeRunOptions(opts Options) *runOptions {
	r := defaultRunOptions()
	opts.apply(r)

	return r
}

// defaultRunOptions initializes and returns a new runOptions instance with default values.
func defaultRunOptions() *runOptions {
	return &runOptions{
		checkers: bugpatterns.All(),
		switches: config.NewBitMask(config.DisableWarningsInGeneratedCode),
		logger:   slog.Default(),
	}
}

// analyzer returns a patternguard *[analysis.Analyzer] instance.
func (r *runOptions) analyzer() *analysis.Analyzer {
	a := &analysis.Analyzer{
		Name:     name,
		Doc:      doc,
		URL:      url,
		Run:      r.run,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}

	return a
}

// setup builds the engine once, after all flags have been parsed.
func (r *runOptions) setup() (*engine.Engine, error) {
	r.once.Do(func() {
		reg, err := registry.New(r.checkers...)
		if err != nil {
			r.err = err

			return
		}

		o, rest, err := flags.Parse(r.args)
		if err != nil {
			r.err = err

			return
		}

		if len(rest) > 0 {
			r.err = fmt.Errorf("%s: unknown arguments %q", name, rest)

			return
		}

		o.Switches = o.Switches.Union(r.switches.Mask(config.DisableWarningsInGeneratedCode))

		sel, err := reg.Select(o)
		if err != nil {
			r.err = err

			return
		}

		r.logger.Debug("Analyzer configured", slog.Any("flags", o), slog.Int("checkers", sel.Len()))

		r.engine = engine.New(sel, engine.WithSwitches(o.Switches), engine.WithLogger(r.logger))
	})

	return r.engine, r.err
}
