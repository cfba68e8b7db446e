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

// Package flags parses the -Xep command line flags that select and configure checkers.
package flags

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"fillmore-labs.com/patternguard/internal/config"
)

// Setting is a per-checker override.
type Setting uint8

const (
	// Default restores the checker's default enablement and severity.
	Default Setting = iota

	// Off disables the checker.
	Off

	// Warn enables the checker as a warning.
	Warn

	// Error enables the checker as an error.
	Error
)

func (s Setting) String() string {
	switch s {
	case Off:
		return "OFF"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "DEFAULT"
	}
}

// InvalidFlagError reports a malformed flag.
type InvalidFlagError struct {
	Flag   string
	Reason string
}

func (e *InvalidFlagError) Error() string {
	return fmt.Sprintf("invalid flag %q: %s", e.Flag, e.Reason)
}

// Options is the parsed form of the -Xep flags.
type Options struct {
	// Overrides maps checker names to their override. Later flags win.
	Overrides map[string]Setting

	// CheckOptions maps checker names to key/value options.
	CheckOptions map[string]map[string]string

	// PatchChecks restricts patching to the named checkers. Empty means all.
	PatchChecks []string

	Switches config.BitMask[config.Switch]
}

const xepPrefix = "Xep"

var switches = map[string]config.Switch{
	"XepIgnoreUnknownCheckNames":        config.IgnoreUnknownCheckNames,
	"XepAllErrorsAsWarnings":            config.AllErrorsAsWarnings,
	"XepAllDisabledChecksAsWarnings":    config.AllDisabledChecksAsWarnings,
	"XepDisableAllChecks":               config.DisableAllChecks,
	"XepDisableWarningsInGeneratedCode": config.DisableWarningsInGeneratedCode,
}

// Parse separates -Xep flags from other arguments and parses them.
func Parse(args []string) (Options, []string, error) {
	var (
		o    Options
		rest []string
	)

	for _, arg := range args {
		if !strings.HasPrefix(strings.TrimLeft(arg, "-"), xepPrefix) || !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)

			continue
		}

		if err := o.Set(arg); err != nil {
			return Options{}, nil, err
		}
	}

	return o, rest, nil
}

// Set parses a single flag. Leading dashes are optional, and a value
// without the Xep prefix is shorthand for -Xep:<value>.
func (o *Options) Set(arg string) error {
	flag := strings.TrimLeft(arg, "-")

	if !strings.HasPrefix(flag, xepPrefix) {
		return o.setCheck(arg, flag)
	}

	if sw, ok := switches[flag]; ok {
		o.Switches.Enable(sw)

		return nil
	}

	name, value, ok := strings.Cut(flag, ":")
	if !ok {
		return &InvalidFlagError{Flag: arg, Reason: "unknown flag"}
	}

	switch name {
	case "Xep":
		return o.setCheck(arg, value)

	case "XepOpt":
		return o.setOption(arg, value)

	case "XepPatch", "XepPatchLocation":
		if value != "IN_PLACE" {
			return &InvalidFlagError{Flag: arg, Reason: "only IN_PLACE patching is supported"}
		}

		o.Switches.Enable(config.PatchInPlace)

		return nil

	case "XepPatchChecks":
		for c := range strings.SplitSeq(value, ",") {
			if c = strings.TrimSpace(c); c != "" && !slices.Contains(o.PatchChecks, c) {
				o.PatchChecks = append(o.PatchChecks, c)
			}
		}

		return nil

	default:
		return &InvalidFlagError{Flag: arg, Reason: "unknown flag"}
	}
}

func (o *Options) setCheck(arg, value string) error {
	name, sev, hasSev := strings.Cut(value, ":")
	if name == "" {
		return &InvalidFlagError{Flag: arg, Reason: "missing checker name"}
	}

	setting := Default

	if hasSev {
		switch strings.ToUpper(sev) {
		case "OFF":
			setting = Off
		case "WARN":
			setting = Warn
		case "ERROR":
			setting = Error
		case "DEFAULT":
			setting = Default
		default:
			return &InvalidFlagError{Flag: arg, Reason: "severity must be one of OFF, WARN, ERROR or DEFAULT"}
		}
	}

	if o.Overrides == nil {
		o.Overrides = make(map[string]Setting)
	}

	o.Overrides[name] = setting

	return nil
}

func (o *Options) setOption(arg, value string) error {
	key, val, hasVal := strings.Cut(value, "=")
	if !hasVal {
		val = "true"
	}

	checker, opt, ok := strings.Cut(key, ":")
	if !ok || checker == "" || opt == "" {
		return &InvalidFlagError{Flag: arg, Reason: "option must have the form Checker:key[=value]"}
	}

	if o.CheckOptions == nil {
		o.CheckOptions = make(map[string]map[string]string)
	}

	if o.CheckOptions[checker] == nil {
		o.CheckOptions[checker] = make(map[string]string)
	}

	o.CheckOptions[checker][opt] = val

	return nil
}

// Args renders the options as flags in a canonical order.
func (o Options) Args() []string {
	var args []string

	for _, name := range slices.Sorted(maps.Keys(switches)) {
		if o.Switches.Enabled(switches[name]) {
			args = append(args, "-"+name)
		}
	}

	if o.Switches.Enabled(config.PatchInPlace) {
		args = append(args, "-XepPatchLocation:IN_PLACE")
	}

	if len(o.PatchChecks) > 0 {
		args = append(args, "-XepPatchChecks:"+strings.Join(o.PatchChecks, ","))
	}

	for _, name := range slices.Sorted(maps.Keys(o.Overrides)) {
		args = append(args, "-Xep:"+name+":"+o.Overrides[name].String())
	}

	for _, checker := range slices.Sorted(maps.Keys(o.CheckOptions)) {
		opts := o.CheckOptions[checker]
		for _, key := range slices.Sorted(maps.Keys(opts)) {
			args = append(args, "-XepOpt:"+checker+":"+key+"="+opts[key])
		}
	}

	return args
}

// String implements [flag.Value].
func (o *Options) String() string {
	if o == nil {
		return ""
	}

	return strings.Join(o.Args(), " ")
}

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	return slog.StringValue(strings.Join(o.Args(), " "))
}

// Patches reports whether fixes of the named checker are applied when patching.
func (o Options) Patches(checker string) bool {
	return len(o.PatchChecks) == 0 || slices.Contains(o.PatchChecks, checker)
}
