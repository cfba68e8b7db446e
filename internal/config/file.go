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

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// FileName is the base name of the configuration file, searched with the extensions viper supports.
	FileName = ".patternguard"

	// EnvPrefix prefixes environment variables overriding file settings.
	EnvPrefix = "PATTERNGUARD"

	// DefaultMaxPasses bounds the rounds of the fix driver.
	DefaultMaxPasses = 10
)

// File is the content of a configuration file.
//
// Checks and Options use the flag syntax without prefix:
//
//	checks:
//	  - SelfAssignment:OFF
//	  - DeferInLoop:ERROR
//	options:
//	  - DuplicateStringLiteral:min=3
type File struct {
	Checks    []string `mapstructure:"checks"`
	Options   []string `mapstructure:"options"`
	Format    string   `mapstructure:"format"`
	Jobs      int      `mapstructure:"jobs"`
	Generated bool     `mapstructure:"generated"`
	MaxPasses int      `mapstructure:"max-passes"`

	// Used is the path of the file read, empty when defaults are in effect.
	Used string `mapstructure:"-"`
}

// Default returns the settings in effect without a configuration file.
func Default() *File {
	return &File{Format: "text", MaxPasses: DefaultMaxPasses}
}

// Load reads the configuration. An explicit path must exist, otherwise
// [FileName] is searched in dir and a missing file yields [Default].
func Load(path, dir string) (*File, error) {
	v := viper.New()

	v.SetDefault("format", "text")
	v.SetDefault("jobs", 0)
	v.SetDefault("generated", false)
	v.SetDefault("max-passes", DefaultMaxPasses)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("can't read configuration: %w", err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", v.ConfigFileUsed(), err)
	}

	f.Used = v.ConfigFileUsed()

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Validate checks value ranges.
func (f *File) Validate() error {
	if f.Jobs < 0 {
		return fmt.Errorf("invalid configuration: jobs must not be negative, got %d", f.Jobs)
	}

	if f.MaxPasses < 1 {
		return fmt.Errorf("invalid configuration: max-passes must be positive, got %d", f.MaxPasses)
	}

	return nil
}

// Args renders the checker settings as flags.
func (f *File) Args() []string {
	args := make([]string, 0, len(f.Checks)+len(f.Options)+1)

	for _, c := range f.Checks {
		args = append(args, "-Xep:"+c)
	}

	for _, o := range f.Options {
		args = append(args, "-XepOpt:"+o)
	}

	if !f.Generated {
		args = append(args, "-XepDisableWarningsInGeneratedCode")
	}

	return args
}
