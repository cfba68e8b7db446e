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

// Package report renders diagnostics as compiler-style text, JSON, YAML or SARIF.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Format is an output format.
type Format uint8

const (
	// Text renders one "<file>:<line>:<col>: [<checker>] <message>" line per diagnostic.
	Text Format = iota

	// JSON renders a JSON array.
	JSON

	// YAML renders a YAML sequence.
	YAML

	// SARIF renders a SARIF 2.1.0 log.
	SARIF
)

// MarshalText implements [encoding.TextMarshaler].
func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case Text:
		return []byte("text"), nil

	case JSON:
		return []byte("json"), nil

	case YAML:
		return []byte("yaml"), nil

	case SARIF:
		return []byte("sarif"), nil

	default:
		return nil, fmt.Errorf("unknown format %d", f)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "text":
		*f = Text

	case "json":
		*f = JSON

	case "yaml", "yml":
		*f = YAML

	case "sarif":
		*f = SARIF

	default:
		return fmt.Errorf("unknown format %q", string(text))
	}

	return nil
}

// String implements [fmt.Stringer] and [pflag.Value].
func (f Format) String() string {
	b, err := f.MarshalText()
	if err != nil {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}

	return string(b)
}

// Set implements [pflag.Value].
func (f *Format) Set(s string) error { return f.UnmarshalText([]byte(s)) }

// Type implements [pflag.Value].
func (*Format) Type() string { return "format" }

// Tool describes the reporting tool, used by SARIF output.
type Tool struct {
	Name    string
	Version string
	URI     string
	Rules   []Rule
}

// Rule describes a checker for SARIF output.
type Rule struct {
	Name     string
	Summary  string
	Severity string
	URL      string
	Tags     []string
}

// Reporter writes diagnostics.
type Reporter interface {
	Report(w io.Writer, ds []Diagnostic) error
}

// New returns a [Reporter] for the format. color enables colored text output.
func New(f Format, tool Tool, color bool) (Reporter, error) {
	switch f {
	case Text:
		return textReporter{color: color}, nil

	case JSON:
		return jsonReporter{}, nil

	case YAML:
		return yamlReporter{}, nil

	case SARIF:
		return sarifReporter{tool: tool}, nil

	default:
		return nil, fmt.Errorf("unknown format %d", f)
	}
}
