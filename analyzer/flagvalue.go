// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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
	"flag"
	"strconv"
	"strings"

	"fillmore-labs.com/patternguard/internal/config"
	"fillmore-labs.com/patternguard/internal/flags"
)

type boolValue[F any, B boolFlag[F]] struct {
	flags  B
	value  F
	invert bool
}

type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// NewSwitchValue returns a boolean [flag.Value] controlling one switch.
// With invert, a true flag value disables the switch.
func NewSwitchValue(switches *config.BitMask[config.Switch], sw config.Switch, invert bool) flag.Getter {
	return boolValue[config.Switch, *config.BitMask[config.Switch]]{flags: switches, value: sw, invert: invert}
}

// Set implements [flag.Value].
func (f boolValue[_, B]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b != f.invert)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, B]) String() string {
	var null B
	if f.flags == null {
		return strconv.FormatBool(f.invert)
	}

	return strconv.FormatBool(f.flags.Enabled(f.value) != f.invert)
}

// Get implements [flag.Getter].
func (f boolValue[_, B]) Get() any {
	var null B
	if f.flags == null {
		return f.invert
	}

	return f.flags.Enabled(f.value) != f.invert
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// parseBool returns the boolean value represented by the string.
func parseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "on", "On":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "off", "Off":
		return false, nil
	}

	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// checksValue collects -Xep arguments in command line order.
type checksValue struct {
	args *[]string
}

// Set implements [flag.Value]. The argument is validated, but parsed only
// when the analyzer first runs.
func (c checksValue) Set(s string) error {
	var o flags.Options
	if err := o.Set(s); err != nil {
		return err
	}

	*c.args = append(*c.args, s)

	return nil
}

// String implements [flag.Value].
func (c checksValue) String() string {
	if c.args == nil {
		return ""
	}

	return strings.Join(*c.args, " ")
}
