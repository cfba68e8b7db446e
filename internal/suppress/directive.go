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

package suppress

import (
	"go/ast"
	"regexp"
	"strings"
)

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// Directive is the parsed checker list of a //nolint: comment.
type Directive []string

// ParseDirective parses a //nolint:<names> comment.
// Names are lower-cased; ok is false for other comments.
func ParseDirective(comment *ast.Comment) (d Directive, ok bool) {
	matches := nolintPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil, false
	}

	for name := range strings.SplitSeq(matches[1], ",") {
		if n := strings.ToLower(strings.TrimSpace(name)); n != "" {
			d = append(d, n)
		}
	}

	return d, true
}

// Covers reports whether the directive names one of names, or "all".
func (d Directive) Covers(names []string) bool {
	for _, n := range d {
		if n == "all" {
			return true
		}

		for _, name := range names {
			if strings.EqualFold(n, name) {
				return true
			}
		}
	}

	return false
}

// groupDirectives returns the directives in a comment group.
func groupDirectives(g *ast.CommentGroup) []Directive {
	if g == nil {
		return nil
	}

	var ds []Directive

	for _, c := range g.List {
		if d, ok := ParseDirective(c); ok {
			ds = append(ds, d)
		}
	}

	return ds
}
