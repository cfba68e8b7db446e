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

/*
Package gclplugin provides golangci-lint plugin integration for the [patternguard] analyzer.

# Usage

Build a custom golangci-lint binary that includes the plugin.

1. Create `.custom-gcl.yaml` next to your go.mod:

	---
	version: v2.7.0

	name: golangci-lint
	destination: .

	plugins:
	  - module: fillmore-labs.com/patternguard
	    import: fillmore-labs.com/patternguard/gclplugin
	    version: v0.0.1

2. Run `golangci-lint custom`, which writes the `golangci-lint` binary to the
destination directory.

3. Enable the checker set in `.golangci.yaml`. The settings block is optional:

	---
	version: "2"
	linters:
	  default: none
	  enable:
	    - patternguard
	  settings:
	    custom:
	      patternguard:
	        type: module
	        description: "patternguard finds common bug patterns."
	        original-url: "https://fillmore-labs.com/patternguard"
	        settings:
	          checks:
	            - DuplicateStringLiteral:WARN
	            - DeferInLoop:OFF
	          options:
	            - DuplicateStringLiteral:min=4
	          generated: false

Checks use the `Name[:OFF|WARN|ERROR]` syntax of the -Xep flag. Both are
lists, since the configuration loader folds map keys to lower case while
checker names are case sensitive. Findings in generated files are reported
unless generated is false; golangci-lint applies its own exclusions on top.

4. Run it:

	./golangci-lint run .

[patternguard]: https://pkg.go.dev/fillmore-labs.com/patternguard
*/
package gclplugin
