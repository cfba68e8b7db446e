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

// Package bugcheck defines the contract between bug-pattern checkers and the engine.
//
// A [Checker] declares the node kinds it is interested in through its
// [Descriptor] and is called with every node of those kinds. It must not
// retain nodes or mutate the tree; fixes are expressed as text edits built
// with [State.NewFix].
//
// Checkers that need to see the whole run, like counting duplicate literals
// across files, accumulate values with [Collect] and implement [Finisher] to
// report at the end of the run.
package bugcheck
