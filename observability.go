// Copyright 2025 The Rivaas Authors
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

package routematch

import "time"

// LookupOp identifies which lookup operation an Observer event refers to.
type LookupOp string

const (
	// LookupFind is a first-match lookup via [Router.Find].
	LookupFind LookupOp = "find"

	// LookupFindAll is a full enumeration via [Router.FindAll].
	LookupFindAll LookupOp = "find_all"
)

// Observer receives notifications about route table mutations and lookups.
// Install one with [WithObserver]; the metrics package provides a ready
// implementation backed by OpenTelemetry.
//
// All calls are synchronous, made on the caller's goroutine after the
// router has released its lock. Implementations must be safe for concurrent
// use and should return quickly; anything expensive belongs on a queue the
// implementation owns.
//
// Observers see the method and path as the caller passed them (after method
// normalization, when enabled). Beware of recording raw paths in metric
// labels: their cardinality is unbounded.
type Observer interface {
	// RouteAdded is called after a successful Add, including replacements.
	RouteAdded(method, pattern string)

	// RouteRemoved is called after a successful Remove.
	RouteRemoved(method, pattern string)

	// LookupDone is called after every Find and FindAll, matched or not.
	// elapsed covers the lookup itself, not the observer call.
	LookupDone(op LookupOp, method, path string, matched bool, elapsed time.Duration)
}
