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

// Package routematch provides an in-process HTTP route matcher.
//
// The matcher is a table from (method, pattern) to a payload of any type,
// answering for an incoming (method, path) which pattern matches, with
// named parameters captured along the way. It is deliberately not a
// server: there is no handler type, no net/http coupling and no request
// parsing. Embed it wherever routing decisions are made and dispatch on
// the payload yourself.
//
// # Pattern Syntax
//
//	/health              literal segments, matched exactly
//	/users/:id           parameter, binds one non-empty segment
//	/search/:query?      optional parameter, last segment only
//	/files/*             anonymous parameter, matched but never captured
//	/files/**:path       catch-all, binds zero or more trailing segments
//	/files/**            anonymous catch-all
//
// # Matching
//
// Matching is segment-wise with fixed priority at every level: a literal
// child beats the parameter, the parameter beats the catch-all. The walk
// backtracks, so /users/all wins over /users/:id while /users/42 still
// matches the parameter. [Router.Find] returns the single winner and
// [Router.FindAll] the full candidate list in the same order, which makes
// shadowed routes visible.
//
// Methods are opaque case-sensitive tokens; registering with the empty
// method matches any method and loses to concrete registrations. Lookups
// split paths on "/" and nothing else: no percent-decoding, no query
// strings, no duplicate-slash cleanup.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "net/http"
//
//	    "rivaas.dev/routematch"
//	)
//
//	func main() {
//	    r := routematch.New[string]()
//
//	    _ = r.Add(http.MethodGet, "/users/:id", "user-detail")
//	    _ = r.Add(http.MethodGet, "/users/all", "user-list")
//	    _ = r.Add("", "/health", "health")
//
//	    m, err := r.Find(http.MethodGet, "/users/42", true)
//	    if err != nil {
//	        panic(err)
//	    }
//	    id, _ := m.Params.Get("id")
//	    fmt.Println(m.Value, id) // user-detail 42
//	}
//
// # Parameter Capture
//
// Capture is opt-in per lookup. With capture disabled the matcher does no
// capture work and the result's Params is nil; with capture enabled Params
// is non-nil even when empty. Params preserve pattern order, so a
// catch-all's binding is always last.
//
// # Observability
//
// The matcher itself stays silent on the hot path. Route table mutations
// log at Debug through the logger installed with [WithLogger], and an
// [Observer] installed with [WithObserver] receives mutation and lookup
// events. The metrics and tracing subpackages build OpenTelemetry
// instrumentation on top of that hook.
//
// # Concurrency
//
// A [Router] is safe for concurrent use. Lookups share a read lock and run
// in parallel; Add and Remove serialize behind a write lock. Every lookup
// returns freshly allocated results, so callers never share state through
// the router.
package routematch
