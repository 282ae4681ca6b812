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

import "errors"

var (
	// ErrInvalidPattern indicates that a route pattern is malformed and
	// cannot be compiled. Errors returned by [Router.Add] and [Router.Remove]
	// wrap this sentinel together with the offending pattern and a reason,
	// so errors.Is(err, ErrInvalidPattern) works on all of them.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrRouteNotFound indicates that no registered route matches.
	// [Router.Find] returns it when a lookup fails, and [Router.Remove]
	// returns it when the (method, pattern) pair was never registered.
	ErrRouteNotFound = errors.New("route not found")
)
