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

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Router is an in-process route matcher. It maps (method, pattern) pairs to
// payloads of type T and answers, for an incoming (method, path), which
// pattern wins and what parameters it captured. It is not a server: feed it
// from any transport and dispatch on the returned payload.
//
// Key properties:
//   - Static segments beat parameters, parameters beat catch-alls, applied
//     segment by segment
//   - Purely static routes are additionally indexed flat for O(1) lookups
//   - Registering for method "" matches any method, losing to any concrete
//     method registered on the same pattern
//   - Parameter capture is skippable per lookup to avoid the allocations
//
// The zero value is not usable; create routers with [New]. A Router is safe
// for concurrent use: lookups run in parallel under a read lock, mutations
// take the write lock.
type Router[T any] struct {
	mu     sync.RWMutex
	root   node[T]
	static map[string]map[string]T // canonical static path → method → payload
	size   int

	settings
}

// New creates a route matcher for payloads of type T.
//
// New cannot fail: options only install collaborators (logger, observer)
// and toggles, never configuration that needs validating.
//
// Example:
//
//	r := routematch.New[http.Handler]()
//	_ = r.Add(http.MethodGet, "/users/:id", userHandler)
func New[T any](opts ...Option) *Router[T] {
	r := &Router[T]{
		static:   make(map[string]map[string]T),
		settings: defaultSettings(),
	}
	for _, opt := range opts {
		opt(&r.settings)
	}
	return r
}

// Add registers payload for the given method and pattern. Re-adding the
// same (method, pattern) replaces the stored payload in place.
//
// The method is an opaque case-sensitive token unless the router was built
// [WithMethodNormalization]. The empty method "" registers an any-method
// handler that concrete registrations on the same pattern shadow.
//
// Pattern syntax:
//
//	/users            literal segments
//	/users/:id        parameter, one non-empty segment
//	/users/:id?       optional parameter, last segment only
//	/files/*          anonymous parameter (matched but not captured)
//	/files/**:path    catch-all for zero or more segments, last only
//	/files/**         anonymous catch-all
//
// Malformed patterns return an error wrapping [ErrInvalidPattern] and leave
// the table untouched.
func (r *Router[T]) Add(method, pattern string, payload T) error {
	if r.normalizeMethods {
		method = strings.ToUpper(method)
	}
	segs, err := parsePattern(pattern)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if key, ok := staticKey(segs); ok {
		// Dual storage: static routes live in the flat index for the
		// fast path and in the tree so enumeration sees them.
		r.staticSet(key, method, payload)
	}
	if n := len(segs); n > 0 && segs[n-1].kind == segOptional {
		// An optional final parameter also registers the bare prefix.
		// When that prefix is purely static it is indexed like the
		// static route it effectively is, keeping the fast path and
		// the tree in agreement.
		if key, ok := staticKey(segs[:n-1]); ok {
			r.staticSet(key, method, payload)
		}
	}
	r.size += r.root.insert(segs, method, payload)
	r.mu.Unlock()

	r.logger.Debug("route added", "method", method, "pattern", pattern)
	if r.observer != nil {
		r.observer.RouteAdded(method, pattern)
	}
	return nil
}

// Remove deletes the registration for the given method and pattern. The
// pattern is compared structurally: parameter names do not have to match
// the ones used at Add time, only the segment shapes do.
//
// Returns an error wrapping [ErrInvalidPattern] for a malformed pattern and
// one wrapping [ErrRouteNotFound] when no such registration exists. Nodes
// left empty by the removal are pruned.
func (r *Router[T]) Remove(method, pattern string) error {
	if r.normalizeMethods {
		method = strings.ToUpper(method)
	}
	segs, err := parsePattern(pattern)
	if err != nil {
		return err
	}

	r.mu.Lock()
	removed, ok := r.root.remove(segs, 0, method)
	if ok {
		r.size -= removed
		if key, isStatic := staticKey(segs); isStatic {
			r.staticDelete(key, method)
		}
		if n := len(segs); n > 0 && segs[n-1].kind == segOptional {
			// The bare-prefix registration goes away with the
			// optional route.
			if key, isStatic := staticKey(segs[:n-1]); isStatic {
				r.staticDelete(key, method)
			}
		}
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: method %q pattern %q", ErrRouteNotFound, method, pattern)
	}
	r.logger.Debug("route removed", "method", method, "pattern", pattern)
	if r.observer != nil {
		r.observer.RouteRemoved(method, pattern)
	}
	return nil
}

// Find returns the highest-priority route matching method and path, or an
// error wrapping [ErrRouteNotFound].
//
// With capture false the result's Params is nil and no capture work is
// done; with capture true Params is non-nil even when the winning route has
// no named parameters. Paths ending in "/" match routes registered for the
// path without it; interior empty segments ("a//b") are real and only a
// catch-all consumes them.
func (r *Router[T]) Find(method, path string, capture bool) (MatchedRoute[T], error) {
	if r.normalizeMethods {
		method = strings.ToUpper(method)
	}

	var start time.Time
	if r.observer != nil {
		start = time.Now()
	}

	m, ok := r.find(method, path, capture)

	if r.observer != nil {
		r.observer.LookupDone(LookupFind, method, path, ok, time.Since(start))
	}
	if !ok {
		return MatchedRoute[T]{}, fmt.Errorf("%w: method %q path %q", ErrRouteNotFound, method, path)
	}
	return m, nil
}

// staticSet records payload in the flat index. Callers hold the write lock.
func (r *Router[T]) staticSet(key, method string, payload T) {
	byMethod := r.static[key]
	if byMethod == nil {
		byMethod = make(map[string]T)
		r.static[key] = byMethod
	}
	byMethod[method] = payload
}

// staticDelete drops an index entry. Callers hold the write lock.
func (r *Router[T]) staticDelete(key, method string) {
	if byMethod := r.static[key]; byMethod != nil {
		delete(byMethod, method)
		if len(byMethod) == 0 {
			delete(r.static, key)
		}
	}
}

func (r *Router[T]) find(method, path string, capture bool) (MatchedRoute[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Fast path: a purely static route is indexed under its full path.
	// Capturing lookups take the tree walk instead; dual storage makes
	// both answers identical.
	if !capture {
		if byMethod := r.static[strings.TrimPrefix(path, "/")]; byMethod != nil {
			v, ok := byMethod[method]
			if !ok {
				v, ok = byMethod[""]
			}
			if ok {
				return MatchedRoute[T]{Value: v}, true
			}
		}
	}

	segs := splitPath(path)
	var ps *Params
	if capture {
		p := make(Params, 0, 4)
		ps = &p
	}
	v, ok := r.root.lookup(method, segs, 0, ps)
	if !ok {
		return MatchedRoute[T]{}, false
	}
	m := MatchedRoute[T]{Value: v}
	if capture {
		m.Params = *ps
	}
	return m, true
}

// FindAll returns every route matching method and path in priority order:
// the first element is exactly what [Router.Find] would return, followed by
// the routes that would win if higher-priority ones were removed. Each
// result carries the parameters its own pattern captured.
//
// A path with no matches yields an empty slice, never an error.
func (r *Router[T]) FindAll(method, path string, capture bool) []MatchedRoute[T] {
	if r.normalizeMethods {
		method = strings.ToUpper(method)
	}

	var start time.Time
	if r.observer != nil {
		start = time.Now()
	}

	r.mu.RLock()
	segs := splitPath(path)
	var ps *Params
	if capture {
		p := make(Params, 0, 4)
		ps = &p
	}
	var out []MatchedRoute[T]
	r.root.collect(method, segs, 0, ps, &out)
	r.mu.RUnlock()

	if r.observer != nil {
		r.observer.LookupDone(LookupFindAll, method, path, len(out) > 0, time.Since(start))
	}
	return out
}

// Len returns the number of live (method, pattern) registrations. An
// optional parameter registers both its bare and its parameterized form,
// and counts as two.
func (r *Router[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}
