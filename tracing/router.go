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

package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/routematch"
)

// Router wraps a [routematch.Router] so that every Find and FindAll runs
// inside its own span. Lookups excluded by path or dropped by sampling still
// run; they just don't record a span.
//
// The wrapper adds context-taking variants of the lookup methods and passes
// mutations straight through, so it can stand in for the underlying router.
// Matched lookups record captured parameters as 'router.param.*' attributes,
// subject to WithRecordParams / WithExcludeParams / WithDisableParams.
//
// Example:
//
//	router := routematch.New[http.HandlerFunc]()
//	tracer := tracing.MustNew(tracing.WithStdout())
//	traced, err := tracing.NewRouter(router, tracer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, err := traced.Find(ctx, "GET", "/users/42", true)
type Router[T any] struct {
	inner  *routematch.Router[T]
	tracer *Tracer
}

// NewRouter wraps router so its lookups are traced by tracer.
// Both arguments are required.
func NewRouter[T any](router *routematch.Router[T], tracer *Tracer) (*Router[T], error) {
	if router == nil {
		return nil, errors.New("router cannot be nil")
	}
	if tracer == nil {
		return nil, errors.New("tracer cannot be nil")
	}
	return &Router[T]{inner: router, tracer: tracer}, nil
}

// Find looks up the best-matching route for method and path inside a lookup
// span. The span records the operation, method, path, match outcome, and
// (for matched lookups with capture enabled) the captured parameters.
//
// The lookup itself is delegated to [routematch.Router.Find] unchanged; a
// cancelled context skips span creation but never the lookup.
func (r *Router[T]) Find(ctx context.Context, method, path string, capture bool) (routematch.MatchedRoute[T], error) {
	if !r.tracer.IsEnabled() || r.tracer.ShouldExcludePath(path) {
		return r.inner.Find(method, path, capture)
	}

	_, span := r.tracer.StartLookupSpan(ctx, routematch.LookupFind, method, path)

	match, err := r.inner.Find(method, path, capture)

	matched := err == nil
	if matched {
		r.recordMatchedParams(span, match.Params)
	}
	r.tracer.FinishLookupSpan(span, matched)

	return match, err
}

// FindAll returns every matching route for method and path inside a lookup
// span. The span records the number of matches as 'router.matches'; a lookup
// with zero matches finishes the span as a miss.
func (r *Router[T]) FindAll(ctx context.Context, method, path string, capture bool) []routematch.MatchedRoute[T] {
	if !r.tracer.IsEnabled() || r.tracer.ShouldExcludePath(path) {
		return r.inner.FindAll(method, path, capture)
	}

	_, span := r.tracer.StartLookupSpan(ctx, routematch.LookupFindAll, method, path)

	matches := r.inner.FindAll(method, path, capture)

	if span.IsRecording() {
		span.SetAttributes(attribute.Int("router.matches", len(matches)))
	}
	r.tracer.FinishLookupSpan(span, len(matches) > 0)

	return matches
}

// Add registers a route on the underlying router. Mutations are not traced.
func (r *Router[T]) Add(method, pattern string, payload T) error {
	return r.inner.Add(method, pattern, payload)
}

// Remove unregisters a route from the underlying router. Mutations are not traced.
func (r *Router[T]) Remove(method, pattern string) error {
	return r.inner.Remove(method, pattern)
}

// Len reports the number of registered routes on the underlying router.
func (r *Router[T]) Len() int {
	return r.inner.Len()
}

// Routes enumerates the registered routes of the underlying router.
func (r *Router[T]) Routes() []routematch.Route {
	return r.inner.Routes()
}

// Unwrap returns the underlying router for operations the wrapper does not
// expose.
func (r *Router[T]) Unwrap() *routematch.Router[T] {
	return r.inner
}

// recordMatchedParams copies captured parameters onto the span as
// 'router.param.*' attributes, honoring the record/exclude configuration.
func (r *Router[T]) recordMatchedParams(span trace.Span, params routematch.Params) {
	if !r.tracer.recordParams || len(params) == 0 || !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(params))
	for _, p := range params {
		if r.tracer.shouldRecordParam(p.Key) {
			attrs = append(attrs, attribute.String(attrPrefixParam+p.Key, p.Value))
		}
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}
