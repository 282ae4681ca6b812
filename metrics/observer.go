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

package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/routematch"
)

// A Recorder is a routematch.Observer.
var _ routematch.Observer = (*Recorder)(nil)

// RouteAdded implements [routematch.Observer]. It counts the mutation on
// router_mutations_total with operation "add".
func (r *Recorder) RouteAdded(method, pattern string) {
	r.recordMutation("add", method)
}

// RouteRemoved implements [routematch.Observer]. It counts the mutation on
// router_mutations_total with operation "remove".
func (r *Recorder) RouteRemoved(method, pattern string) {
	r.recordMutation("remove", method)
}

func (r *Recorder) recordMutation(operation, method string) {
	if !r.enabled {
		return
	}

	r.mutationCount.Add(context.Background(), 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("operation", operation),
		attribute.String("method", method),
	))
}

// LookupDone implements [routematch.Observer]. It counts the lookup on
// router_lookups_total and records its duration on
// router_lookup_duration_seconds.
//
// The method and path are intentionally not recorded: path cardinality is
// unbounded, and per-method lookup counts rarely justify the extra series.
// Only the operation ("find" or "find_all") and the outcome ("match" or
// "miss") become attributes.
func (r *Recorder) LookupDone(op routematch.LookupOp, method, path string, matched bool, elapsed time.Duration) {
	if !r.enabled {
		return
	}

	ctx := context.Background()
	attrs := r.lookupAttrs(op, matched)
	r.lookupCount.Add(ctx, 1, attrs)
	r.lookupDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// lookupAttrs returns the pre-computed attribute set for one
// (operation, outcome) pair. Sets are built once at initialization so the
// lookup hot path allocates nothing for attributes.
func (r *Recorder) lookupAttrs(op routematch.LookupOp, matched bool) metric.MeasurementOption {
	if op == routematch.LookupFindAll {
		if matched {
			return r.findAllMatchAttrs
		}
		return r.findAllMissAttrs
	}
	if matched {
		return r.findMatchAttrs
	}
	return r.findMissAttrs
}

// ObserveRouteCount registers count as the source for the router_routes
// instrument, reported on every export. Pass the router's Len method:
//
//	r := routematch.New[string](routematch.WithObserver(recorder))
//	if err := recorder.ObserveRouteCount(r.Len); err != nil {
//	    log.Fatal(err)
//	}
//
// The callback approach reports the exact table size. Deriving the size
// from add and remove notifications would drift, because an Add replacing
// an existing payload also notifies.
//
// The registration is released by [Recorder.Shutdown]. Register one router
// per Recorder: the observations share one attribute set, so a second
// registration overwrites the first on every export.
func (r *Recorder) ObserveRouteCount(count func() int) error {
	if !r.enabled {
		return nil
	}
	if count == nil {
		return fmt.Errorf("route count function cannot be nil")
	}

	gauge, err := r.meter.Int64ObservableUpDownCounter(
		"router_routes",
		metric.WithDescription("Current number of route registrations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create route count instrument: %w", err)
	}

	attrs := metric.WithAttributes(r.serviceNameAttr, r.serviceVersionAttr)
	reg, err := r.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(gauge, int64(count()), attrs)
		return nil
	}, gauge)
	if err != nil {
		return fmt.Errorf("failed to register route count callback: %w", err)
	}

	r.callbackMu.Lock()
	r.registrations = append(r.registrations, reg)
	r.callbackMu.Unlock()

	return nil
}

// initializeInstruments creates the router metric instruments.
func (r *Recorder) initializeInstruments() error {
	var err error

	// Lookup duration histogram with configurable buckets
	r.lookupDuration, err = r.meter.Float64Histogram(
		"router_lookup_duration_seconds",
		metric.WithDescription("Duration of route lookups in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.lookupBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create lookup duration histogram: %w", err)
	}

	// Lookup counter
	r.lookupCount, err = r.meter.Int64Counter(
		"router_lookups_total",
		metric.WithDescription("Total number of route lookups"),
	)
	if err != nil {
		return fmt.Errorf("failed to create lookup counter: %w", err)
	}

	// Mutation counter
	r.mutationCount, err = r.meter.Int64Counter(
		"router_mutations_total",
		metric.WithDescription("Total number of route table mutations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create mutation counter: %w", err)
	}

	// Custom metric failure counter
	r.customMetricFailures, err = r.meter.Int64Counter(
		"router_custom_metric_failures_total",
		metric.WithDescription("Total number of failed custom metric operations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create custom metric failures counter: %w", err)
	}

	r.precomputeLookupAttrs()

	return nil
}

// precomputeLookupAttrs builds the four attribute sets used by LookupDone.
func (r *Recorder) precomputeLookupAttrs() {
	set := func(operation, outcome string) metric.MeasurementOption {
		return metric.WithAttributeSet(attribute.NewSet(
			r.serviceNameAttr,
			r.serviceVersionAttr,
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		))
	}

	r.findMatchAttrs = set(string(routematch.LookupFind), "match")
	r.findMissAttrs = set(string(routematch.LookupFind), "miss")
	r.findAllMatchAttrs = set(string(routematch.LookupFindAll), "match")
	r.findAllMissAttrs = set(string(routematch.LookupFindAll), "miss")
}
