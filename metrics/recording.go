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
	"regexp"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metricNameRegex validates metric names according to OpenTelemetry conventions.
// Metric names must start with a letter and contain only alphanumeric characters, underscores, dots, and hyphens.
var metricNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]*$`)

const (
	// maxMetricNameLength is the maximum allowed length for metric names.
	maxMetricNameLength = 255
)

// Reserved metric name prefixes that should not be used for custom metrics.
// These prefixes are reserved by Prometheus or by the metrics package itself.
var reservedPrefixes = []string{
	"__",      // Reserved by Prometheus for internal use
	"router_", // Reserved by this package for router metrics
}

// limitError is returned when the custom metrics limit is reached.
type limitError struct {
	metricName string
	limit      int
	current    int
}

func (e *limitError) Error() string {
	return fmt.Sprintf("metrics limit reached: cannot create '%s' (current: %d, limit: %d)",
		e.metricName, e.current, e.limit)
}

// validateMetricName validates that a metric name conforms to OpenTelemetry conventions.
// Returns an error if the name is invalid.
func validateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("metric name cannot be empty")
	}
	if len(name) > maxMetricNameLength {
		return fmt.Errorf("metric name too long: %d characters (max %d)", len(name), maxMetricNameLength)
	}
	if !metricNameRegex.MatchString(name) {
		return fmt.Errorf("invalid metric name '%s': must start with letter and contain only alphanumeric, underscore, dot, or hyphen", name)
	}

	// Check for reserved prefixes
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return fmt.Errorf("metric name '%s' uses reserved prefix '%s': reserved prefixes are %v",
				name, prefix, reservedPrefixes)
		}
	}

	return nil
}

// RecordHistogram records a custom histogram metric with the given name and value.
// Returns an error if the metric name is invalid or creation fails.
//
// Example:
//
//	err := recorder.RecordHistogram(ctx, "reload_duration", 1.5,
//	    attribute.String("source", "config"))
//	if err != nil {
//	    // Handle error or ignore with: _ = recorder.RecordHistogram(...)
//	}
func (r *Recorder) RecordHistogram(ctx context.Context, name string, value float64, attributes ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}

	histogram, err := r.getOrCreateHistogram(name)
	if err != nil {
		atomic.AddInt64(&r.atomicCustomMetricFailures, 1)
		r.customMetricFailures.Add(ctx, 1)

		return fmt.Errorf("record histogram %q: %w", name, err)
	}

	histogram.Record(ctx, value, metric.WithAttributes(attributes...))

	return nil
}

// IncrementCounter increments a custom counter metric by 1.
// Returns an error if the metric name is invalid or creation fails.
//
// Example:
//
//	err := recorder.IncrementCounter(ctx, "reloads_total",
//	    attribute.String("status", "success"))
//	if err != nil {
//	    // Handle error or ignore with: _ = recorder.IncrementCounter(...)
//	}
func (r *Recorder) IncrementCounter(ctx context.Context, name string, attributes ...attribute.KeyValue) error {
	return r.AddCounter(ctx, name, 1, attributes...)
}

// AddCounter adds a value to a custom counter metric.
// Returns an error if the metric name is invalid or creation fails.
//
// Example:
//
//	err := recorder.AddCounter(ctx, "bytes_processed", 1024,
//	    attribute.String("type", "upload"))
func (r *Recorder) AddCounter(ctx context.Context, name string, value int64, attributes ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}

	counter, err := r.getOrCreateCounter(name)
	if err != nil {
		atomic.AddInt64(&r.atomicCustomMetricFailures, 1)
		r.customMetricFailures.Add(ctx, 1)

		return fmt.Errorf("add counter %q: %w", name, err)
	}

	counter.Add(ctx, value, metric.WithAttributes(attributes...))

	return nil
}

// SetGauge sets a custom gauge metric with the given name and value.
// Returns an error if the metric name is invalid or creation fails.
//
// Example:
//
//	err := recorder.SetGauge(ctx, "cache_entries", 42,
//	    attribute.String("cache", "routes"))
func (r *Recorder) SetGauge(ctx context.Context, name string, value float64, attributes ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}

	gauge, err := r.getOrCreateGauge(name)
	if err != nil {
		atomic.AddInt64(&r.atomicCustomMetricFailures, 1)
		r.customMetricFailures.Add(ctx, 1)

		return fmt.Errorf("set gauge %q: %w", name, err)
	}

	gauge.Record(ctx, value, metric.WithAttributes(attributes...))

	return nil
}

// CustomMetricFailures returns the number of failed custom metric operations
// since the recorder was created. Useful for tests and health checks.
func (r *Recorder) CustomMetricFailures() int64 {
	return atomic.LoadInt64(&r.atomicCustomMetricFailures)
}

// getOrCreateCounter gets or creates a custom counter metric.
// This method is safe for concurrent use.
func (r *Recorder) getOrCreateCounter(name string) (metric.Int64Counter, error) {
	// Fast path: read lock
	r.customMu.RLock()
	if counter, exists := r.customCounters[name]; exists {
		r.customMu.RUnlock()
		return counter, nil
	}
	r.customMu.RUnlock()

	// Validate metric name only when creating new metric
	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	// Slow path: write lock
	r.customMu.Lock()
	defer r.customMu.Unlock()

	// Double-check after acquiring write lock
	if counter, exists := r.customCounters[name]; exists {
		return counter, nil
	}

	// Check limit
	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, &limitError{
			metricName: name,
			limit:      r.maxCustomMetrics,
			current:    r.customMetricCount,
		}
	}

	// Create the metric
	counter, err := r.meter.Int64Counter(
		name,
		metric.WithDescription("Custom counter metric"),
	)
	if err != nil {
		return nil, err
	}

	r.customCounters[name] = counter
	r.customMetricCount++

	return counter, nil
}

// getOrCreateHistogram gets or creates a custom histogram metric.
// This method is safe for concurrent use.
func (r *Recorder) getOrCreateHistogram(name string) (metric.Float64Histogram, error) {
	// Fast path: read lock
	r.customMu.RLock()
	if histogram, exists := r.customHistograms[name]; exists {
		r.customMu.RUnlock()
		return histogram, nil
	}
	r.customMu.RUnlock()

	// Validate metric name only when creating new metric
	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	// Slow path: write lock
	r.customMu.Lock()
	defer r.customMu.Unlock()

	// Double-check after acquiring write lock
	if histogram, exists := r.customHistograms[name]; exists {
		return histogram, nil
	}

	// Check limit
	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, &limitError{
			metricName: name,
			limit:      r.maxCustomMetrics,
			current:    r.customMetricCount,
		}
	}

	// Create the metric
	histogram, err := r.meter.Float64Histogram(
		name,
		metric.WithDescription("Custom histogram metric"),
	)
	if err != nil {
		return nil, err
	}

	r.customHistograms[name] = histogram
	r.customMetricCount++

	return histogram, nil
}

// getOrCreateGauge gets or creates a custom gauge metric.
// This method is safe for concurrent use.
func (r *Recorder) getOrCreateGauge(name string) (metric.Float64Gauge, error) {
	// Fast path: read lock
	r.customMu.RLock()
	if gauge, exists := r.customGauges[name]; exists {
		r.customMu.RUnlock()
		return gauge, nil
	}
	r.customMu.RUnlock()

	// Validate metric name only when creating new metric
	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	// Slow path: write lock
	r.customMu.Lock()
	defer r.customMu.Unlock()

	// Double-check after acquiring write lock
	if gauge, exists := r.customGauges[name]; exists {
		return gauge, nil
	}

	// Check limit
	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, &limitError{
			metricName: name,
			limit:      r.maxCustomMetrics,
			current:    r.customMetricCount,
		}
	}

	// Create the metric
	gauge, err := r.meter.Float64Gauge(
		name,
		metric.WithDescription("Custom gauge metric"),
	)
	if err != nil {
		return nil, err
	}

	r.customGauges[name] = gauge
	r.customMetricCount++

	return gauge, nil
}
