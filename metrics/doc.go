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

// Package metrics provides OpenTelemetry-based metrics collection for the
// routematch router. It supports multiple exporters (Prometheus, OTLP,
// stdout) and plugs into a router as a [routematch.Observer].
//
// # Basic Usage
//
//	recorder := metrics.MustNew(
//	    metrics.WithPrometheus(":9090", "/metrics"),
//	    metrics.WithServiceName("my-service"),
//	)
//	defer recorder.Shutdown(context.Background())
//
//	r := routematch.New[string](routematch.WithObserver(recorder))
//
// Every Find and FindAll is then counted and timed, and every Add and
// Remove is counted. To also export the current route table size, register
// the router's Len method:
//
//	_ = recorder.ObserveRouteCount(r.Len)
//
// # Recorded Metrics
//
//	router_lookups_total             counter    operation, outcome
//	router_lookup_duration_seconds   histogram  operation, outcome
//	router_mutations_total           counter    operation, method
//	router_routes                    updown     (via ObserveRouteCount)
//
// Lookup paths are never recorded as attributes: their cardinality is
// unbounded. The operation attribute is "find" or "find_all", the outcome
// attribute is "match" or "miss".
//
// # Thread Safety
//
// All [Recorder] methods are safe for concurrent use. Custom metrics are
// limited (default 1000) to prevent unbounded metric creation.
//
// # Global State
//
// By default, this package does NOT set the global OpenTelemetry meter
// provider. Use [WithGlobalMeterProvider] if you want global registration.
// This allows multiple [Recorder] instances to coexist in the same process.
//
// # Providers
//
// Three providers are supported:
//   - [PrometheusProvider] (default): Exposes metrics via HTTP endpoint
//   - [OTLPProvider]: Sends metrics to OTLP collector
//   - [StdoutProvider]: Prints metrics to stdout (for development/testing)
//
// # Custom Metrics
//
// Record custom metrics alongside the router metrics. All methods return
// errors for explicit error handling:
//
//	if err := recorder.RecordHistogram(ctx, "reload_duration", 1.5,
//	    attribute.String("source", "config")); err != nil {
//	    log.Printf("metrics error: %v", err)
//	}
//
//	// Or ignore errors with _ (fire-and-forget)
//	_ = recorder.IncrementCounter(ctx, "reloads_total")
//
// See [Recorder.RecordHistogram], [Recorder.IncrementCounter], and
// [Recorder.SetGauge] for custom metric recording.
package metrics
