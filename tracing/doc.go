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

// Package tracing provides OpenTelemetry-based tracing for route lookups.
// It supports multiple exporters (Noop, Stdout, OTLP gRPC, OTLP HTTP) and
// wraps a routematch.Router so that every Find and FindAll runs inside its
// own span.
//
// # Basic Usage
//
//	import (
//	    "context"
//	    "log"
//
//	    "rivaas.dev/routematch"
//	    "rivaas.dev/routematch/tracing"
//	)
//
//	router := routematch.New[string]()
//	tracer, err := tracing.New(
//	    tracing.WithServiceName("my-service"),
//	    tracing.WithServiceVersion("v1.0.0"),
//	    tracing.WithStdout(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
//
//	traced, err := tracing.NewRouter(router, tracer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, err := traced.Find(ctx, "GET", "/users/42", true)
//
// # Providers
//
// Four providers are supported:
//
//   - NoopProvider (default): No traces exported (safe default)
//   - StdoutProvider: Prints traces to stdout (for development/testing)
//   - OTLPProvider: Sends traces to an OTLP collector over gRPC (for production)
//   - OTLPHTTPProvider: Sends traces to an OTLP collector over HTTP
//
// Noop and stdout providers are ready after New. OTLP exporters need a
// network connection, so they are created by Start(ctx):
//
//	tracer := tracing.MustNew(tracing.WithOTLP("localhost:4317"))
//	if err := tracer.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Lookup Spans
//
// Each traced lookup produces one internal span named
// "<operation> <method> <path>" (for example "find GET /users/42") carrying
// the operation, method, path, and service attributes. Matched lookups
// record captured route parameters as 'router.param.*' attributes and finish
// with an Ok status; misses finish with an Error status. FindAll spans also
// record the match count as 'router.matches'.
//
// # Sampling
//
// Control which lookups are traced using sampling:
//
//	tracer := tracing.MustNew(
//	    tracing.WithServiceName("my-service"),
//	    tracing.WithSampleRate(0.1), // Trace 10% of lookups
//	)
//
// # Path Filtering
//
// Exclude specific paths from tracing:
//
//	tracer := tracing.MustNew(
//	    tracing.WithServiceName("my-service"),
//	    tracing.WithExcludePaths("/health", "/metrics", "/ready"),
//	)
//
// # Parameter Recording
//
// Captured route parameters may carry sensitive values. Record only a
// whitelist, blacklist specific names, or disable recording entirely:
//
//	tracer := tracing.MustNew(
//	    tracing.WithRecordParams("org", "repo"),
//	    tracing.WithExcludeParams("token"),
//	)
//
// # Custom Spans
//
// Create and manage spans around your own operations:
//
//	ctx, span := tracer.StartSpan(ctx, "rebuild-route-table")
//	defer tracer.FinishSpan(span, true)
//
//	tracer.SetSpanAttribute(span, "routes", 120)
//	tracer.AddSpanEvent(span, "table_swapped")
//
// # Context Propagation
//
// When the matcher runs inside a server, extract the caller's trace context
// so lookup spans join the incoming trace:
//
//	ctx := tracer.ExtractTraceContext(req.Context(), req.Header)
//	match, err := traced.Find(ctx, req.Method, req.URL.Path, true)
//
// # Thread Safety
//
// All methods are thread-safe. The Tracer is immutable after creation, with
// read-only maps and slices ensuring safe concurrent access without locks.
// Span operations use OpenTelemetry's thread-safe primitives.
//
// # Global State
//
// By default, this package does NOT set the global OpenTelemetry tracer provider.
// Use WithGlobalTracerProvider() option if you want to register the tracer provider
// as the global default via otel.SetTracerProvider().
//
// This allows multiple tracing configurations to coexist in the same process,
// and makes it easier to integrate the matcher into larger binaries that
// already manage their own global tracer provider.
//
// # Production and Development Helpers
//
// Pre-configured setups for common scenarios:
//
//	// Production configuration: OTLP with conservative sampling
//	tracer, err := tracing.NewProduction("my-service", "v1.2.3")
//
//	// Development configuration: Stdout with full sampling
//	tracer, err := tracing.NewDevelopment("my-service", "dev")
//
// # Custom Tracer Provider
//
// For advanced use cases, provide your own OpenTelemetry tracer provider:
//
//	tracer, err := tracing.New(
//	    tracing.WithServiceName("my-service"),
//	    tracing.WithTracerProvider(customProvider),
//	)
package tracing
