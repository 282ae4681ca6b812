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

// NewProduction returns a Tracer configured for production use: OTLP gRPC
// export to the default collector endpoint (localhost:4317), 10% sampling,
// parameter recording disabled, and the usual operational endpoints
// (/health, /metrics, /ready) excluded.
//
// Call Start(ctx) to create the exporter and connect it to the collector.
// For a custom endpoint or different sampling, use New with WithOTLP and
// WithSampleRate directly.
//
// Example:
//
//	tracer, err := tracing.NewProduction("my-service", "v1.2.3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tracer.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
func NewProduction(serviceName, serviceVersion string) (*Tracer, error) {
	return New(
		WithServiceName(serviceName),
		WithServiceVersion(serviceVersion),
		WithOTLP(""),
		WithSampleRate(0.1),
		WithDisableParams(),
		WithExcludePaths("/health", "/metrics", "/ready"),
	)
}

// NewDevelopment returns a Tracer configured for local development: pretty
// printed stdout export, full sampling, parameter recording on, and only
// /health excluded.
//
// Example:
//
//	tracer, err := tracing.NewDevelopment("my-service", "dev")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
func NewDevelopment(serviceName, serviceVersion string) (*Tracer, error) {
	return New(
		WithServiceName(serviceName),
		WithServiceVersion(serviceVersion),
		WithStdout(),
		WithSampleRate(1.0),
		WithExcludePaths("/health"),
	)
}
