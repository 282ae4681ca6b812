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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/routematch"
)

func TestTracerDefaults(t *testing.T) {
	t.Parallel()

	tracer := MustNew()
	defer tracer.Shutdown(context.Background())

	assert.True(t, tracer.IsEnabled())
	assert.Equal(t, DefaultServiceName, tracer.ServiceName())
	assert.Equal(t, DefaultServiceVersion, tracer.ServiceVersion())
	assert.Equal(t, NoopProvider, tracer.GetProvider())
	assert.Equal(t, DefaultSampleRate, tracer.sampleRate)
	assert.NotNil(t, tracer.GetTracer())
	assert.NotNil(t, tracer.GetPropagator())
}

func TestTracerConfig(t *testing.T) {
	t.Parallel()

	tracer := MustNew(
		WithServiceName("test-service"),
		WithServiceVersion("v1.0.0"),
		WithStdout(),
	)
	defer tracer.Shutdown(context.Background())

	assert.Equal(t, "test-service", tracer.ServiceName())
	assert.Equal(t, "v1.0.0", tracer.ServiceVersion())
	assert.Equal(t, StdoutProvider, tracer.GetProvider())
	assert.NotNil(t, tracer.GetTracer())
}

func TestSampleRateClamping(t *testing.T) {
	t.Parallel()

	tracer := MustNew(WithServiceName("test"), WithSampleRate(1.5))
	assert.Equal(t, 1.0, tracer.sampleRate)
	tracer.Shutdown(context.Background())

	tracer = MustNew(WithServiceName("test"), WithSampleRate(-0.5))
	assert.Equal(t, 0.0, tracer.sampleRate)
	tracer.Shutdown(context.Background())

	tracer = MustNew(WithServiceName("test"), WithSampleRate(0.5))
	assert.Equal(t, 0.5, tracer.sampleRate)
	defer tracer.Shutdown(context.Background())
}

func TestSamplingThreshold(t *testing.T) {
	t.Parallel()

	full := MustNew(WithSampleRate(1.0))
	defer full.Shutdown(context.Background())
	assert.Equal(t, ^uint64(0), full.samplingThreshold)

	none := MustNew(WithSampleRate(0.0))
	defer none.Shutdown(context.Background())
	assert.Equal(t, uint64(0), none.samplingThreshold)

	half := MustNew(WithSampleRate(0.5))
	defer half.Shutdown(context.Background())
	assert.Equal(t, uint64(0.5*float64(^uint64(0))), half.samplingThreshold)
}

func TestShouldSample(t *testing.T) {
	t.Parallel()

	t.Run("FullRate", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithSampleRate(1.0))
		defer tracer.Shutdown(context.Background())

		for range 100 {
			assert.True(t, tracer.shouldSample())
		}
	})

	t.Run("ZeroRate", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithSampleRate(0.0))
		defer tracer.Shutdown(context.Background())

		for range 100 {
			assert.False(t, tracer.shouldSample())
		}
	})

	t.Run("PartialRateIsRoughlyProportional", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithSampleRate(0.5))
		defer tracer.Shutdown(context.Background())

		sampled := 0
		const total = 10000
		for range total {
			if tracer.shouldSample() {
				sampled++
			}
		}
		// The multiplicative hash is deterministic, not random, so the
		// tolerance can be tight.
		assert.InDelta(t, total/2, sampled, total/10)
	})
}

func TestNewReturnsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{
			name:    "EmptyServiceName",
			opts:    []Option{WithServiceName("")},
			wantErr: "service name cannot be empty",
		},
		{
			name:    "EmptyServiceVersion",
			opts:    []Option{WithServiceVersion("")},
			wantErr: "service version cannot be empty",
		},
		{
			name:    "ConflictingProviders",
			opts:    []Option{WithStdout(), WithNoop()},
			wantErr: "multiple providers configured",
		},
		{
			name:    "ConflictingOTLPProviders",
			opts:    []Option{WithOTLP("localhost:4317"), WithOTLPHTTP("http://localhost:4318")},
			wantErr: "multiple providers configured",
		},
		{
			name:    "InvalidExcludePattern",
			opts:    []Option{WithExcludePathPattern("[invalid")},
			wantErr: "invalid regex pattern for path exclusion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tracer, err := New(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, tracer)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew(WithStdout(), WithNoop())
	})
}

func TestUnsupportedProvider(t *testing.T) {
	t.Parallel()

	tracer := newDefaultTracer()
	tracer.provider = Provider("carrier-pigeon")

	err := tracer.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tracing provider")
}

func TestOTLPDefaultEndpoint(t *testing.T) {
	t.Parallel()

	var events []Event
	tracer, err := New(
		WithEventHandler(func(e Event) { events = append(events, e) }),
		WithOTLP(""),
	)
	require.NoError(t, err)
	defer tracer.Shutdown(context.Background())

	assert.Equal(t, "localhost:4317", tracer.otlpEndpoint)

	warned := false
	for _, e := range events {
		if e.Type == EventWarning && e.Message == "OTLP endpoint not specified, will use default" {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning about the defaulted OTLP endpoint")
}

func TestPathExclusion(t *testing.T) {
	t.Parallel()

	t.Run("ExactPaths", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithExcludePaths("/health", "/metrics"))
		defer tracer.Shutdown(context.Background())

		assert.True(t, tracer.ShouldExcludePath("/health"))
		assert.True(t, tracer.ShouldExcludePath("/metrics"))
		assert.False(t, tracer.ShouldExcludePath("/api"))
		assert.False(t, tracer.ShouldExcludePath("/health/live"))
	})

	t.Run("Prefixes", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithExcludePrefixes("/debug/", "/internal/"))
		defer tracer.Shutdown(context.Background())

		assert.True(t, tracer.ShouldExcludePath("/debug/pprof"))
		assert.True(t, tracer.ShouldExcludePath("/internal/state"))
		assert.False(t, tracer.ShouldExcludePath("/debug"))
		assert.False(t, tracer.ShouldExcludePath("/api/debug/"))
	})

	t.Run("Patterns", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithExcludePathPattern("^/(health|ready|live)$"))
		defer tracer.Shutdown(context.Background())

		assert.True(t, tracer.ShouldExcludePath("/health"))
		assert.True(t, tracer.ShouldExcludePath("/ready"))
		assert.True(t, tracer.ShouldExcludePath("/live"))
		assert.False(t, tracer.ShouldExcludePath("/healthz"))
	})
}

func TestExcludedPathsLimit(t *testing.T) {
	t.Parallel()

	paths := make([]string, MaxExcludedPaths+10)
	for i := range paths {
		paths[i] = fmt.Sprintf("/generated/%d", i)
	}

	var events []Event
	tracer := MustNew(
		WithEventHandler(func(e Event) { events = append(events, e) }),
		WithExcludePaths(paths...),
	)
	defer tracer.Shutdown(context.Background())

	assert.Len(t, tracer.excludePaths, MaxExcludedPaths)
	assert.True(t, tracer.ShouldExcludePath("/generated/0"))
	assert.False(t, tracer.ShouldExcludePath(fmt.Sprintf("/generated/%d", MaxExcludedPaths)))

	warned := false
	for _, e := range events {
		if e.Type == EventWarning && e.Message == "Excluded paths limit reached" {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning about the exclusion limit")
}

func TestShouldRecordParam(t *testing.T) {
	t.Parallel()

	t.Run("DefaultRecordsAll", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew()
		defer tracer.Shutdown(context.Background())

		assert.True(t, tracer.recordParams)
		assert.True(t, tracer.shouldRecordParam("id"))
		assert.True(t, tracer.shouldRecordParam("anything"))
	})

	t.Run("Blacklist", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithExcludeParams("token", "session"))
		defer tracer.Shutdown(context.Background())

		assert.False(t, tracer.shouldRecordParam("token"))
		assert.False(t, tracer.shouldRecordParam("session"))
		assert.True(t, tracer.shouldRecordParam("id"))
	})

	t.Run("Whitelist", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithRecordParams("org", "repo"))
		defer tracer.Shutdown(context.Background())

		assert.True(t, tracer.shouldRecordParam("org"))
		assert.True(t, tracer.shouldRecordParam("repo"))
		assert.False(t, tracer.shouldRecordParam("id"))
	})

	t.Run("BlacklistBeatsWhitelist", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(
			WithRecordParams("org", "token"),
			WithExcludeParams("token"),
		)
		defer tracer.Shutdown(context.Background())

		assert.True(t, tracer.shouldRecordParam("org"))
		assert.False(t, tracer.shouldRecordParam("token"))
	})

	t.Run("Disabled", func(t *testing.T) {
		t.Parallel()
		tracer := MustNew(WithDisableParams())
		defer tracer.Shutdown(context.Background())

		assert.False(t, tracer.recordParams)
	})
}

func TestSpanHelpers(t *testing.T) {
	t.Parallel()

	tracer := MustNew(
		WithServiceName("span-test"),
		WithSampleRate(1.0),
	)
	defer tracer.Shutdown(context.Background())

	ctx := context.Background()

	ctx, span := tracer.StartSpan(ctx, "test-span")
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	tracer.SetSpanAttribute(span, "string_attr", "value")
	tracer.SetSpanAttribute(span, "int_attr", 42)
	tracer.SetSpanAttribute(span, "int64_attr", int64(123))
	tracer.SetSpanAttribute(span, "float_attr", 3.14)
	tracer.SetSpanAttribute(span, "bool_attr", true)
	tracer.SetSpanAttribute(span, "other_attr", struct{ Name string }{"test"})
	tracer.AddSpanEvent(span, "an_event")

	tracer.FinishSpan(span, true)
}

func TestStartSpanCancelledContext(t *testing.T) {
	t.Parallel()

	tracer := MustNew(WithServiceName("cancel-test"))
	defer tracer.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gotCtx, span := tracer.StartSpan(ctx, "should-not-record")
	assert.Equal(t, ctx, gotCtx)
	assert.False(t, span.IsRecording())
}

func TestZeroValueTracerIsInert(t *testing.T) {
	t.Parallel()

	var tracer Tracer

	ctx, span := tracer.StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	assert.False(t, span.IsRecording())

	// All of these must be safe no-ops
	tracer.SetSpanAttribute(span, "key", "value")
	tracer.AddSpanEvent(span, "event")
	tracer.FinishSpan(span, true)
	tracer.FinishLookupSpan(span, true)
	assert.Equal(t, Provider(""), tracer.GetProvider())
	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestMultipleFinishSpan(t *testing.T) {
	t.Parallel()

	tracer := MustNew()
	defer tracer.Shutdown(context.Background())

	_, span := tracer.StartSpan(context.Background(), "test")

	// Should be safe to call multiple times
	tracer.FinishSpan(span, true)
	tracer.FinishSpan(span, true)
	tracer.FinishSpan(span, false)

	assert.NotNil(t, span)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("EmptyContext", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", TraceID(context.Background()))
		assert.Equal(t, "", SpanID(context.Background()))

		// These should be no-ops
		SetSpanAttributeFromContext(context.Background(), "key", "value")
		AddSpanEventFromContext(context.Background(), "event")
	})

	t.Run("ActiveSpan", func(t *testing.T) {
		t.Parallel()

		tracer := MustNew(WithServiceName("ctx-test"))
		defer tracer.Shutdown(context.Background())

		ctx, span := tracer.StartSpan(context.Background(), "parent")
		defer tracer.FinishSpan(span, true)

		assert.NotEmpty(t, TraceID(ctx))
		assert.NotEmpty(t, SpanID(ctx))

		SetSpanAttributeFromContext(ctx, "key", "value")
		AddSpanEventFromContext(ctx, "event")
	})
}

func TestStartIdempotent(t *testing.T) {
	t.Parallel()

	tracer := MustNew(WithServiceName("start-test"))
	defer tracer.Shutdown(context.Background())

	require.NoError(t, tracer.Start(context.Background()))
	require.NoError(t, tracer.Start(context.Background()))
}

func TestShutdownIdempotent(t *testing.T) {
	t.Parallel()

	tracer := MustNew(WithServiceName("shutdown-test"), WithStdout())

	require.NoError(t, tracer.Shutdown(context.Background()))
	require.NoError(t, tracer.Shutdown(context.Background()))
	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestProductionHelper(t *testing.T) {
	t.Parallel()

	tracer, err := NewProduction("prod-service", "v2.0.0")
	require.NoError(t, err)
	require.NotNil(t, tracer)
	defer tracer.Shutdown(context.Background())

	assert.Equal(t, "prod-service", tracer.ServiceName())
	assert.Equal(t, "v2.0.0", tracer.ServiceVersion())
	assert.Equal(t, 0.1, tracer.sampleRate)
	assert.False(t, tracer.recordParams)
	assert.True(t, tracer.ShouldExcludePath("/health"))
	assert.True(t, tracer.ShouldExcludePath("/metrics"))
	assert.True(t, tracer.ShouldExcludePath("/ready"))
	assert.Equal(t, OTLPProvider, tracer.GetProvider())
}

func TestDevelopmentHelper(t *testing.T) {
	t.Parallel()

	tracer, err := NewDevelopment("dev-service", "dev")
	require.NoError(t, err)
	require.NotNil(t, tracer)
	defer tracer.Shutdown(context.Background())

	assert.Equal(t, "dev-service", tracer.ServiceName())
	assert.Equal(t, "dev", tracer.ServiceVersion())
	assert.Equal(t, 1.0, tracer.sampleRate)
	assert.True(t, tracer.recordParams)
	assert.True(t, tracer.ShouldExcludePath("/health"))
	assert.False(t, tracer.ShouldExcludePath("/metrics")) // Not excluded in dev
	assert.Equal(t, StdoutProvider, tracer.GetProvider())
}

func TestDefaultEventHandler(t *testing.T) {
	t.Parallel()

	t.Run("NilLogger", func(t *testing.T) {
		t.Parallel()

		handler := DefaultEventHandler(nil)
		assert.NotPanics(t, func() {
			handler(Event{Type: EventError, Message: "dropped"})
		})
	})

	t.Run("EventLevels", func(t *testing.T) {
		t.Parallel()
		tracer := newDefaultTracer()

		var events []Event
		tracer.eventHandler = func(e Event) { events = append(events, e) }

		tracer.emitError("e")
		tracer.emitWarning("w")
		tracer.emitInfo("i")
		tracer.emitDebug("d")

		require.Len(t, events, 4)
		assert.Equal(t, EventError, events[0].Type)
		assert.Equal(t, EventWarning, events[1].Type)
		assert.Equal(t, EventInfo, events[2].Type)
		assert.Equal(t, EventDebug, events[3].Type)
	})
}

func TestStartLookupSpanSkipsWithoutTouchingParent(t *testing.T) {
	t.Parallel()

	tracer := MustNew(WithServiceName("skip-test"), WithSampleRate(0.0))
	defer tracer.Shutdown(context.Background())

	// Give the context an active, recording parent span
	parentTracer := MustNew(WithServiceName("parent"))
	defer parentTracer.Shutdown(context.Background())
	ctx, parent := parentTracer.StartSpan(context.Background(), "parent")
	require.True(t, parent.IsRecording())

	_, span := tracer.StartLookupSpan(ctx, routematch.LookupFind, "GET", "/users/42")
	assert.False(t, span.IsRecording())

	// Finishing the skipped lookup span must not end the parent
	tracer.FinishLookupSpan(span, true)
	assert.True(t, parent.IsRecording())

	parentTracer.FinishSpan(parent, true)
}
