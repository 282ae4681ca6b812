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
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"rivaas.dev/routematch"
)

// EventType classifies internal operational events from the tracing package.
type EventType int

const (
	// EventError indicates an error event (e.g., failed to export spans).
	EventError EventType = iota
	// EventWarning indicates a warning event (e.g., deprecated configuration).
	EventWarning
	// EventInfo indicates an informational event (e.g., tracing initialized).
	EventInfo
	// EventDebug indicates a debug event (e.g., detailed operation logs).
	EventDebug
)

// Event represents an internal operational event from the tracing package.
// Events are used to report errors, warnings, and informational messages
// about the tracing system's operation.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events from the tracing package.
// Implementations can log events, send them to monitoring systems, or take
// custom actions based on event type.
//
// Example custom handler:
//
//	tracing.WithEventHandler(func(e tracing.Event) {
//	    if e.Type == tracing.EventError {
//	        sentry.CaptureMessage(e.Message)
//	    }
//	    slog.Default().Info(e.Message, e.Args...)
//	})
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the provided slog.Logger.
// This is the default implementation used by WithLogger.
//
// If logger is nil, returns a no-op handler that discards all events.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {} // no-op
	}
	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

const (
	// DefaultServiceName is the default service name used for tracing when none is provided.
	DefaultServiceName = "rivaas-service"

	// DefaultServiceVersion is the default service version when none is provided.
	DefaultServiceVersion = "1.0.0"

	// DefaultSampleRate is the default sampling rate (100% of lookups).
	DefaultSampleRate = 1.0
)

// tracerName is the instrumentation scope for spans created by this package.
const tracerName = "rivaas.dev/routematch/tracing"

// Attribute key prefix for captured route parameters.
const attrPrefixParam = "router.param."

// Sampling multiplier (Knuth's multiplicative hash constant)
// Used for deterministic sampling with uniform distribution.
// The sampling counter wraps around at uint64 max (2^64-1), which ensures
// uniform distribution continues even after overflow (which would take ~584 billion
// years at 1 lookup per nanosecond, so overflow is not a practical concern).
const samplingMultiplier = 2654435761

// Provider represents the available tracing providers.
type Provider string

const (
	// NoopProvider is a no-op provider that doesn't export anything (default).
	NoopProvider Provider = "noop"

	// StdoutProvider exports traces to stdout (development/testing).
	StdoutProvider Provider = "stdout"

	// OTLPProvider exports traces via OTLP gRPC protocol.
	OTLPProvider Provider = "otlp"

	// OTLPHTTPProvider exports traces via OTLP HTTP protocol.
	OTLPHTTPProvider Provider = "otlp-http"
)

// MaxExcludedPaths caps how many exact paths WithExcludePaths will register.
const MaxExcludedPaths = 1000

// Tracer holds the tracing configuration and the OpenTelemetry plumbing
// behind it. Create one with New or MustNew, hand it to NewRouter to trace
// lookups, and call Shutdown before the process exits.
//
// A Tracer is immutable after creation: its maps and slices are read-only,
// so all methods are safe for concurrent use without locks. The only mutable
// state is the atomic sampling counter and the lifecycle flags.
type Tracer struct {
	enabled        bool
	serviceName    string
	serviceVersion string

	provider     Provider
	providerSet  bool
	otlpEndpoint string
	otlpInsecure bool

	tracerProvider       trace.TracerProvider
	sdkProvider          *sdktrace.TracerProvider
	customTracerProvider bool
	registerGlobal       bool

	tracer     trace.Tracer
	propagator propagation.TextMapPropagator

	sampleRate        float64
	samplingThreshold uint64
	samplingCounter   atomic.Uint64

	excludePaths    map[string]bool
	excludePrefixes []string
	excludePatterns []*regexp.Regexp

	recordParams     bool
	recordParamsList []string
	excludeParams    map[string]bool

	spanStartHook  SpanStartHook
	spanFinishHook SpanFinishHook

	eventHandler EventHandler

	spanNamePool sync.Pool

	validationErrors []error

	started      atomic.Bool
	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a new Tracer with the given options.
//
// Noop and stdout providers are fully initialized by New. OTLP providers
// need a network connection, so their exporter is created by Start(ctx);
// until Start is called, span methods return non-recording spans.
//
// Example:
//
//	tracer, err := tracing.New(
//	    tracing.WithServiceName("my-api"),
//	    tracing.WithStdout(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
func New(opts ...Option) (*Tracer, error) {
	t := newDefaultTracer()

	// Apply options
	for _, opt := range opts {
		opt(t)
	}

	// Validate configuration
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize the provider. A user-supplied tracer provider takes over
	// regardless of which provider option was set; OTLP providers wait for
	// Start(ctx) because exporter creation needs a context.
	switch {
	case t.customTracerProvider:
		t.initCustomProvider()
	case t.provider == NoopProvider, t.provider == StdoutProvider:
		if err := t.initializeProvider(); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	return t, nil
}

// newDefaultTracer creates a new Tracer with default values.
func newDefaultTracer() *Tracer {
	t := &Tracer{
		enabled:        true,
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultServiceVersion,
		sampleRate:     DefaultSampleRate,
		provider:       NoopProvider,
		propagator:     otel.GetTextMapPropagator(),
		excludePaths:   make(map[string]bool),
		excludeParams:  make(map[string]bool),
		recordParams:   true,
	}

	// Reusable builders for lookup span names
	t.spanNamePool = sync.Pool{
		New: func() interface{} {
			return &strings.Builder{}
		},
	}

	return t
}

// MustNew creates a new Tracer with the given options.
// It panics if the configuration is invalid or the provider fails to
// initialize. Use this for convenience when you want to panic on
// initialization errors.
//
// Example:
//
//	tracer := tracing.MustNew(
//	    tracing.WithServiceName("my-api"),
//	    tracing.WithStdout(),
//	)
//	defer tracer.Shutdown(context.Background())
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize tracing: %v", err))
	}
	return t
}

// validate checks that the configuration is valid.
func (t *Tracer) validate() error {
	// Check for validation errors collected during option application
	if len(t.validationErrors) > 0 {
		var errMsgs []string
		for _, err := range t.validationErrors {
			errMsgs = append(errMsgs, err.Error())
		}
		return fmt.Errorf("validation errors: %s", strings.Join(errMsgs, "; "))
	}

	// Validate service name
	if t.serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}

	// Validate service version
	if t.serviceVersion == "" {
		return fmt.Errorf("service version cannot be empty")
	}

	// Validate sample rate
	if t.sampleRate < 0.0 || t.sampleRate > 1.0 {
		return fmt.Errorf("sample rate must be between 0.0 and 1.0, got %f", t.sampleRate)
	}

	// Precompute sampling threshold for integer-based sampling
	if t.sampleRate > 0.0 && t.sampleRate < 1.0 {
		// Convert sample rate to threshold: 0.5 -> 0x7FFFFFFFFFFFFFFF
		t.samplingThreshold = uint64(t.sampleRate * float64(^uint64(0)))
	} else if t.sampleRate == 1.0 {
		// 100% sampling - set threshold to max so all samples pass
		t.samplingThreshold = ^uint64(0)
	} else {
		// 0% sampling - set threshold to 0 so no samples pass
		t.samplingThreshold = 0
	}

	// Validate provider-specific settings
	switch t.provider {
	case NoopProvider, StdoutProvider:
		// No specific validation needed
	case OTLPProvider:
		if t.otlpEndpoint == "" {
			t.emitWarning("OTLP endpoint not specified, will use default", "default", "localhost:4317")
			t.otlpEndpoint = "localhost:4317"
		}
	case OTLPHTTPProvider:
		if t.otlpEndpoint == "" {
			t.emitWarning("OTLP endpoint not specified, will use default", "default", "http://localhost:4318")
			t.otlpEndpoint = "http://localhost:4318"
		}
	default:
		return fmt.Errorf("unsupported tracing provider: %s", t.provider)
	}

	return nil
}

// Start initializes the parts of the Tracer that need a context.
//
// For OTLP providers this creates the exporter and connects it to the
// collector; noop and stdout providers are already initialized by New,
// so Start is a no-op for them. Start is idempotent: concurrent and
// repeated calls after a success do nothing. If exporter creation fails
// the Tracer is left unstarted so Start can be retried.
//
// Example:
//
//	tracer := tracing.MustNew(tracing.WithOTLP("localhost:4317"))
//	if err := tracer.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
func (t *Tracer) Start(ctx context.Context) error {
	if !t.enabled {
		return nil
	}

	// Idempotent: only start once
	if !t.started.CompareAndSwap(false, true) {
		return nil // Already started
	}

	if t.customTracerProvider || (t.provider != OTLPProvider && t.provider != OTLPHTTPProvider) {
		return nil // Nothing left to initialize
	}

	if err := t.initializeProviderWithContext(ctx); err != nil {
		t.started.Store(false)
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return nil
}

// IsEnabled returns true if tracing is enabled.
func (t *Tracer) IsEnabled() bool {
	return t.enabled
}

// ServiceName returns the service name.
func (t *Tracer) ServiceName() string {
	return t.serviceName
}

// ServiceVersion returns the service version.
func (t *Tracer) ServiceVersion() string {
	return t.serviceVersion
}

// GetTracer returns the OpenTelemetry tracer.
func (t *Tracer) GetTracer() trace.Tracer {
	return t.tracer
}

// GetPropagator returns the OpenTelemetry propagator.
func (t *Tracer) GetPropagator() propagation.TextMapPropagator {
	return t.propagator
}

// GetProvider returns the current tracing provider.
func (t *Tracer) GetProvider() Provider {
	if !t.enabled {
		return ""
	}
	return t.provider
}

// ShouldExcludePath returns true if lookups for the given path should not be
// traced. Checks exact path matches, prefixes, and regex patterns.
// Safe for concurrent access as the exclusion sets are read-only after
// Tracer creation.
func (t *Tracer) ShouldExcludePath(path string) bool {
	// Check exact path matches first (O(1) lookup)
	if t.excludePaths[path] {
		return true
	}

	// Check prefixes
	for _, prefix := range t.excludePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	// Check regex patterns
	for _, pattern := range t.excludePatterns {
		if pattern.MatchString(path) {
			return true
		}
	}

	return false
}

// Shutdown gracefully shuts down the tracing system, flushing any pending spans.
// This should be called before the application exits to ensure all spans are exported.
// It shuts down the tracer provider if one was initialized; a provider supplied
// via WithTracerProvider stays up, the caller owns its lifecycle.
// This method is idempotent; calling it multiple times is safe and will only
// perform shutdown once. All concurrent calls wait for the same shutdown.
//
// Example:
//
//	tracer := tracing.MustNew(tracing.WithStdout())
//	defer func() {
//	    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	    defer cancel()
//	    if err := tracer.Shutdown(ctx); err != nil {
//	        log.Printf("Error shutting down tracer: %v", err)
//	    }
//	}()
func (t *Tracer) Shutdown(ctx context.Context) error {
	if !t.enabled {
		return nil
	}

	t.shutdownOnce.Do(func() {
		if t.customTracerProvider {
			t.emitDebug("Skipping shutdown of custom tracer provider (managed by user)")
			return
		}
		if t.sdkProvider == nil {
			return
		}
		t.emitDebug("Shutting down tracer provider")
		if err := t.sdkProvider.Shutdown(ctx); err != nil {
			t.emitError("Error shutting down tracer provider", "error", err)
			t.shutdownErr = fmt.Errorf("tracer provider shutdown: %w", err)
			return
		}
		t.emitDebug("Tracer provider shut down successfully")
	})

	return t.shutdownErr
}

// emitError emits an error event if an event handler is configured.
func (t *Tracer) emitError(msg string, args ...any) {
	if t.eventHandler != nil {
		t.eventHandler(Event{Type: EventError, Message: msg, Args: args})
	}
}

// emitWarning emits a warning event if an event handler is configured.
func (t *Tracer) emitWarning(msg string, args ...any) {
	if t.eventHandler != nil {
		t.eventHandler(Event{Type: EventWarning, Message: msg, Args: args})
	}
}

// emitInfo emits an info event if an event handler is configured.
func (t *Tracer) emitInfo(msg string, args ...any) {
	if t.eventHandler != nil {
		t.eventHandler(Event{Type: EventInfo, Message: msg, Args: args})
	}
}

// emitDebug emits a debug event if an event handler is configured.
func (t *Tracer) emitDebug(msg string, args ...any) {
	if t.eventHandler != nil {
		t.eventHandler(Event{Type: EventDebug, Message: msg, Args: args})
	}
}

// buildAttribute creates an OpenTelemetry attribute from a key-value pair.
// Supports string, int, int64, float64, and bool types natively.
// Other types are converted to string using fmt.Sprintf.
//
// For cases where type is known at compile time, call OpenTelemetry functions
// directly (attribute.String(), attribute.Int(), etc.). This function is for
// convenience when the type is not known at compile time or when used in public APIs.
func buildAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

// StartSpan starts a new span with the given name and options.
// Returns a new context with the span attached and the span itself.
//
// If tracing is disabled or the provider is not initialized yet, returns the
// original context and a non-recording span. The returned span should always
// be ended, even if tracing is disabled.
//
// If the context is already cancelled, returns immediately without creating a span.
//
// Example:
//
//	ctx, span := tracer.StartSpan(ctx, "rebuild-route-table")
//	defer span.End()
func (t *Tracer) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !t.enabled || t.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	// Check if context is already cancelled
	select {
	case <-ctx.Done():
		return ctx, trace.SpanFromContext(ctx)
	default:
	}

	return t.tracer.Start(ctx, name, opts...)
}

// FinishSpan completes the span, marking it as successful or failed.
//
// This method is safe to call multiple times; subsequent calls are no-ops.
// Always safe to call even if tracing is disabled, span is nil, or span is
// not recording.
//
// Example:
//
//	defer tracer.FinishSpan(span, true)
func (t *Tracer) FinishSpan(span trace.Span, ok bool) {
	if !t.enabled || span == nil || !span.IsRecording() {
		return
	}

	if ok {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, "operation failed")
	}

	span.End()
}

// SetSpanAttribute adds an attribute to the span with type-safe handling.
//
// Supported types with native OpenTelemetry handling:
//   - string: attribute.String
//   - int: attribute.Int
//   - int64: attribute.Int64
//   - float64: attribute.Float64
//   - bool: attribute.Bool
//
// All other types are converted to string using fmt.Sprintf("%v", value).
// This is a no-op if tracing is disabled, span is nil, or span is not recording.
//
// Example:
//
//	tracer.SetSpanAttribute(span, "route.count", 42)
//	tracer.SetSpanAttribute(span, "route.static", true)
func (t *Tracer) SetSpanAttribute(span trace.Span, key string, value interface{}) {
	if !t.enabled || span == nil || !span.IsRecording() {
		return
	}
	span.SetAttributes(buildAttribute(key, value))
}

// AddSpanEvent adds an event to the span with optional attributes.
// Events represent important moments in a span's lifetime.
//
// This is a no-op if tracing is disabled, span is nil, or span is not recording.
//
// Example:
//
//	tracer.AddSpanEvent(span, "route_table_rebuilt", attribute.Int("routes", 120))
func (t *Tracer) AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	if !t.enabled || span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// ExtractTraceContext extracts trace context from HTTP request headers.
// Returns a new context with the extracted trace information, so lookup
// spans join the caller's trace when the matcher runs inside a server.
//
// If no trace context is found in headers, returns the original context.
// Uses W3C Trace Context format by default.
//
// Example:
//
//	ctx := tracer.ExtractTraceContext(req.Context(), req.Header)
//	match, err := traced.Find(ctx, req.Method, req.URL.Path, true)
func (t *Tracer) ExtractTraceContext(ctx context.Context, headers http.Header) context.Context {
	if !t.enabled || t.propagator == nil {
		return ctx
	}
	return t.propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// InjectTraceContext injects trace context into HTTP headers.
// This allows trace context to propagate across service boundaries.
//
// Uses W3C Trace Context format by default.
// This is a no-op if tracing is disabled.
//
// Example:
//
//	tracer.InjectTraceContext(ctx, outboundReq.Header)
func (t *Tracer) InjectTraceContext(ctx context.Context, headers http.Header) {
	if !t.enabled || t.propagator == nil {
		return
	}
	t.propagator.Inject(ctx, propagation.HeaderCarrier(headers))
}

// StartLookupSpan starts a span for a single route lookup. The span is named
// "<op> <method> <path>" (e.g. "find GET /users/42") and carries the
// operation, method, path, and service attributes. Router uses this for
// every traced Find and FindAll; call it directly when wrapping a matcher
// by hand.
//
// Returns the original context and a non-recording span when tracing is
// disabled, the provider is not initialized, the context is cancelled, or
// the lookup lost the sampling draw. The non-recording span is detached
// from the context: FinishLookupSpan on it never touches the caller's
// active span.
func (t *Tracer) StartLookupSpan(ctx context.Context, op routematch.LookupOp, method, path string) (context.Context, trace.Span) {
	if !t.enabled || t.tracer == nil {
		return ctx, nonRecordingSpan()
	}

	// Check if context is already cancelled before proceeding
	select {
	case <-ctx.Done():
		t.emitDebug("Context cancelled before span creation", "path", path, "method", method)
		return ctx, nonRecordingSpan()
	default:
	}

	if !t.shouldSample() {
		return ctx, nonRecordingSpan()
	}

	// Build span name from operation, method, and path
	sb := t.spanNamePool.Get().(*strings.Builder)
	sb.Reset()
	sb.WriteString(string(op))
	sb.WriteByte(' ')
	sb.WriteString(method)
	sb.WriteByte(' ')
	sb.WriteString(path)
	spanName := sb.String()
	t.spanNamePool.Put(sb)

	// A lookup is in-process work, not a remote call
	ctx, span := t.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindInternal))

	span.SetAttributes(
		attribute.String("router.operation", string(op)),
		attribute.String("router.method", method),
		attribute.String("router.path", path),
		attribute.String("service.name", t.serviceName),
		attribute.String("service.version", t.serviceVersion),
	)

	// Invoke span start hook if configured
	if t.spanStartHook != nil {
		t.spanStartHook(ctx, span, method, path)
	}

	return ctx, span
}

// FinishLookupSpan completes a lookup span. Matched lookups get codes.Ok;
// misses get codes.Error, mirroring how a missed route becomes a 404 at the
// server above the matcher.
//
// Safe to call even if tracing is disabled, span is nil, or span is not recording.
func (t *Tracer) FinishLookupSpan(span trace.Span, matched bool) {
	if !t.enabled || span == nil || !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Bool("router.matched", matched))

	if matched {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, "no matching route")
	}

	// Invoke span finish hook if configured (before ending span)
	if t.spanFinishHook != nil {
		t.spanFinishHook(span, matched)
	}

	span.End()
}

// nonRecordingSpan returns a span that records nothing. Skipped lookups get
// this instead of the span already in the context; ending it must not end
// the caller's active span.
func nonRecordingSpan() trace.Span {
	return trace.SpanFromContext(context.Background())
}

// shouldSample makes the sampling decision for one lookup using integer
// arithmetic. The atomic counter with a multiplicative hash gives a
// deterministic, uniformly distributed decision without a per-lookup
// random draw.
func (t *Tracer) shouldSample() bool {
	if t.sampleRate >= 1.0 {
		return true
	}
	if t.sampleRate == 0.0 {
		return false
	}
	counter := t.samplingCounter.Add(1)
	hash := counter * samplingMultiplier
	return hash <= t.samplingThreshold
}

// shouldRecordParam determines if a captured route parameter should be
// recorded based on the whitelist (recordParamsList) and blacklist
// (excludeParams) configuration.
//
// Logic:
//   - If parameter is in excludeParams (blacklist), return false
//   - If recordParamsList is set (whitelist), return true only if param is in the list
//   - Otherwise, return true (default: record all params)
func (t *Tracer) shouldRecordParam(param string) bool {
	// Check blacklist first - highest priority
	if t.excludeParams[param] {
		return false
	}

	// If whitelist is configured, param must be in the list
	if t.recordParamsList != nil {
		for _, p := range t.recordParamsList {
			if p == param {
				return true
			}
		}
		return false
	}

	// No whitelist configured - record all params (except blacklisted)
	return true
}

// Context helpers for working with trace context

// TraceID returns the current trace ID from the active span in the context.
// Returns an empty string if no active span or span context is invalid.
//
// Example:
//
//	traceID := tracing.TraceID(ctx)
//	log.Printf("Processing lookup with trace ID: %s", traceID)
func TraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// SpanID returns the current span ID from the active span in the context.
// Returns an empty string if no active span or span context is invalid.
//
// Example:
//
//	spanID := tracing.SpanID(ctx)
//	log.Printf("Current span ID: %s", spanID)
func SpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}

// SetSpanAttributeFromContext adds an attribute to the current span from context.
// This is a no-op if tracing is not active.
// Supports string, int, int64, float64, and bool types natively.
func SetSpanAttributeFromContext(ctx context.Context, key string, value interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(buildAttribute(key, value))
}

// AddSpanEventFromContext adds an event to the current span from context with optional attributes.
// This is a no-op if tracing is not active.
func AddSpanEventFromContext(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}
