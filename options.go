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
	"io"
	"log/slog"
)

// noopLogger discards everything until WithLogger installs a real logger.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// settings holds the configuration shared by every Router instantiation.
// Keeping it separate from Router lets Option stay non-generic, so the same
// option values work for a Router[string] and a Router[http.Handler] alike.
type settings struct {
	logger           *slog.Logger
	observer         Observer
	normalizeMethods bool
}

func defaultSettings() settings {
	return settings{logger: noopLogger}
}

// Option configures a [Router]. Options are applied once by [New]; the
// resulting configuration is read-only for the router's lifetime, so no
// locking is needed around it.
type Option func(*settings)

// WithLogger sets the logger for route table mutations. Additions and
// removals are logged at Debug level; the lookup hot path never logs.
// A nil logger is ignored and the default no-op logger stays in place.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	r := routematch.New[string](routematch.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver installs an [Observer] that is notified synchronously about
// mutations and lookups. Use it to feed metrics or tracing without coupling
// the matcher to an instrumentation stack.
//
// Example with the metrics package:
//
//	recorder, err := metrics.New(metrics.WithServiceName("api"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := routematch.New[string](routematch.WithObserver(recorder))
func WithObserver(observer Observer) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// WithMethodNormalization makes the router uppercase methods on every call,
// so Add("get", ...) and Find("GET", ...) meet in the same table. Off by
// default: methods compare case-sensitively, as on the wire.
//
// Example:
//
//	r := routematch.New[string](routematch.WithMethodNormalization())
//	_ = r.Add("get", "/users", "list")
//	m, _ := r.Find(http.MethodGet, "/users", false) // matches
func WithMethodNormalization() Option {
	return func(s *settings) {
		s.normalizeMethods = true
	}
}
