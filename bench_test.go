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
	"net/http"
	"testing"
)

func benchRouter(b *testing.B) *Router[string] {
	b.Helper()
	r := New[string]()

	routes := []string{
		"/",
		"/users",
		"/users/:id",
		"/users/:id/posts",
		"/users/:id/posts/:post_id",
		"/users/:id/posts/:post_id/comments",
		"/users/:id/posts/:post_id/comments/:comment_id",
		"/posts",
		"/posts/:id",
		"/posts/:id/comments",
		"/search/:query?",
		"/assets/**:filepath",
		"/api/v1/users",
		"/api/v1/users/:id",
		"/api/v1/posts",
		"/api/v1/posts/:id",
		"/api/v2/users",
		"/api/v2/posts",
		"/admin/users",
		"/admin/posts",
		"/admin/settings",
	}

	for _, route := range routes {
		if err := r.Add(http.MethodGet, route, route); err != nil {
			b.Fatal(err)
		}
	}
	return r
}

func BenchmarkFind(b *testing.B) {
	r := benchRouter(b)

	benches := []struct {
		name    string
		path    string
		capture bool
	}{
		{"static_root", "/", false},
		{"static", "/api/v1/users", false},
		{"static_deep", "/admin/settings", false},
		{"param", "/users/123", false},
		{"param_capture", "/users/123", true},
		{"param_deep", "/users/123/posts/456/comments/789", false},
		{"param_deep_capture", "/users/123/posts/456/comments/789", true},
		{"optional_absent", "/search", true},
		{"catch_all", "/assets/css/site.css", true},
		{"miss", "/users/123/unknown", false},
	}

	for _, bb := range benches {
		b.Run(bb.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = r.Find(http.MethodGet, bb.path, bb.capture)
			}
		})
	}
}

func BenchmarkFindAll(b *testing.B) {
	r := New[string]()
	for _, route := range []string{"/api/users", "/api/:resource", "/api/**:rest", "/**:all"} {
		if err := r.Add(http.MethodGet, route, route); err != nil {
			b.Fatal(err)
		}
	}

	benches := []struct {
		name string
		path string
	}{
		{"four_matches", "/api/users"},
		{"two_matches", "/api/users/7"},
		{"one_match", "/other"},
	}

	for _, bb := range benches {
		b.Run(bb.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = r.FindAll(http.MethodGet, bb.path, true)
			}
		})
	}
}

func BenchmarkAdd(b *testing.B) {
	for _, size := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("routes_%d", size), func(b *testing.B) {
			patterns := make([]string, size)
			for i := range patterns {
				patterns[i] = fmt.Sprintf("/v%d/resource%d/:id", i%5, i)
			}

			b.ReportAllocs()
			for b.Loop() {
				r := New[int]()
				for i, pattern := range patterns {
					if err := r.Add(http.MethodGet, pattern, i); err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}

func BenchmarkFindParallel(b *testing.B) {
	r := benchRouter(b)

	testPaths := []string{
		"/",
		"/users",
		"/users/123",
		"/users/123/posts",
		"/users/123/posts/456",
		"/posts/123/comments",
		"/search/golang",
		"/assets/js/app.js",
		"/api/v1/users/123",
		"/admin/settings",
	}

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for _, path := range testPaths {
				_, _ = r.Find(http.MethodGet, path, true)
			}
		}
	})
}
