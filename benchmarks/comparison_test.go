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

package benchmarks

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/labstack/echo/v4"

	"rivaas.dev/routematch"
)

// Router Comparison Benchmarks
//
// Comparative benchmarks between routematch and the routing trees of popular
// Go web frameworks, on a GitHub-API-shaped route table. routematch is a
// matcher, not a server, so two variants are measured: the raw Find call, and
// Find plus handler dispatch through net/http, which is the fair comparison
// against frameworks that always serve.
//
// To run:
//   go test -bench=. ./benchmarks
//
// The gin, echo and chi dependencies are confined to this package.

// githubAPI is a representative slice of the GitHub v3 API surface, written
// in routematch/gin/echo syntax (:name parameters). Parameter names are kept
// consistent per position; gin rejects conflicting names on shared prefixes.
var githubAPI = []string{
	// Static
	"/authorizations",
	"/events",
	"/feeds",
	"/notifications",
	"/gists",
	"/issues",
	"/emojis",
	"/meta",
	"/rate_limit",
	"/repositories",
	"/search/repositories",
	"/search/code",
	"/search/issues",
	"/search/users",
	"/user",
	"/users",
	"/user/emails",
	"/user/followers",
	"/user/following",
	"/user/issues",
	"/user/keys",
	"/user/orgs",
	"/user/starred",
	"/user/subscriptions",
	"/user/teams",

	// One parameter
	"/authorizations/:id",
	"/notifications/threads/:id",
	"/gists/:id",
	"/orgs/:org",
	"/teams/:id",
	"/users/:user",
	"/user/keys/:id",

	// Two parameters
	"/orgs/:org/events",
	"/orgs/:org/issues",
	"/orgs/:org/members",
	"/orgs/:org/members/:user",
	"/orgs/:org/public_members",
	"/orgs/:org/public_members/:user",
	"/orgs/:org/repos",
	"/teams/:id/members",
	"/teams/:id/members/:user",
	"/users/:user/events",
	"/users/:user/followers",
	"/users/:user/following",
	"/users/:user/following/:target",
	"/users/:user/gists",
	"/users/:user/keys",
	"/users/:user/orgs",
	"/users/:user/received_events",
	"/users/:user/repos",
	"/users/:user/starred",
	"/users/:user/subscriptions",
	"/user/starred/:owner/:repo",
	"/user/subscriptions/:owner/:repo",

	// Three and more
	"/repos/:owner/:repo/events",
	"/repos/:owner/:repo/notifications",
	"/repos/:owner/:repo/stargazers",
	"/repos/:owner/:repo/subscribers",
	"/repos/:owner/:repo/subscription",
	"/repos/:owner/:repo/git/refs",
	"/repos/:owner/:repo/git/blobs/:sha",
	"/repos/:owner/:repo/git/commits/:sha",
	"/repos/:owner/:repo/git/tags/:sha",
	"/repos/:owner/:repo/git/trees/:sha",
	"/repos/:owner/:repo/issues",
	"/repos/:owner/:repo/issues/:number",
	"/repos/:owner/:repo/issues/:number/comments",
	"/repos/:owner/:repo/issues/:number/labels",
	"/repos/:owner/:repo/assignees",
	"/repos/:owner/:repo/assignees/:assignee",
	"/repos/:owner/:repo/labels",
	"/repos/:owner/:repo/labels/:name",
	"/repos/:owner/:repo/milestones",
	"/repos/:owner/:repo/milestones/:number",
	"/repos/:owner/:repo/pulls",
	"/repos/:owner/:repo/pulls/:number",
	"/repos/:owner/:repo/readme",
	"/repos/:owner/:repo/tags",
	"/repos/:owner/:repo/branches",
	"/repos/:owner/:repo/branches/:branch",
	"/repos/:owner/:repo/collaborators",
	"/repos/:owner/:repo/collaborators/:user",
	"/repos/:owner/:repo/comments",
	"/repos/:owner/:repo/commits",
	"/repos/:owner/:repo/commits/:sha",
	"/repos/:owner/:repo/keys",
	"/teams/:id/repos/:owner/:repo",
}

// lookupPaths mixes static hits, shallow and deep parameter hits the way
// real traffic does.
var lookupPaths = []string{
	"/user",
	"/user/starred",
	"/search/repositories",
	"/users/octocat",
	"/users/octocat/repos",
	"/orgs/golang/members/rsc",
	"/repos/golang/go/issues",
	"/repos/golang/go/issues/1",
	"/repos/golang/go/git/trees/deadbeef",
	"/teams/7/repos/golang/go",
}

var chiParam = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// toChi rewrites :name parameters into chi's {name} form.
func toChi(pattern string) string {
	return chiParam.ReplaceAllString(pattern, "{$1}")
}

// BenchmarkRoutematchFind measures the raw matcher: no HTTP machinery, just
// Find with parameter capture on.
func BenchmarkRoutematchFind(b *testing.B) {
	r := routematch.New[string]()
	for _, route := range githubAPI {
		if err := r.Add(http.MethodGet, route, route); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, path := range lookupPaths {
			if _, err := r.Find(http.MethodGet, path, true); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkRoutematchFindNoCapture measures the matcher with capture off,
// the configuration a dispatch-only caller would use.
func BenchmarkRoutematchFindNoCapture(b *testing.B) {
	r := routematch.New[string]()
	for _, route := range githubAPI {
		if err := r.Add(http.MethodGet, route, route); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, path := range lookupPaths {
			if _, err := r.Find(http.MethodGet, path, false); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkRoutematchServe embeds the matcher in a net/http handler, the way
// the library is meant to be used, and serves the same traffic the framework
// benchmarks serve.
func BenchmarkRoutematchServe(b *testing.B) {
	r := routematch.New[http.HandlerFunc]()
	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	for _, route := range githubAPI {
		if err := r.Add(http.MethodGet, route, handler); err != nil {
			b.Fatal(err)
		}
	}
	mux := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		m, err := r.Find(req.Method, req.URL.Path, true)
		if err != nil {
			http.NotFound(w, req)
			return
		}
		m.Value(w, req)
	})

	benchServe(b, mux)
}

func BenchmarkGin(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	for _, route := range githubAPI {
		r.GET(route, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}

	benchServe(b, r)
}

func BenchmarkEcho(b *testing.B) {
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	for _, route := range githubAPI {
		e.GET(route, handler)
	}

	benchServe(b, e)
}

func BenchmarkChi(b *testing.B) {
	r := chi.NewRouter()
	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	for _, route := range githubAPI {
		r.Get(toChi(route), handler)
	}

	benchServe(b, r)
}

// benchServe drives handler with the shared lookup traffic, reusing one
// recorder per path like the other serving benchmarks in this repo.
func benchServe(b *testing.B, handler http.Handler) {
	b.Helper()

	reqs := make([]*http.Request, len(lookupPaths))
	for i, path := range lookupPaths {
		reqs[i] = httptest.NewRequest(http.MethodGet, path, nil)
	}
	w := httptest.NewRecorder()

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		for _, req := range reqs {
			w.Body.Reset()
			handler.ServeHTTP(w, req)
		}
	}
}
