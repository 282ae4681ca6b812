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

package routematch_test

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"rivaas.dev/routematch"
)

// Example demonstrates basic registration and lookup.
func Example() {
	r := routematch.New[string]()

	if err := r.Add(http.MethodGet, "/users/:id", "user detail"); err != nil {
		log.Fatal(err)
	}
	if err := r.Add(http.MethodGet, "/files/**:path", "file server"); err != nil {
		log.Fatal(err)
	}

	m, err := r.Find(http.MethodGet, "/users/42", true)
	if err != nil {
		log.Fatal(err)
	}
	id, _ := m.Params.Get("id")
	fmt.Println(m.Value, id)

	m, err = r.Find(http.MethodGet, "/files/css/site.css", true)
	if err != nil {
		log.Fatal(err)
	}
	path, _ := m.Params.Get("path")
	fmt.Println(m.Value, path)

	// Output:
	// user detail 42
	// file server css/site.css
}

// ExampleRouter_Find demonstrates optional parameters and capture control.
func ExampleRouter_Find() {
	r := routematch.New[string]()

	if err := r.Add(http.MethodGet, "/search/:query?", "search"); err != nil {
		log.Fatal(err)
	}

	m, err := r.Find(http.MethodGet, "/search/golang", true)
	if err != nil {
		log.Fatal(err)
	}
	query, _ := m.Params.Get("query")
	fmt.Println(m.Value, query)

	// The parameter is optional, so the bare path matches too.
	m, err = r.Find(http.MethodGet, "/search", true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Value, m.Params.Has("query"))

	// Output:
	// search golang
	// search false
}

// ExampleRouter_FindAll demonstrates enumerating every candidate for a path
// in priority order.
func ExampleRouter_FindAll() {
	r := routematch.New[string]()

	if err := r.Add(http.MethodGet, "/api/users", "users"); err != nil {
		log.Fatal(err)
	}
	if err := r.Add(http.MethodGet, "/api/:resource", "collection"); err != nil {
		log.Fatal(err)
	}
	if err := r.Add("", "/api/**:rest", "fallback"); err != nil {
		log.Fatal(err)
	}

	for _, m := range r.FindAll(http.MethodGet, "/api/users", false) {
		fmt.Println(m.Value)
	}

	// Output:
	// users
	// collection
	// fallback
}

// ExampleRouter_Remove demonstrates deregistering a route.
func ExampleRouter_Remove() {
	r := routematch.New[string]()

	if err := r.Add(http.MethodGet, "/ping", "pong"); err != nil {
		log.Fatal(err)
	}
	if err := r.Remove(http.MethodGet, "/ping"); err != nil {
		log.Fatal(err)
	}

	_, err := r.Find(http.MethodGet, "/ping", false)
	fmt.Println(errors.Is(err, routematch.ErrRouteNotFound))

	// Output:
	// true
}

// ExampleRouter_Routes demonstrates route table introspection.
func ExampleRouter_Routes() {
	r := routematch.New[string]()

	if err := r.Add(http.MethodGet, "/users/:id", "detail"); err != nil {
		log.Fatal(err)
	}
	if err := r.Add(http.MethodPost, "/users", "create"); err != nil {
		log.Fatal(err)
	}
	if err := r.Add("", "/health", "health"); err != nil {
		log.Fatal(err)
	}

	for _, route := range r.Routes() {
		fmt.Printf("%q %s\n", route.Method, route.Pattern)
	}

	// Output:
	// "" /health
	// "POST" /users
	// "GET" /users/:id
}

// ExampleWithMethodNormalization demonstrates case-insensitive methods.
func ExampleWithMethodNormalization() {
	r := routematch.New[string](routematch.WithMethodNormalization())

	if err := r.Add("get", "/users", "list"); err != nil {
		log.Fatal(err)
	}

	m, err := r.Find(http.MethodGet, "/users", false)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Value)

	// Output:
	// list
}

// Example_httpHandlers demonstrates using HTTP handlers as payloads to
// build a minimal dispatcher.
func Example_httpHandlers() {
	type handler func(params routematch.Params) string

	r := routematch.New[handler]()

	err := r.Add(http.MethodGet, "/greet/:name", func(params routematch.Params) string {
		name, _ := params.Get("name")
		return "hello " + name
	})
	if err != nil {
		log.Fatal(err)
	}

	dispatch := func(method, path string) string {
		m, err := r.Find(method, path, true)
		if err != nil {
			return "404 page not found"
		}
		return m.Value(m.Params)
	}

	fmt.Println(dispatch(http.MethodGet, "/greet/ada"))
	fmt.Println(dispatch(http.MethodGet, "/missing"))

	// Output:
	// hello ada
	// 404 page not found
}
