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

import "sort"

// Route describes one registration for introspection. Method is "" for an
// any-method registration.
type Route struct {
	Method  string
	Pattern string
}

// Routes returns all registrations for introspection, reconstructed from
// the tree. The slice is sorted by pattern and then by method.
//
// Patterns are printed canonically: leading "/", ":name" or "*" for
// parameters, "**:name" or "**" for catch-alls, using the most recently
// registered name for shared positions. An optional parameter appears as
// its two effective registrations, the bare pattern and the parameterized
// one.
func (r *Router[T]) Routes() []Route {
	r.mu.RLock()
	routes := make([]Route, 0, r.size)
	r.root.appendRoutes("", &routes)
	r.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern == routes[j].Pattern {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Pattern < routes[j].Pattern
	})
	return routes
}

// appendRoutes walks the subtree, rebuilding the pattern that leads to each
// method entry. prefix holds the joined segments above n, without the
// leading slash.
func (n *node[T]) appendRoutes(prefix string, out *[]Route) {
	for method := range n.methods {
		pattern := "/" + prefix
		*out = append(*out, Route{Method: method, Pattern: pattern})
	}
	for label, child := range n.static {
		child.appendRoutes(joinSegment(prefix, label), out)
	}
	if n.param != nil {
		label := "*"
		if n.param.name != "" {
			label = ":" + n.param.name
		}
		n.param.node.appendRoutes(joinSegment(prefix, label), out)
	}
	if n.wildcard != nil {
		label := "**"
		if n.wildcard.name != "" {
			label = "**:" + n.wildcard.name
		}
		n.wildcard.node.appendRoutes(joinSegment(prefix, label), out)
	}
}

func joinSegment(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "/" + seg
}
