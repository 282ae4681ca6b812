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

import "strings"

// MatchedRoute is the result of a successful lookup: the payload registered
// for the winning pattern and the parameters captured on the way there.
// Params is nil when the lookup ran with capture disabled.
type MatchedRoute[T any] struct {
	Value  T
	Params Params
}

// atEnd reports whether the walk has nothing left to consume at idx. A
// single trailing empty segment (a path ending in "/") also ends the walk:
// it is not a real segment, it marks where the path stopped.
func atEnd(segs []string, idx int) bool {
	return idx == len(segs) || (idx == len(segs)-1 && segs[idx] == "")
}

// lookup walks the tree from n and returns the first payload matching the
// remaining segments, trying candidates in priority order. ps accumulates
// captured parameters; it is nil when capture is disabled. Bindings made on
// a branch that fails are rolled back before the next branch is tried.
func (n *node[T]) lookup(method string, segs []string, idx int, ps *Params) (T, bool) {
	if atEnd(segs, idx) {
		// A route terminating exactly here wins. Failing that, a
		// catch-all child matches the empty remainder.
		if v, ok := n.payloadFor(method); ok {
			return v, true
		}
		if n.wildcard != nil {
			if v, ok := n.wildcard.node.payloadFor(method); ok {
				bindParam(ps, n.wildcard.name, "")
				return v, true
			}
		}
		var zero T
		return zero, false
	}

	seg := segs[idx]

	// Priority 1: exact static match
	if child := n.static[seg]; child != nil {
		if v, ok := child.lookup(method, segs, idx+1, ps); ok {
			return v, true
		}
	}

	// Priority 2: parameter match (one segment, never empty)
	if n.param != nil && seg != "" {
		mark := 0
		if ps != nil {
			mark = len(*ps)
		}
		bindParam(ps, n.param.name, seg)
		if v, ok := n.param.node.lookup(method, segs, idx+1, ps); ok {
			return v, true
		}
		if ps != nil {
			*ps = (*ps)[:mark]
		}
	}

	// Priority 3: catch-all consumes the whole remainder
	if n.wildcard != nil {
		if v, ok := n.wildcard.node.payloadFor(method); ok {
			bindParam(ps, n.wildcard.name, strings.Join(segs[idx:], "/"))
			return v, true
		}
	}

	var zero T
	return zero, false
}

// collect performs the same walk as lookup but gathers every candidate
// instead of stopping at the first, preserving the priority order. The
// first collected route is always the one lookup would return.
func (n *node[T]) collect(method string, segs []string, idx int, ps *Params, out *[]MatchedRoute[T]) {
	if atEnd(segs, idx) {
		if v, ok := n.payloadFor(method); ok {
			*out = append(*out, MatchedRoute[T]{Value: v, Params: snapshotParams(ps)})
		}
		if n.wildcard != nil {
			if v, ok := n.wildcard.node.payloadFor(method); ok {
				mark := 0
				if ps != nil {
					mark = len(*ps)
				}
				bindParam(ps, n.wildcard.name, "")
				*out = append(*out, MatchedRoute[T]{Value: v, Params: snapshotParams(ps)})
				if ps != nil {
					*ps = (*ps)[:mark]
				}
			}
		}
		return
	}

	seg := segs[idx]

	if child := n.static[seg]; child != nil {
		child.collect(method, segs, idx+1, ps, out)
	}

	if n.param != nil && seg != "" {
		mark := 0
		if ps != nil {
			mark = len(*ps)
		}
		bindParam(ps, n.param.name, seg)
		n.param.node.collect(method, segs, idx+1, ps, out)
		if ps != nil {
			*ps = (*ps)[:mark]
		}
	}

	if n.wildcard != nil {
		if v, ok := n.wildcard.node.payloadFor(method); ok {
			mark := 0
			if ps != nil {
				mark = len(*ps)
			}
			bindParam(ps, n.wildcard.name, strings.Join(segs[idx:], "/"))
			*out = append(*out, MatchedRoute[T]{Value: v, Params: snapshotParams(ps)})
			if ps != nil {
				*ps = (*ps)[:mark]
			}
		}
	}
}

// bindParam records a capture. Anonymous segments bind nothing, and a nil
// ps means capture is disabled.
func bindParam(ps *Params, name, value string) {
	if ps == nil || name == "" {
		return
	}
	*ps = append(*ps, Param{Key: name, Value: value})
}

// snapshotParams copies the current bindings for a collected result, so
// later backtracking cannot disturb it. Returns nil when capture is
// disabled and a non-nil, possibly empty copy otherwise.
func snapshotParams(ps *Params) Params {
	if ps == nil {
		return nil
	}
	cp := make(Params, len(*ps))
	copy(cp, *ps)
	return cp
}
