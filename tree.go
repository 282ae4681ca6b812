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

// paramEdge is the single parameter child of a node. All parameter segments
// registered at the same tree position share it; a later registration
// overwrites the stored name, so ":id" and ":userId" at the same position
// collapse into one edge with the most recent name.
type paramEdge[T any] struct {
	name string // "" for anonymous "*"
	node *node[T]
}

// wildcardEdge is the single catch-all child of a node. Like paramEdge it is
// shared by every catch-all registered at the same position, with the most
// recent name winning.
type wildcardEdge[T any] struct {
	name string // "" for anonymous "**"
	node *node[T]
}

// node is one position in the route tree. Each level of the tree corresponds
// to one path segment.
//
// A node holds:
//   - methods: payloads keyed by HTTP method for routes terminating here.
//     The empty key registers a handler for any method; a concrete method
//     entry takes precedence over it during lookup.
//   - static: children keyed by literal segment text.
//   - param: the single parameter child, if any parameter route passes here.
//   - wildcard: the single catch-all child, if any catch-all route ends here.
//
// Thread safety: nodes carry no locks. The owning [Router] serializes all
// access through its RWMutex.
type node[T any] struct {
	methods  map[string]T
	static   map[string]*node[T]
	param    *paramEdge[T]
	wildcard *wildcardEdge[T]
}

// payloadFor returns the payload registered for method, falling back to the
// any-method entry. A concrete method always beats the "" registration;
// looking up with method "" sees only "" registrations.
func (n *node[T]) payloadFor(method string) (T, bool) {
	if v, ok := n.methods[method]; ok {
		return v, true
	}
	if v, ok := n.methods[""]; ok {
		return v, true
	}
	var zero T
	return zero, false
}

// setMethod stores payload for method, replacing any previous entry.
// Returns 1 when the entry is new, 0 on replacement.
func (n *node[T]) setMethod(method string, payload T) int {
	if n.methods == nil {
		n.methods = make(map[string]T)
	}
	_, replaced := n.methods[method]
	n.methods[method] = payload
	if replaced {
		return 0
	}
	return 1
}

// empty reports whether the node holds nothing and can be pruned.
func (n *node[T]) empty() bool {
	return len(n.methods) == 0 && len(n.static) == 0 && n.param == nil && n.wildcard == nil
}

// insert walks the compiled pattern from n, creating nodes as needed, and
// stores payload at the terminal. An optional final parameter additionally
// marks the parent node, so the route matches with the parameter absent.
// Returns the number of new method entries created (0 when every touched
// entry was a replacement).
func (n *node[T]) insert(segs []segment, method string, payload T) int {
	cur := n
	var optionalParent *node[T]
	for _, seg := range segs {
		switch seg.kind {
		case segStatic:
			if cur.static == nil {
				cur.static = make(map[string]*node[T])
			}
			child := cur.static[seg.value]
			if child == nil {
				child = &node[T]{}
				cur.static[seg.value] = child
			}
			cur = child
		case segParam, segOptional:
			if seg.kind == segOptional {
				optionalParent = cur
			}
			if cur.param == nil {
				cur.param = &paramEdge[T]{name: seg.value, node: &node[T]{}}
			} else {
				cur.param.name = seg.value
			}
			cur = cur.param.node
		case segCatchAll:
			if cur.wildcard == nil {
				cur.wildcard = &wildcardEdge[T]{name: seg.value, node: &node[T]{}}
			} else {
				cur.wildcard.name = seg.value
			}
			cur = cur.wildcard.node
		}
	}

	added := cur.setMethod(method, payload)
	if optionalParent != nil {
		added += optionalParent.setMethod(method, payload)
	}
	return added
}

// remove walks the compiled pattern from n and deletes the method entry at
// the terminal, pruning nodes left behind with nothing in them. Whether the
// route existed is judged at the terminal; for an optional final parameter
// the parent mark is cleared as well, but only after the terminal entry was
// found. Returns the number of method entries deleted and whether the
// pattern was registered at all.
func (n *node[T]) remove(segs []segment, idx int, method string) (int, bool) {
	if idx == len(segs) {
		if _, ok := n.methods[method]; !ok {
			return 0, false
		}
		delete(n.methods, method)
		if len(n.methods) == 0 {
			n.methods = nil
		}
		return 1, true
	}

	seg := segs[idx]
	switch seg.kind {
	case segStatic:
		child := n.static[seg.value]
		if child == nil {
			return 0, false
		}
		removed, ok := child.remove(segs, idx+1, method)
		if ok && child.empty() {
			delete(n.static, seg.value)
			if len(n.static) == 0 {
				n.static = nil
			}
		}
		return removed, ok

	case segParam, segOptional:
		if n.param == nil {
			return 0, false
		}
		removed, ok := n.param.node.remove(segs, idx+1, method)
		if !ok {
			return 0, false
		}
		if n.param.node.empty() {
			n.param = nil
		}
		if seg.kind == segOptional {
			if _, marked := n.methods[method]; marked {
				delete(n.methods, method)
				if len(n.methods) == 0 {
					n.methods = nil
				}
				removed++
			}
		}
		return removed, true

	case segCatchAll:
		if n.wildcard == nil {
			return 0, false
		}
		removed, ok := n.wildcard.node.remove(segs, idx+1, method)
		if ok && n.wildcard.node.empty() {
			n.wildcard = nil
		}
		return removed, ok
	}
	return 0, false
}
