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
	"strings"
)

// segmentKind classifies one pattern segment.
type segmentKind uint8

const (
	segStatic   segmentKind = iota // literal text, exact match
	segParam                       // ":name" or anonymous "*", exactly one non-empty segment
	segOptional                    // ":name?" or "*?", final segment only
	segCatchAll                    // "**:name" or anonymous "**", final segment only
)

// segment is one compiled element of a route pattern.
// value holds the literal text for segStatic and the parameter name for the
// dynamic kinds. An empty name marks an anonymous segment ("*" or "**"):
// it matches like its named form but is never reported in Params.
type segment struct {
	kind  segmentKind
	value string
}

// parsePattern compiles a route pattern into segments.
//
// One leading slash is tolerated and discarded, as is a single trailing
// slash, so "/about", "about" and "/about/" compile identically. The empty
// pattern and "/" compile to zero segments and address the root. Empty
// segments anywhere else are rejected.
//
// A trailing "?" is peeled off before a segment is classified. It turns a
// parameter into an optional one and is accepted but meaningless on
// catch-alls, which already match zero segments. On a literal it stays part
// of the literal text.
func parsePattern(pattern string) ([]segment, error) {
	raw := strings.Split(pattern, "/")
	if len(raw) > 0 && raw[0] == "" {
		raw = raw[1:]
	}
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		return nil, nil
	}

	segs := make([]segment, 0, len(raw))
	for i, s := range raw {
		if s == "" {
			return nil, fmt.Errorf("%w: %q: empty segment", ErrInvalidPattern, pattern)
		}
		seg, err := parseSegment(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
		if i < len(raw)-1 {
			switch seg.kind {
			case segOptional:
				return nil, fmt.Errorf("%w: %q: optional parameter %q must be the last segment", ErrInvalidPattern, pattern, s)
			case segCatchAll:
				return nil, fmt.Errorf("%w: %q: catch-all %q must be the last segment", ErrInvalidPattern, pattern, s)
			}
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// parseSegment classifies a single non-empty pattern segment.
func parseSegment(s string) (segment, error) {
	base, optional := s, false
	if strings.HasSuffix(s, "?") {
		base, optional = s[:len(s)-1], true
	}

	switch {
	case strings.HasPrefix(base, "**"):
		// Catch-all. The "?" suffix is redundant here: a catch-all
		// already matches zero segments.
		if base == "**" {
			return segment{kind: segCatchAll}, nil
		}
		name, named := strings.CutPrefix(base, "**:")
		if !named {
			return segment{}, fmt.Errorf("malformed catch-all %q", s)
		}
		if name == "" {
			return segment{}, fmt.Errorf("catch-all %q is missing a name", s)
		}
		return segment{kind: segCatchAll, value: name}, nil

	case strings.HasPrefix(base, ":"):
		name := base[1:]
		if name == "" {
			return segment{}, fmt.Errorf("parameter %q is missing a name", s)
		}
		if optional {
			return segment{kind: segOptional, value: name}, nil
		}
		return segment{kind: segParam, value: name}, nil

	case base == "*":
		if optional {
			return segment{kind: segOptional}, nil
		}
		return segment{kind: segParam}, nil

	default:
		// Literal. A stripped "?" is put back: it only carries meaning
		// after a parameter or wildcard marker.
		if strings.ContainsAny(s, ":*") {
			return segment{}, fmt.Errorf("literal %q may not contain ':' or '*'", s)
		}
		return segment{kind: segStatic, value: s}, nil
	}
}

// staticKey returns the canonical key for a purely static pattern, joining
// the literals with "/". The root pattern yields "". ok is false as soon as
// any segment is dynamic.
func staticKey(segs []segment) (key string, ok bool) {
	var b strings.Builder
	for i, seg := range segs {
		if seg.kind != segStatic {
			return "", false
		}
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg.value)
	}
	return b.String(), true
}

// splitPath splits a request path into the segments the matcher walks.
//
// One leading empty segment, produced by the usual leading slash, is
// discarded. A trailing empty segment is kept: it marks a path ending in
// "/" and terminates the walk at whichever node consumed the rest. Interior
// empty segments are kept too; only a catch-all can consume them.
func splitPath(path string) []string {
	segs := strings.Split(path, "/")
	if len(segs) > 0 && segs[0] == "" {
		segs = segs[1:]
	}
	return segs
}
