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

// Param is a single captured path parameter.
//
// Key is the parameter name from the route pattern (":id" captures as "id",
// "**:rest" captures as "rest"). Anonymous segments ("*" and "**") capture
// the matched text but have no name and are never reported.
type Param struct {
	Key   string
	Value string
}

// Params holds the parameters captured during a lookup, in the order their
// segments appear in the matched pattern. A catch-all parameter is always
// last and its value may span several segments ("a/b/c").
//
// Lookups performed without capture return nil Params. Lookups with capture
// return non-nil Params even when the matched route has no named parameters,
// so callers can tell "captured nothing" apart from "capture disabled".
type Params []Param

// Get returns the value of the first parameter named key and whether it was
// present. Patterns normally bind each name once, but when a name repeats
// the earliest (leftmost) capture wins.
func (ps Params) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether a parameter named key was captured.
func (ps Params) Has(key string) bool {
	_, ok := ps.Get(key)
	return ok
}

// Map returns the parameters as a map. Order is lost; when a name repeats,
// the leftmost capture wins. Returns nil for nil Params.
func (ps Params) Map() map[string]string {
	if ps == nil {
		return nil
	}
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		if _, dup := m[p.Key]; !dup {
			m[p.Key] = p.Value
		}
	}
	return m
}
