/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package introspect enumerates the eligible members of a namespace.
package introspect

import (
	"dirpx.dev/nsx/apis"
)

// Members is the ordered, deduplicated candidate set of a namespace.
// It is built per call and never cached.
type Members struct {
	names  []string
	values map[string]any
}

// Ensure Members implements apis.Candidates.
var _ apis.Candidates = (*Members)(nil)

// Collect walks ns.Entries() in order, keeps the entries whose value
// satisfies p, and deduplicates by name keeping the first occurrence.
// A predicate failure aborts the walk and is returned as is.
func Collect(ns apis.Namespace, p apis.Predicate) (*Members, error) {
	if ns == nil {
		return nil, apis.ErrNilNamespace
	}
	if !p.Valid() {
		return nil, &apis.PredicateError{Predicate: p, Err: apis.ErrUnknownPredicate}
	}
	entries := ns.Entries()
	m := &Members{values: make(map[string]any, len(entries))}
	for _, e := range entries {
		if _, seen := m.values[e.Name]; seen {
			continue
		}
		ok, err := Test(p, e.Value)
		if err != nil {
			return nil, &apis.PredicateError{Predicate: p, Name: e.Name, Err: err}
		}
		if !ok {
			continue
		}
		m.names = append(m.names, e.Name)
		m.values[e.Name] = e.Value
	}
	return m, nil
}

// Names returns the member names in enumeration order.
func (m *Members) Names() []string { return m.names }

// Get returns the value bound to name.
func (m *Members) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of members.
func (m *Members) Len() int { return len(m.names) }

// Entries returns the members as namespace entries, in order.
func (m *Members) Entries() []apis.Entry {
	out := make([]apis.Entry, len(m.names))
	for i, n := range m.names {
		out[i] = apis.Entry{Name: n, Value: m.values[n]}
	}
	return out
}
