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

package registry

import (
	"sort"

	"dirpx.dev/nsx/apis"
)

// NewStatic returns an immutable Namespace over entries in the given order.
// Duplicate names are kept; lookups see the first one.
func NewStatic(label string, entries ...apis.Entry) apis.Namespace {
	out := make([]apis.Entry, len(entries))
	copy(out, entries)
	return &static{label: label, entries: out}
}

// FromMap returns an immutable Namespace over m in name-sorted order,
// since map iteration carries no declaration order.
func FromMap(label string, m map[string]any) apis.Namespace {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]apis.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, apis.Entry{Name: name, Value: m[name]})
	}
	return &static{label: label, entries: entries}
}

// Classes returns an immutable Namespace over classes keyed by Class.Name.
func Classes(label string, classes ...*apis.Class) apis.Namespace {
	entries := make([]apis.Entry, 0, len(classes))
	for _, c := range classes {
		entries = append(entries, apis.Entry{Name: c.Name, Value: c})
	}
	return &static{label: label, entries: entries}
}

type static struct {
	label   string
	entries []apis.Entry
}

func (s *static) Label() string { return s.label }

func (s *static) Entries() []apis.Entry { return s.entries }
