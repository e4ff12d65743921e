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

package apis

// Namespace is a labelled, ordered collection of named entities.
// Entries may repeat a name (shadowing); consumers deduplicate.
type Namespace interface {
	// Label identifies the namespace in diagnostics (e.g. "torch.optim").
	Label() string
	// Entries returns a snapshot in declaration order. Callers must not
	// mutate the returned slice.
	Entries() []Entry
}

// Registry is a Namespace that accepts registrations at runtime.
type Registry interface {
	Namespace
	// Register appends a named value. Re-registering the same name is a conflict.
	Register(name string, v any) error
	// Lookup returns the value registered under name.
	Lookup(name string) (v any, ok bool)
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (name, value) association in a Namespace snapshot.
type Entry struct {
	// Name is the symbolic name.
	Name string
	// Value is the entity bound to Name.
	Value any
}

// Candidates is the predicate-filtered, deduplicated view of a Namespace
// that strategies match against.
type Candidates interface {
	// Names returns the unique names in enumeration order.
	Names() []string
	// Get returns the value bound to name.
	Get(name string) (any, bool)
	// Len returns the number of candidates.
	Len() int
}
