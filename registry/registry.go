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
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/nsx/apis"
)

var (
	// ErrNilValue is returned when a nil value is registered.
	ErrNilValue = errors.New("nsx(registry): nil value provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("nsx(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name with a different value.
	ErrConflictingRegistration = errors.New("nsx(registry): conflicting registration")
)

// New constructs an empty Registry labelled label.
// Entries keep registration order.
func New(label string) apis.Registry {
	return &registry{label: label, index: make(map[string]int)}
}

// registry is an ordered, mutex-guarded Registry implementation.
type registry struct {
	// label identifies the registry in diagnostics.
	label string
	// mu guards entries and index.
	mu sync.RWMutex
	// entries holds registrations in order.
	entries []apis.Entry
	// index maps a name to its position in entries.
	index map[string]int
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Label returns the registry label.
func (r *registry) Label() string { return r.label }

// Register appends v under name.
// It is idempotent for the same (name,value) pair.
func (r *registry) Register(name string, v any) error {
	// Validate inputs early.
	if name == "" {
		return ErrEmptyName
	}
	if v == nil {
		return ErrNilValue
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[name]; ok {
		if sameValue(r.entries[i].Value, v) {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, apis.Entry{Name: name, Value: v})
	return nil
}

// Lookup returns the value registered under name.
func (r *registry) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.index[name]; ok {
		return r.entries[i].Value, true
	}
	return nil, false
}

// Entries returns a copy of the registrations in order.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.index = make(map[string]int)
}

// sameValue compares registered values without panicking on
// uncomparable dynamic types. Reference kinds compare by identity.
func sameValue(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if va.Type().Comparable() {
		return a == b
	}
	return false
}
