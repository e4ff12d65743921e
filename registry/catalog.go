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
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/nsx/apis"
)

// ErrNilNamespace is returned when a nil namespace is added to a Catalog.
var ErrNilNamespace = errors.New("nsx(registry): nil namespace provided")

// Catalog maps category names ("optim", "lr_scheduler", ...) to namespaces.
// A Catalog is itself a Namespace whose values are namespaces, so category
// names can be resolved with the same resolver as members.
type Catalog struct {
	mu    sync.RWMutex
	label string
	order []string
	byCat map[string]apis.Namespace
}

// Ensure Catalog implements apis.Namespace.
var _ apis.Namespace = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog(label string) *Catalog {
	return &Catalog{label: label, byCat: map[string]apis.Namespace{}}
}

// Add installs ns under category. Returns an error if the category exists.
func (c *Catalog) Add(category string, ns apis.Namespace) error {
	if category == "" {
		return ErrEmptyName
	}
	if ns == nil {
		return ErrNilNamespace
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byCat[category]; exists {
		return fmt.Errorf("%w: category %s", ErrConflictingRegistration, category)
	}
	c.byCat[category] = ns
	c.order = append(c.order, category)
	return nil
}

// MustAdd panics if Add fails.
func (c *Catalog) MustAdd(category string, ns apis.Namespace) *Catalog {
	if err := c.Add(category, ns); err != nil {
		panic(err)
	}
	return c
}

// Namespace returns the namespace for category.
func (c *Catalog) Namespace(category string) (apis.Namespace, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ns, ok := c.byCat[category]
	return ns, ok
}

// Categories returns a sorted list of category names.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := append([]string(nil), c.order...)
	sort.Strings(out)
	return out
}

// Label implements apis.Namespace.
func (c *Catalog) Label() string { return c.label }

// Entries implements apis.Namespace in insertion order.
func (c *Catalog) Entries() []apis.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]apis.Entry, 0, len(c.order))
	for _, cat := range c.order {
		out = append(out, apis.Entry{Name: cat, Value: c.byCat[cat]})
	}
	return out
}
