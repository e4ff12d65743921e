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
	"strings"

	"dirpx.dev/nsx/apis"
)

// NewChain layers namespaces. Earlier layers shadow later ones because the
// introspector keeps the first occurrence of a name.
// Nil layers are ignored.
func NewChain(label string, layers ...apis.Namespace) apis.Namespace {
	out := make([]apis.Namespace, 0, len(layers))
	for _, ns := range layers {
		if ns != nil {
			out = append(out, ns)
		}
	}
	if label == "" {
		labels := make([]string, len(out))
		for i, ns := range out {
			labels[i] = ns.Label()
		}
		label = strings.Join(labels, "+")
	}
	return &chain{label: label, layers: out}
}

type chain struct {
	label  string
	layers []apis.Namespace
}

// Label implements apis.Namespace.
func (c *chain) Label() string { return c.label }

// Entries concatenates every layer's snapshot in layer order.
func (c *chain) Entries() []apis.Entry {
	var out []apis.Entry
	for _, ns := range c.layers {
		out = append(out, ns.Entries()...)
	}
	return out
}
