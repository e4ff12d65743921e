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

import "dirpx.dev/nsx/args"

// Well-known ancestry names used by the category predicates.
const (
	BaseOptimizer   = "Optimizer"
	BaseLRScheduler = "LRScheduler"
	BaseActivation  = "Activation"
)

// Constructor builds an instance of a Class from caller-supplied arguments.
type Constructor func(a args.Args) (any, error)

// Class is a statically declared, constructible entity. It stands in for a
// class object: resolution returns the *Class, construction calls New.
type Class struct {
	// Name is the declared class name.
	Name string
	// Bases lists the ancestry, nearest first. Category predicates inspect it.
	Bases []string
	// Params lists accepted keyword arguments. Nil accepts any keyword.
	Params []string
	// New constructs an instance.
	New Constructor
}

// DerivesFrom reports whether base appears in the class ancestry.
func (c *Class) DerivesFrom(base string) bool {
	if c == nil {
		return false
	}
	for _, b := range c.Bases {
		if b == base {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	if c == nil {
		return "<nil class>"
	}
	return "class " + c.Name
}
