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

import "strconv"

// Predicate selects which namespace entries are eligible for a lookup.
// It is a closed set of structural checks rather than an arbitrary callback.
type Predicate uint8

const (
	// Any accepts every entry.
	Any Predicate = iota
	// IsClass accepts *Class values.
	IsClass
	// IsFunction accepts func values that are not classes.
	IsFunction
	// IsOptimizerClass accepts classes deriving from BaseOptimizer.
	IsOptimizerClass
	// IsSchedulerClass accepts classes deriving from BaseLRScheduler.
	IsSchedulerClass
	// IsActivationClass accepts classes deriving from BaseActivation.
	IsActivationClass
)

var predicateNames = [...]string{
	Any:               "any",
	IsClass:           "class",
	IsFunction:        "function",
	IsOptimizerClass:  "optimizer class",
	IsSchedulerClass:  "lr scheduler class",
	IsActivationClass: "activation class",
}

// String implements fmt.Stringer.
func (p Predicate) String() string {
	if int(p) < len(predicateNames) {
		return predicateNames[p]
	}
	return "predicate(" + strconv.Itoa(int(p)) + ")"
}

// Valid reports whether p is one of the declared predicates.
func (p Predicate) Valid() bool {
	return int(p) < len(predicateNames)
}

// Base returns the ancestry name a category predicate requires, or "".
func (p Predicate) Base() string {
	switch p {
	case IsOptimizerClass:
		return BaseOptimizer
	case IsSchedulerClass:
		return BaseLRScheduler
	case IsActivationClass:
		return BaseActivation
	}
	return ""
}
