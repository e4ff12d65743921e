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

import (
	"errors"
	"fmt"
)

var (
	// ErrNameNotFound is the kind of *NameNotFoundError.
	ErrNameNotFound = errors.New("nsx: name not found")
	// ErrNameNotFoundFuzzy is the kind of *FuzzyNameNotFoundError.
	ErrNameNotFoundFuzzy = errors.New("nsx: no similar name found")
	// ErrConstruction is the kind of *ConstructionError.
	ErrConstruction = errors.New("nsx: construction failed")
	// ErrPredicate is the kind of *PredicateError.
	ErrPredicate = errors.New("nsx: predicate failed")
	// ErrUnknownPredicate is wrapped by a PredicateError for undeclared predicates.
	ErrUnknownPredicate = errors.New("nsx: unknown predicate")
	// ErrNoAcceptableMatch is returned by a Matcher that found nothing similar enough.
	ErrNoAcceptableMatch = errors.New("nsx: no acceptable match")
	// ErrNilNamespace is returned when a query carries no namespace.
	ErrNilNamespace = errors.New("nsx: nil namespace")
)

// NameNotFoundError reports a failed exact lookup with fuzzy matching disabled.
type NameNotFoundError struct {
	Name      string
	Namespace string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("namespace %q has no object with a name %q", e.Namespace, e.Name)
}

// Is reports ErrNameNotFound.
func (e *NameNotFoundError) Is(target error) bool { return target == ErrNameNotFound }

// FuzzyNameNotFoundError reports that no candidate was similar enough.
// Suggestion holds the best rejected candidate, if there was one.
type FuzzyNameNotFoundError struct {
	Name       string
	Namespace  string
	Suggestion string
	Score      float64
}

func (e *FuzzyNameNotFoundError) Error() string {
	msg := fmt.Sprintf("namespace %q has no object with a name equal or similar to %q", e.Namespace, e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (closest %q scored %.2f)", e.Suggestion, e.Score)
	}
	return msg
}

// Is reports ErrNameNotFoundFuzzy.
func (e *FuzzyNameNotFoundError) Is(target error) bool { return target == ErrNameNotFoundFuzzy }

// ConstructionError reports that a resolved entity could not be built or invoked.
type ConstructionError struct {
	// Name is the resolved (not the queried) name.
	Name      string
	Namespace string
	Err       error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing %q from namespace %q: %v", e.Name, e.Namespace, e.Err)
}

// Is reports ErrConstruction.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// Unwrap returns the underlying cause.
func (e *ConstructionError) Unwrap() error { return e.Err }

// PredicateError reports that a predicate could not be evaluated.
type PredicateError struct {
	Predicate Predicate
	// Name is the entry being tested when the failure happened.
	Name string
	Err  error
}

func (e *PredicateError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("evaluating predicate %s: %v", e.Predicate, e.Err)
	}
	return fmt.Sprintf("evaluating predicate %s on %q: %v", e.Predicate, e.Name, e.Err)
}

// Is reports ErrPredicate.
func (e *PredicateError) Is(target error) bool { return target == ErrPredicate }

// Unwrap returns the underlying cause.
func (e *PredicateError) Unwrap() error { return e.Err }
