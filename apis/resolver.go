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

// Query is a single resolution request.
type Query struct {
	// Name is the caller-supplied name, matched case-sensitively.
	Name string
	// Namespace is the collection to search.
	Namespace Namespace
	// Predicate restricts the candidate set.
	Predicate Predicate
	// Fuzzy enables approximate matching after the exact lookup failed.
	Fuzzy bool
}

// Match is a successful (or, inside strategies, rejected) resolution.
type Match struct {
	// Name is the candidate name that matched.
	Name string
	// Value is the matched entity. It is borrowed, never copied.
	Value any
	// Score is the similarity ratio; 1 for exact and alias matches.
	Score float64
	// Strategy names the step that produced the match ("exact", "alias", "fuzzy").
	Strategy string
}

// Resolver coordinates strategies to resolve names to objects.
// Typical chain: ExactStrategy -> AliasStrategy -> FuzzyStrategy.
type Resolver interface {
	// Resolve returns the entity bound to q.Name in q.Namespace, or one of the
	// typed errors of this package.
	Resolve(q Query, cfg Config) (Match, error)
}
