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

package resolver

import (
	"github.com/rs/zerolog"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/introspect"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(log zerolog.Logger, strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out, log: log}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
	log    zerolog.Logger
}

// Resolve collects the candidate set and runs strategies in order until one
// handles the query. It fails with *apis.NameNotFoundError when fuzzy
// matching was not requested and *apis.FuzzyNameNotFoundError when it was.
func (r chain) Resolve(q apis.Query, cfg apis.Config) (apis.Match, error) {
	if q.Namespace == nil {
		return apis.Match{}, apis.ErrNilNamespace
	}
	cands, err := introspect.Collect(q.Namespace, q.Predicate)
	if err != nil {
		return apis.Match{}, err
	}

	var hint apis.Match
	for _, s := range r.strats {
		m, ok := s.TryResolve(q, cands, cfg)
		if ok {
			if m.Name != q.Name {
				r.log.Debug().
					Str("namespace", q.Namespace.Label()).
					Str("query", q.Name).
					Str("match", m.Name).
					Str("strategy", m.Strategy).
					Float64("score", m.Score).
					Msg("name substituted")
			}
			return m, nil
		}
		if m.Name != "" && m.Score > hint.Score {
			hint = m
		}
	}

	label := q.Namespace.Label()
	if !q.Fuzzy {
		return apis.Match{}, &apis.NameNotFoundError{Name: q.Name, Namespace: label}
	}
	return apis.Match{}, &apis.FuzzyNameNotFoundError{
		Name:       q.Name,
		Namespace:  label,
		Suggestion: hint.Name,
		Score:      hint.Score,
	}
}
