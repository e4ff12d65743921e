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

package strategy

import (
	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/utils/similarity"
)

// NewFuzzyStrategy creates an apis.Strategy that picks the most similar
// candidate via m. A nil m uses similarity.NewMatcher().
func NewFuzzyStrategy(m apis.Matcher) apis.Strategy {
	if m == nil {
		m = similarity.NewMatcher()
	}
	return fuzzyStrategy{m: m}
}

// fuzzyStrategy is the fallback for misspelled names. It only runs when
// the query asks for fuzzy matching.
type fuzzyStrategy struct {
	m apis.Matcher
}

// Ensure fuzzyStrategy implements apis.Strategy.
var _ apis.Strategy = fuzzyStrategy{}

// TryResolve returns the best candidate above cfg.MinScore. On rejection the
// returned match names the closest candidate with its score, without a value.
func (s fuzzyStrategy) TryResolve(q apis.Query, c apis.Candidates, cfg apis.Config) (apis.Match, bool) {
	if !q.Fuzzy || c == nil || c.Len() == 0 {
		return apis.Match{}, false
	}
	best, err := s.m.BestMatch(q.Name, c.Names(), cfg.MinScore)
	if err != nil {
		return apis.Match{Name: best.Name, Score: best.Score, Strategy: Fuzzy}, false
	}
	v, ok := c.Get(best.Name)
	if !ok {
		return apis.Match{}, false
	}
	return apis.Match{Name: best.Name, Value: v, Score: best.Score, Strategy: Fuzzy}, true
}
