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

// Package similarity scores and ranks candidate names against a query.
package similarity

import (
	"github.com/pmezard/go-difflib/difflib"

	"dirpx.dev/nsx/apis"
)

// Ratio returns the SequenceMatcher similarity of a and b: 2*M/T where M is
// the number of runes in matching blocks and T the total rune count.
// The result is in [0,1]; two empty strings score 1.
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(runes(a), runes(b))
	return m.Ratio()
}

// BestMatch scores every candidate against query and returns the best one.
// Ties keep the earliest candidate. The match is rejected with
// apis.ErrNoAcceptableMatch when there are no candidates, when the best
// score is zero, or when it is below minScore.
func BestMatch(query string, candidates []string, minScore float64) (apis.Scored, error) {
	best := apis.Scored{Index: -1}
	if len(candidates) == 0 {
		return best, apis.ErrNoAcceptableMatch
	}
	q := runes(query)
	m := difflib.NewMatcher(nil, q)
	for i, c := range candidates {
		// SetSeq1 keeps the analysis of q cached across candidates.
		m.SetSeq1(runes(c))
		if m.RealQuickRatio() <= best.Score || m.QuickRatio() <= best.Score {
			continue
		}
		if score := m.Ratio(); score > best.Score {
			best = apis.Scored{Name: c, Score: score, Index: i}
		}
	}
	if best.Index < 0 || best.Score < minScore {
		return best, apis.ErrNoAcceptableMatch
	}
	return best, nil
}

// NewMatcher returns an apis.Matcher backed by BestMatch.
func NewMatcher() apis.Matcher {
	return matcher{}
}

type matcher struct{}

// Ensure matcher implements apis.Matcher.
var _ apis.Matcher = matcher{}

func (matcher) BestMatch(query string, candidates []string, minScore float64) (apis.Scored, error) {
	return BestMatch(query, candidates, minScore)
}

// runes splits s into one-rune strings, the element type difflib compares.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
