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

// Scored pairs a candidate with its similarity to a query.
type Scored struct {
	// Name is the candidate.
	Name string
	// Score is the similarity ratio in [0,1].
	Score float64
	// Index is the position of Name in the candidate list, -1 if none.
	Index int
}

// Matcher picks the best approximate match for a query.
type Matcher interface {
	// BestMatch returns the highest-scoring candidate; ties go to the earliest.
	// It returns ErrNoAcceptableMatch when candidates is empty or the best
	// score is zero or below minScore. The returned Scored still describes
	// the best rejected candidate when one exists.
	BestMatch(query string, candidates []string, minScore float64) (Scored, error)
}
