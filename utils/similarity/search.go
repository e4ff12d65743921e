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

package similarity

import "github.com/sahilm/fuzzy"

// Search ranks candidates containing pattern as a subsequence, best first.
// Unlike BestMatch it is meant for discovery ("which names look like opt?")
// and never tolerates characters missing from a candidate.
// A non-positive limit returns every hit.
func Search(pattern string, candidates []string, limit int) []string {
	if pattern == "" || len(candidates) == 0 {
		return nil
	}
	matches := fuzzy.Find(pattern, candidates)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
