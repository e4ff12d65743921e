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

// Config carries read-only resolution knobs that influence strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MinScore is the lowest similarity ratio in [0,1] a fuzzy candidate may
	// have and still be accepted. A candidate scoring zero is never accepted,
	// so the zero value keeps "return the best candidate" semantics.
	MinScore float64 `yaml:"min_score"`

	// Aliases maps alternative spellings to canonical member names.
	// An alias is tried after the exact lookup and before fuzzy matching.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// MaxSuggestions caps the number of names returned by discovery searches.
	MaxSuggestions int `yaml:"max_suggestions"`
}
