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
)

// NewAliasStrategy creates an apis.Strategy that consults cfg.Aliases.
func NewAliasStrategy() apis.Strategy {
	return &aliasStrategy{}
}

// aliasStrategy maps configured alternative spellings to canonical names.
// With no aliases configured it never handles a query.
type aliasStrategy struct{}

// Ensure aliasStrategy implements apis.Strategy.
var _ apis.Strategy = (*aliasStrategy)(nil)

// TryResolve rewrites q.Name through the alias table and looks it up.
func (*aliasStrategy) TryResolve(q apis.Query, c apis.Candidates, cfg apis.Config) (apis.Match, bool) {
	if c == nil || len(cfg.Aliases) == 0 {
		return apis.Match{}, false
	}
	name, ok := cfg.Aliases[q.Name]
	if !ok {
		return apis.Match{}, false
	}
	if v, ok := c.Get(name); ok {
		return apis.Match{Name: name, Value: v, Score: 1, Strategy: Alias}, true
	}
	return apis.Match{}, false
}
