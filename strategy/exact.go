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

// NewExactStrategy creates an apis.Strategy that matches the raw query
// string against candidate names.
func NewExactStrategy() apis.Strategy {
	return &exactStrategy{}
}

// exactStrategy is the fast path: an exact key always wins, whether or
// not fuzzy matching was requested.
type exactStrategy struct{}

// Ensure exactStrategy implements apis.Strategy.
var _ apis.Strategy = (*exactStrategy)(nil)

// TryResolve looks up q.Name among the candidates.
func (*exactStrategy) TryResolve(q apis.Query, c apis.Candidates, _ apis.Config) (apis.Match, bool) {
	if c == nil {
		return apis.Match{}, false
	}
	if v, ok := c.Get(q.Name); ok {
		return apis.Match{Name: q.Name, Value: v, Score: 1, Strategy: Exact}, true
	}
	return apis.Match{}, false
}
