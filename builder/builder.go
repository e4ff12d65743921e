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

package builder

import (
	"github.com/rs/zerolog"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/resolver"
	"dirpx.dev/nsx/strategy"
	"dirpx.dev/nsx/utils/similarity"
)

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Option configures the default builder.
type Option func(*builder)

// WithLogger sets the logger handed to built resolvers.
func WithLogger(log zerolog.Logger) Option {
	return func(b *builder) {
		b.log = log
	}
}

// WithMatcher replaces the similarity matcher used for fuzzy lookups.
func WithMatcher(m apis.Matcher) Option {
	return func(b *builder) {
		b.matcher = m
	}
}

// builder holds the pieces shared by every resolver it builds.
type builder struct {
	log     zerolog.Logger
	matcher apis.Matcher
}

// BuildMatcher returns the configured matcher, or the difflib ratio matcher.
func (b *builder) BuildMatcher(_ apis.Config) apis.Matcher {
	if b.matcher != nil {
		return b.matcher
	}
	return similarity.NewMatcher()
}

// BuildResolver builds and returns a new apis.Resolver chaining the exact,
// alias and fuzzy strategies. The previous resolver holds no state worth
// migrating, so it is ignored.
func (b *builder) BuildResolver(cfg apis.Config, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		b.log,
		strategy.NewExactStrategy(),
		strategy.NewAliasStrategy(),
		strategy.NewFuzzyStrategy(b.BuildMatcher(cfg)),
	)
}
