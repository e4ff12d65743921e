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

package config

import (
	"math"

	"dirpx.dev/nsx/apis"
)

const (
	// DefaultMinScore represents the default for MinScore.
	// Zero accepts any candidate with non-zero similarity, i.e. the best
	// candidate is returned whenever it shares anything with the query.
	DefaultMinScore = 0.0
	// DefaultMaxSuggestions represents the default for MaxSuggestions.
	DefaultMaxSuggestions = 5
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MinScore:       DefaultMinScore,
		MaxSuggestions: DefaultMaxSuggestions,
	}
}

// sanitize resets out-of-range knobs to their defaults.
func sanitize(cfg apis.Config) apis.Config {
	if cfg.MinScore < 0 || cfg.MinScore > 1 || math.IsNaN(cfg.MinScore) {
		cfg.MinScore = DefaultMinScore
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMinScore sets the MinScore option.
// A value outside [0,1] resets to the default.
func WithMinScore(score float64) Option {
	return func(c *apis.Config) {
		c.MinScore = score
	}
}

// WithAlias maps alias to the canonical member name.
func WithAlias(alias, name string) Option {
	return func(c *apis.Config) {
		aliases := make(map[string]string, len(c.Aliases)+1)
		for k, v := range c.Aliases {
			aliases[k] = v
		}
		aliases[alias] = name
		c.Aliases = aliases
	}
}

// WithAliases merges the given alias table into the config.
func WithAliases(m map[string]string) Option {
	return func(c *apis.Config) {
		for alias, name := range m {
			WithAlias(alias, name)(c)
		}
	}
}

// WithMaxSuggestions sets the MaxSuggestions option.
// A non-positive value resets to the default.
func WithMaxSuggestions(n int) Option {
	return func(c *apis.Config) {
		c.MaxSuggestions = n
	}
}
