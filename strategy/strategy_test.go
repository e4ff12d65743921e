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

package strategy_test

import (
	"testing"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/config"
	"dirpx.dev/nsx/introspect"
	"dirpx.dev/nsx/registry"
	"dirpx.dev/nsx/strategy"
)

var (
	stepLR      = &apis.Class{Name: "StepLR"}
	multiStepLR = &apis.Class{Name: "MultiStepLR"}
)

func candidates(t *testing.T) apis.Candidates {
	t.Helper()
	m, err := introspect.Collect(registry.Classes("lr_scheduler", multiStepLR, stepLR), apis.IsClass)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestExactStrategy(t *testing.T) {
	s := strategy.NewExactStrategy()
	c := candidates(t)
	cfg := config.DefaultConfig()

	m, ok := s.TryResolve(apis.Query{Name: "StepLR"}, c, cfg)
	if !ok || m.Value != stepLR || m.Score != 1 || m.Strategy != strategy.Exact {
		t.Fatalf("got (%+v,%v)", m, ok)
	}
	if _, ok := s.TryResolve(apis.Query{Name: "steplr", Fuzzy: true}, c, cfg); ok {
		t.Fatalf("exact strategy must be case-sensitive")
	}
	if _, ok := s.TryResolve(apis.Query{Name: "StepLR"}, nil, cfg); ok {
		t.Fatalf("nil candidates must not resolve")
	}
}

func TestAliasStrategy(t *testing.T) {
	s := strategy.NewAliasStrategy()
	c := candidates(t)

	if _, ok := s.TryResolve(apis.Query{Name: "step"}, c, config.DefaultConfig()); ok {
		t.Fatalf("no aliases configured, want no match")
	}

	cfg := config.NewConfig(config.WithAlias("step", "StepLR"), config.WithAlias("cosine", "CosineAnnealingLR"))
	m, ok := s.TryResolve(apis.Query{Name: "step"}, c, cfg)
	if !ok || m.Name != "StepLR" || m.Value != stepLR || m.Strategy != strategy.Alias {
		t.Fatalf("got (%+v,%v)", m, ok)
	}
	// An alias to a name outside the candidate set does not resolve.
	if _, ok := s.TryResolve(apis.Query{Name: "cosine"}, c, cfg); ok {
		t.Fatalf("alias target is not a candidate, want no match")
	}
}

func TestFuzzyStrategy(t *testing.T) {
	s := strategy.NewFuzzyStrategy(nil)
	c := candidates(t)
	cfg := config.DefaultConfig()

	if _, ok := s.TryResolve(apis.Query{Name: "SteplR"}, c, cfg); ok {
		t.Fatalf("fuzzy strategy must not run for non-fuzzy queries")
	}

	m, ok := s.TryResolve(apis.Query{Name: "SteplR", Fuzzy: true}, c, cfg)
	if !ok || m.Value != stepLR || m.Strategy != strategy.Fuzzy {
		t.Fatalf("got (%+v,%v), want StepLR", m, ok)
	}
	if m.Score <= 0 || m.Score >= 1 {
		t.Fatalf("score %v out of (0,1)", m.Score)
	}

	strict := config.NewConfig(config.WithMinScore(0.95))
	m, ok = s.TryResolve(apis.Query{Name: "SteplR", Fuzzy: true}, c, strict)
	if ok {
		t.Fatalf("score below MinScore must be rejected")
	}
	if m.Name != "StepLR" || m.Value != nil {
		t.Fatalf("rejection hint: got %+v, want name only", m)
	}
}

// fixedMatcher always proposes the same name.
type fixedMatcher string

func (f fixedMatcher) BestMatch(string, []string, float64) (apis.Scored, error) {
	return apis.Scored{Name: string(f), Score: 0.5}, nil
}

func TestFuzzyStrategy_CustomMatcher(t *testing.T) {
	c := candidates(t)
	m, ok := strategy.NewFuzzyStrategy(fixedMatcher("MultiStepLR")).
		TryResolve(apis.Query{Name: "anything", Fuzzy: true}, c, config.DefaultConfig())
	if !ok || m.Value != multiStepLR {
		t.Fatalf("got (%+v,%v), want MultiStepLR", m, ok)
	}

	// A matcher proposing a non-candidate never resolves.
	if _, ok := strategy.NewFuzzyStrategy(fixedMatcher("Ghost")).
		TryResolve(apis.Query{Name: "anything", Fuzzy: true}, c, config.DefaultConfig()); ok {
		t.Fatalf("non-candidate proposal resolved")
	}
}
