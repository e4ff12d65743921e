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

// Package nsx resolves human-supplied, possibly misspelled names of
// framework entities (optimizers, learning-rate schedulers, activations,
// arbitrary classes and functions) to the objects they denote.
//
// Given "SteplR", a namespace of scheduler classes and fuzzy matching, nsx
// returns the StepLR class; given "SGD" and an optimizer namespace it can
// also construct the optimizer with caller-supplied arguments.
//
// # Design
//
// Resolution is a pure function of (name, namespace snapshot, predicate,
// fuzziness, config). The pieces are:
//
//   - Namespace (apis.Namespace): a labelled, ordered list of (name, value)
//     entries. Namespaces are declared explicitly (registry.NewStatic,
//     registry.Classes, registry.New) rather than discovered by reflection.
//     A namespace may expose the same name twice (see registry.NewChain);
//     the first occurrence wins.
//
//   - Predicate (apis.Predicate): a closed enumeration of structural checks
//     (IsClass, IsFunction, IsSchedulerClass, ...). Category predicates
//     inspect the declared ancestry of an *apis.Class, never its name.
//
//   - Introspector (package introspect): filters a namespace through a
//     predicate into an ordered, deduplicated candidate set. It is rebuilt
//     on every call; nothing is cached.
//
//   - Matcher (package utils/similarity): scores candidates with the
//     difflib SequenceMatcher ratio and returns the best one, earliest
//     first on ties. Candidates scoring zero, or below Config.MinScore, are
//     rejected.
//
//   - Resolver (package resolver): runs strategies in order. The default
//     chain is exact -> alias -> fuzzy:
//     1. An exact name always wins, fuzzy or not.
//     2. A configured alias (Config.Aliases) is treated as exact.
//     3. Only when fuzzy matching was requested is the most similar
//     candidate accepted.
//
//   - Category resolvers (package category): Class, Function and Construct.
//     Construct instantiates the resolved class, and every failure after a
//     successful lookup is reported as *apis.ConstructionError.
//
// # Errors
//
// Failures are typed so callers can tell "wrong name" from "wrong
// arguments" without reading messages:
//
//	*apis.NameNotFoundError       errors.Is(err, apis.ErrNameNotFound)
//	*apis.FuzzyNameNotFoundError  errors.Is(err, apis.ErrNameNotFoundFuzzy)
//	*apis.ConstructionError       errors.Is(err, apis.ErrConstruction)
//	*apis.PredicateError          errors.Is(err, apis.ErrPredicate)
//
// Nothing is retried: identical inputs give identical outcomes.
//
// # Environment
//
// Env bundles a Config, a Builder and the Resolver it built into an
// immutable snapshot behind an atomic pointer. Lookups load the snapshot
// and never lock:
//
//	env := nsx.New(nsx.WithConfig(config.NewConfig(config.WithMinScore(0.5))))
//	cls, err := env.Class("SteplR", lrscheduler.Namespace(), true)
//
// Writers (SetConfig, SetBuilder, SetExt, SetResolver, SetAll) take a short
// build mutex, rebuild the resolver unless it is pinned, and publish a new
// snapshot. There is no process-wide registry; an Env is an ordinary value
// that callers pass around. A nil *Env answers lookups with defaults.
//
// # Pinning
//
// SetResolver installs a resolver and pins it: later SetConfig or
// SetBuilder calls keep it until UnpinResolver. This lets a test or a
// binary lock a custom resolver while still changing config values.
//
// # Concurrency model
//
// Namespaces are read through snapshots (Entries returns a copy for
// registry.New registries, immutable slices otherwise), so concurrent
// lookups need no coordination. registry.New serializes its own writers.
//
// # Domain namespaces
//
// Packages under nn/ declare optimizer, scheduler and activation classes
// and expose Get helpers that resolve fuzzily and construct in one call.
// Package params, compare and checkpoint hold the small collaborators that
// surround resolution in a training setup: merging parameter overrides,
// diffing two models' parameters and picking checkpoint paths.
package nsx
