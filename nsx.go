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

package nsx

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
	"dirpx.dev/nsx/builder"
	"dirpx.dev/nsx/category"
	"dirpx.dev/nsx/config"
	"dirpx.dev/nsx/introspect"
	"dirpx.dev/nsx/utils/similarity"
)

// ErrNilResolver is returned when a builder returns a nil resolver.
var ErrNilResolver = errors.New("nsx: builder returned nil resolver")

// Env is a resolution environment: a config, a builder and the resolver it
// built, published together as an immutable snapshot.
//
// Reads load the current snapshot atomically and never lock. Writers take a
// short build mutex, assemble a new snapshot and swap it in. A nil *Env
// answers lookups like New(); its writers are no-ops.
type Env struct {
	// buildMu serializes writers so partially built snapshots are never published.
	buildMu sync.Mutex
	// st is the current snapshot.
	st atomic.Pointer[state]
}

// state is an Env snapshot.
// Never mutate fields of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the resolution configuration.
	cfg apis.Config
	// ext is an opaque extension payload handed to the builder.
	ext any
	// res is the resolver.
	res apis.Resolver
	// bld is the builder.
	bld apis.Builder
	// pres indicates whether res is pinned (not rebuilt on changes).
	pres bool
}

// Option configures New.
type Option func(*options)

type options struct {
	cfg apis.Config
	bld apis.Builder
	log *zerolog.Logger
	ext any
}

// WithConfig sets the initial configuration.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithBuilder sets the builder. It takes precedence over WithLogger.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) { o.bld = b }
}

// WithLogger makes the default builder log through log.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = &log }
}

// WithExt sets the extension payload passed to the builder.
func WithExt(ext any) Option {
	return func(o *options) { o.ext = ext }
}

// New returns an Env built from the given options.
func New(opts ...Option) *Env {
	o := options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bld == nil {
		var bopts []builder.Option
		if o.log != nil {
			bopts = append(bopts, builder.WithLogger(*o.log))
		}
		o.bld = builder.New(bopts...)
	}
	res := o.bld.BuildResolver(o.cfg, nil, o.ext)
	if res == nil {
		panic(ErrNilResolver)
	}
	e := &Env{}
	e.st.Store(&state{cfg: o.cfg, ext: o.ext, res: res, bld: o.bld})
	return e
}

// defaultEnv backs nil receivers. It is never mutated.
var defaultEnv = sync.OnceValue(func() *Env { return New() })

// load returns the current snapshot.
func (e *Env) load() *state {
	if e == nil {
		return defaultEnv().st.Load()
	}
	return e.st.Load()
}

// Match resolves q and reports how it matched.
func (e *Env) Match(q apis.Query) (apis.Match, error) {
	s := e.load()
	return s.res.Resolve(q, s.cfg)
}

// Resolve returns the object bound to name in ns among entries satisfying p.
// Exact matches always win; with fuzzy set, the most similar name is used
// as a fallback.
func (e *Env) Resolve(name string, ns apis.Namespace, p apis.Predicate, fuzzy bool) (any, error) {
	s := e.load()
	m, err := category.Resolve(s.res, s.cfg, name, ns, p, fuzzy)
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

// Class resolves name to a class.
func (e *Env) Class(name string, ns apis.Namespace, fuzzy bool) (*apis.Class, error) {
	s := e.load()
	return category.Class(s.res, s.cfg, name, ns, fuzzy)
}

// Function resolves name to a func value.
func (e *Env) Function(name string, ns apis.Namespace, fuzzy bool) (any, error) {
	s := e.load()
	return category.Function(s.res, s.cfg, name, ns, fuzzy)
}

// Construct resolves a class among entries satisfying p and instantiates it.
func (e *Env) Construct(name string, ns apis.Namespace, p apis.Predicate, fuzzy bool, a args.Args) (any, error) {
	s := e.load()
	return category.Construct(s.res, s.cfg, name, ns, p, fuzzy, a)
}

// Call resolves a function and invokes it with a.
func (e *Env) Call(name string, ns apis.Namespace, fuzzy bool, a args.Args) (any, error) {
	s := e.load()
	return category.Call(s.res, s.cfg, name, ns, fuzzy, a)
}

// Search lists members of ns satisfying p that contain pattern as a
// subsequence, best first, capped at Config().MaxSuggestions.
func (e *Env) Search(pattern string, ns apis.Namespace, p apis.Predicate) ([]string, error) {
	s := e.load()
	members, err := introspect.Collect(ns, p)
	if err != nil {
		return nil, err
	}
	return similarity.Search(pattern, members.Names(), s.cfg.MaxSuggestions), nil
}

// Config returns the current configuration.
func (e *Env) Config() apis.Config {
	return e.load().cfg
}

// SetConfig replaces the configuration and rebuilds the resolver unless pinned.
func (e *Env) SetConfig(cfg apis.Config) {
	e.update(func(next *state) {
		next.cfg = cfg
	})
}

// Builder returns the current builder.
func (e *Env) Builder() apis.Builder {
	return e.load().bld
}

// SetBuilder replaces the builder and rebuilds the resolver unless pinned.
func (e *Env) SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	e.update(func(next *state) {
		next.bld = b
	})
}

// SetExt replaces the extension payload and rebuilds the resolver unless pinned.
func (e *Env) SetExt(ext any) {
	e.update(func(next *state) {
		next.ext = ext
	})
}

// ExtAs returns the extension payload of e as type T.
func ExtAs[T any](e *Env) (T, bool) {
	ext, ok := e.load().ext.(T)
	return ext, ok
}

// Resolver returns the current resolver.
func (e *Env) Resolver() apis.Resolver {
	return e.load().res
}

// SetResolver installs res and pins it.
func (e *Env) SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	e.publish(func(next *state) {
		next.res = res
		next.pres = true
	})
}

// IsResolverPinned reports whether the resolver is pinned.
func (e *Env) IsResolverPinned() bool {
	return e.load().pres
}

// PinResolver stops automatic resolver rebuilds.
func (e *Env) PinResolver() {
	e.publish(func(next *state) { next.pres = true })
}

// UnpinResolver re-enables automatic resolver rebuilds.
func (e *Env) UnpinResolver() {
	e.publish(func(next *state) { next.pres = false })
}

// SetAll replaces every component in one step. A nil cfg or bld keeps the
// current value, ext is always replaced, and a nil res is rebuilt (unpinned).
func (e *Env) SetAll(cfg *apis.Config, ext any, res apis.Resolver, bld apis.Builder) {
	if e == nil {
		return
	}
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	old := e.st.Load()
	next := &state{cfg: old.cfg, ext: ext, bld: old.bld}
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	if res != nil {
		next.res, next.pres = res, true
	} else {
		next.res = next.bld.BuildResolver(next.cfg, old.res, next.ext)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	e.st.Store(next)
}

// update derives a new snapshot via mutate and rebuilds the resolver unless pinned.
func (e *Env) update(mutate func(next *state)) {
	if e == nil {
		return
	}
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	old := e.st.Load()
	next := *old
	mutate(&next)
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, old.res, next.ext)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	e.st.Store(&next)
}

// publish derives a new snapshot via mutate without rebuilding anything.
func (e *Env) publish(mutate func(next *state)) {
	if e == nil {
		return
	}
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	next := *e.st.Load()
	mutate(&next)
	e.st.Store(&next)
}

// ConstructAs is Env.Construct followed by a type check against T.
func ConstructAs[T any](e *Env, name string, ns apis.Namespace, p apis.Predicate, fuzzy bool, a args.Args) (T, error) {
	s := e.load()
	return category.ConstructAs[T](s.res, s.cfg, name, ns, p, fuzzy, a)
}
