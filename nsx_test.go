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
	"runtime"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
	"dirpx.dev/nsx/builder"
	"dirpx.dev/nsx/category"
	"dirpx.dev/nsx/config"
	"dirpx.dev/nsx/registry"
)

// ---- Test doubles -----------------------------------------------------------

type mockBuilder struct {
	mu         sync.Mutex
	resCounter int
	lastCfg    apis.Config
	lastExt    any
	nilRes     bool
	inner      apis.Builder
}

func (b *mockBuilder) BuildMatcher(cfg apis.Config) apis.Matcher {
	return builder.New().BuildMatcher(cfg)
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, prev apis.Resolver, ext any) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resCounter++
	b.lastCfg = cfg
	b.lastExt = ext
	if b.nilRes {
		return nil
	}
	if b.inner == nil {
		b.inner = builder.New()
	}
	return &mockResolver{id: b.resCounter, next: b.inner.BuildResolver(cfg, prev, ext)}
}

func (b *mockBuilder) builds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resCounter
}

type mockResolver struct {
	id   int
	next apis.Resolver
}

func (r *mockResolver) Resolve(q apis.Query, cfg apis.Config) (apis.Match, error) {
	return r.next.Resolve(q, cfg)
}

// ---- Fixtures ---------------------------------------------------------------

type widget struct{ size int }

var widgets = registry.Classes("widgets",
	&apis.Class{
		Name:   "Widget",
		Params: []string{"size"},
		New: func(a args.Args) (any, error) {
			size, err := args.Optional(a, 0, "size", 1)
			if err != nil {
				return nil, err
			}
			return &widget{size: size}, nil
		},
	},
	&apis.Class{
		Name: "Gadget",
		New:  func(args.Args) (any, error) { return &widget{}, nil },
	},
)

var helpers = registry.NewStatic("helpers",
	apis.Entry{Name: "double", Value: category.Func(func(a args.Args) (any, error) {
		x, err := args.Required[float64](a, 0, "x")
		if err != nil {
			return nil, err
		}
		return 2 * x, nil
	})},
	apis.Entry{Name: "Widget", Value: widgets.Entries()[0].Value},
)

// ---- Tests ------------------------------------------------------------------

func TestNew_Defaults(t *testing.T) {
	e := New()
	require.Equal(t, config.DefaultConfig(), e.Config())
	require.NotNil(t, e.Builder())
	require.NotNil(t, e.Resolver())
	require.False(t, e.IsResolverPinned())
}

func TestNew_Options(t *testing.T) {
	b := &mockBuilder{}
	cfg := config.NewConfig(config.WithMinScore(0.5))
	e := New(WithConfig(cfg), WithBuilder(b), WithExt("payload"))

	require.Equal(t, 1, b.builds())
	require.Equal(t, cfg, b.lastCfg)
	require.Equal(t, "payload", b.lastExt)
	require.Same(t, b, e.Builder())

	ext, ok := ExtAs[string](e)
	require.True(t, ok)
	require.Equal(t, "payload", ext)
	_, ok = ExtAs[int](e)
	require.False(t, ok)
}

func TestNew_NilResolverPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNilResolver) {
			t.Fatalf("recover() = %v, want ErrNilResolver", r)
		}
	}()
	New(WithBuilder(&mockBuilder{nilRes: true}))
}

func TestNilEnv_UsesDefaults(t *testing.T) {
	var e *Env
	require.Equal(t, config.DefaultConfig(), e.Config())

	c, err := e.Class("Widgte", widgets, true)
	require.NoError(t, err)
	require.Equal(t, "Widget", c.Name)
}

func TestNilEnv_WritersAreNoops(t *testing.T) {
	var e *Env
	require.NotPanics(t, func() {
		e.SetConfig(config.NewConfig(config.WithMinScore(0.9)))
		e.SetBuilder(&mockBuilder{})
		e.SetExt(1)
		e.SetResolver(e.Resolver())
		e.PinResolver()
		e.UnpinResolver()
		e.SetAll(nil, nil, nil, nil)
	})
	require.Equal(t, config.DefaultConfig(), e.Config())
	require.False(t, e.IsResolverPinned())
}

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	e := New(WithBuilder(b))
	res0 := e.Resolver()

	cfg := config.NewConfig(config.WithMinScore(0.9))
	e.SetConfig(cfg)

	if b.builds() != 2 {
		t.Fatalf("builds = %d, want 2", b.builds())
	}
	if e.Resolver() == res0 {
		t.Fatalf("resolver should rebuild on SetConfig")
	}
	if e.Config().MinScore != 0.9 {
		t.Fatalf("MinScore = %v, want 0.9", e.Config().MinScore)
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	e := New(WithBuilder(b))

	pinned := &mockResolver{id: -1, next: builder.New().BuildResolver(e.Config(), nil, nil)}
	e.SetResolver(pinned)
	if !e.IsResolverPinned() {
		t.Fatalf("SetResolver should pin")
	}

	before := b.builds()
	e.SetConfig(config.NewConfig(config.WithMaxSuggestions(3)))
	if b.builds() != before {
		t.Fatalf("pinned resolver should not rebuild on SetConfig")
	}
	if e.Resolver() != pinned {
		t.Fatalf("pinned resolver replaced")
	}
	if e.Config().MaxSuggestions != 3 {
		t.Fatalf("config not applied while pinned")
	}

	e.SetResolver(nil)
	if e.Resolver() != pinned {
		t.Fatalf("SetResolver(nil) should be ignored")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	e := New(WithBuilder(b))

	e.PinResolver()
	res1 := e.Resolver()
	e.SetConfig(config.NewConfig(config.WithMinScore(0.2)))
	if e.Resolver() != res1 {
		t.Fatalf("pinned resolver should not rebuild on SetConfig")
	}

	e.UnpinResolver()
	if e.IsResolverPinned() {
		t.Fatalf("UnpinResolver did not unpin")
	}
	e.SetConfig(config.NewConfig(config.WithMinScore(0.3)))
	if e.Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	e := New()
	b := &mockBuilder{}
	e.SetBuilder(b)
	require.Equal(t, 1, b.builds())
	require.Same(t, b, e.Builder())

	e.SetBuilder(nil)
	require.Same(t, b, e.Builder(), "SetBuilder(nil) should be ignored")

	e.PinResolver()
	b2 := &mockBuilder{}
	e.SetBuilder(b2)
	require.Equal(t, 0, b2.builds())
	require.Same(t, b2, e.Builder())
}

func TestSetExt_Rebuilds_Unpinned_and_PassesValue(t *testing.T) {
	b := &mockBuilder{}
	e := New(WithBuilder(b))

	type extCfg struct{ X int }
	e.SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	ec, ok := got.(extCfg)
	if !ok || ec.X != 42 {
		t.Fatalf("builder did not receive ext properly: %#v", got)
	}

	e.PinResolver()
	before := b.builds()
	e.SetExt(extCfg{X: 7})
	if b.builds() != before {
		t.Fatalf("SetExt should not rebuild when the resolver is pinned")
	}
	if ec, _ := ExtAs[extCfg](e); ec.X != 7 {
		t.Fatalf("ext = %d, want 7", ec.X)
	}
}

func TestSetAll(t *testing.T) {
	b := &mockBuilder{}
	e := New()

	cfg := config.NewConfig(config.WithMinScore(0.4))
	e.SetAll(&cfg, "x", nil, b)
	require.Equal(t, 1, b.builds())
	require.Equal(t, cfg, e.Config())
	require.Equal(t, "x", b.lastExt)
	require.False(t, e.IsResolverPinned())

	res := &mockResolver{id: -1, next: e.Resolver()}
	e.SetAll(nil, nil, res, nil)
	require.Equal(t, 1, b.builds())
	require.Equal(t, cfg, e.Config(), "nil cfg keeps current")
	require.Same(t, b, e.Builder(), "nil builder keeps current")
	require.True(t, e.IsResolverPinned())
	require.Equal(t, apis.Resolver(res), e.Resolver())
	_, ok := ExtAs[string](e)
	require.False(t, ok, "ext is always replaced")
}

func TestSetAll_NilResolverPanics(t *testing.T) {
	e := New()
	require.PanicsWithError(t, ErrNilResolver.Error(), func() {
		e.SetAll(nil, nil, nil, &mockBuilder{nilRes: true})
	})
	require.NotNil(t, e.Resolver(), "failed SetAll must not publish")
}

func TestEnv_Lookups(t *testing.T) {
	e := New()

	m, err := e.Match(apis.Query{Name: "Gadgte", Namespace: widgets, Predicate: apis.IsClass, Fuzzy: true})
	require.NoError(t, err)
	require.Equal(t, "Gadget", m.Name)
	require.Equal(t, "fuzzy", m.Strategy)

	v, err := e.Resolve("Widget", widgets, apis.Any, false)
	require.NoError(t, err)
	require.Equal(t, "Widget", v.(*apis.Class).Name)

	_, err = e.Resolve("Widgte", widgets, apis.Any, false)
	require.ErrorIs(t, err, apis.ErrNameNotFound)

	fn, err := e.Function("duble", helpers, true)
	require.NoError(t, err)
	require.IsType(t, category.Func(nil), fn)

	_, err = e.Function("Widget", helpers, false)
	require.ErrorIs(t, err, apis.ErrNameNotFound)
}

func TestEnv_ConstructAndCall(t *testing.T) {
	e := New()

	v, err := e.Construct("Widget", widgets, apis.IsClass, false, args.New(map[string]any{"size": 3}))
	require.NoError(t, err)
	require.Equal(t, &widget{size: 3}, v)

	w, err := ConstructAs[*widget](e, "Widgt", widgets, apis.IsClass, true, args.New(nil, 5))
	require.NoError(t, err)
	require.Equal(t, 5, w.size)

	_, err = e.Construct("Widget", widgets, apis.IsClass, false, args.New(map[string]any{"colour": "red"}))
	require.ErrorIs(t, err, apis.ErrConstruction)
	require.ErrorIs(t, err, args.ErrUnexpected)

	out, err := e.Call("double", helpers, false, args.New(nil, 2.5))
	require.NoError(t, err)
	require.Equal(t, 5.0, out)

	_, err = e.Call("double", helpers, false, args.New(nil))
	require.ErrorIs(t, err, args.ErrMissing)
}

func TestEnv_Search(t *testing.T) {
	e := New()
	got, err := e.Search("dg", widgets, apis.Any)
	require.NoError(t, err)
	sort.Strings(got)
	require.Equal(t, []string{"Gadget", "Widget"}, got)

	_, err = e.Search("x", nil, apis.Any)
	require.ErrorIs(t, err, apis.ErrNilNamespace)
}

func TestEnv_Concurrent_With_SetConfig(t *testing.T) {
	e := New(WithBuilder(&mockBuilder{}))

	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if _, err := e.Class("Widget", widgets, true); err != nil {
					t.Errorf("Class: %v", err)
					return
				}
				_ = e.Config()
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			e.SetConfig(config.NewConfig(
				config.WithMinScore(float64(i%5)/10),
				config.WithMaxSuggestions(1+i%4),
			))
			if i%7 == 0 {
				e.SetExt(i)
			}
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
