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

package introspect_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/introspect"
	"dirpx.dev/nsx/registry"
)

func bar() {}

var (
	foo   = &apis.Class{Name: "Foo"}
	adam  = &apis.Class{Name: "Adam", Bases: []string{apis.BaseOptimizer}}
	step  = &apis.Class{Name: "StepLR", Bases: []string{apis.BaseLRScheduler}}
	relu  = &apis.Class{Name: "ReLU", Bases: []string{apis.BaseActivation}}
	mixed = registry.NewStatic("mixed",
		apis.Entry{Name: "Foo", Value: foo},
		apis.Entry{Name: "bar", Value: bar},
		apis.Entry{Name: "Adam", Value: adam},
		apis.Entry{Name: "StepLR", Value: step},
		apis.Entry{Name: "ReLU", Value: relu},
		apis.Entry{Name: "version", Value: "1.0"},
	)
)

func TestCollect_Predicates(t *testing.T) {
	cases := []struct {
		p    apis.Predicate
		want []string
	}{
		{apis.Any, []string{"Foo", "bar", "Adam", "StepLR", "ReLU", "version"}},
		{apis.IsClass, []string{"Foo", "Adam", "StepLR", "ReLU"}},
		{apis.IsFunction, []string{"bar"}},
		{apis.IsOptimizerClass, []string{"Adam"}},
		{apis.IsSchedulerClass, []string{"StepLR"}},
		{apis.IsActivationClass, []string{"ReLU"}},
	}
	for _, tc := range cases {
		t.Run(tc.p.String(), func(t *testing.T) {
			m, err := introspect.Collect(mixed, tc.p)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, m.Names()); diff != "" {
				t.Fatalf("Names mismatch (-want +got):\n%s", diff)
			}
			if m.Len() != len(tc.want) {
				t.Fatalf("Len: got %d, want %d", m.Len(), len(tc.want))
			}
		})
	}
}

func TestCollect_FirstWinsAfterFiltering(t *testing.T) {
	shadowed := &apis.Class{Name: "Adam", Bases: []string{apis.BaseOptimizer}}
	ns := registry.NewStatic("layers",
		apis.Entry{Name: "Adam", Value: "not a class"},
		apis.Entry{Name: "Adam", Value: adam},
		apis.Entry{Name: "Adam", Value: shadowed},
	)

	m, err := introspect.Collect(ns, apis.IsClass)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Get("Adam"); v != adam {
		t.Fatalf("got %v, want the first eligible entry", v)
	}

	m, err = introspect.Collect(ns, apis.Any)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Get("Adam"); v != "not a class" {
		t.Fatalf("got %v, want the first entry", v)
	}
	if m.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", m.Len())
	}
}

func TestCollect_Errors(t *testing.T) {
	if _, err := introspect.Collect(nil, apis.Any); !errors.Is(err, apis.ErrNilNamespace) {
		t.Fatalf("got %v, want ErrNilNamespace", err)
	}

	_, err := introspect.Collect(mixed, apis.Predicate(200))
	var perr *apis.PredicateError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *PredicateError", err)
	}
	if perr.Name != "" || !errors.Is(err, apis.ErrUnknownPredicate) {
		t.Fatalf("got %+v", perr)
	}
}

func TestCollect_UnknownPredicateOnEmptyNamespace(t *testing.T) {
	_, err := introspect.Collect(registry.NewStatic("empty"), apis.Predicate(42))
	if !errors.Is(err, apis.ErrPredicate) || !errors.Is(err, apis.ErrUnknownPredicate) {
		t.Fatalf("got %v, want unknown predicate error", err)
	}
}

func TestMembers_Entries(t *testing.T) {
	m, err := introspect.Collect(mixed, apis.Any)
	if err != nil {
		t.Fatal(err)
	}
	got := m.Entries()
	if diff := cmp.Diff(m.Names(), names(got)); diff != "" {
		t.Fatalf("entry order (-names +entries):\n%s", diff)
	}
	if got[0].Value != foo || got[2].Value != adam {
		t.Fatalf("entries do not carry the namespace values: %+v", got)
	}
}

func TestCollect_DoesNotMutate(t *testing.T) {
	reg := registry.New("r")
	_ = reg.Register("b", 1)
	_ = reg.Register("a", bar)
	before := reg.Entries()

	if _, err := introspect.Collect(reg, apis.IsFunction); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(names(before), names(reg.Entries())); diff != "" {
		t.Fatalf("namespace changed (-before +after):\n%s", diff)
	}
}

func TestTest(t *testing.T) {
	var nilClass *apis.Class
	var nilFunc func()
	cases := []struct {
		name string
		p    apis.Predicate
		v    any
		want bool
	}{
		{"class is class", apis.IsClass, foo, true},
		{"nil class", apis.IsClass, nilClass, false},
		{"func is function", apis.IsFunction, bar, true},
		{"nil func", apis.IsFunction, nilFunc, false},
		{"class is not function", apis.IsFunction, foo, false},
		{"string", apis.IsClass, "x", false},
		{"nil", apis.Any, nil, true},
		{"optimizer", apis.IsOptimizerClass, adam, true},
		{"not optimizer", apis.IsOptimizerClass, step, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := introspect.Test(tc.p, tc.v)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func names(entries []apis.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
