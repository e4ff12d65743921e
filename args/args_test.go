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

package args_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dirpx.dev/nsx/args"
)

func TestLookup(t *testing.T) {
	a := args.New(map[string]any{"lr": 0.1}, "params")

	if v, ok, err := a.Lookup(0, "params"); err != nil || !ok || v != "params" {
		t.Fatalf("Lookup(0): got (%v,%v,%v)", v, ok, err)
	}
	if v, ok, err := a.Lookup(1, "lr"); err != nil || !ok || v != 0.1 {
		t.Fatalf("Lookup(lr): got (%v,%v,%v)", v, ok, err)
	}
	if _, ok, err := a.Lookup(-1, "momentum"); err != nil || ok {
		t.Fatalf("Lookup(momentum): got (%v,%v), want absent", ok, err)
	}
	if _, _, err := args.New(map[string]any{"params": 1}, 2).Lookup(0, "params"); !errors.Is(err, args.ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}
	if !a.Has(1, "lr") || a.Has(2, "gamma") {
		t.Fatalf("Has mismatch")
	}
}

func TestRequired(t *testing.T) {
	a := args.New(map[string]any{
		"lr":         1,
		"step":       2.0,
		"frac":       2.5,
		"milestones": []any{1, 2.0, 3},
		"name":       "cos",
		"nothing":    nil,
	})

	lr, err := args.Required[float64](a, -1, "lr")
	require.NoError(t, err)
	require.Equal(t, 1.0, lr)

	step, err := args.Required[int](a, -1, "step")
	require.NoError(t, err)
	require.Equal(t, 2, step)

	ms, err := args.Required[[]int](a, -1, "milestones")
	require.NoError(t, err)
	if diff := cmp.Diff([]int{1, 2, 3}, ms); diff != "" {
		t.Fatalf("milestones mismatch (-want +got):\n%s", diff)
	}

	cases := []struct {
		key  string
		want error
	}{
		{"missing", args.ErrMissing},
		{"frac", args.ErrType},
		{"name", args.ErrType},
		{"nothing", args.ErrType},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			_, err := args.Required[int](a, -1, tc.key)
			require.ErrorIs(t, err, tc.want)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestOptional(t *testing.T) {
	a := args.New(map[string]any{"gamma": 0.5}, "opt", 10)

	gamma, err := args.Optional(a, 2, "gamma", 0.1)
	require.NoError(t, err)
	require.Equal(t, 0.5, gamma)

	size, err := args.Optional(a, 1, "step_size", 1)
	require.NoError(t, err)
	require.Equal(t, 10, size)

	mode, err := args.Optional(a, 3, "mode", "triangular")
	require.NoError(t, err)
	require.Equal(t, "triangular", mode)

	_, err = args.Optional(a, -1, "gamma", "x")
	require.ErrorIs(t, err, args.ErrType)
}

func TestCheckAndFilter(t *testing.T) {
	a := args.New(map[string]any{"lr": 1, "zeta": 2, "beta": 3})

	require.NoError(t, a.Check(nil))
	require.NoError(t, a.Check([]string{"lr", "zeta", "beta"}))

	err := a.Check([]string{"lr"})
	require.ErrorIs(t, err, args.ErrUnexpected)
	// Reported deterministically: the first offending key in sorted order.
	require.Contains(t, err.Error(), `"beta"`)

	got := args.Filter(a.Keyword, []string{"lr", "gamma"})
	if diff := cmp.Diff(map[string]any{"lr": 1}, got); diff != "" {
		t.Fatalf("Filter mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_FirstErrorWins(t *testing.T) {
	r := args.NewReader(args.New(map[string]any{"b": "x"}))
	a := args.Req[int](r, -1, "a")
	b := args.Req[int](r, -1, "b")
	c := args.Opt(r, -1, "c", 7)

	require.ErrorIs(t, r.Err(), args.ErrMissing)
	require.NotErrorIs(t, r.Err(), args.ErrType)
	require.Equal(t, 0, a)
	require.Equal(t, 0, b)
	require.Equal(t, 7, c)

	r.Fail(errors.New("later"))
	require.ErrorIs(t, r.Err(), args.ErrMissing)
}

func TestReader_Success(t *testing.T) {
	r := args.NewReader(args.New(map[string]any{"gamma": 0.9}, "opt", 3))
	size := args.Req[int](r, 1, "step_size")
	gamma := args.Opt(r, 2, "gamma", 0.1)
	require.NoError(t, r.Err())
	require.Equal(t, 3, size)
	require.Equal(t, 0.9, gamma)
}
