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

package params_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"dirpx.dev/nsx/params"
)

func TestMerge(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	base := map[string]any{"lr": 0.1, "epochs": 10, "name": "run", "seed": nil}
	err := params.Merge(base, map[string]any{"lr": 0.01, "epochs": "20", "seed": 7}, log)
	require.NoError(t, err)

	want := map[string]any{"lr": 0.01, "epochs": "20", "name": "run", "seed": 7}
	if diff := cmp.Diff(want, base); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
	// Only epochs changed type; a nil base value never warns.
	if n := strings.Count(buf.String(), "overriding anyway"); n != 1 {
		t.Fatalf("got %d warnings, want 1:\n%s", n, buf.String())
	}
	require.Contains(t, buf.String(), `"param":"epochs"`)
}

func TestMerge_UnknownKeyWritesNothing(t *testing.T) {
	base := map[string]any{"lr": 0.1}
	err := params.Merge(base, map[string]any{"lr": 0.5, "momentum": 0.9}, zerolog.Nop())
	require.ErrorIs(t, err, params.ErrUnknownKey)
	require.Equal(t, map[string]any{"lr": 0.1}, base)
}

func TestMerge_Empty(t *testing.T) {
	base := map[string]any{"lr": 0.1}
	require.NoError(t, params.Merge(base, nil, zerolog.Nop()))
	require.Equal(t, map[string]any{"lr": 0.1}, base)
}

type hparams struct {
	LR      float64 `yaml:"lr"`
	Epochs  int     `yaml:"epochs"`
	Name    string
	Extra   any   `yaml:"extra,omitempty"`
	Layers  []int `yaml:"layers"`
	private int
}

func TestMergeStruct(t *testing.T) {
	var buf bytes.Buffer
	p := hparams{LR: 0.1, Epochs: 10, Name: "run", Extra: 1}
	err := params.MergeStruct(&p, map[string]any{
		"lr":     0.5,
		"epochs": 20.0,
		"Name":   "tuned",
		"extra":  "x",
		"layers": []int{4, 2},
	}, zerolog.New(&buf))
	require.NoError(t, err)

	want := hparams{LR: 0.5, Epochs: 20, Name: "tuned", Extra: "x", Layers: []int{4, 2}}
	if diff := cmp.Diff(want, p, cmp.AllowUnexported(hparams{})); diff != "" {
		t.Fatalf("MergeStruct mismatch (-want +got):\n%s", diff)
	}
	// epochs converted from float64, extra changed dynamic type.
	require.Equal(t, 2, strings.Count(buf.String(), "overriding anyway"))
}

func TestMergeStruct_Errors(t *testing.T) {
	cases := []struct {
		name     string
		dst      any
		override map[string]any
		want     error
	}{
		{"not a pointer", hparams{}, nil, params.ErrNotStruct},
		{"nil pointer", (*hparams)(nil), nil, params.ErrNotStruct},
		{"unknown key", &hparams{}, map[string]any{"momentum": 0.9}, params.ErrUnknownKey},
		{"unexported", &hparams{}, map[string]any{"private": 1}, params.ErrUnknownKey},
		{"incompatible", &hparams{}, map[string]any{"lr": "fast"}, params.ErrIncompatible},
		{"nil scalar", &hparams{}, map[string]any{"epochs": nil}, params.ErrIncompatible},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := params.MergeStruct(tc.dst, tc.override, zerolog.Nop())
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMergeStruct_AllOrNothing(t *testing.T) {
	p := hparams{LR: 0.1}
	err := params.MergeStruct(&p, map[string]any{"lr": 0.2, "epochs": "many"}, zerolog.Nop())
	require.ErrorIs(t, err, params.ErrIncompatible)
	require.Equal(t, 0.1, p.LR)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, params.Print(&buf, map[string]any{"lr": 0.01, "epochs": 3}))
	require.Equal(t, "epochs: 3\nlr: 0.01\n", buf.String())
}
