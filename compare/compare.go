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

// Package compare diffs two structurally identical models exposed as
// namespaces of named parameter tensors.
package compare

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/introspect"
	uref "dirpx.dev/nsx/utils/reflect"
)

// ErrArchitectureMismatch is returned when the two models do not expose
// the same parameter names.
var ErrArchitectureMismatch = errors.New("nsx(compare): parameter names differ, ensure the modules share the same architecture")

// ErrNotTensor is returned when a compared parameter is neither a
// []float64 tensor nor a float64 scalar.
var ErrNotTensor = errors.New("nsx(compare): parameter is not a tensor")

// Report describes a comparison.
type Report struct {
	// Total is the number of parameters each model exposes.
	Total int
	// Compared is the number of parameters that were compared.
	Compared int
	// Differences lists differing parameters in source order.
	Differences []string
}

// Equal reports whether no compared parameter differs.
func (r Report) Equal() bool { return len(r.Differences) == 0 }

// Modules compares the parameters of source and target by name. With
// weightOnly set only "*.weight" and "*.bias" parameters are compared.
// Differences are logged at info level, each diff at debug level.
func Modules(source, target apis.Namespace, weightOnly bool, log zerolog.Logger) (Report, error) {
	src, err := introspect.Collect(source, apis.Any)
	if err != nil {
		return Report{}, err
	}
	dst, err := introspect.Collect(target, apis.Any)
	if err != nil {
		return Report{}, err
	}
	if err := sameNames(src, dst); err != nil {
		return Report{}, err
	}

	rep := Report{Total: src.Len()}
	for _, e := range src.Entries() {
		name := e.Name
		if weightOnly && !isWeight(name) {
			continue
		}
		a, err := tensor(name, e.Value)
		if err != nil {
			return Report{}, err
		}
		v, _ := dst.Get(name)
		b, err := tensor(name, v)
		if err != nil {
			return Report{}, err
		}
		rep.Compared++
		if diff := cmp.Diff(a, b, cmpopts.EquateEmpty()); diff != "" {
			rep.Differences = append(rep.Differences, name)
			log.Debug().Str("param", name).Msgf("parameter differs (-source +target):\n%s", diff)
		}
	}
	if !rep.Equal() {
		log.Info().
			Int("differences", len(rep.Differences)).
			Int("total", rep.Total).
			Strs("params", rep.Differences).
			Msg("modules differ")
	}
	return rep, nil
}

func tensor(name string, v any) ([]float64, error) {
	switch t := v.(type) {
	case []float64:
		return t, nil
	case float64:
		return []float64{t}, nil
	}
	return nil, fmt.Errorf("%w: %q is %s", ErrNotTensor, name, uref.TypeName(v))
}

func isWeight(name string) bool {
	return strings.HasSuffix(name, ".weight") || strings.HasSuffix(name, ".bias") ||
		name == "weight" || name == "bias"
}

func sameNames(src, dst *introspect.Members) error {
	var missing, extra []string
	for _, n := range src.Names() {
		if _, ok := dst.Get(n); !ok {
			missing = append(missing, n)
		}
	}
	for _, n := range dst.Names() {
		if _, ok := src.Get(n); !ok {
			extra = append(extra, n)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return fmt.Errorf("%w: missing in target %v, missing in source %v", ErrArchitectureMismatch, missing, extra)
}
