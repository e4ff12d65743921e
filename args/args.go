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

package args

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	// ErrMissing is returned when a required argument was not supplied.
	ErrMissing = errors.New("nsx(args): missing required argument")
	// ErrDuplicate is returned when an argument is given both positionally and by keyword.
	ErrDuplicate = errors.New("nsx(args): multiple values for argument")
	// ErrType is returned when an argument cannot be converted to the requested type.
	ErrType = errors.New("nsx(args): argument has wrong type")
	// ErrUnexpected is returned when a keyword is not accepted by the callee.
	ErrUnexpected = errors.New("nsx(args): unexpected keyword argument")
)

// Args carries caller-supplied construction arguments.
// Positional arguments are addressed by index, keyword arguments by name.
type Args struct {
	// Positional holds arguments in call order.
	Positional []any
	// Keyword holds named arguments.
	Keyword map[string]any
}

// New returns Args with the given positional values and keyword map.
// kw may be nil.
func New(kw map[string]any, positional ...any) Args {
	return Args{Positional: positional, Keyword: kw}
}

// Lookup returns the argument at position pos or under keyword key.
// A negative pos means keyword-only. It is an error to supply both.
func (a Args) Lookup(pos int, key string) (any, bool, error) {
	var (
		v     any
		found bool
	)
	if pos >= 0 && pos < len(a.Positional) {
		v, found = a.Positional[pos], true
	}
	if kv, ok := a.Keyword[key]; ok && key != "" {
		if found {
			return nil, false, fmt.Errorf("%w %q", ErrDuplicate, key)
		}
		v, found = kv, true
	}
	return v, found, nil
}

// Check rejects keyword arguments not listed in accepted.
// A nil accepted list accepts everything.
func (a Args) Check(accepted []string) error {
	if accepted == nil {
		return nil
	}
	allowed := make(map[string]struct{}, len(accepted))
	for _, k := range accepted {
		allowed[k] = struct{}{}
	}
	var bad []string
	for k := range a.Keyword {
		if _, ok := allowed[k]; !ok {
			bad = append(bad, k)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("%w %q", ErrUnexpected, bad[0])
}

// Filter returns the subset of kw whose keys appear in accepted.
// It is the lenient counterpart of Check for callers that pass one keyword
// map to several constructors.
func Filter(kw map[string]any, accepted []string) map[string]any {
	out := make(map[string]any, len(kw))
	for _, k := range accepted {
		if v, ok := kw[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Required extracts a mandatory argument converted to T.
func Required[T any](a Args, pos int, key string) (T, error) {
	var zero T
	v, ok, err := a.Lookup(pos, key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("%w %q", ErrMissing, key)
	}
	return convert[T](key, v)
}

// Optional extracts an argument converted to T, or def when absent.
func Optional[T any](a Args, pos int, key string, def T) (T, error) {
	v, ok, err := a.Lookup(pos, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return convert[T](key, v)
}

// convert coerces v to T. Numeric values convert between kinds the way YAML
// and JSON decoders hand them out (int for 10, float64 for 1e-3), and
// []any is converted element-wise into typed slices.
func convert[T any](key string, v any) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return zero, fmt.Errorf("%w: %q is nil, want %s", ErrType, key, want)
	}
	out, ok := coerce(rv, want)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %s, want %s", ErrType, key, rv.Type(), want)
	}
	return out.Interface().(T), nil
}

func coerce(rv reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if rv.Type().AssignableTo(want) {
		return rv, true
	}
	if rv.Kind() == reflect.Interface && !rv.IsNil() {
		return coerce(rv.Elem(), want)
	}
	if isNumeric(rv.Kind()) && isNumeric(want.Kind()) {
		if isFloat(rv.Kind()) && !isFloat(want.Kind()) {
			f := rv.Float()
			if f != float64(int64(f)) {
				return reflect.Value{}, false
			}
		}
		return rv.Convert(want), true
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && want.Kind() == reflect.Slice {
		out := reflect.MakeSlice(want, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			e, ok := coerce(rv.Index(i), want.Elem())
			if !ok {
				return reflect.Value{}, false
			}
			out.Index(i).Set(e)
		}
		return out, true
	}
	return reflect.Value{}, false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
