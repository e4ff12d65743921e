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

// Package params merges override parameters into base parameters, the way
// hyper-parameter search results override parsed defaults.
package params

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	uref "dirpx.dev/nsx/utils/reflect"
)

var (
	// ErrUnknownKey is returned when an override names a parameter the base does not have.
	ErrUnknownKey = errors.New("nsx(params): unknown parameter")
	// ErrIncompatible is returned when an override cannot be stored in a typed field.
	ErrIncompatible = errors.New("nsx(params): incompatible override")
	// ErrNotStruct is returned when MergeStruct is given something other than a struct pointer.
	ErrNotStruct = errors.New("nsx(params): target must be a non-nil pointer to a struct")
)

// Merge copies override into base in place. Every key must already exist
// in base; nothing is written unless all of them do. When the existing
// value is non-nil and of another type, a warning is logged and the value
// is overridden anyway.
func Merge(base, override map[string]any, log zerolog.Logger) error {
	for _, k := range sortedKeys(override) {
		if _, ok := base[k]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownKey, k)
		}
	}
	for _, k := range sortedKeys(override) {
		v, old := override[k], base[k]
		if old != nil && reflect.TypeOf(old) != reflect.TypeOf(v) {
			warn(log, k, reflect.TypeOf(old), v)
		}
		base[k] = v
	}
	return nil
}

// MergeStruct copies override into the struct pointed to by dst. Keys
// match the field's yaml name, then the field name. Numeric overrides are
// converted (with a warning) when the kinds differ; other mismatches fail
// with ErrIncompatible. Nothing is written unless every key applies.
func MergeStruct(dst any, override map[string]any, log zerolog.Logger) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %s", ErrNotStruct, uref.TypeName(dst))
	}
	sv := rv.Elem()
	fields := fieldIndex(sv.Type())

	type write struct {
		field reflect.Value
		value reflect.Value
	}
	writes := make([]write, 0, len(override))
	for _, k := range sortedKeys(override) {
		i, ok := fields[k]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownKey, k)
		}
		f := sv.Field(i)
		v, err := assignable(k, f, override[k], log)
		if err != nil {
			return err
		}
		writes = append(writes, write{field: f, value: v})
	}
	for _, w := range writes {
		w.field.Set(w.value)
	}
	return nil
}

// assignable returns v as a value that can be stored in f.
func assignable(key string, f reflect.Value, v any, log zerolog.Logger) (reflect.Value, error) {
	ft := f.Type()
	if v == nil {
		switch ft.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(ft), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: %q cannot be nil", ErrIncompatible, key)
	}
	vv := reflect.ValueOf(v)
	if vv.Type().AssignableTo(ft) {
		if ft.Kind() == reflect.Interface && !f.IsNil() && f.Elem().Type() != vv.Type() {
			warn(log, key, f.Elem().Type(), v)
		}
		return vv, nil
	}
	if isNumeric(vv.Kind()) && isNumeric(ft.Kind()) {
		warn(log, key, ft, v)
		return vv.Convert(ft), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %q is %s, field is %s", ErrIncompatible, key, vv.Type(), ft)
}

func warn(log zerolog.Logger, key string, want reflect.Type, v any) {
	log.Warn().
		Str("param", key).
		Str("want", want.String()).
		Str("got", fmt.Sprintf("%T", v)).
		Interface("value", v).
		Msg("override has unexpected type, overriding anyway")
}

// fieldIndex maps yaml names and Go names of exported fields to indexes.
func fieldIndex(t reflect.Type) map[string]int {
	out := make(map[string]int, t.NumField()*2)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if _, ok := out[sf.Name]; !ok {
			out[sf.Name] = i
		}
		name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			out[name] = i
		}
	}
	return out
}

func isNumeric(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Print writes p as YAML.
func Print(w io.Writer, p any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("nsx(params): encode: %w", err)
	}
	return enc.Close()
}
