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

// Package category specializes the object resolver for classes, functions
// and constructible categories such as optimizers and schedulers.
package category

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
	uref "dirpx.dev/nsx/utils/reflect"
)

var (
	// ErrNotConstructible is wrapped when the resolved value is not a *apis.Class.
	ErrNotConstructible = errors.New("nsx(category): value is not a class")
	// ErrNotCallable is wrapped when the resolved function has an unsupported signature.
	ErrNotCallable = errors.New("nsx(category): value is not callable with args")
	// ErrNilResult is wrapped when a constructor returns neither a value nor an error.
	ErrNilResult = errors.New("nsx(category): constructor returned nil")
)

// Func is the signature Call can invoke.
type Func = func(a args.Args) (any, error)

// Resolve looks up name in ns among entries satisfying p.
func Resolve(res apis.Resolver, cfg apis.Config, name string, ns apis.Namespace, p apis.Predicate, fuzzy bool) (apis.Match, error) {
	return res.Resolve(apis.Query{Name: name, Namespace: ns, Predicate: p, Fuzzy: fuzzy}, cfg)
}

// Class returns the class itself, not an instance.
func Class(res apis.Resolver, cfg apis.Config, name string, ns apis.Namespace, fuzzy bool) (*apis.Class, error) {
	m, err := Resolve(res, cfg, name, ns, apis.IsClass, fuzzy)
	if err != nil {
		return nil, err
	}
	return m.Value.(*apis.Class), nil
}

// Function returns the resolved func value.
func Function(res apis.Resolver, cfg apis.Config, name string, ns apis.Namespace, fuzzy bool) (any, error) {
	m, err := Resolve(res, cfg, name, ns, apis.IsFunction, fuzzy)
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

// Construct resolves a class among entries satisfying p and instantiates it
// with a. Resolution failures are returned unchanged; everything that goes
// wrong afterwards is a *apis.ConstructionError.
func Construct(res apis.Resolver, cfg apis.Config, name string, ns apis.Namespace, p apis.Predicate, fuzzy bool, a args.Args) (any, error) {
	v, _, err := construct(res, cfg, name, ns, p, fuzzy, a)
	return v, err
}

// construct is Construct that also reports the resolved class name.
func construct(res apis.Resolver, cfg apis.Config, name string, ns apis.Namespace, p apis.Predicate, fuzzy bool, a args.Args) (any, string, error) {
	if p == apis.Any {
		p = apis.IsClass
	}
	m, err := Resolve(res, cfg, name, ns, p, fuzzy)
	if err != nil {
		return nil, "", err
	}
	c, ok := m.Value.(*apis.Class)
	if !ok {
		return nil, m.Name, &apis.ConstructionError{
			Name:      m.Name,
			Namespace: ns.Label(),
			Err:       fmt.Errorf("%w: %s", ErrNotConstructible, uref.TypeName(m.Value)),
		}
	}
	v, err := New(c, ns.Label(), a)
	return v, m.Name, err
}

// ConstructAs is Construct followed by a type check against T.
func ConstructAs[T any](res apis.Resolver, cfg apis.Config, name string, ns apis.Namespace, p apis.Predicate, fuzzy bool, a args.Args) (T, error) {
	var zero T
	v, resolved, err := construct(res, cfg, name, ns, p, fuzzy, a)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &apis.ConstructionError{
			Name:      resolved,
			Namespace: ns.Label(),
			Err:       fmt.Errorf("constructed %s, want %s", uref.TypeName(v), reflect.TypeOf((*T)(nil)).Elem()),
		}
	}
	return t, nil
}

// New instantiates c. Unknown keywords, constructor errors and constructor
// panics all surface as *apis.ConstructionError.
func New(c *apis.Class, namespace string, a args.Args) (v any, err error) {
	fail := func(cause error) error {
		return &apis.ConstructionError{Name: c.Name, Namespace: namespace, Err: cause}
	}
	if c.New == nil {
		return nil, fail(ErrNotConstructible)
	}
	if err := a.Check(c.Params); err != nil {
		return nil, fail(err)
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fail(fmt.Errorf("panic: %v", r))
		}
	}()
	v, err = c.New(a)
	if err != nil {
		return nil, fail(err)
	}
	if uref.IsNil(v) {
		return nil, fail(ErrNilResult)
	}
	return v, nil
}

// Call resolves a function and invokes it with a. The function must have
// the Func signature.
func Call(res apis.Resolver, cfg apis.Config, name string, ns apis.Namespace, fuzzy bool, a args.Args) (v any, err error) {
	m, err := Resolve(res, cfg, name, ns, apis.IsFunction, fuzzy)
	if err != nil {
		return nil, err
	}
	fail := func(cause error) error {
		return &apis.ConstructionError{Name: m.Name, Namespace: ns.Label(), Err: cause}
	}
	fn, ok := m.Value.(Func)
	if !ok {
		return nil, fail(fmt.Errorf("%w: %s", ErrNotCallable, uref.TypeName(m.Value)))
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fail(fmt.Errorf("panic: %v", r))
		}
	}()
	if v, err = fn(a); err != nil {
		return nil, fail(err)
	}
	return v, nil
}
