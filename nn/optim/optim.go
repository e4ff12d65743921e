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

// Package optim declares the optimizer classes resolvable by name.
package optim

import (
	"errors"
	"fmt"

	"dirpx.dev/nsx"
	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
	"dirpx.dev/nsx/registry"
)

var (
	// ErrEmptyParams is returned when an optimizer is given no parameters.
	ErrEmptyParams = errors.New("nsx(optim): optimizer got an empty parameter list")
	// ErrInvalidHyperParam is returned for out-of-range hyper-parameters.
	ErrInvalidHyperParam = errors.New("nsx(optim): invalid hyper-parameter")
	// ErrShape is returned when a gradient does not match its parameter.
	ErrShape = errors.New("nsx(optim): gradient shape mismatch")
)

// Label is the namespace label of the optimizer classes.
const Label = "optim"

// Param is a flat trainable tensor with its gradient.
// A nil Grad means the parameter did not take part in the last backward pass.
type Param struct {
	Name string
	Data []float64
	Grad []float64
}

// NewParam returns a parameter initialized with data.
func NewParam(name string, data ...float64) *Param {
	return &Param{Name: name, Data: data}
}

// Optimizer updates parameters from their gradients.
type Optimizer interface {
	// Step applies one update to every parameter with a gradient.
	Step() error
	// ZeroGrad clears all gradients.
	ZeroGrad()
	// LR returns the current learning rate.
	LR() float64
	// SetLR overrides the learning rate (used by schedulers).
	SetLR(lr float64)
	// InitialLR returns the learning rate the optimizer was built with.
	InitialLR() float64
	// Params returns the optimized parameters.
	Params() []*Param
}

// base carries what every optimizer shares.
type base struct {
	params  []*Param
	lr      float64
	initial float64
}

func (b *base) LR() float64        { return b.lr }
func (b *base) SetLR(lr float64)   { b.lr = lr }
func (b *base) InitialLR() float64 { return b.initial }
func (b *base) Params() []*Param   { return b.params }

func (b *base) ZeroGrad() {
	for _, p := range b.params {
		p.Grad = nil
	}
}

// each calls fn for every parameter that has a gradient.
func (b *base) each(fn func(i int, p *Param)) error {
	for i, p := range b.params {
		if p.Grad == nil {
			continue
		}
		if len(p.Grad) != len(p.Data) {
			return fmt.Errorf("%w: %s has %d values, %d gradients", ErrShape, p.Name, len(p.Data), len(p.Grad))
		}
		fn(i, p)
	}
	return nil
}

// newBase validates the params argument and the learning rate.
func newBase(a args.Args, lr float64) (base, error) {
	params, err := args.Required[[]*Param](a, 0, "params")
	if err != nil {
		return base{}, err
	}
	if len(params) == 0 {
		return base{}, ErrEmptyParams
	}
	if lr < 0 {
		return base{}, fmt.Errorf("%w: learning rate %v", ErrInvalidHyperParam, lr)
	}
	return base{params: params, lr: lr, initial: lr}, nil
}

// state allocates per-parameter buffers lazily.
type state [][]float64

func (s state) buf(i, n int) []float64 {
	if s[i] == nil {
		s[i] = make([]float64, n)
	}
	return s[i]
}

func nonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: %s %v", ErrInvalidHyperParam, name, v)
	}
	return nil
}

// Namespace returns the statically declared optimizer classes.
func Namespace() apis.Namespace {
	return namespace
}

var namespace = registry.Classes(Label, SGDClass, AdamClass, AdamWClass, RMSpropClass, AdagradClass)

// Get resolves name (fuzzily) among the optimizer classes and constructs it
// over params with kwargs. A nil env uses defaults.
func Get(env *nsx.Env, name string, params []*Param, kwargs map[string]any) (Optimizer, error) {
	return nsx.ConstructAs[Optimizer](env, name, namespace, apis.IsOptimizerClass, true, args.New(kwargs, params))
}

// StateDict exposes the parameter values as a namespace of tensors, in
// parameter order, so two models can be compared by name.
func StateDict(label string, params []*Param) apis.Namespace {
	entries := make([]apis.Entry, len(params))
	for i, p := range params {
		entries[i] = apis.Entry{Name: p.Name, Value: append([]float64(nil), p.Data...)}
	}
	return registry.NewStatic(label, entries...)
}
