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

// Package activation declares activation classes and their functional
// counterparts, both resolvable by name.
package activation

import (
	"errors"
	"fmt"
	"math"

	"dirpx.dev/nsx"
	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
	"dirpx.dev/nsx/category"
	"dirpx.dev/nsx/registry"
)

// ErrInvalidArgument is returned for out-of-range activation arguments.
var ErrInvalidArgument = errors.New("nsx(activation): invalid argument")

const (
	// Label is the namespace label of the activation classes.
	Label = "activation"
	// FunctionalLabel is the namespace label of the functional ops.
	FunctionalLabel = "functional"
)

// Activation applies a non-linearity element-wise.
type Activation interface {
	Forward(x []float64) []float64
}

type elementwise struct {
	name string
	fn   func(float64) float64
}

var _ Activation = elementwise{}

func (e elementwise) Forward(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = e.fn(v)
	}
	return out
}

func (e elementwise) String() string { return e.name }

// class declares an activation built by build from its arguments.
func class(name string, build func(r *args.Reader) func(float64) float64, params ...string) *apis.Class {
	return &apis.Class{
		Name:   name,
		Bases:  []string{apis.BaseActivation},
		Params: append([]string{}, params...),
		New: func(a args.Args) (any, error) {
			r := args.NewReader(a)
			fn := build(r)
			if err := r.Err(); err != nil {
				return nil, err
			}
			return elementwise{name: name, fn: fn}, nil
		},
	}
}

func fixed(fn func(float64) float64) func(*args.Reader) func(float64) float64 {
	return func(*args.Reader) func(float64) float64 { return fn }
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func softplus(beta, threshold float64) func(float64) float64 {
	return func(x float64) float64 {
		if beta*x > threshold {
			return x
		}
		return math.Log1p(math.Exp(beta*x)) / beta
	}
}

// Activation classes.
var (
	ReLUClass      = class("ReLU", fixed(func(x float64) float64 { return math.Max(x, 0) }))
	ReLU6Class     = class("ReLU6", fixed(func(x float64) float64 { return math.Min(math.Max(x, 0), 6) }))
	LeakyReLUClass = class("LeakyReLU", func(r *args.Reader) func(float64) float64 {
		slope := args.Opt(r, 0, "negative_slope", 0.01)
		return func(x float64) float64 {
			if x >= 0 {
				return x
			}
			return slope * x
		}
	}, "negative_slope")
	ELUClass = class("ELU", func(r *args.Reader) func(float64) float64 {
		alpha := args.Opt(r, 0, "alpha", 1.0)
		return func(x float64) float64 {
			if x > 0 {
				return x
			}
			return alpha * math.Expm1(x)
		}
	}, "alpha")
	GELUClass = class("GELU", func(r *args.Reader) func(float64) float64 {
		switch approx := args.Opt(r, 0, "approximate", "none"); approx {
		case "none":
			return func(x float64) float64 { return 0.5 * x * (1 + math.Erf(x/math.Sqrt2)) }
		case "tanh":
			return func(x float64) float64 {
				return 0.5 * x * (1 + math.Tanh(math.Sqrt(2/math.Pi)*(x+0.044715*x*x*x)))
			}
		default:
			r.Fail(fmt.Errorf("%w: approximate must be none or tanh, got %q", ErrInvalidArgument, approx))
			return nil
		}
	}, "approximate")
	SigmoidClass  = class("Sigmoid", fixed(sigmoid))
	TanhClass     = class("Tanh", fixed(math.Tanh))
	SiLUClass     = class("SiLU", fixed(func(x float64) float64 { return x * sigmoid(x) }))
	MishClass     = class("Mish", fixed(func(x float64) float64 { return x * math.Tanh(softplus(1, 20)(x)) }))
	SoftplusClass = class("Softplus", func(r *args.Reader) func(float64) float64 {
		return softplus(args.Opt(r, 0, "beta", 1.0), args.Opt(r, 1, "threshold", 20.0))
	}, "beta", "threshold")
	SoftsignClass = class("Softsign", fixed(func(x float64) float64 { return x / (1 + math.Abs(x)) }))
	HardtanhClass = class("Hardtanh", func(r *args.Reader) func(float64) float64 {
		lo, hi := args.Opt(r, 0, "min_val", -1.0), args.Opt(r, 1, "max_val", 1.0)
		if hi <= lo {
			r.Fail(fmt.Errorf("%w: max_val %v must exceed min_val %v", ErrInvalidArgument, hi, lo))
		}
		return func(x float64) float64 { return math.Min(math.Max(x, lo), hi) }
	}, "min_val", "max_val")
	IdentityClass = class("Identity", fixed(func(x float64) float64 { return x }))
)

var namespace = registry.Classes(Label,
	ELUClass, GELUClass, HardtanhClass, IdentityClass, LeakyReLUClass, MishClass, ReLUClass,
	ReLU6Class, SiLUClass, SigmoidClass, SoftplusClass, SoftsignClass, TanhClass,
)

var functional = registry.NewStatic(FunctionalLabel,
	op("elu", ELUClass),
	op("gelu", GELUClass),
	op("hardtanh", HardtanhClass),
	op("leaky_relu", LeakyReLUClass),
	op("mish", MishClass),
	op("relu", ReLUClass),
	op("relu6", ReLU6Class),
	op("sigmoid", SigmoidClass),
	op("silu", SiLUClass),
	op("softplus", SoftplusClass),
	op("softsign", SoftsignClass),
	op("tanh", TanhClass),
)

// op exposes c as a function taking the input first and c's parameters
// as keywords.
func op(name string, c *apis.Class) apis.Entry {
	var fn category.Func = func(a args.Args) (any, error) {
		if err := a.Check(append([]string{"input"}, c.Params...)); err != nil {
			return nil, err
		}
		x, err := args.Required[[]float64](a, 0, "input")
		if err != nil {
			return nil, err
		}
		kw := args.Filter(a.Keyword, c.Params)
		var rest []any
		if len(a.Positional) > 1 {
			rest = a.Positional[1:]
		}
		v, err := c.New(args.New(kw, rest...))
		if err != nil {
			return nil, err
		}
		return v.(Activation).Forward(x), nil
	}
	return apis.Entry{Name: name, Value: fn}
}

// Namespace returns the activation classes in name order.
func Namespace() apis.Namespace {
	return namespace
}

// Functional returns the functional ops in name order.
func Functional() apis.Namespace {
	return functional
}

// Get resolves name (fuzzily) among the activation classes and constructs it.
func Get(env *nsx.Env, name string, kwargs map[string]any) (Activation, error) {
	return nsx.ConstructAs[Activation](env, name, namespace, apis.IsActivationClass, true, args.New(kwargs))
}

// Apply resolves name (fuzzily) among the functional ops and applies it to x.
func Apply(env *nsx.Env, name string, x []float64, kwargs map[string]any) ([]float64, error) {
	v, err := env.Call(name, functional, true, args.New(kwargs, x))
	if err != nil {
		return nil, err
	}
	return v.([]float64), nil
}
