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

package optim

import (
	"math"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
)

// AdagradClass declares Adagrad.
var AdagradClass = &apis.Class{
	Name:   "Adagrad",
	Bases:  []string{apis.BaseOptimizer},
	Params: []string{"params", "lr", "lr_decay", "weight_decay", "initial_accumulator_value", "eps"},
	New:    func(a args.Args) (any, error) { return NewAdagrad(a) },
}

// Adagrad adapts the step size per coordinate from accumulated squared gradients.
type Adagrad struct {
	base
	lrDecay, weightDecay, initAcc, eps float64
	step                               int
	sum                                state
}

// NewAdagrad builds an Adagrad optimizer.
func NewAdagrad(a args.Args) (*Adagrad, error) {
	lr, err := args.Optional(a, 1, "lr", 1e-2)
	if err != nil {
		return nil, err
	}
	b, err := newBase(a, lr)
	if err != nil {
		return nil, err
	}
	o := &Adagrad{base: b}
	if o.lrDecay, err = args.Optional(a, 2, "lr_decay", 0.0); err != nil {
		return nil, err
	}
	if o.weightDecay, err = args.Optional(a, 3, "weight_decay", 0.0); err != nil {
		return nil, err
	}
	if o.initAcc, err = args.Optional(a, 4, "initial_accumulator_value", 0.0); err != nil {
		return nil, err
	}
	if o.eps, err = args.Optional(a, 5, "eps", 1e-10); err != nil {
		return nil, err
	}
	for _, kv := range []struct {
		name string
		v    float64
	}{{"lr_decay", o.lrDecay}, {"weight_decay", o.weightDecay}, {"initial_accumulator_value", o.initAcc}, {"eps", o.eps}} {
		if err := nonNegative(kv.name, kv.v); err != nil {
			return nil, err
		}
	}
	o.sum = make(state, len(o.params))
	return o, nil
}

// Step implements Optimizer.
func (o *Adagrad) Step() error {
	o.step++
	clr := o.lr / (1 + float64(o.step-1)*o.lrDecay)
	return o.each(func(i int, p *Param) {
		fresh := o.sum[i] == nil
		sum := o.sum.buf(i, len(p.Data))
		for j := range p.Data {
			if fresh {
				sum[j] = o.initAcc
			}
			g := p.Grad[j] + o.weightDecay*p.Data[j]
			sum[j] += g * g
			p.Data[j] -= clr * g / (math.Sqrt(sum[j]) + o.eps)
		}
	})
}
