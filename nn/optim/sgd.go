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
	"fmt"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
)

// SGDClass declares stochastic gradient descent with optional momentum.
// lr is required.
var SGDClass = &apis.Class{
	Name:   "SGD",
	Bases:  []string{apis.BaseOptimizer},
	Params: []string{"params", "lr", "momentum", "dampening", "weight_decay", "nesterov"},
	New:    func(a args.Args) (any, error) { return NewSGD(a) },
}

// SGD implements stochastic gradient descent.
type SGD struct {
	base
	momentum, dampening, weightDecay float64
	nesterov                         bool
	velocity                         state
}

// NewSGD builds an SGD optimizer from params, lr and optional keywords.
func NewSGD(a args.Args) (*SGD, error) {
	lr, err := args.Required[float64](a, 1, "lr")
	if err != nil {
		return nil, err
	}
	b, err := newBase(a, lr)
	if err != nil {
		return nil, err
	}
	o := &SGD{base: b}
	if o.momentum, err = args.Optional(a, 2, "momentum", 0.0); err != nil {
		return nil, err
	}
	if o.dampening, err = args.Optional(a, 3, "dampening", 0.0); err != nil {
		return nil, err
	}
	if o.weightDecay, err = args.Optional(a, 4, "weight_decay", 0.0); err != nil {
		return nil, err
	}
	if o.nesterov, err = args.Optional(a, 5, "nesterov", false); err != nil {
		return nil, err
	}
	for name, v := range map[string]float64{"momentum": o.momentum, "weight_decay": o.weightDecay} {
		if err := nonNegative(name, v); err != nil {
			return nil, err
		}
	}
	if o.nesterov && (o.momentum <= 0 || o.dampening != 0) {
		return nil, fmt.Errorf("%w: nesterov momentum requires a momentum and zero dampening", ErrInvalidHyperParam)
	}
	o.velocity = make(state, len(o.params))
	return o, nil
}

// Step implements Optimizer.
func (o *SGD) Step() error {
	return o.each(func(i int, p *Param) {
		var buf []float64
		fresh := o.velocity[i] == nil
		if o.momentum != 0 {
			buf = o.velocity.buf(i, len(p.Data))
		}
		for j := range p.Data {
			d := p.Grad[j] + o.weightDecay*p.Data[j]
			if o.momentum != 0 {
				if fresh {
					buf[j] = d
				} else {
					buf[j] = o.momentum*buf[j] + (1-o.dampening)*d
				}
				if o.nesterov {
					d += o.momentum * buf[j]
				} else {
					d = buf[j]
				}
			}
			p.Data[j] -= o.lr * d
		}
	})
}
