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
	"math"

	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
)

var adamParams = []string{"params", "lr", "betas", "eps", "weight_decay", "amsgrad"}

// AdamClass declares Adam with L2 weight decay folded into the gradient.
var AdamClass = &apis.Class{
	Name:   "Adam",
	Bases:  []string{apis.BaseOptimizer},
	Params: adamParams,
	New:    func(a args.Args) (any, error) { return newAdam(a, 0, false) },
}

// AdamWClass declares Adam with decoupled weight decay.
var AdamWClass = &apis.Class{
	Name:   "AdamW",
	Bases:  []string{apis.BaseOptimizer},
	Params: adamParams,
	New:    func(a args.Args) (any, error) { return newAdam(a, 1e-2, true) },
}

// Adam implements Adam and AdamW.
type Adam struct {
	base
	beta1, beta2, eps, weightDecay float64
	amsgrad, decoupled             bool
	step                           int
	m, v, vmax                     state
}

func newAdam(a args.Args, defaultDecay float64, decoupled bool) (*Adam, error) {
	lr, err := args.Optional(a, 1, "lr", 1e-3)
	if err != nil {
		return nil, err
	}
	b, err := newBase(a, lr)
	if err != nil {
		return nil, err
	}
	o := &Adam{base: b, decoupled: decoupled}
	betas, err := args.Optional(a, 2, "betas", []float64{0.9, 0.999})
	if err != nil {
		return nil, err
	}
	if len(betas) != 2 {
		return nil, fmt.Errorf("%w: betas must hold 2 values, got %d", ErrInvalidHyperParam, len(betas))
	}
	o.beta1, o.beta2 = betas[0], betas[1]
	for i, beta := range betas {
		if beta < 0 || beta >= 1 {
			return nil, fmt.Errorf("%w: beta at index %d: %v", ErrInvalidHyperParam, i, beta)
		}
	}
	if o.eps, err = args.Optional(a, 3, "eps", 1e-8); err != nil {
		return nil, err
	}
	if o.weightDecay, err = args.Optional(a, 4, "weight_decay", defaultDecay); err != nil {
		return nil, err
	}
	if o.amsgrad, err = args.Optional(a, 5, "amsgrad", false); err != nil {
		return nil, err
	}
	if err := nonNegative("eps", o.eps); err != nil {
		return nil, err
	}
	if err := nonNegative("weight_decay", o.weightDecay); err != nil {
		return nil, err
	}
	n := len(o.params)
	o.m, o.v, o.vmax = make(state, n), make(state, n), make(state, n)
	return o, nil
}

// Step implements Optimizer.
func (o *Adam) Step() error {
	o.step++
	bc1 := 1 - math.Pow(o.beta1, float64(o.step))
	bc2 := 1 - math.Pow(o.beta2, float64(o.step))
	return o.each(func(i int, p *Param) {
		m, v := o.m.buf(i, len(p.Data)), o.v.buf(i, len(p.Data))
		var vmax []float64
		if o.amsgrad {
			vmax = o.vmax.buf(i, len(p.Data))
		}
		for j := range p.Data {
			g := p.Grad[j]
			if o.decoupled {
				p.Data[j] *= 1 - o.lr*o.weightDecay
			} else {
				g += o.weightDecay * p.Data[j]
			}
			m[j] = o.beta1*m[j] + (1-o.beta1)*g
			v[j] = o.beta2*v[j] + (1-o.beta2)*g*g
			second := v[j]
			if o.amsgrad {
				vmax[j] = math.Max(vmax[j], v[j])
				second = vmax[j]
			}
			p.Data[j] -= o.lr * (m[j] / bc1) / (math.Sqrt(second/bc2) + o.eps)
		}
	})
}
