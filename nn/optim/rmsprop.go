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

// RMSpropClass declares RMSprop.
var RMSpropClass = &apis.Class{
	Name:   "RMSprop",
	Bases:  []string{apis.BaseOptimizer},
	Params: []string{"params", "lr", "alpha", "eps", "weight_decay", "momentum", "centered"},
	New:    func(a args.Args) (any, error) { return NewRMSprop(a) },
}

// RMSprop scales updates by a running average of squared gradients.
type RMSprop struct {
	base
	alpha, eps, weightDecay, momentum float64
	centered                          bool
	square, mean, velocity            state
}

// NewRMSprop builds an RMSprop optimizer.
func NewRMSprop(a args.Args) (*RMSprop, error) {
	lr, err := args.Optional(a, 1, "lr", 1e-2)
	if err != nil {
		return nil, err
	}
	b, err := newBase(a, lr)
	if err != nil {
		return nil, err
	}
	o := &RMSprop{base: b}
	if o.alpha, err = args.Optional(a, 2, "alpha", 0.99); err != nil {
		return nil, err
	}
	if o.eps, err = args.Optional(a, 3, "eps", 1e-8); err != nil {
		return nil, err
	}
	if o.weightDecay, err = args.Optional(a, 4, "weight_decay", 0.0); err != nil {
		return nil, err
	}
	if o.momentum, err = args.Optional(a, 5, "momentum", 0.0); err != nil {
		return nil, err
	}
	if o.centered, err = args.Optional(a, 6, "centered", false); err != nil {
		return nil, err
	}
	for _, kv := range []struct {
		name string
		v    float64
	}{{"alpha", o.alpha}, {"eps", o.eps}, {"weight_decay", o.weightDecay}, {"momentum", o.momentum}} {
		if err := nonNegative(kv.name, kv.v); err != nil {
			return nil, err
		}
	}
	n := len(o.params)
	o.square, o.mean, o.velocity = make(state, n), make(state, n), make(state, n)
	return o, nil
}

// Step implements Optimizer.
func (o *RMSprop) Step() error {
	return o.each(func(i int, p *Param) {
		sq := o.square.buf(i, len(p.Data))
		for j := range p.Data {
			g := p.Grad[j] + o.weightDecay*p.Data[j]
			sq[j] = o.alpha*sq[j] + (1-o.alpha)*g*g
			avg := sq[j]
			if o.centered {
				mean := o.mean.buf(i, len(p.Data))
				mean[j] = o.alpha*mean[j] + (1-o.alpha)*g
				avg -= mean[j] * mean[j]
			}
			step := g / (math.Sqrt(avg) + o.eps)
			if o.momentum > 0 {
				buf := o.velocity.buf(i, len(p.Data))
				buf[j] = o.momentum*buf[j] + step
				step = buf[j]
			}
			p.Data[j] -= o.lr * step
		}
	})
}
