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

// Package lrscheduler declares the learning-rate scheduler classes
// resolvable by name.
//
// Every scheduler is built over an optim.Optimizer passed as the first
// positional argument and applies its epoch-0 rule on construction.
// Most schedules are chainable: each step scales the optimizer's current
// rate by the ratio of consecutive closed-form values, so several
// schedulers can drive one optimizer (see ChainedScheduler).
package lrscheduler

import (
	"errors"
	"fmt"

	"dirpx.dev/nsx"
	"dirpx.dev/nsx/apis"
	"dirpx.dev/nsx/args"
	"dirpx.dev/nsx/nn/optim"
	"dirpx.dev/nsx/registry"
)

// ErrInvalidArgument is returned for out-of-range scheduler arguments.
var ErrInvalidArgument = errors.New("nsx(lrscheduler): invalid argument")

// Label is the namespace label of the scheduler classes.
const Label = "lr_scheduler"

// Scheduler adjusts the learning rate of an optimizer once per epoch.
type Scheduler interface {
	// Step advances one epoch and updates the optimizer.
	Step()
	// Reset rewinds to epoch 0, applying the epoch-0 rule to the
	// optimizer's current learning rate.
	Reset()
	// LastLR returns the learning rate set by the last Step or Reset.
	LastLR() float64
	// Epoch returns the number of steps taken since the last Reset.
	Epoch() int
	// Optimizer returns the scheduled optimizer.
	Optimizer() optim.Optimizer
}

// scheduler drives an optimizer along a closed-form schedule at(epoch).
type scheduler struct {
	opt   optim.Optimizer
	base  float64
	epoch int
	last  float64
	at    func(e int) float64
	// absolute schedules overwrite the rate instead of scaling it.
	absolute bool
}

var _ Scheduler = (*scheduler)(nil)

func newScheduler(opt optim.Optimizer, absolute bool, at func(base float64, e int) float64) *scheduler {
	s := &scheduler{opt: opt, base: opt.InitialLR(), absolute: absolute}
	s.at = func(e int) float64 { return at(s.base, e) }
	s.Reset()
	return s
}

func (s *scheduler) Reset() {
	s.epoch = 0
	s.apply(s.base)
}

func (s *scheduler) Step() {
	s.epoch++
	s.apply(s.at(s.epoch - 1))
}

func (s *scheduler) apply(prev float64) {
	next := s.at(s.epoch)
	if !s.absolute && prev != 0 {
		next = s.opt.LR() * next / prev
	}
	s.last = next
	s.opt.SetLR(next)
}

func (s *scheduler) LastLR() float64            { return s.last }
func (s *scheduler) Epoch() int                 { return s.epoch }
func (s *scheduler) Optimizer() optim.Optimizer { return s.opt }

// reader returns an args.Reader positioned after the optimizer argument,
// together with the optimizer itself.
func reader(a args.Args) (*args.Reader, optim.Optimizer) {
	r := args.NewReader(a)
	return r, args.Req[optim.Optimizer](r, 0, "optimizer")
}

func invalid(format string, v ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, v...)...)
}

// class declares a scheduler class; params always accept "optimizer".
func class(name string, build func(a args.Args) (Scheduler, error), params ...string) *apis.Class {
	return &apis.Class{
		Name:   name,
		Bases:  []string{apis.BaseLRScheduler},
		Params: append([]string{"optimizer"}, params...),
		New:    func(a args.Args) (any, error) { return build(a) },
	}
}

var namespace = registry.Classes(Label,
	ChainedSchedulerClass,
	ConstantLRClass,
	CosineAnnealingLRClass,
	CosineAnnealingWarmRestartsClass,
	CyclicLRClass,
	ExponentialLRClass,
	LambdaLRClass,
	LinearLRClass,
	MultiStepLRClass,
	MultiplicativeLRClass,
	OneCycleLRClass,
	PolynomialLRClass,
	SequentialLRClass,
	StepLRClass,
)

// Namespace returns the statically declared scheduler classes in name order.
func Namespace() apis.Namespace {
	return namespace
}

// Get resolves name (fuzzily) among the scheduler classes and constructs
// it over opt with kwargs. A nil env uses defaults.
func Get(env *nsx.Env, name string, opt optim.Optimizer, kwargs map[string]any) (Scheduler, error) {
	return nsx.ConstructAs[Scheduler](env, name, namespace, apis.IsSchedulerClass, true, args.New(kwargs, opt))
}
