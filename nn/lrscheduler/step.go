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

package lrscheduler

import (
	"math"
	"sort"

	"dirpx.dev/nsx/args"
)

var (
	// StepLRClass decays the rate by gamma every step_size epochs.
	StepLRClass = class("StepLR", newStepLR, "step_size", "gamma")
	// MultiStepLRClass decays the rate by gamma at each milestone.
	MultiStepLRClass = class("MultiStepLR", newMultiStepLR, "milestones", "gamma")
	// ConstantLRClass scales the rate by factor until total_iters.
	ConstantLRClass = class("ConstantLR", newConstantLR, "factor", "total_iters")
	// LinearLRClass moves the scale linearly from start_factor to end_factor.
	LinearLRClass = class("LinearLR", newLinearLR, "start_factor", "end_factor", "total_iters")
	// ExponentialLRClass decays the rate by gamma every epoch.
	ExponentialLRClass = class("ExponentialLR", newExponentialLR, "gamma")
	// PolynomialLRClass decays the rate polynomially to zero at total_iters.
	PolynomialLRClass = class("PolynomialLR", newPolynomialLR, "total_iters", "power")
)

func newStepLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	size := args.Req[int](r, 1, "step_size")
	gamma := args.Opt(r, 2, "gamma", 0.1)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if size <= 0 {
		return nil, invalid("step_size must be positive, got %d", size)
	}
	return newScheduler(opt, false, func(base float64, e int) float64 {
		return base * math.Pow(gamma, float64(e/size))
	}), nil
}

func newMultiStepLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	milestones := args.Req[[]int](r, 1, "milestones")
	gamma := args.Opt(r, 2, "gamma", 0.1)
	if r.Err() != nil {
		return nil, r.Err()
	}
	ms := append([]int(nil), milestones...)
	sort.Ints(ms)
	return newScheduler(opt, false, func(base float64, e int) float64 {
		return base * math.Pow(gamma, float64(sort.SearchInts(ms, e+1)))
	}), nil
}

func newConstantLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	factor := args.Opt(r, 1, "factor", 1.0/3)
	total := args.Opt(r, 2, "total_iters", 5)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if factor < 0 || factor > 1 {
		return nil, invalid("factor must be in [0, 1], got %v", factor)
	}
	return newScheduler(opt, false, func(base float64, e int) float64 {
		if e < total {
			return base * factor
		}
		return base
	}), nil
}

func newLinearLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	start := args.Opt(r, 1, "start_factor", 1.0/3)
	end := args.Opt(r, 2, "end_factor", 1.0)
	total := args.Opt(r, 3, "total_iters", 5)
	if r.Err() != nil {
		return nil, r.Err()
	}
	switch {
	case start <= 0 || start > 1:
		return nil, invalid("start_factor must be in (0, 1], got %v", start)
	case end < 0 || end > 1:
		return nil, invalid("end_factor must be in [0, 1], got %v", end)
	case total <= 0:
		return nil, invalid("total_iters must be positive, got %d", total)
	}
	return newScheduler(opt, false, func(base float64, e int) float64 {
		t := float64(min(e, total)) / float64(total)
		return base * (start + (end-start)*t)
	}), nil
}

func newExponentialLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	gamma := args.Req[float64](r, 1, "gamma")
	if r.Err() != nil {
		return nil, r.Err()
	}
	return newScheduler(opt, false, func(base float64, e int) float64 {
		return base * math.Pow(gamma, float64(e))
	}), nil
}

func newPolynomialLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	total := args.Opt(r, 1, "total_iters", 5)
	power := args.Opt(r, 2, "power", 1.0)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if total <= 0 {
		return nil, invalid("total_iters must be positive, got %d", total)
	}
	return newScheduler(opt, false, func(base float64, e int) float64 {
		return base * math.Pow(1-float64(min(e, total))/float64(total), power)
	}), nil
}
