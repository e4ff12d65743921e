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

	"dirpx.dev/nsx/args"
)

var (
	// CosineAnnealingLRClass anneals the rate to eta_min over T_max epochs.
	CosineAnnealingLRClass = class("CosineAnnealingLR", newCosineAnnealingLR, "T_max", "eta_min")
	// CosineAnnealingWarmRestartsClass anneals over periods that restart
	// every T_i epochs, with T_i growing by T_mult.
	CosineAnnealingWarmRestartsClass = class("CosineAnnealingWarmRestarts", newCosineAnnealingWarmRestarts, "T_0", "T_mult", "eta_min")
)

func cosine(base, floor float64, cur, period int) float64 {
	return floor + (base-floor)*(1+math.Cos(math.Pi*float64(cur)/float64(period)))/2
}

func newCosineAnnealingLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	tmax := args.Req[int](r, 1, "T_max")
	floor := args.Opt(r, 2, "eta_min", 0.0)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if tmax <= 0 {
		return nil, invalid("T_max must be positive, got %d", tmax)
	}
	return newScheduler(opt, false, func(base float64, e int) float64 {
		return cosine(base, floor, e, tmax)
	}), nil
}

func newCosineAnnealingWarmRestarts(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	t0 := args.Req[int](r, 1, "T_0")
	mult := args.Opt(r, 2, "T_mult", 1)
	floor := args.Opt(r, 3, "eta_min", 0.0)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if t0 <= 0 {
		return nil, invalid("T_0 must be positive, got %d", t0)
	}
	if mult < 1 {
		return nil, invalid("T_mult must be at least 1, got %d", mult)
	}
	return newScheduler(opt, true, func(base float64, e int) float64 {
		cur, period := e, t0
		for cur >= period {
			cur -= period
			period *= mult
		}
		return cosine(base, floor, cur, period)
	}), nil
}
