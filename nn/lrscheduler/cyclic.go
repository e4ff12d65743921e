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
	// OneCycleLRClass warms the rate up to max_lr and anneals it far below
	// the starting rate over total_steps.
	OneCycleLRClass = class("OneCycleLR", newOneCycleLR,
		"max_lr", "total_steps", "epochs", "steps_per_epoch", "pct_start",
		"anneal_strategy", "div_factor", "final_div_factor", "three_phase")
	// CyclicLRClass cycles the rate between base_lr and max_lr.
	CyclicLRClass = class("CyclicLR", newCyclicLR,
		"base_lr", "max_lr", "step_size_up", "step_size_down", "mode", "gamma")
)

type phase struct {
	end      float64
	from, to float64
}

func newOneCycleLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	maxLR := args.Req[float64](r, 1, "max_lr")
	total := args.Opt(r, 2, "total_steps", 0)
	epochs := args.Opt(r, 3, "epochs", 0)
	perEpoch := args.Opt(r, 4, "steps_per_epoch", 0)
	pct := args.Opt(r, 5, "pct_start", 0.3)
	strategy := args.Opt(r, 6, "anneal_strategy", "cos")
	div := args.Opt(r, 7, "div_factor", 25.0)
	finalDiv := args.Opt(r, 8, "final_div_factor", 1e4)
	three := args.Opt(r, 9, "three_phase", false)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if !a.Has(2, "total_steps") {
		if epochs <= 0 || perEpoch <= 0 {
			return nil, invalid("either total_steps or epochs and steps_per_epoch must be positive")
		}
		total = epochs * perEpoch
	}
	switch {
	case total <= 0:
		return nil, invalid("total_steps must be positive, got %d", total)
	case pct < 0 || pct > 1:
		return nil, invalid("pct_start must be in [0, 1], got %v", pct)
	case div <= 0 || finalDiv <= 0:
		return nil, invalid("div_factor and final_div_factor must be positive")
	}
	var anneal func(from, to, t float64) float64
	switch strategy {
	case "cos":
		anneal = func(from, to, t float64) float64 { return to + (from-to)/2*(1+math.Cos(math.Pi*t)) }
	case "linear":
		anneal = func(from, to, t float64) float64 { return from + (to-from)*t }
	default:
		return nil, invalid("anneal_strategy must be cos or linear, got %q", strategy)
	}

	initial := maxLR / div
	floor := initial / finalDiv
	last := float64(total - 1)
	up := pct*float64(total) - 1
	phases := []phase{{end: up, from: initial, to: maxLR}, {end: last, from: maxLR, to: floor}}
	if three {
		phases = []phase{
			{end: up, from: initial, to: maxLR},
			{end: 2*pct*float64(total) - 2, from: maxLR, to: initial},
			{end: last, from: initial, to: floor},
		}
	}
	return newScheduler(opt, true, func(_ float64, e int) float64 {
		step := math.Min(float64(e), last)
		start := 0.0
		for i, ph := range phases {
			if step <= ph.end || i == len(phases)-1 {
				span := ph.end - start
				if span <= 0 {
					return ph.to
				}
				return anneal(ph.from, ph.to, (step-start)/span)
			}
			start = ph.end
		}
		return floor
	}), nil
}

func newCyclicLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	lo := args.Req[float64](r, 1, "base_lr")
	hi := args.Req[float64](r, 2, "max_lr")
	up := args.Opt(r, 3, "step_size_up", 2000)
	down := args.Opt(r, 4, "step_size_down", 0)
	mode := args.Opt(r, 5, "mode", "triangular")
	gamma := args.Opt(r, 6, "gamma", 1.0)
	if r.Err() != nil {
		return nil, r.Err()
	}
	if down == 0 {
		down = up
	}
	if up <= 0 || down <= 0 {
		return nil, invalid("step sizes must be positive, got %d and %d", up, down)
	}
	var scale func(cycle float64, e int) float64
	switch mode {
	case "triangular":
		scale = func(float64, int) float64 { return 1 }
	case "triangular2":
		scale = func(cycle float64, _ int) float64 { return 1 / math.Pow(2, cycle-1) }
	case "exp_range":
		scale = func(_ float64, e int) float64 { return math.Pow(gamma, float64(e)) }
	default:
		return nil, invalid("mode must be triangular, triangular2 or exp_range, got %q", mode)
	}
	size := float64(up + down)
	ratio := float64(up) / size
	return newScheduler(opt, true, func(_ float64, e int) float64 {
		cycle := math.Floor(1 + float64(e)/size)
		x := 1 + float64(e)/size - cycle
		var h float64
		if x <= ratio {
			h = x / ratio
		} else {
			h = (x - 1) / (ratio - 1)
		}
		return lo + (hi-lo)*h*scale(cycle, e)
	}), nil
}
