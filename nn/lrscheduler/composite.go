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
	"fmt"
	"sort"

	"dirpx.dev/nsx/args"
	"dirpx.dev/nsx/nn/optim"
)

var (
	// SequentialLRClass hands control from one scheduler to the next at
	// each milestone.
	SequentialLRClass = class("SequentialLR", newSequentialLR, "schedulers", "milestones")
	// ChainedSchedulerClass steps several schedulers together on one optimizer.
	ChainedSchedulerClass = class("ChainedScheduler", newChainedScheduler, "schedulers")
)

// children checks that every scheduler drives opt.
func children(opt optim.Optimizer, list []Scheduler) (optim.Optimizer, error) {
	if len(list) == 0 {
		return nil, invalid("schedulers must not be empty")
	}
	for i, s := range list {
		if s == nil {
			return nil, invalid("scheduler at index %d is nil", i)
		}
		if s.Optimizer() != opt {
			return nil, invalid("scheduler at index %d drives a different optimizer", i)
		}
	}
	return opt, nil
}

type sequential struct {
	opt        optim.Optimizer
	schedulers []Scheduler
	milestones []int
	epoch      int
}

var _ Scheduler = (*sequential)(nil)

func newSequentialLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	list := args.Req[[]Scheduler](r, 1, "schedulers")
	milestones := args.Req[[]int](r, 2, "milestones")
	if r.Err() != nil {
		return nil, r.Err()
	}
	opt, err := children(opt, list)
	if err != nil {
		return nil, err
	}
	if len(milestones) != len(list)-1 {
		return nil, invalid("got %d milestones for %d schedulers", len(milestones), len(list))
	}
	if !sort.IntsAreSorted(milestones) {
		return nil, invalid("milestones must be sorted: %v", milestones)
	}
	s := &sequential{opt: opt, schedulers: list, milestones: append([]int(nil), milestones...)}
	s.Reset()
	return s, nil
}

func (s *sequential) Reset() {
	s.epoch = 0
	s.opt.SetLR(s.opt.InitialLR())
	s.schedulers[0].Reset()
}

func (s *sequential) Step() {
	s.epoch++
	i := sort.SearchInts(s.milestones, s.epoch+1)
	if i > 0 && s.milestones[i-1] == s.epoch {
		s.opt.SetLR(s.opt.InitialLR())
		s.schedulers[i].Reset()
		return
	}
	s.schedulers[i].Step()
}

func (s *sequential) LastLR() float64            { return s.opt.LR() }
func (s *sequential) Epoch() int                 { return s.epoch }
func (s *sequential) Optimizer() optim.Optimizer { return s.opt }

func (s *sequential) String() string {
	return fmt.Sprintf("SequentialLR(%d schedulers, milestones=%v)", len(s.schedulers), s.milestones)
}

type chained struct {
	opt        optim.Optimizer
	schedulers []Scheduler
	epoch      int
}

var _ Scheduler = (*chained)(nil)

func newChainedScheduler(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	list := args.Req[[]Scheduler](r, 1, "schedulers")
	if r.Err() != nil {
		return nil, r.Err()
	}
	opt, err := children(opt, list)
	if err != nil {
		return nil, err
	}
	return &chained{opt: opt, schedulers: list}, nil
}

func (c *chained) Reset() {
	c.epoch = 0
	c.opt.SetLR(c.opt.InitialLR())
	for _, s := range c.schedulers {
		s.Reset()
	}
}

func (c *chained) Step() {
	c.epoch++
	for _, s := range c.schedulers {
		s.Step()
	}
}

func (c *chained) LastLR() float64            { return c.opt.LR() }
func (c *chained) Epoch() int                 { return c.epoch }
func (c *chained) Optimizer() optim.Optimizer { return c.opt }
