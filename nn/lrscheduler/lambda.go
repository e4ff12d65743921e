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
	"dirpx.dev/nsx/args"
)

// Lambda maps an epoch to a learning-rate factor.
type Lambda = func(epoch int) float64

var (
	// LambdaLRClass sets the rate to the initial rate times lr_lambda(epoch).
	LambdaLRClass = class("LambdaLR", newLambdaLR, "lr_lambda")
	// MultiplicativeLRClass multiplies the rate by lr_lambda(epoch) every epoch.
	MultiplicativeLRClass = class("MultiplicativeLR", newMultiplicativeLR, "lr_lambda")
)

func newLambdaLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	fn := args.Req[Lambda](r, 1, "lr_lambda")
	if r.Err() != nil {
		return nil, r.Err()
	}
	if fn == nil {
		return nil, invalid("lr_lambda is nil")
	}
	return newScheduler(opt, true, func(base float64, e int) float64 {
		return base * fn(e)
	}), nil
}

func newMultiplicativeLR(a args.Args) (Scheduler, error) {
	r, opt := reader(a)
	fn := args.Req[Lambda](r, 1, "lr_lambda")
	if r.Err() != nil {
		return nil, r.Err()
	}
	if fn == nil {
		return nil, invalid("lr_lambda is nil")
	}
	return newScheduler(opt, false, func(base float64, e int) float64 {
		lr := base
		for k := 1; k <= e; k++ {
			lr *= fn(k)
		}
		return lr
	}), nil
}
