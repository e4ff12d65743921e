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

package introspect

import (
	"fmt"

	"dirpx.dev/nsx/apis"
	uref "dirpx.dev/nsx/utils/reflect"
)

// Test evaluates p against v. Only declared predicates can be evaluated;
// anything else is a caller configuration error.
func Test(p apis.Predicate, v any) (bool, error) {
	switch p {
	case apis.Any:
		return true, nil
	case apis.IsClass:
		return isClass(v), nil
	case apis.IsFunction:
		return uref.IsFunc(v), nil
	case apis.IsOptimizerClass, apis.IsSchedulerClass, apis.IsActivationClass:
		c, ok := v.(*apis.Class)
		return ok && c.DerivesFrom(p.Base()), nil
	}
	return false, fmt.Errorf("%w: %d", apis.ErrUnknownPredicate, uint8(p))
}

func isClass(v any) bool {
	c, ok := v.(*apis.Class)
	return ok && c != nil
}
