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

package args

// Reader extracts a sequence of arguments and keeps the first failure, so
// constructors can read all of their parameters before checking once.
type Reader struct {
	a   Args
	err error
}

// NewReader returns a Reader over a.
func NewReader(a Args) *Reader {
	return &Reader{a: a}
}

// Err returns the first extraction error, if any.
func (r *Reader) Err() error {
	return r.err
}

// Fail records err unless an earlier error was recorded.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Req reads a required argument. After a failure it returns the zero value.
func Req[T any](r *Reader, pos int, key string) T {
	if r.err != nil {
		var zero T
		return zero
	}
	v, err := Required[T](r.a, pos, key)
	r.Fail(err)
	return v
}

// Opt reads an optional argument, falling back to def.
func Opt[T any](r *Reader, pos int, key string, def T) T {
	if r.err != nil {
		return def
	}
	v, err := Optional(r.a, pos, key, def)
	r.Fail(err)
	return v
}

// Has reports whether the argument was supplied either way.
func (a Args) Has(pos int, key string) bool {
	_, ok, _ := a.Lookup(pos, key)
	return ok
}
