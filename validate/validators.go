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


package validate

import (
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/propx/apis"
	uref "dirpx.dev/propx/utils/reflect"
)

// Func adapts a predicate to apis.Validator. desc is used in error messages.
func Func(desc string, fn func(v any) bool) apis.Validator {
	return funcValidator{desc: desc, fn: fn}
}

type funcValidator struct {
	desc string
	fn   func(any) bool
}

var _ apis.Validator = funcValidator{}

func (f funcValidator) Check(v any) bool { return f.fn != nil && f.fn(v) }
func (f funcValidator) String() string   { return f.desc }

// OneOf accepts values deeply equal to one of the allowed values.
func OneOf(allowed ...any) apis.Validator {
	return oneOf{allowed: allowed}
}

type oneOf struct {
	allowed []any
}

func (o oneOf) Check(v any) bool {
	for _, a := range o.allowed {
		if reflect.DeepEqual(a, v) {
			return true
		}
	}
	return false
}

func (o oneOf) String() string {
	parts := make([]string, len(o.allowed))
	for i, a := range o.allowed {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return "one of [" + strings.Join(parts, ", ") + "]"
}

// Kind accepts values whose reflect.Kind is one of kinds.
// Unlike the type check against a literal default, named and unnamed types
// of the same kind are both accepted.
func Kind(kinds ...reflect.Kind) apis.Validator {
	return kindValidator{kinds: kinds}
}

type kindValidator struct {
	kinds []reflect.Kind
}

func (k kindValidator) Check(v any) bool {
	if v == nil {
		return false
	}
	got := reflect.TypeOf(v).Kind()
	for _, want := range k.kinds {
		if got == want {
			return true
		}
	}
	return false
}

func (k kindValidator) String() string {
	parts := make([]string, len(k.kinds))
	for i, kd := range k.kinds {
		parts[i] = kd.String()
	}
	return "kind " + strings.Join(parts, "|")
}

// NotEmpty rejects nil and zero-length maps, slices, arrays and strings.
func NotEmpty() apis.Validator {
	return Func("not empty", func(v any) bool { return !uref.IsEmpty(v) })
}
