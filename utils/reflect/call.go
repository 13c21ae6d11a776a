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


package reflect

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotCallable is returned when a value is not a function of one
	// argument returning a value (and optionally an error).
	ErrNotCallable = errors.New("propx(reflect): value is not a unary function")
	// ErrArgumentType is returned when the argument cannot be passed to the
	// function's parameter.
	ErrArgumentType = errors.New("propx(reflect): argument not assignable to parameter")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// IsCallable reports whether fn can be used with Apply: a non-nil func taking
// exactly one parameter and returning either one value or a value and an error.
func IsCallable(fn any) bool {
	if fn == nil {
		return false
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return false
	}
	ft := fv.Type()
	if ft.NumIn() != 1 || ft.IsVariadic() {
		return false
	}
	switch ft.NumOut() {
	case 1:
		return true
	case 2:
		return ft.Out(1) == errorType
	default:
		return false
	}
}

// Apply calls fn with v and returns its result.
//
// func(any) any and func(any) (any, error) are called directly; any other
// unary function goes through reflection, in which case v must be assignable
// to the parameter type. nil is only accepted by parameters that can hold nil.
func Apply(fn any, v any) (any, error) {
	switch f := fn.(type) {
	case func(any) any:
		if f != nil {
			return f(v), nil
		}
	case func(any) (any, error):
		if f != nil {
			return f(v)
		}
	}
	if !IsCallable(fn) {
		return nil, ErrNotCallable
	}
	fv := reflect.ValueOf(fn)
	in := fv.Type().In(0)

	var arg reflect.Value
	if v == nil {
		if !nillable(in) {
			return nil, fmt.Errorf("%w: nil to %s", ErrArgumentType, in)
		}
		arg = reflect.Zero(in)
	} else {
		arg = reflect.ValueOf(v)
		if !arg.Type().AssignableTo(in) {
			return nil, fmt.Errorf("%w: %s to %s", ErrArgumentType, arg.Type(), in)
		}
	}

	out := fv.Call([]reflect.Value{arg})
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
