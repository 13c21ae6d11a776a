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
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/dlclark/regexp2"

	"dirpx.dev/propx/apis"
)

// ErrBadPattern is returned when a pattern does not compile.
var ErrBadPattern = errors.New("propx(validate): invalid pattern")

// DefaultMatchTimeout bounds a single pattern match. Backtracking patterns can
// otherwise take exponential time on hostile input.
const DefaultMatchTimeout = 100 * time.Millisecond

// Pattern accepts values whose text matches expr. Strings and fmt.Stringer
// values are matched as is, booleans and numbers in their fmt.Sprint form;
// any other value is rejected.
// The syntax is the backtracking one of regexp2, so lookarounds and
// backreferences are available. The whole value must match unless expr is
// explicitly unanchored with ".*".
func Pattern(expr string) (apis.Validator, error) {
	re, err := regexp2.Compile(`^(?:`+expr+`)$`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, expr, err)
	}
	re.MatchTimeout = DefaultMatchTimeout
	return pattern{expr: expr, re: re}, nil
}

// MustPattern is like Pattern but panics on an invalid expression.
// It is meant for package-level property declarations.
func MustPattern(expr string) apis.Validator {
	v, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return v
}

type pattern struct {
	expr string
	re   *regexp2.Regexp
}

func (p pattern) Check(v any) bool {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	default:
		if !scalar(v) {
			return false
		}
		s = fmt.Sprint(v)
	}
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

func (p pattern) String() string { return "pattern " + p.expr }

func scalar(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
