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
	"strings"

	"dirpx.dev/propx/apis"
)

// All constructs an apis.Validator that accepts a value only if every given
// validator accepts it, checked in order. Nil validators are ignored.
func All(validators ...apis.Validator) apis.Validator {
	return chain{vals: compact(validators), any: false}
}

// Any constructs an apis.Validator that accepts a value if at least one given
// validator accepts it. Nil validators are ignored; an empty Any accepts nothing.
func Any(validators ...apis.Validator) apis.Validator {
	return chain{vals: compact(validators), any: true}
}

// First returns the first validator in vs rejecting v, or nil if all accept it.
func First(v any, vs ...apis.Validator) apis.Validator {
	for _, val := range vs {
		if val != nil && !val.Check(v) {
			return val
		}
	}
	return nil
}

// compact filters out nils to avoid nil-interface panics on call sites.
func compact(vs []apis.Validator) []apis.Validator {
	out := make([]apis.Validator, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// chain is an immutable, order-preserving conjunction or disjunction.
type chain struct {
	vals []apis.Validator
	any  bool
}

// Check runs validators in order until the outcome is decided.
func (c chain) Check(v any) bool {
	for _, val := range c.vals {
		ok := val.Check(v)
		if c.any && ok {
			return true
		}
		if !c.any && !ok {
			return false
		}
	}
	return !c.any
}

// String joins the descriptions of the chained validators.
func (c chain) String() string {
	parts := make([]string, len(c.vals))
	for i, val := range c.vals {
		parts[i] = val.String()
	}
	sep := " and "
	if c.any {
		sep = " or "
	}
	return "(" + strings.Join(parts, sep) + ")"
}
