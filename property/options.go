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


package property

import "dirpx.dev/propx/apis"

// Option is a functional option that configures a Property during construction.
type Option func(*Property)

// WithDefault sets the default.
func WithDefault(d Default) Option {
	return func(p *Property) {
		p.def = d
	}
}

// WithLiteral sets a Literal default.
func WithLiteral(v any) Option {
	return WithDefault(Literal(v))
}

// WithSingleton sets whether the resolved value is cached for good (true) or
// re-resolved on every read unless written explicitly (false).
func WithSingleton(singleton bool) Option {
	return func(p *Property) {
		p.singleton = singleton
	}
}

// WithRequired sets whether resolving without any value is an error.
func WithRequired(required bool) Option {
	return func(p *Property) {
		p.required = required
	}
}

// WithCombineDefaults sets whether mapping and sequence inputs are merged
// with the default (true) or replace it (false).
func WithCombineDefaults(combine bool) Option {
	return func(p *Property) {
		p.combine = combine
	}
}

// WithSuperkeys sets where in the raw input the property is looked up.
func WithSuperkeys(s Superkeys) Option {
	return func(p *Property) {
		p.superkeys = s
	}
}

// WithTransform sets the transform applied to every resolved value before
// it is stored. fn should be a function of one argument returning a value,
// optionally followed by an error; anything else fails with
// ErrTransformNotCallable when the transform is applied.
func WithTransform(fn any) Option {
	return func(p *Property) {
		p.transform = fn
	}
}

// WithValidators appends validators checked, in order, on every stored value.
// Nil validators are ignored.
func WithValidators(vs ...apis.Validator) Option {
	return func(p *Property) {
		for _, v := range vs {
			if v != nil {
				p.validators = append(p.validators, v)
			}
		}
	}
}
