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

import (
	"errors"
	"fmt"

	"dirpx.dev/propx/apis"
)

var (
	// ErrEmptyName is returned when binding a property to an empty name.
	ErrEmptyName = errors.New("propx(property): empty name provided")
	// ErrAlreadyBound indicates an attempt to bind a property under a second name.
	ErrAlreadyBound = errors.New("propx(property): property already bound to another name")
	// ErrNilHost is returned when writing a property without an owning host.
	ErrNilHost = errors.New("propx(property): nil host provided")

	errUnnamedDependency = fmt.Errorf("%w: referenced property has no name", apis.ErrMissingNameBinding)
)

// Property is a lazily resolved, named attribute of a host.
//
// A Property is declared once per class and shared by every instance of it;
// all per-instance state lives in the host's slots. Its configuration is
// fixed at construction, only the name is assigned later by Bind.
type Property struct {
	name       string
	def        Default
	singleton  bool
	required   bool
	combine    bool
	superkeys  Superkeys
	transform  any
	validators []apis.Validator
}

// Ensure Property implements apis.Descriptor.
var _ apis.Descriptor = (*Property)(nil)

// New constructs an unbound Property.
// Without options it has no default, is a singleton, is not required and
// combines mapping and sequence inputs with its default.
func New(opts ...Option) *Property {
	p := &Property{singleton: true, combine: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clone returns an unbound copy of p with opts applied on top of its
// configuration.
func (p *Property) Clone(opts ...Option) *Property {
	c := *p
	c.name = ""
	c.validators = append([]apis.Validator(nil), p.validators...)
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Bind assigns the property its attribute name. It is idempotent for the
// same name; a property cannot be renamed once bound.
func (p *Property) Bind(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if p.name != "" && p.name != name {
		return fmt.Errorf("%w: %q cannot become %q", ErrAlreadyBound, p.name, name)
	}
	p.name = name
	return nil
}

// Name returns the bound name, or "" before binding.
func (p *Property) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Default returns the declared default, or nil.
func (p *Property) Default() Default { return p.def }

// Singleton reports whether a resolved value is cached for good.
func (p *Property) Singleton() bool { return p.singleton }

// Required reports whether a missing value is an error.
func (p *Property) Required() bool { return p.required }

// CombineDefaults reports whether mapping and sequence inputs are merged
// with the default.
func (p *Property) CombineDefaults() bool { return p.combine }

// Superkeys returns the superkeys, or nil when the top-level input is used.
func (p *Property) Superkeys() Superkeys { return p.superkeys }

// Transform returns the transform, or nil.
func (p *Property) Transform() any { return p.transform }

// Validators returns a copy of the validators.
func (p *Property) Validators() []apis.Validator {
	return append([]apis.Validator(nil), p.validators...)
}

// String implements fmt.Stringer.
func (p *Property) String() string {
	if p.Name() == "" {
		return "property <unbound>"
	}
	return fmt.Sprintf("property %q", p.name)
}
