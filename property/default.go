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
	"fmt"

	"dirpx.dev/propx/apis"
)

// DefaultKind tags the variants of Default.
type DefaultKind int

const (
	// LiteralKind is a plain value, used as is.
	LiteralKind DefaultKind = iota
	// ComputedKind is a function evaluated on every resolution.
	ComputedKind
	// DependencyKind is another property whose resolved value is reused.
	DependencyKind
)

// String implements fmt.Stringer.
func (k DefaultKind) String() string {
	switch k {
	case LiteralKind:
		return "literal"
	case ComputedKind:
		return "computed"
	case DependencyKind:
		return "dependency"
	default:
		return fmt.Sprintf("DefaultKind(%d)", int(k))
	}
}

// Default is the default of a property: one of Literal, Computed (or Lazy)
// and DependsOn. The set of variants is closed.
type Default interface {
	// Kind returns the variant tag.
	Kind() DefaultKind
	// resolve produces the raw default for h.
	resolve(h apis.Host) (any, error)
}

// Literal returns a Default holding v. A non-nil literal is type-bearing:
// every value stored for the property must have the same dynamic type.
func Literal(v any) Default {
	return literal{v: v}
}

// Computed returns a Default evaluated with the owning host on every
// resolution. Only the result is ever cached, never the function.
func Computed(fn func(h apis.Host) (any, error)) Default {
	return computed{fn: fn}
}

// Lazy returns a Default evaluated without arguments on every resolution.
func Lazy(fn func() any) Default {
	if fn == nil {
		return computed{}
	}
	return computed{fn: func(apis.Host) (any, error) { return fn(), nil }}
}

// DependsOn returns a Default reusing the value of p on the same host.
// If p is not resolved yet it is resolved first. The host reads p by name,
// so a subclass redeclaring that name is honored.
func DependsOn(p *Property) Default {
	return dependsOn{p: p}
}

// LiteralValue returns the value of a Literal default.
func LiteralValue(d Default) (v any, ok bool) {
	l, ok := d.(literal)
	return l.v, ok
}

// Dependency returns the property a DependsOn default refers to.
func Dependency(d Default) (p *Property, ok bool) {
	dep, ok := d.(dependsOn)
	return dep.p, ok
}

type literal struct {
	v any
}

func (literal) Kind() DefaultKind { return LiteralKind }

func (l literal) resolve(apis.Host) (any, error) { return l.v, nil }

type computed struct {
	fn func(apis.Host) (any, error)
}

func (computed) Kind() DefaultKind { return ComputedKind }

func (c computed) resolve(h apis.Host) (any, error) {
	if c.fn == nil {
		return nil, nil
	}
	return c.fn(h)
}

type dependsOn struct {
	p *Property
}

func (dependsOn) Kind() DefaultKind { return DependencyKind }

func (d dependsOn) resolve(h apis.Host) (any, error) {
	name := d.p.Name()
	if name == "" {
		return nil, errUnnamedDependency
	}
	if s, ok := h.Slot(name); ok {
		return s.Value, nil
	}
	return h.Get(name)
}
