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


package class

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/config"
	"dirpx.dev/propx/property"
)

var (
	// ErrEmptyName is returned when a class or member name is empty.
	ErrEmptyName = errors.New("propx(class): empty name provided")
	// ErrNilProperty is returned when a member is declared with a nil property
	// or a nil callback.
	ErrNilProperty = errors.New("propx(class): nil property provided")
	// ErrDuplicateMember is returned when a class body declares a name twice.
	ErrDuplicateMember = errors.New("propx(class): duplicate member")
	// ErrUnboundParent is returned when extending a class that was not built by New.
	ErrUnboundParent = errors.New("propx(class): parent class is not bound")
	// ErrNameConflict is returned when a member's property is already bound
	// to a different name.
	ErrNameConflict = errors.New("propx(class): property bound to another name")
)

// Class is a named set of properties, optionally extending a parent class.
//
// A Class is usable only once New has run the name binding pass over its
// members; the zero Class reports Bound() == false and every property read
// through it fails with apis.ErrMissingNameBinding.
type Class struct {
	name   string
	parent *Class
	cfg    apis.Config
	log    *zap.Logger
	props  map[string]*property.Property
	order  []string
	bound  bool
}

// Ensure Class implements apis.Class.
var _ apis.Class = (*Class)(nil)

// New declares a class and runs the name binding pass over its members:
// every Attr property is bound to its member name and every Callback is
// replaced by a property with a Computed default bound to its name.
//
// Config and logger are inherited from the parent unless set explicitly;
// a root class defaults to config.DefaultConfig() and a no-op logger.
func New(name string, opts ...Option) (*Class, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	c := &Class{
		name:   name,
		parent: b.parent,
		cfg:    config.DefaultConfig(),
		log:    zap.NewNop(),
		props:  make(map[string]*property.Property, len(b.members)),
	}
	if b.parent != nil {
		if !b.parent.Bound() {
			return nil, fmt.Errorf("%w: %q extends %q", ErrUnboundParent, name, b.parent.name)
		}
		c.cfg, c.log = b.parent.cfg, b.parent.log
	}
	if b.cfg != nil {
		c.cfg = config.Normalize(*b.cfg)
	}
	if b.log != nil {
		c.log = b.log
	}

	if err := c.bind(b.members); err != nil {
		return nil, err
	}
	c.bound = true
	return c, nil
}

// MustNew is like New but panics on error.
// It is meant for package-level class declarations.
func MustNew(name string, opts ...Option) *Class {
	c, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// bind checks every member first so that a failing declaration leaves no
// property half-bound, then binds them in declaration order.
func (c *Class) bind(members []member) error {
	props := make([]*property.Property, len(members))
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if m.name == "" {
			return fmt.Errorf("%w: member %d of %q", ErrEmptyName, i, c.name)
		}
		if _, dup := seen[m.name]; dup {
			return fmt.Errorf("%w: %q declared twice on %q", ErrDuplicateMember, m.name, c.name)
		}
		seen[m.name] = struct{}{}

		p, err := m.property()
		if err != nil {
			return fmt.Errorf("%w: member %q of %q", err, m.name, c.name)
		}
		if n := p.Name(); n != "" && n != m.name {
			return fmt.Errorf("%w: %q declared as %q on %q", ErrNameConflict, n, m.name, c.name)
		}
		props[i] = p
	}

	for i, m := range members {
		if err := props[i].Bind(m.name); err != nil {
			return err
		}
		c.props[m.name] = props[i]
		c.order = append(c.order, m.name)
	}
	return nil
}

// Name returns the class name.
func (c *Class) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Bound reports whether the name binding pass completed for c.
func (c *Class) Bound() bool {
	return c != nil && c.bound
}

// Parent returns the class c extends, or nil.
func (c *Class) Parent() apis.Class {
	if c == nil || c.parent == nil {
		return nil
	}
	return c.parent
}

// Config returns the resolution knobs for c.
func (c *Class) Config() apis.Config {
	if c == nil || !c.bound {
		return config.DefaultConfig()
	}
	return c.cfg
}

// Logger returns the logger used while resolving properties of c.
func (c *Class) Logger() *zap.Logger {
	if c == nil || c.log == nil {
		return zap.NewNop()
	}
	return c.log
}

// Property returns the property declared under name on c or, failing that,
// on the nearest ancestor declaring it. This is the class-level access used
// to declare dependencies on inherited properties.
func (c *Class) Property(name string) (*property.Property, bool) {
	for k := c; k != nil; k = k.parent {
		if p, ok := k.props[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// Descriptor returns the property for name as an apis.Descriptor.
func (c *Class) Descriptor(name string) (apis.Descriptor, bool) {
	p, ok := c.Property(name)
	if !ok {
		return nil, false
	}
	return p, true
}

// Names returns every property name visible on c: inherited names first,
// each class contributing its own new names in declaration order.
func (c *Class) Names() []string {
	if c == nil {
		return nil
	}
	var out []string
	if c.parent != nil {
		out = c.parent.Names()
	}
	seen := make(map[string]struct{}, len(out))
	for _, n := range out {
		seen[n] = struct{}{}
	}
	for _, n := range c.order {
		if _, ok := seen[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Extends reports whether c is other or one of its descendants.
func (c *Class) Extends(other apis.Class) bool {
	for k := c; k != nil; k = k.parent {
		if apis.Class(k) == other {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	return "class " + c.Name()
}
