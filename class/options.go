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
	"go.uber.org/zap"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
)

// Option declares a member of a class body or sets a class-level knob.
type Option func(*builder)

// builder collects a class declaration before the name binding pass.
type builder struct {
	parent  *Class
	cfg     *apis.Config
	log     *zap.Logger
	members []member
}

// member is one entry of a class body: either a property or a callback.
type member struct {
	name     string
	prop     *property.Property
	callback func(apis.Host) (any, error)
	opts     []property.Option
}

// property returns the property to bind for m.
func (m member) property() (*property.Property, error) {
	if m.callback != nil {
		opts := append(append([]property.Option(nil), m.opts...),
			property.WithDefault(property.Computed(m.callback)))
		return property.New(opts...), nil
	}
	if m.prop == nil {
		return nil, ErrNilProperty
	}
	return m.prop, nil
}

// Attr declares p under name. p gets name as its bound name.
func Attr(name string, p *property.Property) Option {
	return func(b *builder) {
		b.members = append(b.members, member{name: name, prop: p})
	}
}

// Callback declares a computed attribute: fn becomes the Computed default of
// a fresh property bound to name. opts configure that property; a default
// set through opts is replaced by fn.
func Callback(name string, fn func(h apis.Host) (any, error), opts ...property.Option) Option {
	return func(b *builder) {
		m := member{name: name, callback: fn, opts: opts}
		if fn == nil {
			// Reported by the binding pass as a nil property.
			m = member{name: name}
		}
		b.members = append(b.members, m)
	}
}

// Extends makes the class a subclass of parent. Properties the subclass does
// not redeclare resolve with parent's declaration.
func Extends(parent *Class) Option {
	return func(b *builder) {
		b.parent = parent
	}
}

// WithConfig sets the resolution knobs of the class.
func WithConfig(cfg apis.Config) Option {
	return func(b *builder) {
		b.cfg = &cfg
	}
}

// WithLogger sets the logger of the class. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}
