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


package instance

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"dirpx.dev/propx/apis"
)

// Instance is the reference apis.Host: the raw input supplied at
// construction plus one cache slot per property name.
//
// An Instance is not safe for concurrent use.
type Instance struct {
	id     uuid.UUID
	cls    apis.Class
	kwargs map[string]any
	slots  map[string]apis.Slot
	active map[string]struct{}
}

// Ensure Instance implements apis.Host and apis.Tracker.
var (
	_ apis.Host    = (*Instance)(nil)
	_ apis.Tracker = (*Instance)(nil)
)

// New constructs an instance of cls over kwargs. kwargs is kept as is, not
// copied, and may be nil. No property is resolved until it is read.
func New(cls apis.Class, kwargs map[string]any) *Instance {
	return &Instance{
		id:     uuid.New(),
		cls:    cls,
		kwargs: kwargs,
		slots:  make(map[string]apis.Slot),
		active: make(map[string]struct{}),
	}
}

// FromYAML constructs an instance of cls whose raw input is the YAML mapping
// in data. Nested YAML mappings become nested map[string]any values, so they
// can be reached with superkeys.
func FromYAML(cls apis.Class, data []byte) (*Instance, error) {
	var kwargs map[string]any
	if err := yaml.Unmarshal(data, &kwargs); err != nil {
		return nil, fmt.Errorf("propx(instance): failed to parse input YAML: %w", err)
	}
	return New(cls, kwargs), nil
}

// ID returns the identifier of the instance used in error messages.
func (i *Instance) ID() string { return i.id.String() }

// Class returns the class the instance was constructed from.
func (i *Instance) Class() apis.Class { return i.cls }

// Kwargs returns the raw input. The returned map is the live input, not a copy.
func (i *Instance) Kwargs() map[string]any { return i.kwargs }

// Slot returns the cache cell for name. A cell holding nil is unset.
func (i *Instance) Slot(name string) (apis.Slot, bool) {
	s, ok := i.slots[name]
	return s, ok && s.Value != nil
}

// Store overwrites the cache cell for name. Storing nil unsets it.
func (i *Instance) Store(name string, s apis.Slot) {
	if s.Value == nil {
		delete(i.slots, name)
		return
	}
	i.slots[name] = s
}

// Enter marks name as being resolved.
func (i *Instance) Enter(name string) (int, bool) {
	if _, busy := i.active[name]; busy {
		return len(i.active), false
	}
	i.active[name] = struct{}{}
	return len(i.active), true
}

// Leave marks name as resolved.
func (i *Instance) Leave(name string) {
	delete(i.active, name)
}

// Get reads the named property.
func (i *Instance) Get(name string) (any, error) {
	d, err := i.descriptor(name)
	if err != nil {
		return nil, err
	}
	return d.Get(i)
}

// Set writes the named property.
func (i *Instance) Set(name string, v any) error {
	d, err := i.descriptor(name)
	if err != nil {
		return err
	}
	return d.Set(i, v)
}

// Unset returns the slot of name to the unset state, so the next read
// resolves it again from its default and input.
func (i *Instance) Unset(name string) {
	delete(i.slots, name)
}

// Resolve reads every property visible on the class once and returns the
// failures combined, in declaration order.
func (i *Instance) Resolve() error {
	if i.cls == nil || !i.cls.Bound() {
		return i.unbound("")
	}
	var err error
	for _, name := range i.cls.Names() {
		if _, e := i.Get(name); e != nil {
			err = multierr.Append(err, e)
		}
	}
	return err
}

// Values returns a copy of every set slot.
func (i *Instance) Values() map[string]any {
	out := make(map[string]any, len(i.slots))
	for name, s := range i.slots {
		out[name] = s.Value
	}
	return out
}

// String implements fmt.Stringer.
func (i *Instance) String() string {
	name := "<nil>"
	if i.cls != nil {
		name = i.cls.Name()
	}
	return fmt.Sprintf("%s(%s)", name, i.id)
}

// descriptor looks name up on the class chain.
func (i *Instance) descriptor(name string) (apis.Descriptor, error) {
	if i.cls == nil || !i.cls.Bound() {
		return nil, i.unbound(name)
	}
	d, ok := i.cls.Descriptor(name)
	if !ok {
		return nil, &apis.PropertyError{
			Kind:     apis.ErrUnknownProperty,
			Class:    i.cls.Name(),
			Property: name,
			Instance: i,
		}
	}
	return d, nil
}

func (i *Instance) unbound(name string) error {
	e := &apis.PropertyError{Kind: apis.ErrMissingNameBinding, Property: name, Instance: i}
	if i.cls != nil {
		e.Class = i.cls.Name()
	}
	return e
}
