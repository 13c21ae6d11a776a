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
	"dirpx.dev/propx/apis"
	uref "dirpx.dev/propx/utils/reflect"
)

// Superkeys locates the sub-mapping of a host's raw input that a property
// is resolved against, instead of the top-level input.
type Superkeys interface {
	// input returns the raw input mapping for h.
	input(h apis.Host) (map[string]any, error)
}

// Path returns Superkeys descending into the raw input one key at a time.
// Descent stops at the first missing key (or non-mapping value), yielding
// the mapping reached so far.
func Path(keys ...string) Superkeys {
	return path(append([]string(nil), keys...))
}

// From returns Superkeys using the resolved value of p as the raw input.
// p is resolved first if needed. A nil value counts as an empty mapping;
// any other value that is not a mapping fails with ErrSuperkeyNotMapping.
func From(p *Property) Superkeys {
	return from{p: p}
}

// Keys returns the key path of a Path superkey.
func Keys(s Superkeys) (keys []string, ok bool) {
	p, ok := s.(path)
	return append([]string(nil), p...), ok
}

type path []string

func (p path) input(h apis.Host) (map[string]any, error) {
	return uref.SubMap(h.Kwargs(), p), nil
}

type from struct {
	p *Property
}

func (f from) input(h apis.Host) (map[string]any, error) {
	name := f.p.Name()
	if name == "" {
		return nil, errUnnamedDependency
	}
	var v any
	if s, ok := h.Slot(name); ok {
		v = s.Value
	} else {
		var err error
		if v, err = h.Get(name); err != nil {
			return nil, err
		}
	}
	if v == nil {
		return nil, nil
	}
	m, ok := uref.AsMap(v)
	if !ok {
		return nil, notMappingError{value: v}
	}
	return m, nil
}

// notMappingError carries the offending superkey value up to the property,
// which reports it with full context.
type notMappingError struct {
	value any
}

func (notMappingError) Error() string { return apis.ErrSuperkeyNotMapping.Error() }

func (notMappingError) Unwrap() error { return apis.ErrSuperkeyNotMapping }
