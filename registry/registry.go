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


package registry

import (
	"errors"
	"sync"

	"dirpx.dev/propx/apis"
)

var (
	// ErrNilClass is returned when a nil class is provided.
	ErrNilClass = errors.New("propx(registry): nil class provided")
	// ErrEmptyName is returned when a class has an empty name.
	ErrEmptyName = errors.New("propx(registry): empty class name provided")
	// ErrUnboundClass is returned when a class did not go through name binding.
	ErrUnboundClass = errors.New("propx(registry): class is not bound")
	// ErrConflictingRegistration indicates an attempt to register a different
	// class under an already registered name.
	ErrConflictingRegistration = errors.New("propx(registry): conflicting class registration")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps class names to classes.
	m sync.Map // map[string]apis.Class
	// count tracks the number of registered entries.
	count int
}

// Register associates c with c.Name().
// It is idempotent for the same (name, class) pair.
func (r *registry) Register(c apis.Class) error {
	// Validate inputs early.
	if c == nil {
		return ErrNilClass
	}
	if !c.Bound() {
		return ErrUnboundClass
	}
	name := c.Name()
	if name == "" {
		return ErrEmptyName
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(name); ok {
		if old.(apis.Class) == c {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(name); ok {
		if old.(apis.Class) == c {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(name, c)
	r.count++
	return nil
}

// Lookup returns the class registered under name, if any.
func (r *registry) Lookup(name string) (apis.Class, bool) {
	if name == "" {
		return nil, false
	}
	if v, ok := r.m.Load(name); ok {
		return v.(apis.Class), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Name:  key.(string),
			Class: value.(apis.Class),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
