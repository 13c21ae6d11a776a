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


package apis

// Slot is the per-instance cache cell of one property.
type Slot struct {
	// Value is the resolved or written value.
	Value any
	// Explicit reports that Value came from a direct write rather than
	// from resolution.
	Explicit bool
}

// Host is the owning instance a Descriptor resolves against.
//
// A Host carries the raw input mapping supplied at construction and a private
// cache with one Slot per property name. A missing slot and a slot holding a
// nil Value are both "unset" and trigger resolution on the next read.
type Host interface {
	// Class returns the class the host was constructed from.
	Class() Class
	// Kwargs returns the raw input mapping. It may be nil.
	Kwargs() map[string]any
	// Slot returns the cache cell for name and whether it is set.
	Slot(name string) (Slot, bool)
	// Store overwrites the cache cell for name.
	Store(name string, s Slot)
	// Get reads the named property through the host's class, running its
	// read protocol if needed.
	Get(name string) (any, error)
}

// Tracker is implemented by hosts that can record which properties are being
// resolved, so dependency chains can be checked for cycles.
type Tracker interface {
	// Enter marks name as in progress. It returns the number of resolutions
	// in progress including this one, and false if name was already in progress.
	Enter(name string) (depth int, ok bool)
	// Leave marks name as no longer in progress.
	Leave(name string)
}
