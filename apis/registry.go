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

// Registry is a process-wide lookup of bound classes by name.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates c with c.Name().
	// Implementations should be idempotent; conflicting re-registrations fail.
	Register(c Class) error
	// Lookup returns the class registered under name, if any.
	Lookup(name string) (Class, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (name, class) association in a Registry snapshot.
type Entry struct {
	// Name is the registered class name.
	Name string
	// Class is the registered class.
	Class Class
}
