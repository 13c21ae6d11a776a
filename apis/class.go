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

import "go.uber.org/zap"

// Class is a declared set of named descriptors.
//
// Bound is the capability marker: it reports whether the name binding pass ran
// for the class, which every Descriptor checks before use.
type Class interface {
	// Name returns the class name.
	Name() string
	// Bound reports whether the name binding pass completed for the class.
	Bound() bool
	// Parent returns the class this one extends, or nil.
	Parent() Class
	// Descriptor returns the descriptor declared under name, searching
	// parents when the class itself does not declare it.
	Descriptor(name string) (Descriptor, bool)
	// Names returns every property name visible on the class, inherited
	// ones first, in declaration order.
	Names() []string
	// Config returns the resolution knobs for the class.
	Config() Config
	// Logger returns the logger used while resolving properties of the class.
	Logger() *zap.Logger
}

// Descriptor resolves and stores one named attribute of a Host.
type Descriptor interface {
	// Name returns the bound attribute name, or "" before binding.
	Name() string
	// Get runs the read protocol for h.
	Get(h Host) (any, error)
	// Set runs the write protocol for h.
	Set(h Host, v any) error
}
