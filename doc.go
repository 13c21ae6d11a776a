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


// Package propx provides declarative, lazily resolved properties for
// configuration-like objects.
//
// A property is declared once on a class and resolved per instance, on first
// read, from the raw input the instance was constructed with (its kwargs),
// its default and a few declarative knobs:
//
//   - Default: a literal value, a function computed with the instance, or
//     another property whose resolved value is reused (DependsOn).
//   - Required: resolving with neither input nor default is an error.
//   - Singleton: the resolved value is cached for good. A non-singleton
//     property ignores the raw input and re-resolves its default on every
//     read unless a value was written explicitly.
//   - Combine defaults: a mapping or sequence input is merged with a
//     mapping or sequence default instead of replacing it.
//   - Superkeys: the property is looked up in a nested mapping of the input,
//     reached through a literal key path or through another property.
//   - Transform: a function applied to every resolved value before storage.
//   - Validators: predicates every stored value must satisfy, on top of the
//     type check against a non-nil literal default.
//
// # Design
//
// The work is split across small packages:
//
//   - property: the descriptor, with its read and write protocols.
//   - class: the name binding pass. A class is declared as a list of members
//     (class.Attr, class.Callback) and becomes usable only once every
//     property knows its attribute name. Properties used on a class that was
//     not built by class.New fail with apis.ErrMissingNameBinding.
//   - instance: the reference host holding the raw input and one cache slot
//     per property.
//   - registry: a concurrency-safe set of classes by name.
//   - validate: reusable validators (patterns, enumerations, kinds).
//
// This package holds a read-mostly global snapshot with the configuration
// and logger given to classes declared through Define, and the registry they
// are recorded in. Readers load the snapshot atomically; writers (SetConfig,
// SetLogger, SetRegistry, SetAll) take a short build lock, copy the snapshot
// and publish the copy.
//
// # Usage
//
//	var person = propx.MustDefine("Person",
//		class.Attr("name", property.New(property.WithRequired(true))),
//		class.Attr("tags", property.New(property.WithLiteral([]any{"staff"}))),
//		class.Callback("greeting", func(h apis.Host) (any, error) {
//			name, err := propx.Get[string](h, "name")
//			return "hello " + name, err
//		}),
//	)
//
//	p, _ := propx.New("Person", map[string]any{"name": "ada", "tags": []any{"eng"}})
//	tags, _ := p.Get("tags") // []any{"staff", "eng"}
//
// # Errors
//
// Every failure of a read or write is a *apis.PropertyError. errors.Is
// matches its kind (apis.ErrRequiredValueAbsent, apis.ErrTypeMismatch, ...)
// and its cause; errors.As exposes the class, property, instance and the
// offending value.
//
// # Concurrency model
//
// Classes and properties are immutable once declared and may be shared
// freely. An instance is not safe for concurrent use: reads mutate its cache.
package propx
