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

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Error kinds surfaced by the read and write protocols. A *PropertyError
// matches its kind with errors.Is.
var (
	// ErrMissingNameBinding is returned when a descriptor is used on a class
	// that never went through the name binding pass, or when the descriptor
	// itself has no name.
	ErrMissingNameBinding = errors.New("propx: name binding did not run")
	// ErrRequiredValueAbsent is returned when a required property has neither
	// an input value nor a default.
	ErrRequiredValueAbsent = errors.New("propx: required value absent")
	// ErrTransformNotCallable is returned when a transform is set but cannot
	// be invoked with one argument.
	ErrTransformNotCallable = errors.New("propx: transform not callable")
	// ErrTransformFailed is returned when a transform reports an error.
	ErrTransformFailed = errors.New("propx: transform failed")
	// ErrComputeFailed is returned when a computed default reports an error.
	ErrComputeFailed = errors.New("propx: computed default failed")
	// ErrTypeMismatch is returned when a stored value's type differs from the
	// type of a literal default.
	ErrTypeMismatch = errors.New("propx: mismatched property types")
	// ErrValidationFailed is returned when a validator rejects a value.
	ErrValidationFailed = errors.New("propx: validation failed")
	// ErrCyclicDependency is returned when a property depends on itself,
	// directly or through other properties.
	ErrCyclicDependency = errors.New("propx: cyclic dependency")
	// ErrDependencyTooDeep is returned when a dependency chain exceeds
	// Config.MaxDepth.
	ErrDependencyTooDeep = errors.New("propx: dependency chain too deep")
	// ErrSuperkeyNotMapping is returned when a descriptor used as superkey
	// resolves to something other than a mapping.
	ErrSuperkeyNotMapping = errors.New("propx: superkey value is not a mapping")
	// ErrUnknownProperty is returned when a host has no descriptor for a name.
	ErrUnknownProperty = errors.New("propx: unknown property")
)

// dump renders values compactly and deterministically.
var dump = spew.ConfigState{
	Indent:                  "",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// PropertyError describes a failed read or write of one property.
type PropertyError struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Class is the owning class name, if known.
	Class string
	// Property is the property name, if bound.
	Property string
	// Instance identifies the owning instance, if any.
	Instance fmt.Stringer
	// Value is the offending value, if any.
	Value any
	// Default is the property's resolved default, if relevant.
	Default any
	// Validator describes the rejecting validator for ErrValidationFailed.
	Validator string
	// Err is the underlying cause, if any.
	Err error

	// hasValue and hasDefault distinguish a nil value from no value.
	hasValue   bool
	hasDefault bool
}

// WithValue records the offending value.
func (e *PropertyError) WithValue(v any) *PropertyError {
	e.Value, e.hasValue = v, true
	return e
}

// WithDefault records the resolved default.
func (e *PropertyError) WithDefault(v any) *PropertyError {
	e.Default, e.hasDefault = v, true
	return e
}

// Error implements error.
func (e *PropertyError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Property != "" {
		fmt.Fprintf(&b, ": property %q", e.Property)
	}
	if e.Class != "" {
		fmt.Fprintf(&b, " of class %q", e.Class)
	}
	if e.Instance != nil {
		fmt.Fprintf(&b, " on %s", e.Instance)
	}
	if e.Validator != "" {
		fmt.Fprintf(&b, " (validator: %s)", e.Validator)
	}
	if e.hasValue {
		fmt.Fprintf(&b, "; value %s (type %T)", dump.Sprintf("%v", e.Value), e.Value)
	}
	if e.hasDefault {
		fmt.Fprintf(&b, "; default %s (type %T)", dump.Sprintf("%v", e.Default), e.Default)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *PropertyError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
