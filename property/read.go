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
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/config"
	uref "dirpx.dev/propx/utils/reflect"
	"dirpx.dev/propx/validate"
)

// Sources reported in resolution logs.
const (
	sourceKwarg   = "kwarg"
	sourceDefault = "default"
)

// Get runs the read protocol of p for h and returns the effective value.
//
// Called with a nil host, Get returns p itself, unevaluated, so class-level
// access can be used for introspection and for declaring dependencies.
//
// Otherwise the default is resolved and the raw input located first. A
// singleton with a set slot (or any property holding an explicit write)
// returns the cached value. Else a non-nil input value under p's name is
// combined with the default, or the default itself is used; the result is
// transformed, validated and stored.
func (p *Property) Get(h apis.Host) (any, error) {
	if h == nil {
		return p, nil
	}
	cls, err := p.check(h)
	if err != nil {
		return nil, err
	}
	leave, err := p.enter(h, cls.Config())
	if err != nil {
		return nil, err
	}
	defer leave()

	def, err := p.resolveDefault(h)
	if err != nil {
		return nil, err
	}
	input, err := p.input(h)
	if err != nil {
		return nil, err
	}

	if s, ok := h.Slot(p.name); ok && (p.singleton || s.Explicit) {
		return s.Value, nil
	}

	var (
		value  any
		source = sourceDefault
	)
	// A literal false or 0 is a value; only nil counts as absent.
	if raw, ok := input[p.name]; p.singleton && ok && raw != nil {
		source = sourceKwarg
		value = p.combineWith(raw, def)
	} else {
		if def == nil && p.required {
			return nil, p.fail(h, apis.ErrRequiredValueAbsent)
		}
		// Mapping and sequence defaults must not be shared between hosts.
		value = uref.Clone(def)
	}

	if value, err = p.applyTransform(h, value); err != nil {
		return nil, err
	}
	if err := p.validate(h, value); err != nil {
		return nil, err
	}
	h.Store(p.name, apis.Slot{Value: value})

	if l := cls.Logger(); l != nil {
		l.Debug("property resolved",
			zap.String("class", cls.Name()),
			zap.String("property", p.name),
			zap.String("source", source),
		)
	}
	return value, nil
}

// check verifies the name binding preconditions and returns h's class.
func (p *Property) check(h apis.Host) (apis.Class, error) {
	cls := h.Class()
	if cls == nil || !cls.Bound() || p.name == "" {
		return nil, p.fail(h, apis.ErrMissingNameBinding)
	}
	return cls, nil
}

// enter records p as in progress on h when cycle detection is enabled.
// The returned func must be called once resolution is over.
func (p *Property) enter(h apis.Host, cfg apis.Config) (func(), error) {
	t, ok := h.(apis.Tracker)
	if !ok || !cfg.DetectCycles {
		return func() {}, nil
	}
	depth, ok := t.Enter(p.name)
	if !ok {
		return nil, p.fail(h, apis.ErrCyclicDependency)
	}
	if limit := config.Normalize(cfg).MaxDepth; depth > limit {
		t.Leave(p.name)
		e := p.fail(h, apis.ErrDependencyTooDeep)
		e.Err = fmt.Errorf("depth %d exceeds %d", depth, limit)
		return nil, e
	}
	return func() { t.Leave(p.name) }, nil
}

// resolveDefault produces the raw default for h.
func (p *Property) resolveDefault(h apis.Host) (any, error) {
	if p.def == nil {
		return nil, nil
	}
	v, err := p.def.resolve(h)
	if err != nil {
		return nil, p.wrap(h, err)
	}
	return v, nil
}

// input returns the raw input mapping p is resolved against.
func (p *Property) input(h apis.Host) (map[string]any, error) {
	if p.superkeys == nil {
		return h.Kwargs(), nil
	}
	m, err := p.superkeys.input(h)
	if err != nil {
		return nil, p.wrap(h, err)
	}
	return m, nil
}

// wrap turns an error raised while chasing a default or superkey into a
// *apis.PropertyError for p. Errors of other properties pass through.
func (p *Property) wrap(h apis.Host, err error) error {
	var pe *apis.PropertyError
	if errors.As(err, &pe) {
		return err
	}
	var nm notMappingError
	if errors.As(err, &nm) {
		return p.fail(h, apis.ErrSuperkeyNotMapping).WithValue(nm.value)
	}
	kind := apis.ErrComputeFailed
	if errors.Is(err, apis.ErrMissingNameBinding) {
		kind = apis.ErrMissingNameBinding
	}
	e := p.fail(h, kind)
	e.Err = err
	return e
}

// combineWith merges an input mapping or sequence with a non-empty default.
func (p *Property) combineWith(v, def any) any {
	if !p.combine || uref.IsEmpty(def) {
		return v
	}
	if out, ok := uref.CombineMaps(def, v); ok {
		return out
	}
	if out, ok := uref.CombineSequences(def, v); ok {
		return out
	}
	return v
}

// applyTransform runs the transform, if any, on v.
func (p *Property) applyTransform(h apis.Host, v any) (any, error) {
	if p.transform == nil {
		return v, nil
	}
	out, err := uref.Apply(p.transform, v)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, uref.ErrNotCallable):
		e := p.fail(h, apis.ErrTransformNotCallable)
		e.Err = fmt.Errorf("transform of type %T", p.transform)
		return nil, e
	default:
		e := p.fail(h, apis.ErrTransformFailed).WithValue(v)
		e.Err = err
		return nil, e
	}
}

// Validate checks v against the type-bearing default and the validators of
// p without storing it.
func (p *Property) Validate(v any) error {
	return p.validate(nil, v)
}

func (p *Property) validate(h apis.Host, v any) error {
	if lit, ok := LiteralValue(p.def); ok && lit != nil && !uref.SameType(lit, v) {
		return p.fail(h, apis.ErrTypeMismatch).WithValue(v).WithDefault(lit)
	}
	// Absence is governed by required, not by validators.
	if v == nil {
		return nil
	}
	if bad := validate.First(v, p.validators...); bad != nil {
		e := p.fail(h, apis.ErrValidationFailed).WithValue(v)
		e.Validator = bad.String()
		return e
	}
	return nil
}

// fail builds an error of the given kind with as much context as h offers.
func (p *Property) fail(h apis.Host, kind error) *apis.PropertyError {
	e := &apis.PropertyError{Kind: kind, Property: p.name}
	if h == nil {
		return e
	}
	if cls := h.Class(); cls != nil {
		e.Class = cls.Name()
	}
	if s, ok := h.(fmt.Stringer); ok {
		e.Instance = s
	}
	return e
}
