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


package propx

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/class"
	"dirpx.dev/propx/config"
	"dirpx.dev/propx/instance"
	"dirpx.dev/propx/registry"
)

// init initializes the global state.
func init() {
	st.Store(&state{
		cfg: config.DefaultConfig(),
		log: zap.NewNop(),
		reg: registry.New(),
	})
}

var (
	// ErrUnknownClass is returned when no class is registered under a name.
	ErrUnknownClass = errors.New("propx: unknown class")
	// ErrNilHost is returned by Get when called without a host.
	ErrNilHost = errors.New("propx: nil host provided")
)

// Define declares a class with the global configuration and logger and
// registers it in the global registry. Options passed by the caller take
// precedence over the global ones.
func Define(name string, opts ...class.Option) (*class.Class, error) {
	s := st.Load()
	all := make([]class.Option, 0, len(opts)+2)
	all = append(all, class.WithConfig(s.cfg), class.WithLogger(s.log))
	all = append(all, opts...)

	c, err := class.New(name, all...)
	if err != nil {
		return nil, err
	}
	if err := s.reg.Register(c); err != nil {
		return nil, fmt.Errorf("%w: class %q", err, name)
	}
	return c, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(name string, opts ...class.Option) *class.Class {
	c, err := Define(name, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the class registered under name in the global registry.
func Lookup(name string) (apis.Class, bool) {
	return st.Load().reg.Lookup(name)
}

// New constructs an instance of the class registered under className.
func New(className string, kwargs map[string]any) (*instance.Instance, error) {
	c, ok := Lookup(className)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, className)
	}
	return instance.New(c, kwargs), nil
}

// Load constructs an instance of the class registered under className from
// a YAML document.
func Load(className string, data []byte) (*instance.Instance, error) {
	c, ok := Lookup(className)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, className)
	}
	return instance.FromYAML(c, data)
}

// Get reads the named property of h as a T. A nil value yields the zero T;
// a value of another type fails with apis.ErrTypeMismatch.
func Get[T any](h apis.Host, name string) (T, error) {
	var zero T
	if h == nil {
		return zero, ErrNilHost
	}
	v, err := h.Get(name)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		e := (&apis.PropertyError{
			Kind:     apis.ErrTypeMismatch,
			Property: name,
			Err:      fmt.Errorf("requested %v", reflect.TypeFor[T]()),
		}).WithValue(v)
		if c := h.Class(); c != nil {
			e.Class = c.Name()
		}
		if s, ok := h.(fmt.Stringer); ok {
			e.Instance = s
		}
		return zero, e
	}
	return t, nil
}

// SetAll explicitly sets all global state components.
// Nil arguments leave the corresponding component unchanged.
func SetAll(cfg *apis.Config, log *zap.Logger, reg apis.Registry) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	if cfg != nil {
		next.cfg = config.Normalize(*cfg)
	}
	if log != nil {
		next.log = log
	}
	if reg != nil {
		next.reg = reg
	}
	st.Store(&next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration used by classes defined from now on.
// Classes already defined keep the configuration they were defined with.
func SetConfig(cfg apis.Config) {
	SetAll(&cfg, nil, nil)
}

// Logger returns the global logger.
func Logger() *zap.Logger {
	return st.Load().log
}

// SetLogger sets the global logger used by classes defined from now on.
// A nil logger is ignored.
func SetLogger(log *zap.Logger) {
	SetAll(nil, log, nil)
}

// Registry returns the global class registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the global class registry. A nil registry is ignored.
func SetRegistry(reg apis.Registry) {
	SetAll(nil, nil, reg)
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable once published via st.Store; writers copy, modify and swap.
type state struct {
	// cfg is applied to classes declared through Define.
	cfg apis.Config
	// log is given to classes declared through Define.
	log *zap.Logger
	// reg holds every class declared through Define.
	reg apis.Registry
}
