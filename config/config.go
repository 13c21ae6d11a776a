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


package config

import (
	"dirpx.dev/propx/apis"
)

const (
	// DefaultDetectCycles represents the default for DetectCycles.
	// When true, cyclic DependsOn/From declarations fail instead of recursing.
	DefaultDetectCycles = true
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 32 should be sufficient for all practical purposes.
	DefaultMaxDepth = 32
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		DetectCycles: DefaultDetectCycles,
		MaxDepth:     DefaultMaxDepth,
	}
}

// Normalize returns cfg with invalid fields replaced by their defaults.
func Normalize(cfg apis.Config) apis.Config {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDetectCycles sets the DetectCycles option.
func WithDetectCycles(detect bool) Option {
	return func(c *apis.Config) {
		c.DetectCycles = detect
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}
