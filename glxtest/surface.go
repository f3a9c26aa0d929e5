// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glxtest

import (
	"slices"
	"sync"

	"github.com/gogpu/glx"
)

// Surface is a glx.Surface that provides Device for a fixed set of
// context types and records every attempt.
type Surface struct {
	// Device is returned for supported types.
	Device glx.Device

	// Errors makes GetContext fail for the listed types.
	Errors map[string]error

	mu        sync.Mutex
	supported map[string]bool
	attempts  []string
	attrs     []glx.Attributes
}

// NewSurface returns a surface that hands out dev for the given types and
// reports every other type as unsupported.
func NewSurface(dev glx.Device, types ...string) *Surface {
	s := &Surface{
		Device:    dev,
		Errors:    make(map[string]error),
		supported: make(map[string]bool, len(types)),
	}
	for _, t := range types {
		s.supported[t] = true
	}
	return s
}

// GetContext implements glx.Surface.
func (s *Surface) GetContext(contextType string, attrs glx.Attributes) (glx.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, contextType)
	s.attrs = append(s.attrs, attrs)
	if err := s.Errors[contextType]; err != nil {
		return nil, err
	}
	if !s.supported[contextType] {
		return nil, nil
	}
	return s.Device, nil
}

// Attempts returns the context types requested so far, in order.
func (s *Surface) Attempts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.attempts)
}

// AttributesSeen returns the attributes passed with each attempt.
func (s *Surface) AttributesSeen() []glx.Attributes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.attrs)
}
