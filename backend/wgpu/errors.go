// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import "errors"

// Package errors for the wgpu backend.
var (
	// ErrNoAdapter is returned when a backend enumerates no adapters.
	ErrNoAdapter = errors.New("wgpu: no GPU adapter available")

	// ErrNoHAL is returned when a device provider does not expose its
	// HAL device and queue.
	ErrNoHAL = errors.New("wgpu: provider does not expose a HAL device")

	// ErrNoBuffer is returned when BufferData is called with nothing bound
	// to the target.
	ErrNoBuffer = errors.New("wgpu: no buffer bound")

	// ErrNoTexture is returned when a texture call names no live texture.
	ErrNoTexture = errors.New("wgpu: no such texture")
)
