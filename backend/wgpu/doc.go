// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements glx.Device on the pure Go gogpu HAL.
//
// Context types are HAL backend names. DefaultSurface registers "vulkan",
// when the Vulkan backend is available, and "noop", which runs anywhere
// and is what the tests use:
//
//	ctx, err := glx.NewContext(wgpu.DefaultSurface(), wgpu.DefaultConfig())
//
// A host application that already owns a device, such as a gogpu window,
// can share it through FromProvider.
//
// # Shaders
//
// Shader sources are WGSL. CompileShader runs the naga compiler and reports
// its diagnostics as the info log. Linking requires a vertex stage with a
// @vertex entry point and a fragment stage with a @fragment entry point and
// creates one HAL shader module per stage.
//
// Uniform locations follow declaration order of the var<uniform> bindings
// across both stages.
//
// # Errors
//
// Like GL, Device methods do not return errors. HAL failures are logged
// through glx.Logger and kept until the next call to Err.
package wgpu
