// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glxtest provides in-memory implementations of the glx interfaces
// for tests: a Device that records state, a Surface with a fixed set of
// supported context types and an ImageLoader driven by the test.
package glxtest
