// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glxtest

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/glx"
)

type loadResult struct {
	img image.Image
	err error
}

// Loader is a glx.ImageLoader whose loads complete only when the test says
// so. LoadImage for a source blocks until Complete or Fail is called for
// that source, or until its context ends.
//
// Complete and Fail may be called before the load starts, and at most once
// per source between them. A second completion panics.
type Loader struct {
	mu        sync.Mutex
	pending   map[string]chan loadResult
	completed map[string]bool
	started map[string]chan struct{}
	modes   map[string]glx.CrossOrigin
}

// NewLoader returns a loader with no completed sources.
func NewLoader() *Loader {
	return &Loader{
		pending:   make(map[string]chan loadResult),
		completed: make(map[string]bool),
		started:   make(map[string]chan struct{}),
		modes:     make(map[string]glx.CrossOrigin),
	}
}

func (l *Loader) result(src string) chan loadResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.pending[src]
	if !ok {
		ch = make(chan loadResult, 1)
		l.pending[src] = ch
	}
	return ch
}

func (l *Loader) startedCh(src string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.started[src]
	if !ok {
		ch = make(chan struct{})
		l.started[src] = ch
	}
	return ch
}

func (l *Loader) markStarted(src string, mode glx.CrossOrigin) {
	ch := l.startedCh(src)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modes[src] = mode
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// LoadImage implements glx.ImageLoader.
func (l *Loader) LoadImage(ctx context.Context, src string, mode glx.CrossOrigin) (image.Image, error) {
	l.markStarted(src, mode)

	select {
	case r := <-l.result(src):
		return r.img, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Complete makes the load of src succeed with img.
func (l *Loader) Complete(src string, img image.Image) {
	l.finish(src, loadResult{img: img})
}

// Fail makes the load of src fail with err.
func (l *Loader) Fail(src string, err error) {
	l.finish(src, loadResult{err: err})
}

func (l *Loader) finish(src string, r loadResult) {
	ch := l.result(src)
	l.mu.Lock()
	done := l.completed[src]
	l.completed[src] = true
	l.mu.Unlock()
	if done {
		panic(fmt.Sprintf("glxtest: %s completed twice", src))
	}
	ch <- r
}

// Started returns a channel closed once LoadImage has been called for src.
func (l *Loader) Started(src string) <-chan struct{} {
	return l.startedCh(src)
}

// Mode returns the CORS mode src was requested with.
func (l *Loader) Mode(src string) (glx.CrossOrigin, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.modes[src]
	return m, ok
}

// SolidImage returns a w x h image filled with c.
func SolidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}
