package glx

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Context binds the glx helpers to one rendering context obtained from a
// Surface. All helpers are methods, so there is no captured state beyond
// the Device itself.
//
// A Context is not safe for concurrent use, matching the single-threaded
// model of the APIs it wraps. The exception is CreateTexture, whose
// background loads upload through the device's TextureUploader, or bind and
// upload under a lock on the device's Executor.
type Context struct {
	dev    Device
	typ    string
	attrs  Attributes
	loader ImageLoader
	logger *slog.Logger

	// upload serializes bind-then-upload sequences of background loads.
	upload sync.Mutex
}

// NewContext asks the surface for each type in cfg.Types, in order, and
// returns a Context for the first one the surface provides.
//
// A type is skipped when GetContext returns no device or an error. If no
// type succeeds, or s is nil, the returned error matches
// ErrContextUnavailable and joins the per-type errors.
func NewContext(s Surface, cfg Config, opts ...ContextOption) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		attrs:  cfg.Attributes,
		loader: o.loader,
		logger: o.logger,
	}
	if c.loader == nil {
		c.loader = &HTTPImageLoader{}
	}

	if s == nil {
		return nil, fmt.Errorf("%w: no surface", ErrContextUnavailable)
	}
	if len(cfg.Types) == 0 {
		return nil, fmt.Errorf("%w: no context types requested", ErrContextUnavailable)
	}

	var errs []error
	for _, typ := range cfg.Types {
		dev, err := s.GetContext(typ, cfg.Attributes)
		if err != nil {
			c.log().Debug("glx: context type failed", "type", typ, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", typ, err))
			continue
		}
		if dev == nil {
			c.log().Debug("glx: context type unsupported", "type", typ)
			continue
		}
		c.dev = dev
		c.typ = typ
		c.log().Info("glx: context acquired", "type", typ)
		return c, nil
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: tried %v: %w", ErrContextUnavailable, cfg.Types, errors.Join(errs...))
	}
	return nil, fmt.Errorf("%w: tried %v", ErrContextUnavailable, cfg.Types)
}

// Device returns the underlying device for direct API calls.
func (c *Context) Device() Device { return c.dev }

// Type returns the context type that was acquired.
func (c *Context) Type() string { return c.typ }

// Attributes returns the attributes the context was requested with.
func (c *Context) Attributes() Attributes { return c.attrs }

// Drawer returns the device's draw-call interface, if it has one.
func (c *Context) Drawer() (Drawer, bool) {
	d, ok := c.dev.(Drawer)
	return d, ok
}

// log returns the per-context logger or the package logger.
func (c *Context) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// execute runs fn on the device's thread when the device requires it.
func (c *Context) execute(fn func()) {
	if ex, ok := c.dev.(Executor); ok {
		ex.Execute(fn)
		return
	}
	fn()
}
