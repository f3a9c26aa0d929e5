package glx

import "log/slog"

// ContextOption configures a Context during creation.
//
// Example:
//
//	ctx, err := glx.NewContext(surface, glx.DefaultConfig(),
//		glx.WithImageLoader(loader),
//		glx.WithLogger(logger))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	loader ImageLoader
	logger *slog.Logger
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		loader: nil, // HTTPImageLoader with the default client
		logger: nil, // package logger, resolved at call time
	}
}

// WithImageLoader sets the loader CreateTexture uses to fetch and decode
// texture sources.
func WithImageLoader(l ImageLoader) ContextOption {
	return func(o *contextOptions) {
		o.loader = l
	}
}

// WithLogger sets a logger for this Context only, overriding the package
// logger configured with SetLogger.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}
