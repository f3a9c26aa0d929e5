//go:build !js

package main

import (
	"log/slog"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/glx"
	"github.com/gogpu/glx/backend/opengl"
	"github.com/gogpu/glx/internal/config"
	"github.com/gogpu/glx/internal/quad"
	"github.com/spf13/pflag"
)

type options struct {
	Width     int      `fig:"width"`
	Height    int      `fig:"height"`
	Title     string   `fig:"title"`
	Types     []string `fig:"types"`
	Antialias bool     `fig:"antialias"`
	Speed     float64  `fig:"speed"`
}

func defaultOptions() options {
	return options{
		Width:     800,
		Height:    600,
		Title:     "glx quad",
		Types:     opengl.DefaultConfig().Types,
		Antialias: true,
		Speed:     quad.DefaultSpeed,
	}
}

// loadOptions applies quad.yaml and the environment over the defaults, and
// then any flags set in args.
func loadOptions(args []string) (options, error) {
	opts := defaultOptions()

	var flags options
	fs := pflag.NewFlagSet("quad", pflag.ContinueOnError)
	path := fs.StringP("config", "c", "", "configuration file")
	fs.IntVar(&flags.Width, "width", opts.Width, "window width")
	fs.IntVar(&flags.Height, "height", opts.Height, "window height")
	fs.StringVar(&flags.Title, "title", opts.Title, "window title")
	fs.StringSliceVar(&flags.Types, "types", opts.Types, "context types in preference order")
	fs.BoolVar(&flags.Antialias, "antialias", opts.Antialias, "request a multisampled framebuffer")
	fs.Float64Var(&flags.Speed, "speed", opts.Speed, "rotation per frame in radians")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if err := config.Load(&opts, "quad.yaml", *path); err != nil {
		return opts, err
	}
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "width":
			opts.Width = flags.Width
		case "height":
			opts.Height = flags.Height
		case "title":
			opts.Title = flags.Title
		case "types":
			opts.Types = flags.Types
		case "antialias":
			opts.Antialias = flags.Antialias
		case "speed":
			opts.Speed = flags.Speed
		}
	})
	return opts, nil
}

func main() {
	glx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	opts, err := loadOptions(os.Args[1:])
	if err != nil {
		slog.Error("quad: config", "err", err)
		os.Exit(2)
	}

	var code int
	opengl.Run(func() { code = run(opts) })
	os.Exit(code)
}

func run(opts options) int {
	attrs := glx.DefaultAttributes()
	attrs.Antialias = opts.Antialias

	var (
		surface *opengl.Surface
		ctx     *glx.Context
		scene   *quad.Scene
		err     error
	)
	opengl.Call(func() {
		surface = opengl.NewSurface(opts.Width, opts.Height, opts.Title)
		ctx, err = glx.NewContext(surface, glx.Config{Types: opts.Types, Attributes: attrs})
		if err != nil {
			return
		}
		vs, fs := quad.Sources(quad.ProfileCore)
		scene, err = quad.New(ctx, vs, fs, opts.Width, opts.Height)
	})
	defer opengl.Call(surface.Close)
	if err != nil {
		slog.Error("quad: setup failed", "err", err)
		return 1
	}
	scene.Speed = float32(opts.Speed)

	dev := ctx.Device().(*opengl.Device)
	for {
		var done bool
		opengl.Call(func() {
			w, h := dev.Window().GetFramebufferSize()
			scene.Resize(w, h)
			scene.Frame()
			dev.SwapBuffers()
			glfw.PollEvents()
			done = dev.Window().ShouldClose()
		})
		if done {
			return 0
		}
	}
}
