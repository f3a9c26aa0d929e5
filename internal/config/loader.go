// Package config loads command configuration from an optional YAML file
// and GLX_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
)

// EnvPrefix prefixes environment overrides, e.g. GLX_ADDR.
const EnvPrefix = "GLX"

// Load fills cfg from file and the environment. Fields absent from both
// keep the values cfg already holds, so callers preset defaults.
//
// An explicit path must exist. Without one, file is looked up in the
// working directory, ./configs and ~/.config/glx, and a missing file is
// not an error.
func Load(cfg any, file, path string) error {
	if path != "" {
		return fig.Load(cfg,
			fig.File(filepath.Base(path)),
			fig.Dirs(filepath.Dir(path)),
			fig.UseEnv(EnvPrefix))
	}
	dirs := []string{".", "configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "glx"))
	}
	err := fig.Load(cfg, fig.File(file), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		return loadEnv(cfg)
	}
	return err
}

// loadEnv applies only the environment. fig always reads a file, so it is
// given an empty document.
func loadEnv(cfg any) error {
	f, err := os.CreateTemp("", "glx-env-*.yaml")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer os.Remove(f.Name())
	_, err = f.WriteString("{}\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return fig.Load(cfg,
		fig.File(filepath.Base(f.Name())),
		fig.Dirs(filepath.Dir(f.Name())),
		fig.UseEnv(EnvPrefix))
}
