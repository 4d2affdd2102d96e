//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config controls how imgo finds its native libraries and how it logs.
// It is usually read from an imgo.toml file:
//
//	[library]
//	path = "/opt/cimgui/lib"
//
//	[log]
//	level = "debug"
//
//	[text_input]
//	resize_step = 32
type Config struct {
	Library   LibraryConfig   `toml:"library"`
	Shim      ShimConfig      `toml:"shim"`
	Log       LogConfig       `toml:"log"`
	TextInput TextInputConfig `toml:"text_input"`
}

// LibraryConfig locates cimgui.
type LibraryConfig struct {
	// Path is a directory searched exclusively when set.
	Path string `toml:"path"`
	// Name is the library base name, "cimgui" by default.
	Name string `toml:"name"`
}

// ShimConfig locates the optional imgoshim helper.
type ShimConfig struct {
	Dir string `toml:"dir"`
	// Required turns a missing shim into an Init error.
	Required bool `toml:"required"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type TextInputConfig struct {
	// ResizeStep is the headroom added on top of a grow request.
	ResizeStep int `toml:"resize_step"`
}

// Environment variables that override file values.
const (
	EnvLibraryPath = "IMGO_LIBRARY_PATH"
	EnvLibraryName = "IMGO_LIBRARY_NAME"
	EnvShimDir     = "IMGO_SHIM_DIR"
	EnvLogLevel    = "IMGO_LOG_LEVEL"
	EnvResizeStep  = "IMGO_RESIZE_STEP"
)

// DefaultResizeStep is the headroom added to a grown text buffer.
const DefaultResizeStep = 10

// DefaultConfig returns the configuration used by Init.
func DefaultConfig() Config {
	return Config{
		Library:   LibraryConfig{Name: "cimgui"},
		Log:       LogConfig{Level: "info", Format: "text"},
		TextInput: TextInputConfig{ResizeStep: DefaultResizeStep},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLibraryPath); v != "" {
		c.Library.Path = v
	}
	if v := os.Getenv(EnvLibraryName); v != "" {
		c.Library.Name = v
	}
	if v := os.Getenv(EnvShimDir); v != "" {
		c.Shim.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvResizeStep); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvResizeStep, v)
		}
		c.TextInput.ResizeStep = n
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TextInput.ResizeStep < 0 {
		return fmt.Errorf("%w: text_input.resize_step must be >= 0, got %d", ErrInvalidConfig, c.TextInput.ResizeStep)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
