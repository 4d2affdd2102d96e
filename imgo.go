//go:build !ios && !android && (amd64 || arm64)

// Package imgo lets a Go program drive Dear ImGui through cimgui without
// cgo, using purego.
//
// The package covers the parts of the boundary that need more than a plain
// forward: rebindable proxies over native-owned objects (DrawList, Viewport,
// Storage), growable text buffers for InputText, a drag and drop bridge that
// hands the same Go value from source to target, and routing of native
// assertion failures into Go.
//
// Everything here must be called from the goroutine that runs the frame
// loop, and that goroutine should be locked to its OS thread with
// runtime.LockOSThread. None of the package state is locked.
package imgo

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/imgo/internal/bindings"
	"github.com/obinnaokechukwu/imgo/internal/native"
	"github.com/obinnaokechukwu/imgo/internal/shim"
	"github.com/sirupsen/logrus"
)

// Re-export the native surface types
type (
	// Handle is an opaque reference to a native-owned object. Zero means
	// absent. Go never frees what a Handle refers to.
	Handle = native.Handle

	// Native is the flat call surface imgo forwards to.
	Native = native.Native

	// Vec2 is a 2D point or size.
	Vec2 = native.Vec2
)

var current native.Native = bindings.Native{}

// resizeStep seeds TextBuffer.ResizeStep for new resizable buffers.
var resizeStep = DefaultResizeStep

// Init loads cimgui using DefaultConfig with environment overrides.
// It is safe to call multiple times.
func Init() error {
	cfg := DefaultConfig()
	if err := cfg.applyEnv(); err != nil {
		return err
	}
	return InitWithConfig(cfg)
}

// InitWithConfig loads cimgui and the optional shim as described by cfg and
// installs the assertion hook. Only the first successful load takes effect;
// library locations in later calls are ignored.
func InitWithConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := configureLogging(cfg.Log); err != nil {
		return err
	}
	resizeStep = cfg.TextInput.ResizeStep

	err := bindings.Load(bindings.Options{
		Dir:     cfg.Library.Path,
		Name:    cfg.Library.Name,
		ShimDir: cfg.Shim.Dir,
	})
	if err != nil {
		return err
	}
	if cfg.Shim.Required && !shim.IsLoaded() {
		return fmt.Errorf("%w: %v", ErrShimNotLoaded, shim.LoadError())
	}

	UseNative(bindings.Native{})

	logger.WithFields(logrus.Fields{
		"function": "InitWithConfig",
		"version":  bindings.Version(),
		"library":  bindings.Path(),
		"shim":     shim.Status(),
	}).Info("Dear ImGui loaded")
	return nil
}

// UseNative makes n the surface every imgo call forwards to and returns the
// previous one. nil selects the cimgui bindings. The assertion hook is
// installed on n.
func UseNative(n Native) Native {
	if n == nil {
		n = bindings.Native{}
	}
	prev := current
	current = n
	installAssertHook(n)
	return prev
}

func installAssertHook(n Native) {
	err := n.InstallAssertHook(dispatchAssert)
	switch {
	case err == nil:
	case errors.Is(err, ErrShimNotLoaded):
		logger.WithFields(logrus.Fields{
			"function": "installAssertHook",
			"hint":     shim.BuildInstructions(),
		}).Warn("imgoshim not loaded; native assertion failures will not reach Go")
	default:
		logger.WithFields(logrus.Fields{
			"function": "installAssertHook",
			"error":    err.Error(),
		}).Debug("Assertion hook not installed")
	}
}

// IsLoaded returns true if cimgui has been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// Version returns the Dear ImGui version string, or "" if not loaded.
func Version() string {
	return bindings.Version()
}

// ShimStatus describes whether the imgoshim helper is in use.
func ShimStatus() string {
	return shim.Status()
}
