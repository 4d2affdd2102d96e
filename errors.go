//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"errors"

	"github.com/obinnaokechukwu/imgo/internal/bindings"
	"github.com/obinnaokechukwu/imgo/internal/shim"
)

// Common errors
var (
	// ErrNotLoaded indicates cimgui is not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrLibraryNotFound indicates the cimgui shared library could not be found.
	ErrLibraryNotFound = bindings.ErrLibraryNotFound

	// ErrShimNotLoaded indicates the imgoshim helper library is not available.
	// Assertion reporting depends on it.
	ErrShimNotLoaded = shim.ErrShimNotLoaded

	// ErrInvalidConfig indicates a configuration value was rejected.
	ErrInvalidConfig = errors.New("imgo: invalid configuration")
)
