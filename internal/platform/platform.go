//go:build !ios && !android && (amd64 || arm64)

// Package platform answers the per-OS questions imgo has before it can load
// the native GUI library: what the shared library file is called and which
// calling-convention features purego offers here.
package platform

import (
	"runtime"
	"unsafe"
)

// SupportsStructByValue reports whether purego can pass C structs such as
// ImVec2 by value. Only Darwin amd64/arm64 can; elsewhere those calls go
// through the flattening shim.
const SupportsStructByValue = runtime.GOOS == "darwin" &&
	(runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64")

// Is64Bit is always true for supported targets.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the shared library suffix on this platform.
var LibraryExtension string

// LibraryPrefix is the shared library prefix on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
	default:
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// LibraryFileName returns the file name for a library base name, e.g.
// "cimgui" -> "libcimgui.so", "cimgui.dll" or "libcimgui.dylib".
// A name that already carries the platform extension is returned as is.
func LibraryFileName(name string) string {
	if len(name) > len(LibraryExtension) && name[len(name)-len(LibraryExtension):] == LibraryExtension {
		return name
	}
	return LibraryPrefix + name + LibraryExtension
}

// CandidateNames lists the file names tried for a library base name, most
// specific first. Builds that embed the pointer width in the name
// ("cimgui64") are tried before the plain name.
func CandidateNames(name string) []string {
	names := make([]string, 0, 2)
	if Is64Bit {
		names = append(names, LibraryFileName(name+"64"))
	}
	return append(names, LibraryFileName(name))
}
