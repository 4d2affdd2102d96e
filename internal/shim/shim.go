//go:build !ios && !android && (amd64 || arm64)

// Package shim provides bindings to the imgoshim helper library.
//
// The shim is a small C library built against the same Dear ImGui sources as
// cimgui. It covers what purego cannot do directly:
//   - Routing IM_ASSERT failures to a Go callback (imgui must be compiled
//     with IM_ASSERT pointing at imgoshim_assert)
//   - ImVec2 arguments passed by value on non-Darwin platforms
//   - Reading ImGuiViewport and ImDrawList fields without hardcoding offsets
//
// The shim is OPTIONAL. Text editing and drag and drop work without it; the
// assertion bridge and draw-list/viewport accessors degrade to no-ops.
//
// To build the shim for your platform:
//
//	cd shim && make CIMGUI_DIR=/path/to/cimgui
package shim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/imgo/internal/platform"
)

// ErrShimNotLoaded is returned when a shim function is needed but the shim is not available.
var ErrShimNotLoaded = errors.New("imgo: shim library not loaded; assertions and draw-list helpers unavailable")

// ErrShimNotFound is returned when the shim library cannot be found.
var ErrShimNotFound = errors.New("imgo: shim library not found")

// libraryBase is the shim's base name before platform decoration.
const libraryBase = "imgoshim"

var (
	libShim  uintptr
	loaded   bool
	loadErr  error
	loadMu   sync.Mutex
	shimPath string

	shimSetAssertCallback func(cb uintptr)

	shimInputTextMultiline func(label string, buf *byte, bufSize uintptr, w, h float32, flags int32, cb, userData uintptr) bool

	shimDrawListAddLine       func(dl uintptr, x1, y1, x2, y2 float32, col uint32, thickness float32)
	shimDrawListAddRect       func(dl uintptr, x1, y1, x2, y2 float32, col uint32, rounding, thickness float32)
	shimDrawListAddRectFilled func(dl uintptr, x1, y1, x2, y2 float32, col uint32, rounding float32)
	shimDrawListAddCircle     func(dl uintptr, cx, cy, radius float32, col uint32, segments int32, thickness float32)
	shimDrawListAddText       func(dl uintptr, x, y float32, col uint32, text string)
	shimDrawListVtxCount      func(dl uintptr) int32
	shimDrawListCmdCount      func(dl uintptr) int32

	shimViewportID             func(vp uintptr) uint32
	shimViewportFlags          func(vp uintptr) int32
	shimViewportPos            func(vp uintptr, outX, outY *float32)
	shimViewportSize           func(vp uintptr, outX, outY *float32)
	shimViewportWorkPos        func(vp uintptr, outX, outY *float32)
	shimViewportWorkSize       func(vp uintptr, outX, outY *float32)
	shimViewportDpiScale       func(vp uintptr) float32
	shimViewportPlatformHandle func(vp uintptr) uintptr
)

// Load attempts to load the shim library. dir, when non-empty, is searched
// first and exclusively (like IMGO_SHIM_DIR).
//
// A missing shim is not an error: Load returns nil and LoadError reports why.
// Subsequent calls are no-ops.
func Load(dir string) error {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded || loadErr != nil {
		return nil
	}

	path, err := findShimLibrary(dir)
	if err != nil {
		loadErr = err
		return nil
	}

	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		loadErr = fmt.Errorf("failed to load shim at %s: %w", path, err)
		return nil
	}

	libShim = lib
	shimPath = path
	registerBindings()
	loaded = true
	return nil
}

// IsLoaded returns true if the shim library was successfully loaded.
func IsLoaded() bool {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loaded
}

// Path returns the path the shim was loaded from, or "".
func Path() string {
	loadMu.Lock()
	defer loadMu.Unlock()
	return shimPath
}

// LoadError returns why the shim is unavailable, or nil.
func LoadError() error {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loadErr
}

// Status returns a human-readable status line for diagnostics.
func Status() string {
	loadMu.Lock()
	defer loadMu.Unlock()

	switch {
	case loaded:
		return fmt.Sprintf("loaded from %s", shimPath)
	case loadErr != nil:
		return fmt.Sprintf("not loaded: %s", loadErr)
	default:
		return "not loaded (Load() not called)"
	}
}

// ExpectedLibraryName returns the shim file name for the current platform.
func ExpectedLibraryName() string {
	return platform.LibraryFileName(libraryBase)
}

// BuildInstructions returns platform-specific instructions for building the shim.
func BuildInstructions() string {
	switch runtime.GOOS {
	case "linux", "darwin":
		return `To build the shim:
  1. Check out cimgui with its imgui submodule
  2. Build cimgui and the shim together:
     cd shim && make CIMGUI_DIR=/path/to/cimgui
  3. Point imgo at the result:
     export IMGO_SHIM_DIR=$PWD`
	case "windows":
		return `To build the shim on Windows:
  1. Install MSYS2 and MinGW-w64
  2. cd shim && make CIMGUI_DIR=C:/path/to/cimgui
  3. Copy imgoshim.dll next to your executable or set IMGO_SHIM_DIR`
	default:
		return fmt.Sprintf("Platform %s/%s is not supported for shim building", runtime.GOOS, runtime.GOARCH)
	}
}

func registerBindings() {
	if libShim == 0 {
		return
	}

	// Partial shim builds are allowed; every symbol is optional.
	registerOptionalLibFunc(&shimSetAssertCallback, libShim, "imgoshim_set_assert_callback")
	registerOptionalLibFunc(&shimInputTextMultiline, libShim, "imgoshim_input_text_multiline")

	registerOptionalLibFunc(&shimDrawListAddLine, libShim, "imgoshim_drawlist_add_line")
	registerOptionalLibFunc(&shimDrawListAddRect, libShim, "imgoshim_drawlist_add_rect")
	registerOptionalLibFunc(&shimDrawListAddRectFilled, libShim, "imgoshim_drawlist_add_rect_filled")
	registerOptionalLibFunc(&shimDrawListAddCircle, libShim, "imgoshim_drawlist_add_circle")
	registerOptionalLibFunc(&shimDrawListAddText, libShim, "imgoshim_drawlist_add_text")
	registerOptionalLibFunc(&shimDrawListVtxCount, libShim, "imgoshim_drawlist_vtx_count")
	registerOptionalLibFunc(&shimDrawListCmdCount, libShim, "imgoshim_drawlist_cmd_count")

	registerOptionalLibFunc(&shimViewportID, libShim, "imgoshim_viewport_id")
	registerOptionalLibFunc(&shimViewportFlags, libShim, "imgoshim_viewport_flags")
	registerOptionalLibFunc(&shimViewportPos, libShim, "imgoshim_viewport_pos")
	registerOptionalLibFunc(&shimViewportSize, libShim, "imgoshim_viewport_size")
	registerOptionalLibFunc(&shimViewportWorkPos, libShim, "imgoshim_viewport_work_pos")
	registerOptionalLibFunc(&shimViewportWorkSize, libShim, "imgoshim_viewport_work_size")
	registerOptionalLibFunc(&shimViewportDpiScale, libShim, "imgoshim_viewport_dpi_scale")
	registerOptionalLibFunc(&shimViewportPlatformHandle, libShim, "imgoshim_viewport_platform_handle")
}

func registerOptionalLibFunc(fptr any, handle uintptr, name string) {
	defer func() {
		_ = recover() // purego.RegisterLibFunc panics if symbol is missing
	}()
	purego.RegisterLibFunc(fptr, handle, name)
}

// SetAssertCallback installs cb (a purego callback with the signature
// void(const char* expr, int line, const char* file)) as the assertion
// handler inside the native library.
func SetAssertCallback(cb uintptr) error {
	if !loaded {
		return fmt.Errorf("%w: SetAssertCallback requires shim; %s", ErrShimNotLoaded, BuildInstructions())
	}
	if shimSetAssertCallback == nil {
		return errors.New("imgo: imgoshim_set_assert_callback symbol not available in shim")
	}
	shimSetAssertCallback(cb)
	return nil
}

// HasInputTextMultiline reports whether the flattened multiline entry point is available.
func HasInputTextMultiline() bool {
	return loaded && shimInputTextMultiline != nil
}

// InputTextMultiline forwards to ImGui::InputTextMultiline with the size
// flattened into w and h.
func InputTextMultiline(label string, buf *byte, bufSize uintptr, w, h float32, flags int32, cb, userData uintptr) bool {
	if shimInputTextMultiline == nil {
		return false
	}
	return shimInputTextMultiline(label, buf, bufSize, w, h, flags, cb, userData)
}

// HasDrawListHelpers reports whether the flattened draw-list entry points are available.
func HasDrawListHelpers() bool {
	return loaded && shimDrawListAddLine != nil
}

// DrawListAddLine forwards to ImDrawList::AddLine with flattened points.
func DrawListAddLine(dl uintptr, x1, y1, x2, y2 float32, col uint32, thickness float32) {
	if shimDrawListAddLine == nil || dl == 0 {
		return
	}
	shimDrawListAddLine(dl, x1, y1, x2, y2, col, thickness)
}

// DrawListAddRect forwards to ImDrawList::AddRect.
func DrawListAddRect(dl uintptr, x1, y1, x2, y2 float32, col uint32, rounding, thickness float32) {
	if shimDrawListAddRect == nil || dl == 0 {
		return
	}
	shimDrawListAddRect(dl, x1, y1, x2, y2, col, rounding, thickness)
}

// DrawListAddRectFilled forwards to ImDrawList::AddRectFilled.
func DrawListAddRectFilled(dl uintptr, x1, y1, x2, y2 float32, col uint32, rounding float32) {
	if shimDrawListAddRectFilled == nil || dl == 0 {
		return
	}
	shimDrawListAddRectFilled(dl, x1, y1, x2, y2, col, rounding)
}

// DrawListAddCircle forwards to ImDrawList::AddCircle.
func DrawListAddCircle(dl uintptr, cx, cy, radius float32, col uint32, segments int32, thickness float32) {
	if shimDrawListAddCircle == nil || dl == 0 {
		return
	}
	shimDrawListAddCircle(dl, cx, cy, radius, col, segments, thickness)
}

// DrawListAddText forwards to ImDrawList::AddText.
func DrawListAddText(dl uintptr, x, y float32, col uint32, text string) {
	if shimDrawListAddText == nil || dl == 0 {
		return
	}
	shimDrawListAddText(dl, x, y, col, text)
}

// DrawListVtxCount returns VtxBuffer.Size.
func DrawListVtxCount(dl uintptr) int32 {
	if shimDrawListVtxCount == nil || dl == 0 {
		return 0
	}
	return shimDrawListVtxCount(dl)
}

// DrawListCmdCount returns CmdBuffer.Size.
func DrawListCmdCount(dl uintptr) int32 {
	if shimDrawListCmdCount == nil || dl == 0 {
		return 0
	}
	return shimDrawListCmdCount(dl)
}

// ViewportID returns ImGuiViewport::ID.
func ViewportID(vp uintptr) uint32 {
	if shimViewportID == nil || vp == 0 {
		return 0
	}
	return shimViewportID(vp)
}

// ViewportFlags returns ImGuiViewport::Flags.
func ViewportFlags(vp uintptr) int32 {
	if shimViewportFlags == nil || vp == 0 {
		return 0
	}
	return shimViewportFlags(vp)
}

// ViewportPos returns ImGuiViewport::Pos.
func ViewportPos(vp uintptr) (x, y float32) {
	return readVec2(shimViewportPos, vp)
}

// ViewportSize returns ImGuiViewport::Size.
func ViewportSize(vp uintptr) (x, y float32) {
	return readVec2(shimViewportSize, vp)
}

// ViewportWorkPos returns ImGuiViewport::WorkPos.
func ViewportWorkPos(vp uintptr) (x, y float32) {
	return readVec2(shimViewportWorkPos, vp)
}

// ViewportWorkSize returns ImGuiViewport::WorkSize.
func ViewportWorkSize(vp uintptr) (x, y float32) {
	return readVec2(shimViewportWorkSize, vp)
}

// ViewportDpiScale returns ImGuiViewport::DpiScale.
func ViewportDpiScale(vp uintptr) float32 {
	if shimViewportDpiScale == nil || vp == 0 {
		return 0
	}
	return shimViewportDpiScale(vp)
}

// ViewportPlatformHandle returns ImGuiViewport::PlatformHandle.
func ViewportPlatformHandle(vp uintptr) uintptr {
	if shimViewportPlatformHandle == nil || vp == 0 {
		return 0
	}
	return shimViewportPlatformHandle(vp)
}

func readVec2(fn func(uintptr, *float32, *float32), p uintptr) (x, y float32) {
	if fn == nil || p == 0 {
		return 0, 0
	}
	fn(p, &x, &y)
	return x, y
}

// findShimLibrary searches for the shim and returns its path.
func findShimLibrary(dir string) (string, error) {
	name := ExpectedLibraryName()

	if dir == "" {
		dir = os.Getenv("IMGO_SHIM_DIR")
	}
	if dir != "" {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: IMGO_SHIM_DIR=%s does not contain %s", ErrShimNotFound, dir, name)
	}

	var searchPaths []string
	switch runtime.GOOS {
	case "darwin":
		if p := os.Getenv("DYLD_LIBRARY_PATH"); p != "" {
			searchPaths = append(searchPaths, filepath.SplitList(p)...)
		}
		searchPaths = append(searchPaths, "/opt/homebrew/lib")
	case "windows":
		if p := os.Getenv("PATH"); p != "" {
			searchPaths = append(searchPaths, filepath.SplitList(p)...)
		}
	default:
		if p := os.Getenv("LD_LIBRARY_PATH"); p != "" {
			searchPaths = append(searchPaths, filepath.SplitList(p)...)
		}
	}
	searchPaths = append(searchPaths, "/usr/local/lib", "/usr/lib")

	if exe, err := os.Executable(); err == nil {
		searchPaths = append(searchPaths, filepath.Dir(exe))
	}

	// <module_root>/shim/ for source checkouts
	if _, file, _, ok := runtime.Caller(0); ok {
		moduleRoot := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
		searchPaths = append(searchPaths, filepath.Join(moduleRoot, "shim"))
	}

	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	for _, d := range searchPaths {
		path := filepath.Join(d, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: looked for %s in %d locations. Set IMGO_SHIM_DIR or build the shim: cd shim && make",
		ErrShimNotFound, name, len(searchPaths))
}
