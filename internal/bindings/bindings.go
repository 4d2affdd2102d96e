//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads cimgui (the C API of Dear ImGui) with purego and
// implements the native call surface on top of it.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/imgo/internal/native"
	"github.com/obinnaokechukwu/imgo/internal/platform"
	"github.com/obinnaokechukwu/imgo/internal/shim"
)

// ErrNotLoaded is returned when native functions are needed before Load().
var ErrNotLoaded = errors.New("imgo: cimgui library not loaded; call imgo.Init() first")

// ErrLibraryNotFound is returned when the cimgui library cannot be found.
var ErrLibraryNotFound = errors.New("imgo: cimgui library not found")

// DefaultLibraryName is the base name of the cimgui shared library.
const DefaultLibraryName = "cimgui"

// Options selects where the native libraries come from. Zero values fall
// back to the platform search.
type Options struct {
	// Dir, when set, is the only directory searched for the library.
	Dir string
	// Name is the library base name ("cimgui") or a full file name.
	Name string
	// ShimDir is passed to the shim loader.
	ShimDir string
}

var (
	libCImGui uintptr
	libPath   string

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

// Function bindings
var (
	igGetVersion func() string

	igInputText          func(label string, buf *byte, bufSize uintptr, flags int32, callback, userData uintptr) bool
	igInputTextWithHint  func(label, hint string, buf *byte, bufSize uintptr, flags int32, callback, userData uintptr) bool
	igInputTextMultiline func(label string, buf *byte, bufSize uintptr, size native.Vec2, flags int32, callback, userData uintptr) bool

	igBeginDragDropSource   func(flags int32) bool
	igSetDragDropPayload    func(tag string, data *byte, size uintptr, cond int32) bool
	igEndDragDropSource     func()
	igBeginDragDropTarget   func() bool
	igAcceptDragDropPayload func(tag string, flags int32) uintptr
	igEndDragDropTarget     func()
	igGetDragDropPayload    func() unsafe.Pointer
	imGuiPayloadIsDataType  func(payload unsafe.Pointer, tag string) bool

	igGetBackgroundDrawList func() uintptr
	igGetForegroundDrawList func() uintptr
	igGetWindowDrawList     func() uintptr
	igGetMainViewport       func() uintptr
	igFindViewportByID      func(id uint32) uintptr
	igGetStateStorage       func() uintptr
	igSetStateStorage       func(storage uintptr)

	imGuiStorageGetInt   func(st uintptr, key uint32, def int32) int32
	imGuiStorageSetInt   func(st uintptr, key uint32, val int32)
	imGuiStorageGetBool  func(st uintptr, key uint32, def bool) bool
	imGuiStorageSetBool  func(st uintptr, key uint32, val bool)
	imGuiStorageGetFloat func(st uintptr, key uint32, def float32) float32
	imGuiStorageSetFloat func(st uintptr, key uint32, val float32)

	igSaveIniSettingsToMemory   func(outSize *uintptr) unsafe.Pointer
	igLoadIniSettingsFromMemory func(data *byte, size uintptr)
	igSaveIniSettingsToDisk     func(path string)
	igLoadIniSettingsFromDisk   func(path string)

	// Struct-by-value variants, registered only where purego supports them.
	imDrawListAddLine       func(dl uintptr, p1, p2 native.Vec2, col uint32, thickness float32)
	imDrawListAddRect       func(dl uintptr, min, max native.Vec2, col uint32, rounding float32, flags int32, thickness float32)
	imDrawListAddRectFilled func(dl uintptr, min, max native.Vec2, col uint32, rounding float32, flags int32)
	imDrawListAddCircle     func(dl uintptr, center native.Vec2, radius float32, col uint32, segments int32, thickness float32)
	imDrawListAddText       func(dl uintptr, pos native.Vec2, col uint32, text string, textEnd uintptr)
)

// IsLoaded returns true if cimgui has been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Path returns the file cimgui was loaded from.
func Path() string {
	return libPath
}

// Load loads cimgui and the optional shim and registers all function
// bindings. Only the first call's options are used; later calls return the
// first outcome.
func Load(opts Options) error {
	loadOnce.Do(func() {
		loadErr = doLoad(opts)
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad(opts Options) error {
	name := opts.Name
	if name == "" {
		name = DefaultLibraryName
	}

	var err error
	libCImGui, libPath, err = loadLibrary(opts.Dir, name)
	if err != nil {
		return fmt.Errorf("loading cimgui: %w", err)
	}

	// Optional; a missing shim is reported through shim.LoadError().
	_ = shim.Load(opts.ShimDir)

	purego.RegisterLibFunc(&igGetVersion, libCImGui, "igGetVersion")

	purego.RegisterLibFunc(&igInputText, libCImGui, "igInputText")
	purego.RegisterLibFunc(&igInputTextWithHint, libCImGui, "igInputTextWithHint")

	purego.RegisterLibFunc(&igBeginDragDropSource, libCImGui, "igBeginDragDropSource")
	purego.RegisterLibFunc(&igSetDragDropPayload, libCImGui, "igSetDragDropPayload")
	purego.RegisterLibFunc(&igEndDragDropSource, libCImGui, "igEndDragDropSource")
	purego.RegisterLibFunc(&igBeginDragDropTarget, libCImGui, "igBeginDragDropTarget")
	purego.RegisterLibFunc(&igAcceptDragDropPayload, libCImGui, "igAcceptDragDropPayload")
	purego.RegisterLibFunc(&igEndDragDropTarget, libCImGui, "igEndDragDropTarget")
	purego.RegisterLibFunc(&igGetDragDropPayload, libCImGui, "igGetDragDropPayload")
	purego.RegisterLibFunc(&imGuiPayloadIsDataType, libCImGui, "ImGuiPayload_IsDataType")

	purego.RegisterLibFunc(&igGetBackgroundDrawList, libCImGui, "igGetBackgroundDrawList_Nil")
	purego.RegisterLibFunc(&igGetForegroundDrawList, libCImGui, "igGetForegroundDrawList_Nil")
	purego.RegisterLibFunc(&igGetWindowDrawList, libCImGui, "igGetWindowDrawList")
	purego.RegisterLibFunc(&igGetMainViewport, libCImGui, "igGetMainViewport")
	registerOptionalLibFunc(&igFindViewportByID, libCImGui, "igFindViewportByID")
	purego.RegisterLibFunc(&igGetStateStorage, libCImGui, "igGetStateStorage")
	purego.RegisterLibFunc(&igSetStateStorage, libCImGui, "igSetStateStorage")

	purego.RegisterLibFunc(&imGuiStorageGetInt, libCImGui, "ImGuiStorage_GetInt")
	purego.RegisterLibFunc(&imGuiStorageSetInt, libCImGui, "ImGuiStorage_SetInt")
	purego.RegisterLibFunc(&imGuiStorageGetBool, libCImGui, "ImGuiStorage_GetBool")
	purego.RegisterLibFunc(&imGuiStorageSetBool, libCImGui, "ImGuiStorage_SetBool")
	purego.RegisterLibFunc(&imGuiStorageGetFloat, libCImGui, "ImGuiStorage_GetFloat")
	purego.RegisterLibFunc(&imGuiStorageSetFloat, libCImGui, "ImGuiStorage_SetFloat")

	purego.RegisterLibFunc(&igSaveIniSettingsToMemory, libCImGui, "igSaveIniSettingsToMemory")
	purego.RegisterLibFunc(&igLoadIniSettingsFromMemory, libCImGui, "igLoadIniSettingsFromMemory")
	purego.RegisterLibFunc(&igSaveIniSettingsToDisk, libCImGui, "igSaveIniSettingsToDisk")
	purego.RegisterLibFunc(&igLoadIniSettingsFromDisk, libCImGui, "igLoadIniSettingsFromDisk")

	if platform.SupportsStructByValue {
		registerOptionalLibFunc(&igInputTextMultiline, libCImGui, "igInputTextMultiline")
		registerOptionalLibFunc(&imDrawListAddLine, libCImGui, "ImDrawList_AddLine")
		registerOptionalLibFunc(&imDrawListAddRect, libCImGui, "ImDrawList_AddRect")
		registerOptionalLibFunc(&imDrawListAddRectFilled, libCImGui, "ImDrawList_AddRectFilled")
		registerOptionalLibFunc(&imDrawListAddCircle, libCImGui, "ImDrawList_AddCircle")
		registerOptionalLibFunc(&imDrawListAddText, libCImGui, "ImDrawList_AddText_Vec2")
	}

	return nil
}

func registerOptionalLibFunc(fptr any, handle uintptr, name string) {
	defer func() {
		_ = recover() // purego.RegisterLibFunc panics if symbol is missing
	}()
	purego.RegisterLibFunc(fptr, handle, name)
}

// loadLibrary opens the first candidate file that exists.
func loadLibrary(dir, name string) (uintptr, string, error) {
	candidates := platform.CandidateNames(name)

	if dir != "" {
		for _, c := range candidates {
			path := filepath.Join(dir, c)
			if lib, err := tryOpen(path); err == nil {
				return lib, path, nil
			}
		}
		return 0, "", fmt.Errorf("%w: %s not in %s", ErrLibraryNotFound, candidates[len(candidates)-1], dir)
	}

	for _, searchPath := range LibrarySearchPaths() {
		for _, c := range candidates {
			path := filepath.Join(searchPath, c)
			if lib, err := tryOpen(path); err == nil {
				return lib, path, nil
			}
		}
	}

	// Let the dynamic loader resolve the bare name.
	for _, c := range candidates {
		if lib, err := tryOpen(c); err == nil {
			return lib, c, nil
		}
	}

	return 0, "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// tryOpen opens a library with RTLD_NOW | RTLD_GLOBAL. RTLD_GLOBAL lets the
// shim resolve imgui symbols exported by cimgui.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// FindLibrary searches for a library and returns its full path without
// loading it. Useful for diagnostics.
func FindLibrary(dir, name string) (string, error) {
	dirs := LibrarySearchPaths()
	if dir != "" {
		dirs = []string{dir}
	}
	for _, d := range dirs {
		for _, c := range platform.CandidateNames(name) {
			path := filepath.Join(d, c)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "darwin":
		if p := os.Getenv("DYLD_LIBRARY_PATH"); p != "" {
			paths = append(paths, filepath.SplitList(p)...)
		}
		paths = append(paths, "/opt/homebrew/lib", "/usr/local/lib")
	case "windows":
		if p := os.Getenv("PATH"); p != "" {
			paths = append(paths, filepath.SplitList(p)...)
		}
	default:
		if p := os.Getenv("LD_LIBRARY_PATH"); p != "" {
			paths = append(paths, filepath.SplitList(p)...)
		}
		paths = append(paths,
			"/usr/local/lib",
			"/usr/lib",
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
		)
	}

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Dir(exe))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	return paths
}

// Version returns the Dear ImGui version string, or "" if not loaded.
func Version() string {
	if !loaded || igGetVersion == nil {
		return ""
	}
	return igGetVersion()
}
