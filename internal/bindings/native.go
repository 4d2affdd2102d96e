//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/imgo/internal/handles"
	"github.com/obinnaokechukwu/imgo/internal/native"
	"github.com/obinnaokechukwu/imgo/internal/shim"
)

// Native implements native.Native on top of cimgui and the shim. The zero
// value is ready to use once Load has succeeded; before that every method
// returns zero values.
type Native struct{}

var _ native.Native = Native{}

// Callbacks are created once: purego has a hard limit on live callbacks.
var (
	callbacksOnce     sync.Once
	inputTextCallback uintptr
	assertCallback    uintptr

	assertHook native.AssertHook
)

func initCallbacks() {
	callbacksOnce.Do(func() {
		// int (*ImGuiInputTextCallback)(ImGuiInputTextCallbackData* data)
		inputTextCallback = purego.NewCallback(func(_ purego.CDecl, data unsafe.Pointer) int32 {
			return dispatchInputText((*native.InputTextCallbackData)(data))
		})

		// void (*)(const char* expr, int line, const char* file)
		assertCallback = purego.NewCallback(func(_ purego.CDecl, expr *byte, line int32, file *byte) {
			dispatchAssert(goString(expr), line, goString(file))
		})
	})
}

// dispatchInputText routes a native callback to the Go session registered
// under data.UserData. A panic must not unwind into the native frame, so it
// is swallowed and reported as "accept".
func dispatchInputText(data *native.InputTextCallbackData) (ret int32) {
	defer func() {
		if recover() != nil {
			ret = 0
		}
	}()
	if data == nil {
		return 0
	}
	call, ok := handles.Lookup(data.UserData).(*native.InputTextCall)
	if !ok || call.Callback == nil {
		return 0
	}
	return call.Callback(data)
}

func dispatchAssert(expr string, line int32, file string) {
	defer func() { _ = recover() }()
	if hook := assertHook; hook != nil {
		hook(expr, line, file)
	}
}

// goString copies a NUL-terminated C string.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// InputText issues igInputText / igInputTextWithHint / igInputTextMultiline.
func (Native) InputText(call *native.InputTextCall) bool {
	if !loaded || call == nil || call.Buf == nil {
		return false
	}
	initCallbacks()

	var cb, ud uintptr
	if call.Callback != nil {
		cb = inputTextCallback
		ud = handles.Register(call)
		defer handles.Unregister(ud)
	}

	size := uintptr(call.BufSize)
	switch {
	case call.Multiline && igInputTextMultiline != nil:
		return igInputTextMultiline(call.Label, call.Buf, size, native.Vec2{X: call.Width, Y: call.Height}, call.Flags, cb, ud)
	case call.Multiline && shim.HasInputTextMultiline():
		return shim.InputTextMultiline(call.Label, call.Buf, size, call.Width, call.Height, call.Flags, cb, ud)
	case call.HasHint:
		return igInputTextWithHint(call.Label, call.Hint, call.Buf, size, call.Flags, cb, ud)
	default:
		return igInputText(call.Label, call.Buf, size, call.Flags, cb, ud)
	}
}

// BeginDragDropSource forwards to igBeginDragDropSource.
func (Native) BeginDragDropSource(flags int32) bool {
	if !loaded {
		return false
	}
	return igBeginDragDropSource(flags)
}

// SetDragDropPayload forwards to igSetDragDropPayload. data is copied by
// the native side before the call returns.
func (Native) SetDragDropPayload(tag string, data []byte, cond int32) bool {
	if !loaded {
		return false
	}
	var p *byte
	if len(data) > 0 {
		p = &data[0]
	}
	return igSetDragDropPayload(tag, p, uintptr(len(data)), cond)
}

// EndDragDropSource forwards to igEndDragDropSource.
func (Native) EndDragDropSource() {
	if loaded {
		igEndDragDropSource()
	}
}

// BeginDragDropTarget forwards to igBeginDragDropTarget.
func (Native) BeginDragDropTarget() bool {
	if !loaded {
		return false
	}
	return igBeginDragDropTarget()
}

// AcceptDragDropPayload reports whether igAcceptDragDropPayload returned a payload.
func (Native) AcceptDragDropPayload(tag string, flags int32) bool {
	if !loaded {
		return false
	}
	return igAcceptDragDropPayload(tag, flags) != 0
}

// EndDragDropTarget forwards to igEndDragDropTarget.
func (Native) EndDragDropTarget() {
	if loaded {
		igEndDragDropTarget()
	}
}

// payloadHeader mirrors the leading fields of ImGuiPayload.
type payloadHeader struct {
	Data     uintptr
	DataSize int32
}

// HasDragDropPayload reports whether a payload with data is in flight.
func (Native) HasDragDropPayload() bool {
	if !loaded {
		return false
	}
	p := igGetDragDropPayload()
	if p == nil {
		return false
	}
	return (*payloadHeader)(p).Data != 0
}

// IsDragDropPayloadType reports whether the in-flight payload carries tag.
func (Native) IsDragDropPayloadType(tag string) bool {
	if !loaded {
		return false
	}
	p := igGetDragDropPayload()
	if p == nil {
		return false
	}
	return imGuiPayloadIsDataType(p, tag)
}

// InstallAssertHook routes IM_ASSERT failures to hook via the shim.
func (Native) InstallAssertHook(hook native.AssertHook) error {
	if !loaded {
		return ErrNotLoaded
	}
	initCallbacks()
	assertHook = hook
	return shim.SetAssertCallback(assertCallback)
}

// BackgroundDrawList returns igGetBackgroundDrawList().
func (Native) BackgroundDrawList() native.Handle {
	if !loaded {
		return 0
	}
	return native.Handle(igGetBackgroundDrawList())
}

// ForegroundDrawList returns igGetForegroundDrawList().
func (Native) ForegroundDrawList() native.Handle {
	if !loaded {
		return 0
	}
	return native.Handle(igGetForegroundDrawList())
}

// WindowDrawList returns igGetWindowDrawList().
func (Native) WindowDrawList() native.Handle {
	if !loaded {
		return 0
	}
	return native.Handle(igGetWindowDrawList())
}

// MainViewport returns igGetMainViewport().
func (Native) MainViewport() native.Handle {
	if !loaded {
		return 0
	}
	return native.Handle(igGetMainViewport())
}

// FindViewportByID returns igFindViewportByID(id). Builds without docking
// support do not export it and always yield zero.
func (Native) FindViewportByID(id uint32) native.Handle {
	if !loaded || igFindViewportByID == nil {
		return 0
	}
	return native.Handle(igFindViewportByID(id))
}

// StateStorage returns igGetStateStorage().
func (Native) StateStorage() native.Handle {
	if !loaded {
		return 0
	}
	return native.Handle(igGetStateStorage())
}

// SetStateStorage forwards to igSetStateStorage.
func (Native) SetStateStorage(storage native.Handle) {
	if loaded {
		igSetStateStorage(uintptr(storage))
	}
}

// DrawListAddLine prefers the shim and falls back to struct-by-value.
func (Native) DrawListAddLine(dl native.Handle, p1, p2 native.Vec2, col uint32, thickness float32) {
	switch {
	case shim.HasDrawListHelpers():
		shim.DrawListAddLine(uintptr(dl), p1.X, p1.Y, p2.X, p2.Y, col, thickness)
	case imDrawListAddLine != nil:
		imDrawListAddLine(uintptr(dl), p1, p2, col, thickness)
	}
}

// DrawListAddRect draws a rectangle outline.
func (Native) DrawListAddRect(dl native.Handle, min, max native.Vec2, col uint32, rounding, thickness float32) {
	switch {
	case shim.HasDrawListHelpers():
		shim.DrawListAddRect(uintptr(dl), min.X, min.Y, max.X, max.Y, col, rounding, thickness)
	case imDrawListAddRect != nil:
		imDrawListAddRect(uintptr(dl), min, max, col, rounding, 0, thickness)
	}
}

// DrawListAddRectFilled draws a filled rectangle.
func (Native) DrawListAddRectFilled(dl native.Handle, min, max native.Vec2, col uint32, rounding float32) {
	switch {
	case shim.HasDrawListHelpers():
		shim.DrawListAddRectFilled(uintptr(dl), min.X, min.Y, max.X, max.Y, col, rounding)
	case imDrawListAddRectFilled != nil:
		imDrawListAddRectFilled(uintptr(dl), min, max, col, rounding, 0)
	}
}

// DrawListAddCircle draws a circle outline.
func (Native) DrawListAddCircle(dl native.Handle, center native.Vec2, radius float32, col uint32, segments int32, thickness float32) {
	switch {
	case shim.HasDrawListHelpers():
		shim.DrawListAddCircle(uintptr(dl), center.X, center.Y, radius, col, segments, thickness)
	case imDrawListAddCircle != nil:
		imDrawListAddCircle(uintptr(dl), center, radius, col, segments, thickness)
	}
}

// DrawListAddText draws text at pos.
func (Native) DrawListAddText(dl native.Handle, pos native.Vec2, col uint32, text string) {
	switch {
	case shim.HasDrawListHelpers():
		shim.DrawListAddText(uintptr(dl), pos.X, pos.Y, col, text)
	case imDrawListAddText != nil:
		imDrawListAddText(uintptr(dl), pos, col, text, 0)
	}
}

// DrawListVertexCount returns VtxBuffer.Size.
func (Native) DrawListVertexCount(dl native.Handle) int32 {
	return shim.DrawListVtxCount(uintptr(dl))
}

// DrawListCommandCount returns CmdBuffer.Size.
func (Native) DrawListCommandCount(dl native.Handle) int32 {
	return shim.DrawListCmdCount(uintptr(dl))
}

func (Native) ViewportID(vp native.Handle) uint32 {
	return shim.ViewportID(uintptr(vp))
}

func (Native) ViewportFlags(vp native.Handle) int32 {
	return shim.ViewportFlags(uintptr(vp))
}

func (Native) ViewportPos(vp native.Handle) native.Vec2 {
	x, y := shim.ViewportPos(uintptr(vp))
	return native.Vec2{X: x, Y: y}
}

func (Native) ViewportSize(vp native.Handle) native.Vec2 {
	x, y := shim.ViewportSize(uintptr(vp))
	return native.Vec2{X: x, Y: y}
}

func (Native) ViewportWorkPos(vp native.Handle) native.Vec2 {
	x, y := shim.ViewportWorkPos(uintptr(vp))
	return native.Vec2{X: x, Y: y}
}

func (Native) ViewportWorkSize(vp native.Handle) native.Vec2 {
	x, y := shim.ViewportWorkSize(uintptr(vp))
	return native.Vec2{X: x, Y: y}
}

func (Native) ViewportDpiScale(vp native.Handle) float32 {
	return shim.ViewportDpiScale(uintptr(vp))
}

func (Native) ViewportPlatformHandle(vp native.Handle) uintptr {
	return shim.ViewportPlatformHandle(uintptr(vp))
}

func (Native) StorageGetInt(st native.Handle, key uint32, def int32) int32 {
	if !loaded {
		return def
	}
	return imGuiStorageGetInt(uintptr(st), key, def)
}

func (Native) StorageSetInt(st native.Handle, key uint32, val int32) {
	if loaded {
		imGuiStorageSetInt(uintptr(st), key, val)
	}
}

func (Native) StorageGetBool(st native.Handle, key uint32, def bool) bool {
	if !loaded {
		return def
	}
	return imGuiStorageGetBool(uintptr(st), key, def)
}

func (Native) StorageSetBool(st native.Handle, key uint32, val bool) {
	if loaded {
		imGuiStorageSetBool(uintptr(st), key, val)
	}
}

func (Native) StorageGetFloat(st native.Handle, key uint32, def float32) float32 {
	if !loaded {
		return def
	}
	return imGuiStorageGetFloat(uintptr(st), key, def)
}

func (Native) StorageSetFloat(st native.Handle, key uint32, val float32) {
	if loaded {
		imGuiStorageSetFloat(uintptr(st), key, val)
	}
}

// SaveIniSettingsToMemory copies the settings blob out of native memory.
func (Native) SaveIniSettingsToMemory() []byte {
	if !loaded {
		return nil
	}
	var size uintptr
	p := igSaveIniSettingsToMemory(&size)
	if p == nil || size == 0 {
		return nil
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(p), size))
	return out
}

// LoadIniSettingsFromMemory hands the blob to native unchanged.
func (Native) LoadIniSettingsFromMemory(data []byte) {
	if !loaded || len(data) == 0 {
		return
	}
	igLoadIniSettingsFromMemory(&data[0], uintptr(len(data)))
}

func (Native) SaveIniSettingsToDisk(path string) {
	if loaded {
		igSaveIniSettingsToDisk(path)
	}
}

func (Native) LoadIniSettingsFromDisk(path string) {
	if loaded {
		igLoadIniSettingsFromDisk(path)
	}
}
