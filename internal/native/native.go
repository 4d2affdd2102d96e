//go:build !ios && !android && (amd64 || arm64)

// Package native describes the flat call surface imgo consumes from the
// native GUI library.
//
// Everything behind Native takes and returns primitives: booleans, integers,
// floats, strings, byte buffers and address-sized handles. Two
// implementations exist: internal/bindings (cimgui loaded with purego) and
// internal/fakeimgui (an in-process simulation used by tests).
//
// All methods must be called from the goroutine that drives the frame loop.
package native

// Handle is an opaque, address-sized reference to a native-owned object.
// Zero means absent. Go code never frees what a Handle points to.
type Handle uintptr

// IsZero reports whether h refers to nothing.
func (h Handle) IsZero() bool {
	return h == 0
}

// InputText flags used by the text buffer protocol. Values match
// ImGuiInputTextFlags_ in imgui.h.
const (
	InputTextFlagsNone                int32 = 0
	InputTextFlagsCharsDecimal        int32 = 1 << 0
	InputTextFlagsCharsHexadecimal    int32 = 1 << 1
	InputTextFlagsCharsUppercase      int32 = 1 << 2
	InputTextFlagsCharsNoBlank        int32 = 1 << 3
	InputTextFlagsAutoSelectAll       int32 = 1 << 4
	InputTextFlagsEnterReturnsTrue    int32 = 1 << 5
	InputTextFlagsCallbackComplete    int32 = 1 << 6
	InputTextFlagsCallbackHistory     int32 = 1 << 7
	InputTextFlagsCallbackAlways      int32 = 1 << 8
	InputTextFlagsCallbackCharFilter  int32 = 1 << 9
	InputTextFlagsAllowTabInput       int32 = 1 << 10
	InputTextFlagsCtrlEnterForNewLine int32 = 1 << 11
	InputTextFlagsNoHorizontalScroll  int32 = 1 << 12
	InputTextFlagsAlwaysOverwrite     int32 = 1 << 13
	InputTextFlagsReadOnly            int32 = 1 << 14
	InputTextFlagsPassword            int32 = 1 << 15
	InputTextFlagsNoUndoRedo          int32 = 1 << 16
	InputTextFlagsCharsScientific     int32 = 1 << 17
	InputTextFlagsCallbackResize      int32 = 1 << 18
	InputTextFlagsCallbackEdit        int32 = 1 << 19
)

// InputTextCallbackData mirrors ImGuiInputTextCallbackData (imgui >= 1.90,
// ImWchar as 16-bit). Go's field alignment produces the same layout as the C
// compiler on 64-bit targets, so a *InputTextCallbackData may point straight
// at the struct the native routine passes to its callback.
type InputTextCallbackData struct {
	Ctx            uintptr
	EventFlag      int32
	Flags          int32
	UserData       uintptr
	EventChar      uint16
	EventKey       int32
	Buf            *byte
	BufTextLen     int32
	BufSize        int32
	BufDirty       bool
	CursorPos      int32
	SelectionStart int32
	SelectionEnd   int32
}

// InputTextCallback is invoked synchronously by the native edit routine.
// The return value is forwarded to native: for char filtering, non-zero
// discards the character.
type InputTextCallback func(data *InputTextCallbackData) int32

// InputTextCall carries the arguments of one native text-edit call.
type InputTextCall struct {
	Label     string
	Hint      string
	HasHint   bool
	Multiline bool
	Width     float32
	Height    float32

	Buf     *byte
	BufSize int32
	Flags   int32

	// Callback is nil when Flags requests no callback events.
	Callback InputTextCallback
}

// AssertHook receives native consistency failures. It runs nested inside the
// native call that failed and must not panic.
type AssertHook func(expr string, line int32, file string)

// Vec2 is a pair of floats passed flattened across the boundary.
type Vec2 struct {
	X, Y float32
}

// Native is the flat native call surface.
type Native interface {
	// Text editing. Returns true when the text was changed by this call.
	InputText(call *InputTextCall) bool

	// Drag and drop transport.
	BeginDragDropSource(flags int32) bool
	SetDragDropPayload(tag string, data []byte, cond int32) bool
	EndDragDropSource()
	BeginDragDropTarget() bool
	AcceptDragDropPayload(tag string, flags int32) bool
	EndDragDropTarget()
	HasDragDropPayload() bool
	IsDragDropPayloadType(tag string) bool

	// Assertion hook installation. Called once per process by imgo.Init.
	InstallAssertHook(hook AssertHook) error

	// Object lookups returning handles.
	BackgroundDrawList() Handle
	ForegroundDrawList() Handle
	WindowDrawList() Handle
	MainViewport() Handle
	FindViewportByID(id uint32) Handle
	StateStorage() Handle
	SetStateStorage(storage Handle)

	// ImDrawList.
	DrawListAddLine(dl Handle, p1, p2 Vec2, col uint32, thickness float32)
	DrawListAddRect(dl Handle, min, max Vec2, col uint32, rounding, thickness float32)
	DrawListAddRectFilled(dl Handle, min, max Vec2, col uint32, rounding float32)
	DrawListAddCircle(dl Handle, center Vec2, radius float32, col uint32, segments int32, thickness float32)
	DrawListAddText(dl Handle, pos Vec2, col uint32, text string)
	DrawListVertexCount(dl Handle) int32
	DrawListCommandCount(dl Handle) int32

	// ImGuiViewport.
	ViewportID(vp Handle) uint32
	ViewportFlags(vp Handle) int32
	ViewportPos(vp Handle) Vec2
	ViewportSize(vp Handle) Vec2
	ViewportWorkPos(vp Handle) Vec2
	ViewportWorkSize(vp Handle) Vec2
	ViewportDpiScale(vp Handle) float32
	ViewportPlatformHandle(vp Handle) uintptr

	// ImGuiStorage.
	StorageGetInt(st Handle, key uint32, def int32) int32
	StorageSetInt(st Handle, key uint32, val int32)
	StorageGetBool(st Handle, key uint32, def bool) bool
	StorageSetBool(st Handle, key uint32, val bool)
	StorageGetFloat(st Handle, key uint32, def float32) float32
	StorageSetFloat(st Handle, key uint32, val float32)

	// Settings blob.
	SaveIniSettingsToMemory() []byte
	LoadIniSettingsFromMemory(data []byte)
	SaveIniSettingsToDisk(path string)
	LoadIniSettingsFromDisk(path string)
}
