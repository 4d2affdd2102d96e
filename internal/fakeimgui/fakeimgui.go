//go:build !ios && !android && (amd64 || arm64)

// Package fakeimgui simulates the native call surface in-process.
//
// The simulation covers what the boundary layer depends on: the text edit
// routine (typed characters, char-filter and resize callbacks, truncation),
// the drag and drop transport (source, target, delivery gate), assertion
// reporting, and handle-addressed draw lists, viewports and storages. Every
// method call is counted so tests can verify that nothing reached native.
package fakeimgui

import (
	"os"
	"unicode/utf8"
	"unsafe"

	"github.com/obinnaokechukwu/imgo/internal/native"
)

// Well-known handles returned by the lookup functions.
const (
	BackgroundDrawListHandle native.Handle = 0x1000
	ForegroundDrawListHandle native.Handle = 0x1001
	WindowDrawListHandle     native.Handle = 0x1002
	MainViewportHandle       native.Handle = 0x2000
	DefaultStorageHandle     native.Handle = 0x3000

	// MainViewportID is the ID of the main viewport.
	MainViewportID uint32 = 0x11111111
)

// Backspace in typed input removes the last character.
const Backspace = '\b'

// Primitive is one recorded draw-list primitive.
type Primitive struct {
	Kind   string
	Points []native.Vec2
	Col    uint32
	Text   string
}

// DrawList records primitives added through the native surface.
type DrawList struct {
	Primitives []Primitive
}

// Viewport holds the fields exposed for a simulated viewport.
type Viewport struct {
	ID             uint32
	Flags          int32
	Pos, Size      native.Vec2
	WorkPos        native.Vec2
	WorkSize       native.Vec2
	DpiScale       float32
	PlatformHandle uintptr
}

// EditEvent records one callback invocation made by the edit routine.
type EditEvent struct {
	Label     string
	EventFlag int32
	Char      rune
	Requested int32
	Result    int32
}

// Fake implements native.Native. It is not safe for concurrent use, same
// as the library it stands in for.
type Fake struct {
	calls map[string]int

	// text editing
	typed    map[string][]rune
	Events   []EditEvent
	LastCall native.InputTextCall

	// drag and drop
	sourceHeld    bool
	targetHovered bool
	delivered     bool
	inSource      bool
	inTarget      bool
	payloadTag    string
	payloadData   []byte

	// assertions
	assertHook    native.AssertHook
	EscapedPanics int

	windowOpen bool
	drawLists  map[native.Handle]*DrawList
	viewports  map[native.Handle]*Viewport
	storages   map[native.Handle]map[uint32]any
	storage    native.Handle
	nextHandle native.Handle

	ini []byte
}

var _ native.Native = (*Fake)(nil)

// New returns a fake with one main viewport, the background and foreground
// draw lists, and a default state storage. No window is open.
func New() *Fake {
	f := &Fake{
		calls: make(map[string]int),
		typed: make(map[string][]rune),
		drawLists: map[native.Handle]*DrawList{
			BackgroundDrawListHandle: {},
			ForegroundDrawListHandle: {},
			WindowDrawListHandle:     {},
		},
		viewports: map[native.Handle]*Viewport{
			MainViewportHandle: {
				ID:       MainViewportID,
				Size:     native.Vec2{X: 1280, Y: 720},
				WorkSize: native.Vec2{X: 1280, Y: 700},
				WorkPos:  native.Vec2{Y: 20},
				DpiScale: 1,
			},
		},
		storages:   map[native.Handle]map[uint32]any{DefaultStorageHandle: {}},
		storage:    DefaultStorageHandle,
		nextHandle: 0x4000,
	}
	return f
}

func (f *Fake) count(name string) {
	f.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (f *Fake) Calls(name string) int {
	return f.calls[name]
}

// TotalCalls returns the number of native calls of any kind.
func (f *Fake) TotalCalls() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// ResetCalls zeroes all counters.
func (f *Fake) ResetCalls() {
	clear(f.calls)
}

// ---------------------------------------------------------------------------
// Text editing

// Type queues keystrokes for the next edit call on label. A Backspace rune
// deletes the last character.
func (f *Fake) Type(label, text string) {
	f.typed[label] = append(f.typed[label], []rune(text)...)
}

// InputText consumes the keystrokes queued for call.Label and applies them
// to the caller's buffer the way the native routine does.
func (f *Fake) InputText(call *native.InputTextCall) bool {
	f.count("InputText")
	if call == nil || call.Buf == nil || call.BufSize <= 0 {
		return false
	}
	f.LastCall = *call

	keys := f.typed[call.Label]
	delete(f.typed, call.Label)

	buf := call.Buf
	size := call.BufSize
	length := cstrlen(buf, size)
	changed := false

	for _, r := range keys {
		if r == Backspace {
			if length == 0 {
				continue
			}
			text := unsafe.Slice(buf, size)
			_, w := utf8.DecodeLastRune(text[:length])
			length -= int32(w)
			text[length] = 0
			changed = true
			continue
		}

		if call.Flags&native.InputTextFlagsCallbackCharFilter != 0 && call.Callback != nil {
			data := f.callbackData(call, buf, size, length)
			data.EventFlag = native.InputTextFlagsCallbackCharFilter
			data.EventChar = uint16(r)
			ret := call.Callback(data)
			f.Events = append(f.Events, EditEvent{
				Label: call.Label, EventFlag: data.EventFlag, Char: r, Result: ret,
			})
			if ret != 0 || data.EventChar == 0 {
				continue
			}
			r = rune(data.EventChar)
		}

		var enc [utf8.UTFMax]byte
		n := int32(utf8.EncodeRune(enc[:], r))
		want := length + n

		if want+1 > size {
			if call.Flags&native.InputTextFlagsCallbackResize == 0 || call.Callback == nil {
				// Full buffer without a resize hook: the keystroke is dropped.
				continue
			}
			data := f.callbackData(call, buf, size, want)
			data.EventFlag = native.InputTextFlagsCallbackResize
			data.BufSize = want + 1
			ret := call.Callback(data)
			f.Events = append(f.Events, EditEvent{
				Label: call.Label, EventFlag: data.EventFlag, Requested: want, Result: ret,
			})
			buf, size = data.Buf, data.BufSize
			if buf == nil || want+1 > size {
				return changed
			}
		}

		text := unsafe.Slice(buf, size)
		copy(text[length:], enc[:n])
		length = want
		text[length] = 0
		changed = true
	}
	return changed
}

func (f *Fake) callbackData(call *native.InputTextCall, buf *byte, size, length int32) *native.InputTextCallbackData {
	return &native.InputTextCallbackData{
		Flags:      call.Flags,
		Buf:        buf,
		BufTextLen: length,
		BufSize:    size,
		CursorPos:  length,
	}
}

func cstrlen(buf *byte, size int32) int32 {
	text := unsafe.Slice(buf, size)
	for i, b := range text {
		if b == 0 {
			return int32(i)
		}
	}
	return size
}

// ---------------------------------------------------------------------------
// Drag and drop

// PressSource simulates the mouse starting a drag over the next source item.
func (f *Fake) PressSource() {
	f.sourceHeld = true
}

// Hover makes the next BeginDragDropTarget succeed (or fail).
func (f *Fake) Hover(on bool) {
	f.targetHovered = on
}

// Release drops the payload on the hovered target; the next matching accept
// call delivers it.
func (f *Fake) Release() {
	f.sourceHeld = false
	f.delivered = true
}

// ClearDragDrop ends the drag: the native payload is discarded.
func (f *Fake) ClearDragDrop() {
	f.sourceHeld = false
	f.targetHovered = false
	f.delivered = false
	f.payloadTag = ""
	f.payloadData = nil
}

// Payload returns the tag and bytes currently held by the transport.
func (f *Fake) Payload() (string, []byte) {
	return f.payloadTag, f.payloadData
}

func (f *Fake) BeginDragDropSource(flags int32) bool {
	f.count("BeginDragDropSource")
	f.inSource = f.sourceHeld
	return f.inSource
}

// condOnce mirrors ImGuiCond_Once.
const condOnce = 1 << 1

func (f *Fake) SetDragDropPayload(tag string, data []byte, cond int32) bool {
	f.count("SetDragDropPayload")
	if cond == condOnce && f.payloadTag != "" {
		return f.delivered
	}
	f.payloadTag = tag
	f.payloadData = append([]byte(nil), data...)
	return f.delivered
}

func (f *Fake) EndDragDropSource() {
	f.count("EndDragDropSource")
	f.inSource = false
}

func (f *Fake) BeginDragDropTarget() bool {
	f.count("BeginDragDropTarget")
	f.inTarget = f.targetHovered && f.payloadTag != ""
	return f.inTarget
}

// acceptBeforeDelivery mirrors ImGuiDragDropFlags_AcceptBeforeDelivery.
const acceptBeforeDelivery = 1 << 10

func (f *Fake) AcceptDragDropPayload(tag string, flags int32) bool {
	f.count("AcceptDragDropPayload")
	if f.payloadTag == "" || f.payloadTag != tag {
		return false
	}
	return f.delivered || flags&acceptBeforeDelivery != 0
}

func (f *Fake) EndDragDropTarget() {
	f.count("EndDragDropTarget")
	f.inTarget = false
}

func (f *Fake) HasDragDropPayload() bool {
	f.count("HasDragDropPayload")
	return f.payloadTag != "" && len(f.payloadData) > 0
}

func (f *Fake) IsDragDropPayloadType(tag string) bool {
	f.count("IsDragDropPayloadType")
	return f.payloadTag != "" && f.payloadTag == tag
}

// ---------------------------------------------------------------------------
// Assertions

func (f *Fake) InstallAssertHook(hook native.AssertHook) error {
	f.count("InstallAssertHook")
	f.assertHook = hook
	return nil
}

// Assert reports a consistency failure the way IM_ASSERT would. A panic
// escaping the hook would unwind through native frames; the fake records it
// in EscapedPanics instead of crashing.
func (f *Fake) Assert(expr string, line int32, file string) {
	if f.assertHook == nil {
		return
	}
	defer func() {
		if recover() != nil {
			f.EscapedPanics++
		}
	}()
	f.assertHook(expr, line, file)
}

// ---------------------------------------------------------------------------
// Handles

// OpenWindow controls whether WindowDrawList returns a handle.
func (f *Fake) OpenWindow(open bool) {
	f.windowOpen = open
}

// DrawListAt returns the recorded state of a draw list, or nil.
func (f *Fake) DrawListAt(h native.Handle) *DrawList {
	return f.drawLists[h]
}

// AddViewport registers a secondary viewport and returns its handle.
func (f *Fake) AddViewport(vp Viewport) native.Handle {
	h := f.alloc()
	v := vp
	f.viewports[h] = &v
	return h
}

// NewStorage allocates an empty storage and returns its handle.
func (f *Fake) NewStorage() native.Handle {
	h := f.alloc()
	f.storages[h] = map[uint32]any{}
	return h
}

func (f *Fake) alloc() native.Handle {
	f.nextHandle += 0x10
	return f.nextHandle
}

func (f *Fake) BackgroundDrawList() native.Handle {
	f.count("BackgroundDrawList")
	return BackgroundDrawListHandle
}

func (f *Fake) ForegroundDrawList() native.Handle {
	f.count("ForegroundDrawList")
	return ForegroundDrawListHandle
}

func (f *Fake) WindowDrawList() native.Handle {
	f.count("WindowDrawList")
	if !f.windowOpen {
		return 0
	}
	return WindowDrawListHandle
}

func (f *Fake) MainViewport() native.Handle {
	f.count("MainViewport")
	return MainViewportHandle
}

func (f *Fake) FindViewportByID(id uint32) native.Handle {
	f.count("FindViewportByID")
	for h, vp := range f.viewports {
		if vp.ID == id {
			return h
		}
	}
	return 0
}

func (f *Fake) StateStorage() native.Handle {
	f.count("StateStorage")
	return f.storage
}

func (f *Fake) SetStateStorage(storage native.Handle) {
	f.count("SetStateStorage")
	f.storage = storage
}

func (f *Fake) record(dl native.Handle, p Primitive) {
	if l := f.drawLists[dl]; l != nil {
		l.Primitives = append(l.Primitives, p)
	}
}

func (f *Fake) DrawListAddLine(dl native.Handle, p1, p2 native.Vec2, col uint32, thickness float32) {
	f.count("DrawListAddLine")
	f.record(dl, Primitive{Kind: "line", Points: []native.Vec2{p1, p2}, Col: col})
}

func (f *Fake) DrawListAddRect(dl native.Handle, min, max native.Vec2, col uint32, rounding, thickness float32) {
	f.count("DrawListAddRect")
	f.record(dl, Primitive{Kind: "rect", Points: []native.Vec2{min, max}, Col: col})
}

func (f *Fake) DrawListAddRectFilled(dl native.Handle, min, max native.Vec2, col uint32, rounding float32) {
	f.count("DrawListAddRectFilled")
	f.record(dl, Primitive{Kind: "rect_filled", Points: []native.Vec2{min, max}, Col: col})
}

func (f *Fake) DrawListAddCircle(dl native.Handle, center native.Vec2, radius float32, col uint32, segments int32, thickness float32) {
	f.count("DrawListAddCircle")
	f.record(dl, Primitive{Kind: "circle", Points: []native.Vec2{center}, Col: col})
}

func (f *Fake) DrawListAddText(dl native.Handle, pos native.Vec2, col uint32, text string) {
	f.count("DrawListAddText")
	f.record(dl, Primitive{Kind: "text", Points: []native.Vec2{pos}, Col: col, Text: text})
}

// DrawListVertexCount approximates vertex output: four per primitive.
func (f *Fake) DrawListVertexCount(dl native.Handle) int32 {
	f.count("DrawListVertexCount")
	if l := f.drawLists[dl]; l != nil {
		return int32(4 * len(l.Primitives))
	}
	return 0
}

func (f *Fake) DrawListCommandCount(dl native.Handle) int32 {
	f.count("DrawListCommandCount")
	if l := f.drawLists[dl]; l != nil && len(l.Primitives) > 0 {
		return 1
	}
	return 0
}

func (f *Fake) viewport(vp native.Handle) *Viewport {
	if v := f.viewports[vp]; v != nil {
		return v
	}
	return &Viewport{}
}

func (f *Fake) ViewportID(vp native.Handle) uint32 {
	f.count("ViewportID")
	return f.viewport(vp).ID
}

func (f *Fake) ViewportFlags(vp native.Handle) int32 {
	f.count("ViewportFlags")
	return f.viewport(vp).Flags
}

func (f *Fake) ViewportPos(vp native.Handle) native.Vec2 {
	f.count("ViewportPos")
	return f.viewport(vp).Pos
}

func (f *Fake) ViewportSize(vp native.Handle) native.Vec2 {
	f.count("ViewportSize")
	return f.viewport(vp).Size
}

func (f *Fake) ViewportWorkPos(vp native.Handle) native.Vec2 {
	f.count("ViewportWorkPos")
	return f.viewport(vp).WorkPos
}

func (f *Fake) ViewportWorkSize(vp native.Handle) native.Vec2 {
	f.count("ViewportWorkSize")
	return f.viewport(vp).WorkSize
}

func (f *Fake) ViewportDpiScale(vp native.Handle) float32 {
	f.count("ViewportDpiScale")
	return f.viewport(vp).DpiScale
}

func (f *Fake) ViewportPlatformHandle(vp native.Handle) uintptr {
	f.count("ViewportPlatformHandle")
	return f.viewport(vp).PlatformHandle
}

func storageGet[T any](f *Fake, st native.Handle, key uint32, def T) T {
	if v, ok := f.storages[st][key].(T); ok {
		return v
	}
	return def
}

func storageSet(f *Fake, st native.Handle, key uint32, v any) {
	if m := f.storages[st]; m != nil {
		m[key] = v
	}
}

func (f *Fake) StorageGetInt(st native.Handle, key uint32, def int32) int32 {
	f.count("StorageGetInt")
	return storageGet(f, st, key, def)
}

func (f *Fake) StorageSetInt(st native.Handle, key uint32, val int32) {
	f.count("StorageSetInt")
	storageSet(f, st, key, val)
}

func (f *Fake) StorageGetBool(st native.Handle, key uint32, def bool) bool {
	f.count("StorageGetBool")
	return storageGet(f, st, key, def)
}

func (f *Fake) StorageSetBool(st native.Handle, key uint32, val bool) {
	f.count("StorageSetBool")
	storageSet(f, st, key, val)
}

func (f *Fake) StorageGetFloat(st native.Handle, key uint32, def float32) float32 {
	f.count("StorageGetFloat")
	return storageGet(f, st, key, def)
}

func (f *Fake) StorageSetFloat(st native.Handle, key uint32, val float32) {
	f.count("StorageSetFloat")
	storageSet(f, st, key, val)
}

// ---------------------------------------------------------------------------
// Settings

// SetIni replaces the simulated settings state.
func (f *Fake) SetIni(data string) {
	f.ini = []byte(data)
}

func (f *Fake) SaveIniSettingsToMemory() []byte {
	f.count("SaveIniSettingsToMemory")
	return append([]byte(nil), f.ini...)
}

func (f *Fake) LoadIniSettingsFromMemory(data []byte) {
	f.count("LoadIniSettingsFromMemory")
	f.ini = append([]byte(nil), data...)
}

func (f *Fake) SaveIniSettingsToDisk(path string) {
	f.count("SaveIniSettingsToDisk")
	_ = os.WriteFile(path, f.ini, 0o644)
}

func (f *Fake) LoadIniSettingsFromDisk(path string) {
	f.count("LoadIniSettingsFromDisk")
	if data, err := os.ReadFile(path); err == nil {
		f.ini = data
	}
}
