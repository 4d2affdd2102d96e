//go:build !ios && !android && (amd64 || arm64)

package imgo

// DrawList is a view of an ImDrawList.
type DrawList struct {
	HandleProxy
}

// Viewport is a view of an ImGuiViewport.
type Viewport struct {
	HandleProxy
}

// Storage is a view of an ImGuiStorage key/value table.
type Storage struct {
	HandleProxy
}

// NewDrawList wraps h. Most code uses the singleton getters instead.
func NewDrawList(h Handle) *DrawList {
	d := &DrawList{}
	d.Rebind(h)
	return d
}

// NewViewport wraps h.
func NewViewport(h Handle) *Viewport {
	v := &Viewport{}
	v.Rebind(h)
	return v
}

// NewStorage wraps h.
func NewStorage(h Handle) *Storage {
	s := &Storage{}
	s.Rebind(h)
	return s
}

// Proxies returned by the getters below are shared and rebound on every
// call. Keep the Handle, not the proxy, if a value must outlive the next
// call to the same getter.
var (
	backgroundDrawList DrawList
	foregroundDrawList DrawList
	windowDrawList     DrawList
	mainViewport       Viewport
	foundViewport      Viewport
	stateStorage       Storage
)

// BackgroundDrawList returns the draw list rendered behind all windows.
func BackgroundDrawList() *DrawList {
	backgroundDrawList.Rebind(current.BackgroundDrawList())
	return &backgroundDrawList
}

// ForegroundDrawList returns the draw list rendered over all windows.
func ForegroundDrawList() *DrawList {
	foregroundDrawList.Rebind(current.ForegroundDrawList())
	return &foregroundDrawList
}

// WindowDrawList returns the current window's draw list. It is zero outside
// a Begin/End pair.
func WindowDrawList() *DrawList {
	windowDrawList.Rebind(current.WindowDrawList())
	return &windowDrawList
}

func MainViewport() *Viewport {
	mainViewport.Rebind(current.MainViewport())
	return &mainViewport
}

// FindViewportByID returns a zero proxy when no viewport has id.
func FindViewportByID(id uint32) *Viewport {
	foundViewport.Rebind(current.FindViewportByID(id))
	return &foundViewport
}

// StateStorage returns the current window's state storage.
func StateStorage() *Storage {
	stateStorage.Rebind(current.StateStorage())
	return &stateStorage
}

// SetStateStorage replaces the current window's state storage. nil restores
// the window's own storage.
func SetStateStorage(s *Storage) {
	var h Handle
	if s != nil {
		h = s.Handle()
	}
	current.SetStateStorage(h)
}

// ColorU32 packs an RGBA color the way IM_COL32 does.
func ColorU32(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// DrawList

func (d *DrawList) AddLine(p1, p2 Vec2, col uint32, thickness float32) {
	forwardVoid(&d.HandleProxy, func(n Native, h Handle) {
		n.DrawListAddLine(h, p1, p2, col, thickness)
	})
}

func (d *DrawList) AddRect(min, max Vec2, col uint32, rounding, thickness float32) {
	forwardVoid(&d.HandleProxy, func(n Native, h Handle) {
		n.DrawListAddRect(h, min, max, col, rounding, thickness)
	})
}

func (d *DrawList) AddRectFilled(min, max Vec2, col uint32, rounding float32) {
	forwardVoid(&d.HandleProxy, func(n Native, h Handle) {
		n.DrawListAddRectFilled(h, min, max, col, rounding)
	})
}

// AddCircle draws a circle outline. segments = 0 lets the library choose.
func (d *DrawList) AddCircle(center Vec2, radius float32, col uint32, segments int, thickness float32) {
	forwardVoid(&d.HandleProxy, func(n Native, h Handle) {
		n.DrawListAddCircle(h, center, radius, col, int32(segments), thickness)
	})
}

func (d *DrawList) AddText(pos Vec2, col uint32, text string) {
	forwardVoid(&d.HandleProxy, func(n Native, h Handle) {
		n.DrawListAddText(h, pos, col, text)
	})
}

// VertexCount returns the number of vertices emitted so far this frame.
func (d *DrawList) VertexCount() int {
	return int(forward(&d.HandleProxy, Native.DrawListVertexCount))
}

// CommandCount returns the number of draw commands emitted so far this frame.
func (d *DrawList) CommandCount() int {
	return int(forward(&d.HandleProxy, Native.DrawListCommandCount))
}

// Viewport

func (v *Viewport) ID() uint32 {
	return forward(&v.HandleProxy, Native.ViewportID)
}

func (v *Viewport) Flags() int32 {
	return forward(&v.HandleProxy, Native.ViewportFlags)
}

// Pos is the viewport's top-left corner in platform desktop coordinates.
func (v *Viewport) Pos() Vec2 {
	return forward(&v.HandleProxy, Native.ViewportPos)
}

func (v *Viewport) Size() Vec2 {
	return forward(&v.HandleProxy, Native.ViewportSize)
}

// WorkPos excludes menu bars and task bars.
func (v *Viewport) WorkPos() Vec2 {
	return forward(&v.HandleProxy, Native.ViewportWorkPos)
}

func (v *Viewport) WorkSize() Vec2 {
	return forward(&v.HandleProxy, Native.ViewportWorkSize)
}

func (v *Viewport) DpiScale() float32 {
	return forward(&v.HandleProxy, Native.ViewportDpiScale)
}

// PlatformHandle is the backend window handle (GLFWwindow*, HWND, ...).
func (v *Viewport) PlatformHandle() uintptr {
	return forward(&v.HandleProxy, Native.ViewportPlatformHandle)
}

// Storage

// Int returns the value stored under key, or def when the key is missing.
// A zero proxy returns 0.
func (s *Storage) Int(key uint32, def int32) int32 {
	return forward(&s.HandleProxy, func(n Native, h Handle) int32 {
		return n.StorageGetInt(h, key, def)
	})
}

func (s *Storage) SetInt(key uint32, val int32) {
	forwardVoid(&s.HandleProxy, func(n Native, h Handle) {
		n.StorageSetInt(h, key, val)
	})
}

func (s *Storage) Bool(key uint32, def bool) bool {
	return forward(&s.HandleProxy, func(n Native, h Handle) bool {
		return n.StorageGetBool(h, key, def)
	})
}

func (s *Storage) SetBool(key uint32, val bool) {
	forwardVoid(&s.HandleProxy, func(n Native, h Handle) {
		n.StorageSetBool(h, key, val)
	})
}

func (s *Storage) Float(key uint32, def float32) float32 {
	return forward(&s.HandleProxy, func(n Native, h Handle) float32 {
		return n.StorageGetFloat(h, key, def)
	})
}

func (s *Storage) SetFloat(key uint32, val float32) {
	forwardVoid(&s.HandleProxy, func(n Native, h Handle) {
		n.StorageSetFloat(h, key, val)
	})
}
