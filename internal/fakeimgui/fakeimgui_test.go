//go:build !ios && !android && (amd64 || arm64)

package fakeimgui

import (
	"path/filepath"
	"testing"

	"github.com/obinnaokechukwu/imgo/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func TestInputTextAppendsTypedText(t *testing.T) {
	f := New()
	buf := make([]byte, 16)
	f.Type("name", "hello")

	changed := f.InputText(&native.InputTextCall{Label: "name", Buf: &buf[0], BufSize: 16})
	assert.True(t, changed)
	assert.Equal(t, "hello", cstr(buf))

	// Nothing queued: no change.
	assert.False(t, f.InputText(&native.InputTextCall{Label: "name", Buf: &buf[0], BufSize: 16}))
	assert.Equal(t, 2, f.Calls("InputText"))
}

func TestInputTextBackspace(t *testing.T) {
	f := New()
	buf := []byte("héllo\x00\x00\x00\x00")
	f.Type("x", "\b\b\b\b")

	assert.True(t, f.InputText(&native.InputTextCall{Label: "x", Buf: &buf[0], BufSize: int32(len(buf))}))
	assert.Equal(t, "h", cstr(buf))
}

func TestInputTextTruncatesWithoutResize(t *testing.T) {
	f := New()
	buf := make([]byte, 4)
	f.Type("x", "abcdef")

	f.InputText(&native.InputTextCall{Label: "x", Buf: &buf[0], BufSize: 4})
	assert.Equal(t, "abc", cstr(buf))
	assert.Empty(t, f.Events)
}

func TestInputTextCharFilter(t *testing.T) {
	f := New()
	buf := make([]byte, 16)
	f.Type("x", "a1b2")

	call := &native.InputTextCall{
		Label:   "x",
		Buf:     &buf[0],
		BufSize: 16,
		Flags:   native.InputTextFlagsCallbackCharFilter,
		Callback: func(d *native.InputTextCallbackData) int32 {
			if d.EventChar >= '0' && d.EventChar <= '9' {
				return 0
			}
			return 1
		},
	}
	f.InputText(call)
	assert.Equal(t, "12", cstr(buf))
	assert.Len(t, f.Events, 4)
}

func TestInputTextResizeAdoptsNewBuffer(t *testing.T) {
	f := New()
	small := make([]byte, 4)
	var grown []byte
	f.Type("x", "abcdefgh")

	call := &native.InputTextCall{
		Label:   "x",
		Buf:     &small[0],
		BufSize: 4,
		Flags:   native.InputTextFlagsCallbackResize,
		Callback: func(d *native.InputTextCallbackData) int32 {
			require.Equal(t, native.InputTextFlagsCallbackResize, d.EventFlag)
			grown = make([]byte, 64)
			copy(grown, small)
			d.Buf = &grown[0]
			d.BufSize = 64
			return 0
		},
	}
	assert.True(t, f.InputText(call))
	assert.Equal(t, "abcdefgh", cstr(grown))

	require.Len(t, f.Events, 1)
	assert.Equal(t, int32(4), f.Events[0].Requested)
}

func TestDragDropTransport(t *testing.T) {
	f := New()
	assert.False(t, f.BeginDragDropSource(0))

	f.PressSource()
	require.True(t, f.BeginDragDropSource(0))
	assert.False(t, f.SetDragDropPayload("CARD", []byte{0}, 0))
	f.EndDragDropSource()

	f.Hover(true)
	require.True(t, f.BeginDragDropTarget())
	assert.False(t, f.AcceptDragDropPayload("CARD", 0), "not yet delivered")
	assert.True(t, f.AcceptDragDropPayload("CARD", acceptBeforeDelivery))
	f.Release()
	assert.True(t, f.AcceptDragDropPayload("CARD", 0))
	assert.False(t, f.AcceptDragDropPayload("OTHER", 0))
	f.EndDragDropTarget()

	assert.True(t, f.HasDragDropPayload())
	assert.True(t, f.IsDragDropPayloadType("CARD"))

	f.ClearDragDrop()
	assert.False(t, f.HasDragDropPayload())
}

func TestAssertRecordsEscapedPanics(t *testing.T) {
	f := New()
	f.Assert("ignored without hook", 1, "x.cpp")

	var got string
	require.NoError(t, f.InstallAssertHook(func(expr string, line int32, file string) {
		got = expr
	}))
	f.Assert("g.WithinFrameScope", 10, "imgui.cpp")
	assert.Equal(t, "g.WithinFrameScope", got)
	assert.Zero(t, f.EscapedPanics)

	require.NoError(t, f.InstallAssertHook(func(string, int32, string) { panic("x") }))
	f.Assert("boom", 1, "imgui.cpp")
	assert.Equal(t, 1, f.EscapedPanics)
}

func TestStorageAndViewports(t *testing.T) {
	f := New()
	st := f.StateStorage()
	f.StorageSetInt(st, 7, 42)
	f.StorageSetBool(st, 8, true)
	assert.Equal(t, int32(42), f.StorageGetInt(st, 7, 0))
	assert.True(t, f.StorageGetBool(st, 8, false))
	assert.Equal(t, float32(1.5), f.StorageGetFloat(st, 9, 1.5))

	other := f.NewStorage()
	f.SetStateStorage(other)
	assert.Equal(t, other, f.StateStorage())
	assert.Equal(t, int32(-1), f.StorageGetInt(other, 7, -1))

	h := f.AddViewport(Viewport{ID: 99, DpiScale: 2})
	assert.Equal(t, h, f.FindViewportByID(99))
	assert.Zero(t, f.FindViewportByID(12345))
	assert.Equal(t, MainViewportID, f.ViewportID(f.MainViewport()))
}

func TestWindowDrawListRequiresWindow(t *testing.T) {
	f := New()
	assert.Zero(t, f.WindowDrawList())
	f.OpenWindow(true)
	dl := f.WindowDrawList()
	require.NotZero(t, dl)

	f.DrawListAddLine(dl, native.Vec2{}, native.Vec2{X: 1, Y: 1}, 0xFFFFFFFF, 1)
	f.DrawListAddText(dl, native.Vec2{}, 0xFFFFFFFF, "hi")
	assert.Equal(t, int32(8), f.DrawListVertexCount(dl))
	assert.Equal(t, "hi", f.DrawListAt(dl).Primitives[1].Text)
}

func TestIniRoundTrip(t *testing.T) {
	f := New()
	f.SetIni("[Window][Debug]\nPos=60,60\n")
	path := filepath.Join(t.TempDir(), "imgui.ini")
	f.SaveIniSettingsToDisk(path)

	g := New()
	g.LoadIniSettingsFromDisk(path)
	assert.Equal(t, f.SaveIniSettingsToMemory(), g.SaveIniSettingsToMemory())
}
