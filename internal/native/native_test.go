//go:build !ios && !android && (amd64 || arm64)

package native

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// Offsets of ImGuiInputTextCallbackData as laid out by a 64-bit C compiler.
func TestInputTextCallbackDataLayout(t *testing.T) {
	var d InputTextCallbackData
	assert.Equal(t, uintptr(0), unsafe.Offsetof(d.Ctx))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(d.EventFlag))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(d.Flags))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(d.UserData))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(d.EventChar))
	assert.Equal(t, uintptr(28), unsafe.Offsetof(d.EventKey))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(d.Buf))
	assert.Equal(t, uintptr(40), unsafe.Offsetof(d.BufTextLen))
	assert.Equal(t, uintptr(44), unsafe.Offsetof(d.BufSize))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(d.BufDirty))
	assert.Equal(t, uintptr(52), unsafe.Offsetof(d.CursorPos))
	assert.Equal(t, uintptr(56), unsafe.Offsetof(d.SelectionStart))
	assert.Equal(t, uintptr(60), unsafe.Offsetof(d.SelectionEnd))
	assert.Equal(t, uintptr(64), unsafe.Sizeof(d))
}

func TestHandleIsZero(t *testing.T) {
	assert.True(t, Handle(0).IsZero())
	assert.False(t, Handle(1).IsZero())
}
