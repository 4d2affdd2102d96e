//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"strings"
	"testing"

	"github.com/obinnaokechukwu/imgo/internal/fakeimgui"
	"github.com/obinnaokechukwu/imgo/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resizeEvents(f *fakeimgui.Fake) int {
	n := 0
	for _, e := range f.Events {
		if e.EventFlag == native.InputTextFlagsCallbackResize {
			n++
		}
	}
	return n
}

func TestInputTextGrowsPastCapacity(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("", 16)
	buf.Resizable = true
	typed := "abcdefghijklmnopqrstuvwxyz012345"
	require.Len(t, typed, 32)
	f.Type("##name", typed)

	assert.True(t, InputText("##name", buf, 0))
	assert.Equal(t, typed, buf.String())
	assert.Equal(t, 32, buf.Len())
	assert.True(t, buf.IsDirty())
	assert.True(t, buf.WasResized())
	assert.GreaterOrEqual(t, resizeEvents(f), 1)
	assert.GreaterOrEqual(t, buf.Cap(), 32)
}

func TestInputTextMultipleResizesKeepEveryCharacter(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("", 1)
	buf.Resizable = true
	buf.ResizeStep = 1
	typed := strings.Repeat("0123456789", 5)
	f.Type("log", typed)

	InputText("log", buf, 0)
	assert.Equal(t, typed, buf.String())
	assert.Greater(t, resizeEvents(f), 1)
}

func TestInputTextGrowthAddsResizeStep(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("", 4)
	buf.Resizable = true
	buf.ResizeStep = 10
	f.Type("x", "abcde")

	InputText("x", buf, 0)
	require.Equal(t, 1, resizeEvents(f))
	assert.Equal(t, 5+10, buf.Cap())
}

func TestInputTextAllowedChars(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("", 16)
	buf.AllowedChars = "0123456789"
	f.Type("digits", "a1b2c3")

	InputText("digits", buf, 0)
	assert.Equal(t, "123", buf.String())
}

func TestInputTextAllowedCharsKeepsOrder(t *testing.T) {
	f, _ := useFake(t)

	buf := NewResizableTextBuffer("")
	buf.AllowedChars = "äöü"
	f.Type("umlauts", "üaäoöuü")

	InputText("umlauts", buf, 0)
	assert.Equal(t, "üäöü", buf.String())
}

func TestInputTextEmptyInput(t *testing.T) {
	f, _ := useFake(t)

	buf := NewResizableTextBuffer("")
	assert.False(t, InputText("x", buf, 0))
	assert.Zero(t, resizeEvents(f))
	assert.False(t, buf.IsDirty())
	assert.False(t, buf.WasResized())
	assert.Equal(t, "", buf.String())
}

func TestInputTextExactlyAtCapacityDoesNotResize(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("", 8)
	buf.Resizable = true
	f.Type("x", "12345678")

	InputText("x", buf, 0)
	assert.Equal(t, "12345678", buf.String())
	assert.Zero(t, resizeEvents(f))
	assert.False(t, buf.WasResized())
	assert.Equal(t, 8, buf.Cap())
}

func TestInputTextFixedBufferTruncates(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("", 4)
	f.Type("x", "abcdef")

	assert.True(t, InputText("x", buf, 0))
	assert.Equal(t, "abcd", buf.String())
	assert.Empty(t, f.Events)
	assert.Zero(t, f.LastCall.Flags&native.InputTextFlagsCallbackResize)
	assert.Nil(t, f.LastCall.Callback)
}

func TestInputTextDirtyClearedOnNextCall(t *testing.T) {
	f, _ := useFake(t)

	buf := NewResizableTextBuffer("")
	f.Type("x", "hi")
	InputText("x", buf, 0)
	assert.True(t, buf.IsDirty())

	InputText("x", buf, 0)
	assert.False(t, buf.IsDirty())
	assert.Equal(t, "hi", buf.String())

	f.Type("x", "!")
	InputText("x", buf, 0)
	require.True(t, buf.IsDirty())
	buf.ClearDirty()
	assert.False(t, buf.IsDirty())
}

func TestInputTextBackspaceShortensText(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("hello", 16)
	f.Type("x", "\b\b")
	assert.True(t, InputText("x", buf, 0))
	assert.Equal(t, "hel", buf.String())
	assert.Equal(t, 3, buf.Len())
}

func TestInputTextDerivesCallbackFlags(t *testing.T) {
	f, _ := useFake(t)

	buf := NewTextBuffer("", 8)
	flags := InputTextFlagsCharsUppercase | InputTextFlags(native.InputTextFlagsCallbackResize)
	InputText("x", buf, flags)

	// Resize was requested by the caller, but the buffer is fixed.
	assert.Zero(t, f.LastCall.Flags&native.InputTextFlagsCallbackResize)
	assert.Equal(t, int32(InputTextFlagsCharsUppercase), f.LastCall.Flags)
	assert.Equal(t, int32(9), f.LastCall.BufSize)

	buf.Resizable = true
	buf.AllowedChars = "x"
	InputText("x", buf, 0)
	assert.NotZero(t, f.LastCall.Flags&native.InputTextFlagsCallbackResize)
	assert.NotZero(t, f.LastCall.Flags&native.InputTextFlagsCallbackCharFilter)
	assert.NotNil(t, f.LastCall.Callback)
}

func TestInputTextMultilineAndHint(t *testing.T) {
	f, _ := useFake(t)

	buf := NewResizableTextBuffer("")
	f.Type("notes", "line one\nline two")
	assert.True(t, InputTextMultiline("notes", buf, 200, 100, 0))
	assert.Equal(t, "line one\nline two", buf.String())
	assert.True(t, f.LastCall.Multiline)
	assert.Equal(t, float32(200), f.LastCall.Width)

	search := NewResizableTextBuffer("")
	f.Type("##search", "query")
	assert.True(t, InputTextWithHint("##search", "Search...", search, 0))
	assert.Equal(t, "query", search.String())
	assert.True(t, f.LastCall.HasHint)
	assert.Equal(t, "Search...", f.LastCall.Hint)
}

func TestInputTextNilBuffer(t *testing.T) {
	f, _ := useFake(t)
	assert.False(t, InputText("x", nil, 0))
	assert.Zero(t, f.Calls("InputText"))
}
