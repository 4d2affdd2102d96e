//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// TextBuffer is the editable text storage handed to InputText.
//
// The bytes live in Go memory and are passed to native by address for the
// duration of one edit call. When Resizable is set, native may ask for more
// room mid-call and the buffer grows to the requested length plus
// ResizeStep. When AllowedChars is non-empty, only those characters can be
// typed.
type TextBuffer struct {
	// data always holds Cap()+1 bytes so the text can be NUL-terminated.
	data []byte
	size int

	Resizable    bool
	ResizeStep   int
	AllowedChars string

	dirty   bool
	resized bool
}

// NewTextBuffer returns a fixed-capacity buffer holding text. capacity is
// raised to len(text) if smaller.
func NewTextBuffer(text string, capacity int) *TextBuffer {
	b := &TextBuffer{ResizeStep: resizeStep}
	b.alloc(max(capacity, len(text)))
	b.Set(text)
	return b
}

// NewResizableTextBuffer returns a growable buffer holding text.
func NewResizableTextBuffer(text string) *TextBuffer {
	b := &TextBuffer{Resizable: true, ResizeStep: resizeStep}
	b.alloc(len(text) + b.ResizeStep)
	b.Set(text)
	return b
}

func (b *TextBuffer) alloc(capacity int) {
	data := make([]byte, capacity+1)
	copy(data, b.data[:min(b.size, capacity)])
	b.data = data
	b.size = min(b.size, capacity)
}

func (b *TextBuffer) ensure() {
	if len(b.data) == 0 {
		b.data = make([]byte, 1)
	}
}

// String returns the current text.
func (b *TextBuffer) String() string {
	return string(b.data[:b.size])
}

// Bytes returns the current text without copying. The slice is only valid
// until the next edit call or Set.
func (b *TextBuffer) Bytes() []byte {
	return b.data[:b.size:b.size]
}

// Set replaces the text, growing the buffer if needed. Set does not touch
// the dirty flag.
func (b *TextBuffer) Set(text string) {
	if len(text) > b.Cap() {
		step := 0
		if b.Resizable {
			step = b.ResizeStep
		}
		b.alloc(len(text) + step)
	}
	b.ensure()
	n := copy(b.data, text)
	b.data[n] = 0
	b.size = n
}

// Len returns the text length in bytes.
func (b *TextBuffer) Len() int {
	return b.size
}

// Cap returns how many bytes of text fit without growing.
func (b *TextBuffer) Cap() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data) - 1
}

// Resize sets the capacity. Text that no longer fits is cut at the last
// whole character.
func (b *TextBuffer) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity < b.size {
		for capacity > 0 && !utf8.RuneStart(b.data[capacity]) {
			capacity--
		}
		b.size = capacity
	}
	b.alloc(capacity)
}

// Clear empties the text and keeps the capacity.
func (b *TextBuffer) Clear() {
	b.ensure()
	b.data[0] = 0
	b.size = 0
}

// IsDirty reports whether the most recent edit call changed the text.
func (b *TextBuffer) IsDirty() bool {
	return b.dirty
}

// ClearDirty resets the dirty flag.
func (b *TextBuffer) ClearDirty() {
	b.dirty = false
}

// WasResized reports whether the most recent edit call grew the buffer.
func (b *TextBuffer) WasResized() bool {
	return b.resized
}

// allows reports whether r may be typed.
func (b *TextBuffer) allows(r rune) bool {
	return b.AllowedChars == "" || strings.ContainsRune(b.AllowedChars, r)
}

// grow replaces the storage with room for at least requested bytes of text,
// keeping the current contents.
func (b *TextBuffer) grow(requested int) {
	data := make([]byte, requested+max(b.ResizeStep, 0)+1)
	copy(data, b.data)
	b.data = data
	b.resized = true
}

// rescan recomputes the length after native wrote into data.
func (b *TextBuffer) rescan() {
	n := bytes.IndexByte(b.data, 0)
	if n < 0 {
		n = len(b.data) - 1
		b.data[n] = 0
	}
	b.size = n
}
