//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"runtime"

	"github.com/obinnaokechukwu/imgo/internal/native"
)

// InputTextFlags mirrors ImGuiInputTextFlags.
type InputTextFlags int32

const (
	InputTextFlagsNone                InputTextFlags = InputTextFlags(native.InputTextFlagsNone)
	InputTextFlagsCharsDecimal        InputTextFlags = InputTextFlags(native.InputTextFlagsCharsDecimal)
	InputTextFlagsCharsHexadecimal    InputTextFlags = InputTextFlags(native.InputTextFlagsCharsHexadecimal)
	InputTextFlagsCharsUppercase      InputTextFlags = InputTextFlags(native.InputTextFlagsCharsUppercase)
	InputTextFlagsCharsNoBlank        InputTextFlags = InputTextFlags(native.InputTextFlagsCharsNoBlank)
	InputTextFlagsAutoSelectAll       InputTextFlags = InputTextFlags(native.InputTextFlagsAutoSelectAll)
	InputTextFlagsEnterReturnsTrue    InputTextFlags = InputTextFlags(native.InputTextFlagsEnterReturnsTrue)
	InputTextFlagsAllowTabInput       InputTextFlags = InputTextFlags(native.InputTextFlagsAllowTabInput)
	InputTextFlagsCtrlEnterForNewLine InputTextFlags = InputTextFlags(native.InputTextFlagsCtrlEnterForNewLine)
	InputTextFlagsNoHorizontalScroll  InputTextFlags = InputTextFlags(native.InputTextFlagsNoHorizontalScroll)
	InputTextFlagsAlwaysOverwrite     InputTextFlags = InputTextFlags(native.InputTextFlagsAlwaysOverwrite)
	InputTextFlagsReadOnly            InputTextFlags = InputTextFlags(native.InputTextFlagsReadOnly)
	InputTextFlagsPassword            InputTextFlags = InputTextFlags(native.InputTextFlagsPassword)
	InputTextFlagsNoUndoRedo          InputTextFlags = InputTextFlags(native.InputTextFlagsNoUndoRedo)
	InputTextFlagsCharsScientific     InputTextFlags = InputTextFlags(native.InputTextFlagsCharsScientific)
)

// Callback flags are owned by TextBuffer and derived from its settings.
const hookFlags = native.InputTextFlagsCallbackCharFilter | native.InputTextFlagsCallbackResize

// InputText edits buf in a single-line field. It returns true when the text
// changed during this call.
func InputText(label string, buf *TextBuffer, flags InputTextFlags) bool {
	return editText(&native.InputTextCall{Label: label}, buf, flags)
}

// InputTextMultiline edits buf in a multi-line box of the given size.
// A zero size uses the library default.
func InputTextMultiline(label string, buf *TextBuffer, width, height float32, flags InputTextFlags) bool {
	return editText(&native.InputTextCall{
		Label:     label,
		Multiline: true,
		Width:     width,
		Height:    height,
	}, buf, flags)
}

// InputTextWithHint shows hint while buf is empty.
func InputTextWithHint(label, hint string, buf *TextBuffer, flags InputTextFlags) bool {
	return editText(&native.InputTextCall{
		Label:   label,
		Hint:    hint,
		HasHint: true,
	}, buf, flags)
}

// editSession holds the state shared between one edit call and the
// callbacks native makes while it runs.
type editSession struct {
	buf    *TextBuffer
	pinner runtime.Pinner
}

func editText(call *native.InputTextCall, buf *TextBuffer, flags InputTextFlags) bool {
	if buf == nil {
		return false
	}
	buf.ensure()
	buf.dirty = false
	buf.resized = false

	s := &editSession{buf: buf}
	defer s.pinner.Unpin()
	s.pinner.Pin(&buf.data[0])

	call.Buf = &buf.data[0]
	call.BufSize = int32(len(buf.data))
	call.Flags = int32(flags) &^ hookFlags
	if buf.Resizable {
		call.Flags |= native.InputTextFlagsCallbackResize
	}
	if buf.AllowedChars != "" {
		call.Flags |= native.InputTextFlagsCallbackCharFilter
	}
	if call.Flags&hookFlags != 0 {
		call.Callback = s.callback
	}

	changed := current.InputText(call)
	if changed {
		buf.rescan()
		buf.dirty = true
	}
	return changed
}

// callback runs nested inside the native edit call.
func (s *editSession) callback(data *native.InputTextCallbackData) int32 {
	switch data.EventFlag {
	case native.InputTextFlagsCallbackCharFilter:
		if !s.buf.allows(rune(data.EventChar)) {
			return 1
		}
	case native.InputTextFlagsCallbackResize:
		if int(data.BufTextLen) <= s.buf.Cap() {
			return 0
		}
		s.buf.grow(int(data.BufTextLen))
		s.pinner.Pin(&s.buf.data[0])
		data.Buf = &s.buf.data[0]
		data.BufSize = int32(len(s.buf.data))
	}
	return 0
}
