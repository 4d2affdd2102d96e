//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"fmt"
	"reflect"
	"strings"
	"weak"

	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// Cond mirrors ImGuiCond.
type Cond int32

const (
	CondNone         Cond = 0
	CondAlways       Cond = 1 << 0
	CondOnce         Cond = 1 << 1
	CondFirstUseEver Cond = 1 << 2
	CondAppearing    Cond = 1 << 3
)

// DragDropFlags mirrors ImGuiDragDropFlags.
type DragDropFlags int32

const (
	DragDropFlagsNone                     DragDropFlags = 0
	DragDropFlagsSourceNoPreviewTooltip   DragDropFlags = 1 << 0
	DragDropFlagsSourceNoDisableHover     DragDropFlags = 1 << 1
	DragDropFlagsSourceNoHoldToOpenOthers DragDropFlags = 1 << 2
	DragDropFlagsSourceAllowNullID        DragDropFlags = 1 << 3
	DragDropFlagsSourceExtern             DragDropFlags = 1 << 4
	DragDropFlagsAcceptBeforeDelivery     DragDropFlags = 1 << 10
	DragDropFlagsAcceptNoDrawDefaultRect  DragDropFlags = 1 << 11
	DragDropFlagsAcceptNoPreviewTooltip   DragDropFlags = 1 << 12
	DragDropFlagsAcceptPeekOnly                         = DragDropFlagsAcceptBeforeDelivery | DragDropFlagsAcceptNoDrawDefaultRect
)

// MaxTagLength is the longest payload tag the native library stores.
const MaxTagLength = 32

// placeholder is what crosses the native transport in place of the Go
// value. The library rejects empty payload data, so it is one byte.
var placeholder = []byte{0}

// payloadSlot remembers the Go value behind the payload currently offered.
// It holds the value weakly: a value nothing else references may be
// collected while in flight, after which it resolves to nil.
type payloadSlot struct {
	tag        string
	ref        any // weak.Pointer[T], compared for identity
	resolve    func() any
	generation uint64
}

var slot payloadSlot

// Offer starts (or refreshes) a drag carrying payload under tag. Call it
// every frame between BeginDragDropSource and EndDragDropSource. An empty
// tag uses TypeTag[T](). It returns the native result: true once a target
// has accepted the payload.
func Offer[T any](tag string, payload *T, cond Cond) bool {
	if tag == "" {
		tag = TypeTag[T]()
	}
	if !checkTag("Offer", tag) {
		return false
	}

	ref := weak.Make(payload)
	if slot.tag != tag || slot.ref != any(ref) || slot.resolve == nil {
		slot = payloadSlot{
			tag:        tag,
			ref:        ref,
			resolve:    resolver(ref),
			generation: slot.generation + 1,
		}
	}
	return current.SetDragDropPayload(tag, placeholder, int32(cond))
}

// OfferType offers payload under the tag derived from T.
func OfferType[T any](payload *T, cond Cond) bool {
	return Offer("", payload, cond)
}

func resolver[T any](ref weak.Pointer[T]) func() any {
	return func() any {
		if p := ref.Value(); p != nil {
			return p
		}
		return nil
	}
}

// Accept returns the offered value when the native library delivers a
// payload tagged tag to the current target and the value is a *T. It
// returns nil otherwise, including when the value has been collected.
// Call it between BeginDragDropTarget and EndDragDropTarget. An empty tag
// uses TypeTag[T]().
func Accept[T any](tag string, flags DragDropFlags) *T {
	if tag == "" {
		tag = TypeTag[T]()
	}
	if !checkTag("Accept", tag) {
		return nil
	}
	if !current.AcceptDragDropPayload(tag, int32(flags)) {
		return nil
	}
	if slot.tag != tag {
		return nil
	}
	return resolveAs[T]()
}

// AcceptType accepts a payload offered under the tag derived from T.
func AcceptType[T any](flags DragDropFlags) *T {
	return Accept[T]("", flags)
}

// Peek returns the value being dragged, if any, without accepting it.
// A native drag carrying some other tag yields nil.
func Peek() any {
	if slot.resolve == nil || !current.IsDragDropPayloadType(slot.tag) {
		return nil
	}
	return slot.resolve()
}

// PeekTag is Peek restricted to payloads carrying tag.
func PeekTag(tag string) any {
	if slot.resolve == nil || slot.tag != tag || !current.IsDragDropPayloadType(tag) {
		return nil
	}
	return slot.resolve()
}

// PeekAs returns the value being dragged under T's derived tag, if any.
func PeekAs[T any]() *T {
	tag := TypeTag[T]()
	if slot.resolve == nil || slot.tag != tag || !current.IsDragDropPayloadType(tag) {
		return nil
	}
	return resolveAs[T]()
}

// PayloadGeneration increases each time a different value or tag is
// offered. It is 0 before the first offer.
func PayloadGeneration() uint64 {
	return slot.generation
}

func resolveAs[T any]() *T {
	if slot.resolve == nil {
		return nil
	}
	p, _ := slot.resolve().(*T)
	return p
}

// TypeTag derives a payload tag from T: "go:" followed by the hex xxh3 hash
// of T's package path and name. It is stable for a given T.
func TypeTag[T any]() string {
	t := reflect.TypeFor[T]()
	return fmt.Sprintf("go:%016x", xxh3.HashString(t.PkgPath()+"."+t.String()))
}

// checkTag rejects tags the native library would assert on or reserves.
func checkTag(function, tag string) bool {
	var reason string
	switch {
	case len(tag) > MaxTagLength:
		reason = "payload tag longer than 32 bytes"
	case strings.HasPrefix(tag, "_"):
		reason = "payload tags starting with '_' are reserved"
	default:
		return true
	}
	logger.WithFields(logrus.Fields{
		"function": function,
		"tag":      tag,
	}).Warn(reason)
	return false
}

// BeginDragDropSource marks the last item as a drag source. When it returns
// true, call Offer and then EndDragDropSource.
func BeginDragDropSource(flags DragDropFlags) bool {
	return current.BeginDragDropSource(int32(flags))
}

func EndDragDropSource() {
	current.EndDragDropSource()
}

// BeginDragDropTarget marks the last item as a drop target. When it returns
// true, call Accept and then EndDragDropTarget.
func BeginDragDropTarget() bool {
	return current.BeginDragDropTarget()
}

func EndDragDropTarget() {
	current.EndDragDropTarget()
}
