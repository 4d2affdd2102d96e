//go:build !ios && !android && (amd64 || arm64)

// Package handles maps Go values to integer IDs that can travel through C
// memory, typically as the user_data argument of a native callback.
//
// Go pointers must not be stored in native memory, so a value is registered
// here for the duration of a native call and the callback trampoline looks it
// up again by ID. IDs are never reused and zero is never issued.
package handles

import (
	"sync"
	"sync/atomic"
)

var (
	entries sync.Map // map[uintptr]any
	seq     atomic.Uintptr
	live    atomic.Int64
)

// Register stores v and returns its ID.
func Register(v any) uintptr {
	id := seq.Add(1)
	entries.Store(id, v)
	live.Add(1)
	return id
}

// Lookup returns the value registered under id, or nil.
func Lookup(id uintptr) any {
	if id == 0 {
		return nil
	}
	v, ok := entries.Load(id)
	if !ok {
		return nil
	}
	return v
}

// Unregister forgets id. Unknown IDs are ignored.
func Unregister(id uintptr) {
	if _, ok := entries.LoadAndDelete(id); ok {
		live.Add(-1)
	}
}

// Count returns the number of registered values. Tests use it to detect
// sessions that were not released.
func Count() int {
	return int(live.Load())
}
