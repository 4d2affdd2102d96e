//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"testing"

	"github.com/obinnaokechukwu/imgo/internal/handles"
)

func registerForTest(t *testing.T, v any) uintptr {
	t.Helper()
	id := handles.Register(v)
	t.Cleanup(func() { handles.Unregister(id) })
	return id
}
