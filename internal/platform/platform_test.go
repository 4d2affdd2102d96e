//go:build !ios && !android && (amd64 || arm64)

package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportsStructByValue(t *testing.T) {
	darwin := runtime.GOOS == "darwin" && (runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64")
	assert.Equal(t, darwin, SupportsStructByValue)
}

func TestIs64Bit(t *testing.T) {
	assert.True(t, Is64Bit)
}

func TestLibraryFileName(t *testing.T) {
	tests := []struct {
		goos string
		in   string
		want string
	}{
		{"linux", "cimgui", "libcimgui.so"},
		{"linux", "libcimgui.so", "libcimgui.so"},
		{"darwin", "cimgui", "libcimgui.dylib"},
		{"windows", "cimgui", "cimgui.dll"},
		{"windows", "imgoshim.dll", "imgoshim.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"_"+tt.in, func(t *testing.T) {
			if runtime.GOOS != tt.goos {
				t.Skipf("test only applies to %s", tt.goos)
			}
			assert.Equal(t, tt.want, LibraryFileName(tt.in))
		})
	}
}

func TestCandidateNamesPreferPointerWidth(t *testing.T) {
	names := CandidateNames("cimgui")
	if assert.Len(t, names, 2) {
		assert.Equal(t, LibraryFileName("cimgui64"), names[0])
		assert.Equal(t, LibraryFileName("cimgui"), names[1])
	}
}
