//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imgo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "cimgui", cfg.Library.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultResizeStep, cfg.TextInput.ResizeStep)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeConfig(t, `
[library]
path = "/opt/cimgui/lib"

[shim]
dir = "/opt/imgoshim"
required = true

[log]
level = "debug"
format = "json"

[text_input]
resize_step = 64
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/cimgui/lib", cfg.Library.Path)
	assert.Equal(t, "cimgui", cfg.Library.Name, "unset keys keep defaults")
	assert.Equal(t, "/opt/imgoshim", cfg.Shim.Dir)
	assert.True(t, cfg.Shim.Required)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 64, cfg.TextInput.ResizeStep)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[library]\npath = \"/from/file\"\n")
	t.Setenv(EnvLibraryPath, "/from/env")
	t.Setenv(EnvLibraryName, "cimgui_docking")
	t.Setenv(EnvShimDir, "/shim/env")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvResizeStep, "3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Library.Path)
	assert.Equal(t, "cimgui_docking", cfg.Library.Name)
	assert.Equal(t, "/shim/env", cfg.Shim.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3, cfg.TextInput.ResizeStep)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[library\n"},
		{"unknown key", "[library]\nfoo = 1\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad format", "[log]\nformat = \"xml\"\n"},
		{"negative step", "[text_input]\nresize_step = -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), err.Error())
		})
	}
}

func TestLoadConfigBadEnvStep(t *testing.T) {
	t.Setenv(EnvResizeStep, "lots")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestConfigMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Library.Path = "/x"
	data, err := cfg.Marshal()
	require.NoError(t, err)

	path := writeConfig(t, string(data))
	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
