//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"errors"
	"testing"

	"github.com/obinnaokechukwu/imgo/internal/fakeimgui"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useFake routes imgo through a fresh fake for the duration of the test and
// captures log output. Package state touched by tests is restored after.
func useFake(t *testing.T) (*fakeimgui.Fake, *logtest.Hook) {
	t.Helper()

	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	prevLogger := logger
	SetLogger(l)

	f := fakeimgui.New()
	prev := UseNative(f)

	prevSlot := slot
	slot = payloadSlot{}
	prevHandler := assertHandler
	assertHandler = defaultAssertHandler

	t.Cleanup(func() {
		current = prev
		slot = prevSlot
		assertHandler = prevHandler
		logger = prevLogger
	})
	return f, hook
}

func TestUseNativeInstallsAssertHook(t *testing.T) {
	f, _ := useFake(t)
	assert.Equal(t, 1, f.Calls("InstallAssertHook"))

	other := fakeimgui.New()
	prev := UseNative(other)
	assert.Same(t, f, prev)
	assert.Equal(t, 1, other.Calls("InstallAssertHook"))
}

func TestInitWithConfigRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TextInput.ResizeStep = -1
	err := InitWithConfig(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	cfg = DefaultConfig()
	cfg.Log.Format = "xml"
	assert.True(t, errors.Is(InitWithConfig(cfg), ErrInvalidConfig))
}

func TestSettingsForwarding(t *testing.T) {
	f, _ := useFake(t)
	f.SetIni("[Window][Main]\nPos=0,0\n")

	blob := SaveIniSettingsToMemory()
	assert.Equal(t, "[Window][Main]\nPos=0,0\n", blob)

	LoadIniSettingsFromMemory("[Window][Other]\n")
	assert.Equal(t, "[Window][Other]\n", SaveIniSettingsToMemory())

	path := t.TempDir() + "/imgui.ini"
	SaveIniSettingsToDisk(path)
	f.SetIni("")
	LoadIniSettingsFromDisk(path)
	assert.Equal(t, "[Window][Other]\n", SaveIniSettingsToMemory())
	assert.Equal(t, 1, f.Calls("SaveIniSettingsToDisk"))
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	prev := logger
	defer func() { logger = prev }()

	SetLogger(nil)
	_, ok := Logger().(*logrus.Logger)
	assert.True(t, ok)
}

func TestConfigureLogging(t *testing.T) {
	prev := logger
	defer func() { logger = prev }()

	l := logrus.New()
	SetLogger(l)
	require.NoError(t, configureLogging(LogConfig{Level: "debug", Format: "json"}))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	_, isJSON := l.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	assert.ErrorIs(t, configureLogging(LogConfig{Level: "nope"}), ErrInvalidConfig)
	assert.ErrorIs(t, configureLogging(LogConfig{Level: "info", Format: "xml"}), ErrInvalidConfig)
}
