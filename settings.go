//go:build !ios && !android && (amd64 || arm64)

package imgo

// SaveIniSettingsToMemory returns the window and table settings in the
// library's ini format. The text is opaque to imgo.
func SaveIniSettingsToMemory() string {
	return string(current.SaveIniSettingsToMemory())
}

// LoadIniSettingsFromMemory restores settings produced by
// SaveIniSettingsToMemory. Call it before the first NewFrame.
func LoadIniSettingsFromMemory(data string) {
	current.LoadIniSettingsFromMemory([]byte(data))
}

func SaveIniSettingsToDisk(path string) {
	current.SaveIniSettingsToDisk(path)
}

func LoadIniSettingsFromDisk(path string) {
	current.LoadIniSettingsFromDisk(path)
}
