package core

import "strings"

// DisabledSuffix is the reserved file name suffix marking a resource as
// disabled. Enabled/disabled state is derived purely from the file name, so
// a crash mid-rename leaves the file in one valid state or the other.
const DisabledSuffix = ".disabled"

func IsDisabled(fileName string) bool {
	return strings.HasSuffix(fileName, DisabledSuffix)
}

// DisabledName returns the file name with the disabled suffix applied.
// Already-disabled names are returned unchanged.
func DisabledName(fileName string) string {
	if IsDisabled(fileName) {
		return fileName
	}
	return fileName + DisabledSuffix
}

// EnabledName returns the file name with the disabled suffix stripped.
func EnabledName(fileName string) string {
	return strings.TrimSuffix(fileName, DisabledSuffix)
}

// ToggleName flips the enabled/disabled form of a file name.
func ToggleName(fileName string) string {
	if IsDisabled(fileName) {
		return EnabledName(fileName)
	}
	return DisabledName(fileName)
}
