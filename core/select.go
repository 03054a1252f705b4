package core

// SelectDefaultRelease returns the default release choice from a compatible
// release list: the first entry. The registry returns releases newest-first,
// so this is "latest compatible" — a default the user may override, not a
// best-fit guarantee.
func SelectDefaultRelease(releases []VersionRelease) *VersionRelease {
	if len(releases) == 0 {
		return nil
	}
	return &releases[0]
}

// PrimaryFile returns the file flagged primary, or the first file when no
// flag is set. Returns nil for a release without files.
func PrimaryFile(release *VersionRelease) *ReleaseFile {
	if release == nil || len(release.Files) == 0 {
		return nil
	}
	file := &release.Files[0]
	for i := range release.Files {
		if release.Files[i].Primary {
			file = &release.Files[i]
		}
	}
	return file
}

// BestHash picks the most preferred hash a file carries.
func BestHash(file *ReleaseFile) (format string, value string) {
	if file == nil {
		return "", ""
	}
	for _, f := range PreferredHashList {
		if v, ok := file.Hashes[f]; ok && v != "" {
			return f, v
		}
	}
	return "", ""
}

// CanonicalHash is the sha1 identity of a release's primary file, used for
// installed-state checks. Empty when the release has no hashed file.
func CanonicalHash(release *VersionRelease) string {
	file := PrimaryFile(release)
	if file == nil {
		return ""
	}
	return file.Hashes[HashFormatSHA1]
}
