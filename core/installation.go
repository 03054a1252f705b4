package core

import (
	"path/filepath"
	"strings"
)

// VanillaLoader is the loader name of an unmodified game installation.
const VanillaLoader = "vanilla"

// InstallationMode says where an installation's resources live. Remote
// installations are managed by a server and are not eligible for direct
// file placement.
type InstallationMode string

const (
	ModeLocal  InstallationMode = "local"
	ModeRemote InstallationMode = "remote"
)

// Installation is a target game profile. The engine only reads it; profile
// records are owned by the profile store.
type Installation struct {
	Name          string
	GameVersion   string
	Loader        string
	LoaderVersion string
	ResourceDir   string
	Mode          InstallationMode
}

func (i *Installation) IsVanilla() bool {
	return strings.EqualFold(i.Loader, VanillaLoader)
}

// ResourceDirFor returns the directory files of the given type are placed in.
func (i *Installation) ResourceDirFor(packageType PackageType) string {
	return filepath.Join(i.ResourceDir, packageType.ResourceFolder())
}

// InstalledEntry is one file discovered in an installation's resource
// directory. Hash is the sha1 of the file contents.
type InstalledEntry struct {
	Hash      string
	ProjectID string
	FileName  string
	Disabled  bool
}
