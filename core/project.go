package core

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// PackageType is the kind of content a project distributes. It decides which
// resource folder a file lands in and which compatibility rules apply.
type PackageType string

const (
	PackageMod          PackageType = "mod"
	PackageDatapack     PackageType = "datapack"
	PackageShader       PackageType = "shader"
	PackageResourcepack PackageType = "resourcepack"
	PackageModpack      PackageType = "modpack"
)

// DirectInstallTypes are the package types that are placed as single files in
// an installation's resource directory. Modpacks are expanded elsewhere and
// never placed directly.
var DirectInstallTypes = []PackageType{
	PackageMod,
	PackageDatapack,
	PackageShader,
	PackageResourcepack,
}

func ParsePackageType(s string) (PackageType, error) {
	switch strings.ToLower(s) {
	case "mod":
		return PackageMod, nil
	case "datapack":
		return PackageDatapack, nil
	case "shader", "shaderpack":
		return PackageShader, nil
	case "resourcepack":
		return PackageResourcepack, nil
	case "modpack":
		return PackageModpack, nil
	}
	return "", fmt.Errorf("unknown package type %q", s)
}

// ResourceFolder returns the sub-directory of an installation where files of
// this type are placed.
func (p PackageType) ResourceFolder() string {
	switch p {
	case PackageDatapack:
		return "datapacks"
	case PackageShader:
		return "shaderpacks"
	case PackageResourcepack:
		return "resourcepacks"
	default:
		return "mods"
	}
}

func (p PackageType) DirectInstall() bool {
	return slices.Contains(DirectInstallTypes, p)
}

// Project is the minimal registry identity of a content package.
type Project struct {
	ID              string
	Title           string
	PackageType     PackageType
	CurrentFileName string // set once the project is materialized on disk
}

// ProjectDetail is the extended metadata fetched per resolution session.
type ProjectDetail struct {
	Project

	GameVersions []string
	Loaders      []string // lower-cased
	Dependencies []string // declared dependency project IDs
	ClientSide   string
	ServerSide   string
}

func (d *ProjectDetail) SupportsGameVersion(version string) bool {
	return slices.Contains(d.GameVersions, version)
}

func (d *ProjectDetail) SupportsLoader(loader string) bool {
	return slices.Contains(d.Loaders, strings.ToLower(loader))
}

// ReleaseFile is one downloadable artifact of a release. Its hash is the
// canonical identity used for installed-state checks.
type ReleaseFile struct {
	URL      string
	Filename string
	Hashes   map[string]string
	Primary  bool
}

// VersionRelease is one published version of a project.
type VersionRelease struct {
	ID            string
	Name          string
	VersionNumber string
	Loaders       []string
	GameVersions  []string
	Files         []ReleaseFile
}
