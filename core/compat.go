package core

// Loader tags a project declares to mark compatibility with non-loader
// content types.
const (
	datapackLoaderTag = "datapack"
	vanillaLoaderTag  = "minecraft"
)

// IsCompatible decides whether a project can be installed into the given
// installation. The rules are package-type specific: resource packs and
// shaders are loader-agnostic in practice, mods and datapacks are not.
func IsCompatible(detail *ProjectDetail, installation *Installation) bool {
	switch detail.PackageType {
	case PackageDatapack:
		return installation.IsVanilla() &&
			detail.SupportsGameVersion(installation.GameVersion) &&
			detail.SupportsLoader(datapackLoaderTag)
	case PackageShader:
		// Shader loaders are installed as mods themselves, so any modded
		// installation with a matching game version can host a shader.
		return !installation.IsVanilla() &&
			detail.SupportsGameVersion(installation.GameVersion)
	case PackageResourcepack:
		if !detail.SupportsGameVersion(installation.GameVersion) {
			return false
		}
		if installation.IsVanilla() {
			return detail.SupportsLoader(vanillaLoaderTag)
		}
		return true
	default:
		return detail.SupportsGameVersion(installation.GameVersion) &&
			detail.SupportsLoader(installation.Loader)
	}
}
