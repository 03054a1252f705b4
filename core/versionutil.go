package core

import (
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/unascribed/FlexVer/go/flexver"
)

// CompareVersions orders two version number strings. Semver is used when both
// sides parse as semver; FlexVer handles everything else (snapshot builds,
// loader-suffixed numbers and other registry oddities).
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return int(flexver.Compare(a, b))
}

// SortReleasesLatestFirst orders releases by descending version number. The
// registry already returns newest-first; this re-establishes the invariant
// after merging release lists from multiple queries.
func SortReleasesLatestFirst(releases []VersionRelease) {
	sort.SliceStable(releases, func(i, j int) bool {
		return CompareVersions(releases[i].VersionNumber, releases[j].VersionNumber) > 0
	})
}

// SortDescending sorts version strings newest-first.
func SortDescending(versions []string) []string {
	flexver.VersionSlice(versions).Sort()
	for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
		versions[i], versions[j] = versions[j], versions[i]
	}
	return versions
}
