// Package registry talks to the content registry that hosts projects and
// their releases. The rest of the engine only sees the Client interface;
// the Modrinth implementation and the session cache live here.
package registry

import (
	"context"

	"github.com/crafthub/depcraft/core"
)

// Client fetches project metadata and compatible release lists.
//
// FetchProjectDetail returns a NotFoundError (wrapping core.ErrProjectNotFound)
// when the registry has no such project; callers surface that as a user error,
// never a crash. FetchCompatibleReleases returning an empty slice is valid and
// means "no compatible release".
type Client interface {
	FetchProjectDetail(ctx context.Context, projectID string) (*core.ProjectDetail, error)
	FetchCompatibleReleases(ctx context.Context, projectID, gameVersion, loader string, packageType core.PackageType) ([]core.VersionRelease, error)
}
