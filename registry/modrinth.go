package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"golang.org/x/exp/slices"

	"github.com/crafthub/depcraft/core"
)

// ModrinthClient implements Client against the Modrinth API.
type ModrinthClient struct {
	mr *modrinthApi.Client
}

func NewModrinthClient(httpClient *http.Client) *ModrinthClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	client := modrinthApi.NewClient(httpClient)
	client.UserAgent = core.UserAgent
	return &ModrinthClient{mr: client}
}

func (c *ModrinthClient) FetchProjectDetail(ctx context.Context, projectID string) (*core.ProjectDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	project, err := c.mr.Projects.Get(projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", projectID, err)
	}
	if project == nil || project.ID == nil {
		return nil, &core.NotFoundError{Kind: "project", ID: projectID}
	}

	detail := &core.ProjectDetail{
		Project: core.Project{
			ID:          *project.ID,
			Title:       str(project.Title),
			PackageType: mapPackageType(str(project.ProjectType), project.Loaders),
		},
		GameVersions: project.GameVersions,
		Loaders:      lowerAll(project.Loaders),
		ClientSide:   str(project.ClientSide),
		ServerSide:   str(project.ServerSide),
	}
	if detail.Title == "" && project.Slug != nil {
		detail.Title = *project.Slug
	}

	deps, err := c.declaredDependencies(ctx, *project.ID)
	if err != nil {
		return nil, err
	}
	detail.Dependencies = deps

	return detail, nil
}

// declaredDependencies reads the required dependencies off the project's
// newest release. Dependencies declared by version ID only are resolved to
// their project IDs in one batched lookup.
func (c *ModrinthClient) declaredDependencies(ctx context.Context, projectID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	versions, err := c.mr.Versions.ListVersions(projectID, modrinthApi.ListVersionsOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching versions of %s: %w", projectID, err)
	}
	if len(versions) == 0 {
		return nil, nil
	}

	var projectIDs []string
	var versionIDs []string
	for _, dep := range versions[0].Dependencies {
		if dep.DependencyType == nil || *dep.DependencyType != "required" {
			continue
		}
		switch {
		case dep.ProjectID != nil:
			projectIDs = append(projectIDs, *dep.ProjectID)
		case dep.VersionID != nil:
			versionIDs = append(versionIDs, *dep.VersionID)
		}
	}

	if len(versionIDs) > 0 {
		depVersions, err := c.mr.Versions.GetMultiple(versionIDs)
		if err != nil {
			return nil, fmt.Errorf("resolving version-pinned dependencies of %s: %w", projectID, err)
		}
		for _, v := range depVersions {
			if v.ProjectID != nil {
				projectIDs = append(projectIDs, *v.ProjectID)
			}
		}
	}

	slices.Sort(projectIDs)
	return slices.Compact(projectIDs), nil
}

func (c *ModrinthClient) FetchCompatibleReleases(ctx context.Context, projectID, gameVersion, loader string, packageType core.PackageType) ([]core.VersionRelease, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := modrinthApi.ListVersionsOptions{
		GameVersions: []string{gameVersion},
	}
	if loaders := releaseLoaderFilter(loader, packageType); len(loaders) > 0 {
		opts.Loaders = loaders
	}

	versions, err := c.mr.Versions.ListVersions(projectID, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching compatible versions of %s: %w", projectID, err)
	}

	releases := make([]core.VersionRelease, 0, len(versions))
	for _, v := range versions {
		if v.ID == nil {
			continue
		}
		releases = append(releases, mapRelease(v))
	}
	core.SortReleasesLatestFirst(releases)
	return releases, nil
}

// releaseLoaderFilter builds the server-side loader filter for a release
// query. Shaders are loader-agnostic so no filter is applied; datapacks and
// vanilla resourcepacks use their reserved loader tags.
func releaseLoaderFilter(loader string, packageType core.PackageType) []string {
	switch packageType {
	case core.PackageShader:
		return nil
	case core.PackageDatapack:
		return []string{"datapack"}
	case core.PackageResourcepack:
		if strings.EqualFold(loader, core.VanillaLoader) {
			return []string{"minecraft"}
		}
		return nil
	default:
		return []string{strings.ToLower(loader)}
	}
}

func mapRelease(v *modrinthApi.Version) core.VersionRelease {
	release := core.VersionRelease{
		ID:            str(v.ID),
		Name:          str(v.Name),
		VersionNumber: str(v.VersionNumber),
		Loaders:       lowerAll(v.Loaders),
		GameVersions:  v.GameVersions,
	}
	for _, f := range v.Files {
		if f == nil || f.URL == nil {
			continue
		}
		release.Files = append(release.Files, core.ReleaseFile{
			URL:      *f.URL,
			Filename: str(f.Filename),
			Hashes:   f.Hashes,
			Primary:  f.Primary != nil && *f.Primary,
		})
	}
	return release
}

// mapPackageType distinguishes datapacks, which Modrinth models as mods with
// the reserved "datapack" loader tag and no runtime loader support.
func mapPackageType(projectType string, loaders []string) core.PackageType {
	pt, err := core.ParsePackageType(projectType)
	if err != nil {
		pt = core.PackageMod
	}
	if pt == core.PackageMod && len(loaders) > 0 {
		onlyDatapack := true
		for _, l := range loaders {
			if !strings.EqualFold(l, "datapack") {
				onlyDatapack = false
				break
			}
		}
		if onlyDatapack {
			return core.PackageDatapack
		}
	}
	return pt
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
