package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafthub/depcraft/core"
)

func TestMapPackageType(t *testing.T) {
	tests := []struct {
		name        string
		projectType string
		loaders     []string
		want        core.PackageType
	}{
		{"plain mod", "mod", []string{"fabric", "forge"}, core.PackageMod},
		{"datapack modeled as mod", "mod", []string{"datapack"}, core.PackageDatapack},
		{"datapack tag case-insensitive", "mod", []string{"Datapack"}, core.PackageDatapack},
		{"mod with datapack flavour stays mod", "mod", []string{"fabric", "datapack"}, core.PackageMod},
		{"shader", "shader", []string{"iris"}, core.PackageShader},
		{"resourcepack", "resourcepack", []string{"minecraft"}, core.PackageResourcepack},
		{"modpack", "modpack", []string{"fabric"}, core.PackageModpack},
		{"unknown type defaults to mod", "plugin", []string{"paper"}, core.PackageMod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapPackageType(tt.projectType, tt.loaders))
		})
	}
}

func TestReleaseLoaderFilter(t *testing.T) {
	tests := []struct {
		name        string
		loader      string
		packageType core.PackageType
		want        []string
	}{
		{"mod filters by loader", "Fabric", core.PackageMod, []string{"fabric"}},
		{"shader is loader-agnostic", "fabric", core.PackageShader, nil},
		{"datapack uses reserved tag", "vanilla", core.PackageDatapack, []string{"datapack"}},
		{"vanilla resourcepack uses minecraft tag", "vanilla", core.PackageResourcepack, []string{"minecraft"}},
		{"modded resourcepack is unfiltered", "fabric", core.PackageResourcepack, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, releaseLoaderFilter(tt.loader, tt.packageType))
		})
	}
}

type countingClient struct {
	detailCalls  int
	releaseCalls int
}

func (c *countingClient) FetchProjectDetail(ctx context.Context, projectID string) (*core.ProjectDetail, error) {
	c.detailCalls++
	if projectID == "missing" {
		return nil, &core.NotFoundError{Kind: "project", ID: projectID}
	}
	return &core.ProjectDetail{
		Project: core.Project{ID: projectID, Title: projectID, PackageType: core.PackageMod},
	}, nil
}

func (c *countingClient) FetchCompatibleReleases(ctx context.Context, projectID, gameVersion, loader string, packageType core.PackageType) ([]core.VersionRelease, error) {
	c.releaseCalls++
	return []core.VersionRelease{{ID: projectID + "-v1", VersionNumber: "1.0.0"}}, nil
}

func TestCachedClientCollapsesRepeatFetches(t *testing.T) {
	inner := &countingClient{}
	c := NewCachedClient(inner)
	ctx := context.Background()

	detail, err := c.FetchProjectDetail(ctx, "sodium")
	require.NoError(t, err)
	assert.Equal(t, "sodium", detail.ID)
	c.Wait()

	_, err = c.FetchProjectDetail(ctx, "sodium")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.detailCalls, "second fetch served from cache")

	_, err = c.FetchProjectDetail(ctx, "lithium")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.detailCalls)
}

func TestCachedClientDoesNotCacheErrors(t *testing.T) {
	inner := &countingClient{}
	c := NewCachedClient(inner)
	ctx := context.Background()

	_, err := c.FetchProjectDetail(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrProjectNotFound)
	c.Wait()

	_, err = c.FetchProjectDetail(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrProjectNotFound)
	assert.Equal(t, 2, inner.detailCalls, "failures are retried, not cached")
}

func TestCachedClientKeysReleasesByQuery(t *testing.T) {
	inner := &countingClient{}
	c := NewCachedClient(inner)
	ctx := context.Background()

	_, err := c.FetchCompatibleReleases(ctx, "sodium", "1.20.1", "fabric", core.PackageMod)
	require.NoError(t, err)
	c.Wait()

	_, err = c.FetchCompatibleReleases(ctx, "sodium", "1.20.1", "fabric", core.PackageMod)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.releaseCalls)

	// a different game version is a different query
	_, err = c.FetchCompatibleReleases(ctx, "sodium", "1.19.4", "fabric", core.PackageMod)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.releaseCalls)
}
