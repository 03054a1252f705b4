package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func detail(packageType PackageType, gameVersions, loaders []string) *ProjectDetail {
	return &ProjectDetail{
		Project:      Project{ID: "p1", Title: "Test Project", PackageType: packageType},
		GameVersions: gameVersions,
		Loaders:      loaders,
	}
}

func installation(gameVersion, loader string) *Installation {
	return &Installation{
		Name:        "test",
		GameVersion: gameVersion,
		Loader:      loader,
		ResourceDir: "/tmp/test",
		Mode:        ModeLocal,
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name   string
		detail *ProjectDetail
		inst   *Installation
		want   bool
	}{
		{
			"mod matching version and loader",
			detail(PackageMod, []string{"1.20.1"}, []string{"fabric"}),
			installation("1.20.1", "fabric"),
			true,
		},
		{
			"mod loader is case-insensitive",
			detail(PackageMod, []string{"1.20.1"}, []string{"fabric"}),
			installation("1.20.1", "Fabric"),
			true,
		},
		{
			"mod wrong loader",
			detail(PackageMod, []string{"1.20.1"}, []string{"fabric"}),
			installation("1.20.1", "forge"),
			false,
		},
		{
			"mod wrong game version",
			detail(PackageMod, []string{"1.20.1"}, []string{"fabric"}),
			installation("1.19.4", "fabric"),
			false,
		},
		{
			"shader on fabric",
			detail(PackageShader, []string{"1.20"}, []string{"iris"}),
			installation("1.20", "fabric"),
			true,
		},
		{
			"shader on forge ignores loader identity",
			detail(PackageShader, []string{"1.20"}, []string{"iris"}),
			installation("1.20", "forge"),
			true,
		},
		{
			"shader not on vanilla",
			detail(PackageShader, []string{"1.20"}, []string{"iris"}),
			installation("1.20", "vanilla"),
			false,
		},
		{
			"shader wrong game version",
			detail(PackageShader, []string{"1.20"}, []string{"iris"}),
			installation("1.19", "fabric"),
			false,
		},
		{
			"resourcepack on vanilla with minecraft tag",
			detail(PackageResourcepack, []string{"1.20.1"}, []string{"minecraft"}),
			installation("1.20.1", "vanilla"),
			true,
		},
		{
			"resourcepack on vanilla without minecraft tag",
			detail(PackageResourcepack, []string{"1.20.1"}, []string{"canvas"}),
			installation("1.20.1", "vanilla"),
			false,
		},
		{
			"resourcepack on fabric only needs game version",
			detail(PackageResourcepack, []string{"1.20.1"}, []string{"canvas"}),
			installation("1.20.1", "fabric"),
			true,
		},
		{
			"datapack on vanilla with datapack tag",
			detail(PackageDatapack, []string{"1.20.1"}, []string{"datapack"}),
			installation("1.20.1", "vanilla"),
			true,
		},
		{
			"datapack not on modded loader",
			detail(PackageDatapack, []string{"1.20.1"}, []string{"datapack"}),
			installation("1.20.1", "fabric"),
			false,
		},
		{
			"datapack without datapack tag",
			detail(PackageDatapack, []string{"1.20.1"}, []string{"fabric"}),
			installation("1.20.1", "vanilla"),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompatible(tt.detail, tt.inst))
		})
	}
}
