// Package resolve computes the transitive set of missing dependencies for a
// project against a target installation. Resolution is a pure read: it
// performs no downloads and mutates no installed state.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/crafthub/depcraft/core"
	"github.com/crafthub/depcraft/index"
	"github.com/crafthub/depcraft/registry"
)

// maxCycles caps dependency fan-out depth; anything deeper is a broken
// registry graph rather than a real modpack.
const maxCycles = 20

type Resolver struct {
	registry  registry.Client
	installed *index.Index
	log       *zap.Logger
}

func New(reg registry.Client, installed *index.Index, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{registry: reg, installed: installed, log: log}
}

// ResolveMissing fetches the root project's detail and walks its declared
// dependencies breadth-first, in declaration order. Each project is visited
// at most once (first visit wins), so shared dependencies collapse and cycles
// terminate. Dependencies that are incompatible with the installation are
// inapplicable, not missing; dependencies with zero compatible releases are
// still reported so the caller can show "no version available".
func (r *Resolver) ResolveMissing(ctx context.Context, rootProjectID string, installation *core.Installation) (*core.DependencyResolution, error) {
	if installation == nil {
		return nil, core.ErrNoInstallation
	}
	if rootProjectID == "" {
		return nil, core.ErrEmptyProjectID
	}

	root, err := r.registry.FetchProjectDetail(ctx, rootProjectID)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{root.ID: true}
	queue := append([]string(nil), root.Dependencies...)
	var missing []core.MissingDependency

	cycles := 0
	for len(queue) > 0 && cycles < maxCycles {
		next := queue
		queue = nil

		for _, depID := range next {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if visited[depID] {
				continue
			}
			visited[depID] = true

			detail, err := r.registry.FetchProjectDetail(ctx, depID)
			if err != nil {
				if errors.Is(err, core.ErrProjectNotFound) {
					// A dependency the registry no longer knows must not
					// poison its siblings; it is reported in the log only.
					r.log.Warn("dependency missing from registry",
						zap.String("project", depID), zap.Error(err))
					continue
				}
				return nil, err
			}

			if !core.IsCompatible(detail, installation) {
				r.log.Debug("dependency incompatible with installation, skipping",
					zap.String("project", depID),
					zap.String("installation", installation.Name))
				continue
			}

			releases, err := r.registry.FetchCompatibleReleases(
				ctx, detail.ID, installation.GameVersion, installation.Loader, detail.PackageType)
			if err != nil {
				return nil, err
			}

			if r.isInstalled(detail, releases) {
				continue
			}

			missing = append(missing, core.MissingDependency{Detail: detail, Releases: releases})
			queue = append(queue, detail.Dependencies...)
		}
		cycles++
	}
	if len(queue) > 0 {
		return nil, fmt.Errorf("dependencies of %s recurse too deeply", rootProjectID)
	}

	return core.NewDependencyResolution(root, missing), nil
}

// isInstalled applies the package-type asymmetry: mods are judged by content
// hash of the default release's file, so reinstall checks survive renames;
// other types fall back to project identity.
func (r *Resolver) isInstalled(detail *core.ProjectDetail, releases []core.VersionRelease) bool {
	if detail.PackageType == core.PackageMod {
		sel := core.SelectDefaultRelease(releases)
		if sel == nil {
			return false
		}
		hash := core.CanonicalHash(sel)
		return hash != "" && r.installed.ContainsHash(hash)
	}
	return r.installed.ContainsProject(detail.ID)
}
