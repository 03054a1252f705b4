package orchestrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/crafthub/depcraft/core"
)

// UpdateCheck is the result of comparing an installed file against the latest
// compatible release.
type UpdateCheck struct {
	// UpdateAvailable is true when the installed file's hash differs from the
	// latest compatible release's primary file hash.
	UpdateAvailable bool
	// UpdateString details the change, e.g. "old-1.0.jar -> old-1.1.jar".
	UpdateString string
	// Latest carries the release to install, so PerformUpdate doesn't query
	// the registry again.
	Latest *core.VersionRelease
}

// CheckUpdate compares an installed entry's content hash against the latest
// compatible release. Entries without a recorded project identity cannot be
// checked.
func (o *Orchestrator) CheckUpdate(ctx context.Context, entry core.InstalledEntry, packageType core.PackageType, installation *core.Installation) (UpdateCheck, error) {
	if installation == nil {
		return UpdateCheck{}, core.ErrNoInstallation
	}
	if entry.ProjectID == "" {
		return UpdateCheck{}, fmt.Errorf("no project identity recorded for %s", entry.FileName)
	}

	releases, err := o.registry.FetchCompatibleReleases(
		ctx, entry.ProjectID, installation.GameVersion, installation.Loader, packageType)
	if err != nil {
		return UpdateCheck{}, err
	}
	latest := core.SelectDefaultRelease(releases)
	if latest == nil {
		// Nothing compatible to move to; the install is as current as it can be.
		return UpdateCheck{}, nil
	}

	latestHash := core.CanonicalHash(latest)
	if latestHash == "" || latestHash == entry.Hash {
		return UpdateCheck{}, nil
	}

	newName := entry.FileName
	if file := core.PrimaryFile(latest); file != nil {
		newName = file.Filename
	}
	return UpdateCheck{
		UpdateAvailable: true,
		UpdateString:    core.EnabledName(entry.FileName) + " -> " + newName,
		Latest:          latest,
	}, nil
}

// PerformUpdate replaces an installed file with the release found by
// CheckUpdate: the old file is deleted first, in both its enabled and
// disabled forms, then the replacement is downloaded and recorded. After a
// successful update a second CheckUpdate on the same project reports up to
// date.
func (o *Orchestrator) PerformUpdate(ctx context.Context, entry core.InstalledEntry, packageType core.PackageType, installation *core.Installation, check UpdateCheck) error {
	if err := checkInstallable(installation); err != nil {
		return err
	}
	if check.Latest == nil {
		return fmt.Errorf("no update staged for %s", entry.FileName)
	}

	dir := installation.ResourceDirFor(packageType)
	base := core.EnabledName(entry.FileName)
	for _, name := range []string{base, core.DisabledName(base)} {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("removing %s: %w", name, err)
			}
			continue
		}
		o.scanner.Forget(path)
	}
	o.installed.RemoveHash(entry.Hash)

	detail := &core.ProjectDetail{
		Project: core.Project{
			ID:          entry.ProjectID,
			Title:       core.DisplayTitle("", entry.FileName),
			PackageType: packageType,
		},
	}
	if err := o.place(ctx, detail, check.Latest, installation); err != nil {
		return err
	}

	o.log.Info("updated resource",
		zap.String("project", entry.ProjectID),
		zap.String("change", check.UpdateString))
	return nil
}
