package orchestrate

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/crafthub/depcraft/core"
)

// Toggle flips a resource file between enabled and disabled by renaming it
// with the reserved suffix. State lives entirely in the file name, so the
// operation is idempotent and a crash mid-rename leaves a valid state either
// way. Returns the file's new name.
func (o *Orchestrator) Toggle(installation *core.Installation, packageType core.PackageType, fileName string) (string, error) {
	if err := checkInstallable(installation); err != nil {
		return "", err
	}

	dir := installation.ResourceDirFor(packageType)
	oldPath := filepath.Join(dir, fileName)
	if _, err := os.Stat(oldPath); err != nil {
		// The caller may hold a stale name; try the other form before failing.
		other := core.ToggleName(fileName)
		if _, err2 := os.Stat(filepath.Join(dir, other)); err2 == nil {
			return other, nil
		}
		return "", fmt.Errorf("resource file %s: %w", fileName, err)
	}

	newName := core.ToggleName(fileName)
	newPath := filepath.Join(dir, newName)
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("toggling %s: %w", fileName, err)
	}

	if entry, ok := o.installed.FindByFileName(fileName); ok {
		entry.FileName = newName
		entry.Disabled = core.IsDisabled(newName)
		o.installed.Insert(entry)
	}
	o.scanner.Forget(oldPath)
	if _, err := o.scanner.Note(newPath, ""); err != nil {
		o.log.Warn("could not refresh hash cache after toggle", zap.Error(err))
	}

	o.log.Info("toggled resource",
		zap.String("from", fileName), zap.String("to", newName))
	return newName, nil
}

// Delete removes a resource file from the installation. Only package types
// that are placed as single files can be deleted this way; modpacks are
// rejected before any side effect. The on-disk name is resolved through its
// disabled variant, since downloads and toggles can rename files.
func (o *Orchestrator) Delete(installation *core.Installation, packageType core.PackageType, fileName string) error {
	if err := checkInstallable(installation); err != nil {
		return err
	}
	if !packageType.DirectInstall() {
		return fmt.Errorf("cannot delete %s content directly: %w", packageType, core.ErrUnsupportedType)
	}

	dir := installation.ResourceDirFor(packageType)
	base := core.EnabledName(fileName)

	var removedPath string
	for _, name := range []string{base, core.DisabledName(base)} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
		removedPath = path
	}
	if removedPath == "" {
		return fmt.Errorf("resource file %s: %w", fileName, os.ErrNotExist)
	}

	if entry, ok := o.installed.FindByFileName(base); ok {
		o.installed.RemoveHash(entry.Hash)
	}
	o.scanner.Forget(removedPath)

	o.log.Info("deleted resource",
		zap.String("file", base),
		zap.String("installation", installation.Name))
	return nil
}
