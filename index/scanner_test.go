package index

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafthub/depcraft/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sha1Of(t *testing.T, content string) string {
	t.Helper()
	digest, err := core.HashReader(core.HashFormatSHA1, strings.NewReader(content))
	require.NoError(t, err)
	return digest
}

func entryByName(entries []core.InstalledEntry, name string) (core.InstalledEntry, bool) {
	for _, e := range entries {
		if e.FileName == name {
			return e, true
		}
	}
	return core.InstalledEntry{}, false
}

func TestScanFiltersByPackageType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sodium.jar", "sodium bytes")
	writeFile(t, dir, "lithium.jar.disabled", "lithium bytes")
	writeFile(t, dir, "pack.zip", "pack bytes")
	writeFile(t, dir, "readme.txt", "not a resource")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	s := NewScanner(nil, nil)

	entries, err := s.Scan(context.Background(), dir, core.PackageMod)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entry, ok := entryByName(entries, "sodium.jar")
	require.True(t, ok)
	assert.Equal(t, sha1Of(t, "sodium bytes"), entry.Hash)
	assert.False(t, entry.Disabled)

	entry, ok = entryByName(entries, "lithium.jar.disabled")
	require.True(t, ok)
	assert.True(t, entry.Disabled)

	entries, err = s.Scan(context.Background(), dir, core.PackageResourcepack)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pack.zip", entries[0].FileName)
}

func TestScanMissingDirIsEmpty(t *testing.T) {
	s := NewScanner(nil, nil)
	entries, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), core.PackageMod)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScanHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sodium.jar", "sodium bytes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(nil, nil)
	_, err := s.Scan(ctx, dir, core.PackageMod)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScannerWithHashCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sodium.jar", "sodium bytes")

	cache, err := OpenHashCache(filepath.Join(t.TempDir(), "hashcache.db"))
	require.NoError(t, err)
	defer cache.Close()

	s := NewScanner(cache, nil)

	entries, err := s.Scan(context.Background(), dir, core.PackageMod)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, sha1Of(t, "sodium bytes"), entries[0].Hash)

	// Note records the project association; a later scan recovers it from
	// the cache without rehashing.
	_, err = s.Note(path, "sodium")
	require.NoError(t, err)

	entries, err = s.Scan(context.Background(), dir, core.PackageMod)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sodium", entries[0].ProjectID)

	s.Forget(path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	_, _, ok := cache.Lookup(path, info.Size(), info.ModTime().UnixNano())
	assert.False(t, ok)
}

func TestHashCacheStoreKeepsProjectOnEmptyUpdate(t *testing.T) {
	cache, err := OpenHashCache(filepath.Join(t.TempDir(), "hashcache.db"))
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Store("/mods/a.jar", 10, 100, "abc", "sodium"))
	require.NoError(t, cache.Store("/mods/a.jar", 12, 200, "def", ""))

	sha1, project, ok := cache.Lookup("/mods/a.jar", 12, 200)
	require.True(t, ok)
	assert.Equal(t, "def", sha1)
	assert.Equal(t, "sodium", project)

	// stale (size, mtime) never hits
	_, _, ok = cache.Lookup("/mods/a.jar", 10, 100)
	assert.False(t, ok)
}

func TestNoteHashesNewFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sodium.jar", "sodium bytes")

	s := NewScanner(nil, nil)
	entry, err := s.Note(path, "sodium")
	require.NoError(t, err)
	assert.Equal(t, sha1Of(t, "sodium bytes"), entry.Hash)
	assert.Equal(t, "sodium", entry.ProjectID)
	assert.Equal(t, "sodium.jar", entry.FileName)
}
