package index

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crafthub/depcraft/core"
)

const (
	// scanPageSize bounds how many files are hashed per batch so a scan of a
	// large directory yields between pages instead of monopolizing its goroutine.
	scanPageSize = 64
	scanWorkers  = 4
)

// Scanner walks an installation's resource directory and produces the
// installed entries for a package type. Digests go through the optional
// HashCache so unchanged files are not rehashed.
type Scanner struct {
	cache *HashCache
	log   *zap.Logger
}

func NewScanner(cache *HashCache, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{cache: cache, log: log}
}

// Scan walks dir and returns the entries found. An unreadable or missing
// directory yields an empty result, not an error: "nothing installed yet" is
// always a safe fallback for install decisions. Only context cancellation
// aborts the scan.
func (s *Scanner) Scan(ctx context.Context, dir string, packageType core.PackageType) ([]core.InstalledEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("resource directory unreadable, treating as empty",
			zap.String("dir", dir), zap.Error(err))
		return nil, nil
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if isResourceFile(de.Name(), packageType) {
			names = append(names, de.Name())
		}
	}

	entries := make([]core.InstalledEntry, 0, len(names))
	for start := 0; start < len(names); start += scanPageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + scanPageSize
		if end > len(names) {
			end = len(names)
		}
		page, err := s.scanPage(ctx, dir, names[start:end])
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
	}
	return entries, nil
}

func (s *Scanner) scanPage(ctx context.Context, dir string, names []string) ([]core.InstalledEntry, error) {
	results := make([]*core.InstalledEntry, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := s.stat(filepath.Join(dir, name), name)
			if err != nil {
				// A file that vanished or can't be read mid-scan is skipped,
				// not fatal to the page.
				s.log.Warn("skipping unreadable resource file",
					zap.String("file", name), zap.Error(err))
				return nil
			}
			results[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]core.InstalledEntry, 0, len(results))
	for _, e := range results {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

func (s *Scanner) stat(path, name string) (*core.InstalledEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	size := info.Size()
	mtime := info.ModTime().UnixNano()

	if s.cache != nil {
		if sha1, project, ok := s.cache.Lookup(path, size, mtime); ok {
			return &core.InstalledEntry{
				Hash:      sha1,
				ProjectID: project,
				FileName:  name,
				Disabled:  core.IsDisabled(name),
			}, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sha1, err := core.HashReader(core.HashFormatSHA1, f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Store(path, size, mtime, sha1, ""); err != nil {
			s.log.Warn("hash cache store failed", zap.String("file", name), zap.Error(err))
		}
	}

	return &core.InstalledEntry{
		Hash:     sha1,
		FileName: name,
		Disabled: core.IsDisabled(name),
	}, nil
}

// Note hashes a just-installed file and records its project association so
// membership checks and later rescans see it without a full rescan.
func (s *Scanner) Note(path, projectID string) (core.InstalledEntry, error) {
	name := filepath.Base(path)
	entry, err := s.stat(path, name)
	if err != nil {
		return core.InstalledEntry{}, err
	}
	entry.ProjectID = projectID
	if s.cache != nil {
		info, statErr := os.Stat(path)
		if statErr == nil {
			if err := s.cache.Store(path, info.Size(), info.ModTime().UnixNano(), entry.Hash, projectID); err != nil {
				s.log.Warn("hash cache store failed", zap.String("file", name), zap.Error(err))
			}
		}
	}
	return *entry, nil
}

// Forget drops any cached record for a deleted file.
func (s *Scanner) Forget(path string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Forget(path); err != nil {
		s.log.Warn("hash cache forget failed", zap.String("file", path), zap.Error(err))
	}
}

// isResourceFile reports whether a directory entry looks like a placed
// resource of the given type, including its disabled variant.
func isResourceFile(name string, packageType core.PackageType) bool {
	base := strings.ToLower(core.EnabledName(name))
	switch packageType {
	case core.PackageMod:
		return strings.HasSuffix(base, ".jar")
	case core.PackageDatapack, core.PackageShader, core.PackageResourcepack:
		return strings.HasSuffix(base, ".zip")
	default:
		return false
	}
}
