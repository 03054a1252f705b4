package index

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// HashCache persists file digests keyed by (path, size, mtime) so rescans of
// large resource directories only rehash files that changed. A stale or
// missing cache is harmless; the scanner falls back to hashing.
//
// The project column preserves which registry project a file came from, which
// a bare directory scan cannot recover.
type HashCache struct {
	db *sql.DB
}

func OpenHashCache(path string) (*HashCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening hash cache")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "setting pragmas")
	}
	const schema = `
	CREATE TABLE IF NOT EXISTS file_hashes (
		path    TEXT PRIMARY KEY,
		size    INTEGER NOT NULL,
		mtime   INTEGER NOT NULL,
		sha1    TEXT NOT NULL,
		project TEXT NOT NULL DEFAULT ''
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating hash cache schema")
	}
	return &HashCache{db: db}, nil
}

func (c *HashCache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached digest and project for a file if the stored
// (size, mtime) still match.
func (c *HashCache) Lookup(path string, size, mtime int64) (sha1, project string, ok bool) {
	row := c.db.QueryRow(
		"SELECT sha1, project FROM file_hashes WHERE path = ? AND size = ? AND mtime = ?",
		path, size, mtime,
	)
	if err := row.Scan(&sha1, &project); err != nil {
		return "", "", false
	}
	return sha1, project, true
}

// Store upserts a file's digest. An empty projectID keeps any previously
// recorded project association.
func (c *HashCache) Store(path string, size, mtime int64, sha1, projectID string) error {
	_, err := c.db.Exec(`
		INSERT INTO file_hashes (path, size, mtime, sha1, project)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			size = excluded.size,
			mtime = excluded.mtime,
			sha1 = excluded.sha1,
			project = CASE WHEN excluded.project = '' THEN file_hashes.project ELSE excluded.project END`,
		path, size, mtime, sha1, projectID,
	)
	return errors.Wrap(err, "storing file hash")
}

// Forget drops the row for a deleted file.
func (c *HashCache) Forget(path string) error {
	_, err := c.db.Exec("DELETE FROM file_hashes WHERE path = ?", path)
	return errors.Wrap(err, "forgetting file hash")
}
