// Package download fetches release files, verifies their content hash and
// places them atomically into an installation's resource directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/crafthub/depcraft/core"
)

// ProgressFunc receives cumulative downloaded bytes and the total size
// (0 when unknown).
type ProgressFunc func(downloaded, total int64)

// Executor performs hash-verified downloads. Integrity is enforced here, at
// the boundary: a file whose digest does not match never reaches its final
// path. Writes into the same destination directory are serialized; different
// installations proceed independently.
type Executor struct {
	httpClient *http.Client
	log        *zap.Logger

	mu       sync.Mutex
	dirLocks map[string]*semaphore.Weighted
}

func NewExecutor(httpClient *http.Client, log *zap.Logger) *Executor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		httpClient: httpClient,
		log:        log,
		dirLocks:   make(map[string]*semaphore.Weighted),
	}
}

func (e *Executor) dirLock(dir string) *semaphore.Weighted {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.dirLocks[dir]
	if !ok {
		lock = semaphore.NewWeighted(1)
		e.dirLocks[dir] = lock
	}
	return lock
}

// Execute downloads url to destPath, verifying the content digest in the
// given format against expectedHash. The file is written to a temporary path
// and renamed only after verification, so a failed or cancelled download
// never leaves a corrupt file in the resource directory.
func (e *Executor) Execute(ctx context.Context, url, hashFormat, expectedHash, destPath string, progress ProgressFunc) error {
	if hashFormat == "" || expectedHash == "" {
		return fmt.Errorf("download of %s: %w", filepath.Base(destPath), core.ErrNoReleaseFile)
	}

	dir := filepath.Dir(destPath)
	lock := e.dirLock(dir)
	if err := lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer lock.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", core.UserAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requesting %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating resource directory: %w", err)
	}

	hasher, err := core.GetHashImpl(hashFormat)
	if err != nil {
		return err
	}

	tempPath := destPath + ".part"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		file.Close()
		os.Remove(tempPath)
	}()

	reader := io.Reader(resp.Body)
	if progress != nil {
		reader = &progressReader{
			reader:   resp.Body,
			total:    resp.ContentLength,
			progress: progress,
		}
	}

	if _, err := io.Copy(file, io.TeeReader(reader, hasher)); err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if got := hasher.String(); !strings.EqualFold(got, expectedHash) {
		e.log.Error("hash mismatch on downloaded file",
			zap.String("url", url),
			zap.String("expected", expectedHash),
			zap.String("got", got))
		return fmt.Errorf("%w for %s: expected %s %s, got %s",
			core.ErrHashMismatch, filepath.Base(destPath), hashFormat, expectedHash, got)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		return fmt.Errorf("placing file: %w", err)
	}

	e.log.Debug("downloaded resource",
		zap.String("url", url), zap.String("dest", destPath))
	return nil
}

type progressReader struct {
	reader     io.Reader
	total      int64
	downloaded int64
	progress   ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.downloaded += int64(n)
		total := r.total
		if total < 0 {
			total = 0
		}
		r.progress(r.downloaded, total)
	}
	return n, err
}
