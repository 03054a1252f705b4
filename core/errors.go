package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the pipeline distinguishes.
// Download and filesystem failures are retryable per item; validation and
// configuration failures are rejected before any side effect.
var (
	ErrNoInstallation  = errors.New("no target installation selected")
	ErrEmptyProjectID  = errors.New("project identifier is empty")
	ErrProjectNotFound = errors.New("project not found in registry")
	ErrNoReleaseFile   = errors.New("release has no downloadable file")
	ErrHashMismatch    = errors.New("downloaded content hash mismatch")
	ErrUnsupportedType = errors.New("package type not supported for this operation")
	ErrRemoteManaged   = errors.New("installation resources are managed remotely")
)

// NotFoundError names the specific registry item that could not be located.
type NotFoundError struct {
	Kind string // "project", "version", "file"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in registry", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrProjectNotFound
}

// BatchError aggregates per-dependency failures from one download batch.
// Sibling successes are left intact; the caller retries failed items only.
type BatchError struct {
	Failures map[string]error // keyed by project ID
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of the batch's downloads failed", len(e.Failures))
}
