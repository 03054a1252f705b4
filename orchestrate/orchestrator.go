// Package orchestrate sequences dependency resolution, user confirmation and
// downloads for one install action, and owns the retry and partial-failure
// semantics: a failed dependency never discards a sibling's success, and
// nothing is rolled back — every state on disk is re-attemptable.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/crafthub/depcraft/core"
	"github.com/crafthub/depcraft/download"
	"github.com/crafthub/depcraft/index"
	"github.com/crafthub/depcraft/registry"
	"github.com/crafthub/depcraft/resolve"
)

// State is the orchestrator's install-action state machine.
type State string

const (
	StateIdle           State = "idle"
	StateLoading        State = "loading"
	StateAutoInstalling State = "autoInstalling"
	StateManualConfirm  State = "manualConfirm"
	StateDownloading    State = "downloading"
	StateRetrying       State = "retrying"
	StateInstalled      State = "installed"
	StateFailed         State = "failed"
)

// ErrBusy is returned when an install action is started while another is in
// flight; the caller disables its action until the orchestrator settles.
var ErrBusy = errors.New("another install action is in flight")

// Orchestrator drives the resolve → confirm → download → record pipeline for
// one installation target at a time.
type Orchestrator struct {
	registry  registry.Client
	resolver  *resolve.Resolver
	installed *index.Index
	scanner   *index.Scanner
	executor  *download.Executor
	log       *zap.Logger

	// progressFor, when set, supplies a per-file progress callback (the CLI
	// hooks mpb bars in here; a GUI would hook its own).
	progressFor func(name string) download.ProgressFunc

	stateMu sync.Mutex
	state   State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithProgress(f func(name string) download.ProgressFunc) Option {
	return func(o *Orchestrator) { o.progressFor = f }
}

func New(reg registry.Client, installed *index.Index, scanner *index.Scanner, executor *download.Executor, log *zap.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Orchestrator{
		registry:  reg,
		resolver:  resolve.New(reg, installed, log),
		installed: installed,
		scanner:   scanner,
		executor:  executor,
		log:       log,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) State() State {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.stateMu.Lock()
	o.state = s
	o.stateMu.Unlock()
}

// begin moves Idle (or a settled terminal state) to next, refusing overlap.
func (o *Orchestrator) begin(next State) error {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	switch o.state {
	case StateIdle, StateInstalled, StateFailed:
		o.state = next
		return nil
	default:
		return ErrBusy
	}
}

func checkInstallable(installation *core.Installation) error {
	if installation == nil {
		return core.ErrNoInstallation
	}
	if installation.Mode == core.ModeRemote {
		return core.ErrRemoteManaged
	}
	return nil
}

// Resolve runs dependency resolution for a manual-confirm install. On success
// the orchestrator waits in ManualConfirm until the caller picks releases and
// calls DownloadAll or DownloadMainOnly, or Cancel discards the resolution.
func (o *Orchestrator) Resolve(ctx context.Context, projectID string, installation *core.Installation) (*core.DependencyResolution, error) {
	if err := checkInstallable(installation); err != nil {
		return nil, err
	}
	if err := o.begin(StateLoading); err != nil {
		return nil, err
	}

	res, err := o.prepare(ctx, projectID, installation)
	if err != nil {
		o.setState(StateIdle)
		return nil, err
	}
	o.setState(StateManualConfirm)
	return res, nil
}

// prepare resolves missing dependencies and attaches the root project's
// compatible releases.
func (o *Orchestrator) prepare(ctx context.Context, projectID string, installation *core.Installation) (*core.DependencyResolution, error) {
	res, err := o.resolver.ResolveMissing(ctx, projectID, installation)
	if err != nil {
		return nil, err
	}

	rootReleases, err := o.registry.FetchCompatibleReleases(
		ctx, res.Root.ID, installation.GameVersion, installation.Loader, res.Root.PackageType)
	if err != nil {
		return nil, err
	}
	if len(rootReleases) == 0 {
		return nil, &core.NotFoundError{Kind: "version", ID: res.Root.ID}
	}
	res.SetRootReleases(rootReleases)
	return res, nil
}

// Cancel discards an in-flight resolution; the user closed the confirmation
// dialog. Dependencies that already completed stay recorded in the index.
func (o *Orchestrator) Cancel() {
	o.setState(StateIdle)
}

// AutoInstall is the auto-download-dependencies policy: resolve, then
// download every missing dependency and the root without confirmation. Any
// dependency failure fails the batch with an aggregate error; completed
// downloads stay in place and the action is re-attemptable.
func (o *Orchestrator) AutoInstall(ctx context.Context, projectID string, installation *core.Installation) error {
	if err := checkInstallable(installation); err != nil {
		return err
	}
	if err := o.begin(StateAutoInstalling); err != nil {
		return err
	}

	res, err := o.prepare(ctx, projectID, installation)
	if err != nil {
		o.setState(StateIdle)
		return err
	}
	return o.runBatch(ctx, res, installation, true)
}

// DownloadAll downloads every missing dependency that has not already
// succeeded, then the root project. Completion is a barrier: the batch ends
// Installed only when every item reached success.
func (o *Orchestrator) DownloadAll(ctx context.Context, res *core.DependencyResolution, installation *core.Installation) error {
	if err := checkInstallable(installation); err != nil {
		return err
	}
	o.setState(StateDownloading)
	return o.runBatch(ctx, res, installation, true)
}

// DownloadMainOnly places the root project and deliberately skips all
// dependencies.
func (o *Orchestrator) DownloadMainOnly(ctx context.Context, res *core.DependencyResolution, installation *core.Installation) error {
	if err := checkInstallable(installation); err != nil {
		return err
	}
	o.setState(StateDownloading)
	return o.runBatch(ctx, res, installation, false)
}

func (o *Orchestrator) runBatch(ctx context.Context, res *core.DependencyResolution, installation *core.Installation, withDependencies bool) error {
	failures := make(map[string]error)

	if withDependencies {
		for _, dep := range res.Missing {
			id := dep.Detail.ID
			if res.State(id) == core.DownloadSucceeded {
				// Prior successes are never re-downloaded on a re-attempt.
				continue
			}
			if err := o.downloadDependency(ctx, res, &dep, installation); err != nil {
				failures[id] = err
			}
		}
	}

	if len(failures) == 0 {
		if err := o.downloadRoot(ctx, res, installation); err != nil {
			failures[res.Root.ID] = err
		}
	}

	if len(failures) > 0 {
		o.setState(StateFailed)
		return &core.BatchError{Failures: failures}
	}
	o.setState(StateInstalled)
	return nil
}

func (o *Orchestrator) downloadDependency(ctx context.Context, res *core.DependencyResolution, dep *core.MissingDependency, installation *core.Installation) error {
	id := dep.Detail.ID
	res.SetState(id, core.DownloadInProgress)

	release := res.Selected(id)
	if release == nil {
		err := &core.NotFoundError{Kind: "version", ID: id}
		o.log.Error("dependency has no compatible release",
			zap.String("project", id), zap.String("title", dep.Detail.Title))
		res.SetFailed(id, err)
		return err
	}

	if err := o.place(ctx, dep.Detail, release, installation); err != nil {
		o.log.Error("dependency download failed",
			zap.String("project", id), zap.String("title", dep.Detail.Title), zap.Error(err))
		res.SetFailed(id, err)
		return err
	}
	res.SetState(id, core.DownloadSucceeded)
	return nil
}

func (o *Orchestrator) downloadRoot(ctx context.Context, res *core.DependencyResolution, installation *core.Installation) error {
	if res.RootDone() {
		return nil
	}
	release := res.RootSelection()
	if release == nil {
		return &core.NotFoundError{Kind: "version", ID: res.Root.ID}
	}
	if err := o.place(ctx, res.Root, release, installation); err != nil {
		o.log.Error("root project download failed",
			zap.String("project", res.Root.ID), zap.Error(err))
		return err
	}
	res.MarkRootDone()
	return nil
}

// RetryDependency re-attempts a single failed dependency without re-running
// the batch. On success the orchestrator settles back to Failed or Installed
// depending on whether other items are still outstanding.
func (o *Orchestrator) RetryDependency(ctx context.Context, res *core.DependencyResolution, installation *core.Installation, projectID string) error {
	if err := checkInstallable(installation); err != nil {
		return err
	}
	dep := res.Dependency(projectID)
	if dep == nil {
		return fmt.Errorf("project %s is not part of this resolution", projectID)
	}
	o.setState(StateRetrying)

	err := o.downloadDependency(ctx, res, dep, installation)
	if err != nil {
		o.setState(StateFailed)
		return err
	}
	if res.AllDownloaded() && res.RootDone() {
		o.setState(StateInstalled)
	} else {
		o.setState(StateFailed)
	}
	return nil
}

// place downloads the release's primary file into the installation and
// records the new entry in the installed index immediately, so later checks
// in the same session see it without a rescan.
func (o *Orchestrator) place(ctx context.Context, detail *core.ProjectDetail, release *core.VersionRelease, installation *core.Installation) error {
	file := core.PrimaryFile(release)
	if file == nil {
		return fmt.Errorf("release %s of %s: %w", release.ID, detail.Title, core.ErrNoReleaseFile)
	}
	format, hash := core.BestHash(file)
	if format == "" {
		return fmt.Errorf("release %s of %s has no usable hash: %w", release.ID, detail.Title, core.ErrNoReleaseFile)
	}

	destPath := filepath.Join(installation.ResourceDirFor(detail.PackageType), file.Filename)

	var progress download.ProgressFunc
	if o.progressFor != nil {
		progress = o.progressFor(file.Filename)
	}
	if err := o.executor.Execute(ctx, file.URL, format, hash, destPath, progress); err != nil {
		return err
	}

	entry, err := o.scanner.Note(destPath, detail.ID)
	if err != nil {
		// The file is in place; fall back to the registry-declared hash so
		// the index still learns about it.
		o.log.Warn("could not hash placed file, using registry hash",
			zap.String("file", file.Filename), zap.Error(err))
		entry = core.InstalledEntry{
			Hash:      file.Hashes[core.HashFormatSHA1],
			ProjectID: detail.ID,
			FileName:  file.Filename,
		}
	}
	o.installed.Insert(entry)

	o.log.Info("installed resource",
		zap.String("project", detail.ID),
		zap.String("title", detail.Title),
		zap.String("file", file.Filename),
		zap.String("installation", installation.Name))
	return nil
}
