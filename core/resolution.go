package core

import "sync"

// DownloadState tracks one dependency's progress through a download batch.
type DownloadState string

const (
	DownloadIdle       DownloadState = "idle"
	DownloadInProgress DownloadState = "downloading"
	DownloadSucceeded  DownloadState = "success"
	DownloadFailed     DownloadState = "failed"
)

// MissingDependency pairs a dependency that is not yet installed with the
// releases that could satisfy it. Releases may be empty: the dependency is
// still reported so the caller can surface "no version available" instead of
// silently completing an incomplete install.
type MissingDependency struct {
	Detail   *ProjectDetail
	Releases []VersionRelease
}

// DependencyResolution is the transient working state of one install action.
// It is created when resolution finds missing dependencies and discarded when
// the action finishes or is cancelled; it is never persisted.
type DependencyResolution struct {
	Root         *ProjectDetail
	RootReleases []VersionRelease
	Missing      []MissingDependency

	mu           sync.Mutex
	rootSelected *VersionRelease
	rootDone     bool
	selected     map[string]*VersionRelease
	states       map[string]DownloadState
	errs         map[string]error
}

func NewDependencyResolution(root *ProjectDetail, missing []MissingDependency) *DependencyResolution {
	r := &DependencyResolution{
		Root:     root,
		Missing:  missing,
		selected: make(map[string]*VersionRelease),
		states:   make(map[string]DownloadState),
		errs:     make(map[string]error),
	}
	for _, dep := range missing {
		r.states[dep.Detail.ID] = DownloadIdle
		if sel := SelectDefaultRelease(dep.Releases); sel != nil {
			r.selected[dep.Detail.ID] = sel
		}
	}
	return r
}

// SetRootReleases attaches the root project's compatible releases and picks
// the default selection.
func (r *DependencyResolution) SetRootReleases(releases []VersionRelease) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.RootReleases = releases
	r.rootSelected = SelectDefaultRelease(releases)
}

// SelectRoot overrides the chosen release for the root project.
func (r *DependencyResolution) SelectRoot(release *VersionRelease) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rootSelected = release
}

func (r *DependencyResolution) RootSelection() *VersionRelease {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rootSelected
}

// MarkRootDone records that the root project itself was placed successfully.
func (r *DependencyResolution) MarkRootDone() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rootDone = true
}

func (r *DependencyResolution) RootDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rootDone
}

// Select overrides the chosen release for a dependency. The release must come
// from the dependency's compatible release list; the caller enforces that.
func (r *DependencyResolution) Select(projectID string, release *VersionRelease) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected[projectID] = release
}

func (r *DependencyResolution) Selected(projectID string) *VersionRelease {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected[projectID]
}

func (r *DependencyResolution) State(projectID string) DownloadState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[projectID]
}

func (r *DependencyResolution) SetState(projectID string, state DownloadState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[projectID] = state
	if state != DownloadFailed {
		delete(r.errs, projectID)
	}
}

func (r *DependencyResolution) SetFailed(projectID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[projectID] = DownloadFailed
	r.errs[projectID] = err
}

func (r *DependencyResolution) Err(projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errs[projectID]
}

// AllDownloaded reports whether every missing dependency has reached success.
// A retried item that succeeds counts; prior successes are never re-checked
// against the network.
func (r *DependencyResolution) AllDownloaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dep := range r.Missing {
		if r.states[dep.Detail.ID] != DownloadSucceeded {
			return false
		}
	}
	return true
}

// FailedIDs returns the project IDs of dependencies whose last attempt failed.
func (r *DependencyResolution) FailedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, dep := range r.Missing {
		if r.states[dep.Detail.ID] == DownloadFailed {
			ids = append(ids, dep.Detail.ID)
		}
	}
	return ids
}

func (r *DependencyResolution) find(projectID string) *MissingDependency {
	for i := range r.Missing {
		if r.Missing[i].Detail.ID == projectID {
			return &r.Missing[i]
		}
	}
	return nil
}

// Dependency returns the missing-dependency record for a project ID, or nil.
func (r *DependencyResolution) Dependency(projectID string) *MissingDependency {
	return r.find(projectID)
}
