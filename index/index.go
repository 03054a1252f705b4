// Package index tracks which content is already present in an installation's
// resource directories. The in-memory Index answers membership queries for
// install decisions; the Scanner rebuilds it from disk.
package index

import (
	"sync"

	"github.com/crafthub/depcraft/core"
)

// Index is the installed-content lookup for one installation and package
// type. All mutations are atomic relative to reads: an install decision never
// observes a partially updated index.
type Index struct {
	mu        sync.RWMutex
	byHash    map[string]core.InstalledEntry
	byProject map[string]string // project ID -> hash
}

func New() *Index {
	return &Index{
		byHash:    make(map[string]core.InstalledEntry),
		byProject: make(map[string]string),
	}
}

// Replace swaps in a fresh scan result wholesale.
func (x *Index) Replace(entries []core.InstalledEntry) {
	byHash := make(map[string]core.InstalledEntry, len(entries))
	byProject := make(map[string]string)
	for _, e := range entries {
		byHash[e.Hash] = e
		if e.ProjectID != "" {
			byProject[e.ProjectID] = e.Hash
		}
	}
	x.mu.Lock()
	x.byHash = byHash
	x.byProject = byProject
	x.mu.Unlock()
}

func (x *Index) ContainsHash(hash string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.byHash[hash]
	return ok
}

func (x *Index) ContainsProject(projectID string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.byProject[projectID]
	return ok
}

// Insert records a freshly installed entry so the next "is installed" check
// in the same session doesn't need a rescan.
func (x *Index) Insert(entry core.InstalledEntry) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.byHash[entry.Hash] = entry
	if entry.ProjectID != "" {
		x.byProject[entry.ProjectID] = entry.Hash
	}
}

// RemoveHash drops an entry after its file was deleted.
func (x *Index) RemoveHash(hash string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	entry, ok := x.byHash[hash]
	if !ok {
		return
	}
	delete(x.byHash, hash)
	if entry.ProjectID != "" {
		delete(x.byProject, entry.ProjectID)
	}
}

// Lookup returns the entry for a hash.
func (x *Index) Lookup(hash string) (core.InstalledEntry, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	entry, ok := x.byHash[hash]
	return entry, ok
}

// LookupProject returns the entry recorded for a project ID.
func (x *Index) LookupProject(projectID string) (core.InstalledEntry, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	hash, ok := x.byProject[projectID]
	if !ok {
		return core.InstalledEntry{}, false
	}
	entry, ok := x.byHash[hash]
	return entry, ok
}

// FindByFileName returns the entry whose on-disk name matches, in either its
// enabled or disabled form.
func (x *Index) FindByFileName(fileName string) (core.InstalledEntry, bool) {
	want := core.EnabledName(fileName)
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, e := range x.byHash {
		if core.EnabledName(e.FileName) == want {
			return e, true
		}
	}
	return core.InstalledEntry{}, false
}

// Entries returns a snapshot of all entries.
func (x *Index) Entries() []core.InstalledEntry {
	x.mu.RLock()
	defer x.mu.RUnlock()
	entries := make([]core.InstalledEntry, 0, len(x.byHash))
	for _, e := range x.byHash {
		entries = append(entries, e)
	}
	return entries
}

func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.byHash)
}
