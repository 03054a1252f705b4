// Package profile persists the user's game installation profiles. The
// install engine treats installations as read-only; this store is the one
// place profile records are created and removed.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"

	"github.com/crafthub/depcraft/core"
)

// Profile is one installation record as stored on disk.
type Profile struct {
	GameVersion   string `toml:"game-version"`
	Loader        string `toml:"loader"`
	LoaderVersion string `toml:"loader-version,omitempty"`
	ResourceDir   string `toml:"resource-dir"`
	Mode          string `toml:"mode,omitempty"`

	// Options holds per-profile settings that only some commands care about;
	// they are decoded on demand.
	Options map[string]interface{} `toml:"options,omitempty"`
}

// Options are the recognized per-profile settings.
type Options struct {
	HashCachePath string `mapstructure:"hash-cache"`
}

func (p Profile) DecodeOptions() (Options, error) {
	var opts Options
	err := mapstructure.Decode(p.Options, &opts)
	return opts, err
}

// Installation converts a stored profile to the engine's read-only view.
func (p Profile) Installation(name string) *core.Installation {
	mode := core.ModeLocal
	if p.Mode == string(core.ModeRemote) {
		mode = core.ModeRemote
	}
	return &core.Installation{
		Name:          name,
		GameVersion:   p.GameVersion,
		Loader:        p.Loader,
		LoaderVersion: p.LoaderVersion,
		ResourceDir:   p.ResourceDir,
		Mode:          mode,
	}
}

type storeFile struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// Store reads and writes the profiles file.
type Store struct {
	path     string
	profiles map[string]Profile
}

// Load reads the store at path. A missing file is an empty store, not an
// error, so first runs need no setup step.
func Load(path string) (*Store, error) {
	store := &Store{path: path, profiles: make(map[string]Profile)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("reading profiles: %w", err)
	}

	var file storeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	if file.Profiles != nil {
		store.profiles = file.Profiles
	}
	return store, nil
}

func (s *Store) Save() error {
	data, err := toml.Marshal(storeFile{Profiles: s.profiles})
	if err != nil {
		return fmt.Errorf("encoding profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating profiles directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing profiles: %w", err)
	}
	return nil
}

func (s *Store) Set(name string, p Profile) {
	s.profiles[name] = p
}

func (s *Store) Remove(name string) bool {
	_, ok := s.profiles[name]
	delete(s.profiles, name)
	return ok
}

func (s *Store) Get(name string) (Profile, bool) {
	p, ok := s.profiles[name]
	return p, ok
}

// Installation resolves a profile name to the engine's installation view.
func (s *Store) Installation(name string) (*core.Installation, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, fmt.Errorf("no profile named %q", name)
	}
	return p.Installation(name), nil
}

// Names lists profile names sorted for stable output.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
