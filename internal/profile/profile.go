// Package profile reads fragment manifests: named sets of configuration
// files to merge for a given kernel series, so an invocation can reference a
// profile instead of listing files.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	kcerrors "kconfgen.dev/kconfgen/internal/errors"
)

// DefaultManifestName is looked up in the working directory when no manifest
// path is given
const DefaultManifestName = "kconfgen.yaml"

// Profile is one named merge set: a base configuration and the fragments
// overlaid onto it, in order
type Profile struct {
	Kernel    string   `yaml:"kernel,omitempty"`
	Arch      string   `yaml:"arch,omitempty"`
	Base      string   `yaml:"base"`
	Fragments []string `yaml:"fragments"`
}

// Manifest maps profile names to their merge sets
type Manifest struct {
	Profiles map[string]Profile `yaml:"profiles"`

	dir string
}

// LoadManifest reads a YAML manifest file
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("cannot parse manifest %s: %w", path, err)
	}
	manifest.dir = filepath.Dir(path)
	return &manifest, nil
}

// Get returns a profile by name
func (m *Manifest) Get(name string) (Profile, error) {
	p, ok := m.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", kcerrors.ErrProfileNotFound, name)
	}
	return p, nil
}

// Names returns all profile names, sorted
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Profiles))
	for name := range m.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConfigPaths returns the profile's base and fragment paths in merge order,
// resolved relative to the manifest's directory
func (m *Manifest) ConfigPaths(p Profile) []string {
	paths := make([]string, 0, len(p.Fragments)+1)
	if p.Base != "" {
		paths = append(paths, m.resolve(p.Base))
	}
	for _, f := range p.Fragments {
		paths = append(paths, m.resolve(f))
	}
	return paths
}

// KernelPath returns the profile's kernel tree resolved relative to the
// manifest's directory, or "" when the profile does not name one
func (m *Manifest) KernelPath(p Profile) string {
	if p.Kernel == "" {
		return ""
	}
	return m.resolve(p.Kernel)
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.dir, path)
}
