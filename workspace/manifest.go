// Package workspace processes several libraries in dependency order. Each
// library runs the full pipeline against the frozen databases of the
// libraries it depends on.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/bindgen/errors"
)

// ManifestFileName is the conventional manifest name.
const ManifestFileName = "bindgen.workspace.toml"

// Manifest lists the libraries of a workspace.
type Manifest struct {
	Libraries []Library `toml:"library"`

	// dir is the directory fixture paths are resolved against.
	dir string
}

// Library is one [[library]] table of the manifest.
type Library struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	// Fixture is the declaration file standing in for parser output.
	Fixture string `toml:"fixture"`
	// DefaultIncludeFile names free functions that carry no include file.
	DefaultIncludeFile string `toml:"default_include_file"`
	// Dependencies maps library names to semver constraints ("" accepts any).
	Dependencies map[string]string `toml:"dependencies"`
}

// DependencyNames returns the dependency names in sorted order.
func (l Library) DependencyNames() []string {
	names := make([]string, 0, len(l.Dependencies))
	for name := range l.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadManifest reads and validates a manifest file. Fixture paths are
// resolved relative to the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read workspace manifest %s", path)
	}
	m, err := ParseManifest(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "workspace manifest %s", path)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes and validates manifest text.
func ParseManifest(data string) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(data, &m)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid TOML"), errors.ErrInvalidInput)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.NewInvalidInputError("unknown manifest keys: %s", strings.Join(keys, ", ")),
			"known library keys are name, version, fixture, default_include_file and dependencies")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// FixturePath returns the fixture path of lib resolved against the
// manifest directory.
func (m *Manifest) FixturePath(lib Library) string {
	if lib.Fixture == "" || filepath.IsAbs(lib.Fixture) || m.dir == "" {
		return lib.Fixture
	}
	return filepath.Join(m.dir, lib.Fixture)
}

// Library looks a library up by name.
func (m *Manifest) Library(name string) (Library, bool) {
	for _, lib := range m.Libraries {
		if lib.Name == name {
			return lib, true
		}
	}
	return Library{}, false
}

// Validate checks names, versions and dependency constraints.
func (m *Manifest) Validate() error {
	if len(m.Libraries) == 0 {
		return errors.NewInvalidInputError("workspace has no libraries")
	}

	versions := make(map[string]*semver.Version, len(m.Libraries))
	for i, lib := range m.Libraries {
		if lib.Name == "" {
			return errors.NewInvalidInputError("library %d has no name", i+1)
		}
		if _, dup := versions[lib.Name]; dup {
			return errors.NewInvalidInputError("library %s is declared twice", lib.Name)
		}
		if lib.Fixture == "" {
			return errors.NewInvalidInputError("library %s has no fixture", lib.Name)
		}
		var v *semver.Version
		if lib.Version != "" {
			parsed, err := semver.NewVersion(lib.Version)
			if err != nil {
				return errors.Mark(errors.Wrapf(err, "library %s: invalid version %q", lib.Name, lib.Version), errors.ErrInvalidInput)
			}
			v = parsed
		}
		versions[lib.Name] = v
	}

	for _, lib := range m.Libraries {
		for _, dep := range lib.DependencyNames() {
			if dep == lib.Name {
				return errors.NewPipelineConfigError("library %s depends on itself", lib.Name)
			}
			v, ok := versions[dep]
			if !ok {
				return errors.WithHintf(
					errors.NewPipelineConfigError("library %s depends on unknown library %s", lib.Name, dep),
					"declare %s as a [[library]] in the manifest", dep)
			}
			raw := lib.Dependencies[dep]
			if raw == "" {
				continue
			}
			constraint, err := semver.NewConstraint(raw)
			if err != nil {
				return errors.Mark(errors.Wrapf(err, "library %s: invalid constraint %q for %s", lib.Name, raw, dep), errors.ErrInvalidInput)
			}
			if v == nil {
				return errors.NewPipelineConfigError("library %s requires %s %s, but %s has no version", lib.Name, dep, raw, dep)
			}
			if !constraint.Check(v) {
				return errors.NewPipelineConfigError("library %s requires %s %s, but the workspace has %s", lib.Name, dep, raw, v)
			}
		}
	}

	_, err := m.Waves()
	return err
}

// Waves groups the libraries into batches: every library's dependencies are
// in earlier batches, and libraries within a batch are sorted by name.
// A dependency cycle is a configuration error.
func (m *Manifest) Waves() ([][]Library, error) {
	remaining := make(map[string]Library, len(m.Libraries))
	for _, lib := range m.Libraries {
		remaining[lib.Name] = lib
	}
	done := make(map[string]bool, len(m.Libraries))

	var waves [][]Library
	for len(remaining) > 0 {
		var wave []Library
		for _, lib := range remaining {
			ready := true
			for dep := range lib.Dependencies {
				if !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				wave = append(wave, lib)
			}
		}
		if len(wave) == 0 {
			names := make([]string, 0, len(remaining))
			for name := range remaining {
				names = append(names, name)
			}
			sort.Strings(names)
			return nil, errors.NewPipelineConfigError("cyclic library dependencies among %s", strings.Join(names, ", "))
		}
		sort.Slice(wave, func(i, j int) bool { return wave[i].Name < wave[j].Name })
		for _, lib := range wave {
			done[lib.Name] = true
			delete(remaining, lib.Name)
		}
		waves = append(waves, wave)
	}
	return waves, nil
}

// Select returns a manifest restricted to the named libraries and
// everything they depend on.
func (m *Manifest) Select(names ...string) (*Manifest, error) {
	keep := make(map[string]bool)
	var visit func(name string) error
	visit = func(name string) error {
		if keep[name] {
			return nil
		}
		lib, ok := m.Library(name)
		if !ok {
			declared := make([]string, len(m.Libraries))
			for i, l := range m.Libraries {
				declared[i] = l.Name
			}
			return errors.WithHintf(
				errors.WrapNotFound(errors.Newf("library %s is not declared", name), "select"),
				"declared libraries: %s", strings.Join(declared, ", "))
		}
		keep[name] = true
		for _, dep := range lib.DependencyNames() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	r := &Manifest{dir: m.dir}
	for _, lib := range m.Libraries {
		if keep[lib.Name] {
			r.Libraries = append(r.Libraries, lib)
		}
	}
	return r, nil
}
