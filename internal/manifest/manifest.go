// Package manifest loads the YAML project file that tells the CLI
// which .tree source to compile, what else it depends on, and which
// top-level names the build should export.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is a project's build description: one entry source file,
// any additional sources it needs on the path, where to write the
// compiled WebAssembly text, and which declarations must be present
// (and exported) in the result.
type Manifest struct {
	Entry   string   `yaml:"entry"`
	Sources []string `yaml:"sources"`
	Out     string   `yaml:"out"`
	Exports []string `yaml:"exports"`

	dir string
}

// Load reads and validates a manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.dir = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}
	return &m, nil
}

// Validate checks the manifest for consistency.
func (m *Manifest) Validate() error {
	if m.Entry == "" {
		return fmt.Errorf("missing required field: entry")
	}
	if filepath.Ext(m.Entry) != ".tree" {
		return fmt.Errorf("entry must have a .tree extension, got %q", m.Entry)
	}
	for _, s := range m.Sources {
		if filepath.Ext(s) != ".tree" {
			return fmt.Errorf("source %q must have a .tree extension", s)
		}
	}
	if m.Out == "" {
		return fmt.Errorf("missing required field: out")
	}
	seen := make(map[string]bool, len(m.Exports))
	for _, e := range m.Exports {
		if e == "" {
			return fmt.Errorf("exports entries must be non-empty")
		}
		if seen[e] {
			return fmt.Errorf("duplicate export %q", e)
		}
		seen[e] = true
	}
	return nil
}

// EntryPath resolves Entry relative to the manifest's own directory.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.dir, m.Entry)
}

// SourcePaths resolves every Sources entry relative to the manifest's
// own directory, Entry first.
func (m *Manifest) SourcePaths() []string {
	paths := make([]string, 0, len(m.Sources)+1)
	paths = append(paths, m.EntryPath())
	for _, s := range m.Sources {
		paths = append(paths, filepath.Join(m.dir, s))
	}
	return paths
}

// OutPath resolves Out relative to the manifest's own directory.
func (m *Manifest) OutPath() string {
	if filepath.IsAbs(m.Out) {
		return m.Out
	}
	return filepath.Join(m.dir, m.Out)
}

// MissingExports reports which of Exports were not found among
// declared, the set of names a successful build actually produced.
func (m *Manifest) MissingExports(declared map[string]bool) []string {
	var missing []string
	for _, e := range m.Exports {
		if !declared[e] {
			missing = append(missing, e)
		}
	}
	return missing
}
