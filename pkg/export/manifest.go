package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest's name inside the output directory.
const ManifestFile = "manifest.yaml"

// ErrChecksumMismatch reports an artifact whose bytes changed since the
// manifest was written.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Manifest lists the artifacts of one run. It carries nothing run specific
// so identical inputs give an identical manifest.
type Manifest struct {
	Artifacts []Artifact `yaml:"artifacts"`
}

// Find returns the artifact called name.
func (m *Manifest) Find(name string) (Artifact, bool) {
	for _, a := range m.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// WriteManifest writes the artifacts, sorted by name, to manifest.yaml.
func (w *Writer) WriteManifest(artifacts []Artifact) (string, error) {
	sorted := slices.Clone(artifacts)
	slices.SortFunc(sorted, func(a, b Artifact) int { return strings.Compare(a.Name, b.Name) })

	data, err := yaml.Marshal(&Manifest{Artifacts: sorted})
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}

	path := filepath.Join(w.dir, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadManifest loads a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &m, nil
}

// Verify recomputes the checksum of every artifact in dir and reports all
// mismatches together.
func (m *Manifest) Verify(dir string) error {
	var errs []error
	for _, a := range m.Artifacts {
		path := filepath.Join(dir, a.File)
		sum, err := Checksum(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if sum != a.Checksum {
			errs = append(errs, fmt.Errorf("%s: %w", a.File, ErrChecksumMismatch))
		}
	}
	return errors.Join(errs...)
}
