package output

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/version"
)

// Manifest records what a generation run produced.
type Manifest struct {
	Generator string         `yaml:"generator"`
	Version   string         `yaml:"version"`
	Commit    string         `yaml:"commit"`
	Files     []ManifestFile `yaml:"files"`
}

// ManifestFile is one generated file.
type ManifestFile struct {
	// Path is slash-separated and relative to the output root
	Path   string `yaml:"path"`
	Kind   string `yaml:"kind"`
	SHA256 string `yaml:"sha256"`
}

// NewManifest describes result as produced by the running generator.
func NewManifest(result *codegen.Result) *Manifest {
	info := version.Get()
	m := &Manifest{
		Generator: "schemagen",
		Version:   info.Version,
		Commit:    info.Short(),
	}
	for _, a := range result.Artifacts {
		sum := sha256.Sum256([]byte(a.Content))
		m.Files = append(m.Files, ManifestFile{
			Path:   a.Backend + "/" + a.Path,
			Kind:   a.Kind.String(),
			SHA256: hex.EncodeToString(sum[:]),
		})
	}
	return m
}

// Hashes maps every manifest path to its hash.
func (m *Manifest) Hashes() map[string]string {
	out := make(map[string]string, len(m.Files))
	for _, f := range m.Files {
		out[f.Path] = f.SHA256
	}
	return out
}

// WriteManifest stores m as dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "failed to encode manifest")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// ReadManifest loads dir/manifest.yaml.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return &m, nil
}
