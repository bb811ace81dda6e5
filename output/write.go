// Package output puts generation results on disk: one directory per backend,
// a manifest of file hashes, an up-to-date check and a txtar snapshot.
package output

import (
	"os"
	"path/filepath"
	"time"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
)

// ManifestName is the name of the manifest written at the output root.
const ManifestName = "manifest.yaml"

const (
	dirMode  = 0755
	fileMode = 0644
)

// WriteOptions control Write.
type WriteOptions struct {
	// Clean removes the directory of every written backend first, so files of
	// deleted schemas disappear
	Clean bool
	// Manifest writes manifest.yaml next to the backend directories
	Manifest bool
}

// Write stores every artifact of result under dir/<backend>/<path>.
func Write(dir string, result *codegen.Result, opts WriteOptions) error {
	log := logger.ComponentLogger("output")
	start := time.Now()

	if opts.Clean {
		for _, backend := range result.Backends() {
			if err := os.RemoveAll(filepath.Join(dir, backend)); err != nil {
				return errors.Wrapf(err, "failed to clean %s", backend)
			}
		}
	}

	for _, a := range result.Artifacts {
		path := ArtifactPath(dir, a)
		if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", a.Path)
		}
		if err := os.WriteFile(path, []byte(a.Content), fileMode); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
	}

	if opts.Manifest {
		if err := WriteManifest(dir, NewManifest(result)); err != nil {
			return err
		}
	}

	log.Infow("Wrote generated files",
		logger.FieldDir, dir,
		logger.FieldCount, len(result.Artifacts),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return nil
}

// ArtifactPath is the location of a under dir.
func ArtifactPath(dir string, a codegen.Artifact) string {
	return filepath.Join(dir, a.Backend, filepath.FromSlash(a.Path))
}
