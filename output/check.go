package output

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/version"
)

// CheckResult holds the result of comparing generated files with a fresh generation.
type CheckResult struct {
	// Added are files a fresh generation produces that are missing on disk
	Added []string
	// Removed are files on disk that a fresh generation no longer produces
	Removed []string
	// Changed are files whose content differs
	Changed []string
}

// UpToDate reports whether the files on disk match the fresh generation.
func (r *CheckResult) UpToDate() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Err returns nil when up to date, else an error marked ErrOutOfDate that lists every difference.
func (r *CheckResult) Err() error {
	if r.UpToDate() {
		return nil
	}
	var details []string
	for _, group := range []struct {
		label string
		files []string
	}{{"added", r.Added}, {"removed", r.Removed}, {"changed", r.Changed}} {
		for _, f := range group.files {
			details = append(details, group.label+": "+f)
		}
	}
	err := errors.Markf(errors.ErrOutOfDate, "%d generated files are out of date", len(details))
	err = errors.WithDetail(err, strings.Join(details, "\n"))
	return errors.WithHint(err, "run 'schemagen generate' to update them")
}

// Check writes result to a temporary directory and compares it with the
// files of the same backends under dir. The manifest is not compared; its
// generator version changes between releases without any schema change.
func Check(dir string, result *codegen.Result) (*CheckResult, error) {
	log := logger.ComponentLogger("output")
	warnIfNewer(dir)

	tempDir, err := os.MkdirTemp("", "schemagen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if err := Write(tempDir, result, WriteOptions{}); err != nil {
		return nil, err
	}

	check := &CheckResult{}
	for _, backend := range result.Backends() {
		fresh := filepath.Join(tempDir, backend)
		existing := filepath.Join(dir, backend)

		err := compareDirectory(fresh, existing, func(rel string, present bool) {
			if present {
				check.Changed = append(check.Changed, backend+"/"+rel)
			} else {
				check.Added = append(check.Added, backend+"/"+rel)
			}
		})
		if err != nil {
			return nil, err
		}

		stale, err := missingFrom(existing, fresh)
		if err != nil {
			return nil, err
		}
		for _, rel := range stale {
			check.Removed = append(check.Removed, backend+"/"+rel)
		}
	}

	sort.Strings(check.Added)
	sort.Strings(check.Removed)
	sort.Strings(check.Changed)

	log.Debugw("Compared generated files",
		logger.FieldDir, dir,
		"added", len(check.Added),
		"removed", len(check.Removed),
		"changed", len(check.Changed))
	return check, nil
}

// compareDirectory walks freshDir and reports every file that is missing from
// existingDir (present=false) or differs from its copy there (present=true).
func compareDirectory(freshDir, existingDir string, report func(rel string, present bool)) error {
	return filepath.WalkDir(freshDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(freshDir, path)
		if err != nil {
			return err
		}

		want, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		got, err := os.ReadFile(filepath.Join(existingDir, rel))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			report(filepath.ToSlash(rel), false)
		case err != nil:
			return errors.Wrapf(err, "failed to read %s", rel)
		case !bytes.Equal(want, got):
			report(filepath.ToSlash(rel), true)
		}
		return nil
	})
}

// missingFrom lists the files under dir that do not exist under other.
func missingFrom(dir, other string) ([]string, error) {
	var missing []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) && path == dir {
			return filepath.SkipDir
		}
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if _, err := os.Stat(filepath.Join(other, rel)); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, filepath.ToSlash(rel))
		}
		return nil
	})
	return missing, err
}

// warnIfNewer logs when dir was generated by a newer schemagen than the running one.
func warnIfNewer(dir string) {
	m, err := ReadManifest(dir)
	if err != nil {
		return
	}
	newer, err := version.Newer(m.Version)
	if err != nil || !newer {
		return
	}
	logger.ComponentLogger("output").Warnw("Generated files come from a newer schemagen",
		logger.FieldDir, dir,
		"manifest_version", m.Version,
		"running_version", version.Get().Version)
}
