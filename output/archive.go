package output

import (
	"fmt"
	"os"

	"golang.org/x/tools/txtar"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/version"
)

// Archive returns every artifact of result as one txtar file, named
// <backend>/<path>. It is meant for review and snapshot tests.
func Archive(result *codegen.Result) []byte {
	ar := &txtar.Archive{
		Comment: []byte(fmt.Sprintf("%s\n%d files\n", version.Get(), len(result.Artifacts))),
	}
	for _, a := range result.Artifacts {
		ar.Files = append(ar.Files, txtar.File{
			Name: a.Backend + "/" + a.Path,
			Data: []byte(a.Content),
		})
	}
	return txtar.Format(ar)
}

// WriteArchive stores Archive(result) at path.
func WriteArchive(path string, result *codegen.Result) error {
	if err := os.WriteFile(path, Archive(result), fileMode); err != nil {
		return errors.Wrapf(err, "failed to write archive %s", path)
	}
	return nil
}

// ReadArchive loads an archive written by WriteArchive into a map from file name to content.
func ReadArchive(path string) (map[string]string, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read archive %s", path)
	}
	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}
	return files, nil
}
