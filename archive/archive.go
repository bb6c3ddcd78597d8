package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// skipDirs are directories never worth shipping to the analysis backend.
// This mirrors the walk filter the backend itself applies when scanning.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
}

// IsArchive reports whether path already looks like an uploadable archive.
func IsArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".gz", ".tgz", ".tar":
		return true
	}
	return false
}

// ProjectZip writes a zip archive of the project rooted at dir to w. Entries
// are stored relative to dir so the backend unpacks a plain project tree.
func ProjectZip(fs afero.Fs, dir string, w io.Writer) error {
	info, err := fs.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", dir)
	}

	zw := zip.NewWriter(w)

	err = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		entry, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		file, err := fs.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(entry, file)
		return err
	})
	if err != nil {
		return errors.Wrap(err, "building project archive")
	}

	return zw.Close()
}
