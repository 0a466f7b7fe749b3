// Package tree enumerates the regular files of a directory tree as
// root-relative, forward-slash paths.
package tree

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"treemerge.dev/treemerge/internal/errors"
)

// Scan walks root and returns every regular file below it. A root that is a
// symlink to a directory is followed; symlinks and special files below the
// root are skipped, as are subdirectories that cannot be read.
// It fails with an error matching errors.ErrNotFound when root is missing or
// is not a directory.
func Scan(root string) (FileSet, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.NewRootNotFoundError("tree", root)
	}

	// WalkDir does not descend into a symlinked root
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, errors.NewRootNotFoundError("tree", root)
	}

	files := FileSet{}
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == resolved {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, ok := relative(resolved, path)
		if !ok {
			return nil
		}
		files[rel] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, errors.NewRootNotFoundError("tree", root)
	}
	return files, nil
}

// relative converts path into a slash-separated path below root
func relative(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// Join turns a relative slash path back into a filesystem path under root
func Join(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
