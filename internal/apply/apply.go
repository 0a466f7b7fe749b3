// Package apply writes a merge plan into the ancestor tree.
//
// Every file operation is independent: a failed copy or write is recorded and
// the remaining operations still run. Nothing is rolled back.
package apply

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"treemerge.dev/treemerge/internal/conflict"
	"treemerge.dev/treemerge/internal/errors"
	"treemerge.dev/treemerge/internal/tree"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Logger is the logging surface shared by every merge stage
type Logger = conflict.Logger

// ProgressReporter receives per-file progress. All methods are optional
// observers; they cannot influence the result.
type ProgressReporter interface {
	FileAdded(path string, source string)
	FileWritten(path string, conflicted bool)
	FileFailed(path string, err error)
}

// Options configures Apply
type Options struct {
	Reporter ProgressReporter // Optional
}

// Failure is a single file operation that did not complete
type Failure struct {
	Path string
	Err  error
}

// Result is the outcome of applying a plan
type Result struct {
	AppliedAdds      []string
	AppliedWrites    []string // written without conflict markers
	ConflictedWrites []string // written with conflict markers
	Unresolved       tree.FileSet
	Failures         []Failure
}

// Err aggregates every failure into a single error, or returns nil
func (r Result) Err() error {
	var result *multierror.Error
	for _, f := range r.Failures {
		result = multierror.Append(result, f.Err)
	}
	return result.ErrorOrNil()
}

// Apply copies direct adds from their source branch and writes every planned
// content into trees.Ancestor, creating parent directories as needed.
func Apply(trees conflict.Trees, report conflict.Report, plan conflict.Plan, log Logger, opts Options) Result {
	result := Result{Unresolved: report.Unresolved()}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	for _, add := range plan.DirectAdds {
		source := trees.Branch(add.Source)
		if err := copyFile(source.Path(add.Path), trees.Ancestor.Path(add.Path)); err != nil {
			log.Warn("Failed to add %s from %s: %v", add.Path, source.Name, err)
			result.Failures = append(result.Failures, Failure{Path: add.Path, Err: err})
			reporter.FileFailed(add.Path, err)
			continue
		}
		log.Debug("Added %s from %s", add.Path, source.Name)
		result.AppliedAdds = append(result.AppliedAdds, add.Path)
		reporter.FileAdded(add.Path, source.Name)
	}

	for _, path := range plan.WritePaths() {
		if err := writeLines(trees.Ancestor.Path(path), plan.ContentWrites[path]); err != nil {
			log.Warn("Failed to write %s: %v", path, err)
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			reporter.FileFailed(path, err)
			continue
		}
		conflicted := report.ContentConflicts.Contains(path)
		if conflicted {
			result.ConflictedWrites = append(result.ConflictedWrites, path)
		} else {
			result.AppliedWrites = append(result.AppliedWrites, path)
		}
		log.Debug("Wrote %s (conflicted: %t)", path, conflicted)
		reporter.FileWritten(path, conflicted)
	}

	return result
}

// copyFile copies src to dst byte for byte, keeping the permission bits and
// modification time of src.
func copyFile(src, dst string) error {
	fail := func(err error) error {
		return errors.NewFileOpError(errors.OpCopy, dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fail(err)
	}
	if !info.Mode().IsRegular() {
		return fail(fmt.Errorf("%s is not a regular file", src))
	}

	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return fail(err)
	}
	if err := refuseSymlink(dst); err != nil {
		return fail(err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fail(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fail(err)
	}
	if err := out.Close(); err != nil {
		return fail(err)
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fail(err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fail(err)
	}
	return nil
}

// writeLines replaces the content of path with lines
func writeLines(path string, lines conflict.Lines) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.NewFileOpError(errors.OpWrite, path, err)
	}
	if err := refuseSymlink(path); err != nil {
		return errors.NewFileOpError(errors.OpWrite, path, err)
	}
	if err := os.WriteFile(path, lines.Bytes(), filePerm); err != nil {
		return errors.NewFileOpError(errors.OpWrite, path, err)
	}
	return nil
}

// refuseSymlink fails when path is a symlink. The scanner ignores symlinks,
// so writing through one would land outside the ancestor tree.
func refuseSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return nil
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to write through symlink %s", path)
	}
	return nil
}

type nopReporter struct{}

func (nopReporter) FileAdded(string, string) {}
func (nopReporter) FileWritten(string, bool) {}
func (nopReporter) FileFailed(string, error) {}
