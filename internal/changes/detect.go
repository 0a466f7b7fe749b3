// Package changes classifies the files of a branch tree against the ancestor
// tree as added or modified.
//
// Files that exist in the ancestor but not in the branch are not reported:
// deletions are invisible to the merge.
package changes

import (
	"bytes"
	"io"
	"os"

	"treemerge.dev/treemerge/internal/errors"
	"treemerge.dev/treemerge/internal/tree"
)

const compareChunkSize = 32 * 1024

// Logger is the logging surface of the merge stages. tui.Splog satisfies it;
// the conflict and apply packages alias this type.
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Skipped is a path whose comparison failed and was left out of the report
type Skipped struct {
	Path string
	Err  error
}

// Report is the change report of one branch against the ancestor
type Report struct {
	Branch   string
	Added    tree.FileSet
	Modified tree.FileSet
	Skipped  []Skipped
}

// HasChanges reports whether the branch added or modified anything
func (r Report) HasChanges() bool {
	return r.Added.Len() > 0 || r.Modified.Len() > 0
}

// Detect compares branch against ancestor. Read failures are recoverable:
// the path is recorded in Skipped and treated as neither added nor modified.
func Detect(ancestor, branch tree.Tree, log Logger) Report {
	report := Report{
		Branch:   branch.Name,
		Added:    branch.Files.Difference(ancestor.Files),
		Modified: tree.FileSet{},
	}

	for _, path := range branch.Files.Intersect(ancestor.Files).Sorted() {
		same, err := SameContent(ancestor.Path(path), branch.Path(path))
		if err != nil {
			log.Warn("Skipping %s in %s: %v", path, branch.Name, err)
			report.Skipped = append(report.Skipped, Skipped{Path: path, Err: err})
			continue
		}
		if !same {
			report.Modified[path] = struct{}{}
		}
	}

	log.Debug("%s: %d added, %d modified, %d skipped",
		branch.Name, report.Added.Len(), report.Modified.Len(), len(report.Skipped))
	return report
}

// SameContent reports whether two files hold identical bytes.
// Sizes are compared first; timestamps are never consulted.
func SameContent(pathA, pathB string) (bool, error) {
	infoA, err := os.Stat(pathA)
	if err != nil {
		return false, errors.NewFileOpError(errors.OpRead, pathA, err)
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false, errors.NewFileOpError(errors.OpRead, pathB, err)
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fa, err := os.Open(pathA)
	if err != nil {
		return false, errors.NewFileOpError(errors.OpRead, pathA, err)
	}
	defer fa.Close()
	fb, err := os.Open(pathB)
	if err != nil {
		return false, errors.NewFileOpError(errors.OpRead, pathB, err)
	}
	defer fb.Close()

	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if errA != nil && !doneA {
			return false, errors.NewFileOpError(errors.OpRead, pathA, errA)
		}
		if errB != nil && !doneB {
			return false, errors.NewFileOpError(errors.OpRead, pathB, errB)
		}
		if doneA || doneB {
			return doneA && doneB, nil
		}
	}
}
