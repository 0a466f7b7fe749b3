// Package conflict turns two branch change reports into a merge plan.
//
// It resolves add-name collisions and runs a positional three-way line merge
// for files modified by both branches. Files that cannot be reconciled are
// still planned for writing, with inline conflict markers, and are listed in
// the conflict report.
package conflict

import (
	"treemerge.dev/treemerge/internal/changes"
	"treemerge.dev/treemerge/internal/errors"
	"treemerge.dev/treemerge/internal/tree"
)

// Logger is the logging surface shared by every merge stage
type Logger = changes.Logger

// Side identifies one of the two branches
type Side int

const (
	// SideA is the first branch
	SideA Side = iota
	// SideB is the second branch
	SideB
)

func (s Side) String() string {
	if s == SideB {
		return "B"
	}
	return "A"
}

// Trees holds the three scanned trees of a merge
type Trees struct {
	Ancestor tree.Tree
	A        tree.Tree
	B        tree.Tree
}

// Branch returns the tree of the given side
func (t Trees) Branch(side Side) tree.Tree {
	if side == SideB {
		return t.B
	}
	return t.A
}

// DirectAdd is a file added by exactly one branch, copied as is
type DirectAdd struct {
	Path   string
	Source Side
}

// Plan is everything that can be written into the ancestor tree,
// including conflict-marked content.
type Plan struct {
	DirectAdds    []DirectAdd
	ContentWrites map[string]Lines
}

// WritePaths returns the content write paths in lexical order
func (p Plan) WritePaths() []string {
	paths := make(tree.FileSet, len(p.ContentWrites))
	for path := range p.ContentWrites {
		paths[path] = struct{}{}
	}
	return paths.Sorted()
}

// IsEmpty reports whether the plan has nothing to apply
func (p Plan) IsEmpty() bool {
	return len(p.DirectAdds) == 0 && len(p.ContentWrites) == 0
}

// Report lists the paths that need manual resolution
type Report struct {
	AddConflicts     tree.FileSet
	ContentConflicts tree.FileSet
	// Skipped holds files that could not be read while planning
	Skipped []changes.Skipped
}

// HasConflicts reports whether anything needs manual resolution
func (r Report) HasConflicts() bool {
	return r.AddConflicts.Len() > 0 || r.ContentConflicts.Len() > 0
}

// Unresolved returns the union of add and content conflicts
func (r Report) Unresolved() tree.FileSet {
	return r.AddConflicts.Union(r.ContentConflicts)
}

// Detect builds the conflict report and merge plan from both branches'
// change reports.
func Detect(trees Trees, changesA, changesB changes.Report, markers Markers, log Logger) (Report, Plan) {
	report := Report{
		AddConflicts:     changesA.Added.Intersect(changesB.Added),
		ContentConflicts: tree.FileSet{},
	}
	plan := Plan{ContentWrites: map[string]Lines{}}

	plan.DirectAdds = planAdds(changesA.Added, changesB.Added, report.AddConflicts)

	bothModified := changesA.Modified.Intersect(changesB.Modified)
	for _, side := range []Side{SideA, SideB} {
		modified := changesA.Modified
		if side == SideB {
			modified = changesB.Modified
		}
		for _, path := range modified.Difference(bothModified).Sorted() {
			full := trees.Branch(side).Path(path)
			lines, _, err := ReadLines(full)
			if err != nil {
				report.Skipped = append(report.Skipped, skip(log, path, errors.NewFileOpError(errors.OpRead, full, err)))
				continue
			}
			plan.ContentWrites[path] = lines
		}
	}

	for _, path := range bothModified.Sorted() {
		hasConflict, merged, err := mergeFile(trees, path, markers, log)
		if err != nil {
			report.Skipped = append(report.Skipped, skip(log, path, err))
			continue
		}
		if hasConflict {
			report.ContentConflicts[path] = struct{}{}
		}
		plan.ContentWrites[path] = merged
	}

	log.Debug("Planned %d direct adds and %d content writes (%d add conflicts, %d content conflicts)",
		len(plan.DirectAdds), len(plan.ContentWrites), report.AddConflicts.Len(), report.ContentConflicts.Len())
	return report, plan
}

// planAdds stages every path added by exactly one side
func planAdds(addedA, addedB, conflicts tree.FileSet) []DirectAdd {
	var adds []DirectAdd
	for _, path := range addedA.Difference(conflicts).Sorted() {
		adds = append(adds, DirectAdd{Path: path, Source: SideA})
	}
	for _, path := range addedB.Difference(conflicts).Sorted() {
		adds = append(adds, DirectAdd{Path: path, Source: SideB})
	}
	return adds
}

// mergeFile reads the three versions of path and merges them line by line
func mergeFile(trees Trees, path string, markers Markers, log Logger) (bool, Lines, error) {
	versions := make([]Lines, 3)
	for i, t := range []tree.Tree{trees.Ancestor, trees.A, trees.B} {
		lines, data, err := ReadLines(t.Path(path))
		if err != nil {
			return false, nil, errors.NewFileOpError(errors.OpRead, t.Path(path), err)
		}
		if looksBinary(data) {
			log.Warn("%s in %s looks like binary content; merging it as text", path, t.Name)
		}
		versions[i] = lines
	}

	hasConflict, merged := MergeLines(versions[0], versions[1], versions[2], markers)
	return hasConflict, merged, nil
}

func skip(log Logger, path string, err error) changes.Skipped {
	log.Warn("Skipping %s: %v", path, err)
	return changes.Skipped{Path: path, Err: err}
}
