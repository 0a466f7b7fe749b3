package merge

import (
	"os"

	"treemerge.dev/treemerge/internal/changes"
	"treemerge.dev/treemerge/internal/config"
	"treemerge.dev/treemerge/internal/conflict"
	"treemerge.dev/treemerge/internal/errors"
	"treemerge.dev/treemerge/internal/tree"
	"treemerge.dev/treemerge/internal/tui"
)

// Analysis is everything computed before the ancestor tree is touched
type Analysis struct {
	Trees     conflict.Trees
	ChangesA  changes.Report
	ChangesB  changes.Report
	Conflicts conflict.Report
	Plan      conflict.Plan
}

// ValidateRoots checks that the ancestor and both branch roots are
// directories. It runs before any file is read.
func ValidateRoots(layout config.Layout) error {
	roots := []struct {
		role string
		path string
	}{
		{"ancestor", layout.AncestorPath()},
		{"branch A", layout.BranchAPath()},
		{"branch B", layout.BranchBPath()},
	}
	for _, r := range roots {
		info, err := os.Stat(r.path)
		if err != nil || !info.IsDir() {
			return errors.NewRootNotFoundError(r.role, r.path)
		}
	}
	return nil
}

// Analyze validates the layout, scans the three trees, detects both
// branches' changes, and builds the merge plan. It never writes.
func Analyze(layout config.Layout, splog *tui.Splog) (*Analysis, error) {
	if err := ValidateRoots(layout); err != nil {
		return nil, err
	}

	ancestor, err := tree.Load(layout.AncestorDir, layout.AncestorPath())
	if err != nil {
		return nil, err
	}
	branchA, err := tree.Load(layout.BranchADir, layout.BranchAPath())
	if err != nil {
		return nil, err
	}
	branchB, err := tree.Load(layout.BranchBDir, layout.BranchBPath())
	if err != nil {
		return nil, err
	}
	splog.Debug("Scanned %d ancestor files, %d in %s, %d in %s",
		ancestor.Files.Len(), branchA.Files.Len(), branchA.Name, branchB.Files.Len(), branchB.Name)

	analysis := &Analysis{
		Trees: conflict.Trees{Ancestor: ancestor, A: branchA, B: branchB},
	}
	analysis.ChangesA = changes.Detect(ancestor, branchA, splog)
	analysis.ChangesB = changes.Detect(ancestor, branchB, splog)

	markers := conflict.Markers{LabelA: layout.LabelA, LabelB: layout.LabelB}
	analysis.Conflicts, analysis.Plan = conflict.Detect(analysis.Trees, analysis.ChangesA, analysis.ChangesB, markers, splog)

	return analysis, nil
}
