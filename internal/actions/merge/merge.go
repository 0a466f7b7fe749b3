// Package merge drives a three-way tree merge: analyze, report, confirm,
// and apply the plan into the ancestor tree.
package merge

import (
	"fmt"

	"treemerge.dev/treemerge/internal/apply"
	"treemerge.dev/treemerge/internal/diff"
	"treemerge.dev/treemerge/internal/runtime"
	"treemerge.dev/treemerge/internal/tui"
)

// maxDiffBytes caps the size of a single file's diff preview
const maxDiffBytes = 1 << 20

// Options contains options for the merge command
type Options struct {
	DryRun      bool
	ShowDiff    bool
	DiffContext int // lines of context in diff previews, 0 means the default
	Confirm     bool
}

// Action performs the merge operation using the analyze/apply pattern.
// The returned result is nil when nothing was written (dry run, empty plan,
// or a declined confirmation). Apply failures do not stop the run; they are
// reported and returned together as one error once every file has been
// attempted.
func Action(ctx *runtime.Context, opts Options) (*apply.Result, error) {
	splog := ctx.Splog
	layout := ctx.Layout

	// 1. Validate roots and build the plan
	analysis, err := Analyze(layout, splog)
	if err != nil {
		return nil, err
	}

	// 2. Display what each branch changed and what conflicts
	if !splog.IsQuiet() {
		splog.Page(FormatChanges(layout.Root, analysis.ChangesA, analysis.ChangesB))
		splog.Page(FormatConflicts(analysis.Conflicts, analysis.Plan))
	}

	if analysis.Plan.IsEmpty() {
		splog.Info("Nothing to merge")
		return nil, nil
	}

	// 3. Dry run: show the plan and stop
	if opts.DryRun {
		splog.Page(FormatPlan(analysis.Trees, analysis.Plan, analysis.Conflicts))
		if opts.ShowDiff && !splog.IsQuiet() {
			splog.Page(FormatDiffs(analysis.Trees, analysis.Plan,
				diff.Options{Context: opts.DiffContext, MaxBytes: maxDiffBytes}))
		}
		return nil, nil
	}

	// 4. Confirm if needed
	if opts.Confirm && tui.IsTTY() {
		confirmed, err := tui.PromptConfirm(fmt.Sprintf("Write %d added and %d merged files into %s?",
			len(analysis.Plan.DirectAdds), len(analysis.Plan.ContentWrites), layout.AncestorDir), true)
		if err != nil {
			return nil, fmt.Errorf("confirmation canceled: %w", err)
		}
		if !confirmed {
			splog.Info("Merge canceled")
			return nil, nil
		}
	}

	// 5. Apply the plan, collecting progress concurrently
	reporter := tui.NewChannelApplyReporter()
	sources := make(map[string]string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range reporter.Updates() {
			if update.Type == tui.ApplyUpdateAdded {
				sources[update.Path] = update.Source
			}
		}
	}()

	result := apply.Apply(analysis.Trees, analysis.Conflicts, analysis.Plan, splog, apply.Options{Reporter: reporter})
	reporter.Close()
	<-done
	splog.Page(FormatResult(result, analysis.Conflicts, sources))
	splog.Debug("Applied %d adds, %d clean writes, %d conflicted writes",
		len(result.AppliedAdds), len(result.AppliedWrites), len(result.ConflictedWrites))

	if analysis.Conflicts.ContentConflicts.Len() > 0 {
		splog.Newline()
		splog.Tip("Search for %q in %s to find the conflict blocks", "<<<<<<<", layout.AncestorDir)
	}

	if err := result.Err(); err != nil {
		splog.Error("%d of %d file operations failed", len(result.Failures),
			len(analysis.Plan.DirectAdds)+len(analysis.Plan.ContentWrites))
		return &result, fmt.Errorf("merge applied with failures: %w", err)
	}
	return &result, nil
}

// Status analyzes the merge root and prints the change and conflict
// reports without writing anything.
func Status(ctx *runtime.Context) (*Analysis, error) {
	analysis, err := Analyze(ctx.Layout, ctx.Splog)
	if err != nil {
		return nil, err
	}
	if !ctx.Splog.IsQuiet() {
		ctx.Splog.Page(FormatChanges(ctx.Layout.Root, analysis.ChangesA, analysis.ChangesB))
		ctx.Splog.Page(FormatConflicts(analysis.Conflicts, analysis.Plan))
	}
	return analysis, nil
}
