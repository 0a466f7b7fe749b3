package merge

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"treemerge.dev/treemerge/internal/apply"
	"treemerge.dev/treemerge/internal/changes"
	"treemerge.dev/treemerge/internal/conflict"
	"treemerge.dev/treemerge/internal/diff"
	"treemerge.dev/treemerge/internal/tui"
)

// FormatChanges renders both branches' change reports
func FormatChanges(root string, reports ...changes.Report) string {
	var b strings.Builder
	b.WriteString(tui.Heading("=== Branch changes ==="))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Merge root: %s\n", root)

	for _, r := range reports {
		fmt.Fprintf(&b, "\n[%s vs ancestor]\n", tui.ColorCyan(r.Branch))
		if !r.HasChanges() {
			b.WriteString("  No changes\n")
		}
		writeList(&b, "  Added", r.Added.Sorted(), "-")
		writeList(&b, "  Modified", r.Modified.Sorted(), "-")
		if len(r.Skipped) > 0 {
			fmt.Fprintf(&b, "  Skipped: %d\n", len(r.Skipped))
			for _, s := range r.Skipped {
				fmt.Fprintf(&b, "    %s %s: %v\n", tui.ColorYellow("?"), s.Path, s.Err)
			}
		}
	}
	return b.String()
}

// FormatConflicts renders the conflict report and a summary of what can be merged
func FormatConflicts(report conflict.Report, plan conflict.Plan) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(tui.Heading("=== Conflict report ==="))
	b.WriteString("\n")

	if report.AddConflicts.Len() > 0 {
		fmt.Fprintf(&b, "\nAdd conflicts (%d):\n", report.AddConflicts.Len())
		for _, path := range report.AddConflicts.Sorted() {
			fmt.Fprintf(&b, "  %s %s: added in both branches\n", tui.ColorRed("-"), path)
		}
	}
	if report.ContentConflicts.Len() > 0 {
		fmt.Fprintf(&b, "\nContent conflicts (%d):\n", report.ContentConflicts.Len())
		for _, path := range report.ContentConflicts.Sorted() {
			fmt.Fprintf(&b, "  %s %s: same line changed differently\n", tui.ColorRed("-"), path)
		}
	}
	if len(report.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSkipped (%d):\n", len(report.Skipped))
		for _, s := range report.Skipped {
			fmt.Fprintf(&b, "  %s %s: %v\n", tui.ColorYellow("?"), s.Path, s.Err)
		}
	}
	if !report.HasConflicts() {
		fmt.Fprintf(&b, "\n%s\n", tui.ColorGreen("No conflicts detected, safe to merge"))
	}

	b.WriteString("\nMergeable:\n")
	fmt.Fprintf(&b, "  Added files: %d\n", len(plan.DirectAdds))
	fmt.Fprintf(&b, "  Modified files: %d\n", len(plan.ContentWrites))
	return b.String()
}

// FormatPlan renders every planned operation without applying it
func FormatPlan(trees conflict.Trees, plan conflict.Plan, report conflict.Report) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(tui.Heading("=== Merge plan (dry run) ==="))
	b.WriteString("\n")

	for _, add := range plan.DirectAdds {
		fmt.Fprintf(&b, "  %s %s %s\n", tui.ColorGreen("+"), add.Path,
			tui.ColorDim("(from "+trees.Branch(add.Source).Name+")"))
	}
	for _, path := range plan.WritePaths() {
		fmt.Fprintf(&b, "  %s %s%s\n", tui.ColorCyan("*"), path, conflictTag(report, path))
	}
	fmt.Fprintf(&b, "\nNo files were written to %s\n", trees.Ancestor.Name)
	return b.String()
}

// FormatDiffs renders a unified diff preview for every planned file
func FormatDiffs(trees conflict.Trees, plan conflict.Plan, opts diff.Options) string {
	var b strings.Builder

	for _, add := range plan.DirectAdds {
		source := trees.Branch(add.Source)
		lines, _, err := conflict.ReadLines(source.Path(add.Path))
		if err != nil {
			fmt.Fprintf(&b, "# %s: %v\n", add.Path, err)
			continue
		}
		b.WriteString(diff.Preview(add.Path, nil, lines, opts))
	}
	for _, path := range plan.WritePaths() {
		current, _, err := conflict.ReadLines(trees.Ancestor.Path(path))
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(&b, "# %s: %v\n", path, err)
			continue
		}
		b.WriteString(diff.Preview(path, current, plan.ContentWrites[path], opts))
	}
	return b.String()
}

// FormatResult renders the outcome of applying the plan
func FormatResult(result apply.Result, report conflict.Report, sources map[string]string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(tui.Heading("=== Merge result ==="))
	b.WriteString("\n")

	fmt.Fprintf(&b, "\nAdded files: %d\n", len(result.AppliedAdds))
	for _, path := range result.AppliedAdds {
		line := fmt.Sprintf("  %s %s", tui.ColorGreen("+"), path)
		if source, ok := sources[path]; ok {
			line += " " + tui.ColorDim("(from "+source+")")
		}
		b.WriteString(line + "\n")
	}

	written := append(append([]string{}, result.AppliedWrites...), result.ConflictedWrites...)
	sort.Strings(written)
	fmt.Fprintf(&b, "\nMerged files: %d\n", len(written))
	for _, path := range written {
		fmt.Fprintf(&b, "  %s %s%s\n", tui.ColorCyan("*"), path, conflictTag(report, path))
	}

	if len(result.Failures) > 0 {
		fmt.Fprintf(&b, "\nFailed: %d\n", len(result.Failures))
		for _, f := range result.Failures {
			fmt.Fprintf(&b, "  %s %s: %v\n", tui.ColorRed("✗"), f.Path, f.Err)
		}
	}

	if result.Unresolved.Len() > 0 {
		fmt.Fprintf(&b, "\nNeeds manual resolution: %d\n", result.Unresolved.Len())
		for _, path := range result.Unresolved.Sorted() {
			if report.AddConflicts.Contains(path) {
				fmt.Fprintf(&b, "  %s %s: both branches added this file; choose a version by hand\n", tui.ColorYellow("!"), path)
			} else {
				fmt.Fprintf(&b, "  %s %s: resolve the conflict markers in the merged file\n", tui.ColorYellow("!"), path)
			}
		}
	}

	b.WriteString("\nMerge finished\n")
	return b.String()
}

func writeList(b *strings.Builder, title string, paths []string, bullet string) {
	fmt.Fprintf(b, "%s: %d\n", title, len(paths))
	for _, path := range paths {
		fmt.Fprintf(b, "    %s %s\n", bullet, path)
	}
}

func conflictTag(report conflict.Report, path string) string {
	if report.ContentConflicts.Contains(path) {
		return " " + tui.ColorYellow("(contains conflict markers)")
	}
	return ""
}
