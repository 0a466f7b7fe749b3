// Package common provides shared helper functions for CLI commands.
package common

import (
	"github.com/spf13/cobra"

	"treemerge.dev/treemerge/internal/config"
	"treemerge.dev/treemerge/internal/runtime"
)

// LayoutFlags are the flags every command accepts: layout overrides and
// console verbosity
type LayoutFlags struct {
	AncestorDir string
	BranchADir  string
	BranchBDir  string
	LabelA      string
	LabelB      string
	Quiet       bool
}

// Register adds the layout flags to cmd
func (f *LayoutFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.AncestorDir, "ancestor", "", "Ancestor directory inside the merge root (default \"master\")")
	cmd.Flags().StringVar(&f.BranchADir, "branch-a", "", "Branch A directory inside the merge root (default \"branch_a\")")
	cmd.Flags().StringVar(&f.BranchBDir, "branch-b", "", "Branch B directory inside the merge root (default \"branch_b\")")
	cmd.Flags().StringVar(&f.LabelA, "label-a", "", "Label for branch A in conflict markers (default: branch A directory)")
	cmd.Flags().StringVar(&f.LabelB, "label-b", "", "Label for branch B in conflict markers (default: branch B directory)")
	cmd.Flags().BoolVarP(&f.Quiet, "quiet", "q", false, "Suppress console output; the log file still records the run")
}

// Overrides converts the flags into layout overrides
func (f *LayoutFlags) Overrides() config.Overrides {
	return config.Overrides{
		AncestorDir: f.AncestorDir,
		BranchADir:  f.BranchADir,
		BranchBDir:  f.BranchBDir,
		LabelA:      f.LabelA,
		LabelB:      f.LabelB,
	}
}

// RootArg returns the merge root argument, or "" for the working directory
func RootArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, args []string, flags *LayoutFlags, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(RootArg(args), flags.Overrides(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer ctx.Close()
	ctx.Splog.SetQuiet(flags.Quiet)
	return fn(ctx)
}
