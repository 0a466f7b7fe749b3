package cli

import (
	"github.com/spf13/cobra"

	"treemerge.dev/treemerge/internal/actions/merge"
	"treemerge.dev/treemerge/internal/cli/common"
	"treemerge.dev/treemerge/internal/runtime"
)

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	var (
		dryRun      bool
		diff        bool
		diffContext int
		yes         bool
		flags       common.LayoutFlags
	)

	cmd := &cobra.Command{
		Use:   "merge [root]",
		Short: "Merge both branch trees into the ancestor tree",
		Long: `Merge both branch trees into the ancestor tree.

Files added in only one branch are copied into the ancestor. Files added in
both branches are reported and left alone. Files modified in one branch take
that branch's content; files modified in both are merged line by line and any
line changed differently is written with conflict markers.

Deletions in either branch are not propagated.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, args, &flags, func(ctx *runtime.Context) error {
				_, err := merge.Action(ctx, merge.Options{
					DryRun:      dryRun || diff,
					ShowDiff:    diff,
					DiffContext: diffContext,
					Confirm:     !yes, // If --yes is set, don't confirm
				})
				return err
			})
		},
	}

	flags.Register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the merge plan without writing anything")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a unified diff of every planned write (implies --dry-run)")
	cmd.Flags().IntVar(&diffContext, "diff-context", 3, "Lines of context around each change in --diff output")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
