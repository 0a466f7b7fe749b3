package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"treemerge.dev/treemerge/internal/cli/common"
	"treemerge.dev/treemerge/internal/config"
	"treemerge.dev/treemerge/internal/runtime"
	"treemerge.dev/treemerge/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var flags common.LayoutFlags

	cmd := &cobra.Command{
		Use:   "init [root]",
		Short: "Write the merge root configuration",
		Long: `Write the merge root configuration.

The resolved directory names and labels are stored in .treemerge_config at the
merge root so later runs need no flags.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, args, &flags, func(ctx *runtime.Context) error {
				layout := ctx.Layout
				if err := layout.ToConfig().Save(layout.Root); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}

				ctx.Splog.Info("Wrote %s", config.Path(layout.Root))
				ctx.Splog.Info("  ancestor: %s", tui.ColorCyan(layout.AncestorDir))
				ctx.Splog.Info("  branch A: %s (label %s)", tui.ColorCyan(layout.BranchADir), layout.LabelA)
				ctx.Splog.Info("  branch B: %s (label %s)", tui.ColorCyan(layout.BranchBDir), layout.LabelB)
				return nil
			})
		},
	}

	flags.Register(cmd)
	return cmd
}
