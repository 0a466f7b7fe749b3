package cli

import (
	"github.com/spf13/cobra"

	"treemerge.dev/treemerge/internal/actions/merge"
	"treemerge.dev/treemerge/internal/cli/common"
	"treemerge.dev/treemerge/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var flags common.LayoutFlags

	cmd := &cobra.Command{
		Use:          "status [root]",
		Aliases:      []string{"st"},
		Short:        "Show what each branch changed and which files conflict",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, args, &flags, func(ctx *runtime.Context) error {
				_, err := merge.Status(ctx)
				return err
			})
		},
	}

	flags.Register(cmd)
	return cmd
}
