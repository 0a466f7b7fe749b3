package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treemerge",
		Short: "Treemerge merges two branch trees into their common ancestor tree",
		Long: `Treemerge merges two branch trees into their common ancestor tree.

A merge root holds three directories: the ancestor (default "master") and two
branches (default "branch_a" and "branch_b"). Files added or changed in either
branch are written into the ancestor. Lines changed differently in both
branches are written with conflict markers.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	// Add subcommands
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}
