package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/workspace"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Args:  cobra.NoArgs,
	Short: "Removes all build results",
	Long:  `Removes the build directory with the workspaces of all targets.`,
	Run:   runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	w := workspace.New(sdkBase())
	removed, err := w.Clean()
	check(err)
	if !removed {
		log.Log("Nothing to do!\n")
		return
	}
	log.Success("Removed '%s'.\n", w.Root())
}
