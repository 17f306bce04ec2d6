package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var debugCmd = &cobra.Command{
	Use:               "debug " + targetUse,
	Args:              cobra.ExactArgs(2),
	Short:             "Debugs a firmware with GDB",
	Long:              `Starts the openocd debug bridge and runs GDB on the firmware of a target.`,
	Run:               runDebug,
	ValidArgsFunction: completeTarget,
}

func init() {
	rootCmd.AddCommand(debugCmd)
}

func runDebug(cmd *cobra.Command, args []string) {
	runStage(cmd, "debug", args, stage.DefaultOptions())
}
