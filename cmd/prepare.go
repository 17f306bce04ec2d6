package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var prepareCmd = &cobra.Command{
	Use:               "prepare " + targetUse,
	Args:              cobra.ExactArgs(2),
	Short:             "Prepares all files of a target",
	Long:              `Generates the board support files the firmware build of a target needs.`,
	Run:               runPrepare,
	ValidArgsFunction: completeTarget,
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) {
	runStage(cmd, "prepare", args, stage.DefaultOptions())
}
