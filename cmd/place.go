package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var placeOptions = stage.DefaultOptions()

var placeCmd = &cobra.Command{
	Use:               "place " + targetUse,
	Args:              cobra.ExactArgs(2),
	Short:             "Places and routes the design",
	Long:              `Places and routes the mapped design, stopping after the selected stage.`,
	Run:               runPlace,
	ValidArgsFunction: completeTarget,
}

func init() {
	placeOptions.Backend = stage.Cadence
	addChoiceFlag(placeCmd, &placeOptions.Backend, "toolchain", "Toolchain to place with", stage.Backends)
	addChoiceFlag(placeCmd, &placeOptions.PlaceStage, "stage", "Stage to stop after", stage.PlaceStages)
	addChoiceFlag(placeCmd, &placeOptions.Effort, "effort", "Placing effort", stage.Efforts)
	rootCmd.AddCommand(placeCmd)
}

func runPlace(cmd *cobra.Command, args []string) {
	runStage(cmd, "place", args, placeOptions)
}
