package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var mapOptions = stage.DefaultOptions()

var mapCmd = &cobra.Command{
	Use:               "map " + targetUse,
	Args:              cobra.ExactArgs(2),
	Short:             "Maps the synthesized design",
	Long:              `Maps the synthesized netlist onto the cells of the process. Only the cadence toolchain has a separate map stage.`,
	Run:               runMap,
	ValidArgsFunction: completeTarget,
}

func init() {
	mapOptions.Backend = stage.Cadence
	addChoiceFlag(mapCmd, &mapOptions.Backend, "toolchain", "Toolchain to map with", stage.Backends)
	addChoiceFlag(mapCmd, &mapOptions.Effort, "effort", "Mapping effort", stage.Efforts)
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) {
	runStage(cmd, "map", args, mapOptions)
}
