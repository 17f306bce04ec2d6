package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var synthesizeOptions = stage.DefaultOptions()

var synthesizeCmd = &cobra.Command{
	Use:               "synthesize " + targetUse,
	Args:              cobra.ExactArgs(2),
	Short:             "Synthesizes the design",
	Long:              `Synthesizes the generated netlist with the selected toolchain.`,
	Run:               runSynthesize,
	ValidArgsFunction: completeTarget,
}

func init() {
	addChoiceFlag(synthesizeCmd, &synthesizeOptions.Backend, "toolchain", "Toolchain to synthesize with", stage.Backends)
	addChoiceFlag(synthesizeCmd, &synthesizeOptions.Effort, "effort", "Synthesis effort", stage.Efforts)
	rootCmd.AddCommand(synthesizeCmd)
}

func runSynthesize(cmd *cobra.Command, args []string) {
	runStage(cmd, "synthesize", args, synthesizeOptions)
}
