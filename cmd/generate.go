package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var generateCmd = &cobra.Command{
	Use:               "generate " + targetUse,
	Args:              cobra.ExactArgs(2),
	Short:             "Generates the SOC design",
	Long:              `Generates the Verilog netlist and the hardware description of a target.`,
	Run:               runGenerate,
	ValidArgsFunction: completeTarget,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	runStage(cmd, "generate", args, stage.DefaultOptions())
}
