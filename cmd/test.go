package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var testCmd = &cobra.Command{
	Use:               "test " + targetUse + " <case>",
	Args:              cobra.ExactArgs(3),
	Short:             "Runs a test case of a target",
	Long:              `Runs a simulation test case against the generated design of a target.`,
	Run:               runTest,
	ValidArgsFunction: completeTarget,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) {
	o := stage.DefaultOptions()
	o.Case = args[2]
	runStage(cmd, "test", args, o)
}
