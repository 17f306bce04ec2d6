package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var benchmarkCmd = &cobra.Command{
	Use:               "benchmark " + targetUse,
	Args:              cobra.ExactArgs(2),
	Short:             "Benchmarks a firmware on the board",
	Long:              `Runs the benchmark GDB script on the firmware with the clock frequency of the generated design.`,
	Run:               runBenchmark,
	ValidArgsFunction: completeTarget,
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) {
	runStage(cmd, "benchmark", args, stage.DefaultOptions())
}
