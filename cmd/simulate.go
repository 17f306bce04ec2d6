package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var simulateOptions = stage.DefaultOptions()

var simulateCmd = &cobra.Command{
	Use:   "simulate " + targetUse,
	Args:  cobra.ExactArgs(2),
	Short: "Simulates a design",
	Long: `Simulates the SOC on a virtual board. The oss toolchain runs the
SpinalHDL simulation and opens the waveform, xilinx runs the Vivado
simulation and cadence a gate-level simulation.`,
	Run:               runSimulate,
	ValidArgsFunction: completeTarget,
}

func init() {
	simulateOptions.Backend = stage.OSS
	addChoiceFlag(simulateCmd, &simulateOptions.Backend, "toolchain", "Toolchain to simulate with", stage.Backends)
	addChoiceFlag(simulateCmd, &simulateOptions.Source, "source", "Netlist to simulate", stage.Sources)
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) {
	runStage(cmd, "simulate", args, simulateOptions)
}
