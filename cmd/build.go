package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var buildOptions = stage.DefaultOptions()

var buildCmd = &cobra.Command{
	Use:   "build " + targetUse + " [application]",
	Args:  cobra.RangeArgs(2, 3),
	Short: "Runs the complete flow of a target",
	Long: `Prepares the target, compiles every firmware the board declares,
generates and synthesizes the design, and maps and places it when the
toolchain has those stages. Stops at the first failing stage.`,
	Run:               runBuild,
	ValidArgsFunction: completeTarget,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildOptions.Force, "force", "f", false, "Rebuild the firmware from scratch")
	addChoiceFlag(buildCmd, &buildOptions.Backend, "toolchain", "Toolchain to synthesize with", stage.Backends)
	addChoiceFlag(buildCmd, &buildOptions.Effort, "effort", "Synthesis effort", stage.Efforts)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	if len(args) == 3 {
		buildOptions.Application = args[2]
	}
	runStage(cmd, "build", args, buildOptions)
}
