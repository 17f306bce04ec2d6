package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var compileOptions = stage.DefaultOptions()

var compileCmd = &cobra.Command{
	Use:   "compile " + targetUse + " <bootrom|zephyr|menuconfig> [application]",
	Args:  cobra.RangeArgs(3, 4),
	Short: "Compiles a firmware",
	Long: `Compiles the bootrom or a Zephyr application for a target, or opens the
configuration menu of an existing Zephyr build.`,
	Run: runCompile,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 2 {
			return choices(stage.FirmwareKinds), cobra.ShellCompDirectiveNoFileComp
		}
		if len(args) > 2 {
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
		return completeTarget(cmd, args, toComplete)
	},
}

func init() {
	compileCmd.Flags().BoolVarP(&compileOptions.Force, "force", "f", false, "Rebuild from scratch")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) {
	kind, err := stage.ParseFirmwareKind(args[2])
	check(err)
	compileOptions.Firmware = kind
	if len(args) == 4 {
		compileOptions.Application = args[3]
	}
	runStage(cmd, "compile", args, compileOptions)
}
