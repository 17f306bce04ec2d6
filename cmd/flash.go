package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/stage"
)

var flashOptions = stage.DefaultOptions()

var flashCmd = &cobra.Command{
	Use:   "flash " + targetUse,
	Args:  cobra.ExactArgs(2),
	Short: "Flashes a bitstream or firmware",
	Long: `Writes the bitstream to the FPGA or the SPI flash of the board, or loads
the firmware into memory with the debugger.`,
	Run:               runFlash,
	ValidArgsFunction: completeTarget,
}

func init() {
	addChoiceFlag(flashCmd, &flashOptions.Destination, "destination", "Destination of the bitstream or firmware", stage.Destinations)
	rootCmd.AddCommand(flashCmd)
}

func runFlash(cmd *cobra.Command, args []string) {
	runStage(cmd, "flash", args, flashOptions)
}
