package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/log"
)

var rootCmd = &cobra.Command{
	Use:   "elements",
	Short: "Builds, simulates, flashes and debugs Elements SOCs",
	Long: `Elements drives the hardware generator, the FPGA and ASIC toolchains,
the firmware build and the debugger for a SOC on a board. Every target is a
chip family and a board listed for it.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(log.Configure)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	if rootCmd.ExecuteContext(context.Background()) != nil {
		os.Exit(1)
	}
}
