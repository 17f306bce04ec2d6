package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/util"
)

var initManifest string
var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Args:  cobra.NoArgs,
	Short: "Initialises the SDK",
	Long: `Downloads the repo launcher, checks out all SDK repositories listed in
the manifest and installs the toolchains.`,
	Run: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initManifest, "manifest", "", "Repo manifest to check out")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Discard an existing checkout")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	base, err := util.GetInitBase()
	check(err)
	log.Debug("Initialising SDK in '%s'.\n", base)
	p := pipelineFor(base)
	check(p.Init(cmd.Context(), initManifest, initForce))
	log.Success("Initialization finished.\n")
}
