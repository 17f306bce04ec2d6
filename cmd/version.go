package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/util"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "Prints the version of this tool",
	Long:  `Prints the version of this tool and the revision of the SDK manifest.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func manifestRevision(base string) (string, error) {
	repo, err := git.PlainOpen(filepath.Join(base, ".repo", "manifests"))
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", head.Hash().String()[:12], head.Name().Short()), nil
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("elements %s\n", util.ElementsVersion)

	base, err := util.GetSdkBase()
	if err != nil {
		log.Debug("%s\n", err)
		return
	}
	revision, err := manifestRevision(base)
	if err != nil {
		log.Debug("No SDK manifest in '%s': %s\n", base, err)
		return
	}
	fmt.Printf("manifest %s\n", revision)
}
