package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phytec-labs/elements/catalog"
)

var listChipFamiliesCmd = &cobra.Command{
	Use:   "list-chip-families",
	Args:  cobra.NoArgs,
	Short: "Lists all available chip families",
	Long:  `Lists all chip families declared in the SDK.`,
	Run:   runListChipFamilies,
}

var listBoardsCmd = &cobra.Command{
	Use:               "list-boards <chip-family>",
	Args:              cobra.ExactArgs(1),
	Short:             "Lists all boards available for a chip family",
	Long:              `Lists all boards the chip family can be built for.`,
	Run:               runListBoards,
	ValidArgsFunction: completeTarget,
}

func init() {
	rootCmd.AddCommand(listChipFamiliesCmd)
	rootCmd.AddCommand(listBoardsCmd)
}

func runListChipFamilies(cmd *cobra.Command, args []string) {
	families, err := catalog.New(sdkBase()).ChipFamilies()
	check(err)
	for _, family := range families {
		fmt.Println(family)
	}
}

func runListBoards(cmd *cobra.Command, args []string) {
	boards, err := catalog.New(sdkBase()).Boards(args[0])
	check(err)
	for _, board := range boards {
		fmt.Println(board)
	}
}
