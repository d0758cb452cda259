package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search narrative fragments by keyword",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	keyword := strings.Join(args, " ")

	eng, archive := openEngine()
	defer archive.Close()

	fragments, err := eng.Search(cmd.Context(), keyword)
	if err != nil {
		exitErr("search", err)
	}

	printFragments(fragments)
}
