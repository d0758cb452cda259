package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "narratives",
		Short: "List recent narrative fragments",
		Run:   runNarratives,
	}

	cmd.Flags().IntP("limit", "l", 10, "Max results")

	RootCmd.AddCommand(cmd)
}

func runNarratives(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	eng, archive := openEngine()
	defer archive.Close()

	fragments, err := eng.Fragments(cmd.Context(), limit)
	if err != nil {
		exitErr("narratives", err)
	}

	printFragments(fragments)
}
