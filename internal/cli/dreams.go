package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dreams",
		Short: "List recent dream sequences",
		Run:   runDreams,
	}

	cmd.Flags().IntP("limit", "l", 5, "Max results")

	RootCmd.AddCommand(cmd)
}

func runDreams(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	eng, archive := openEngine()
	defer archive.Close()

	dreams, err := eng.Dreams(cmd.Context(), limit)
	if err != nil {
		exitErr("dreams", err)
	}

	printDreams(dreams)
}
