package cli

import (
	"github.com/spf13/cobra"

	"github.com/eidora/mythos/internal/myth"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dream",
		Short: "Generate a dream sequence proposing a self-name",
		Run:   runDream,
	}

	cmd.Flags().Bool("ai", false, "Use model generation when configured")
	cmd.Flags().Bool("evolution", false, "Dream about collective identity evolution")

	RootCmd.AddCommand(cmd)
}

func runDream(cmd *cobra.Command, args []string) {
	useAI, _ := cmd.Flags().GetBool("ai")
	evolution, _ := cmd.Flags().GetBool("evolution")

	eng, archive := openEngine()
	defer archive.Close()

	var (
		dream myth.Dream
		err   error
	)
	switch {
	case evolution:
		dream, err = eng.GenerateEvolutionDream(cmd.Context())
	case useAI:
		dream, err = eng.GenerateDreamAI(cmd.Context())
	default:
		dream, err = eng.GenerateDream(cmd.Context())
	}
	if err != nil {
		exitErr("dream", err)
	}

	printDream(dream)
}
