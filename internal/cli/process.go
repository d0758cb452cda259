package cli

import (
	"github.com/spf13/cobra"

	"github.com/eidora/mythos/internal/myth"
)

func init() {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Transform one interaction into a narrative fragment",
		Run:   runProcess,
	}

	cmd.Flags().StringP("user", "u", "", "User input text (required)")
	cmd.Flags().StringP("response", "r", "", "AI response text (required)")
	cmd.Flags().StringP("outcome", "o", "success", "Outcome: success, failure, ambiguous")
	cmd.Flags().StringP("session", "s", "", "Session id")
	cmd.Flags().Bool("ai", false, "Use model generation when configured")

	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("response")

	RootCmd.AddCommand(cmd)
}

func runProcess(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	response, _ := cmd.Flags().GetString("response")
	outcome, _ := cmd.Flags().GetString("outcome")
	session, _ := cmd.Flags().GetString("session")
	useAI, _ := cmd.Flags().GetBool("ai")

	eng, archive := openEngine()
	defer archive.Close()

	interaction := myth.Interaction{
		UserInput:  user,
		AIResponse: response,
		Outcome:    myth.Outcome(outcome),
		SessionID:  session,
	}

	var (
		fragment myth.Fragment
		err      error
	)
	if useAI {
		fragment, err = eng.ProcessInteractionAI(cmd.Context(), interaction)
	} else {
		fragment, err = eng.ProcessInteraction(cmd.Context(), interaction)
	}
	if err != nil {
		exitErr("process", err)
	}

	printFragment(fragment)
}
