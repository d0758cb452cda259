package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eidora/mythos/internal/store"
)

// statusListLimit caps the listing, matching the HTTP surface.
const statusListLimit = 1000

func init() {
	cmd := &cobra.Command{
		Use:   "status [client-name]",
		Short: "Record a client status check, or list recent ones",
		Args:  cobra.MaximumNArgs(1),
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	archive := openArchive()
	defer archive.Close()

	if len(args) == 0 {
		checks, err := archive.StatusChecks(cmd.Context(), statusListLimit)
		if err != nil {
			exitErr("status", err)
		}
		printStatusChecks(checks)
		return
	}

	check := store.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: args[0],
		Timestamp:  time.Now().UTC(),
	}
	if err := archive.SaveStatusCheck(cmd.Context(), check); err != nil {
		exitErr("status", err)
	}
	printStatusCheck(check)
}
