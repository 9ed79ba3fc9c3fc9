package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/bountypager/mirror"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy the contract ledger into the local mirror once",
		RunE:  runSync,
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ledger, err := e.dialLedger(ctx)
	if err != nil {
		return err
	}
	defer ledger.Close()

	local, err := e.openStore(ctx)
	if err != nil {
		return err
	}

	report, err := mirror.NewSyncer(ledger, local, e.logger).
		WithRefreshWindow(e.cfg.RefreshWindow).
		Sync(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Mirrored %d/%d entries: %d appended, %d refreshed in %s\n",
		report.LocalLength, report.RemoteLength, report.Appended, report.Refreshed, report.Duration)
	return nil
}
