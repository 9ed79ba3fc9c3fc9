package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/bountypager/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bountyfeed",
		Short: "Browse and mirror the on-chain bounty ledger",
		Long: `bountyfeed pages through the bounty contract newest first, keeps a local
SQL mirror of it and serves that mirror as a JSON feed.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(cli.Commands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
