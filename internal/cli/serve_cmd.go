package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/bountypager"
	"github.com/Alp4ka/bountypager/internal/httpapi"
	"github.com/Alp4ka/bountypager/mirror"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bounty feed over HTTP from the local mirror",
		Long: `Serve the bounty feed over HTTP from the local mirror.

Unless --no-sync is given, the mirror is refreshed from the contract every
SYNC_INTERVAL while the server runs.`,
		RunE: runServe,
	}

	cmd.Flags().Bool("no-sync", false, "Serve the mirror as is, without contacting the contract")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	noSync, _ := cmd.Flags().GetBool("no-sync")

	e, err := loadEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	local, err := e.openStore(ctx)
	if err != nil {
		return err
	}

	if !noSync {
		ledger, err := e.dialLedger(ctx)
		if err != nil {
			return err
		}
		defer ledger.Close()

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("cannot create scheduler: %w", err)
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				e.logger.Error().Err(err).Msg("scheduler shutdown failed")
			}
		}()

		syncer := mirror.NewSyncer(ledger, local, e.logger).WithRefreshWindow(e.cfg.RefreshWindow)
		if _, err = mirror.Schedule(ctx, scheduler, syncer, e.cfg.SyncInterval); err != nil {
			return err
		}
		scheduler.Start()
		e.logger.Info().Dur("interval", e.cfg.SyncInterval).Msg("mirror sync scheduled")
	}

	app := httpapi.NewApp(httpapi.NewHandler(bountypager.NewEngine(local), e.cfg.PageSize, e.logger))

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info().Str("port", e.cfg.Port).Msg("http server listening")
		errCh <- app.Listen(":" + e.cfg.Port)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	e.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return nil
}
