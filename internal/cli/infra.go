package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/bountypager/ethledger"
	"github.com/Alp4ka/bountypager/internal/config"
	"github.com/Alp4ka/bountypager/internal/logging"
	"github.com/Alp4ka/bountypager/store"
)

type env struct {
	cfg    config.Config
	logger zerolog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logging.New(cfg.Env)}, nil
}

func (e *env) dialLedger(ctx context.Context) (*ethledger.Ledger, error) {
	if err := e.cfg.RequireRemote(); err != nil {
		return nil, err
	}

	return ethledger.Dial(ctx, e.cfg.RPCURL, e.cfg.ContractAddress)
}

// openStore connects to the local mirror and brings its schema up to date.
func (e *env) openStore(ctx context.Context) (*store.Store, error) {
	db, err := store.Open(e.cfg.DBDriver, e.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	s := store.New(db)
	if err = s.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("cannot migrate %s mirror: %w", e.cfg.DBDriver, err)
	}

	return s, nil
}

// Commands returns every bountyfeed subcommand.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		ListCmd(),
		SyncCmd(),
		ServeCmd(),
	}
}
