package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Alp4ka/bountypager"
	"github.com/Alp4ka/bountypager/mirror"
	"github.com/Alp4ka/bountypager/store"
)

type Config struct {
	Env             string
	RPCURL          string
	ContractAddress string
	DBDriver        string
	DatabaseURL     string
	Port            string
	PageSize        int
	SyncInterval    time.Duration
	RefreshWindow   int
}

// Load reads .env and .env.local when present, then the environment.
func Load() (Config, error) {
	// Missing env files are fine, the environment may be set directly.
	_ = godotenv.Load(".env", ".env.local")

	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	var errs []error

	c := Config{
		Env:             getenv("APP_ENV", "development"),
		RPCURL:          getenv("RPC_URL", ""),
		ContractAddress: getenv("CONTRACT_ADDRESS", ""),
		DBDriver:        strings.ToLower(getenv("DB_DRIVER", store.DriverSQLite)),
		DatabaseURL:     getenv("DATABASE_URL", "bounties.db"),
		Port:            getenv("PORT", "8080"),
	}

	pageSize, err := strconv.Atoi(getenv("PAGE_SIZE", strconv.Itoa(bountypager.DefaultLimit)))
	if err != nil {
		errs = append(errs, fmt.Errorf("PAGE_SIZE: %w", err))
	}
	c.PageSize = bountypager.NormalizeLimit(pageSize)

	c.SyncInterval, err = time.ParseDuration(getenv("SYNC_INTERVAL", "1m"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SYNC_INTERVAL: %w", err))
	} else if c.SyncInterval <= 0 {
		errs = append(errs, fmt.Errorf("SYNC_INTERVAL must be positive, got %s", c.SyncInterval))
	}

	c.RefreshWindow, err = strconv.Atoi(getenv("SYNC_REFRESH_WINDOW", strconv.Itoa(mirror.DefaultRefreshWindow)))
	if err != nil {
		errs = append(errs, fmt.Errorf("SYNC_REFRESH_WINDOW: %w", err))
	} else if c.RefreshWindow < 0 {
		errs = append(errs, fmt.Errorf("SYNC_REFRESH_WINDOW must not be negative, got %d", c.RefreshWindow))
	}

	switch c.DBDriver {
	case store.DriverSQLite, store.DriverPostgres, store.DriverMySQL:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver '%s'", c.DBDriver))
	}

	if err = errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

// RequireRemote reports whether the contract connection settings are present.
func (c Config) RequireRemote() error {
	if c.RPCURL == "" {
		return errors.New("RPC_URL environment variable not set")
	}
	if c.ContractAddress == "" {
		return errors.New("CONTRACT_ADDRESS environment variable not set")
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
