// Package store keeps a local copy of the bounty ledger in a SQL database.
//
// The mirror always holds a contiguous prefix of the ledger, rows 0..n-1, so
// it can serve as a bountypager.BatchFetcher on its own.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Alp4ka/bountypager"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var _ledgerOrder = bountypager.Orderings{{Column: "ledger_index", Direction: bountypager.DirectionASC}}

// Open connects to dsn using one of the supported drivers.
func Open(driver string, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates or updates the bounties table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&BountyRow{}); err != nil {
		return fmt.Errorf("failed to migrate bounties table: %w", err)
	}

	return nil
}

// Length - implements bountypager.BatchFetcher. Returns the number of
// mirrored ledger entries.
func (s *Store) Length(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&BountyRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: count bounties: %w", bountypager.ErrRemoteUnavailable, err)
	}

	return int(n), nil
}

// FetchRange - implements bountypager.BatchFetcher.
func (s *Store) FetchRange(ctx context.Context, start, end int) ([]bountypager.RawBounty, error) {
	query, err := _ledgerOrder.Apply(
		s.db.WithContext(ctx).Where("ledger_index BETWEEN ? AND ?", start, end),
	)
	if err != nil {
		return nil, err
	}

	var rows []BountyRow
	if err = query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch bounties [%d, %d]: %w", bountypager.ErrRemoteUnavailable, start, end, err)
	}

	return lo.Map(rows, func(r BountyRow, _ int) bountypager.RawBounty {
		return r.toRaw()
	}), nil
}

// Upsert writes records at ledger indices start, start+1, ... replacing the
// mutable columns of rows that already exist.
func (s *Store) Upsert(ctx context.Context, start int, records []bountypager.RawBounty) error {
	if len(records) == 0 {
		return nil
	}

	syncedAt := s.now().UTC()
	rows := lo.Map(records, func(r bountypager.RawBounty, i int) BountyRow {
		return newBountyRow(start+i, r, syncedAt)
	})

	err := s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "ledger_index"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"amount_wei",
				"claimer",
				"claim_id",
				"synced_at",
			}),
		},
	).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d bounties at %d: %w", len(rows), start, err)
	}

	return nil
}

var _ bountypager.BatchFetcher = (*Store)(nil)
