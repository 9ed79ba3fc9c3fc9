// Package mirror copies the remote bounty ledger into a local store and keeps
// the recent part of it fresh.
package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alp4ka/bountypager"
)

// DefaultRefreshWindow is how many of the newest mirrored indices are re-read
// on every sync. Claims, cancellations and payouts only change existing rows.
const DefaultRefreshWindow = 100

// Store is the local side of the mirror.
type Store interface {
	Length(ctx context.Context) (int, error)
	Upsert(ctx context.Context, start int, records []bountypager.RawBounty) error
}

// Report summarizes one Sync run.
type Report struct {
	RemoteLength int
	LocalLength  int
	Appended     int
	Refreshed    int
	Duration     time.Duration
}

type Syncer struct {
	remote        bountypager.BatchFetcher
	local         Store
	batchSize     int
	refreshWindow int
	logger        zerolog.Logger
}

func NewSyncer(remote bountypager.BatchFetcher, local Store, logger zerolog.Logger) *Syncer {
	return &Syncer{
		remote:        remote,
		local:         local,
		batchSize:     bountypager.DefaultBatchSize,
		refreshWindow: DefaultRefreshWindow,
		logger:        logger,
	}
}

func (s *Syncer) WithBatchSize(batchSize int) *Syncer {
	if batchSize > 0 {
		s.batchSize = batchSize
	}

	return s
}

// WithRefreshWindow sets how many of the newest mirrored rows are re-read.
// Zero disables refreshing.
func (s *Syncer) WithRefreshWindow(window int) *Syncer {
	if window >= 0 {
		s.refreshWindow = window
	}

	return s
}

// Sync appends remote entries the store has not seen yet and refreshes the
// newest RefreshWindow entries it has. Batches are written in ascending index
// order, so a failed run leaves the store a valid, shorter prefix.
func (s *Syncer) Sync(ctx context.Context) (Report, error) {
	started := time.Now()

	remoteLength, err := s.remote.Length(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("cannot sync: %w", err)
	}
	localLength, err := s.local.Length(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("cannot sync: %w", err)
	}

	report := Report{RemoteLength: remoteLength, LocalLength: localLength}
	if localLength > remoteLength {
		return report, fmt.Errorf("cannot sync: local mirror has %d entries, remote ledger only %d", localLength, remoteLength)
	}

	from := max(0, localLength-s.refreshWindow)
	for start := from; start < remoteLength; start += s.batchSize {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		end := min(start+s.batchSize, remoteLength) - 1
		records, err := s.remote.FetchRange(ctx, start, end)
		if err != nil {
			return report, fmt.Errorf("cannot sync [%d, %d]: %w", start, end, err)
		}
		if len(records) != end-start+1 {
			return report, fmt.Errorf("cannot sync [%d, %d]: %w: got %d records",
				start, end, bountypager.ErrRemoteUnavailable, len(records))
		}
		if err = s.local.Upsert(ctx, start, records); err != nil {
			return report, fmt.Errorf("cannot sync [%d, %d]: %w", start, end, err)
		}

		refreshed := max(0, min(end+1, localLength)-start)
		report.Refreshed += refreshed
		report.Appended += len(records) - refreshed
		report.LocalLength = max(report.LocalLength, end+1)
	}
	report.Duration = time.Since(started)

	s.logger.Info().
		Int("remote_length", report.RemoteLength).
		Int("appended", report.Appended).
		Int("refreshed", report.Refreshed).
		Dur("took", report.Duration).
		Msg("bounty mirror synced")

	return report, nil
}
