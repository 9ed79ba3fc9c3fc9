package mirror

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Schedule registers a job that runs syncer every interval. Runs never overlap:
// a tick that fires while a sync is in progress is skipped.
func Schedule(ctx context.Context, s gocron.Scheduler, syncer *Syncer, interval time.Duration) (gocron.Job, error) {
	return s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := syncer.Sync(ctx); err != nil {
				syncer.logger.Error().Err(err).Msg("bounty mirror sync failed")
			}
		}),
		gocron.WithName("bounty-mirror-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
}
