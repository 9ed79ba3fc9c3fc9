package bountypager

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// FeedState is a read-only view of what a Feed currently shows.
type FeedState struct {
	Items   []Bounty
	HasMore bool
	Cursor  *IndexCursor
	Loaded  bool
}

// Feed keeps the "load more" list a UI renders. Calls are serialized, so two
// load requests can never walk overlapping ranges from a stale cursor.
type Feed struct {
	mu       sync.Mutex
	engine   *Engine
	pageSize int
	logger   zerolog.Logger

	items   []Bounty
	cursor  *IndexCursor
	hasMore bool
	loaded  bool
}

// NewFeed returns a Feed that pages through engine pageSize bounties at a
// time. Non-positive page sizes fall back to DefaultLimit.
func NewFeed(engine *Engine, pageSize int, logger zerolog.Logger) *Feed {
	return &Feed{
		engine:   engine,
		pageSize: NormalizeLimit(pageSize),
		logger:   logger,
	}
}

// Load discards the current cursor and fetches the newest page. Use it for the
// initial load and whenever the caller knows remote state has changed, e.g.
// after a cancellation went through.
//
// On error the previously loaded state is kept.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := f.engine.Paginate(ctx, NewCursorPager().WithLimit(f.pageSize))
	if err != nil {
		f.logger.Error().Err(err).Msg("feed load failed")
		return err
	}

	f.items = res.Items
	f.cursor = res.NextPageToken
	f.hasMore = res.HasMore
	f.loaded = true

	return nil
}

// LoadMore appends the next page. It loads the first page if nothing was
// loaded yet and does nothing once the feed is exhausted.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if !f.loaded {
		f.mu.Unlock()
		return f.Load(ctx)
	}
	defer f.mu.Unlock()

	if !f.hasMore {
		return nil
	}

	res, err := f.engine.Paginate(ctx, NewCursorPager().WithLimit(f.pageSize).WithCursor(f.cursor))
	if err != nil {
		f.logger.Error().Err(err).Str("cursor", f.cursor.String()).Msg("feed load more failed")
		return err
	}

	f.items = append(f.items, res.Items...)
	f.cursor = res.NextPageToken
	f.hasMore = res.HasMore

	return nil
}

// State returns a copy of the current feed.
func (f *Feed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return FeedState{
		Items:   append([]Bounty(nil), f.items...),
		HasMore: f.hasMore,
		Cursor:  f.cursor,
		Loaded:  f.loaded,
	}
}

// PaginateOrEmpty runs engine.Paginate and substitutes an empty last page on
// failure. The error is logged and still returned, so callers that only care
// about rendering can ignore it while "failed" stays distinguishable from
// "no more bounties".
func PaginateOrEmpty(
	ctx context.Context,
	engine *Engine,
	pager *CursorPager,
	logger zerolog.Logger,
) (*PaginationResult, error) {
	res, err := engine.Paginate(ctx, pager)
	if err != nil {
		logger.Error().Err(err).Str("cursor", pager.GetCursor().String()).Msg("pagination failed, serving empty page")
		return &PaginationResult{Items: []Bounty{}, HasMore: false, LastIndex: 0, AppliedLimit: pager.GetLimit()}, err
	}

	return res, nil
}
