package bountypager

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Feed_LoadMoreUntilExhausted(t *testing.T) {
	ledger := ledgerOf(40)
	feed := NewFeed(NewEngine(ledger), 18, zerolog.Nop())

	require.NoError(t, feed.Load(context.Background()))
	state := feed.State()
	require.True(t, state.Loaded)
	require.Len(t, state.Items, 18)
	require.True(t, state.HasMore)

	require.NoError(t, feed.LoadMore(context.Background()))
	require.Len(t, feed.State().Items, 36)

	require.NoError(t, feed.LoadMore(context.Background()))
	state = feed.State()
	require.Len(t, state.Items, 40)
	require.False(t, state.HasMore)
	require.Nil(t, state.Cursor)

	calls := len(ledger.Calls())
	require.NoError(t, feed.LoadMore(context.Background()))
	require.Len(t, ledger.Calls(), calls, "exhausted feed must not hit the ledger")
	require.Len(t, lo.Uniq(ids(feed.State().Items)), 40)
}

func Test_Feed_LoadMoreBeforeLoad(t *testing.T) {
	feed := NewFeed(NewEngine(ledgerOf(5)), 2, zerolog.Nop())

	require.NoError(t, feed.LoadMore(context.Background()))
	require.Equal(t, []uint64{4, 3}, ids(feed.State().Items))
}

func Test_Feed_ErrorKeepsLastKnownGoodState(t *testing.T) {
	ledger := ledgerOf(10)
	var logs bytes.Buffer
	feed := NewFeed(NewEngine(ledger), 4, zerolog.New(&logs))

	require.NoError(t, feed.Load(context.Background()))
	before := feed.State()

	ledger.FailWith(errors.New("rate limited"))
	err := feed.LoadMore(context.Background())
	require.ErrorIs(t, err, ErrRemoteUnavailable)
	require.Equal(t, before, feed.State())
	require.Contains(t, logs.String(), "feed load more failed")

	ledger.FailWith(nil)
	require.NoError(t, feed.LoadMore(context.Background()))
	require.Equal(t, []uint64{9, 8, 7, 6, 5, 4, 3, 2}, ids(feed.State().Items))
}

func Test_Feed_LoadRefreshes(t *testing.T) {
	ledger := ledgerOf(6)
	feed := NewFeed(NewEngine(ledger), 3, zerolog.Nop())

	require.NoError(t, feed.Load(context.Background()))
	require.NoError(t, feed.LoadMore(context.Background()))
	require.Len(t, feed.State().Items, 6)

	ledger.Set(4, claimedBounty(4, 500))
	require.NoError(t, feed.Load(context.Background()))
	require.Equal(t, []uint64{5, 3, 2}, ids(feed.State().Items))
	require.True(t, feed.State().HasMore)
}

func Test_Feed_ConcurrentLoadMore(t *testing.T) {
	feed := NewFeed(NewEngine(ledgerOf(200)), 5, zerolog.Nop())
	require.NoError(t, feed.Load(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, feed.LoadMore(context.Background()))
		}()
	}
	wg.Wait()

	got := ids(feed.State().Items)
	require.Len(t, got, 55)
	require.Len(t, lo.Uniq(got), 55)
	for i, id := range got {
		require.Equal(t, uint64(199-i), id)
	}
}

func Test_PaginateOrEmpty(t *testing.T) {
	ledger := ledgerOf(3)
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	res, err := PaginateOrEmpty(context.Background(), NewEngine(ledger), NewCursorPager(), logger)
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	require.Empty(t, logs.String())

	ledger.FailWith(errors.New("boom"))
	res, err = PaginateOrEmpty(context.Background(), NewEngine(ledger), NewCursorPager(), logger)
	require.ErrorIs(t, err, ErrRemoteUnavailable)
	require.NotNil(t, res)
	require.Empty(t, res.Items)
	require.False(t, res.HasMore)
	require.Equal(t, 0, res.LastIndex)
	require.Contains(t, logs.String(), "pagination failed, serving empty page")
}
