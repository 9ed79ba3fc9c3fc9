package bountypager

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Engine walks a BatchFetcher backward from a cursor and collects eligible
// bounties into pages. It keeps no state between calls.
type Engine struct {
	fetcher   BatchFetcher
	batchSize int
	convert   AmountConverter
}

func NewEngine(fetcher BatchFetcher) *Engine {
	return &Engine{
		fetcher:   fetcher,
		batchSize: DefaultBatchSize,
		convert:   WeiToEther,
	}
}

// WithBatchSize overrides the number of indices read per remote call.
// Values <= 0 restore DefaultBatchSize.
func (e *Engine) WithBatchSize(batchSize int) *Engine {
	e.batchSize = lo.Ternary(batchSize > 0, batchSize, DefaultBatchSize)

	return e
}

// WithAmountConverter overrides the minor-unit conversion. Nil restores
// WeiToEther.
func (e *Engine) WithAmountConverter(convert AmountConverter) *Engine {
	e.convert = lo.Ternary(convert != nil, convert, AmountConverter(WeiToEther))

	return e
}

// Length returns the current number of records in the ledger, eligible or not.
func (e *Engine) Length(ctx context.Context) (int, error) {
	length, err := e.fetcher.Length(ctx)
	if err != nil {
		return 0, asRemoteUnavailable(err)
	}
	if length < 0 {
		return 0, fmt.Errorf("%w: negative ledger length %d", ErrRemoteUnavailable, length)
	}

	return length, nil
}

// Paginate collects up to pager.GetLimit() eligible bounties, walking the
// ledger from the pager's cursor (or the tail) toward index 0 in fixed-size
// batches. Batches are fetched one at a time in strictly decreasing order.
//
// The ledger length is read once per call; records appended during the walk
// are picked up by the next call from the tail.
//
// Either a complete page or an error is returned, never both. Remote
// failures match ErrRemoteUnavailable, bad input matches ErrInvalidCursor,
// and a cancelled ctx stops the walk between batches.
func (e *Engine) Paginate(ctx context.Context, pager *CursorPager) (*PaginationResult, error) {
	if pager == nil {
		pager = NewCursorPager()
	}

	length, err := e.Length(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	totalLength := length - 1
	if err = pager.validate(totalLength); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	limit := pager.GetLimit()
	index := pager.GetCursor().GetIndex(totalLength)
	if limit == 0 || index < 0 {
		return newPaginationResult(nil, limit, index), nil
	}

	var (
		accumulated []Bounty // descending ledger index
		lastIndex   = index
		unlimited   = limit == NoLimit
	)
	for index >= 0 {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		rangeStart := max(0, index-e.batchSize+1)
		batch, err := e.fetchEligible(ctx, rangeStart, index)
		if err != nil {
			return nil, fmt.Errorf("cannot paginate: %w", err)
		}
		accumulated = append(accumulated, batch...)

		lastIndex = rangeStart - 1
		if !unlimited && len(accumulated) >= limit {
			// The batch overshot: resume right below the oldest kept record so
			// the trimmed remainder is served by the next page.
			if len(accumulated) > limit {
				lastIndex = accumulated[limit-1].Index - 1
				accumulated = accumulated[:limit]
			}
			break
		}

		index = rangeStart - 1
	}

	sortNewestFirst(accumulated)

	return newPaginationResult(accumulated, limit, lastIndex), nil
}

// fetchEligible reads [start, end] and returns the eligible bounties in
// descending index order.
func (e *Engine) fetchEligible(ctx context.Context, start, end int) ([]Bounty, error) {
	raw, err := e.fetcher.FetchRange(ctx, start, end)
	if err != nil {
		return nil, asRemoteUnavailable(err)
	}
	if want := end - start + 1; len(raw) != want {
		return nil, fmt.Errorf("%w: range [%d, %d] returned %d records, expected %d",
			ErrRemoteUnavailable, start, end, len(raw), want)
	}

	bounties := lo.FilterMap(raw, func(r RawBounty, i int) (Bounty, bool) {
		b := r.ToBounty(start+i, e.convert)
		return b, b.IsEligible()
	})
	slices.Reverse(bounties)

	return bounties, nil
}

func asRemoteUnavailable(err error) error {
	if errors.Is(err, ErrRemoteUnavailable) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
}
