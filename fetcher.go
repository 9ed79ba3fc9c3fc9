package bountypager

import (
	"context"
	"fmt"
	"sync"
)

// BatchFetcher reads a remote, append-only ledger of bounties.
//
// FetchRange returns the records stored at indices [start, end] inclusive in
// ascending index order, where 0 <= start <= end < Length(). Failures should
// wrap ErrRemoteUnavailable; the engine wraps anything that does not.
type BatchFetcher interface {
	Length(ctx context.Context) (int, error)
	FetchRange(ctx context.Context, start, end int) ([]RawBounty, error)
}

// IndexRange is an inclusive [Start, End] span of ledger indices.
type IndexRange struct {
	Start int
	End   int
}

// MemoryLedger is an in-process BatchFetcher. It records every range it
// serves, which makes it handy for exercising the engine and the mirror.
type MemoryLedger struct {
	mu      sync.Mutex
	records []RawBounty
	err     error
	calls   []IndexRange
}

func NewMemoryLedger(records ...RawBounty) *MemoryLedger {
	return &MemoryLedger{records: append([]RawBounty(nil), records...)}
}

// Append adds records at the tail of the ledger.
func (l *MemoryLedger) Append(records ...RawBounty) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, records...)
}

// Set replaces the record at index, e.g. to simulate a claim or a payout.
func (l *MemoryLedger) Set(index int, record RawBounty) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records[index] = record
}

// FailWith makes every following call return err. Pass nil to recover.
func (l *MemoryLedger) FailWith(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.err = err
}

// Calls returns the ranges served so far, in call order.
func (l *MemoryLedger) Calls() []IndexRange {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]IndexRange(nil), l.calls...)
}

// Length - implements BatchFetcher.
func (l *MemoryLedger) Length(_ context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRemoteUnavailable, l.err)
	}

	return len(l.records), nil
}

// FetchRange - implements BatchFetcher.
func (l *MemoryLedger) FetchRange(_ context.Context, start, end int) ([]RawBounty, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, l.err)
	}
	if start < 0 || end < start || end >= len(l.records) {
		return nil, fmt.Errorf("%w: range [%d, %d] outside ledger of length %d",
			ErrRemoteUnavailable, start, end, len(l.records))
	}

	l.calls = append(l.calls, IndexRange{Start: start, End: end})

	return append([]RawBounty(nil), l.records[start:end+1]...), nil
}

var _ BatchFetcher = (*MemoryLedger)(nil)
