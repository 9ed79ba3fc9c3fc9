package bountypager

import (
	"encoding/base64"
)

var _encoder = base64.RawURLEncoding

// PaginationResult is one page of the unclaimed bounty feed.
type PaginationResult struct {
	// Items eligible bounties, newest first.
	Items []Bounty
	// HasMore whether indices below LastIndex remain unexplored.
	HasMore bool
	// LastIndex highest ledger index not consumed by this page, -1 when the
	// start of the ledger has been reached.
	LastIndex int
	// AppliedLimit effective count used for the walk.
	AppliedLimit int
	// NextPageToken cursor for the next page. Nil when HasMore is false.
	NextPageToken *IndexCursor
}

func newPaginationResult(items []Bounty, limit int, lastIndex int) *PaginationResult {
	if items == nil {
		items = []Bounty{}
	}

	ret := &PaginationResult{
		Items:        items,
		HasMore:      lastIndex >= 0,
		LastIndex:    lastIndex,
		AppliedLimit: limit,
	}
	if ret.HasMore {
		ret.NextPageToken = NewIndexCursor(lastIndex)
	}

	return ret
}
