package bountypager

import (
	"fmt"

	"github.com/samber/lo"
)

// RawCursorPager is intended for API payloads. For proper code generation, inline it:
//
//	type FeedRequest struct {
//	    Paging RawCursorPager `json:",inline"`
//	}
type RawCursorPager struct {
	// Limit - maximum number of bounties to return in the response.
	Limit int `json:"limit" query:"limit"`
	// StartToken - base64-encoded cursor token obtained via IndexCursor.String().
	// If empty, the newest Limit bounties are returned.
	StartToken string `json:"startToken" query:"startToken"`
}

// Decode converts RawCursorPager into *CursorPager, normalizing Limit and
// validating StartToken.
func (p RawCursorPager) Decode() (*CursorPager, error) {
	return DecodeCursorPager(p.Limit, p.StartToken)
}

// CursorPager describes a single backward walk request: how many eligible
// bounties to collect and where to start.
type CursorPager struct {
	limit  int
	cursor *IndexCursor
}

// NewCursorPager returns a pager for DefaultLimit bounties from the tail.
func NewCursorPager() *CursorPager {
	return &CursorPager{limit: DefaultLimit}
}

// DecodeCursorPager decodes a cursor token into *CursorPager. The limit goes
// through NormalizeLimit, so API callers can never request an unbounded walk.
func DecodeCursorPager(limit int, rawStartToken string) (*CursorPager, error) {
	cursor, err := DecodeIndexCursor(rawStartToken)
	if err != nil {
		return nil, err
	}

	return (&CursorPager{
		cursor: cursor,
	}).WithLimit(NormalizeLimit(limit)), nil
}

// WithUnlimited makes the walk collect every eligible bounty down to index 0.
func (c *CursorPager) WithUnlimited() *CursorPager {
	if c == nil {
		c = new(CursorPager)
	}

	c.limit = NoLimit

	return c
}

// WithLimit sets the number of bounties to collect. The value is kept as is:
// negative limits other than NoLimit are rejected by Engine.Paginate.
func (c *CursorPager) WithLimit(limit int) *CursorPager {
	if c == nil {
		c = new(CursorPager)
	}

	c.limit = limit

	return c
}

// WithCursor sets the cursor explicitly. A nil cursor starts from the tail.
func (c *CursorPager) WithCursor(cursor *IndexCursor) *CursorPager {
	if c == nil {
		c = new(CursorPager)
	}

	c.cursor = cursor

	return c
}

// IsUnlimited returns true if the limit equals NoLimit.
func (c *CursorPager) IsUnlimited() bool {
	if c == nil {
		return false
	}

	return c.limit == NoLimit
}

// GetLimit returns the limit as it is stored in CursorPager.
func (c *CursorPager) GetLimit() int {
	if c == nil {
		return DefaultLimit
	}

	return c.limit
}

// GetCursor returns the cursor stored in CursorPager as-is.
func (c *CursorPager) GetCursor() *IndexCursor {
	if c == nil {
		return lo.Empty[*IndexCursor]()
	}

	return c.cursor
}

// Next returns a pager for the page following res, keeping the limit.
// Returns nil when res was the last page.
func (c *CursorPager) Next(res *PaginationResult) *CursorPager {
	if res == nil || !res.HasMore {
		return nil
	}

	return (&CursorPager{}).WithLimit(c.GetLimit()).WithCursor(res.NextPageToken)
}

func (c *CursorPager) validate(totalLength int) error {
	if c == nil {
		return fmt.Errorf("cursor pager is nil")
	}

	if c.limit < 0 && c.limit != NoLimit {
		return fmt.Errorf("%w: negative count %d", ErrInvalidCursor, c.limit)
	}

	return c.cursor.validate(totalLength)
}
