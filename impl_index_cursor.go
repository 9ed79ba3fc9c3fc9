package bountypager

import (
	"fmt"
	"strconv"
)

// IndexCursor marks the highest ledger index that has not been consumed by a
// backward walk. A nil *IndexCursor means "start from the tail of the ledger";
// an index of -1 means the walk has reached the start of the ledger.
type IndexCursor struct {
	index int
}

func NewIndexCursor(index int) *IndexCursor {
	return &IndexCursor{
		index: index,
	}
}

// DecodeIndexCursor attempts to parse a base64-encoded string into *IndexCursor.
// An empty string decodes into a nil cursor.
func DecodeIndexCursor(b64String string) (*IndexCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	indexBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded index cursor: %w", err)
	}

	index, err := strconv.Atoi(string(indexBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode index cursor value: %w", err)
	}

	return &IndexCursor{
		index: index,
	}, nil
}

// String - implements fmt.Stringer. Index 0 is a real position and still
// produces a token.
func (c *IndexCursor) String() string {
	if c == nil {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(c.index)))
}

// IsEmpty returns true for the tail cursor.
func (c *IndexCursor) IsEmpty() bool {
	return c == nil
}

// IsExhausted returns true when no index below the cursor remains.
func (c *IndexCursor) IsExhausted() bool {
	return c != nil && c.index < 0
}

// GetIndex returns the index to resume from. The tail cursor has no index of
// its own, so the caller-provided tail value is returned for it.
func (c *IndexCursor) GetIndex(tail int) int {
	if c == nil {
		return tail
	}

	return c.index
}

// WithIndex sets the index and returns the cursor.
func (c *IndexCursor) WithIndex(index int) *IndexCursor {
	if c == nil {
		c = new(IndexCursor)
	}

	c.index = index

	return c
}

func (c *IndexCursor) validate(totalLength int) error {
	if c == nil {
		return nil
	}

	if c.index < -1 || c.index > totalLength {
		return fmt.Errorf("%w: index %d outside [-1, %d]", ErrInvalidCursor, c.index, totalLength)
	}

	return nil
}

var _ fmt.Stringer = (*IndexCursor)(nil)
