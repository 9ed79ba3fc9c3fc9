package bountypager

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for ledger reads.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Column names end up in raw SQL.
	if !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// ToSQL converts Orderings to "<column_1> <direction_1>, <column_2> <direction_2>".
func (o Orderings) ToSQL() string {
	return strings.Join(lo.Map(o, func(ordering OrderBy, _ int) string {
		return fmt.Sprintf("%s %s", ordering.Column, ordering.Direction)
	}), ", ")
}

// Apply validates the orderings and applies them to a gorm query.
func (o Orderings) Apply(db *gorm.DB) (*gorm.DB, error) {
	if len(o) == 0 {
		return nil, fmt.Errorf("empty ordering list")
	}

	for _, ordering := range o {
		if err := ordering.validate(); err != nil {
			return nil, err
		}
	}

	return db.Order(o.ToSQL()), nil
}

// sortNewestFirst orders bounties by CreatedAt descending. The sort is stable,
// so callers that pass bounties in descending index order get the higher
// ledger index first on equal timestamps.
func sortNewestFirst(items []Bounty) {
	slices.SortStableFunc(items, func(a, b Bounty) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
}
