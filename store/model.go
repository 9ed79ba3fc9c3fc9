package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alp4ka/bountypager"
)

// BountyRow is one mirrored ledger entry, keyed by its ledger index.
type BountyRow struct {
	LedgerIndex   int             `gorm:"primaryKey;autoIncrement:false" json:"ledger_index"`
	BountyID      uint64          `gorm:"not null;index" json:"bounty_id"`
	Issuer        string          `gorm:"type:varchar(42);not null;index" json:"issuer"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	AmountWei     decimal.Decimal `gorm:"type:varchar(78);not null" json:"amount_wei"`
	Claimer       string          `gorm:"type:varchar(42);not null" json:"claimer"`
	ClaimID       uint64          `gorm:"not null" json:"claim_id"`
	CreatedAtUnix int64           `gorm:"column:created_at;not null" json:"created_at"`
	SyncedAt      time.Time       `gorm:"not null" json:"synced_at"`
}

func (BountyRow) TableName() string {
	return "bounties"
}

func newBountyRow(index int, r bountypager.RawBounty, syncedAt time.Time) BountyRow {
	amount := decimal.Zero
	if r.Amount != nil {
		amount = decimal.NewFromBigInt(r.Amount, 0)
	}

	return BountyRow{
		LedgerIndex:   index,
		BountyID:      r.ID,
		Issuer:        r.Issuer,
		Name:          r.Name,
		Description:   r.Description,
		AmountWei:     amount,
		Claimer:       r.Claimer,
		ClaimID:       r.ClaimID,
		CreatedAtUnix: r.CreatedAt,
		SyncedAt:      syncedAt,
	}
}

func (r BountyRow) toRaw() bountypager.RawBounty {
	return bountypager.RawBounty{
		ID:          r.BountyID,
		Issuer:      r.Issuer,
		Name:        r.Name,
		Description: r.Description,
		Amount:      r.AmountWei.BigInt(),
		Claimer:     r.Claimer,
		ClaimID:     r.ClaimID,
		CreatedAt:   r.CreatedAtUnix,
	}
}
