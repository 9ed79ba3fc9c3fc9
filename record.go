package bountypager

import (
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// EmptyIdentity is the claimer of a bounty nobody has claimed yet.
const EmptyIdentity = "0x0000000000000000000000000000000000000000"

// WeiDecimals is the exponent between the ledger's minor unit and the
// displayed amount.
const WeiDecimals = 18

// RawBounty is a ledger entry exactly as the remote store returns it.
type RawBounty struct {
	ID          uint64
	Issuer      string
	Name        string
	Description string
	// Amount in minor units.
	Amount    *big.Int
	Claimer   string
	ClaimID   uint64
	CreatedAt int64
}

// Bounty is a display-ready ledger entry.
type Bounty struct {
	// Index position in the ledger the record was read from.
	Index       int             `json:"index"`
	ID          uint64          `json:"id"`
	Issuer      string          `json:"issuer"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Claimer     string          `json:"claimer"`
	ClaimID     uint64          `json:"claimId"`
	CreatedAt   int64           `json:"createdAt"`
}

// AmountConverter maps a minor-unit amount to its display value.
type AmountConverter func(*big.Int) decimal.Decimal

// WeiToEther is the default AmountConverter.
func WeiToEther(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(wei, -WeiDecimals)
}

// ToBounty converts r into a Bounty read from ledger index idx.
func (r RawBounty) ToBounty(idx int, convert AmountConverter) Bounty {
	if convert == nil {
		convert = WeiToEther
	}

	return Bounty{
		Index:       idx,
		ID:          r.ID,
		Issuer:      r.Issuer,
		Name:        r.Name,
		Description: r.Description,
		Amount:      convert(r.Amount),
		Claimer:     r.Claimer,
		ClaimID:     r.ClaimID,
		CreatedAt:   r.CreatedAt,
	}
}

// IsClaimed returns true when the claimer is anyone but EmptyIdentity.
func (b Bounty) IsClaimed() bool {
	return !sameIdentity(b.Claimer, EmptyIdentity)
}

// IsEligible returns true when the bounty belongs in the unclaimed feed:
// nobody claimed it and it still carries a positive amount.
func (b Bounty) IsEligible() bool {
	return !b.IsClaimed() && b.Amount.IsPositive()
}

// IssuedBy returns true when identity created the bounty.
func (b Bounty) IssuedBy(identity string) bool {
	return sameIdentity(b.Issuer, identity)
}

const (
	shortDescriptionMax = 50
	shortDescriptionCut = 47
)

var _sentence = regexp.MustCompile(`[^.!?]+[.!?]+`)

// ShortDescription returns the description shortened for feed cards. Whole
// sentences are kept while they fit; a first sentence that is too long is cut
// mid-word.
func (b Bounty) ShortDescription() string {
	if utf8.RuneCountInString(b.Description) <= shortDescriptionMax {
		return b.Description
	}

	sentences := _sentence.FindAllString(b.Description, -1)
	if len(sentences) == 0 || utf8.RuneCountInString(sentences[0]) > shortDescriptionMax {
		return string([]rune(b.Description)[:shortDescriptionCut]) + "..."
	}

	var sb strings.Builder
	for _, sentence := range sentences {
		if utf8.RuneCountInString(sb.String()+sentence) > shortDescriptionCut {
			break
		}
		sb.WriteString(sentence)
	}

	truncated := sb.String()
	if truncated == "" {
		return string([]rune(b.Description)[:shortDescriptionCut]) + "..."
	}
	if len(truncated) < len(b.Description) {
		truncated += "..."
	}

	return truncated
}

func sameIdentity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
