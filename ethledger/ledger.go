// Package ethledger reads the bounty ledger straight from the contract over
// JSON-RPC.
package ethledger

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Alp4ka/bountypager"
)

// ContractCaller performs read-only contract calls. *ethclient.Client
// satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Ledger is a bountypager.BatchFetcher backed by the bounty contract.
type Ledger struct {
	caller  ContractCaller
	address common.Address
	abi     abi.ABI
	close   func()
}

// New returns a Ledger reading the contract at address through caller.
func New(caller ContractCaller, address common.Address) (*Ledger, error) {
	parsed, err := abi.JSON(strings.NewReader(BountiesABI))
	if err != nil {
		return nil, fmt.Errorf("cannot parse bounties abi: %w", err)
	}

	return &Ledger{
		caller:  caller,
		address: address,
		abi:     parsed,
		close:   func() {},
	}, nil
}

// Dial connects to rpcURL and returns a Ledger for the contract at address.
// Call Close when done.
func Dial(ctx context.Context, rpcURL string, address string) (*Ledger, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid contract address '%s'", address)
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("cannot dial rpc: %w", err)
	}

	l, err := New(client, common.HexToAddress(address))
	if err != nil {
		client.Close()
		return nil, err
	}
	l.close = client.Close

	return l, nil
}

// Close releases the underlying RPC connection, if the Ledger owns one.
func (l *Ledger) Close() {
	l.close()
}

// Length - implements bountypager.BatchFetcher.
func (l *Ledger) Length(ctx context.Context) (int, error) {
	out, err := l.call(ctx, methodLength)
	if err != nil {
		return 0, err
	}

	length := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !length.IsInt64() || length.Int64() > math.MaxInt {
		return 0, fmt.Errorf("%w: ledger length %s overflows int", bountypager.ErrRemoteUnavailable, length)
	}

	return int(length.Int64()), nil
}

// FetchRange - implements bountypager.BatchFetcher.
func (l *Ledger) FetchRange(ctx context.Context, start, end int) ([]bountypager.RawBounty, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid range [%d, %d]", start, end)
	}

	out, err := l.call(ctx, methodBounties, big.NewInt(int64(start)), big.NewInt(int64(end)))
	if err != nil {
		return nil, err
	}

	bounties := *abi.ConvertType(out[0], new([]contractBounty)).(*[]contractBounty)

	ret := make([]bountypager.RawBounty, 0, len(bounties))
	for i, b := range bounties {
		raw, err := b.toRaw()
		if err != nil {
			return nil, fmt.Errorf("%w: bounty at index %d: %w", bountypager.ErrRemoteUnavailable, start+i, err)
		}
		ret = append(ret, raw)
	}

	return ret, nil
}

func (l *Ledger) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := l.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot pack %s call: %w", method, err)
	}

	res, err := l.caller.CallContract(ctx, ethereum.CallMsg{To: &l.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", bountypager.ErrRemoteUnavailable, method, err)
	}

	out, err := l.abi.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot unpack %s result: %w", bountypager.ErrRemoteUnavailable, method, err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%w: %s returned %d values", bountypager.ErrRemoteUnavailable, method, len(out))
	}

	return out, nil
}

func (b contractBounty) toRaw() (bountypager.RawBounty, error) {
	for name, v := range map[string]*big.Int{"id": b.Id, "claimId": b.ClaimId, "createdAt": b.CreatedAt} {
		if v == nil || !v.IsUint64() {
			return bountypager.RawBounty{}, fmt.Errorf("%s out of range", name)
		}
	}
	if !b.CreatedAt.IsInt64() {
		return bountypager.RawBounty{}, fmt.Errorf("createdAt out of range")
	}

	return bountypager.RawBounty{
		ID:          b.Id.Uint64(),
		Issuer:      b.Issuer.Hex(),
		Name:        b.Name,
		Description: b.Description,
		Amount:      b.Amount,
		Claimer:     b.Claimer.Hex(),
		ClaimID:     b.ClaimId.Uint64(),
		CreatedAt:   b.CreatedAt.Int64(),
	}, nil
}

var _ bountypager.BatchFetcher = (*Ledger)(nil)
