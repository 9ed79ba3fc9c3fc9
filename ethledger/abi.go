package ethledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// BountiesABI is the read-only slice of the bounty contract ABI the ledger
// adapter calls.
const BountiesABI = `[
  {
    "inputs": [],
    "name": "getBountiesLength",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "offset", "type": "uint256"},
      {"internalType": "uint256", "name": "end", "type": "uint256"}
    ],
    "name": "getBounties",
    "outputs": [
      {
        "components": [
          {"internalType": "uint256", "name": "id", "type": "uint256"},
          {"internalType": "address", "name": "issuer", "type": "address"},
          {"internalType": "string", "name": "name", "type": "string"},
          {"internalType": "string", "name": "description", "type": "string"},
          {"internalType": "uint256", "name": "amount", "type": "uint256"},
          {"internalType": "address", "name": "claimer", "type": "address"},
          {"internalType": "uint256", "name": "claimId", "type": "uint256"},
          {"internalType": "uint256", "name": "createdAt", "type": "uint256"}
        ],
        "internalType": "struct Bounty[]",
        "name": "",
        "type": "tuple[]"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

const (
	methodLength   = "getBountiesLength"
	methodBounties = "getBounties"
)

// contractBounty mirrors the Bounty tuple. Field names follow the ABI
// component names so abi.ConvertType can fill it.
type contractBounty struct {
	Id          *big.Int //nolint:revive // must match the ABI component name
	Issuer      common.Address
	Name        string
	Description string
	Amount      *big.Int
	Claimer     common.Address
	ClaimId     *big.Int //nolint:revive // must match the ABI component name
	CreatedAt   *big.Int
}
