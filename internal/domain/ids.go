package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultTokenInvocationSpace is the size of the per-project token id space on the
// core contract: token id = projectNumber * space + invocation. Overridable via
// configuration for cores deployed with a different space.
const DefaultTokenInvocationSpace = 1_000_000

// AddressID returns the canonical entity key for an address-keyed entity
// (Contract, Account, Minter): the lowercase hex form of the address.
func AddressID(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// EntityID derives the key for an entity scoped to a contract and a numeric id
// (Project, Token): "<lowercase contract address>-<decimal id>". The derivation is
// pure, so repeated calls with the same inputs yield the same upsert key.
func EntityID(contract common.Address, id *big.Int) string {
	return fmt.Sprintf("%s-%s", AddressID(contract), id.String())
}

// JoinID derives the key for a join entity from its two parent keys
// (AccountProject: account-project, ProjectMinterConfiguration: minter-project).
func JoinID(left, right string) string {
	return fmt.Sprintf("%s-%s", left, right)
}

// ScriptID derives the key for a project script fragment at the given index.
func ScriptID(projectID string, index uint64) string {
	return fmt.Sprintf("%s-%d", projectID, index)
}

// TransferID derives the key for a transfer ledger row. The (txHash, logIndex) pair
// is unique within a block, which makes the row stable across replays.
func TransferID(txHash common.Hash, logIndex uint) string {
	return fmt.Sprintf("%s-%d", strings.ToLower(txHash.Hex()), logIndex)
}

// ProjectNumberFromTokenID maps a global token id to its owning project's number
// using the core contract's invocation space. A zero or negative space falls back to
// DefaultTokenInvocationSpace.
func ProjectNumberFromTokenID(tokenID *big.Int, invocationSpace int64) *big.Int {
	if invocationSpace <= 0 {
		invocationSpace = DefaultTokenInvocationSpace
	}
	return new(big.Int).Div(tokenID, big.NewInt(invocationSpace))
}

// InvocationFromTokenID returns the token's invocation number within its project.
func InvocationFromTokenID(tokenID *big.Int, invocationSpace int64) *big.Int {
	if invocationSpace <= 0 {
		invocationSpace = DefaultTokenInvocationSpace
	}
	return new(big.Int).Mod(tokenID, big.NewInt(invocationSpace))
}
