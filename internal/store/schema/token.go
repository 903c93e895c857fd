package schema

import (
	"time"
)

// Token represents the tokens table - one row per minted token. Created exactly
// once by the mint handler; transfers only mutate the owner and updated timestamp.
type Token struct {
	// ID is the composite key "<contract address>-<token number>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ContractID references the core contract the token lives on
	ContractID string `gorm:"column:contract_id;not null;type:text"`
	// ProjectID references the owning project
	ProjectID string `gorm:"column:project_id;not null;type:text;index"`
	// OwnerID is the current owner's account key (lowercase hex address)
	OwnerID string `gorm:"column:owner_id;not null;type:text;index"`
	// Hash is the deterministic on-chain token hash (empty if the read reverted)
	Hash string `gorm:"column:hash;type:text"`
	// Invocation is the project's invocation count at mint time
	Invocation uint64 `gorm:"column:invocation;not null"`
	// TxHash is the transaction that minted the token
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// CreatedAt is the mint block timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
	// UpdatedAt is the block timestamp of the last ownership change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
