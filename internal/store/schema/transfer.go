package schema

import (
	"time"
)

// Transfer represents the transfers table - an append-only ledger of ownership
// changes, keyed by (tx hash, log index) so each row is unique within a block and
// immutable once written.
type Transfer struct {
	// ID is the composite key "<tx hash>-<log index>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TokenID references the transferred token
	TokenID string `gorm:"column:token_id;not null;type:text;index"`
	// From is the sender address
	From string `gorm:"column:from_address;not null;type:text"`
	// To is the recipient address
	To string `gorm:"column:to_address;not null;type:text"`
	// TxHash is the transaction hash
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// LogIndex is the event's index within the block
	LogIndex uint `gorm:"column:log_index;not null"`
	// BlockNumber is the block the transfer occurred in
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// Timestamp is the transfer block timestamp
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}
