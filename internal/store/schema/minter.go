package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Minter represents the minters table - one row per minter contract instance,
// created lazily the first time any event references it. Minter-level settings live
// in the schema-less extra details map.
type Minter struct {
	// ID is the lowercase hex address of the minter contract
	ID string `gorm:"column:id;primaryKey;type:text"`
	// CoreContract is the core contract this minter sells for
	CoreContract string `gorm:"column:core_contract;type:text;index"`
	// ExtraMinterDetails is the generic key/value configuration side channel
	ExtraMinterDetails datatypes.JSON `gorm:"column:extra_minter_details;type:jsonb"`
	// CreatedAt is the block timestamp of the first event that referenced this minter
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
	// UpdatedAt is the block timestamp of the last mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Minter model
func (Minter) TableName() string {
	return "minters"
}

// ExtraDetails returns the generic details map column.
func (m *Minter) ExtraDetails() datatypes.JSON {
	return m.ExtraMinterDetails
}

// SetExtraDetails replaces the generic details map column.
func (m *Minter) SetExtraDetails(d datatypes.JSON) {
	m.ExtraMinterDetails = d
}
