package schema

import (
	"gorm.io/datatypes"
)

// ProjectMinterConfiguration represents the project_minter_configurations table -
// the configuration one minter holds for one project, independent of whether that
// minter currently controls the project's sales. Created lazily on the pair's first
// configuration event; a reset clears fields but never removes the row.
type ProjectMinterConfiguration struct {
	// ID is the composite key "<minter id>-<project id>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// MinterID references the owning minter
	MinterID string `gorm:"column:minter_id;not null;type:text;index"`
	// ProjectID references the configured project
	ProjectID string `gorm:"column:project_id;not null;type:text;index"`
	// BasePrice is the configured price per token in wei (empty until configured)
	BasePrice string `gorm:"column:base_price;type:numeric(78,0)"`
	// PriceIsConfigured reports whether BasePrice has been set
	PriceIsConfigured bool `gorm:"column:price_is_configured;not null;default:false"`
	// CurrencySymbol is the purchase currency symbol ("ETH" unless overridden)
	CurrencySymbol string `gorm:"column:currency_symbol;type:text"`
	// CurrencyAddress is the purchase currency contract (zero address for ETH)
	CurrencyAddress string `gorm:"column:currency_address;type:text"`
	// MaxInvocations is the minter-local invocation limit override, if any
	MaxInvocations *uint64 `gorm:"column:max_invocations"`
	// ExtraMinterDetails is the generic key/value configuration side channel
	ExtraMinterDetails datatypes.JSON `gorm:"column:extra_minter_details;type:jsonb"`
}

// TableName specifies the table name for the ProjectMinterConfiguration model
func (ProjectMinterConfiguration) TableName() string {
	return "project_minter_configurations"
}

// ExtraDetails returns the generic details map column.
func (c *ProjectMinterConfiguration) ExtraDetails() datatypes.JSON {
	return c.ExtraMinterDetails
}

// SetExtraDetails replaces the generic details map column.
func (c *ProjectMinterConfiguration) SetExtraDetails(d datatypes.JSON) {
	c.ExtraMinterDetails = d
}
