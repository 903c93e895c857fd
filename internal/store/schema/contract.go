package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Contract represents the contracts table - one row per indexed core contract.
// Rows are created lazily the first time an event references the contract and are
// never deleted; only platform-update events mutate them.
type Contract struct {
	// ID is the lowercase hex address of the core contract
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Admin is the current admin address of the contract
	Admin string `gorm:"column:admin;type:text"`
	// Type tags the core contract variant (e.g. "GenArt721CoreV1")
	Type string `gorm:"column:type;type:text"`
	// RenderProviderAddress receives primary sales fees
	RenderProviderAddress string `gorm:"column:render_provider_address;type:text"`
	// RenderProviderPercentage is the primary sales fee percentage
	RenderProviderPercentage uint64 `gorm:"column:render_provider_percentage"`
	// RenderProviderSecondarySalesAddress receives secondary sales fees
	RenderProviderSecondarySalesAddress string `gorm:"column:render_provider_secondary_sales_address;type:text"`
	// RenderProviderSecondarySalesBPS is the secondary sales fee in basis points
	RenderProviderSecondarySalesBPS uint64 `gorm:"column:render_provider_secondary_sales_bps"`
	// NextProjectID is the contract's next unused project number (string to support very large numbers)
	NextProjectID string `gorm:"column:next_project_id;type:numeric(78,0)"`
	// RandomizerContract is the address of the randomizer in use
	RandomizerContract string `gorm:"column:randomizer_contract;type:text"`
	// MintWhitelisted holds the currently whitelisted minter addresses (0 or 1 entries)
	MintWhitelisted datatypes.JSON `gorm:"column:mint_whitelisted;type:jsonb"`
	// NewProjectsForbidden blocks creation of further projects when set
	NewProjectsForbidden bool `gorm:"column:new_projects_forbidden;not null;default:false"`
	// CurationRegistry is the address of the curation registry, if any
	CurationRegistry string `gorm:"column:curation_registry;type:text"`
	// DependencyRegistry is the address of the dependency registry, if any
	DependencyRegistry string `gorm:"column:dependency_registry;type:text"`
	// CreatedAt is the block timestamp of the first event that referenced this contract
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
	// UpdatedAt is the block timestamp of the last mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Contract model
func (Contract) TableName() string {
	return "contracts"
}
