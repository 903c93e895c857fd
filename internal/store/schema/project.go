package schema

import (
	"time"
)

// Project represents the projects table - one row per (contract, project number).
// Created exactly once when the core signals project creation; the pricing and
// currency columns are denormalized mirrors of whichever minter configuration is
// currently active for the project.
type Project struct {
	// ID is the composite key "<contract address>-<project number>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ContractID references the owning core contract
	ContractID string `gorm:"column:contract_id;not null;type:text;index"`
	// ProjectNumber is the numeric project id within the contract
	ProjectNumber string `gorm:"column:project_number;not null;type:numeric(78,0)"`
	// Name is the project title
	Name string `gorm:"column:name;type:text"`
	// ArtistName is the display name of the artist
	ArtistName string `gorm:"column:artist_name;type:text"`
	// ArtistAddress is the artist's payout/control address
	ArtistAddress string `gorm:"column:artist_address;type:text"`
	// Description is the long-form project description
	Description string `gorm:"column:description;type:text"`
	// License names the license the outputs are released under
	License string `gorm:"column:license;type:text"`
	// Website is the artist-provided project URL
	Website string `gorm:"column:website;type:text"`
	// AspectRatio is the render aspect ratio as emitted on chain
	AspectRatio string `gorm:"column:aspect_ratio;type:text"`
	// IPFSHash points at off-chain project assets
	IPFSHash string `gorm:"column:ipfs_hash;type:text"`
	// Active reports whether the project is open for display
	Active bool `gorm:"column:active;not null;default:false"`
	// Paused reports whether purchases are paused
	Paused bool `gorm:"column:paused;not null;default:true"`
	// Locked reports whether the script is frozen
	Locked bool `gorm:"column:locked;not null;default:false"`
	// Complete is set when invocations reach maxInvocations
	Complete bool `gorm:"column:complete;not null;default:false"`
	// Dynamic reports whether outputs are rendered live from the script
	Dynamic bool `gorm:"column:dynamic;not null;default:true"`
	// Invocations is the number of tokens minted so far
	Invocations uint64 `gorm:"column:invocations;not null;default:0"`
	// MaxInvocations is the mint limit configured on the core contract
	MaxInvocations uint64 `gorm:"column:max_invocations;not null;default:0"`
	// Script is the concatenation of all script fragments in index order
	Script string `gorm:"column:script;type:text"`
	// ScriptCount is the number of script fragments
	ScriptCount uint64 `gorm:"column:script_count;not null;default:0"`
	// ScriptTypeAndVersion names the rendering library and version
	ScriptTypeAndVersion string `gorm:"column:script_type_and_version;type:text"`
	// BaseURI is the prefix for token metadata URIs
	BaseURI string `gorm:"column:base_uri;type:text"`
	// RoyaltyPercentage is the artist secondary-sale royalty
	RoyaltyPercentage uint64 `gorm:"column:royalty_percentage"`
	// CurrencySymbol mirrors the active minter configuration's currency symbol
	CurrencySymbol string `gorm:"column:currency_symbol;type:text"`
	// CurrencyAddress mirrors the active minter configuration's currency address
	CurrencyAddress string `gorm:"column:currency_address;type:text"`
	// PricePerTokenInWei mirrors the active minter configuration's base price
	PricePerTokenInWei string `gorm:"column:price_per_token_in_wei;type:numeric(78,0)"`
	// PriceIsConfigured mirrors whether the active minter configuration has a price
	PriceIsConfigured bool `gorm:"column:price_is_configured;not null;default:false"`
	// CreatedAt is the block timestamp of project creation
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
	// UpdatedAt is the block timestamp of the last mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz"`
	// CompletedAt is the block timestamp when the final token was minted
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz"`
	// ActivatedAt is the block timestamp when the project was first activated
	ActivatedAt *time.Time `gorm:"column:activated_at;type:timestamptz"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
