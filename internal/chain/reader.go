package chain

import (
	"context"
	"math/big"
)

// ProjectDetails is the descriptive project metadata exposed by the core contract.
type ProjectDetails struct {
	Name        string
	ArtistName  string
	Description string
	Website     string
	License     string
}

// ProjectScriptDetails is the script-related project metadata exposed by the core
// contract.
type ProjectScriptDetails struct {
	ScriptTypeAndVersion string
	AspectRatio          string
	IPFSHash             string
	ScriptCount          uint64
}

// ProjectStateData is the minting state the core contract tracks per project.
type ProjectStateData struct {
	Invocations    uint64
	MaxInvocations uint64
	Active         bool
	Paused         bool
	Locked         bool
}

// PlatformState aggregates the contract-level attributes readable from the core.
// Fields whose getter is absent on older core versions are left at their zero
// value.
type PlatformState struct {
	Admin                               string
	NextProjectID                       *big.Int
	NewProjectsForbidden                bool
	RandomizerAddress                   string
	CurationRegistryAddress             string
	DependencyRegistryAddress           string
	RenderProviderAddress               string
	RenderProviderPercentage            uint64
	RenderProviderSecondarySalesAddress string
	RenderProviderSecondarySalesBPS     uint64
	MinterContract                      string
}

// CoreReader reads auxiliary state from a generative art core contract. Events
// carry only change notifications; the authoritative field values come from these
// view calls.
type CoreReader interface {
	// ProjectDetails fetches the descriptive metadata of a project
	ProjectDetails(ctx context.Context, core string, projectNumber *big.Int) (*ProjectDetails, error)

	// ProjectScriptDetails fetches the script metadata of a project
	ProjectScriptDetails(ctx context.Context, core string, projectNumber *big.Int) (*ProjectScriptDetails, error)

	// ProjectStateData fetches the minting state of a project
	ProjectStateData(ctx context.Context, core string, projectNumber *big.Int) (*ProjectStateData, error)

	// ProjectBaseURI fetches the token metadata URI prefix of a project
	ProjectBaseURI(ctx context.Context, core string, projectNumber *big.Int) (string, error)

	// ProjectArtistAddress fetches the artist address of a project
	ProjectArtistAddress(ctx context.Context, core string, projectNumber *big.Int) (string, error)

	// ProjectRoyaltyPercentage fetches the secondary-market royalty of a project
	ProjectRoyaltyPercentage(ctx context.Context, core string, projectNumber *big.Int) (uint64, error)

	// ProjectScriptByIndex fetches one raw script fragment
	ProjectScriptByIndex(ctx context.Context, core string, projectNumber *big.Int, index uint64) (string, error)

	// TokenHash fetches the deterministic hash assigned to a token at mint
	TokenHash(ctx context.Context, core string, tokenID *big.Int) (string, error)

	// PlatformState fetches the aggregated contract-level attributes
	PlatformState(ctx context.Context, core string) (*PlatformState, error)
}

// MinterFilterReader resolves which minter currently controls a project's sales.
type MinterFilterReader interface {
	// MinterForProject returns the lowercase hex address of the minter assigned
	// to the project, or "" when no minter is assigned
	MinterForProject(ctx context.Context, minterFilter string, projectNumber *big.Int) (string, error)
}
