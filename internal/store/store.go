package store

import (
	"context"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

// Store defines the repository surface the projection handlers run against.
// Getters return (nil, nil) when the entity is absent; Save performs an upsert on
// the entity's derived key so replays of a full-overwrite mutation are idempotent.
type Store interface {
	// GetContract retrieves a core contract by its address key
	GetContract(ctx context.Context, id string) (*schema.Contract, error)
	// SaveContract upserts a core contract
	SaveContract(ctx context.Context, contract *schema.Contract) error

	// GetProject retrieves a project by its composite key
	GetProject(ctx context.Context, id string) (*schema.Project, error)
	// SaveProject upserts a project
	SaveProject(ctx context.Context, project *schema.Project) error

	// GetProjectScripts retrieves a project's script fragments ordered by index
	GetProjectScripts(ctx context.Context, projectID string) ([]*schema.ProjectScript, error)
	// SaveProjectScript upserts a script fragment
	SaveProjectScript(ctx context.Context, script *schema.ProjectScript) error
	// DeleteProjectScriptsFrom removes a project's fragments with index >= fromIndex
	DeleteProjectScriptsFrom(ctx context.Context, projectID string, fromIndex uint64) error

	// GetToken retrieves a token by its composite key
	GetToken(ctx context.Context, id string) (*schema.Token, error)
	// SaveToken upserts a token
	SaveToken(ctx context.Context, token *schema.Token) error

	// GetAccount retrieves an account by address key
	GetAccount(ctx context.Context, id string) (*schema.Account, error)
	// SaveAccount upserts an account
	SaveAccount(ctx context.Context, account *schema.Account) error

	// GetAccountProject retrieves an ownership join row by its composite key
	GetAccountProject(ctx context.Context, id string) (*schema.AccountProject, error)
	// SaveAccountProject upserts an ownership join row
	SaveAccountProject(ctx context.Context, accountProject *schema.AccountProject) error
	// DeleteAccountProject removes an ownership join row
	DeleteAccountProject(ctx context.Context, id string) error

	// CreateTransfer appends a transfer ledger row; replays of the same
	// (tx hash, log index) are ignored
	CreateTransfer(ctx context.Context, transfer *schema.Transfer) error

	// GetMinter retrieves a minter by its address key
	GetMinter(ctx context.Context, id string) (*schema.Minter, error)
	// SaveMinter upserts a minter
	SaveMinter(ctx context.Context, minter *schema.Minter) error

	// GetProjectMinterConfiguration retrieves a (minter, project) configuration
	GetProjectMinterConfiguration(ctx context.Context, id string) (*schema.ProjectMinterConfiguration, error)
	// SaveProjectMinterConfiguration upserts a (minter, project) configuration
	SaveProjectMinterConfiguration(ctx context.Context, config *schema.ProjectMinterConfiguration) error
}
