package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the projection tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Contract{},
		&schema.Project{},
		&schema.ProjectScript{},
		&schema.Token{},
		&schema.Account{},
		&schema.AccountProject{},
		&schema.Transfer{},
		&schema.Minter{},
		&schema.ProjectMinterConfiguration{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into
// safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// get loads a single row by primary key into out, mapping gorm.ErrRecordNotFound to
// a nil result.
func (s *pgStore) get(ctx context.Context, id string, out interface{}, what string) (bool, error) {
	err := s.db.WithContext(ctx).Where("id = ?", id).First(out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return true, nil
}

// save upserts a row on its primary key, overwriting all columns.
func (s *pgStore) save(ctx context.Context, entity interface{}, what string) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(entity).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", what, err)
	}
	return nil
}

// GetContract retrieves a core contract by its address key
func (s *pgStore) GetContract(ctx context.Context, id string) (*schema.Contract, error) {
	var contract schema.Contract
	found, err := s.get(ctx, id, &contract, "contract")
	if err != nil || !found {
		return nil, err
	}
	return &contract, nil
}

// SaveContract upserts a core contract
func (s *pgStore) SaveContract(ctx context.Context, contract *schema.Contract) error {
	return s.save(ctx, contract, "contract")
}

// GetProject retrieves a project by its composite key
func (s *pgStore) GetProject(ctx context.Context, id string) (*schema.Project, error) {
	var project schema.Project
	found, err := s.get(ctx, id, &project, "project")
	if err != nil || !found {
		return nil, err
	}
	return &project, nil
}

// SaveProject upserts a project
func (s *pgStore) SaveProject(ctx context.Context, project *schema.Project) error {
	return s.save(ctx, project, "project")
}

// GetProjectScripts retrieves a project's script fragments ordered by index
func (s *pgStore) GetProjectScripts(ctx context.Context, projectID string) ([]*schema.ProjectScript, error) {
	var scripts []*schema.ProjectScript
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("index ASC").
		Find(&scripts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get project scripts: %w", err)
	}
	return scripts, nil
}

// SaveProjectScript upserts a script fragment
func (s *pgStore) SaveProjectScript(ctx context.Context, script *schema.ProjectScript) error {
	return s.save(ctx, script, "project script")
}

// DeleteProjectScriptsFrom removes a project's fragments with index >= fromIndex
func (s *pgStore) DeleteProjectScriptsFrom(ctx context.Context, projectID string, fromIndex uint64) error {
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND index >= ?", projectID, fromIndex).
		Delete(&schema.ProjectScript{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete project scripts: %w", err)
	}
	return nil
}

// GetToken retrieves a token by its composite key
func (s *pgStore) GetToken(ctx context.Context, id string) (*schema.Token, error) {
	var token schema.Token
	found, err := s.get(ctx, id, &token, "token")
	if err != nil || !found {
		return nil, err
	}
	return &token, nil
}

// SaveToken upserts a token
func (s *pgStore) SaveToken(ctx context.Context, token *schema.Token) error {
	return s.save(ctx, token, "token")
}

// GetAccount retrieves an account by address key
func (s *pgStore) GetAccount(ctx context.Context, id string) (*schema.Account, error) {
	var account schema.Account
	found, err := s.get(ctx, id, &account, "account")
	if err != nil || !found {
		return nil, err
	}
	return &account, nil
}

// SaveAccount upserts an account
func (s *pgStore) SaveAccount(ctx context.Context, account *schema.Account) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(account).Error
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// GetAccountProject retrieves an ownership join row by its composite key
func (s *pgStore) GetAccountProject(ctx context.Context, id string) (*schema.AccountProject, error) {
	var accountProject schema.AccountProject
	found, err := s.get(ctx, id, &accountProject, "account project")
	if err != nil || !found {
		return nil, err
	}
	return &accountProject, nil
}

// SaveAccountProject upserts an ownership join row
func (s *pgStore) SaveAccountProject(ctx context.Context, accountProject *schema.AccountProject) error {
	return s.save(ctx, accountProject, "account project")
}

// DeleteAccountProject removes an ownership join row
func (s *pgStore) DeleteAccountProject(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&schema.AccountProject{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete account project: %w", err)
	}
	return nil
}

// CreateTransfer appends a transfer ledger row. ON CONFLICT DO NOTHING keeps the
// ledger immutable across redeliveries of the same log position.
func (s *pgStore) CreateTransfer(ctx context.Context, transfer *schema.Transfer) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(transfer).Error
	if err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

// GetMinter retrieves a minter by its address key
func (s *pgStore) GetMinter(ctx context.Context, id string) (*schema.Minter, error) {
	var minter schema.Minter
	found, err := s.get(ctx, id, &minter, "minter")
	if err != nil || !found {
		return nil, err
	}
	return &minter, nil
}

// SaveMinter upserts a minter
func (s *pgStore) SaveMinter(ctx context.Context, minter *schema.Minter) error {
	return s.save(ctx, minter, "minter")
}

// GetProjectMinterConfiguration retrieves a (minter, project) configuration
func (s *pgStore) GetProjectMinterConfiguration(ctx context.Context, id string) (*schema.ProjectMinterConfiguration, error) {
	var config schema.ProjectMinterConfiguration
	found, err := s.get(ctx, id, &config, "project minter configuration")
	if err != nil || !found {
		return nil, err
	}
	return &config, nil
}

// SaveProjectMinterConfiguration upserts a (minter, project) configuration
func (s *pgStore) SaveProjectMinterConfiguration(ctx context.Context, config *schema.ProjectMinterConfiguration) error {
	return s.save(ctx, config, "project minter configuration")
}
