package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

// memoryStore is an in-memory Store used by handler tests and local tooling. It
// mirrors the Postgres semantics: getters return (nil, nil) on absence, saves are
// full-row upserts, and CreateTransfer ignores replays of an existing key.
type memoryStore struct {
	mu sync.RWMutex

	contracts       map[string]*schema.Contract
	projects        map[string]*schema.Project
	projectScripts  map[string]*schema.ProjectScript
	tokens          map[string]*schema.Token
	accounts        map[string]*schema.Account
	accountProjects map[string]*schema.AccountProject
	transfers       map[string]*schema.Transfer
	minters         map[string]*schema.Minter
	minterConfigs   map[string]*schema.ProjectMinterConfiguration
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		contracts:       make(map[string]*schema.Contract),
		projects:        make(map[string]*schema.Project),
		projectScripts:  make(map[string]*schema.ProjectScript),
		tokens:          make(map[string]*schema.Token),
		accounts:        make(map[string]*schema.Account),
		accountProjects: make(map[string]*schema.AccountProject),
		transfers:       make(map[string]*schema.Transfer),
		minters:         make(map[string]*schema.Minter),
		minterConfigs:   make(map[string]*schema.ProjectMinterConfiguration),
	}
}

func cloneJSON(d datatypes.JSON) datatypes.JSON {
	if d == nil {
		return nil
	}
	out := make(datatypes.JSON, len(d))
	copy(out, d)
	return out
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneUint64Ptr(u *uint64) *uint64 {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}

func cloneContract(c *schema.Contract) *schema.Contract {
	out := *c
	out.MintWhitelisted = cloneJSON(c.MintWhitelisted)
	return &out
}

func cloneProject(p *schema.Project) *schema.Project {
	out := *p
	out.CompletedAt = cloneTimePtr(p.CompletedAt)
	out.ActivatedAt = cloneTimePtr(p.ActivatedAt)
	return &out
}

func cloneMinter(m *schema.Minter) *schema.Minter {
	out := *m
	out.ExtraMinterDetails = cloneJSON(m.ExtraMinterDetails)
	return &out
}

func cloneMinterConfig(c *schema.ProjectMinterConfiguration) *schema.ProjectMinterConfiguration {
	out := *c
	out.MaxInvocations = cloneUint64Ptr(c.MaxInvocations)
	out.ExtraMinterDetails = cloneJSON(c.ExtraMinterDetails)
	return &out
}

// GetContract retrieves a core contract by its address key
func (s *memoryStore) GetContract(_ context.Context, id string) (*schema.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[id]
	if !ok {
		return nil, nil
	}
	return cloneContract(c), nil
}

// SaveContract upserts a core contract
func (s *memoryStore) SaveContract(_ context.Context, contract *schema.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contracts[contract.ID] = cloneContract(contract)
	return nil
}

// GetProject retrieves a project by its composite key
func (s *memoryStore) GetProject(_ context.Context, id string) (*schema.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return cloneProject(p), nil
}

// SaveProject upserts a project
func (s *memoryStore) SaveProject(_ context.Context, project *schema.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[project.ID] = cloneProject(project)
	return nil
}

// GetProjectScripts retrieves a project's script fragments ordered by index
func (s *memoryStore) GetProjectScripts(_ context.Context, projectID string) ([]*schema.ProjectScript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var scripts []*schema.ProjectScript
	for _, ps := range s.projectScripts {
		if ps.ProjectID == projectID {
			copied := *ps
			scripts = append(scripts, &copied)
		}
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Index < scripts[j].Index
	})
	return scripts, nil
}

// SaveProjectScript upserts a script fragment
func (s *memoryStore) SaveProjectScript(_ context.Context, script *schema.ProjectScript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *script
	s.projectScripts[script.ID] = &copied
	return nil
}

// DeleteProjectScriptsFrom removes a project's fragments with index >= fromIndex
func (s *memoryStore) DeleteProjectScriptsFrom(_ context.Context, projectID string, fromIndex uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ps := range s.projectScripts {
		if ps.ProjectID == projectID && ps.Index >= fromIndex {
			delete(s.projectScripts, id)
		}
	}
	return nil
}

// GetToken retrieves a token by its composite key
func (s *memoryStore) GetToken(_ context.Context, id string) (*schema.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

// SaveToken upserts a token
func (s *memoryStore) SaveToken(_ context.Context, token *schema.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *token
	s.tokens[token.ID] = &copied
	return nil
}

// GetAccount retrieves an account by address key
func (s *memoryStore) GetAccount(_ context.Context, id string) (*schema.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

// SaveAccount upserts an account
func (s *memoryStore) SaveAccount(_ context.Context, account *schema.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *account
	s.accounts[account.ID] = &copied
	return nil
}

// GetAccountProject retrieves an ownership join row by its composite key
func (s *memoryStore) GetAccountProject(_ context.Context, id string) (*schema.AccountProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.accountProjects[id]
	if !ok {
		return nil, nil
	}
	copied := *ap
	return &copied, nil
}

// SaveAccountProject upserts an ownership join row
func (s *memoryStore) SaveAccountProject(_ context.Context, accountProject *schema.AccountProject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *accountProject
	s.accountProjects[accountProject.ID] = &copied
	return nil
}

// DeleteAccountProject removes an ownership join row
func (s *memoryStore) DeleteAccountProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accountProjects, id)
	return nil
}

// CreateTransfer appends a transfer ledger row; replays are ignored
func (s *memoryStore) CreateTransfer(_ context.Context, transfer *schema.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transfers[transfer.ID]; ok {
		return nil
	}
	copied := *transfer
	s.transfers[transfer.ID] = &copied
	return nil
}

// GetMinter retrieves a minter by its address key
func (s *memoryStore) GetMinter(_ context.Context, id string) (*schema.Minter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.minters[id]
	if !ok {
		return nil, nil
	}
	return cloneMinter(m), nil
}

// SaveMinter upserts a minter
func (s *memoryStore) SaveMinter(_ context.Context, minter *schema.Minter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.minters[minter.ID] = cloneMinter(minter)
	return nil
}

// GetProjectMinterConfiguration retrieves a (minter, project) configuration
func (s *memoryStore) GetProjectMinterConfiguration(_ context.Context, id string) (*schema.ProjectMinterConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.minterConfigs[id]
	if !ok {
		return nil, nil
	}
	return cloneMinterConfig(c), nil
}

// SaveProjectMinterConfiguration upserts a (minter, project) configuration
func (s *memoryStore) SaveProjectMinterConfiguration(_ context.Context, config *schema.ProjectMinterConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.minterConfigs[config.ID] = cloneMinterConfig(config)
	return nil
}
