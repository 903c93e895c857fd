// Package projection applies decoded chain events to the derived entity store.
// Handlers are run-to-completion and strictly serial; correctness depends on the
// host delivering events in on-chain causal order.
package projection

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/chain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/store"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

// zero address in entity-key form, the default purchase currency address
const ethCurrencyAddress = "0x0000000000000000000000000000000000000000"

// Config tunes per-deployment constants of the engine.
type Config struct {
	// TokenInvocationSpace is the size of the per-project token id space on the
	// indexed core; zero falls back to domain.DefaultTokenInvocationSpace
	TokenInvocationSpace int64

	// MinterFilterAddress is the minter filter governing the indexed core. Empty
	// disables active-configuration propagation.
	MinterFilterAddress string
}

// Engine owns the projection handlers. One engine instance serves one event
// stream; it holds no per-event state of its own.
type Engine struct {
	store           store.Store
	core            chain.CoreReader
	filter          chain.MinterFilterReader
	log             *zap.Logger
	invocationSpace int64
	minterFilter    string
}

// NewEngine creates a projection engine over the given store and chain readers.
func NewEngine(s store.Store, core chain.CoreReader, filter chain.MinterFilterReader, log *zap.Logger, cfg Config) *Engine {
	space := cfg.TokenInvocationSpace
	if space <= 0 {
		space = domain.DefaultTokenInvocationSpace
	}

	return &Engine{
		store:           s,
		core:            core,
		filter:          filter,
		log:             log,
		invocationSpace: space,
		minterFilter:    cfg.MinterFilterAddress,
	}
}

// Apply projects a single event into the store. A nil return means the event is
// fully applied or deliberately skipped; a non-nil return is an infrastructure
// failure the caller should redeliver.
func (e *Engine) Apply(ctx context.Context, ev domain.Event) error {
	switch ev := ev.(type) {
	case *domain.MintEvent:
		return e.handleMint(ctx, ev)
	case *domain.TransferEvent:
		return e.handleTransfer(ctx, ev)
	case *domain.ProjectUpdatedEvent:
		return e.handleProjectUpdated(ctx, ev)
	case *domain.PlatformUpdatedEvent:
		return e.handlePlatformUpdated(ctx, ev)
	case *domain.PricePerTokenUpdatedEvent:
		return e.handlePricePerTokenUpdated(ctx, ev)
	case *domain.CurrencyInfoUpdatedEvent:
		return e.handleCurrencyInfoUpdated(ctx, ev)
	case *domain.MaxInvocationsLimitUpdatedEvent:
		return e.handleMaxInvocationsLimitUpdated(ctx, ev)
	case *domain.ProjectConfigSetEvent:
		return e.handleProjectConfigSet(ctx, ev)
	case *domain.ProjectConfigRemovedEvent:
		return e.handleProjectConfigRemoved(ctx, ev)
	case *domain.ProjectConfigAddedToSetEvent:
		return e.handleProjectConfigAddedToSet(ctx, ev)
	case *domain.ProjectConfigRemovedFromSetEvent:
		return e.handleProjectConfigRemovedFromSet(ctx, ev)
	case *domain.MinterConfigSetEvent:
		return e.handleMinterConfigSet(ctx, ev)
	case *domain.MinterConfigRemovedEvent:
		return e.handleMinterConfigRemoved(ctx, ev)
	case *domain.MinterConfigAddedToSetEvent:
		return e.handleMinterConfigAddedToSet(ctx, ev)
	case *domain.MinterConfigRemovedFromSetEvent:
		return e.handleMinterConfigRemovedFromSet(ctx, ev)
	case *domain.LinearAuctionSetEvent:
		return e.handleLinearAuctionSet(ctx, ev)
	case *domain.ExponentialAuctionSetEvent:
		return e.handleExponentialAuctionSet(ctx, ev)
	case *domain.AuctionResetEvent:
		return e.handleAuctionReset(ctx, ev)
	default:
		return fmt.Errorf("%w: %T", domain.ErrUnknownEventKind, ev)
	}
}

// loadOrCreateContract returns the contract row for a core address, creating it
// on first reference with the platform state read from chain.
func (e *Engine) loadOrCreateContract(ctx context.Context, core common.Address, ts time.Time) (*schema.Contract, error) {
	id := domain.AddressID(core)
	contract, err := e.store.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract != nil {
		return contract, nil
	}

	contract = &schema.Contract{
		ID:        id,
		Type:      "GenArt721Core",
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	state, err := e.core.PlatformState(ctx, id)
	if err != nil {
		if !chain.IsRevert(err) {
			return nil, err
		}
		e.log.Warn("platform state read reverted, creating bare contract row",
			zap.String("contract", id),
			zap.Error(err))
	} else {
		mergePlatformState(contract, state)
	}

	if err := e.store.SaveContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// loadOrCreateMinter returns the minter row for a minter address, creating it on
// first reference. Existing rows are never overwritten here.
func (e *Engine) loadOrCreateMinter(ctx context.Context, minterAddr, core common.Address, ts time.Time) (*schema.Minter, error) {
	id := domain.AddressID(minterAddr)
	minter, err := e.store.GetMinter(ctx, id)
	if err != nil {
		return nil, err
	}
	if minter != nil {
		return minter, nil
	}

	minter = &schema.Minter{
		ID:           id,
		CoreContract: domain.AddressID(core),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := e.store.SaveMinter(ctx, minter); err != nil {
		return nil, err
	}
	return minter, nil
}

// loadOrCreateConfig returns the configuration a minter holds for a project,
// creating it with the ETH currency defaults on the pair's first event.
func (e *Engine) loadOrCreateConfig(ctx context.Context, minterID, projectID string) (*schema.ProjectMinterConfiguration, error) {
	id := domain.JoinID(minterID, projectID)
	config, err := e.store.GetProjectMinterConfiguration(ctx, id)
	if err != nil {
		return nil, err
	}
	if config != nil {
		return config, nil
	}

	config = &schema.ProjectMinterConfiguration{
		ID:              id,
		MinterID:        minterID,
		ProjectID:       projectID,
		CurrencySymbol:  "ETH",
		CurrencyAddress: ethCurrencyAddress,
	}
	if err := e.store.SaveProjectMinterConfiguration(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}

// incrementAccountProject upserts the account and bumps its per-project holding
// count by one.
func (e *Engine) incrementAccountProject(ctx context.Context, accountID, projectID string) error {
	if err := e.store.SaveAccount(ctx, &schema.Account{ID: accountID}); err != nil {
		return err
	}

	id := domain.JoinID(accountID, projectID)
	ap, err := e.store.GetAccountProject(ctx, id)
	if err != nil {
		return err
	}
	if ap == nil {
		ap = &schema.AccountProject{
			ID:        id,
			AccountID: accountID,
			ProjectID: projectID,
		}
	}
	ap.Count++
	return e.store.SaveAccountProject(ctx, ap)
}

// decrementAccountProject drops the holding count by one and removes the row at
// zero. A missing row is tolerated: the sender may predate indexing.
func (e *Engine) decrementAccountProject(ctx context.Context, accountID, projectID string) error {
	id := domain.JoinID(accountID, projectID)
	ap, err := e.store.GetAccountProject(ctx, id)
	if err != nil {
		return err
	}
	if ap == nil {
		return nil
	}

	if ap.Count <= 1 {
		return e.store.DeleteAccountProject(ctx, id)
	}
	ap.Count--
	return e.store.SaveAccountProject(ctx, ap)
}

// propagateActiveConfiguration copies a configuration's denormalized pricing
// fields onto the project, but only when the configuration's minter is the one the
// minter filter currently designates for the project. A non-active minter may hold
// stale or speculative configuration without touching the project's visible state.
func (e *Engine) propagateActiveConfiguration(ctx context.Context, project *schema.Project, config *schema.ProjectMinterConfiguration, ts time.Time) error {
	if e.minterFilter == "" {
		e.log.Debug("no minter filter configured, skipping propagation",
			zap.String("projectID", project.ID))
		return nil
	}

	projectNumber, ok := new(big.Int).SetString(project.ProjectNumber, 10)
	if !ok {
		e.log.Warn("invalid stored project number, skipping propagation",
			zap.String("projectID", project.ID),
			zap.String("projectNumber", project.ProjectNumber))
		return nil
	}

	activeMinter, err := e.filter.MinterForProject(ctx, e.minterFilter, projectNumber)
	if err != nil {
		return err
	}
	if activeMinter == "" || activeMinter != config.MinterID {
		return nil
	}

	project.CurrencySymbol = config.CurrencySymbol
	project.CurrencyAddress = config.CurrencyAddress
	project.PricePerTokenInWei = config.BasePrice
	project.PriceIsConfigured = config.PriceIsConfigured
	if config.MaxInvocations != nil {
		project.MaxInvocations = *config.MaxInvocations
	}
	project.UpdatedAt = ts

	return e.store.SaveProject(ctx, project)
}
