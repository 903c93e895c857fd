package projection

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/details"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/pricing"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

// extra-details keys written by the Dutch auction handlers
const (
	keyAuctionStartTime       = "startTime"
	keyAuctionEndTime         = "endTime"
	keyAuctionStartPrice      = "startPrice"
	keyAuctionBasePrice       = "basePrice"
	keyAuctionHalfLifeSeconds = "halfLifeSeconds"
	keyApproximateDAExpEnd    = "approximateDAExpEndTime"
)

var auctionKeys = []string{
	keyAuctionStartTime,
	keyAuctionEndTime,
	keyAuctionStartPrice,
	keyAuctionBasePrice,
	keyAuctionHalfLifeSeconds,
	keyApproximateDAExpEnd,
}

// projectScope bundles the three entities every project-scoped minter handler
// works on.
type projectScope struct {
	project *schema.Project
	minter  *schema.Minter
	config  *schema.ProjectMinterConfiguration
}

// resolveProjectScope loads the (project, minter, configuration) triple for a
// project-scoped minter event. A missing project aborts only the current event:
// the scope comes back nil with a warning logged.
func (e *Engine) resolveProjectScope(ctx context.Context, meta domain.EventMeta, projectNumber *big.Int) (*projectScope, error) {
	core := meta.CoreAddress()
	projectID := domain.EntityID(core, projectNumber)

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		e.log.Warn("minter event for unknown project, dropping event",
			zap.String("projectID", projectID),
			zap.String("minter", domain.AddressID(meta.Contract)))
		return nil, nil
	}

	minter, err := e.loadOrCreateMinter(ctx, meta.Contract, core, meta.Timestamp)
	if err != nil {
		return nil, err
	}

	config, err := e.loadOrCreateConfig(ctx, minter.ID, projectID)
	if err != nil {
		return nil, err
	}

	return &projectScope{project: project, minter: minter, config: config}, nil
}

// finishProjectScoped saves the mutated configuration, bumps the minter and runs
// active-configuration propagation. Every project-scoped handler ends here.
func (e *Engine) finishProjectScoped(ctx context.Context, scope *projectScope, meta domain.EventMeta) error {
	if err := e.store.SaveProjectMinterConfiguration(ctx, scope.config); err != nil {
		return err
	}

	scope.minter.UpdatedAt = meta.Timestamp
	if err := e.store.SaveMinter(ctx, scope.minter); err != nil {
		return err
	}

	return e.propagateActiveConfiguration(ctx, scope.project, scope.config, meta.Timestamp)
}

func (e *Engine) handlePricePerTokenUpdated(ctx context.Context, ev *domain.PricePerTokenUpdatedEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	scope.config.BasePrice = ev.Price.String()
	scope.config.PriceIsConfigured = true

	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

func (e *Engine) handleCurrencyInfoUpdated(ctx context.Context, ev *domain.CurrencyInfoUpdatedEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	scope.config.CurrencySymbol = ev.Symbol
	scope.config.CurrencyAddress = domain.AddressID(ev.Currency)

	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

func (e *Engine) handleMaxInvocationsLimitUpdated(ctx context.Context, ev *domain.MaxInvocationsLimitUpdatedEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	limit := ev.MaxInvocations.Uint64()
	scope.config.MaxInvocations = &limit

	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

func (e *Engine) handleProjectConfigSet(ctx context.Context, ev *domain.ProjectConfigSetEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	if err := details.SetValue(scope.config, ev.Key, ev.Value); err != nil {
		return err
	}
	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

func (e *Engine) handleProjectConfigRemoved(ctx context.Context, ev *domain.ProjectConfigRemovedEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	if err := details.RemoveEntry(scope.config, ev.Key); err != nil {
		return err
	}
	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

func (e *Engine) handleProjectConfigAddedToSet(ctx context.Context, ev *domain.ProjectConfigAddedToSetEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	if err := details.AddToSet(scope.config, ev.Key, ev.Value); err != nil {
		return err
	}
	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

func (e *Engine) handleProjectConfigRemovedFromSet(ctx context.Context, ev *domain.ProjectConfigRemovedFromSetEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	if err := details.RemoveFromSet(scope.config, ev.Key, ev.Value); err != nil {
		return err
	}
	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

// minter-scoped config events mutate the minter's own details map. A minter-level
// setting is not active for any one project, so these never propagate.

func (e *Engine) handleMinterConfigSet(ctx context.Context, ev *domain.MinterConfigSetEvent) error {
	return e.mutateMinterDetails(ctx, ev.Meta, func(minter *schema.Minter) error {
		return details.SetValue(minter, ev.Key, ev.Value)
	})
}

func (e *Engine) handleMinterConfigRemoved(ctx context.Context, ev *domain.MinterConfigRemovedEvent) error {
	return e.mutateMinterDetails(ctx, ev.Meta, func(minter *schema.Minter) error {
		return details.RemoveEntry(minter, ev.Key)
	})
}

func (e *Engine) handleMinterConfigAddedToSet(ctx context.Context, ev *domain.MinterConfigAddedToSetEvent) error {
	return e.mutateMinterDetails(ctx, ev.Meta, func(minter *schema.Minter) error {
		return details.AddToSet(minter, ev.Key, ev.Value)
	})
}

func (e *Engine) handleMinterConfigRemovedFromSet(ctx context.Context, ev *domain.MinterConfigRemovedFromSetEvent) error {
	return e.mutateMinterDetails(ctx, ev.Meta, func(minter *schema.Minter) error {
		return details.RemoveFromSet(minter, ev.Key, ev.Value)
	})
}

func (e *Engine) mutateMinterDetails(ctx context.Context, meta domain.EventMeta, mutate func(*schema.Minter) error) error {
	minter, err := e.loadOrCreateMinter(ctx, meta.Contract, meta.CoreAddress(), meta.Timestamp)
	if err != nil {
		return err
	}

	if err := mutate(minter); err != nil {
		return err
	}

	minter.UpdatedAt = meta.Timestamp
	return e.store.SaveMinter(ctx, minter)
}

func (e *Engine) handleLinearAuctionSet(ctx context.Context, ev *domain.LinearAuctionSetEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	entries := map[string]details.Value{
		keyAuctionStartTime:  details.IntValue(new(big.Int).SetUint64(ev.StartTime)),
		keyAuctionEndTime:    details.IntValue(new(big.Int).SetUint64(ev.EndTime)),
		keyAuctionStartPrice: details.IntValue(ev.StartPrice),
		keyAuctionBasePrice:  details.IntValue(ev.BasePrice),
	}
	for key, value := range entries {
		if err := details.SetValue(scope.config, key, value); err != nil {
			return err
		}
	}

	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

func (e *Engine) handleExponentialAuctionSet(ctx context.Context, ev *domain.ExponentialAuctionSetEvent) error {
	duration, err := pricing.TotalExponentialDecayDuration(ev.StartPrice, ev.BasePrice, ev.HalfLifeSeconds)
	if err != nil {
		e.log.Warn("invalid exponential auction price range, dropping event",
			zap.String("startPrice", ev.StartPrice.String()),
			zap.String("basePrice", ev.BasePrice.String()),
			zap.Error(err))
		return nil
	}

	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	entries := map[string]details.Value{
		keyAuctionStartTime:       details.IntValue(new(big.Int).SetUint64(ev.StartTime)),
		keyAuctionHalfLifeSeconds: details.IntValue(new(big.Int).SetUint64(ev.HalfLifeSeconds)),
		keyAuctionStartPrice:      details.IntValue(ev.StartPrice),
		keyAuctionBasePrice:       details.IntValue(ev.BasePrice),
		keyApproximateDAExpEnd:    details.IntValue(new(big.Int).SetUint64(ev.StartTime + duration)),
	}
	for key, value := range entries {
		if err := details.SetValue(scope.config, key, value); err != nil {
			return err
		}
	}

	return e.finishProjectScoped(ctx, scope, ev.Meta)
}

// handleAuctionReset removes the auction keys rather than zeroing them, so a
// reset configuration is indistinguishable from one never set.
func (e *Engine) handleAuctionReset(ctx context.Context, ev *domain.AuctionResetEvent) error {
	scope, err := e.resolveProjectScope(ctx, ev.Meta, ev.ProjectID)
	if err != nil || scope == nil {
		return err
	}

	for _, key := range auctionKeys {
		if err := details.RemoveEntry(scope.config, key); err != nil {
			return err
		}
	}

	return e.finishProjectScoped(ctx, scope, ev.Meta)
}
