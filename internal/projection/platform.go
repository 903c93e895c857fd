package projection

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/chain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

// handlePlatformUpdated merges one contract-level attribute from a fresh platform
// state read. Only the fields owned by the signaled attribute are touched, so an
// incomplete read of unrelated getters cannot clobber stored values.
func (e *Engine) handlePlatformUpdated(ctx context.Context, ev *domain.PlatformUpdatedEvent) error {
	core := ev.Meta.CoreAddress()

	contract, err := e.loadOrCreateContract(ctx, core, ev.Meta.Timestamp)
	if err != nil {
		return err
	}

	state, err := e.core.PlatformState(ctx, contract.ID)
	if err != nil {
		if !chain.IsRevert(err) {
			return err
		}
		e.log.Warn("platform state read reverted, skipping field update",
			zap.String("contract", contract.ID),
			zap.String("field", string(ev.Field)),
			zap.Error(err))
		return nil
	}

	switch ev.Field {
	case domain.FieldPlatformAdmin:
		contract.Admin = state.Admin
	case domain.FieldPlatformNextProjectID:
		if state.NextProjectID != nil {
			contract.NextProjectID = state.NextProjectID.String()
		}
	case domain.FieldPlatformNewProjectsForbidden:
		contract.NewProjectsForbidden = state.NewProjectsForbidden
	case domain.FieldPlatformRandomizerAddress:
		contract.RandomizerContract = state.RandomizerAddress
	case domain.FieldPlatformCurationRegistry:
		contract.CurationRegistry = state.CurationRegistryAddress
	case domain.FieldPlatformDependencyRegistry:
		contract.DependencyRegistry = state.DependencyRegistryAddress
	case domain.FieldPlatformPrimarySalesAddress:
		contract.RenderProviderAddress = state.RenderProviderAddress
	case domain.FieldPlatformPrimarySalesPercentage:
		contract.RenderProviderPercentage = state.RenderProviderPercentage
	case domain.FieldPlatformSecondarySalesAddress:
		contract.RenderProviderSecondarySalesAddress = state.RenderProviderSecondarySalesAddress
	case domain.FieldPlatformSecondarySalesBPS:
		contract.RenderProviderSecondarySalesBPS = state.RenderProviderSecondarySalesBPS
	case domain.FieldPlatformMintWhitelisted:
		whitelisted, err := encodeMintWhitelist(state.MinterContract)
		if err != nil {
			return err
		}
		contract.MintWhitelisted = whitelisted
	default:
		e.log.Warn("unexpected platform field, ignoring",
			zap.String("contract", contract.ID),
			zap.String("field", string(ev.Field)))
		return nil
	}

	contract.UpdatedAt = ev.Meta.Timestamp
	return e.store.SaveContract(ctx, contract)
}

// mergePlatformState copies every platform attribute onto a freshly created
// contract row.
func mergePlatformState(contract *schema.Contract, state *chain.PlatformState) {
	contract.Admin = state.Admin
	if state.NextProjectID != nil {
		contract.NextProjectID = state.NextProjectID.String()
	}
	contract.NewProjectsForbidden = state.NewProjectsForbidden
	contract.RandomizerContract = state.RandomizerAddress
	contract.CurationRegistry = state.CurationRegistryAddress
	contract.DependencyRegistry = state.DependencyRegistryAddress
	contract.RenderProviderAddress = state.RenderProviderAddress
	contract.RenderProviderPercentage = state.RenderProviderPercentage
	contract.RenderProviderSecondarySalesAddress = state.RenderProviderSecondarySalesAddress
	contract.RenderProviderSecondarySalesBPS = state.RenderProviderSecondarySalesBPS

	if whitelisted, err := encodeMintWhitelist(state.MinterContract); err == nil {
		contract.MintWhitelisted = whitelisted
	}
}

// encodeMintWhitelist renders the whitelisted minter list column: the current
// minter filter address, or an empty list when none is set.
func encodeMintWhitelist(minterContract string) ([]byte, error) {
	list := []string{}
	if minterContract != "" {
		list = append(list, minterContract)
	}
	return json.Marshal(list)
}
