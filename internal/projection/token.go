package projection

import (
	"context"

	"go.uber.org/zap"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/chain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

// handleMint creates the token row and rolls the project's invocation counter
// forward. The token's invocation field snapshots the counter before the
// increment, so invocation numbers are zero-based and stable.
func (e *Engine) handleMint(ctx context.Context, ev *domain.MintEvent) error {
	core := ev.Meta.CoreAddress()
	projectNumber := domain.ProjectNumberFromTokenID(ev.TokenID, e.invocationSpace)
	projectID := domain.EntityID(core, projectNumber)

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		e.log.Warn("mint for unknown project, dropping event",
			zap.String("projectID", projectID),
			zap.String("tokenID", ev.TokenID.String()),
			zap.String("txHash", ev.Meta.TxHash.Hex()))
		return nil
	}

	hash, err := e.core.TokenHash(ctx, domain.AddressID(core), ev.TokenID)
	if err != nil {
		if !chain.IsRevert(err) {
			return err
		}
		e.log.Warn("token hash read reverted, storing empty hash",
			zap.String("tokenID", ev.TokenID.String()),
			zap.Error(err))
		hash = ""
	}

	ownerID := domain.AddressID(ev.To)
	token := &schema.Token{
		ID:         domain.EntityID(core, ev.TokenID),
		ContractID: domain.AddressID(core),
		ProjectID:  projectID,
		OwnerID:    ownerID,
		Hash:       hash,
		Invocation: project.Invocations,
		TxHash:     ev.Meta.TxHash.Hex(),
		CreatedAt:  ev.Meta.Timestamp,
		UpdatedAt:  ev.Meta.Timestamp,
	}
	if err := e.store.SaveToken(ctx, token); err != nil {
		return err
	}

	project.Invocations++
	if project.MaxInvocations > 0 && project.Invocations >= project.MaxInvocations {
		project.Complete = true
		completedAt := ev.Meta.Timestamp
		project.CompletedAt = &completedAt
	}
	project.UpdatedAt = ev.Meta.Timestamp
	if err := e.store.SaveProject(ctx, project); err != nil {
		return err
	}

	return e.incrementAccountProject(ctx, ownerID, projectID)
}

// handleTransfer moves ownership of an existing token and appends the ledger row.
// Token creation belongs to the mint handler alone; a transfer for an unknown
// token is dropped.
func (e *Engine) handleTransfer(ctx context.Context, ev *domain.TransferEvent) error {
	core := ev.Meta.CoreAddress()
	tokenID := domain.EntityID(core, ev.TokenID)

	token, err := e.store.GetToken(ctx, tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		e.log.Warn("transfer for unknown token, dropping event",
			zap.String("tokenID", tokenID),
			zap.String("txHash", ev.Meta.TxHash.Hex()))
		return nil
	}

	fromID := domain.AddressID(ev.From)
	toID := domain.AddressID(ev.To)

	if err := e.decrementAccountProject(ctx, fromID, token.ProjectID); err != nil {
		return err
	}
	if err := e.incrementAccountProject(ctx, toID, token.ProjectID); err != nil {
		return err
	}

	token.OwnerID = toID
	token.UpdatedAt = ev.Meta.Timestamp
	if err := e.store.SaveToken(ctx, token); err != nil {
		return err
	}

	return e.store.CreateTransfer(ctx, &schema.Transfer{
		ID:          domain.TransferID(ev.Meta.TxHash, ev.Meta.LogIndex),
		TokenID:     token.ID,
		From:        fromID,
		To:          toID,
		TxHash:      ev.Meta.TxHash.Hex(),
		LogIndex:    ev.Meta.LogIndex,
		BlockNumber: ev.Meta.BlockNumber,
		Timestamp:   ev.Meta.Timestamp,
	})
}
