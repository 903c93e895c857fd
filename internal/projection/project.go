package projection

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/chain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/store/schema"
)

// handleProjectUpdated dispatches a project field-change signal. The event names
// the field that changed; the current value comes from a chain read, never from the
// payload. A reverted read skips that field update and leaves the stored value
// untouched.
func (e *Engine) handleProjectUpdated(ctx context.Context, ev *domain.ProjectUpdatedEvent) error {
	if ev.Field == domain.FieldProjectCreated {
		return e.createProject(ctx, ev)
	}

	core := ev.Meta.CoreAddress()
	coreID := domain.AddressID(core)
	projectID := domain.EntityID(core, ev.ProjectID)

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		e.log.Warn("update for unknown project, dropping event",
			zap.String("projectID", projectID),
			zap.String("field", string(ev.Field)))
		return nil
	}

	switch ev.Field {
	case domain.FieldProjectActive, domain.FieldProjectPaused,
		domain.FieldProjectMaxInvocations, domain.FieldProjectCompleted:
		state, err := e.core.ProjectStateData(ctx, coreID, ev.ProjectID)
		if err != nil {
			return e.skipOnRevert(err, project.ID, ev.Field)
		}
		switch ev.Field {
		case domain.FieldProjectActive:
			wasActive := project.Active
			project.Active = state.Active
			if state.Active && !wasActive && project.ActivatedAt == nil {
				activatedAt := ev.Meta.Timestamp
				project.ActivatedAt = &activatedAt
			}
		case domain.FieldProjectPaused:
			project.Paused = state.Paused
		case domain.FieldProjectMaxInvocations, domain.FieldProjectCompleted:
			project.MaxInvocations = state.MaxInvocations
			project.Invocations = state.Invocations
			if state.MaxInvocations > 0 && state.Invocations >= state.MaxInvocations {
				if !project.Complete {
					project.Complete = true
					completedAt := ev.Meta.Timestamp
					project.CompletedAt = &completedAt
				}
			} else {
				project.Complete = false
				project.CompletedAt = nil
			}
		}
		project.Locked = state.Locked

	case domain.FieldProjectName, domain.FieldProjectArtistName,
		domain.FieldProjectDescription, domain.FieldProjectLicense,
		domain.FieldProjectWebsite:
		details, err := e.core.ProjectDetails(ctx, coreID, ev.ProjectID)
		if err != nil {
			return e.skipOnRevert(err, project.ID, ev.Field)
		}
		switch ev.Field {
		case domain.FieldProjectName:
			project.Name = details.Name
		case domain.FieldProjectArtistName:
			project.ArtistName = details.ArtistName
		case domain.FieldProjectDescription:
			project.Description = details.Description
		case domain.FieldProjectLicense:
			project.License = details.License
		case domain.FieldProjectWebsite:
			project.Website = details.Website
		}

	case domain.FieldProjectAspectRatio, domain.FieldProjectScriptType:
		scriptDetails, err := e.core.ProjectScriptDetails(ctx, coreID, ev.ProjectID)
		if err != nil {
			return e.skipOnRevert(err, project.ID, ev.Field)
		}
		if ev.Field == domain.FieldProjectAspectRatio {
			project.AspectRatio = scriptDetails.AspectRatio
		} else {
			project.ScriptTypeAndVersion = scriptDetails.ScriptTypeAndVersion
		}
		project.IPFSHash = scriptDetails.IPFSHash

	case domain.FieldProjectArtistAddress:
		artist, err := e.core.ProjectArtistAddress(ctx, coreID, ev.ProjectID)
		if err != nil {
			return e.skipOnRevert(err, project.ID, ev.Field)
		}
		project.ArtistAddress = artist

	case domain.FieldProjectBaseURI:
		baseURI, err := e.core.ProjectBaseURI(ctx, coreID, ev.ProjectID)
		if err != nil {
			return e.skipOnRevert(err, project.ID, ev.Field)
		}
		project.BaseURI = baseURI

	case domain.FieldProjectRoyaltyPercentage:
		royalty, err := e.core.ProjectRoyaltyPercentage(ctx, coreID, ev.ProjectID)
		if err != nil {
			return e.skipOnRevert(err, project.ID, ev.Field)
		}
		project.RoyaltyPercentage = royalty

	case domain.FieldProjectScript:
		if err := e.rebuildScript(ctx, coreID, ev, project); err != nil {
			return e.skipOnRevert(err, project.ID, ev.Field)
		}

	default:
		e.log.Warn("unexpected project field, ignoring",
			zap.String("projectID", projectID),
			zap.String("field", string(ev.Field)))
		return nil
	}

	project.UpdatedAt = ev.Meta.Timestamp
	return e.store.SaveProject(ctx, project)
}

// skipOnRevert downgrades a reverted auxiliary read to a logged field skip;
// anything else stays an error for redelivery.
func (e *Engine) skipOnRevert(err error, projectID string, field domain.ProjectField) error {
	if !chain.IsRevert(err) {
		return err
	}
	e.log.Warn("auxiliary read reverted, skipping field update",
		zap.String("projectID", projectID),
		zap.String("field", string(field)),
		zap.Error(err))
	return nil
}

// createProject constructs a new project row from the full set of chain reads.
// Field groups whose read reverts are left at their zero values; the row is still
// created so later field updates have somewhere to land.
func (e *Engine) createProject(ctx context.Context, ev *domain.ProjectUpdatedEvent) error {
	core := ev.Meta.CoreAddress()
	coreID := domain.AddressID(core)
	projectID := domain.EntityID(core, ev.ProjectID)

	existing, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if existing != nil {
		e.log.Warn("created signal for existing project, ignoring",
			zap.String("projectID", projectID))
		return nil
	}

	contract, err := e.loadOrCreateContract(ctx, core, ev.Meta.Timestamp)
	if err != nil {
		return err
	}

	project := &schema.Project{
		ID:            projectID,
		ContractID:    coreID,
		ProjectNumber: ev.ProjectID.String(),
		Paused:        true,
		Dynamic:       true,
		CreatedAt:     ev.Meta.Timestamp,
		UpdatedAt:     ev.Meta.Timestamp,
	}

	if details, err := e.core.ProjectDetails(ctx, coreID, ev.ProjectID); err != nil {
		if !chain.IsRevert(err) {
			return err
		}
		e.log.Warn("project details read reverted during creation",
			zap.String("projectID", projectID), zap.Error(err))
	} else {
		project.Name = details.Name
		project.ArtistName = details.ArtistName
		project.Description = details.Description
		project.Website = details.Website
		project.License = details.License
	}

	if scriptDetails, err := e.core.ProjectScriptDetails(ctx, coreID, ev.ProjectID); err != nil {
		if !chain.IsRevert(err) {
			return err
		}
		e.log.Warn("project script details read reverted during creation",
			zap.String("projectID", projectID), zap.Error(err))
	} else {
		project.ScriptTypeAndVersion = scriptDetails.ScriptTypeAndVersion
		project.AspectRatio = scriptDetails.AspectRatio
		project.IPFSHash = scriptDetails.IPFSHash
		project.ScriptCount = scriptDetails.ScriptCount
	}

	if state, err := e.core.ProjectStateData(ctx, coreID, ev.ProjectID); err != nil {
		if !chain.IsRevert(err) {
			return err
		}
		e.log.Warn("project state read reverted during creation",
			zap.String("projectID", projectID), zap.Error(err))
	} else {
		project.Active = state.Active
		project.Paused = state.Paused
		project.Locked = state.Locked
		project.Invocations = state.Invocations
		project.MaxInvocations = state.MaxInvocations
	}

	if baseURI, err := e.core.ProjectBaseURI(ctx, coreID, ev.ProjectID); err != nil {
		if !chain.IsRevert(err) {
			return err
		}
	} else {
		project.BaseURI = baseURI
	}

	if artist, err := e.core.ProjectArtistAddress(ctx, coreID, ev.ProjectID); err != nil {
		if !chain.IsRevert(err) {
			return err
		}
	} else {
		project.ArtistAddress = artist
	}

	if royalty, err := e.core.ProjectRoyaltyPercentage(ctx, coreID, ev.ProjectID); err != nil {
		if !chain.IsRevert(err) {
			return err
		}
	} else {
		project.RoyaltyPercentage = royalty
	}

	if err := e.store.SaveProject(ctx, project); err != nil {
		return err
	}

	contract.UpdatedAt = ev.Meta.Timestamp
	return e.store.SaveContract(ctx, contract)
}

// rebuildScript re-reads every script fragment and rebuilds the concatenated
// script column. Fragments at indices past the current count are deleted, so a
// shrinking script leaves no stale rows.
func (e *Engine) rebuildScript(ctx context.Context, coreID string, ev *domain.ProjectUpdatedEvent, project *schema.Project) error {
	scriptDetails, err := e.core.ProjectScriptDetails(ctx, coreID, ev.ProjectID)
	if err != nil {
		return err
	}

	var fragments []string
	for i := uint64(0); i < scriptDetails.ScriptCount; i++ {
		fragment, err := e.core.ProjectScriptByIndex(ctx, coreID, ev.ProjectID, i)
		if err != nil {
			return err
		}
		fragments = append(fragments, fragment)

		if err := e.store.SaveProjectScript(ctx, &schema.ProjectScript{
			ID:        domain.ScriptID(project.ID, i),
			ProjectID: project.ID,
			Index:     i,
			Script:    fragment,
		}); err != nil {
			return err
		}
	}

	if err := e.store.DeleteProjectScriptsFrom(ctx, project.ID, scriptDetails.ScriptCount); err != nil {
		return err
	}

	project.Script = strings.Join(fragments, "")
	project.ScriptCount = scriptDetails.ScriptCount
	return nil
}
