package projection

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/chain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
)

func projectUpdated(field domain.ProjectField) *domain.ProjectUpdatedEvent {
	return &domain.ProjectUpdatedEvent{
		Meta:      coreMeta(0),
		ProjectID: big.NewInt(7),
		Field:     field,
	}
}

func TestProjectCreatedConstructsFromChainReads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	require.NotNil(t, project)

	assert.Equal(t, "Fidenza", project.Name)
	assert.Equal(t, "Tyler Hobbs", project.ArtistName)
	assert.Equal(t, "NFT License", project.License)
	assert.Equal(t, "p5@1.0.0", project.ScriptTypeAndVersion)
	assert.Equal(t, "https://token.example.com/", project.BaseURI)
	assert.Equal(t, "0x9999999999999999999999999999999999999999", project.ArtistAddress)
	assert.Equal(t, uint64(5), project.RoyaltyPercentage)
	assert.Equal(t, uint64(10), project.MaxInvocations)
	assert.True(t, project.Paused)
	assert.Equal(t, blockTime, project.CreatedAt)

	// contract row was created alongside
	contract, err := env.store.GetContract(ctx, domain.AddressID(coreAddr))
	require.NoError(t, err)
	require.NotNil(t, contract)
}

func TestProjectCreatedWithRevertedReadsLeavesZeroFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// no chain state stubbed at all; every read reverts
	err := env.engine.Apply(ctx, projectUpdated(domain.FieldProjectCreated))
	require.NoError(t, err)

	project, err := env.store.GetProject(ctx, domain.EntityID(coreAddr, big.NewInt(7)))
	require.NoError(t, err)
	require.NotNil(t, project, "row is still created so later updates can land")
	assert.Empty(t, project.Name)
	assert.True(t, project.Paused)
	assert.True(t, project.Dynamic)
}

func TestProjectCreatedTwiceIgnoresSecondSignal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	env.core.details["7"].Name = "Renamed"
	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectCreated)))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Fidenza", project.Name, "existing project is not reconstructed")
}

func TestProjectFieldUpdateRereadsChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	env.core.details["7"].Name = "Fidenza (final)"
	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectName)))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Fidenza (final)", project.Name)
	assert.Equal(t, "Tyler Hobbs", project.ArtistName, "only the signaled field group is touched")
}

func TestProjectActivationStampsActivatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	env.core.stateData["7"].Active = true
	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectActive)))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, project.Active)
	require.NotNil(t, project.ActivatedAt)
	assert.Equal(t, blockTime, *project.ActivatedAt)
}

func TestProjectUpdateRevertedReadSkipsField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	delete(env.core.details, "7")
	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectName)))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Fidenza", project.Name, "stored value survives a reverted read")
}

func TestProjectUpdateUnknownFieldIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.ProjectField("holographic"))))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Fidenza", project.Name)
}

func TestProjectUpdateUnknownProjectDropped(t *testing.T) {
	env := newTestEnv(t)

	err := env.engine.Apply(context.Background(), &domain.ProjectUpdatedEvent{
		Meta:      coreMeta(0),
		ProjectID: big.NewInt(42),
		Field:     domain.FieldProjectName,
	})
	require.NoError(t, err)
}

func TestScriptRebuildConcatenatesFragmentsInOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	env.core.scripts["7"] = []string{"let a=1;", "let b=2;", "draw();"}
	env.core.scriptDetails["7"].ScriptCount = 3

	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectScript)))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "let a=1;let b=2;draw();", project.Script)
	assert.Equal(t, uint64(3), project.ScriptCount)

	scripts, err := env.store.GetProjectScripts(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, scripts, 3)
	assert.Equal(t, "let b=2;", scripts[1].Script)
}

func TestScriptRebuildShrinkDeletesTrailingFragments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	env.core.scripts["7"] = []string{"let a=1;", "let b=2;", "draw();"}
	env.core.scriptDetails["7"].ScriptCount = 3
	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectScript)))

	env.core.scripts["7"] = []string{"let a=1;"}
	env.core.scriptDetails["7"].ScriptCount = 1
	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectScript)))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "let a=1;", project.Script)
	assert.Equal(t, uint64(1), project.ScriptCount)

	scripts, err := env.store.GetProjectScripts(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, scripts, 1)
	assert.Equal(t, uint64(0), scripts[0].Index)
}

func TestMaxInvocationsUpdateRecomputesCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	projectID := seedProject(t, env)

	require.NoError(t, env.engine.Apply(ctx, mint(aliceAddr, 7000000, 1)))
	require.NoError(t, env.engine.Apply(ctx, mint(aliceAddr, 7000001, 2)))

	// artist reduces the cap to what was already minted
	env.core.stateData["7"] = &chain.ProjectStateData{
		Invocations:    2,
		MaxInvocations: 2,
	}
	require.NoError(t, env.engine.Apply(ctx, projectUpdated(domain.FieldProjectMaxInvocations)))

	project, err := env.store.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), project.MaxInvocations)
	assert.True(t, project.Complete)
	require.NotNil(t, project.CompletedAt)
}
