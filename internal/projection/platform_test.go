package projection

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/chain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
)

func platformUpdated(field domain.PlatformField) *domain.PlatformUpdatedEvent {
	return &domain.PlatformUpdatedEvent{
		Meta:  coreMeta(0),
		Field: field,
	}
}

func TestPlatformUpdateCreatesContractWithChainState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.core.platform = &chain.PlatformState{
		Admin:         "0x1234000000000000000000000000000000000000",
		NextProjectID: big.NewInt(374),
	}

	require.NoError(t, env.engine.Apply(ctx, platformUpdated(domain.FieldPlatformAdmin)))

	contract, err := env.store.GetContract(ctx, domain.AddressID(coreAddr))
	require.NoError(t, err)
	require.NotNil(t, contract)
	assert.Equal(t, "0x1234000000000000000000000000000000000000", contract.Admin)
	assert.Equal(t, "374", contract.NextProjectID)
}

func TestPlatformUpdateMergesOnlySignaledField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.core.platform = &chain.PlatformState{
		Admin:         "0x1234000000000000000000000000000000000000",
		NextProjectID: big.NewInt(374),
	}
	require.NoError(t, env.engine.Apply(ctx, platformUpdated(domain.FieldPlatformAdmin)))

	// chain state moves on; only the signaled field follows
	env.core.platform = &chain.PlatformState{
		Admin:         "0x5678000000000000000000000000000000000000",
		NextProjectID: big.NewInt(999),
	}
	require.NoError(t, env.engine.Apply(ctx, platformUpdated(domain.FieldPlatformNextProjectID)))

	contract, err := env.store.GetContract(ctx, domain.AddressID(coreAddr))
	require.NoError(t, err)
	assert.Equal(t, "999", contract.NextProjectID)
	assert.Equal(t, "0x1234000000000000000000000000000000000000", contract.Admin,
		"admin keeps the value from its own last signal")
}

func TestPlatformUpdateMintWhitelisted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.core.platform = &chain.PlatformState{MinterContract: filterAddr}
	require.NoError(t, env.engine.Apply(ctx, platformUpdated(domain.FieldPlatformMintWhitelisted)))

	contract, err := env.store.GetContract(ctx, domain.AddressID(coreAddr))
	require.NoError(t, err)

	var whitelisted []string
	require.NoError(t, json.Unmarshal(contract.MintWhitelisted, &whitelisted))
	assert.Equal(t, []string{filterAddr}, whitelisted)

	// filter removed on chain
	env.core.platform = &chain.PlatformState{}
	require.NoError(t, env.engine.Apply(ctx, platformUpdated(domain.FieldPlatformMintWhitelisted)))

	contract, err = env.store.GetContract(ctx, domain.AddressID(coreAddr))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(contract.MintWhitelisted, &whitelisted))
	assert.Empty(t, whitelisted)
}

func TestPlatformUpdateUnknownFieldIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.engine.Apply(ctx, platformUpdated(domain.PlatformField("mysteryKnob")))
	require.NoError(t, err)
}
