package projection

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/chain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
	"github.com/sterlingcrispin/artblocks-subgraph/internal/store"
)

var (
	coreAddr   = common.HexToAddress("0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270")
	minterAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	otherAddr  = common.HexToAddress("0x2222222222222222222222222222222222222222")
	aliceAddr  = common.HexToAddress("0xaaaa111111111111111111111111111111111111")
	bobAddr    = common.HexToAddress("0xbbbb111111111111111111111111111111111111")
	carolAddr  = common.HexToAddress("0xcccc111111111111111111111111111111111111")

	filterAddr = "0xffff111111111111111111111111111111111111"

	blockTime = time.Unix(1_700_000_000, 0).UTC()
)

var errReverted = errors.New("execution reverted")

// fakeCoreReader serves auxiliary reads from in-memory maps keyed by project
// number; unset entries revert like an on-chain read of an unknown project.
type fakeCoreReader struct {
	details       map[string]*chain.ProjectDetails
	scriptDetails map[string]*chain.ProjectScriptDetails
	stateData     map[string]*chain.ProjectStateData
	baseURIs      map[string]string
	artists       map[string]string
	royalties     map[string]uint64
	scripts       map[string][]string
	tokenHashes   map[string]string
	platform      *chain.PlatformState

	failWith error
}

func newFakeCoreReader() *fakeCoreReader {
	return &fakeCoreReader{
		details:       make(map[string]*chain.ProjectDetails),
		scriptDetails: make(map[string]*chain.ProjectScriptDetails),
		stateData:     make(map[string]*chain.ProjectStateData),
		baseURIs:      make(map[string]string),
		artists:       make(map[string]string),
		royalties:     make(map[string]uint64),
		scripts:       make(map[string][]string),
		tokenHashes:   make(map[string]string),
	}
}

func (f *fakeCoreReader) ProjectDetails(_ context.Context, _ string, n *big.Int) (*chain.ProjectDetails, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if d, ok := f.details[n.String()]; ok {
		return d, nil
	}
	return nil, errReverted
}

func (f *fakeCoreReader) ProjectScriptDetails(_ context.Context, _ string, n *big.Int) (*chain.ProjectScriptDetails, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if d, ok := f.scriptDetails[n.String()]; ok {
		return d, nil
	}
	return nil, errReverted
}

func (f *fakeCoreReader) ProjectStateData(_ context.Context, _ string, n *big.Int) (*chain.ProjectStateData, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if d, ok := f.stateData[n.String()]; ok {
		return d, nil
	}
	return nil, errReverted
}

func (f *fakeCoreReader) ProjectBaseURI(_ context.Context, _ string, n *big.Int) (string, error) {
	if d, ok := f.baseURIs[n.String()]; ok {
		return d, nil
	}
	return "", errReverted
}

func (f *fakeCoreReader) ProjectArtistAddress(_ context.Context, _ string, n *big.Int) (string, error) {
	if d, ok := f.artists[n.String()]; ok {
		return d, nil
	}
	return "", errReverted
}

func (f *fakeCoreReader) ProjectRoyaltyPercentage(_ context.Context, _ string, n *big.Int) (uint64, error) {
	if d, ok := f.royalties[n.String()]; ok {
		return d, nil
	}
	return 0, errReverted
}

func (f *fakeCoreReader) ProjectScriptByIndex(_ context.Context, _ string, n *big.Int, index uint64) (string, error) {
	fragments, ok := f.scripts[n.String()]
	if !ok || index >= uint64(len(fragments)) {
		return "", errReverted
	}
	return fragments[index], nil
}

func (f *fakeCoreReader) TokenHash(_ context.Context, _ string, tokenID *big.Int) (string, error) {
	if h, ok := f.tokenHashes[tokenID.String()]; ok {
		return h, nil
	}
	return "", errReverted
}

func (f *fakeCoreReader) PlatformState(_ context.Context, _ string) (*chain.PlatformState, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.platform == nil {
		return &chain.PlatformState{}, nil
	}
	return f.platform, nil
}

// fakeFilterReader returns a fixed active minter per project number.
type fakeFilterReader struct {
	active map[string]string
}

func newFakeFilterReader() *fakeFilterReader {
	return &fakeFilterReader{active: make(map[string]string)}
}

func (f *fakeFilterReader) MinterForProject(_ context.Context, _ string, n *big.Int) (string, error) {
	return f.active[n.String()], nil
}

type testEnv struct {
	engine *Engine
	store  store.Store
	core   *fakeCoreReader
	filter *fakeFilterReader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := store.NewMemoryStore()
	core := newFakeCoreReader()
	filter := newFakeFilterReader()
	engine := NewEngine(s, core, filter, zap.NewNop(), Config{
		MinterFilterAddress: filterAddr,
	})

	return &testEnv{engine: engine, store: s, core: core, filter: filter}
}

func coreMeta(logIndex uint) domain.EventMeta {
	return domain.EventMeta{
		Contract:    coreAddr,
		BlockNumber: 15_000_000,
		Timestamp:   blockTime,
		TxHash:      common.HexToHash("0xdeadbeef"),
		LogIndex:    logIndex,
	}
}

func minterMeta(minter common.Address, logIndex uint) domain.EventMeta {
	m := coreMeta(logIndex)
	m.Contract = minter
	m.Core = coreAddr
	return m
}

// seedProject applies a "created" signal for project 7 backed by complete chain
// state, giving most tests a real project to work against.
func seedProject(t *testing.T, env *testEnv) string {
	t.Helper()

	number := "7"
	env.core.details[number] = &chain.ProjectDetails{
		Name:       "Fidenza",
		ArtistName: "Tyler Hobbs",
		License:    "NFT License",
	}
	env.core.scriptDetails[number] = &chain.ProjectScriptDetails{
		ScriptTypeAndVersion: "p5@1.0.0",
		AspectRatio:          "1",
	}
	env.core.stateData[number] = &chain.ProjectStateData{
		MaxInvocations: 10,
		Paused:         true,
	}
	env.core.baseURIs[number] = "https://token.example.com/"
	env.core.artists[number] = "0x9999999999999999999999999999999999999999"
	env.core.royalties[number] = 5

	err := env.engine.Apply(context.Background(), &domain.ProjectUpdatedEvent{
		Meta:      coreMeta(0),
		ProjectID: big.NewInt(7),
		Field:     domain.FieldProjectCreated,
	})
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	return domain.EntityID(coreAddr, big.NewInt(7))
}
