package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/adapter"
)

const coreABIJSON = `[
	{"inputs":[{"name":"_projectId","type":"uint256"}],"name":"projectDetails","outputs":[{"name":"projectName","type":"string"},{"name":"artist","type":"string"},{"name":"description","type":"string"},{"name":"website","type":"string"},{"name":"license","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_projectId","type":"uint256"}],"name":"projectScriptDetails","outputs":[{"name":"scriptTypeAndVersion","type":"string"},{"name":"aspectRatio","type":"string"},{"name":"ipfsHash","type":"string"},{"name":"scriptCount","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_projectId","type":"uint256"}],"name":"projectStateData","outputs":[{"name":"invocations","type":"uint256"},{"name":"maxInvocations","type":"uint256"},{"name":"active","type":"bool"},{"name":"paused","type":"bool"},{"name":"locked","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_projectId","type":"uint256"}],"name":"projectURIInfo","outputs":[{"name":"projectBaseURI","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_projectId","type":"uint256"}],"name":"projectIdToArtistAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_projectId","type":"uint256"}],"name":"projectIdToSecondaryMarketRoyaltyPercentage","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_projectId","type":"uint256"},{"name":"_index","type":"uint256"}],"name":"projectScriptByIndex","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_tokenId","type":"uint256"}],"name":"tokenIdToHash","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"admin","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"nextProjectId","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"newProjectsForbidden","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"randomizerContract","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"artblocksCurationRegistryAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"artblocksDependencyRegistryAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"renderProviderPrimarySalesAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"renderProviderPrimarySalesPercentage","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"renderProviderSecondarySalesAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"renderProviderSecondarySalesBPS","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"minterContract","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const minterFilterABIJSON = `[
	{"inputs":[{"name":"_projectId","type":"uint256"}],"name":"getMinterForProject","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

var (
	coreABI         = mustParseABI(coreABIJSON)
	minterFilterABI = mustParseABI(minterFilterABIJSON)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid ABI definition: %v", err))
	}
	return parsed
}

// IsRevert reports whether a contract call error is an EVM revert rather than a
// transport or node failure. Revert means the contract refused the read (e.g. no
// minter assigned, getter absent on this core version); the caller decides whether
// that is skippable.
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "execution reverted") ||
		strings.Contains(errStr, "invalid opcode") ||
		strings.Contains(errStr, "VM execution error")
}

type ethereumReader struct {
	client adapter.EthClient
}

// NewEthereumReader creates a reader issuing view calls through the given client.
// The returned value implements both CoreReader and MinterFilterReader.
func NewEthereumReader(client adapter.EthClient) *ethereumReader {
	return &ethereumReader{client: client}
}

// call packs a view call, executes it against the latest block and unpacks the
// raw return values.
func (r *ethereumReader) call(ctx context.Context, contractABI abi.ABI, contract, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	contractAddr := common.HexToAddress(contract)
	result, err := r.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	values, err := contractABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return values, nil
}

// ProjectDetails fetches the descriptive metadata of a project
func (r *ethereumReader) ProjectDetails(ctx context.Context, core string, projectNumber *big.Int) (*ProjectDetails, error) {
	values, err := r.call(ctx, coreABI, core, "projectDetails", projectNumber)
	if err != nil {
		return nil, err
	}

	return &ProjectDetails{
		Name:        values[0].(string),
		ArtistName:  values[1].(string),
		Description: values[2].(string),
		Website:     values[3].(string),
		License:     values[4].(string),
	}, nil
}

// ProjectScriptDetails fetches the script metadata of a project
func (r *ethereumReader) ProjectScriptDetails(ctx context.Context, core string, projectNumber *big.Int) (*ProjectScriptDetails, error) {
	values, err := r.call(ctx, coreABI, core, "projectScriptDetails", projectNumber)
	if err != nil {
		return nil, err
	}

	return &ProjectScriptDetails{
		ScriptTypeAndVersion: values[0].(string),
		AspectRatio:          values[1].(string),
		IPFSHash:             values[2].(string),
		ScriptCount:          values[3].(*big.Int).Uint64(),
	}, nil
}

// ProjectStateData fetches the minting state of a project
func (r *ethereumReader) ProjectStateData(ctx context.Context, core string, projectNumber *big.Int) (*ProjectStateData, error) {
	values, err := r.call(ctx, coreABI, core, "projectStateData", projectNumber)
	if err != nil {
		return nil, err
	}

	return &ProjectStateData{
		Invocations:    values[0].(*big.Int).Uint64(),
		MaxInvocations: values[1].(*big.Int).Uint64(),
		Active:         values[2].(bool),
		Paused:         values[3].(bool),
		Locked:         values[4].(bool),
	}, nil
}

// ProjectBaseURI fetches the token metadata URI prefix of a project
func (r *ethereumReader) ProjectBaseURI(ctx context.Context, core string, projectNumber *big.Int) (string, error) {
	values, err := r.call(ctx, coreABI, core, "projectURIInfo", projectNumber)
	if err != nil {
		return "", err
	}
	return values[0].(string), nil
}

// ProjectArtistAddress fetches the artist address of a project
func (r *ethereumReader) ProjectArtistAddress(ctx context.Context, core string, projectNumber *big.Int) (string, error) {
	values, err := r.call(ctx, coreABI, core, "projectIdToArtistAddress", projectNumber)
	if err != nil {
		return "", err
	}
	return strings.ToLower(values[0].(common.Address).Hex()), nil
}

// ProjectRoyaltyPercentage fetches the secondary-market royalty of a project
func (r *ethereumReader) ProjectRoyaltyPercentage(ctx context.Context, core string, projectNumber *big.Int) (uint64, error) {
	values, err := r.call(ctx, coreABI, core, "projectIdToSecondaryMarketRoyaltyPercentage", projectNumber)
	if err != nil {
		return 0, err
	}
	return values[0].(*big.Int).Uint64(), nil
}

// ProjectScriptByIndex fetches one raw script fragment
func (r *ethereumReader) ProjectScriptByIndex(ctx context.Context, core string, projectNumber *big.Int, index uint64) (string, error) {
	values, err := r.call(ctx, coreABI, core, "projectScriptByIndex", projectNumber, new(big.Int).SetUint64(index))
	if err != nil {
		return "", err
	}
	return values[0].(string), nil
}

// TokenHash fetches the deterministic hash assigned to a token at mint
func (r *ethereumReader) TokenHash(ctx context.Context, core string, tokenID *big.Int) (string, error) {
	values, err := r.call(ctx, coreABI, core, "tokenIdToHash", tokenID)
	if err != nil {
		return "", err
	}

	hash := values[0].([32]byte)
	return hexutil.Encode(hash[:]), nil
}

// PlatformState fetches the aggregated contract-level attributes. Getters that
// revert are treated as absent on this core version and left at their zero value;
// any other call failure aborts the read.
func (r *ethereumReader) PlatformState(ctx context.Context, core string) (*PlatformState, error) {
	state := &PlatformState{}

	if err := r.platformAddress(ctx, core, "admin", &state.Admin); err != nil {
		return nil, err
	}
	if err := r.platformAddress(ctx, core, "randomizerContract", &state.RandomizerAddress); err != nil {
		return nil, err
	}
	if err := r.platformAddress(ctx, core, "artblocksCurationRegistryAddress", &state.CurationRegistryAddress); err != nil {
		return nil, err
	}
	if err := r.platformAddress(ctx, core, "artblocksDependencyRegistryAddress", &state.DependencyRegistryAddress); err != nil {
		return nil, err
	}
	if err := r.platformAddress(ctx, core, "renderProviderPrimarySalesAddress", &state.RenderProviderAddress); err != nil {
		return nil, err
	}
	if err := r.platformAddress(ctx, core, "renderProviderSecondarySalesAddress", &state.RenderProviderSecondarySalesAddress); err != nil {
		return nil, err
	}
	if err := r.platformAddress(ctx, core, "minterContract", &state.MinterContract); err != nil {
		return nil, err
	}
	if err := r.platformUint(ctx, core, "renderProviderPrimarySalesPercentage", &state.RenderProviderPercentage); err != nil {
		return nil, err
	}
	if err := r.platformUint(ctx, core, "renderProviderSecondarySalesBPS", &state.RenderProviderSecondarySalesBPS); err != nil {
		return nil, err
	}

	values, err := r.call(ctx, coreABI, core, "nextProjectId")
	switch {
	case err == nil:
		state.NextProjectID = values[0].(*big.Int)
	case !IsRevert(err):
		return nil, err
	}

	values, err = r.call(ctx, coreABI, core, "newProjectsForbidden")
	switch {
	case err == nil:
		state.NewProjectsForbidden = values[0].(bool)
	case !IsRevert(err):
		return nil, err
	}

	return state, nil
}

func (r *ethereumReader) platformAddress(ctx context.Context, core, method string, out *string) error {
	values, err := r.call(ctx, coreABI, core, method)
	if err != nil {
		if IsRevert(err) {
			return nil
		}
		return err
	}

	addr := values[0].(common.Address)
	if addr == (common.Address{}) {
		return nil
	}
	*out = strings.ToLower(addr.Hex())
	return nil
}

func (r *ethereumReader) platformUint(ctx context.Context, core, method string, out *uint64) error {
	values, err := r.call(ctx, coreABI, core, method)
	if err != nil {
		if IsRevert(err) {
			return nil
		}
		return err
	}
	*out = values[0].(*big.Int).Uint64()
	return nil
}

// MinterForProject returns the minter assigned to a project on the minter filter.
// The filter reverts when no minter is assigned; that maps to "".
func (r *ethereumReader) MinterForProject(ctx context.Context, minterFilter string, projectNumber *big.Int) (string, error) {
	values, err := r.call(ctx, minterFilterABI, minterFilter, "getMinterForProject", projectNumber)
	if err != nil {
		if IsRevert(err) {
			return "", nil
		}
		return "", err
	}

	addr := values[0].(common.Address)
	if addr == (common.Address{}) {
		return "", nil
	}
	return strings.ToLower(addr.Hex()), nil
}
