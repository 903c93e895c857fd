package domain

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/details"
)

func TestDecodeEnvelopeMint(t *testing.T) {
	payload := `{
		"kind": "mint",
		"contract": "0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270",
		"block_number": 15000000,
		"timestamp": 1700000000,
		"tx_hash": "0xab",
		"log_index": 3,
		"params": {"to": "0xaaaa111111111111111111111111111111111111", "token_id": "78000586"}
	}`

	ev, err := DecodeEnvelope([]byte(payload))
	require.NoError(t, err)

	mint, ok := ev.(*MintEvent)
	require.True(t, ok)
	assert.Equal(t, "78000586", mint.TokenID.String())
	assert.Equal(t, common.HexToAddress("0xaaaa111111111111111111111111111111111111"), mint.To)

	meta := mint.EventMeta()
	assert.Equal(t, uint64(15000000), meta.BlockNumber)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), meta.Timestamp)
	assert.Equal(t, uint(3), meta.LogIndex)
	assert.Equal(t, meta.Contract, meta.CoreAddress(), "core defaults to the emitting contract")
}

func TestDecodeEnvelopeMinterEventCarriesCore(t *testing.T) {
	payload := `{
		"kind": "price_per_token_updated",
		"contract": "0x1111111111111111111111111111111111111111",
		"core": "0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270",
		"block_number": 15000000,
		"timestamp": 1700000000,
		"tx_hash": "0xab",
		"log_index": 0,
		"params": {"project_id": "78", "price": "1000000000000000000"}
	}`

	ev, err := DecodeEnvelope([]byte(payload))
	require.NoError(t, err)

	price, ok := ev.(*PricePerTokenUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "78", price.ProjectID.String())
	assert.Equal(t, "1000000000000000000", price.Price.String())

	meta := price.EventMeta()
	assert.Equal(t, common.HexToAddress("0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270"), meta.CoreAddress())
	assert.NotEqual(t, meta.Contract, meta.CoreAddress())
}

func TestDecodeEnvelopeProjectConfigSet(t *testing.T) {
	payload := `{
		"kind": "project_config_set",
		"contract": "0x1111111111111111111111111111111111111111",
		"core": "0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270",
		"block_number": 15000000,
		"timestamp": 1700000000,
		"tx_hash": "0xab",
		"log_index": 0,
		"params": {"project_id": "78", "key": "startPrice", "value": {"kind": "int", "int": "5000"}}
	}`

	ev, err := DecodeEnvelope([]byte(payload))
	require.NoError(t, err)

	set, ok := ev.(*ProjectConfigSetEvent)
	require.True(t, ok)
	assert.Equal(t, "startPrice", set.Key)
	assert.Equal(t, details.KindInt, set.Value.Kind)
	assert.Equal(t, "5000", set.Value.Int.String())
}

func TestDecodeEnvelopeExponentialAuction(t *testing.T) {
	payload := `{
		"kind": "exponential_auction_set",
		"contract": "0x1111111111111111111111111111111111111111",
		"core": "0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270",
		"block_number": 15000000,
		"timestamp": 1700000000,
		"tx_hash": "0xab",
		"log_index": 0,
		"params": {
			"project_id": "78",
			"start_time": 1700000100,
			"half_life_seconds": 600,
			"start_price": "1000000000000000000",
			"base_price": "100000000000000000"
		}
	}`

	ev, err := DecodeEnvelope([]byte(payload))
	require.NoError(t, err)

	auction, ok := ev.(*ExponentialAuctionSetEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(1700000100), auction.StartTime)
	assert.Equal(t, uint64(600), auction.HalfLifeSeconds)
	assert.Equal(t, "100000000000000000", auction.BasePrice.String())
}

func TestDecodeEnvelopeRejectsUnknownKind(t *testing.T) {
	payload := `{
		"kind": "galaxy_brain",
		"contract": "0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270",
		"block_number": 1,
		"timestamp": 1700000000,
		"tx_hash": "0xab",
		"log_index": 0,
		"params": {}
	}`

	_, err := DecodeEnvelope([]byte(payload))
	assert.ErrorIs(t, err, ErrUnknownEventKind)
}

func TestDecodeEnvelopeRejectsBadAddressAndNumbers(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{
		"kind": "mint",
		"contract": "not-an-address",
		"params": {"to": "0xaaaa111111111111111111111111111111111111", "token_id": "1"}
	}`))
	require.Error(t, err)

	_, err = DecodeEnvelope([]byte(`{
		"kind": "mint",
		"contract": "0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270",
		"timestamp": 1700000000,
		"tx_hash": "0xab",
		"params": {"to": "0xaaaa111111111111111111111111111111111111", "token_id": "twelve"}
	}`))
	require.Error(t, err)

	_, err = DecodeEnvelope([]byte(`not json`))
	require.Error(t, err)
}
