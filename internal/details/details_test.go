package details

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// carrier is a minimal Carrier for exercising the map mutations.
type carrier struct {
	raw datatypes.JSON
}

func (c *carrier) ExtraDetails() datatypes.JSON     { return c.raw }
func (c *carrier) SetExtraDetails(d datatypes.JSON) { c.raw = d }

func decoded(t *testing.T, c *carrier) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(c.raw, &m))
	return m
}

func TestIsPriceKey(t *testing.T) {
	assert.True(t, IsPriceKey("startPrice"))
	assert.True(t, IsPriceKey("priceInWei"))
	assert.True(t, IsPriceKey("BASEPRICE"))
	assert.False(t, IsPriceKey("startTime"))
	assert.False(t, IsPriceKey("halfLifeSeconds"))
}

func TestSetValuePriceKeySerializesAsString(t *testing.T) {
	c := &carrier{}
	require.NoError(t, SetValue(c, "startPrice", IntValue(big.NewInt(1_000_000_000))))

	m := decoded(t, c)
	v, ok := m["startPrice"].(string)
	require.True(t, ok, "monetary integers must persist as strings")
	assert.Equal(t, "1000000000", v)
}

func TestSetValueNonPriceIntStaysNumeric(t *testing.T) {
	c := &carrier{}
	require.NoError(t, SetValue(c, "startTime", IntValue(big.NewInt(1_700_000_000))))

	m := decoded(t, c)
	_, isString := m["startTime"].(string)
	assert.False(t, isString)
	assert.Equal(t, float64(1_700_000_000), m["startTime"])
}

func TestSetValueOverwritesAnyKind(t *testing.T) {
	c := &carrier{}
	require.NoError(t, SetValue(c, "k", BoolValue(true)))
	require.NoError(t, SetValue(c, "k", StringValue("later")))

	m := decoded(t, c)
	assert.Equal(t, "later", m["k"])
}

func TestSetValueKindRendering(t *testing.T) {
	c := &carrier{}
	require.NoError(t, SetValue(c, "flag", BoolValue(true)))
	require.NoError(t, SetValue(c, "who", AddressValue(common.HexToAddress("0xAbCd000000000000000000000000000000000000"))))
	require.NoError(t, SetValue(c, "blob", BytesValue([]byte{0xde, 0xad})))
	require.NoError(t, SetValue(c, "label", StringValue("hi")))

	m := decoded(t, c)
	assert.Equal(t, true, m["flag"])
	assert.Equal(t, "0xabcd000000000000000000000000000000000000", m["who"])
	assert.Equal(t, "0xdead", m["blob"])
	assert.Equal(t, "hi", m["label"])
}

func TestRemoveEntry(t *testing.T) {
	c := &carrier{}
	require.NoError(t, SetValue(c, "k", StringValue("v")))
	require.NoError(t, RemoveEntry(c, "k"))

	m := decoded(t, c)
	assert.NotContains(t, m, "k")

	// absent key is a no-op
	require.NoError(t, RemoveEntry(c, "missing"))
}

func TestAddToSetAllowsDuplicates(t *testing.T) {
	c := &carrier{}
	require.NoError(t, AddToSet(c, "set", StringValue("a")))
	require.NoError(t, AddToSet(c, "set", StringValue("a")))

	m := decoded(t, c)
	set := m["set"].([]interface{})
	assert.Len(t, set, 2)
}

func TestRemoveFromSetDeletesFirstMatchOnly(t *testing.T) {
	c := &carrier{}
	require.NoError(t, AddToSet(c, "set", StringValue("a")))
	require.NoError(t, AddToSet(c, "set", StringValue("b")))
	require.NoError(t, AddToSet(c, "set", StringValue("a")))

	require.NoError(t, RemoveFromSet(c, "set", StringValue("a")))

	m := decoded(t, c)
	set := m["set"].([]interface{})
	require.Len(t, set, 2)
	assert.Equal(t, "b", set[0])
	assert.Equal(t, "a", set[1])
}

func TestRemoveFromSetAbsentOrEmptyIsNoOp(t *testing.T) {
	c := &carrier{}
	require.NoError(t, RemoveFromSet(c, "missing", StringValue("a")))

	require.NoError(t, AddToSet(c, "set", StringValue("a")))
	require.NoError(t, RemoveFromSet(c, "set", StringValue("a")))
	require.NoError(t, RemoveFromSet(c, "set", StringValue("a")))

	m := decoded(t, c)
	set := m["set"].([]interface{})
	assert.Empty(t, set)
}

func TestRemoveFromSetMatchesPriceStrings(t *testing.T) {
	c := &carrier{}
	require.NoError(t, AddToSet(c, "tierPrices", IntValue(big.NewInt(100))))
	require.NoError(t, RemoveFromSet(c, "tierPrices", IntValue(big.NewInt(100))))

	m := decoded(t, c)
	set := m["tierPrices"].([]interface{})
	assert.Empty(t, set)
}

func TestMutationsPreserveLargeIntegerPrecision(t *testing.T) {
	// a value beyond float64's exact range must survive an unrelated mutation
	big256, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457", 10)
	require.True(t, ok)

	c := &carrier{}
	require.NoError(t, SetValue(c, "nonce", IntValue(big256)))
	require.NoError(t, SetValue(c, "other", StringValue("x")))

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(c.raw, &m))
	assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457", string(m["nonce"]))
}

func TestValueJSONRoundTrip(t *testing.T) {
	values := []Value{
		BoolValue(true),
		IntValue(big.NewInt(42)),
		AddressValue(common.HexToAddress("0x1111111111111111111111111111111111111111")),
		BytesValue([]byte{1, 2, 3}),
		StringValue("hello"),
	}

	for _, v := range values {
		raw, err := json.Marshal(v)
		require.NoError(t, err)

		var back Value
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, v.Kind, back.Kind)
	}
}
