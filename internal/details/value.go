// Package details implements the generic "extra details" side channel attached to
// minters and project minter configurations: a schema-less JSON map of heterogeneous
// configuration values keyed by the literal key strings emitted on chain.
package details

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Kind tags the concrete type held by a Value.
type Kind string

const (
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindAddress Kind = "address"
	KindBytes   Kind = "bytes"
	KindString  Kind = "string"
)

// Value is a tagged variant over the value kinds the on-chain generic config events
// can carry. The zero Value is invalid; use the constructors.
type Value struct {
	Kind Kind

	Bool    bool
	Int     *big.Int
	Address common.Address
	Bytes   []byte
	Str     string
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntValue wraps an unsigned integer. The argument is not copied.
func IntValue(i *big.Int) Value { return Value{Kind: KindInt, Int: i} }

// AddressValue wraps an address.
func AddressValue(a common.Address) Value { return Value{Kind: KindAddress, Address: a} }

// BytesValue wraps a raw byte sequence.
func BytesValue(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IsPriceKey reports whether a config key names a monetary amount. Integer values
// stored under such keys are persisted as decimal strings so consumers with limited
// numeric range never lose precision.
func IsPriceKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "price")
}

// jsonValue returns the JSON-compatible representation of v for storage under key.
func (v Value) jsonValue(key string) (interface{}, error) {
	switch v.Kind {
	case KindBool:
		return v.Bool, nil
	case KindInt:
		if v.Int == nil {
			return nil, fmt.Errorf("int value for key %q is nil", key)
		}
		if IsPriceKey(key) {
			return v.Int.String(), nil
		}
		return json.Number(v.Int.String()), nil
	case KindAddress:
		return strings.ToLower(v.Address.Hex()), nil
	case KindBytes:
		return hexutil.Encode(v.Bytes), nil
	case KindString:
		return v.Str, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %q for key %q", v.Kind, key)
	}
}

// valueEnvelope is the wire form of a Value inside event payloads.
type valueEnvelope struct {
	Kind    Kind   `json:"kind"`
	Bool    bool   `json:"bool,omitempty"`
	Int     string `json:"int,omitempty"`
	Address string `json:"address,omitempty"`
	Bytes   string `json:"bytes,omitempty"`
	Str     string `json:"string,omitempty"`
}

// MarshalJSON encodes the tagged variant for event transport.
func (v Value) MarshalJSON() ([]byte, error) {
	env := valueEnvelope{Kind: v.Kind}
	switch v.Kind {
	case KindBool:
		env.Bool = v.Bool
	case KindInt:
		if v.Int == nil {
			return nil, fmt.Errorf("int value is nil")
		}
		env.Int = v.Int.String()
	case KindAddress:
		env.Address = strings.ToLower(v.Address.Hex())
	case KindBytes:
		env.Bytes = hexutil.Encode(v.Bytes)
	case KindString:
		env.Str = v.Str
	default:
		return nil, fmt.Errorf("unsupported value kind %q", v.Kind)
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes the tagged variant from event transport.
func (v *Value) UnmarshalJSON(data []byte) error {
	var env valueEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Kind {
	case KindBool:
		*v = BoolValue(env.Bool)
	case KindInt:
		i, ok := new(big.Int).SetString(env.Int, 10)
		if !ok {
			return fmt.Errorf("invalid int value: %q", env.Int)
		}
		*v = IntValue(i)
	case KindAddress:
		if !common.IsHexAddress(env.Address) {
			return fmt.Errorf("invalid address value: %q", env.Address)
		}
		*v = AddressValue(common.HexToAddress(env.Address))
	case KindBytes:
		b, err := hexutil.Decode(env.Bytes)
		if err != nil {
			return fmt.Errorf("invalid bytes value: %w", err)
		}
		*v = BytesValue(b)
	case KindString:
		*v = StringValue(env.Str)
	default:
		return fmt.Errorf("unsupported value kind %q", env.Kind)
	}
	return nil
}

// scalarEqual compares a decoded JSON entry against the canonical form of v under
// key. Used by set-removal to find the first matching element.
func scalarEqual(stored interface{}, v Value, key string) bool {
	want, err := v.jsonValue(key)
	if err != nil {
		return false
	}

	switch w := want.(type) {
	case bool:
		b, ok := stored.(bool)
		return ok && b == w
	case string:
		s, ok := stored.(string)
		return ok && s == w
	case json.Number:
		n, ok := stored.(json.Number)
		return ok && n.String() == w.String()
	default:
		return false
	}
}

// decodeMap decodes a persisted details column into a mutable map, preserving
// integer precision via json.Number. A nil or empty column yields an empty map.
func decodeMap(raw []byte) (map[string]interface{}, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode details map: %w", err)
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	return m, nil
}

// encodeMap re-encodes a mutated details map for persistence.
func encodeMap(m map[string]interface{}) ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode details map: %w", err)
	}
	return raw, nil
}
