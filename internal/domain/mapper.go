package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/details"
)

// Envelope is the wire form the event emitter publishes for every decoded log.
// Params is kind-specific; big integers travel as decimal strings.
type Envelope struct {
	Kind        EventKind       `json:"kind"`
	Contract    string          `json:"contract"`
	Core        string          `json:"core,omitempty"`
	BlockNumber uint64          `json:"block_number"`
	Timestamp   int64           `json:"timestamp"` // unix seconds (block time)
	TxHash      string          `json:"tx_hash"`
	LogIndex    uint            `json:"log_index"`
	Params      json.RawMessage `json:"params"`
}

type mintParams struct {
	To      string `json:"to"`
	TokenID string `json:"token_id"`
}

type transferParams struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID string `json:"token_id"`
}

type projectUpdatedParams struct {
	ProjectID string `json:"project_id"`
	Field     string `json:"field"`
}

type platformUpdatedParams struct {
	Field string `json:"field"`
}

type priceParams struct {
	ProjectID string `json:"project_id"`
	Price     string `json:"price"`
}

type currencyParams struct {
	ProjectID string `json:"project_id"`
	Symbol    string `json:"symbol"`
	Currency  string `json:"currency"`
}

type maxInvocationsParams struct {
	ProjectID      string `json:"project_id"`
	MaxInvocations string `json:"max_invocations"`
}

type configParams struct {
	ProjectID string         `json:"project_id,omitempty"`
	Key       string         `json:"key"`
	Value     *details.Value `json:"value,omitempty"`
}

type linearAuctionParams struct {
	ProjectID  string `json:"project_id"`
	StartTime  uint64 `json:"start_time"`
	EndTime    uint64 `json:"end_time"`
	StartPrice string `json:"start_price"`
	BasePrice  string `json:"base_price"`
}

type exponentialAuctionParams struct {
	ProjectID       string `json:"project_id"`
	StartTime       uint64 `json:"start_time"`
	HalfLifeSeconds uint64 `json:"half_life_seconds"`
	StartPrice      string `json:"start_price"`
	BasePrice       string `json:"base_price"`
}

type auctionResetParams struct {
	ProjectID string `json:"project_id"`
}

// DecodeEnvelope turns a published envelope into its typed event.
func DecodeEnvelope(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}
	return env.Decode()
}

// Decode parses the kind-specific params and assembles the typed event.
func (env *Envelope) Decode() (Event, error) {
	if !common.IsHexAddress(env.Contract) {
		return nil, fmt.Errorf("invalid contract address: %q", env.Contract)
	}

	meta := EventMeta{
		Contract:    common.HexToAddress(env.Contract),
		BlockNumber: env.BlockNumber,
		Timestamp:   time.Unix(env.Timestamp, 0).UTC(),
		TxHash:      common.HexToHash(env.TxHash),
		LogIndex:    env.LogIndex,
	}
	if env.Core != "" {
		if !common.IsHexAddress(env.Core) {
			return nil, fmt.Errorf("invalid core address: %q", env.Core)
		}
		meta.Core = common.HexToAddress(env.Core)
	}

	switch env.Kind {
	case KindMint:
		var p mintParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		tokenID, err := parseBigInt(p.TokenID, "token_id")
		if err != nil {
			return nil, err
		}
		return &MintEvent{Meta: meta, To: common.HexToAddress(p.To), TokenID: tokenID}, nil

	case KindTransfer:
		var p transferParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		tokenID, err := parseBigInt(p.TokenID, "token_id")
		if err != nil {
			return nil, err
		}
		return &TransferEvent{
			Meta:    meta,
			From:    common.HexToAddress(p.From),
			To:      common.HexToAddress(p.To),
			TokenID: tokenID,
		}, nil

	case KindProjectUpdated:
		var p projectUpdatedParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		return &ProjectUpdatedEvent{Meta: meta, ProjectID: projectID, Field: ProjectField(p.Field)}, nil

	case KindPlatformUpdated:
		var p platformUpdatedParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		return &PlatformUpdatedEvent{Meta: meta, Field: PlatformField(p.Field)}, nil

	case KindPricePerTokenUpdated:
		var p priceParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		price, err := parseBigInt(p.Price, "price")
		if err != nil {
			return nil, err
		}
		return &PricePerTokenUpdatedEvent{Meta: meta, ProjectID: projectID, Price: price}, nil

	case KindCurrencyInfoUpdated:
		var p currencyParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		return &CurrencyInfoUpdatedEvent{
			Meta:      meta,
			ProjectID: projectID,
			Symbol:    p.Symbol,
			Currency:  common.HexToAddress(p.Currency),
		}, nil

	case KindMaxInvocationsLimitUpdated:
		var p maxInvocationsParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		limit, err := parseBigInt(p.MaxInvocations, "max_invocations")
		if err != nil {
			return nil, err
		}
		return &MaxInvocationsLimitUpdatedEvent{Meta: meta, ProjectID: projectID, MaxInvocations: limit}, nil

	case KindProjectConfigSet, KindProjectConfigAddedToSet, KindProjectConfigRemovedFromSet:
		var p configParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		if p.Value == nil {
			return nil, fmt.Errorf("missing value for %s", env.Kind)
		}
		switch env.Kind {
		case KindProjectConfigSet:
			return &ProjectConfigSetEvent{Meta: meta, ProjectID: projectID, Key: p.Key, Value: *p.Value}, nil
		case KindProjectConfigAddedToSet:
			return &ProjectConfigAddedToSetEvent{Meta: meta, ProjectID: projectID, Key: p.Key, Value: *p.Value}, nil
		default:
			return &ProjectConfigRemovedFromSetEvent{Meta: meta, ProjectID: projectID, Key: p.Key, Value: *p.Value}, nil
		}

	case KindProjectConfigRemoved:
		var p configParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		return &ProjectConfigRemovedEvent{Meta: meta, ProjectID: projectID, Key: p.Key}, nil

	case KindMinterConfigSet, KindMinterConfigAddedToSet, KindMinterConfigRemovedFromSet:
		var p configParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		if p.Value == nil {
			return nil, fmt.Errorf("missing value for %s", env.Kind)
		}
		switch env.Kind {
		case KindMinterConfigSet:
			return &MinterConfigSetEvent{Meta: meta, Key: p.Key, Value: *p.Value}, nil
		case KindMinterConfigAddedToSet:
			return &MinterConfigAddedToSetEvent{Meta: meta, Key: p.Key, Value: *p.Value}, nil
		default:
			return &MinterConfigRemovedFromSetEvent{Meta: meta, Key: p.Key, Value: *p.Value}, nil
		}

	case KindMinterConfigRemoved:
		var p configParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		return &MinterConfigRemovedEvent{Meta: meta, Key: p.Key}, nil

	case KindLinearAuctionSet:
		var p linearAuctionParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		startPrice, err := parseBigInt(p.StartPrice, "start_price")
		if err != nil {
			return nil, err
		}
		basePrice, err := parseBigInt(p.BasePrice, "base_price")
		if err != nil {
			return nil, err
		}
		return &LinearAuctionSetEvent{
			Meta:       meta,
			ProjectID:  projectID,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			StartPrice: startPrice,
			BasePrice:  basePrice,
		}, nil

	case KindExponentialAuctionSet:
		var p exponentialAuctionParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		startPrice, err := parseBigInt(p.StartPrice, "start_price")
		if err != nil {
			return nil, err
		}
		basePrice, err := parseBigInt(p.BasePrice, "base_price")
		if err != nil {
			return nil, err
		}
		return &ExponentialAuctionSetEvent{
			Meta:            meta,
			ProjectID:       projectID,
			StartTime:       p.StartTime,
			HalfLifeSeconds: p.HalfLifeSeconds,
			StartPrice:      startPrice,
			BasePrice:       basePrice,
		}, nil

	case KindAuctionReset:
		var p auctionResetParams
		if err := unmarshalParams(env, &p); err != nil {
			return nil, err
		}
		projectID, err := parseBigInt(p.ProjectID, "project_id")
		if err != nil {
			return nil, err
		}
		return &AuctionResetEvent{Meta: meta, ProjectID: projectID}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventKind, env.Kind)
	}
}

func unmarshalParams(env *Envelope, out interface{}) error {
	if err := json.Unmarshal(env.Params, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s params: %w", env.Kind, err)
	}
	return nil
}

func parseBigInt(s string, field string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %q", field, s)
	}
	return i, nil
}
