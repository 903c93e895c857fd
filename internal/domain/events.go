package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/details"
)

// EventKind identifies the projection handler that owns an event.
type EventKind string

const (
	KindMint            EventKind = "mint"
	KindTransfer        EventKind = "transfer"
	KindProjectUpdated  EventKind = "project_updated"
	KindPlatformUpdated EventKind = "platform_updated"

	KindPricePerTokenUpdated        EventKind = "price_per_token_updated"
	KindCurrencyInfoUpdated         EventKind = "currency_info_updated"
	KindMaxInvocationsLimitUpdated  EventKind = "max_invocations_limit_updated"
	KindProjectConfigSet            EventKind = "project_config_set"
	KindProjectConfigRemoved        EventKind = "project_config_removed"
	KindProjectConfigAddedToSet     EventKind = "project_config_added_to_set"
	KindProjectConfigRemovedFromSet EventKind = "project_config_removed_from_set"
	KindMinterConfigSet             EventKind = "minter_config_set"
	KindMinterConfigRemoved         EventKind = "minter_config_removed"
	KindMinterConfigAddedToSet      EventKind = "minter_config_added_to_set"
	KindMinterConfigRemovedFromSet  EventKind = "minter_config_removed_from_set"
	KindLinearAuctionSet            EventKind = "linear_auction_set"
	KindExponentialAuctionSet       EventKind = "exponential_auction_set"
	KindAuctionReset                EventKind = "auction_reset"
)

// EventMeta carries the log position and block metadata the delivery runtime
// attaches to every event. Contract is the emitting contract; Core is the owning
// core contract for minter-suite events (zero for core-contract events, where the
// emitter is the core itself).
type EventMeta struct {
	Contract    common.Address
	Core        common.Address
	BlockNumber uint64
	Timestamp   time.Time
	TxHash      common.Hash
	LogIndex    uint
}

// CoreAddress returns the core contract an event belongs to.
func (m EventMeta) CoreAddress() common.Address {
	if m.Core != (common.Address{}) {
		return m.Core
	}
	return m.Contract
}

// Event is a decoded, typed log event ready for projection.
type Event interface {
	EventKind() EventKind
	EventMeta() EventMeta
}

// MintEvent records a token mint on the core contract.
type MintEvent struct {
	Meta    EventMeta
	To      common.Address
	TokenID *big.Int
}

// TransferEvent records an ERC-721 ownership transfer on the core contract.
type TransferEvent struct {
	Meta    EventMeta
	From    common.Address
	To      common.Address
	TokenID *big.Int
}

// ProjectUpdatedEvent signals that one field group of a project changed on chain;
// the current value is re-read rather than trusted from the payload.
type ProjectUpdatedEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
	Field     ProjectField
}

// PlatformUpdatedEvent signals that one platform-level contract attribute changed.
type PlatformUpdatedEvent struct {
	Meta  EventMeta
	Field PlatformField
}

// PricePerTokenUpdatedEvent sets the base price on a project's minter configuration.
type PricePerTokenUpdatedEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
	Price     *big.Int
}

// CurrencyInfoUpdatedEvent sets the purchase currency on a project's minter
// configuration.
type CurrencyInfoUpdatedEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
	Symbol    string
	Currency  common.Address
}

// MaxInvocationsLimitUpdatedEvent sets the minter-local max invocations override.
type MaxInvocationsLimitUpdatedEvent struct {
	Meta           EventMeta
	ProjectID      *big.Int
	MaxInvocations *big.Int
}

// ProjectConfigSetEvent writes a generically typed value into a project's minter
// configuration details.
type ProjectConfigSetEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
	Key       string
	Value     details.Value
}

// ProjectConfigRemovedEvent removes a key from a project's minter configuration
// details.
type ProjectConfigRemovedEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
	Key       string
}

// ProjectConfigAddedToSetEvent appends a value to a multiset entry in a project's
// minter configuration details.
type ProjectConfigAddedToSetEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
	Key       string
	Value     details.Value
}

// ProjectConfigRemovedFromSetEvent removes the first matching value from a multiset
// entry in a project's minter configuration details.
type ProjectConfigRemovedFromSetEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
	Key       string
	Value     details.Value
}

// MinterConfigSetEvent writes a generically typed value into the minter's own
// details; minter-level settings are not active for any one project, so these never
// propagate.
type MinterConfigSetEvent struct {
	Meta  EventMeta
	Key   string
	Value details.Value
}

// MinterConfigRemovedEvent removes a key from the minter's own details.
type MinterConfigRemovedEvent struct {
	Meta EventMeta
	Key  string
}

// MinterConfigAddedToSetEvent appends a value to a multiset entry in the minter's
// own details.
type MinterConfigAddedToSetEvent struct {
	Meta  EventMeta
	Key   string
	Value details.Value
}

// MinterConfigRemovedFromSetEvent removes the first matching value from a multiset
// entry in the minter's own details.
type MinterConfigRemovedFromSetEvent struct {
	Meta  EventMeta
	Key   string
	Value details.Value
}

// LinearAuctionSetEvent configures a linear Dutch auction; the contract emits the
// end time directly.
type LinearAuctionSetEvent struct {
	Meta       EventMeta
	ProjectID  *big.Int
	StartTime  uint64
	EndTime    uint64
	StartPrice *big.Int
	BasePrice  *big.Int
}

// ExponentialAuctionSetEvent configures an exponential-decay Dutch auction; the
// approximate end time is derived from the half-life.
type ExponentialAuctionSetEvent struct {
	Meta            EventMeta
	ProjectID       *big.Int
	StartTime       uint64
	HalfLifeSeconds uint64
	StartPrice      *big.Int
	BasePrice       *big.Int
}

// AuctionResetEvent clears a project's auction configuration.
type AuctionResetEvent struct {
	Meta      EventMeta
	ProjectID *big.Int
}

func (e *MintEvent) EventKind() EventKind                       { return KindMint }
func (e *TransferEvent) EventKind() EventKind                   { return KindTransfer }
func (e *ProjectUpdatedEvent) EventKind() EventKind             { return KindProjectUpdated }
func (e *PlatformUpdatedEvent) EventKind() EventKind            { return KindPlatformUpdated }
func (e *PricePerTokenUpdatedEvent) EventKind() EventKind       { return KindPricePerTokenUpdated }
func (e *CurrencyInfoUpdatedEvent) EventKind() EventKind        { return KindCurrencyInfoUpdated }
func (e *MaxInvocationsLimitUpdatedEvent) EventKind() EventKind { return KindMaxInvocationsLimitUpdated }
func (e *ProjectConfigSetEvent) EventKind() EventKind           { return KindProjectConfigSet }
func (e *ProjectConfigRemovedEvent) EventKind() EventKind       { return KindProjectConfigRemoved }
func (e *ProjectConfigAddedToSetEvent) EventKind() EventKind    { return KindProjectConfigAddedToSet }
func (e *ProjectConfigRemovedFromSetEvent) EventKind() EventKind {
	return KindProjectConfigRemovedFromSet
}
func (e *MinterConfigSetEvent) EventKind() EventKind        { return KindMinterConfigSet }
func (e *MinterConfigRemovedEvent) EventKind() EventKind    { return KindMinterConfigRemoved }
func (e *MinterConfigAddedToSetEvent) EventKind() EventKind { return KindMinterConfigAddedToSet }
func (e *MinterConfigRemovedFromSetEvent) EventKind() EventKind {
	return KindMinterConfigRemovedFromSet
}
func (e *LinearAuctionSetEvent) EventKind() EventKind      { return KindLinearAuctionSet }
func (e *ExponentialAuctionSetEvent) EventKind() EventKind { return KindExponentialAuctionSet }
func (e *AuctionResetEvent) EventKind() EventKind          { return KindAuctionReset }

func (e *MintEvent) EventMeta() EventMeta                        { return e.Meta }
func (e *TransferEvent) EventMeta() EventMeta                    { return e.Meta }
func (e *ProjectUpdatedEvent) EventMeta() EventMeta              { return e.Meta }
func (e *PlatformUpdatedEvent) EventMeta() EventMeta             { return e.Meta }
func (e *PricePerTokenUpdatedEvent) EventMeta() EventMeta        { return e.Meta }
func (e *CurrencyInfoUpdatedEvent) EventMeta() EventMeta         { return e.Meta }
func (e *MaxInvocationsLimitUpdatedEvent) EventMeta() EventMeta  { return e.Meta }
func (e *ProjectConfigSetEvent) EventMeta() EventMeta            { return e.Meta }
func (e *ProjectConfigRemovedEvent) EventMeta() EventMeta        { return e.Meta }
func (e *ProjectConfigAddedToSetEvent) EventMeta() EventMeta     { return e.Meta }
func (e *ProjectConfigRemovedFromSetEvent) EventMeta() EventMeta { return e.Meta }
func (e *MinterConfigSetEvent) EventMeta() EventMeta             { return e.Meta }
func (e *MinterConfigRemovedEvent) EventMeta() EventMeta         { return e.Meta }
func (e *MinterConfigAddedToSetEvent) EventMeta() EventMeta      { return e.Meta }
func (e *MinterConfigRemovedFromSetEvent) EventMeta() EventMeta  { return e.Meta }
func (e *LinearAuctionSetEvent) EventMeta() EventMeta            { return e.Meta }
func (e *ExponentialAuctionSetEvent) EventMeta() EventMeta       { return e.Meta }
func (e *AuctionResetEvent) EventMeta() EventMeta                { return e.Meta }
