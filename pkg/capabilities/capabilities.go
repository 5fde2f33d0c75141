// Package capabilities defines the typed external collaborators a pair and
// router depend on but do not implement themselves: NFT ownership/transfer,
// coin transfer, the royalty registry, the fair-burn sink, and an
// order-book-style marketplace adapter (spec.md §1 "explicitly out of
// scope... the core treats all of these as typed capabilities"). Each
// interface is small and named for the single thing it does; a wasmd-backed
// implementation lives alongside it, grounded on the teacher's
// pkg/contracts/* querier-plus-message-builder split.
package capabilities

import (
	"context"

	sdkmath "cosmossdk.io/math"
	wasmdtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// NFTOwnership answers ownership questions the pair needs before it accepts
// a deposit or swap (spec.md's NotNftOwner error kind).
type NFTOwnership interface {
	OwnerOf(ctx context.Context, collection, tokenID string) (string, error)
}

// NFTTransferer moves a single NFT. Transfer is expressed as an unsigned
// MsgExecuteContract the caller appends to its response, mirroring how the
// teacher's message builders return a *wasmdtypes.MsgExecuteContract rather
// than dispatching it themselves.
type NFTTransferer interface {
	TransferNft(ctx context.Context, collection, tokenID, sender, recipient string) (*wasmdtypes.MsgExecuteContract, error)
}

// CoinTransferer moves reserve-denom tokens between two bech32 addresses via
// a native bank send, not a contract call.
type CoinTransferer interface {
	TransferCoin(ctx context.Context, sender, recipient, denom string, amount sdkmath.Int) (*banktypes.MsgSend, error)
}

// RoyaltyEntry is the cached per-collection royalty rate a pair consults on
// every swap (spec.md §4.3 "fair-burn and royalty fractions").
type RoyaltyEntry struct {
	Recipient string
	Percent   infmath.Percent
}

// RoyaltyRegistry resolves the current royalty entry for a collection. A
// pair may cache the last-seen result, but the registry is still consulted
// on every swap to pick up changes (spec.md §3 "Relationships and
// ownership").
type RoyaltyRegistry interface {
	RoyaltyEntry(ctx context.Context, collection string) (*RoyaltyEntry, error)
}

// FairBurnSink receives the protocol's fair-burn share of every swap.
type FairBurnSink interface {
	SinkAddress(ctx context.Context) (string, error)
}

// OrderBookOffer is a single resting bid or ask the router can match
// against, sourced from an external marketplace contract.
type OrderBookOffer struct {
	TokenID string
	Amount  sdkmath.Int
	Denom   string
}

// OrderBook is the thin adapter the router queries for order-book-style
// offers alongside pair quotes (spec.md §4.5).
type OrderBook interface {
	HighestBidForToken(ctx context.Context, collection, tokenID string) (*OrderBookOffer, error)
	HighestCollectionBid(ctx context.Context, collection string) (*OrderBookOffer, error)
	LowestAskForToken(ctx context.Context, collection, tokenID string) (*OrderBookOffer, error)
	LowestAsk(ctx context.Context, collection string) (*OrderBookOffer, error)
}
