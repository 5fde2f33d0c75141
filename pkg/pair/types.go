// Package pair implements the pair state machine: configuration space,
// inventory counters, cached quote summaries, and the deposit/withdraw/
// update/swap lifecycle operations described in spec.md §3–§4.3. The
// bonding curve and fee-split math themselves live in pkg/curve and
// pkg/quote; this package owns when and with what state those pure
// functions are invoked, and the invariants linking inventory to quotable
// prices.
package pair

import (
	"sort"

	sdkmath "cosmossdk.io/math"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
	"github.com/margined-protocol/infinity-core/pkg/quote"
)

// PairTypeKind is the tag of the PairType closed sum type.
type PairTypeKind int

const (
	PairTypeToken PairTypeKind = iota
	PairTypeNft
	PairTypeTrade
)

func (k PairTypeKind) String() string {
	switch k {
	case PairTypeToken:
		return "token"
	case PairTypeNft:
		return "nft"
	case PairTypeTrade:
		return "trade"
	default:
		return "unknown"
	}
}

// TradeConfig carries the fields only a Trade pair has.
type TradeConfig struct {
	SwapFeePercent infmath.Percent
	ReinvestTokens bool
	ReinvestNfts   bool
}

// PairType is a closed sum type: Trade is non-nil iff Kind == PairTypeTrade.
// It is deliberately not hidden behind an interface (spec.md §9 "Dynamic
// dispatch over variants").
type PairType struct {
	Kind  PairTypeKind
	Trade *TradeConfig
}

// CanSellNftsToPair reports whether a taker can sell an NFT into this pair
// type, i.e. whether the pair holds tokens to pay for it: Token or Trade.
func (t PairType) CanSellNftsToPair() bool {
	return t.Kind == PairTypeToken || t.Kind == PairTypeTrade
}

// CanBuyFromPair reports whether a taker can buy an NFT out of this pair.
func (t PairType) CanBuyFromPair() bool {
	return t.Kind == PairTypeNft || t.Kind == PairTypeTrade
}

// CurveKind is the tag of the BondingCurve closed sum type.
type CurveKind int

const (
	CurveLinear CurveKind = iota
	CurveExponential
	CurveConstantProduct
)

// LinearCurve holds a linear bonding curve's stored state.
type LinearCurve struct {
	SpotPrice sdkmath.Int
	Delta     sdkmath.Int
}

// ExponentialCurve holds an exponential bonding curve's stored state; Delta
// is a fraction in [0, 1).
type ExponentialCurve struct {
	SpotPrice sdkmath.Int
	Delta     infmath.Percent
}

// BondingCurve is a closed sum type; exactly one of Linear/Exponential is
// non-nil when Kind selects it, and neither is set for ConstantProduct
// (spec.md §3 "ConstantProduct (no parameters — spot derived from
// inventory)").
type BondingCurve struct {
	Kind        CurveKind
	Linear      *LinearCurve
	Exponential *ExponentialCurve
}

// Immutable holds the fields frozen at pair creation.
type Immutable struct {
	CollectionID string
	Denom        string
	Owner        string
}

// Config is the mutable-by-owner-only configuration space.
type Config struct {
	IsActive       bool
	PairType       PairType
	BondingCurve   BondingCurve
	AssetRecipient *string
}

// Internal holds the inventory-derived, cached quote state only the step +
// recompute sequence may rewrite.
type Internal struct {
	TotalNfts               uint64
	SellToPairQuoteSummary  *quote.Summary
	BuyFromPairQuoteSummary *quote.Summary
}

// Pair is the full state of one liquidity pool.
type Pair struct {
	Immutable   Immutable
	Config      Config
	Internal    Internal
	TotalTokens sdkmath.Int
	// NftDeposits is the set of token ids this pair currently escrows.
	NftDeposits map[string]struct{}
}

// New constructs a pair in its initial, quote-free state. Callers then call
// Recompute to populate the initial quotes, per spec.md §3 "initial quotes
// computed immediately."
func New(immutable Immutable, config Config) *Pair {
	return &Pair{
		Immutable:   immutable,
		Config:      config,
		TotalTokens: sdkmath.ZeroInt(),
		NftDeposits: make(map[string]struct{}),
	}
}

// AssetRecipient resolves the configured asset recipient, defaulting to the
// owner (spec.md's address_or pattern).
func (p *Pair) AssetRecipient() string {
	if p.Config.AssetRecipient != nil && *p.Config.AssetRecipient != "" {
		return *p.Config.AssetRecipient
	}
	return p.Immutable.Owner
}

// IsOwner reports whether sender is authorized for owner-only operations.
func (p *Pair) IsOwner(sender string) bool {
	return sender == p.Immutable.Owner
}

// reinvestNfts reports whether a sold-in NFT should stay in the pair rather
// than flow to the asset recipient (Trade pairs only).
func (p *Pair) reinvestNfts() bool {
	return p.Config.PairType.Kind == PairTypeTrade && p.Config.PairType.Trade.ReinvestNfts
}

// reinvestTokens reports whether a buyer's payment should stay in the pair
// rather than flow to the asset recipient (Trade pairs only).
func (p *Pair) reinvestTokens() bool {
	return p.Config.PairType.Kind == PairTypeTrade && p.Config.PairType.Trade.ReinvestTokens
}

// sortedDepositIDs returns the escrowed token ids in ascending string order,
// the deterministic iteration order spec.md §4.3 requires for
// SwapTokensForAnyNft and WithdrawAnyNfts.
func (p *Pair) sortedDepositIDs() []string {
	ids := make([]string, 0, len(p.NftDeposits))
	for id := range p.NftDeposits {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
