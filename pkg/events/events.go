// Package events names the wire-level event types (spec.md §6) and builds
// their attribute lists. The names themselves are part of the external
// contract and must not change. Only pkg/pair emits events; pkg/index and
// pkg/router return none, so the add/remove pair-quote builders have no
// caller in this module.
package events

import "strconv"

// Type is one of the event names spec.md §6 lists as part of the contract.
type Type string

const (
	TypeSwap                Type = "swap"
	TypeDepositNfts         Type = "deposit-nfts"
	TypeWithdrawNfts        Type = "withdraw-nfts"
	TypeDepositTokens       Type = "deposit-tokens"
	TypeWithdrawTokens      Type = "withdraw-tokens"
	TypeUpdatePairConfig    Type = "update-pair-config"
	TypeAddBuyPairQuote     Type = "add-buy-pair-quote"
	TypeRemoveBuyPairQuote  Type = "remove-buy-pair-quote"
	TypeAddSellPairQuote    Type = "add-sell-pair-quote"
	TypeRemoveSellPairQuote Type = "remove-sell-pair-quote"
	TypeFairBurn            Type = "fair-burn"
	TypeRoyaltyPayout       Type = "royalty-payout"
)

// Attribute is a single key-value pair attached to an event, mirroring the
// wasmvm/sdk event attribute shape without importing either module here —
// the capabilities layer translates Event into whatever wire type the host
// chain's message dispatch expects.
type Attribute struct {
	Key   string
	Value string
}

// Event is a typed, ordered attribute list ready for dispatch.
type Event struct {
	Type       Type
	Attributes []Attribute
}

func attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// NewSwap builds the swap event emitted by every SwapNftForTokens,
// SwapTokensForSpecificNft, and SwapTokensForAnyNft call.
func NewSwap(pairAddr, denom, direction, tokenID, amount string) Event {
	return Event{
		Type: TypeSwap,
		Attributes: []Attribute{
			attr("pair", pairAddr),
			attr("denom", denom),
			attr("direction", direction),
			attr("token_id", tokenID),
			attr("amount", amount),
		},
	}
}

// NewDepositNfts builds the deposit-nfts event.
func NewDepositNfts(pairAddr, tokenID string) Event {
	return Event{Type: TypeDepositNfts, Attributes: []Attribute{attr("pair", pairAddr), attr("token_id", tokenID)}}
}

// NewWithdrawNfts builds the withdraw-nfts event for count withdrawn ids.
func NewWithdrawNfts(pairAddr string, count int) Event {
	return Event{Type: TypeWithdrawNfts, Attributes: []Attribute{attr("pair", pairAddr), attr("count", strconv.Itoa(count))}}
}

// NewDepositTokens builds the deposit-tokens event.
func NewDepositTokens(pairAddr, amount string) Event {
	return Event{Type: TypeDepositTokens, Attributes: []Attribute{attr("pair", pairAddr), attr("amount", amount)}}
}

// NewWithdrawTokens builds the withdraw-tokens event.
func NewWithdrawTokens(pairAddr, amount string) Event {
	return Event{Type: TypeWithdrawTokens, Attributes: []Attribute{attr("pair", pairAddr), attr("amount", amount)}}
}

// NewUpdatePairConfig builds the update-pair-config event.
func NewUpdatePairConfig(pairAddr string) Event {
	return Event{Type: TypeUpdatePairConfig, Attributes: []Attribute{attr("pair", pairAddr)}}
}

// NewAddBuyPairQuote builds the add-buy-pair-quote index event.
func NewAddBuyPairQuote(pairAddr, collection, price string) Event {
	return Event{
		Type: TypeAddBuyPairQuote,
		Attributes: []Attribute{
			attr("pair", pairAddr), attr("collection", collection), attr("price", price),
		},
	}
}

// NewRemoveBuyPairQuote builds the remove-buy-pair-quote index event.
func NewRemoveBuyPairQuote(pairAddr, collection string) Event {
	return Event{Type: TypeRemoveBuyPairQuote, Attributes: []Attribute{attr("pair", pairAddr), attr("collection", collection)}}
}

// NewAddSellPairQuote builds the add-sell-pair-quote index event.
func NewAddSellPairQuote(pairAddr, collection, price string) Event {
	return Event{
		Type: TypeAddSellPairQuote,
		Attributes: []Attribute{
			attr("pair", pairAddr), attr("collection", collection), attr("price", price),
		},
	}
}

// NewRemoveSellPairQuote builds the remove-sell-pair-quote index event.
func NewRemoveSellPairQuote(pairAddr, collection string) Event {
	return Event{Type: TypeRemoveSellPairQuote, Attributes: []Attribute{attr("pair", pairAddr), attr("collection", collection)}}
}

// NewFairBurn builds the fair-burn payout event.
func NewFairBurn(pairAddr, recipient, denom, amount string) Event {
	return Event{
		Type: TypeFairBurn,
		Attributes: []Attribute{
			attr("pair", pairAddr), attr("recipient", recipient), attr("denom", denom), attr("amount", amount),
		},
	}
}

// NewRoyaltyPayout builds the royalty-payout event.
func NewRoyaltyPayout(pairAddr, recipient, denom, amount string) Event {
	return Event{
		Type: TypeRoyaltyPayout,
		Attributes: []Attribute{
			attr("pair", pairAddr), attr("recipient", recipient), attr("denom", denom), attr("amount", amount),
		},
	}
}
