// Package router implements the cross-pair best-offer aggregation and swap
// execution described in spec.md §4.5: discover the best offer for a taker
// order across pair quotes (via the collection index) and order-book-style
// offers, then execute in strict or robust mode with deadline and
// fund-accounting enforcement.
package router

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	"github.com/margined-protocol/infinity-core/pkg/index"
)

// OfferSource names where an Offer came from, used only for the tie-break
// rule in spec.md §4.5 ("order-book over pair").
type OfferSource int

const (
	SourceOrderBook OfferSource = iota
	SourcePair
)

// Offer is a single matchable price from either an order book or a pair
// quote, normalized so the router can compare them uniformly.
type Offer struct {
	Source  OfferSource
	Address string // marketplace contract or pair address
	TokenID string
	Price   sdkmath.Int
}

// PairBook is the router's view of the pair layer: enough to resolve a live
// buy-from-pair quote and the NFT it would sell, without coupling the router
// to pkg/pair directly — mirroring how the external router talks to pairs
// purely through queries (spec.md §1 treats the pair as an external
// capability from the router's perspective too).
type PairBook interface {
	IsPair(ctx context.Context, address string) (bool, error)
	BuyFromPairQuote(ctx context.Context, pairAddress string) (sdkmath.Int, bool, error)
	FirstNftDeposit(ctx context.Context, pairAddress string) (string, bool, error)
}

// FindHighestSellToOffer locates the best price a taker can get for
// delivering order.TokenID: the highest of a token-specific bid, a
// collection-wide bid, and the collection's highest sell-to-pair quote. Nil,
// nil means no offer met order.MinAmount.
func FindHighestSellToOffer(
	ctx context.Context,
	ob capabilities.OrderBook,
	idx *index.Index,
	collection string,
	order NftOrder,
) (*Offer, error) {
	var offers []Offer

	if bid, err := ob.HighestBidForToken(ctx, collection, order.TokenID); err != nil {
		return nil, err
	} else if bid != nil {
		offers = append(offers, Offer{Source: SourceOrderBook, Address: "marketplace", TokenID: order.TokenID, Price: bid.Amount})
	}

	if bid, err := ob.HighestCollectionBid(ctx, collection); err != nil {
		return nil, err
	} else if bid != nil {
		offers = append(offers, Offer{Source: SourceOrderBook, Address: "marketplace", TokenID: order.TokenID, Price: bid.Amount})
	}

	if entries := idx.SellToPairQuotes(collection, 1, ""); len(entries) > 0 {
		offers = append(offers, Offer{Source: SourcePair, Address: entries[0].PairAddress, TokenID: order.TokenID, Price: entries[0].Price})
	}

	best := pickBest(offers, true)
	if best == nil || best.Price.LT(order.MinAmount) {
		return nil, nil
	}
	return best, nil
}

// FindLowestBuySpecificNftOffer locates the best price a taker can pay for
// order.TokenID: the owning pair's live buy-from-pair quote if an infinity
// pair currently holds it, otherwise the order book's ask on that token.
func FindLowestBuySpecificNftOffer(
	ctx context.Context,
	ownership capabilities.NFTOwnership,
	pairs PairBook,
	ob capabilities.OrderBook,
	collection string,
	order NftOrder,
) (*Offer, error) {
	owner, err := ownership.OwnerOf(ctx, collection, order.TokenID)
	if err != nil {
		return nil, err
	}

	isPair, err := pairs.IsPair(ctx, owner)
	if err != nil {
		return nil, err
	}

	var offer *Offer
	if isPair {
		price, ok, err := pairs.BuyFromPairQuote(ctx, owner)
		if err != nil {
			return nil, err
		}
		if ok {
			offer = &Offer{Source: SourcePair, Address: owner, TokenID: order.TokenID, Price: price}
		}
	} else {
		ask, err := ob.LowestAskForToken(ctx, collection, order.TokenID)
		if err != nil {
			return nil, err
		}
		if ask != nil {
			offer = &Offer{Source: SourceOrderBook, Address: "marketplace", TokenID: order.TokenID, Price: ask.Amount}
		}
	}

	if offer == nil || offer.Price.GT(order.MaxAmount) {
		return nil, nil
	}
	return offer, nil
}

// FindLowestBuyAnyNftOffer locates the cheapest way to acquire any NFT of
// collection: the order book's lowest ask, or the collection's lowest
// buy-from-pair quote, resolving the winning pair's first deposit id.
func FindLowestBuyAnyNftOffer(
	ctx context.Context,
	pairs PairBook,
	ob capabilities.OrderBook,
	idx *index.Index,
	collection string,
	maxAmount sdkmath.Int,
) (*Offer, error) {
	var offers []Offer

	ask, err := ob.LowestAsk(ctx, collection)
	if err != nil {
		return nil, err
	}
	if ask != nil {
		offers = append(offers, Offer{Source: SourceOrderBook, Address: "marketplace", TokenID: ask.TokenID, Price: ask.Amount})
	}

	if entries := idx.BuyFromPairQuotes(collection, 1, ""); len(entries) > 0 {
		offers = append(offers, Offer{Source: SourcePair, Address: entries[0].PairAddress, TokenID: "", Price: entries[0].Price})
	}

	best := pickBest(offers, false)
	if best == nil || best.Price.GT(maxAmount) {
		return nil, nil
	}

	if best.Source == SourcePair && best.TokenID == "" {
		tokenID, ok, err := pairs.FirstNftDeposit(ctx, best.Address)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		best.TokenID = tokenID
	}

	return best, nil
}

// pickBest selects the winning offer per spec.md §4.5's tie-break rule:
// highest (maximize=true) or lowest (maximize=false) price; ties broken by
// order-book over pair, then lower address, then lower token id.
func pickBest(offers []Offer, maximize bool) *Offer {
	if len(offers) == 0 {
		return nil
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if better(o, best, maximize) {
			best = o
		}
	}
	return &best
}

func better(a, b Offer, maximize bool) bool {
	if !a.Price.Equal(b.Price) {
		if maximize {
			return a.Price.GT(b.Price)
		}
		return a.Price.LT(b.Price)
	}
	if a.Source != b.Source {
		return a.Source == SourceOrderBook
	}
	if a.Address != b.Address {
		return a.Address < b.Address
	}
	return a.TokenID < b.TokenID
}
