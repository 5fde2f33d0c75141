package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	"github.com/margined-protocol/infinity-core/pkg/index"
	"github.com/margined-protocol/infinity-core/pkg/pair"
	"github.com/margined-protocol/infinity-core/pkg/router"
	infinitytime "github.com/margined-protocol/infinity-core/pkg/time"
)

// fixturePairBook adapts the CLI's in-memory fixture pairs to
// router.PairBook, the same query-shaped view an external router would get
// from a live chain (pkg/router/offers.go).
type fixturePairBook struct {
	pairs map[string]*pair.Pair
}

func (b fixturePairBook) IsPair(_ context.Context, address string) (bool, error) {
	_, ok := b.pairs[address]
	return ok, nil
}

func (b fixturePairBook) BuyFromPairQuote(_ context.Context, pairAddress string) (sdkmath.Int, bool, error) {
	p, ok := b.pairs[pairAddress]
	if !ok || p.Internal.BuyFromPairQuoteSummary == nil {
		return sdkmath.Int{}, false, nil
	}
	return p.Internal.BuyFromPairQuoteSummary.Total(), true, nil
}

func (b fixturePairBook) FirstNftDeposit(_ context.Context, pairAddress string) (string, bool, error) {
	p, ok := b.pairs[pairAddress]
	if !ok {
		return "", false, nil
	}
	ids := p.NftDepositsPage("", 1)
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}

// fixtureOwnership answers NFTOwnership by scanning the fixture pairs for
// the one escrowing tokenID; a token not held by any fixture pair resolves
// to no owner rather than an error, matching the order-book fallback a live
// router would take for an NFT in a wallet.
type fixtureOwnership struct {
	pairs map[string]*pair.Pair
}

func (o fixtureOwnership) OwnerOf(_ context.Context, collection, tokenID string) (string, error) {
	for addr, p := range o.pairs {
		if p.Immutable.CollectionID != collection {
			continue
		}
		if _, owned := p.NftDeposits[tokenID]; owned {
			return addr, nil
		}
	}
	return "", nil
}

// noopOrderBook answers every order-book query with "nothing resting",
// standing in for a live marketplace contract when router-match is run
// against fixtures alone with no -marketplace configured.
type noopOrderBook struct{}

var _ capabilities.OrderBook = noopOrderBook{}

func (noopOrderBook) HighestBidForToken(context.Context, string, string) (*capabilities.OrderBookOffer, error) {
	return nil, nil
}

func (noopOrderBook) HighestCollectionBid(context.Context, string) (*capabilities.OrderBookOffer, error) {
	return nil, nil
}

func (noopOrderBook) LowestAskForToken(context.Context, string, string) (*capabilities.OrderBookOffer, error) {
	return nil, nil
}

func (noopOrderBook) LowestAsk(context.Context, string) (*capabilities.OrderBookOffer, error) {
	return nil, nil
}

// runRouterMatch runs one of pkg/router's three swap entrypoints against the
// loaded fixture pairs and collection index, exercising the router's
// tie-break and fund-accounting logic the way best-sell/best-buy (which
// query pkg/index directly) do not.
func runRouterMatch(pairs map[string]*pair.Pair, idx *index.Index, side, collection, tokenIDsCSV, amountsCSV, totalSentStr string, robust bool) error {
	tokenIDs := splitCSV(tokenIDsCSV)
	amountStrs := splitCSV(amountsCSV)
	if side != "buy-any" && len(tokenIDs) != len(amountStrs) {
		return fmt.Errorf("-token-ids and -amounts must have the same number of comma-separated entries")
	}

	amounts := make([]sdkmath.Int, len(amountStrs))
	for i, s := range amountStrs {
		a, ok := sdkmath.NewIntFromString(s)
		if !ok {
			return fmt.Errorf("invalid amount %q", s)
		}
		amounts[i] = a
	}

	params := router.SwapParams{
		Robust:   robust,
		Deadline: infinitytime.UnixNanoTime(time.Now().Add(time.Hour)),
	}
	ctx := context.Background()
	ob := noopOrderBook{}

	switch side {
	case "sell-to-pair":
		orders := make([]router.NftOrder, len(tokenIDs))
		for i, id := range tokenIDs {
			orders[i] = router.NftOrder{TokenID: id, MinAmount: amounts[i]}
		}
		result, err := router.SwapNftsForTokens(ctx, ob, idx, collection, orders, params, time.Now())
		if err != nil {
			return err
		}
		printMatches(result)

	case "buy-specific":
		totalSent, ok := sdkmath.NewIntFromString(totalSentStr)
		if !ok {
			return fmt.Errorf("invalid -total-sent %q", totalSentStr)
		}
		orders := make([]router.NftOrder, len(tokenIDs))
		for i, id := range tokenIDs {
			orders[i] = router.NftOrder{TokenID: id, MaxAmount: amounts[i]}
		}
		result, refund, err := router.SwapTokensForSpecificNfts(ctx, fixtureOwnership{pairs}, fixturePairBook{pairs}, ob, collection, orders, totalSent, params, time.Now())
		if err != nil {
			return err
		}
		printMatches(result)
		fmt.Printf("refund=%s\n", refund)

	case "buy-any":
		result, err := router.SwapTokensForAnyNfts(ctx, fixturePairBook{pairs}, ob, idx, collection, amounts, params, time.Now())
		if err != nil {
			return err
		}
		printMatches(result)

	default:
		return fmt.Errorf("unknown router-match -side %q (want sell-to-pair, buy-specific, or buy-any)", side)
	}
	return nil
}

func printMatches(result *router.SwapResult) {
	fmt.Printf("trace_id=%s\n", result.TraceID)
	for _, m := range result.Matches {
		if m.Skipped {
			fmt.Printf("  token=%s skipped: no offer met the order's price bound\n", m.Order.TokenID)
			continue
		}
		fmt.Printf("  token=%s matched address=%s price=%s source=%v\n", m.Offer.TokenID, m.Offer.Address, m.Offer.Price, m.Offer.Source)
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
