package router

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	routererrors "github.com/margined-protocol/infinity-core/pkg/errors"
	"github.com/margined-protocol/infinity-core/pkg/index"
	infinitytime "github.com/margined-protocol/infinity-core/pkg/time"
)

// NftOrder is one leg of a router call: a token id plus the taker's
// price bound in that direction (spec.md §4.5).
type NftOrder struct {
	TokenID   string
	MinAmount sdkmath.Int // used by SwapNftsForTokens
	MaxAmount sdkmath.Int // used by SwapTokensForSpecificNfts
}

// SwapParams carries the fields every router entrypoint shares
// (spec.md §6 "swap_params").
type SwapParams struct {
	Robust         bool
	Deadline       infinitytime.UnixNanoTime
	AssetRecipient string
	Finder         string
}

// MatchResult is one order's outcome: either a filled Offer or, in robust
// mode, a skipped order with no error.
type MatchResult struct {
	Order   NftOrder
	Offer   *Offer
	Skipped bool
}

// CoinTransfer is one outgoing transfer the caller must dispatch; the router
// itself never calls pkg/capabilities directly so it stays testable without
// a live chain.
type CoinTransfer struct {
	Recipient string
	Denom     string
	Amount    sdkmath.Int
}

// SwapResult bundles everything a router entrypoint produces. TraceID
// identifies this call in logs, independent of any single match's result.
type SwapResult struct {
	TraceID       string
	Matches       []MatchResult
	CoinTransfers []CoinTransfer
}

func newSwapResult() *SwapResult {
	return &SwapResult{TraceID: uuid.NewString()}
}

// SwapNftsForTokens matches each order against FindHighestSellToOffer and
// returns the set of matches (spec.md §4.5's first entrypoint). Strict mode
// aborts on the first order with no matching offer; robust mode marks it
// Skipped and keeps matching the remaining orders.
func SwapNftsForTokens(
	ctx context.Context,
	ob capabilities.OrderBook,
	idx *index.Index,
	collection string,
	orders []NftOrder,
	params SwapParams,
	now time.Time,
) (*SwapResult, error) {
	if params.Deadline.IsExpired(now) {
		return nil, routererrors.New(routererrors.KindDeadlinePassed, "swap deadline has passed")
	}
	if err := checkDuplicateTokenIDs(orders); err != nil {
		return nil, err
	}

	result := newSwapResult()
	for _, order := range orders {
		offer, err := FindHighestSellToOffer(ctx, ob, idx, collection, order)
		if err != nil {
			return nil, err
		}
		if offer == nil {
			if !params.Robust {
				return nil, routererrors.Newf(routererrors.KindInvalidPairQuote, "no sell-to offer meets min_amount for token %s", order.TokenID)
			}
			result.Matches = append(result.Matches, MatchResult{Order: order, Skipped: true})
			continue
		}
		result.Matches = append(result.Matches, MatchResult{Order: order, Offer: offer})
		result.CoinTransfers = append(result.CoinTransfers, CoinTransfer{Recipient: params.recipientOr(""), Denom: "", Amount: offer.Price})
	}
	return result, nil
}

// SwapTokensForSpecificNfts matches each order against
// FindLowestBuySpecificNftOffer (spec.md §4.5's second entrypoint).
// max_amount accounting: the router must have received
// sum(matched order.MaxAmount-bound prices); any unmatched surplus in robust
// mode is refunded by the caller using TotalSent - sum(Offer.Price).
func SwapTokensForSpecificNfts(
	ctx context.Context,
	ownership capabilities.NFTOwnership,
	pairs PairBook,
	ob capabilities.OrderBook,
	collection string,
	orders []NftOrder,
	totalSent sdkmath.Int,
	params SwapParams,
	now time.Time,
) (*SwapResult, sdkmath.Int, error) {
	if params.Deadline.IsExpired(now) {
		return nil, sdkmath.Int{}, routererrors.New(routererrors.KindDeadlinePassed, "swap deadline has passed")
	}
	if err := checkDuplicateTokenIDs(orders); err != nil {
		return nil, sdkmath.Int{}, err
	}

	result := newSwapResult()
	spent := sdkmath.ZeroInt()
	for _, order := range orders {
		offer, err := FindLowestBuySpecificNftOffer(ctx, ownership, pairs, ob, collection, order)
		if err != nil {
			return nil, sdkmath.Int{}, err
		}
		if offer == nil {
			if !params.Robust {
				return nil, sdkmath.Int{}, routererrors.Newf(routererrors.KindInvalidPairQuote, "no offer meets max_amount for token %s", order.TokenID)
			}
			result.Matches = append(result.Matches, MatchResult{Order: order, Skipped: true})
			continue
		}
		result.Matches = append(result.Matches, MatchResult{Order: order, Offer: offer})
		spent = spent.Add(offer.Price)
	}

	if spent.GT(totalSent) {
		return nil, sdkmath.Int{}, routererrors.ErrFundsMismatch
	}
	refund := totalSent.Sub(spent)
	if !params.Robust && refund.IsPositive() {
		return nil, sdkmath.Int{}, routererrors.New(routererrors.KindInsufficientFunds, "strict mode requires funds sent to equal sum(order prices) exactly")
	}

	return result, refund, nil
}

// SwapTokensForAnyNfts matches each max-amount entry against
// FindLowestBuyAnyNftOffer (spec.md §4.5's third entrypoint).
func SwapTokensForAnyNfts(
	ctx context.Context,
	pairs PairBook,
	ob capabilities.OrderBook,
	idx *index.Index,
	collection string,
	maxAmounts []sdkmath.Int,
	params SwapParams,
	now time.Time,
) (*SwapResult, error) {
	if params.Deadline.IsExpired(now) {
		return nil, routererrors.New(routererrors.KindDeadlinePassed, "swap deadline has passed")
	}

	result := newSwapResult()
	for _, maxAmount := range maxAmounts {
		offer, err := FindLowestBuyAnyNftOffer(ctx, pairs, ob, idx, collection, maxAmount)
		if err != nil {
			return nil, err
		}
		if offer == nil {
			if !params.Robust {
				return nil, routererrors.New(routererrors.KindInvalidPairQuote, "no offer meets max_amount")
			}
			result.Matches = append(result.Matches, MatchResult{Skipped: true})
			continue
		}
		result.Matches = append(result.Matches, MatchResult{Order: NftOrder{TokenID: offer.TokenID, MaxAmount: maxAmount}, Offer: offer})
	}
	return result, nil
}

func (p SwapParams) recipientOr(fallback string) string {
	if p.AssetRecipient != "" {
		return p.AssetRecipient
	}
	return fallback
}

// checkDuplicateTokenIDs rejects a batch with a repeated token id, enforced
// in both directions per spec.md's resolved open question (the original
// source checked this only for sell-for-tokens orders).
func checkDuplicateTokenIDs(orders []NftOrder) error {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.TokenID]; ok {
			return routererrors.Newf(routererrors.KindInvalidInput, "duplicate token_id %s in order batch", o.TokenID)
		}
		seen[o.TokenID] = struct{}{}
	}
	return nil
}
