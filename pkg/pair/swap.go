package pair

import (
	sdkmath "cosmossdk.io/math"

	pairerrors "github.com/margined-protocol/infinity-core/pkg/errors"
	"github.com/margined-protocol/infinity-core/pkg/events"
	"github.com/margined-protocol/infinity-core/pkg/quote"
)

// coinPayoutsFromSummary converts a quote summary's payout legs into
// CoinPayouts, pointing the seller leg at sellerRecipient (spec.md §4.2
// "Payout").
func coinPayoutsFromSummary(summary *quote.Summary, sellerRecipient string) []CoinPayout {
	legs := summary.Payout(sellerRecipient)
	out := make([]CoinPayout, 0, len(legs))
	for _, leg := range legs {
		out = append(out, CoinPayout{Recipient: leg.Recipient, Denom: summary.Denom, Amount: leg.Amount})
	}
	return out
}

// SwapNftForTokens sells tokenID into the pair at the cached sell-to-pair
// quote. minOutputAmount/minOutputDenom enforce the taker's slippage bound
// (spec.md §4.1 "Slippage protection").
func (p *Pair) SwapNftForTokens(
	sender, tokenID string,
	minOutputAmount sdkmath.Int,
	minOutputDenom string,
	assetRecipient *string,
	args recomputeArgs,
) (*Response, error) {
	if !p.Config.IsActive {
		return nil, pairerrors.ErrPairInactive
	}
	if minOutputDenom != "" && minOutputDenom != p.Immutable.Denom {
		return nil, pairerrors.ErrDenomMismatch
	}
	summary := p.Internal.SellToPairQuoteSummary
	if summary == nil {
		return nil, pairerrors.ErrNoQuote
	}
	if summary.SellerAmount.LT(minOutputAmount) {
		return nil, pairerrors.Newf(pairerrors.KindInvalidPairQuote, "quoted seller amount %s below minimum %s", summary.SellerAmount, minOutputAmount)
	}

	gross := summary.Total()
	p.TotalTokens = p.TotalTokens.Sub(gross)

	if p.reinvestNfts() {
		p.NftDeposits[tokenID] = struct{}{}
		p.Internal.TotalNfts++
	}
	p.Step(userSubmitsNfts)

	sellerRecipient := sender
	resp := &Response{
		CoinPayouts: coinPayoutsFromSummary(summary, sellerRecipient),
	}
	if !p.reinvestNfts() {
		recipient := p.AssetRecipient()
		if assetRecipient != nil && *assetRecipient != "" {
			recipient = *assetRecipient
		}
		resp.NftPayouts = append(resp.NftPayouts, NftPayout{
			Collection: p.Immutable.CollectionID,
			TokenID:    tokenID,
			Recipient:  recipient,
		})
	}
	resp.addEvent(events.NewSwap(args.PairAddress, p.Immutable.Denom, "sell_to_pair", tokenID, gross.String()))
	resp.addEvent(events.NewFairBurn(args.PairAddress, summary.FairBurn.Recipient, summary.Denom, summary.FairBurn.Amount.String()))
	if summary.Royalty != nil {
		resp.addEvent(events.NewRoyaltyPayout(args.PairAddress, summary.Royalty.Recipient, summary.Denom, summary.Royalty.Amount.String()))
	}

	return p.finish(args, resp), nil
}

// SwapTokensForSpecificNft buys tokenID out of the pair at the cached
// buy-from-pair quote. sentAmount must equal the quoted total exactly
// (spec.md §2 step 3, §4.3: "verifies sent coins exactly equal the quote's
// gross total"); this entrypoint has no strict/robust mode of its own and
// no refund mechanism, matching the original source's
// execute_swap_tokens_for_specific_nft. A caller that wants the
// strict/robust distinction and a refund leg for overpayment uses
// pkg/router instead.
func (p *Pair) SwapTokensForSpecificNft(
	sender, tokenID string,
	sentAmount sdkmath.Int,
	assetRecipient *string,
	args recomputeArgs,
) (*Response, error) {
	if !p.Config.IsActive {
		return nil, pairerrors.ErrPairInactive
	}
	if _, owned := p.NftDeposits[tokenID]; !owned {
		return nil, pairerrors.ErrNotOwnedByPair
	}
	summary := p.Internal.BuyFromPairQuoteSummary
	if summary == nil {
		return nil, pairerrors.ErrNoQuote
	}
	gross := summary.Total()
	if !sentAmount.Equal(gross) {
		return nil, pairerrors.ErrFundsMismatch
	}

	delete(p.NftDeposits, tokenID)
	p.Internal.TotalNfts--

	if p.reinvestTokens() {
		p.TotalTokens = p.TotalTokens.Add(gross)
	}
	p.Step(userSubmitsTokens)

	recipient := sender
	if assetRecipient != nil && *assetRecipient != "" {
		recipient = *assetRecipient
	}

	sellerRecipient := p.AssetRecipient()
	if p.reinvestTokens() {
		sellerRecipient = args.PairAddress
	}

	resp := &Response{
		CoinPayouts: coinPayoutsFromSummary(summary, sellerRecipient),
		NftPayouts: []NftPayout{{
			Collection: p.Immutable.CollectionID,
			TokenID:    tokenID,
			Recipient:  recipient,
		}},
	}
	resp.addEvent(events.NewSwap(args.PairAddress, p.Immutable.Denom, "buy_from_pair", tokenID, gross.String()))
	resp.addEvent(events.NewFairBurn(args.PairAddress, summary.FairBurn.Recipient, summary.Denom, summary.FairBurn.Amount.String()))
	if summary.Royalty != nil {
		resp.addEvent(events.NewRoyaltyPayout(args.PairAddress, summary.Royalty.Recipient, summary.Denom, summary.Royalty.Amount.String()))
	}

	return p.finish(args, resp), nil
}

// SwapTokensForAnyNft buys the pair's lowest-token-id NFT, the deterministic
// choice spec.md §4.3 requires when the taker does not name a token id.
func (p *Pair) SwapTokensForAnyNft(
	sender string,
	sentAmount sdkmath.Int,
	assetRecipient *string,
	args recomputeArgs,
) (*Response, error) {
	ids := p.sortedDepositIDs()
	if len(ids) == 0 {
		return nil, pairerrors.New(pairerrors.KindInvalidPair, "pair does not have any NFTs")
	}
	return p.SwapTokensForSpecificNft(sender, ids[0], sentAmount, assetRecipient, args)
}
