package pair

import (
	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	"github.com/margined-protocol/infinity-core/pkg/curve"
	"github.com/margined-protocol/infinity-core/pkg/globalconfig"
	infmath "github.com/margined-protocol/infinity-core/pkg/math"
	"github.com/margined-protocol/infinity-core/pkg/quote"
)

// transactionType names the two directions a step function advances the
// spot price for (spec.md §4.1).
type transactionType int

const (
	userSubmitsTokens transactionType = iota
	userSubmitsNfts
)

// Recompute is the sole place the cached quote summaries are rewritten
// (spec.md §4.3 "Step + recompute is the sole place..."). It does not
// advance the spot price on its own — callers that just changed inventory
// (deposit/withdraw) call Recompute directly; callers that executed a trade
// call Step first to advance the price, then call Recompute.
//
// royalty is resolved by the caller (via capabilities.RoyaltyRegistry)
// before invoking this method; recompute is otherwise pure.
func (p *Pair) Recompute(gcfg globalconfig.Config, minPrices globalconfig.MinPrices, royalty *capabilities.RoyaltyEntry) {
	p.updateSellToPairQuoteSummary(gcfg, minPrices, royalty)
	p.updateBuyFromPairQuoteSummary(gcfg, minPrices, royalty)
}

// Step advances the bonding curve's stored spot price for txType. A math
// failure deactivates the pair (leaving the spot price unchanged) rather than
// propagating an error to the caller; the Recompute that follows then clears
// both summaries because the pair is inactive.
func (p *Pair) Step(txType transactionType) {
	switch p.Config.BondingCurve.Kind {
	case CurveLinear:
		lin := p.Config.BondingCurve.Linear
		var next sdkmath.Int
		var err error
		if txType == userSubmitsNfts {
			next, err = curve.LinearStepUserSubmitsNft(lin.SpotPrice, lin.Delta)
		} else {
			next, err = curve.LinearStepUserSubmitsTokens(lin.SpotPrice, lin.Delta)
		}
		if err != nil {
			p.Config.IsActive = false
			return
		}
		lin.SpotPrice = next
	case CurveExponential:
		exp := p.Config.BondingCurve.Exponential
		var next sdkmath.Int
		var err error
		if txType == userSubmitsNfts {
			next, err = curve.ExponentialStepUserSubmitsNft(exp.SpotPrice, exp.Delta)
		} else {
			next, err = curve.ExponentialStepUserSubmitsTokens(exp.SpotPrice, exp.Delta)
		}
		if err != nil {
			p.Config.IsActive = false
			return
		}
		exp.SpotPrice = next
	case CurveConstantProduct:
		// spot price is not stored; nothing to step.
	}
}

func (p *Pair) updateSellToPairQuoteSummary(gcfg globalconfig.Config, minPrices globalconfig.MinPrices, royalty *capabilities.RoyaltyEntry) {
	if !p.Config.IsActive {
		p.Internal.SellToPairQuoteSummary = nil
		return
	}

	gross, ok := p.sellToPairGross()
	if !ok || gross.IsNil() || gross.GT(p.TotalTokens) || !minPrices.MeetsMinimum(p.Immutable.Denom, gross) {
		p.Internal.SellToPairQuoteSummary = nil
		return
	}

	p.Internal.SellToPairQuoteSummary = p.buildSummary(gross, gcfg, royalty)
}

func (p *Pair) updateBuyFromPairQuoteSummary(gcfg globalconfig.Config, minPrices globalconfig.MinPrices, royalty *capabilities.RoyaltyEntry) {
	if !p.Config.IsActive || p.Internal.TotalNfts == 0 {
		p.Internal.BuyFromPairQuoteSummary = nil
		return
	}

	gross, ok := p.buyFromPairGross()
	if !ok || gross.IsNil() || !minPrices.MeetsMinimum(p.Immutable.Denom, gross) {
		p.Internal.BuyFromPairQuoteSummary = nil
		return
	}

	p.Internal.BuyFromPairQuoteSummary = p.buildSummary(gross, gcfg, royalty)
}

// sellToPairGross computes the gross price the pair offers a taker
// submitting an NFT, independent of pair type (spec.md §4.1 "Sell-to-pair:
// price = p"); invalid combinations naturally yield no quote because
// TotalTokens is zero for a pair type that cannot hold tokens.
func (p *Pair) sellToPairGross() (sdkmath.Int, bool) {
	switch p.Config.BondingCurve.Kind {
	case CurveLinear:
		return p.Config.BondingCurve.Linear.SpotPrice, true
	case CurveExponential:
		return p.Config.BondingCurve.Exponential.SpotPrice, true
	case CurveConstantProduct:
		price, err := curve.ConstantProductSellToPairPrice(p.TotalTokens, sdkmath.NewIntFromUint64(p.Internal.TotalNfts))
		if err != nil {
			return sdkmath.Int{}, false
		}
		return price, true
	default:
		return sdkmath.Int{}, false
	}
}

// buyFromPairGross computes the gross price a taker pays to buy the pair's
// next NFT, per the pair-type/curve combination table in spec.md §4.3.
func (p *Pair) buyFromPairGross() (sdkmath.Int, bool) {
	switch {
	case p.Config.PairType.Kind == PairTypeNft && p.Config.BondingCurve.Kind == CurveLinear:
		return p.Config.BondingCurve.Linear.SpotPrice, true
	case p.Config.PairType.Kind == PairTypeNft && p.Config.BondingCurve.Kind == CurveExponential:
		return p.Config.BondingCurve.Exponential.SpotPrice, true
	case p.Config.PairType.Kind == PairTypeTrade && p.Config.BondingCurve.Kind == CurveLinear:
		price, err := curve.LinearTradeBuyFromPairPrice(p.Config.BondingCurve.Linear.SpotPrice, p.Config.BondingCurve.Linear.Delta)
		if err != nil {
			return sdkmath.Int{}, false
		}
		return price, true
	case p.Config.PairType.Kind == PairTypeTrade && p.Config.BondingCurve.Kind == CurveExponential:
		price, err := curve.ExponentialTradeBuyFromPairPrice(p.Config.BondingCurve.Exponential.SpotPrice, p.Config.BondingCurve.Exponential.Delta)
		if err != nil {
			return sdkmath.Int{}, false
		}
		return price, true
	case p.Config.PairType.Kind == PairTypeTrade && p.Config.BondingCurve.Kind == CurveConstantProduct:
		price, err := curve.ConstantProductBuyFromPairPrice(p.TotalTokens, sdkmath.NewIntFromUint64(p.Internal.TotalNfts))
		if err != nil {
			return sdkmath.Int{}, false
		}
		return price, true
	default:
		return sdkmath.Int{}, false
	}
}

func (p *Pair) buildSummary(gross sdkmath.Int, gcfg globalconfig.Config, royalty *capabilities.RoyaltyEntry) *quote.Summary {
	var royaltyRecipient string
	var royaltyPct *infmath.Percent
	if royalty != nil {
		royaltyRecipient = royalty.Recipient
		pct := royalty.Percent
		royaltyPct = &pct
	}

	var swapRecipient string
	var swapPct *infmath.Percent
	if p.Config.PairType.Kind == PairTypeTrade {
		swapRecipient = p.AssetRecipient()
		pct := p.Config.PairType.Trade.SwapFeePercent
		swapPct = &pct
	}

	summary, ok := quote.New(gross, p.Immutable.Denom, gcfg.FairBurnSink, gcfg.FairBurnFeePercent, royaltyRecipient, royaltyPct, swapRecipient, swapPct)
	if !ok {
		return nil
	}
	return summary
}
