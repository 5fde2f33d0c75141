// Package curve implements the pure spot-price and gross-price arithmetic
// for the three bonding curves (linear, exponential, constant-product) and
// both swap directions described in spec.md §4.1. Every function here is a
// pure function of its inputs: no storage, no config, no side effects. A
// math failure (overflow, underflow, divide-by-zero) is reported as an
// error; the caller (pkg/pair) is responsible for turning that into a
// pair deactivation rather than aborting the enclosing operation.
package curve

import (
	sdkmath "cosmossdk.io/math"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// LinearStepUserSubmitsTokens advances the spot price after a taker buys an
// NFT from the pair: price climbs by delta.
func LinearStepUserSubmitsTokens(spotPrice, delta sdkmath.Int) (sdkmath.Int, error) {
	return infmath.Guard(func() sdkmath.Int { return spotPrice.Add(delta) })
}

// LinearStepUserSubmitsNft advances the spot price after a taker sells an
// NFT to the pair: price drops by delta. A price that would go negative is
// reported as an error; pkg/pair converts that into a deactivation.
func LinearStepUserSubmitsNft(spotPrice, delta sdkmath.Int) (sdkmath.Int, error) {
	return infmath.CheckedSub(spotPrice, delta)
}

// LinearTradeBuyFromPairPrice is the gross price a Trade pair quotes to sell
// its next NFT: spot + delta (the price the pair will climb to).
func LinearTradeBuyFromPairPrice(spotPrice, delta sdkmath.Int) (sdkmath.Int, error) {
	return infmath.Guard(func() sdkmath.Int { return spotPrice.Add(delta) })
}

// ExponentialStepUserSubmitsTokens advances the spot price after a taker buys
// an NFT from the pair: ceil(p * (1 + delta)).
func ExponentialStepUserSubmitsTokens(spotPrice sdkmath.Int, delta infmath.Percent) (sdkmath.Int, error) {
	return exponentialCeilStep(spotPrice, delta)
}

// ExponentialStepUserSubmitsNft advances the spot price after a taker sells
// an NFT to the pair: floor(p / (1 + delta)).
func ExponentialStepUserSubmitsNft(spotPrice sdkmath.Int, delta infmath.Percent) (sdkmath.Int, error) {
	onePlusDelta := infmath.OnePlus(delta)
	if !onePlusDelta.IsPositive() {
		return sdkmath.Int{}, errDivideByZero
	}
	return sdkmath.NewIntFromBigInt(spotPrice.ToLegacyDec().Quo(onePlusDelta).TruncateInt().BigInt()), nil
}

// ExponentialTradeBuyFromPairPrice is the gross price a Trade pair quotes to
// sell its next NFT: ceil(p * (1 + delta)), same formula as the step.
func ExponentialTradeBuyFromPairPrice(spotPrice sdkmath.Int, delta infmath.Percent) (sdkmath.Int, error) {
	return exponentialCeilStep(spotPrice, delta)
}

func exponentialCeilStep(spotPrice sdkmath.Int, delta infmath.Percent) (sdkmath.Int, error) {
	onePlusDelta := infmath.OnePlus(delta)
	product := spotPrice.ToLegacyDec().Mul(onePlusDelta)
	return infmath.Guard(func() sdkmath.Int { return product.Ceil().TruncateInt() })
}

// ConstantProductBuyFromPairPrice is the gross price to buy one NFT out of a
// constant-product Trade pair: ceil(T / (N-1)). Requires N >= 2 NFTs in the
// pair (one must remain to back the invariant); fewer produces no quote.
func ConstantProductBuyFromPairPrice(totalTokens, totalNfts sdkmath.Int) (sdkmath.Int, error) {
	if totalNfts.LT(sdkmath.NewInt(2)) {
		return sdkmath.Int{}, errNoQuote
	}
	denom := totalNfts.Sub(sdkmath.OneInt())
	return infmath.CeilQuo(totalTokens, denom)
}

// ConstantProductSellToPairPrice is the gross price to sell one NFT into a
// constant-product Trade pair: floor(T / (N+1)). Requires N >= 1 NFT already
// in the pair.
func ConstantProductSellToPairPrice(totalTokens, totalNfts sdkmath.Int) (sdkmath.Int, error) {
	if totalNfts.LT(sdkmath.OneInt()) {
		return sdkmath.Int{}, errNoQuote
	}
	denom := totalNfts.Add(sdkmath.OneInt())
	return infmath.FloorQuo(totalTokens, denom)
}
