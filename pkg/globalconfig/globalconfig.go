// Package globalconfig holds the process-wide, read-only parameters every
// pair consults on every swap: fee percents, registry addresses, and
// per-denom minimum quote prices. spec.md §3 describes this as immutable
// per swap; callers should resolve one snapshot and pass it through a swap,
// not re-resolve mid-call (spec.md §9 Design Notes).
package globalconfig

import (
	sdkmath "cosmossdk.io/math"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// Config mirrors spec.md's GlobalConfig entity.
type Config struct {
	FairBurnSink             string
	RoyaltyRegistry          string
	FairBurnFeePercent       infmath.Percent
	MaxRoyaltyFeePercent     infmath.Percent
	MaxSwapFeePercent        infmath.Percent
	DefaultRoyaltyFeePercent infmath.Percent
	PairCreationFee          sdkmath.Int
	InfinityIndexAddr        string
}

// MinPrices maps a reserve denom to the minimum quotable gross price in that
// denom. A denom with no entry has no enforced minimum.
type MinPrices map[string]sdkmath.Int

// MinPriceFor returns the minimum price for denom, or zero if unset.
func (m MinPrices) MinPriceFor(denom string) sdkmath.Int {
	if v, ok := m[denom]; ok {
		return v
	}
	return sdkmath.ZeroInt()
}

// MeetsMinimum reports whether gross satisfies the per-denom floor.
func (m MinPrices) MeetsMinimum(denom string, gross sdkmath.Int) bool {
	return gross.GTE(m.MinPriceFor(denom))
}
