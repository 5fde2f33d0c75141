package config

import (
	"encoding/json"
	"fmt"
	"os"

	sdkmath "cosmossdk.io/math"
	"github.com/mitchellh/mapstructure"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
	"github.com/margined-protocol/infinity-core/pkg/pair"
)

// FixturePair is the JSON-side shape of a pair infinityd loads at startup, one
// entry per pair in a fixture set (SPEC_FULL.md's "run the router against a
// fixture set of pairs"). Amount fields are strings, decoded into SdkInt by
// mapstructure's decode hook rather than BurntSushi/toml's UnmarshalText,
// since fixtures arrive as loosely-typed JSON rather than a fixed TOML
// schema.
type FixturePair struct {
	Address      string `mapstructure:"address"`
	CollectionID string `mapstructure:"collection_id"`
	Denom        string `mapstructure:"denom"`
	Owner        string `mapstructure:"owner"`
	IsActive     bool   `mapstructure:"is_active"`
	PairType     string `mapstructure:"pair_type"` // "token", "nft", or "trade"

	SwapFeePercent string `mapstructure:"swap_fee_percent"`
	ReinvestTokens bool   `mapstructure:"reinvest_tokens"`
	ReinvestNfts   bool   `mapstructure:"reinvest_nfts"`

	Curve     string `mapstructure:"curve"` // "linear", "exponential", or "constant_product"
	SpotPrice SdkInt `mapstructure:"spot_price"`
	Delta     string `mapstructure:"delta"` // Percent string for exponential, SdkInt string for linear

	TotalTokens SdkInt   `mapstructure:"total_tokens"`
	NftDeposits []string `mapstructure:"nft_deposits"`
}

// LoadFixturePairs decodes a JSON array of FixturePair from path using
// mapstructure.Decode with SdkIntDecodeHook, the teacher's mapstructure
// decode-hook convention applied to a source BurntSushi/toml cannot parse
// (loosely-typed JSON rather than a fixed schema).
func LoadFixturePairs(path string) ([]FixturePair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	var untyped []map[string]interface{}
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s as JSON: %w", path, err)
	}

	var fixtures []FixturePair
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: SdkIntDecodeHook,
		Result:     &fixtures,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build fixture decoder: %w", err)
	}
	if err := decoder.Decode(untyped); err != nil {
		return nil, fmt.Errorf("failed to decode fixture file %s: %w", path, err)
	}
	return fixtures, nil
}

// ToPair builds a pair.Pair from f's fixture state. Recompute is not called
// here; the caller recomputes once after loading every pair, consistent
// with pair.New's "construct then Recompute" contract.
func (f FixturePair) ToPair() (*pair.Pair, error) {
	pairType, err := f.toPairType()
	if err != nil {
		return nil, err
	}
	curve, err := f.toBondingCurve()
	if err != nil {
		return nil, err
	}

	p := pair.New(
		pair.Immutable{CollectionID: f.CollectionID, Denom: f.Denom, Owner: f.Owner},
		pair.Config{IsActive: f.IsActive, PairType: pairType, BondingCurve: curve},
	)
	p.TotalTokens = f.TotalTokens.Value
	for _, id := range f.NftDeposits {
		p.NftDeposits[id] = struct{}{}
	}
	p.Internal.TotalNfts = uint64(len(p.NftDeposits))
	return p, nil
}

func (f FixturePair) toPairType() (pair.PairType, error) {
	switch f.PairType {
	case "token":
		return pair.PairType{Kind: pair.PairTypeToken}, nil
	case "nft":
		return pair.PairType{Kind: pair.PairTypeNft}, nil
	case "trade":
		feePercent, err := infmath.NewPercentFromString(f.SwapFeePercent)
		if err != nil {
			return pair.PairType{}, fmt.Errorf("invalid swap_fee_percent %q: %w", f.SwapFeePercent, err)
		}
		return pair.PairType{
			Kind: pair.PairTypeTrade,
			Trade: &pair.TradeConfig{
				SwapFeePercent: feePercent,
				ReinvestTokens: f.ReinvestTokens,
				ReinvestNfts:   f.ReinvestNfts,
			},
		}, nil
	default:
		return pair.PairType{}, fmt.Errorf("unknown pair_type %q", f.PairType)
	}
}

func (f FixturePair) toBondingCurve() (pair.BondingCurve, error) {
	switch f.Curve {
	case "linear":
		delta, ok := sdkmath.NewIntFromString(f.Delta)
		if !ok {
			return pair.BondingCurve{}, fmt.Errorf("invalid linear delta %q", f.Delta)
		}
		return pair.BondingCurve{
			Kind:   pair.CurveLinear,
			Linear: &pair.LinearCurve{SpotPrice: f.SpotPrice.Value, Delta: delta},
		}, nil
	case "exponential":
		delta, err := infmath.NewPercentFromString(f.Delta)
		if err != nil {
			return pair.BondingCurve{}, fmt.Errorf("invalid exponential delta %q: %w", f.Delta, err)
		}
		return pair.BondingCurve{
			Kind:        pair.CurveExponential,
			Exponential: &pair.ExponentialCurve{SpotPrice: f.SpotPrice.Value, Delta: delta},
		}, nil
	case "constant_product":
		return pair.BondingCurve{Kind: pair.CurveConstantProduct}, nil
	default:
		return pair.BondingCurve{}, fmt.Errorf("unknown curve %q", f.Curve)
	}
}
