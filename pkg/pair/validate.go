package pair

import (
	pairerrors "github.com/margined-protocol/infinity-core/pkg/errors"
	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// validateConfig enforces spec.md §3 invariants (1)-(4) against a candidate
// Config. maxSwapFeePercent comes from GlobalConfig since it is a
// process-wide ceiling, not a pair field.
func validateConfig(cfg Config, maxSwapFeePercent infmath.Percent) error {
	switch cfg.PairType.Kind {
	case PairTypeToken, PairTypeNft:
		if cfg.PairType.Trade != nil {
			return pairerrors.Newf(pairerrors.KindInvalidPair, "pair_type %s must not carry trade config", cfg.PairType.Kind)
		}
	case PairTypeTrade:
		if cfg.PairType.Trade == nil {
			return pairerrors.New(pairerrors.KindInvalidPair, "trade pair_type requires trade config")
		}
		if !cfg.PairType.Trade.SwapFeePercent.IsFraction() {
			return pairerrors.New(pairerrors.KindInvalidPair, "swap_fee_percent is not a valid fraction")
		}
		if cfg.PairType.Trade.SwapFeePercent.Dec.GT(maxSwapFeePercent.Dec) {
			return pairerrors.New(pairerrors.KindInvalidPair, "swap_fee_percent exceeds max_swap_fee_percent")
		}
	default:
		return pairerrors.Newf(pairerrors.KindInvalidPair, "unknown pair_type kind %d", cfg.PairType.Kind)
	}

	if cfg.BondingCurve.Kind == CurveConstantProduct && cfg.PairType.Kind != PairTypeTrade {
		return pairerrors.New(pairerrors.KindInvalidPair, "constant_product curve requires a trade pair")
	}

	switch cfg.BondingCurve.Kind {
	case CurveLinear:
		if cfg.BondingCurve.Linear == nil {
			return pairerrors.New(pairerrors.KindInvalidPair, "linear curve requires linear state")
		}
	case CurveExponential:
		if cfg.BondingCurve.Exponential == nil {
			return pairerrors.New(pairerrors.KindInvalidPair, "exponential curve requires exponential state")
		}
		if !cfg.BondingCurve.Exponential.Delta.IsDelta() {
			return pairerrors.New(pairerrors.KindInvalidPair, "exponential delta must lie in [0, 1)")
		}
	case CurveConstantProduct:
		// no stored parameters to validate.
	default:
		return pairerrors.Newf(pairerrors.KindInvalidPair, "unknown bonding_curve kind %d", cfg.BondingCurve.Kind)
	}

	return nil
}
