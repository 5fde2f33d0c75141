// Package math holds the fixed-point integer and percentage helpers shared
// by the curve, quote, and pair packages. Every amount in this module is an
// sdkmath.Int; floating point is never used for a value that ends up in a
// quote, a payout, or a stored price.
package math

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// Percent is a fixed-point percentage backed by sdkmath.LegacyDec (18
// decimal places). It is a distinct type, not a bare LegacyDec, so callers
// cannot accidentally pass a raw token amount where a fraction is expected.
type Percent struct {
	Dec sdkmath.LegacyDec
}

// ZeroPercent is the additive identity.
func ZeroPercent() Percent {
	return Percent{Dec: sdkmath.LegacyZeroDec()}
}

// NewPercentFromString parses a decimal string ("0.05" for 5%) into a Percent.
func NewPercentFromString(s string) (Percent, error) {
	d, err := sdkmath.LegacyNewDecFromStr(s)
	if err != nil {
		return Percent{}, fmt.Errorf("invalid percent %q: %w", s, err)
	}
	return Percent{Dec: d}, nil
}

// MustNewPercent parses s and panics on error; for constants and tests.
func MustNewPercent(s string) Percent {
	p, err := NewPercentFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsFraction reports whether p lies in [0, 1], the valid range for a fee
// percent applied to a gross price.
func (p Percent) IsFraction() bool {
	return !p.Dec.IsNil() && !p.Dec.IsNegative() && p.Dec.LTE(sdkmath.LegacyOneDec())
}

// IsDelta reports whether p lies in [0, 1), the valid range for an
// exponential curve's per-trade delta.
func (p Percent) IsDelta() bool {
	return !p.Dec.IsNil() && !p.Dec.IsNegative() && p.Dec.LT(sdkmath.LegacyOneDec())
}

func (p Percent) String() string {
	return p.Dec.String()
}

// CeilMul returns ceil(amount * p), the rounding convention every fee split
// in this module uses: the seller absorbs the residual, never the protocol.
func CeilMul(amount sdkmath.Int, p Percent) sdkmath.Int {
	if amount.IsZero() || p.Dec.IsZero() {
		return sdkmath.ZeroInt()
	}
	return p.Dec.MulInt(amount).Ceil().TruncateInt()
}

// CeilQuo returns ceil(num / denom). denom must be strictly positive.
func CeilQuo(num, denom sdkmath.Int) (sdkmath.Int, error) {
	if denom.IsNil() || !denom.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("division by non-positive denominator")
	}
	quo := num.Quo(denom)
	rem := num.Mod(denom)
	if rem.IsZero() {
		return quo, nil
	}
	return quo.Add(sdkmath.OneInt()), nil
}

// FloorQuo returns floor(num / denom) for non-negative operands. denom must
// be strictly positive. sdkmath.Int.Quo already truncates toward zero, which
// is equivalent to floor for non-negative operands.
func FloorQuo(num, denom sdkmath.Int) (sdkmath.Int, error) {
	if denom.IsNil() || !denom.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("division by non-positive denominator")
	}
	if num.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("floor division of a negative numerator is not supported")
	}
	return num.Quo(denom), nil
}

// SaturatingSub subtracts subtrahend from minuend, floored at zero instead of
// going negative or erroring.
func SaturatingSub(minuend, subtrahend sdkmath.Int) sdkmath.Int {
	if minuend.LT(subtrahend) {
		return sdkmath.ZeroInt()
	}
	return minuend.Sub(subtrahend)
}

// CheckedSub subtracts subtrahend from minuend, returning an error instead of
// a negative result. The curve step functions use this: a would-be negative
// price is a math failure, not a clamp.
func CheckedSub(minuend, subtrahend sdkmath.Int) (sdkmath.Int, error) {
	if minuend.LT(subtrahend) {
		return sdkmath.Int{}, fmt.Errorf("subtraction underflow: %s - %s", minuend, subtrahend)
	}
	return minuend.Sub(subtrahend), nil
}

// Guard runs f and converts an sdkmath overflow panic into an error, so curve
// and quote arithmetic can report "no quote" instead of crashing the caller.
func Guard(f func() sdkmath.Int) (result sdkmath.Int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("math overflow: %v", r)
		}
	}()
	result = f()
	return result, nil
}

// OnePlus returns the decimal (1 + p), used by the exponential curve's step
// and price functions.
func OnePlus(p Percent) sdkmath.LegacyDec {
	return sdkmath.LegacyOneDec().Add(p.Dec)
}
