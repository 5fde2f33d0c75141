// Package quote builds the QuoteSummary that splits a gross swap price into
// protocol fee, royalty, optional swap fee, and seller proceeds, per
// spec.md §4.2. The only rounding rule in this package is: every fee rounds
// up (ceiling), and the seller absorbs the residual so that
// fair_burn + royalty + swap + seller == gross exactly.
package quote

import (
	sdkmath "cosmossdk.io/math"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// TokenPayment is a single outgoing transfer leg of a payout plan.
type TokenPayment struct {
	Recipient string
	Amount    sdkmath.Int
}

// Summary is the pre-split breakdown of a gross price. FairBurn is always
// present; Royalty and Swap are optional legs.
type Summary struct {
	Denom        string
	FairBurn     TokenPayment
	Royalty      *TokenPayment
	Swap         *TokenPayment
	SellerAmount sdkmath.Int
}

// Gross recomputes the total from the parts; by construction this always
// equals the gross price New was given.
func (s *Summary) Gross() sdkmath.Int {
	total := s.FairBurn.Amount.Add(s.SellerAmount)
	if s.Royalty != nil {
		total = total.Add(s.Royalty.Amount)
	}
	if s.Swap != nil {
		total = total.Add(s.Swap.Amount)
	}
	return total
}

// Total is an alias for Gross kept for callers that think of it as "the
// amount a buy-from-pair taker must pay" (spec.md's QuoteSummary::total()).
func (s *Summary) Total() sdkmath.Int {
	return s.Gross()
}

// New splits gross into fair-burn, royalty, swap, and seller legs. Every fee
// percent is applied with ceiling rounding; if the fees sum to more than
// gross, New returns (nil, false) — "no quote is produced" per spec.md §4.2,
// not an underflowing or panicking subtraction.
func New(
	gross sdkmath.Int,
	denom string,
	fairBurnRecipient string,
	fairBurnFeePercent infmath.Percent,
	royaltyRecipient string,
	royaltyFeePercent *infmath.Percent,
	swapRecipient string,
	swapFeePercent *infmath.Percent,
) (*Summary, bool) {
	fairBurnAmount := infmath.CeilMul(gross, fairBurnFeePercent)

	var royalty *TokenPayment
	if royaltyFeePercent != nil {
		royalty = &TokenPayment{Recipient: royaltyRecipient, Amount: infmath.CeilMul(gross, *royaltyFeePercent)}
	}

	var swap *TokenPayment
	if swapFeePercent != nil {
		swap = &TokenPayment{Recipient: swapRecipient, Amount: infmath.CeilMul(gross, *swapFeePercent)}
	}

	remaining := gross
	var ok bool
	remaining, ok = trySub(remaining, fairBurnAmount)
	if !ok {
		return nil, false
	}
	if royalty != nil {
		remaining, ok = trySub(remaining, royalty.Amount)
		if !ok {
			return nil, false
		}
	}
	if swap != nil {
		remaining, ok = trySub(remaining, swap.Amount)
		if !ok {
			return nil, false
		}
	}

	return &Summary{
		Denom:        denom,
		FairBurn:     TokenPayment{Recipient: fairBurnRecipient, Amount: fairBurnAmount},
		Royalty:      royalty,
		Swap:         swap,
		SellerAmount: remaining,
	}, true
}

func trySub(minuend, subtrahend sdkmath.Int) (sdkmath.Int, bool) {
	if minuend.LT(subtrahend) {
		return sdkmath.Int{}, false
	}
	return minuend.Sub(subtrahend), true
}

// Payout returns the outgoing transfer instructions in the fixed order the
// external contract documents: fair-burn, royalty (if present), swap (if
// present), seller. sellerRecipient overrides the recipient on the seller
// leg (the taker on a sell-to-pair swap, the pair/asset-recipient on a
// buy-from-pair swap, or the pair itself when reinvesting).
func (s *Summary) Payout(sellerRecipient string) []TokenPayment {
	payments := make([]TokenPayment, 0, 4)
	payments = append(payments, s.FairBurn)
	if s.Royalty != nil {
		payments = append(payments, *s.Royalty)
	}
	if s.Swap != nil {
		payments = append(payments, *s.Swap)
	}
	payments = append(payments, TokenPayment{Recipient: sellerRecipient, Amount: s.SellerAmount})
	return payments
}
