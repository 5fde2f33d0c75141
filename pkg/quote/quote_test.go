package quote_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdkmath "cosmossdk.io/math"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
	"github.com/margined-protocol/infinity-core/pkg/quote"
)

func TestNewSumsToGross(t *testing.T) {
	gross := sdkmath.NewInt(10_000_000)
	fairBurn := infmath.MustNewPercent("0.01")
	royalty := infmath.MustNewPercent("0.05")

	s, ok := quote.New(gross, "ustars", "burn", fairBurn, "royaltyrecv", &royalty, "", nil)
	require.True(t, ok)
	require.Equal(t, sdkmath.NewInt(100_000).String(), s.FairBurn.Amount.String())
	require.Equal(t, sdkmath.NewInt(500_000).String(), s.Royalty.Amount.String())
	require.Equal(t, sdkmath.NewInt(9_400_000).String(), s.SellerAmount.String())
	require.Equal(t, gross.String(), s.Gross().String())
}

func TestNewNoQuoteWhenFeesExceedGross(t *testing.T) {
	gross := sdkmath.NewInt(10)
	fairBurn := infmath.MustNewPercent("0.6")
	royalty := infmath.MustNewPercent("0.6")

	_, ok := quote.New(gross, "ustars", "burn", fairBurn, "royaltyrecv", &royalty, "", nil)
	require.False(t, ok)
}

func TestPayoutOrder(t *testing.T) {
	gross := sdkmath.NewInt(1_000_000)
	fairBurn := infmath.MustNewPercent("0.01")
	royalty := infmath.MustNewPercent("0.02")
	swapFee := infmath.MustNewPercent("0.03")

	s, ok := quote.New(gross, "ustars", "burn", fairBurn, "royaltyrecv", &royalty, "swaprecv", &swapFee)
	require.True(t, ok)

	payments := s.Payout("seller")
	require.Len(t, payments, 4)
	require.Equal(t, "burn", payments[0].Recipient)
	require.Equal(t, "royaltyrecv", payments[1].Recipient)
	require.Equal(t, "swaprecv", payments[2].Recipient)
	require.Equal(t, "seller", payments[3].Recipient)

	total := sdkmath.ZeroInt()
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	require.Equal(t, gross.String(), total.String())
}
