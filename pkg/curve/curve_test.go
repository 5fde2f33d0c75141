package curve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/curve"
	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

func TestLinearStepRoundTrip(t *testing.T) {
	spot := sdkmath.NewInt(10_000_000)
	delta := sdkmath.NewInt(1_000_000)

	down, err := curve.LinearStepUserSubmitsNft(spot, delta)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(9_000_000).String(), down.String())

	back, err := curve.LinearStepUserSubmitsTokens(down, delta)
	require.NoError(t, err)
	require.Equal(t, spot.String(), back.String())
}

func TestLinearStepUnderflowReturnsError(t *testing.T) {
	spot := sdkmath.NewInt(500_000)
	delta := sdkmath.NewInt(1_000_000)

	_, err := curve.LinearStepUserSubmitsNft(spot, delta)
	require.Error(t, err)
}

func TestExponentialStep(t *testing.T) {
	spot := sdkmath.NewInt(10_000_000)
	delta := infmath.MustNewPercent("0.12")

	next, err := curve.ExponentialStepUserSubmitsTokens(spot, delta)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(11_200_000).String(), next.String())
}

func TestConstantProductBuyRequiresTwoNfts(t *testing.T) {
	_, err := curve.ConstantProductBuyFromPairPrice(sdkmath.NewInt(100), sdkmath.OneInt())
	require.Error(t, err)

	price, err := curve.ConstantProductBuyFromPairPrice(sdkmath.NewInt(100_000_000), sdkmath.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(11_111_112).String(), price.String())
}

func TestConstantProductSellRequiresOneNft(t *testing.T) {
	_, err := curve.ConstantProductSellToPairPrice(sdkmath.NewInt(100), sdkmath.ZeroInt())
	require.Error(t, err)

	price, err := curve.ConstantProductSellToPairPrice(sdkmath.NewInt(100_000_000), sdkmath.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(9_090_909).String(), price.String())
}
