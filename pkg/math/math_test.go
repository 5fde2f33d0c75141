package math_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdkmath "cosmossdk.io/math"

	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

func TestCeilMul(t *testing.T) {
	cases := []struct {
		name     string
		amount   int64
		pct      string
		expected int64
	}{
		{"exact", 10_000_000, "0.01", 100_000},
		{"rounds up", 100, "0.015", 2},
		{"zero pct", 100, "0", 0},
		{"zero amount", 0, "0.5", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pct := infmath.MustNewPercent(tc.pct)
			got := infmath.CeilMul(sdkmath.NewInt(tc.amount), pct)
			require.Equal(t, sdkmath.NewInt(tc.expected).String(), got.String())
		})
	}
}

func TestCeilQuo(t *testing.T) {
	got, err := infmath.CeilQuo(sdkmath.NewInt(100_000_000), sdkmath.NewInt(9))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(11_111_112).String(), got.String())

	_, err = infmath.CeilQuo(sdkmath.NewInt(100), sdkmath.ZeroInt())
	require.Error(t, err)
}

func TestFloorQuo(t *testing.T) {
	got, err := infmath.FloorQuo(sdkmath.NewInt(100_000_000), sdkmath.NewInt(11))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(9_090_909).String(), got.String())
}

func TestSaturatingSub(t *testing.T) {
	require.Equal(t, sdkmath.ZeroInt().String(), infmath.SaturatingSub(sdkmath.NewInt(5), sdkmath.NewInt(10)).String())
	require.Equal(t, sdkmath.NewInt(3).String(), infmath.SaturatingSub(sdkmath.NewInt(8), sdkmath.NewInt(5)).String())
}

func TestPercentValidity(t *testing.T) {
	require.True(t, infmath.MustNewPercent("0.99").IsDelta())
	require.False(t, infmath.MustNewPercent("1").IsDelta())
	require.True(t, infmath.MustNewPercent("1").IsFraction())
	require.False(t, infmath.MustNewPercent("1.01").IsFraction())
}
