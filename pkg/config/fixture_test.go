package config_test

import (
	"os"
	"path/filepath"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/margined-protocol/infinity-core/pkg/config"
	"github.com/margined-protocol/infinity-core/pkg/pair"
)

const fixtureJSON = `[
  {
    "address": "stars1pairtoken",
    "collection_id": "collection1",
    "denom": "ustars",
    "owner": "stars1owner",
    "is_active": true,
    "pair_type": "token",
    "curve": "linear",
    "spot_price": "1000",
    "delta": "100",
    "total_tokens": "10000000",
    "nft_deposits": []
  },
  {
    "address": "stars1pairtrade",
    "collection_id": "collection1",
    "denom": "ustars",
    "owner": "stars1owner",
    "is_active": true,
    "pair_type": "trade",
    "swap_fee_percent": "0.02",
    "reinvest_tokens": true,
    "reinvest_nfts": false,
    "curve": "constant_product",
    "spot_price": "0",
    "delta": "0",
    "total_tokens": "500000",
    "nft_deposits": ["10", "11"]
  }
]`

func TestLoadFixturePairs_DecodesMixedPairTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o644))

	fixtures, err := config.LoadFixturePairs(path)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	require.Equal(t, "stars1pairtoken", fixtures[0].Address)
	require.True(t, fixtures[0].SpotPrice.Value.Equal(sdkmath.NewInt(1000)))

	require.Equal(t, "trade", fixtures[1].PairType)
	require.Equal(t, []string{"10", "11"}, fixtures[1].NftDeposits)
}

func TestFixturePair_ToPair_BuildsTokenPair(t *testing.T) {
	fixtures, err := config.LoadFixturePairs(writeTemp(t, fixtureJSON))
	require.NoError(t, err)

	p, err := fixtures[0].ToPair()
	require.NoError(t, err)
	require.Equal(t, pair.PairTypeToken, p.Config.PairType.Kind)
	require.True(t, p.TotalTokens.Equal(sdkmath.NewInt(10000000)))
}

func TestFixturePair_ToPair_BuildsTradePairWithReinvestFlags(t *testing.T) {
	fixtures, err := config.LoadFixturePairs(writeTemp(t, fixtureJSON))
	require.NoError(t, err)

	p, err := fixtures[1].ToPair()
	require.NoError(t, err)
	require.Equal(t, pair.PairTypeTrade, p.Config.PairType.Kind)
	require.True(t, p.Config.PairType.Trade.ReinvestTokens)
	require.False(t, p.Config.PairType.Trade.ReinvestNfts)
	require.Equal(t, pair.CurveConstantProduct, p.Config.BondingCurve.Kind)
	require.Len(t, p.NftDeposits, 2)
}

func TestFixturePair_ToPair_RejectsUnknownPairType(t *testing.T) {
	bad := `[{"address":"a","collection_id":"c","denom":"d","owner":"o","pair_type":"bogus","curve":"linear","spot_price":"1","delta":"1","total_tokens":"0"}]`
	fixtures, err := config.LoadFixturePairs(writeTemp(t, bad))
	require.NoError(t, err)

	_, err = fixtures[0].ToPair()
	require.Error(t, err)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
