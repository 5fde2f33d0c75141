package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/config"
)

const fixtureTOML = `
log_level = "info"
tx_retry_count = 5
tx_retry_delay = "2s"

[chain]
prefix = "stars"
gas_denom = "ustars"

[chain.grpc]
address = "grpc.stargaze.example:443"
insecure = false

[chain.rpc]
address = "https://rpc.stargaze.example:443"
websocket_path = "/websocket"

[global]
fair_burn_sink = "stars1fairburn"
royalty_registry = "stars1royaltyregistry"
infinity_index_addr = "stars1infinityindex"
fair_burn_fee_percent = "0.005"
max_royalty_fee_percent = "0.1"
max_swap_fee_percent = "0.05"
default_royalty_fee_percent = "0.025"
pair_creation_fee = "1000000000"

[min_prices]
ustars = "1000000"
uusdc = "500000"

[router]
robust = true
default_deadline = "30s"
`

func TestLoadConfig(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "infinityd-*.toml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(fixtureTOML)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	cfg, err := config.LoadConfig(tmpFile.Name())
	require.NoError(t, err)

	require.Equal(t, "stars", cfg.Chain.Prefix)
	require.Equal(t, "ustars", cfg.Chain.GasDenom)
	require.Equal(t, "grpc.stargaze.example:443", cfg.Chain.GRPC.Address)
	require.Equal(t, "/websocket", cfg.Chain.RPC.WebsocketPath)
	require.Equal(t, 5, cfg.TxRetryCount)
	require.Equal(t, true, cfg.Router.Robust)

	gc := cfg.Global.ToGlobalConfig()
	require.Equal(t, "stars1fairburn", gc.FairBurnSink)
	require.Equal(t, sdkmath.NewInt(1_000_000_000).String(), gc.PairCreationFee.String())
	require.Equal(t, sdkmath.LegacyMustNewDecFromStr("0.005").String(), gc.FairBurnFeePercent.String())

	minPrices := cfg.MinPricesTable()
	require.Equal(t, sdkmath.NewInt(1_000_000).String(), minPrices.MinPriceFor("ustars").String())
	require.True(t, minPrices.MeetsMinimum("ustars", sdkmath.NewInt(1_000_000)))
	require.False(t, minPrices.MeetsMinimum("ustars", sdkmath.NewInt(999_999)))
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "infinityd-*.toml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(fixtureTOML + "\nbogus_key = \"oops\"\n")
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	_, err = config.LoadConfig(tmpFile.Name())
	require.Error(t, err)
}
