// Package config loads the TOML configuration for the infinityd process:
// chain connection info, the GlobalConfig fee/registry parameters, and the
// per-denom minimum price table, following the teacher's pkg/config
// BurntSushi/toml + mitchellh/mapstructure loading pattern.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/margined-protocol/infinity-core/pkg/globalconfig"
)

// GRPCEndpointConfig names a gRPC endpoint the process dials, adapted from
// the teacher's identically named config entry.
type GRPCEndpointConfig struct {
	Address  string `toml:"address"`
	Insecure bool   `toml:"insecure"`
}

// RPCEndpointConfig names a CometBFT RPC/websocket endpoint.
type RPCEndpointConfig struct {
	Address       string `toml:"address"`
	WebsocketPath string `toml:"websocket_path"`
}

// ChainConfig groups the connection parameters for the chain the router and
// indexer watch.
type ChainConfig struct {
	Prefix   string             `toml:"prefix"`
	GasDenom string             `toml:"gas_denom"`
	GRPC     GRPCEndpointConfig `toml:"grpc"`
	RPC      RPCEndpointConfig  `toml:"rpc"`
}

// GlobalConfigFile is the TOML shape of globalconfig.Config: every percent
// and amount field is a quoted string decoded via the Percent/SdkInt helpers
// so large integers and fixed-point fractions never pass through a TOML
// float.
type GlobalConfigFile struct {
	FairBurnSink             string  `toml:"fair_burn_sink"`
	RoyaltyRegistry          string  `toml:"royalty_registry"`
	InfinityIndexAddr        string  `toml:"infinity_index_addr"`
	FairBurnFeePercent       Percent `toml:"fair_burn_fee_percent"`
	MaxRoyaltyFeePercent     Percent `toml:"max_royalty_fee_percent"`
	MaxSwapFeePercent        Percent `toml:"max_swap_fee_percent"`
	DefaultRoyaltyFeePercent Percent `toml:"default_royalty_fee_percent"`
	PairCreationFee          SdkInt  `toml:"pair_creation_fee"`
}

// ToGlobalConfig converts the TOML representation into globalconfig.Config.
func (f GlobalConfigFile) ToGlobalConfig() globalconfig.Config {
	return globalconfig.Config{
		FairBurnSink:             f.FairBurnSink,
		RoyaltyRegistry:          f.RoyaltyRegistry,
		InfinityIndexAddr:        f.InfinityIndexAddr,
		FairBurnFeePercent:       f.FairBurnFeePercent.Value,
		MaxRoyaltyFeePercent:     f.MaxRoyaltyFeePercent.Value,
		MaxSwapFeePercent:        f.MaxSwapFeePercent.Value,
		DefaultRoyaltyFeePercent: f.DefaultRoyaltyFeePercent.Value,
		PairCreationFee:          f.PairCreationFee.Value,
	}
}

// RouterConfig holds router-mode and deadline defaults read from
// infinityd.toml. cmd/infinityd does not read them: router-match takes
// -robust and uses a fixed one-hour deadline.
type RouterConfig struct {
	Robust          bool          `toml:"robust"`
	DefaultDeadline time.Duration `toml:"default_deadline"`
}

// Config is the top-level shape of infinityd.toml.
type Config struct {
	Chain        ChainConfig       `toml:"chain"`
	Global       GlobalConfigFile  `toml:"global"`
	MinPrices    map[string]SdkInt `toml:"min_prices"`
	Router       RouterConfig      `toml:"router"`
	LogLevel     string            `toml:"log_level"`
	TxRetryCount int               `toml:"tx_retry_count"`
	TxRetryDelay time.Duration     `toml:"tx_retry_delay"`
}

// MinPricesTable converts the TOML min_prices map into globalconfig.MinPrices.
func (c Config) MinPricesTable() globalconfig.MinPrices {
	out := make(globalconfig.MinPrices, len(c.MinPrices))
	for denom, v := range c.MinPrices {
		out[denom] = v.Value
	}
	return out
}

// LoadConfig decodes path as TOML into Config, following the teacher's
// toml.DecodeFile loading convention.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s has unrecognized keys: %v", path, undecoded)
	}
	return &cfg, nil
}
