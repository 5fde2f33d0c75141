// Command infinityd is a thin CLI that loads a fixture set of pairs and
// builds the collection index. query-pair prints one pair's snapshot,
// best-buy/best-sell answer directly from the index, and router-match runs pkg/router's
// strict/robust swap entrypoints against the same fixtures, exercising its
// tie-break and fund-accounting logic. order-book-bid/order-book-ask,
// query-royalty, transfer-nft, and transfer-coin dial a live gRPC endpoint
// and exercise the wasmd capability adapters directly, independent of the
// fixture file — this is a runnable harness for the core and its
// capability adapters, not a chain daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	"github.com/margined-protocol/infinity-core/pkg/config"
	"github.com/margined-protocol/infinity-core/pkg/globalconfig"
	grpcdial "github.com/margined-protocol/infinity-core/pkg/grpc"
	"github.com/margined-protocol/infinity-core/pkg/index"
	infmath "github.com/margined-protocol/infinity-core/pkg/math"
	"github.com/margined-protocol/infinity-core/pkg/pair"
)

func main() {
	configPath := flag.String("config", "", "path to infinityd.toml (optional)")
	fixturePath := flag.String("fixtures", "", "path to a JSON fixture file of pairs")
	collection := flag.String("collection", "", "collection id to query")
	command := flag.String("cmd", "query-pair", "one of: query-pair, best-buy, best-sell, router-match, order-book-bid, order-book-ask, query-royalty, transfer-nft, transfer-coin")
	pairAddr := flag.String("pair", "", "pair address (query-pair command)")
	maxAmount := flag.String("max-amount", "0", "max amount for best-buy")
	tokenID := flag.String("token-id", "", "token id (order-book-bid/order-book-ask/transfer-nft with a specific token)")
	grpcAddr := flag.String("grpc", "", "gRPC endpoint to dial for order-book-bid/order-book-ask/query-royalty/transfer-nft/transfer-coin, and optionally for fixture loading's royalty lookup")
	useTLS := flag.Bool("tls", false, "use TLS for the gRPC connection")
	marketplace := flag.String("marketplace", "", "order-book marketplace contract address")
	royaltyRegistry := flag.String("royalty-registry", "", "royalty registry contract address; when set with -grpc, fixture pairs are recomputed with live royalty entries instead of none")
	sender := flag.String("sender", "", "sender address (transfer-nft/transfer-coin)")
	recipient := flag.String("recipient", "", "recipient address (transfer-nft/transfer-coin)")
	cw20Contract := flag.String("cw20-contract", "", "cw20 contract address (transfer-coin); omit for a native bank send")
	denom := flag.String("denom", "", "coin denom (transfer-coin)")
	transferAmount := flag.String("amount", "0", "transfer amount (transfer-coin)")
	side := flag.String("side", "", "router-match side: sell-to-pair, buy-specific, or buy-any")
	tokenIDs := flag.String("token-ids", "", "comma-separated token ids (router-match)")
	amounts := flag.String("amounts", "", "comma-separated amounts aligned with -token-ids, or max-amount list for buy-any (router-match)")
	totalSent := flag.String("total-sent", "0", "funds sent by the taker (router-match buy-specific)")
	robust := flag.Bool("robust", false, "robust mode: skip unmatched orders instead of aborting (router-match)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("failed to load config", zap.Error(err))
		}
		logger.Info("loaded config", zap.String("log_level", cfg.LogLevel), zap.String("chain_prefix", cfg.Chain.Prefix))
	}

	switch *command {
	case "order-book-bid", "order-book-ask":
		obSide := map[string]string{"order-book-bid": "bid-collection", "order-book-ask": "ask-collection"}[*command]
		if *tokenID != "" {
			obSide = map[string]string{"order-book-bid": "bid-token", "order-book-ask": "ask-token"}[*command]
		}
		if err := runOrderBookQuery(logger, *grpcAddr, *useTLS, *marketplace, *collection, *tokenID, obSide); err != nil {
			logger.Fatal("order-book query failed", zap.Error(err))
		}
		return

	case "query-royalty":
		if err := runQueryRoyalty(logger, *grpcAddr, *useTLS, *royaltyRegistry, *collection); err != nil {
			logger.Fatal("query-royalty failed", zap.Error(err))
		}
		return

	case "transfer-nft":
		if err := runTransferNft(logger, *grpcAddr, *useTLS, *collection, *tokenID, *sender, *recipient); err != nil {
			logger.Fatal("transfer-nft failed", zap.Error(err))
		}
		return

	case "transfer-coin":
		if err := runTransferCoin(logger, *grpcAddr, *useTLS, *cw20Contract, *sender, *recipient, *denom, *transferAmount); err != nil {
			logger.Fatal("transfer-coin failed", zap.Error(err))
		}
		return
	}

	if *fixturePath == "" {
		logger.Fatal("-fixtures is required")
	}
	fixtures, err := config.LoadFixturePairs(*fixturePath)
	if err != nil {
		logger.Fatal("failed to load fixtures", zap.Error(err))
	}

	var registryClient capabilities.RoyaltyRegistry
	if *royaltyRegistry != "" && *grpcAddr != "" {
		conn, err := grpcdial.SetupGRPCConnection(*grpcAddr, *useTLS)
		if err != nil {
			logger.Fatal("failed to dial royalty registry", zap.Error(err))
		}
		defer conn.Close() //nolint:errcheck
		registryClient = capabilities.NewRoyaltyRegistryClient(conn, *royaltyRegistry)
	}

	pairs := make(map[string]*pair.Pair, len(fixtures))
	idx := index.New()
	for _, f := range fixtures {
		p, err := f.ToPair()
		if err != nil {
			logger.Fatal("failed to build pair from fixture", zap.String("address", f.Address), zap.Error(err))
		}

		var royalty *capabilities.RoyaltyEntry
		if registryClient != nil {
			royalty, err = registryClient.RoyaltyEntry(context.Background(), f.CollectionID)
			if err != nil {
				logger.Fatal("failed to query royalty entry", zap.String("collection", f.CollectionID), zap.Error(err))
			}
		}
		p.Recompute(globalconfig.Config{FairBurnFeePercent: infmath.ZeroPercent()}, nil, royalty)
		pairs[f.Address] = p
		idx.Apply(toIndexUpdate(p.BuildIndexUpdate(f.Address)))
		logger.Info("loaded pair", zap.String("address", f.Address), zap.String("collection", f.CollectionID))
	}

	switch *command {
	case "query-pair":
		p, ok := pairs[*pairAddr]
		if !ok {
			logger.Fatal("pair not found", zap.String("address", *pairAddr))
		}
		snap := p.Query()
		fmt.Printf("pair %s: total_tokens=%s total_nfts=%d sell_to_pair_quote=%q buy_from_pair_quote=%q\n",
			*pairAddr, snap.TotalTokens, snap.TotalNfts, snap.SellToPairQuote, snap.BuyFromPairQuote)

	case "best-sell":
		entries := idx.SellToPairQuotes(*collection, 1, "")
		if len(entries) == 0 {
			fmt.Println("no sell-to-pair quote available")
			return
		}
		fmt.Printf("best sell-to-pair offer: pair=%s price=%s\n", entries[0].PairAddress, entries[0].Price)

	case "router-match":
		if err := runRouterMatch(pairs, idx, *side, *collection, *tokenIDs, *amounts, *totalSent, *robust); err != nil {
			logger.Fatal("router-match failed", zap.Error(err))
		}

	case "best-buy":
		amount, ok := sdkmath.NewIntFromString(*maxAmount)
		if !ok {
			logger.Fatal("invalid -max-amount", zap.String("value", *maxAmount))
		}
		entries := idx.BuyFromPairQuotes(*collection, 1, "")
		if len(entries) == 0 || entries[0].Price.GT(amount) {
			fmt.Println("no buy-from-pair offer meets max_amount")
			return
		}
		fmt.Printf("best buy-from-pair offer: pair=%s price=%s\n", entries[0].PairAddress, entries[0].Price)

	default:
		logger.Fatal("unknown -cmd", zap.String("cmd", *command))
	}
}

func toIndexUpdate(u *pair.IndexUpdate) index.PairUpdate {
	return index.PairUpdate{
		Collection:       u.Collection,
		PairAddress:      u.PairAddress,
		SellToPairQuote:  u.SellToPairQuote,
		BuyFromPairQuote: u.BuyFromPairQuote,
	}
}
