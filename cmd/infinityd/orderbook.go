package main

import (
	"context"
	"fmt"

	cenkaltibackoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/margined-protocol/infinity-core/pkg/backoff"
	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	grpcdial "github.com/margined-protocol/infinity-core/pkg/grpc"
)

// runOrderBookQuery dials the chain and queries the order-book marketplace
// contract directly, the live counterpart to the fixture-backed query-pair
// and best-buy/best-sell commands. It retries the query with the router's
// hot-path backoff schedule, since a CLI invocation has no swap deadline to
// respect but should still not hang indefinitely against a flaky endpoint.
func runOrderBookQuery(logger *zap.Logger, grpcAddr string, useTLS bool, marketplace, collection, tokenID, side string) error {
	if grpcAddr == "" {
		return fmt.Errorf("-grpc is required for order-book commands")
	}
	if marketplace == "" {
		return fmt.Errorf("-marketplace is required for order-book commands")
	}

	conn, err := grpcdial.SetupGRPCConnection(grpcAddr, useTLS)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", grpcAddr, err)
	}
	defer conn.Close() //nolint:errcheck
	logger.Info("dialed order-book marketplace", zap.String("grpc_addr", grpcAddr), zap.String("marketplace", marketplace))

	ob := capabilities.NewOrderBookClient(conn, marketplace)
	ctx := context.Background()

	var offer *capabilities.OrderBookOffer
	op := func() error {
		var queryErr error
		offer, queryErr = queryOrderBookOffer(ctx, ob, side, collection, tokenID)
		return queryErr
	}
	if err := cenkaltibackoff.Retry(op, backoff.NewLightningBackoff(ctx)); err != nil {
		return fmt.Errorf("order-book query failed: %w", err)
	}

	if offer == nil {
		fmt.Printf("no %s offer available\n", side)
		return nil
	}
	fmt.Printf("order-book %s offer: token_id=%s amount=%s denom=%s\n", side, offer.TokenID, offer.Amount, offer.Denom)
	return nil
}

func queryOrderBookOffer(ctx context.Context, ob capabilities.OrderBook, side, collection, tokenID string) (*capabilities.OrderBookOffer, error) {
	switch side {
	case "bid-token":
		return ob.HighestBidForToken(ctx, collection, tokenID)
	case "bid-collection":
		return ob.HighestCollectionBid(ctx, collection)
	case "ask-token":
		return ob.LowestAskForToken(ctx, collection, tokenID)
	case "ask-collection":
		return ob.LowestAsk(ctx, collection)
	default:
		return nil, fmt.Errorf("unknown order-book side %q", side)
	}
}
