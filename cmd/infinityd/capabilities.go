package main

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	grpcdial "github.com/margined-protocol/infinity-core/pkg/grpc"
)

// runQueryRoyalty dials the chain and queries the royalty registry contract
// for collection's royalty entry, the live counterpart to -marketplace's
// order-book commands.
func runQueryRoyalty(logger *zap.Logger, grpcAddr string, useTLS bool, registry, collection string) error {
	if grpcAddr == "" {
		return fmt.Errorf("-grpc is required for query-royalty")
	}
	if registry == "" {
		return fmt.Errorf("-royalty-registry is required for query-royalty")
	}

	conn, err := grpcdial.SetupGRPCConnection(grpcAddr, useTLS)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", grpcAddr, err)
	}
	defer conn.Close() //nolint:errcheck
	logger.Info("dialed royalty registry", zap.String("grpc_addr", grpcAddr), zap.String("registry", registry))

	registryClient := capabilities.NewRoyaltyRegistryClient(conn, registry)
	entry, err := registryClient.RoyaltyEntry(context.Background(), collection)
	if err != nil {
		return fmt.Errorf("royalty query failed: %w", err)
	}
	if entry == nil {
		fmt.Println("no royalty entry configured")
		return nil
	}
	fmt.Printf("royalty entry: recipient=%s percent=%s\n", entry.Recipient, entry.Percent)
	return nil
}

// runTransferNft dials the chain and builds (without broadcasting) the
// transfer_nft MsgExecuteContract an infinity pair would send on a
// buy-from-pair swap, exercising the cw721 transfer capability adapter.
func runTransferNft(logger *zap.Logger, grpcAddr string, useTLS bool, collection, tokenID, sender, recipient string) error {
	if grpcAddr == "" {
		return fmt.Errorf("-grpc is required for transfer-nft")
	}
	if collection == "" || tokenID == "" || sender == "" || recipient == "" {
		return fmt.Errorf("-collection, -token-id, -sender, and -recipient are all required for transfer-nft")
	}

	conn, err := grpcdial.SetupGRPCConnection(grpcAddr, useTLS)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", grpcAddr, err)
	}
	defer conn.Close() //nolint:errcheck
	logger.Info("dialed cw721 collection", zap.String("grpc_addr", grpcAddr), zap.String("collection", collection))

	nft := capabilities.NewCW721Client(conn)
	owner, err := nft.OwnerOf(context.Background(), collection, tokenID)
	if err != nil {
		return fmt.Errorf("owner_of query failed: %w", err)
	}
	if owner != sender {
		return fmt.Errorf("token %s is owned by %s, not %s", tokenID, owner, sender)
	}

	msg, err := nft.TransferNft(context.Background(), collection, tokenID, sender, recipient)
	if err != nil {
		return fmt.Errorf("failed to build transfer_nft message: %w", err)
	}
	fmt.Printf("transfer_nft message: sender=%s contract=%s recipient=%s token_id=%s\n", msg.Sender, msg.Contract, recipient, tokenID)
	return nil
}

// runTransferCoin builds (without broadcasting) the payout leg message an
// asset recipient would receive for amount of denom: a bank MsgSend when
// denom is a native coin, or a cw20 "transfer" MsgExecuteContract when
// -cw20-contract names the reserve denom's wrapping contract instead.
func runTransferCoin(logger *zap.Logger, grpcAddr string, useTLS bool, cw20Contract, sender, recipient, denom, amountStr string) error {
	amount, ok := sdkmath.NewIntFromString(amountStr)
	if !ok {
		return fmt.Errorf("invalid -amount %q", amountStr)
	}

	if cw20Contract == "" {
		tr := capabilities.NewBankCoinTransferer()
		msg, err := tr.TransferCoin(context.Background(), sender, recipient, denom, amount)
		if err != nil {
			return fmt.Errorf("failed to build bank transfer: %w", err)
		}
		fmt.Printf("bank MsgSend: from=%s to=%s amount=%s\n", msg.FromAddress, msg.ToAddress, msg.Amount)
		return nil
	}

	if grpcAddr == "" {
		return fmt.Errorf("-grpc is required when -cw20-contract is set")
	}
	conn, err := grpcdial.SetupGRPCConnection(grpcAddr, useTLS)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", grpcAddr, err)
	}
	defer conn.Close() //nolint:errcheck
	logger.Info("dialed cw20 contract", zap.String("grpc_addr", grpcAddr), zap.String("cw20_contract", cw20Contract))

	tr := capabilities.NewCW20Transferer(conn)
	msg, err := tr.TransferCW20(context.Background(), cw20Contract, sender, recipient, amount)
	if err != nil {
		return fmt.Errorf("failed to build cw20 transfer: %w", err)
	}
	fmt.Printf("cw20 transfer MsgExecuteContract: sender=%s contract=%s\n", msg.Sender, msg.Contract)
	return nil
}
