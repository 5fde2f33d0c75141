package capabilities

import (
	"context"
	"encoding/json"
	"fmt"

	cenkaltibackoff "github.com/cenkalti/backoff/v4"
	wasmdtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"google.golang.org/grpc"

	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/backoff"
	"github.com/margined-protocol/infinity-core/pkg/contracts/base"
	"github.com/margined-protocol/infinity-core/pkg/contracts/cw20"
	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// cw721Client queries and moves NFTs on a CW721-style collection contract,
// following the teacher's pkg/contracts/cw20 split of a base.ContractQueryClient
// wrapper plus JSON smart-query payloads. The field holds the interface, not
// the concrete *base.QueryClient, so tests can inject a fake query client.
type cw721Client struct {
	query base.ContractQueryClient
}

var (
	_ NFTOwnership  = (*cw721Client)(nil)
	_ NFTTransferer = (*cw721Client)(nil)
)

// NewCW721Client builds the combined ownership/transfer capability over conn.
func NewCW721Client(conn grpc.ClientConnInterface) *cw721Client {
	return &cw721Client{query: base.NewQueryClient(conn)}
}

type ownerOfResponse struct {
	Owner string `json:"owner"`
}

// OwnerOf answers the NFT contract's owner_of query.
func (c *cw721Client) OwnerOf(ctx context.Context, collection, tokenID string) (string, error) {
	rawQuery, err := json.Marshal(map[string]any{
		"owner_of": map[string]any{"token_id": tokenID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal owner_of query: %w", err)
	}

	rawResp, err := c.query.QuerySmartContractState(ctx, collection, rawQuery)
	if err != nil {
		return "", fmt.Errorf("failed to query owner_of: %w", err)
	}

	var resp ownerOfResponse
	if err := json.Unmarshal(rawResp, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal owner_of response: %w", err)
	}
	return resp.Owner, nil
}

// TransferNft builds a transfer_nft MsgExecuteContract; the sender must be
// the pair itself (the NFT was already escrowed to it on deposit).
func (c *cw721Client) TransferNft(_ context.Context, collection, tokenID, sender, recipient string) (*wasmdtypes.MsgExecuteContract, error) {
	msg := map[string]any{
		"transfer_nft": map[string]any{
			"recipient": recipient,
			"token_id":  tokenID,
		},
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transfer_nft message: %w", err)
	}

	return &wasmdtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: collection,
		Msg:      msgBytes,
		Funds:    sdktypes.Coins{},
	}, nil
}

// bankCoinTransferer moves reserve-denom tokens via a native bank send, the
// fungible-token transfer primitive spec.md §1 names as out of scope.
type bankCoinTransferer struct{}

var _ CoinTransferer = bankCoinTransferer{}

// NewBankCoinTransferer returns the default CoinTransferer.
func NewBankCoinTransferer() CoinTransferer {
	return bankCoinTransferer{}
}

// TransferCoin builds the banktypes.MsgSend a pair payout leg dispatches when
// the recipient is paid in the reserve denom directly.
func (bankCoinTransferer) TransferCoin(_ context.Context, sender, recipient, denom string, amount sdkmath.Int) (*banktypes.MsgSend, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("transfer amount must be positive, got %s", amount)
	}
	return &banktypes.MsgSend{
		FromAddress: sender,
		ToAddress:   recipient,
		Amount:      sdktypes.NewCoins(sdktypes.NewCoin(denom, amount)),
	}, nil
}

// CW20Transferer moves a reserve denom that is wrapped as a CW20 token
// rather than a native bank coin — a distinct shape from CoinTransferer
// since a CW20 move is a contract execute, not a bank send. cmd/infinityd's
// transfer-coin command uses it when -cw20-contract is set; pkg/pair only
// returns CoinPayout instructions and calls neither transferer.
type CW20Transferer interface {
	TransferCW20(ctx context.Context, contractAddr, sender, recipient string, amount sdkmath.Int) (*wasmdtypes.MsgExecuteContract, error)
}

// cw20Transferer checks the sender's CW20 balance before building the
// transfer, so an undersized balance fails fast with a clear error instead
// of a contract-level revert, following the query-before-mutate shape in
// the teacher's pkg/contracts/mars/creditmanager.
type cw20Transferer struct {
	query cw20.QueryClient
}

var _ CW20Transferer = (*cw20Transferer)(nil)

// NewCW20Transferer builds a CW20Transferer over conn.
func NewCW20Transferer(conn *grpc.ClientConn) CW20Transferer {
	return &cw20Transferer{query: cw20.NewQueryClient(conn)}
}

// TransferCW20 builds the cw20 "transfer" MsgExecuteContract moving amount
// from sender to recipient on the token at contractAddr.
func (c *cw20Transferer) TransferCW20(ctx context.Context, contractAddr, sender, recipient string, amount sdkmath.Int) (*wasmdtypes.MsgExecuteContract, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("transfer amount must be positive, got %s", amount)
	}

	balanceResp, err := c.query.QueryBalance(ctx, contractAddr, sender)
	if err != nil {
		return nil, fmt.Errorf("failed to query cw20 balance: %w", err)
	}
	balance, ok := sdkmath.NewIntFromString(balanceResp.Balance)
	if !ok {
		return nil, fmt.Errorf("invalid cw20 balance %q", balanceResp.Balance)
	}
	if balance.LT(amount) {
		return nil, fmt.Errorf("sender cw20 balance %s is less than transfer amount %s", balance, amount)
	}

	msg := map[string]any{
		"transfer": map[string]any{
			"recipient": recipient,
			"amount":    amount.String(),
		},
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cw20 transfer message: %w", err)
	}
	return &wasmdtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: contractAddr,
		Msg:      msgBytes,
		Funds:    sdktypes.Coins{},
	}, nil
}

// royaltyRegistryClient resolves a collection's royalty entry from an
// external registry contract. Queries are wrapped in the standard backoff
// schedule: a pair consults the registry on every swap (spec.md §3), and a
// transient gRPC failure there should not abort the swap the way a genuine
// "no royalty configured" response does.
type royaltyRegistryClient struct {
	query           base.ContractQueryClient
	registryAddress string
}

var _ RoyaltyRegistry = (*royaltyRegistryClient)(nil)

// NewRoyaltyRegistryClient builds a RoyaltyRegistry backed by registryAddress.
func NewRoyaltyRegistryClient(conn grpc.ClientConnInterface, registryAddress string) *royaltyRegistryClient {
	return &royaltyRegistryClient{query: base.NewQueryClient(conn), registryAddress: registryAddress}
}

type royaltyEntryResponse struct {
	Recipient string `json:"recipient"`
	Percent   string `json:"percent"`
}

// RoyaltyEntry queries the registry's royalty_entry for collection, retrying
// transient failures with pkg/backoff's standard schedule.
func (r *royaltyRegistryClient) RoyaltyEntry(ctx context.Context, collection string) (*RoyaltyEntry, error) {
	rawQuery, err := json.Marshal(map[string]any{
		"royalty_entry": map[string]any{"collection": collection},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal royalty_entry query: %w", err)
	}

	var rawResp []byte
	op := func() error {
		var queryErr error
		rawResp, queryErr = r.query.QuerySmartContractState(ctx, r.registryAddress, rawQuery)
		return queryErr
	}
	if err := cenkaltibackoff.Retry(op, backoff.NewBackoff(ctx)); err != nil {
		return nil, fmt.Errorf("failed to query royalty_entry: %w", err)
	}

	var resp royaltyEntryResponse
	if err := json.Unmarshal(rawResp, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal royalty_entry response: %w", err)
	}
	if resp.Recipient == "" {
		return nil, nil
	}

	pct, err := infmath.NewPercentFromString(resp.Percent)
	if err != nil {
		return nil, fmt.Errorf("invalid royalty percent %q: %w", resp.Percent, err)
	}
	return &RoyaltyEntry{Recipient: resp.Recipient, Percent: pct}, nil
}

// staticFairBurnSink is a FairBurnSink whose address is read from
// GlobalConfig rather than queried; the sink address does not change
// per-swap (spec.md §3 "Immutable per swap").
type staticFairBurnSink struct {
	address string
}

var _ FairBurnSink = staticFairBurnSink{}

// NewStaticFairBurnSink wraps a fixed sink address as a FairBurnSink.
func NewStaticFairBurnSink(address string) FairBurnSink {
	return staticFairBurnSink{address: address}
}

func (s staticFairBurnSink) SinkAddress(_ context.Context) (string, error) {
	return s.address, nil
}

// orderBookClient is the thin adapter to an external order-book marketplace
// contract that the router consults alongside pair quotes (spec.md §4.5).
type orderBookClient struct {
	query           base.ContractQueryClient
	marketplaceAddr string
}

var _ OrderBook = (*orderBookClient)(nil)

// NewOrderBookClient builds an OrderBook adapter over marketplaceAddr.
func NewOrderBookClient(conn grpc.ClientConnInterface, marketplaceAddr string) *orderBookClient {
	return &orderBookClient{query: base.NewQueryClient(conn), marketplaceAddr: marketplaceAddr}
}

type offerResponse struct {
	TokenID string `json:"token_id"`
	Amount  string `json:"amount"`
	Denom   string `json:"denom"`
}

func (o *orderBookClient) queryOffer(ctx context.Context, queryName string, args map[string]any) (*OrderBookOffer, error) {
	rawQuery, err := json.Marshal(map[string]any{queryName: args})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s query: %w", queryName, err)
	}

	rawResp, err := o.query.QuerySmartContractState(ctx, o.marketplaceAddr, rawQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", queryName, err)
	}

	var resp offerResponse
	if err := json.Unmarshal(rawResp, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s response: %w", queryName, err)
	}
	if resp.Amount == "" {
		return nil, nil
	}

	amount, ok := sdkmath.NewIntFromString(resp.Amount)
	if !ok {
		return nil, fmt.Errorf("invalid offer amount %q", resp.Amount)
	}
	return &OrderBookOffer{TokenID: resp.TokenID, Amount: amount, Denom: resp.Denom}, nil
}

// HighestBidForToken queries the highest resting bid on a specific token id.
func (o *orderBookClient) HighestBidForToken(ctx context.Context, collection, tokenID string) (*OrderBookOffer, error) {
	return o.queryOffer(ctx, "highest_bid_for_token", map[string]any{"collection": collection, "token_id": tokenID})
}

// HighestCollectionBid queries the highest resting collection-wide bid.
func (o *orderBookClient) HighestCollectionBid(ctx context.Context, collection string) (*OrderBookOffer, error) {
	return o.queryOffer(ctx, "highest_collection_bid", map[string]any{"collection": collection})
}

// LowestAskForToken queries the lowest resting ask on a specific token id.
func (o *orderBookClient) LowestAskForToken(ctx context.Context, collection, tokenID string) (*OrderBookOffer, error) {
	return o.queryOffer(ctx, "lowest_ask_for_token", map[string]any{"collection": collection, "token_id": tokenID})
}

// LowestAsk queries the lowest resting ask across the collection.
func (o *orderBookClient) LowestAsk(ctx context.Context, collection string) (*OrderBookOffer, error) {
	return o.queryOffer(ctx, "lowest_ask", map[string]any{"collection": collection})
}
