package capabilities

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/margined-protocol/infinity-core/pkg/contracts/cw20"
)

// fakeContractQueryClient implements base.ContractQueryClient without a gRPC
// connection, returning a fixed smart-query response or a fixed error.
type fakeContractQueryClient struct {
	smartResp []byte
	smartErr  error
	rawResp   []byte
	rawErr    error
	calls     int
}

func (f *fakeContractQueryClient) QueryRawContractState(_ context.Context, _ string, _ []byte, _ ...grpc.CallOption) ([]byte, error) {
	return f.rawResp, f.rawErr
}

func (f *fakeContractQueryClient) QuerySmartContractState(_ context.Context, _ string, _ []byte, _ ...grpc.CallOption) ([]byte, error) {
	f.calls++
	return f.smartResp, f.smartErr
}

func TestCW721Client_OwnerOf(t *testing.T) {
	resp, err := json.Marshal(ownerOfResponse{Owner: "stars1owner"})
	require.NoError(t, err)

	fake := &fakeContractQueryClient{smartResp: resp}
	c := &cw721Client{query: fake}

	owner, err := c.OwnerOf(context.Background(), "collection1", "nft1")
	require.NoError(t, err)
	require.Equal(t, "stars1owner", owner)
	require.Equal(t, 1, fake.calls)
}

func TestCW721Client_TransferNft(t *testing.T) {
	c := &cw721Client{query: &fakeContractQueryClient{}}
	msg, err := c.TransferNft(context.Background(), "collection1", "nft1", "stars1pair", "stars1buyer")
	require.NoError(t, err)
	require.Equal(t, "stars1pair", msg.Sender)
	require.Equal(t, "collection1", msg.Contract)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Msg, &body))
	transfer, ok := body["transfer_nft"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "stars1buyer", transfer["recipient"])
	require.Equal(t, "nft1", transfer["token_id"])
}

func TestBankCoinTransferer_TransferCoin(t *testing.T) {
	tr := NewBankCoinTransferer()
	msg, err := tr.TransferCoin(context.Background(), "stars1pair", "stars1seller", "ustars", sdkmath.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, "stars1pair", msg.FromAddress)
	require.Equal(t, "stars1seller", msg.ToAddress)
	require.Equal(t, sdkmath.NewInt(100), msg.Amount.AmountOf("ustars"))

	_, err = tr.TransferCoin(context.Background(), "stars1pair", "stars1seller", "ustars", sdkmath.ZeroInt())
	require.Error(t, err, "a zero-amount transfer must be rejected rather than silently sent")
}

// fakeCW20QueryClient implements cw20.QueryClient to drive cw20Transferer
// without a gRPC connection.
type fakeCW20QueryClient struct {
	balance string
	err     error
}

func (f *fakeCW20QueryClient) QueryBalance(_ context.Context, _, _ string, _ ...grpc.CallOption) (*cw20.BalanceResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &cw20.BalanceResponse{Balance: f.balance}, nil
}

func (f *fakeCW20QueryClient) QueryTokenInfo(_ context.Context, _ string, _ ...grpc.CallOption) (*cw20.TokenInfoResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCW20QueryClient) QueryAllowance(_ context.Context, _, _, _ string, _ ...grpc.CallOption) (*cw20.AllowanceResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCW20QueryClient) Close() error { return nil }

func TestCW20Transferer_TransferCW20_InsufficientBalance(t *testing.T) {
	c := &cw20Transferer{query: &fakeCW20QueryClient{balance: "50"}}
	_, err := c.TransferCW20(context.Background(), "contract1", "stars1sender", "stars1recipient", sdkmath.NewInt(100))
	require.Error(t, err)
}

func TestCW20Transferer_TransferCW20_BuildsMsg(t *testing.T) {
	c := &cw20Transferer{query: &fakeCW20QueryClient{balance: "500"}}
	msg, err := c.TransferCW20(context.Background(), "contract1", "stars1sender", "stars1recipient", sdkmath.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, "contract1", msg.Contract)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Msg, &body))
	transfer, ok := body["transfer"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "stars1recipient", transfer["recipient"])
	require.Equal(t, "100", transfer["amount"])
}

func TestRoyaltyRegistryClient_RoyaltyEntry(t *testing.T) {
	resp, err := json.Marshal(royaltyEntryResponse{Recipient: "stars1creator", Percent: "0.05"})
	require.NoError(t, err)

	fake := &fakeContractQueryClient{smartResp: resp}
	r := &royaltyRegistryClient{query: fake, registryAddress: "registry1"}

	entry, err := r.RoyaltyEntry(context.Background(), "collection1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "stars1creator", entry.Recipient)
}

func TestRoyaltyRegistryClient_RoyaltyEntry_NoneConfigured(t *testing.T) {
	resp, err := json.Marshal(royaltyEntryResponse{})
	require.NoError(t, err)

	fake := &fakeContractQueryClient{smartResp: resp}
	r := &royaltyRegistryClient{query: fake, registryAddress: "registry1"}

	entry, err := r.RoyaltyEntry(context.Background(), "collection1")
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestRoyaltyRegistryClient_RoyaltyEntry_RetriesTransientFailure(t *testing.T) {
	resp, err := json.Marshal(royaltyEntryResponse{Recipient: "stars1creator", Percent: "0.05"})
	require.NoError(t, err)

	fake := &fakeContractQueryClient{smartResp: resp, smartErr: errors.New("transient unavailable")}
	r := &royaltyRegistryClient{query: fake, registryAddress: "registry1"}

	// The backoff schedule's MaxElapsedTime bounds this call; a
	// persistently failing query must surface the wrapped error rather
	// than hang.
	_, err = r.RoyaltyEntry(context.Background(), "collection1")
	require.Error(t, err)
	require.Greater(t, fake.calls, 1, "a transient failure must be retried, not surfaced on the first attempt")
}

func TestStaticFairBurnSink_SinkAddress(t *testing.T) {
	sink := NewStaticFairBurnSink("stars1sink")
	addr, err := sink.SinkAddress(context.Background())
	require.NoError(t, err)
	require.Equal(t, "stars1sink", addr)
}

func TestOrderBookClient_HighestBidForToken(t *testing.T) {
	resp, err := json.Marshal(offerResponse{TokenID: "nft1", Amount: "1000", Denom: "ustars"})
	require.NoError(t, err)

	fake := &fakeContractQueryClient{smartResp: resp}
	ob := &orderBookClient{query: fake, marketplaceAddr: "marketplace1"}

	offer, err := ob.HighestBidForToken(context.Background(), "collection1", "nft1")
	require.NoError(t, err)
	require.NotNil(t, offer)
	require.True(t, offer.Amount.Equal(sdkmath.NewInt(1000)))
}

func TestOrderBookClient_LowestAsk_NoOffer(t *testing.T) {
	resp, err := json.Marshal(offerResponse{})
	require.NoError(t, err)

	fake := &fakeContractQueryClient{smartResp: resp}
	ob := &orderBookClient{query: fake, marketplaceAddr: "marketplace1"}

	offer, err := ob.LowestAsk(context.Background(), "collection1")
	require.NoError(t, err)
	require.Nil(t, offer)
}
