package router_test

import (
	"context"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	pairerrors "github.com/margined-protocol/infinity-core/pkg/errors"
	"github.com/margined-protocol/infinity-core/pkg/index"
	"github.com/margined-protocol/infinity-core/pkg/router"
	infinitytime "github.com/margined-protocol/infinity-core/pkg/time"
)

// fakeOrderBook lets each test control what bids/asks are resting, without
// standing up a wasmd querier.
type fakeOrderBook struct {
	bidForToken   map[string]*capabilities.OrderBookOffer
	collectionBid *capabilities.OrderBookOffer
	askForToken   map[string]*capabilities.OrderBookOffer
	collectionAsk *capabilities.OrderBookOffer
}

func newFakeOrderBook() *fakeOrderBook {
	return &fakeOrderBook{
		bidForToken: make(map[string]*capabilities.OrderBookOffer),
		askForToken: make(map[string]*capabilities.OrderBookOffer),
	}
}

func (f *fakeOrderBook) HighestBidForToken(_ context.Context, _, tokenID string) (*capabilities.OrderBookOffer, error) {
	return f.bidForToken[tokenID], nil
}

func (f *fakeOrderBook) HighestCollectionBid(_ context.Context, _ string) (*capabilities.OrderBookOffer, error) {
	return f.collectionBid, nil
}

func (f *fakeOrderBook) LowestAskForToken(_ context.Context, _, tokenID string) (*capabilities.OrderBookOffer, error) {
	return f.askForToken[tokenID], nil
}

func (f *fakeOrderBook) LowestAsk(_ context.Context, _ string) (*capabilities.OrderBookOffer, error) {
	return f.collectionAsk, nil
}

// fakeOwnership and fakePairBook stub the two pair-facing capabilities the
// router consults for "buy a specific NFT" offers.
type fakeOwnership struct {
	owner map[string]string
}

func (f *fakeOwnership) OwnerOf(_ context.Context, _, tokenID string) (string, error) {
	return f.owner[tokenID], nil
}

type fakePairBook struct {
	pairs     map[string]bool
	buyQuotes map[string]sdkmath.Int
	deposits  map[string]string
}

func (f *fakePairBook) IsPair(_ context.Context, address string) (bool, error) {
	return f.pairs[address], nil
}

func (f *fakePairBook) BuyFromPairQuote(_ context.Context, pairAddress string) (sdkmath.Int, bool, error) {
	price, ok := f.buyQuotes[pairAddress]
	return price, ok, nil
}

func (f *fakePairBook) FirstNftDeposit(_ context.Context, pairAddress string) (string, bool, error) {
	id, ok := f.deposits[pairAddress]
	return id, ok, nil
}

func TestFindHighestSellToOffer_PrefersOrderBookOnTie(t *testing.T) {
	ob := newFakeOrderBook()
	ob.bidForToken["nft1"] = &capabilities.OrderBookOffer{TokenID: "nft1", Amount: sdkmath.NewInt(100)}

	idx := index.New()
	idx.Upsert("collection1", index.SideSell, "pairA", sdkmath.NewInt(100))

	offer, err := router.FindHighestSellToOffer(context.Background(), ob, idx, "collection1", router.NftOrder{
		TokenID: "nft1", MinAmount: sdkmath.NewInt(1),
	})
	require.NoError(t, err)
	require.NotNil(t, offer)
	require.Equal(t, router.SourceOrderBook, offer.Source)
}

func TestFindHighestSellToOffer_BelowMinAmountReturnsNil(t *testing.T) {
	ob := newFakeOrderBook()
	idx := index.New()
	idx.Upsert("collection1", index.SideSell, "pairA", sdkmath.NewInt(50))

	offer, err := router.FindHighestSellToOffer(context.Background(), ob, idx, "collection1", router.NftOrder{
		TokenID: "nft1", MinAmount: sdkmath.NewInt(100),
	})
	require.NoError(t, err)
	require.Nil(t, offer)
}

func TestFindLowestBuySpecificNftOffer_PairOwnedRoutesToPairQuote(t *testing.T) {
	ownership := &fakeOwnership{owner: map[string]string{"nft1": "pairA"}}
	pairs := &fakePairBook{
		pairs:     map[string]bool{"pairA": true},
		buyQuotes: map[string]sdkmath.Int{"pairA": sdkmath.NewInt(900)},
	}
	ob := newFakeOrderBook()

	offer, err := router.FindLowestBuySpecificNftOffer(context.Background(), ownership, pairs, ob, "collection1", router.NftOrder{
		TokenID: "nft1", MaxAmount: sdkmath.NewInt(1000),
	})
	require.NoError(t, err)
	require.NotNil(t, offer)
	require.Equal(t, router.SourcePair, offer.Source)
	require.Equal(t, "pairA", offer.Address)
}

func TestFindLowestBuySpecificNftOffer_NonPairOwnerUsesOrderBook(t *testing.T) {
	ownership := &fakeOwnership{owner: map[string]string{"nft1": "wallet1"}}
	pairs := &fakePairBook{pairs: map[string]bool{}}
	ob := newFakeOrderBook()
	ob.askForToken["nft1"] = &capabilities.OrderBookOffer{TokenID: "nft1", Amount: sdkmath.NewInt(500)}

	offer, err := router.FindLowestBuySpecificNftOffer(context.Background(), ownership, pairs, ob, "collection1", router.NftOrder{
		TokenID: "nft1", MaxAmount: sdkmath.NewInt(1000),
	})
	require.NoError(t, err)
	require.NotNil(t, offer)
	require.Equal(t, router.SourceOrderBook, offer.Source)
}

func TestFindLowestBuyAnyNftOffer_ResolvesWinningPairFirstDeposit(t *testing.T) {
	ob := newFakeOrderBook()
	ob.collectionAsk = &capabilities.OrderBookOffer{TokenID: "nftX", Amount: sdkmath.NewInt(900)}

	idx := index.New()
	idx.Upsert("collection1", index.SideBuy, "pairA", sdkmath.NewInt(800))

	pairs := &fakePairBook{deposits: map[string]string{"pairA": "nft7"}}

	offer, err := router.FindLowestBuyAnyNftOffer(context.Background(), pairs, ob, idx, "collection1", sdkmath.NewInt(1000))
	require.NoError(t, err)
	require.NotNil(t, offer)
	require.Equal(t, router.SourcePair, offer.Source)
	require.Equal(t, "nft7", offer.TokenID)
}

func TestSwapNftsForTokens_StrictModeAbortsOnFirstUnmatchedOrder(t *testing.T) {
	ob := newFakeOrderBook()
	ob.bidForToken["nft1"] = &capabilities.OrderBookOffer{TokenID: "nft1", Amount: sdkmath.NewInt(500)}
	// nft2 has no resting bid and no pair quote.

	idx := index.New()

	orders := []router.NftOrder{
		{TokenID: "nft1", MinAmount: sdkmath.NewInt(1)},
		{TokenID: "nft2", MinAmount: sdkmath.NewInt(1)},
	}

	result, err := router.SwapNftsForTokens(context.Background(), ob, idx, "collection1", orders, router.SwapParams{Robust: false}, time.Time{})
	require.Error(t, err)
	require.True(t, pairerrors.Is(err, pairerrors.KindInvalidPairQuote))
	require.Nil(t, result)
}

func TestSwapNftsForTokens_RobustModeSkipsUnmatchedOrder(t *testing.T) {
	ob := newFakeOrderBook()
	ob.bidForToken["nft1"] = &capabilities.OrderBookOffer{TokenID: "nft1", Amount: sdkmath.NewInt(500)}

	idx := index.New()

	orders := []router.NftOrder{
		{TokenID: "nft1", MinAmount: sdkmath.NewInt(1)},
		{TokenID: "nft2", MinAmount: sdkmath.NewInt(1)},
	}

	result, err := router.SwapNftsForTokens(context.Background(), ob, idx, "collection1", orders, router.SwapParams{Robust: true}, time.Time{})
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	require.NotNil(t, result.Matches[0].Offer)
	require.True(t, result.Matches[1].Skipped)
}

func TestSwapNftsForTokens_RejectsDuplicateTokenIDs(t *testing.T) {
	ob := newFakeOrderBook()
	idx := index.New()

	orders := []router.NftOrder{
		{TokenID: "nft1", MinAmount: sdkmath.NewInt(1)},
		{TokenID: "nft1", MinAmount: sdkmath.NewInt(1)},
	}

	_, err := router.SwapNftsForTokens(context.Background(), ob, idx, "collection1", orders, router.SwapParams{}, time.Time{})
	require.Error(t, err)
	require.True(t, pairerrors.Is(err, pairerrors.KindInvalidInput))
}

func TestSwapTokensForSpecificNfts_RejectsDuplicateTokenIDsInBuyDirectionToo(t *testing.T) {
	ownership := &fakeOwnership{owner: map[string]string{}}
	pairs := &fakePairBook{}
	ob := newFakeOrderBook()

	orders := []router.NftOrder{
		{TokenID: "nft1", MaxAmount: sdkmath.NewInt(100)},
		{TokenID: "nft1", MaxAmount: sdkmath.NewInt(100)},
	}

	_, _, err := router.SwapTokensForSpecificNfts(context.Background(), ownership, pairs, ob, "collection1", orders, sdkmath.NewInt(200), router.SwapParams{}, time.Time{})
	require.Error(t, err)
	require.True(t, pairerrors.Is(err, pairerrors.KindInvalidInput))
}

func TestSwapTokensForSpecificNfts_RefundsSurplusInRobustMode(t *testing.T) {
	ownership := &fakeOwnership{owner: map[string]string{"nft1": "pairA"}}
	pairs := &fakePairBook{
		pairs:     map[string]bool{"pairA": true},
		buyQuotes: map[string]sdkmath.Int{"pairA": sdkmath.NewInt(900)},
	}
	ob := newFakeOrderBook()

	orders := []router.NftOrder{
		{TokenID: "nft1", MaxAmount: sdkmath.NewInt(1000)},
		{TokenID: "nft2", MaxAmount: sdkmath.NewInt(1000)}, // unmatched, no owner
	}

	result, refund, err := router.SwapTokensForSpecificNfts(context.Background(), ownership, pairs, ob, "collection1", orders, sdkmath.NewInt(1900), router.SwapParams{Robust: true}, time.Time{})
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	require.True(t, refund.Equal(sdkmath.NewInt(1000)))
}

func TestSwapTokensForSpecificNfts_StrictModeRejectsSurplus(t *testing.T) {
	ownership := &fakeOwnership{owner: map[string]string{"nft1": "pairA"}}
	pairs := &fakePairBook{
		pairs:     map[string]bool{"pairA": true},
		buyQuotes: map[string]sdkmath.Int{"pairA": sdkmath.NewInt(900)},
	}
	ob := newFakeOrderBook()

	orders := []router.NftOrder{{TokenID: "nft1", MaxAmount: sdkmath.NewInt(1000)}}

	_, _, err := router.SwapTokensForSpecificNfts(context.Background(), ownership, pairs, ob, "collection1", orders, sdkmath.NewInt(1000), router.SwapParams{Robust: false}, time.Time{})
	require.Error(t, err)
	require.True(t, pairerrors.Is(err, pairerrors.KindInsufficientFunds))
}

func TestSwapDeadline_ExpiredParamsReject(t *testing.T) {
	ob := newFakeOrderBook()
	idx := index.New()

	past := infinitytime.UnixNanoTime(time.Now().Add(-time.Hour))
	_, err := router.SwapNftsForTokens(context.Background(), ob, idx, "collection1", nil, router.SwapParams{Deadline: past}, time.Now())
	require.Error(t, err)
	require.True(t, pairerrors.Is(err, pairerrors.KindDeadlinePassed))
}
