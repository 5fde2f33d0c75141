package index_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/margined-protocol/infinity-core/pkg/index"
)

func TestBuyFromPairQuotes_AscendingByPrice(t *testing.T) {
	idx := index.New()
	idx.Upsert("collection1", index.SideBuy, "pairC", sdkmath.NewInt(300))
	idx.Upsert("collection1", index.SideBuy, "pairA", sdkmath.NewInt(100))
	idx.Upsert("collection1", index.SideBuy, "pairB", sdkmath.NewInt(200))

	entries := idx.BuyFromPairQuotes("collection1", 10, "")
	require.Len(t, entries, 3)
	require.Equal(t, "pairA", entries[0].PairAddress)
	require.Equal(t, "pairB", entries[1].PairAddress)
	require.Equal(t, "pairC", entries[2].PairAddress)
}

func TestSellToPairQuotes_DescendingByPrice(t *testing.T) {
	idx := index.New()
	idx.Upsert("collection1", index.SideSell, "pairA", sdkmath.NewInt(100))
	idx.Upsert("collection1", index.SideSell, "pairB", sdkmath.NewInt(300))
	idx.Upsert("collection1", index.SideSell, "pairC", sdkmath.NewInt(200))

	entries := idx.SellToPairQuotes("collection1", 10, "")
	require.Len(t, entries, 3)
	require.Equal(t, "pairB", entries[0].PairAddress)
	require.Equal(t, "pairC", entries[1].PairAddress)
	require.Equal(t, "pairA", entries[2].PairAddress)
}

func TestUpsert_ReplacesExistingEntryForSamePair(t *testing.T) {
	idx := index.New()
	idx.Upsert("collection1", index.SideBuy, "pairA", sdkmath.NewInt(100))
	idx.Upsert("collection1", index.SideBuy, "pairA", sdkmath.NewInt(500))

	entries := idx.BuyFromPairQuotes("collection1", 10, "")
	require.Len(t, entries, 1)
	require.True(t, entries[0].Price.Equal(sdkmath.NewInt(500)))
}

func TestApply_RemovesEntryWhenQuoteIsNil(t *testing.T) {
	idx := index.New()
	price := sdkmath.NewInt(100)
	idx.Apply(index.PairUpdate{Collection: "collection1", PairAddress: "pairA", BuyFromPairQuote: &price, SellToPairQuote: &price})
	require.Len(t, idx.BuyFromPairQuotes("collection1", 10, ""), 1)
	require.Len(t, idx.SellToPairQuotes("collection1", 10, ""), 1)

	idx.Apply(index.PairUpdate{Collection: "collection1", PairAddress: "pairA"})
	require.Empty(t, idx.BuyFromPairQuotes("collection1", 10, ""))
	require.Empty(t, idx.SellToPairQuotes("collection1", 10, ""))
}

func TestPagination_ContinuesAfterCursor(t *testing.T) {
	idx := index.New()
	idx.Upsert("collection1", index.SideBuy, "pairA", sdkmath.NewInt(100))
	idx.Upsert("collection1", index.SideBuy, "pairB", sdkmath.NewInt(200))
	idx.Upsert("collection1", index.SideBuy, "pairC", sdkmath.NewInt(300))

	firstPage := idx.BuyFromPairQuotes("collection1", 1, "")
	require.Len(t, firstPage, 1)
	require.Equal(t, "pairA", firstPage[0].PairAddress)

	secondPage := idx.BuyFromPairQuotes("collection1", 1, firstPage[0].PairAddress)
	require.Len(t, secondPage, 1)
	require.Equal(t, "pairB", secondPage[0].PairAddress)
}

func TestLimit_ClampedToMaxPageSize(t *testing.T) {
	idx := index.New()
	for i := 0; i < 5; i++ {
		idx.Upsert("collection1", index.SideBuy, string(rune('a'+i)), sdkmath.NewInt(int64(i)))
	}
	entries := idx.BuyFromPairQuotes("collection1", 0, "")
	require.Len(t, entries, 5)
}
