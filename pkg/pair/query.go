package pair

// Snapshot is the read-only view returned by the Pair query, mirroring the
// external contract's PairResponse (spec.md §6).
type Snapshot struct {
	Immutable   Immutable
	Config      Config
	TotalTokens string
	TotalNfts   uint64

	SellToPairQuote  string
	BuyFromPairQuote string
}

// Query returns a snapshot of the pair's current state, including the
// cached quote summaries' headline totals. Empty strings mean "no quote."
func (p *Pair) Query() Snapshot {
	snap := Snapshot{
		Immutable:   p.Immutable,
		Config:      p.Config,
		TotalTokens: p.TotalTokens.String(),
		TotalNfts:   p.Internal.TotalNfts,
	}
	if p.Internal.SellToPairQuoteSummary != nil {
		snap.SellToPairQuote = p.Internal.SellToPairQuoteSummary.SellerAmount.String()
	}
	if p.Internal.BuyFromPairQuoteSummary != nil {
		snap.BuyFromPairQuote = p.Internal.BuyFromPairQuoteSummary.Total().String()
	}
	return snap
}

// NftDepositsPage returns up to limit escrowed token ids in ascending order,
// starting strictly after startAfter (spec.md §6 pagination convention
// shared with pkg/index and pkg/router).
func (p *Pair) NftDepositsPage(startAfter string, limit uint32) []string {
	ids := p.sortedDepositIDs()

	start := 0
	if startAfter != "" {
		for i, id := range ids {
			if id > startAfter {
				start = i
				break
			}
			start = i + 1
		}
	}
	if start >= len(ids) {
		return nil
	}
	ids = ids[start:]
	if uint32(len(ids)) > limit {
		ids = ids[:limit]
	}
	return ids
}
