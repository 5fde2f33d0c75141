package pair

import (
	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/events"
)

// CoinPayout is a single outgoing reserve-denom transfer.
type CoinPayout struct {
	Recipient string
	Denom     string
	Amount    sdkmath.Int
}

// NftPayout is a single outgoing NFT transfer.
type NftPayout struct {
	Collection string
	TokenID    string
	Recipient  string
}

// IndexUpdate is the instruction a pair sends to the collection index after
// any mutation (spec.md §4.4); a nil quote field means "remove this side's
// entry."
type IndexUpdate struct {
	Collection       string
	Denom            string
	PairAddress      string
	SellToPairQuote  *sdkmath.Int
	BuyFromPairQuote *sdkmath.Int
}

// Response bundles everything a lifecycle operation produces: payout
// instructions in dispatch order, events, and the index-update instruction
// (spec.md §5 "Ordering guarantees").
type Response struct {
	CoinPayouts []CoinPayout
	NftPayouts  []NftPayout
	Events      []events.Event
	IndexUpdate *IndexUpdate
}

func (r *Response) addEvent(e events.Event) {
	r.Events = append(r.Events, e)
}

// BuildIndexUpdate derives the index-update instruction from the pair's
// current cached summaries, ready to append to a Response.
func (p *Pair) BuildIndexUpdate(pairAddress string) *IndexUpdate {
	update := &IndexUpdate{
		Collection:  p.Immutable.CollectionID,
		Denom:       p.Immutable.Denom,
		PairAddress: pairAddress,
	}
	if p.Internal.SellToPairQuoteSummary != nil {
		amount := p.Internal.SellToPairQuoteSummary.SellerAmount
		update.SellToPairQuote = &amount
	}
	if p.Internal.BuyFromPairQuoteSummary != nil {
		amount := p.Internal.BuyFromPairQuoteSummary.Total()
		update.BuyFromPairQuote = &amount
	}
	return update
}
