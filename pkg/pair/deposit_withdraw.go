package pair

import (
	sdkmath "cosmossdk.io/math"

	"github.com/margined-protocol/infinity-core/pkg/capabilities"
	pairerrors "github.com/margined-protocol/infinity-core/pkg/errors"
	"github.com/margined-protocol/infinity-core/pkg/events"
	"github.com/margined-protocol/infinity-core/pkg/globalconfig"
)

// recomputeArgs groups the read-only inputs every op needs to rebuild the
// cached quote summaries after a state change.
type recomputeArgs struct {
	PairAddress string
	Global      globalconfig.Config
	MinPrices   globalconfig.MinPrices
	Royalty     *capabilities.RoyaltyEntry
}

func (p *Pair) finish(args recomputeArgs, resp *Response) *Response {
	p.Recompute(args.Global, args.MinPrices, args.Royalty)
	resp.IndexUpdate = p.BuildIndexUpdate(args.PairAddress)
	return resp
}

// DepositNft escrows a single NFT the sender has already transferred to the
// pair. Only the pair owner may send NFTs in, and only Nft and Trade pairs
// may hold them (spec.md §4.3).
func (p *Pair) DepositNft(sender, tokenID string, args recomputeArgs) (*Response, error) {
	if !p.IsOwner(sender) {
		return nil, pairerrors.ErrUnauthorized
	}
	if !p.Config.PairType.CanBuyFromPair() {
		return nil, pairerrors.ErrPairCannotEscrowNfts
	}

	p.NftDeposits[tokenID] = struct{}{}
	p.Internal.TotalNfts++

	resp := &Response{}
	resp.addEvent(events.NewDepositNfts(args.PairAddress, tokenID))
	return p.finish(args, resp), nil
}

// WithdrawNfts removes a non-empty, owner-specified set of NFTs from the
// pair and transfers them to the asset recipient.
func (p *Pair) WithdrawNfts(sender string, tokenIDs []string, args recomputeArgs) (*Response, error) {
	if !p.IsOwner(sender) {
		return nil, pairerrors.ErrUnauthorized
	}
	if len(tokenIDs) == 0 {
		return nil, pairerrors.ErrEmptyTokenIDs
	}

	seen := make(map[string]struct{}, len(tokenIDs))
	for _, id := range tokenIDs {
		if _, dup := seen[id]; dup {
			return nil, pairerrors.ErrDuplicateTokenID
		}
		seen[id] = struct{}{}
		if _, owned := p.NftDeposits[id]; !owned {
			return nil, pairerrors.ErrNotOwnedByPair
		}
	}

	resp := &Response{}
	recipient := p.AssetRecipient()
	for _, id := range tokenIDs {
		delete(p.NftDeposits, id)
		p.Internal.TotalNfts--
		resp.NftPayouts = append(resp.NftPayouts, NftPayout{
			Collection: p.Immutable.CollectionID,
			TokenID:    id,
			Recipient:  recipient,
		})
	}
	resp.addEvent(events.NewWithdrawNfts(args.PairAddress, len(tokenIDs)))

	return p.finish(args, resp), nil
}

// WithdrawAnyNfts withdraws up to limit NFTs, chosen in ascending token-id
// order (spec.md §4.3's deterministic iteration order).
func (p *Pair) WithdrawAnyNfts(sender string, limit uint32, args recomputeArgs) (*Response, error) {
	ids := p.sortedDepositIDs()
	if uint32(len(ids)) > limit {
		ids = ids[:limit]
	}
	return p.WithdrawNfts(sender, ids, args)
}

// DepositTokens credits amount to the pair's token inventory. Only Token and
// Trade pairs may hold tokens.
func (p *Pair) DepositTokens(sender string, amount sdkmath.Int, args recomputeArgs) (*Response, error) {
	if !p.IsOwner(sender) {
		return nil, pairerrors.ErrUnauthorized
	}
	if !p.Config.PairType.CanSellNftsToPair() {
		return nil, pairerrors.ErrPairCannotEscrowCoin
	}

	p.TotalTokens = p.TotalTokens.Add(amount)

	resp := &Response{}
	resp.addEvent(events.NewDepositTokens(args.PairAddress, amount.String()))
	return p.finish(args, resp), nil
}

// WithdrawTokens moves amount out of the pair's token inventory to the asset
// recipient. amount must not exceed the current balance.
func (p *Pair) WithdrawTokens(sender string, amount sdkmath.Int, args recomputeArgs) (*Response, error) {
	if !p.IsOwner(sender) {
		return nil, pairerrors.ErrUnauthorized
	}
	if amount.GT(p.TotalTokens) {
		return nil, pairerrors.Newf(pairerrors.KindInvalidInput, "amount %s exceeds total tokens %s", amount, p.TotalTokens)
	}

	p.TotalTokens = p.TotalTokens.Sub(amount)

	resp := &Response{
		CoinPayouts: []CoinPayout{{Recipient: p.AssetRecipient(), Denom: p.Immutable.Denom, Amount: amount}},
	}
	resp.addEvent(events.NewWithdrawTokens(args.PairAddress, amount.String()))
	return p.finish(args, resp), nil
}

// WithdrawAllTokens withdraws the pair's entire token balance.
func (p *Pair) WithdrawAllTokens(sender string, args recomputeArgs) (*Response, error) {
	return p.WithdrawTokens(sender, p.TotalTokens, args)
}
