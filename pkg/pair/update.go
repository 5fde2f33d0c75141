package pair

import (
	pairerrors "github.com/margined-protocol/infinity-core/pkg/errors"
	"github.com/margined-protocol/infinity-core/pkg/events"
	infmath "github.com/margined-protocol/infinity-core/pkg/math"
)

// ConfigUpdate carries the optional overrides an owner may apply in a single
// UpdatePairConfig call; a nil field leaves the corresponding Config field
// unchanged.
type ConfigUpdate struct {
	IsActive       *bool
	PairType       *PairType
	BondingCurve   *BondingCurve
	AssetRecipient *string
}

// UpdatePairConfig applies update to the pair's configuration, validates the
// resulting state against spec.md §3's invariants, and recomputes quotes.
func (p *Pair) UpdatePairConfig(sender string, update ConfigUpdate, maxSwapFeePercent infmath.Percent, args recomputeArgs) (*Response, error) {
	if !p.IsOwner(sender) {
		return nil, pairerrors.ErrUnauthorized
	}

	candidate := p.Config
	if update.IsActive != nil {
		candidate.IsActive = *update.IsActive
	}
	if update.PairType != nil {
		candidate.PairType = *update.PairType
	}
	if update.BondingCurve != nil {
		candidate.BondingCurve = *update.BondingCurve
	}
	if update.AssetRecipient != nil {
		candidate.AssetRecipient = update.AssetRecipient
	}

	if err := validateConfig(candidate, maxSwapFeePercent); err != nil {
		return nil, err
	}

	p.Config = candidate

	resp := &Response{}
	resp.addEvent(events.NewUpdatePairConfig(args.PairAddress))
	return p.finish(args, resp), nil
}
