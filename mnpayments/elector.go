// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

// TierCount is the number of parallel payout queues (spec §2, §4.D).
const TierCount = 3

// PayeeSource tags where an elected payee came from: an active
// masternode, or the deterministic failover payee (spec §9 "inheritance
// collapses to a tagged variant").
type PayeeSource struct {
	Masternode *MasternodeInfo // non-nil iff this tier elected a masternode
}

// IsFailover reports whether this tier fell back to the spork-derived
// failover payee rather than electing a masternode.
func (s PayeeSource) IsFailover() bool {
	return s.Masternode == nil
}

// ElectedPayee pairs a tier's winning payee script with the source it came
// from.
type ElectedPayee struct {
	Tier   int
	Script ScriptBytes
	Source PayeeSource
}

// PayeeElector produces the ordered list of winning payees for a target
// height (spec §4.D).
type PayeeElector struct {
	Registry MasternodeRegistry
	Spork    SporkBus
}

// NewPayeeElector constructs a PayeeElector.
func NewPayeeElector(registry MasternodeRegistry, spork SporkBus) *PayeeElector {
	return &PayeeElector{Registry: registry, Spork: spork}
}

// Elect returns the three tiers' winning payees for height. Each tier is
// an independent queue: a tier with no eligible masternode falls back to
// the deterministic failover payee rather than stalling the whole
// election (spec §4.D rationale).
func (e *PayeeElector) Elect(height int64) [TierCount]ElectedPayee {
	var winners [TierCount]ElectedPayee
	for tier := 0; tier < TierCount; tier++ {
		winners[tier] = e.electTier(height, tier)
	}
	return winners
}

func (e *PayeeElector) electTier(height int64, tier int) ElectedPayee {
	info, _, ok := e.Registry.NextInQueue(height, true, tier)
	if !ok {
		return ElectedPayee{
			Tier:   tier,
			Script: e.Spork.SporkPublicAddress(),
			Source: PayeeSource{},
		}
	}
	infoCopy := info
	return ElectedPayee{
		Tier:   tier,
		Script: ScriptForPKH(info.CollateralPubKeyHash),
		Source: PayeeSource{Masternode: &infoCopy},
	}
}

// IsScheduled reports whether info is elected for any tier within the next
// withinBlocks heights starting at fromHeight (SPEC_FULL §3). It does not
// affect election outcomes; it only reports them.
func (e *PayeeElector) IsScheduled(info MasternodeInfo, fromHeight int64, withinBlocks int64) bool {
	for h := fromHeight; h < fromHeight+withinBlocks; h++ {
		winners := e.Elect(h)
		for _, w := range winners {
			if w.Source.Masternode != nil && w.Source.Masternode.Outpoint.Equal(info.Outpoint) {
				return true
			}
		}
	}
	return false
}
