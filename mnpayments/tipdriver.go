// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

// futureOffset is how far ahead of the tip a new-tip event casts and
// checks votes for (spec §4.H).
const futureOffset = 10

// TipDriver reacts to new-tip events: it updates the cached tip height,
// prunes old state, tallies missed votes for the height the previous tip
// voted for, and, if this node is a masternode, casts its own
// vote for the upcoming target height (spec §4.H).
type TipDriver struct {
	Store     *VoteStore
	Elector   *PayeeElector
	Registry  MasternodeRegistry
	Validator *VoteValidator
	Signer    Signer
	PeerBus   PeerBus

	// IsMasternode reports whether this node should cast votes at all.
	IsMasternode func() bool
	// LiteMode disables voting entirely, independent of IsMasternode.
	LiteMode func() bool

	// SelfOutpoint and SelfPrivateKey identify and authenticate this
	// node's own masternode, when IsMasternode returns true.
	SelfOutpoint   Outpoint
	SelfPrivateKey []byte

	storageLimit func() int64
}

// NewTipDriver constructs a TipDriver. storageLimit supplies the current
// retention window, typically StorageLimit(registry.Size()).
func NewTipDriver(store *VoteStore, elector *PayeeElector, registry MasternodeRegistry, validator *VoteValidator, signer Signer, peerBus PeerBus, isMasternode, liteMode func() bool, storageLimit func() int64) *TipDriver {
	return &TipDriver{
		Store:        store,
		Elector:      elector,
		Registry:     registry,
		Validator:    validator,
		Signer:       signer,
		PeerBus:      peerBus,
		IsMasternode: isMasternode,
		LiteMode:     liteMode,
		storageLimit: storageLimit,
	}
}

// OnNewTip runs the full spec §4.H sequence for a new tip at height h.
func (d *TipDriver) OnNewTip(h int64) {
	d.Store.SetCachedTipHeight(h)
	d.Store.Prune(d.storageLimit())
	d.Store.RemoveUnknownVoters(d.Registry)

	future := h + futureOffset
	d.CheckPreviousBlockVotes(future - 1)

	if d.IsMasternode != nil && d.IsMasternode() && (d.LiteMode == nil || !d.LiteMode()) {
		d.castOwnVote(future)
	}
}

// CheckPreviousBlockVotes inspects the top SIGS_TOTAL ranked masternodes
// at height-101 and bumps each one's miss counter if it did not vote for
// height (spec §4.H step 3).
func (d *TipDriver) CheckPreviousBlockVotes(height int64) {
	ranked := d.Registry.TopRanks(height-VoteRefOffset, ProtoVersionLegacyMin)

	for i, rm := range ranked {
		if i >= SigsTotal {
			break
		}
		if !d.votedAt(height, rm.Info.Outpoint) {
			log.Debugf("masternode %s did not vote for height %d", rm.Info.Outpoint.ShortString(), height)
			d.Store.IncrementMissCounter(rm.Info.Outpoint)
		}
	}
}

// votedAt reports whether any admitted vote backing height's tally came
// from voter. A vote hash referenced by the tally but no longer present
// in the store (already pruned) is treated as no match.
func (d *TipDriver) votedAt(height int64, voter Outpoint) bool {
	tally := d.Store.Tally(height)
	if tally == nil {
		return false
	}
	for _, hash := range tally.AllVoteHashes() {
		d.Store.muVotes.RLock()
		vote, ok := d.Store.votesByHash[hash]
		d.Store.muVotes.RUnlock()
		if ok && vote.VoterOutpoint.Equal(voter) {
			return true
		}
	}
	return false
}

// castOwnVote elects the tier-0 payee for height and, if this node's own
// rank qualifies it to vote, signs and admits a vote for that payee (spec
// §4.H step 4, original_source ProcessBlock). Every qualifying masternode
// votes for the same queue-computed winner regardless of whether it is
// itself the winner; that convergence is what lets a payee accumulate
// SigsRequired distinct votes. The per-voter state machine in spec §4.H
// collapses to this linear sequence: Electing -> Ranking -> Signing ->
// Admitting -> Relaying, falling back to Idle (a silent no-op) at the
// first failure.
func (d *TipDriver) castOwnVote(height int64) {
	winners := d.Elector.Elect(height)
	tier0 := winners[0]

	rank, ok := d.Registry.Rank(d.SelfOutpoint, height-VoteRefOffset, ProtoVersionLegacyMin)
	if !ok || rank > SigsTotal {
		return
	}

	if !d.Store.CanVote(d.SelfOutpoint, height) {
		return
	}

	vote := &PaymentVote{
		VoterOutpoint: d.SelfOutpoint,
		Height:        height,
		Payee:         tier0.Script,
	}

	if err := vote.Sign(d.Signer, d.SelfPrivateKey); err != nil {
		log.Errorf("failed to sign own masternode payment vote: %v", err)
		return
	}

	admitted, err := d.Store.Admit(vote, d.Validator, nil)
	if err != nil || !admitted {
		log.Debugf("could not admit own masternode payment vote: %v", err)
		return
	}

	d.PeerBus.RelayInventory(Inv{Type: InvTypeMasternodePaymentVote, Hash: vote.Hash()})
}
