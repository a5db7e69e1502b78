// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

// VoteValidator runs the predicates that decide whether a candidate vote
// may be admitted (spec §4.F). All checks are pure except for the
// registry-refresh and ban side effects, which are idempotent.
type VoteValidator struct {
	Registry  MasternodeRegistry
	PeerBus   PeerBus
	Chain     ChainView
	Signer    Signer
	FullySync func() bool

	// PayUpdatedNodesActive reports whether the "pay updated nodes"
	// policy is currently spork-active, raising the minimum protocol
	// version enforced for votes targeting the validation height or later.
	PayUpdatedNodesActive func() bool

	storageLimit func() int64
}

// NewVoteValidator constructs a VoteValidator. storageLimit supplies the
// current retention window, typically StorageLimit(registry.Size()).
func NewVoteValidator(registry MasternodeRegistry, peerBus PeerBus, chain ChainView, signer Signer, fullySync, payUpdatedNodesActive func() bool, storageLimit func() int64) *VoteValidator {
	return &VoteValidator{
		Registry:              registry,
		PeerBus:               peerBus,
		Chain:                 chain,
		Signer:                signer,
		FullySync:             fullySync,
		PayUpdatedNodesActive: payUpdatedNodesActive,
		storageLimit:          storageLimit,
	}
}

// Validate runs all five checks from spec §4.F against vote, using the
// chain view's cached tip height as the validation height. relayingPeer
// identifies the peer that relayed the vote, for ban side effects; it may
// be nil for a locally produced vote, in which case bans are skipped.
func (v *VoteValidator) Validate(vote *PaymentVote, relayingPeer Peer) error {
	validationHeight := v.Chain.CachedTipHeight()

	// 5. Window check.
	limit := v.storageLimit()
	if vote.Height < validationHeight-limit || vote.Height > validationHeight+FutureWindow {
		return voteError(ErrOutOfWindow, "vote height %d outside admissible window [%d, %d]",
			vote.Height, validationHeight-limit, validationHeight+FutureWindow)
	}

	// 1. Registry lookup.
	info, ok := v.Registry.InfoByOutpoint(vote.VoterOutpoint)
	if !ok {
		v.Registry.AskFor(vote.VoterOutpoint, relayingPeer)
		return voteError(ErrUnknownVoter, "unknown masternode: %s", vote.VoterOutpoint.ShortString())
	}

	// 2. Protocol version gate.
	minProtocol := uint32(ProtoVersionLegacyMin)
	if vote.Height >= validationHeight && v.PayUpdatedNodesActive() {
		minProtocol = ProtoVersionUpdatedMin
	}
	if info.ProtocolVersion < minProtocol {
		return voteError(ErrStaleProtocol, "masternode protocol %d below required minimum %d",
			info.ProtocolVersion, minProtocol)
	}

	// 3. Rank check.
	rank, ok := v.Registry.Rank(vote.VoterOutpoint, vote.Height-VoteRefOffset, minProtocol)
	if !ok {
		return voteError(ErrRankUnavailable, "could not compute rank for %s at reference height %d",
			vote.VoterOutpoint.ShortString(), vote.Height-VoteRefOffset)
	}
	if rank > SigsTotal {
		if rank > 2*SigsTotal && vote.Height > validationHeight {
			if !vote.VoterOutpoint.Equal(LegacySentinelOutpoint) {
				if relayingPeer != nil {
					v.PeerBus.Misbehave(relayingPeer, BanWeightBadRank)
				}
			} else {
				log.Debugf("vote from legacy sentinel outpoint out of rank, not punishing")
			}
		}
		return voteError(ErrBadRank, "masternode %s not in top %d (rank %d)",
			vote.VoterOutpoint.ShortString(), SigsTotal, rank)
	}

	// 4. Signature check.
	if err := vote.VerifySignature(v.Signer, info.SigningPubKey); err != nil {
		if v.FullySync() && vote.Height > validationHeight {
			if relayingPeer != nil {
				v.PeerBus.Misbehave(relayingPeer, BanWeightBadSig)
			}
		}
		v.Registry.AskFor(vote.VoterOutpoint, relayingPeer)
		return err
	}

	return nil
}
