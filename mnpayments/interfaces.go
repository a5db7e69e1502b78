// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrd/wire"
)

// MasternodeInfo is the subset of masternode-list state this subsystem
// needs, supplied by the registry (spec §3).
type MasternodeInfo struct {
	Outpoint             Outpoint
	CollateralPubKeyHash []byte
	SigningPubKey        []byte
	ProtocolVersion      uint32
}

// MasternodeRegistry is the externally owned masternode list: membership,
// heartbeats and rank computation (spec §1, §6). Implementations must be
// safe for concurrent use.
type MasternodeRegistry interface {
	// InfoByOutpoint resolves a masternode by its collateral outpoint. It
	// returns false if the outpoint is not currently known.
	InfoByOutpoint(outpoint Outpoint) (MasternodeInfo, bool)

	// NextInQueue returns the masternode next in line to be paid at
	// height for the given tier, skipping inactive masternodes when
	// ignoreInactive is true, along with the number of masternodes
	// considered. It returns false if no masternode is available.
	NextInQueue(height int64, ignoreInactive bool, tier int) (MasternodeInfo, int, bool)

	// Rank returns the voter's rank at the given reference height under
	// the given minimum protocol version. It returns false if no rank
	// could be computed (e.g. the registry snapshot at that height is
	// unavailable).
	Rank(outpoint Outpoint, refHeight int64, minProtocol uint32) (uint32, bool)

	// TopRanks returns the top-ranked masternodes at the reference height
	// under the given minimum protocol version, ordered by increasing
	// rank.
	TopRanks(refHeight int64, minProtocol uint32) []RankedMasternode

	// Size returns the current size of the masternode list.
	Size() uint32

	// AskFor requests gossip about outpoint from peer. Implementations
	// may no-op; callers never block on its effect.
	AskFor(outpoint Outpoint, peer Peer)
}

// RankedMasternode pairs a masternode with its computed rank, as returned
// by MasternodeRegistry.TopRanks.
type RankedMasternode struct {
	Rank int
	Info MasternodeInfo
}

// SuperblockOracle reports governance-scheduled superblock triggers and
// validates a candidate block's payouts against them (spec §1, §6).
type SuperblockOracle interface {
	IsTriggered(height int64) bool
	Validate(tx *wire.MsgTx, height int64, expectedReward, actualReward dcrutil.Amount) bool
	RequiredPaymentsString(height int64) string
}

// SporkBus exposes signed, network-wide feature flags and the process-wide
// spork public key/address (spec §1, §6).
type SporkBus interface {
	IsActive(sporkID int) bool
	SporkPublicKey() []byte
	SporkPublicAddress() ScriptBytes
}

// Spork identifiers referenced by this subsystem.
const (
	SporkMasternodePaymentEnforcement = 8
	SporkSuperblocksEnabled           = 9
	SporkPayUpdatedNodes              = 17
)

// Peer is an opaque handle to a remote connection, owned by the transport
// layer (PeerBus). This subsystem never interprets it beyond passing it
// back to PeerBus calls.
type Peer interface {
	// ID returns a stable identifier for the peer, used as a map key for
	// per-peer bookkeeping such as the sync-fulfillment tracker.
	ID() string
}

// Inv identifies a single inventory item announced or requested over the
// wire (spec §6).
type Inv struct {
	Type wire.InvType
	Hash [32]byte
}

// PeerBus is the externally owned peer transport and misbehavior scorer
// (spec §1, §6).
type PeerBus interface {
	RelayInventory(inv Inv)
	PushMessage(peer Peer, kind string, payload interface{})
	Misbehave(peer Peer, weight int)
}

// ChainView is the externally owned view of the active chain (spec §6).
type ChainView interface {
	Tip() (height int64, hash [32]byte)
	BlockHashAt(height int64) ([32]byte, bool)
	CachedTipHeight() int64
}

// Signer performs the raw signing/verification primitives backing
// PaymentVote (spec §6). A default secp256k1-backed implementation is
// provided by NewSecp256k1Signer.
type Signer interface {
	Sign(msg []byte, priv []byte) ([]byte, error)
	Verify(pubKey []byte, msg []byte, sig []byte) bool
}

// PaymentSchedule is the pure, externally owned function mapping a tier and
// block reward to the amount that tier is paid (spec §6).
type PaymentSchedule interface {
	MasternodePayment(tier int, blockReward dcrutil.Amount) dcrutil.Amount
}
