// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sync"

	"github.com/EXCCoin/mnpayd/mnpayments"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrd/wire"
)

// simNode is one simulated masternode: its registry-visible info plus the
// private key backing its signing pubkey.
type simNode struct {
	info    mnpayments.MasternodeInfo
	privKey []byte
}

// simRegistry is an in-memory MasternodeRegistry backing the simulation.
// Rank and queue order are derived deterministically from each
// masternode's collateral outpoint and the reference height, the way a
// real registry derives them from accumulated proof-of-service time
// rather than anything this harness needs to model faithfully.
type simRegistry struct {
	mu    sync.RWMutex
	nodes []*simNode
	by    map[mnpayments.Outpoint]*simNode
}

func newSimRegistry() *simRegistry {
	return &simRegistry{by: make(map[mnpayments.Outpoint]*simNode)}
}

func (r *simRegistry) add(n *simNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = append(r.nodes, n)
	r.by[n.info.Outpoint] = n
}

func (r *simRegistry) InfoByOutpoint(outpoint mnpayments.Outpoint) (mnpayments.MasternodeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.by[outpoint]
	if !ok {
		return mnpayments.MasternodeInfo{}, false
	}
	return n.info, true
}

// queueSeed returns a deterministic ordering key for n at refHeight,
// standing in for the real registry's last-paid-time ordering.
func queueSeed(n *simNode, refHeight int64) uint64 {
	buf := make([]byte, 0, 40)
	buf = append(buf, n.info.Outpoint.TxID[:]...)
	buf = append(buf, byte(n.info.Outpoint.Index))
	for shift := 0; shift < 64; shift += 8 {
		buf = append(buf, byte(refHeight>>shift))
	}
	h := chainhash.HashB(buf)
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(h[i]) << (8 * i)
	}
	return v
}

func (r *simRegistry) ordered(refHeight int64) []*simNode {
	r.mu.RLock()
	nodes := make([]*simNode, len(r.nodes))
	copy(nodes, r.nodes)
	r.mu.RUnlock()

	for i := 1; i < len(nodes); i++ {
		j := i
		for j > 0 && queueSeed(nodes[j-1], refHeight) > queueSeed(nodes[j], refHeight) {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
			j--
		}
	}
	return nodes
}

func (r *simRegistry) NextInQueue(height int64, ignoreInactive bool, tier int) (mnpayments.MasternodeInfo, int, bool) {
	ordered := r.ordered(height)
	if len(ordered) == 0 {
		return mnpayments.MasternodeInfo{}, 0, false
	}
	idx := (int(height) + tier) % len(ordered)
	return ordered[idx].info, len(ordered), true
}

func (r *simRegistry) Rank(outpoint mnpayments.Outpoint, refHeight int64, minProtocol uint32) (uint32, bool) {
	ordered := r.ordered(refHeight)
	for i, n := range ordered {
		if n.info.Outpoint.Equal(outpoint) {
			return uint32(i + 1), true
		}
	}
	return 0, false
}

func (r *simRegistry) TopRanks(refHeight int64, minProtocol uint32) []mnpayments.RankedMasternode {
	ordered := r.ordered(refHeight)
	ranks := make([]mnpayments.RankedMasternode, len(ordered))
	for i, n := range ordered {
		ranks[i] = mnpayments.RankedMasternode{Rank: i + 1, Info: n.info}
	}
	return ranks
}

func (r *simRegistry) Size() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint32(len(r.nodes))
}

func (r *simRegistry) AskFor(outpoint mnpayments.Outpoint, peer mnpayments.Peer) {
	mnpLog.Debugf("registry refresh requested for %s", outpoint.ShortString())
}

// simPeer is a trivial Peer identified by a string ID.
type simPeer string

func (p simPeer) ID() string { return string(p) }

// simPeerBus is a PeerBus that logs every call instead of touching a real
// network, standing in for the connection manager.
type simPeerBus struct{}

func (simPeerBus) RelayInventory(inv mnpayments.Inv) {
	mnpLog.Debugf("relay inventory type=%d hash=%x", inv.Type, inv.Hash)
}

func (simPeerBus) PushMessage(peer mnpayments.Peer, kind string, payload interface{}) {
	mnpLog.Debugf("push %s to peer %v: %v", kind, peer, payload)
}

func (simPeerBus) Misbehave(peer mnpayments.Peer, weight int) {
	mnpLog.Warnf("peer %v misbehaved, weight=%d", peer, weight)
}

// simChainView is a ChainView over a single mutable cached tip height;
// block hashes are derived deterministically from height.
type simChainView struct {
	mu  sync.RWMutex
	tip int64
}

func (c *simChainView) setTip(h int64) {
	c.mu.Lock()
	c.tip = h
	c.mu.Unlock()
}

func (c *simChainView) Tip() (int64, [32]byte) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip, hashForHeight(c.tip)
}

func (c *simChainView) BlockHashAt(height int64) ([32]byte, bool) {
	c.mu.RLock()
	tip := c.tip
	c.mu.RUnlock()
	if height > tip || height < 0 {
		return [32]byte{}, false
	}
	return hashForHeight(height), true
}

func (c *simChainView) CachedTipHeight() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

func hashForHeight(height int64) [32]byte {
	return chainhash.HashH([]byte(fmt.Sprintf("sim-block-%d", height)))
}

// simSporkBus is a SporkBus with every spork hardcoded active except the
// pay-updated-nodes spork, which follows the config, and a fixed failover
// payee script.
type simSporkBus struct {
	payUpdatedNodes bool
	failoverPayee   mnpayments.ScriptBytes
}

func (s *simSporkBus) IsActive(sporkID int) bool {
	if sporkID == mnpayments.SporkPayUpdatedNodes {
		return s.payUpdatedNodes
	}
	return true
}

func (s *simSporkBus) SporkPublicKey() []byte { return nil }

func (s *simSporkBus) SporkPublicAddress() mnpayments.ScriptBytes { return s.failoverPayee }

// simPaymentSchedule splits the block reward evenly across the three
// tiers, the simplest schedule that exercises BlockShaper's rebalancing.
type simPaymentSchedule struct{}

func (simPaymentSchedule) MasternodePayment(tier int, blockReward dcrutil.Amount) dcrutil.Amount {
	return blockReward / mnpayments.TierCount
}

// simSuperblockOracle never triggers, keeping the simulation on the
// ordinary per-block payment path.
type simSuperblockOracle struct{}

func (simSuperblockOracle) IsTriggered(height int64) bool { return false }

func (simSuperblockOracle) Validate(tx *wire.MsgTx, height int64, expectedReward, actualReward dcrutil.Amount) bool {
	return false
}

func (simSuperblockOracle) RequiredPaymentsString(height int64) string { return "" }
