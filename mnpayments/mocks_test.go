// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

// fakeRegistry is a minimal MasternodeRegistry for tests: rank and queue
// order are whatever the test wires up directly, rather than derived from
// any real scoring function.
type fakeRegistry struct {
	infos map[Outpoint]MasternodeInfo
	ranks map[Outpoint]uint32
	queue []MasternodeInfo
	asked []Outpoint
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		infos: make(map[Outpoint]MasternodeInfo),
		ranks: make(map[Outpoint]uint32),
	}
}

func (r *fakeRegistry) add(info MasternodeInfo, rank uint32) {
	r.infos[info.Outpoint] = info
	r.ranks[info.Outpoint] = rank
}

func (r *fakeRegistry) InfoByOutpoint(outpoint Outpoint) (MasternodeInfo, bool) {
	info, ok := r.infos[outpoint]
	return info, ok
}

func (r *fakeRegistry) NextInQueue(height int64, ignoreInactive bool, tier int) (MasternodeInfo, int, bool) {
	if len(r.queue) == 0 {
		return MasternodeInfo{}, 0, false
	}
	return r.queue[tier%len(r.queue)], len(r.queue), true
}

func (r *fakeRegistry) Rank(outpoint Outpoint, refHeight int64, minProtocol uint32) (uint32, bool) {
	rank, ok := r.ranks[outpoint]
	return rank, ok
}

func (r *fakeRegistry) TopRanks(refHeight int64, minProtocol uint32) []RankedMasternode {
	ranked := make([]RankedMasternode, 0, len(r.infos))
	for outpoint, info := range r.infos {
		ranked = append(ranked, RankedMasternode{Rank: int(r.ranks[outpoint]), Info: info})
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j-1].Rank > ranked[j].Rank; j-- {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
		}
	}
	return ranked
}

func (r *fakeRegistry) Size() uint32 {
	return uint32(len(r.infos))
}

func (r *fakeRegistry) AskFor(outpoint Outpoint, peer Peer) {
	r.asked = append(r.asked, outpoint)
}

// fakePeer is a trivial Peer.
type fakePeer string

func (p fakePeer) ID() string { return string(p) }

// fakePeerBus records every call instead of touching a network.
type fakePeerBus struct {
	relayed    []Inv
	pushed     []string
	misbehaved map[string]int
}

func newFakePeerBus() *fakePeerBus {
	return &fakePeerBus{misbehaved: make(map[string]int)}
}

func (b *fakePeerBus) RelayInventory(inv Inv) {
	b.relayed = append(b.relayed, inv)
}

func (b *fakePeerBus) PushMessage(peer Peer, kind string, payload interface{}) {
	b.pushed = append(b.pushed, kind)
}

func (b *fakePeerBus) Misbehave(peer Peer, weight int) {
	if peer == nil {
		return
	}
	b.misbehaved[peer.ID()] += weight
}

// fakeChain is a ChainView over a single mutable height.
type fakeChain struct {
	tip int64
}

func (c *fakeChain) Tip() (int64, [32]byte)             { return c.tip, [32]byte{} }
func (c *fakeChain) BlockHashAt(int64) ([32]byte, bool) { return [32]byte{}, true }
func (c *fakeChain) CachedTipHeight() int64             { return c.tip }
