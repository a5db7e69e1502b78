// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"sync"
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/lru"
	"github.com/decred/dcrd/wire"
)

// relayCacheLimit bounds the recently-relayed vote hash cache. It only
// needs to cover the window in which the same vote might reach this node
// by more than one path (e.g. a self-cast vote echoed back by a peer),
// not the full admission window.
const relayCacheLimit = 5000

// Inventory types for the two wire messages this subsystem relays,
// assigned outside the range of wire's own InvType constants (spec §6).
const (
	InvTypeMasternodePaymentVote  wire.InvType = 0x1000 + iota
	InvTypeMasternodePaymentBlock
)

// fulfillmentTracker records when a peer last had a given request
// fulfilled, so a repeat ask inside the TTL window can be rejected rather
// than serviced again (spec §4.G, grounded on CNetFulfilledRequestManager).
type fulfillmentTracker struct {
	mu  sync.Mutex
	ttl time.Duration
	at  map[string]time.Time
}

func newFulfillmentTracker(ttl time.Duration) *fulfillmentTracker {
	return &fulfillmentTracker{ttl: ttl, at: make(map[string]time.Time)}
}

// checkAndMark reports whether key was already fulfilled within the TTL
// window and, if not, marks it as fulfilled now.
func (f *fulfillmentTracker) checkAndMark(key string, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if last, ok := f.at[key]; ok && now.Sub(last) < f.ttl {
		return true
	}
	f.at[key] = now
	return false
}

// MessageHandler dispatches inbound sync-request and vote messages and
// produces outbound sync traffic (spec §4.G).
type MessageHandler struct {
	Store     *VoteStore
	Validator *VoteValidator
	Registry  MasternodeRegistry
	PeerBus   PeerBus
	Chain     ChainView

	// FullySynced reports whether this node has finished initial sync;
	// sync requests are ignored until then.
	FullySynced func() bool

	// BumpAssetFreshness is called when a new vote is successfully
	// admitted, refreshing the masternode-sync subsystem's freshness
	// clock for the "MASTERNODEPAYMENTVOTE" asset.
	BumpAssetFreshness func()

	storageLimit func() int64

	fulfilled *fulfillmentTracker
	relayed   *lru.Cache
}

// NewMessageHandler constructs a MessageHandler. storageLimit supplies the
// current retention window, typically StorageLimit(registry.Size()).
func NewMessageHandler(store *VoteStore, validator *VoteValidator, registry MasternodeRegistry, peerBus PeerBus, chain ChainView, fullySynced func() bool, bumpAssetFreshness func(), storageLimit func() int64) *MessageHandler {
	return &MessageHandler{
		Store:              store,
		Validator:          validator,
		Registry:           registry,
		PeerBus:            peerBus,
		Chain:              chain,
		FullySynced:        fullySynced,
		BumpAssetFreshness: bumpAssetFreshness,
		storageLimit:       storageLimit,
		fulfilled:          newFulfillmentTracker(FulfillmentTTL),
		relayed:            lru.NewCache(relayCacheLimit),
	}
}

// HandleSyncRequest answers a peer's request for the current vote set
// (spec §4.G). now is passed explicitly so the fulfillment TTL is
// deterministic and testable.
func (h *MessageHandler) HandleSyncRequest(peer Peer, now time.Time) {
	if !h.FullySynced() {
		return
	}

	if h.fulfilled.checkAndMark(peer.ID(), now) {
		log.Warnf("peer %s asked for the payment vote list multiple times, misbehaving", peer.ID())
		h.PeerBus.Misbehave(peer, BanWeightDuplicateSync)
		return
	}

	tip := h.Store.CachedTipHeight()
	invCount := 0
	for height := tip; height <= tip+FutureWindow; height++ {
		tally := h.Store.Tally(height)
		if tally == nil {
			continue
		}
		for _, hash := range tally.AllVoteHashes() {
			if !h.Store.HasVerified(hash) {
				continue
			}
			h.PeerBus.PushMessage(peer, "inv", Inv{Type: InvTypeMasternodePaymentVote, Hash: hash})
			invCount++
		}
	}

	h.PeerBus.PushMessage(peer, "syncstatuscount", invCount)
	log.Debugf("sent %d masternode payment votes to peer %s", invCount, peer.ID())
}

// HandleVoteMessage processes a deserialized incoming vote, admitting it
// and relaying it on success (spec §4.G).
func (h *MessageHandler) HandleVoteMessage(vote *PaymentVote, relayingPeer Peer) {
	admitted, err := h.Store.Admit(vote, h.Validator, relayingPeer)
	if err != nil {
		log.Debugf("rejected vote from peer %v: %v", relayingPeer, err)
		return
	}
	if !admitted {
		return
	}

	if h.BumpAssetFreshness != nil {
		h.BumpAssetFreshness()
	}

	hash := vote.Hash()
	if h.relayed.Contains(hash) {
		return
	}
	h.relayed.Add(hash)
	h.PeerBus.RelayInventory(Inv{Type: InvTypeMasternodePaymentVote, Hash: hash})
}

// RequestLowDataBlocks walks back from the chain tip for up to the current
// storage limit, asking peer for any block whose payment votes this node
// doesn't yet have a clear winner for (spec §4.G).
func (h *MessageHandler) RequestLowDataBlocks(peer Peer) {
	tip, _ := h.Chain.Tip()
	limit := h.storageLimit()

	var batch []wire.InvVect
	flush := func() {
		if len(batch) == 0 {
			return
		}
		msg := wire.NewMsgGetData()
		for i := range batch {
			_ = msg.AddInvVect(&batch[i])
		}
		h.PeerBus.PushMessage(peer, "getdata", msg)
		batch = batch[:0]
	}

	for height := tip; tip-height < limit; height-- {
		hash, ok := h.Chain.BlockHashAt(height)
		if !ok {
			break
		}

		tally := h.Store.Tally(height)
		if tally != nil && tally.maxVoteCount() >= SigsRequired {
			continue
		}

		batch = append(batch, wire.InvVect{
			Type: InvTypeMasternodePaymentBlock,
			Hash: chainhash.Hash(hash),
		})
		if len(batch) == MaxInvSz {
			flush()
		}
	}
	flush()
}
