// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

const (
	// SigsTotal is the number of top-ranked masternodes expected to cast a
	// payment vote for any given height.
	SigsTotal = 10

	// SigsRequired is the minimum number of corroborating votes a payee
	// must accumulate before a block is required to pay it.
	SigsRequired = 6

	// FutureWindow is how far beyond the cached tip height a vote may be
	// cast or admitted for.
	FutureWindow = 20

	// BackWindow is the scheduling lookahead used when reporting whether a
	// masternode is scheduled to be paid soon (SPEC_FULL §3).
	BackWindow = 8

	// VoteRefOffset is the number of blocks back from a vote's target
	// height that supplies the block hash the registry ranks against.
	VoteRefOffset = 101

	// MaxInvSz is the maximum number of inventory vectors batched into a
	// single GETDATA request.
	MaxInvSz = 50000

	// FulfillmentTTL is how long a peer's sync-request fulfillment is
	// remembered before a repeat request is treated as fresh again.
	FulfillmentTTL = time.Hour

	// MinBlocksToStore is the default floor on the retention window used
	// by StorageLimit when the registry is small.
	MinBlocksToStore = 5000

	// storageCoefficient scales the registry size into a retention window;
	// see StorageLimit.
	storageCoefficient = 1.25

	// ProtoVersionLegacyMin is the minimum protocol version accepted for a
	// vote targeting a height below the validation height, or any height
	// while the "pay updated nodes" policy is inactive.
	ProtoVersionLegacyMin = 70206

	// ProtoVersionUpdatedMin is the minimum protocol version enforced for
	// votes targeting the validation height or later once the "pay updated
	// nodes" policy is active.
	ProtoVersionUpdatedMin = 70208

	// BanWeightBadRank is the misbehavior weight applied to a peer relaying
	// a severely out-of-rank future vote.
	BanWeightBadRank = 20

	// BanWeightBadSig is the misbehavior weight applied to a peer relaying
	// a future vote with an invalid signature once fully synced.
	BanWeightBadSig = 20

	// BanWeightDuplicateSync is the misbehavior weight applied to a peer
	// repeating a sync request within FulfillmentTTL.
	BanWeightDuplicateSync = 20
)

// LegacySentinelOutpoint is the historical broadcast-bug outpoint exempted
// from the rank-based ban in VoteValidator (spec §9).
var LegacySentinelOutpoint = Outpoint{
	TxID:  chainhash.Hash{},
	Index: 0xFFFFFFFF,
}

// StorageLimit returns the retention window, in blocks, for votes and
// tallies given the current masternode registry size.
func StorageLimit(registrySize uint32) int64 {
	coeffLimit := int64(float64(registrySize) * storageCoefficient)
	if coeffLimit > MinBlocksToStore {
		return coeffLimit
	}
	return MinBlocksToStore
}
