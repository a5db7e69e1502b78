// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"crypto/rand"
	"sync"

	"github.com/dchest/siphash"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// VoteStore is the process-wide masternode payment vote state (spec §3,
// §4.C). It owns votes and tallies exclusively; callers never see a raw
// lock handle, only the combined operations below, which enforce the
// L_tallies-before-L_votes acquisition order from spec §5 internally.
//
// VoteStore is safe for concurrent use by multiple peer threads, the tip
// driver, and the block validator simultaneously.
type VoteStore struct {
	// muVotes guards votesByHash and lastVoteHeight (L_votes).
	muVotes        sync.RWMutex
	votesByHash    map[chainhash.Hash]*PaymentVote
	lastVoteHeight map[Outpoint]int64

	// muTallies guards talliesByHeight and missCounters (L_tallies).
	muTallies      sync.RWMutex
	talliesByHeight map[int64]*BlockPayeeTally
	missCounters    map[Outpoint]uint32

	// cachedTip is updated only by TipDriver, but read everywhere.
	cachedTip int64

	// sigCache is a short-hash admission pre-check modeled on
	// txscript.SigCache's shortTxHash technique: before doing the full
	// hash-keyed map lookup under muVotes, a cheap siphash-keyed check
	// rules out the overwhelmingly common "definitely not a duplicate"
	// case for free.
	sigCacheKey [16]byte
	sigCache    sync.Map
}

// NewVoteStore returns an empty VoteStore.
func NewVoteStore() *VoteStore {
	s := &VoteStore{
		votesByHash:     make(map[chainhash.Hash]*PaymentVote),
		lastVoteHeight:  make(map[Outpoint]int64),
		talliesByHeight: make(map[int64]*BlockPayeeTally),
		missCounters:    make(map[Outpoint]uint32),
	}
	// A random per-process key for the admission short-hash pre-check;
	// it only needs to resist accidental collisions, not be predictable,
	// so a read failure falls back to the zero key rather than panicking.
	_, _ = rand.Read(s.sigCacheKey[:])
	return s
}

func (s *VoteStore) shortHash(hash chainhash.Hash) uint64 {
	k0 := uint64(s.sigCacheKey[0]) | uint64(s.sigCacheKey[1])<<8 |
		uint64(s.sigCacheKey[2])<<16 | uint64(s.sigCacheKey[3])<<24 |
		uint64(s.sigCacheKey[4])<<32 | uint64(s.sigCacheKey[5])<<40 |
		uint64(s.sigCacheKey[6])<<48 | uint64(s.sigCacheKey[7])<<56
	k1 := uint64(s.sigCacheKey[8]) | uint64(s.sigCacheKey[9])<<8 |
		uint64(s.sigCacheKey[10])<<16 | uint64(s.sigCacheKey[11])<<24 |
		uint64(s.sigCacheKey[12])<<32 | uint64(s.sigCacheKey[13])<<40 |
		uint64(s.sigCacheKey[14])<<48 | uint64(s.sigCacheKey[15])<<56
	return siphash.Hash(k0, k1, hash[:])
}

// CachedTipHeight returns the height last reported to the store by
// TipDriver.
func (s *VoteStore) CachedTipHeight() int64 {
	s.muVotes.RLock()
	defer s.muVotes.RUnlock()
	return s.cachedTip
}

// SetCachedTipHeight updates the cached tip height. Only TipDriver calls
// this.
func (s *VoteStore) SetCachedTipHeight(height int64) {
	s.muVotes.Lock()
	s.cachedTip = height
	s.muVotes.Unlock()
}

// HasVerified reports whether a verified vote with the given hash is
// present.
func (s *VoteStore) HasVerified(hash chainhash.Hash) bool {
	s.muVotes.RLock()
	defer s.muVotes.RUnlock()
	v, ok := s.votesByHash[hash]
	return ok && v.Verified
}

// CanVote implements the one-vote-per-(voter, height) rule (spec §4.C): it
// returns false if voter already voted at height, otherwise it records
// height as the voter's last permitted vote and returns true.
func (s *VoteStore) CanVote(voter Outpoint, height int64) bool {
	s.muVotes.Lock()
	defer s.muVotes.Unlock()

	if last, ok := s.lastVoteHeight[voter]; ok && last == height {
		return false
	}
	s.lastVoteHeight[voter] = height
	return true
}

// tallyLocked returns the tally for height, creating it lazily. Caller
// must hold muTallies for writing.
func (s *VoteStore) tallyLocked(height int64) *BlockPayeeTally {
	t, ok := s.talliesByHeight[height]
	if !ok {
		t = NewBlockPayeeTally(height)
		s.talliesByHeight[height] = t
	}
	return t
}

// Tally returns a read-only snapshot handle for height's tally, or nil if
// no votes have been admitted for that height.
func (s *VoteStore) Tally(height int64) *BlockPayeeTally {
	s.muTallies.RLock()
	defer s.muTallies.RUnlock()
	return s.talliesByHeight[height]
}

// Admit validates and stores vote (spec §4.C). It returns true if the vote
// was newly admitted and verified. Duplicate, stale, or invalid votes are
// dropped and false is returned; the caller inspects the returned error to
// decide on ban side effects per spec §7.
func (s *VoteStore) Admit(vote *PaymentVote, validator *VoteValidator, relayingPeer Peer) (bool, error) {
	hash := vote.Hash()

	short := s.shortHash(hash)
	if _, seen := s.sigCache.Load(short); seen {
		s.muVotes.RLock()
		_, exists := s.votesByHash[hash]
		s.muVotes.RUnlock()
		if exists {
			return false, voteError(ErrDuplicateVote, "vote %s already admitted", hash)
		}
	}

	s.muVotes.Lock()
	if _, exists := s.votesByHash[hash]; exists {
		s.muVotes.Unlock()
		return false, voteError(ErrDuplicateVote, "vote %s already admitted", hash)
	}
	s.votesByHash[hash] = vote
	s.muVotes.Unlock()

	if err := validator.Validate(vote, relayingPeer); err != nil {
		s.muVotes.Lock()
		delete(s.votesByHash, hash)
		s.muVotes.Unlock()
		return false, err
	}

	// L_tallies before L_votes, per spec §5.
	s.muTallies.Lock()
	tally := s.tallyLocked(vote.Height)
	s.muTallies.Unlock()

	tally.Add(hash, vote.Payee)

	s.muVotes.Lock()
	vote.Verified = true
	s.muVotes.Unlock()

	s.sigCache.Store(short, struct{}{})
	return true, nil
}

// Prune removes every vote and tally whose height is more than limit
// blocks behind the cached tip height (spec §4.C, invariant 3).
func (s *VoteStore) Prune(limit int64) {
	tip := s.CachedTipHeight()

	s.muTallies.Lock()
	for height := range s.talliesByHeight {
		if tip-height > limit {
			delete(s.talliesByHeight, height)
		}
	}
	s.muTallies.Unlock()

	s.muVotes.Lock()
	for hash, vote := range s.votesByHash {
		if tip-vote.Height > limit {
			delete(s.votesByHash, hash)
		}
	}
	s.muVotes.Unlock()
}

// RemoveUnknownVoters drops any admitted vote whose voter no longer
// resolves in registry, matching the original implementation's periodic
// compaction (SPEC_FULL §3). Tallies are left untouched: the removed votes'
// hashes still count toward their payees' vote counts until the tally's
// height ages out via Prune.
func (s *VoteStore) RemoveUnknownVoters(registry MasternodeRegistry) {
	s.muVotes.Lock()
	defer s.muVotes.Unlock()
	for hash, vote := range s.votesByHash {
		if _, ok := registry.InfoByOutpoint(vote.VoterOutpoint); !ok {
			delete(s.votesByHash, hash)
		}
	}
}

// IncrementMissCounter bumps the miss counter for outpoint, used by
// TipDriver.CheckPreviousBlockVotes (spec §4.H).
func (s *VoteStore) IncrementMissCounter(outpoint Outpoint) {
	s.muTallies.Lock()
	defer s.muTallies.Unlock()
	s.missCounters[outpoint]++
}

// MissCounter returns the number of times outpoint has failed to vote when
// expected to.
func (s *VoteStore) MissCounter(outpoint Outpoint) uint32 {
	s.muTallies.RLock()
	defer s.muTallies.RUnlock()
	return s.missCounters[outpoint]
}

// VoteCount returns the total number of admitted votes, used for
// diagnostics and tests.
func (s *VoteStore) VoteCount() int {
	s.muVotes.RLock()
	defer s.muVotes.RUnlock()
	return len(s.votesByHash)
}

// TallyCount returns the number of distinct heights with a tally, used for
// diagnostics and tests.
func (s *VoteStore) TallyCount() int {
	s.muTallies.RLock()
	defer s.muTallies.RUnlock()
	return len(s.talliesByHeight)
}
