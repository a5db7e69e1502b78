// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"fmt"
	"strings"
	"sync"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/wire"
)

// PayeeEntry tracks the distinct set of votes backing one payee at a given
// height (spec §3).
type PayeeEntry struct {
	Payee      ScriptBytes
	VoteHashes map[chainhash.Hash]struct{}
}

// VoteCount returns the number of distinct votes backing this payee.
func (p *PayeeEntry) VoteCount() int {
	return len(p.VoteHashes)
}

// BlockPayeeTally is the per-height tally of distinct payees and the votes
// supporting each (spec §3, §4.B). Multiple distinct payees may coexist at
// the same height; each method takes L_payees (the mu field) itself while
// reading or mutating the payee list.
type BlockPayeeTally struct {
	mu     sync.RWMutex
	Height int64
	payees []*PayeeEntry
}

// NewBlockPayeeTally returns an empty tally for the given height.
func NewBlockPayeeTally(height int64) *BlockPayeeTally {
	return &BlockPayeeTally{Height: height}
}

// Add inserts voteHash into payee's entry, creating the entry if this is
// the first vote seen for that payee at this height. Re-adding an existing
// vote hash is a no-op (spec §4.B).
func (t *BlockPayeeTally) Add(voteHash chainhash.Hash, payee ScriptBytes) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, entry := range t.payees {
		if entry.Payee.Equal(payee) {
			entry.VoteHashes[voteHash] = struct{}{}
			return
		}
	}
	t.payees = append(t.payees, &PayeeEntry{
		Payee:      payee,
		VoteHashes: map[chainhash.Hash]struct{}{voteHash: {}},
	})
}

// BestPayee returns the payee with strictly the most votes, breaking ties
// in favor of the first payee encountered (insertion order). It returns
// false if the tally has no entries.
func (t *BlockPayeeTally) BestPayee() (ScriptBytes, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	best := -1
	var bestPayee ScriptBytes
	for _, entry := range t.payees {
		if entry.VoteCount() > best {
			best = entry.VoteCount()
			bestPayee = entry.Payee
		}
	}
	return bestPayee, best > -1
}

// HasPayeeWithVotes reports whether payee has accumulated at least n votes.
func (t *BlockPayeeTally) HasPayeeWithVotes(payee ScriptBytes, n int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, entry := range t.payees {
		if entry.VoteCount() >= n && entry.Payee.Equal(payee) {
			return true
		}
	}
	return false
}

// maxVoteCount returns the largest vote count across all tracked payees.
func (t *BlockPayeeTally) maxVoteCount() int {
	max := 0
	for _, entry := range t.payees {
		if entry.VoteCount() > max {
			max = entry.VoteCount()
		}
	}
	return max
}

// ContainsRequiredPayment reports whether tx satisfies this height's
// payment requirement (spec §4.B). If no payee has reached SigsRequired
// votes yet, the longest chain is accepted unconditionally; otherwise tx
// must pay at least one payee that has.
func (t *BlockPayeeTally) ContainsRequiredPayment(tx *wire.MsgTx) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.maxVoteCount() < SigsRequired {
		return true
	}

	for _, entry := range t.payees {
		if entry.VoteCount() < SigsRequired {
			continue
		}
		for _, out := range tx.TxOut {
			if entry.Payee.Equal(out.PkScript) {
				return true
			}
		}
	}
	return false
}

// AllVoteHashes returns every vote hash tracked across all payees at this
// height, for use by the sync producer (spec §4.G).
func (t *BlockPayeeTally) AllVoteHashes() []chainhash.Hash {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var hashes []chainhash.Hash
	for _, entry := range t.payees {
		for hash := range entry.VoteHashes {
			hashes = append(hashes, hash)
		}
	}
	return hashes
}

// RequiredPaymentsString returns a human-readable "payee:votecount, ..."
// summary for diagnostics, grounded on
// CMasternodeBlockPayees::GetRequiredPaymentsString (SPEC_FULL §3).
func (t *BlockPayeeTally) RequiredPaymentsString() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.payees) == 0 {
		return "Unknown"
	}
	parts := make([]string, 0, len(t.payees))
	for _, entry := range t.payees {
		parts = append(parts, fmt.Sprintf("%x:%d", []byte(entry.Payee), entry.VoteCount()))
	}
	return strings.Join(parts, ", ")
}
