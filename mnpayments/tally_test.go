// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/wire"
)

func pkh(b byte) []byte {
	h := make([]byte, 20)
	h[0] = b
	return h
}

func TestBlockPayeeTallyBestPayeeBreaksTiesByFirstSeen(t *testing.T) {
	tally := NewBlockPayeeTally(100)
	first := ScriptForPKH(pkh(1))
	second := ScriptForPKH(pkh(2))

	tally.Add(chainhash.Hash{0x01}, first)
	tally.Add(chainhash.Hash{0x02}, second)

	best, ok := tally.BestPayee()
	if !ok {
		t.Fatal("expected a best payee")
	}
	if !best.Equal(first) {
		t.Errorf("tie should favor the first payee encountered, got %x want %x", []byte(best), []byte(first))
	}
}

func TestBlockPayeeTallyBestPayeeStrictMajority(t *testing.T) {
	tally := NewBlockPayeeTally(100)
	leader := ScriptForPKH(pkh(1))
	trailer := ScriptForPKH(pkh(2))

	tally.Add(chainhash.Hash{0x01}, leader)
	tally.Add(chainhash.Hash{0x02}, leader)
	tally.Add(chainhash.Hash{0x03}, trailer)

	best, ok := tally.BestPayee()
	if !ok || !best.Equal(leader) {
		t.Errorf("expected leader with 2 votes to win, got %x", []byte(best))
	}
}

func TestBlockPayeeTallyAddIsIdempotent(t *testing.T) {
	tally := NewBlockPayeeTally(100)
	payee := ScriptForPKH(pkh(1))
	hash := chainhash.Hash{0x01}

	tally.Add(hash, payee)
	tally.Add(hash, payee)

	if !tally.HasPayeeWithVotes(payee, 1) {
		t.Fatal("expected exactly 1 vote after adding the same hash twice")
	}
	if tally.HasPayeeWithVotes(payee, 2) {
		t.Fatal("re-adding the same vote hash must not double count")
	}
}

func TestBlockPayeeTallyContainsRequiredPaymentBelowThreshold(t *testing.T) {
	tally := NewBlockPayeeTally(100)
	payee := ScriptForPKH(pkh(1))
	for i := 0; i < SigsRequired-1; i++ {
		var h chainhash.Hash
		h[0] = byte(i + 1)
		tally.Add(h, payee)
	}

	tx := wire.NewMsgTx()
	tx.AddTxOut(&wire.TxOut{Value: 1, PkScript: []byte{0x6a}})

	if !tally.ContainsRequiredPayment(tx) {
		t.Fatal("a tally below SigsRequired should accept any block (longest chain rule)")
	}
}

func TestBlockPayeeTallyContainsRequiredPaymentAtThreshold(t *testing.T) {
	tally := NewBlockPayeeTally(100)
	payee := ScriptForPKH(pkh(1))
	for i := 0; i < SigsRequired; i++ {
		var h chainhash.Hash
		h[0] = byte(i + 1)
		tally.Add(h, payee)
	}

	bad := wire.NewMsgTx()
	bad.AddTxOut(&wire.TxOut{Value: 1, PkScript: []byte{0x6a}})
	if tally.ContainsRequiredPayment(bad) {
		t.Fatal("a block omitting the clear-winner payee should be rejected")
	}

	good := wire.NewMsgTx()
	good.AddTxOut(&wire.TxOut{Value: 1, PkScript: []byte(payee)})
	if !tally.ContainsRequiredPayment(good) {
		t.Fatal("a block paying the clear-winner payee should be accepted")
	}
}

func TestBlockPayeeTallyRequiredPaymentsStringEmpty(t *testing.T) {
	tally := NewBlockPayeeTally(100)
	if got := tally.RequiredPaymentsString(); got != "Unknown" {
		t.Errorf("RequiredPaymentsString() on an empty tally = %q, want %q", got, "Unknown")
	}
}
