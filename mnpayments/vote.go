// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"strconv"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// PaymentVote is an immutable record of one masternode's vote for a
// (height, payee) pair (spec §3, §4.A).
type PaymentVote struct {
	VoterOutpoint Outpoint
	Height        int64
	Payee         ScriptBytes
	Signature     []byte
	Verified      bool
}

// canonicalString returns the message string PaymentVote signatures are
// computed over. It purposely depends only on the outpoint's short form
// and the payee's ASM disassembly so any observer recomputes identical
// bytes regardless of internal serialization choices (spec §4.A).
func (v *PaymentVote) canonicalString() string {
	return v.VoterOutpoint.ShortString() + strconv.FormatInt(v.Height, 10) + v.Payee.Asm()
}

// Sign computes the vote's signature over the canonical string using the
// given signer and private key, bound to the voter's masternode key.
func (v *PaymentVote) Sign(signer Signer, priv []byte) error {
	sig, err := signer.Sign([]byte(v.canonicalString()), priv)
	if err != nil {
		return voteError(ErrSigningFailed, "failed to sign payment vote for height %d: %v", v.Height, err)
	}
	v.Signature = sig
	return nil
}

// VerifySignature recomputes the canonical string and verifies it against
// the given signer public key.
func (v *PaymentVote) VerifySignature(signer Signer, signerPubKey []byte) error {
	if !signer.Verify(signerPubKey, []byte(v.canonicalString()), v.Signature) {
		return voteError(ErrBadSig, "invalid signature on vote for height %d from %s", v.Height, v.VoterOutpoint.ShortString())
	}
	return nil
}

// Hash returns the vote's stable 32-byte digest, also used as its
// inventory id. It covers the full (voter, height, payee, signature)
// tuple, so two votes that differ only in signature hash differently.
func (v *PaymentVote) Hash() chainhash.Hash {
	buf := make([]byte, 0, chainhash.HashSize+4+8+len(v.Payee)+len(v.Signature))
	buf = append(buf, v.VoterOutpoint.bytes()...)
	buf = append(buf, uint64ToLE(uint64(v.Height))...)
	buf = append(buf, v.Payee...)
	buf = append(buf, v.Signature...)
	return chainhash.HashH(buf)
}

func uint64ToLE(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}
