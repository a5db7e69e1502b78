// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Outpoint identifies the collateral UTXO backing a masternode. It is
// compared and ordered strictly by its raw bytes, matching the on-chain
// outpoint it refers to.
type Outpoint struct {
	TxID  chainhash.Hash
	Index uint32
}

// Equal reports whether two outpoints refer to the same UTXO.
func (o Outpoint) Equal(other Outpoint) bool {
	return o.TxID == other.TxID && o.Index == other.Index
}

// Less orders outpoints by raw bytes: txid first, then index.
func (o Outpoint) Less(other Outpoint) bool {
	if cmp := bytes.Compare(o.TxID[:], other.TxID[:]); cmp != 0 {
		return cmp < 0
	}
	return o.Index < other.Index
}

// ShortString returns the compact "txid-index" form used in the
// PaymentVote canonical signing string (spec §4.A).
func (o Outpoint) ShortString() string {
	return fmt.Sprintf("%s-%d", o.TxID.String(), o.Index)
}

// bytes returns the raw serialized form of the outpoint, used as the
// vote-hash preimage.
func (o Outpoint) bytes() []byte {
	buf := make([]byte, chainhash.HashSize+4)
	copy(buf, o.TxID[:])
	binary.LittleEndian.PutUint32(buf[chainhash.HashSize:], o.Index)
	return buf
}
