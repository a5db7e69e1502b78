// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnwire

import (
	"encoding/binary"
	"io"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Protocol command strings for the masternode payment voting messages.
const (
	CmdMNPaymentVote   = "mnw"
	CmdMNSyncRequest   = "mnwsync"
	CmdSyncStatusCount = "ssc"
)

// MaxPayeeScriptSize and MaxSignatureSize bound the variable-length fields
// of MsgMNPaymentVote, guarding against a maliciously oversized payload.
const (
	MaxPayeeScriptSize = 10000
	MaxSignatureSize   = 256
)

func readOutpoint(r io.Reader, hash *chainhash.Hash, index *uint32) error {
	if _, err := io.ReadFull(r, hash[:]); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, index)
}

func writeOutpoint(w io.Writer, hash chainhash.Hash, index uint32) error {
	if _, err := w.Write(hash[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, index)
}
