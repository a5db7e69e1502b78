// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnwire

import (
	"encoding/binary"
	"io"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/wire"
)

// MsgMNPaymentVote announces a single masternode payment vote. It
// implements wire.Message.
type MsgMNPaymentVote struct {
	VoterTxHash chainhash.Hash
	VoterIndex  uint32
	BlockHeight int64
	Payee       []byte
	Signature   []byte
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
// This is part of the wire.Message interface implementation.
func (msg *MsgMNPaymentVote) BtcDecode(r io.Reader, pver uint32) error {
	if err := readOutpoint(r, &msg.VoterTxHash, &msg.VoterIndex); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &msg.BlockHeight); err != nil {
		return err
	}
	payee, err := wire.ReadVarBytes(r, pver, MaxPayeeScriptSize, "payee")
	if err != nil {
		return err
	}
	msg.Payee = payee

	sig, err := wire.ReadVarBytes(r, pver, MaxSignatureSize, "signature")
	if err != nil {
		return err
	}
	msg.Signature = sig
	return nil
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
// This is part of the wire.Message interface implementation.
func (msg *MsgMNPaymentVote) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeOutpoint(w, msg.VoterTxHash, msg.VoterIndex); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, msg.BlockHeight); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, pver, msg.Payee); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, pver, msg.Signature)
}

// Command returns the protocol command string for the message. This is
// part of the wire.Message interface implementation.
func (msg *MsgMNPaymentVote) Command() string {
	return CmdMNPaymentVote
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the wire.Message interface implementation.
func (msg *MsgMNPaymentVote) MaxPayloadLength(pver uint32) uint32 {
	return uint32(chainhash.HashSize) + 4 + 8 +
		uint32(wire.VarIntSerializeSize(MaxPayeeScriptSize)) + MaxPayeeScriptSize +
		uint32(wire.VarIntSerializeSize(MaxSignatureSize)) + MaxSignatureSize
}
