// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnwire

import (
	"encoding/binary"
	"io"
)

// MsgMNWSync requests a peer's current masternode payment vote set. It
// implements wire.Message.
type MsgMNWSync struct {
	// CountNeeded is carried for wire compatibility with older peers;
	// this implementation always answers with its full known vote set
	// regardless of its value.
	CountNeeded int32
}

// NewMsgMNWSync returns a new MsgMNWSync.
func NewMsgMNWSync(countNeeded int32) *MsgMNWSync {
	return &MsgMNWSync{CountNeeded: countNeeded}
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
// This is part of the wire.Message interface implementation.
func (msg *MsgMNWSync) BtcDecode(r io.Reader, pver uint32) error {
	return binary.Read(r, binary.LittleEndian, &msg.CountNeeded)
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
// This is part of the wire.Message interface implementation.
func (msg *MsgMNWSync) BtcEncode(w io.Writer, pver uint32) error {
	return binary.Write(w, binary.LittleEndian, msg.CountNeeded)
}

// Command returns the protocol command string for the message. This is
// part of the wire.Message interface implementation.
func (msg *MsgMNWSync) Command() string {
	return CmdMNSyncRequest
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the wire.Message interface implementation.
func (msg *MsgMNWSync) MaxPayloadLength(pver uint32) uint32 {
	return 4
}
