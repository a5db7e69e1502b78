// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnwire

import (
	"encoding/binary"
	"io"
)

// AssetMasternodePaymentVotes identifies the masternode-payment-votes
// asset in a MsgSyncStatusCount, mirroring the sync-asset identifiers the
// wider masternode sync subsystem tracks.
const AssetMasternodePaymentVotes int32 = 8

// MsgSyncStatusCount reports the terminal count for one completed
// synchronization asset. It implements wire.Message.
type MsgSyncStatusCount struct {
	AssetID int32
	Count   int32
}

// NewMsgSyncStatusCount returns a new MsgSyncStatusCount.
func NewMsgSyncStatusCount(assetID, count int32) *MsgSyncStatusCount {
	return &MsgSyncStatusCount{AssetID: assetID, Count: count}
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
// This is part of the wire.Message interface implementation.
func (msg *MsgSyncStatusCount) BtcDecode(r io.Reader, pver uint32) error {
	if err := binary.Read(r, binary.LittleEndian, &msg.AssetID); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &msg.Count)
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
// This is part of the wire.Message interface implementation.
func (msg *MsgSyncStatusCount) BtcEncode(w io.Writer, pver uint32) error {
	if err := binary.Write(w, binary.LittleEndian, msg.AssetID); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, msg.Count)
}

// Command returns the protocol command string for the message. This is
// part of the wire.Message interface implementation.
func (msg *MsgSyncStatusCount) Command() string {
	return CmdSyncStatusCount
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the wire.Message interface implementation.
func (msg *MsgSyncStatusCount) MaxPayloadLength(pver uint32) uint32 {
	return 8
}
