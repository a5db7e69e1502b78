// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnwire implements the wire messages carrying masternode payment
// votes and their synchronization between peers. Each message type
// implements wire.Message so it can be sent and received through the
// same transport as the rest of the protocol.
package mnwire
