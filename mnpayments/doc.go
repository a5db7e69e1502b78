// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnpayments implements the masternode payment voting subsystem:
// election of per-tier payees, collection and storage of payment votes cast
// by the active masternode set, validation of those votes, and the block
// payment-output checks and synthesis that depend on them.
//
// The subsystem never performs I/O of its own. Chain data, the masternode
// membership list, governance triggers, and peer transport are all consumed
// through the narrow interfaces declared in interfaces.go.
package mnpayments
