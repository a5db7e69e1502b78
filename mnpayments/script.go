// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"bytes"

	"github.com/decred/dcrd/txscript/v4"
)

// ScriptBytes is an opaque payment destination script. It is compared
// bytewise; no attempt is made to canonicalize or interpret it beyond what
// is required to build or disassemble a standard pay-to-pubkey-hash script.
type ScriptBytes []byte

// Equal reports whether two scripts are byte-for-byte identical.
func (s ScriptBytes) Equal(other ScriptBytes) bool {
	return bytes.Equal(s, other)
}

// Asm returns the canonical ASM disassembly of the script, as used in the
// PaymentVote signing string (spec §4.A). Disassembly failure yields the
// empty string rather than propagating an error, matching the original
// implementation's "best effort" diagnostic string behavior; callers that
// need to detect malformed scripts should do so before signing.
func (s ScriptBytes) Asm() string {
	asm, err := txscript.DisasmString(s)
	if err != nil {
		return ""
	}
	return asm
}

// ScriptForPKH builds the standard pay-to-pubkey-hash script paying the
// given 20-byte hash160, used both for elected payees (spec §4.D item 2)
// and for the failover payee derived from the spork public address.
func ScriptForPKH(pkh []byte) ScriptBytes {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(pkh).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		// Only possible if pkh exceeds the script engine's push-data
		// limits, which a 20-byte hash never will.
		log.Warnf("failed to build pay-to-pubkey-hash script: %v", err)
		return nil
	}
	return script
}
