// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// secp256k1Signer is the default Signer implementation, backed by the same
// curve the teacher's txscript package uses for transaction signatures.
type secp256k1Signer struct{}

// NewSecp256k1Signer returns a Signer backed by secp256k1 ECDSA, hashing
// the message with blake256-derived chainhash before signing, matching the
// teacher's convention of signing over a chainhash digest rather than the
// raw message bytes.
func NewSecp256k1Signer() Signer {
	return secp256k1Signer{}
}

func (secp256k1Signer) Sign(msg []byte, priv []byte) ([]byte, error) {
	privKey := secp256k1.PrivKeyFromBytes(priv)
	defer privKey.Zero()
	digest := chainhash.HashB(msg)
	sig := ecdsa.Sign(privKey, digest)
	return sig.Serialize(), nil
}

func (secp256k1Signer) Verify(pubKey []byte, msg []byte, sig []byte) bool {
	key, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	parsedSig, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	digest := chainhash.HashB(msg)
	return parsedSig.Verify(digest, key)
}
