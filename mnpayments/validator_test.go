// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"errors"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// signedVote builds a vote for voter at height, signed with priv, ready to
// run through a VoteValidator under test.
func signedVote(t *testing.T, signer Signer, voter Outpoint, height int64, priv []byte) *PaymentVote {
	t.Helper()
	vote := &PaymentVote{
		VoterOutpoint: voter,
		Height:        height,
		Payee:         ScriptForPKH(pkh(1)),
	}
	if err := vote.Sign(signer, priv); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return vote
}

func TestVoteValidatorRejectsUnknownVoter(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := Outpoint{Index: 1}
	vote := signedVote(t, signer, voter, 1000, priv.Serialize())

	registry := newFakeRegistry()
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return true }, func() bool { return false },
		func() int64 { return StorageLimit(0) })

	err := validator.Validate(vote, fakePeer("p1"))
	if !errors.Is(err, ErrUnknownVoter) {
		t.Fatalf("Validate = %v, want ErrUnknownVoter", err)
	}
	if len(registry.asked) != 1 || registry.asked[0] != voter {
		t.Errorf("expected the unknown voter to be asked for, got %v", registry.asked)
	}
}

func TestVoteValidatorRejectsStaleProtocol(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := Outpoint{Index: 1}
	vote := signedVote(t, signer, voter, 1000, priv.Serialize())

	registry := newFakeRegistry()
	registry.add(MasternodeInfo{
		Outpoint:        voter,
		SigningPubKey:   priv.PubKey().SerializeCompressed(),
		ProtocolVersion: ProtoVersionLegacyMin - 1,
	}, 1)
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return true }, func() bool { return false },
		func() int64 { return StorageLimit(registry.Size()) })

	err := validator.Validate(vote, fakePeer("p1"))
	if !errors.Is(err, ErrStaleProtocol) {
		t.Fatalf("Validate = %v, want ErrStaleProtocol", err)
	}
}

func TestVoteValidatorRejectsBadRankAndBansRelayingPeer(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := Outpoint{Index: 1}
	// Vote targets a future height (but within the admissible window) so
	// the >validationHeight ban gate fires without tripping ErrOutOfWindow.
	vote := signedVote(t, signer, voter, 1010, priv.Serialize())

	registry := newFakeRegistry()
	registry.add(MasternodeInfo{
		Outpoint:        voter,
		SigningPubKey:   priv.PubKey().SerializeCompressed(),
		ProtocolVersion: ProtoVersionUpdatedMin,
	}, 2*SigsTotal+1)
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return true }, func() bool { return false },
		func() int64 { return StorageLimit(registry.Size()) })

	err := validator.Validate(vote, fakePeer("p1"))
	if !errors.Is(err, ErrBadRank) {
		t.Fatalf("Validate = %v, want ErrBadRank", err)
	}
	if peerBus.misbehaved["p1"] != BanWeightBadRank {
		t.Errorf("expected relaying peer to be banned %d, got %d", BanWeightBadRank, peerBus.misbehaved["p1"])
	}
}

func TestVoteValidatorBadRankLegacySentinelNotBanned(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := LegacySentinelOutpoint
	vote := signedVote(t, signer, voter, 1010, priv.Serialize())

	registry := newFakeRegistry()
	registry.add(MasternodeInfo{
		Outpoint:        voter,
		SigningPubKey:   priv.PubKey().SerializeCompressed(),
		ProtocolVersion: ProtoVersionUpdatedMin,
	}, 2*SigsTotal+1)
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return true }, func() bool { return false },
		func() int64 { return StorageLimit(registry.Size()) })

	err := validator.Validate(vote, fakePeer("p1"))
	if !errors.Is(err, ErrBadRank) {
		t.Fatalf("Validate = %v, want ErrBadRank", err)
	}
	if peerBus.misbehaved["p1"] != 0 {
		t.Errorf("the legacy sentinel outpoint must not be punished, got weight %d", peerBus.misbehaved["p1"])
	}
}

func TestVoteValidatorRejectsBadSignatureAndBansWhenFullySynced(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := Outpoint{Index: 1}
	vote := signedVote(t, signer, voter, 1010, priv.Serialize())
	vote.Height = 1011 // tamper after signing, future relative to tip 1000 but still in-window

	registry := newFakeRegistry()
	registry.add(MasternodeInfo{
		Outpoint:        voter,
		SigningPubKey:   priv.PubKey().SerializeCompressed(),
		ProtocolVersion: ProtoVersionUpdatedMin,
	}, 1)
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return true }, func() bool { return false },
		func() int64 { return StorageLimit(registry.Size()) })

	err := validator.Validate(vote, fakePeer("p1"))
	if err == nil {
		t.Fatal("expected a signature verification failure after tampering with height")
	}
	if peerBus.misbehaved["p1"] != BanWeightBadSig {
		t.Errorf("expected the relaying peer to be banned %d while fully synced, got %d", BanWeightBadSig, peerBus.misbehaved["p1"])
	}
	if len(registry.asked) != 1 {
		t.Errorf("expected a re-ask for the voter after a bad signature, got %v", registry.asked)
	}
}

func TestVoteValidatorBadSignatureNotBannedWhenNotFullySynced(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := Outpoint{Index: 1}
	vote := signedVote(t, signer, voter, 1010, priv.Serialize())
	vote.Height = 1011

	registry := newFakeRegistry()
	registry.add(MasternodeInfo{
		Outpoint:        voter,
		SigningPubKey:   priv.PubKey().SerializeCompressed(),
		ProtocolVersion: ProtoVersionUpdatedMin,
	}, 1)
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return false }, func() bool { return false },
		func() int64 { return StorageLimit(registry.Size()) })

	if err := validator.Validate(vote, fakePeer("p1")); err == nil {
		t.Fatal("expected a signature verification failure after tampering with height")
	}
	if peerBus.misbehaved["p1"] != 0 {
		t.Errorf("should not ban while not fully synced, got weight %d", peerBus.misbehaved["p1"])
	}
}

func TestVoteValidatorRejectsOutOfWindowVote(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := Outpoint{Index: 1}
	vote := signedVote(t, signer, voter, 1000+FutureWindow+1, priv.Serialize())

	registry := newFakeRegistry()
	registry.add(MasternodeInfo{
		Outpoint:        voter,
		SigningPubKey:   priv.PubKey().SerializeCompressed(),
		ProtocolVersion: ProtoVersionUpdatedMin,
	}, 1)
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return true }, func() bool { return false },
		func() int64 { return StorageLimit(registry.Size()) })

	err := validator.Validate(vote, fakePeer("p1"))
	if !errors.Is(err, ErrOutOfWindow) {
		t.Fatalf("Validate = %v, want ErrOutOfWindow", err)
	}
}

func TestVoteValidatorAcceptsValidVote(t *testing.T) {
	signer := NewSecp256k1Signer()
	priv, _ := secp256k1.GeneratePrivateKey()
	voter := Outpoint{Index: 1}
	vote := signedVote(t, signer, voter, 1000, priv.Serialize())

	registry := newFakeRegistry()
	registry.add(MasternodeInfo{
		Outpoint:        voter,
		SigningPubKey:   priv.PubKey().SerializeCompressed(),
		ProtocolVersion: ProtoVersionUpdatedMin,
	}, 1)
	peerBus := newFakePeerBus()
	chain := &fakeChain{tip: 1000}
	validator := NewVoteValidator(registry, peerBus, chain, signer,
		func() bool { return true }, func() bool { return false },
		func() int64 { return StorageLimit(registry.Size()) })

	if err := validator.Validate(vote, fakePeer("p1")); err != nil {
		t.Fatalf("Validate on a well-formed vote: %v", err)
	}
}
