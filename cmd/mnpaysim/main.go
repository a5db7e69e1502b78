// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/EXCCoin/mnpayd/mnpayments"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrd/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mainLog.Infof("starting masternode payment voting simulation: %d masternodes, %d tips",
		cfg.Masternodes, cfg.Tips)

	signer := mnpayments.NewSecp256k1Signer()
	registry := newSimRegistry()

	nodes := make([]*simNode, 0, cfg.Masternodes)
	for i := 0; i < cfg.Masternodes; i++ {
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return err
		}
		node := &simNode{
			info: mnpayments.MasternodeInfo{
				Outpoint: mnpayments.Outpoint{
					TxID:  hashForHeight(int64(i)),
					Index: 0,
				},
				CollateralPubKeyHash: chainPubKeyHash(priv.PubKey().SerializeCompressed()),
				SigningPubKey:        priv.PubKey().SerializeCompressed(),
				ProtocolVersion:      mnpayments.ProtoVersionUpdatedMin,
			},
			privKey: priv.Serialize(),
		}
		registry.add(node)
		nodes = append(nodes, node)
	}

	peerBus := simPeerBus{}
	chain := &simChainView{}
	spork := &simSporkBus{
		payUpdatedNodes: cfg.PayUpdatedNodes,
		failoverPayee:   mnpayments.ScriptForPKH(chainPubKeyHash([]byte("failover"))),
	}

	store := mnpayments.NewVoteStore()
	storageLimit := func() int64 { return mnpayments.StorageLimit(registry.Size()) }
	fullySync := func() bool { return true }
	payUpdatedActive := func() bool { return spork.IsActive(mnpayments.SporkPayUpdatedNodes) }

	validator := mnpayments.NewVoteValidator(registry, peerBus, chain, signer, fullySync, payUpdatedActive, storageLimit)
	elector := mnpayments.NewPayeeElector(registry, spork)
	shaper := &mnpayments.BlockShaper{
		Elector:         elector,
		Schedule:        simPaymentSchedule{},
		Store:           store,
		Superblock:      simSuperblockOracle{},
		Spork:           spork,
		SuperblockStart: 1 << 40,
	}
	messages := mnpayments.NewMessageHandler(store, validator, registry, peerBus, chain, fullySync, nil, storageLimit)

	// This harness drives the tip itself rather than playing the role of
	// any single masternode, so it runs TipDriver with IsMasternode
	// false and casts votes for every registered node directly below,
	// exercising the same elect-sign-admit-relay path TipDriver.OnNewTip
	// would run for a single self-owned masternode.
	tipDriver := mnpayments.NewTipDriver(store, elector, registry, validator, signer, peerBus,
		func() bool { return false }, func() bool { return false }, storageLimit)

	blockReward := dcrutil.Amount(5000000000)
	for h := int64(1); h <= int64(cfg.Tips); h++ {
		chain.setTip(h)
		tipDriver.OnNewTip(h)
		castElectedVote(store, elector, registry, validator, peerBus, signer, nodes, h+10)

		tx := wire.NewMsgTx()
		tx.AddTxOut(&wire.TxOut{Value: int64(blockReward)})
		shaper.FillPayments(tx, h, blockReward, false)

		if ok, err := shaper.ValidatePayments(tx, h, blockReward, blockReward); !ok {
			mainLog.Warnf("height %d: payment validation failed: %v", h, err)
		}

		if h%20 == 0 {
			for p := 0; p < cfg.PeerCount; p++ {
				messages.RequestLowDataBlocks(simPeer(fmt.Sprintf("peer-%d", p)))
			}
		}
	}

	mainLog.Infof("simulation complete: %d votes admitted, %d tallied heights",
		store.VoteCount(), store.TallyCount())
	return nil
}

func chainPubKeyHash(data []byte) []byte {
	return dcrutil.Hash160(data)
}

// castElectedVote elects the tier-0 payee for height and casts a vote for
// it from every simulated masternode whose own rank qualifies, mirroring
// TipDriver.castOwnVote (original_source ProcessBlock): every node ranked
// at or above SigsTotal votes for the same queue-computed winner,
// regardless of whether it is itself that winner, which is what lets a
// payee accumulate SigsRequired distinct votes in the simulation.
func castElectedVote(store *mnpayments.VoteStore, elector *mnpayments.PayeeElector, registry *simRegistry, validator *mnpayments.VoteValidator, peerBus mnpayments.PeerBus, signer mnpayments.Signer, nodes []*simNode, height int64) {
	winners := elector.Elect(height)
	tier0 := winners[0]

	for _, n := range nodes {
		rank, ok := registry.Rank(n.info.Outpoint, height-mnpayments.VoteRefOffset, mnpayments.ProtoVersionLegacyMin)
		if !ok || rank > mnpayments.SigsTotal {
			continue
		}

		if !store.CanVote(n.info.Outpoint, height) {
			continue
		}

		vote := &mnpayments.PaymentVote{
			VoterOutpoint: n.info.Outpoint,
			Height:        height,
			Payee:         tier0.Script,
		}
		if err := vote.Sign(signer, n.privKey); err != nil {
			mnpLog.Errorf("failed to sign simulated vote: %v", err)
			continue
		}

		admitted, err := store.Admit(vote, validator, nil)
		if err != nil || !admitted {
			mnpLog.Debugf("simulated vote not admitted: %v", err)
			continue
		}
		peerBus.RelayInventory(mnpayments.Inv{Type: mnpayments.InvTypeMasternodePaymentVote, Hash: vote.Hash()})
	}
}
