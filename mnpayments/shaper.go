// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrd/wire"
)

// BlockShaper builds and inspects the payment outputs of a candidate
// coinbase or coinstake transaction (spec §4.E).
type BlockShaper struct {
	Elector         *PayeeElector
	Schedule        PaymentSchedule
	Store           *VoteStore
	Superblock      SuperblockOracle
	Spork           SporkBus
	SuperblockStart int64

	// BudgetWindow reports whether height falls inside the legacy budget
	// payment window, and LegacySuperblockSporkActive reports whether the
	// old-style budget spork tolerating a missing payment there is on.
	BudgetWindow                func(height int64) bool
	LegacySuperblockSporkActive func() bool
}

// FillPayments appends the three tiers' payment outputs to tx and rebalances
// the staker/coinbase output so total outputs remain correct (spec §4.E,
// testable properties 5 and 6).
func (b *BlockShaper) FillPayments(tx *wire.MsgTx, height int64, blockReward dcrutil.Amount, isProofOfStake bool) {
	winners := b.Elector.Elect(height)

	amounts := make([]dcrutil.Amount, TierCount)
	var totalPayments dcrutil.Amount
	for tier := 0; tier < TierCount; tier++ {
		amounts[tier] = b.Schedule.MasternodePayment(tier, blockReward)
		totalPayments += amounts[tier]
	}

	outputsBefore := len(tx.TxOut)
	for tier := 0; tier < TierCount; tier++ {
		tx.AddTxOut(&wire.TxOut{
			Value:    int64(amounts[tier]),
			PkScript: winners[tier].Script,
		})
	}

	switch {
	case isProofOfStake && outputsBefore == 3:
		splitIndex := 1
		if tx.TxOut[2].Value > tx.TxOut[1].Value {
			splitIndex = 2
		}
		tx.TxOut[splitIndex].Value -= int64(totalPayments)
	case isProofOfStake:
		tx.TxOut[1].Value -= int64(totalPayments)
	default:
		tx.TxOut[0].Value = int64(blockReward) - int64(totalPayments)
	}
}

// ValidatePayments reports whether tx's payment outputs satisfy height's
// requirements (spec §4.E).
func (b *BlockShaper) ValidatePayments(tx *wire.MsgTx, height int64, expectedReward, actualReward dcrutil.Amount) (bool, error) {
	if actualReward > expectedReward {
		return false, voteError(ErrOverpaidBlock, "block at height %d pays %d, exceeding expected reward %d",
			height, actualReward, expectedReward)
	}

	if !b.Spork.IsActive(SporkMasternodePaymentEnforcement) {
		log.Warnf("masternode payment enforcement disabled, accepting any payee at height %d", height)
		return true, nil
	}

	if height < b.SuperblockStart {
		if b.payeeCheck(tx, height) {
			return true, nil
		}
		if b.BudgetWindow != nil && b.BudgetWindow(height) && b.LegacySuperblockSporkActive != nil && b.LegacySuperblockSporkActive() {
			return true, nil
		}
		return false, voteError(ErrMissingRequiredPayment, "block at height %d is missing a required masternode payment", height)
	}

	if b.Spork.IsActive(SporkSuperblocksEnabled) && b.Superblock.IsTriggered(height) {
		if b.Superblock.Validate(tx, height, expectedReward, actualReward) {
			return true, nil
		}
		return false, voteError(ErrMissingRequiredPayment, "invalid superblock at height %d", height)
	}

	if b.payeeCheck(tx, height) {
		return true, nil
	}
	return false, voteError(ErrMissingRequiredPayment, "block at height %d is missing a required masternode payment", height)
}

func (b *BlockShaper) payeeCheck(tx *wire.MsgTx, height int64) bool {
	tally := b.Store.Tally(height)
	if tally == nil {
		// No votes recorded for this height at all: accept the longest
		// chain, matching BlockPayeeTally.ContainsRequiredPayment's
		// behavior for a tally with no entries.
		return true
	}
	return tally.ContainsRequiredPayment(tx)
}

// AdjustExisting locates existingOutput in tx.TxOut by value+script
// equality and, if found, decreases the second-to-last output's value by
// its value (spec §4.E), for use when an external builder already
// inserted a masternode output and subsequent processing must rebalance.
func (b *BlockShaper) AdjustExisting(tx *wire.MsgTx, existingOutput *wire.TxOut) {
	for i, out := range tx.TxOut {
		if out.Value == existingOutput.Value && ScriptBytes(out.PkScript).Equal(existingOutput.PkScript) {
			if len(tx.TxOut) < 2 {
				return
			}
			tx.TxOut[len(tx.TxOut)-2].Value -= tx.TxOut[i].Value
			return
		}
	}
}
