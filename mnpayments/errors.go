// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import "fmt"

// ErrorKind identifies a class of error produced by this package, allowing
// callers to distinguish error conditions programmatically via errors.Is.
type ErrorKind string

// Error satisfies the error interface for ErrorKind so it can be compared
// against directly or wrapped in a VoteError.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error kinds returned by VoteValidator and the block-level payment checks
// (spec §7).
const (
	// ErrUnknownVoter indicates the voter's outpoint did not resolve to a
	// known masternode. The caller should query the registry but must not
	// ban the relaying peer.
	ErrUnknownVoter = ErrorKind("unknown voter")

	// ErrStaleProtocol indicates the voter's masternode is running a
	// protocol version below the minimum required for the vote's height.
	ErrStaleProtocol = ErrorKind("stale protocol version")

	// ErrBadRank indicates the voter was not within the top SigsTotal
	// ranked masternodes at the reference height.
	ErrBadRank = ErrorKind("masternode not in top rank")

	// ErrRankUnavailable indicates the registry could not produce a rank
	// for the voter at the reference height.
	ErrRankUnavailable = ErrorKind("masternode rank unavailable")

	// ErrBadSig indicates signature verification failed.
	ErrBadSig = ErrorKind("invalid vote signature")

	// ErrOutOfWindow indicates the vote's height fell outside the
	// admissible window relative to the cached tip height.
	ErrOutOfWindow = ErrorKind("vote height out of window")

	// ErrDuplicateVote indicates a vote with the same hash was already
	// admitted.
	ErrDuplicateVote = ErrorKind("duplicate vote")

	// ErrAlreadyVoted indicates the voter already cast an admitted vote
	// for this height (the one-vote-per-height rule).
	ErrAlreadyVoted = ErrorKind("voter already voted for this height")

	// ErrDuplicateSyncRequest indicates a peer repeated a sync request
	// within the fulfillment TTL.
	ErrDuplicateSyncRequest = ErrorKind("duplicate sync request")

	// ErrOverpaidBlock indicates a candidate block's actual reward
	// exceeds the expected reward.
	ErrOverpaidBlock = ErrorKind("block pays more than the expected reward")

	// ErrMissingRequiredPayment indicates a candidate block failed to pay
	// a payee with enough corroborating votes while enforcement is
	// active.
	ErrMissingRequiredPayment = ErrorKind("block is missing a required masternode payment")

	// ErrSigningFailed indicates PaymentVote.Sign could not produce a
	// signature.
	ErrSigningFailed = ErrorKind("vote signing failed")
)

// VoteError wraps an ErrorKind with a formatted, contextual description, the
// same two-piece shape the teacher's blockchain package uses for rule
// violations.
type VoteError struct {
	Kind        ErrorKind
	Description string
}

// Error implements the error interface.
func (e VoteError) Error() string {
	return e.Description
}

// Unwrap allows errors.Is(err, ErrBadRank) and similar checks to succeed
// against a VoteError.
func (e VoteError) Unwrap() error {
	return e.Kind
}

func voteError(kind ErrorKind, format string, args ...interface{}) VoteError {
	return VoteError{Kind: kind, Description: fmt.Sprintf(format, args...)}
}
