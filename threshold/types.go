// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package threshold implements the two-round interactive threshold prover
// of spec.md 4.6: n nodes each hold an additive share of the witness
// evaluation q(s); round 1 broadcasts independent per-node commitment
// shares, an aggregation barrier derives the single Fiat-Shamir challenge
// from the summed commitments, and round 2 collects per-node responses
// computed against that challenge.
package threshold

import (
	"errors"
	"math/big"
	"time"

	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/dleq"
)

// SessionStatus tracks a DLEQ proving session through its two rounds.
type SessionStatus uint8

const (
	StatusRound1 SessionStatus = iota
	StatusRound2
	StatusComplete
	StatusFailed
)

// DefaultSessionTTL bounds how long a session waits between rounds before
// SubmitRound1/SubmitRound2 starts rejecting it as expired.
const DefaultSessionTTL = 5 * time.Minute

// MaxThresholdParties mirrors config.MaxNumNodes, the participant-count
// ceiling; sessions above it are rejected at StartSession.
const MaxThresholdParties = 256

var (
	ErrSessionNotFound       = errors.New("threshold: session not found")
	ErrSessionExpired        = errors.New("threshold: session expired")
	ErrSessionNotInRound1    = errors.New("threshold: session not accepting round 1 contributions")
	ErrSessionNotInRound2    = errors.New("threshold: session not accepting round 2 responses")
	ErrDuplicateContribution = errors.New("threshold: node already contributed this round")
	ErrUnknownNodeIndex      = errors.New("threshold: node index out of range")
	ErrSessionIncomplete     = errors.New("threshold: session has not finished round 2")
	ErrInvalidThreshold      = errors.New("threshold: threshold must be in [1,totalParties]")
	ErrInvalidPartyCount     = errors.New("threshold: total parties out of range")
)

// round1Contribution is one node's independent round-1 commitment share;
// the scalars behind C/W/A1/A2 (psShare, qsShare, kShare) never leave the
// node, only the resulting points do.
type round1Contribution struct {
	C, W, A1, A2 curve.Point
}

// Session is one in-flight threshold proving run.
type Session struct {
	ID           [32]byte
	Threshold    uint32
	TotalParties uint32
	X            *big.Int
	P            curve.Point
	Status       SessionStatus
	CreatedAt    time.Time
	ExpiresAt    time.Time

	round1       map[int]round1Contribution
	aggregatedC  curve.Point
	aggregatedW  curve.Point
	aggregatedA1 curve.Point
	aggregatedA2 curve.Point
	challenge    *big.Int

	round2 map[int]*big.Int
	proof  *dleq.Proof
}
