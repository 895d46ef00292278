// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vole implements the single-round, VOLE-masked threshold prover
// of spec.md 4.7: each node hides its additive share of the nonce and the
// witness evaluation behind a precomputed ROLE pad, so the coordinator can
// reconstruct the aggregate Schnorr response in one pass, after the Fiat-
// Shamir challenge is known, without a second network round.
package vole

import (
	"math/big"

	"github.com/luxfi/kzgdleq/challenge"
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/dleq"
	"github.com/luxfi/kzgdleq/kzgerr"
	"github.com/luxfi/kzgdleq/role"
)

// Message is node i's single online-round contribution: its share of the
// four DLEQ points, plus its witness/nonce shares masked additively by its
// ROLE sender sample (a_i,b_i) so the coordinator cannot read qsShare/
// kShare directly out of the wire message.
type Message struct {
	NodeIndex      int
	C, W, A1, A2   curve.Point
	DeltaW, DeltaK *big.Int
	OLEIndex       int
}

// Setup provisions one chosen-input ROLE sample per node, pinned so the
// receiver's x at every index equals e, the Fiat-Shamir challenge this
// session's aggregated Round-1 points will produce (spec.md 4.7: "the
// aggregator ... will obtain (e, y_i=a_i*e+b_i) at the same index once it
// knows e"). Each node keeps its SenderSample (a_i,b_i); the aggregator
// keeps the ReceiverPool.
func Setup(numNodes, bitLength, otSecurityParam int, e *big.Int) (*role.SenderPool, *role.ReceiverPool, error) {
	xs := make([]*big.Int, numNodes)
	for i := range xs {
		xs[i] = e
	}
	return role.ExtendChosen(xs, bitLength, otSecurityParam)
}

// NodeRound builds node i's message from its additive shares of q(s) and
// the Schnorr nonce k, masked against its ROLE sender sample (a_i,b_i):
// Δw_i = w_i - a_i, Δk_i = k_i - b_i (spec.md 4.7).
func NodeRound(nodeIndex int, qsShare, kShare *big.Int, T, C, W curve.Point, sample role.SenderSample) Message {
	A1 := curve.ScalarBaseMult(kShare)
	A2 := curve.ScalarMult(T, kShare)
	return Message{
		NodeIndex: nodeIndex,
		C:         C,
		W:         W,
		A1:        A1,
		A2:        A2,
		DeltaW:    curve.SubMod(qsShare, sample.A),
		DeltaK:    curve.SubMod(kShare, sample.B),
		OLEIndex:  sample.Index,
	}
}

// Aggregate sums every node's message into the four DLEQ points, derives
// the Fiat-Shamir challenge exactly as the single-prover scheme does,
// rejects the batch if two messages claim the same oleIndex, then for each
// share looks up the ROLE sample at oleIndex, enforces that the
// receiver's x for that sample equals e, and reconstructs
// z_i = y_i + e·Δw_i + Δk_i (spec.md 4.7). The result byte-exactly matches
// what a single prover holding the combined q(s) and nonce would have
// produced.
func Aggregate(messages []Message, receiverPool *role.ReceiverPool, P curve.Point, x *big.Int) (*dleq.Proof, error) {
	if len(messages) == 0 {
		return nil, kzgerr.ErrInvalidInput
	}

	C := messages[0].C
	W := messages[0].W
	A1 := messages[0].A1
	A2 := messages[0].A2
	for _, m := range messages[1:] {
		C = curve.Add(C, m.C)
		W = curve.Add(W, m.W)
		A1 = curve.Add(A1, m.A1)
		A2 = curve.Add(A2, m.A2)
	}

	e := challenge.BuildFromPoints(C, W, P, A1, A2, x)

	seen := make(map[int]bool, len(messages))
	for _, m := range messages {
		if seen[m.OLEIndex] {
			return nil, kzgerr.ErrDuplicateOLEIndex
		}
		seen[m.OLEIndex] = true
	}

	z := new(big.Int)
	for _, m := range messages {
		sample, err := receiverPool.At(m.OLEIndex)
		if err != nil {
			return nil, err
		}
		if sample.X.Cmp(e) != 0 {
			return nil, kzgerr.ErrChallengeMismatch
		}

		zi := curve.AddMod(sample.Y, curve.AddMod(curve.MulMod(e, m.DeltaW), m.DeltaK))
		z = curve.AddMod(z, zi)
	}

	return &dleq.Proof{C: C, W: W, P: P, A1: A1, A2: A2, X: x, Z: z}, nil
}
