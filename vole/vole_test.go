// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vole

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/luxfi/kzgdleq/challenge"
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/dleq"
	"github.com/luxfi/kzgdleq/kzgerr"
	"github.com/luxfi/kzgdleq/poly"
	"github.com/stretchr/testify/require"
)

// roleBitLength is the widest value role.checkParams accepts (2^255 < N);
// a freshly drawn challenge e only fits a chosen-input ROLE sample when
// e < 2^roleBitLength, so round1 nonces are regenerated until it does.
const roleBitLength = 255

// splitScalar returns n values that sum to total mod N, the additive
// sharing every threshold component in this module relies on.
func splitScalar(t *testing.T, total *big.Int, n int) []*big.Int {
	shares := make([]*big.Int, n)
	sum := new(big.Int)
	for i := 0; i < n-1; i++ {
		r, err := rand.Int(rand.Reader, curve.N)
		require.NoError(t, err)
		shares[i] = r
		sum = curve.AddMod(sum, r)
	}
	shares[n-1] = curve.SubMod(total, sum)
	return shares
}

func buildScenario(t *testing.T) (coeffs []*big.Int, s, x *big.Int, P, T curve.Point, ps, qs *big.Int) {
	s = big.NewInt(12345)
	x = big.NewInt(5)
	coeffs = []*big.Int{big.NewInt(-35), big.NewInt(7)}

	q, rem := poly.DivideByLinear(coeffs, x)
	require.Equal(t, 0, rem.Sign())

	ps = poly.Eval(coeffs, s)
	qs = poly.Eval(q, s)

	P = curve.ScalarBaseMult(s)
	T = curve.Sub(P, curve.ScalarBaseMult(x))
	return
}

// roundOnce draws fresh nonce shares, builds each node's Round-1 points,
// and returns the resulting aggregate challenge e alongside everything
// needed to build the matching Round-1 messages. The nonces are
// regenerated until e fits roleBitLength bits, since the chosen-input
// ROLE pool that will mask this round must be built with x=e ahead of
// sending any message (spec.md 4.7: "the aggregator ... will obtain
// (e, y_i=a_i*e+b_i) at the same index once it knows e").
func roundOnce(t *testing.T, T, P curve.Point, x *big.Int, psShares, qsShares []*big.Int) (e *big.Int, kShares []*big.Int, Cs, Ws []curve.Point) {
	numNodes := len(psShares)
	for attempt := 0; attempt < 64; attempt++ {
		kShares = make([]*big.Int, numNodes)
		Cs = make([]curve.Point, numNodes)
		Ws = make([]curve.Point, numNodes)
		C := curve.Point{}
		W := curve.Point{}
		A1 := curve.Point{}
		A2 := curve.Point{}
		for i := 0; i < numNodes; i++ {
			r, err := rand.Int(rand.Reader, curve.N)
			require.NoError(t, err)
			kShares[i] = r
			Cs[i] = curve.ScalarBaseMult(psShares[i])
			Ws[i] = curve.ScalarBaseMult(qsShares[i])
			a1i := curve.ScalarBaseMult(r)
			a2i := curve.ScalarMult(T, r)
			if i == 0 {
				C, W, A1, A2 = Cs[i], Ws[i], a1i, a2i
			} else {
				C = curve.Add(C, Cs[i])
				W = curve.Add(W, Ws[i])
				A1 = curve.Add(A1, a1i)
				A2 = curve.Add(A2, a2i)
			}
		}
		candidate := challenge.BuildFromPoints(C, W, P, A1, A2, x)
		if candidate.BitLen() <= roleBitLength {
			return candidate, kShares, Cs, Ws
		}
	}
	t.Fatal("challenge never fit roleBitLength after 64 attempts")
	return nil, nil, nil, nil
}

func TestVoleProverMatchesSingleProverVerifier(t *testing.T) {
	const numNodes = 4
	_, _, x, P, T, ps, qs := buildScenario(t)

	psShares := splitScalar(t, ps, numNodes)
	qsShares := splitScalar(t, qs, numNodes)

	e, kShares, Cs, Ws := roundOnce(t, T, P, x, psShares, qsShares)

	senderPool, receiverPool, err := Setup(numNodes, roleBitLength, 64, e)
	require.NoError(t, err)

	messages := make([]Message, numNodes)
	for i := 0; i < numNodes; i++ {
		sample, err := senderPool.Next()
		require.NoError(t, err)
		messages[i] = NodeRound(i, qsShares[i], kShares[i], T, Cs[i], Ws[i], sample)
	}

	proof, err := Aggregate(messages, receiverPool, P, x)
	require.NoError(t, err)
	require.True(t, dleq.Verify(proof))

	// Tampering with the reconstructed response invalidates the proof,
	// exactly like a single-prover response would.
	tampered := *proof
	tampered.Z = curve.AddMod(tampered.Z, big.NewInt(1))
	require.False(t, dleq.Verify(&tampered))
}

func TestAggregateRejectsDuplicateOLEIndex(t *testing.T) {
	const numNodes = 3
	_, _, x, P, T, ps, qs := buildScenario(t)

	psShares := splitScalar(t, ps, numNodes)
	qsShares := splitScalar(t, qs, numNodes)

	e := big.NewInt(42)
	senderPool, receiverPool, err := Setup(numNodes, roleBitLength, 32, e)
	require.NoError(t, err)

	sample, err := senderPool.Next()
	require.NoError(t, err)

	messages := make([]Message, numNodes)
	for i := 0; i < numNodes; i++ {
		Ci := curve.ScalarBaseMult(psShares[i])
		Wi := curve.ScalarBaseMult(qsShares[i])
		messages[i] = NodeRound(i, qsShares[i], big.NewInt(int64(i+1)), T, Ci, Wi, sample)
	}

	_, err = Aggregate(messages, receiverPool, P, x)
	require.ErrorIs(t, err, kzgerr.ErrDuplicateOLEIndex)
}

func TestAggregateRejectsEmptyMessages(t *testing.T) {
	_, receiverPool, err := Setup(1, roleBitLength, 32, big.NewInt(1))
	require.NoError(t, err)
	_, err = Aggregate(nil, receiverPool, curve.G, big.NewInt(1))
	require.ErrorIs(t, err, kzgerr.ErrInvalidInput)
}
