// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package threshold

import (
	"crypto/rand"
	"math/big"
	"testing"
	"time"

	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/dleq"
	"github.com/luxfi/kzgdleq/kzgerr"
	"github.com/luxfi/kzgdleq/poly"
	"github.com/stretchr/testify/require"
)

// buildVanishingPoly returns p = q*(X-x) in ascending-coefficient form, so
// p is guaranteed to vanish at x regardless of q.
func buildVanishingPoly(q []*big.Int, x *big.Int) []*big.Int {
	d := len(q) - 1
	p := make([]*big.Int, d+2)
	p[0] = curve.SubMod(new(big.Int), curve.MulMod(x, q[0]))
	for j := 1; j <= d; j++ {
		p[j] = curve.SubMod(q[j-1], curve.MulMod(x, q[j]))
	}
	p[d+1] = new(big.Int).Set(q[d])
	return p
}

func randomScalar(t *testing.T) *big.Int {
	r, err := rand.Int(rand.Reader, curve.N)
	require.NoError(t, err)
	return r
}

func splitScalar(t *testing.T, total *big.Int, n int) []*big.Int {
	shares := make([]*big.Int, n)
	sum := new(big.Int)
	for i := 0; i < n-1; i++ {
		r := randomScalar(t)
		shares[i] = r
		sum = curve.AddMod(sum, r)
	}
	shares[n-1] = curve.SubMod(total, sum)
	return shares
}

func TestDegree99FourPartyThresholdProofVerifies(t *testing.T) {
	const numNodes = 4
	s := randomScalar(t)
	x := randomScalar(t)

	q := make([]*big.Int, 99)
	for i := range q {
		q[i] = randomScalar(t)
	}
	p := buildVanishingPoly(q, x)
	require.True(t, poly.VanishesAt(p, x))

	ps := poly.Eval(p, s)
	qs := poly.Eval(q, s)
	P := curve.ScalarBaseMult(s)
	T := curve.Sub(P, curve.ScalarBaseMult(x))

	psShares := splitScalar(t, ps, numNodes)
	qsShares := splitScalar(t, qs, numNodes)
	kShares := make([]*big.Int, numNodes)
	for i := range kShares {
		kShares[i] = randomScalar(t)
	}

	mgr := NewManager()
	session, err := mgr.StartSession(3, numNodes, x, P, time.Minute)
	require.NoError(t, err)

	for i := 0; i < numNodes; i++ {
		c := curve.ScalarBaseMult(psShares[i])
		w := curve.ScalarBaseMult(qsShares[i])
		a1 := curve.ScalarBaseMult(kShares[i])
		a2 := curve.ScalarMult(T, kShares[i])
		require.NoError(t, mgr.SubmitRound1(session.ID, i, c, w, a1, a2))
	}

	e, err := mgr.Challenge(session.ID)
	require.NoError(t, err)

	for i := 0; i < numNodes; i++ {
		z := curve.AddMod(kShares[i], curve.MulMod(e, qsShares[i]))
		require.NoError(t, mgr.SubmitRound2(session.ID, i, z, e))
	}

	proof, err := mgr.Finalize(session.ID)
	require.NoError(t, err)
	require.True(t, dleq.Verify(proof))
}

func TestSubmitRound2RejectsChallengeMismatch(t *testing.T) {
	const numNodes = 3
	x := randomScalar(t)
	s := randomScalar(t)
	P := curve.ScalarBaseMult(s)

	mgr := NewManager()
	session, err := mgr.StartSession(2, numNodes, x, P, time.Minute)
	require.NoError(t, err)

	for i := 0; i < numNodes; i++ {
		pt := curve.ScalarBaseMult(randomScalar(t))
		require.NoError(t, mgr.SubmitRound1(session.ID, i, pt, pt, pt, pt))
	}

	wrongChallenge := randomScalar(t)
	err = mgr.SubmitRound2(session.ID, 0, randomScalar(t), wrongChallenge)
	require.ErrorIs(t, err, kzgerr.ErrChallengeMismatch)
}

func TestSubmitRound1RejectsDuplicateAndUnknownNode(t *testing.T) {
	mgr := NewManager()
	session, err := mgr.StartSession(1, 2, randomScalar(t), curve.G, time.Minute)
	require.NoError(t, err)

	pt := curve.ScalarBaseMult(randomScalar(t))
	require.NoError(t, mgr.SubmitRound1(session.ID, 0, pt, pt, pt, pt))
	require.ErrorIs(t, mgr.SubmitRound1(session.ID, 0, pt, pt, pt, pt), ErrDuplicateContribution)
	require.ErrorIs(t, mgr.SubmitRound1(session.ID, 5, pt, pt, pt, pt), ErrUnknownNodeIndex)
}

func TestStartSessionRejectsBadThreshold(t *testing.T) {
	mgr := NewManager()
	_, err := mgr.StartSession(5, 3, randomScalar(t), curve.G, time.Minute)
	require.ErrorIs(t, err, ErrInvalidThreshold)
}
