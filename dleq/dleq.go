// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dleq implements the single-prover KZG-DLEQ commit/witness/proof
// construction and its verifier, per spec.md 4.4: a Schnorr argument that
// log_G(W) on base G equals log_T(C) on base T=P-xG, proving a committed
// polynomial vanishes at a public point x without revealing the trusted
// setup scalar s.
package dleq

import (
	"crypto/rand"
	"math/big"

	"github.com/luxfi/kzgdleq/challenge"
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/kzgerr"
	"github.com/luxfi/kzgdleq/poly"
	"github.com/luxfi/kzgdleq/srs"
)

// Proof is the canonical DLEQProof shape of spec.md 3.
type Proof struct {
	C, W, P, A1, A2 curve.Point
	X               *big.Int
	Z               *big.Int
}

// Prove runs the 10-step single-prover algorithm of spec.md 4.4. If
// srsPoints is non-nil, the commitment and witness are computed via
// SRS multi-scalar-multiplication (srs.Commit); otherwise directly as
// p(s)*G / q(s)*G. The secret s is required either way to derive P=s*G
// and the scalar q(s) the response is built from. deterministic selects
// between a CSPRNG nonce and the deterministic nonce of curve.DeterministicNonce.
func Prove(coeffs []*big.Int, x, s *big.Int, srsPoints []curve.Point, deterministic bool) (*Proof, error) {
	if !curve.InRangeScalar(x) {
		return nil, kzgerr.ErrInvalidInput
	}
	coeffs = poly.Normalize(coeffs)
	sMod := curve.ModN(s)
	if sMod.Sign() == 0 {
		return nil, kzgerr.ErrDegenerateSetup
	}
	if sMod.Cmp(x) == 0 {
		return nil, kzgerr.ErrDegenerateSetup
	}
	if poly.IsZero(coeffs) {
		return nil, kzgerr.ErrDegenerateSetup
	}
	if !poly.VanishesAt(coeffs, x) {
		return nil, kzgerr.ErrPolynomialNonZero
	}

	q, _ := poly.DivideByLinear(coeffs, x)

	var C, W curve.Point
	var err error
	if srsPoints != nil {
		if len(coeffs) > len(srsPoints) {
			return nil, kzgerr.ErrDegreeExceedsSRS
		}
		C, err = srs.Commit(coeffs, srsPoints)
		if err != nil {
			return nil, err
		}
		W, err = srs.Commit(q, srsPoints[:len(q)])
		if err != nil {
			return nil, err
		}
	} else {
		C = curve.ScalarBaseMult(poly.Eval(coeffs, sMod))
		W = curve.ScalarBaseMult(poly.Eval(q, sMod))
	}

	P := curve.ScalarBaseMult(sMod)
	T := curve.Sub(P, curve.ScalarBaseMult(x))

	qs := poly.Eval(q, sMod)

	var k *big.Int
	if deterministic {
		k = curve.DeterministicNonce(qs,
			curve.EncodeScalar(x), curve.EncodeScalar(P.X), curve.EncodeScalar(P.Y),
			curve.EncodeScalar(C.X), curve.EncodeScalar(W.X))
	} else {
		var rerr error
		k, rerr = rand.Int(rand.Reader, curve.N)
		if rerr != nil {
			return nil, rerr
		}
		if k.Sign() == 0 {
			k.SetInt64(1)
		}
	}

	A1 := curve.ScalarBaseMult(k)
	A2 := curve.ScalarMult(T, k)

	e := challenge.BuildFromPoints(C, W, P, A1, A2, x)
	z := curve.AddMod(k, curve.MulMod(e, qs))

	return &Proof{C: C, W: W, P: P, A1: A1, A2: A2, X: x, Z: z}, nil
}

// Verify checks the proof per spec.md 4.4's verifier: range-checks x,z,
// on-curve-checks all five points, recomputes e, and checks
// A1 = zG - eW and A2 = zT - eC by coordinate equality.
func Verify(pr *Proof) bool {
	if pr == nil || !curve.InRangeScalar(pr.X) || !curve.InRangeScalar(pr.Z) {
		return false
	}
	for _, pt := range []curve.Point{pr.C, pr.W, pr.P, pr.A1, pr.A2} {
		if !curve.IsOnCurve(pt) {
			return false
		}
	}

	T := curve.Sub(pr.P, curve.ScalarBaseMult(pr.X))
	if T.X.Sign() == 0 && T.Y.Sign() == 0 {
		return false
	}

	e := challenge.BuildFromPoints(pr.C, pr.W, pr.P, pr.A1, pr.A2, pr.X)

	lhs1 := curve.Sub(curve.ScalarBaseMult(pr.Z), curve.ScalarMult(pr.W, e))
	if !curve.Equal(lhs1, pr.A1) {
		return false
	}

	lhs2 := curve.Sub(curve.ScalarMult(T, pr.Z), curve.ScalarMult(pr.C, e))
	return curve.Equal(lhs2, pr.A2)
}

// VerifyBatch verifies each proof independently, returning a parallel
// slice of results, mirroring the teacher's batch-verify precompile
// operation with per-proof rather than all-or-nothing granularity.
func VerifyBatch(proofs []*Proof) []bool {
	results := make([]bool, len(proofs))
	for i, pr := range proofs {
		results[i] = Verify(pr)
	}
	return results
}
