// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package srs generates the structured reference string the single and
// threshold KZG-DLEQ provers commit polynomials against: srs[i] = s^i*G,
// either centralized (one party knows s) or additively shared across n
// nodes so that no single node ever reconstructs s.
package srs

import (
	"crypto/rand"
	"math/big"

	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/kzgerr"
)

// Centralized returns [s^0*G, s^1*G, ..., s^d*G]. s must be nonzero mod N
// (spec.md 4.5); s=0 would make every SRS entry beyond index 0 equal to
// the identity, a degenerate setup.
func Centralized(s *big.Int, d int) ([]curve.Point, error) {
	sMod := curve.ModN(s)
	if sMod.Sign() == 0 {
		return nil, kzgerr.ErrDegenerateSetup
	}
	out := make([]curve.Point, d+1)
	power := new(big.Int).SetUint64(1)
	for i := 0; i <= d; i++ {
		out[i] = curve.ScalarBaseMult(power)
		power = curve.MulMod(power, sMod)
	}
	return out, nil
}

// Commit computes sum_i coeffs[i]*srs[i], skipping zero coefficients, per
// spec.md 4.5. The zero polynomial is rejected.
func Commit(coeffs []*big.Int, srsPoints []curve.Point) (curve.Point, error) {
	if len(coeffs) > len(srsPoints) {
		return curve.Point{}, kzgerr.ErrDegreeExceedsSRS
	}
	var acc curve.Point
	started := false
	for i, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		term := curve.ScalarMult(srsPoints[i], c)
		if !started {
			acc = term
			started = true
			continue
		}
		acc = curve.Add(acc, term)
	}
	if !started {
		return curve.Point{}, kzgerr.ErrDegenerateSetup
	}
	return acc, nil
}

// Shared produces n vectors of length d+1 whose column-wise sum equals
// [s^0,...,s^d] mod N, per spec.md 4.5: sample (n-1)*(d+1) random scalars
// and set the last node's share to the column-wise complement.
func Shared(n, d int, s *big.Int) ([][]*big.Int, error) {
	if n < 1 {
		return nil, kzgerr.ErrInvalidInput
	}
	sMod := curve.ModN(s)
	if sMod.Sign() == 0 {
		return nil, kzgerr.ErrDegenerateSetup
	}

	powers := make([]*big.Int, d+1)
	power := new(big.Int).SetUint64(1)
	for k := 0; k <= d; k++ {
		powers[k] = new(big.Int).Set(power)
		power = curve.MulMod(power, sMod)
	}

	shares := make([][]*big.Int, n)
	for i := range shares {
		shares[i] = make([]*big.Int, d+1)
	}

	for k := 0; k <= d; k++ {
		sum := new(big.Int)
		for i := 0; i < n-1; i++ {
			r, err := rand.Int(rand.Reader, curve.N)
			if err != nil {
				return nil, err
			}
			shares[i][k] = r
			sum = curve.AddMod(sum, r)
		}
		shares[n-1][k] = curve.SubMod(powers[k], sum)
	}

	return shares, nil
}
