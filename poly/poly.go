// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package poly implements the two polynomial operations the KZG-DLEQ
// prover needs: evaluation and synthetic division by (X-x). Both operate
// on ascending-coefficient vectors of scalars mod N. No interpolation or
// FFT utilities are provided; spec.md's Non-goals exclude them.
package poly

import (
	"math/big"

	"github.com/luxfi/kzgdleq/curve"
)

// Normalize reduces every coefficient mod N, leaving the slice length
// (and therefore the nominal degree) untouched.
func Normalize(coeffs []*big.Int) []*big.Int {
	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		out[i] = curve.ModN(c)
	}
	return out
}

// Eval evaluates p at x mod N using Horner's method over the
// ascending-coefficient representation.
func Eval(coeffs []*big.Int, x *big.Int) *big.Int {
	result := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = curve.MulMod(result, x)
		result = curve.AddMod(result, coeffs[i])
	}
	return result
}

// DivideByLinear divides p(X) by (X-x) via synthetic division in ascending
// form, per spec.md 4.4 step 3:
//
//	b[d] = c[d]; for i=d-1..0: b[i] = c[i] + x*b[i+1]; remainder = b[0]
//
// q = [b[1],...,b[d]] is returned along with the remainder, which must be
// zero for a valid witness polynomial.
func DivideByLinear(coeffs []*big.Int, x *big.Int) (q []*big.Int, remainder *big.Int) {
	d := len(coeffs) - 1
	if d < 0 {
		return nil, new(big.Int)
	}
	b := make([]*big.Int, d+1)
	b[d] = new(big.Int).Set(coeffs[d])
	for i := d - 1; i >= 0; i-- {
		b[i] = curve.AddMod(coeffs[i], curve.MulMod(x, b[i+1]))
	}
	return b[1:], b[0]
}

// VanishesAt reports whether p(x) == 0 mod N.
func VanishesAt(coeffs []*big.Int, x *big.Int) bool {
	return Eval(coeffs, x).Sign() == 0
}

// IsZero reports whether every coefficient is zero.
func IsZero(coeffs []*big.Int) bool {
	for _, c := range coeffs {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}
