// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poly

import (
	"math/big"
	"testing"

	"github.com/luxfi/kzgdleq/curve"
	"github.com/stretchr/testify/require"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestEvalScenario1(t *testing.T) {
	// p(t) = -35 + 7t, x=5 => p(5) = -35+35 = 0
	x := bi(5)
	coeffs := Normalize([]*big.Int{bi(-35), bi(7)})
	require.True(t, VanishesAt(coeffs, x))
}

func TestEvalScenario2(t *testing.T) {
	// x=N-1, w=1, p(t) = -(N-1) + t
	nMinus1 := new(big.Int).Sub(curve.N, big.NewInt(1))
	coeffs := Normalize([]*big.Int{new(big.Int).Neg(nMinus1), bi(1)})
	require.True(t, VanishesAt(coeffs, nMinus1))
}

func TestSyntheticDivisionMatchesProduct(t *testing.T) {
	x := bi(42)
	// p(t) = (t-42)*(t^2+2t+3) = t^3 - 40t^2 - 81t - 126
	coeffs := Normalize([]*big.Int{bi(-126), bi(-81), bi(-40), bi(1)})
	require.True(t, VanishesAt(coeffs, x))

	q, rem := DivideByLinear(coeffs, x)
	require.Equal(t, 0, rem.Sign())
	require.Len(t, q, 3)

	// reconstruct (X-x)*q(X) and compare to original coefficients
	reconstructed := multiplyByLinear(q, x)
	require.Equal(t, len(coeffs), len(reconstructed))
	for i := range coeffs {
		require.Equal(t, 0, coeffs[i].Cmp(reconstructed[i]), "coeff %d", i)
	}
}

func TestDegree99RandomPolynomialVanishing(t *testing.T) {
	x := bi(42)
	d := 99
	coeffs := make([]*big.Int, d+1)
	for i := 1; i <= d; i++ {
		coeffs[i] = bi(int64(i*7 + 3))
	}
	// force p(x)=0 by solving for coeffs[0]
	partial := Eval(append([]*big.Int{big.NewInt(0)}, coeffs[1:]...), x)
	coeffs[0] = curve.SubMod(new(big.Int), partial)
	coeffs = Normalize(coeffs)
	require.True(t, VanishesAt(coeffs, x))

	q, rem := DivideByLinear(coeffs, x)
	require.Equal(t, 0, rem.Sign())
	require.Len(t, q, d)
}

func TestIsZero(t *testing.T) {
	require.True(t, IsZero(Normalize([]*big.Int{bi(0), bi(0)})))
	require.False(t, IsZero(Normalize([]*big.Int{bi(0), bi(1)})))
}

// multiplyByLinear computes (X-x)*q(X) in ascending form for test
// verification only.
func multiplyByLinear(q []*big.Int, x *big.Int) []*big.Int {
	out := make([]*big.Int, len(q)+1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	negX := curve.SubMod(new(big.Int), x)
	for i, c := range q {
		out[i] = curve.AddMod(out[i], curve.MulMod(negX, c))
		out[i+1] = curve.AddMod(out[i+1], c)
	}
	return out
}
