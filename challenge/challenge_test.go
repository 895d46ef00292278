// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package challenge

import (
	"math/big"
	"testing"

	"github.com/luxfi/kzgdleq/curve"
	"github.com/stretchr/testify/require"
)

func TestBuildIsDeterministic(t *testing.T) {
	c := curve.ScalarBaseMult(big.NewInt(3))
	w := curve.ScalarBaseMult(big.NewInt(4))
	p := curve.ScalarBaseMult(big.NewInt(5))
	a1 := curve.ScalarBaseMult(big.NewInt(6))
	a2 := curve.ScalarBaseMult(big.NewInt(7))
	x := big.NewInt(42)

	e1 := BuildFromPoints(c, w, p, a1, a2, x)
	e2 := BuildFromPoints(c, w, p, a1, a2, x)
	require.Equal(t, 0, e1.Cmp(e2))
	require.True(t, curve.InRangeScalar(e1) || e1.Sign() == 0)
}

func TestBuildVariesWithAnyField(t *testing.T) {
	c := curve.ScalarBaseMult(big.NewInt(3))
	w := curve.ScalarBaseMult(big.NewInt(4))
	p := curve.ScalarBaseMult(big.NewInt(5))
	a1 := curve.ScalarBaseMult(big.NewInt(6))
	a2 := curve.ScalarBaseMult(big.NewInt(7))
	x := big.NewInt(42)

	base := BuildFromPoints(c, w, p, a1, a2, x)
	mutatedX := BuildFromPoints(c, w, p, a1, a2, big.NewInt(43))
	require.NotEqual(t, 0, base.Cmp(mutatedX))

	mutatedP := BuildFromPoints(c, w, curve.ScalarBaseMult(big.NewInt(9)), a1, a2, x)
	require.NotEqual(t, 0, base.Cmp(mutatedP))
}

func TestParityPacking(t *testing.T) {
	even := big.NewInt(4)
	odd := big.NewInt(5)
	require.Equal(t, byte(0x00), Parity(even, even))
	require.Equal(t, byte(0x01), Parity(odd, even))
	require.Equal(t, byte(0x02), Parity(even, odd))
	require.Equal(t, byte(0x03), Parity(odd, odd))
}
