// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bitvec

import (
	"math/big"

	"github.com/luxfi/kzgdleq/curve"
)

// ScalarFromBits performs little-endian bit decomposition of bitLength
// bits starting at offset in bits: x = sum_j bit[offset+j]*2^j (mod N).
// It truncates if the slice overruns bv's length. Callers must ensure
// 2^bitLength < N for injectivity (spec.md 4.2).
func ScalarFromBits(bv *BitVector, offset, bitLength int) *big.Int {
	x := new(big.Int)
	pow := new(big.Int).SetUint64(1)
	for j := 0; j < bitLength; j++ {
		idx := offset + j
		if idx >= bv.Len() {
			break
		}
		if bv.Get(idx) {
			x.Add(x, pow)
		}
		pow.Lsh(pow, 1)
	}
	return curve.ModN(x)
}

// BitsFromScalar encodes x (assumed in [0,2^bitLength)) into bitLength bits,
// little-endian, the inverse of ScalarFromBits, used by the chosen-input
// ROLE receiver to feed IKNP choices.
func BitsFromScalar(x *big.Int, bitLength int) *BitVector {
	bv := New(bitLength)
	v := new(big.Int).Set(x)
	for j := 0; j < bitLength; j++ {
		bit := new(big.Int).And(v, big.NewInt(1))
		if bit.Sign() != 0 {
			bv.Set(j, true)
		}
		v.Rsh(v, 1)
	}
	return bv
}
