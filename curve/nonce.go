// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import "math/big"

// nonceDomainTag separates deterministic nonce derivation from every other
// Keccak-256 use in this module.
var nonceDomainTag = []byte("dleq-nonce-v1")

// EncodeScalar reduces s mod N and encodes it as 32 big-endian bytes, the
// context-part encoding spec.md 4.1 requires for scalars.
func EncodeScalar(s *big.Int) []byte {
	b := To32(modN(s))
	return b[:]
}

// EncodeAddress encodes a 20-byte address context part verbatim.
func EncodeAddress(addr [20]byte) []byte {
	out := make([]byte, 20)
	copy(out, addr[:])
	return out
}

// DeterministicNonce derives k = 1 + (Keccak256(tag||enc32(w)||parts...) mod
// (N-1)) per spec.md 4.1. Callers encode each context part with
// EncodeScalar/EncodeAddress, or pass a UTF-8 string's bytes directly.
func DeterministicNonce(w *big.Int, parts ...[]byte) *big.Int {
	data := make([][]byte, 0, len(parts)+2)
	data = append(data, nonceDomainTag, EncodeScalar(w))
	data = append(data, parts...)
	h := Keccak256(data...)

	nMinus1 := new(big.Int).Sub(N, big.NewInt(1))
	k := new(big.Int).Mod(new(big.Int).SetBytes(h[:]), nMinus1)
	k.Add(k, big.NewInt(1))
	return k
}

// ECAddress returns the lower 20 bytes of Keccak256(uint256_be(x)||uint256_be(y)),
// used both for Fiat-Shamir packing and as the ecrecover-comparison operand.
func ECAddress(x, y *big.Int) [20]byte {
	xb := To32(x)
	yb := To32(y)
	h := Keccak256(xb[:], yb[:])
	var addr [20]byte
	copy(addr[:], h[12:])
	return addr
}

// PointAddress is ECAddress applied to a Point.
func PointAddress(pt Point) [20]byte {
	return ECAddress(pt.X, pt.Y)
}
