// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package curve implements the secp256k1 point and scalar primitives shared
// by every component of the KZG-DLEQ prover/verifier: point arithmetic,
// Keccak-256 hashing, HKDF key expansion, ECDH, deterministic nonce
// derivation, and the ecrecover-style address reduction used for
// Fiat-Shamir packing.
package curve

import (
	"math/big"

	"github.com/luxfi/crypto/secp256k1"
)

// curve is the shared secp256k1 group; ScalarBaseMult/ScalarMult/Add below
// delegate to it the same way ring/contract.go and ecies/contract.go do.
var curve = secp256k1.S256()

// N is the order of the secp256k1 base point subgroup.
// P is the prime of the secp256k1 coordinate field.
var (
	N = curve.Params().N
	P = curve.Params().P
)

// Point is a pair (X,Y) of field elements on secp256k1. The point at
// infinity has no representation of its own. Add, Sub, ScalarMult and
// ScalarBaseMult return no ok flag and do not report when their result
// would be the point at infinity.
type Point struct {
	X, Y *big.Int
}

// G is the secp256k1 base point.
var G = Point{X: new(big.Int).Set(curve.Params().Gx), Y: new(big.Int).Set(curve.Params().Gy)}

// InRangeScalar reports whether s is a valid scalar in [1,N).
func InRangeScalar(s *big.Int) bool {
	return s != nil && s.Sign() > 0 && s.Cmp(N) < 0
}

// InRangeCoord reports whether v is a valid coordinate in [0,P).
func InRangeCoord(v *big.Int) bool {
	return v != nil && v.Sign() >= 0 && v.Cmp(P) < 0
}

// IsOnCurve reports whether pt satisfies y^2 = x^3 + 7 mod P.
func IsOnCurve(pt Point) bool {
	if pt.X == nil || pt.Y == nil {
		return false
	}
	if !InRangeCoord(pt.X) || !InRangeCoord(pt.Y) {
		return false
	}
	return curve.IsOnCurve(pt.X, pt.Y)
}

// ScalarBaseMult returns s*G.
func ScalarBaseMult(s *big.Int) Point {
	x, y := curve.ScalarBaseMult(modN(s).Bytes())
	return Point{X: x, Y: y}
}

// ScalarMult returns s*pt.
func ScalarMult(pt Point, s *big.Int) Point {
	x, y := curve.ScalarMult(pt.X, pt.Y, modN(s).Bytes())
	return Point{X: x, Y: y}
}

// Add returns a+b.
func Add(a, b Point) Point {
	x, y := curve.Add(a.X, a.Y, b.X, b.Y)
	return Point{X: x, Y: y}
}

// Neg returns -pt (the reflection of pt across the X axis).
func Neg(pt Point) Point {
	if pt.Y.Sign() == 0 {
		return Point{X: new(big.Int).Set(pt.X), Y: new(big.Int)}
	}
	return Point{X: new(big.Int).Set(pt.X), Y: new(big.Int).Sub(P, pt.Y)}
}

// Sub returns a-b.
func Sub(a, b Point) Point {
	return Add(a, Neg(b))
}

// Equal reports whether a and b have identical coordinates.
func Equal(a, b Point) bool {
	return a.X != nil && a.Y != nil && b.X != nil && b.Y != nil &&
		a.X.Cmp(b.X) == 0 && a.Y.Cmp(b.Y) == 0
}

// ECDH returns the 32-byte big-endian X coordinate of priv*pub.
func ECDH(priv *big.Int, pub Point) [32]byte {
	shared := ScalarMult(pub, priv)
	var out [32]byte
	b := shared.X.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// modN reduces s modulo N, treating a nil input as zero.
func modN(s *big.Int) *big.Int {
	if s == nil {
		return new(big.Int)
	}
	return new(big.Int).Mod(s, N)
}

// ModN exposes modN's reduction for callers outside this package.
func ModN(s *big.Int) *big.Int {
	return modN(s)
}

// AddMod returns (a+b) mod N.
func AddMod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Add(a, b), N)
}

// SubMod returns (a-b) mod N.
func SubMod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(a, b), N)
}

// SubModP returns (a-b) mod P, the field modulus, for callers operating on
// point coordinates rather than scalars (e.g. the calldata encoder's
// inverse-hint terms, which must reduce mod P, not mod N).
func SubModP(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(a, b), P)
}

// MulMod returns (a*b) mod N.
func MulMod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), N)
}

// InverseMod returns a^-1 mod modulus, or ok=false if a is zero or not
// invertible; the calldata encoder's Hinv terms call it with modulus P.
func InverseMod(a, modulus *big.Int) (*big.Int, bool) {
	if a.Sign() == 0 {
		return nil, false
	}
	inv := new(big.Int).ModInverse(a, modulus)
	if inv == nil {
		return nil, false
	}
	return inv, true
}

// To32 encodes v as a 32-byte big-endian value.
func To32(v *big.Int) [32]byte {
	var out [32]byte
	b := v.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(out[32-len(b):], b)
	return out
}
