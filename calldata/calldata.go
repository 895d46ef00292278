// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package calldata encodes a dleq.Proof into the fixed-layout calldata
// consumed by the on-chain assembly verifier (spec.md 4.12, 6): every
// field the verifier's ecrecover trick needs is precomputed in Go so the
// contract only performs comparisons, never inversions or scalar
// multiplications. P (the trusted-setup commitment) and the full A1/A2
// points are deployment-time constants and signature-recoverable values
// respectively, so neither travels in the calldata; only their derived
// hints and addresses do.
package calldata

import (
	"fmt"
	"math/big"

	"github.com/luxfi/kzgdleq/challenge"
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/dleq"
	"github.com/luxfi/kzgdleq/kzgerr"
	log "github.com/luxfi/log"
)

// precompileLog records this precompile's lifecycle: malformed calldata
// and hint validation outcomes are all worth an operator's
// attention since this component is the last stop before the on-chain
// verifier's ecrecover-based check.
var precompileLog = log.NewTestLogger(log.InfoLevel)

// Selector is the first four bytes of Keccak256("verifyPolynomial()").
var Selector = func() [4]byte {
	h := curve.Keccak256([]byte("verifyPolynomial()"))
	var sel [4]byte
	copy(sel[:], h[:4])
	return sel
}()

// EncodedLen is the total calldata length: a 4-byte selector, a version
// byte, twelve 32-byte words, two 20-byte addresses, and a parity byte.
const EncodedLen = 4 + 1 + 32*12 + 20*2 + 1

// fieldGas is the flat per-call gas cost this precompile reports,
// grounded on the teacher's per-operation gas constants.
const fieldGas = 45000

// Encode packs pr into the calldata layout. If x or z is outside [1,N) or
// any of the five points is off-curve, every derived field (Xx, Xy, zTx,
// zTy, eCx, eCy, Hinv, Hinv2) is zero-filled rather than computed; an
// inverse hint whose denominator turns out to be zero is zero-filled as
// well. Either way the on-chain comparison rejects the payload rather
// than the encoder panicking on a failed modular inverse.
func Encode(pr *dleq.Proof) ([]byte, error) {
	if pr == nil {
		return nil, kzgerr.ErrInvalidInput
	}

	valid := curve.InRangeScalar(pr.X) && curve.InRangeScalar(pr.Z)
	for _, pt := range []curve.Point{pr.C, pr.W, pr.P, pr.A1, pr.A2} {
		valid = valid && curve.IsOnCurve(pt)
	}

	zeroPt := curve.Point{X: new(big.Int), Y: new(big.Int)}
	X, zT, eC := zeroPt, zeroPt, zeroPt
	hInv, hInv2 := new(big.Int), new(big.Int)
	if valid {
		X = curve.ScalarBaseMult(pr.X)
		T := curve.Sub(pr.P, X)
		zT = curve.ScalarMult(T, pr.Z)
		e := challenge.BuildFromPoints(pr.C, pr.W, pr.P, pr.A1, pr.A2, pr.X)
		eC = curve.ScalarMult(pr.C, e)

		hInv = inverseOrZero(curve.SubModP(pr.P.X, X.X), curve.P)
		hInv2 = inverseOrZero(curve.SubModP(zT.X, eC.X), curve.P)
	}

	a1addr := curve.PointAddress(pr.A1)
	a2addr := curve.PointAddress(pr.A2)
	parity := challenge.Parity(pr.C.Y, pr.W.Y)

	buf := make([]byte, 0, EncodedLen)
	buf = append(buf, Selector[:]...)
	buf = append(buf, byte(1))

	for _, word := range []*big.Int{
		pr.C.X, pr.W.X, X.X, X.Y,
		zT.X, zT.Y, eC.X, eC.Y,
		hInv, hInv2, pr.Z, pr.X,
	} {
		b := curve.To32(word)
		buf = append(buf, b[:]...)
	}

	buf = append(buf, a1addr[:]...)
	buf = append(buf, a2addr[:]...)
	buf = append(buf, parity)

	return buf, nil
}

// inverseOrZero returns a^-1 mod modulus, or zero if a is zero, the
// degenerate case the on-chain verifier must reject rather than divide by.
func inverseOrZero(a, modulus *big.Int) *big.Int {
	inv, ok := curve.InverseMod(a, modulus)
	if !ok {
		return new(big.Int)
	}
	return inv
}

// Fields is the decoded, unvalidated contents of one calldata payload.
type Fields struct {
	Cx, Wx, Xx, Xy     *big.Int
	ZTx, ZTy, ECx, ECy *big.Int
	HInv, HInv2, Z, X  *big.Int
	A1Addr, A2Addr     [20]byte
	Parity             byte
}

// Decode parses the fixed layout Encode produces, without re-deriving any
// of the secp256k1 arithmetic; it is the inverse of the append sequence in
// Encode.
func Decode(input []byte) (*Fields, error) {
	if len(input) != EncodedLen {
		return nil, kzgerr.ErrLengthMismatch
	}
	var sel [4]byte
	copy(sel[:], input[:4])
	if sel != Selector {
		return nil, kzgerr.ErrInvalidInput
	}
	if input[4] != 1 {
		return nil, kzgerr.ErrInvalidInput
	}

	off := 5
	next := func() *big.Int {
		v := new(big.Int).SetBytes(input[off : off+32])
		off += 32
		return v
	}

	f := &Fields{
		Cx: next(), Wx: next(), Xx: next(), Xy: next(),
		ZTx: next(), ZTy: next(), ECx: next(), ECy: next(),
		HInv: next(), HInv2: next(), Z: next(), X: next(),
	}
	copy(f.A1Addr[:], input[off:off+20])
	off += 20
	copy(f.A2Addr[:], input[off:off+20])
	off += 20
	f.Parity = input[off]

	return f, nil
}

// ValidateHints reports whether the two inverse hints in f are internally
// consistent with the field values they accompany, the cheap check a
// precompile performs before the caller's heavier ecrecover-based
// comparisons: HInv * (Px-Xx) == 1 mod P, and likewise for HInv2, whenever
// the hint is non-zero. A zero hint is only valid when its denominator is
// also zero (the degenerate case Encode zero-fills rather than inverts).
func ValidateHints(f *Fields, px *big.Int) bool {
	one := big.NewInt(1)

	denom1 := curve.SubModP(px, f.Xx)
	if f.HInv.Sign() == 0 {
		if denom1.Sign() != 0 {
			return false
		}
	} else if new(big.Int).Mod(new(big.Int).Mul(f.HInv, denom1), curve.P).Cmp(one) != 0 {
		return false
	}

	denom2 := curve.SubModP(f.ZTx, f.ECx)
	if f.HInv2.Sign() == 0 {
		if denom2.Sign() != 0 {
			return false
		}
	} else if new(big.Int).Mod(new(big.Int).Mul(f.HInv2, denom2), curve.P).Cmp(one) != 0 {
		return false
	}

	return true
}

// RequiredGas reports the flat gas cost of Run, independent of input
// contents; malformed input is rejected during Run itself.
func RequiredGas(input []byte) uint64 {
	return fieldGas
}

// Run decodes input and checks the precomputed hints are internally
// consistent against the on-chain deployment's fixed P.X constant. It
// returns a single success/failure byte, mirroring the teacher's
// precompile Run signature; it does not perform the ecrecover-based
// point-equality checks themselves, which belong to the on-chain
// contract this package's output feeds.
func Run(input []byte, deploymentPX *big.Int) ([]byte, error) {
	f, err := Decode(input)
	if err != nil {
		precompileLog.Error(fmt.Sprintf("calldata: decode failed: %v", err))
		return nil, err
	}
	if !ValidateHints(f, deploymentPX) {
		precompileLog.Warn("calldata: hint validation rejected proof")
		return []byte{0}, nil
	}
	precompileLog.Info("calldata: hint validation accepted proof")
	return []byte{1}, nil
}
