// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package challenge builds the exact Fiat-Shamir challenge byte layout
// spec.md 4.3 mandates so that an on-chain assembly verifier hashes the
// identical 202-byte transcript a Go prover/verifier does.
package challenge

import (
	"math/big"

	"github.com/luxfi/kzgdleq/curve"
)

// versionByte is the domain-separator prefix; any future change to the
// packing below is a breaking-compatibility event that must bump it.
const versionByte = 0x01

// Parity packs (Cy&1) | ((Wy&1)<<1) from the commitment and witness
// points' Y coordinates.
func Parity(cy, wy *big.Int) byte {
	var p byte
	if cy.Bit(0) == 1 {
		p |= 0x01
	}
	if wy.Bit(0) == 1 {
		p |= 0x02
	}
	return p
}

// Build packs the 202-byte transcript:
//
//	0x01 || Cx || Wx || Px || Py || A1addr || A2addr || x || parity
//
// and returns e = Keccak256(transcript) mod N.
func Build(cx, wx, px, py *big.Int, a1addr, a2addr [20]byte, x *big.Int, parity byte) *big.Int {
	buf := make([]byte, 0, 202)
	buf = append(buf, versionByte)
	cxb := curve.To32(cx)
	wxb := curve.To32(wx)
	pxb := curve.To32(px)
	pyb := curve.To32(py)
	xb := curve.To32(x)
	buf = append(buf, cxb[:]...)
	buf = append(buf, wxb[:]...)
	buf = append(buf, pxb[:]...)
	buf = append(buf, pyb[:]...)
	buf = append(buf, a1addr[:]...)
	buf = append(buf, a2addr[:]...)
	buf = append(buf, xb[:]...)
	buf = append(buf, parity)

	h := curve.Keccak256(buf)
	return curve.ModN(new(big.Int).SetBytes(h[:]))
}

// BuildFromPoints is a convenience wrapper over Build that derives parity
// and the A1/A2 addresses from the points themselves.
func BuildFromPoints(c, w, p, a1, a2 curve.Point, x *big.Int) *big.Int {
	parity := Parity(c.Y, w.Y)
	a1addr := curve.PointAddress(a1)
	a2addr := curve.PointAddress(a2)
	return Build(c.X, w.X, p.X, p.Y, a1addr, a2addr, x, parity)
}
