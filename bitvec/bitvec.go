// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bitvec implements the dense packed-bit containers the IKNP
// extension and ROLE pool operate on: BitVector (a single row) and
// BitMatrix (IKNP's n x k selection/choice matrices).
package bitvec

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
	"github.com/luxfi/kzgdleq/curve"
)

// BitVector is a dense sequence of ℓ bits. Bytes()/FromBytes() pack/unpack
// it so that byte j, bit (i mod 8), stores bit i, per the wire layout the
// IKNP/ROLE hashing steps rely on (Keccak256 is computed over the packed
// byte buffer of a row).
type BitVector struct {
	bits   *bitset.BitSet
	length uint
}

// New returns a zeroed BitVector of the given length.
func New(length int) *BitVector {
	return &BitVector{bits: bitset.New(uint(length)), length: uint(length)}
}

// RandomBitVector returns length uniformly random bits from the system
// CSPRNG.
func RandomBitVector(length int) (*BitVector, error) {
	buf := make([]byte, (length+7)/8)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return FromBytes(buf, length), nil
}

// FromBytes unpacks length bits from buf using the byte j / bit (i mod 8)
// convention.
func FromBytes(buf []byte, length int) *BitVector {
	bv := New(length)
	for i := 0; i < length; i++ {
		byteIdx := i / 8
		if byteIdx >= len(buf) {
			break
		}
		if buf[byteIdx]&(1<<uint(i%8)) != 0 {
			bv.bits.Set(uint(i))
		}
	}
	return bv
}

// Len returns the bit length.
func (bv *BitVector) Len() int { return int(bv.length) }

// Get returns bit i.
func (bv *BitVector) Get(i int) bool {
	return bv.bits.Test(uint(i))
}

// Set sets bit i to v.
func (bv *BitVector) Set(i int, v bool) {
	if v {
		bv.bits.Set(uint(i))
	} else {
		bv.bits.Clear(uint(i))
	}
}

// Bytes packs the vector into ceil(length/8) bytes, byte j bit (i mod 8)
// storing bit i.
func (bv *BitVector) Bytes() []byte {
	out := make([]byte, (bv.length+7)/8)
	for i := uint(0); i < bv.length; i++ {
		if bv.bits.Test(i) {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// XOR returns a new BitVector holding bv XOR other; both must have equal
// length.
func (bv *BitVector) XOR(other *BitVector) *BitVector {
	if bv.length != other.length {
		panic("bitvec: XOR length mismatch")
	}
	out := New(int(bv.length))
	for i := uint(0); i < bv.length; i++ {
		if bv.bits.Test(i) != other.bits.Test(i) {
			out.bits.Set(i)
		}
	}
	return out
}

// BitMatrix is an r x c row-major packed bit matrix.
type BitMatrix struct {
	Rows []*BitVector
	R, C int
}

// NewBitMatrix returns a zeroed r x c matrix.
func NewBitMatrix(r, c int) *BitMatrix {
	m := &BitMatrix{Rows: make([]*BitVector, r), R: r, C: c}
	for i := range m.Rows {
		m.Rows[i] = New(c)
	}
	return m
}

// RandomBitMatrix returns an r x c matrix of uniformly random bits.
func RandomBitMatrix(r, c int) (*BitMatrix, error) {
	m := NewBitMatrix(r, c)
	for i := 0; i < r; i++ {
		row, err := RandomBitVector(c)
		if err != nil {
			return nil, err
		}
		m.Rows[i] = row
	}
	return m, nil
}

// SeededBitMatrix deterministically derives an r x c matrix from a 32-byte
// seed via HKDF(Keccak-256) with info = uint32(r) || uint32(c), per
// spec.md 3's BitMatrix deterministic constructor.
func SeededBitMatrix(seed [32]byte, r, c int) (*BitMatrix, error) {
	rowBytes := (c + 7) / 8
	total := r * rowBytes

	info := make([]byte, 8)
	binary.BigEndian.PutUint32(info[0:4], uint32(r))
	binary.BigEndian.PutUint32(info[4:8], uint32(c))

	material, err := curve.HKDFExpand(seed[:], nil, info, total)
	if err != nil {
		return nil, err
	}

	m := NewBitMatrix(r, c)
	for i := 0; i < r; i++ {
		m.Rows[i] = FromBytes(material[i*rowBytes:(i+1)*rowBytes], c)
	}
	return m, nil
}

// Row returns row i.
func (m *BitMatrix) Row(i int) *BitVector { return m.Rows[i] }

// Column extracts column j across all rows as a BitVector of length R.
func (m *BitMatrix) Column(j int) *BitVector {
	out := New(m.R)
	for i := 0; i < m.R; i++ {
		out.Set(i, m.Rows[i].Get(j))
	}
	return out
}
