// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package beaver implements the Beaver transform from random OT to chosen
// OT (spec.md 4.10): given IKNP's branch keys, XOR-mask each of the
// sender's two messages with Keccak256(tag||key) and let the receiver
// unmask only the branch matching its choice bit.
package beaver

import (
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/kzgerr"
)

// MessageSize is the only message length this transform accepts per
// spec.md 9(c): the ROLE layer above always masks/unmasks 32-byte scalars,
// and higher-level code must reject mismatches rather than truncate.
const MessageSize = 32

// Encrypt masks m0 under k0 and m1 under k1 with Keccak256(tag||key).
func Encrypt(tag []byte, k0, k1 [32]byte, m0, m1 []byte) (ct0, ct1 [32]byte, err error) {
	if len(m0) != MessageSize || len(m1) != MessageSize {
		return ct0, ct1, kzgerr.ErrLengthMismatch
	}
	mask0 := curve.Keccak256(tag, k0[:])
	mask1 := curve.Keccak256(tag, k1[:])
	for i := 0; i < MessageSize; i++ {
		ct0[i] = m0[i] ^ mask0[i]
		ct1[i] = m1[i] ^ mask1[i]
	}
	return ct0, ct1, nil
}

// Decrypt recovers the message masked under key by re-deriving the same
// mask and XOR-ing it off ct.
func Decrypt(tag []byte, key [32]byte, ct [32]byte) [32]byte {
	mask := curve.Keccak256(tag, key[:])
	var out [32]byte
	for i := 0; i < MessageSize; i++ {
		out[i] = ct[i] ^ mask[i]
	}
	return out
}
