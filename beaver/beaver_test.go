// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package beaver

import (
	"testing"

	"github.com/luxfi/kzgdleq/curve"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptChoice0And1(t *testing.T) {
	k0 := curve.Keccak256([]byte("branch-key-0"))
	k1 := curve.Keccak256([]byte("branch-key-1"))
	tag := []byte("role-ot")

	var m0, m1 [32]byte
	copy(m0[:], []byte("message for branch zero, 32byte"))
	copy(m1[:], []byte("message for branch one!, 32byte"))

	ct0, ct1, err := Encrypt(tag, k0, k1, m0[:], m1[:])
	require.NoError(t, err)

	require.Equal(t, m0, Decrypt(tag, k0, ct0))
	require.Equal(t, m1, Decrypt(tag, k1, ct1))
}

func TestEncryptRejectsWrongLength(t *testing.T) {
	k0 := curve.Keccak256([]byte("a"))
	k1 := curve.Keccak256([]byte("b"))
	_, _, err := Encrypt([]byte("tag"), k0, k1, []byte("short"), make([]byte, 32))
	require.Error(t, err)
}
