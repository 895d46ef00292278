// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import (
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes the concatenation of data using the Keccak-256
// permutation (the pre-NIST-standardization variant used throughout EVM
// tooling), not the later FIPS-202 SHA3-256.
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HKDFExpand derives length bytes of key material from ikm using
// HKDF-Keccak256 with the given salt and info, the same extract-then-expand
// shape as backkem-matter/pkg/crypto/kdf.go's HKDFSHA256, re-keyed to
// Keccak-256 for this domain.
func HKDFExpand(ikm, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(func() hash.Hash { return sha3.NewLegacyKeccak256() }, ikm, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}
