// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the configuration surface spec.md 6 enumerates:
// ROLE pool sizing, the IKNP security parameter, threshold participant
// count, and the calldata version tag. Following threshold/types.go's
// style, limits are named constants beside the struct they bound rather
// than loaded through a config-file or flag library.
package config

import (
	"math/big"

	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/kzgerr"
)

const (
	// Version is the calldata domain tag; any change to the challenge
	// packing is a breaking-compatibility event and must bump it.
	Version uint8 = 1

	// DefaultIKNPSecurityParam is the conventional IKNP security
	// parameter k.
	DefaultIKNPSecurityParam = 128

	// MaxNumNodes bounds the threshold prover's participant count.
	MaxNumNodes = 256

	// MaxBitLength bounds ROLE's per-sample bit width; must still satisfy
	// 2^bitLength < N at validation time.
	MaxBitLength = 253
)

// Params collects the cross-cutting configuration for the threshold/ROLE
// stack.
type Params struct {
	NumOLEs   int
	BitLength int
	K         int
	NumNodes  int
	Version   uint8
}

// Validate checks every field against spec.md 6's constraints.
func (p Params) Validate() error {
	if p.NumOLEs <= 0 {
		return kzgerr.ErrInvalidInput
	}
	if p.BitLength <= 0 || p.BitLength > MaxBitLength {
		return kzgerr.ErrInvalidInput
	}
	twoToBitLength := new(big.Int).Lsh(big.NewInt(1), uint(p.BitLength))
	if twoToBitLength.Cmp(curve.N) >= 0 {
		return kzgerr.ErrInvalidInput
	}
	if p.K <= 0 {
		return kzgerr.ErrInvalidInput
	}
	if p.NumNodes < 1 || p.NumNodes > MaxNumNodes {
		return kzgerr.ErrInvalidInput
	}
	if p.Version != Version {
		return kzgerr.ErrInvalidInput
	}
	return nil
}
