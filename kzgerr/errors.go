// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package kzgerr collects the sentinel errors shared by every subsystem of
// the KZG-DLEQ prover/verifier: curve primitives, the single and threshold
// provers, the OT/IKNP/ROLE stack, and the calldata encoder. Centralizing
// them here mirrors threshold/types.go's package-level Err* block, but
// across package boundaries instead of within one package, since every
// subsystem in this module shares the same error taxonomy.
package kzgerr

import "errors"

var (
	// ErrInvalidInput covers an out-of-range scalar or coordinate, an
	// off-curve point, a zero address, or an unsupported version byte.
	ErrInvalidInput = errors.New("kzgdleq: invalid input")

	// ErrPolynomialNonZero is returned when p(x) != 0 at proof generation.
	ErrPolynomialNonZero = errors.New("kzgdleq: polynomial does not vanish at x")

	// ErrDegreeExceedsSRS is returned when a polynomial's length exceeds
	// the available SRS length.
	ErrDegreeExceedsSRS = errors.New("kzgdleq: polynomial degree exceeds SRS")

	// ErrDegenerateSetup covers s=0 mod N, s=x (T=0), or a commitment to
	// the zero polynomial.
	ErrDegenerateSetup = errors.New("kzgdleq: degenerate setup")

	// ErrChallengeMismatch is returned in threshold Round 2 when a node's
	// locally recomputed challenge differs from the aggregator's.
	ErrChallengeMismatch = errors.New("kzgdleq: challenge mismatch")

	// ErrMACFailed is returned when an OT ciphertext's authentication tag
	// fails to verify.
	ErrMACFailed = errors.New("kzgdleq: mac verification failed")

	// ErrLengthMismatch covers an array-length contract violation between
	// paired messages (e.g. sender/receiver OT message pairs).
	ErrLengthMismatch = errors.New("kzgdleq: length mismatch")

	// ErrPoolExhausted is returned when an OT/ROLE pool's nextIndex has
	// passed its configured capacity.
	ErrPoolExhausted = errors.New("kzgdleq: pool exhausted")

	// ErrDuplicateOLEIndex is returned when an aggregator sees two shares
	// claiming the same OLE index.
	ErrDuplicateOLEIndex = errors.New("kzgdleq: duplicate OLE index")
)
