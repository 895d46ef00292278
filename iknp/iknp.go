// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package iknp implements the IKNP OT extension (spec.md 4.9): k base
// OTs, run once, are amplified into n random OTs via the matrix-transpose
// trick, using the ot package for the k base transfers.
package iknp

import (
	"github.com/luxfi/kzgdleq/bitvec"
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/kzgerr"
	"github.com/luxfi/kzgdleq/ot"
)

// SenderOutput holds the IKNP sender's n pairs of branch keys.
type SenderOutput struct {
	K0, K1 [][32]byte
}

// ReceiverOutput holds the IKNP receiver's n choice bits and matching keys.
type ReceiverOutput struct {
	R    *bitvec.BitVector
	Keys [][32]byte
}

// Extend runs the full sender-round-1/receiver-round-1/sender-round-2
// sequence of spec.md 4.9 in one call (the transport between the two
// roles is out of scope per spec.md 1; this models both sides of a
// single session). selectorC is the sender's k-bit selector vector and
// choiceR the receiver's n-bit choice vector; nil samples each randomly.
func Extend(n, k int, selectorC, choiceR *bitvec.BitVector) (*SenderOutput, *ReceiverOutput, error) {
	if n <= 0 || k <= 0 {
		return nil, nil, kzgerr.ErrInvalidInput
	}

	var err error
	if selectorC == nil {
		selectorC, err = bitvec.RandomBitVector(k)
		if err != nil {
			return nil, nil, err
		}
	} else if selectorC.Len() != k {
		return nil, nil, kzgerr.ErrLengthMismatch
	}

	if choiceR == nil {
		choiceR, err = bitvec.RandomBitVector(n)
		if err != nil {
			return nil, nil, err
		}
	} else if choiceR.Len() != n {
		return nil, nil, kzgerr.ErrLengthMismatch
	}

	T, err := bitvec.RandomBitMatrix(n, k)
	if err != nil {
		return nil, nil, err
	}

	// The IKNP receiver plays the OT-sender role in the k base OTs.
	baseSender, err := ot.NewSenderParams()
	if err != nil {
		return nil, nil, err
	}

	// The IKNP sender plays the OT-receiver role, choosing bit selectorC[j]
	// for base OT j.
	choices := make([]byte, k)
	for j := 0; j < k; j++ {
		if selectorC.Get(j) {
			choices[j] = 1
		}
	}
	receiverStates, err := ot.ReceiverInit(baseSender.Public, choices)
	if err != nil {
		return nil, nil, err
	}

	Q := bitvec.NewBitMatrix(n, k)
	for j := 0; j < k; j++ {
		colT := T.Column(j)
		colTPrime := colT.XOR(choiceR)

		ct0, ct1, err := ot.SenderEncrypt(baseSender, receiverStates[j].Public, colT.Bytes(), colTPrime.Bytes())
		if err != nil {
			return nil, nil, err
		}
		outBytes, err := ot.ReceiverDecrypt(receiverStates[j], baseSender.Public, ct0, ct1)
		if err != nil {
			return nil, nil, err
		}
		col := bitvec.FromBytes(outBytes, n)
		for i := 0; i < n; i++ {
			Q.Rows[i].Set(j, col.Get(i))
		}
	}

	sender := &SenderOutput{K0: make([][32]byte, n), K1: make([][32]byte, n)}
	for i := 0; i < n; i++ {
		rowQ := Q.Row(i)
		sender.K0[i] = curve.Keccak256(rowQ.Bytes())
		sender.K1[i] = curve.Keccak256(rowQ.XOR(selectorC).Bytes())
	}

	receiver := &ReceiverOutput{R: choiceR, Keys: make([][32]byte, n)}
	for i := 0; i < n; i++ {
		receiver.Keys[i] = curve.Keccak256(T.Row(i).Bytes())
	}

	return sender, receiver, nil
}
