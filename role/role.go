// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package role implements the bit-decomposed random and chosen-input ROLE
// (random/oblivious linear evaluation) pool of spec.md 4.11: numOLEs
// samples (a,b) for the sender and (x,y=a*x+b) for the receiver, built on
// top of an IKNP extension and the Beaver transform.
package role

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/luxfi/kzgdleq/beaver"
	"github.com/luxfi/kzgdleq/bitvec"
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/iknp"
	"github.com/luxfi/kzgdleq/kzgerr"
	log "github.com/luxfi/log"
)

// poolLog is shared by every SenderPool/ReceiverPool in this process; a
// ROLE pool is a long-running, monotonically-consumed resource (spec.md 5),
// so its exhaustion is a lifecycle event worth recording rather than a
// silent error return.
var poolLog = log.NewTestLogger(log.InfoLevel)

const (
	oleOTTag   = "role-ot"
	oleATag    = "role-a"
	oleMaskTag = "role-mask"
)

// SenderSample is the sender's (a,b) view of one OLE sample.
type SenderSample struct {
	Index int
	A, B  *big.Int
}

// ReceiverSample is the receiver's (x, y=a*x+b) view of one OLE sample.
type ReceiverSample struct {
	Index int
	X, Y  *big.Int
}

// SenderPool is the sender's precomputed, monotonically-consumed sample
// set.
type SenderPool struct {
	mu        sync.Mutex
	samples   []SenderSample
	nextIndex int
}

// Next returns the next unconsumed sample, or kzgerr.ErrPoolExhausted once
// every sample has been handed out.
func (p *SenderPool) Next() (SenderSample, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nextIndex >= len(p.samples) {
		poolLog.Warn(fmt.Sprintf("role: sender pool exhausted after %d samples", len(p.samples)))
		return SenderSample{}, kzgerr.ErrPoolExhausted
	}
	s := p.samples[p.nextIndex]
	p.nextIndex++
	return s, nil
}

// Len reports the total pool size.
func (p *SenderPool) Len() int { return len(p.samples) }

// At returns the sample at a specific index without consuming it. The VOLE
// aggregator uses the ReceiverPool counterpart to look up a sample by the
// oleIndex a node reports.
func (p *SenderPool) At(index int) (SenderSample, error) {
	if index < 0 || index >= len(p.samples) {
		return SenderSample{}, kzgerr.ErrInvalidInput
	}
	return p.samples[index], nil
}

// ReceiverPool mirrors SenderPool for the receiver's samples.
type ReceiverPool struct {
	mu        sync.Mutex
	samples   []ReceiverSample
	nextIndex int
}

func (p *ReceiverPool) Next() (ReceiverSample, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nextIndex >= len(p.samples) {
		poolLog.Warn(fmt.Sprintf("role: receiver pool exhausted after %d samples", len(p.samples)))
		return ReceiverSample{}, kzgerr.ErrPoolExhausted
	}
	s := p.samples[p.nextIndex]
	p.nextIndex++
	return s, nil
}

func (p *ReceiverPool) Len() int { return len(p.samples) }

func (p *ReceiverPool) At(index int) (ReceiverSample, error) {
	if index < 0 || index >= len(p.samples) {
		return ReceiverSample{}, kzgerr.ErrInvalidInput
	}
	return p.samples[index], nil
}

// ExtendRandom produces numOLEs random-OLE samples: the receiver's x_i
// values are freshly sampled bits rather than caller-chosen.
func ExtendRandom(numOLEs, bitLength, k int) (*SenderPool, *ReceiverPool, error) {
	if err := checkParams(numOLEs, bitLength); err != nil {
		return nil, nil, err
	}
	return core(numOLEs, bitLength, k, nil)
}

// ExtendChosen produces numOLEs chosen-input OLE samples, one per entry of
// xs, each encoded into bitLength little-endian bits and fed as the IKNP
// receiver's choices.
func ExtendChosen(xs []*big.Int, bitLength, k int) (*SenderPool, *ReceiverPool, error) {
	numOLEs := len(xs)
	if err := checkParams(numOLEs, bitLength); err != nil {
		return nil, nil, err
	}

	choiceBits := bitvec.New(numOLEs * bitLength)
	for i, x := range xs {
		bits := bitvec.BitsFromScalar(x, bitLength)
		for j := 0; j < bitLength; j++ {
			choiceBits.Set(i*bitLength+j, bits.Get(j))
		}
	}
	return core(numOLEs, bitLength, k, choiceBits)
}

func checkParams(numOLEs, bitLength int) error {
	if numOLEs <= 0 || bitLength <= 0 {
		return kzgerr.ErrInvalidInput
	}
	twoToBitLength := new(big.Int).Lsh(big.NewInt(1), uint(bitLength))
	if twoToBitLength.Cmp(curve.N) >= 0 {
		return kzgerr.ErrInvalidInput
	}
	return nil
}

// core runs IKNP extension over n_t=numOLEs*bitLength base OTs and then
// the ROLE sender/receiver round-2 steps of spec.md 4.11.
func core(numOLEs, bitLength, k int, choiceBits *bitvec.BitVector) (*SenderPool, *ReceiverPool, error) {
	nt := numOLEs * bitLength
	senderOut, receiverOut, err := iknp.Extend(nt, k, nil, choiceBits)
	if err != nil {
		return nil, nil, err
	}

	maskSeed := curve.Keccak256([]byte(oleMaskTag), senderOut.K0[0][:], senderOut.K1[0][:])
	matrix, err := bitvec.SeededBitMatrix(maskSeed, nt, 256)
	if err != nil {
		return nil, nil, err
	}

	ct0 := make([][32]byte, nt)
	ct1 := make([][32]byte, nt)
	senderSamples := make([]SenderSample, numOLEs)

	for i := 0; i < numOLEs; i++ {
		base := i * bitLength
		aSeed := curve.Keccak256([]byte(oleATag), senderOut.K0[base][:], senderOut.K1[base][:])
		a := curve.ModN(new(big.Int).SetBytes(aSeed[:]))
		b := new(big.Int)
		pow := big.NewInt(1)

		for j := 0; j < bitLength; j++ {
			t := base + j
			r := curve.ModN(new(big.Int).SetBytes(matrix.Row(t).Bytes()))
			b = curve.AddMod(b, r)

			m0 := curve.To32(r)
			m1 := curve.To32(curve.AddMod(r, curve.MulMod(a, pow)))

			c0, c1, encErr := beaver.Encrypt([]byte(oleOTTag), senderOut.K0[t], senderOut.K1[t], m0[:], m1[:])
			if encErr != nil {
				return nil, nil, encErr
			}
			ct0[t] = c0
			ct1[t] = c1

			pow = new(big.Int).Lsh(pow, 1)
		}

		senderSamples[i] = SenderSample{Index: i, A: a, B: b}
	}

	receiverSamples := make([]ReceiverSample, numOLEs)
	for i := 0; i < numOLEs; i++ {
		base := i * bitLength
		y := new(big.Int)
		for j := 0; j < bitLength; j++ {
			t := base + j
			ct := ct0[t]
			if receiverOut.R.Get(t) {
				ct = ct1[t]
			}
			mBytes := beaver.Decrypt([]byte(oleOTTag), receiverOut.Keys[t], ct)
			m := curve.ModN(new(big.Int).SetBytes(mBytes[:]))
			y = curve.AddMod(y, m)
		}
		x := bitvec.ScalarFromBits(receiverOut.R, base, bitLength)
		receiverSamples[i] = ReceiverSample{Index: i, X: x, Y: y}
	}

	poolLog.Info(fmt.Sprintf("role: provisioned %d OLE samples (bitLength=%d)", numOLEs, bitLength))
	return &SenderPool{samples: senderSamples}, &ReceiverPool{samples: receiverSamples}, nil
}
