// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package threshold

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/luxfi/kzgdleq/challenge"
	"github.com/luxfi/kzgdleq/curve"
	"github.com/luxfi/kzgdleq/dleq"
	"github.com/luxfi/kzgdleq/kzgerr"
	log "github.com/luxfi/log"
)

// Manager coordinates in-flight DLEQ proving sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[[32]byte]*Session
	log      log.Logger
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[[32]byte]*Session),
		log:      log.NewTestLogger(log.InfoLevel),
	}
}

// StartSession opens a new round-1-accepting session for a proof that P
// and the public evaluation point x are already fixed (P=s*G from the
// distributed setup, not reconstructed here).
func (m *Manager) StartSession(threshold, totalParties uint32, x *big.Int, p curve.Point, ttl time.Duration) (*Session, error) {
	if totalParties == 0 || totalParties > MaxThresholdParties {
		return nil, ErrInvalidPartyCount
	}
	if threshold == 0 || threshold > totalParties {
		return nil, ErrInvalidThreshold
	}
	if !curve.InRangeScalar(x) {
		return nil, kzgerr.ErrInvalidInput
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	var id [32]byte
	if _, err := rand.Read(id[:]); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:           id,
		Threshold:    threshold,
		TotalParties: totalParties,
		X:            curve.ModN(x),
		P:            p,
		Status:       StatusRound1,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		round1:       make(map[int]round1Contribution, totalParties),
		round2:       make(map[int]*big.Int, totalParties),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.log.Info(fmt.Sprintf("threshold session %x started: threshold=%d totalParties=%d", id, threshold, totalParties))
	return s, nil
}

func (m *Manager) get(id [32]byte) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		m.log.Warn(fmt.Sprintf("threshold session %x: expired", id))
		return nil, ErrSessionExpired
	}
	return s, nil
}

// SubmitRound1 records node nodeIndex's independent commitment share. Once
// every node in [0,TotalParties) has contributed, the aggregation barrier
// fires: points are summed and the single Fiat-Shamir challenge is derived,
// advancing the session to round 2.
func (m *Manager) SubmitRound1(id [32]byte, nodeIndex int, c, w, a1, a2 curve.Point) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Status != StatusRound1 {
		return ErrSessionNotInRound1
	}
	if nodeIndex < 0 || nodeIndex >= int(s.TotalParties) {
		return ErrUnknownNodeIndex
	}
	if _, exists := s.round1[nodeIndex]; exists {
		return ErrDuplicateContribution
	}

	s.round1[nodeIndex] = round1Contribution{C: c, W: w, A1: a1, A2: a2}
	if len(s.round1) < int(s.TotalParties) {
		return nil
	}

	first := s.round1[0]
	aggC, aggW, aggA1, aggA2 := first.C, first.W, first.A1, first.A2
	for i := 1; i < int(s.TotalParties); i++ {
		ctrb := s.round1[i]
		aggC = curve.Add(aggC, ctrb.C)
		aggW = curve.Add(aggW, ctrb.W)
		aggA1 = curve.Add(aggA1, ctrb.A1)
		aggA2 = curve.Add(aggA2, ctrb.A2)
	}

	s.aggregatedC, s.aggregatedW, s.aggregatedA1, s.aggregatedA2 = aggC, aggW, aggA1, aggA2
	s.challenge = challenge.BuildFromPoints(aggC, aggW, s.P, aggA1, aggA2, s.X)
	s.Status = StatusRound2
	m.log.Info(fmt.Sprintf("threshold session %x: round 1 complete, challenge derived, entering round 2", id))
	return nil
}

// Challenge returns the session's Fiat-Shamir challenge, available once
// round 1's aggregation barrier has fired.
func (m *Manager) Challenge(id [32]byte) (*big.Int, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s.Status == StatusRound1 {
		return nil, ErrSessionNotInRound2
	}
	return new(big.Int).Set(s.challenge), nil
}

// SubmitRound2 records node nodeIndex's response z_i, computed by the node
// against recomputedChallenge. If the node's own recomputation of the
// Fiat-Shamir challenge from the aggregated round-1 points disagrees with
// the session's, the submission is rejected rather than silently pooled
// into a response that would fail the final verification. Once every node
// has responded, the responses are summed and the final proof assembled.
func (m *Manager) SubmitRound2(id [32]byte, nodeIndex int, z, recomputedChallenge *big.Int) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Status != StatusRound2 {
		return ErrSessionNotInRound2
	}
	if nodeIndex < 0 || nodeIndex >= int(s.TotalParties) {
		return ErrUnknownNodeIndex
	}
	if _, exists := s.round2[nodeIndex]; exists {
		return ErrDuplicateContribution
	}
	if recomputedChallenge.Cmp(s.challenge) != 0 {
		s.Status = StatusFailed
		m.log.Warn(fmt.Sprintf("threshold session %x: node %d reported a challenge mismatch, session failed", id, nodeIndex))
		return kzgerr.ErrChallengeMismatch
	}

	s.round2[nodeIndex] = curve.ModN(z)
	if len(s.round2) < int(s.TotalParties) {
		return nil
	}

	z = new(big.Int)
	for i := 0; i < int(s.TotalParties); i++ {
		z = curve.AddMod(z, s.round2[i])
	}

	s.proof = &dleq.Proof{
		C: s.aggregatedC, W: s.aggregatedW, P: s.P,
		A1: s.aggregatedA1, A2: s.aggregatedA2,
		X: s.X, Z: z,
	}
	s.Status = StatusComplete
	m.log.Info(fmt.Sprintf("threshold session %x: round 2 complete, proof assembled", id))
	return nil
}

// Finalize returns the completed proof, or ErrSessionIncomplete if round 2
// has not collected every node's response yet.
func (m *Manager) Finalize(id [32]byte) (*dleq.Proof, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s.Status != StatusComplete {
		return nil, ErrSessionIncomplete
	}
	return s.proof, nil
}
