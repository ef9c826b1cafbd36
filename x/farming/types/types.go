package types

import (
	"time"
)

// Pool represents a farming pool and its public aggregate counters.
// The name is an uninterpreted byte sequence: callers may supply plaintext
// or ciphertext, the ledger never inspects it.
type Pool struct {
	PoolID uint64 `json:"pool_id"`
	Name   []byte `json:"name"`
	Active bool   `json:"active"`

	// Aggregate counters. Farmers tracks the number of currently active
	// positions; Deposits and Claims are lifetime counters and never
	// decrease.
	Farmers  uint64 `json:"farmers"`
	Deposits uint64 `json:"deposits"`
	Claims   uint64 `json:"claims"`

	// Timestamps
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewPool creates a new active pool with zeroed counters
func NewPool(poolID uint64, name []byte, createdAt time.Time) *Pool {
	now := createdAt.Unix()
	return &Pool{
		PoolID:    poolID,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Position is a participant's encrypted stake/reward record within one pool.
// Both ciphertext fields are opaque blobs; empty is the "no value" state.
type Position struct {
	PoolID      uint64 `json:"pool_id"`
	Participant string `json:"participant"`

	EncryptedStake   []byte `json:"encrypted_stake"`
	EncryptedAccrued []byte `json:"encrypted_accrued"`

	Active     bool  `json:"active"`
	LastUpdate int64 `json:"last_update"`
}

// NewPosition creates a fresh active position with empty ciphertext fields
func NewPosition(poolID uint64, participant string, now time.Time) *Position {
	return &Position{
		PoolID:      poolID,
		Participant: participant,
		Active:      true,
		LastUpdate:  now.Unix(),
	}
}

// Close clears both ciphertext fields and deactivates the position. A
// closed position is indistinguishable from one that never existed except
// that its slot may be reused when the participant re-enters the pool.
func (p *Position) Close(now time.Time) {
	p.EncryptedStake = nil
	p.EncryptedAccrued = nil
	p.Active = false
	p.LastUpdate = now.Unix()
}

// PoolAggregates is the public, non-attributable view of a pool's counters
type PoolAggregates struct {
	PoolID   uint64 `json:"pool_id"`
	Farmers  uint64 `json:"farmers"`
	Deposits uint64 `json:"deposits"`
	Claims   uint64 `json:"claims"`
}
