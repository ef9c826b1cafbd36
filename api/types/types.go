package types

// FarmingService defines the interface for ledger operations exposed by
// the API. Mutations go through the same keeper paths the chain uses,
// so every admin gate, counter rule and event applies here too.
type FarmingService interface {
	// Pool queries
	GetPools(offset, limit int) ([]*PoolInfo, error)
	GetPool(poolID uint64) (*PoolInfo, error)
	GetPoolAggregates(poolID uint64) (*PoolAggregates, error)
	GetActivePositions(poolID uint64) ([]*PositionInfo, error)

	// Position queries
	GetPosition(poolID uint64, participant string) (*PositionStatus, error)
	GetParticipantPositions(participant string) ([]*PositionInfo, error)

	// Ownership
	GetOwner() (string, error)
	TransferOwnership(caller, newOwner string) error

	// Pool administration
	CreatePool(creator string, name []byte) (*PoolInfo, error)
	SetPoolActive(creator string, poolID uint64, active bool) (*PoolInfo, error)

	// Encrypted position lifecycle
	Deposit(poolID uint64, participant string, encryptedStake []byte) (*PositionInfo, error)
	Accrue(poolID uint64, participant string, encryptedRewardDelta, newEncryptedAccrued []byte) (*PositionInfo, error)
	Claim(poolID uint64, participant string, encryptedPayout []byte) (*PositionInfo, error)
	Withdraw(poolID uint64, participant string, encryptedAmount []byte) (*PositionStatus, error)

	// Events delivers ledger events emitted by mutations, for streaming
	Events() <-chan *LedgerEvent
}

// Data types for the farming service

// PoolInfo is the public view of a pool. The name is an opaque byte
// label chosen by the owner and is serialized as base64.
type PoolInfo struct {
	PoolID    uint64 `json:"pool_id"`
	Name      []byte `json:"name"`
	Active    bool   `json:"active"`
	Farmers   uint64 `json:"farmers"`
	Deposits  uint64 `json:"deposits"`
	Claims    uint64 `json:"claims"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// PoolAggregates carries the plaintext counters of a pool
type PoolAggregates struct {
	PoolID   uint64 `json:"pool_id"`
	Farmers  uint64 `json:"farmers"`
	Deposits uint64 `json:"deposits"`
	Claims   uint64 `json:"claims"`
}

// PositionInfo is the full view of a position. The stake and accrued
// fields are ciphertexts and are serialized as base64. Only the holder
// of the farm key can decrypt them.
type PositionInfo struct {
	PoolID           uint64 `json:"pool_id"`
	Participant      string `json:"participant"`
	EncryptedStake   []byte `json:"encrypted_stake,omitempty"`
	EncryptedAccrued []byte `json:"encrypted_accrued,omitempty"`
	Active           bool   `json:"active"`
	LastUpdate       int64  `json:"last_update"`
}

// PositionStatus is a minimal open/closed view of a position that never
// carries ciphertext
type PositionStatus struct {
	PoolID      uint64 `json:"pool_id"`
	Participant string `json:"participant"`
	Active      bool   `json:"active"`
}

// LedgerEvent is a ledger event as delivered to API consumers
type LedgerEvent struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
	Timestamp  int64             `json:"timestamp"`
}

// PoolID returns the pool_id attribute if the event carries one
func (e *LedgerEvent) PoolID() (string, bool) {
	id, ok := e.Attributes["pool_id"]
	return id, ok
}

// Participant returns the participant attribute if the event carries one
func (e *LedgerEvent) Participant() (string, bool) {
	participant, ok := e.Attributes["participant"]
	return participant, ok
}
