package types

import "encoding/binary"

// Module name and store key
const (
	ModuleName = "farming"
	StoreKey   = ModuleName
)

// Store key prefixes
var (
	PoolKeyPrefix     = []byte{0x01}
	PositionKeyPrefix = []byte{0x02}
	OwnerKey          = []byte{0x03}
	NextPoolIDKey     = []byte{0x04}
)

// PoolKey returns the store key for a pool record
func PoolKey(poolID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	return append(PoolKeyPrefix, bz...)
}

// PositionKey returns the store key for a (pool, participant) position record
func PositionKey(poolID uint64, participant string) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	key := append(PositionKeyPrefix, bz...)
	return append(key, []byte(participant)...)
}

// PoolPositionsPrefix returns the iteration prefix for all positions in a pool
func PoolPositionsPrefix(poolID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	return append(PositionKeyPrefix, bz...)
}
