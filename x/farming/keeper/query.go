package keeper

import (
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cipheryield/farmchain/x/farming/types"
)

// ============ Read-only Queries ============

// GetPools returns pools with pagination, most recent first
func (k *Keeper) GetPools(ctx sdk.Context, limit, offset int) []*types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStoreReversePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.Pool
	count := 0
	skipped := 0

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}
		if count >= limit {
			break
		}

		pools = append(pools, &pool)
		count++
	}

	return pools
}

// GetActivePositions returns the open positions in a pool. Only the set
// of active slots is surfaced; counting them cross-checks the pool's
// farmers aggregate.
func (k *Keeper) GetActivePositions(ctx sdk.Context, poolID uint64) []*types.Position {
	var active []*types.Position
	for _, position := range k.GetPoolPositions(ctx, poolID) {
		if position.Active {
			active = append(active, position)
		}
	}
	return active
}

// GetParticipantPositions returns a participant's open positions across
// all pools
func (k *Keeper) GetParticipantPositions(ctx sdk.Context, participant string) []*types.Position {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PositionKeyPrefix)
	defer iterator.Close()

	var positions []*types.Position
	for ; iterator.Valid(); iterator.Next() {
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			continue
		}
		if position.Participant == participant && position.Active {
			positions = append(positions, &position)
		}
	}
	return positions
}
