package keeper

import (
	"encoding/base64"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cipheryield/farmchain/x/farming/types"
)

// CreatePool allocates the next sequential pool id and stores a new
// active pool with zeroed counters. Owner only.
func (k *Keeper) CreatePool(ctx sdk.Context, creator string, name []byte) (uint64, error) {
	if err := k.requireOwner(ctx, creator); err != nil {
		return 0, err
	}

	poolID := k.GetNextPoolID(ctx)
	pool := types.NewPool(poolID, name, ctx.BlockTime())
	k.SetPool(ctx, pool)
	k.setNextPoolID(ctx, poolID+1)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_created",
			sdk.NewAttribute("pool_id", strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute("name", base64.StdEncoding.EncodeToString(name)),
		),
	)

	k.logger.Info("pool created", "pool_id", poolID)

	return poolID, nil
}

// SetPoolActive sets the activity flag unconditionally. Owner only. An
// unknown pool id materializes a default record carrying just the flag;
// user operations still fail against it until a real pool exists there.
func (k *Keeper) SetPoolActive(ctx sdk.Context, creator string, poolID uint64, active bool) error {
	if err := k.requireOwner(ctx, creator); err != nil {
		return err
	}

	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		pool = &types.Pool{PoolID: poolID, CreatedAt: ctx.BlockTime().Unix()}
	}
	pool.Active = active
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_status_changed",
			sdk.NewAttribute("pool_id", strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute("active", strconv.FormatBool(active)),
		),
	)

	k.logger.Info("pool status changed", "pool_id", poolID, "active", active)

	return nil
}

// IsPoolActive reports whether the pool exists and is active. Unknown
// pool ids read as inactive.
func (k *Keeper) IsPoolActive(ctx sdk.Context, poolID uint64) bool {
	pool := k.GetPool(ctx, poolID)
	return pool != nil && pool.Active
}

// GetPoolAggregates returns the public counters for a pool. Unknown pool
// ids read as all zeroes.
func (k *Keeper) GetPoolAggregates(ctx sdk.Context, poolID uint64) types.PoolAggregates {
	aggregates := types.PoolAggregates{PoolID: poolID}
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return aggregates
	}
	aggregates.Farmers = pool.Farmers
	aggregates.Deposits = pool.Deposits
	aggregates.Claims = pool.Claims
	return aggregates
}

// addFarmers adjusts the active-position counter. A decrement below zero
// clamps silently; correct sequencing never reaches the clamp.
func (k *Keeper) addFarmers(ctx sdk.Context, poolID uint64, delta int64) {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return
	}
	if delta < 0 && uint64(-delta) > pool.Farmers {
		pool.Farmers = 0
	} else {
		pool.Farmers = uint64(int64(pool.Farmers) + delta)
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
}

// addDeposits bumps the lifetime deposit counter
func (k *Keeper) addDeposits(ctx sdk.Context, poolID uint64) {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return
	}
	pool.Deposits++
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
}

// addClaims bumps the lifetime claim counter
func (k *Keeper) addClaims(ctx sdk.Context, poolID uint64) {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return
	}
	pool.Claims++
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
}
