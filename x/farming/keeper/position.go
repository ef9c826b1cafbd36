package keeper

import (
	"encoding/base64"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cipheryield/farmchain/x/farming/types"
)

// DepositEncrypted records an encrypted stake for a participant, opening
// a position on first deposit. The supplied ciphertext replaces the
// stored stake wholesale; any accumulation with the previous value is the
// off-ledger computation layer's job.
func (k *Keeper) DepositEncrypted(ctx sdk.Context, poolID uint64, participant string, encStake []byte) error {
	if !k.IsPoolActive(ctx, poolID) {
		return types.ErrPoolInactive
	}

	position := k.GetPosition(ctx, poolID, participant)
	if position == nil || !position.Active {
		position = types.NewPosition(poolID, participant, ctx.BlockTime())
		k.addFarmers(ctx, poolID, 1)
	}

	position.EncryptedStake = encStake
	position.LastUpdate = ctx.BlockTime().Unix()
	k.SetPosition(ctx, position)
	k.addDeposits(ctx, poolID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"deposited_encrypted",
			sdk.NewAttribute("pool_id", strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute("participant", participant),
			sdk.NewAttribute("encrypted_stake", base64.StdEncoding.EncodeToString(encStake)),
		),
	)

	k.logger.Info("encrypted deposit recorded", "pool_id", poolID, "participant", participant)

	return nil
}

// AccrueEncrypted overwrites a position's accrued-reward ciphertext. The
// delta ciphertext is carried on the event only, never combined on-ledger.
func (k *Keeper) AccrueEncrypted(ctx sdk.Context, poolID uint64, participant string, encRewardDelta, newEncAccrued []byte) error {
	if !k.IsPoolActive(ctx, poolID) {
		return types.ErrPoolInactive
	}
	position := k.GetPosition(ctx, poolID, participant)
	if position == nil || !position.Active {
		return types.ErrNoActivePosition
	}

	position.EncryptedAccrued = newEncAccrued
	position.LastUpdate = ctx.BlockTime().Unix()
	k.SetPosition(ctx, position)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"accrued_encrypted",
			sdk.NewAttribute("pool_id", strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute("participant", participant),
			sdk.NewAttribute("encrypted_reward_delta", base64.StdEncoding.EncodeToString(encRewardDelta)),
			sdk.NewAttribute("new_encrypted_accrued", base64.StdEncoding.EncodeToString(newEncAccrued)),
		),
	)

	return nil
}

// ClaimEncrypted resets a position's accrued rewards to the empty state.
// The payout ciphertext is caller-supplied and recorded on the event
// unchecked against the stored accrued value.
func (k *Keeper) ClaimEncrypted(ctx sdk.Context, poolID uint64, participant string, encPayout []byte) error {
	if !k.IsPoolActive(ctx, poolID) {
		return types.ErrPoolInactive
	}
	position := k.GetPosition(ctx, poolID, participant)
	if position == nil || !position.Active {
		return types.ErrNoActivePosition
	}

	position.EncryptedAccrued = nil
	position.LastUpdate = ctx.BlockTime().Unix()
	k.SetPosition(ctx, position)
	k.addClaims(ctx, poolID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"claimed_encrypted",
			sdk.NewAttribute("pool_id", strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute("participant", participant),
			sdk.NewAttribute("encrypted_payout", base64.StdEncoding.EncodeToString(encPayout)),
		),
	)

	k.logger.Info("encrypted claim recorded", "pool_id", poolID, "participant", participant)

	return nil
}

// WithdrawEncrypted closes a participant's position. There is no
// pool-active gate here: participants can always exit, deactivated pools
// included.
func (k *Keeper) WithdrawEncrypted(ctx sdk.Context, poolID uint64, participant string, encAmount []byte) error {
	position := k.GetPosition(ctx, poolID, participant)
	if position == nil || !position.Active {
		return types.ErrNoActivePosition
	}

	position.Close(ctx.BlockTime())
	k.SetPosition(ctx, position)
	k.addFarmers(ctx, poolID, -1)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"withdrawn_encrypted",
			sdk.NewAttribute("pool_id", strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute("participant", participant),
			sdk.NewAttribute("encrypted_amount", base64.StdEncoding.EncodeToString(encAmount)),
		),
	)

	k.logger.Info("position closed", "pool_id", poolID, "participant", participant)

	return nil
}

// HasActivePosition reports whether the participant holds an open
// position in the pool
func (k *Keeper) HasActivePosition(ctx sdk.Context, poolID uint64, participant string) bool {
	position := k.GetPosition(ctx, poolID, participant)
	return position != nil && position.Active
}
