package keeper

import (
	"cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cipheryield/farmchain/x/farming/types"
)

// GetOwner returns the privileged identity. When no transfer has been
// recorded yet the keeper's authority address is the owner.
func (k *Keeper) GetOwner(ctx sdk.Context) string {
	store := k.GetStore(ctx)
	bz := store.Get(types.OwnerKey)
	if bz == nil {
		return k.authority
	}
	return string(bz)
}

// setOwner records the privileged identity
func (k *Keeper) setOwner(ctx sdk.Context, owner string) {
	store := k.GetStore(ctx)
	store.Set(types.OwnerKey, []byte(owner))
}

// requireOwner fails with ErrUnauthorized unless caller is the current
// owner. Every administrative mutation runs this before touching state.
func (k *Keeper) requireOwner(ctx sdk.Context, caller string) error {
	if caller != k.GetOwner(ctx) {
		return types.ErrUnauthorized
	}
	return nil
}

// TransferOwnership replaces the privileged identity. Only the current
// owner may call it and the new owner must not be the null identity.
func (k *Keeper) TransferOwnership(ctx sdk.Context, caller, newOwner string) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if newOwner == "" {
		return errors.Wrap(types.ErrInvalidArgument, "new owner is the null identity")
	}

	previous := k.GetOwner(ctx)
	k.setOwner(ctx, newOwner)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"ownership_transferred",
			sdk.NewAttribute("previous_owner", previous),
			sdk.NewAttribute("new_owner", newOwner),
		),
	)

	k.logger.Info("ownership transferred",
		"previous_owner", previous,
		"new_owner", newOwner,
	)

	return nil
}
