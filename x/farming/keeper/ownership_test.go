package keeper

import (
	"errors"
	"testing"

	"github.com/cipheryield/farmchain/x/farming/types"
)

// TestOwnerDefaultsToAuthority tests the lazy owner bootstrap
func TestOwnerDefaultsToAuthority(t *testing.T) {
	k, ctx := setupKeeper(t)

	if owner := k.GetOwner(ctx); owner != testOwner {
		t.Errorf("expected owner %s, got %s", testOwner, owner)
	}
}

// TestTransferOwnership tests a successful transfer and the handover of
// administrative rights
func TestTransferOwnership(t *testing.T) {
	k, ctx := setupKeeper(t)

	if err := k.TransferOwnership(ctx, testOwner, testNewOwner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner := k.GetOwner(ctx); owner != testNewOwner {
		t.Errorf("expected owner %s, got %s", testNewOwner, owner)
	}

	// The previous owner has no rights left
	_, err := k.CreatePool(ctx, testOwner, []byte("late"))
	if !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for previous owner, got %v", err)
	}

	// The new owner has them
	if _, err := k.CreatePool(ctx, testNewOwner, []byte("fresh")); err != nil {
		t.Errorf("expected new owner to create pools, got %v", err)
	}

	event := lastEvent(t, ctx, "ownership_transferred")
	if event == nil {
		t.FailNow()
	}
	if got := eventAttribute(t, event, "new_owner"); got != testNewOwner {
		t.Errorf("expected new_owner attribute %s, got %s", testNewOwner, got)
	}
}

// TestTransferOwnershipUnauthorized tests the owner gate on transfers
func TestTransferOwnershipUnauthorized(t *testing.T) {
	k, ctx := setupKeeper(t)

	err := k.TransferOwnership(ctx, testAlice, testAlice)
	if !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if owner := k.GetOwner(ctx); owner != testOwner {
		t.Errorf("expected owner unchanged, got %s", owner)
	}
}

// TestTransferOwnershipNullIdentity tests rejection of the null identity
func TestTransferOwnershipNullIdentity(t *testing.T) {
	k, ctx := setupKeeper(t)

	err := k.TransferOwnership(ctx, testOwner, "")
	if !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if owner := k.GetOwner(ctx); owner != testOwner {
		t.Errorf("expected owner unchanged, got %s", owner)
	}
}
