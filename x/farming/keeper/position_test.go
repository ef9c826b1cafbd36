package keeper

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cipheryield/farmchain/x/farming/types"
)

// TestDepositOpensPosition tests first deposit into a pool
func TestDepositOpensPosition(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	position := k.GetPosition(ctx, poolID, testAlice)
	if position == nil {
		t.Fatal("expected position to exist")
	}
	if !position.Active {
		t.Error("expected position to be active")
	}
	if !bytes.Equal(position.EncryptedStake, []byte("s1")) {
		t.Errorf("expected stake ciphertext s1, got %s", position.EncryptedStake)
	}
	if len(position.EncryptedAccrued) != 0 {
		t.Error("expected accrued ciphertext to start empty")
	}

	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 1 {
		t.Errorf("expected farmers 1, got %d", aggregates.Farmers)
	}
	if aggregates.Deposits != 1 {
		t.Errorf("expected deposits 1, got %d", aggregates.Deposits)
	}
	checkFarmersInvariant(t, k, ctx, poolID)
}

// TestDepositIntoInactivePool tests that deposits into a deactivated pool
// fail and leave state unchanged
func TestDepositIntoInactivePool(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")
	if err := k.SetPoolActive(ctx, testOwner, poolID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1"))
	if !errors.Is(err, types.ErrPoolInactive) {
		t.Errorf("expected ErrPoolInactive, got %v", err)
	}

	if k.GetPosition(ctx, poolID, testAlice) != nil {
		t.Error("expected no position to be created")
	}
	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 0 || aggregates.Deposits != 0 {
		t.Errorf("expected counters unchanged, got %+v", aggregates)
	}
}

// TestDepositIntoUnknownPool tests that an unknown pool id reads as
// inactive for deposits
func TestDepositIntoUnknownPool(t *testing.T) {
	k, ctx := setupKeeper(t)

	err := k.DepositEncrypted(ctx, 7, testAlice, []byte("s1"))
	if !errors.Is(err, types.ErrPoolInactive) {
		t.Errorf("expected ErrPoolInactive, got %v", err)
	}
}

// TestDepositLifecycle walks the scripted deposit/withdraw/re-enter
// sequence: a second deposit by the same participant overwrites the stake
// without growing the farmer count, withdrawal closes the slot, and a
// later deposit reuses it
func TestDepositLifecycle(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")
	if poolID != 0 {
		t.Fatalf("expected pool id 0, got %d", poolID)
	}

	// First deposit opens the position
	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 1 || aggregates.Deposits != 1 {
		t.Errorf("expected farmers=1 deposits=1, got %+v", aggregates)
	}

	// Second deposit by the same participant overwrites wholesale
	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aggregates = k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 1 {
		t.Errorf("expected farmers still 1, got %d", aggregates.Farmers)
	}
	if aggregates.Deposits != 2 {
		t.Errorf("expected deposits 2, got %d", aggregates.Deposits)
	}
	position := k.GetPosition(ctx, poolID, testAlice)
	if !bytes.Equal(position.EncryptedStake, []byte("s2")) {
		t.Errorf("expected stake overwritten to s2, got %s", position.EncryptedStake)
	}

	// Withdrawal closes the slot
	if err := k.WithdrawEncrypted(ctx, poolID, testAlice, []byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aggregates = k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 0 {
		t.Errorf("expected farmers 0 after withdrawal, got %d", aggregates.Farmers)
	}
	position = k.GetPosition(ctx, poolID, testAlice)
	if position.Active {
		t.Error("expected position inactive after withdrawal")
	}
	if len(position.EncryptedStake) != 0 || len(position.EncryptedAccrued) != 0 {
		t.Error("expected both ciphertext fields cleared after withdrawal")
	}

	// Re-entering reuses the slot fresh
	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s3")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aggregates = k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 1 {
		t.Errorf("expected farmers 1 after re-entry, got %d", aggregates.Farmers)
	}
	if aggregates.Deposits != 3 {
		t.Errorf("expected deposits 3, got %d", aggregates.Deposits)
	}
	position = k.GetPosition(ctx, poolID, testAlice)
	if !position.Active || !bytes.Equal(position.EncryptedStake, []byte("s3")) {
		t.Error("expected reopened position with fresh stake s3")
	}
	checkFarmersInvariant(t, k, ctx, poolID)
}

// TestAccrue tests accrued-reward overwrites
func TestAccrue(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")
	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := k.AccrueEncrypted(ctx, poolID, testAlice, []byte("d1"), []byte("a1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	position := k.GetPosition(ctx, poolID, testAlice)
	if !bytes.Equal(position.EncryptedAccrued, []byte("a1")) {
		t.Errorf("expected accrued ciphertext a1, got %s", position.EncryptedAccrued)
	}

	// Accrual has no counter side effects
	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Deposits != 1 || aggregates.Claims != 0 {
		t.Errorf("expected counters untouched by accrual, got %+v", aggregates)
	}

	// New total replaces the old one wholesale
	if err := k.AccrueEncrypted(ctx, poolID, testAlice, []byte("d2"), []byte("a2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	position = k.GetPosition(ctx, poolID, testAlice)
	if !bytes.Equal(position.EncryptedAccrued, []byte("a2")) {
		t.Errorf("expected accrued ciphertext a2, got %s", position.EncryptedAccrued)
	}

	event := lastEvent(t, ctx, "accrued_encrypted")
	if event == nil {
		t.FailNow()
	}
	if eventAttribute(t, event, "encrypted_reward_delta") == "" {
		t.Error("expected reward delta carried on the event")
	}
}

// TestAccrueRequiresActivePosition tests the position gate on accrual
func TestAccrueRequiresActivePosition(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	err := k.AccrueEncrypted(ctx, poolID, testAlice, []byte("d1"), []byte("a1"))
	if !errors.Is(err, types.ErrNoActivePosition) {
		t.Errorf("expected ErrNoActivePosition, got %v", err)
	}
}

// TestAccrueFailsOnInactivePool tests that deactivation gates accrual
// even when the participant holds an active position
func TestAccrueFailsOnInactivePool(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")
	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := k.SetPoolActive(ctx, testOwner, poolID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := k.AccrueEncrypted(ctx, poolID, testAlice, []byte("d1"), []byte("a1"))
	if !errors.Is(err, types.ErrPoolInactive) {
		t.Errorf("expected ErrPoolInactive, got %v", err)
	}
}

// TestClaim tests that claiming resets accrued rewards and keeps the
// position open
func TestClaim(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")
	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := k.AccrueEncrypted(ctx, poolID, testAlice, []byte("d1"), []byte("a1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := k.ClaimEncrypted(ctx, poolID, testAlice, []byte("p1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	position := k.GetPosition(ctx, poolID, testAlice)
	if len(position.EncryptedAccrued) != 0 {
		t.Error("expected accrued ciphertext cleared by claim")
	}
	if !position.Active {
		t.Error("expected position to stay active after claim")
	}
	if !bytes.Equal(position.EncryptedStake, []byte("s1")) {
		t.Error("expected stake untouched by claim")
	}

	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Claims != 1 {
		t.Errorf("expected claims 1, got %d", aggregates.Claims)
	}
	if aggregates.Farmers != 1 {
		t.Errorf("expected farmers 1, got %d", aggregates.Farmers)
	}
}

// TestClaimRequiresActivePosition tests the gates on claim
func TestClaimRequiresActivePosition(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	err := k.ClaimEncrypted(ctx, poolID, testAlice, []byte("p1"))
	if !errors.Is(err, types.ErrNoActivePosition) {
		t.Errorf("expected ErrNoActivePosition, got %v", err)
	}

	if err := k.SetPoolActive(ctx, testOwner, poolID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = k.ClaimEncrypted(ctx, poolID, testAlice, []byte("p1"))
	if !errors.Is(err, types.ErrPoolInactive) {
		t.Errorf("expected ErrPoolInactive, got %v", err)
	}
}

// TestWithdrawFromInactivePool tests the anti-lockout policy: withdrawal
// is permitted even when the pool has been deactivated
func TestWithdrawFromInactivePool(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")
	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := k.SetPoolActive(ctx, testOwner, poolID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := k.WithdrawEncrypted(ctx, poolID, testAlice, []byte("x")); err != nil {
		t.Fatalf("expected withdrawal from inactive pool to succeed, got %v", err)
	}

	position := k.GetPosition(ctx, poolID, testAlice)
	if position.Active {
		t.Error("expected position closed")
	}
	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 0 {
		t.Errorf("expected farmers 0, got %d", aggregates.Farmers)
	}
	checkFarmersInvariant(t, k, ctx, poolID)
}

// TestWithdrawRequiresActivePosition tests repeated withdrawal and
// withdrawal without a position
func TestWithdrawRequiresActivePosition(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	err := k.WithdrawEncrypted(ctx, poolID, testAlice, []byte("x"))
	if !errors.Is(err, types.ErrNoActivePosition) {
		t.Errorf("expected ErrNoActivePosition, got %v", err)
	}

	if err := k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := k.WithdrawEncrypted(ctx, poolID, testAlice, []byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A closed slot behaves like one that never existed
	err = k.WithdrawEncrypted(ctx, poolID, testAlice, []byte("x"))
	if !errors.Is(err, types.ErrNoActivePosition) {
		t.Errorf("expected ErrNoActivePosition on double withdrawal, got %v", err)
	}
	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 0 {
		t.Errorf("expected farmers 0, got %d", aggregates.Farmers)
	}
}

// TestCountersMonotonic tests that deposits and claims never decrease
// across a mixed call sequence and the farmers invariant holds throughout
func TestCountersMonotonic(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	var lastDeposits, lastClaims uint64
	check := func() {
		t.Helper()
		aggregates := k.GetPoolAggregates(ctx, poolID)
		if aggregates.Deposits < lastDeposits {
			t.Errorf("deposits decreased from %d to %d", lastDeposits, aggregates.Deposits)
		}
		if aggregates.Claims < lastClaims {
			t.Errorf("claims decreased from %d to %d", lastClaims, aggregates.Claims)
		}
		lastDeposits = aggregates.Deposits
		lastClaims = aggregates.Claims
		checkFarmersInvariant(t, k, ctx, poolID)
	}

	steps := []func() error{
		func() error { return k.DepositEncrypted(ctx, poolID, testAlice, []byte("s1")) },
		func() error { return k.DepositEncrypted(ctx, poolID, testBob, []byte("s2")) },
		func() error { return k.AccrueEncrypted(ctx, poolID, testAlice, []byte("d1"), []byte("a1")) },
		func() error { return k.ClaimEncrypted(ctx, poolID, testAlice, []byte("p1")) },
		func() error { return k.WithdrawEncrypted(ctx, poolID, testBob, []byte("x")) },
		func() error { return k.DepositEncrypted(ctx, poolID, testBob, []byte("s3")) },
		func() error { return k.ClaimEncrypted(ctx, poolID, testBob, []byte("p2")) },
		func() error { return k.WithdrawEncrypted(ctx, poolID, testAlice, []byte("x")) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		check()
	}

	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Deposits != 3 {
		t.Errorf("expected lifetime deposits 3, got %d", aggregates.Deposits)
	}
	if aggregates.Claims != 2 {
		t.Errorf("expected lifetime claims 2, got %d", aggregates.Claims)
	}
	if aggregates.Farmers != 1 {
		t.Errorf("expected farmers 1 at end of sequence, got %d", aggregates.Farmers)
	}
}

// TestPositionsAreIndependentAcrossPools tests that positions are keyed
// by (pool, participant)
func TestPositionsAreIndependentAcrossPools(t *testing.T) {
	k, ctx := setupKeeper(t)
	first := createTestPool(t, k, ctx, "alpha")
	second := createTestPool(t, k, ctx, "beta")

	if err := k.DepositEncrypted(ctx, first, testAlice, []byte("s1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := k.DepositEncrypted(ctx, second, testAlice, []byte("s2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := k.WithdrawEncrypted(ctx, first, testAlice, []byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if k.HasActivePosition(ctx, first, testAlice) {
		t.Error("expected no position in first pool")
	}
	if !k.HasActivePosition(ctx, second, testAlice) {
		t.Error("expected position in second pool to survive")
	}

	positions := k.GetParticipantPositions(ctx, testAlice)
	if len(positions) != 1 || positions[0].PoolID != second {
		t.Errorf("expected exactly the second-pool position, got %d positions", len(positions))
	}
}
