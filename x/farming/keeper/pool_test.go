package keeper

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/cipheryield/farmchain/x/farming/types"
)

// TestCreatePool tests pool creation and sequential id allocation
func TestCreatePool(t *testing.T) {
	k, ctx := setupKeeper(t)

	poolID, err := k.CreatePool(ctx, testOwner, []byte("alpha"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if poolID != 0 {
		t.Errorf("expected first pool id 0, got %d", poolID)
	}

	second, err := k.CreatePool(ctx, testOwner, []byte("beta"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != 1 {
		t.Errorf("expected second pool id 1, got %d", second)
	}

	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		t.Fatal("expected pool to exist")
	}
	if !pool.Active {
		t.Error("expected new pool to be active")
	}
	if string(pool.Name) != "alpha" {
		t.Errorf("expected pool name alpha, got %s", pool.Name)
	}
	if pool.Farmers != 0 || pool.Deposits != 0 || pool.Claims != 0 {
		t.Errorf("expected zeroed counters, got %d/%d/%d", pool.Farmers, pool.Deposits, pool.Claims)
	}
	if pool.CreatedAt != ctx.BlockTime().Unix() {
		t.Errorf("expected created at %d, got %d", ctx.BlockTime().Unix(), pool.CreatedAt)
	}

	event := lastEvent(t, ctx, "pool_created")
	if event == nil {
		t.FailNow()
	}
	if got := eventAttribute(t, event, "pool_id"); got != "0" {
		t.Errorf("expected pool_id attribute 0, got %s", got)
	}
	wantName := base64.StdEncoding.EncodeToString([]byte("alpha"))
	if got := eventAttribute(t, event, "name"); got != wantName {
		t.Errorf("expected name attribute %s, got %s", wantName, got)
	}
}

// TestCreatePoolUnauthorized tests that non-owners cannot create pools
func TestCreatePoolUnauthorized(t *testing.T) {
	k, ctx := setupKeeper(t)

	_, err := k.CreatePool(ctx, testAlice, []byte("rogue"))
	if !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	if pools := k.GetAllPools(ctx); len(pools) != 0 {
		t.Errorf("expected pool set unchanged, got %d pools", len(pools))
	}
	if next := k.GetNextPoolID(ctx); next != 0 {
		t.Errorf("expected pool id sequence untouched, got %d", next)
	}
}

// TestSetPoolActive tests deactivation and reactivation
func TestSetPoolActive(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	if err := k.SetPoolActive(ctx, testOwner, poolID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.IsPoolActive(ctx, poolID) {
		t.Error("expected pool to be inactive")
	}

	event := lastEvent(t, ctx, "pool_status_changed")
	if event == nil {
		t.FailNow()
	}
	if got := eventAttribute(t, event, "active"); got != "false" {
		t.Errorf("expected active attribute false, got %s", got)
	}

	if err := k.SetPoolActive(ctx, testOwner, poolID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !k.IsPoolActive(ctx, poolID) {
		t.Error("expected pool to be active again")
	}
}

// TestSetPoolActiveUnauthorized tests the owner gate on status changes
func TestSetPoolActiveUnauthorized(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	err := k.SetPoolActive(ctx, testBob, poolID, false)
	if !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if !k.IsPoolActive(ctx, poolID) {
		t.Error("expected pool to remain active")
	}
}

// TestSetPoolActiveUnknownPool tests that flipping an unknown pool id
// materializes a default record instead of failing
func TestSetPoolActiveUnknownPool(t *testing.T) {
	k, ctx := setupKeeper(t)

	if err := k.SetPoolActive(ctx, testOwner, 42, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool := k.GetPool(ctx, 42)
	if pool == nil {
		t.Fatal("expected default record to be created")
	}
	if !pool.Active {
		t.Error("expected default record to carry the flag")
	}
	if pool.Farmers != 0 || pool.Deposits != 0 || pool.Claims != 0 {
		t.Error("expected default record counters to stay zero")
	}
}

// TestDefaultReadsForUnknownPool tests the present-or-default lookup
// semantics of the read surface
func TestDefaultReadsForUnknownPool(t *testing.T) {
	k, ctx := setupKeeper(t)

	if k.IsPoolActive(ctx, 999) {
		t.Error("expected unknown pool to read as inactive")
	}

	aggregates := k.GetPoolAggregates(ctx, 999)
	if aggregates.Farmers != 0 || aggregates.Deposits != 0 || aggregates.Claims != 0 {
		t.Errorf("expected zero aggregates for unknown pool, got %+v", aggregates)
	}
	if aggregates.PoolID != 999 {
		t.Errorf("expected aggregates keyed to pool 999, got %d", aggregates.PoolID)
	}
}

// TestFarmersCounterClampsAtZero tests the defensive clamp on decrement
func TestFarmersCounterClampsAtZero(t *testing.T) {
	k, ctx := setupKeeper(t)
	poolID := createTestPool(t, k, ctx, "alpha")

	k.addFarmers(ctx, poolID, -1)

	aggregates := k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 0 {
		t.Errorf("expected farmers clamped at zero, got %d", aggregates.Farmers)
	}

	k.addFarmers(ctx, poolID, 2)
	k.addFarmers(ctx, poolID, -5)

	aggregates = k.GetPoolAggregates(ctx, poolID)
	if aggregates.Farmers != 0 {
		t.Errorf("expected farmers clamped at zero after over-decrement, got %d", aggregates.Farmers)
	}
}

// TestGetPoolsPagination tests the paginated pool query
func TestGetPoolsPagination(t *testing.T) {
	k, ctx := setupKeeper(t)
	for i := 0; i < 5; i++ {
		createTestPool(t, k, ctx, "pool")
	}

	page := k.GetPools(ctx, 2, 0)
	if len(page) != 2 {
		t.Fatalf("expected 2 pools, got %d", len(page))
	}
	// Most recent first
	if page[0].PoolID != 4 || page[1].PoolID != 3 {
		t.Errorf("expected pools 4,3 on first page, got %d,%d", page[0].PoolID, page[1].PoolID)
	}

	page = k.GetPools(ctx, 2, 4)
	if len(page) != 1 {
		t.Fatalf("expected 1 pool on last page, got %d", len(page))
	}
	if page[0].PoolID != 0 {
		t.Errorf("expected pool 0 on last page, got %d", page[0].PoolID)
	}
}
