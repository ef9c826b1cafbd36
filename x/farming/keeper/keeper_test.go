package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cipheryield/farmchain/x/farming/types"
)

// Test identities
const (
	testOwner    = "cosmos1owner"
	testNewOwner = "cosmos1newowner"
	testAlice    = "cosmos1alice"
	testBob      = "cosmos1bob"
)

// setupKeeper creates a test keeper backed by an in-memory store
func setupKeeper(tb testing.TB) (*Keeper, sdk.Context) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	ctx = ctx.WithBlockTime(time.Unix(1700000000, 0))

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	keeper := NewKeeper(cdc, storeKey, testOwner, log.NewNopLogger())

	return keeper, ctx
}

// createTestPool creates a pool as the owner and fails the test on error
func createTestPool(tb testing.TB, k *Keeper, ctx sdk.Context, name string) uint64 {
	tb.Helper()

	poolID, err := k.CreatePool(ctx, testOwner, []byte(name))
	if err != nil {
		tb.Fatalf("failed to create pool: %v", err)
	}
	return poolID
}

// checkFarmersInvariant verifies the farmers counter equals the number of
// active positions in the pool
func checkFarmersInvariant(t *testing.T, k *Keeper, ctx sdk.Context, poolID uint64) {
	t.Helper()

	aggregates := k.GetPoolAggregates(ctx, poolID)
	active := len(k.GetActivePositions(ctx, poolID))
	if aggregates.Farmers != uint64(active) {
		t.Errorf("farmers counter %d does not match %d active positions in pool %d",
			aggregates.Farmers, active, poolID)
	}
}

// lastEvent returns the most recently emitted event of the given type
func lastEvent(t *testing.T, ctx sdk.Context, eventType string) *sdk.Event {
	t.Helper()

	events := ctx.EventManager().Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == eventType {
			return &events[i]
		}
	}
	t.Errorf("no %s event emitted", eventType)
	return nil
}

// eventAttribute returns the value of an event attribute
func eventAttribute(t *testing.T, event *sdk.Event, key string) string {
	t.Helper()

	for _, attr := range event.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	t.Errorf("event %s has no attribute %s", event.Type, key)
	return ""
}
