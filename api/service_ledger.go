package api

import (
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cipheryield/farmchain/api/types"
	farmingkeeper "github.com/cipheryield/farmchain/x/farming/keeper"
	farmingtypes "github.com/cipheryield/farmchain/x/farming/types"
)

const eventBufferSize = 256

// LedgerService implements types.FarmingService on top of the farming
// keeper backed by an in-memory store. This is the standalone mode of
// the API: the same state machine the chain runs, without consensus.
type LedgerService struct {
	mu     sync.Mutex
	keeper *farmingkeeper.Keeper
	ctx    sdk.Context
	events chan *types.LedgerEvent
}

// NewLedgerService creates a standalone ledger service. The admin
// address becomes the initial contract owner; if empty, a deterministic
// local address is used.
func NewLedgerService(logger log.Logger, admin string) (*LedgerService, error) {
	if admin == "" {
		admin = sdk.AccAddress([]byte("farmchain-ledger-admin")).String()
	}

	storeKey := storetypes.NewKVStoreKey(farmingtypes.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		return nil, err
	}

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)
	keeper := farmingkeeper.NewKeeper(cdc, storeKey, admin, logger)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, logger)

	return &LedgerService{
		keeper: keeper,
		ctx:    ctx,
		events: make(chan *types.LedgerEvent, eventBufferSize),
	}, nil
}

// Events returns the stream of ledger events emitted by mutations
func (s *LedgerService) Events() <-chan *types.LedgerEvent {
	return s.events
}

// writeCtx returns a context with a fresh event manager and the current
// wall clock as block time. Callers must hold s.mu.
func (s *LedgerService) writeCtx() sdk.Context {
	return s.ctx.
		WithEventManager(sdk.NewEventManager()).
		WithBlockTime(time.Now())
}

// publishEvents converts the events collected during a mutation and
// pushes them to the stream. Slow consumers drop events rather than
// block the ledger.
func (s *LedgerService) publishEvents(ctx sdk.Context) {
	now := time.Now().UnixMilli()
	for _, event := range ctx.EventManager().Events() {
		attributes := make(map[string]string, len(event.Attributes))
		for _, attr := range event.Attributes {
			attributes[attr.Key] = attr.Value
		}
		ledgerEvent := &types.LedgerEvent{
			Type:       event.Type,
			Attributes: attributes,
			Timestamp:  now,
		}
		select {
		case s.events <- ledgerEvent:
		default:
		}
	}
}

// ============ Pool queries ============

// GetPools returns pools with pagination, most recent first
func (s *LedgerService) GetPools(offset, limit int) ([]*types.PoolInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}

	pools := s.keeper.GetPools(s.ctx, limit, offset)
	infos := make([]*types.PoolInfo, 0, len(pools))
	for _, pool := range pools {
		infos = append(infos, poolToInfo(pool))
	}
	return infos, nil
}

// GetPool returns a single pool
func (s *LedgerService) GetPool(poolID uint64) (*types.PoolInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.keeper.GetPool(s.ctx, poolID)
	if pool == nil {
		return nil, farmingtypes.ErrInvalidArgument.Wrapf("pool %d not found", poolID)
	}
	return poolToInfo(pool), nil
}

// GetPoolAggregates returns the plaintext counters of a pool. Unknown
// pools read as all zeroes.
func (s *LedgerService) GetPoolAggregates(poolID uint64) (*types.PoolAggregates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	aggregates := s.keeper.GetPoolAggregates(s.ctx, poolID)
	return &types.PoolAggregates{
		PoolID:   aggregates.PoolID,
		Farmers:  aggregates.Farmers,
		Deposits: aggregates.Deposits,
		Claims:   aggregates.Claims,
	}, nil
}

// GetActivePositions returns the open positions in a pool
func (s *LedgerService) GetActivePositions(poolID uint64) ([]*types.PositionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.keeper.GetActivePositions(s.ctx, poolID)
	infos := make([]*types.PositionInfo, 0, len(positions))
	for _, position := range positions {
		infos = append(infos, positionToInfo(position))
	}
	return infos, nil
}

// ============ Position queries ============

// GetPosition returns the open/closed status of a participant's slot in
// a pool. A slot that was never opened reads as closed.
func (s *LedgerService) GetPosition(poolID uint64, participant string) (*types.PositionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &types.PositionStatus{
		PoolID:      poolID,
		Participant: participant,
		Active:      s.keeper.HasActivePosition(s.ctx, poolID, participant),
	}, nil
}

// GetParticipantPositions returns a participant's open positions across
// all pools
func (s *LedgerService) GetParticipantPositions(participant string) ([]*types.PositionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.keeper.GetParticipantPositions(s.ctx, participant)
	infos := make([]*types.PositionInfo, 0, len(positions))
	for _, position := range positions {
		infos = append(infos, positionToInfo(position))
	}
	return infos, nil
}

// ============ Ownership ============

// GetOwner returns the current contract owner
func (s *LedgerService) GetOwner() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.keeper.GetOwner(s.ctx), nil
}

// TransferOwnership hands the admin role to a new owner
func (s *LedgerService) TransferOwnership(caller, newOwner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.writeCtx()
	if err := s.keeper.TransferOwnership(ctx, caller, newOwner); err != nil {
		return err
	}
	s.publishEvents(ctx)
	return nil
}

// ============ Pool administration ============

// CreatePool registers a new pool, owner only
func (s *LedgerService) CreatePool(creator string, name []byte) (*types.PoolInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.writeCtx()
	poolID, err := s.keeper.CreatePool(ctx, creator, name)
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx)
	return poolToInfo(s.keeper.GetPool(s.ctx, poolID)), nil
}

// SetPoolActive flips a pool's active flag, owner only
func (s *LedgerService) SetPoolActive(creator string, poolID uint64, active bool) (*types.PoolInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.writeCtx()
	if err := s.keeper.SetPoolActive(ctx, creator, poolID, active); err != nil {
		return nil, err
	}
	s.publishEvents(ctx)
	return poolToInfo(s.keeper.GetPool(s.ctx, poolID)), nil
}

// ============ Encrypted position lifecycle ============

// Deposit records an encrypted stake for a participant
func (s *LedgerService) Deposit(poolID uint64, participant string, encryptedStake []byte) (*types.PositionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.writeCtx()
	if err := s.keeper.DepositEncrypted(ctx, poolID, participant, encryptedStake); err != nil {
		return nil, err
	}
	s.publishEvents(ctx)
	return positionToInfo(s.keeper.GetPosition(s.ctx, poolID, participant)), nil
}

// Accrue replaces a position's encrypted accrued rewards
func (s *LedgerService) Accrue(poolID uint64, participant string, encryptedRewardDelta, newEncryptedAccrued []byte) (*types.PositionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.writeCtx()
	if err := s.keeper.AccrueEncrypted(ctx, poolID, participant, encryptedRewardDelta, newEncryptedAccrued); err != nil {
		return nil, err
	}
	s.publishEvents(ctx)
	return positionToInfo(s.keeper.GetPosition(s.ctx, poolID, participant)), nil
}

// Claim pays out accrued rewards and clears the accrued ciphertext
func (s *LedgerService) Claim(poolID uint64, participant string, encryptedPayout []byte) (*types.PositionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.writeCtx()
	if err := s.keeper.ClaimEncrypted(ctx, poolID, participant, encryptedPayout); err != nil {
		return nil, err
	}
	s.publishEvents(ctx)
	return positionToInfo(s.keeper.GetPosition(s.ctx, poolID, participant)), nil
}

// Withdraw closes a participant's position
func (s *LedgerService) Withdraw(poolID uint64, participant string, encryptedAmount []byte) (*types.PositionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.writeCtx()
	if err := s.keeper.WithdrawEncrypted(ctx, poolID, participant, encryptedAmount); err != nil {
		return nil, err
	}
	s.publishEvents(ctx)
	return &types.PositionStatus{
		PoolID:      poolID,
		Participant: participant,
		Active:      s.keeper.HasActivePosition(s.ctx, poolID, participant),
	}, nil
}

// ============ Conversions ============

func poolToInfo(pool *farmingtypes.Pool) *types.PoolInfo {
	if pool == nil {
		return nil
	}
	return &types.PoolInfo{
		PoolID:    pool.PoolID,
		Name:      pool.Name,
		Active:    pool.Active,
		Farmers:   pool.Farmers,
		Deposits:  pool.Deposits,
		Claims:    pool.Claims,
		CreatedAt: pool.CreatedAt,
		UpdatedAt: pool.UpdatedAt,
	}
}

func positionToInfo(position *farmingtypes.Position) *types.PositionInfo {
	if position == nil {
		return nil
	}
	return &types.PositionInfo{
		PoolID:           position.PoolID,
		Participant:      position.Participant,
		EncryptedStake:   position.EncryptedStake,
		EncryptedAccrued: position.EncryptedAccrued,
		Active:           position.Active,
		LastUpdate:       position.LastUpdate,
	}
}
