package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cipheryield/farmchain/x/farming/types"
)

// MsgServer defines the farming MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	poolID, err := m.keeper.CreatePool(sdkCtx, msg.Creator, msg.Name)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{PoolID: poolID}, nil
}

// SetPoolActive handles MsgSetPoolActive
func (m *MsgServer) SetPoolActive(ctx context.Context, msg *types.MsgSetPoolActive) (*types.MsgSetPoolActiveResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.SetPoolActive(sdkCtx, msg.Creator, msg.PoolID, msg.Active); err != nil {
		return nil, err
	}

	return &types.MsgSetPoolActiveResponse{}, nil
}

// TransferOwnership handles MsgTransferOwnership
func (m *MsgServer) TransferOwnership(ctx context.Context, msg *types.MsgTransferOwnership) (*types.MsgTransferOwnershipResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.TransferOwnership(sdkCtx, msg.Creator, msg.NewOwner); err != nil {
		return nil, err
	}

	return &types.MsgTransferOwnershipResponse{}, nil
}

// DepositEncrypted handles MsgDepositEncrypted
func (m *MsgServer) DepositEncrypted(ctx context.Context, msg *types.MsgDepositEncrypted) (*types.MsgDepositEncryptedResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.DepositEncrypted(sdkCtx, msg.PoolID, msg.Participant, msg.EncryptedStake); err != nil {
		return nil, err
	}

	return &types.MsgDepositEncryptedResponse{}, nil
}

// AccrueEncrypted handles MsgAccrueEncrypted
func (m *MsgServer) AccrueEncrypted(ctx context.Context, msg *types.MsgAccrueEncrypted) (*types.MsgAccrueEncryptedResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.AccrueEncrypted(sdkCtx, msg.PoolID, msg.Participant, msg.EncryptedRewardDelta, msg.NewEncryptedAccrued); err != nil {
		return nil, err
	}

	return &types.MsgAccrueEncryptedResponse{}, nil
}

// ClaimEncrypted handles MsgClaimEncrypted
func (m *MsgServer) ClaimEncrypted(ctx context.Context, msg *types.MsgClaimEncrypted) (*types.MsgClaimEncryptedResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.ClaimEncrypted(sdkCtx, msg.PoolID, msg.Participant, msg.EncryptedPayout); err != nil {
		return nil, err
	}

	return &types.MsgClaimEncryptedResponse{}, nil
}

// WithdrawEncrypted handles MsgWithdrawEncrypted
func (m *MsgServer) WithdrawEncrypted(ctx context.Context, msg *types.MsgWithdrawEncrypted) (*types.MsgWithdrawEncryptedResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.WithdrawEncrypted(sdkCtx, msg.PoolID, msg.Participant, msg.EncryptedAmount); err != nil {
		return nil, err
	}

	return &types.MsgWithdrawEncryptedResponse{}, nil
}
