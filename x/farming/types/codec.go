package types

import (
	"context"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's interface types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgSetPoolActive{},
		&MsgTransferOwnership{},
		&MsgDepositEncrypted{},
		&MsgAccrueEncrypted{},
		&MsgClaimEncrypted{},
		&MsgWithdrawEncrypted{},
	)
}

// MsgServer defines the farming module's message service
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	SetPoolActive(context.Context, *MsgSetPoolActive) (*MsgSetPoolActiveResponse, error)
	TransferOwnership(context.Context, *MsgTransferOwnership) (*MsgTransferOwnershipResponse, error)
	DepositEncrypted(context.Context, *MsgDepositEncrypted) (*MsgDepositEncryptedResponse, error)
	AccrueEncrypted(context.Context, *MsgAccrueEncrypted) (*MsgAccrueEncryptedResponse, error)
	ClaimEncrypted(context.Context, *MsgClaimEncrypted) (*MsgClaimEncryptedResponse, error)
	WithdrawEncrypted(context.Context, *MsgWithdrawEncrypted) (*MsgWithdrawEncryptedResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// This is a placeholder - in production, this would use gRPC registration
	// For now, the messages are handled through the module's handler
}
