package types

import (
	"fmt"

	"cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreatePool        = "create_pool"
	TypeMsgSetPoolActive     = "set_pool_active"
	TypeMsgTransferOwnership = "transfer_ownership"
	TypeMsgDepositEncrypted  = "deposit_encrypted"
	TypeMsgAccrueEncrypted   = "accrue_encrypted"
	TypeMsgClaimEncrypted    = "claim_encrypted"
	TypeMsgWithdrawEncrypted = "withdraw_encrypted"
)

// MsgCreatePool defines the CreatePool message (owner only)
type MsgCreatePool struct {
	Creator string `json:"creator"`
	Name    []byte `json:"name"`
}

// Route implements sdk.Msg
func (msg MsgCreatePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return errors.Wrap(ErrInvalidArgument, "invalid creator address")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreatePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements proto.Message
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Creator: %s}", msg.Creator)
}

// MsgCreatePoolResponse defines the CreatePool response
type MsgCreatePoolResponse struct {
	PoolID uint64 `json:"pool_id"`
}

// MsgSetPoolActive defines the SetPoolActive message (owner only)
type MsgSetPoolActive struct {
	Creator string `json:"creator"`
	PoolID  uint64 `json:"pool_id"`
	Active  bool   `json:"active"`
}

// Route implements sdk.Msg
func (msg MsgSetPoolActive) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetPoolActive) Type() string { return TypeMsgSetPoolActive }

// ValidateBasic implements sdk.Msg
func (msg MsgSetPoolActive) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return errors.Wrap(ErrInvalidArgument, "invalid creator address")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetPoolActive) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetPoolActive) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetPoolActive) Reset() { *msg = MsgSetPoolActive{} }

// String implements proto.Message
func (msg MsgSetPoolActive) String() string {
	return fmt.Sprintf("MsgSetPoolActive{Creator: %s, PoolID: %d, Active: %t}", msg.Creator, msg.PoolID, msg.Active)
}

// MsgSetPoolActiveResponse defines the SetPoolActive response
type MsgSetPoolActiveResponse struct{}

// MsgTransferOwnership defines the TransferOwnership message (owner only)
type MsgTransferOwnership struct {
	Creator  string `json:"creator"`
	NewOwner string `json:"new_owner"`
}

// Route implements sdk.Msg
func (msg MsgTransferOwnership) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferOwnership) Type() string { return TypeMsgTransferOwnership }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferOwnership) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return errors.Wrap(ErrInvalidArgument, "invalid creator address")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferOwnership) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferOwnership) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferOwnership) Reset() { *msg = MsgTransferOwnership{} }

// String implements proto.Message
func (msg MsgTransferOwnership) String() string {
	return fmt.Sprintf("MsgTransferOwnership{Creator: %s, NewOwner: %s}", msg.Creator, msg.NewOwner)
}

// MsgTransferOwnershipResponse defines the TransferOwnership response
type MsgTransferOwnershipResponse struct{}

// MsgDepositEncrypted defines the DepositEncrypted message
type MsgDepositEncrypted struct {
	Participant    string `json:"participant"`
	PoolID         uint64 `json:"pool_id"`
	EncryptedStake []byte `json:"encrypted_stake"`
}

// Route implements sdk.Msg
func (msg MsgDepositEncrypted) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDepositEncrypted) Type() string { return TypeMsgDepositEncrypted }

// ValidateBasic implements sdk.Msg
func (msg MsgDepositEncrypted) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Participant); err != nil {
		return errors.Wrap(ErrInvalidArgument, "invalid participant address")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDepositEncrypted) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Participant)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDepositEncrypted) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDepositEncrypted) Reset() { *msg = MsgDepositEncrypted{} }

// String implements proto.Message
func (msg MsgDepositEncrypted) String() string {
	return fmt.Sprintf("MsgDepositEncrypted{Participant: %s, PoolID: %d}", msg.Participant, msg.PoolID)
}

// MsgDepositEncryptedResponse defines the DepositEncrypted response
type MsgDepositEncryptedResponse struct{}

// MsgAccrueEncrypted defines the AccrueEncrypted message
type MsgAccrueEncrypted struct {
	Participant          string `json:"participant"`
	PoolID               uint64 `json:"pool_id"`
	EncryptedRewardDelta []byte `json:"encrypted_reward_delta"`
	NewEncryptedAccrued  []byte `json:"new_encrypted_accrued"`
}

// Route implements sdk.Msg
func (msg MsgAccrueEncrypted) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAccrueEncrypted) Type() string { return TypeMsgAccrueEncrypted }

// ValidateBasic implements sdk.Msg
func (msg MsgAccrueEncrypted) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Participant); err != nil {
		return errors.Wrap(ErrInvalidArgument, "invalid participant address")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgAccrueEncrypted) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Participant)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgAccrueEncrypted) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAccrueEncrypted) Reset() { *msg = MsgAccrueEncrypted{} }

// String implements proto.Message
func (msg MsgAccrueEncrypted) String() string {
	return fmt.Sprintf("MsgAccrueEncrypted{Participant: %s, PoolID: %d}", msg.Participant, msg.PoolID)
}

// MsgAccrueEncryptedResponse defines the AccrueEncrypted response
type MsgAccrueEncryptedResponse struct{}

// MsgClaimEncrypted defines the ClaimEncrypted message
type MsgClaimEncrypted struct {
	Participant     string `json:"participant"`
	PoolID          uint64 `json:"pool_id"`
	EncryptedPayout []byte `json:"encrypted_payout"`
}

// Route implements sdk.Msg
func (msg MsgClaimEncrypted) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgClaimEncrypted) Type() string { return TypeMsgClaimEncrypted }

// ValidateBasic implements sdk.Msg
func (msg MsgClaimEncrypted) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Participant); err != nil {
		return errors.Wrap(ErrInvalidArgument, "invalid participant address")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgClaimEncrypted) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Participant)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgClaimEncrypted) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgClaimEncrypted) Reset() { *msg = MsgClaimEncrypted{} }

// String implements proto.Message
func (msg MsgClaimEncrypted) String() string {
	return fmt.Sprintf("MsgClaimEncrypted{Participant: %s, PoolID: %d}", msg.Participant, msg.PoolID)
}

// MsgClaimEncryptedResponse defines the ClaimEncrypted response
type MsgClaimEncryptedResponse struct{}

// MsgWithdrawEncrypted defines the WithdrawEncrypted message
type MsgWithdrawEncrypted struct {
	Participant     string `json:"participant"`
	PoolID          uint64 `json:"pool_id"`
	EncryptedAmount []byte `json:"encrypted_amount"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawEncrypted) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawEncrypted) Type() string { return TypeMsgWithdrawEncrypted }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawEncrypted) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Participant); err != nil {
		return errors.Wrap(ErrInvalidArgument, "invalid participant address")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawEncrypted) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Participant)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawEncrypted) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawEncrypted) Reset() { *msg = MsgWithdrawEncrypted{} }

// String implements proto.Message
func (msg MsgWithdrawEncrypted) String() string {
	return fmt.Sprintf("MsgWithdrawEncrypted{Participant: %s, PoolID: %d}", msg.Participant, msg.PoolID)
}

// MsgWithdrawEncryptedResponse defines the WithdrawEncrypted response
type MsgWithdrawEncryptedResponse struct{}
