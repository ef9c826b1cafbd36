package types

import (
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

func testAddress(seed string) string {
	return sdk.AccAddress([]byte(seed)).String()
}

// TestMsgDepositEncryptedValidateBasic tests message validation
func TestMsgDepositEncryptedValidateBasic(t *testing.T) {
	msg := MsgDepositEncrypted{
		Participant:    testAddress("alice_______________"),
		PoolID:         0,
		EncryptedStake: []byte("s1"),
	}
	if err := msg.ValidateBasic(); err != nil {
		t.Errorf("expected valid message, got %v", err)
	}

	msg.Participant = "not-an-address"
	if err := msg.ValidateBasic(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

// TestMsgCreatePoolValidateBasic tests message validation
func TestMsgCreatePoolValidateBasic(t *testing.T) {
	msg := MsgCreatePool{
		Creator: testAddress("owner_______________"),
		Name:    []byte("alpha"),
	}
	if err := msg.ValidateBasic(); err != nil {
		t.Errorf("expected valid message, got %v", err)
	}

	msg.Creator = ""
	if err := msg.ValidateBasic(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

// TestMsgGetSigners tests that each user message is signed by its
// participant and each admin message by its creator
func TestMsgGetSigners(t *testing.T) {
	participant := testAddress("alice_______________")

	msgs := []sdk.Msg{
		&MsgDepositEncrypted{Participant: participant},
		&MsgAccrueEncrypted{Participant: participant},
		&MsgClaimEncrypted{Participant: participant},
		&MsgWithdrawEncrypted{Participant: participant},
	}
	for _, msg := range msgs {
		signers := msg.(interface{ GetSigners() []sdk.AccAddress }).GetSigners()
		if len(signers) != 1 || signers[0].String() != participant {
			t.Errorf("%T: expected signer %s", msg, participant)
		}
	}
}
