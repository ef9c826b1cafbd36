package cli

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/cipheryield/farmchain/x/farming/types"
)

// GetTxCmd returns the transaction commands for the farming module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "farming",
		Short:                      "Farming module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdSetPoolActive(),
		CmdTransferOwnership(),
		CmdDepositEncrypted(),
		CmdAccrueEncrypted(),
		CmdClaimEncrypted(),
		CmdWithdrawEncrypted(),
	)

	return cmd
}

// parsePoolID parses a decimal pool id argument
func parsePoolID(arg string) (uint64, error) {
	poolID, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pool id: %v", err)
	}
	return poolID, nil
}

// parseCiphertext decodes a base64 ciphertext argument
func parseCiphertext(arg string) ([]byte, error) {
	ct, err := base64.StdEncoding.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid ciphertext (expected base64): %v", err)
	}
	return ct, nil
}

// CmdCreatePool returns the command to create a pool (owner only)
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [name]",
		Short: "Create a new farming pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreatePool{
				Creator: clientCtx.GetFromAddress().String(),
				Name:    []byte(args[0]),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetPoolActive returns the command to toggle a pool's activity flag
// (owner only)
func CmdSetPoolActive() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-pool-active [pool-id] [true|false]",
		Short: "Activate or deactivate a farming pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			active, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid active flag: %v", err)
			}

			msg := &types.MsgSetPoolActive{
				Creator: clientCtx.GetFromAddress().String(),
				PoolID:  poolID,
				Active:  active,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferOwnership returns the command to hand over the privileged
// identity (owner only)
func CmdTransferOwnership() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-ownership [new-owner]",
		Short: "Transfer the ledger's administrative ownership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferOwnership{
				Creator:  clientCtx.GetFromAddress().String(),
				NewOwner: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDepositEncrypted returns the command to deposit an encrypted stake
func CmdDepositEncrypted() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [pool-id] [encrypted-stake]",
		Short: "Deposit an encrypted stake into a pool",
		Long:  "Deposit a pre-computed stake ciphertext (base64) into a pool. The supplied value replaces any stored stake wholesale.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			encStake, err := parseCiphertext(args[1])
			if err != nil {
				return err
			}

			msg := &types.MsgDepositEncrypted{
				Participant:    clientCtx.GetFromAddress().String(),
				PoolID:         poolID,
				EncryptedStake: encStake,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAccrueEncrypted returns the command to record an encrypted reward
// accrual
func CmdAccrueEncrypted() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accrue [pool-id] [encrypted-reward-delta] [new-encrypted-accrued]",
		Short: "Record an encrypted reward accrual for your position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			encDelta, err := parseCiphertext(args[1])
			if err != nil {
				return err
			}
			newEncAccrued, err := parseCiphertext(args[2])
			if err != nil {
				return err
			}

			msg := &types.MsgAccrueEncrypted{
				Participant:          clientCtx.GetFromAddress().String(),
				PoolID:               poolID,
				EncryptedRewardDelta: encDelta,
				NewEncryptedAccrued:  newEncAccrued,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaimEncrypted returns the command to claim accrued rewards
func CmdClaimEncrypted() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim [pool-id] [encrypted-payout]",
		Short: "Claim accrued rewards, resetting the encrypted total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			encPayout, err := parseCiphertext(args[1])
			if err != nil {
				return err
			}

			msg := &types.MsgClaimEncrypted{
				Participant:     clientCtx.GetFromAddress().String(),
				PoolID:          poolID,
				EncryptedPayout: encPayout,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawEncrypted returns the command to close a position
func CmdWithdrawEncrypted() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [pool-id] [encrypted-amount]",
		Short: "Withdraw from a pool, closing your position",
		Long:  "Close your position in a pool. Withdrawal is always permitted, even when the pool has been deactivated.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			encAmount, err := parseCiphertext(args[1])
			if err != nil {
				return err
			}

			msg := &types.MsgWithdrawEncrypted{
				Participant:     clientCtx.GetFromAddress().String(),
				PoolID:          poolID,
				EncryptedAmount: encAmount,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
