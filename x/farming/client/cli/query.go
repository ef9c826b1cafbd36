package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

const (
	flagAPIAddr      = "api"
	defaultAPIAddr   = "http://localhost:8080"
	queryHTTPTimeout = 10 * time.Second
)

// PoolAggregatesInfo is a CLI-friendly view of a pool's public counters
type PoolAggregatesInfo struct {
	PoolID   uint64 `json:"pool_id"`
	Farmers  uint64 `json:"farmers"`
	Deposits uint64 `json:"deposits"`
	Claims   uint64 `json:"claims"`
}

// PositionStatusInfo is a CLI-friendly view of a position's open/closed
// state; ciphertext contents are never surfaced here
type PositionStatusInfo struct {
	PoolID      uint64 `json:"pool_id"`
	Participant string `json:"participant"`
	Active      bool   `json:"active"`
}

// GetQueryCmd returns the cli query commands for the farming module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "farming",
		Short:                      "Querying commands for the farming module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPools(),
		CmdQueryAggregates(),
		CmdQueryPositionStatus(),
	)

	return cmd
}

// fetchJSON fetches a JSON document from the farming API service
func fetchJSON(baseURL, path string, out interface{}) error {
	httpClient := &http.Client{Timeout: queryHTTPTimeout}
	resp, err := httpClient.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("farming API unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("farming API returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CmdQueryPools returns the command to query all pools
func CmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Query all farming pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, _ := cmd.Flags().GetString(flagAPIAddr)

			var pools []json.RawMessage
			if err := fetchJSON(baseURL, "/api/v1/pools", &pools); err != nil {
				return err
			}

			output, _ := json.MarshalIndent(pools, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().String(flagAPIAddr, defaultAPIAddr, "Farming API service address")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryAggregates returns the command to query a pool's public counters
func CmdQueryAggregates() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregates [pool-id]",
		Short: "Query a pool's public aggregate counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, _ := cmd.Flags().GetString(flagAPIAddr)
			if _, err := parsePoolID(args[0]); err != nil {
				return err
			}

			var aggregates PoolAggregatesInfo
			if err := fetchJSON(baseURL, "/api/v1/pools/"+args[0]+"/aggregates", &aggregates); err != nil {
				return err
			}

			output, _ := json.MarshalIndent(aggregates, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().String(flagAPIAddr, defaultAPIAddr, "Farming API service address")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPositionStatus returns the command to check whether a
// participant holds an open position in a pool
func CmdQueryPositionStatus() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position [pool-id] [participant]",
		Short: "Query whether a participant has an open position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, _ := cmd.Flags().GetString(flagAPIAddr)
			if _, err := parsePoolID(args[0]); err != nil {
				return err
			}

			var status PositionStatusInfo
			path := "/api/v1/pools/" + args[0] + "/positions/" + args[1]
			if err := fetchJSON(baseURL, path, &status); err != nil {
				return err
			}

			output, _ := json.MarshalIndent(status, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().String(flagAPIAddr, defaultAPIAddr, "Farming API service address")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
