package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cipheryield/farmchain/api/handlers"
	"github.com/cipheryield/farmchain/api/types"
)

// setupServer creates a test server over a fresh standalone ledger and
// returns it with the admin address that owns the contract
func setupServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	admin := sdk.AccAddress([]byte("test-admin")).String()
	config := DefaultConfig()
	config.AdminAddress = admin
	config.DisableRateLimit = true

	server, err := NewServer(config)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	ts := httptest.NewServer(server.routes())
	t.Cleanup(ts.Close)
	return ts, admin
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func createPool(t *testing.T, ts *httptest.Server, admin, name string) *types.PoolInfo {
	t.Helper()

	resp := postJSON(t, ts.URL+"/api/v1/pools", handlers.CreatePoolRequest{
		Creator: admin,
		Name:    []byte(name),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create pool returned status %d", resp.StatusCode)
	}
	var pool types.PoolInfo
	decodeResponse(t, resp, &pool)
	return &pool
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := setupServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health returned status %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body map[string]interface{}
	decodeResponse(t, resp, &body)
	if body["status"] != "healthy" {
		t.Errorf("health status = %v, want healthy", body["status"])
	}
}

func TestCreatePoolEndpoint(t *testing.T) {
	ts, admin := setupServer(t)

	pool := createPool(t, ts, admin, "alpha")
	if pool.PoolID != 0 {
		t.Errorf("first pool id = %d, want 0", pool.PoolID)
	}
	if !pool.Active {
		t.Error("new pool should be active")
	}
	if string(pool.Name) != "alpha" {
		t.Errorf("pool name = %q, want alpha", pool.Name)
	}

	second := createPool(t, ts, admin, "beta")
	if second.PoolID != 1 {
		t.Errorf("second pool id = %d, want 1", second.PoolID)
	}
}

func TestCreatePoolUnauthorized(t *testing.T) {
	ts, _ := setupServer(t)

	intruder := sdk.AccAddress([]byte("test-intruder")).String()
	resp := postJSON(t, ts.URL+"/api/v1/pools", handlers.CreatePoolRequest{
		Creator: intruder,
		Name:    []byte("rogue"),
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("create pool by non-owner returned status %d, want %d",
			resp.StatusCode, http.StatusForbidden)
	}
}

func TestPoolsListContract(t *testing.T) {
	ts, admin := setupServer(t)
	createPool(t, ts, admin, "alpha")
	createPool(t, ts, admin, "beta")

	resp, err := http.Get(ts.URL + "/api/v1/pools")
	if err != nil {
		t.Fatalf("pools request failed: %v", err)
	}

	// The CLI depends on the response being a bare array
	var pools []*types.PoolInfo
	decodeResponse(t, resp, &pools)
	if len(pools) != 2 {
		t.Fatalf("got %d pools, want 2", len(pools))
	}
	// Most recent first
	if pools[0].PoolID != 1 || pools[1].PoolID != 0 {
		t.Errorf("pool order = [%d, %d], want [1, 0]", pools[0].PoolID, pools[1].PoolID)
	}
}

func TestDepositLifecycleOverHTTP(t *testing.T) {
	ts, admin := setupServer(t)
	pool := createPool(t, ts, admin, "alpha")
	alice := sdk.AccAddress([]byte("test-alice")).String()

	// Deposit opens a position
	resp := postJSON(t, ts.URL+"/api/v1/deposit", handlers.DepositRequest{
		PoolID:         pool.PoolID,
		Participant:    alice,
		EncryptedStake: []byte("ciphertext-stake-1"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deposit returned status %d", resp.StatusCode)
	}
	var position types.PositionInfo
	decodeResponse(t, resp, &position)
	if !position.Active {
		t.Error("position should be active after deposit")
	}
	if string(position.EncryptedStake) != "ciphertext-stake-1" {
		t.Errorf("stake ciphertext = %q, want ciphertext-stake-1", position.EncryptedStake)
	}

	// Aggregates reflect the deposit
	var aggregates types.PoolAggregates
	aggResp, err := http.Get(ts.URL + "/api/v1/pools/0/aggregates")
	if err != nil {
		t.Fatalf("aggregates request failed: %v", err)
	}
	decodeResponse(t, aggResp, &aggregates)
	if aggregates.Farmers != 1 || aggregates.Deposits != 1 {
		t.Errorf("aggregates = %+v, want farmers=1 deposits=1", aggregates)
	}

	// Accrue then claim
	resp = postJSON(t, ts.URL+"/api/v1/accrue", handlers.AccrueRequest{
		PoolID:               pool.PoolID,
		Participant:          alice,
		EncryptedRewardDelta: []byte("ciphertext-delta"),
		NewEncryptedAccrued:  []byte("ciphertext-total"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accrue returned status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/v1/claim", handlers.ClaimRequest{
		PoolID:          pool.PoolID,
		Participant:     alice,
		EncryptedPayout: []byte("ciphertext-payout"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("claim returned status %d", resp.StatusCode)
	}
	decodeResponse(t, resp, &position)
	if len(position.EncryptedAccrued) != 0 {
		t.Error("claim should clear the accrued ciphertext")
	}
	if !position.Active {
		t.Error("claim should leave the position open")
	}

	// Withdraw closes the position
	resp = postJSON(t, ts.URL+"/api/v1/withdraw", handlers.WithdrawRequest{
		PoolID:          pool.PoolID,
		Participant:     alice,
		EncryptedAmount: []byte("ciphertext-amount"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("withdraw returned status %d", resp.StatusCode)
	}
	var status types.PositionStatus
	decodeResponse(t, resp, &status)
	if status.Active {
		t.Error("position should be closed after withdraw")
	}

	// Position status endpoint agrees
	posResp, err := http.Get(ts.URL + "/api/v1/pools/0/positions/" + alice)
	if err != nil {
		t.Fatalf("position request failed: %v", err)
	}
	decodeResponse(t, posResp, &status)
	if status.Active {
		t.Error("position status should read closed")
	}

	// Counters survive the close
	aggResp, err = http.Get(ts.URL + "/api/v1/pools/0/aggregates")
	if err != nil {
		t.Fatalf("aggregates request failed: %v", err)
	}
	decodeResponse(t, aggResp, &aggregates)
	if aggregates.Farmers != 0 || aggregates.Deposits != 1 || aggregates.Claims != 1 {
		t.Errorf("aggregates = %+v, want farmers=0 deposits=1 claims=1", aggregates)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	ts, admin := setupServer(t)
	pool := createPool(t, ts, admin, "alpha")
	alice := sdk.AccAddress([]byte("test-alice")).String()

	// Deposit into an unknown pool reads as inactive
	resp := postJSON(t, ts.URL+"/api/v1/deposit", handlers.DepositRequest{
		PoolID:         42,
		Participant:    alice,
		EncryptedStake: []byte("ciphertext"),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("deposit into unknown pool returned status %d, want %d",
			resp.StatusCode, http.StatusConflict)
	}

	// Claim without a position
	resp = postJSON(t, ts.URL+"/api/v1/claim", handlers.ClaimRequest{
		PoolID:          pool.PoolID,
		Participant:     alice,
		EncryptedPayout: []byte("ciphertext"),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("claim without position returned status %d, want %d",
			resp.StatusCode, http.StatusConflict)
	}

	var body map[string]string
	decodeResponse(t, resp, &body)
	if body["error"] != "no_active_position" {
		t.Errorf("claim error code = %q, want no_active_position", body["error"])
	}

	// Malformed pool id in the path
	badResp, err := http.Get(ts.URL + "/api/v1/pools/not-a-number/aggregates")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	badResp.Body.Close()
	if badResp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad pool id returned status %d, want %d",
			badResp.StatusCode, http.StatusBadRequest)
	}
}

func TestSetPoolActiveEndpoint(t *testing.T) {
	ts, admin := setupServer(t)
	pool := createPool(t, ts, admin, "alpha")

	resp := postJSON(t, ts.URL+"/api/v1/pools/0/status", handlers.SetPoolActiveRequest{
		Creator: admin,
		Active:  false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set pool active returned status %d", resp.StatusCode)
	}
	var updated types.PoolInfo
	decodeResponse(t, resp, &updated)
	if updated.Active {
		t.Error("pool should be inactive after the status change")
	}

	// Deposits are refused while paused
	alice := sdk.AccAddress([]byte("test-alice")).String()
	resp = postJSON(t, ts.URL+"/api/v1/deposit", handlers.DepositRequest{
		PoolID:         pool.PoolID,
		Participant:    alice,
		EncryptedStake: []byte("ciphertext"),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("deposit into paused pool returned status %d, want %d",
			resp.StatusCode, http.StatusConflict)
	}
}

func TestOwnerEndpoints(t *testing.T) {
	ts, admin := setupServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/owner")
	if err != nil {
		t.Fatalf("owner request failed: %v", err)
	}
	var body map[string]string
	decodeResponse(t, resp, &body)
	if body["owner"] != admin {
		t.Errorf("owner = %q, want %q", body["owner"], admin)
	}

	successor := sdk.AccAddress([]byte("test-successor")).String()
	transferResp := postJSON(t, ts.URL+"/api/v1/owner/transfer", handlers.TransferOwnershipRequest{
		Caller:   admin,
		NewOwner: successor,
	})
	if transferResp.StatusCode != http.StatusOK {
		t.Fatalf("transfer returned status %d", transferResp.StatusCode)
	}
	transferResp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/v1/owner")
	if err != nil {
		t.Fatalf("owner request failed: %v", err)
	}
	decodeResponse(t, resp, &body)
	if body["owner"] != successor {
		t.Errorf("owner after transfer = %q, want %q", body["owner"], successor)
	}
}

func TestMetricPathCollapsesIDs(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/v1/pools", "/api/v1/pools"},
		{"/api/v1/pools/7", "/api/v1/pools/:id"},
		{"/api/v1/pools/7/aggregates", "/api/v1/pools/:id/aggregates"},
		{"/api/v1/pools/7/positions/cosmos", "/api/v1/pools/:id/positions/:participant"},
		{"/api/v1/participants/cosmos/positions", "/api/v1/participants/:participant/positions"},
		{"/health", "/health"},
	}
	for _, tc := range cases {
		if got := metricPath(tc.path); got != tc.want {
			t.Errorf("metricPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
