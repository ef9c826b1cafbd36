package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cipheryield/farmchain/api/types"
	farmingtypes "github.com/cipheryield/farmchain/x/farming/types"
)

// FarmingHandler handles farming ledger API requests
type FarmingHandler struct {
	service types.FarmingService
}

// NewFarmingHandler creates a new FarmingHandler
func NewFarmingHandler(svc types.FarmingService) *FarmingHandler {
	return &FarmingHandler{
		service: svc,
	}
}

// ============ Request bodies ============

// CreatePoolRequest is the body of POST /api/v1/pools
type CreatePoolRequest struct {
	Creator string `json:"creator"`
	Name    []byte `json:"name"`
}

// SetPoolActiveRequest is the body of POST /api/v1/pools/{poolId}/status
type SetPoolActiveRequest struct {
	Creator string `json:"creator"`
	Active  bool   `json:"active"`
}

// TransferOwnershipRequest is the body of POST /api/v1/owner/transfer
type TransferOwnershipRequest struct {
	Caller   string `json:"caller"`
	NewOwner string `json:"new_owner"`
}

// DepositRequest is the body of POST /api/v1/deposit
type DepositRequest struct {
	PoolID         uint64 `json:"pool_id"`
	Participant    string `json:"participant"`
	EncryptedStake []byte `json:"encrypted_stake"`
}

// AccrueRequest is the body of POST /api/v1/accrue
type AccrueRequest struct {
	PoolID               uint64 `json:"pool_id"`
	Participant          string `json:"participant"`
	EncryptedRewardDelta []byte `json:"encrypted_reward_delta"`
	NewEncryptedAccrued  []byte `json:"new_encrypted_accrued"`
}

// ClaimRequest is the body of POST /api/v1/claim
type ClaimRequest struct {
	PoolID          uint64 `json:"pool_id"`
	Participant     string `json:"participant"`
	EncryptedPayout []byte `json:"encrypted_payout"`
}

// WithdrawRequest is the body of POST /api/v1/withdraw
type WithdrawRequest struct {
	PoolID          uint64 `json:"pool_id"`
	Participant     string `json:"participant"`
	EncryptedAmount []byte `json:"encrypted_amount"`
}

// ============ Pool queries ============

// GetPools handles GET /api/v1/pools
func (h *FarmingHandler) GetPools(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	pools, err := h.service.GetPools(offset, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if pools == nil {
		pools = []*types.PoolInfo{}
	}

	writeJSON(w, http.StatusOK, pools)
}

// GetPool handles GET /api/v1/pools/{poolId}
func (h *FarmingHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	poolID, ok := poolIDFromRequest(w, r)
	if !ok {
		return
	}

	pool, err := h.service.GetPool(poolID)
	if err != nil {
		writeError(w, http.StatusNotFound, "pool_not_found", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pool)
}

// GetAggregates handles GET /api/v1/pools/{poolId}/aggregates
func (h *FarmingHandler) GetAggregates(w http.ResponseWriter, r *http.Request) {
	poolID, ok := poolIDFromRequest(w, r)
	if !ok {
		return
	}

	aggregates, err := h.service.GetPoolAggregates(poolID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, aggregates)
}

// GetPoolPositions handles GET /api/v1/pools/{poolId}/positions
func (h *FarmingHandler) GetPoolPositions(w http.ResponseWriter, r *http.Request) {
	poolID, ok := poolIDFromRequest(w, r)
	if !ok {
		return
	}

	positions, err := h.service.GetActivePositions(poolID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if positions == nil {
		positions = []*types.PositionInfo{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pool_id":   poolID,
		"positions": positions,
		"total":     len(positions),
	})
}

// GetPosition handles GET /api/v1/pools/{poolId}/positions/{participant}
func (h *FarmingHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	poolID, ok := poolIDFromRequest(w, r)
	if !ok {
		return
	}
	participant := r.Header.Get("X-Participant")
	if participant == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "participant required")
		return
	}

	status, err := h.service.GetPosition(poolID, participant)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// GetParticipantPositions handles GET /api/v1/participants/{participant}/positions
func (h *FarmingHandler) GetParticipantPositions(w http.ResponseWriter, r *http.Request) {
	participant := r.Header.Get("X-Participant")
	if participant == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "participant required")
		return
	}

	positions, err := h.service.GetParticipantPositions(participant)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if positions == nil {
		positions = []*types.PositionInfo{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"participant": participant,
		"positions":   positions,
		"total":       len(positions),
	})
}

// ============ Ownership ============

// GetOwner handles GET /api/v1/owner
func (h *FarmingHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.service.GetOwner()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"owner": owner,
	})
}

// TransferOwnership handles POST /api/v1/owner/transfer
func (h *FarmingHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req TransferOwnershipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.TransferOwnership(req.Caller, req.NewOwner); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"owner": req.NewOwner,
	})
}

// ============ Pool administration ============

// CreatePool handles POST /api/v1/pools
func (h *FarmingHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req CreatePoolRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pool, err := h.service.CreatePool(req.Creator, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pool)
}

// SetPoolActive handles POST /api/v1/pools/{poolId}/status
func (h *FarmingHandler) SetPoolActive(w http.ResponseWriter, r *http.Request) {
	poolID, ok := poolIDFromRequest(w, r)
	if !ok {
		return
	}

	var req SetPoolActiveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pool, err := h.service.SetPoolActive(req.Creator, poolID, req.Active)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pool)
}

// ============ Encrypted position lifecycle ============

// Deposit handles POST /api/v1/deposit
func (h *FarmingHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	position, err := h.service.Deposit(req.PoolID, req.Participant, req.EncryptedStake)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, position)
}

// Accrue handles POST /api/v1/accrue
func (h *FarmingHandler) Accrue(w http.ResponseWriter, r *http.Request) {
	var req AccrueRequest
	if !decodeBody(w, r, &req) {
		return
	}

	position, err := h.service.Accrue(req.PoolID, req.Participant, req.EncryptedRewardDelta, req.NewEncryptedAccrued)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, position)
}

// Claim handles POST /api/v1/claim
func (h *FarmingHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if !decodeBody(w, r, &req) {
		return
	}

	position, err := h.service.Claim(req.PoolID, req.Participant, req.EncryptedPayout)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, position)
}

// Withdraw handles POST /api/v1/withdraw
func (h *FarmingHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status, err := h.service.Withdraw(req.PoolID, req.Participant, req.EncryptedAmount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// ============ Helpers ============

// poolIDFromRequest reads the pool id set by the router in the
// X-Pool-ID header (we use http.ServeMux, not a pattern router)
func poolIDFromRequest(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.Header.Get("X-Pool-ID")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "pool id required")
		return 0, false
	}
	poolID, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "pool id must be a non-negative integer")
		return 0, false
	}
	return poolID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return false
	}
	return true
}

// writeServiceError maps ledger errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, farmingtypes.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, farmingtypes.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, farmingtypes.ErrPoolInactive):
		writeError(w, http.StatusConflict, "pool_inactive", err.Error())
	case errors.Is(err, farmingtypes.ErrNoActivePosition):
		writeError(w, http.StatusConflict, "no_active_position", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
