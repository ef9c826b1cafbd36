package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	clog "cosmossdk.io/log"

	"github.com/cipheryield/farmchain/api/handlers"
	"github.com/cipheryield/farmchain/api/middleware"
	"github.com/cipheryield/farmchain/api/types"
	"github.com/cipheryield/farmchain/api/websocket"
	"github.com/cipheryield/farmchain/metrics"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	wsServer   *websocket.Server
	config     *Config

	// Service
	farmingService types.FarmingService

	// Handlers
	farmingHandler *handlers.FarmingHandler

	// Rate limiter
	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// AdminAddress becomes the initial contract owner of the standalone
	// ledger. Empty means a deterministic local address.
	AdminAddress string

	DisableRateLimit bool // For testing purposes
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// NewServer creates an API server backed by a standalone in-memory
// ledger. State does not survive restarts; for durable state run a
// chain node and point clients at it instead.
func NewServer(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}

	ledgerService, err := NewLedgerService(clog.NewNopLogger(), config.AdminAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger service: %w", err)
	}

	return NewServerWithService(config, ledgerService), nil
}

// NewServerWithService creates an API server with a custom service
func NewServerWithService(config *Config, svc types.FarmingService) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	s := &Server{
		config:         config,
		wsServer:       websocket.NewServer(wsConfig),
		farmingService: svc,
		rateLimiter:    middleware.NewRateLimiter(middleware.DefaultRateLimitConfig()),
	}

	s.farmingHandler = handlers.NewFarmingHandler(s.farmingService)

	return s
}

// Start starts the API server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Start WebSocket hub
	go s.wsServer.GetHub().Run()

	// Forward ledger events to WebSocket subscribers
	go s.forwardEvents()

	log.Printf("API server starting on %s", addr)
	log.Printf("Endpoints: /api/v1/pools, /api/v1/deposit, /api/v1/claim, /api/v1/withdraw")
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// routes builds the request handler with the middleware chain applied
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check (support both /health and /v1/health for compatibility)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", metrics.Handler())

	// Pool listing and creation
	mux.HandleFunc("/api/v1/pools", s.handlePools)
	mux.HandleFunc("/api/v1/pools/", s.handlePoolRoutes)

	// Participant positions across pools
	mux.HandleFunc("/api/v1/participants/", s.handleParticipantRoutes)

	// Ownership
	mux.HandleFunc("/api/v1/owner", s.farmingHandler.GetOwner)
	mux.HandleFunc("/api/v1/owner/transfer", s.farmingHandler.TransferOwnership)

	// Encrypted position lifecycle
	mux.HandleFunc("/api/v1/deposit", s.mutationLimited(s.farmingHandler.Deposit))
	mux.HandleFunc("/api/v1/accrue", s.mutationLimited(s.farmingHandler.Accrue))
	mux.HandleFunc("/api/v1/claim", s.mutationLimited(s.farmingHandler.Claim))
	mux.HandleFunc("/api/v1/withdraw", s.mutationLimited(s.farmingHandler.Withdraw))

	// WebSocket
	mux.HandleFunc("/ws", s.wsServer.GetHub().ServeWS)

	// Apply middleware chain: CORS -> Metrics -> RateLimit -> Handler
	var handler http.Handler = mux
	if !s.config.DisableRateLimit {
		handler = middleware.RateLimitMiddleware(s.rateLimiter)(handler)
	}
	return corsMiddleware(metricsMiddleware(handler))
}

// mutationLimited wraps a handler with the stricter mutation rate limit
func (s *Server) mutationLimited(h http.HandlerFunc) http.HandlerFunc {
	if s.config.DisableRateLimit {
		return h
	}
	limited := middleware.MutationRateLimitMiddleware(s.rateLimiter)(h)
	return limited.ServeHTTP
}

// forwardEvents streams ledger events to WebSocket subscribers and the
// metrics collector
func (s *Server) forwardEvents() {
	hub := s.wsServer.GetHub()
	for event := range s.farmingService.Events() {
		poolID, _ := event.PoolID()
		metrics.GetCollector().RecordLedgerEvent(event.Type, poolID)
		hub.BroadcastLedgerEvent(event)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"mode":      "standalone",
		"warning":   "This API uses in-memory storage. For production, connect to a running chain node.",
	})
}

// handlePools handles /api/v1/pools
func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.farmingHandler.GetPools(w, r)
	case http.MethodPost:
		s.farmingHandler.CreatePool(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handlePoolRoutes handles /api/v1/pools/{poolId}/* endpoints
func (s *Server) handlePoolRoutes(w http.ResponseWriter, r *http.Request) {
	// Parse path: /api/v1/pools/{poolId} or /api/v1/pools/{poolId}/{endpoint}
	path := r.URL.Path[len("/api/v1/pools/"):]

	poolID := path
	endpoint := ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		poolID = path[:i]
		endpoint = path[i+1:]
	}

	if poolID == "" {
		writeError(w, http.StatusBadRequest, "Pool ID required")
		return
	}
	if _, err := strconv.ParseUint(poolID, 10, 64); err != nil {
		writeError(w, http.StatusBadRequest, "Pool ID must be a non-negative integer")
		return
	}

	// Set pool ID in request for handler
	r.Header.Set("X-Pool-ID", poolID)

	switch {
	case endpoint == "":
		s.farmingHandler.GetPool(w, r)
	case endpoint == "aggregates":
		s.farmingHandler.GetAggregates(w, r)
	case endpoint == "positions":
		s.farmingHandler.GetPoolPositions(w, r)
	case strings.HasPrefix(endpoint, "positions/"):
		r.Header.Set("X-Participant", endpoint[len("positions/"):])
		s.farmingHandler.GetPosition(w, r)
	case endpoint == "status":
		s.mutationLimited(s.farmingHandler.SetPoolActive)(w, r)
	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// handleParticipantRoutes handles /api/v1/participants/{participant}/positions
func (s *Server) handleParticipantRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path[len("/api/v1/participants/"):]

	participant := path
	endpoint := ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		participant = path[:i]
		endpoint = path[i+1:]
	}

	if participant == "" {
		writeError(w, http.StatusBadRequest, "Participant address required")
		return
	}

	r.Header.Set("X-Participant", participant)

	switch endpoint {
	case "", "positions":
		s.farmingHandler.GetParticipantPositions(w, r)
	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware records request counts and latency
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.NewTimer()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		metrics.GetCollector().RecordAPIRequest(
			r.Method, metricPath(r.URL.Path), strconv.Itoa(recorder.status), timer.ElapsedMs())
	})
}

// metricPath collapses ids out of paths to keep label cardinality low
func metricPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/pools/"):
		rest := path[len("/api/v1/pools/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			suffix := rest[i+1:]
			if j := strings.IndexByte(suffix, '/'); j >= 0 {
				suffix = suffix[:j] + "/:participant"
			}
			return "/api/v1/pools/:id/" + suffix
		}
		return "/api/v1/pools/:id"
	case strings.HasPrefix(path, "/api/v1/participants/"):
		return "/api/v1/participants/:participant/positions"
	default:
		return path
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
