// Package http exposes the JSON API: auth, collection CRUD, dashboard
// aggregates, and the CSV export download.
package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fairuzulum/ZenFinance/internal/auth"
	"github.com/fairuzulum/ZenFinance/internal/cache"
	"github.com/fairuzulum/ZenFinance/internal/middleware/ratelimit"
	"github.com/fairuzulum/ZenFinance/internal/middleware/security"
	"github.com/fairuzulum/ZenFinance/internal/middleware/trace"
	"github.com/fairuzulum/ZenFinance/internal/session"
)

type Server struct {
	http.Server

	controller *session.Controller
	verifier   auth.Verifier
	gate       *auth.Gate
	sessions   *auth.Sessions
	limiter    *ratelimit.Limiter

	// Dashboard responses keyed by controller version + query, so any
	// mutation invalidates by key rotation rather than explicit purge.
	dashCache *cache.Cache[dashboardResponse]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, controller *session.Controller, verifier auth.Verifier, gate *auth.Gate, sessions *auth.Sessions) *Server {
	mux := http.NewServeMux()

	s := &Server{
		controller:       controller,
		verifier:         verifier,
		gate:             gate,
		sessions:         sessions,
		limiter:          ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		dashCache:        cache.New[dashboardResponse](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /api/state", s.requireAuth(s.handleState))
	mux.HandleFunc("GET /api/dashboard", s.requireAuth(s.handleDashboard))

	mux.HandleFunc("GET /api/transactions", s.requireAuth(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.requireAuth(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.requireAuth(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/transactions/export", s.requireAuth(s.handleExportTransactions))

	mux.HandleFunc("POST /api/wallets", s.requireAuth(s.handleCreateWallet))
	mux.HandleFunc("DELETE /api/wallets/{id}", s.requireAuth(s.handleDeleteWallet))

	mux.HandleFunc("POST /api/goals", s.requireAuth(s.handleCreateGoal))
	mux.HandleFunc("PUT /api/goals/{id}/amount", s.requireAuth(s.handleUpdateGoalAmount))
	mux.HandleFunc("DELETE /api/goals/{id}", s.requireAuth(s.handleDeleteGoal))

	mux.HandleFunc("POST /api/budgets", s.requireAuth(s.handleCreateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.requireAuth(s.handleDeleteBudget))

	mux.HandleFunc("POST /api/debts", s.requireAuth(s.handleCreateDebt))
	mux.HandleFunc("POST /api/debts/{id}/pay", s.requireAuth(s.handlePayDebt))

	traceMw := trace.NewMiddleware()
	secMw := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:              addr,
		Handler:           traceMw.Middleware(secMw.Middleware(s.withRateLimit(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.startCacheCleanup()

	return s
}

// withRateLimit throttles mutating requests per client IP.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.limiter.Allow(trace.ExtractClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, categoryGeneric, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.dashCache.CleanExpired()
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops background routines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) dashboardCacheKey(rawQuery string) string {
	return strconv.FormatInt(s.controller.Version(), 10) + "|" + rawQuery
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
