// Package server exposes the simulation and optimization engine over HTTP.
// Handlers only parse, validate, and map typed core errors to status codes;
// all arithmetic lives in engine and optimize.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/velobank/velocity-cli/internal/config"
	"github.com/velobank/velocity-cli/internal/optimize"
	"github.com/velobank/velocity-cli/internal/store"
)

// Server holds handler dependencies.
type Server struct {
	store     store.Store
	optimizer *optimize.Optimizer
	limiter   *rate.Limiter
}

// New creates a Server. The store may be nil, in which case the record
// endpoints return 503 and the pure calculation endpoints still work.
func New(st store.Store, opt *optimize.Optimizer, cfg config.ServerConfig) *Server {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 20
	}
	return &Server{
		store:     st,
		optimizer: opt,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.rateLimit)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/calculations", func(r chi.Router) {
		r.Post("/payment", s.handleMonthlyPayment)
		r.Post("/amortization", s.handleAmortization)
		r.Post("/velocity", s.handleVelocity)
		r.Post("/compare", s.handleCompare)
		r.Post("/optimal-chunk", s.handleOptimalChunk)
	})

	r.Route("/api/optimization", func(r chi.Router) {
		r.Post("/chunk", s.handleOptimizeChunk)
		r.Post("/compare-methods", s.handleCompareMethods)
		r.Post("/multi-objective", s.handleMultiObjective)
		r.Post("/sensitivity", s.handleSensitivity)
	})

	r.Route("/api/mortgages", func(r chi.Router) {
		r.Post("/", s.handleCreateMortgage)
		r.Get("/", s.handleListMortgages)
		r.Get("/{id}", s.handleGetMortgage)
		r.Delete("/{id}", s.handleDeleteMortgage)
		r.Get("/{id}/helocs", s.handleListHELOCs)
		r.Post("/{id}/optimize", s.handleOptimizeMortgage)
	})

	r.Route("/api/helocs", func(r chi.Router) {
		r.Post("/", s.handleCreateHELOC)
		r.Get("/{id}", s.handleGetHELOC)
		r.Delete("/{id}", s.handleDeleteHELOC)
	})

	return r
}

// rateLimit applies a process-wide token bucket to every request.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
