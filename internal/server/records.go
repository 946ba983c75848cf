package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/model"
	"github.com/velobank/velocity-cli/internal/optimize"
	"github.com/velobank/velocity-cli/internal/store"
)

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "record store not configured")
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	zap.L().Error("store operation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleCreateMortgage(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var m model.Mortgage
	if !decodeJSON(w, r, &m) {
		return
	}
	if m.CurrentBalance <= 0 || m.MonthlyPayment <= 0 || m.InterestRate < 0 {
		writeError(w, http.StatusBadRequest, "balance and payment must be positive, rate non-negative")
		return
	}

	created, err := s.store.CreateMortgage(r.Context(), m)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetMortgage(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	m, err := s.store.GetMortgage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleListMortgages(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ms, err := s.store.ListMortgages(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ms)
}

func (s *Server) handleDeleteMortgage(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.DeleteMortgage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateHELOC(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var h model.HELOC
	if !decodeJSON(w, r, &h) {
		return
	}
	if h.MortgageID == "" || h.CreditLimit <= 0 {
		writeError(w, http.StatusBadRequest, "mortgage_id and positive credit_limit are required")
		return
	}

	// Reject HELOCs for mortgages that don't exist.
	if _, err := s.store.GetMortgage(r.Context(), h.MortgageID); err != nil {
		writeStoreError(w, err)
		return
	}

	created, err := s.store.CreateHELOC(r.Context(), h)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetHELOC(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	h, err := s.store.GetHELOC(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleListHELOCs(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	hs, err := s.store.ListHELOCs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

func (s *Server) handleDeleteHELOC(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.DeleteHELOC(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOptimizeMortgage runs the optimizer against stored records: loan
// parameters from the mortgage, credit headroom from its first HELOC, cash
// flow from the mortgage's income/expense fields.
func (s *Server) handleOptimizeMortgage(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req struct {
		Frequency        string `json:"frequency"`
		OptimizationGoal string `json:"optimization_goal"`
		Method           string `json:"method"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := s.store.GetMortgage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	helocs, err := s.store.ListHELOCs(r.Context(), m.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if len(helocs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "mortgage has no HELOC to fund chunks from")
		return
	}

	opt := optimizationRequest{
		Frequency:        req.Frequency,
		OptimizationGoal: req.OptimizationGoal,
		Method:           req.Method,
	}
	freq, goal, method, err := opt.params()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cons := optimize.DeriveConstraints(helocs[0].AvailableCredit(), m.MonthlyIncome, m.MonthlyExpenses)
	res, err := s.optimizer.Optimize(m.CurrentBalance, m.InterestRate, m.MonthlyPayment, cons, freq, goal, method)
	if err != nil {
		writeError(w, optimizeStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"mortgage_id": m.ID,
		"heloc_id":    helocs[0].ID,
		"result":      res,
		"constraints": cons,
	})
}
