package server

import (
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/velobank/velocity-cli/internal/engine"
	"github.com/velobank/velocity-cli/internal/optimize"
)

type optimizationRequest struct {
	Balance          float64 `json:"balance"`
	InterestRate     float64 `json:"interest_rate"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	AvailableLOC     float64 `json:"available_loc"`
	MonthlyIncome    float64 `json:"monthly_income"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	Frequency        string  `json:"frequency"`
	OptimizationGoal string  `json:"optimization_goal"`
	Method           string  `json:"method"`
}

func (r optimizationRequest) params() (engine.Frequency, optimize.Goal, optimize.Method, error) {
	freq := engine.Monthly
	if r.Frequency != "" {
		f, err := engine.ParseFrequency(r.Frequency)
		if err != nil {
			return 0, "", "", err
		}
		freq = f
	}

	goal := optimize.GoalBalanced
	if r.OptimizationGoal != "" {
		g, err := optimize.ParseGoal(r.OptimizationGoal)
		if err != nil {
			return 0, "", "", err
		}
		goal = g
	}

	method := optimize.MethodGlobal
	if r.Method != "" {
		m, err := optimize.ParseMethod(r.Method)
		if err != nil {
			return 0, "", "", err
		}
		method = m
	}

	return freq, goal, method, nil
}

func optimizeStatus(err error) int {
	if eris.Is(err, optimize.ErrInvalidConstraints) {
		return http.StatusBadRequest
	}
	return coreStatus(err)
}

func (s *Server) handleOptimizeChunk(w http.ResponseWriter, r *http.Request) {
	var req optimizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	freq, goal, method, err := req.params()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cons := optimize.DeriveConstraints(req.AvailableLOC, req.MonthlyIncome, req.MonthlyExpenses)
	res, err := s.optimizer.Optimize(req.Balance, req.InterestRate, req.MonthlyPayment, cons, freq, goal, method)
	if err != nil {
		writeError(w, optimizeStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":      res,
		"constraints": cons,
	})
}

func (s *Server) handleCompareMethods(w http.ResponseWriter, r *http.Request) {
	var req optimizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	freq, goal, _, err := req.params()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cons := optimize.DeriveConstraints(req.AvailableLOC, req.MonthlyIncome, req.MonthlyExpenses)
	results, err := s.optimizer.CompareMethods(r.Context(), req.Balance, req.InterestRate, req.MonthlyPayment, cons, freq, goal)
	if err != nil {
		writeError(w, optimizeStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"methods":     results,
		"constraints": cons,
	})
}

func (s *Server) handleMultiObjective(w http.ResponseWriter, r *http.Request) {
	var req optimizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	freq, _, _, err := req.params()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cons := optimize.DeriveConstraints(req.AvailableLOC, req.MonthlyIncome, req.MonthlyExpenses)
	results, err := s.optimizer.ParetoSet(r.Context(), req.Balance, req.InterestRate, req.MonthlyPayment, cons, freq)
	if err != nil {
		writeError(w, optimizeStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":     results,
		"constraints": cons,
	})
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Balance        float64 `json:"balance"`
		InterestRate   float64 `json:"interest_rate"`
		MonthlyPayment float64 `json:"monthly_payment"`
		OptimalChunk   float64 `json:"optimal_chunk"`
		Frequency      string  `json:"frequency"`
		Perturbation   float64 `json:"perturbation"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	freq := engine.Monthly
	if req.Frequency != "" {
		f, err := engine.ParseFrequency(req.Frequency)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		freq = f
	}
	if req.Perturbation == 0 {
		req.Perturbation = 0.1
	}

	sens, err := s.optimizer.Sensitivity(req.Balance, req.InterestRate, req.MonthlyPayment, req.OptimalChunk, freq, req.Perturbation)
	if err != nil {
		writeError(w, optimizeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sens)
}
