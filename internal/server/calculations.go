package server

import (
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/velobank/velocity-cli/internal/engine"
)

// coreStatus maps typed engine/optimize errors onto HTTP status codes.
func coreStatus(err error) int {
	switch {
	case eris.Is(err, engine.ErrInvalidLoanParameters),
		eris.Is(err, engine.ErrInvalidFrequency):
		return http.StatusBadRequest
	case eris.Is(err, engine.ErrDivisionUndefined):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeCoreError(w http.ResponseWriter, err error) {
	status := coreStatus(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("calculation failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func (s *Server) handleMonthlyPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Principal    float64 `json:"principal"`
		InterestRate float64 `json:"interest_rate"`
		TermMonths   int     `json:"term_months"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := engine.MonthlyPayment(req.Principal, req.InterestRate, req.TermMonths)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"monthly_payment": payment})
}

func (s *Server) handleAmortization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Principal      float64 `json:"principal"`
		InterestRate   float64 `json:"interest_rate"`
		MonthlyPayment float64 `json:"monthly_payment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	sched, err := engine.Amortize(req.Principal, req.InterestRate, req.MonthlyPayment)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

type velocityRequest struct {
	CurrentBalance float64 `json:"current_balance"`
	InterestRate   float64 `json:"interest_rate"`
	MonthlyPayment float64 `json:"monthly_payment"`
	ChunkAmount    float64 `json:"chunk_amount"`
	Frequency      string  `json:"frequency"`
}

func (r velocityRequest) frequency() (engine.Frequency, error) {
	if r.Frequency == "" {
		return engine.Monthly, nil
	}
	return engine.ParseFrequency(r.Frequency)
}

func (s *Server) handleVelocity(w http.ResponseWriter, r *http.Request) {
	var req velocityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	freq, err := req.frequency()
	if err != nil {
		writeCoreError(w, err)
		return
	}

	sched, err := engine.SimulateVelocity(req.CurrentBalance, req.InterestRate, req.MonthlyPayment, req.ChunkAmount, freq)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req velocityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	freq, err := req.frequency()
	if err != nil {
		writeCoreError(w, err)
		return
	}

	standard, err := engine.Amortize(req.CurrentBalance, req.InterestRate, req.MonthlyPayment)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	velocity, err := engine.SimulateVelocity(req.CurrentBalance, req.InterestRate, req.MonthlyPayment, req.ChunkAmount, freq)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	savings, err := engine.CompareSavings(standard, velocity)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"standard": standard,
		"velocity": velocity,
		"savings":  savings,
	})
}

func (s *Server) handleOptimalChunk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentBalance  float64 `json:"current_balance"`
		InterestRate    float64 `json:"interest_rate"`
		MonthlyPayment  float64 `json:"monthly_payment"`
		AvailableLOC    float64 `json:"available_loc"`
		MonthlyIncome   float64 `json:"monthly_income"`
		MonthlyExpenses float64 `json:"monthly_expenses"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := engine.RecommendChunk(req.CurrentBalance, req.InterestRate, req.MonthlyPayment,
		req.AvailableLOC, req.MonthlyIncome, req.MonthlyExpenses)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
