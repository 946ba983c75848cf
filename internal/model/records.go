// Package model defines the persistent record types the store layer manages.
// Simulation inputs are plain numbers pulled from these records; nothing in
// the engine or optimizer depends on them.
package model

import "time"

// Mortgage is a stored amortizing loan.
type Mortgage struct {
	ID              string    `json:"id"`
	Principal       float64   `json:"principal"`
	CurrentBalance  float64   `json:"current_balance"`
	InterestRate    float64   `json:"interest_rate"`
	MonthlyPayment  float64   `json:"monthly_payment"`
	TermMonths      int       `json:"term_months"`
	MonthlyIncome   float64   `json:"monthly_income,omitempty"`
	MonthlyExpenses float64   `json:"monthly_expenses,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HELOC is a stored revolving line of credit attached to a mortgage,
// used as the source of chunk funds.
type HELOC struct {
	ID             string    `json:"id"`
	MortgageID     string    `json:"mortgage_id"`
	CreditLimit    float64   `json:"credit_limit"`
	CurrentBalance float64   `json:"current_balance"`
	InterestRate   float64   `json:"interest_rate"`
	MinimumPayment float64   `json:"minimum_payment"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AvailableCredit is the undrawn headroom on the line.
func (h HELOC) AvailableCredit() float64 {
	return h.CreditLimit - h.CurrentBalance
}
