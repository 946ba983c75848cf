// Package store persists mortgage and HELOC records behind a driver-agnostic
// interface with SQLite and Postgres implementations. Simulation results are
// never persisted; schedules are always recomputed from stored parameters.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/velobank/velocity-cli/internal/model"
)

// ErrNotFound reports a lookup for a record that does not exist.
var ErrNotFound = eris.New("store: record not found")

// Store defines the persistence interface for loan and HELOC records.
type Store interface {
	// Mortgages
	CreateMortgage(ctx context.Context, m model.Mortgage) (*model.Mortgage, error)
	GetMortgage(ctx context.Context, id string) (*model.Mortgage, error)
	ListMortgages(ctx context.Context) ([]model.Mortgage, error)
	UpdateMortgageBalance(ctx context.Context, id string, balance float64) error
	DeleteMortgage(ctx context.Context, id string) error

	// HELOCs
	CreateHELOC(ctx context.Context, h model.HELOC) (*model.HELOC, error)
	GetHELOC(ctx context.Context, id string) (*model.HELOC, error)
	ListHELOCs(ctx context.Context, mortgageID string) ([]model.HELOC, error)
	DeleteHELOC(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs a Store for the configured driver.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
