package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/velobank/velocity-cli/internal/model"
)

// pgPool is the subset of pgxpool.Pool the store uses, narrow enough for
// pgxmock to stand in during tests.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    pgPool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS mortgages (
	id               TEXT PRIMARY KEY,
	principal        DOUBLE PRECISION NOT NULL,
	current_balance  DOUBLE PRECISION NOT NULL,
	interest_rate    DOUBLE PRECISION NOT NULL,
	monthly_payment  DOUBLE PRECISION NOT NULL,
	term_months      INTEGER NOT NULL,
	monthly_income   DOUBLE PRECISION NOT NULL DEFAULT 0,
	monthly_expenses DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS helocs (
	id              TEXT PRIMARY KEY,
	mortgage_id     TEXT NOT NULL REFERENCES mortgages(id) ON DELETE CASCADE,
	credit_limit    DOUBLE PRECISION NOT NULL,
	current_balance DOUBLE PRECISION NOT NULL,
	interest_rate   DOUBLE PRECISION NOT NULL,
	minimum_payment DOUBLE PRECISION NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_helocs_mortgage_id ON helocs(mortgage_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateMortgage(ctx context.Context, m model.Mortgage) (*model.Mortgage, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt

	_, err := s.pool.Exec(ctx,
		`INSERT INTO mortgages (id, principal, current_balance, interest_rate, monthly_payment, term_months, monthly_income, monthly_expenses, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.Principal, m.CurrentBalance, m.InterestRate, m.MonthlyPayment,
		m.TermMonths, m.MonthlyIncome, m.MonthlyExpenses, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert mortgage")
	}
	return &m, nil
}

func (s *PostgresStore) GetMortgage(ctx context.Context, id string) (*model.Mortgage, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, principal, current_balance, interest_rate, monthly_payment, term_months, monthly_income, monthly_expenses, created_at, updated_at
		 FROM mortgages WHERE id = $1`, id)

	var m model.Mortgage
	err := row.Scan(&m.ID, &m.Principal, &m.CurrentBalance, &m.InterestRate, &m.MonthlyPayment,
		&m.TermMonths, &m.MonthlyIncome, &m.MonthlyExpenses, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "mortgage %s", id)
		}
		return nil, eris.Wrapf(err, "postgres: get mortgage %s", id)
	}
	return &m, nil
}

func (s *PostgresStore) ListMortgages(ctx context.Context) ([]model.Mortgage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, principal, current_balance, interest_rate, monthly_payment, term_months, monthly_income, monthly_expenses, created_at, updated_at
		 FROM mortgages ORDER BY created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list mortgages")
	}
	defer rows.Close()

	var out []model.Mortgage
	for rows.Next() {
		var m model.Mortgage
		if err := rows.Scan(&m.ID, &m.Principal, &m.CurrentBalance, &m.InterestRate, &m.MonthlyPayment,
			&m.TermMonths, &m.MonthlyIncome, &m.MonthlyExpenses, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan mortgage")
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list mortgages")
}

func (s *PostgresStore) UpdateMortgageBalance(ctx context.Context, id string, balance float64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE mortgages SET current_balance = $1, updated_at = $2 WHERE id = $3`,
		balance, time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "postgres: update mortgage balance %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "mortgage %s", id)
	}
	return nil
}

func (s *PostgresStore) DeleteMortgage(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM mortgages WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete mortgage %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "mortgage %s", id)
	}
	return nil
}

func (s *PostgresStore) CreateHELOC(ctx context.Context, h model.HELOC) (*model.HELOC, error) {
	h.ID = uuid.New().String()
	h.CreatedAt = time.Now().UTC()
	h.UpdatedAt = h.CreatedAt

	_, err := s.pool.Exec(ctx,
		`INSERT INTO helocs (id, mortgage_id, credit_limit, current_balance, interest_rate, minimum_payment, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.MortgageID, h.CreditLimit, h.CurrentBalance, h.InterestRate, h.MinimumPayment, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert heloc")
	}
	return &h, nil
}

func (s *PostgresStore) GetHELOC(ctx context.Context, id string) (*model.HELOC, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, mortgage_id, credit_limit, current_balance, interest_rate, minimum_payment, created_at, updated_at
		 FROM helocs WHERE id = $1`, id)

	var h model.HELOC
	err := row.Scan(&h.ID, &h.MortgageID, &h.CreditLimit, &h.CurrentBalance, &h.InterestRate, &h.MinimumPayment, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "heloc %s", id)
		}
		return nil, eris.Wrapf(err, "postgres: get heloc %s", id)
	}
	return &h, nil
}

func (s *PostgresStore) ListHELOCs(ctx context.Context, mortgageID string) ([]model.HELOC, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, mortgage_id, credit_limit, current_balance, interest_rate, minimum_payment, created_at, updated_at
		 FROM helocs WHERE mortgage_id = $1 ORDER BY created_at`, mortgageID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list helocs")
	}
	defer rows.Close()

	var out []model.HELOC
	for rows.Next() {
		var h model.HELOC
		if err := rows.Scan(&h.ID, &h.MortgageID, &h.CreditLimit, &h.CurrentBalance, &h.InterestRate, &h.MinimumPayment, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan heloc")
		}
		out = append(out, h)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list helocs")
}

func (s *PostgresStore) DeleteHELOC(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM helocs WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete heloc %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "heloc %s", id)
	}
	return nil
}
