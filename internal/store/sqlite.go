package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/velobank/velocity-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS mortgages (
	id               TEXT PRIMARY KEY,
	principal        REAL NOT NULL,
	current_balance  REAL NOT NULL,
	interest_rate    REAL NOT NULL,
	monthly_payment  REAL NOT NULL,
	term_months      INTEGER NOT NULL,
	monthly_income   REAL NOT NULL DEFAULT 0,
	monthly_expenses REAL NOT NULL DEFAULT 0,
	created_at       DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS helocs (
	id              TEXT PRIMARY KEY,
	mortgage_id     TEXT NOT NULL REFERENCES mortgages(id) ON DELETE CASCADE,
	credit_limit    REAL NOT NULL,
	current_balance REAL NOT NULL,
	interest_rate   REAL NOT NULL,
	minimum_payment REAL NOT NULL,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_helocs_mortgage_id ON helocs(mortgage_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateMortgage(ctx context.Context, m model.Mortgage) (*model.Mortgage, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mortgages (id, principal, current_balance, interest_rate, monthly_payment, term_months, monthly_income, monthly_expenses, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Principal, m.CurrentBalance, m.InterestRate, m.MonthlyPayment,
		m.TermMonths, m.MonthlyIncome, m.MonthlyExpenses, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert mortgage")
	}
	return &m, nil
}

func (s *SQLiteStore) GetMortgage(ctx context.Context, id string) (*model.Mortgage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, principal, current_balance, interest_rate, monthly_payment, term_months, monthly_income, monthly_expenses, created_at, updated_at
		 FROM mortgages WHERE id = ?`, id)

	var m model.Mortgage
	err := row.Scan(&m.ID, &m.Principal, &m.CurrentBalance, &m.InterestRate, &m.MonthlyPayment,
		&m.TermMonths, &m.MonthlyIncome, &m.MonthlyExpenses, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "mortgage %s", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get mortgage %s", id)
	}
	return &m, nil
}

func (s *SQLiteStore) ListMortgages(ctx context.Context) ([]model.Mortgage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, principal, current_balance, interest_rate, monthly_payment, term_months, monthly_income, monthly_expenses, created_at, updated_at
		 FROM mortgages ORDER BY created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list mortgages")
	}
	defer rows.Close()

	var out []model.Mortgage
	for rows.Next() {
		var m model.Mortgage
		if err := rows.Scan(&m.ID, &m.Principal, &m.CurrentBalance, &m.InterestRate, &m.MonthlyPayment,
			&m.TermMonths, &m.MonthlyIncome, &m.MonthlyExpenses, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan mortgage")
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list mortgages")
}

func (s *SQLiteStore) UpdateMortgageBalance(ctx context.Context, id string, balance float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE mortgages SET current_balance = ?, updated_at = ? WHERE id = ?`,
		balance, time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update mortgage balance %s", id)
	}
	return checkRowsAffected(res, "mortgage", id)
}

func (s *SQLiteStore) DeleteMortgage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mortgages WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete mortgage %s", id)
	}
	return checkRowsAffected(res, "mortgage", id)
}

func (s *SQLiteStore) CreateHELOC(ctx context.Context, h model.HELOC) (*model.HELOC, error) {
	h.ID = uuid.New().String()
	h.CreatedAt = time.Now().UTC()
	h.UpdatedAt = h.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO helocs (id, mortgage_id, credit_limit, current_balance, interest_rate, minimum_payment, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.MortgageID, h.CreditLimit, h.CurrentBalance, h.InterestRate, h.MinimumPayment, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert heloc")
	}
	return &h, nil
}

func (s *SQLiteStore) GetHELOC(ctx context.Context, id string) (*model.HELOC, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, mortgage_id, credit_limit, current_balance, interest_rate, minimum_payment, created_at, updated_at
		 FROM helocs WHERE id = ?`, id)

	var h model.HELOC
	err := row.Scan(&h.ID, &h.MortgageID, &h.CreditLimit, &h.CurrentBalance, &h.InterestRate, &h.MinimumPayment, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "heloc %s", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get heloc %s", id)
	}
	return &h, nil
}

func (s *SQLiteStore) ListHELOCs(ctx context.Context, mortgageID string) ([]model.HELOC, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mortgage_id, credit_limit, current_balance, interest_rate, minimum_payment, created_at, updated_at
		 FROM helocs WHERE mortgage_id = ? ORDER BY created_at`, mortgageID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list helocs")
	}
	defer rows.Close()

	var out []model.HELOC
	for rows.Next() {
		var h model.HELOC
		if err := rows.Scan(&h.ID, &h.MortgageID, &h.CreditLimit, &h.CurrentBalance, &h.InterestRate, &h.MinimumPayment, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan heloc")
		}
		out = append(out, h)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list helocs")
}

func (s *SQLiteStore) DeleteHELOC(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM helocs WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete heloc %s", id)
	}
	return checkRowsAffected(res, "heloc", id)
}

func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", kind, id)
	}
	return nil
}
