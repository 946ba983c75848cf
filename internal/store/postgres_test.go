package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velobank/velocity-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &PostgresStore{pool: mock}, mock
}

func TestPostgresStore_CreateMortgage(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO mortgages").
		WithArgs(pgxmock.AnyArg(), 300000.0, 280000.0, 5.0, 1610.46, 360, 7000.0, 4500.0, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	m, err := st.CreateMortgage(context.Background(), model.Mortgage{
		Principal:       300000,
		CurrentBalance:  280000,
		InterestRate:    5.0,
		MonthlyPayment:  1610.46,
		TermMonths:      360,
		MonthlyIncome:   7000,
		MonthlyExpenses: 4500,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetMortgage(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM mortgages WHERE id").
		WithArgs("m-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "principal", "current_balance", "interest_rate", "monthly_payment",
			"term_months", "monthly_income", "monthly_expenses", "created_at", "updated_at",
		}).AddRow("m-1", 300000.0, 280000.0, 5.0, 1610.46, 360, 7000.0, 4500.0, now, now))

	m, err := st.GetMortgage(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", m.ID)
	assert.Equal(t, 280000.0, m.CurrentBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetMortgage_NotFound(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)

	mock.ExpectQuery("FROM mortgages WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := st.GetMortgage(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateMortgageBalance(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)

	mock.ExpectExec("UPDATE mortgages SET current_balance").
		WithArgs(250000.0, pgxmock.AnyArg(), "m-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, st.UpdateMortgageBalance(context.Background(), "m-1", 250000))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateMortgageBalance_NotFound(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)

	mock.ExpectExec("UPDATE mortgages SET current_balance").
		WithArgs(250000.0, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := st.UpdateMortgageBalance(context.Background(), "missing", 250000)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListHELOCs(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM helocs WHERE mortgage_id").
		WithArgs("m-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "mortgage_id", "credit_limit", "current_balance", "interest_rate", "minimum_payment", "created_at", "updated_at",
		}).
			AddRow("h-1", "m-1", 50000.0, 10000.0, 8.5, 150.0, now, now).
			AddRow("h-2", "m-1", 25000.0, 0.0, 9.0, 0.0, now, now))

	hs, err := st.ListHELOCs(context.Background(), "m-1")
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, 40000.0, hs[0].AvailableCredit())
	assert.Equal(t, 25000.0, hs[1].AvailableCredit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteHELOC_NotFound(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM helocs").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := st.DeleteHELOC(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	t.Parallel()
	st, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mortgages").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
