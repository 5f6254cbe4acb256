package customer_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/customer"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/queries"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (customer.Repository, sqlmock.Sqlmock, *queries.Set) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	q := queries.MustLoad(queries.Postgres)
	require.NoError(t, q.Require(customer.Queries...))
	return customer.NewSQLRepository(db, q), mock, q
}

func TestStoreAdjustCreditCommits(t *testing.T) {
	repo, mock, q := newStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(q.Get("lock_credit_by_customer_id"))).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_total"}).AddRow("20.00"))
	mock.ExpectExec(regexp.QuoteMeta(q.Get("update_customer_credit_total"))).
		WithArgs(decimal.RequireFromString("32.5"), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.AdjustCredit(context.Background(), 5, func(old decimal.Decimal) decimal.Decimal {
		return customer.ApplyDelta(old, decimal.RequireFromString("12.50"))
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("32.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreAdjustCreditRollsBackOnMissingCustomer(t *testing.T) {
	repo, mock, q := newStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(q.Get("lock_credit_by_customer_id"))).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.AdjustCredit(context.Background(), 9, func(old decimal.Decimal) decimal.Decimal { return old })
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreMarkInactiveReportsRows(t *testing.T) {
	repo, mock, q := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(q.Get("mark_customer_as_inactive"))).
		WithArgs(int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.MarkInactive(context.Background(), 77)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreEmailExists(t *testing.T) {
	repo, mock, q := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(q.Get("check_customer_email"))).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(q.Get("check_customer_email"))).
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))

	taken, err := repo.EmailExists(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailExists(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
