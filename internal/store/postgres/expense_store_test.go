package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

const settleQuery = `
			UPDATE expense_shares
			SET is_settled = TRUE, settled_at = NOW()
			WHERE expense_id = $1 AND user_id = $2 AND is_settled = FALSE`

func TestMarkShareSettled_FirstSettle(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(regexp.QuoteMeta(settleQuery)).
		WithArgs("expense-1", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s := NewExpenseStore(mock)
	err := s.MarkShareSettled(context.Background(), "expense-1", "user-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkShareSettled_RepeatIsNoOp(t *testing.T) {
	// The equality filter matches no rows the second time; the share still
	// exists, so the repeat converges to success without rewriting settled_at.
	mock := newMockPool(t)
	mock.ExpectExec(regexp.QuoteMeta(settleQuery)).
		WithArgs("expense-1", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("expense-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	s := NewExpenseStore(mock)
	err := s.MarkShareSettled(context.Background(), "expense-1", "user-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkShareSettled_MissingShare(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(regexp.QuoteMeta(settleQuery)).
		WithArgs("expense-1", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("expense-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	s := NewExpenseStore(mock)
	err := s.MarkShareSettled(context.Background(), "expense-1", "user-1")

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateExpenseWithShares_Transactional(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs("trip-1", "payer", "Dinner", pgxmock.AnyArg(), "USD", "", true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("expense-1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expense_shares")).
		WithArgs("expense-1", "alice", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expense_shares")).
		WithArgs("expense-1", "bob", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	s := NewExpenseStore(mock)
	expense := &types.Expense{
		TripID:      "trip-1",
		PaidBy:      "payer",
		Description: "Dinner",
		Amount:      decimal.RequireFromString("100.00"),
		Currency:    "USD",
		IsShared:    true,
	}
	shares := []*types.ExpenseShare{
		{UserID: "alice", AmountOwed: decimal.RequireFromString("33.33")},
		{UserID: "bob", AmountOwed: decimal.RequireFromString("33.33")},
	}

	id, err := s.CreateExpenseWithShares(context.Background(), expense, shares)

	require.NoError(t, err)
	assert.Equal(t, "expense-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseWithShares_RollbackOnShareFailure(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs("trip-1", "payer", "Dinner", pgxmock.AnyArg(), "USD", "", true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("expense-1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expense_shares")).
		WithArgs("expense-1", "alice", pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := NewExpenseStore(mock)
	expense := &types.Expense{
		TripID:      "trip-1",
		PaidBy:      "payer",
		Description: "Dinner",
		Amount:      decimal.RequireFromString("100.00"),
		Currency:    "USD",
		IsShared:    true,
	}
	shares := []*types.ExpenseShare{
		{UserID: "alice", AmountOwed: decimal.RequireFromString("50.00")},
	}

	_, err := s.CreateExpenseWithShares(context.Background(), expense, shares)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpense_LoadsShares(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM expenses")).
		WithArgs("expense-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "trip_id", "paid_by", "description", "amount", "currency",
			"category", "is_shared", "created_at", "updated_at",
		}).AddRow(
			"expense-1", "trip-1", "payer", "Dinner",
			decimal.RequireFromString("100.00"), "USD", "", true, now, now,
		))
	mock.ExpectQuery(regexp.QuoteMeta("FROM expense_shares")).
		WithArgs("expense-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "expense_id", "user_id", "amount_owed", "is_settled", "settled_at", "created_at",
		}).AddRow(
			"share-1", "expense-1", "alice",
			decimal.RequireFromString("33.33"), false, nil, now,
		))

	s := NewExpenseStore(mock)
	expense, err := s.GetExpense(context.Background(), "expense-1")

	require.NoError(t, err)
	require.Len(t, expense.Shares, 1)
	assert.Equal(t, "alice", expense.Shares[0].UserID)
	assert.False(t, expense.Shares[0].IsSettled)
}
