package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

// ExpenseStore implements store.ExpenseStore.
type ExpenseStore struct {
	db store.Querier
}

func NewExpenseStore(db store.Querier) *ExpenseStore {
	return &ExpenseStore{db: db}
}

const expenseColumns = `id, trip_id, paid_by, description, amount, currency,
		category, is_shared, created_at, updated_at`

func scanExpense(row pgx.Row) (*types.Expense, error) {
	e := &types.Expense{}
	err := row.Scan(
		&e.ID,
		&e.TripID,
		&e.PaidBy,
		&e.Description,
		&e.Amount,
		&e.Currency,
		&e.Category,
		&e.IsShared,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// CreateExpenseWithShares writes the expense and every share in a single
// transaction. Shares are only meaningful for shared expenses; callers pass an
// empty slice otherwise.
func (s *ExpenseStore) CreateExpenseWithShares(ctx context.Context, expense *types.Expense, shares []*types.ExpenseShare) (string, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO expenses (trip_id, paid_by, description, amount, currency, category, is_shared)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		expense.TripID,
		expense.PaidBy,
		expense.Description,
		expense.Amount,
		expense.Currency,
		expense.Category,
		expense.IsShared,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, share := range shares {
		_, err = tx.Exec(ctx, `
			INSERT INTO expense_shares (expense_id, user_id, amount_owed)
			VALUES ($1, $2, $3)`,
			id,
			share.UserID,
			share.AmountOwed,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *ExpenseStore) GetExpense(ctx context.Context, id string) (*types.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1`

	expense, err := scanExpense(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	shares, err := s.listShares(ctx, id)
	if err != nil {
		return nil, err
	}
	expense.Shares = shares
	return expense, nil
}

func (s *ExpenseStore) ListTripExpenses(ctx context.Context, tripID string) ([]*types.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*types.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range expenses {
		shares, err := s.listShares(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.Shares = shares
	}
	return expenses, nil
}

// MarkShareSettled settles the share with an equality filter on is_settled so
// two racing settle attempts converge to a single settled_at timestamp. A zero
// row count against an existing share is the already-settled no-op; only an
// absent share is an error.
func (s *ExpenseStore) MarkShareSettled(ctx context.Context, expenseID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE expense_shares
		SET is_settled = TRUE, settled_at = NOW()
		WHERE expense_id = $1 AND user_id = $2 AND is_settled = FALSE`,
		expenseID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM expense_shares WHERE expense_id = $1 AND user_id = $2
		)`,
		expenseID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}
	return nil
}

func (s *ExpenseStore) listShares(ctx context.Context, expenseID string) ([]types.ExpenseShare, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, expense_id, user_id, amount_owed, is_settled, settled_at, created_at
		FROM expense_shares
		WHERE expense_id = $1
		ORDER BY created_at ASC`,
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []types.ExpenseShare
	for rows.Next() {
		var share types.ExpenseShare
		err := rows.Scan(
			&share.ID,
			&share.ExpenseID,
			&share.UserID,
			&share.AmountOwed,
			&share.IsSettled,
			&share.SettledAt,
			&share.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	return shares, rows.Err()
}
