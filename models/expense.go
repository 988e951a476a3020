package models

import (
	"context"
	goerrors "errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/pkg/valueobjects"
	"github.com/tripweave/tripweave-backend/types"
)

const expenseEventSource = "expense_model"

// ExpenseModel records expenses, apportions shared costs, and tracks
// settlement.
type ExpenseModel struct {
	store     store.ExpenseStore
	trips     store.TripStore
	guard     AccessVerifier
	publisher types.EventPublisher
	log       *zap.SugaredLogger
}

func NewExpenseModel(expenseStore store.ExpenseStore, tripStore store.TripStore, guard AccessVerifier, publisher types.EventPublisher) *ExpenseModel {
	return &ExpenseModel{
		store:     expenseStore,
		trips:     tripStore,
		guard:     guard,
		publisher: publisher,
		log:       logger.GetLogger().Named("expense"),
	}
}

// CreateExpense records an expense paid by the caller. For shared expenses the
// apportionment comes either from an equal split across accepted participants
// or from explicit per-user amounts; either way the shares may not sum past
// the total, and the expense plus all shares persist atomically.
func (m *ExpenseModel) CreateExpense(ctx context.Context, tripID, userID string, req *types.ExpenseCreate) (*types.Expense, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	money, err := valueobjects.NewMoneyFromString(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	if !money.IsPositive() {
		return nil, errors.ValidationFailed("invalid amount", "amount must be positive")
	}

	expense := &types.Expense{
		TripID:      tripID,
		PaidBy:      userID,
		Description: req.Description,
		Amount:      money.Amount(),
		Currency:    string(money.Currency()),
		Category:    req.Category,
		IsShared:    req.IsShared,
	}

	var shares []*types.ExpenseShare
	if req.IsShared {
		apportionment, err := m.buildApportionment(ctx, tripID, userID, money.Amount(), req)
		if err != nil {
			return nil, err
		}
		for otherID, owed := range apportionment {
			shares = append(shares, &types.ExpenseShare{
				UserID:     otherID,
				AmountOwed: owed,
			})
		}
	} else if req.SplitEqually || len(req.ParticipantAmounts) > 0 {
		return nil, errors.ValidationFailed("invalid expense", "split options require isShared")
	}

	expenseID, err := m.store.CreateExpenseWithShares(ctx, expense, shares)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	created, err := m.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeExpenseCreated, tripID, userID, created, expenseEventSource)

	return created, nil
}

// buildApportionment resolves the owed amount per non-payer participant.
func (m *ExpenseModel) buildApportionment(ctx context.Context, tripID, payerID string, total decimal.Decimal, req *types.ExpenseCreate) (map[string]decimal.Decimal, error) {
	if req.SplitEqually && len(req.ParticipantAmounts) > 0 {
		return nil, errors.ValidationFailed("invalid expense", "splitEqually and participantAmounts are mutually exclusive")
	}

	accepted, err := m.acceptedParticipants(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if req.SplitEqually {
		var others []string
		for id := range accepted {
			if id != payerID {
				others = append(others, id)
			}
		}
		return EqualSplit(total, payerID, others)
	}

	if len(req.ParticipantAmounts) == 0 {
		return nil, errors.ValidationFailed("invalid expense", "a shared expense needs splitEqually or participantAmounts")
	}

	shares := make(map[string]decimal.Decimal, len(req.ParticipantAmounts))
	for otherID, raw := range req.ParticipantAmounts {
		if otherID == payerID {
			return nil, errors.ValidationFailed("invalid share", "the payer's own share is implicit and cannot be listed")
		}
		if !accepted[otherID] {
			return nil, errors.ValidationFailed("invalid share", "user "+otherID+" is not an accepted participant")
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.ValidationFailed("invalid share amount", err.Error())
		}
		if amount.Exponent() < -2 {
			return nil, errors.ValidationFailed("invalid share amount", "share cannot have more than 2 decimal places")
		}
		shares[otherID] = amount
	}

	if err := ValidateApportionment(total, shares); err != nil {
		return nil, err
	}
	return shares, nil
}

func (m *ExpenseModel) acceptedParticipants(ctx context.Context, tripID string) (map[string]bool, error) {
	participants, err := m.trips.ListParticipants(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	accepted := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.Status == types.ParticipantStatusAccepted {
			accepted[p.UserID] = true
		}
	}
	return accepted, nil
}

// GetExpense returns one expense with its shares.
func (m *ExpenseModel) GetExpense(ctx context.Context, tripID, expenseID, userID string) (*types.Expense, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}
	return m.loadTripExpense(ctx, tripID, expenseID)
}

// ListExpenses returns all expenses on the trip, shares included.
func (m *ExpenseModel) ListExpenses(ctx context.Context, tripID, userID string) ([]*types.Expense, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	expenses, err := m.store.ListTripExpenses(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return expenses, nil
}

// SettleShare marks the caller's share of the expense as settled. Settlement
// is monotonic: once flipped the share stays settled, and settling an already
// settled share succeeds without rewriting the settlement timestamp.
func (m *ExpenseModel) SettleShare(ctx context.Context, tripID, expenseID, userID string) (*types.Expense, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	if _, err := m.loadTripExpense(ctx, tripID, expenseID); err != nil {
		return nil, err
	}

	if err := m.store.MarkShareSettled(ctx, expenseID, userID); err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("expense share", expenseID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	updated, err := m.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeExpenseSettled, tripID, userID, updated, expenseEventSource)

	return updated, nil
}

// SettlementProgress reports how much of a shared expense has been settled.
func (m *ExpenseModel) SettlementProgress(ctx context.Context, tripID, expenseID, userID string) (*types.SettlementProgress, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	expense, err := m.loadTripExpense(ctx, tripID, expenseID)
	if err != nil {
		return nil, err
	}

	progress := Progress(expense)
	return &progress, nil
}

// loadTripExpense fetches the expense and pins it to the trip in the path, so
// an expense id cannot be read through some other trip the caller belongs to.
func (m *ExpenseModel) loadTripExpense(ctx context.Context, tripID, expenseID string) (*types.Expense, error) {
	expense, err := m.store.GetExpense(ctx, expenseID)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("expense", expenseID)
		}
		return nil, errors.NewDatabaseError(err)
	}
	if expense.TripID != tripID {
		return nil, errors.NotFound("expense", expenseID)
	}
	return expense, nil
}
