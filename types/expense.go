package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost recorded against a trip. When IsShared is true the Shares
// collection apportions part of the amount to other participants; the payer's
// own share is implicit (amount minus the sum of the shares).
type Expense struct {
	ID          string          `json:"id"`
	TripID      string          `json:"tripId"`
	PaidBy      string          `json:"paidBy"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	IsShared    bool            `json:"isShared"`
	Shares      []ExpenseShare  `json:"shares,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ExpenseShare is one participant's owed portion of a shared expense.
// Settlement is monotonic: IsSettled never goes back to false and SettledAt is
// written exactly once, on the false to true transition.
type ExpenseShare struct {
	ID         string          `json:"id"`
	ExpenseID  string          `json:"expenseId"`
	UserID     string          `json:"userId"`
	AmountOwed decimal.Decimal `json:"amountOwed"`
	IsSettled  bool            `json:"isSettled"`
	SettledAt  *time.Time      `json:"settledAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type ExpenseCreate struct {
	Description string `json:"description" binding:"required,max=500"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Category    string `json:"category,omitempty" binding:"omitempty,max=100"`
	IsShared    bool   `json:"isShared"`
	// SplitEqually asks the server to compute an equal split across all
	// accepted participants. Mutually exclusive with ParticipantAmounts.
	SplitEqually bool `json:"splitEqually,omitempty"`
	// ParticipantAmounts maps user id to owed amount (decimal string).
	ParticipantAmounts map[string]string `json:"participantAmounts,omitempty"`
}

// SettlementProgress is a derived, read-only view of how far a shared expense
// has been settled. SettledAmount + PendingAmount always equals the sum of
// the shares.
type SettlementProgress struct {
	SettledCount  int             `json:"settledCount"`
	TotalCount    int             `json:"totalCount"`
	SettledAmount decimal.Decimal `json:"settledAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
}
