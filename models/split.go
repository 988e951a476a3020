package models

import (
	"github.com/shopspring/decimal"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/types"
)

// EqualSplit divides total across the payer and the other participants. Each
// entry in others gets the per-head amount rounded to 2 decimal places; the
// payer's implicit share is the remainder (total minus the explicit shares),
// so the rounding drift always lands on the payer and the shares reconcile to
// the total exactly.
func EqualSplit(total decimal.Decimal, payer string, others []string) (map[string]decimal.Decimal, error) {
	if !total.GreaterThan(decimal.Zero) {
		return nil, errors.ValidationFailed("invalid split", "total must be positive")
	}
	if len(others) == 0 {
		return nil, errors.ValidationFailed("invalid split", "at least one other participant is required")
	}
	for _, userID := range others {
		if userID == payer {
			return nil, errors.ValidationFailed("invalid split", "payer cannot appear in the participant list")
		}
	}

	heads := int64(len(others) + 1)
	perHead := total.Div(decimal.NewFromInt(heads)).Round(2)

	shares := make(map[string]decimal.Decimal, len(others))
	explicit := decimal.Zero
	for _, userID := range others {
		shares[userID] = perHead
		explicit = explicit.Add(perHead)
	}

	if explicit.GreaterThan(total) {
		// Rounding pushed the explicit shares past the total (e.g. tiny totals
		// across many heads). Shave a cent off the last listed participants
		// until the payer share is non-negative.
		excess := explicit.Sub(total)
		cent := decimal.New(1, -2)
		for i := len(others) - 1; i >= 0 && excess.GreaterThan(decimal.Zero); i-- {
			shares[others[i]] = shares[others[i]].Sub(cent)
			excess = excess.Sub(cent)
		}
	}

	return shares, nil
}

// ValidateApportionment enforces the sole cross-field invariant on a shared
// expense: the explicit shares may not sum past the total. Equality is fine,
// the payer's implicit share is then zero.
func ValidateApportionment(total decimal.Decimal, shares map[string]decimal.Decimal) error {
	sum := decimal.Zero
	for userID, amount := range shares {
		if amount.LessThan(decimal.Zero) {
			return errors.ValidationFailed("invalid share", "share for "+userID+" is negative")
		}
		sum = sum.Add(amount)
	}
	if sum.GreaterThan(total) {
		return errors.ExceedsTotal(sum.String(), total.String())
	}
	return nil
}

// Progress derives the settlement state of a shared expense.
// SettledAmount + PendingAmount always equals the sum of the shares.
func Progress(expense *types.Expense) types.SettlementProgress {
	p := types.SettlementProgress{
		TotalCount:    len(expense.Shares),
		SettledAmount: decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for _, share := range expense.Shares {
		if share.IsSettled {
			p.SettledCount++
			p.SettledAmount = p.SettledAmount.Add(share.AmountOwed)
		} else {
			p.PendingAmount = p.PendingAmount.Add(share.AmountOwed)
		}
	}
	return p
}
