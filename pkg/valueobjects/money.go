// Package valueobjects holds small immutable domain values.
package valueobjects

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tripweave/tripweave-backend/errors"
)

// Currency is an ISO 4217 currency code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	CHF Currency = "CHF"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
)

var validCurrencies = map[Currency]bool{
	USD: true,
	EUR: true,
	GBP: true,
	CHF: true,
	CAD: true,
	AUD: true,
}

// Money is a monetary value in a specific currency, exact to 2 decimal places.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney validates the currency, sign, and precision of the amount.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !validCurrencies[currency] {
		return Money{}, errors.ValidationFailed(
			"invalid currency",
			fmt.Sprintf("currency %s is not supported", currency),
		)
	}
	if amount.LessThan(decimal.Zero) {
		return Money{}, errors.ValidationFailed(
			"invalid amount",
			"amount cannot be negative",
		)
	}
	if amount.Exponent() < -2 {
		return Money{}, errors.ValidationFailed(
			"invalid amount",
			"amount cannot have more than 2 decimal places",
		)
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyFromString parses string representations of amount and currency.
func NewMoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errors.ValidationFailed("invalid amount format", err.Error())
	}
	return NewMoney(d, Currency(strings.ToUpper(currency)))
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) IsPositive() bool {
	return m.amount.GreaterThan(decimal.Zero)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Add adds two monetary values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.ValidationFailed(
			"currency mismatch",
			fmt.Sprintf("cannot add %s to %s", other.currency, m.currency),
		)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
