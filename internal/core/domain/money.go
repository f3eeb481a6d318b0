package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonetaryAmount is an arbitrary-precision decimal amount in a specific
// currency. All arithmetic stays in decimal; float64 is never used for money.
type MonetaryAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMonetaryAmount builds an amount in the given currency.
func NewMonetaryAmount(amount decimal.Decimal, currency string) MonetaryAmount {
	return MonetaryAmount{Amount: amount, Currency: currency}
}

// ZeroAmount returns a zero value in the given currency.
func ZeroAmount(currency string) MonetaryAmount {
	return MonetaryAmount{Amount: decimal.Zero, Currency: currency}
}

// Add returns m + other. Currencies must match.
func (m MonetaryAmount) Add(other MonetaryAmount) (MonetaryAmount, error) {
	if m.Currency != other.Currency {
		return MonetaryAmount{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	return MonetaryAmount{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other. Currencies must match.
func (m MonetaryAmount) Sub(other MonetaryAmount) (MonetaryAmount, error) {
	if m.Currency != other.Currency {
		return MonetaryAmount{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	return MonetaryAmount{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Mul returns m scaled by factor (e.g. an exchange rate).
func (m MonetaryAmount) Mul(factor decimal.Decimal) MonetaryAmount {
	return MonetaryAmount{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Neg returns the amount with its sign flipped.
func (m MonetaryAmount) Neg() MonetaryAmount {
	return MonetaryAmount{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// IsZero reports whether the amount equals zero.
func (m MonetaryAmount) IsZero() bool {
	return m.Amount.IsZero()
}

func (m MonetaryAmount) String() string {
	return m.Amount.String() + " " + m.Currency
}
