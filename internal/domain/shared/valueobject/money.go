package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	MVR Currency = "MVR" // Maldivian Rufiyaa (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	INR Currency = "INR" // Indian Rupee
	LKR Currency = "LKR" // Sri Lankan Rupee
)

// DefaultCurrency is the canonical currency for the system
const DefaultCurrency = MVR

// deprecatedCurrencyAliases maps retired currency codes to the canonical
// code. Historic entries were recorded in AED before the platform switched
// billing to MVR; the alias keeps old clients working.
var deprecatedCurrencyAliases = map[string]Currency{
	"AED": MVR,
}

// NormalizeCurrencyCode uppercases and validates a currency code, remapping
// deprecated aliases to their canonical replacement. The empty string
// resolves to the default currency.
func NormalizeCurrencyCode(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	if canonical, ok := deprecatedCurrencyAliases[code]; ok {
		return canonical, nil
	}
	if len(code) != 3 {
		return "", fmt.Errorf("currency code must be exactly 3 letters, got %q", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency code must be alphabetic, got %q", code)
		}
	}
	return Currency(code), nil
}

// Money is a value object representing monetary amounts.
// It is immutable - all operations return new Money instances.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// NewMoneyMVR creates Money in the default currency
func NewMoneyMVR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: MVR}
}

// NewMoneyMVRFromFloat creates Money in the default currency from a float64
func NewMoneyMVRFromFloat(amount float64) Money {
	return NewMoneyMVR(decimal.NewFromFloat(amount))
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.GreaterThan(decimal.Zero)
}

// IsNegative returns true if the amount is less than zero
func (m Money) IsNegative() bool {
	return m.amount.LessThan(decimal.Zero)
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns a new Money with the difference of both amounts
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract %s from %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Equal returns true if both amount and currency match
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// GreaterThanOrEqual compares amounts; currencies must match
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf("cannot compare %s with %s", other.currency, m.currency)
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// String returns the formatted amount with currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
