package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used in input and output tables.
const DateLayout = "2006-01-02"

// TransactionType splits spending into fixed commitments and discretionary spend.
type TransactionType string

const (
	Fixed    TransactionType = "Fixed"
	Variable TransactionType = "Variable"
)

// Transaction is a single expense row of the input table.
type Transaction struct {
	ID            int
	Date          time.Time
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
	Location      string
	Merchant      string
	Description   string
}

// Type derives Fixed for bills and healthcare, Variable for everything else.
func (t Transaction) Type() TransactionType {
	switch t.Category {
	case CategoryBills, CategoryHealthcare:
		return Fixed
	}
	return Variable
}

// DayOfWeek returns the weekday name of the transaction date.
func (t Transaction) DayOfWeek() string {
	return t.Date.Weekday().String()
}

// AmountFloat returns the amount for statistics that work on float64.
func (t Transaction) AmountFloat() float64 {
	return t.Amount.InexactFloat64()
}

// Month returns the first day of the transaction's calendar month.
func (t Transaction) Month() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TransactionBuilder assembles a Transaction and validates it on Build.
type TransactionBuilder struct {
	tx  Transaction
	err error
}

func NewTransaction(id int) *TransactionBuilder {
	return &TransactionBuilder{tx: Transaction{ID: id}}
}

// SetDate accepts YYYY-MM-DD, optionally followed by a midnight time component.
func (b *TransactionBuilder) SetDate(date string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	d, err := ParseDate(date)
	if err != nil {
		b.err = err
		return b
	}
	b.tx.Date = d
	return b
}

func (b *TransactionBuilder) SetTime(date time.Time) *TransactionBuilder {
	b.tx.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return b
}

func (b *TransactionBuilder) SetAmount(amount string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	v, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		b.err = fmt.Errorf("invalid amount %q: %w", amount, err)
		return b
	}
	b.tx.Amount = v.Round(2)
	return b
}

func (b *TransactionBuilder) SetAmountDecimal(amount decimal.Decimal) *TransactionBuilder {
	b.tx.Amount = amount.Round(2)
	return b
}

func (b *TransactionBuilder) SetCategory(category string) *TransactionBuilder {
	b.tx.Category = strings.TrimSpace(category)
	return b
}

func (b *TransactionBuilder) SetPaymentMethod(method string) *TransactionBuilder {
	b.tx.PaymentMethod = strings.TrimSpace(method)
	return b
}

func (b *TransactionBuilder) SetLocation(location string) *TransactionBuilder {
	b.tx.Location = strings.TrimSpace(location)
	return b
}

func (b *TransactionBuilder) SetMerchant(merchant string) *TransactionBuilder {
	b.tx.Merchant = strings.TrimSpace(merchant)
	return b
}

func (b *TransactionBuilder) SetDescription(description string) *TransactionBuilder {
	b.tx.Description = strings.TrimSpace(description)
	return b
}

// Build returns the transaction or the first error met while setting fields.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, b.err
	}
	if b.tx.Date.IsZero() {
		return Transaction{}, fmt.Errorf("transaction %d: missing date", b.tx.ID)
	}
	if !b.tx.Amount.IsPositive() {
		return Transaction{}, fmt.Errorf("transaction %d: amount must be positive, got %s", b.tx.ID, b.tx.Amount.StringFixed(2))
	}
	if b.tx.Category == "" {
		return Transaction{}, fmt.Errorf("transaction %d: missing category", b.tx.ID)
	}
	return b.tx, nil
}

// ParseDate parses a calendar day in YYYY-MM-DD form. A trailing
// "00:00:00" time, as written by some exporters, is tolerated.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, "2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC3339} {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
