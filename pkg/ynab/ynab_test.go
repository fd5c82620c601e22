package ynab

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/charmbracelet/log"
)

type fakeLister struct {
	txs    []*transaction.Transaction
	err    error
	filter *transaction.Filter
}

func (f *fakeLister) GetTransactionsByAccount(_, _ string, filter *transaction.Filter) ([]*transaction.Transaction, error) {
	f.filter = filter
	return f.txs, f.err
}

func str(s string) *string { return &s }

func remote(id, date string, amount int64, payee, category, memo *string) *transaction.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return &transaction.Transaction{
		ID:           id,
		Date:         api.Date{Time: d},
		Amount:       amount,
		PayeeName:    payee,
		CategoryName: category,
		Memo:         memo,
	}
}

func TestTransactions(t *testing.T) {
	transfer := remote("t", "2024-01-04", -5000, str("Savings"), nil, nil)
	transfer.TransferAccountID = str("acc-2")
	deleted := remote("d", "2024-01-05", -1000, str("Shell"), str("Transport"), nil)
	deleted.Deleted = true

	lister := &fakeLister{txs: []*transaction.Transaction{
		remote("a", "2024-01-02", -45990, str("Walmart"), str("Groceries"), str("Weekly groceries")),
		remote("b", "2024-01-03", 250000, str("Employer"), str("Inflow: Ready to Assign"), nil),
		transfer,
		deleted,
		remote("c", "2024-01-06", -12345, nil, nil, nil),
	}}
	src := NewSource(lister, log.New(io.Discard))

	table, err := src.Transactions("budget", "account", time.Time{})
	if err != nil {
		t.Fatalf("Transactions failed: %v", err)
	}
	if lister.filter != nil {
		t.Errorf("expected no filter without a start date")
	}
	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 outflows, got %d", len(rows))
	}

	first := rows[0]
	if first.ID != 1 || first.Amount.StringFixed(2) != "45.99" || first.Category != "Groceries" {
		t.Errorf("unexpected first row %+v", first)
	}
	if first.Merchant != "Walmart" || first.Description != "Weekly groceries" {
		t.Errorf("expected payee as merchant and memo as description, got %+v", first)
	}
	if first.PaymentMethod != PaymentMethod || first.Location != Location {
		t.Errorf("expected fixed payment method and location, got %+v", first)
	}
	if first.Date.Format("2006-01-02") != "2024-01-02" {
		t.Errorf("unexpected date %v", first.Date)
	}

	second := rows[1]
	if second.ID != 2 || second.Category != Uncategorized || second.Amount.StringFixed(2) != "12.35" {
		t.Errorf("unexpected second row %+v", second)
	}
}

func TestTransactionsSinceAndErrors(t *testing.T) {
	lister := &fakeLister{}
	src := NewSource(lister, log.New(io.Discard))
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := src.Transactions("b", "a", since); err != nil {
		t.Fatalf("Transactions failed: %v", err)
	}
	if lister.filter == nil || lister.filter.Since == nil || !lister.filter.Since.Equal(since) {
		t.Errorf("expected since filter %v, got %+v", since, lister.filter)
	}

	boom := errors.New("rate limited")
	lister.err = boom
	if _, err := src.Transactions("b", "a", time.Time{}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped API error, got %v", err)
	}
}
