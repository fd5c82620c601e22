package ynab

import (
	"fmt"
	"time"

	"github.com/brunomvsouza/ynab.go"
	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
)

const (
	// PaymentMethod and Location are not tracked by YNAB; every imported
	// row gets these values.
	PaymentMethod = "Bank Transfer"
	Location      = "Online"

	Uncategorized = "Uncategorized"
)

// Lister is the part of the YNAB transaction service the source needs.
type Lister interface {
	GetTransactionsByAccount(budgetID, accountID string, f *transaction.Filter) ([]*transaction.Transaction, error)
}

// Source reads the outflows of one YNAB account as an expense table.
type Source struct {
	lister Lister
	logger *log.Logger
}

// New connects to the YNAB API with a personal access token.
func New(token string, logger *log.Logger) *Source {
	return NewSource(ynab.NewClient(token).Transaction(), logger)
}

func NewSource(lister Lister, logger *log.Logger) *Source {
	return &Source{lister: lister, logger: logger}
}

// Transactions fetches the account's transactions, optionally only those on
// or after since, and keeps outflows. Deleted rows and transfers between
// accounts are not spending and are skipped.
func (s *Source) Transactions(budgetID, accountID string, since time.Time) (models.Table, error) {
	var filter *transaction.Filter
	if !since.IsZero() {
		filter = &transaction.Filter{Since: &api.Date{Time: since}}
	}
	remote, err := s.lister.GetTransactionsByAccount(budgetID, accountID, filter)
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to fetch ynab transactions: %w", err)
	}

	rows := make([]models.Transaction, 0, len(remote))
	skipped := 0
	for _, rt := range remote {
		if rt == nil || rt.Deleted || rt.TransferAccountID != nil || rt.Amount >= 0 {
			skipped++
			continue
		}
		tx, err := convert(len(rows)+1, rt)
		if err != nil {
			return models.Table{}, fmt.Errorf("ynab transaction %s: %w", rt.ID, err)
		}
		rows = append(rows, tx)
	}

	s.logger.Info("fetched ynab transactions", "account_id", accountID, "outflows", len(rows), "skipped", skipped)
	return models.NewTable(rows), nil
}

// convert maps a YNAB outflow onto a Transaction. YNAB amounts are signed
// milliunits, outflows negative.
func convert(id int, rt *transaction.Transaction) (models.Transaction, error) {
	category := deref(rt.CategoryName)
	if category == "" {
		category = Uncategorized
	}
	return models.NewTransaction(id).
		SetTime(rt.Date.Time).
		SetAmountDecimal(decimal.New(-rt.Amount, -3)).
		SetCategory(category).
		SetPaymentMethod(PaymentMethod).
		SetLocation(Location).
		SetMerchant(deref(rt.PayeeName)).
		SetDescription(deref(rt.Memo)).
		Build()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
