// Package modelstest builds random transaction tables for tests, shaped like
// the synthetic expense dataset: uniform amounts in [5, 200], dates drawn
// from 2022-01-01..2024-11-01 and fields drawn from the closed sets.
package modelstest

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
)

var (
	WindowStart = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	WindowEnd   = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
)

// RandomTable returns n transactions with IDs 1..n. The same seed always
// yields the same table.
func RandomTable(seed int64, n int) models.Table {
	f := gofakeit.New(seed)
	rows := make([]models.Transaction, 0, n)
	for i := 1; i <= n; i++ {
		date := f.DateRange(WindowStart, WindowEnd.AddDate(0, 0, 1))
		tx, err := models.NewTransaction(i).
			SetTime(date).
			SetAmountDecimal(decimal.NewFromFloat(f.Float64Range(5, 200))).
			SetCategory(f.RandomString(models.Categories)).
			SetPaymentMethod(f.RandomString(models.PaymentMethods)).
			SetLocation(f.RandomString(models.Locations)).
			SetMerchant(f.RandomString(models.Merchants)).
			SetDescription(f.RandomString(models.Descriptions)).
			Build()
		if err != nil {
			// amounts are drawn from [5, 200] so Build cannot reject them
			panic(err)
		}
		rows = append(rows, tx)
	}
	return models.NewTable(rows)
}

// Tx is a terse constructor for hand-written fixtures.
func Tx(id int, date, amount, category string) models.Transaction {
	tx, err := models.NewTransaction(id).
		SetDate(date).
		SetAmount(amount).
		SetCategory(category).
		SetPaymentMethod("Cash").
		SetLocation("Online").
		SetMerchant("Amazon").
		SetDescription("Gift shopping").
		Build()
	if err != nil {
		panic(err)
	}
	return tx
}
