package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yurifrl/spendcast/pkg/models"
)

// Column names of the transaction table.
const (
	ColTransactionID   = "Transaction ID"
	ColDate            = "Date"
	ColAmount          = "Amount"
	ColCategory        = "Category"
	ColPaymentMethod   = "Payment Method"
	ColLocation        = "Location"
	ColMerchant        = "Merchant"
	ColDescription     = "Description"
	ColTransactionType = "Transaction Type"
	ColDayOfWeek       = "Day of Week"
)

// Columns is the full header written by the dataset generator. Transaction
// Type and Day of Week are derived again on decode rather than trusted.
var Columns = []string{
	ColTransactionID, ColDate, ColAmount, ColCategory, ColPaymentMethod,
	ColLocation, ColMerchant, ColDescription, ColTransactionType, ColDayOfWeek,
}

var requiredColumns = []string{ColDate, ColAmount, ColCategory}

type header map[string]int

func parseHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

func (h header) index(col string) (int, bool) {
	i, ok := h[strings.ToLower(col)]
	return i, ok
}

// get returns the trimmed cell for col, or "" when the column or cell is absent.
func (h header) get(rec []string, col string) string {
	i, ok := h.index(col)
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Decode turns raw records (header first) into a table. Any malformed row
// fails the whole table.
func (p *Parser) Decode(records [][]string, filename string) (models.Table, error) {
	return p.decode(rawTable{records: records, lines: sequentialLines(len(records))}, filename)
}

func sequentialLines(n int) []int {
	lines := make([]int, n)
	for i := range lines {
		lines[i] = i + 1
	}
	return lines
}

func (p *Parser) decode(raw rawTable, filename string) (models.Table, error) {
	records := raw.records
	if len(records) == 0 {
		return models.Table{}, &IngestionError{File: filename, Reason: "table is empty"}
	}
	h := parseHeader(records[0])
	for _, col := range requiredColumns {
		if _, ok := h.index(col); !ok {
			return models.Table{}, &IngestionError{File: filename, Line: raw.lines[0], Reason: fmt.Sprintf("missing column %q", col)}
		}
	}
	_, hasID := h.index(ColTransactionID)
	spreadsheet := DetectType(filename) == ExpenseXLS

	txs := make([]models.Transaction, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		line := raw.lines[i]

		id := i
		if hasID {
			cell := h.get(rec, ColTransactionID)
			v, ok := parseID(cell, spreadsheet)
			if !ok {
				return models.Table{}, &IngestionError{File: filename, Line: line, Reason: fmt.Sprintf("invalid transaction id %q", cell)}
			}
			id = v
		}

		date := h.get(rec, ColDate)
		if spreadsheet {
			if _, err := models.ParseDate(date); err != nil {
				if d, ok := serialDate(date); ok {
					date = d
				}
			}
		}

		tx, err := models.NewTransaction(id).
			SetDate(date).
			SetAmount(h.get(rec, ColAmount)).
			SetCategory(h.get(rec, ColCategory)).
			SetPaymentMethod(h.get(rec, ColPaymentMethod)).
			SetLocation(h.get(rec, ColLocation)).
			SetMerchant(h.get(rec, ColMerchant)).
			SetDescription(h.get(rec, ColDescription)).
			Build()
		if err != nil {
			return models.Table{}, &IngestionError{File: filename, Line: line, Reason: "malformed row", Err: err}
		}
		txs = append(txs, tx)
	}

	p.logger.Info("parsed transaction table", "file", filename, "transactions", len(txs))
	return models.NewTable(txs), nil
}

// parseID reads an integer ID. Spreadsheets store every number as a float,
// so there a whole value such as "12.0" is accepted too.
func parseID(s string, spreadsheet bool) (int, bool) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if !spreadsheet {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxExactID {
		return 0, false
	}
	return int(f), true
}

// maxExactID is the largest whole float64 that converts to int without loss.
const maxExactID = 1 << 53

// Header returns the header row of raw records.
func Header(records [][]string) []string {
	if len(records) == 0 {
		return nil
	}
	return records[0]
}
