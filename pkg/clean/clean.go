// Package clean checks a transaction table for duplicate rows and missing
// cells before analysis.
package clean

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yurifrl/spendcast/pkg/models"
)

// Status is the result of checking one transaction.
//
//   - Unique:    first occurrence of its content.
//   - Duplicate: same content as an earlier transaction.
type Status int

const (
	Unique Status = iota
	Duplicate
)

func (s Status) String() string {
	if s == Duplicate {
		return "duplicate"
	}
	return "unique"
}

// Entry links a transaction to the first transaction with identical content.
type Entry struct {
	Transaction models.Transaction
	FirstID     int // ID of the first occurrence, equal to Transaction.ID when Unique
	Status      Status
}

type Report struct {
	Entries    []Entry
	duplicates []Entry
}

// Key identifies a transaction by content. The ID is left out: the
// generator numbers every row, so IDs never repeat even for copied rows.
func Key(t models.Transaction) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		t.Date.Format(models.DateLayout),
		t.Amount.StringFixed(2),
		t.Category,
		t.PaymentMethod,
		t.Location,
		t.Merchant,
		t.Description,
	)
}

// Build walks the table in order and marks every repeat of earlier content
// as Duplicate.
func Build(t models.Table) *Report {
	seen := make(map[string]int, t.Len())
	r := &Report{Entries: make([]Entry, 0, t.Len())}
	t.Each(func(tx models.Transaction) {
		key := Key(tx)
		if first, ok := seen[key]; ok {
			e := Entry{Transaction: tx, FirstID: first, Status: Duplicate}
			r.Entries = append(r.Entries, e)
			r.duplicates = append(r.duplicates, e)
			return
		}
		seen[key] = tx.ID
		r.Entries = append(r.Entries, Entry{Transaction: tx, FirstID: tx.ID, Status: Unique})
	})
	return r
}

func (r *Report) UniqueCount() int {
	return len(r.Entries) - len(r.duplicates)
}

func (r *Report) DuplicateCount() int {
	return len(r.duplicates)
}

// Duplicates returns the Duplicate entries in table order.
func (r *Report) Duplicates() []Entry {
	return r.duplicates
}

// Deduplicated returns the table without repeated rows, keeping first
// occurrences in their original order.
func (r *Report) Deduplicated() models.Table {
	rows := make([]models.Transaction, 0, r.UniqueCount())
	for _, e := range r.Entries {
		if e.Status == Unique {
			rows = append(rows, e.Transaction)
		}
	}
	return models.NewTable(rows)
}

// ColumnCount is the number of empty cells found in one column.
type ColumnCount struct {
	Column  string
	Missing int
}

// MissingValues counts blank cells per column of a raw table whose first
// record is the header. Short rows count their absent cells as missing.
func MissingValues(records [][]string) []ColumnCount {
	if len(records) == 0 {
		return nil
	}
	header := records[0]
	out := make([]ColumnCount, len(header))
	for i, name := range header {
		out[i].Column = strings.TrimSpace(name)
	}
	for _, rec := range records[1:] {
		for i := range header {
			if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
				out[i].Missing++
			}
		}
	}
	return out
}

// TotalMissing sums the per-column counts.
func TotalMissing(counts []ColumnCount) int {
	n := 0
	for _, c := range counts {
		n += c.Missing
	}
	return n
}

// UnknownValue counts transactions whose field holds a value outside the
// known set for that column.
type UnknownValue struct {
	Column string
	Value  string
	Count  int
}

// UnknownValues lists category, payment method and location values that are
// not in the known sets, grouped by column and sorted by value. Blank cells
// are reported by MissingValues instead.
func UnknownValues(t models.Table) []UnknownValue {
	checks := []struct {
		column string
		value  func(models.Transaction) string
		known  func(string) bool
	}{
		{"Category", func(tx models.Transaction) string { return tx.Category }, models.IsKnownCategory},
		{"Payment Method", func(tx models.Transaction) string { return tx.PaymentMethod }, models.IsKnownPaymentMethod},
		{"Location", func(tx models.Transaction) string { return tx.Location }, models.IsKnownLocation},
	}
	var out []UnknownValue
	for _, c := range checks {
		counts := map[string]int{}
		t.Each(func(tx models.Transaction) {
			if v := c.value(tx); v != "" && !c.known(v) {
				counts[v]++
			}
		})
		values := make([]string, 0, len(counts))
		for v := range counts {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			out = append(out, UnknownValue{Column: c.column, Value: v, Count: counts[v]})
		}
	}
	return out
}
