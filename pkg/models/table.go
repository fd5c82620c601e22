package models

import "time"

// Table is a read-only view over a set of transactions. Operations that
// derive data return new values and leave the receiver untouched.
type Table struct {
	rows []Transaction
}

// NewTable copies rows so later changes to the caller's slice do not leak in.
func NewTable(rows []Transaction) Table {
	cp := make([]Transaction, len(rows))
	copy(cp, rows)
	return Table{rows: cp}
}

func (t Table) Len() int { return len(t.rows) }

// Rows returns a copy of the underlying transactions.
func (t Table) Rows() []Transaction {
	cp := make([]Transaction, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Each calls fn for every transaction in input order.
func (t Table) Each(fn func(Transaction)) {
	for _, tx := range t.rows {
		fn(tx)
	}
}

func (t Table) Filter(keep func(Transaction) bool) Table {
	out := make([]Transaction, 0, len(t.rows))
	for _, tx := range t.rows {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return Table{rows: out}
}

// DateRange returns the earliest and latest transaction dates. ok is false
// for an empty table.
func (t Table) DateRange() (first, last time.Time, ok bool) {
	if len(t.rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = t.rows[0].Date, t.rows[0].Date
	for _, tx := range t.rows[1:] {
		if tx.Date.Before(first) {
			first = tx.Date
		}
		if tx.Date.After(last) {
			last = tx.Date
		}
	}
	return first, last, true
}
