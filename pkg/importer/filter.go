package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
)

// Filter narrows a table before analysis. Zero fields do not filter.
type Filter struct {
	Start    time.Time
	End      time.Time
	Min      decimal.Decimal
	Max      decimal.Decimal
	Category string
}

// NewFilter parses the CLI representation of a filter. Dates are YYYY-MM-DD.
func NewFilter(start, end string, minAmount, maxAmount float64, category string) (Filter, error) {
	f := Filter{
		Min:      decimal.NewFromFloat(minAmount),
		Max:      decimal.NewFromFloat(maxAmount),
		Category: strings.TrimSpace(category),
	}
	var err error
	if start != "" {
		if f.Start, err = models.ParseDate(start); err != nil {
			return Filter{}, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if end != "" {
		if f.End, err = models.ParseDate(end); err != nil {
			return Filter{}, fmt.Errorf("invalid --end: %w", err)
		}
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return Filter{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return f, nil
}

func (f Filter) Match(t models.Transaction) bool {
	if !f.Start.IsZero() && t.Date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.Date.After(f.End) {
		return false
	}
	if !f.Min.IsZero() && t.Amount.LessThan(f.Min) {
		return false
	}
	if !f.Max.IsZero() && t.Amount.GreaterThan(f.Max) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	return true
}

func (f Filter) Apply(t models.Table) models.Table {
	return t.Filter(f.Match)
}
