package main

import (
	"github.com/yurifrl/spendcast/pkg/config"
	"github.com/yurifrl/spendcast/pkg/importer"
	"github.com/yurifrl/spendcast/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	minAmount float64
	maxAmount float64
	category  string
}

func (f *filters) toFilter() (importer.Filter, error) {
	return importer.NewFilter(f.startDate, f.endDate, f.minAmount, f.maxAmount, f.category)
}

// load reads the table selected by the configuration, applies the CLI
// filters and, for files, also returns the raw cells.
func (a *app) load(input string) (models.Table, [][]string, error) {
	filter, err := cliFilters.toFilter()
	if err != nil {
		return models.Table{}, nil, err
	}
	table, err := a.importer.Load(input, filter)
	if err != nil {
		return models.Table{}, nil, err
	}
	if a.cfg.Source == config.SourceYNAB {
		return table, nil, nil
	}
	records, err := a.importer.Records(input)
	if err != nil {
		return models.Table{}, nil, err
	}
	return table, records, nil
}
