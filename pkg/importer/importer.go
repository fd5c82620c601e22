package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/spendcast/pkg/config"
	"github.com/yurifrl/spendcast/pkg/models"
	"github.com/yurifrl/spendcast/pkg/parser"
	"github.com/yurifrl/spendcast/pkg/ynab"
)

// Remote is a transaction source living behind an API.
type Remote interface {
	Transactions(budgetID, accountID string, since time.Time) (models.Table, error)
}

// Importer brings a transaction table into the application from a file or
// from YNAB, depending on the configured source. It knows nothing about the
// CLI so plans and batch runs share it.
type Importer struct {
	cfg    *config.Config
	logger *log.Logger
	parser *parser.Parser
	remote Remote
}

func New(cfg *config.Config, logger *log.Logger) *Importer {
	return &Importer{cfg: cfg, logger: logger, parser: parser.New(logger)}
}

// WithRemote replaces the YNAB client, mainly for tests.
func (i *Importer) WithRemote(r Remote) *Importer {
	i.remote = r
	return i
}

// Load reads the table and applies filter. input is a file path for the file
// source and ignored for ynab.
func (i *Importer) Load(input string, filter Filter) (models.Table, error) {
	var (
		table models.Table
		err   error
	)
	switch i.cfg.Source {
	case config.SourceYNAB:
		table, err = i.loadYNAB(filter.Start)
	case config.SourceFile, "":
		table, err = i.LoadFile(input)
	default:
		return models.Table{}, fmt.Errorf("unknown source %q", i.cfg.Source)
	}
	if err != nil {
		return models.Table{}, err
	}

	filtered := filter.Apply(table)
	if filtered.Len() != table.Len() {
		i.logger.Debug("filtered transactions", "before", table.Len(), "after", filtered.Len())
	}
	return filtered, nil
}

// LoadFile parses a CSV or XLS transaction table.
func (i *Importer) LoadFile(path string) (models.Table, error) {
	if path == "" {
		return models.Table{}, fmt.Errorf("no input file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to read file: %w", err)
	}
	return i.parser.ProcessBytes(data, filepath.Base(path))
}

// Records returns the raw cells of a transaction file, header first, for
// checks that need to see blank cells.
func (i *Importer) Records(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return i.parser.ReadRecords(data, filepath.Base(path))
}

func (i *Importer) loadYNAB(since time.Time) (models.Table, error) {
	if i.remote == nil {
		token, err := i.cfg.Token()
		if err != nil {
			return models.Table{}, err
		}
		i.remote = ynab.New(token, i.logger)
	}
	return i.remote.Transactions(i.cfg.YNAB.BudgetID, i.cfg.YNAB.AccountID, since)
}
