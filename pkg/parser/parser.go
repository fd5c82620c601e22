package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/spendcast/pkg/models"
)

type FileType string

const (
	ExpenseCSV FileType = "expense_csv"
	ExpenseXLS FileType = "expense_xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ProcessBytes decodes a transaction table. The file type is picked from the
// filename extension.
func (p *Parser) ProcessBytes(data []byte, filename string) (models.Table, error) {
	raw, err := p.read(data, filename)
	if err != nil {
		return models.Table{}, err
	}
	return p.decode(raw, filename)
}

// ReadRecords returns the raw cells of the file, header row first.
func (p *Parser) ReadRecords(data []byte, filename string) ([][]string, error) {
	raw, err := p.read(data, filename)
	if err != nil {
		return nil, err
	}
	return raw.records, nil
}

// rawTable holds the non-blank records of a file together with the 1-based
// source line each one started on.
type rawTable struct {
	records [][]string
	lines   []int
}

func (p *Parser) read(data []byte, filename string) (rawTable, error) {
	fileType := DetectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	var (
		raw rawTable
		err error
	)
	switch fileType {
	case ExpenseCSV:
		raw, err = readCSV(data)
	case ExpenseXLS:
		raw, err = readXLS(data)
	default:
		return rawTable{}, &IngestionError{File: filename, Reason: fmt.Sprintf("unsupported file type %q", filepath.Ext(filename))}
	}
	if err != nil {
		return rawTable{}, &IngestionError{File: filename, Reason: "unreadable table", Err: err}
	}
	raw = dropBlankRows(raw)
	if len(raw.records) == 0 {
		return rawTable{}, &IngestionError{File: filename, Reason: "table is empty"}
	}
	return raw, nil
}

func DetectType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ExpenseCSV
	case ".xls":
		return ExpenseXLS
	}
	return ""
}

// Supported reports whether the file can be read by ProcessBytes.
func Supported(filename string) bool {
	return DetectType(filename) != ""
}

func dropBlankRows(raw rawTable) rawTable {
	var out rawTable
	for i, rec := range raw.records {
		for _, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				out.records = append(out.records, rec)
				out.lines = append(out.lines, raw.lines[i])
				break
			}
		}
	}
	return out
}
