package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/spendcast/pkg/aggregate"
	"github.com/yurifrl/spendcast/pkg/config"
	"github.com/yurifrl/spendcast/pkg/csv"
	"github.com/yurifrl/spendcast/pkg/parser"
)

const outputSuffix = "-trend"

// Processor turns every transaction table in a directory into a monthly
// trend table.
type Processor struct {
	config *config.Config
	logger *log.Logger
	parser *parser.Parser
}

func NewProcessor(config *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		config: config,
		logger: logger,
		parser: parser.New(logger),
	}
}

// Result records the outcome for one input file.
type Result struct {
	Input  string
	Output string
	Err    error
}

// ProcessDirectory handles each supported file in dir. A file that fails is
// logged and reported in its Result; the others are still processed.
func (p *Processor) ProcessDirectory(dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	var results []Result
	for _, entry := range entries {
		if entry.IsDir() || !p.accepts(entry.Name()) {
			continue
		}
		inputPath := filepath.Join(dir, entry.Name())
		res := Result{Input: inputPath, Output: p.determineOutputPath(inputPath, entry.Name())}
		if res.Err = p.processFile(res.Input, res.Output); res.Err != nil {
			p.logger.Error("failed to process file", "file", entry.Name(), "error", res.Err)
		} else {
			p.logger.Info("processed file successfully", "input", res.Input, "output", res.Output)
		}
		results = append(results, res)
	}
	return results, nil
}

// accepts skips unsupported files and trend tables written by earlier runs.
func (p *Processor) accepts(name string) bool {
	if !parser.Supported(name) {
		return false
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return !strings.HasSuffix(base, outputSuffix)
}

func (p *Processor) determineOutputPath(inputPath, fileName string) string {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	if p.config.OutputDir != "" {
		return filepath.Join(p.config.OutputDir, baseName+outputSuffix+".csv")
	}
	return strings.TrimSuffix(inputPath, ext) + outputSuffix + ".csv"
}

func (p *Processor) processFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	table, err := p.parser.ProcessBytes(data, filepath.Base(inputPath))
	if err != nil {
		return err
	}
	p.logger.Debug("parsed file", "path", inputPath, "transactions", table.Len())

	trend := csv.Trend(filepath.Base(outputPath), aggregate.Trend(table))
	if _, err := trend.WriteAs(outputPath); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}
