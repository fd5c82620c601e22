package executors

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"

	"github.com/yurifrl/spendcast/pkg/config"
	"github.com/yurifrl/spendcast/pkg/csv"
)

// Executor runs analyses over a transaction table, prints every resulting
// table to out and, when an output directory is configured, writes each
// one as CSV.
type Executor struct {
	logger *log.Logger
	config *config.Config
	out    io.Writer
	dumper *pp.PrettyPrinter
}

func New(logger *log.Logger, cfg *config.Config, out io.Writer) *Executor {
	dumper := pp.New()
	dumper.SetColoringEnabled(false)
	return &Executor{
		logger: logger,
		config: cfg,
		out:    out,
		dumper: dumper,
	}
}

// emit prints t and saves it.
func (e *Executor) emit(title string, t csv.Table) error {
	fmt.Fprintln(e.out, titleStyle.Render(title))
	fmt.Fprintln(e.out, render(t))
	fmt.Fprintln(e.out)
	return e.save(t)
}

// save writes t to the output directory without printing it. Long tables
// such as the daily series only go to disk.
func (e *Executor) save(t csv.Table) error {
	if e.config.OutputDir == "" {
		return nil
	}
	path, err := t.WriteFile(e.config.OutputDir)
	if err != nil {
		return err
	}
	e.logger.Debug("wrote table", "path", path, "rows", len(t.Rows))
	return nil
}

// dump pretty-prints v when debug output is enabled.
func (e *Executor) dump(label string, v any) {
	if !e.config.Debug {
		return
	}
	fmt.Fprintln(e.out, mutedStyle.Render(label))
	e.dumper.Fprintln(e.out, v)
}
