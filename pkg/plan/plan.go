package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Analysis names accepted in a plan.
const (
	Summary = "summary"
	Trends  = "trends"
	Explore = "explore"
	ARIMA   = "arima"
	Boost   = "boost"
)

var Analyses = []string{Summary, Trends, Explore, ARIMA, Boost}

type YNABConfig struct {
	BudgetID  string `yaml:"budget_id"`
	AccountID string `yaml:"account_id"`
	TokenEnv  string `yaml:"token_env"`
}

type Plan struct {
	Source    string     `yaml:"source"`
	Input     string     `yaml:"input"`
	OutputDir string     `yaml:"output_dir"`
	YNAB      YNABConfig `yaml:"ynab"`
	Analyses  []string   `yaml:"analyses"`
}

// Load reads and validates a plan. A relative input path is resolved
// against the plan file's directory.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	if p.Input != "" && !filepath.IsAbs(p.Input) {
		p.Input = filepath.Join(filepath.Dir(path), p.Input)
	}
	return &p, nil
}

func (p *Plan) validate() error {
	if len(p.Analyses) == 0 {
		return fmt.Errorf("plan has no analyses")
	}
	for i, a := range p.Analyses {
		a = strings.ToLower(strings.TrimSpace(a))
		if !slices.Contains(Analyses, a) {
			return fmt.Errorf("unknown analysis %q (want one of %s)", a, strings.Join(Analyses, ", "))
		}
		p.Analyses[i] = a
	}
	switch p.Source {
	case "", "file":
		if p.Input == "" {
			return fmt.Errorf("file source needs an input")
		}
	case "ynab":
		if p.YNAB.BudgetID == "" || p.YNAB.AccountID == "" {
			return fmt.Errorf("ynab source needs budget_id and account_id")
		}
	default:
		return fmt.Errorf("unknown source %q", p.Source)
	}
	return nil
}

func (p *Plan) Has(analysis string) bool {
	return slices.Contains(p.Analyses, analysis)
}

func (p *Plan) Print(w io.Writer) {
	source := p.Source
	if source == "" {
		source = "file"
	}
	fmt.Fprintf(w, "Source: %s\n", source)
	if source == "ynab" {
		fmt.Fprintf(w, "YNAB budget: %s account: %s\n", p.YNAB.BudgetID, p.YNAB.AccountID)
	} else {
		fmt.Fprintf(w, "Input: %s\n", p.Input)
	}
	if p.OutputDir != "" {
		fmt.Fprintf(w, "Output: %s\n", p.OutputDir)
	}
	for i, a := range p.Analyses {
		fmt.Fprintf(w, "[%d] %s\n", i+1, a)
	}
}
