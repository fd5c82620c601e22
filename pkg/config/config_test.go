package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func TestBuildDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Build("", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := Default()
	if cfg.Source != want.Source || cfg.LogLevel != want.LogLevel {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Forecast != want.Forecast {
		t.Errorf("expected forecast %+v, got %+v", want.Forecast, cfg.Forecast)
	}
	if cfg.Boost != want.Boost || cfg.ARIMA != want.ARIMA {
		t.Errorf("expected model defaults %+v %+v, got %+v %+v", want.Boost, want.ARIMA, cfg.Boost, cfg.ARIMA)
	}
	if cfg.YNAB.TokenEnv != "YNAB_TOKEN" {
		t.Errorf("expected YNAB_TOKEN, got %q", cfg.YNAB.TokenEnv)
	}
}

func TestBuildLayers(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfgFile := filepath.Join(dir, "spendcast.yaml")
	content := `
output_dir: from-file
log_level: warn
forecast:
  horizon: 6
boost:
  max_depth: 4
arima:
  p: 2
`
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPENDCAST_FORECAST_HORIZON", "9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out", "", "")
	flags.String("log-level", "", "")
	if err := flags.Parse([]string{"--out", "from-flag"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Build(cfgFile, flags)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.OutputDir != "from-flag" {
		t.Errorf("flag should win over file, got %q", cfg.OutputDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("unset flag should not override file, got %q", cfg.LogLevel)
	}
	if cfg.Forecast.Horizon != 9 {
		t.Errorf("environment should win over file, got %d", cfg.Forecast.Horizon)
	}
	if cfg.Boost.MaxDepth != 4 || cfg.Boost.NEstimators != 100 {
		t.Errorf("expected file value merged with defaults, got %+v", cfg.Boost)
	}
	if cfg.ARIMA.P != 2 || cfg.ARIMA.D != 1 {
		t.Errorf("unexpected order %s", cfg.ARIMA)
	}
	if cfg.Level() != log.WarnLevel {
		t.Errorf("expected warn level, got %v", cfg.Level())
	}
}

func TestBuildLoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	const key = "SPENDCAST_YNAB_BUDGET_ID"
	t.Cleanup(func() { os.Unsetenv(key) })
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=budget-from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Build("", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.YNAB.BudgetID != "budget-from-dotenv" {
		t.Errorf("expected budget from .env, got %q", cfg.YNAB.BudgetID)
	}
}

func TestBuildMissingConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Build("does-not-exist.yaml", nil); err == nil {
		t.Error("expected error for an explicit missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown source", func(c *Config) { c.Source = "s3" }, `invalid source "s3"`},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, `invalid log_level "loud"`},
		{"zero horizon", func(c *Config) { c.Forecast.Horizon = 0 }, "forecast.horizon"},
		{"test fraction one", func(c *Config) { c.Forecast.TestFraction = 1 }, "forecast.test_fraction"},
		{"negative lambda", func(c *Config) { c.Boost.Lambda = -0.5 }, "boost.lambda"},
		{"negative min_child_weight", func(c *Config) { c.Boost.MinChildWeight = -1 }, "boost.min_child_weight"},
		{"zero lambda", func(c *Config) { c.Boost.Lambda = 0 }, ""},
		{"negative order", func(c *Config) { c.ARIMA.D = -1 }, "invalid arima order"},
		{"ynab without ids", func(c *Config) { c.Source = SourceYNAB }, "ynab.budget_id"},
		{"ynab with ids", func(c *Config) {
			c.Source = SourceYNAB
			c.YNAB.BudgetID, c.YNAB.AccountID = "b", "a"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestToken(t *testing.T) {
	cfg := Default()
	cfg.YNAB.TokenEnv = "SPENDCAST_TEST_TOKEN"
	t.Setenv("SPENDCAST_TEST_TOKEN", "")
	if _, err := cfg.Token(); err == nil {
		t.Error("expected error for empty token")
	}
	t.Setenv("SPENDCAST_TEST_TOKEN", "secret")
	if tok, err := cfg.Token(); err != nil || tok != "secret" {
		t.Errorf("expected secret, got %q (%v)", tok, err)
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
