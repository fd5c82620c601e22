package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/spendcast/pkg/forecast"
)

const (
	EnvPrefix = "SPENDCAST"

	SourceFile = "file"
	SourceYNAB = "ynab"
)

type ForecastConfig struct {
	Horizon      int     `mapstructure:"horizon"`
	LagDepth     int     `mapstructure:"lag_depth"`
	TestFraction float64 `mapstructure:"test_fraction"`
}

type YNABConfig struct {
	BudgetID  string `mapstructure:"budget_id"`
	AccountID string `mapstructure:"account_id"`
	TokenEnv  string `mapstructure:"token_env"`
}

type Config struct {
	Source    string               `mapstructure:"source"`
	OutputDir string               `mapstructure:"output_dir"`
	LogLevel  string               `mapstructure:"log_level"`
	Debug     bool                 `mapstructure:"debug"`
	Forecast  ForecastConfig       `mapstructure:"forecast"`
	Boost     forecast.BoostParams `mapstructure:"boost"`
	ARIMA     forecast.Order       `mapstructure:"arima"`
	YNAB      YNABConfig           `mapstructure:"ynab"`
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"source":    "source",
	"out":       "output_dir",
	"log-level": "log_level",
	"debug":     "debug",
}

func setDefaults(v *viper.Viper) {
	boost := forecast.DefaultBoostParams()
	order := forecast.DefaultOrder()

	v.SetDefault("source", SourceFile)
	v.SetDefault("output_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
	v.SetDefault("forecast.horizon", forecast.DefaultHorizon)
	v.SetDefault("forecast.lag_depth", forecast.DefaultLagDepth)
	v.SetDefault("forecast.test_fraction", 0.2)
	v.SetDefault("boost.n_estimators", boost.NEstimators)
	v.SetDefault("boost.max_depth", boost.MaxDepth)
	v.SetDefault("boost.learning_rate", boost.LearningRate)
	v.SetDefault("boost.lambda", boost.Lambda)
	v.SetDefault("boost.min_child_weight", boost.MinChildWeight)
	v.SetDefault("arima.p", order.P)
	v.SetDefault("arima.d", order.D)
	v.SetDefault("arima.q", order.Q)
	v.SetDefault("ynab.budget_id", "")
	v.SetDefault("ynab.account_id", "")
	v.SetDefault("ynab.token_env", "YNAB_TOKEN")
}

// Build layers defaults, the config file, SPENDCAST_* environment variables
// (a .env file next to the config or in the working directory is loaded
// first) and finally any flags that were set on the command line.
// An empty cfgFile looks for config.yaml in the working directory and is not
// an error when none exists.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(cfgFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(cfgFile string) error {
	paths := []string{".env"}
	if cfgFile != "" {
		paths = append([]string{filepath.Join(filepath.Dir(cfgFile), ".env")}, paths...)
	}
	for _, p := range paths {
		err := gotenv.Load(p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Source != SourceFile && c.Source != SourceYNAB {
		problems = append(problems, fmt.Sprintf("invalid source %q: must be %s or %s", c.Source, SourceFile, SourceYNAB))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log_level %q", c.LogLevel))
	}
	if c.Forecast.Horizon < 1 {
		problems = append(problems, "forecast.horizon must be at least 1")
	}
	if c.Forecast.LagDepth < 1 {
		problems = append(problems, "forecast.lag_depth must be at least 1")
	}
	if c.Forecast.TestFraction <= 0 || c.Forecast.TestFraction >= 1 {
		problems = append(problems, fmt.Sprintf("forecast.test_fraction %v must be between 0 and 1", c.Forecast.TestFraction))
	}
	if c.Boost.NEstimators < 1 || c.Boost.MaxDepth < 1 || c.Boost.LearningRate <= 0 {
		problems = append(problems, "boost.n_estimators, boost.max_depth and boost.learning_rate must be positive")
	}
	if c.Boost.Lambda < 0 {
		problems = append(problems, fmt.Sprintf("boost.lambda %v must not be negative", c.Boost.Lambda))
	}
	if c.Boost.MinChildWeight < 0 {
		problems = append(problems, fmt.Sprintf("boost.min_child_weight %v must not be negative", c.Boost.MinChildWeight))
	}
	if c.ARIMA.P < 0 || c.ARIMA.D < 0 || c.ARIMA.Q < 0 {
		problems = append(problems, fmt.Sprintf("invalid arima order %s", c.ARIMA))
	}
	if c.Source == SourceYNAB && (c.YNAB.BudgetID == "" || c.YNAB.AccountID == "") {
		problems = append(problems, "ynab source needs ynab.budget_id and ynab.account_id")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Level returns the parsed log level; Validate has already checked it.
func (c *Config) Level() log.Level {
	if c.Debug {
		return log.DebugLevel
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Token reads the YNAB personal access token from the configured variable.
func (c *Config) Token() (string, error) {
	token := os.Getenv(c.YNAB.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("YNAB token not set: export %s", c.YNAB.TokenEnv)
	}
	return token, nil
}

// BoostConfig assembles the forecast settings used by the lagged regressor.
func (c *Config) BoostConfig() forecast.BoostConfig {
	return forecast.BoostConfig{
		LagDepth:     c.Forecast.LagDepth,
		TestFraction: c.Forecast.TestFraction,
		Horizon:      c.Forecast.Horizon,
		Params:       c.Boost,
	}
}

// Default returns the configuration used when no file, environment or flag
// overrides anything.
func Default() *Config {
	return &Config{
		Source:   SourceFile,
		LogLevel: "info",
		Forecast: ForecastConfig{
			Horizon:      forecast.DefaultHorizon,
			LagDepth:     forecast.DefaultLagDepth,
			TestFraction: 0.2,
		},
		Boost: forecast.DefaultBoostParams(),
		ARIMA: forecast.DefaultOrder(),
		YNAB:  YNABConfig{TokenEnv: "YNAB_TOKEN"},
	}
}
