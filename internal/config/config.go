package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/model"
)

// FileName is the default config file name.
const FileName = "tally.yaml"

// Environment overrides, applied after the file is read.
const (
	EnvCurrency = "TALLY_CURRENCY"
	EnvLogLevel = "TALLY_LOG_LEVEL"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Currency   string      `yaml:"currency"`
	DateFormat string      `yaml:"date_format"`
	Kinds      KindsConfig `yaml:"kinds"`
	Categories []string    `yaml:"categories,omitempty"`
	Log        LogConfig   `yaml:"log"`
}

// KindsConfig lists the exact kind strings treated as income and expense.
type KindsConfig struct {
	Income  []string `yaml:"income"`
	Expense []string `yaml:"expense"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default. A .env
// file in the working directory, if present, is loaded into the environment
// and env overrides are applied last.
func LoadOrDefault(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvCurrency); ok {
		c.Currency = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// IncomeKinds returns the configured income markers.
func (c *Config) IncomeKinds() []model.Kind {
	return toKinds(c.Kinds.Income)
}

// ExpenseKinds returns the configured expense markers.
func (c *Config) ExpenseKinds() []model.Kind {
	return toKinds(c.Kinds.Expense)
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Currency:   "元",
		DateFormat: "2006-01-02",
		Kinds: KindsConfig{
			Income:  []string{string(model.KindIncome), "收入"},
			Expense: []string{string(model.KindExpense), "支出"},
		},
		Categories: []string{"Salary", "Food", "Entertainment", "Transport", "Rent"},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func toKinds(ss []string) []model.Kind {
	kinds := make([]model.Kind, len(ss))
	for i, s := range ss {
		kinds[i] = model.Kind(s)
	}
	return kinds
}
