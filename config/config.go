// Package config loads and validates the run configuration from YAML or
// JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openbacktest/obt/wallet"
)

// Config represents the complete run configuration.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Wallet   WalletConfig   `json:"wallet" yaml:"wallet"`
	Run      RunConfig      `json:"run" yaml:"run"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	API      APIConfig      `json:"api" yaml:"api"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

// DataConfig names the bar series to replay.
type DataConfig struct {
	File string `json:"file" yaml:"file"`
	Pair string `json:"pair" yaml:"pair"`
}

// WalletConfig contains the starting ledger state. Fees are percentages,
// e.g. 0.1 for a 0.1% taker fee.
type WalletConfig struct {
	BaseSymbol      string  `json:"base_symbol" yaml:"base_symbol"`
	QuoteSymbol     string  `json:"quote_symbol" yaml:"quote_symbol"`
	BaseBalance     float64 `json:"base_balance" yaml:"base_balance"`
	QuoteBalance    float64 `json:"quote_balance,omitempty" yaml:"quote_balance,omitempty"`
	TakerFeePercent float64 `json:"taker_fee_percent" yaml:"taker_fee_percent"`
	MakerFeePercent float64 `json:"maker_fee_percent,omitempty" yaml:"maker_fee_percent,omitempty"`
}

// Settings converts the percentages into the proportional rates the wallet
// works with.
func (w WalletConfig) Settings() wallet.Settings {
	return wallet.Settings{
		BaseSymbol:   w.BaseSymbol,
		QuoteSymbol:  w.QuoteSymbol,
		BaseBalance:  w.BaseBalance,
		QuoteBalance: w.QuoteBalance,
		TakerFee:     w.TakerFeePercent / 100,
		MakerFee:     w.MakerFeePercent / 100,
	}
}

// RunConfig contains run parameters. Mode is "roundtrip" or "flex".
type RunConfig struct {
	Mode   string `json:"mode" yaml:"mode"`
	Finish bool   `json:"finish" yaml:"finish"`
}

// StrategyConfig names the strategy and its parameters.
type StrategyConfig struct {
	Name string `json:"name" yaml:"name"`

	FastPeriod int `json:"fast_period,omitempty" yaml:"fast_period,omitempty"`
	SlowPeriod int `json:"slow_period,omitempty" yaml:"slow_period,omitempty"`

	GridStepPercent float64 `json:"grid_step_percent,omitempty" yaml:"grid_step_percent,omitempty"`
	GridFraction    float64 `json:"grid_fraction,omitempty" yaml:"grid_fraction,omitempty"`
}

// JournalConfig contains journaling parameters. Type is "none", "csv" or
// "sqlite".
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"`
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// APIConfig controls the optional results server.
type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // "text" or "json"
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file, picking the format from the
// extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return fmt.Errorf("data.file is required")
	}
	if c.Wallet.BaseBalance < 0 || c.Wallet.QuoteBalance < 0 {
		return fmt.Errorf("wallet balances must not be negative")
	}
	if c.Wallet.BaseBalance == 0 && c.Wallet.QuoteBalance == 0 {
		return fmt.Errorf("wallet must start with a balance")
	}
	if c.Wallet.TakerFeePercent < 0 || c.Wallet.TakerFeePercent >= 100 {
		return fmt.Errorf("wallet.taker_fee_percent must be in [0, 100)")
	}
	if c.Run.Mode != "roundtrip" && c.Run.Mode != "flex" {
		return fmt.Errorf("run.mode must be 'roundtrip' or 'flex'")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.Dir == "" {
			return fmt.Errorf("journal.dir required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.API.Enabled && c.API.Addr == "" {
		return fmt.Errorf("api.addr required when the API is enabled")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			File: "./data/eth_1d.csv",
			Pair: "ETHUSDT",
		},
		Wallet: WalletConfig{
			BaseSymbol:      "USDT",
			QuoteSymbol:     "ETH",
			BaseBalance:     1000,
			TakerFeePercent: 0.1,
		},
		Run: RunConfig{
			Mode:   "roundtrip",
			Finish: true,
		},
		Strategy: StrategyConfig{
			Name:       "sma-cross",
			FastPeriod: 10,
			SlowPeriod: 30,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./runs.db",
		},
		API: APIConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
