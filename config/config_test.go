package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errmsg string
	}{
		{"missing data file", func(c *Config) { c.Data.File = "" }, "data.file"},
		{"no starting balance", func(c *Config) { c.Wallet.BaseBalance = 0 }, "balance"},
		{"negative fee", func(c *Config) { c.Wallet.TakerFeePercent = -1 }, "taker_fee_percent"},
		{"bad mode", func(c *Config) { c.Run.Mode = "live" }, "run.mode"},
		{"missing strategy", func(c *Config) { c.Strategy.Name = "" }, "strategy.name"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"csv without dir", func(c *Config) { c.Journal.Type = "csv"; c.Journal.Dir = "" }, "journal.dir"},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }, "db_path"},
		{"api without addr", func(c *Config) { c.API.Enabled = true; c.API.Addr = "" }, "api.addr"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errmsg)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
data:
  file: ./eth.csv
  pair: ETHUSDT
wallet:
  base_symbol: USDT
  quote_symbol: ETH
  base_balance: 500
  taker_fee_percent: 0.1
run:
  mode: flex
strategy:
  name: grid
  grid_step_percent: 5
  grid_fraction: 10
journal:
  type: none
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "flex", cfg.Run.Mode)
	assert.Equal(t, "grid", cfg.Strategy.Name)
	assert.Equal(t, 500.0, cfg.Wallet.BaseBalance)

	st := cfg.Wallet.Settings()
	assert.InDelta(t, 0.001, st.TakerFee, 1e-12, "percent converted to rate")
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  mode: live\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Default()
	cfg.Data.Pair = "BTCUSDT"

	for _, name := range []string{"c.yaml", "c.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, got, name)
	}
}
