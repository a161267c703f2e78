package journal

import (
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbacktest/obt/backtest"
	"github.com/openbacktest/obt/market"
	"github.com/openbacktest/obt/stats"
	"github.com/openbacktest/obt/strategies"
	"github.com/openbacktest/obt/wallet"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "runs.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','positions','orders','equity')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["positions"])
	assert.True(t, found["orders"])
	assert.True(t, found["equity"])
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	rec := RunRecord{
		RunID:       "R1",
		Created:     1700000000000,
		Pair:        "ETHUSDT",
		Strategy:    "sma-cross",
		Dataset:     "eth_1d.csv",
		Start:       86_400_000,
		End:         4 * 86_400_000,
		InitialBase: 100,
		FinalBase:   117.612,
		Profit:      17.612,
		ReturnPct:   17.612,
		TotalFees:   1.288,
		Trades:      1,
		Wins:        1,
		MaxDrawdown: -5.5,
	}
	require.NoError(t, j.RecordRun(rec))

	got, err := j.GetRun("R1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = j.GetRun("missing")
	assert.Error(t, err)

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "R1", runs[0].RunID)
}

func TestSQLitePositionsAndEquityByRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	require.NoError(t, j.RecordPosition(PositionRecord{
		PositionID: "P2", RunID: "R1", SellTimestamp: 200, TradeProfit: -3,
	}))
	require.NoError(t, j.RecordPosition(PositionRecord{
		PositionID: "P1", RunID: "R1", SellTimestamp: 100, TradeProfit: 5,
	}))
	require.NoError(t, j.RecordPosition(PositionRecord{
		PositionID: "P3", RunID: "other", SellTimestamp: 50,
	}))

	got, err := j.ListPositionsByRun("R1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].PositionID, "ordered by sell time")
	assert.Equal(t, "P2", got[1].PositionID)

	require.NoError(t, j.RecordEquity(EquityPoint{RunID: "R1", Timestamp: 100, Equity: 100}))
	require.NoError(t, j.RecordEquity(EquityPoint{RunID: "R1", Timestamp: 200, Equity: 110}))

	eq, err := j.ListEquityByRun("R1")
	require.NoError(t, err)
	require.Len(t, eq, 2)
	assert.Equal(t, 110.0, eq[1].Equity)
}

func TestRecordRunPersistsWholeResult(t *testing.T) {
	t.Parallel()

	log := logrus.New()
	log.SetOutput(io.Discard)

	bars := []market.Bar{
		{Timestamp: 1 * 86_400_000, Close: 10},
		{Timestamp: 2 * 86_400_000, Close: 12},
	}
	s, err := market.NewSeries("ETHUSDT", bars)
	require.NoError(t, err)

	e := backtest.New(s, log)
	e.RegisterConditions(
		func(_ *market.Series, i int) bool { return i == 0 },
		func(_ *market.Series, i int) bool { return i == 1 },
	)
	res, err := e.Run(backtest.Options{Wallet: wallet.Settings{BaseBalance: 100}})
	require.NoError(t, err)
	rep := stats.Compute(res)

	j, _ := newTestSQLite(t)
	runID, err := RecordRun(j, RunMeta{Strategy: "test", Dataset: "inline"}, res, rep)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := j.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "ETHUSDT", run.Pair)
	assert.Equal(t, 1, run.Trades)
	assert.InDelta(t, 20.0, run.Profit, 1e-9)

	positions, err := j.ListPositionsByRun(runID)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 10.0, positions[0].BuyPrice)
	assert.Equal(t, 12.0, positions[0].SellPrice)

	eq, err := j.ListEquityByRun(runID)
	require.NoError(t, err)
	assert.Len(t, eq, 2)
}

func TestRecordFlexRunPersistsOrders(t *testing.T) {
	t.Parallel()

	log := logrus.New()
	log.SetOutput(io.Discard)

	bars := []market.Bar{
		{Timestamp: 1 * 86_400_000, Close: 10},
		{Timestamp: 2 * 86_400_000, Close: 20},
	}
	s, err := market.NewSeries("ETHUSDT", bars)
	require.NoError(t, err)

	e := backtest.New(s, log)
	e.RegisterStrategy(func(_ *market.Series, i int) *strategies.Intent {
		if i == 0 {
			return &strategies.Intent{Side: wallet.Buy, Size: wallet.Fraction(50)}
		}
		return &strategies.Intent{Side: wallet.Sell, Size: wallet.All()}
	})
	res, err := e.RunFlex(backtest.Options{Wallet: wallet.Settings{BaseBalance: 100}})
	require.NoError(t, err)
	rep := stats.ComputeFlex(res)

	j, _ := newTestSQLite(t)
	runID, err := RecordFlexRun(j, RunMeta{Strategy: "grid", Dataset: "inline"}, res, rep)
	require.NoError(t, err)

	orders, err := j.ListOrdersByRun(runID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "buy", orders[0].Side)
	assert.Equal(t, "sell", orders[1].Side)
}
