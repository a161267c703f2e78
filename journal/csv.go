package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// CSVJournal writes one flat file per table under a directory. Rows are
// flushed as they are recorded, so a partially written run is still
// readable.
type CSVJournal struct {
	runs      *csv.Writer
	positions *csv.Writer
	orders    *csv.Writer
	equity    *csv.Writer

	files []*os.File
}

// NewCSV creates runs.csv, positions.csv, orders.csv and equity.csv under
// dir, with headers.
func NewCSV(dir string) (*CSVJournal, error) {
	j := &CSVJournal{}

	headers := []struct {
		name   string
		fields []string
		dest   **csv.Writer
	}{
		{"runs.csv", []string{
			"run_id", "created", "pair", "strategy", "dataset", "start_time", "end_time",
			"initial_base", "final_base", "profit", "return_pct", "total_fees",
			"trades", "wins", "losses", "max_drawdown"}, &j.runs},
		{"positions.csv", []string{
			"position_id", "run_id", "buy_time", "buy_price", "sell_time", "sell_price",
			"amount_spent", "amount_sold", "trade_profit", "percent_trade_profit", "holding_days"}, &j.positions},
		{"orders.csv", []string{
			"order_id", "run_id", "side", "time", "price", "base_amount", "quote_amount"}, &j.orders},
		{"equity.csv", []string{"run_id", "time", "equity"}, &j.equity},
	}

	for _, h := range headers {
		f, err := os.Create(filepath.Join(dir, h.name))
		if err != nil {
			j.Close()
			return nil, fmt.Errorf("journal: create %s: %w", h.name, err)
		}
		j.files = append(j.files, f)

		w := csv.NewWriter(f)
		if err := w.Write(h.fields); err != nil {
			j.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			j.Close()
			return nil, err
		}
		*h.dest = w
	}

	return j, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	return writeRow(j.runs, []string{
		r.RunID, d(r.Created), r.Pair, r.Strategy, r.Dataset, d(r.Start), d(r.End),
		f(r.InitialBase), f(r.FinalBase), f(r.Profit), f(r.ReturnPct), f(r.TotalFees),
		strconv.Itoa(r.Trades), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses), f(r.MaxDrawdown),
	})
}

func (j *CSVJournal) RecordPosition(p PositionRecord) error {
	return writeRow(j.positions, []string{
		p.PositionID, p.RunID,
		d(p.BuyTimestamp), f(p.BuyPrice), d(p.SellTimestamp), f(p.SellPrice),
		f(p.AmountSpent), f(p.AmountSold),
		f(p.TradeProfit), f(p.PercentTradeProfit), f(p.HoldingDays),
	})
}

func (j *CSVJournal) RecordOrder(o OrderRecord) error {
	return writeRow(j.orders, []string{
		o.OrderID, o.RunID, o.Side, d(o.Timestamp), f(o.Price),
		f(o.BaseAmount), f(o.QuoteAmount),
	})
}

func (j *CSVJournal) RecordEquity(e EquityPoint) error {
	return writeRow(j.equity, []string{e.RunID, d(e.Timestamp), f(e.Equity)})
}

func (j *CSVJournal) Close() error {
	var firstErr error
	for _, w := range []*csv.Writer{j.runs, j.positions, j.orders, j.equity} {
		if w == nil {
			continue
		}
		w.Flush()
		if err := w.Error(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range j.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func writeRow(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func d(x int64) string {
	return strconv.FormatInt(x, 10)
}
