package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, pair, strategy, dataset, start_time, end_time,
		 initial_base, final_base, profit, return_pct, total_fees,
		 trades, wins, losses, max_drawdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Pair, r.Strategy, r.Dataset, r.Start, r.End,
		r.InitialBase, r.FinalBase, r.Profit, r.ReturnPct, r.TotalFees,
		r.Trades, r.Wins, r.Losses, r.MaxDrawdown,
	)
	return err
}

func (j *SQLite) RecordPosition(p PositionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO positions
		(position_id, run_id, buy_time, buy_price, sell_time, sell_price,
		 amount_spent, amount_sold, trade_profit, percent_trade_profit, holding_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PositionID, p.RunID, p.BuyTimestamp, p.BuyPrice, p.SellTimestamp, p.SellPrice,
		p.AmountSpent, p.AmountSold, p.TradeProfit, p.PercentTradeProfit, p.HoldingDays,
	)
	return err
}

func (j *SQLite) RecordOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders
		(order_id, run_id, side, time, price, base_amount, quote_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.OrderID, o.RunID, o.Side, o.Timestamp, o.Price, o.BaseAmount, o.QuoteAmount,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquityPoint) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity) VALUES (?, ?, ?)`,
		e.RunID, e.Timestamp, e.Equity,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
