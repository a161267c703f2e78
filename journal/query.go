package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns a single run record by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, pair, strategy, dataset, start_time, end_time,
		       initial_base, final_base, profit, return_pct, total_fees,
		       trades, wins, losses, max_drawdown
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID, &rec.Created, &rec.Pair, &rec.Strategy, &rec.Dataset,
		&rec.Start, &rec.End,
		&rec.InitialBase, &rec.FinalBase, &rec.Profit, &rec.ReturnPct, &rec.TotalFees,
		&rec.Trades, &rec.Wins, &rec.Losses, &rec.MaxDrawdown,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns every recorded run, newest first.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, pair, strategy, dataset, start_time, end_time,
		       initial_base, final_base, profit, return_pct, total_fees,
		       trades, wins, losses, max_drawdown
		FROM runs
		ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID, &rec.Created, &rec.Pair, &rec.Strategy, &rec.Dataset,
			&rec.Start, &rec.End,
			&rec.InitialBase, &rec.FinalBase, &rec.Profit, &rec.ReturnPct, &rec.TotalFees,
			&rec.Trades, &rec.Wins, &rec.Losses, &rec.MaxDrawdown,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPositionsByRun returns a run's positions ordered by sell time.
func (j *SQLite) ListPositionsByRun(runID string) ([]PositionRecord, error) {
	rows, err := j.db.Query(`
		SELECT position_id, run_id, buy_time, buy_price, sell_time, sell_price,
		       amount_spent, amount_sold, trade_profit, percent_trade_profit, holding_days
		FROM positions
		WHERE run_id = ?
		ORDER BY sell_time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PositionRecord
	for rows.Next() {
		var rec PositionRecord
		if err := rows.Scan(
			&rec.PositionID, &rec.RunID,
			&rec.BuyTimestamp, &rec.BuyPrice, &rec.SellTimestamp, &rec.SellPrice,
			&rec.AmountSpent, &rec.AmountSold,
			&rec.TradeProfit, &rec.PercentTradeProfit, &rec.HoldingDays,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOrdersByRun returns a run's orders in time order.
func (j *SQLite) ListOrdersByRun(runID string) ([]OrderRecord, error) {
	rows, err := j.db.Query(`
		SELECT order_id, run_id, side, time, price, base_amount, quote_amount
		FROM orders
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(
			&rec.OrderID, &rec.RunID, &rec.Side, &rec.Timestamp, &rec.Price,
			&rec.BaseAmount, &rec.QuoteAmount,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityByRun returns a run's equity curve in time order.
func (j *SQLite) ListEquityByRun(runID string) ([]EquityPoint, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, equity
		FROM equity
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var rec EquityPoint
		if err := rows.Scan(&rec.RunID, &rec.Timestamp, &rec.Equity); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
