package journal

import (
	"fmt"
	"time"

	"github.com/openbacktest/obt/backtest"
	"github.com/openbacktest/obt/internal/id"
	"github.com/openbacktest/obt/stats"
)

// RunMeta carries the run identity a wallet result doesn't know about.
type RunMeta struct {
	Strategy string
	Dataset  string
}

// RecordRun persists a finished round-trip run: the summary row, every
// closed position and the equity curve. It returns the generated run ID.
func RecordRun(j Journal, meta RunMeta, res *backtest.Result, rep *stats.Report) (string, error) {
	runID := id.New()

	rec := RunRecord{
		RunID:       runID,
		Created:     time.Now().UnixMilli(),
		Pair:        res.Series.Pair(),
		Strategy:    meta.Strategy,
		Dataset:     meta.Dataset,
		Start:       res.Series.First().Timestamp,
		End:         res.Series.Last().Timestamp,
		InitialBase: rep.InitialBase,
		FinalBase:   rep.FinalBase,
		Profit:      rep.Profit,
		ReturnPct:   rep.PercentProfit,
		TotalFees:   rep.TotalFees,
		Trades:      rep.TradeCount,
		Wins:        rep.PositiveCount,
		Losses:      rep.NegativeCount,
		MaxDrawdown: rep.Drawdown.Percent,
	}
	if err := j.RecordRun(rec); err != nil {
		return "", fmt.Errorf("journal: record run: %w", err)
	}

	for _, p := range res.Wallet.Book().Positions() {
		err := j.RecordPosition(PositionRecord{
			PositionID:         p.ID,
			RunID:              runID,
			BuyTimestamp:       p.BuyTimestamp,
			BuyPrice:           p.BuyPrice,
			SellTimestamp:      p.SellTimestamp,
			SellPrice:          p.SellPrice,
			AmountSpent:        p.AmountSpent,
			AmountSold:         p.AmountSold,
			TradeProfit:        p.TradeProfit,
			PercentTradeProfit: p.PercentTradeProfit,
			HoldingDays:        p.HoldingDays,
		})
		if err != nil {
			return "", fmt.Errorf("journal: record position %s: %w", p.ID, err)
		}
	}

	if err := recordEquity(j, runID, res); err != nil {
		return "", err
	}
	return runID, nil
}

// RecordFlexRun persists a finished free-form run: the summary row, every
// order and the equity curve. It returns the generated run ID.
func RecordFlexRun(j Journal, meta RunMeta, res *backtest.Result, rep *stats.FlexReport) (string, error) {
	runID := id.New()

	rec := RunRecord{
		RunID:       runID,
		Created:     time.Now().UnixMilli(),
		Pair:        res.Series.Pair(),
		Strategy:    meta.Strategy,
		Dataset:     meta.Dataset,
		Start:       res.Series.First().Timestamp,
		End:         res.Series.Last().Timestamp,
		InitialBase: rep.InitialBase,
		FinalBase:   rep.FinalBase,
		Profit:      rep.Profit,
		ReturnPct:   rep.PercentProfit,
		TotalFees:   rep.TotalFees,
		Trades:      rep.OrderCount,
		MaxDrawdown: rep.Drawdown.Percent,
	}
	if err := j.RecordRun(rec); err != nil {
		return "", fmt.Errorf("journal: record run: %w", err)
	}

	for _, o := range res.Flex.Book().Orders() {
		err := j.RecordOrder(OrderRecord{
			OrderID:     o.ID,
			RunID:       runID,
			Side:        o.Side.String(),
			Timestamp:   o.Timestamp,
			Price:       o.Price,
			BaseAmount:  o.BaseAmount,
			QuoteAmount: o.QuoteAmount,
		})
		if err != nil {
			return "", fmt.Errorf("journal: record order %s: %w", o.ID, err)
		}
	}

	if err := recordEquity(j, runID, res); err != nil {
		return "", err
	}
	return runID, nil
}

func recordEquity(j Journal, runID string, res *backtest.Result) error {
	for i, eq := range res.Equity {
		err := j.RecordEquity(EquityPoint{
			RunID:     runID,
			Timestamp: res.Series.Bar(i).Timestamp,
			Equity:    eq,
		})
		if err != nil {
			return fmt.Errorf("journal: record equity: %w", err)
		}
	}
	return nil
}
