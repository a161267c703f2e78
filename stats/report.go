// Package stats derives performance statistics from a finished run: the
// trade book, the equity curve and the series boundary prices. Reports are
// computed in a single pass, never mutate their inputs, and are plain
// immutable values afterwards, so renderers and servers can read them from
// any goroutine.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/openbacktest/obt/backtest"
	"github.com/openbacktest/obt/wallet"
)

const millisPerDay = 86_400_000

// Report is the full analytics set for a round-trip run.
type Report struct {
	Pair        string
	BaseSymbol  string
	QuoteSymbol string

	InitialBase  float64
	FinalBase    float64
	InitialQuote float64
	FinalQuote   float64
	TotalFees    float64

	Profit        float64
	PercentProfit float64

	TradeCount    int
	PositiveCount int
	NegativeCount int
	PositiveRatio float64
	NegativeRatio float64

	// Extremes by percent profit; earliest seen wins ties. Nil when the
	// book is empty.
	Best  *wallet.Position
	Worst *wallet.Position

	AveragePositive        float64
	AveragePositivePercent float64
	AverageNegative        float64
	AverageNegativePercent float64
	AveragePerTrade        float64
	AveragePerTradePercent float64

	Start      int64
	End        int64
	TotalDays  float64
	FirstClose float64
	LastClose  float64

	BuyAndHoldProfit    float64
	BuyAndHoldPercent   float64
	VsBuyAndHold        float64
	VsBuyAndHoldPercent float64

	AverageProfitPerDay        float64
	AveragePercentProfitPerDay float64

	ExposureDays           float64
	PercentExposure        float64
	AverageExposureDays    float64
	AveragePercentExposure float64

	Drawdown Drawdown
}

// NoTrades distinguishes "the strategy never traded" from "zero profit".
func (r *Report) NoTrades() bool { return r.TradeCount == 0 }

// Compute derives the full report from a finished round-trip run. It always
// recomputes from scratch, so repeated calls on the same frozen result are
// idempotent.
func Compute(res *backtest.Result) *Report {
	w := res.Wallet
	series := res.Series

	r := &Report{
		Pair:         series.Pair(),
		BaseSymbol:   w.BaseSymbol,
		QuoteSymbol:  w.QuoteSymbol,
		InitialBase:  w.InitialBase,
		FinalBase:    w.Base,
		InitialQuote: w.InitialQuote,
		FinalQuote:   w.Quote,
		TotalFees:    w.TotalFees,
		TradeCount:   w.Book().Len(),
	}
	if r.NoTrades() {
		return r
	}

	r.Profit = w.Profit()
	r.PercentProfit = safeDiv(100*r.Profit, w.InitialBase)

	var (
		positives, positivesPct []float64
		negatives, negativesPct []float64
		all, allPct             []float64
		exposures               []float64
	)

	for _, pos := range w.Book().Positions() {
		switch {
		case pos.TradeProfit > 0:
			positives = append(positives, pos.TradeProfit)
			positivesPct = append(positivesPct, pos.PercentTradeProfit)
			r.PositiveCount++
		case pos.TradeProfit < 0:
			negatives = append(negatives, pos.TradeProfit)
			negativesPct = append(negativesPct, pos.PercentTradeProfit)
			r.NegativeCount++
		}

		all = append(all, pos.TradeProfit)
		allPct = append(allPct, pos.PercentTradeProfit)

		if r.Best == nil {
			r.Best = pos
			r.Worst = pos
		}
		if pos.PercentTradeProfit > r.Best.PercentTradeProfit {
			r.Best = pos
		}
		if pos.PercentTradeProfit < r.Worst.PercentTradeProfit {
			r.Worst = pos
		}

		r.ExposureDays += pos.HoldingDays
		exposures = append(exposures, pos.HoldingDays)
	}

	r.PositiveRatio = safeDiv(100*float64(r.PositiveCount), float64(r.TradeCount))
	r.NegativeRatio = safeDiv(100*float64(r.NegativeCount), float64(r.TradeCount))

	// An empty bucket averages to zero by convention, not to an error.
	r.AveragePositive = mean(positives)
	r.AveragePositivePercent = mean(positivesPct)
	r.AverageNegative = mean(negatives)
	r.AverageNegativePercent = mean(negativesPct)
	r.AveragePerTrade = mean(all)
	r.AveragePerTradePercent = mean(allPct)

	r.Start = series.First().Timestamp
	r.End = series.Last().Timestamp
	r.TotalDays = float64(r.End-r.Start) / millisPerDay
	r.FirstClose = series.First().Close
	r.LastClose = series.Last().Close

	r.BuyAndHoldProfit = safeDiv(w.InitialBase*r.LastClose, r.FirstClose)
	r.BuyAndHoldPercent = safeDiv(100*r.LastClose, r.FirstClose)
	r.VsBuyAndHold = r.Profit - r.BuyAndHoldProfit
	r.VsBuyAndHoldPercent = r.PercentProfit - r.BuyAndHoldPercent

	r.AverageProfitPerDay = safeDiv(r.Profit, r.TotalDays)
	r.AveragePercentProfitPerDay = safeDiv(r.PercentProfit, r.TotalDays)

	r.PercentExposure = safeDiv(100*r.ExposureDays, r.TotalDays)
	r.AverageExposureDays = mean(exposures)
	r.AveragePercentExposure = safeDiv(100*r.AverageExposureDays, r.TotalDays)

	r.Drawdown = MaxDrawdown(series, res.Equity)

	return r
}

// String renders the human-readable run summary.
func (r *Report) String() string {
	if r.NoTrades() {
		return "this strategy didn't trade\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Data from %s to %s (%.2f days)\n", day(r.Start), day(r.End), r.TotalDays)
	fmt.Fprintf(&b, "[Wallet]\n")
	fmt.Fprintf(&b, "  Initial %s: %.3f  Final %s: %.3f\n", r.BaseSymbol, r.InitialBase, r.BaseSymbol, r.FinalBase)
	fmt.Fprintf(&b, "  Initial %s: %.3f  Final %s: %.6f\n", r.QuoteSymbol, r.InitialQuote, r.QuoteSymbol, r.FinalQuote)
	fmt.Fprintf(&b, "  Strategy profit: %.2f / %.2f%%\n", r.Profit, r.PercentProfit)
	fmt.Fprintf(&b, "  Average profit per trade: %.2f / %.2f%%\n", r.AveragePerTrade, r.AveragePerTradePercent)
	fmt.Fprintf(&b, "  Average profit per day: %.2f / %.2f%%\n", r.AverageProfitPerDay, r.AveragePercentProfitPerDay)
	fmt.Fprintf(&b, "  Fees paid: %.3f %s\n", r.TotalFees, r.BaseSymbol)
	fmt.Fprintf(&b, "  Buy & hold: %.2f / %.2f%%\n", r.BuyAndHoldProfit, r.BuyAndHoldPercent)
	fmt.Fprintf(&b, "  Strategy vs buy & hold: %.2f / %.2f%%\n", r.VsBuyAndHold, r.VsBuyAndHoldPercent)
	fmt.Fprintf(&b, "[Trades]\n")
	fmt.Fprintf(&b, "  Total: %d  positive: %d (%.0f%%)  negative: %d (%.0f%%)\n",
		r.TradeCount, r.PositiveCount, r.PositiveRatio, r.NegativeCount, r.NegativeRatio)
	fmt.Fprintf(&b, "  Average positive: %+.2f / %+.2f%%\n", r.AveragePositive, r.AveragePositivePercent)
	fmt.Fprintf(&b, "  Average negative: %.2f / %.2f%%\n", r.AverageNegative, r.AverageNegativePercent)
	if r.Best != nil {
		fmt.Fprintf(&b, "  Best trade: %+.2f / %+.2f%%  %s\n", r.Best.TradeProfit, r.Best.PercentTradeProfit, day(r.Best.SellTimestamp))
	}
	if r.Worst != nil {
		fmt.Fprintf(&b, "  Worst trade: %.2f / %.2f%%  %s\n", r.Worst.TradeProfit, r.Worst.PercentTradeProfit, day(r.Worst.SellTimestamp))
	}
	fmt.Fprintf(&b, "  Exposure: %.2f days (%.0f%%), average per trade %.2f days\n",
		r.ExposureDays, r.PercentExposure, r.AverageExposureDays)
	fmt.Fprintf(&b, "  Max drawdown: %.2f%% (peak %.2f %s, trough %.2f %s)\n",
		r.Drawdown.Percent, r.Drawdown.Peak, day(r.Drawdown.PeakTimestamp),
		r.Drawdown.Trough, day(r.Drawdown.TroughTimestamp))

	return b.String()
}

func day(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02 15:04")
}

// safeDiv is the one zero-denominator policy for every ratio and average:
// a zero denominator yields 0. Callers distinguish "no trades" through the
// counts, never through a NaN.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
