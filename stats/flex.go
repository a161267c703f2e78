package stats

import (
	"fmt"
	"strings"

	"github.com/openbacktest/obt/backtest"
	"github.com/openbacktest/obt/wallet"
)

// FlexReport is the reduced analytics set for a free-form run. Orders are
// not paired into round trips, so per-trade statistics don't apply; what
// remains is the wallet outcome, order counts, the benchmark and the
// drawdown over the equity curve.
type FlexReport struct {
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

	OrderCount int
	BuyCount   int
	SellCount  int

	Start      int64
	End        int64
	TotalDays  float64
	FirstClose float64
	LastClose  float64

	BuyAndHoldProfit  float64
	BuyAndHoldPercent float64
	VsBuyAndHold      float64

	AverageProfitPerDay        float64
	AveragePercentProfitPerDay float64

	Drawdown Drawdown
}

// NoTrades reports whether the run never placed an order.
func (r *FlexReport) NoTrades() bool { return r.OrderCount == 0 }

// ComputeFlex derives the report from a finished free-form run.
func ComputeFlex(res *backtest.Result) *FlexReport {
	w := res.Flex
	series := res.Series

	r := &FlexReport{
		Pair:         series.Pair(),
		BaseSymbol:   w.BaseSymbol,
		QuoteSymbol:  w.QuoteSymbol,
		InitialBase:  w.InitialBase,
		FinalBase:    w.Base,
		InitialQuote: w.InitialQuote,
		FinalQuote:   w.Quote,
		TotalFees:    w.TotalFees,
		OrderCount:   w.Book().Len(),
	}
	if r.NoTrades() {
		return r
	}

	for _, o := range w.Book().Orders() {
		if o.Side == wallet.Buy {
			r.BuyCount++
		} else {
			r.SellCount++
		}
	}

	r.Profit = w.Profit()
	r.PercentProfit = safeDiv(100*r.Profit, w.InitialBase)

	r.Start = series.First().Timestamp
	r.End = series.Last().Timestamp
	r.TotalDays = float64(r.End-r.Start) / millisPerDay
	r.FirstClose = series.First().Close
	r.LastClose = series.Last().Close

	r.BuyAndHoldProfit = safeDiv(w.InitialBase*r.LastClose, r.FirstClose)
	r.BuyAndHoldPercent = safeDiv(100*r.LastClose, r.FirstClose)
	r.VsBuyAndHold = r.Profit - r.BuyAndHoldProfit

	r.AverageProfitPerDay = safeDiv(r.Profit, r.TotalDays)
	r.AveragePercentProfitPerDay = safeDiv(r.PercentProfit, r.TotalDays)

	r.Drawdown = MaxDrawdown(series, res.Equity)

	return r
}

// String renders the human-readable run summary.
func (r *FlexReport) String() string {
	if r.NoTrades() {
		return "this strategy didn't trade\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Data from %s to %s (%.2f days)\n", day(r.Start), day(r.End), r.TotalDays)
	fmt.Fprintf(&b, "[Wallet]\n")
	fmt.Fprintf(&b, "  Initial %s: %.3f  Final %s: %.3f\n", r.BaseSymbol, r.InitialBase, r.BaseSymbol, r.FinalBase)
	fmt.Fprintf(&b, "  Initial %s: %.3f  Final %s: %.6f\n", r.QuoteSymbol, r.InitialQuote, r.QuoteSymbol, r.FinalQuote)
	fmt.Fprintf(&b, "  Strategy profit: %.2f / %.2f%%\n", r.Profit, r.PercentProfit)
	fmt.Fprintf(&b, "  Average profit per day: %.2f / %.2f%%\n", r.AverageProfitPerDay, r.AveragePercentProfitPerDay)
	fmt.Fprintf(&b, "  Fees paid: %.3f %s\n", r.TotalFees, r.BaseSymbol)
	fmt.Fprintf(&b, "  Buy & hold: %.2f / %.2f%%\n", r.BuyAndHoldProfit, r.BuyAndHoldPercent)
	fmt.Fprintf(&b, "[Orders]\n")
	fmt.Fprintf(&b, "  Total: %d  buys: %d  sells: %d\n", r.OrderCount, r.BuyCount, r.SellCount)
	fmt.Fprintf(&b, "  Max drawdown: %.2f%% (peak %.2f %s, trough %.2f %s)\n",
		r.Drawdown.Percent, r.Drawdown.Peak, day(r.Drawdown.PeakTimestamp),
		r.Drawdown.Trough, day(r.Drawdown.TroughTimestamp))

	return b.String()
}
