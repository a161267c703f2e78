// Package backtest replays a bar series against a registered strategy,
// forwarding its decisions to a wallet, evaluating the stop watchers and
// recording the per-bar equity curve. One engine drives one run at a time;
// independent runs need independent engines and wallets.
package backtest

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/openbacktest/obt/market"
	"github.com/openbacktest/obt/strategies"
	"github.com/openbacktest/obt/wallet"
)

// ErrNoStrategy is returned by Run when nothing was registered; the run
// does not start.
var ErrNoStrategy = errors.New("backtest: no strategy registered")

// Options fixes a single run.
type Options struct {
	Wallet wallet.Settings

	// Finish forces a final sell at the last bar's close when quote is
	// still held, so every run ends fully valued in base currency and
	// results stay comparable.
	Finish bool
}

// Result is the frozen outcome of a run: the wallet with its trade book,
// and one equity mark per bar. Exactly one of Wallet/Flex is set. Safe to
// read from other goroutines once Run has returned.
type Result struct {
	Series *market.Series
	Wallet *wallet.Wallet
	Flex   *wallet.FlexWallet
	Equity []float64
}

// trader is the slice of either wallet variant the loop needs.
type trader interface {
	Buy(i int, size wallet.Sizing)
	Sell(i int, size wallet.Sizing)
	BaseBalance() float64
	QuoteBalance() float64
	Value(price float64) float64
}

type Engine struct {
	series *market.Series
	log    *logrus.Logger

	buyCond  strategies.Condition
	sellCond strategies.Condition
	fn       strategies.Func

	// Live only while Run executes.
	monitor *wallet.StopMonitor
	current int // bar index of the running loop
}

// New creates an engine over the series. A nil logger falls back to the
// logrus standard logger.
func New(series *market.Series, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{series: series, log: log}
}

// Register wires a strategy in whichever convention it uses.
func (e *Engine) Register(st strategies.Strategy) {
	if st.Fn != nil {
		e.RegisterStrategy(st.Fn)
		return
	}
	e.RegisterConditions(st.Buy, st.Sell)
}

// RegisterConditions wires the buy/sell predicate pair.
func (e *Engine) RegisterConditions(buy, sell strategies.Condition) {
	e.buyCond = buy
	e.sellCond = sell
	e.fn = nil
}

// RegisterStrategy wires the single-callback convention.
func (e *Engine) RegisterStrategy(fn strategies.Func) {
	e.fn = fn
	e.buyCond = nil
	e.sellCond = nil
}

// Run replays the series against the round-trip wallet. The returned
// result is frozen: the position book is closed and the equity series will
// not grow again.
func (e *Engine) Run(opts Options) (*Result, error) {
	if err := e.checkStrategy(); err != nil {
		return nil, err
	}

	w := wallet.New(e.series, opts.Wallet, e.log)
	equity, err := e.loop(w, opts)
	if err != nil {
		return nil, err
	}
	w.Book().Close()

	return &Result{Series: e.series, Wallet: w, Equity: equity}, nil
}

// RunFlex replays the series against the free-form wallet, for strategies
// that place independent orders (grids and friends).
func (e *Engine) RunFlex(opts Options) (*Result, error) {
	if err := e.checkStrategy(); err != nil {
		return nil, err
	}

	w := wallet.NewFlex(e.series, opts.Wallet, e.log)
	equity, err := e.loop(w, opts)
	if err != nil {
		return nil, err
	}
	w.Book().Close()

	return &Result{Series: e.series, Flex: w, Equity: equity}, nil
}

func (e *Engine) checkStrategy() error {
	if e.fn == nil && (e.buyCond == nil || e.sellCond == nil) {
		return ErrNoStrategy
	}
	return nil
}

// loop is the single pass over bar indices 0..max, no backtracking:
// strategy first, then stop watchers (same-bar trades are visible to
// them), then the equity snapshot.
func (e *Engine) loop(w trader, opts Options) ([]float64, error) {
	e.monitor = wallet.NewMonitor(w)
	defer func() { e.monitor = nil }()

	equity := make([]float64, 0, e.series.Len())

	for i := 0; i <= e.series.MaxIndex(); i++ {
		e.current = i
		e.step(w, i)
		e.monitor.Evaluate(i, e.series.Close(i))
		equity = append(equity, w.Value(e.series.Close(i)))
	}

	if opts.Finish && w.QuoteBalance() > 0 {
		w.Sell(e.series.MaxIndex(), wallet.All())
	}
	return equity, nil
}

// step invokes the registered strategy for bar i and applies its decision.
func (e *Engine) step(w trader, i int) {
	if e.fn != nil {
		intent := e.fn(e.series, i)
		if intent == nil {
			return
		}
		switch intent.Side {
		case wallet.Buy:
			w.Buy(i, intent.Size)
		case wallet.Sell:
			w.Sell(i, intent.Size)
		default:
			e.log.WithFields(logrus.Fields{
				"index": i,
				"side":  int(intent.Side),
			}).Warn("backtest: intent with unknown side skipped")
		}
		return
	}

	// Predicate pair: buy wins the bar when both fire, and a side only
	// runs when it has balance to trade with.
	if e.buyCond(e.series, i) && w.BaseBalance() > 0 {
		w.Buy(i, wallet.All())
	} else if e.sellCond(e.series, i) && w.QuoteBalance() > 0 {
		w.Sell(i, wallet.All())
	}
}

// SetTakeProfit arms the up watcher at an absolute target price. Only
// valid while a run is in progress (typically from a strategy callback).
func (e *Engine) SetTakeProfit(target float64, size wallet.Sizing) error {
	if e.monitor == nil {
		return fmt.Errorf("backtest: no active run to attach a take profit to")
	}
	return e.monitor.SetTakeProfit(target, size)
}

// SetTakeProfitPercent arms the up watcher at pct percent above the
// current bar's close.
func (e *Engine) SetTakeProfitPercent(pct float64, size wallet.Sizing) error {
	if e.monitor == nil {
		return fmt.Errorf("backtest: no active run to attach a take profit to")
	}
	target := e.series.Close(e.current) * (1 + pct/100)
	return e.monitor.SetTakeProfit(target, size)
}

// SetStopLoss arms the down watcher at an absolute target price.
func (e *Engine) SetStopLoss(target float64, size wallet.Sizing) error {
	if e.monitor == nil {
		return fmt.Errorf("backtest: no active run to attach a stop loss to")
	}
	return e.monitor.SetStopLoss(target, size)
}

// SetStopLossPercent arms the down watcher at pct percent below the
// current bar's close.
func (e *Engine) SetStopLossPercent(pct float64, size wallet.Sizing) error {
	if e.monitor == nil {
		return fmt.Errorf("backtest: no active run to attach a stop loss to")
	}
	target := e.series.Close(e.current) * (1 - pct/100)
	return e.monitor.SetStopLoss(target, size)
}

func (e *Engine) CancelTakeProfit() {
	if e.monitor != nil {
		e.monitor.CancelTakeProfit()
	}
}

func (e *Engine) CancelStopLoss() {
	if e.monitor != nil {
		e.monitor.CancelStopLoss()
	}
}
