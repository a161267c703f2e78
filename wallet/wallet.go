// Package wallet implements the virtual ledgers a simulation trades against:
// base/quote balances, proportional fees, the position and order books that
// analytics later consume, and the stop watchers bound to a ledger.
//
// Two variants exist. Wallet enforces buy-then-sell pairing into round-trip
// positions; FlexWallet records independent orders with no pairing, which is
// what grid-style strategies need. Misused calls (buy with a position open,
// sell with none) are advisory no-ops, never failures: a sloppy strategy must
// not halt a simulation.
package wallet

import (
	"github.com/sirupsen/logrus"

	"github.com/openbacktest/obt/market"
)

// Settings fixes a ledger's identity and starting state for one run.
// Fee rates are proportional fractions, e.g. 0.001 for 0.1%.
type Settings struct {
	BaseSymbol   string
	QuoteSymbol  string
	BaseBalance  float64
	QuoteBalance float64
	TakerFee     float64
	MakerFee     float64
}

// ledger is the balance and fee state shared by both wallet variants.
type ledger struct {
	BaseSymbol  string
	QuoteSymbol string

	InitialBase  float64
	InitialQuote float64
	Base         float64
	Quote        float64

	TakerFee  float64
	MakerFee  float64
	TotalFees float64
}

func newLedger(st Settings) ledger {
	return ledger{
		BaseSymbol:   st.BaseSymbol,
		QuoteSymbol:  st.QuoteSymbol,
		InitialBase:  st.BaseBalance,
		InitialQuote: st.QuoteBalance,
		Base:         st.BaseBalance,
		Quote:        st.QuoteBalance,
		TakerFee:     st.TakerFee,
		MakerFee:     st.MakerFee,
	}
}

// feeAdjust applies the taker fee to a conversion result and accounts the
// absolute fee taken.
func (l *ledger) feeAdjust(x float64) float64 {
	fee := x * l.TakerFee
	l.TotalFees += fee
	return x - fee
}

// Value is the ledger's equity at the given price: base plus quote marked
// at that price.
func (l *ledger) Value(price float64) float64 {
	return l.Base + l.Quote*price
}

// Profit is the base gained since the run started.
func (l *ledger) Profit() float64 { return l.Base - l.InitialBase }

// BaseBalance and QuoteBalance mirror the exported fields behind the small
// interfaces the engine and stop watchers consume.
func (l *ledger) BaseBalance() float64 { return l.Base }

func (l *ledger) QuoteBalance() float64 { return l.Quote }

// Wallet is the round-trip ledger: every buy opens a Position, every sell
// closes it, and at most one position is open at any time.
type Wallet struct {
	ledger

	series *market.Series
	book   *PositionBook
	log    *logrus.Logger
}

// New creates a round-trip wallet over the series. A nil logger falls back
// to the logrus standard logger.
func New(series *market.Series, st Settings, log *logrus.Logger) *Wallet {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Wallet{
		ledger: newLedger(st),
		series: series,
		book:   newPositionBook(log),
		log:    log,
	}
}

// Book exposes the recorded positions. Read-only for callers.
func (w *Wallet) Book() *PositionBook { return w.book }

// HasOpenPosition reports whether the last position is still open.
func (w *Wallet) HasOpenPosition() bool {
	last := w.book.Last()
	return last != nil && !last.Closed
}

// Buy converts base into quote at the close of bar i and opens a position.
// Advisory no-op when a position is already open or nothing resolves to be
// spent.
func (w *Wallet) Buy(i int, size Sizing) {
	if w.HasOpenPosition() {
		w.log.WithField("index", i).Warn("wallet: buy order not placeable, a position is already open")
		return
	}

	amount := size.Resolve(w.Base)
	if amount <= 0 {
		return
	}

	bar := w.series.Bar(i)
	w.book.Append(openPosition(bar.Timestamp, bar.Close, w.Base, amount))

	w.Quote += w.feeAdjust(amount / bar.Close)
	w.Base -= amount
}

// Sell converts quote back into base at the close of bar i and closes the
// open position, freezing its derived results. Advisory no-op when no
// position is open or nothing resolves to be sold.
func (w *Wallet) Sell(i int, size Sizing) {
	last := w.book.Last()
	if last == nil || last.Closed {
		w.log.WithField("index", i).Warn("wallet: sell order not placeable, there is no open position")
		return
	}

	amount := size.Resolve(w.Quote)
	if amount <= 0 {
		return
	}

	bar := w.series.Bar(i)
	w.Base += w.feeAdjust(amount * bar.Close)
	w.Quote -= amount

	last.close(bar.Timestamp, bar.Close, w.Base, amount)
}
