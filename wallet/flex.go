package wallet

import (
	"github.com/sirupsen/logrus"

	"github.com/openbacktest/obt/internal/id"
	"github.com/openbacktest/obt/market"
)

// FlexWallet is the free-form ledger: the same fee and sizing mechanics as
// Wallet but no pairing guard. Every buy or sell appends an independent
// Order carrying both post-trade balances.
type FlexWallet struct {
	ledger

	series *market.Series
	book   *OrderBook
	log    *logrus.Logger
}

// NewFlex creates a free-form wallet over the series. A nil logger falls
// back to the logrus standard logger.
func NewFlex(series *market.Series, st Settings, log *logrus.Logger) *FlexWallet {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FlexWallet{
		ledger: newLedger(st),
		series: series,
		book:   newOrderBook(log),
		log:    log,
	}
}

// Book exposes the recorded orders. Read-only for callers.
func (w *FlexWallet) Book() *OrderBook { return w.book }

// Buy converts base into quote at the close of bar i. A zero resolved
// amount is a no-op.
func (w *FlexWallet) Buy(i int, size Sizing) {
	amount := size.Resolve(w.Base)
	if amount <= 0 {
		return
	}

	bar := w.series.Bar(i)
	gained := w.feeAdjust(amount / bar.Close)
	w.Quote += gained
	w.Base -= amount

	w.book.Append(&Order{
		ID:                id.New(),
		Side:              Buy,
		Timestamp:         bar.Timestamp,
		Price:             bar.Close,
		BaseAmount:        amount,
		QuoteAmount:       gained,
		BaseBalanceAfter:  w.Base,
		QuoteBalanceAfter: w.Quote,
	})
}

// Sell converts quote into base at the close of bar i. A zero resolved
// amount is a no-op.
func (w *FlexWallet) Sell(i int, size Sizing) {
	amount := size.Resolve(w.Quote)
	if amount <= 0 {
		return
	}

	bar := w.series.Bar(i)
	gained := w.feeAdjust(amount * bar.Close)
	w.Base += gained
	w.Quote -= amount

	w.book.Append(&Order{
		ID:                id.New(),
		Side:              Sell,
		Timestamp:         bar.Timestamp,
		Price:             bar.Close,
		BaseAmount:        gained,
		QuoteAmount:       amount,
		BaseBalanceAfter:  w.Base,
		QuoteBalanceAfter: w.Quote,
	})
}
