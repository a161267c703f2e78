package wallet

import "github.com/sirupsen/logrus"

// Side of a conversion: Buy spends base for quote, Sell the reverse.
type Side int8

const (
	Buy  Side = +1
	Sell Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

// Order is one independent conversion recorded by the free-form wallet.
// Unlike positions there is no pairing: every order stands on its own and
// captures both post-trade balances.
type Order struct {
	ID        string
	Side      Side
	Timestamp int64
	Price     float64

	BaseAmount  float64 // base leg of the conversion (after fees on sells)
	QuoteAmount float64 // quote leg of the conversion (after fees on buys)

	BaseBalanceAfter  float64
	QuoteBalanceAfter float64
}

// OrderBook is the append-only record of orders, with the same terminal
// close semantics as PositionBook.
type OrderBook struct {
	log    *logrus.Logger
	orders []*Order
	closed bool
}

func newOrderBook(log *logrus.Logger) *OrderBook {
	return &OrderBook{log: log}
}

func (b *OrderBook) Append(o *Order) {
	if b.closed {
		b.log.Warn("wallet: append to a closed order book dropped")
		return
	}
	b.orders = append(b.orders, o)
}

func (b *OrderBook) Close() { b.closed = true }

func (b *OrderBook) Closed() bool { return b.closed }

func (b *OrderBook) Len() int { return len(b.orders) }

// Orders returns the recorded history. Read-only for callers.
func (b *OrderBook) Orders() []*Order { return b.orders }

func (b *OrderBook) First() *Order {
	if len(b.orders) == 0 {
		return nil
	}
	return b.orders[0]
}

func (b *OrderBook) Last() *Order {
	if len(b.orders) == 0 {
		return nil
	}
	return b.orders[len(b.orders)-1]
}
