package wallet

import (
	"github.com/sirupsen/logrus"

	"github.com/openbacktest/obt/internal/id"
)

const millisPerDay = 86_400_000

// Position is one round trip: a buy leg and, once closed, a sell leg plus
// the derived results. A closed position is frozen and never mutated again.
type Position struct {
	ID string

	BuyTimestamp int64
	BuyPrice     float64
	BalanceAtBuy float64 // base balance just before the buy
	AmountSpent  float64 // base converted by the buy

	SellTimestamp int64
	SellPrice     float64
	BalanceAtSell float64 // base balance just after the sell
	AmountSold    float64 // quote converted by the sell

	TradeProfit        float64 // base gained over the round trip
	PercentTradeProfit float64
	HoldingDays        float64

	Closed bool
}

func openPosition(ts int64, price, balance, amount float64) *Position {
	return &Position{
		ID:           id.New(),
		BuyTimestamp: ts,
		BuyPrice:     price,
		BalanceAtBuy: balance,
		AmountSpent:  amount,
	}
}

func (p *Position) close(ts int64, price, balance, amount float64) {
	p.SellTimestamp = ts
	p.SellPrice = price
	p.BalanceAtSell = balance
	p.AmountSold = amount

	p.TradeProfit = p.BalanceAtSell - p.BalanceAtBuy
	if p.BalanceAtBuy != 0 {
		p.PercentTradeProfit = 100 * p.TradeProfit / p.BalanceAtBuy
	}
	p.HoldingDays = float64(p.SellTimestamp-p.BuyTimestamp) / millisPerDay
	p.Closed = true
}

// PositionBook is the append-only record of positions a round-trip wallet
// produced. Closing the book is terminal: later appends are warned about
// and dropped, the recorded history is never corrupted.
type PositionBook struct {
	log       *logrus.Logger
	positions []*Position
	closed    bool
}

func newPositionBook(log *logrus.Logger) *PositionBook {
	return &PositionBook{log: log}
}

func (b *PositionBook) Append(p *Position) {
	if b.closed {
		b.log.Warn("wallet: append to a closed position book dropped")
		return
	}
	b.positions = append(b.positions, p)
}

// Close freezes the book.
func (b *PositionBook) Close() { b.closed = true }

func (b *PositionBook) Closed() bool { return b.closed }

func (b *PositionBook) Len() int { return len(b.positions) }

// Positions returns the recorded history. Read-only for callers.
func (b *PositionBook) Positions() []*Position { return b.positions }

func (b *PositionBook) First() *Position {
	if len(b.positions) == 0 {
		return nil
	}
	return b.positions[0]
}

func (b *PositionBook) Last() *Position {
	if len(b.positions) == 0 {
		return nil
	}
	return b.positions[len(b.positions)-1]
}
