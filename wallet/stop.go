package wallet

import "fmt"

// Direction says which way a stop watcher looks. Up fires when the close
// reaches or exceeds the target (take profit), Down when it reaches or
// falls below it (stop loss).
type Direction int8

const (
	Up Direction = iota + 1
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Seller is the slice of a wallet a stop needs: issuing a sell and reading
// the quote balance the configured amount resolves against. Both wallet
// variants satisfy it.
type Seller interface {
	Sell(i int, size Sizing)
	QuoteBalance() float64
}

// Stop watches one price target on behalf of a wallet. The sell amount is
// resolved once, at creation, against the wallet's quote balance at that
// moment. A stop fires fully or not at all on a bar.
type Stop struct {
	w      Seller
	dir    Direction
	target float64
	amount float64
}

// NewStop validates the direction up front; an unknown direction is a
// configuration error, not something to discover mid-run.
func NewStop(w Seller, dir Direction, target float64, size Sizing) (*Stop, error) {
	if dir != Up && dir != Down {
		return nil, fmt.Errorf("wallet: stop direction must be Up or Down, got %d", dir)
	}
	return &Stop{
		w:      w,
		dir:    dir,
		target: target,
		amount: size.Resolve(w.QuoteBalance()),
	}, nil
}

func (s *Stop) Target() float64 { return s.target }

// Evaluate fires the stop if close crossed the target, selling the
// configured amount at bar i. It reports whether it fired; the owner clears
// a fired stop so later bars cannot re-trigger it.
func (s *Stop) Evaluate(i int, close float64) bool {
	switch s.dir {
	case Up:
		if close < s.target {
			return false
		}
	case Down:
		if close > s.target {
			return false
		}
	}
	s.w.Sell(i, Amount(s.amount))
	return true
}

// StopMonitor holds the optional take-profit and stop-loss watchers bound
// to one wallet. Watchers are one-shot: once fired they are cleared.
type StopMonitor struct {
	w  Seller
	tp *Stop
	sl *Stop
}

func NewMonitor(w Seller) *StopMonitor {
	return &StopMonitor{w: w}
}

// SetTakeProfit arms the up watcher at target, replacing any previous one.
func (m *StopMonitor) SetTakeProfit(target float64, size Sizing) error {
	stop, err := NewStop(m.w, Up, target, size)
	if err != nil {
		return err
	}
	m.tp = stop
	return nil
}

// SetStopLoss arms the down watcher at target, replacing any previous one.
func (m *StopMonitor) SetStopLoss(target float64, size Sizing) error {
	stop, err := NewStop(m.w, Down, target, size)
	if err != nil {
		return err
	}
	m.sl = stop
	return nil
}

func (m *StopMonitor) CancelTakeProfit() { m.tp = nil }

func (m *StopMonitor) CancelStopLoss() { m.sl = nil }

func (m *StopMonitor) TakeProfit() *Stop { return m.tp }

func (m *StopMonitor) StopLoss() *Stop { return m.sl }

// Evaluate checks both watchers against bar i's close and clears whichever
// fired.
func (m *StopMonitor) Evaluate(i int, close float64) {
	if m.tp != nil && m.tp.Evaluate(i, close) {
		m.tp = nil
	}
	if m.sl != nil && m.sl.Evaluate(i, close) {
		m.sl = nil
	}
}
