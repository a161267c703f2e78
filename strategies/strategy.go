// Package strategies defines the two calling conventions a backtest can
// drive and a small registry of built-in strategies for the CLI.
package strategies

import (
	"fmt"
	"strings"

	"github.com/openbacktest/obt/market"
	"github.com/openbacktest/obt/wallet"
)

// Condition is one half of the predicate convention: called once per bar,
// true means the corresponding side wants to trade its whole balance.
type Condition func(s *market.Series, i int) bool

// Intent is the order a Func strategy wants placed on the current bar.
type Intent struct {
	Side wallet.Side
	Size wallet.Sizing
}

// Func is the single-callback convention: return nil to do nothing this bar.
type Func func(s *market.Series, i int) *Intent

// Strategy is a named trading rule in exactly one of the two conventions:
// either the Buy/Sell condition pair or Fn is set, never both.
type Strategy struct {
	Name string
	Buy  Condition
	Sell Condition
	Fn   Func
}

// Params carries the tuning knobs the built-in strategies understand.
type Params struct {
	Fast int
	Slow int

	GridStepPercent float64
	GridFraction    float64
}

// ByName builds one of the built-in strategies.
func ByName(name string, p Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop(), nil
	case "sma-cross", "smacross":
		return NewSMACross(p.Fast, p.Slow)
	case "grid":
		return NewGrid(p.GridStepPercent, p.GridFraction)
	default:
		return Strategy{}, fmt.Errorf("strategies: unknown strategy %q (supported: noop, sma-cross, grid)", name)
	}
}

// Noop never trades. Useful as a benchmark baseline.
func Noop() Strategy {
	never := func(*market.Series, int) bool { return false }
	return Strategy{Name: "noop", Buy: never, Sell: never}
}
