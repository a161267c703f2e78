package strategies

import (
	"fmt"

	"github.com/openbacktest/obt/market"
	"github.com/openbacktest/obt/wallet"
)

// NewGrid is a simple grid strategy for the free-form ledger: starting from
// the first close as the reference level, it buys a fraction of the base
// balance every time the price drops a full step below the reference and
// sells a fraction of the quote balance every time it rises a step above,
// re-anchoring the reference on each trade.
func NewGrid(stepPercent, fraction float64) (Strategy, error) {
	if stepPercent <= 0 {
		return Strategy{}, fmt.Errorf("strategies: grid step must be positive, got %v", stepPercent)
	}
	if fraction <= 0 || fraction > 100 {
		return Strategy{}, fmt.Errorf("strategies: grid fraction must be in (0,100], got %v", fraction)
	}

	var ref float64

	fn := func(s *market.Series, i int) *Intent {
		price := s.Close(i)
		if ref == 0 {
			ref = price
			return nil
		}

		switch {
		case price <= ref*(1-stepPercent/100):
			ref = price
			return &Intent{Side: wallet.Buy, Size: wallet.Fraction(fraction)}
		case price >= ref*(1+stepPercent/100):
			ref = price
			return &Intent{Side: wallet.Sell, Size: wallet.Fraction(fraction)}
		}
		return nil
	}

	return Strategy{
		Name: fmt.Sprintf("grid(%.2f%%,%.0f%%)", stepPercent, fraction),
		Fn:   fn,
	}, nil
}
