package strategies

import (
	"fmt"

	"github.com/openbacktest/obt/indicators"
	"github.com/openbacktest/obt/market"
)

// NewSMACross is the classic moving-average crossover as a condition pair:
// buy when the fast SMA crosses above the slow one, sell when it crosses
// back below. Bars inside the warmup window never trade.
func NewSMACross(fast, slow int) (Strategy, error) {
	if fast <= 0 || slow <= 0 {
		return Strategy{}, fmt.Errorf("strategies: sma-cross periods must be positive, got fast=%d slow=%d", fast, slow)
	}
	if fast >= slow {
		return Strategy{}, fmt.Errorf("strategies: sma-cross fast period %d must be below slow period %d", fast, slow)
	}

	crossed := func(s *market.Series, i int, above bool) bool {
		if i == 0 {
			return false
		}
		fPrev, err := indicators.SMA(s, i-1, fast)
		if err != nil {
			return false
		}
		sPrev, err := indicators.SMA(s, i-1, slow)
		if err != nil {
			return false
		}
		fNow, _ := indicators.SMA(s, i, fast)
		sNow, _ := indicators.SMA(s, i, slow)

		if above {
			return fPrev <= sPrev && fNow > sNow
		}
		return fPrev >= sPrev && fNow < sNow
	}

	return Strategy{
		Name: fmt.Sprintf("sma-cross(%d,%d)", fast, slow),
		Buy: func(s *market.Series, i int) bool {
			return crossed(s, i, true)
		},
		Sell: func(s *market.Series, i int) bool {
			return crossed(s, i, false)
		},
	}, nil
}
