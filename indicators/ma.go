package indicators

import (
	"fmt"

	"github.com/openbacktest/obt/market"
)

// SMA calculates the Simple Moving Average of the close over the period
// bars ending at index end (inclusive).
func SMA(s *market.Series, end, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("indicators: period must be positive, got %d", period)
	}
	if end+1 < period || end > s.MaxIndex() {
		return 0, fmt.Errorf("indicators: not enough bars for SMA(%d) at index %d", period, end)
	}

	sum := 0.0
	for i := end - period + 1; i <= end; i++ {
		sum += s.Close(i)
	}
	return sum / float64(period), nil
}

// EMA calculates the Exponential Moving Average of the close at index end,
// seeded with the SMA of the first period bars.
func EMA(s *market.Series, end, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("indicators: period must be positive, got %d", period)
	}
	if end+1 < period || end > s.MaxIndex() {
		return 0, fmt.Errorf("indicators: not enough bars for EMA(%d) at index %d", period, end)
	}

	multiplier := 2.0 / float64(period+1)

	ema := 0.0
	for i := 0; i < period; i++ {
		ema += s.Close(i)
	}
	ema /= float64(period)

	for i := period; i <= end; i++ {
		ema = (s.Close(i)-ema)*multiplier + ema
	}
	return ema, nil
}
