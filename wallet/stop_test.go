package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStopRejectsUnknownDirection(t *testing.T) {
	t.Parallel()

	w := New(testSeries(t, 10), testSettings(100), quietLogger())
	_, err := NewStop(w, Direction(9), 12, All())
	assert.Error(t, err)
}

func TestStopAmountResolvedAtCreation(t *testing.T) {
	t.Parallel()

	w := New(testSeries(t, 10, 10, 15), Settings{BaseBalance: 100}, quietLogger())
	w.Buy(0, All()) // 10 quote

	stop, err := NewStop(w, Up, 14, Fraction(50))
	require.NoError(t, err)

	// Balance changes after creation must not change the configured amount.
	w.Sell(1, Fraction(20))
	w.Buy(1, All())

	require.True(t, stop.Evaluate(2, 15))
	// 5 quote (resolved from the original 10) sold at 15.
	assert.InDelta(t, 5.0, w.Book().Last().AmountSold, 1e-9)
}

func TestTakeProfitFiresAtOrAboveTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		close float64
		fired bool
	}{
		{name: "below_target", close: 11.9, fired: false},
		{name: "at_target", close: 12, fired: true},
		{name: "above_target", close: 13, fired: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := New(testSeries(t, 10, tt.close), Settings{BaseBalance: 100}, quietLogger())
			w.Buy(0, All())

			m := NewMonitor(w)
			require.NoError(t, m.SetTakeProfit(12, All()))
			m.Evaluate(1, tt.close)

			assert.Equal(t, tt.fired, !w.HasOpenPosition())
			if tt.fired {
				assert.Nil(t, m.TakeProfit(), "fired stop must be cleared")
			} else {
				assert.NotNil(t, m.TakeProfit())
			}
		})
	}
}

func TestStopLossFiresAtOrBelowTarget(t *testing.T) {
	t.Parallel()

	w := New(testSeries(t, 10, 9, 7), Settings{BaseBalance: 100}, quietLogger())
	w.Buy(0, All())

	m := NewMonitor(w)
	require.NoError(t, m.SetStopLoss(8, All()))

	// Above the target: nothing happens.
	m.Evaluate(1, 9)
	assert.True(t, w.HasOpenPosition())
	require.NotNil(t, m.StopLoss())

	// At/below the target: fires once and clears.
	m.Evaluate(2, 7)
	assert.False(t, w.HasOpenPosition())
	assert.Nil(t, m.StopLoss())

	// Re-evaluating a cleared monitor is a no-op.
	sells := w.Book().Len()
	m.Evaluate(2, 5)
	assert.Equal(t, sells, w.Book().Len())
}

func TestStopLossBelowPriceNeverFires(t *testing.T) {
	t.Parallel()

	w := New(testSeries(t, 10, 10, 10), Settings{BaseBalance: 100}, quietLogger())
	w.Buy(0, All())

	m := NewMonitor(w)
	require.NoError(t, m.SetStopLoss(5, All()))
	for i := 0; i < 3; i++ {
		m.Evaluate(i, 10)
	}
	assert.True(t, w.HasOpenPosition())
	assert.NotNil(t, m.StopLoss())
}

func TestCancelStops(t *testing.T) {
	t.Parallel()

	w := New(testSeries(t, 10, 20), Settings{BaseBalance: 100}, quietLogger())
	w.Buy(0, All())

	m := NewMonitor(w)
	require.NoError(t, m.SetTakeProfit(12, All()))
	require.NoError(t, m.SetStopLoss(8, All()))
	m.CancelTakeProfit()
	m.CancelStopLoss()

	m.Evaluate(1, 20)
	assert.True(t, w.HasOpenPosition())
}
