package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbacktest/obt/market"
	"github.com/openbacktest/obt/wallet"
)

func seriesOf(t *testing.T, closes ...float64) *market.Series {
	t.Helper()
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{Timestamp: int64(i+1) * 1000, Close: c}
	}
	s, err := market.NewSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arg     string
		params  Params
		wantErr bool
	}{
		{name: "noop", arg: "noop"},
		{name: "none_alias", arg: "none"},
		{name: "sma_cross", arg: "sma-cross", params: Params{Fast: 2, Slow: 5}},
		{name: "grid", arg: "grid", params: Params{GridStepPercent: 5, GridFraction: 25}},
		{name: "unknown", arg: "hodl", wantErr: true},
		{name: "bad_periods", arg: "sma-cross", params: Params{Fast: 5, Slow: 2}, wantErr: true},
		{name: "bad_grid_step", arg: "grid", params: Params{GridFraction: 25}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st, err := ByName(tt.arg, tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, st.Name)
		})
	}
}

func TestNoopNeverTrades(t *testing.T) {
	t.Parallel()

	s := seriesOf(t, 1, 2, 3)
	st := Noop()
	for i := 0; i <= s.MaxIndex(); i++ {
		assert.False(t, st.Buy(s, i))
		assert.False(t, st.Sell(s, i))
	}
}

func TestSMACrossSignals(t *testing.T) {
	t.Parallel()

	// Downtrend then sharp reversal: fast(2) crosses above slow(3).
	s := seriesOf(t, 10, 9, 8, 7, 12, 14)
	st, err := NewSMACross(2, 3)
	require.NoError(t, err)

	var buys, sells []int
	for i := 0; i <= s.MaxIndex(); i++ {
		if st.Buy(s, i) {
			buys = append(buys, i)
		}
		if st.Sell(s, i) {
			sells = append(sells, i)
		}
	}

	assert.Equal(t, []int{4}, buys)
	assert.Empty(t, sells)
}

func TestGridTradesAroundReference(t *testing.T) {
	t.Parallel()

	st, err := NewGrid(10, 50)
	require.NoError(t, err)

	// 100 anchors the reference. 89 is a full step down (buy, re-anchor).
	// 99 is a full step up from 89 (sell, re-anchor). A repeat of 99 stays
	// inside the new band.
	s := seriesOf(t, 100, 89, 99, 99)

	intent := st.Fn(s, 0)
	assert.Nil(t, intent)

	intent = st.Fn(s, 1)
	require.NotNil(t, intent)
	assert.Equal(t, wallet.Buy, intent.Side)

	intent = st.Fn(s, 2)
	require.NotNil(t, intent)
	assert.Equal(t, wallet.Sell, intent.Side)

	// Same price again: within the band of the new reference.
	intent = st.Fn(s, 3)
	assert.Nil(t, intent)
}
