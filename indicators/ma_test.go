package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbacktest/obt/market"
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

func TestSMA(t *testing.T) {
	t.Parallel()

	s := seriesOf(t, 1, 2, 3, 4, 5)

	got, err := SMA(s, 4, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-9)

	got, err = SMA(s, 2, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestSMANotEnoughBars(t *testing.T) {
	t.Parallel()

	s := seriesOf(t, 1, 2)
	_, err := SMA(s, 1, 3)
	assert.Error(t, err)

	_, err = SMA(s, 1, 0)
	assert.Error(t, err)
}

func TestEMA(t *testing.T) {
	t.Parallel()

	s := seriesOf(t, 2, 2, 2, 2, 2)

	// Constant closes keep the EMA at the constant.
	got, err := EMA(s, 4, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)

	// Seed SMA(1,2,3)=2, multiplier 0.5: 2 -> 3 -> 4.
	s = seriesOf(t, 1, 2, 3, 4, 5)
	got, err = EMA(s, 4, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-9)
}
