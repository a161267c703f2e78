package market

import (
	"fmt"
	"sort"
)

// Series is an ordered, immutable-after-load sequence of bars for one market
// pair. Bars are validated once at construction; everything downstream may
// assume strictly increasing timestamps and index bars freely.
type Series struct {
	pair string
	bars []Bar
}

// NewSeries builds a Series from pre-sorted bars. It fails if the slice is
// empty or timestamps are not strictly increasing.
func NewSeries(pair string, bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("market: series %q has no bars", pair)
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Timestamp <= bars[i-1].Timestamp {
			return nil, fmt.Errorf("market: series %q timestamps not strictly increasing at index %d (%d after %d)",
				pair, i, bars[i].Timestamp, bars[i-1].Timestamp)
		}
	}
	return &Series{pair: pair, bars: bars}, nil
}

func (s *Series) Pair() string { return s.pair }

func (s *Series) Len() int { return len(s.bars) }

// MaxIndex is the last valid bar index.
func (s *Series) MaxIndex() int { return len(s.bars) - 1 }

func (s *Series) Bar(i int) Bar { return s.bars[i] }

// Close is shorthand for the execution price at index i.
func (s *Series) Close(i int) float64 { return s.bars[i].Close }

func (s *Series) First() Bar { return s.bars[0] }

func (s *Series) Last() Bar { return s.bars[len(s.bars)-1] }

// Bars returns the underlying slice. Callers must treat it as read-only.
func (s *Series) Bars() []Bar { return s.bars }

// IndexForTimestamp returns the index of the closest bar at or before ts.
// It fails when ts predates the series; proceeding with such a lookup would
// align a bar against data that does not exist yet.
func (s *Series) IndexForTimestamp(ts int64) (int, error) {
	if ts < s.bars[0].Timestamp {
		return 0, fmt.Errorf("market: timestamp %d is older than the start of series %q (%d)",
			ts, s.pair, s.bars[0].Timestamp)
	}
	// First bar strictly after ts; the one before it is our answer.
	n := sort.Search(len(s.bars), func(i int) bool {
		return s.bars[i].Timestamp > ts
	})
	return n - 1, nil
}
