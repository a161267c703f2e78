package stats

import "github.com/openbacktest/obt/market"

// Drawdown is the deepest peak-to-trough equity decline seen in a run,
// as a point-in-time estimate from one forward scan (not a full drawdown
// curve). Percent is always <= 0; exactly 0 for a never-declining curve.
type Drawdown struct {
	Percent float64

	Peak          float64
	PeakTimestamp int64

	Trough          float64
	TroughTimestamp int64
}

// MaxDrawdown scans the equity marks (one per bar, parallel to the series)
// keeping a running all-time high. Every mark below the ATH yields a
// candidate decline; the most negative one wins. An equal new high
// refreshes the ATH timestamp so the reported peak is the latest one.
func MaxDrawdown(series *market.Series, equity []float64) Drawdown {
	var dd Drawdown

	var ath float64
	var athTS int64

	for i, eq := range equity {
		ts := series.Bar(i).Timestamp
		if eq >= ath {
			ath = eq
			athTS = ts
			continue
		}
		if ath <= 0 {
			continue
		}

		pct := -100 * (ath - eq) / ath
		if pct < dd.Percent {
			dd.Percent = pct
			dd.Peak = ath
			dd.PeakTimestamp = athTS
			dd.Trough = eq
			dd.TroughTimestamp = ts
		}
	}

	return dd
}
