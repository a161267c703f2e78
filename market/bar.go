package market

import "time"

// Bar is a single OHLCV bar. Timestamp is the bar open in unix milliseconds.
//
// Close is the only price the simulation uses for execution and valuation;
// Open/High/Low/Volume ride along for strategies and enrichment.
type Bar struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Time returns the bar open as a time.Time in UTC.
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}
