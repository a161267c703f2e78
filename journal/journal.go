// Package journal persists finished runs so they can be compared later:
// one row per run with its summary figures, plus the positions, orders and
// equity marks that produced them. SQLite is the primary backend, CSV the
// flat-file alternative.
package journal

// RunRecord is one finished run with its summary figures.
type RunRecord struct {
	RunID    string
	Created  int64 // unix millis
	Pair     string
	Strategy string
	Dataset  string

	Start int64 // first bar timestamp, unix millis
	End   int64

	InitialBase float64
	FinalBase   float64
	Profit      float64
	ReturnPct   float64
	TotalFees   float64

	Trades      int
	Wins        int
	Losses      int
	MaxDrawdown float64 // percent, <= 0
}

// PositionRecord is one closed round trip belonging to a run.
type PositionRecord struct {
	PositionID string
	RunID      string

	BuyTimestamp  int64
	BuyPrice      float64
	SellTimestamp int64
	SellPrice     float64

	AmountSpent float64
	AmountSold  float64

	TradeProfit        float64
	PercentTradeProfit float64
	HoldingDays        float64
}

// OrderRecord is one independent order belonging to a free-form run.
type OrderRecord struct {
	OrderID string
	RunID   string

	Side      string
	Timestamp int64
	Price     float64

	BaseAmount  float64
	QuoteAmount float64
}

// EquityPoint is one per-bar equity mark belonging to a run.
type EquityPoint struct {
	RunID     string
	Timestamp int64
	Equity    float64
}

// Journal is the write side; backends also carry their own query methods.
type Journal interface {
	RecordRun(RunRecord) error
	RecordPosition(PositionRecord) error
	RecordOrder(OrderRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}
