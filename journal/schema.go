package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created INTEGER NOT NULL,
	pair TEXT NOT NULL,
	strategy TEXT NOT NULL,
	dataset TEXT NOT NULL,
	start_time INTEGER NOT NULL,
	end_time INTEGER NOT NULL,
	initial_base REAL NOT NULL,
	final_base REAL NOT NULL,
	profit REAL NOT NULL,
	return_pct REAL NOT NULL,
	total_fees REAL NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	max_drawdown REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS positions (
	position_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	buy_time INTEGER NOT NULL,
	buy_price REAL NOT NULL,
	sell_time INTEGER NOT NULL,
	sell_price REAL NOT NULL,
	amount_spent REAL NOT NULL,
	amount_sold REAL NOT NULL,
	trade_profit REAL NOT NULL,
	percent_trade_profit REAL NOT NULL,
	holding_days REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	order_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	side TEXT NOT NULL,
	time INTEGER NOT NULL,
	price REAL NOT NULL,
	base_amount REAL NOT NULL,
	quote_amount REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time INTEGER NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_run ON positions(run_id);
CREATE INDEX IF NOT EXISTS idx_orders_run ON orders(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run_time ON equity(run_id, time);
`
