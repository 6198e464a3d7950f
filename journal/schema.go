// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS items (
	item_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	buy_limit INTEGER NOT NULL,
	latest_buy_price INTEGER NOT NULL,
	latest_buy_time DATETIME,
	latest_sell_price INTEGER NOT NULL,
	latest_sell_time DATETIME,
	expanded INTEGER NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	item_id INTEGER NOT NULL REFERENCES items(item_id),
	buy INTEGER NOT NULL,
	price INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	time DATETIME NOT NULL,
	position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_item ON trades(item_id, position);
`
