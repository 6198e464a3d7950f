package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/flipper/exchange"
	"github.com/rustyeddy/flipper/ledger"
)

// SQLiteStore persists the ledger to a SQLite database, one row per item
// and one per trade. Save replaces the snapshot wholesale inside a
// transaction; position columns preserve ledger recency order and the
// newest-first history order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(items []ledger.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return err
	}

	for pos, it := range items {
		_, err := tx.Exec(`
			INSERT INTO items
			(item_id, name, buy_limit, latest_buy_price, latest_buy_time, latest_sell_price, latest_sell_time, expanded, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ItemID, it.Name, it.BuyLimit, it.LatestBuyPrice, it.LatestBuyTime,
			it.LatestSellPrice, it.LatestSellTime, it.Expanded, pos,
		)
		if err != nil {
			return err
		}

		for tpos, t := range it.History {
			_, err := tx.Exec(`
				INSERT INTO trades
				(trade_id, item_id, buy, price, quantity, time, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.ItemID, t.Buy, t.Price, t.Quantity, t.Time, tpos,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Load() ([]ledger.Item, error) {
	rows, err := s.db.Query(`
		SELECT item_id, name, buy_limit, latest_buy_price, latest_buy_time, latest_sell_price, latest_sell_time, expanded
		FROM items
		ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ledger.Item
	for rows.Next() {
		var it ledger.Item
		if err := rows.Scan(
			&it.ItemID,
			&it.Name,
			&it.BuyLimit,
			&it.LatestBuyPrice,
			&it.LatestBuyTime,
			&it.LatestSellPrice,
			&it.LatestSellTime,
			&it.Expanded,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		history, err := s.loadHistory(items[i].ItemID)
		if err != nil {
			return nil, err
		}
		items[i].History = history
	}
	return items, nil
}

func (s *SQLiteStore) loadHistory(itemID int) ([]exchange.Trade, error) {
	rows, err := s.db.Query(`
		SELECT trade_id, item_id, buy, price, quantity, time
		FROM trades
		WHERE item_id = ?
		ORDER BY position ASC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []exchange.Trade
	for rows.Next() {
		var t exchange.Trade
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Buy, &t.Price, &t.Quantity, &t.Time); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM trades`); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM items`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
