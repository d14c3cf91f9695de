package poetrade

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Store remembers which trades have already been counted so a sale is never
// credited to the fund twice across runs.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	item_id     TEXT PRIMARY KEY,
	recorded_at TEXT NOT NULL,
	payload     TEXT NOT NULL
);
`

// OpenStore opens (creating if needed) the trade database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trade store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot migrate trade store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// FilterNew returns the trades not yet recorded, preserving order.
func (s *Store) FilterNew(trades []Trade) ([]Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []Trade
	for _, t := range trades {
		var exists int
		err := s.db.QueryRow(`SELECT COUNT(1) FROM trades WHERE item_id = ?`, t.ItemID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("cannot query trade store: %w", err)
		}
		if exists == 0 {
			fresh = append(fresh, t)
		}
	}
	return fresh, nil
}

// Record persists trades, ignoring any already present.
func (s *Store) Record(trades []Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cannot record trades: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO trades (item_id, recorded_at, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cannot record trades: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		payload, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("cannot record trade %s: %w", t.ItemID, err)
		}
		if _, err := stmt.Exec(t.ItemID, t.Timestamp, payload); err != nil {
			return fmt.Errorf("cannot record trade %s: %w", t.ItemID, err)
		}
	}
	return tx.Commit()
}

// All returns every recorded trade in recording order.
func (s *Store) All() ([]Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scan(`SELECT payload FROM trades ORDER BY rowid ASC`)
}

// Recent returns the n most recently recorded trades, newest first.
func (s *Store) Recent(n int) ([]Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scan(`SELECT payload FROM trades ORDER BY rowid DESC LIMIT ?`, n)
}

func (s *Store) scan(query string, args ...any) ([]Trade, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot read trade store: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("cannot read trade store: %w", err)
		}
		var t Trade
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, fmt.Errorf("corrupt trade record: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
