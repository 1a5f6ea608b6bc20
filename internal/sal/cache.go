package sal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists fetched signals in a local SQLite database so interactive
// reruns do not hit the data server. Signals are keyed by data path; PPF
// data for a finished pulse never changes, so entries have no expiry.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS signals (
	path       TEXT PRIMARY KEY,
	fetched_at TEXT NOT NULL,
	payload    BLOB NOT NULL
);`

// OpenCache opens (creating if needed) a signal cache database.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sal: open cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sal: init cache: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Get returns the cached signal for path, if present.
func (c *Cache) Get(path string) (*Signal, bool, error) {
	var payload []byte
	err := c.db.QueryRow(`SELECT payload FROM signals WHERE path = ?`, path).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sal: cache get %s: %w", path, err)
	}
	var sig Signal
	if err := json.Unmarshal(payload, &sig); err != nil {
		return nil, false, fmt.Errorf("sal: cache get %s: %w", path, err)
	}
	return &sig, true, nil
}

// Put stores a fetched signal.
func (c *Cache) Put(path string, sig *Signal) error {
	payload, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("sal: cache put %s: %w", path, err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO signals (path, fetched_at, payload) VALUES (?, ?, ?)`,
		path, time.Now().UTC().Format(time.RFC3339), payload,
	)
	if err != nil {
		return fmt.Errorf("sal: cache put %s: %w", path, err)
	}
	return nil
}
