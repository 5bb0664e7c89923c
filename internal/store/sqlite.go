package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCache implements LocalCache on a single sqlite key-value table. It
// plays the browser localStorage role: synchronous string slots scoped to
// the machine, keyed by day key.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (or creates) the cache database at path.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	schema := `
	CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Get returns the value stored under key, reporting whether a slot exists.
func (c *SQLiteCache) Get(key string) (string, bool) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM cache WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set writes the value under key, replacing any previous slot.
func (c *SQLiteCache) Set(key, value string) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO cache (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing cache slot %q: %w", key, err)
	}
	return nil
}

// Delete removes the slot under key.
func (c *SQLiteCache) Delete(key string) error {
	if _, err := c.db.Exec(`DELETE FROM cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting cache slot %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
