package translation

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS translations (
	source     TEXT NOT NULL,
	target     TEXT NOT NULL,
	text       TEXT NOT NULL,
	translated TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (source, target, text)
)`

// SQLiteCache keeps translations in a SQLite database file so repeated texts
// are not sent to the remote service again
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens or creates the cache database at path
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise cache database: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Get retrieves a translation from the database
func (c *SQLiteCache) Get(source, target, text string) (string, bool) {
	var translated string
	err := c.db.QueryRow(
		`SELECT translated FROM translations WHERE source = ? AND target = ? AND text = ?`,
		source, target, text,
	).Scan(&translated)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("translation cache: lookup failed: %v", err)
		}
		return "", false
	}
	return translated, true
}

// Add stores a translation, replacing any earlier one for the same text
func (c *SQLiteCache) Add(source, target, text, translated string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO translations (source, target, text, translated) VALUES (?, ?, ?, ?)`,
		source, target, text, translated,
	)
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

// Len returns the number of stored translations
func (c *SQLiteCache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return n, nil
}

// Close closes the database
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
