package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"crypto-journal/internal/errors"
)

// SQLiteKV implements KV on a single-table SQLite database.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV opens (creating if needed) the journal state database.
func NewSQLiteKV(dbPath string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabaseError, "open %s: %v", dbPath, err)
	}

	kv := &SQLiteKV{db: db}
	if err := kv.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabaseError, "initialize schema: %v", err)
	}
	return kv, nil
}

func (s *SQLiteKV) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journal_state (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the stored value for key, reporting whether it existed.
func (s *SQLiteKV) Load(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM journal_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewStoreError("load", key, err)
	}
	return value, true, nil
}

// Save upserts the value for key.
func (s *SQLiteKV) Save(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO journal_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return errors.NewStoreError("save", key, err)
	}
	return nil
}

// Remove deletes the key if present.
func (s *SQLiteKV) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM journal_state WHERE key = ?`, key); err != nil {
		return errors.NewStoreError("remove", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
