package folioengine

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Local cache keys. The document and auth state are stored as JSON strings;
// theme is the literal "dark" or "light".
const (
	KeyPortfolioData = "portfolio_data"
	KeyPortfolioAuth = "portfolio_auth"
	KeyTheme         = "theme"
)

// ErrNotFound is returned when a requested cache key has no value.
var ErrNotFound = sql.ErrNoRows

// Store is the local durable cache: a SQLite-backed key->string table. It is
// the only guaranteed persistence path; the remote store is best-effort on
// top of it.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema setup.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of returning SQLITE_BUSY, synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set upserts the value under key.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// LoadDocument returns the cached portfolio document. found is false when
// the cache holds no document yet.
func (s *Store) LoadDocument() (PortfolioData, bool, error) {
	raw, err := s.Get(KeyPortfolioData)
	if err == ErrNotFound {
		return PortfolioData{}, false, nil
	}
	if err != nil {
		return PortfolioData{}, false, err
	}
	var doc PortfolioData
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return PortfolioData{}, false, fmt.Errorf("folioengine: decode cached document: %w", err)
	}
	// Older cached documents may predate the analytics block.
	if doc.Analytics.ViewHistory == nil {
		doc.Analytics = SeedDocument().Analytics
	}
	return doc, true, nil
}

// SaveDocument writes the full document to the cache.
func (s *Store) SaveDocument(doc PortfolioData) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("folioengine: encode document: %w", err)
	}
	return s.Set(KeyPortfolioData, string(raw))
}

// LoadAuth returns the persisted auth state, or the zero state when absent.
func (s *Store) LoadAuth() (AuthState, error) {
	raw, err := s.Get(KeyPortfolioAuth)
	if err == ErrNotFound {
		return AuthState{}, nil
	}
	if err != nil {
		return AuthState{}, err
	}
	var auth AuthState
	if err := json.Unmarshal([]byte(raw), &auth); err != nil {
		return AuthState{}, fmt.Errorf("folioengine: decode auth state: %w", err)
	}
	return auth, nil
}

// SaveAuth persists the auth state.
func (s *Store) SaveAuth(auth AuthState) error {
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("folioengine: encode auth state: %w", err)
	}
	return s.Set(KeyPortfolioAuth, string(raw))
}

// Theme returns the persisted theme, defaulting to "light".
func (s *Store) Theme() string {
	v, err := s.Get(KeyTheme)
	if err != nil || (v != "dark" && v != "light") {
		return "light"
	}
	return v
}

// SetTheme persists the theme. Values other than "dark" are stored as "light".
func (s *Store) SetTheme(theme string) error {
	if theme != "dark" {
		theme = "light"
	}
	return s.Set(KeyTheme, theme)
}
