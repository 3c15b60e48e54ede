package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/todo-mock-api/internal/model"
)

// stateKey is the fixed key the state blob lives under, the counterpart of
// the original's local-storage key.
const stateKey = "todo-mock-api/global-state"

// migration pairs a schema version with the SQL that brings the database
// up to it.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);
			CREATE TABLE IF NOT EXISTS app_state (
				key  TEXT PRIMARY KEY,
				data TEXT NOT NULL
			);
			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`,
	},
}

// SQLiteAdapter is the persistent Adapter: the whole state is one JSON
// document in a single-row table.
type SQLiteAdapter struct {
	db *sqlx.DB
}

// NewSQLiteAdapter opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewSQLiteAdapter(dbPath string) (*SQLiteAdapter, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	a := &SQLiteAdapter{db: db}
	if err := a.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return a, nil
}

// Close closes the underlying database connection.
func (a *SQLiteAdapter) Close() error {
	return a.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (a *SQLiteAdapter) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := a.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = a.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := a.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// GetData loads and decodes the state blob. A missing row means nothing
// has been stored yet; a row that fails to decode is reported as an error
// so the caller can refuse to start on corrupted state.
func (a *SQLiteAdapter) GetData() (*model.GlobalState, error) {
	var raw string
	err := a.db.Get(&raw, "SELECT data FROM app_state WHERE key = ?", stateKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state blob: %w", err)
	}

	var state model.GlobalState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decoding state blob: %w", err)
	}

	return &state, nil
}

// SetData encodes and writes the state blob under the fixed key.
func (a *SQLiteAdapter) SetData(state *model.GlobalState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state blob: %w", err)
	}

	_, err = a.db.Exec(
		"INSERT OR REPLACE INTO app_state (key, data) VALUES (?, ?)",
		stateKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("writing state blob: %w", err)
	}

	return nil
}
