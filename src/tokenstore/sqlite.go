package tokenstore

import (
	"database/sql"
	"errors"
	"fmt"

	"risk-console/src/logger"
	"risk-console/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------
// SQLiteTokenStore - durable single-slot token cache backed by a local file,
// so the session survives a full restart.
// -----------------------------------------------------------------------------

type SQLiteTokenStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteTokenStore(cfg *models.MConfig, log *logger.Logger) (*SQLiteTokenStore, error) {
	s := &SQLiteTokenStore{
		Config: cfg,
		Logger: log,
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// -----------------------------------------------------------------------------

func (s *SQLiteTokenStore) initialize() error {
	db, err := sql.Open("sqlite", s.Config.Storage.DBPath)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	s.DB = db

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		s.Logger.Warning("Failed to set WAL mode: %v", err)
	}

	// Single-row slot table: slot is pinned to 0 so there is never more than
	// one stored token.
	query := `
		CREATE TABLE IF NOT EXISTS session_token (
			slot INTEGER PRIMARY KEY CHECK (slot = 0),
			token TEXT NOT NULL
		);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create session_token: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (s *SQLiteTokenStore) Get() (string, error) {
	var token string
	err := s.DB.QueryRow("SELECT token FROM session_token WHERE slot = 0").Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		// Missing slot means unauthenticated, not an error
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// -----------------------------------------------------------------------------

func (s *SQLiteTokenStore) Set(token string) error {
	query := `
		INSERT INTO session_token (slot, token) VALUES (0, ?)
		ON CONFLICT (slot) DO UPDATE SET token = excluded.token
	`
	_, err := s.DB.Exec(query, token)
	return err
}

// -----------------------------------------------------------------------------

func (s *SQLiteTokenStore) Clear() error {
	_, err := s.DB.Exec("DELETE FROM session_token WHERE slot = 0")
	return err
}

// -----------------------------------------------------------------------------

func (s *SQLiteTokenStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
