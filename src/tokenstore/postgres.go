package tokenstore

import (
	"database/sql"
	"errors"
	"fmt"

	"risk-console/src/logger"
	"risk-console/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------
// PostgresTokenStore - same single-slot contract as the SQLite store, for
// deployments that keep console state in a shared database.
// -----------------------------------------------------------------------------

type PostgresTokenStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresTokenStore(cfg *models.MConfig, log *logger.Logger) (*PostgresTokenStore, error) {
	s := &PostgresTokenStore{
		Config: cfg,
		Logger: log,
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// -----------------------------------------------------------------------------

func (s *PostgresTokenStore) initialize() error {
	db, err := sql.Open("postgres", s.Config.Storage.DBConnectionString)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	s.DB = db

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

func (s *PostgresTokenStore) Get() (string, error) {
	var token string
	err := s.DB.QueryRow("SELECT token FROM session_token WHERE slot = 0").Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// -----------------------------------------------------------------------------

func (s *PostgresTokenStore) Set(token string) error {
	query := `
		INSERT INTO session_token (slot, token) VALUES (0, $1)
		ON CONFLICT (slot) DO UPDATE SET token = excluded.token
	`
	_, err := s.DB.Exec(query, token)
	return err
}

// -----------------------------------------------------------------------------

func (s *PostgresTokenStore) Clear() error {
	_, err := s.DB.Exec("DELETE FROM session_token WHERE slot = 0")
	return err
}

// -----------------------------------------------------------------------------

func (s *PostgresTokenStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
