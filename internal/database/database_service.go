package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq" // PostgreSQL driver, also registered for database/sql
)

// DatabaseService owns the database connection pool.
type DatabaseService struct {
	DB *sql.DB
}

// NewDatabaseService opens a connection pool and verifies it with a ping.
func NewDatabaseService(ctx context.Context, databaseURL string) (*DatabaseService, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DatabaseService{DB: db}, nil
}

// Close releases the connection pool.
func (s *DatabaseService) Close() error {
	return s.DB.Close()
}

// EnsureScoreSchema creates the score table if it does not exist yet.
// The table name comes from configuration and is resolved exactly once
// at startup.
func (s *DatabaseService) EnsureScoreSchema(ctx context.Context, table string) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id           UUID PRIMARY KEY,
			user_id      TEXT   NOT NULL,
			user_name    TEXT   NOT NULL,
			score        BIGINT NOT NULL,
			submitted_at BIGINT NOT NULL
		)`, pq.QuoteIdentifier(table))

	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating score table %q: %w", table, err)
	}
	return nil
}
