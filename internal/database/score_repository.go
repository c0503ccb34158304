package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
)

// ScoreRepository is the storage boundary for score records. The store is
// deliberately minimal: a single-item atomic insert and a full scan. All
// filtering, ordering and truncation happen above it, so the repository can
// be backed by any collection that supports these two calls.
type ScoreRepository interface {
	// Put inserts one record. The write is atomic per item; there are no
	// conditional or merge semantics.
	Put(ctx context.Context, record models.ScoreRecord) error

	// ScanAll returns every record currently in the collection, in no
	// particular order.
	ScanAll(ctx context.Context) ([]models.ScoreRecord, error)
}

// postgresScoreRepository implements ScoreRepository on a Postgres table.
type postgresScoreRepository struct {
	db        *sql.DB
	insertSQL string
	scanSQL   string
}

// NewScoreRepository creates a ScoreRepository over the given table.
// The table name is fixed at construction time.
func NewScoreRepository(db *sql.DB, table string) ScoreRepository {
	quoted := pq.QuoteIdentifier(table)
	return &postgresScoreRepository{
		db: db,
		insertSQL: fmt.Sprintf(
			`INSERT INTO %s (id, user_id, user_name, score, submitted_at) VALUES ($1, $2, $3, $4, $5)`,
			quoted,
		),
		scanSQL: fmt.Sprintf(
			`SELECT id, user_id, user_name, score, submitted_at FROM %s`,
			quoted,
		),
	}
}

func (r *postgresScoreRepository) Put(ctx context.Context, record models.ScoreRecord) error {
	_, err := r.db.ExecContext(ctx, r.insertSQL,
		record.ID, record.UserID, record.UserName, record.Score, record.Timestamp)
	if err != nil {
		return fmt.Errorf("inserting score record: %w", err)
	}
	return nil
}

func (r *postgresScoreRepository) ScanAll(ctx context.Context) ([]models.ScoreRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.scanSQL)
	if err != nil {
		return nil, fmt.Errorf("scanning score records: %w", err)
	}
	defer rows.Close()

	var records []models.ScoreRecord
	for rows.Next() {
		var rec models.ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserName, &rec.Score, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("reading score record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating score records: %w", err)
	}

	return records, nil
}
