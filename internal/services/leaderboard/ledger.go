// Package leaderboard owns score records and the ranking queries derived
// from them. The ledger is stateless: all state lives in the score store,
// and every query recomputes its view from a full scan.
package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/apperrors"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/database"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
)

// DefaultLimit is the number of records Top returns when the caller does
// not ask for a specific count.
const DefaultLimit = 10

// Publisher receives every record accepted by Submit. Used to drive the
// live feed; a nil publisher disables it.
type Publisher interface {
	Publish(record models.ScoreRecord)
}

// Ledger records score submissions and answers ranking queries.
type Ledger struct {
	store database.ScoreRepository
	feed  Publisher

	// overridable for tests
	now   func() time.Time
	newID func() string
}

// NewLedger creates a Ledger over the given store. feed may be nil.
func NewLedger(store database.ScoreRepository, feed Publisher) *Ledger {
	return &Ledger{
		store: store,
		feed:  feed,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit persists one score attempt as a brand new record and returns it
// verbatim, including the assigned ID and timestamp. Prior records for the
// same user are never touched; every attempt is retained.
func (l *Ledger) Submit(ctx context.Context, userID, userName string, score int) (models.ScoreRecord, error) {
	record := models.ScoreRecord{
		ID:        l.newID(),
		UserID:    userID,
		UserName:  userName,
		Score:     score,
		Timestamp: l.now().UnixMilli(),
	}

	if err := l.store.Put(ctx, record); err != nil {
		return models.ScoreRecord{}, apperrors.Storage("put score record", err)
	}

	if l.feed != nil {
		l.feed.Publish(record)
	}
	return record, nil
}

// Top returns up to limit records ordered by score descending, with ties
// broken by earlier timestamp. The full record set is sorted before
// truncation; a limit of zero or less yields an empty slice, as does an
// empty store.
func (l *Ledger) Top(ctx context.Context, limit int) ([]models.ScoreRecord, error) {
	if limit <= 0 {
		return []models.ScoreRecord{}, nil
	}

	records, err := l.store.ScanAll(ctx)
	if err != nil {
		return nil, apperrors.Storage("scan score records", err)
	}

	sortByRank(records)
	if limit < len(records) {
		records = records[:limit]
	}
	if records == nil {
		records = []models.ScoreRecord{}
	}
	return records, nil
}

// UserTop returns the best record of one user, or nil when the user has no
// records. Ties resolve to the earliest submission, same as Top.
func (l *Ledger) UserTop(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	records, err := l.store.ScanAll(ctx)
	if err != nil {
		return nil, apperrors.Storage("scan score records", err)
	}

	var best *models.ScoreRecord
	for i := range records {
		if records[i].UserID != userID {
			continue
		}
		if best == nil || ranksHigher(records[i], *best) {
			best = &records[i]
		}
	}
	if best == nil {
		return nil, nil
	}
	out := *best
	return &out, nil
}

// sortByRank orders records by score descending, then timestamp ascending
// (earlier achievement wins the tie), then ID as a final deterministic key.
func sortByRank(records []models.ScoreRecord) {
	sort.Slice(records, func(i, j int) bool {
		return ranksHigher(records[i], records[j])
	})
}

func ranksHigher(a, b models.ScoreRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.ID < b.ID
}
