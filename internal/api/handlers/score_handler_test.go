package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/api/middleware"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/apperrors"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/services/identity"
)

type fakeLedger struct {
	submitted  []models.ScoreRecord
	topRecords []models.ScoreRecord
	userTop    *models.ScoreRecord
	err        error

	lastLimit int
}

func (f *fakeLedger) Submit(ctx context.Context, userID, userName string, score int) (models.ScoreRecord, error) {
	if f.err != nil {
		return models.ScoreRecord{}, f.err
	}
	record := models.ScoreRecord{ID: "id-1", UserID: userID, UserName: userName, Score: score, Timestamp: 1000}
	f.submitted = append(f.submitted, record)
	return record, nil
}

func (f *fakeLedger) Top(ctx context.Context, limit int) ([]models.ScoreRecord, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.topRecords) {
		return f.topRecords[:limit], nil
	}
	return f.topRecords, nil
}

func (f *fakeLedger) UserTop(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.userTop, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func authenticated(r *http.Request) *http.Request {
	ctx := middleware.WithIdentity(r.Context(),
		identity.Identity{UserID: "u1", DisplayName: "Alice"}, "token-1")
	return r.WithContext(ctx)
}

func TestSubmitScoreCreated(t *testing.T) {
	ledger := &fakeLedger{}
	h := NewScoreHandler(ledger, testLogger())

	r := authenticated(httptest.NewRequest("POST", "/api/scores", strings.NewReader(`{"score": 50}`)))
	w := httptest.NewRecorder()
	h.SubmitScore(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var got models.ScoreRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "Alice", got.UserName)
	assert.Equal(t, 50, got.Score)
	assert.NotEmpty(t, got.ID)
}

func TestSubmitScoreAcceptsZero(t *testing.T) {
	ledger := &fakeLedger{}
	h := NewScoreHandler(ledger, testLogger())

	r := authenticated(httptest.NewRequest("POST", "/api/scores", strings.NewReader(`{"score": 0}`)))
	w := httptest.NewRecorder()
	h.SubmitScore(w, r)

	assert.Equal(t, http.StatusCreated, w.Code, "zero is a present, well-formed score")
}

func TestSubmitScoreMissingScore(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"null score", `{"score": null}`},
		{"non-integer score", `{"score": "high"}`},
		{"malformed json", `{"score":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{}
			h := NewScoreHandler(ledger, testLogger())

			r := authenticated(httptest.NewRequest("POST", "/api/scores", strings.NewReader(tt.body)))
			w := httptest.NewRecorder()
			h.SubmitScore(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, ledger.submitted, "invalid input must be rejected before the ledger is called")
		})
	}
}

func TestSubmitScoreWithoutIdentity(t *testing.T) {
	h := NewScoreHandler(&fakeLedger{}, testLogger())

	r := httptest.NewRequest("POST", "/api/scores", strings.NewReader(`{"score": 50}`))
	w := httptest.NewRecorder()
	h.SubmitScore(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitScoreStorageFailure(t *testing.T) {
	ledger := &fakeLedger{err: apperrors.Storage("put score record", errors.New("throttled"))}
	h := NewScoreHandler(ledger, testLogger())

	r := authenticated(httptest.NewRequest("POST", "/api/scores", strings.NewReader(`{"score": 50}`)))
	w := httptest.NewRecorder()
	h.SubmitScore(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "throttled", "store internals must not leak to clients")
}

func TestGetTopScoreReturnsSingleRecord(t *testing.T) {
	ledger := &fakeLedger{topRecords: []models.ScoreRecord{
		{ID: "a", UserName: "Bob", Score: 75},
		{ID: "b", UserName: "Alice", Score: 50},
	}}
	h := NewScoreHandler(ledger, testLogger())

	r := authenticated(httptest.NewRequest("GET", "/api/scores", nil))
	w := httptest.NewRecorder()
	h.GetTopScore(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.ScoreRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Bob", got.UserName)
	assert.Equal(t, 10, ledger.lastLimit, "default limit applies when none given")
}

func TestGetTopScoreEmptyStore(t *testing.T) {
	h := NewScoreHandler(&fakeLedger{}, testLogger())

	r := authenticated(httptest.NewRequest("GET", "/api/scores", nil))
	w := httptest.NewRecorder()
	h.GetTopScore(w, r)

	require.Equal(t, http.StatusOK, w.Code, "empty leaderboard is not an error")
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestGetTopScoreLimitParsing(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{"explicit limit", "?limit=3", 3},
		{"missing limit", "", 10},
		{"non-numeric limit", "?limit=abc", 10},
		{"zero limit", "?limit=0", 10},
		{"negative limit", "?limit=-4", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{}
			h := NewScoreHandler(ledger, testLogger())

			r := authenticated(httptest.NewRequest("GET", "/api/scores"+tt.query, nil))
			w := httptest.NewRecorder()
			h.GetTopScore(w, r)

			assert.Equal(t, tt.wantLimit, ledger.lastLimit)
		})
	}
}

func TestGetTopScoresReturnsOrderedList(t *testing.T) {
	ledger := &fakeLedger{topRecords: []models.ScoreRecord{
		{ID: "a", UserName: "Bob", Score: 75},
		{ID: "b", UserName: "Alice", Score: 50},
	}}
	h := NewScoreHandler(ledger, testLogger())

	r := authenticated(httptest.NewRequest("GET", "/api/scores/top?limit=5", nil))
	w := httptest.NewRecorder()
	h.GetTopScores(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got []models.ScoreRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].UserName)
}

func TestGetMyTopScore(t *testing.T) {
	best := &models.ScoreRecord{ID: "a", UserID: "u1", UserName: "Alice", Score: 80}
	h := NewScoreHandler(&fakeLedger{userTop: best}, testLogger())

	r := authenticated(httptest.NewRequest("GET", "/api/scores/me", nil))
	w := httptest.NewRecorder()
	h.GetMyTopScore(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.ScoreRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *best, got)
}

func TestGetMyTopScoreAbsent(t *testing.T) {
	h := NewScoreHandler(&fakeLedger{}, testLogger())

	r := authenticated(httptest.NewRequest("GET", "/api/scores/me", nil))
	w := httptest.NewRecorder()
	h.GetMyTopScore(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}
