package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/api/middleware"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/services/leaderboard"
)

// ScoreLedger is what the score endpoints need from the leaderboard
// service.
type ScoreLedger interface {
	Submit(ctx context.Context, userID, userName string, score int) (models.ScoreRecord, error)
	Top(ctx context.Context, limit int) ([]models.ScoreRecord, error)
	UserTop(ctx context.Context, userID string) (*models.ScoreRecord, error)
}

// ScoreHandler serves score submission and ranking queries.
type ScoreHandler struct {
	ledger ScoreLedger
	logger *slog.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(ledger ScoreLedger, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{ledger: ledger, logger: logger}
}

// SubmitScore records a new score for the authenticated user.
// POST /api/scores
func (h *ScoreHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusUnauthorized, "Missing authenticated user")
		return
	}

	var req models.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Score == nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing score")
		return
	}

	record, err := h.ledger.Submit(r.Context(), id.UserID, id.DisplayName, *req.Score)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusCreated, record)
}

// GetTopScore returns the single highest score across all users, or null
// when no scores exist yet.
// GET /api/scores?limit=N
func (h *ScoreHandler) GetTopScore(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, leaderboard.DefaultLimit)

	records, err := h.ledger.Top(r.Context(), limit)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if len(records) == 0 {
		WriteJSONResponse(w, http.StatusOK, nil)
		return
	}
	WriteJSONResponse(w, http.StatusOK, records[0])
}

// GetTopScores returns the ranked list of top scores.
// GET /api/scores/top?limit=N
func (h *ScoreHandler) GetTopScores(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, leaderboard.DefaultLimit)

	records, err := h.ledger.Top(r.Context(), limit)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, records)
}

// GetMyTopScore returns the authenticated user's best score, or null when
// the user has not submitted yet.
// GET /api/scores/me
func (h *ScoreHandler) GetMyTopScore(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusUnauthorized, "Missing authenticated user")
		return
	}

	record, err := h.ledger.UserTop(r.Context(), id.UserID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if record == nil {
		WriteJSONResponse(w, http.StatusOK, nil)
		return
	}
	WriteJSONResponse(w, http.StatusOK, record)
}

// parseLimit reads the limit query parameter. Absent, malformed or
// non-positive values fall back to the default.
func parseLimit(r *http.Request, defaultLimit int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	return limit
}
